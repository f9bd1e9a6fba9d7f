// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/vpdchart"
	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/raster"
)

func newRenderCmd(g *globalFlags) *cobra.Command {
	var (
		r          readingFlags
		output     string
		format     string
		fontSource string
		fontFamily string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a chart for one reading",
		Long: `render draws the deficit band of a crop stage, or the growth stages when
no stage is given, and marks the reading on it.

Use -o - to write the image to stdout. With --json the image is embedded,
base64-encoded, in a JSON report instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := raster.ParseFormat(format)
			if err != nil {
				return err
			}
			c, closeChart, err := g.openChart(g.backend)
			if err != nil {
				return err
			}
			defer closeChart()

			req, err := r.request(cmd, c.Profiles())
			if err != nil {
				return err
			}
			req.Format = f
			if fontSource != "" || fontFamily != "" {
				req.Font = &vpdchart.FontOverride{Source: font.Source(fontSource), Family: fontFamily}
			}

			img, err := c.Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				rep := newReport(req, img.Reading)
				rep.Image = img.Data
				rep.ImageFormat = img.Format.String()
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			if output == "" {
				output = "vpd-chart." + img.Format.String()
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(img.Data)
				return err
			}
			if err := os.WriteFile(output, img.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%.3f kPa, %s, %s backend)\n",
				output, img.Reading.Deficit, img.Reading.Status, c.Backend().Name())
			return nil
		},
	}

	fs := cmd.Flags()
	r.register(fs)
	fs.StringVarP(&output, "output", "o", "", "output file (default vpd-chart.<format>)")
	fs.StringVar(&format, "format", "png", "image format: png or jpeg")
	fs.StringVar(&fontSource, "font", "", "font source: bundled:<name> or an http(s) URL")
	fs.StringVar(&fontFamily, "font-family", "", "family name to register the font under")
	fs.BoolVar(&asJSON, "json", false, "print a JSON report with the image embedded")
	return cmd
}
