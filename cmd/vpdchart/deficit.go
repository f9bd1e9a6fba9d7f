// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/vpdchart/raster"
)

func newDeficitCmd(g *globalFlags) *cobra.Command {
	var r readingFlags
	cmd := &cobra.Command{
		Use:   "deficit",
		Short: "Print the deficit of a reading as JSON",
		Long: `deficit derives the vapor-pressure deficit from --air and one of --rh,
--leaf or --vpd. Without either, the leaf is assumed 2 °C below the air.
With --stage the reading is classified as optimal, too_low or too_high.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Nothing is drawn; the software backend is always available.
			c, closeChart, err := g.openChart(raster.BackendSoftware)
			if err != nil {
				return err
			}
			defer closeChart()

			req, err := r.request(cmd, c.Profiles())
			if err != nil {
				return err
			}
			rd, err := c.ComputeDeficit(req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), newReport(req, rd))
		},
	}
	r.register(cmd.Flags())
	return cmd
}
