// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/raster"
)

func newFontsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts [source...]",
		Short: "Load fonts and list what the cache holds",
		Long: `fonts loads every source concurrently, as a chart would for a font
override, and prints the resulting cache keys. Without arguments the bundled
fonts are loaded. A source is bundled:<name> or an http(s) URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := raster.Select(g.backend)
			if err != nil {
				return err
			}
			defer b.Close()

			sources := font.BundledSources()
			if len(args) > 0 {
				sources = make([]font.Source, len(args))
				for i, a := range args {
					sources[i] = font.Source(a)
				}
			}

			c := font.NewCache(b)
			if err := c.Preload(cmd.Context(), sources...); err != nil {
				return err
			}
			st := c.Stats()
			for _, k := range st.Keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d fonts loaded on the %s backend\n", st.Size, b.Name())
			return nil
		},
	}
}
