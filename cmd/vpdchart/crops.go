// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/vpdchart"
)

type cropEntry struct {
	Key    string                           `json:"key"`
	Name   string                           `json:"name"`
	Stages []string                         `json:"stages"`
	Ranges map[string]vpdchart.DeficitRange `json:"ranges,omitempty"`
}

func newCropsCmd(g *globalFlags) *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "crops",
		Short: "List crop profiles and their stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ps, err := g.loadProfiles()
			if err != nil {
				return err
			}

			crops := ps.Crops()
			if asJSON {
				entries := make([]cropEntry, 0, len(crops))
				for _, p := range crops {
					e := cropEntry{Key: p.Key, Name: p.Name, Stages: p.StageKeys()}
					if verbose {
						e.Ranges = p.Stages
					}
					entries = append(entries, e)
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CROP\tSTAGE\tMIN\tMAX\tLABEL")
			for _, p := range crops {
				for _, k := range p.StageKeys() {
					s := p.Stages[k]
					fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%s\n", p.Key, k, s.Min, s.Max, s.Label)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&verbose, "ranges", false, "include stage ranges in JSON output")
	return cmd
}
