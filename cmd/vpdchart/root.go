// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/vpdchart"
	"github.com/gogpu/vpdchart/raster"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	backend  string
	verbose  bool
	profiles string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "vpdchart",
		Short: "Render vapor-pressure-deficit charts",
		Long: `vpdchart computes the vapor-pressure deficit of a reading and draws it
against the acceptable band of a crop stage.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if g.verbose {
				vpdchart.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.backend, "backend", raster.PreferAuto, "raster backend: auto, gpu or software")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log diagnostics to stderr")
	pf.StringVar(&g.profiles, "profiles", "", "YAML file replacing the bundled crop profiles")

	root.AddCommand(
		newRenderCmd(g),
		newDeficitCmd(g),
		newCropsCmd(g),
		newFontsCmd(g),
	)
	return root
}

// loadProfiles returns the profile file named by --profiles, or the
// bundled profiles.
func (g *globalFlags) loadProfiles() (*vpdchart.ProfileSet, error) {
	if g.profiles == "" {
		return vpdchart.DefaultProfiles(), nil
	}
	f, err := os.Open(g.profiles)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ps, err := vpdchart.LoadProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.profiles, err)
	}
	return ps, nil
}

// openChart selects the backend and builds a chart on it. The returned
// function releases the backend.
func (g *globalFlags) openChart(backend string) (*vpdchart.Chart, func(), error) {
	ps, err := g.loadProfiles()
	if err != nil {
		return nil, nil, err
	}
	b, err := raster.Select(backend)
	if err != nil {
		return nil, nil, err
	}
	return vpdchart.New(b, vpdchart.WithProfiles(ps)), b.Close, nil
}
