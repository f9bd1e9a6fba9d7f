// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/zone"
)

// Option configures a Chart during creation.
//
// Example:
//
//	backend, _ := raster.Select(raster.PreferAuto)
//	c := vpdchart.New(backend, vpdchart.WithSamples(200))
type Option func(*chartOptions)

type chartOptions struct {
	fonts    *font.Cache
	fetcher  font.Fetcher
	profiles *ProfileSet
	samples  int
	refTemp  float64
}

func defaultOptions() chartOptions {
	return chartOptions{
		samples: zone.DefaultSamples,
		refTemp: zone.DefaultRefTemp,
	}
}

// WithFontCache shares a font cache between charts. The cache must register
// fonts with the same backend the chart draws on. WithFetcher is ignored
// when a cache is supplied.
func WithFontCache(c *font.Cache) Option {
	return func(o *chartOptions) {
		o.fonts = c
	}
}

// WithFetcher sets the fetcher used for remote font sources.
func WithFetcher(f font.Fetcher) Option {
	return func(o *chartOptions) {
		o.fetcher = f
	}
}

// WithProfiles replaces the bundled crop profiles.
func WithProfiles(ps *ProfileSet) Option {
	return func(o *chartOptions) {
		o.profiles = ps
	}
}

// WithSamples sets the number of steps used to trace each zone boundary.
// Values below 1 keep the default.
func WithSamples(n int) Option {
	return func(o *chartOptions) {
		if n >= 1 {
			o.samples = n
		}
	}
}

// WithRefTemp sets the air temperature at which stage limits are converted
// to humidity curves in the temperature-primary layout.
func WithRefTemp(t float64) Option {
	return func(o *chartOptions) {
		o.refTemp = t
	}
}
