// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/psychro"
	"github.com/gogpu/vpdchart/raster"
	"github.com/gogpu/vpdchart/zone"
)

// ChartRequest describes one chart.
//
// AirTemp is required. At most one derivation path is used, in the order
// Deficit, Humidity, LeafTemp; with none of them the leaf is assumed
// psychro.DefaultLeafOffset degrees below the air.
type ChartRequest struct {
	AirTemp  float64  // °C
	Humidity *float64 // %
	LeafTemp *float64 // °C
	Deficit  *float64 // kPa

	// Profile defaults to the general profile of the chart's ProfileSet.
	Profile *CropProfile

	// Stage selects a single band to emphasize. Empty draws the growth
	// stages present in the profile.
	Stage string

	Orientation zone.Orientation
	Format      raster.Format

	// Font overrides the default font for every label.
	Font *FontOverride
}

// FontOverride selects a font for one request.
type FontOverride struct {
	Source font.Source
	Family string
}

// Reading is the derived measurement of a request.
type Reading struct {
	Deficit  float64
	Humidity *float64
	LeafTemp *float64
	Method   psychro.Method
	Status   Status
}

// Image is an encoded chart.
type Image struct {
	Data    []byte
	Format  raster.Format
	Reading Reading
}

func (r ChartRequest) measurement() psychro.Reading {
	return psychro.Reading{
		AirTemp:  r.AirTemp,
		Humidity: r.Humidity,
		LeafTemp: r.LeafTemp,
		Deficit:  r.Deficit,
	}
}

// Float returns a pointer to v, for the optional ChartRequest fields.
func Float(v float64) *float64 { return &v }
