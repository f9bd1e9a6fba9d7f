// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vpdchart renders vapor-pressure-deficit charts.
//
// # Overview
//
// A chart shows the acceptable deficit band of a crop stage against air
// temperature (or, in the humidity-primary layout, air temperature against
// relative humidity), a grid, labelled axes and a marker for the current
// reading. The deficit is derived from air temperature plus humidity, leaf
// temperature, or an explicit value; see psychro.Derive.
//
// # Quick Start
//
//	backend, err := raster.Select(raster.PreferAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	c := vpdchart.New(backend)
//	profile := c.Profiles().Lookup("cannabis")
//	img, err := c.Render(ctx, vpdchart.ChartRequest{
//	    AirTemp:  24,
//	    Humidity: vpdchart.Float(60),
//	    Profile:  profile,
//	    Stage:    "veg",
//	})
//
// # Architecture
//
// The library is organized into:
//   - psychro: saturation pressure, deficit formulas, bisection
//   - zone: axis mapping and band polygon tracing
//   - raster: backends (software, GPU) and surfaces
//   - font: font sources, fetching and the shared font cache
//
// Backends are chosen once with raster.Select. The GPU backend is left out
// of builds tagged nogpu; the software backend draws identical charts.
package vpdchart
