// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package zone maps chart domain values to pixels and traces the polygon
// that encloses a deficit band.
//
// A chart has one of two layouts. In the temperature-primary layout the
// horizontal axis is air temperature and the vertical axis is the deficit;
// a band is bounded by two constant-humidity curves. In the
// humidity-primary layout the horizontal axis is relative humidity and the
// vertical axis is air temperature; the boundaries are found numerically
// with psychro.TemperatureForDeficit.
//
// The tracer always emits the high boundary forward and the low boundary in
// reverse, which keeps the outline a simple polygon.
package zone

import "fmt"

// Point is a 2D point. Depending on context it is in domain units or pixels.
type Point struct {
	X, Y float64
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min, Max float64
}

// Mid returns the midpoint of the interval.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Chart domains.
var (
	TempDomain     = Range{Min: 15, Max: 35} // °C
	DeficitDomain  = Range{Min: 0, Max: 2}   // kPa
	HumidityDomain = Range{Min: 0, Max: 100} // %
)

// Orientation selects which quantities form the horizontal and vertical axes.
type Orientation uint8

const (
	// TempPrimary plots deficit (y) against air temperature (x).
	TempPrimary Orientation = iota

	// HumidityPrimary plots air temperature (y) against relative humidity (x).
	HumidityPrimary
)

// String returns the orientation name used by configuration and the CLI.
func (o Orientation) String() string {
	switch o {
	case TempPrimary:
		return "temp-primary"
	case HumidityPrimary:
		return "humidity-primary"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}

// ParseOrientation parses the names returned by Orientation.String.
// The empty string selects TempPrimary.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "temp-primary", "temp":
		return TempPrimary, nil
	case "humidity-primary", "humidity", "rh":
		return HumidityPrimary, nil
	default:
		return 0, fmt.Errorf("zone: unknown orientation %q", s)
	}
}

// Domains returns the horizontal and vertical domains of the layout.
func (o Orientation) Domains() (x, y Range) {
	if o == HumidityPrimary {
		return HumidityDomain, TempDomain
	}
	return TempDomain, DeficitDomain
}
