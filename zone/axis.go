// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package zone

// Axis is a linear mapping between a domain interval and a pixel span.
//
// Start is the pixel coordinate of Min, or of Max when Inverted is set
// (vertical axes grow downward in image space). Values outside the domain
// map outside the span; the mapper never clamps.
type Axis struct {
	Min, Max      float64
	Start, Extent float64
	Inverted      bool
}

// NewAxis returns an axis mapping r onto [start, start+extent].
func NewAxis(r Range, start, extent float64, inverted bool) Axis {
	return Axis{Min: r.Min, Max: r.Max, Start: start, Extent: extent, Inverted: inverted}
}

// Domain returns the domain interval.
func (a Axis) Domain() Range { return Range{Min: a.Min, Max: a.Max} }

// End returns the far pixel coordinate of the span.
func (a Axis) End() float64 { return a.Start + a.Extent }

// ToPixel maps a domain value to a pixel coordinate.
func (a Axis) ToPixel(v float64) float64 {
	f := (v - a.Min) / (a.Max - a.Min)
	if a.Inverted {
		f = 1 - f
	}
	return a.Start + f*a.Extent
}

// FromPixel is the inverse of ToPixel.
func (a Axis) FromPixel(p float64) float64 {
	f := (p - a.Start) / a.Extent
	if a.Inverted {
		f = 1 - f
	}
	return a.Min + f*(a.Max-a.Min)
}

// Contains reports whether v lies within the domain.
func (a Axis) Contains(v float64) bool {
	return v >= a.Min && v <= a.Max
}

// Ticks returns the domain values Min, Min+step, ... up to Max inclusive.
// Accumulated error is avoided by computing each tick from its index.
func (a Axis) Ticks(step float64) []float64 {
	if step <= 0 || a.Max < a.Min {
		return nil
	}
	n := int((a.Max-a.Min)/step + 1e-9)
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, a.Min+float64(i)*step)
	}
	return ticks
}
