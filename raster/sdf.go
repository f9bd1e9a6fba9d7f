// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// sdfAntialiasWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const sdfAntialiasWidth = 0.7

// FilledCircleCoverage returns the anti-aliased coverage in [0, 1] of the
// pixel centered at (px, py) by a filled circle.
func FilledCircleCoverage(px, py, cx, cy, radius float64) float64 {
	return smoothstepCoverage(math.Hypot(px-cx, py-cy) - radius)
}

// CircleCoverage is FilledCircleCoverage for a circle outline of the given
// half stroke width centered on radius.
func CircleCoverage(px, py, cx, cy, radius, halfStroke float64) float64 {
	return smoothstepCoverage(math.Abs(math.Hypot(px-cx, py-cy)-radius) - halfStroke)
}

// FilledRectCoverage returns the exact area of the unit pixel centered at
// (px, py) covered by the axis-aligned rectangle with the given center and
// half extents.
func FilledRectCoverage(px, py, cx, cy, halfW, halfH float64) float64 {
	if halfW <= 0 || halfH <= 0 {
		return 0
	}
	return spanOverlap(px, cx-halfW, cx+halfW) * spanOverlap(py, cy-halfH, cy+halfH)
}

// RectCoverage is FilledRectCoverage for a rectangle outline whose stroke
// is centered on the rectangle edges.
func RectCoverage(px, py, cx, cy, halfW, halfH, halfStroke float64) float64 {
	outer := FilledRectCoverage(px, py, cx, cy, halfW+halfStroke, halfH+halfStroke)
	inner := FilledRectCoverage(px, py, cx, cy, halfW-halfStroke, halfH-halfStroke)
	return outer - inner
}

// spanOverlap returns the length of [p-0.5, p+0.5] ∩ [lo, hi].
func spanOverlap(p, lo, hi float64) float64 {
	return math.Max(0, math.Min(p+0.5, hi)-math.Max(p-0.5, lo))
}

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -afwidth => 1.0 (fully inside)
// sdf > +afwidth => 0.0 (fully outside)
// Otherwise       => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= sdfAntialiasWidth {
		return 0
	}
	if sdf <= -sdfAntialiasWidth {
		return 1
	}
	t := (sdf + sdfAntialiasWidth) / (2 * sdfAntialiasWidth)
	return 1 - (t * t * (3 - 2*t))
}
