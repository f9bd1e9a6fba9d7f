// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package zone

// Polygon is a closed outline; the last point connects back to the first.
type Polygon []Point

// Contains reports whether p is inside the polygon using the even-odd rule.
func (pg Polygon) Contains(p Point) bool {
	inside := false
	n := len(pg)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SelfIntersects reports whether any two non-adjacent edges cross properly.
// Edges that only touch or overlap collinearly do not count.
func (pg Polygon) SelfIntersects() bool {
	n := len(pg)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := pg[i], pg[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // shares pg[0]
			}
			if segmentsCross(a1, a2, pg[j], pg[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (pg Polygon) Bounds() (lo, hi Point) {
	if len(pg) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pg[0], pg[0]
	for _, p := range pg[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

func segmentsCross(p1, p2, q1, q2 Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
