// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// Stroke expansion produces independent polygons that are filled together.
// The coverage accumulator clamps overlapping regions only when they share a
// winding direction, so every piece is emitted counter-clockwise in device
// space (positive signed area).

// miterLimit matches the HTML canvas default.
const miterLimit = 10

// Arc flattening bounds.
const (
	minArcSegments = 8
	maxArcSegments = 256
)

// signedArea returns twice the signed area of a polygon.
func signedArea(pts []Point) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a
}

// oriented returns pts in positive winding, reversing a copy when needed.
func oriented(pts []Point) []Point {
	if signedArea(pts) >= 0 {
		return pts
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// strokePieces expands a polyline into quads (butt caps) and miter joins.
func strokePieces(pts []Point, halfWidth float64, closed bool) [][]Point {
	pts = dedupe(pts)
	if halfWidth <= 0 || len(pts) < 2 {
		return nil
	}
	if closed && len(pts) > 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	nseg := len(pts) - 1
	if closed && len(pts) > 2 {
		nseg = len(pts)
	}

	pieces := make([][]Point, 0, 2*nseg)
	for i := 0; i < nseg; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n := normal(a, b, halfWidth)
		pieces = append(pieces, oriented([]Point{
			{a.X + n.X, a.Y + n.Y},
			{b.X + n.X, b.Y + n.Y},
			{b.X - n.X, b.Y - n.Y},
			{a.X - n.X, a.Y - n.Y},
		}))
	}

	joins := func(prev, v, next Point) {
		if j := miterJoin(prev, v, next, halfWidth); j != nil {
			pieces = append(pieces, oriented(j))
		}
	}
	if closed && len(pts) > 2 {
		for i := range pts {
			joins(pts[(i+len(pts)-1)%len(pts)], pts[i], pts[(i+1)%len(pts)])
		}
	} else {
		for i := 1; i < len(pts)-1; i++ {
			joins(pts[i-1], pts[i], pts[i+1])
		}
	}
	return pieces
}

// miterJoin returns the wedge filling the outer gap at v, or nil when the
// segments are collinear. Joins longer than miterLimit are beveled.
func miterJoin(prev, v, next Point, halfWidth float64) []Point {
	d1x, d1y := v.X-prev.X, v.Y-prev.Y
	d2x, d2y := next.X-v.X, next.Y-v.Y
	cross := d1x*d2y - d1y*d2x
	l1, l2 := math.Hypot(d1x, d1y), math.Hypot(d2x, d2y)
	if math.Abs(cross) < 1e-9*l1*l2 {
		return nil
	}

	n1 := normal(prev, v, halfWidth)
	n2 := normal(v, next, halfWidth)
	if cross > 0 {
		n1 = Point{-n1.X, -n1.Y}
		n2 = Point{-n2.X, -n2.Y}
	}
	p1 := Point{v.X + n1.X, v.Y + n1.Y}
	p2 := Point{v.X + n2.X, v.Y + n2.Y}

	mx, my := n1.X+n2.X, n1.Y+n2.Y
	ml := math.Hypot(mx, my)
	if ml == 0 {
		return []Point{v, p1, p2}
	}
	mx, my = mx/ml, my/ml
	cosHalf := (mx*n1.X + my*n1.Y) / halfWidth
	if cosHalf <= 0 || 1/cosHalf > miterLimit {
		return []Point{v, p1, p2}
	}
	tip := Point{v.X + mx*halfWidth/cosHalf, v.Y + my*halfWidth/cosHalf}
	return []Point{v, p1, tip, p2}
}

// normal returns the left normal of a→b scaled to length.
func normal(a, b Point, length float64) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Point{}
	}
	return Point{-dy / l * length, dx / l * length}
}

// dedupe drops consecutive duplicate points.
func dedupe(pts []Point) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// arcPoints flattens the arc from start to end (radians, clockwise in
// image space for increasing angles).
func arcPoints(cx, cy, r, start, end float64) []Point {
	sweep := end - start
	if math.Abs(sweep) > 2*math.Pi {
		sweep = math.Copysign(2*math.Pi, sweep)
	}
	n := int(math.Ceil(math.Abs(sweep) * math.Sqrt(math.Max(r, 0)) * 4))
	n = min(max(n, minArcSegments), maxArcSegments)

	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(start + sweep*float64(i)/float64(n))
		pts[i] = Point{cx + r*cos, cy + r*sin}
	}
	return pts
}

// isFullCircle reports whether the sweep covers the whole circle.
func isFullCircle(start, end float64) bool {
	return math.Abs(end-start) >= 2*math.Pi-1e-9
}

func transformAll(m Matrix, pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.TransformPoint(p)
	}
	return out
}
