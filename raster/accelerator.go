// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// ShapeKind identifies the analytic shapes an accelerator can draw.
type ShapeKind uint32

const (
	// ShapeCircle is a circle or circle outline.
	ShapeCircle ShapeKind = iota

	// ShapeRect is an axis-aligned rectangle or rectangle outline.
	ShapeRect
)

// String returns the shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	default:
		return "unknown"
	}
}

// Shape is one analytic draw in device pixels.
// HalfStroke > 0 draws an outline centered on the shape edge.
type Shape struct {
	Kind       ShapeKind
	CenterX    float64
	CenterY    float64
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
	HalfStroke float64
	Color      RGBA
}

// Stroked reports whether the shape is an outline.
func (s Shape) Stroked() bool { return s.HalfStroke > 0 }

// Target provides pixel buffer access for accelerated output.
// The Data slice must be in premultiplied RGBA format, 4 bytes per pixel,
// laid out row by row with the given Stride.
type Target struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// ShapeAccelerator draws batches of analytic shapes into a Target in order.
//
// An accelerator returning an error leaves the target unchanged; the caller
// then redraws the batch with the CPU implementation.
type ShapeAccelerator interface {
	Name() string
	DrawShapes(t Target, shapes []Shape) error
	Close()
}

// cpuSDF is the CPU ShapeAccelerator. It evaluates the same coverage
// functions as the compute shader.
type cpuSDF struct{}

var _ ShapeAccelerator = cpuSDF{}

func (cpuSDF) Name() string { return "sdf-cpu" }

func (cpuSDF) Close() {}

func (cpuSDF) DrawShapes(t Target, shapes []Shape) error {
	for i := range shapes {
		drawShapeCPU(t, &shapes[i])
	}
	return nil
}

func drawShapeCPU(t Target, s *Shape) {
	var extX, extY float64
	switch s.Kind {
	case ShapeCircle:
		extX, extY = s.Radius, s.Radius
	case ShapeRect:
		extX, extY = s.HalfWidth, s.HalfHeight
	default:
		return
	}

	// Bounding box with stroke width + 1px padding.
	pad := s.HalfStroke + 1
	minX := int(math.Max(0, math.Floor(s.CenterX-extX-pad)))
	maxX := int(math.Min(float64(t.Width-1), math.Ceil(s.CenterX+extX+pad)))
	minY := int(math.Max(0, math.Floor(s.CenterY-extY-pad)))
	maxY := int(math.Min(float64(t.Height-1), math.Ceil(s.CenterY+extY+pad)))

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			if c := shapeCoverage(s, float64(px)+0.5, float64(py)+0.5); c > 0 {
				blendPixel(t, px, py, s.Color, c)
			}
		}
	}
}

func shapeCoverage(s *Shape, px, py float64) float64 {
	switch {
	case s.Kind == ShapeCircle && s.Stroked():
		return CircleCoverage(px, py, s.CenterX, s.CenterY, s.Radius, s.HalfStroke)
	case s.Kind == ShapeCircle:
		return FilledCircleCoverage(px, py, s.CenterX, s.CenterY, s.Radius)
	case s.Stroked():
		return RectCoverage(px, py, s.CenterX, s.CenterY, s.HalfWidth, s.HalfHeight, s.HalfStroke)
	default:
		return FilledRectCoverage(px, py, s.CenterX, s.CenterY, s.HalfWidth, s.HalfHeight)
	}
}

// blendPixel composites a non-premultiplied color at the given coverage over
// a premultiplied destination pixel (source-over).
func blendPixel(t Target, px, py int, c RGBA, coverage float64) {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return
	}
	i := py*t.Stride + px*4
	if i+3 >= len(t.Data) {
		return
	}

	a := c.A * coverage
	if a <= 0 {
		return
	}
	inv := 1 - a
	t.Data[i+0] = uint8(clamp255(c.R*a*255 + float64(t.Data[i+0])*inv + 0.5))
	t.Data[i+1] = uint8(clamp255(c.G*a*255 + float64(t.Data[i+1])*inv + 0.5))
	t.Data[i+2] = uint8(clamp255(c.B*a*255 + float64(t.Data[i+2])*inv + 0.5))
	t.Data[i+3] = uint8(clamp255(a*255 + float64(t.Data[i+3])*inv + 0.5))
}
