// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"io"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the pure Go backend.
	BackendSoftware = "software"

	// BackendGPU is the name of the wgpu-accelerated backend.
	BackendGPU = "gpu"
)

// Align is the horizontal anchoring of text relative to its x coordinate.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Backend creates surfaces and owns the fonts available to them.
//
// Init must be called before NewSurface. A Backend is safe for concurrent
// use once initialized.
type Backend interface {
	// Name returns the backend identifier ("software", "gpu").
	Name() string

	// Init acquires backend resources. It fails with ErrBackendNotAvailable
	// when the host cannot run the backend.
	Init() error

	// Close releases backend resources. Surfaces must be closed first.
	Close()

	// NewSurface returns a transparent surface of the given size.
	NewSurface(width, height int) (Surface, error)

	// RegisterFont makes f available under family. A later registration
	// under the same family replaces the earlier one.
	RegisterFont(family string, f *Font)

	// LookupFont returns the font registered under family.
	LookupFont(family string) (*Font, bool)
}

// Surface is a mutable raster owned by one render call.
//
// Coordinates are in pixels with the origin at the top-left corner and pass
// through the current transform. Angles are in radians.
type Surface interface {
	Width() int
	Height() int

	SetFillColor(c RGBA)
	SetStrokeColor(c RGBA)
	SetLineWidth(w float64)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	DrawLine(x1, y1, x2, y2 float64)
	StrokePolyline(pts []Point)
	FillArc(cx, cy, r, start, end float64)
	StrokeArc(cx, cy, r, start, end float64)
	FillPolygon(pts []Point)
	StrokePolygon(pts []Point)

	// SetFont selects a registered font family and pixel size. It reports
	// false, leaving the current font unchanged, when the family is unknown.
	SetFont(family string, size float64) bool

	// DrawText draws s with its baseline at y. Without a font nothing is drawn.
	DrawText(s string, x, y float64, align Align)

	// MeasureText returns the advance width of s in the current font.
	MeasureText(s string) float64

	// Push saves the drawing state; Pop restores the last saved state.
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)

	// Encode writes the surface in the requested format. It returns once
	// all pending drawing has completed and the bytes are written.
	Encode(w io.Writer, f Format) error

	// Image returns the current pixels.
	Image() image.Image

	// Close releases the surface. Further drawing is ignored.
	Close() error
}

// fontLookup is the part of a Backend a surface needs.
type fontLookup interface {
	LookupFont(family string) (*Font, bool)
}
