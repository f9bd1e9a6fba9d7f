// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// drawState is the part of a canvas saved by Push.
type drawState struct {
	fill      RGBA
	stroke    RGBA
	lineWidth float64
	matrix    Matrix
	font      *Font
	fontSize  float64
}

// canvas is the Surface shared by all backends. Paths and text are rasterized
// on the CPU with x/image/vector; rectangles and circles under a translation
// are batched for the backend's ShapeAccelerator. The batch is flushed before
// every CPU draw so painter's order is preserved.
type canvas struct {
	img     *image.RGBA
	fonts   fontLookup
	accel   ShapeAccelerator
	state   drawState
	stack   []drawState
	rast    vector.Rasterizer
	pending []Shape
	closed  bool
}

var _ Surface = (*canvas)(nil)

func newCanvas(width, height int, fonts fontLookup, accel ShapeAccelerator) (*canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if accel == nil {
		accel = cpuSDF{}
	}
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		fonts: fonts,
		accel: accel,
		state: drawState{
			fill:      Black,
			stroke:    Black,
			lineWidth: 1,
			matrix:    Identity(),
		},
	}, nil
}

func (c *canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *canvas) Height() int { return c.img.Bounds().Dy() }

func (c *canvas) SetFillColor(col RGBA)   { c.state.fill = col }
func (c *canvas) SetStrokeColor(col RGBA) { c.state.stroke = col }

func (c *canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		c.state.lineWidth = w
	}
}

func (c *canvas) Push() {
	c.stack = append(c.stack, c.state)
}

func (c *canvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *canvas) Translate(x, y float64) {
	c.state.matrix = c.state.matrix.Multiply(Translate(x, y))
}

func (c *canvas) Rotate(angle float64) {
	c.state.matrix = c.state.matrix.Multiply(Rotate(angle))
}

// lineScale is the factor the current transform applies to line widths.
func (c *canvas) lineScale() float64 {
	m := c.state.matrix
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func (c *canvas) FillRect(x, y, w, h float64) {
	if c.closed || w == 0 || h == 0 {
		return
	}
	if c.state.matrix.IsTranslation() {
		p := c.state.matrix.TransformPoint(Point{x + w/2, y + h/2})
		c.queue(Shape{
			Kind:       ShapeRect,
			CenterX:    p.X,
			CenterY:    p.Y,
			HalfWidth:  math.Abs(w) / 2,
			HalfHeight: math.Abs(h) / 2,
			Color:      c.state.fill,
		})
		return
	}
	c.fillDevice([][]Point{oriented(transformAll(c.state.matrix, rectPoints(x, y, w, h)))}, c.state.fill)
}

func (c *canvas) StrokeRect(x, y, w, h float64) {
	if c.closed {
		return
	}
	if c.state.matrix.IsTranslation() {
		p := c.state.matrix.TransformPoint(Point{x + w/2, y + h/2})
		c.queue(Shape{
			Kind:       ShapeRect,
			CenterX:    p.X,
			CenterY:    p.Y,
			HalfWidth:  math.Abs(w) / 2,
			HalfHeight: math.Abs(h) / 2,
			HalfStroke: c.state.lineWidth / 2,
			Color:      c.state.stroke,
		})
		return
	}
	c.strokeDevice(rectPoints(x, y, w, h), true)
}

func (c *canvas) DrawLine(x1, y1, x2, y2 float64) {
	c.StrokePolyline([]Point{{x1, y1}, {x2, y2}})
}

func (c *canvas) StrokePolyline(pts []Point) {
	if c.closed {
		return
	}
	c.strokeDevice(pts, false)
}

func (c *canvas) StrokePolygon(pts []Point) {
	if c.closed {
		return
	}
	c.strokeDevice(pts, true)
}

func (c *canvas) FillPolygon(pts []Point) {
	if c.closed || len(pts) < 3 {
		return
	}
	c.fillDevice([][]Point{transformAll(c.state.matrix, pts)}, c.state.fill)
}

func (c *canvas) FillArc(cx, cy, r, start, end float64) {
	if c.closed || r <= 0 {
		return
	}
	if isFullCircle(start, end) && c.state.matrix.IsTranslation() {
		p := c.state.matrix.TransformPoint(Point{cx, cy})
		c.queue(Shape{Kind: ShapeCircle, CenterX: p.X, CenterY: p.Y, Radius: r, Color: c.state.fill})
		return
	}
	c.fillDevice([][]Point{transformAll(c.state.matrix, arcPoints(cx, cy, r, start, end))}, c.state.fill)
}

func (c *canvas) StrokeArc(cx, cy, r, start, end float64) {
	if c.closed || r <= 0 {
		return
	}
	full := isFullCircle(start, end)
	if full && c.state.matrix.IsTranslation() {
		p := c.state.matrix.TransformPoint(Point{cx, cy})
		c.queue(Shape{
			Kind:       ShapeCircle,
			CenterX:    p.X,
			CenterY:    p.Y,
			Radius:     r,
			HalfStroke: c.state.lineWidth / 2,
			Color:      c.state.stroke,
		})
		return
	}
	c.strokeDevice(arcPoints(cx, cy, r, start, end), full)
}

// strokeDevice expands a path in user space and fills the pieces in device space.
func (c *canvas) strokeDevice(pts []Point, closed bool) {
	pieces := strokePieces(transformAll(c.state.matrix, pts), c.state.lineWidth*c.lineScale()/2, closed)
	c.fillDevice(pieces, c.state.stroke)
}

func (c *canvas) queue(s Shape) {
	if s.Color.A <= 0 {
		return
	}
	c.pending = append(c.pending, s)
}

// flush draws the pending shape batch, falling back to the CPU when the
// accelerator fails.
func (c *canvas) flush() {
	if len(c.pending) == 0 {
		return
	}
	t := Target{Data: c.img.Pix, Width: c.Width(), Height: c.Height(), Stride: c.img.Stride}
	if err := c.accel.DrawShapes(t, c.pending); err != nil {
		slogger().Warn("raster: accelerated draw failed, using CPU",
			"accelerator", c.accel.Name(), "shapes", len(c.pending), "err", err)
		_ = cpuSDF{}.DrawShapes(t, c.pending)
	}
	c.pending = c.pending[:0]
}

// fillDevice fills the union of device-space polygons with col.
func (c *canvas) fillDevice(polys [][]Point, col RGBA) {
	if len(polys) == 0 || col.A <= 0 {
		return
	}
	c.flush()

	r, ok := c.deviceBounds(polys)
	if !ok {
		return
	}
	c.rast.Reset(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		c.rast.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			c.rast.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		c.rast.ClosePath()
	}
	c.rast.Draw(c.img, r, image.NewUniform(col.Color()), image.Point{})
}

// deviceBounds returns the pixel rectangle covering polys, clipped to the image.
func (c *canvas) deviceBounds(polys [][]Point) (image.Rectangle, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 0) || math.IsNaN(minX) || math.IsNaN(minY) || math.IsNaN(maxX) || math.IsNaN(maxY) {
		return image.Rectangle{}, false
	}
	r := image.Rect(
		int(math.Floor(math.Max(minX, -1))), int(math.Floor(math.Max(minY, -1))),
		int(math.Ceil(math.Min(maxX, float64(c.Width()+1)))), int(math.Ceil(math.Min(maxY, float64(c.Height()+1)))),
	).Intersect(c.img.Bounds())
	return r, !r.Empty()
}

func (c *canvas) Encode(w io.Writer, f Format) error {
	if c.closed {
		return ErrSurfaceClosed
	}
	c.flush()
	return encodeImage(w, c.img, f)
}

func (c *canvas) Image() image.Image {
	c.flush()
	return c.img
}

func (c *canvas) Close() error {
	c.closed = true
	c.pending = nil
	c.stack = nil
	return nil
}

func rectPoints(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
