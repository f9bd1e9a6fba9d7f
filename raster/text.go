// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// HarfbuzzShaper has internal mutable state and is NOT safe for concurrent
// use, so shapers are pooled.
var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// positionedGlyph is a shaped glyph relative to the run origin, in pixels.
type positionedGlyph struct {
	id   sfnt.GlyphIndex
	x, y float64
}

// shapeRun shapes s left to right and returns the glyphs and total advance.
func shapeRun(f *Font, s string, size float64) ([]positionedGlyph, float64) {
	runes := []rune(s)
	if len(runes) == 0 || f == nil || size <= 0 {
		return nil, 0
	}

	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		// font.Face is NOT safe for concurrent use; the parsed Font is.
		Face:     gotext.NewFace(f.shaping),
		Size:     floatToFixed(size),
		Script:   language.Latin,
		Language: language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(in)
	shaperPool.Put(hb)

	glyphs := make([]positionedGlyph, 0, len(out.Glyphs))
	var pen float64
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, positionedGlyph{
			id: sfnt.GlyphIndex(g.GlyphID),
			x:  pen + fixedToFloat(g.XOffset),
			y:  -fixedToFloat(g.YOffset),
		})
		pen += fixedToFloat(g.Advance)
	}
	return glyphs, pen
}

func (c *canvas) SetFont(family string, size float64) bool {
	if c.fonts == nil || size <= 0 || math.IsInf(size, 0) || math.IsNaN(size) {
		return false
	}
	f, ok := c.fonts.LookupFont(family)
	if !ok {
		return false
	}
	c.state.font = f
	c.state.fontSize = size
	return true
}

func (c *canvas) MeasureText(s string) float64 {
	if c.state.font == nil || s == "" {
		return 0
	}
	_, adv := shapedRuns.shape(runKey{font: c.state.font, size: c.state.fontSize, text: s})
	return adv
}

func (c *canvas) DrawText(s string, x, y float64, align Align) {
	if c.closed || s == "" {
		return
	}
	f := c.state.font
	if f == nil {
		slogger().Debug("raster: text skipped, no font", "text", s)
		return
	}

	glyphs, adv := shapedRuns.shape(runKey{font: f, size: c.state.fontSize, text: s})
	switch align {
	case AlignCenter:
		x -= adv / 2
	case AlignRight:
		x -= adv
	}

	var (
		buf   sfnt.Buffer
		polys [][]Point
	)
	ppem := floatToFixed(c.state.fontSize)
	m := c.state.matrix
	for _, g := range glyphs {
		segs, err := f.outlines.LoadGlyph(&buf, g.id, ppem, nil)
		if err != nil {
			slogger().Debug("raster: glyph load failed", "glyph", g.id, "err", err)
			continue
		}
		ox, oy := x+g.x, y+g.y
		polys = append(polys, glyphContours(segs, func(p fixed.Point26_6) Point {
			return m.TransformPoint(Point{ox + fixedToFloat(p.X), oy + fixedToFloat(p.Y)})
		})...)
	}
	c.fillDevice(polys, c.state.fill)
}

// glyphCurveSteps is the number of line segments per Bézier segment.
const glyphCurveSteps = 6

// glyphContours flattens glyph segments (y down) into closed device polygons.
func glyphContours(segs sfnt.Segments, at func(fixed.Point26_6) Point) [][]Point {
	var (
		polys [][]Point
		cur   []Point
	)
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if len(cur) > 2 {
				polys = append(polys, cur)
			}
			cur = []Point{at(seg.Args[0])}
		case sfnt.SegmentOpLineTo:
			cur = append(cur, at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			if len(cur) == 0 {
				continue
			}
			p0, p1, p2 := cur[len(cur)-1], at(seg.Args[0]), at(seg.Args[1])
			for i := 1; i <= glyphCurveSteps; i++ {
				t := float64(i) / glyphCurveSteps
				u := 1 - t
				cur = append(cur, Point{
					X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
					Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
				})
			}
		case sfnt.SegmentOpCubeTo:
			if len(cur) == 0 {
				continue
			}
			p0, p1, p2, p3 := cur[len(cur)-1], at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2])
			for i := 1; i <= glyphCurveSteps; i++ {
				t := float64(i) / glyphCurveSteps
				u := 1 - t
				cur = append(cur, Point{
					X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
					Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
				})
			}
		}
	}
	if len(cur) > 2 {
		polys = append(polys, cur)
	}
	return polys
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
