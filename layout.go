// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"fmt"
	"math"

	"github.com/gogpu/vpdchart/psychro"
	"github.com/gogpu/vpdchart/raster"
	"github.com/gogpu/vpdchart/zone"
)

// Chart geometry in pixels.
const (
	Width  = 600
	Height = 400

	marginTop    = 40
	marginRight  = 30
	marginBottom = 60
	marginLeft   = 60

	plotWidth  = Width - marginLeft - marginRight
	plotHeight = Height - marginTop - marginBottom
)

// Font sizes in pixels.
const (
	tickFontSize       = 12
	axisTitleFontSize  = 14
	chartTitleFontSize = 16
	zoneLabelSize      = 11
	emphasizedLabel    = 12
)

// Zone fill alpha for context and emphasized bands.
const (
	contextAlpha    = 0x55 / 255.0
	emphasizedAlpha = 0x99 / 255.0
)

var (
	backgroundColor = raster.White
	gridColor       = raster.Hex("#E0E0E0")
	axisColor       = raster.Black
	markerColor     = raster.Red
	markerCore      = raster.White
)

const (
	gridWidth     = 1
	axisWidth     = 2
	markerRadius  = 8
	markerCoreRad = 4
)

// plot is the fixed layout of one orientation.
type plot struct {
	orientation zone.Orientation
	tracer      *zone.Tracer

	xStep, yStep   float64
	xTick, yTick   func(float64) string
	xTitle, yTitle string
}

func newPlot(o zone.Orientation, samples int, refTemp float64) *plot {
	xd, yd := o.Domains()
	x := zone.NewAxis(xd, marginLeft, plotWidth, false)
	y := zone.NewAxis(yd, marginTop, plotHeight, true)

	t := zone.NewTracer(o, x, y)
	t.Samples = samples
	t.RefTemp = refTemp

	p := &plot{orientation: o, tracer: t}
	switch o {
	case zone.HumidityPrimary:
		p.xStep, p.yStep = 20, 5
		p.xTick = func(v float64) string { return fmt.Sprintf("%g%%", v) }
		p.yTick = celsius
		p.xTitle = "Relative Humidity (%)"
		p.yTitle = "Air Temperature (°C)"
	default:
		p.xStep, p.yStep = 5, 0.5
		p.xTick = celsius
		p.yTick = func(v float64) string { return fmt.Sprintf("%.1f", v) }
		p.xTitle = "Air Temperature (°C)"
		p.yTitle = "VPD (kPa)"
	}
	return p
}

func celsius(v float64) string { return fmt.Sprintf("%g°C", v) }

// scene is everything one chart draws besides the fixed furniture.
type scene struct {
	family  string
	profile *CropProfile
	stage   string
	airTemp float64
	reading Reading
}

// stageKeys returns the bands to draw: the requested stage alone, or the
// growth stages.
func (sc *scene) stageKeys() []string {
	if sc.stage != "" {
		return []string{sc.stage}
	}
	return growthStages
}

func (sc *scene) title() string {
	if sc.stage == "" {
		return "VPD Chart - " + sc.profile.Name
	}
	label := sc.stage
	if r, ok := sc.profile.Stage(sc.stage); ok && r.Label != "" {
		label = r.Label
	}
	return fmt.Sprintf("VPD Chart - %s (%s)", sc.profile.Name, label)
}

func (sc *scene) markerLabel() string {
	temps := fmt.Sprintf("%.1f°C", sc.airTemp)
	if sc.reading.LeafTemp != nil {
		temps += fmt.Sprintf(" / %.1f°C", *sc.reading.LeafTemp)
	}
	return fmt.Sprintf("Current: %.2f kPa @ %s", sc.reading.Deficit, temps)
}

// markerPoint returns the reading in domain coordinates.
func (p *plot) markerPoint(sc *scene) zone.Point {
	if p.orientation == zone.HumidityPrimary {
		rh := psychro.HumidityForDeficit(sc.airTemp, sc.reading.Deficit)
		if sc.reading.Humidity != nil {
			rh = *sc.reading.Humidity
		}
		return zone.Point{X: rh, Y: sc.airTemp}
	}
	return zone.Point{X: sc.airTemp, Y: sc.reading.Deficit}
}

// draw paints the chart in back-to-front order.
func (p *plot) draw(s raster.Surface, sc *scene) {
	s.SetFillColor(backgroundColor)
	s.FillRect(0, 0, Width, Height)

	p.drawZones(s, sc)
	p.drawGrid(s)
	p.drawAxes(s, sc.family)
	p.drawTitles(s, sc)
	p.drawMarker(s, sc)
}

func (p *plot) drawZones(s raster.Surface, sc *scene) {
	zones := p.tracer.TraceStages(sc.profile.bands(), sc.stageKeys(), sc.stage)
	for _, z := range zones {
		rng := sc.profile.Stages[z.Key]
		c := raster.Hex(rng.Color)

		alpha, size := contextAlpha, float64(zoneLabelSize)
		if z.Emphasized {
			alpha, size = emphasizedAlpha, emphasizedLabel
		}
		s.SetFillColor(c.WithAlpha(alpha))
		s.FillPolygon(toRaster(z.Outline))

		s.SetFillColor(c)
		if s.SetFont(sc.family, size) {
			s.DrawText(rng.Label, Width-marginRight-5, z.Anchor.Y+4, raster.AlignRight)
		}
	}
}

func (p *plot) drawGrid(s raster.Surface) {
	x, y := p.tracer.X, p.tracer.Y
	s.SetStrokeColor(gridColor)
	s.SetLineWidth(gridWidth)
	for _, v := range y.Ticks(p.yStep) {
		py := y.ToPixel(v)
		s.DrawLine(x.Start, py, x.End(), py)
	}
	for _, v := range x.Ticks(p.xStep) {
		px := x.ToPixel(v)
		s.DrawLine(px, y.Start, px, y.End())
	}
}

func (p *plot) drawAxes(s raster.Surface, family string) {
	x, y := p.tracer.X, p.tracer.Y
	s.SetStrokeColor(axisColor)
	s.SetLineWidth(axisWidth)
	s.StrokePolyline([]raster.Point{
		{X: x.Start, Y: y.Start},
		{X: x.Start, Y: y.End()},
		{X: x.End(), Y: y.End()},
	})

	if !s.SetFont(family, tickFontSize) {
		return
	}
	s.SetFillColor(axisColor)
	for _, v := range y.Ticks(p.yStep) {
		s.DrawText(p.yTick(v), x.Start-10, y.ToPixel(v)+4, raster.AlignRight)
	}
	for _, v := range x.Ticks(p.xStep) {
		s.DrawText(p.xTick(v), x.ToPixel(v), y.End()+20, raster.AlignCenter)
	}
}

func (p *plot) drawTitles(s raster.Surface, sc *scene) {
	if !s.SetFont(sc.family, axisTitleFontSize) {
		return
	}
	s.SetFillColor(axisColor)

	s.Push()
	s.Translate(20, Height/2)
	s.Rotate(-math.Pi / 2)
	s.DrawText(p.yTitle, 0, 0, raster.AlignCenter)
	s.Pop()

	s.DrawText(p.xTitle, Width/2, Height-10, raster.AlignCenter)

	s.SetFont(sc.family, chartTitleFontSize)
	s.DrawText(sc.title(), Width/2, 25, raster.AlignCenter)
}

// drawMarker draws the current reading. Readings outside the chart domain
// are not drawn.
func (p *plot) drawMarker(s raster.Surface, sc *scene) {
	pt := p.markerPoint(sc)
	if !p.tracer.InDomain(pt) {
		return
	}
	px := p.tracer.MarkerPixel(pt)

	s.SetFillColor(markerColor)
	s.FillArc(px.X, px.Y, markerRadius, 0, 2*math.Pi)
	s.SetFillColor(markerCore)
	s.FillArc(px.X, px.Y, markerCoreRad, 0, 2*math.Pi)

	if s.SetFont(sc.family, tickFontSize) {
		s.SetFillColor(axisColor)
		s.DrawText(sc.markerLabel(), marginLeft+10, marginTop+15, raster.AlignLeft)
	}
}

func toRaster(pg zone.Polygon) []raster.Point {
	pts := make([]raster.Point, len(pg))
	for i, p := range pg {
		pts[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return pts
}
