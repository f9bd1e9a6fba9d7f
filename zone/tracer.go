// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package zone

import "github.com/gogpu/vpdchart/psychro"

// Tracer defaults.
const (
	DefaultSamples = 100
	DefaultRefTemp = 24.0 // °C at which band limits are converted to humidity
)

// Zone is a traced deficit band.
type Zone struct {
	Key        string
	Range      Range   // deficit band, kPa
	Outline    Polygon // pixel space, high boundary forward then low reversed
	High, Low  []Point // boundary curves in domain space, in sample order
	Anchor     Point   // pixel-space label anchor derived from the band midpoint
	Emphasized bool
}

// Tracer turns deficit bands into polygons for one chart layout.
type Tracer struct {
	X, Y        Axis
	Orientation Orientation
	Samples     int     // sample steps along the horizontal axis; < 1 means DefaultSamples
	RefTemp     float64 // used by TempPrimary only
}

// NewTracer returns a tracer with the default sample count and reference
// temperature.
func NewTracer(o Orientation, x, y Axis) *Tracer {
	return &Tracer{
		X:           x,
		Y:           y,
		Orientation: o,
		Samples:     DefaultSamples,
		RefTemp:     DefaultRefTemp,
	}
}

func (t *Tracer) samples() int {
	if t.Samples < 1 {
		return DefaultSamples
	}
	return t.Samples
}

// Trace returns the zone enclosing deficits in rng.
func (t *Tracer) Trace(rng Range, emphasized bool) Zone {
	var z Zone
	switch t.Orientation {
	case HumidityPrimary:
		z = t.traceHumidity(rng)
	default:
		z = t.traceTemp(rng)
	}
	z.Range = rng
	z.Emphasized = emphasized

	z.Outline = make(Polygon, 0, len(z.High)+len(z.Low))
	for _, p := range z.High {
		z.Outline = append(z.Outline, t.toPixel(p))
	}
	for i := len(z.Low) - 1; i >= 0; i-- {
		z.Outline = append(z.Outline, t.toPixel(z.Low[i]))
	}
	return z
}

// TraceStages traces the bands named by keys, in order. Keys missing from
// bands are skipped. The zone whose key equals emphasized is marked.
func (t *Tracer) TraceStages(bands map[string]Range, keys []string, emphasized string) []Zone {
	zones := make([]Zone, 0, len(keys))
	for _, k := range keys {
		rng, ok := bands[k]
		if !ok {
			continue
		}
		z := t.Trace(rng, k == emphasized)
		z.Key = k
		zones = append(zones, z)
	}
	return zones
}

// MarkerPixel maps a domain point to pixels.
func (t *Tracer) MarkerPixel(p Point) Point { return t.toPixel(p) }

// InDomain reports whether p lies inside both axis domains.
func (t *Tracer) InDomain(p Point) bool {
	return t.X.Contains(p.X) && t.Y.Contains(p.Y)
}

func (t *Tracer) toPixel(p Point) Point {
	return Point{X: t.X.ToPixel(p.X), Y: t.Y.ToPixel(p.Y)}
}

// sample returns the i-th of n+1 uniformly spaced values across the
// horizontal domain.
func (t *Tracer) sample(i, n int) float64 {
	return t.X.Min + (float64(i)/float64(n))*(t.X.Max-t.X.Min)
}

// traceTemp follows two constant-humidity curves. The humidities are the
// ones that produce the band limits at RefTemp, so the band is exact at the
// reference temperature and widens with temperature elsewhere.
func (t *Tracer) traceTemp(rng Range) Zone {
	n := t.samples()
	rhLow := psychro.HumidityForDeficit(t.RefTemp, rng.Max)
	rhHigh := psychro.HumidityForDeficit(t.RefTemp, rng.Min)

	z := Zone{
		High: make([]Point, 0, n+1),
		Low:  make([]Point, 0, n+1),
	}
	for i := 0; i <= n; i++ {
		temp := t.sample(i, n)
		z.High = append(z.High, Point{X: temp, Y: psychro.DeficitFromHumidity(temp, rhLow)})
		z.Low = append(z.Low, Point{X: temp, Y: psychro.DeficitFromHumidity(temp, rhHigh)})
	}

	midTemp := t.X.Domain().Mid()
	midDeficit := psychro.DeficitFromHumidity(midTemp, (rhLow+rhHigh)/2)
	z.Anchor = t.toPixel(Point{X: midTemp, Y: midDeficit})
	return z
}

// traceHumidity solves, for every humidity sample, the temperatures at which
// the band limits are reached.
func (t *Tracer) traceHumidity(rng Range) Zone {
	n := t.samples()
	lo, hi := t.Y.Min, t.Y.Max

	z := Zone{
		High: make([]Point, 0, n+1),
		Low:  make([]Point, 0, n+1),
	}
	for i := 0; i <= n; i++ {
		rh := t.sample(i, n)
		tHigh := psychro.TemperatureForDeficit(rng.Max, rh, lo, hi)
		tLow := psychro.TemperatureForDeficit(rng.Min, rh, lo, hi)
		// Both searches saturate near the bracket edge at high humidity,
		// where bisection error could otherwise order them the wrong way.
		tLow = min(tLow, tHigh)
		z.High = append(z.High, Point{X: rh, Y: tHigh})
		z.Low = append(z.Low, Point{X: rh, Y: tLow})
	}

	midRH := t.X.Domain().Mid()
	midTemp := psychro.TemperatureForDeficit(rng.Mid(), midRH, lo, hi)
	z.Anchor = t.toPixel(Point{X: midRH, Y: midTemp})
	return z
}
