// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestSmoothstepCoverage(t *testing.T) {
	tests := []struct {
		sdf  float64
		want float64
	}{
		{-1, 1},
		{-0.7, 1},
		{0, 0.5},
		{0.7, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := smoothstepCoverage(tt.sdf); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("smoothstepCoverage(%v) = %v, want %v", tt.sdf, got, tt.want)
		}
	}
}

func TestFilledRectCoverage(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   float64
	}{
		{"inside", 5.5, 5.5, 1},
		{"half column", 3, 5.5, 0.5},
		{"quarter corner", 3, 3, 0.25},
		{"outside", 0.5, 0.5, 0},
	}
	// Rectangle from (3,3) to (13,13).
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilledRectCoverage(tt.px, tt.py, 8, 8, 5, 5)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("coverage = %v, want %v", got, tt.want)
			}
		})
	}
	if got := FilledRectCoverage(0.5, 0.5, 0, 0, 0, 5); got != 0 {
		t.Errorf("degenerate rect coverage = %v", got)
	}
}

func TestRectCoverageRing(t *testing.T) {
	// 1px stroke centered on x=3: covers [2.5, 3.5].
	if got := RectCoverage(2.5, 8.5, 8, 8, 5, 5, 0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("edge pixel coverage = %v, want 0.5", got)
	}
	if got := RectCoverage(8.5, 8.5, 8, 8, 5, 5, 0.5); got != 0 {
		t.Errorf("interior coverage = %v, want 0", got)
	}
}

func TestCircleCoverage(t *testing.T) {
	if got := FilledCircleCoverage(10, 10, 10, 10, 5); got != 1 {
		t.Errorf("center coverage = %v", got)
	}
	if got := FilledCircleCoverage(15, 10, 10, 10, 5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("edge coverage = %v, want 0.5", got)
	}
	if got := CircleCoverage(10, 10, 10, 10, 5, 1); got != 0 {
		t.Errorf("ring center coverage = %v", got)
	}
	if got := CircleCoverage(15, 10, 10, 10, 5, 1); got != 1 {
		t.Errorf("ring edge coverage = %v", got)
	}
}

func TestBlendPixel(t *testing.T) {
	tgt := Target{Data: make([]uint8, 4*4), Width: 2, Height: 2, Stride: 8}
	blendPixel(tgt, 1, 1, Red, 1)
	if got := tgt.Data[12:16]; got[0] != 255 || got[3] != 255 {
		t.Errorf("opaque blend = %v", got)
	}
	blendPixel(tgt, 1, 1, RGB(0, 0, 1), 0.5)
	if got := tgt.Data[12:16]; got[0] != 128 || got[2] != 128 || got[3] != 255 {
		t.Errorf("half blend = %v, want [128 0 128 255]", got)
	}
	// Out of bounds is ignored.
	blendPixel(tgt, 2, 0, Red, 1)
	blendPixel(tgt, -1, 0, Red, 1)
}

// failingAccelerator simulates a device that rejects every batch.
type failingAccelerator struct{ calls int }

func (a *failingAccelerator) Name() string { return "failing" }
func (a *failingAccelerator) Close()       {}
func (a *failingAccelerator) DrawShapes(Target, []Shape) error {
	a.calls++
	return errors.New("device lost")
}

func TestAcceleratorFailureFallsBackToCPU(t *testing.T) {
	accel := &failingAccelerator{}
	c, err := newCanvas(40, 40, nil, accel)
	if err != nil {
		t.Fatal(err)
	}
	c.SetFillColor(Red)
	c.FillRect(5, 5, 10, 10)
	c.FillArc(30, 30, 5, 0, 2*math.Pi)
	img := c.Image().(*image.RGBA)

	if accel.calls != 1 {
		t.Errorf("accelerator calls = %d, want one batch", accel.calls)
	}
	if got := img.RGBAAt(10, 10); got.R != 255 || got.A != 255 {
		t.Errorf("rect pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(30, 30); got.R != 255 || got.A != 255 {
		t.Errorf("circle pixel = %v, want opaque red", got)
	}
}

// The accelerated rectangle path and the vector path agree on coverage.
func TestRectAcceleratorMatchesVector(t *testing.T) {
	a, err := newCanvas(30, 30, nil, cpuSDF{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := newCanvas(30, 30, nil, cpuSDF{})
	if err != nil {
		t.Fatal(err)
	}
	a.SetFillColor(Black)
	b.SetFillColor(Black)
	a.FillRect(4.25, 5.75, 15.5, 10.25)
	b.FillPolygon(rectPoints(4.25, 5.75, 15.5, 10.25))

	ia, ib := a.Image().(*image.RGBA), b.Image().(*image.RGBA)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			da, db := int(ia.RGBAAt(x, y).A), int(ib.RGBAAt(x, y).A)
			if d := da - db; d > 2 || d < -2 {
				t.Fatalf("pixel (%d,%d): accelerated alpha %d, vector alpha %d", x, y, da, db)
			}
		}
	}
}

func TestShapeKindString(t *testing.T) {
	if ShapeCircle.String() != "circle" || ShapeRect.String() != "rect" || ShapeKind(9).String() != "unknown" {
		t.Error("unexpected ShapeKind names")
	}
}
