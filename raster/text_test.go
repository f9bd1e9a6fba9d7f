// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"image"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func mustParseFont(t *testing.T, data []byte) *Font {
	t.Helper()
	f, err := ParseFont(data)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return f
}

// inkBounds returns the bounding box of pixels with non-zero alpha.
func inkBounds(s Surface) image.Rectangle {
	img := s.Image().(*image.RGBA)
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if r.Empty() {
				r = px
			} else {
				r = r.Union(px)
			}
		}
	}
	return r
}

func TestParseFont(t *testing.T) {
	f := mustParseFont(t, goregular.TTF)
	if got := f.Family(); got != "Go" {
		t.Errorf("Family() = %q, want %q", got, "Go")
	}
	if got := f.FullName(); got != "Go Regular" {
		t.Errorf("FullName() = %q, want %q", got, "Go Regular")
	}
	if f.Size() != len(goregular.TTF) {
		t.Errorf("Size() = %d", f.Size())
	}
}

func TestParseFontInvalid(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("definitely not a font file"),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseFont(data); !errors.Is(err, ErrInvalidFont) {
				t.Errorf("ParseFont error = %v, want ErrInvalidFont", err)
			}
		})
	}
}

func TestFontRegistrationLastWriterWins(t *testing.T) {
	b := NewSoftwareBackend()
	regular := mustParseFont(t, goregular.TTF)
	bold := mustParseFont(t, gobold.TTF)

	b.RegisterFont("ui", regular)
	b.RegisterFont("ui", bold)
	got, ok := b.LookupFont("ui")
	if !ok || got != bold {
		t.Errorf("LookupFont(ui) = %v, %v; want the bold face", got, ok)
	}
	if _, ok := b.LookupFont("missing"); ok {
		t.Error("LookupFont(missing) should report false")
	}
}

func newTextSurface(t *testing.T, w, h int) Surface {
	t.Helper()
	b := NewSoftwareBackend()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(b.Close)
	b.RegisterFont("default", mustParseFont(t, goregular.TTF))
	s, err := b.NewSurface(w, h)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if !s.SetFont("default", 12) {
		t.Fatal("SetFont(default) = false")
	}
	return s
}

func TestSetFontUnknownKeepsCurrent(t *testing.T) {
	s := newTextSurface(t, 10, 10)
	before := s.MeasureText("abc")
	if s.SetFont("nope", 30) {
		t.Error("SetFont(nope) = true")
	}
	if after := s.MeasureText("abc"); after != before {
		t.Errorf("MeasureText changed from %v to %v", before, after)
	}
}

func TestMeasureText(t *testing.T) {
	s := newTextSurface(t, 10, 10)
	w1 := s.MeasureText("VPD")
	w2 := s.MeasureText("VPD (kPa)")
	if w1 <= 0 || w2 <= w1 {
		t.Errorf("MeasureText widths = %v, %v", w1, w2)
	}
	if got := s.MeasureText(""); got != 0 {
		t.Errorf("MeasureText(\"\") = %v", got)
	}
	s.SetFont("default", 24)
	if w := s.MeasureText("VPD"); math.Abs(w-2*w1) > 1 {
		t.Errorf("24px width = %v, want about %v", w, 2*w1)
	}
}

func TestDrawTextAlignment(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		check func(r image.Rectangle) bool
	}{
		{"left", AlignLeft, func(r image.Rectangle) bool { return r.Min.X >= 99 && r.Min.X <= 102 }},
		{"right", AlignRight, func(r image.Rectangle) bool { return r.Max.X >= 98 && r.Max.X <= 101 }},
		{"center", AlignCenter, func(r image.Rectangle) bool { return r.Min.X < 100 && r.Max.X > 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTextSurface(t, 200, 40)
			s.SetFillColor(Black)
			s.DrawText("Humid", 100, 25, tt.align)
			r := inkBounds(s)
			if r.Empty() {
				t.Fatal("no ink drawn")
			}
			if !tt.check(r) {
				t.Errorf("ink bounds %v do not match %s alignment at x=100", r, tt.name)
			}
			if r.Max.Y > 26 || r.Min.Y < 10 {
				t.Errorf("ink bounds %v not sitting on baseline 25", r)
			}
		})
	}
}

func TestDrawTextRotated(t *testing.T) {
	s := newTextSurface(t, 60, 200)
	s.SetFillColor(Black)
	s.Push()
	s.Translate(30, 100)
	s.Rotate(-math.Pi / 2)
	s.DrawText("VPD (kPa)", 0, 0, AlignCenter)
	s.Pop()

	r := inkBounds(s)
	if r.Empty() {
		t.Fatal("no ink drawn")
	}
	if r.Dy() <= r.Dx() {
		t.Errorf("rotated text bounds %v should be taller than wide", r)
	}
	if r.Min.Y >= 100 || r.Max.Y <= 100 {
		t.Errorf("rotated text bounds %v should straddle y=100", r)
	}
}

func TestDrawTextWithoutFontIsSkipped(t *testing.T) {
	s := newTestSurface(t, 50, 20)
	s.SetFillColor(Black)
	s.DrawText("ignored", 5, 15, AlignLeft)
	if r := inkBounds(s); !r.Empty() {
		t.Errorf("ink drawn without a font: %v", r)
	}
	if got := s.MeasureText("ignored"); got != 0 {
		t.Errorf("MeasureText without font = %v", got)
	}
}
