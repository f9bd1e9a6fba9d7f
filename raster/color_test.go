// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rrggbb", "#4CAF50", color.NRGBA{0x4C, 0xAF, 0x50, 0xFF}, false},
		{"no hash", "E0E0E0", color.NRGBA{0xE0, 0xE0, 0xE0, 0xFF}, false},
		{"rrggbbaa", "#FF980099", color.NRGBA{0xFF, 0x98, 0x00, 0x99}, false},
		{"short", "#f00", color.NRGBA{0xFF, 0x00, 0x00, 0xFF}, false},
		{"short alpha", "#0f08", color.NRGBA{0x00, 0xFF, 0x00, 0x88}, false},
		{"lowercase", "#abcdef", color.NRGBA{0xAB, 0xCD, 0xEF, 0xFF}, false},
		{"bad digit", "#GG0000", color.NRGBA{}, true},
		{"bad length", "#12345", color.NRGBA{}, true},
		{"empty", "", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := c.Color(); got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexFallsBackToBlack(t *testing.T) {
	if got := Hex("not a color"); got != Black {
		t.Errorf("Hex(invalid) = %v, want Black", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := Hex("#2196F3").WithAlpha(0x55 / 255.0)
	if got := c.Color().(color.NRGBA).A; got != 0x55 {
		t.Errorf("alpha = %#x, want 0x55", got)
	}
}

func TestPremultiply(t *testing.T) {
	c := RGBA{R: 1, G: 0.5, B: 0, A: 0.5}.Premultiply()
	want := RGBA{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if c != want {
		t.Errorf("Premultiply() = %v, want %v", c, want)
	}
}
