// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package raster

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// fakeProvider hands out a device without HAL access.
type fakeProvider struct {
	info gpucontext.AdapterInfo
}

func (fakeProvider) Device() gpucontext.Device             { return struct{}{} }
func (fakeProvider) Queue() gpucontext.Queue               { return struct{}{} }
func (fakeProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (p fakeProvider) AdapterInfo() gpucontext.AdapterInfo { return p.info }

func TestSetDeviceProviderRejectsNonHAL(t *testing.T) {
	if err := SetDeviceProvider(fakeProvider{}); err == nil {
		t.Error("SetDeviceProvider(non-HAL) = nil, want error")
	}
	if err := SetDeviceProvider(nil); err != nil {
		t.Errorf("SetDeviceProvider(nil) = %v", err)
	}
}

func TestUsableAdapter(t *testing.T) {
	tests := []struct {
		typ  gputypes.DeviceType
		want bool
	}{
		{gputypes.DeviceTypeDiscreteGPU, true},
		{gputypes.DeviceTypeIntegratedGPU, true},
		{gputypes.DeviceTypeVirtualGPU, true},
		{gputypes.DeviceTypeCPU, false},
		{gputypes.DeviceTypeOther, false},
	}
	for _, tt := range tests {
		if got := usableAdapter(tt.typ); got != tt.want {
			t.Errorf("usableAdapter(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestPackShapesLayout(t *testing.T) {
	data := packShapes([]Shape{
		{Kind: ShapeCircle, CenterX: 10, CenterY: 20, Radius: 8, Color: Red},
		{Kind: ShapeRect, CenterX: 1, CenterY: 2, HalfWidth: 3, HalfHeight: 4, HalfStroke: 0.5, Color: White},
	})
	if len(data) != 2*gpuShapeSize {
		t.Fatalf("len = %d, want %d", len(data), 2*gpuShapeSize)
	}
	word := func(shape, field int) uint32 {
		return binary.LittleEndian.Uint32(data[shape*gpuShapeSize+field*4:])
	}
	f32 := func(shape, field int) float32 { return math.Float32frombits(word(shape, field)) }

	if word(0, 0) != uint32(ShapeCircle) || f32(0, 3) != 8 || word(0, 7) != 0 || f32(0, 8) != 1 {
		t.Error("circle fields packed incorrectly")
	}
	if word(1, 0) != uint32(ShapeRect) || f32(1, 4) != 3 || f32(1, 5) != 4 || f32(1, 6) != 0.5 || word(1, 7) != 1 {
		t.Error("rect fields packed incorrectly")
	}
	if p := makeFrameParams(600, 400, 7); binary.LittleEndian.Uint32(p[8:]) != 7 || len(p) != gpuFrameParamsSize {
		t.Error("frame params packed incorrectly")
	}
}

func TestShaderCompiles(t *testing.T) {
	words, err := compileShader()
	if err != nil {
		t.Fatalf("compileShader: %v", err)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Errorf("missing SPIR-V magic number")
	}
}

// On hosts with a GPU the accelerated surface must match the software one.
func TestGPUBackendMatchesSoftware(t *testing.T) {
	gpu := NewGPUBackend()
	if err := gpu.Init(); err != nil {
		if !errors.Is(err, ErrBackendNotAvailable) {
			t.Fatalf("Init error = %v, want ErrBackendNotAvailable", err)
		}
		t.Skipf("GPU not available: %v", err)
	}
	defer gpu.Close()

	draw := func(s Surface) *image.RGBA {
		s.SetFillColor(White)
		s.FillRect(0, 0, 64, 64)
		s.SetFillColor(Red)
		s.FillArc(32, 32, 8, 0, 2*math.Pi)
		s.SetStrokeColor(Black)
		s.SetLineWidth(2)
		s.StrokeRect(4.5, 4.5, 50, 50)
		return s.Image().(*image.RGBA)
	}

	gs, err := gpu.NewSurface(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer gs.Close()
	ss := newTestSurface(t, 64, 64)

	gi, si := draw(gs), draw(ss)
	for i := range gi.Pix {
		if d := int(gi.Pix[i]) - int(si.Pix[i]); d > 2 || d < -2 {
			t.Fatalf("byte %d: gpu %d, software %d", i, gi.Pix[i], si.Pix[i])
		}
	}
}
