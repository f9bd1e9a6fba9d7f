// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/psychro"
	"github.com/gogpu/vpdchart/raster"
	"github.com/gogpu/vpdchart/zone"
)

// newTestChart returns a chart on an initialized software backend whose
// default font has finished loading.
func newTestChart(t *testing.T, opts ...Option) *Chart {
	t.Helper()
	b := raster.NewSoftwareBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(b.Close)
	c := New(b, opts...)
	if _, err := c.ready.Wait(context.Background()); err != nil {
		t.Fatalf("default font: %v", err)
	}
	return c
}

func render(t *testing.T, c *Chart, req ChartRequest) image.Image {
	t.Helper()
	img, err := c.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	dec, err := png.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return dec
}

func near(c color.Color, r, g, b uint8, tol int) bool {
	cr, cg, cb, _ := c.RGBA()
	d := func(x uint32, want uint8) bool {
		return math.Abs(float64(int(x>>8)-int(want))) <= float64(tol)
	}
	return d(cr, r) && d(cg, g) && d(cb, b)
}

// count returns the number of pixels in r matching pred.
func count(img image.Image, r image.Rectangle, pred func(color.Color) bool) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if pred(img.At(x, y)) {
				n++
			}
		}
	}
	return n
}

func isMarkerRed(c color.Color) bool { return near(c, 255, 0, 0, 0) }

func isDark(c color.Color) bool { return near(c, 0, 0, 0, 80) }

func TestComputeDeficit(t *testing.T) {
	c := newTestChart(t)
	general := c.Profiles().Lookup("general")

	tests := []struct {
		name      string
		req       ChartRequest
		deficit   float64
		method    psychro.Method
		status    Status
		wantLeaf  *float64
		wantHumid *float64
	}{
		{
			name:      "humidity",
			req:       ChartRequest{AirTemp: 24, Humidity: Float(60)},
			deficit:   1.194,
			method:    psychro.MethodHumidity,
			status:    StatusUnknown,
			wantHumid: Float(60),
		},
		{
			name:     "leaf temperature",
			req:      ChartRequest{AirTemp: 24, LeafTemp: Float(22)},
			deficit:  0.340,
			method:   psychro.MethodLeafTemp,
			status:   StatusUnknown,
			wantLeaf: Float(22),
		},
		{
			name:     "default leaf offset",
			req:      ChartRequest{AirTemp: 24},
			deficit:  0.340,
			method:   psychro.MethodDefaultLeaf,
			status:   StatusUnknown,
			wantLeaf: Float(22),
		},
		{
			name:      "explicit wins",
			req:       ChartRequest{AirTemp: 24, Deficit: Float(1.0), Humidity: Float(60), Profile: general, Stage: "veg"},
			deficit:   1.0,
			method:    psychro.MethodExplicit,
			status:    StatusOptimal,
			wantHumid: Float(60),
		},
		{
			name:      "saturated air",
			req:       ChartRequest{AirTemp: 24, Humidity: Float(100), Stage: "seedling"},
			deficit:   0,
			method:    psychro.MethodHumidity,
			status:    StatusTooLow,
			wantHumid: Float(100),
		},
		{
			name:      "too high",
			req:       ChartRequest{AirTemp: 30, Humidity: Float(40), Stage: "veg"},
			deficit:   psychro.DeficitFromHumidity(30, 40),
			method:    psychro.MethodHumidity,
			status:    StatusTooHigh,
			wantHumid: Float(40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ComputeDeficit(tt.req)
			if err != nil {
				t.Fatalf("ComputeDeficit: %v", err)
			}
			if math.Abs(got.Deficit-tt.deficit) > 0.001 {
				t.Errorf("Deficit = %.4f, want %.3f", got.Deficit, tt.deficit)
			}
			if got.Method != tt.method {
				t.Errorf("Method = %v, want %v", got.Method, tt.method)
			}
			if got.Status != tt.status {
				t.Errorf("Status = %q, want %q", got.Status, tt.status)
			}
			if diff := cmp.Diff(tt.wantLeaf, got.LeafTemp); diff != "" {
				t.Errorf("LeafTemp mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantHumid, got.Humidity); diff != "" {
				t.Errorf("Humidity mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeDeficitErrors(t *testing.T) {
	c := newTestChart(t)

	_, err := c.ComputeDeficit(ChartRequest{AirTemp: math.NaN()})
	if !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("NaN air temperature error = %v, want ErrInvalidMeasurement", err)
	}
	_, err = c.ComputeDeficit(ChartRequest{AirTemp: 24, Humidity: Float(math.Inf(1))})
	if !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("Inf humidity error = %v, want ErrInvalidMeasurement", err)
	}

	_, err = c.ComputeDeficit(ChartRequest{
		AirTemp: 24,
		Profile: c.Profiles().Lookup("tomato"),
		Stage:   "fruiting",
	})
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("error = %v, want ErrUnknownStage", err)
	}
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not a *StageError", err)
	}
	if se.Stage != "fruiting" || se.Profile != "tomato" || len(se.Valid) != 8 {
		t.Errorf("StageError = %+v", se)
	}
}

func TestUnknownCropUsesGeneral(t *testing.T) {
	c := newTestChart(t)
	got, err := c.ComputeDeficit(ChartRequest{
		AirTemp:  24,
		Humidity: Float(60),
		Profile:  c.Profiles().Lookup("dragonfruit"),
		Stage:    "veg",
	})
	if err != nil {
		t.Fatal(err)
	}
	// 1.194 lies in general veg 0.8-1.2.
	if got.Status != StatusOptimal {
		t.Errorf("Status = %q, want optimal", got.Status)
	}
}

func TestRenderPNG(t *testing.T) {
	c := newTestChart(t)
	img := render(t, c, ChartRequest{
		AirTemp:  24,
		Humidity: Float(60),
		Profile:  c.Profiles().Lookup("general"),
		Stage:    "veg",
	})

	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("size = %v, want %dx%d", b, Width, Height)
	}
	if !near(img.At(2, 2), 255, 255, 255, 0) {
		t.Errorf("corner = %v, want white background", img.At(2, 2))
	}

	// 24 °C, 1.194 kPa maps to (289.5, 160.9).
	if !near(img.At(289, 160), 255, 255, 255, 10) {
		t.Errorf("marker core = %v, want white", img.At(289, 160))
	}
	if !isMarkerRed(img.At(295, 161)) {
		t.Errorf("marker ring = %v, want red", img.At(295, 161))
	}

	// Veg band at 24 °C spans exactly 0.8-1.2; 0.9 kPa is y=205.
	if !near(img.At(289, 205), 122, 192, 248, 3) {
		t.Errorf("emphasized zone = %v, want #2196F3 at alpha 0x99 over white", img.At(289, 205))
	}
	// 0.6 kPa is outside the only drawn band.
	if !near(img.At(289, 250), 255, 255, 255, 0) {
		t.Errorf("outside zone = %v, want white", img.At(289, 250))
	}

	// Axis line at x=60 is black and 2px wide.
	if !near(img.At(59, 200), 0, 0, 0, 2) || !near(img.At(60, 200), 0, 0, 0, 2) {
		t.Errorf("y axis = %v %v, want black", img.At(59, 200), img.At(60, 200))
	}
	// Grid at 0.5 kPa (y=265) between the axes.
	if !near(img.At(400, 265), 0xE0, 0xE0, 0xE0, 20) {
		t.Errorf("grid = %v, want #E0E0E0", img.At(400, 265))
	}

	if n := count(img, image.Rect(150, 10, 450, 30), isDark); n == 0 {
		t.Error("no title text drawn")
	}
	if n := count(img, image.Rect(70, 42, 300, 60), isDark); n == 0 {
		t.Error("no marker label drawn")
	}
}

func TestRenderGrowthStagesUseContextAlpha(t *testing.T) {
	c := newTestChart(t)
	img := render(t, c, ChartRequest{AirTemp: 40, Humidity: Float(60)})

	// Only seedling (0.4-0.8) covers 0.6 kPa at 24 °C.
	if !near(img.At(289, 250), 195, 228, 197, 3) {
		t.Errorf("seedling zone = %v, want #4CAF50 at alpha 0x55 over white", img.At(289, 250))
	}
	if n := count(img, img.Bounds(), isMarkerRed); n != 0 {
		t.Errorf("%d marker pixels drawn for a reading outside the chart", n)
	}
}

func TestRenderHumidityPrimary(t *testing.T) {
	c := newTestChart(t)
	img := render(t, c, ChartRequest{
		AirTemp:     24,
		Humidity:    Float(60),
		Stage:       "veg",
		Orientation: zone.HumidityPrimary,
	})
	// 60 %, 24 °C maps to (366, 205).
	if !isMarkerRed(img.At(371, 205)) {
		t.Errorf("marker ring = %v, want red", img.At(371, 205))
	}
	if !near(img.At(365, 204), 255, 255, 255, 10) {
		t.Errorf("marker core = %v, want white", img.At(365, 204))
	}
}

func TestRenderHumidityPrimaryDerivesHumidity(t *testing.T) {
	c := newTestChart(t)
	// No humidity: the marker is placed at the humidity producing the
	// deficit at the air temperature.
	deficit := psychro.DeficitFromHumidity(24, 60)
	img := render(t, c, ChartRequest{
		AirTemp:     24,
		Deficit:     Float(deficit),
		Orientation: zone.HumidityPrimary,
	})
	if !isMarkerRed(img.At(371, 205)) {
		t.Errorf("marker ring = %v, want red", img.At(371, 205))
	}
}

func TestRenderJPEG(t *testing.T) {
	c := newTestChart(t)
	out, err := c.Render(context.Background(), ChartRequest{AirTemp: 24, Format: raster.FormatJPEG})
	if err != nil {
		t.Fatal(err)
	}
	if out.Format != raster.FormatJPEG {
		t.Errorf("Format = %v", out.Format)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("jpeg.DecodeConfig: %v", err)
	}
	if cfg.Width != Width || cfg.Height != Height {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRenderUnknownStage(t *testing.T) {
	c := newTestChart(t)
	_, err := c.Render(context.Background(), ChartRequest{AirTemp: 24, Stage: "harvest"})
	if !errors.Is(err, ErrUnknownStage) {
		t.Errorf("error = %v, want ErrUnknownStage", err)
	}
}

func TestRenderFontOverride(t *testing.T) {
	c := newTestChart(t)
	out, err := c.Render(context.Background(), ChartRequest{
		AirTemp: 24,
		Font:    &FontOverride{Source: font.GoBold, Family: "Headline"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out.Data) == 0 {
		t.Error("empty image")
	}
	if _, ok := c.Backend().LookupFont("bundled:go-bold|Headline"); !ok {
		t.Error("override font not registered")
	}
	want := font.Stats{Size: 2, Keys: []string{"bundled:go-bold|Headline", "bundled:go-regular|default"}}
	if diff := cmp.Diff(want, c.Fonts().Stats()); diff != "" {
		t.Errorf("font cache mismatch (-want +got):\n%s", diff)
	}
}

func TestFontOverrideDoesNotLeak(t *testing.T) {
	c := newTestChart(t)
	req := ChartRequest{AirTemp: 24, Humidity: Float(60), Stage: "veg"}

	before, err := c.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	bold := req
	bold.Font = &FontOverride{Source: font.GoBold}
	withBold, err := c.Render(context.Background(), bold)
	if err != nil {
		t.Fatal(err)
	}
	after, err := c.Render(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(before.Data, after.Data) {
		t.Error("default render changed after a bold override")
	}
	if bytes.Equal(before.Data, withBold.Data) {
		t.Error("bold override drew the same image as the default font")
	}
}

func TestRenderInvalidFontOverride(t *testing.T) {
	c := newTestChart(t)
	for _, src := range []font.Source{"ftp://example.com/a.ttf", "bundled:nope"} {
		_, err := c.Render(context.Background(), ChartRequest{
			AirTemp: 24,
			Font:    &FontOverride{Source: src},
		})
		if !errors.Is(err, ErrFontLoad) {
			t.Errorf("Render with %q error = %v, want ErrFontLoad", src, err)
		}
	}
}

func TestRenderFontOverrideFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(func() {
		srv.Close()
		http.DefaultTransport.(*http.Transport).CloseIdleConnections()
	})

	c := newTestChart(t)
	_, err := c.Render(context.Background(), ChartRequest{
		AirTemp: 24,
		Font:    &FontOverride{Source: font.Source(srv.URL + "/missing.ttf")},
	})
	if !errors.Is(err, ErrFontLoad) {
		t.Errorf("error = %v, want ErrFontLoad", err)
	}
}

func TestRenderContextCanceledWhileWaitingForFont(t *testing.T) {
	b := raster.NewSoftwareBackend()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	c := &Chart{
		backend:  b,
		fonts:    font.NewCache(b),
		profiles: DefaultProfiles(),
		samples:  zone.DefaultSamples,
		refTemp:  zone.DefaultRefTemp,
		ready:    pendingReady(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Render(ctx, ChartRequest{AirTemp: 24}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// pendingReady returns a default-font token that never completes.
func pendingReady() *font.Ready { return new(font.Ready) }

func TestRenderConcurrent(t *testing.T) {
	c := newTestChart(t)
	crops := []string{"general", "cannabis", "tomato", "lettuce", "orchid"}

	var wg sync.WaitGroup
	errs := make([]error, len(crops)*2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Render(context.Background(), ChartRequest{
				AirTemp:     20 + float64(i),
				Humidity:    Float(55),
				Profile:     c.Profiles().Lookup(crops[i%len(crops)]),
				Stage:       "flower",
				Orientation: zone.Orientation(i % 2),
			})
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("render %d: %v", i, err)
		}
	}
}
