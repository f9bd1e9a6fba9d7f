// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/psychro"
	"github.com/gogpu/vpdchart/raster"
)

// Chart renders deficit charts on one backend.
//
// A Chart is safe for concurrent use. Each Render call draws on its own
// surface; fonts are shared through the chart's font cache.
type Chart struct {
	backend  raster.Backend
	fonts    *font.Cache
	profiles *ProfileSet
	samples  int
	refTemp  float64
	ready    *font.Ready
}

// New creates a chart drawing on backend, which must be initialized. The
// default font starts loading immediately; Render waits for it.
func New(backend raster.Backend, opts ...Option) *Chart {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.profiles == nil {
		o.profiles = DefaultProfiles()
	}
	if o.fonts == nil {
		var fo []font.Option
		if o.fetcher != nil {
			fo = append(fo, font.WithFetcher(o.fetcher))
		}
		o.fonts = font.NewCache(backend, fo...)
	}

	c := &Chart{
		backend:  backend,
		fonts:    o.fonts,
		profiles: o.profiles,
		samples:  o.samples,
		refTemp:  o.refTemp,
	}
	c.ready = c.fonts.LoadDefault(context.Background())
	return c
}

// Backend returns the backend the chart draws on.
func (c *Chart) Backend() raster.Backend { return c.backend }

// Fonts returns the chart's font cache.
func (c *Chart) Fonts() *font.Cache { return c.fonts }

// Profiles returns the crop profiles used for requests without a profile.
func (c *Chart) Profiles() *ProfileSet { return c.profiles }

// ComputeDeficit derives the deficit of req and classifies it against the
// requested stage. It draws nothing.
func (c *Chart) ComputeDeficit(req ChartRequest) (Reading, error) {
	_, rd, err := c.prepare(req)
	return rd, err
}

// prepare validates req and derives its reading.
func (c *Chart) prepare(req ChartRequest) (*CropProfile, Reading, error) {
	profile := req.Profile
	if profile == nil {
		profile = c.profiles.Lookup(DefaultProfile)
	}

	d, err := psychro.Derive(req.measurement())
	if err != nil {
		return nil, Reading{}, err
	}
	rd := Reading{
		Deficit:  d.Deficit,
		Humidity: d.Humidity,
		LeafTemp: d.LeafTemp,
		Method:   d.Method,
		Status:   StatusUnknown,
	}

	if req.Stage != "" {
		rng, ok := profile.Stage(req.Stage)
		if !ok {
			return nil, Reading{}, &StageError{
				Stage:   req.Stage,
				Profile: profile.Key,
				Valid:   profile.StageKeys(),
			}
		}
		rd.Status = Classify(rd.Deficit, rng)
	}
	return profile, rd, nil
}

// Render draws the chart for req and encodes it in req.Format.
//
// ctx bounds the wait for the default font and the loading of an override
// font. A default font that failed to load is not an error; the chart is
// drawn without text. An override font that fails to load is.
func (c *Chart) Render(ctx context.Context, req ChartRequest) (*Image, error) {
	profile, rd, err := c.prepare(req)
	if err != nil {
		return nil, err
	}

	family, err := c.fontFamily(ctx, req.Font)
	if err != nil {
		return nil, err
	}

	s, err := c.backend.NewSurface(Width, Height)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	p := newPlot(req.Orientation, c.samples, c.refTemp)
	p.draw(s, &scene{
		family:  family,
		profile: profile,
		stage:   req.Stage,
		airTemp: req.AirTemp,
		reading: rd,
	})

	var buf bytes.Buffer
	if err := s.Encode(&buf, req.Format); err != nil {
		return nil, err
	}

	Logger().Info("vpdchart: rendered",
		"crop", profile.Key,
		"stage", req.Stage,
		"orientation", req.Orientation.String(),
		"deficit", rd.Deficit,
		"status", string(rd.Status),
		"backend", c.backend.Name(),
		"bytes", buf.Len())
	return &Image{Data: buf.Bytes(), Format: req.Format, Reading: rd}, nil
}

// fontFamily waits for the default font and resolves the override, if any.
// It returns the registration name to draw labels with; empty means no text.
func (c *Chart) fontFamily(ctx context.Context, override *FontOverride) (string, error) {
	var family string
	h, err := c.ready.Wait(ctx)
	switch {
	case err == nil:
		family = h.Name
	case ctx.Err() != nil:
		return "", fmt.Errorf("vpdchart: waiting for default font: %w", err)
	default:
		Logger().Warn("vpdchart: default font unavailable, drawing without text", "err", err)
	}

	if override == nil {
		return family, nil
	}
	oh, err := c.fonts.Resolve(ctx, override.Source, override.Family)
	if err != nil {
		return "", err
	}
	return oh.Name, nil
}
