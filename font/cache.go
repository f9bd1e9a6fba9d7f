// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/vpdchart/raster"
)

// FallbackFamily names fonts that carry no family name and no override.
const FallbackFamily = "CustomFont"

// Registrar makes parsed fonts available for drawing. raster.Backend
// satisfies it.
type Registrar interface {
	RegisterFont(family string, f *raster.Font)
}

// Handle is a font registered with the backend.
type Handle struct {
	// Key is the cache key the handle was resolved under.
	Key Key

	// Name is the backend registration name, Key.String(). Pass it to
	// raster.Surface.SetFont. Fonts with equal family names never share it.
	Name string

	// Family is the display family: the override, the name-table family
	// or FallbackFamily.
	Family string

	Font *raster.Font
}

// Stats is a snapshot of the cache contents.
type Stats struct {
	Size int
	Keys []string
}

// Cache resolves sources to registered fonts.
//
// Cache is safe for concurrent use. Hits only take a read lock; concurrent
// misses for the same key share one load.
type Cache struct {
	reg     Registrar
	fetcher Fetcher

	mu      sync.RWMutex
	entries map[Key]*Handle
	group   singleflight.Group

	defaultOnce  sync.Once
	defaultReady *Ready
}

// Option configures a Cache.
type Option func(*Cache)

// WithFetcher replaces the HTTPFetcher used for remote sources.
func WithFetcher(f Fetcher) Option {
	return func(c *Cache) {
		if f != nil {
			c.fetcher = f
		}
	}
}

// NewCache creates a cache registering fonts with reg.
func NewCache(reg Registrar, opts ...Option) *Cache {
	c := &Cache{
		reg:     reg,
		fetcher: &HTTPFetcher{},
		entries: make(map[Key]*Handle),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the font for src with the display family override,
// loading it on a miss. An empty src means DefaultSource; an empty family
// lets the font's own name decide. ctx bounds only this caller's wait: a
// load shared with other callers keeps running when ctx is done.
func (c *Cache) Resolve(ctx context.Context, src Source, family string) (*Handle, error) {
	if src == "" {
		src = DefaultSource
	}
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	if family == DefaultFamily {
		return nil, fmt.Errorf("%w: %w", ErrFontLoad, ErrReservedFamily)
	}
	key := NewKey(src, family)

	if h, ok := c.lookup(key); ok {
		slogger().Debug("font: cache hit", "key", key.String())
		return h, nil
	}

	// HTTPFetcher's client timeout bounds the detached load.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (any, error) {
		return c.load(loadCtx, key, family)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Handle), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", ErrFontLoad, src, ctx.Err())
	}
}

func (c *Cache) lookup(key Key) (*Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.entries[key]
	return h, ok
}

// load fetches, parses, registers and stores one font.
func (c *Cache) load(ctx context.Context, key Key, override string) (*Handle, error) {
	// Another flight may have completed between lookup and DoChan.
	if h, ok := c.lookup(key); ok {
		return h, nil
	}

	data, err := c.bytes(ctx, key.Source)
	if err != nil {
		slogger().Warn("font: fetch failed", "source", key.Source.String(), "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrFontLoad, key.Source, err)
	}
	f, err := raster.ParseFont(data)
	if err != nil {
		slogger().Warn("font: parse failed", "source", key.Source.String(), "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrFontLoad, key.Source, err)
	}

	h := &Handle{Key: key, Name: key.String(), Family: familyName(override, f), Font: f}
	if c.reg != nil {
		c.reg.RegisterFont(h.Name, f)
	}

	c.mu.Lock()
	c.entries[key] = h
	c.mu.Unlock()

	slogger().Info("font: registered", "name", h.Name, "family", h.Family, "bytes", f.Size())
	return h, nil
}

func (c *Cache) bytes(ctx context.Context, src Source) ([]byte, error) {
	if src.IsBundled() {
		return bundledFonts[src], nil
	}
	return c.fetcher.Fetch(ctx, src)
}

// familyName picks the override, then the name-table family, then
// FallbackFamily.
func familyName(override string, f *raster.Font) string {
	switch {
	case override != "":
		return override
	case f.Family() != "":
		return f.Family()
	default:
		return FallbackFamily
	}
}

// Reset drops every cached entry. Fonts stay registered with the backend
// and the default-font token is kept.
func (c *Cache) Reset() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[Key]*Handle)
	c.mu.Unlock()
	slogger().Info("font: cache reset", "dropped", n)
}

// Stats returns the number of cached fonts and their sorted keys.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k.String())
	}
	c.mu.RUnlock()
	slices.Sort(keys)
	return Stats{Size: len(keys), Keys: keys}
}

// Preload resolves several sources concurrently under their own family
// names and returns the first error.
func (c *Cache) Preload(ctx context.Context, sources ...Source) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			_, err := c.Resolve(gctx, src, "")
			return err
		})
	}
	return g.Wait()
}

// Ready reports completion of the default font registration.
type Ready struct {
	done   chan struct{}
	handle *Handle
	err    error
}

// Done is closed once the default font has been registered or has failed.
func (r *Ready) Done() <-chan struct{} { return r.done }

// Wait blocks until the default font is available or ctx is done. A
// completed load is reported even when ctx is already done.
func (r *Ready) Wait(ctx context.Context) (*Handle, error) {
	select {
	case <-r.done:
		return r.handle, r.err
	default:
	}
	select {
	case <-r.done:
		return r.handle, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LoadDefault starts registering DefaultSource in the background. Only the
// first call starts the load; every call returns the same token.
func (c *Cache) LoadDefault(ctx context.Context) *Ready {
	c.defaultOnce.Do(func() {
		r := &Ready{done: make(chan struct{})}
		c.defaultReady = r
		// The load outlives the first caller's request.
		loadCtx := context.WithoutCancel(ctx)
		go func() {
			defer close(r.done)
			r.handle, r.err = c.Resolve(loadCtx, DefaultSource, "")
			if r.err != nil {
				slogger().Warn("font: default font unavailable", "err", r.err)
			}
		}()
	})
	return c.defaultReady
}
