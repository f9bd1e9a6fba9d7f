// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"slices"
	"sync"
)

// defaultRunCacheLimit bounds the shaped runs kept across surfaces. A chart
// draws a few dozen distinct strings.
const defaultRunCacheLimit = 512

// runKey identifies a shaped run. Fonts are immutable, so the pointer is a
// stable identity.
type runKey struct {
	font *Font
	size float64
	text string
}

type shapedRun struct {
	glyphs  []positionedGlyph
	advance float64
}

type runEntry struct {
	run   shapedRun
	atime int64
}

// runCache is a mutex-guarded cache with a soft limit. Once the limit is
// exceeded the least recently used quarter is dropped.
//
// Cached glyph slices are shared and must not be modified.
type runCache struct {
	mu        sync.Mutex
	entries   map[runKey]*runEntry
	softLimit int
	tick      int64
}

func newRunCache(softLimit int) *runCache {
	return &runCache{
		entries:   make(map[runKey]*runEntry),
		softLimit: softLimit,
	}
}

var shapedRuns = newRunCache(defaultRunCacheLimit)

// shape returns the cached run for key, shaping it on a miss. Shaping runs
// outside the lock; two callers racing on one key both shape and the later
// result wins.
func (c *runCache) shape(key runKey) ([]positionedGlyph, float64) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.tick++
		e.atime = c.tick
		c.mu.Unlock()
		return e.run.glyphs, e.run.advance
	}
	c.mu.Unlock()

	glyphs, adv := shapeRun(key.font, key.text, key.size)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	c.entries[key] = &runEntry{run: shapedRun{glyphs: glyphs, advance: adv}, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return glyphs, adv
}

func (c *runCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest shrinks the cache to three quarters of the soft limit.
// Caller must hold c.mu.
func (c *runCache) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key   runKey
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return int(a.atime - b.atime) })
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
}
