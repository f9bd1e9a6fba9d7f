// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package font resolves font sources into fonts registered with a raster
// backend and caches the result.
//
// A Source is either a bundled Go font ("bundled:go-regular") or an http(s)
// URL. Resolving the same (source, family) pair twice returns the cached
// Handle; concurrent misses for one pair share a single fetch.
//
// # Example usage
//
//	backend, _ := raster.Select("auto")
//	cache := font.NewCache(backend)
//
//	// Start default font registration once per process and wait for it
//	// where text is needed.
//	ready := cache.LoadDefault(ctx)
//	def, err := ready.Wait(ctx)
//
//	// Custom font under an explicit family name.
//	h, err := cache.Resolve(ctx, "https://example.com/Inter.ttf", "Inter")
//
// Failed loads are reported as ErrFontLoad and are never cached, so a later
// request retries.
package font
