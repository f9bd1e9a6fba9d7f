// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "errors"

var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot initialize on this host.
	ErrBackendNotAvailable = errors.New("raster: backend not available")

	// ErrNotInitialized is returned when surfaces are requested before Init.
	ErrNotInitialized = errors.New("raster: backend not initialized")

	// ErrEncoding is returned when a surface cannot be encoded.
	ErrEncoding = errors.New("raster: encoding failed")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("raster: invalid surface size")

	// ErrSurfaceClosed is returned when a closed surface is encoded.
	ErrSurfaceClosed = errors.New("raster: surface closed")

	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("raster: invalid font data")

	// ErrFallbackToCPU indicates an accelerator cannot handle a batch; the
	// caller draws it on the CPU instead.
	ErrFallbackToCPU = errors.New("raster: falling back to CPU rendering")
)
