// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides the drawing surfaces used to compose charts.
//
// A Backend creates fixed-size Surfaces and owns the fonts registered with
// it. Two backends are provided:
//
//   - "software": pure Go coverage rasterization on golang.org/x/image/vector.
//     It has no native dependencies and always initializes.
//   - "gpu": the same canvas, with rectangles and circles composited by an
//     SDF compute shader through gogpu/wgpu. Init fails with
//     ErrBackendNotAvailable when no Vulkan adapter is present.
//
// Backends register themselves by name; Select performs the one-time choice
// at configuration time:
//
//	b, err := raster.Select("auto") // gpu if usable, else software
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	s, err := b.NewSurface(600, 400)
//	...
//	err = s.Encode(w, raster.FormatPNG)
//
// Building with -tags nogpu removes the GPU backend and the wgpu stack.
//
// Surfaces are not safe for concurrent use. Backends are: several goroutines
// may create and draw their own surfaces at the same time.
package raster
