// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// Format is an image encoding.
type Format uint8

const (
	// FormatPNG is lossless PNG, the default.
	FormatPNG Format = iota

	// FormatJPEG is baseline JPEG at JPEGQuality.
	FormatJPEG
)

// JPEGQuality is the quality used for FormatJPEG.
const JPEGQuality = 90

// ParseFormat parses "png", "jpeg" or "jpg" (case-insensitive).
// The empty string selects FormatPNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("raster: unknown image format %q", s)
	}
}

// String returns the short format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// MIMEType returns the media type of the encoding.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// encodeImage writes img to w. All failures wrap ErrEncoding.
func encodeImage(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		return fmt.Errorf("%w: unsupported format %v", ErrEncoding, f)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncoding, f, err)
	}
	return nil
}
