// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for font package.
var (
	// ErrFontLoad is returned when a font cannot be fetched, parsed or
	// registered.
	ErrFontLoad = errors.New("font: load failed")

	// ErrInvalidSource is returned for sources that are neither bundled
	// fonts nor http(s) URLs.
	ErrInvalidSource = errors.New("font: invalid source")

	// ErrReservedFamily is returned when DefaultFamily is given as a family
	// override.
	ErrReservedFamily = errors.New("font: family \"" + DefaultFamily + "\" is reserved")
)

// HTTPStatusError is returned by HTTPFetcher for non-200 responses.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("font: fetch %s: unexpected status %d", e.URL, e.StatusCode)
}
