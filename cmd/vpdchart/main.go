// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command vpdchart renders vapor-pressure-deficit charts and reports the
// deficit of a reading.
//
// Usage:
//
//	vpdchart render --air 24 --rh 60 --crop cannabis --stage veg -o chart.png
//	vpdchart deficit --air 24 --leaf 22
//	vpdchart crops
//	vpdchart fonts https://example.com/Inter.ttf
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
