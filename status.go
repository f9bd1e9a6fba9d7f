// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

// Status classifies a deficit against the requested stage.
type Status string

const (
	StatusOptimal Status = "optimal"
	StatusTooLow  Status = "too_low"
	StatusTooHigh Status = "too_high"

	// StatusUnknown is reported when the request names no stage.
	StatusUnknown Status = "unknown"
)

// Classify places deficit relative to r. Both limits count as optimal.
func Classify(deficit float64, r DeficitRange) Status {
	switch {
	case deficit < r.Min:
		return StatusTooLow
	case deficit > r.Max:
		return StatusTooHigh
	default:
		return StatusOptimal
	}
}
