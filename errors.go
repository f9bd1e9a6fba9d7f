// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/psychro"
	"github.com/gogpu/vpdchart/raster"
)

// Errors returned by Chart. The re-exported sentinels are the ones wrapped
// by the sub-packages, so errors.Is works with either name.
var (
	// ErrInvalidMeasurement is returned for non-finite inputs.
	ErrInvalidMeasurement = psychro.ErrInvalidMeasurement

	// ErrUnknownStage is returned when the requested stage is not defined by
	// the crop profile.
	ErrUnknownStage = errors.New("vpdchart: unknown stage")

	// ErrFontLoad is returned when a requested font cannot be used.
	ErrFontLoad = font.ErrFontLoad

	// ErrEncoding is returned when the chart cannot be encoded.
	ErrEncoding = raster.ErrEncoding

	// ErrInvalidProfile is returned by LoadProfiles for malformed files.
	ErrInvalidProfile = errors.New("vpdchart: invalid profile")
)

// StageError reports an unknown stage together with the stages the profile
// does define.
type StageError struct {
	Stage   string
	Profile string
	Valid   []string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("vpdchart: unknown stage %q for %s (valid: %s)",
		e.Stage, e.Profile, strings.Join(e.Valid, ", "))
}

// Unwrap returns ErrUnknownStage.
func (e *StageError) Unwrap() error { return ErrUnknownStage }
