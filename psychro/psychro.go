// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package psychro implements the psychrometric relations used by the chart
// engine: saturation vapor pressure, vapor-pressure deficit (VPD) from
// humidity or leaf temperature, and their inverses.
//
// Temperatures are in degrees Celsius, relative humidity in percent and
// pressures in kilopascals. The functions are pure and never clamp
// temperature inputs; non-finite inputs propagate as NaN. Callers that need
// validation go through Derive, which reports ErrInvalidMeasurement.
package psychro

import (
	"errors"
	"math"
)

// Tetens equation constants.
const (
	tetensA = 0.6108 // kPa
	tetensB = 17.27
	tetensC = 237.3 // °C
)

// DefaultLeafOffset is how much cooler than the air a leaf is assumed to be
// when a reading carries neither humidity nor leaf temperature.
const DefaultLeafOffset = 2.0

// ErrInvalidMeasurement is returned for missing or non-finite inputs.
var ErrInvalidMeasurement = errors.New("psychro: invalid measurement")

// SaturationPressure returns the saturation vapor pressure in kPa at
// temperature t (°C). It is strictly increasing in t.
func SaturationPressure(t float64) float64 {
	return tetensA * math.Exp((tetensB*t)/(t+tetensC))
}

// DeficitFromHumidity returns the air VPD for the given air temperature and
// relative humidity. Decreasing in rh, increasing in airTemp.
func DeficitFromHumidity(airTemp, rh float64) float64 {
	return SaturationPressure(airTemp) * (1 - rh/100)
}

// DeficitFromLeafTemp returns the VPD estimated from the difference between
// air and leaf saturation pressures.
func DeficitFromLeafTemp(airTemp, leafTemp float64) float64 {
	return SaturationPressure(airTemp) - SaturationPressure(leafTemp)
}

// CanopyDeficit returns the leaf-surface VPD: saturation pressure at the
// leaf minus the actual vapor pressure of the surrounding air.
func CanopyDeficit(airTemp, leafTemp, rh float64) float64 {
	actual := SaturationPressure(airTemp) * (rh / 100)
	return SaturationPressure(leafTemp) - actual
}

// HumidityForDeficit returns the relative humidity that produces the target
// deficit at airTemp, clamped to [0, 100].
func HumidityForDeficit(airTemp, deficit float64) float64 {
	svp := SaturationPressure(airTemp)
	rh := (svp - deficit) / svp * 100
	if math.IsNaN(rh) {
		return rh
	}
	return math.Max(0, math.Min(100, rh))
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
