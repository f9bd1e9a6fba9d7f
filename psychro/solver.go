// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package psychro

import "math"

// Root finder defaults.
const (
	DefaultTolerance     = 0.001
	DefaultMaxIterations = 20
)

// SolveOption configures TemperatureForDeficit.
type SolveOption func(*solveConfig)

type solveConfig struct {
	tolerance     float64
	maxIterations int
}

func defaultSolveConfig() solveConfig {
	return solveConfig{
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
	}
}

// WithTolerance sets the absolute deficit tolerance (kPa) that ends the
// search early. Non-positive values are ignored.
func WithTolerance(tol float64) SolveOption {
	return func(c *solveConfig) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithMaxIterations bounds the number of bisection steps.
// Values below 1 are ignored.
func WithMaxIterations(n int) SolveOption {
	return func(c *solveConfig) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// BisectResult describes the outcome of a bisection search.
type BisectResult struct {
	X          float64 // last midpoint
	Iterations int     // midpoints evaluated
	Converged  bool    // |f(X) - target| < tolerance
}

// Bisect searches [lo, hi] for x with f(x) ≈ target, assuming f is
// increasing on the interval. Each step evaluates the midpoint, returns it
// when within tol of the target and otherwise keeps the half that must hold
// the root. After maxIter steps the last midpoint is returned unconverged;
// roots outside the bracket therefore end near the closer edge.
func Bisect(f func(float64) float64, target, lo, hi, tol float64, maxIter int) BisectResult {
	var res BisectResult
	for res.Iterations < maxIter {
		res.Iterations++
		mid := (lo + hi) / 2
		res.X = mid

		probe := f(mid)
		if math.Abs(probe-target) < tol {
			res.Converged = true
			return res
		}
		if probe < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return res
}

// TemperatureForDeficit finds the air temperature in [tempLow, tempHigh]
// at which relative humidity rh yields the target deficit. There is no
// closed form for this direction, so it bisects on DeficitFromHumidity,
// which is increasing in temperature for a fixed rh.
//
// Non-convergence is not an error: the last midpoint is returned.
func TemperatureForDeficit(target, rh, tempLow, tempHigh float64, opts ...SolveOption) float64 {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	probe := func(t float64) float64 { return DeficitFromHumidity(t, rh) }
	return Bisect(probe, target, tempLow, tempHigh, cfg.tolerance, cfg.maxIterations).X
}
