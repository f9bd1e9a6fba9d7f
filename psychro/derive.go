// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package psychro

import "fmt"

// Method identifies which derivation path produced a deficit.
type Method uint8

const (
	// MethodExplicit means the deficit was supplied directly.
	MethodExplicit Method = iota

	// MethodHumidity means the deficit was computed from air temperature and
	// relative humidity.
	MethodHumidity

	// MethodLeafTemp means the deficit was computed from the air/leaf
	// temperature difference.
	MethodLeafTemp

	// MethodDefaultLeaf means neither humidity nor leaf temperature was given
	// and the leaf was assumed DefaultLeafOffset degrees below the air.
	MethodDefaultLeaf
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodExplicit:
		return "explicit"
	case MethodHumidity:
		return "humidity"
	case MethodLeafTemp:
		return "leaf-temp"
	case MethodDefaultLeaf:
		return "default-leaf"
	default:
		return "unknown"
	}
}

// Reading is one environmental measurement. AirTemp is required; the
// optional fields select the derivation path.
type Reading struct {
	AirTemp  float64
	Humidity *float64
	LeafTemp *float64
	Deficit  *float64
}

// Derivation is the result of Derive.
type Derivation struct {
	Deficit  float64
	Humidity *float64 // humidity used or echoed back, nil if unknown
	LeafTemp *float64 // leaf temperature used or assumed, nil if unknown
	Method   Method
}

// Derive computes the deficit for r using the first applicable path:
//
//  1. explicit deficit;
//  2. humidity, also when a leaf temperature is present;
//  3. leaf temperature;
//  4. leaf temperature assumed AirTemp - DefaultLeafOffset.
func Derive(r Reading) (Derivation, error) {
	if err := r.validate(); err != nil {
		return Derivation{}, err
	}

	switch {
	case r.Deficit != nil:
		return Derivation{
			Deficit:  *r.Deficit,
			Humidity: r.Humidity,
			LeafTemp: r.LeafTemp,
			Method:   MethodExplicit,
		}, nil
	case r.Humidity != nil:
		return Derivation{
			Deficit:  DeficitFromHumidity(r.AirTemp, *r.Humidity),
			Humidity: r.Humidity,
			LeafTemp: r.LeafTemp,
			Method:   MethodHumidity,
		}, nil
	case r.LeafTemp != nil:
		return Derivation{
			Deficit:  DeficitFromLeafTemp(r.AirTemp, *r.LeafTemp),
			LeafTemp: r.LeafTemp,
			Method:   MethodLeafTemp,
		}, nil
	default:
		leaf := r.AirTemp - DefaultLeafOffset
		return Derivation{
			Deficit:  DeficitFromLeafTemp(r.AirTemp, leaf),
			LeafTemp: &leaf,
			Method:   MethodDefaultLeaf,
		}, nil
	}
}

func (r Reading) validate() error {
	if !isFinite(r.AirTemp) {
		return fmt.Errorf("%w: air temperature %v", ErrInvalidMeasurement, r.AirTemp)
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"humidity", r.Humidity},
		{"leaf temperature", r.LeafTemp},
		{"deficit", r.Deficit},
	} {
		if f.v != nil && !isFinite(*f.v) {
			return fmt.Errorf("%w: %s %v", ErrInvalidMeasurement, f.name, *f.v)
		}
	}
	return nil
}
