// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "sync/atomic"

func init() {
	Register(BackendSoftware, func() Backend {
		return NewSoftwareBackend()
	})
}

// SoftwareBackend is a CPU-based rendering backend.
// It works on every host, including ones without native graphics.
type SoftwareBackend struct {
	fontTable
	initialized atomic.Bool
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend. The software backend always succeeds.
func (b *SoftwareBackend) Init() error {
	b.initialized.Store(true)
	return nil
}

// Close releases backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized.Store(false)
}

// NewSurface creates a new CPU surface.
func (b *SoftwareBackend) NewSurface(width, height int) (Surface, error) {
	if !b.initialized.Load() {
		return nil, ErrNotInitialized
	}
	return newCanvas(width, height, b, cpuSDF{})
}
