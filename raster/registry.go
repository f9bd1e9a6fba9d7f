// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"slices"
	"sync"
)

// Factory creates a new, uninitialized backend instance.
type Factory func() Backend

// Selection preferences accepted by Select besides backend names.
const (
	PreferAuto = "auto"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for automatic selection (first that initializes wins).
	backendPriority = []string{BackendGPU, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, highest priority first.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// Get returns a new, uninitialized backend by name, or nil if the name is
// not registered.
func Get(name string) Backend {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Select returns an initialized backend.
//
// With preference "auto" (or "") every registered backend is tried in
// priority order and the first one whose Init succeeds is returned; the GPU
// backend's Init is the hardware probe. Any other preference names one
// backend, which must initialize.
func Select(preference string) (Backend, error) {
	if preference != "" && preference != PreferAuto {
		b := Get(preference)
		if b == nil {
			return nil, fmt.Errorf("%w: %q is not registered", ErrBackendNotAvailable, preference)
		}
		if err := b.Init(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBackendNotAvailable, preference, err)
		}
		slogger().Info("raster: backend selected", "backend", b.Name(), "preference", preference)
		return b, nil
	}

	for _, name := range Available() {
		b := Get(name)
		if b == nil {
			continue
		}
		if err := b.Init(); err != nil {
			slogger().Debug("raster: backend unavailable", "backend", name, "err", err)
			continue
		}
		slogger().Info("raster: backend selected", "backend", b.Name(), "preference", PreferAuto)
		return b, nil
	}
	return nil, ErrBackendNotAvailable
}
