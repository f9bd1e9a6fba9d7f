// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package raster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

func init() {
	Register(BackendGPU, func() Backend {
		return NewGPUBackend()
	})
}

// halDevicer is implemented by *wgpu.Device.
type halDevicer interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

var (
	providerMu sync.Mutex
	provider   gpucontext.DeviceProvider
)

// SetDeviceProvider makes GPU backends initialized afterwards share the
// provider's device instead of opening their own. The provider's Device must
// be a *wgpu.Device (or expose HalDevice and HalQueue). Pass nil to return to
// private devices.
func SetDeviceProvider(p gpucontext.DeviceProvider) error {
	if p != nil {
		if _, ok := p.Device().(halDevicer); !ok {
			return errors.New("raster: device provider does not expose HAL types")
		}
		switch p.AdapterInfo().Type {
		case gpucontext.AdapterTypeSoftware:
			return errors.New("raster: device provider is a software adapter")
		}
	}
	providerMu.Lock()
	provider = p
	providerMu.Unlock()
	return nil
}

func currentProvider() gpucontext.DeviceProvider {
	providerMu.Lock()
	defer providerMu.Unlock()
	return provider
}

// GPUBackend renders with the same canvas as SoftwareBackend but sends
// rectangles and circles to a compute-shader accelerator.
type GPUBackend struct {
	fontTable

	mu    sync.Mutex
	accel *gpuSDF
}

// NewGPUBackend creates an uninitialized GPU backend.
func NewGPUBackend() *GPUBackend {
	return &GPUBackend{}
}

// Name returns the backend identifier.
func (b *GPUBackend) Name() string {
	return BackendGPU
}

// Init opens a GPU device, or attaches to the shared one, and builds the
// compute pipeline. Hosts without a usable GPU get ErrBackendNotAvailable.
func (b *GPUBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.accel != nil {
		return nil
	}

	var (
		accel *gpuSDF
		err   error
	)
	if p := currentProvider(); p != nil {
		hd := p.Device().(halDevicer)
		accel, err = newSharedGPUSDF(hd.HalDevice(), hd.HalQueue(), p.AdapterInfo().Name)
	} else {
		accel, err = openGPUSDF()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackendNotAvailable, err)
	}

	b.accel = accel
	slogger().Info("raster: gpu accelerator initialized",
		"adapter", accel.adapterName, "shared", accel.externalDevice)
	return nil
}

// Close releases the device unless it is shared.
func (b *GPUBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.accel != nil {
		b.accel.Close()
		b.accel = nil
	}
}

// NewSurface creates a surface whose shapes are drawn on the GPU.
func (b *GPUBackend) NewSurface(width, height int) (Surface, error) {
	b.mu.Lock()
	accel := b.accel
	b.mu.Unlock()
	if accel == nil {
		return nil, ErrNotInitialized
	}
	return newCanvas(width, height, b, accel)
}
