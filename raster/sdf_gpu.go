// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package raster

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

//go:embed shaders/sdf_batch.wgsl
var sdfBatchShaderSource string

// GPU buffer layouts, matching shaders/sdf_batch.wgsl.
const (
	gpuShapeSize       = 48
	gpuFrameParamsSize = 16
)

// gpuSDF draws shape batches with a compute shader on a wgpu/hal device.
//
// Each batch is uploaded together with the current pixels, composited with
// one compute pass per shape in a single command encoder, and read back after
// the queue drains.
type gpuSDF struct {
	mu sync.Mutex

	instance    hal.Instance
	device      hal.Device
	queue       hal.Queue
	adapterName string

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ ShapeAccelerator = (*gpuSDF)(nil)

// usableAdapter reports whether the adapter is real GPU hardware.
// CPU emulations are rejected; the software backend is faster.
func usableAdapter(t gputypes.DeviceType) bool {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeVirtualGPU:
		return true
	default:
		return false
	}
}

// openGPUSDF creates a Vulkan instance and device of its own.
func openGPUSDF() (*gpuSDF, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errors.New("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	var selected *hal.ExposedAdapter
	adapters := instance.EnumerateAdapters(nil)
	for i := range adapters {
		slogger().Debug("raster: gpu adapter found",
			"name", adapters[i].Info.Name, "type", adapters[i].Info.DeviceType)
		if selected == nil && usableAdapter(adapters[i].Info.DeviceType) {
			selected = &adapters[i]
		}
	}
	if selected == nil {
		instance.Destroy()
		return nil, fmt.Errorf("no hardware GPU adapter among %d", len(adapters))
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	a := &gpuSDF{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}
	if err := a.createPipelines(); err != nil {
		a.Close()
		return nil, fmt.Errorf("create pipelines: %w", err)
	}
	return a, nil
}

// newSharedGPUSDF uses a device owned by someone else.
func newSharedGPUSDF(device hal.Device, queue hal.Queue, name string) (*gpuSDF, error) {
	a := &gpuSDF{device: device, queue: queue, adapterName: name, externalDevice: true}
	if err := a.createPipelines(); err != nil {
		a.Close()
		return nil, fmt.Errorf("create pipelines with shared device: %w", err)
	}
	return a, nil
}

func (a *gpuSDF) Name() string { return "sdf-gpu" }

func (a *gpuSDF) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.queue = nil
	a.instance = nil
}

// DrawShapes composites shapes into t. The target must be tightly packed.
func (a *gpuSDF) DrawShapes(t Target, shapes []Shape) error {
	if len(shapes) == 0 {
		return nil
	}
	if t.Stride != t.Width*4 || len(t.Data) < t.Width*t.Height*4 || t.Width <= 0 || t.Height <= 0 {
		return ErrFallbackToCPU
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.device == nil {
		return ErrNotInitialized
	}
	return a.dispatchBatch(t, shapes)
}

// packShapes serializes shapes in the shader's Shape layout.
func packShapes(shapes []Shape) []byte {
	out := make([]byte, gpuShapeSize*len(shapes))
	for i := range shapes {
		s := &shapes[i]
		param1, param2, param3 := s.Radius, s.HalfWidth, s.HalfHeight
		var stroked uint32
		if s.Stroked() {
			stroked = 1
		}
		words := [12]uint32{
			uint32(s.Kind),
			f32bits(s.CenterX), f32bits(s.CenterY),
			f32bits(param1), f32bits(param2), f32bits(param3),
			f32bits(s.HalfStroke), stroked,
			f32bits(s.Color.R), f32bits(s.Color.G), f32bits(s.Color.B), f32bits(s.Color.A),
		}
		for j, w := range words {
			binary.LittleEndian.PutUint32(out[i*gpuShapeSize+j*4:], w)
		}
	}
	return out
}

// makeFrameParams returns a 16-byte FrameParams for a single shape index.
func makeFrameParams(w, h, shapeIndex uint32) []byte {
	out := make([]byte, gpuFrameParamsSize)
	binary.LittleEndian.PutUint32(out[0:], w)
	binary.LittleEndian.PutUint32(out[4:], h)
	binary.LittleEndian.PutUint32(out[8:], shapeIndex)
	return out
}

func f32bits(v float64) uint32 {
	return math.Float32bits(float32(v))
}

// dispatchBatch sends all shapes to the GPU using multi-pass dispatch.
// Each shape gets its own compute pass, because loops over the shape array
// execute only their first iteration in the generated SPIR-V.
func (a *gpuSDF) dispatchBatch(t Target, shapes []Shape) error {
	w, h := uint32(t.Width), uint32(t.Height) //nolint:gosec // dimensions always fit uint32
	pixelBufSize := uint64(w) * uint64(h) * 4
	shapesBytes := packShapes(shapes)

	shapesBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sdf_shapes", Size: uint64(len(shapesBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create shapes buffer: %w", err)
	}
	defer a.device.DestroyBuffer(shapesBuf)

	storageBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sdf_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create storage buffer: %w", err)
	}
	defer a.device.DestroyBuffer(storageBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sdf_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	if err := a.queue.WriteBuffer(shapesBuf, 0, shapesBytes); err != nil {
		return fmt.Errorf("upload shapes: %w", err)
	}
	// image.RGBA rows are already the shader's little-endian packing.
	if err := a.queue.WriteBuffer(storageBuf, 0, t.Data[:pixelBufSize]); err != nil {
		return fmt.Errorf("upload pixels: %w", err)
	}

	uniformBufs, bindGroups, err := a.createPerShapeBindings(len(shapes), w, h, shapesBuf, uint64(len(shapesBytes)), storageBuf, pixelBufSize)
	defer a.cleanupBindings(uniformBufs, bindGroups)
	if err != nil {
		return err
	}

	if err := a.encodeMultiPass(bindGroups, storageBuf, stagingBuf, w, h, pixelBufSize); err != nil {
		return err
	}
	return a.readback(stagingBuf, t.Data[:pixelBufSize])
}

// createPerShapeBindings creates one uniform buffer (carrying shape_index)
// and one bind group per shape. All bind groups share the shapes and pixels
// buffers.
func (a *gpuSDF) createPerShapeBindings(
	n int, w, h uint32,
	shapesBuf hal.Buffer, shapesSize uint64,
	storageBuf hal.Buffer, pixelBufSize uint64,
) ([]hal.Buffer, []hal.BindGroup, error) {
	uniformBufs := make([]hal.Buffer, 0, n)
	bindGroups := make([]hal.BindGroup, 0, n)

	for i := 0; i < n; i++ {
		ub, err := a.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "sdf_params", Size: gpuFrameParamsSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create uniform buffer %d: %w", i, err)
		}
		uniformBufs = append(uniformBufs, ub)
		if err := a.queue.WriteBuffer(ub, 0, makeFrameParams(w, h, uint32(i))); err != nil { //nolint:gosec // shape index fits uint32
			return uniformBufs, bindGroups, fmt.Errorf("upload params %d: %w", i, err)
		}

		bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "sdf_bind", Layout: a.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: gpuFrameParamsSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: shapesBuf.NativeHandle(), Offset: 0, Size: shapesSize}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			},
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create bind group %d: %w", i, err)
		}
		bindGroups = append(bindGroups, bg)
	}
	return uniformBufs, bindGroups, nil
}

func (a *gpuSDF) encodeMultiPass(bindGroups []hal.BindGroup, storageBuf, stagingBuf hal.Buffer, w, h uint32, pixelBufSize uint64) error {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "sdf_batch_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sdf_batch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	for _, bg := range bindGroups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "sdf_pass"})
		pass.SetPipeline(a.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch((w+7)/8, (h+7)/8, 1)
		pass.End()
	}
	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	if _, err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := a.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return nil
}

// readback copies the staging buffer into dst.
func (a *gpuSDF) readback(stagingBuf hal.Buffer, dst []byte) error {
	m, err := a.device.MapBuffer(stagingBuf, 0, uint64(len(dst)))
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	copy(dst, unsafe.Slice((*byte)(m.Ptr), len(dst))) //nolint:gosec // mapping covers len(dst) bytes
	if err := a.device.UnmapBuffer(stagingBuf); err != nil {
		return fmt.Errorf("unmap staging buffer: %w", err)
	}
	return nil
}

func (a *gpuSDF) cleanupBindings(uniformBufs []hal.Buffer, bindGroups []hal.BindGroup) {
	for _, bg := range bindGroups {
		if bg != nil {
			a.device.DestroyBindGroup(bg)
		}
	}
	for _, ub := range uniformBufs {
		if ub != nil {
			a.device.DestroyBuffer(ub)
		}
	}
}

// compileShader converts the embedded WGSL to SPIR-V words.
func compileShader() ([]uint32, error) {
	spirv, err := naga.Compile(sdfBatchShaderSource)
	if err != nil {
		return nil, err
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("spir-v length %d is not word aligned", len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

func (a *gpuSDF) createPipelines() error {
	spirv, err := compileShader()
	if err != nil {
		return fmt.Errorf("compile sdf_batch shader: %w", err)
	}
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "sdf_batch",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sdf_batch_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "sdf_batch_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "sdf_batch_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline
	return nil
}

func (a *gpuSDF) destroyPipelines() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}
