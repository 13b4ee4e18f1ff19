//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/metaball"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// fenceTimeout bounds the wait for one frame.
const fenceTimeout = 5 * time.Second

// Evaluator runs the metaball kernel as a wgpu/hal compute shader. One
// invocation evaluates one pixel; the result is read back into the target.
//
// The pipeline is built once. Uniform, pixel and staging buffers persist
// across frames and are recreated only when the target size changes.
type Evaluator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	uniformBuf hal.Buffer
	pixelBuf   hal.Buffer
	stagingBuf hal.Buffer
	bindGroup  hal.BindGroup
	width      uint32
	height     uint32

	uniforms [metaball.UniformSize]byte
	readback []byte

	ready    bool
	external bool // shared device, not destroyed on Close
}

var _ metaball.Evaluator = (*Evaluator)(nil)

// Name returns "wgpu".
func (e *Evaluator) Name() string { return "wgpu" }

// Init opens a Vulkan device and builds the compute pipeline.
func (e *Evaluator) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.initGPU(); err != nil {
		e.releaseLocked()
		return fmt.Errorf("metaball/gpu: %w", err)
	}
	return nil
}

// Close releases every GPU resource. A shared device is left alive.
func (e *Evaluator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseLocked()
}

func (e *Evaluator) releaseLocked() {
	e.destroyTargetBuffers()
	e.destroyPipeline()
	if !e.external {
		if e.device != nil {
			e.device.Destroy()
		}
		if e.instance != nil {
			e.instance.Destroy()
		}
	}
	e.device = nil
	e.instance = nil
	e.queue = nil
	e.ready = false
	e.external = false
}

// SetDeviceProvider switches the evaluator to a shared GPU device. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func (e *Evaluator) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return errors.New("metaball/gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return errors.New("metaball/gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return errors.New("metaball/gpu: provider HalQueue is not hal.Queue")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseLocked()
	e.device = device
	e.queue = queue
	e.external = true

	if err := e.createPipeline(); err != nil {
		return fmt.Errorf("metaball/gpu: create pipeline with shared device: %w", err)
	}
	if err := e.createUniformBuffer(); err != nil {
		return fmt.Errorf("metaball/gpu: %w", err)
	}
	e.ready = true
	metaball.Logger().Info("metaball/gpu: switched to shared GPU device", "format", provider.SurfaceFormat())
	return nil
}

// Evaluate renders one frame into target. It returns
// metaball.ErrFallbackToCPU when no device is available.
func (e *Evaluator) Evaluate(target metaball.RenderTarget, u *metaball.UniformSet) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return metaball.ErrFallbackToCPU
	}
	if target.Width <= 0 || target.Height <= 0 {
		return nil
	}

	w, h := uint32(target.Width), uint32(target.Height) //nolint:gosec // dimensions checked positive
	if err := e.ensureTargetBuffers(w, h); err != nil {
		return err
	}

	u.Encode(&e.uniforms)
	e.queue.WriteBuffer(e.uniformBuf, 0, e.uniforms[:])

	if err := e.dispatch(w, h); err != nil {
		return err
	}
	unpackPixels(e.readback, target)
	metaball.Logger().Debug("metaball/gpu: frame evaluated", "width", w, "height", h)
	return nil
}

func (e *Evaluator) dispatch(w, h uint32) error {
	encoder, err := e.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "metaball_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("metaball_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	gx, gy := dispatchSize(w, h)
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "metaball_pass"})
	pass.SetPipeline(e.pipeline)
	pass.SetBindGroup(0, e.bindGroup, nil)
	pass.Dispatch(gx, gy, 1)
	pass.End()

	size := pixelBufferSize(w, h)
	encoder.CopyBufferToBuffer(e.pixelBuf, e.stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer e.device.FreeCommandBuffer(cmdBuf)

	fence, err := e.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer e.device.DestroyFence(fence)
	if err := e.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := e.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	if err := e.queue.ReadBuffer(e.stagingBuf, 0, e.readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

func (e *Evaluator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return errors.New("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	e.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return errors.New("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	e.device = openDev.Device
	e.queue = openDev.Queue

	if err := e.createPipeline(); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	if err := e.createUniformBuffer(); err != nil {
		return err
	}
	e.ready = true
	metaball.Logger().Info("metaball/gpu: evaluator initialized", "adapter", selected.Info.Name)
	return nil
}

func (e *Evaluator) createPipeline() error {
	kernel := metaball.Kernel()
	if kernel.Source == "" {
		return fmt.Errorf("kernel source unavailable: %w", kernel.Err)
	}

	shader, err := createKernelModule(e.device, kernel)
	if err != nil {
		return fmt.Errorf("compile kernel: %w", err)
	}
	e.shader = shader

	bindLayout, err := e.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "metaball_bind_layout",
		Entries: bindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	e.bindLayout = bindLayout

	pipeLayout, err := e.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "metaball_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{e.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	e.pipeLayout = pipeLayout

	pipeline, err := e.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "metaball_pipeline", Layout: e.pipeLayout,
		Compute: hal.ComputeState{Module: e.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	e.pipeline = pipeline
	return nil
}

// createKernelModule builds the shader module from the naga-compiled SPIR-V.
// The WGSL source is handed to the driver only when naga failed.
func createKernelModule(device hal.Device, kernel *metaball.KernelProgram) (hal.ShaderModule, error) {
	src := hal.ShaderSource{SPIRV: kernel.SPIRV}
	if kernel.SPIRV == nil {
		metaball.Logger().Warn("metaball/gpu: no SPIR-V, compiling WGSL in the driver", "err", kernel.Err)
		src = hal.ShaderSource{WGSL: kernel.Source}
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "metaball_kernel",
		Source: src,
	})
}

func (e *Evaluator) createUniformBuffer() error {
	ub, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "metaball_uniforms", Size: metaball.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	e.uniformBuf = ub
	return nil
}

// ensureTargetBuffers (re)creates the pixel, staging and bind group
// resources when the target size changes.
func (e *Evaluator) ensureTargetBuffers(w, h uint32) error {
	if e.bindGroup != nil && e.width == w && e.height == h {
		return nil
	}
	e.destroyTargetBuffers()
	size := pixelBufferSize(w, h)

	pixelBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "metaball_pixels", Size: size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create pixel buffer: %w", err)
	}
	e.pixelBuf = pixelBuf

	stagingBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "metaball_staging", Size: size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	e.stagingBuf = stagingBuf

	bg, err := e.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "metaball_bind", Layout: e.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: e.uniformBuf.NativeHandle(), Offset: 0, Size: metaball.UniformSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: e.pixelBuf.NativeHandle(), Offset: 0, Size: size}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	e.bindGroup = bg
	e.width, e.height = w, h
	e.readback = make([]byte, size)
	metaball.Logger().Debug("metaball/gpu: target buffers resized", "width", w, "height", h)
	return nil
}

func (e *Evaluator) destroyTargetBuffers() {
	if e.device == nil {
		return
	}
	if e.bindGroup != nil {
		e.device.DestroyBindGroup(e.bindGroup)
		e.bindGroup = nil
	}
	if e.stagingBuf != nil {
		e.device.DestroyBuffer(e.stagingBuf)
		e.stagingBuf = nil
	}
	if e.pixelBuf != nil {
		e.device.DestroyBuffer(e.pixelBuf)
		e.pixelBuf = nil
	}
	e.width, e.height = 0, 0
}

func (e *Evaluator) destroyPipeline() {
	if e.device == nil {
		return
	}
	if e.uniformBuf != nil {
		e.device.DestroyBuffer(e.uniformBuf)
		e.uniformBuf = nil
	}
	if e.pipeline != nil {
		e.device.DestroyComputePipeline(e.pipeline)
		e.pipeline = nil
	}
	if e.pipeLayout != nil {
		e.device.DestroyPipelineLayout(e.pipeLayout)
		e.pipeLayout = nil
	}
	if e.bindLayout != nil {
		e.device.DestroyBindGroupLayout(e.bindLayout)
		e.bindLayout = nil
	}
	if e.shader != nil {
		e.device.DestroyShaderModule(e.shader)
		e.shader = nil
	}
}
