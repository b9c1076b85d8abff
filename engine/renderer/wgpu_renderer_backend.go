package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	errFramePending = errors.New("previous frame surface not yet presented")
	errNoFrame      = errors.New("no frame in progress")
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Shadow passes use their own encoder, a Depth32Float target with no color
	// attachment, and sample count 1.
	shadowFrameEncoder *wgpu.CommandEncoder
	shadowPass         *wgpu.RenderPassEncoder
}

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and recreates the MSAA and depth targets.
	// It must be called whenever the drawable size changes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if a render target could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. It takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules, pipeline layout and render pipeline
	// for a pipeline with both a vertex and a fragment stage.
	//
	// Parameters:
	//   - p: the pipeline to build
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// RegisterShadowPipeline creates a depth-only render pipeline for shadow map generation.
	// Shadow pipelines have no fragment stage, no color target, sample count 1 and a Depth32Float target.
	//
	// Parameters:
	//   - p: the pipeline containing the vertex shader and depth bias configuration
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterShadowPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data and stores the buffers on a provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffers on
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw index bytes, empty for non-indexed meshes
	//   - indexCount: the number of indices in indexData
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the layout, any missing uniform buffers, and the bind group for a provider.
	// Texture and sampler entries must already be bound on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to fill in
	//   - descriptor: the layout of the bind group
	//
	// Returns:
	//   - error: an error if the bind group could not be initialized
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes staged uniform data to the GPU queue.
	//
	// Parameters:
	//   - writes: the writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// WriteVertexBuffer overwrites the start of a provider's vertex buffer.
	//
	// Parameters:
	//   - provider: the provider holding the vertex buffer
	//   - data: the bytes to write
	WriteVertexBuffer(provider bind_group_provider.BindGroupProvider, data []byte)

	// CreateShadowDepthTexture creates a square Depth32Float texture and view for shadow mapping.
	//
	// Parameters:
	//   - size: the width and height in texels
	//
	// Returns:
	//   - *wgpu.TextureView: the depth view for both the shadow pass and lit sampling
	//   - *wgpu.Texture: the underlying texture (caller must release when done)
	//   - error: an error if texture creation fails
	CreateShadowDepthTexture(size int) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateComparisonSampler creates a comparison sampler suitable for PCF shadow mapping.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	//   - error: an error if sampler creation fails
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// BeginShadowFrame creates the command encoder for the frame's shadow passes.
	BeginShadowFrame() error

	// BeginShadowPass starts a depth-only pass that clears and renders into depthView.
	BeginShadowPass(depthView *wgpu.TextureView)

	// ShadowDrawCall encodes one draw in the current shadow pass.
	//
	// Parameters:
	//   - p: the shadow pipeline
	//   - mesh: the provider holding vertex and index buffers
	//   - bindGroups: the providers bound at groups 0..n
	ShadowDrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndShadowPass ends the current shadow pass.
	EndShadowPass()

	// EndShadowFrame finishes the shadow encoder and submits it.
	EndShadowFrame()

	// BeginFrame acquires the next swapchain texture and begins the main pass cleared to clearColor.
	//
	// Parameters:
	//   - clearColor: linear RGB clear color
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clearColor [3]float32) error

	// DrawCall encodes one draw in the main pass. Meshes without an index buffer are drawn
	// with their vertex count.
	//
	// Parameters:
	//   - p: the render pipeline
	//   - mesh: the provider holding vertex and index buffers
	//   - bindGroups: the providers bound at groups 0..n
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the main pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release releases the render targets, device, surface and instance.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device.
// The calling goroutine is locked to its OS thread for the lifetime of the backend.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if msaaEnabled {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = depth
	if b.depthTextureView, err = depth.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	// With MSAA the pass draws into the MSAA view and resolves into the swapchain view
	// set per frame. Without it the swapchain view is the attachment itself.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

// createPipelineLayout builds one bind group layout per group and the pipeline layout that holds them.
func (b *wgpuRendererBackendImpl) createPipelineLayout(p pipeline.Pipeline) (*wgpu.PipelineLayout, error) {
	descriptors := p.BindGroupLayoutDescriptors()
	layouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g := range descriptors {
		layout, err := b.device.CreateBindGroupLayout(&descriptors[g])
		if err != nil {
			return nil, fmt.Errorf("%s: bind group layout for group %d: %w", p.PipelineKey(), g, err)
		}
		layouts[g] = layout
	}

	return b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: layouts,
	})
}

func (b *wgpuRendererBackendImpl) createShaderModule(s shader.Shader) (*wgpu.ShaderModule, error) {
	return b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)

	vs, err := b.createShaderModule(vertexShader)
	if err != nil {
		return err
	}
	fs, err := b.createShaderModule(fragmentShader)
	if err != nil {
		return err
	}
	layout, err := b.createPipelineLayout(p)
	if err != nil {
		return err
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled:   p.DepthWriteEnabled(),
			DepthCompare:        depthCompare,
			DepthBias:           p.DepthBias(),
			DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) RegisterShadowPipeline(p pipeline.Pipeline) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	vs, err := b.createShaderModule(vertexShader)
	if err != nil {
		return err
	}
	layout, err := b.createPipelineLayout(p)
	if err != nil {
		return err
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Shadow Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled:   true,
			DepthCompare:        wgpu.CompareFunctionLess,
			DepthBias:           p.DepthBias(),
			DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		if layout, err = b.device.CreateBindGroupLayout(&descriptor); err != nil {
			return err
		}
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("%s: texture binding %d has no texture view", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			s := provider.Sampler(binding)
			if s == nil {
				return fmt.Errorf("%s: sampler binding %d has no sampler", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: s}
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
					Size:  entry.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Buffer: buf, Size: wgpu.WholeSize}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) WriteVertexBuffer(provider bind_group_provider.BindGroupProvider, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if buf := provider.VertexBuffer(); buf != nil && len(data) > 0 {
		b.queue.WriteBuffer(buf, 0, data)
	}
}

func (b *wgpuRendererBackendImpl) CreateShadowDepthTexture(size int) (*wgpu.TextureView, *wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(size),
			Height:             uint32(size),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create shadow depth texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create shadow depth view: %w", err)
	}
	return view, tex, nil
}

func (b *wgpuRendererBackendImpl) CreateComparisonSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create comparison sampler: %w", err)
	}
	return s, nil
}

func (b *wgpuRendererBackendImpl) BeginShadowFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.shadowFrameEncoder = encoder
	return nil
}

func (b *wgpuRendererBackendImpl) BeginShadowPass(depthView *wgpu.TextureView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowFrameEncoder == nil {
		return
	}

	b.shadowPass = b.shadowFrameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
}

func (b *wgpuRendererBackendImpl) ShadowDrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowPass == nil {
		return
	}
	encodeDraw(b.shadowPass, p, mesh, bindGroups)
}

func (b *wgpuRendererBackendImpl) EndShadowPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowPass == nil {
		return
	}
	b.shadowPass.End()
	b.shadowPass.Release()
	b.shadowPass = nil
}

func (b *wgpuRendererBackendImpl) EndShadowFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadowFrameEncoder == nil {
		return
	}

	commandBuffer, err := b.shadowFrameEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	b.shadowFrameEncoder.Release()
	b.shadowFrameEncoder = nil
}

func (b *wgpuRendererBackendImpl) BeginFrame(clearColor [3]float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return errFramePending
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	color := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		color.ResolveTarget = view
	} else {
		color.View = view
	}
	color.ClearValue = wgpu.Color{
		R: float64(clearColor[0]),
		G: float64(clearColor[1]),
		B: float64(clearColor[2]),
		A: 1.0,
	}

	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	encodeDraw(b.framePass, p, mesh, bindGroups)
}

// encodeDraw sets the pipeline, bind groups and buffers on a pass and records one draw.
func encodeDraw(pass *wgpu.RenderPassEncoder, p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) {
	pass.SetPipeline(p.RenderPipeline())
	for i, bg := range bindGroups {
		pass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	if mesh.IndexBuffer() == nil {
		pass.Draw(uint32(mesh.VertexCount()), 1, 0, 0)
		return
	}
	pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errNoFrame
	}

	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameView = nil
		b.frameSurface = nil
		return err
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()
	b.frameView.Release()
	b.frameView = nil
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	b.queue = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
