package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the implementation of the BindGroupProvider interface.
type bindGroupProvider struct {
	label string

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
	vertexCount  int

	released bool
}

// BindGroupProvider holds the GPU resources one draw needs from a single bind group slot:
// the bind group and its layout, the uniform buffers, texture views and samplers it binds,
// and optionally the vertex and index buffers of a mesh.
//
// The backend fills a provider in; the renderer hands providers back to the backend at draw time.
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider. Calling it twice is a no-op.
	Release()

	// Released reports whether Release has been called.
	//
	// Returns:
	//   - bool: true once released
	Released() bool

	// Label returns the debug label used for every GPU object created for this provider.
	//
	// Returns:
	//   - string: the label
	Label() string

	// BindGroup returns the created bind group, or nil before initialization.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer bound at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if none is bound
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view bound at a binding index.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler bound at a binding index.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the mesh vertex buffer.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the mesh index buffer, or nil for non-indexed draws.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn.
	IndexCount() int

	// VertexCount returns the number of vertices drawn by non-indexed draws.
	VertexCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer binds a buffer at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)
	SetVertexBuffer(buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
	SetVertexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider.
//
// Parameters:
//   - label: the debug label for GPU objects created for this provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Released() bool {
	return p.released
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) SetVertexCount(count int) {
	p.vertexCount = count
}

func (p *bindGroupProvider) Release() {
	if p.released {
		return
	}
	p.released = true

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
