package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithTextureView binds a texture view at a binding index before the bind group is created.
//
// Parameters:
//   - binding: the binding index for this texture view
//   - tv: the texture view
//
// Returns:
//   - BindGroupProviderOption: a function that binds the texture view
func WithTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.textureViews[binding] = tv
	}
}

// WithSampler binds a sampler at a binding index before the bind group is created.
//
// Parameters:
//   - binding: the binding index for this sampler
//   - s: the sampler
//
// Returns:
//   - BindGroupProviderOption: a function that binds the sampler
func WithSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.samplers[binding] = s
	}
}
