package renderer

import "github.com/rs/zerolog"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithShadowMapSize sets the width and height of the square shadow map. Non-positive sizes are ignored.
//
// Parameters:
//   - size: the size in texels
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow map size to a renderer
func WithShadowMapSize(size int) RendererBuilderOption {
	return func(r *renderer) {
		if size > 0 {
			r.shadowMapSize = size
		}
	}
}

// WithLogger sets the logger used for renderer diagnostics.
func WithLogger(logger zerolog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}
