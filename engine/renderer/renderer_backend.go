package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA maps a configured sample count to a supported MSAASampleCount.
// Anything other than 1 selects MSAA4x.
//
// Parameters:
//   - samples: the configured sample count
//
// Returns:
//   - MSAASampleCount: the supported sample count
func ParseMSAA(samples int) MSAASampleCount {
	if samples == 1 {
		return MSAAOff
	}
	return MSAA4x
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
