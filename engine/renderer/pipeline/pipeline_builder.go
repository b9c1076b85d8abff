package pipeline

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the vertex shader for this pipeline.
//
// Parameters:
//   - s: the vertex shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex shader for this pipeline
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the fragment shader for this pipeline.
//
// Parameters:
//   - s: the fragment shader to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment shader for this pipeline
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled sets whether fragments are depth tested. When disabled the compare function is Always.
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled sets whether fragments write depth. Surfaces that must never occlude,
// such as the ground plane, are drawn with depth writes off.
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthBias sets the constant and slope-scaled depth bias.
//
// Parameters:
//   - bias: the constant depth bias
//   - slopeScale: the slope-scaled depth bias
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth bias for this pipeline
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithCullMode sets the face culling mode.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order considered front-facing.
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}
