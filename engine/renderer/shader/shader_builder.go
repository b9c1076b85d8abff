package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the entry point parsed from the source.
//
// Parameters:
//   - name: the entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the layout of a bind group the pipeline is built with.
// A layout may declare entries the source does not use.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor
//
// Returns:
//   - ShaderBuilderOption: a function that registers the layout
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayout appends a vertex buffer layout. Slots are assigned in call order.
//
// Parameters:
//   - layout: the vertex buffer layout
//
// Returns:
//   - ShaderBuilderOption: a function that appends the layout
func WithVertexLayout(layout wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = append(s.vertexLayouts, layout)
	}
}
