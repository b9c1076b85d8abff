package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

var (
	errEmptySource       = errors.New("shader source is empty")
	errMissingEntryPoint = errors.New("shader has no entry point for its stage")
	errUndeclaredBinding = errors.New("shader binding is not covered by a declared bind group layout")
)

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string

	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	bindings                   []Binding
}

// Shader is a WGSL stage ready for pipeline creation: its source, entry point, the bind group
// layouts its pipeline is built with, and the vertex buffer layouts it consumes.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage the shader is compiled for.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// BindGroupLayoutDescriptors retrieves the declared bind group layouts keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts retrieves the vertex buffer layouts consumed by a vertex shader.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, in buffer slot order
	VertexLayouts() []wgpu.VertexBufferLayout

	// Bindings lists the resource declarations found in the source.
	//
	// Returns:
	//   - []Binding: declarations ordered by group then binding
	Bindings() []Binding
}

var _ Shader = &shader{}

// NewShader creates a Shader from WGSL source. The entry point is parsed from the source unless
// WithEntryPoint overrides it. Every @group/@binding the source declares must be covered by a layout
// passed through WithBindGroupLayout.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the shader is compiled for
//   - source: the WGSL source code
//   - options: functional options declaring layouts and overrides
//
// Returns:
//   - Shader: the validated shader
//   - error: an error if the source is empty, has no entry point, or declares an uncovered binding
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: %w", key, errEmptySource)
	}

	s := &shader{
		key:                        key,
		source:                     source,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindings:                   parseBindings(source),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.entryPoint == "" {
		s.entryPoint = parseEntryPoint(source, shaderType)
	}
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w", key, errMissingEntryPoint)
	}

	for _, b := range s.bindings {
		if !s.declares(b.Group, b.Binding) {
			return nil, fmt.Errorf("shader %s: %s at group %d binding %d: %w", key, b.Name, b.Group, b.Binding, errUndeclaredBinding)
		}
	}
	return s, nil
}

func (s *shader) declares(group, binding int) bool {
	desc, ok := s.bindGroupLayoutDescriptors[group]
	if !ok {
		return false
	}
	for _, e := range desc.Entries {
		if int(e.Binding) == binding {
			return true
		}
	}
	return false
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Bindings() []Binding {
	return s.bindings
}
