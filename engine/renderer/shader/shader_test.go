package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = `
// @vertex fn commented_out() {}
struct Camera { viewProj: mat4x4f }

@group(0) @binding(0) var<uniform> camera: Camera;
/* @group(0) @binding(7) var<uniform> ignored: Camera; */
@group(1) @binding(1) var shadowMap: texture_depth_2d;
@group(1) @binding(0) var<uniform> object: Camera;

@vertex
fn vs_main(@location(0) p: vec3f) -> @builtin(position) vec4f {
    return camera.viewProj * vec4f(p, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4f {
    return vec4f(1.0);
}
`

func layout(bindings ...uint32) wgpu.BindGroupLayoutDescriptor {
	desc := wgpu.BindGroupLayoutDescriptor{}
	for _, b := range bindings {
		desc.Entries = append(desc.Entries, wgpu.BindGroupLayoutEntry{Binding: b})
	}
	return desc
}

func TestParseEntryPoint(t *testing.T) {
	assert.Equal(t, "vs_main", parseEntryPoint(testSource, ShaderTypeVertex))
	assert.Equal(t, "fs_main", parseEntryPoint(testSource, ShaderTypeFragment))
	assert.Empty(t, parseEntryPoint("fn helper() {}", ShaderTypeVertex))
}

func TestParseBindings_SortedAndCommentsIgnored(t *testing.T) {
	got := parseBindings(testSource)
	require.Len(t, got, 3)
	assert.Equal(t, Binding{Group: 0, Binding: 0, AddressSpace: "uniform", Name: "camera", Type: "Camera"}, got[0])
	assert.Equal(t, Binding{Group: 1, Binding: 0, AddressSpace: "uniform", Name: "object", Type: "Camera"}, got[1])
	assert.Equal(t, Binding{Group: 1, Binding: 1, Name: "shadowMap", Type: "texture_depth_2d"}, got[2])
}

func TestNewShader(t *testing.T) {
	s, err := NewShader("test", ShaderTypeFragment, testSource,
		WithBindGroupLayout(0, layout(0)),
		WithBindGroupLayout(1, layout(0, 1)),
	)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeFragment, s.ShaderType())
	assert.Len(t, s.BindGroupLayoutDescriptors(), 2)
}

func TestNewShader_Errors(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex, "")
	assert.ErrorIs(t, err, errEmptySource)

	_, err = NewShader("noentry", ShaderTypeVertex, "fn f() {}")
	assert.ErrorIs(t, err, errMissingEntryPoint)

	_, err = NewShader("uncovered", ShaderTypeVertex, testSource, WithBindGroupLayout(0, layout(0)))
	assert.ErrorIs(t, err, errUndeclaredBinding)
}

func TestNewShader_EntryPointOverride(t *testing.T) {
	s, err := NewShader("override", ShaderTypeVertex, "fn custom() {}", WithEntryPoint("custom"))
	require.NoError(t, err)
	assert.Equal(t, "custom", s.EntryPoint())
}
