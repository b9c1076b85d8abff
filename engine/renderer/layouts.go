package renderer

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/assets"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys registered by the renderer.
const (
	PipelineKeyShadow          = "shadow"
	PipelineKeyLit             = "lit"
	PipelineKeyLitNoDepthWrite = "lit_no_depth_write"
	PipelineKeyHelperLines     = "helper_lines"
)

// Binding indices within the frame bind group (group 0 of the lit and line pipelines).
const (
	frameBindingCamera = iota
	frameBindingLights
	frameBindingShadowMap
	frameBindingShadowSampler
)

// helperVertexCapacity is the number of line vertices the helper buffer holds: 12 edges.
const helperVertexCapacity = 24

const helperVertexStride = uint64(unsafe.Sizeof([3]float32{}))

var (
	cameraUniformSize = uint64(unsafe.Sizeof(camera.GPUCameraUniform{}))
	lightsUniformSize = uint64(unsafe.Sizeof(light.GPULightsUniform{}))
	objectUniformSize = uint64(unsafe.Sizeof(game_object.GPUObjectUniform{}))
	shadowUniformSize = uint64(unsafe.Sizeof([16]float32{}))
)

func uniformEntry(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

// frameLayoutDescriptor is group 0 of the lit and line pipelines: camera, lights, shadow map and its comparison sampler.
func frameLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(frameBindingCamera, cameraUniformSize),
			uniformEntry(frameBindingLights, lightsUniformSize),
			{
				Binding:    frameBindingShadowMap,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    frameBindingShadowSampler,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeComparison,
				},
			},
		},
	}
}

// shadowFrameLayoutDescriptor is group 0 of the shadow pipeline: the light's view-projection.
func shadowFrameLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Shadow Frame",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, shadowUniformSize)},
	}
}

// objectLayoutDescriptor is group 1 of the lit and shadow pipelines: one object's transform and material.
func objectLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Object",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, objectUniformSize)},
	}
}

func meshVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: model.GPUVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

func lineVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: helperVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}
}

// stage loads an embedded WGSL file and builds the shader for one stage of it.
func stage(name string, shaderType shader.ShaderType, options ...shader.ShaderBuilderOption) (shader.Shader, error) {
	src, err := assets.Shader(name)
	if err != nil {
		return nil, err
	}
	s, err := shader.NewShader(name, shaderType, src, options...)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return s, nil
}

// buildPipelines describes the viewer's four pipelines:
//   - shadow: depth-only, from the sun, with slope-scaled bias
//   - lit: Phong with shadows
//   - lit_no_depth_write: the same for surfaces that never occlude
//   - helper_lines: the shadow frustum outline
func buildPipelines() ([]pipeline.Pipeline, error) {
	frame := shader.WithBindGroupLayout(0, frameLayoutDescriptor())
	object := shader.WithBindGroupLayout(1, objectLayoutDescriptor())
	mesh := shader.WithVertexLayout(meshVertexLayout())

	litVS, err := stage(assets.ShaderLit, shader.ShaderTypeVertex, frame, object, mesh)
	if err != nil {
		return nil, err
	}
	litFS, err := stage(assets.ShaderLit, shader.ShaderTypeFragment, frame, object)
	if err != nil {
		return nil, err
	}
	shadowVS, err := stage(assets.ShaderShadow, shader.ShaderTypeVertex,
		shader.WithBindGroupLayout(0, shadowFrameLayoutDescriptor()), object, mesh)
	if err != nil {
		return nil, err
	}
	lineVS, err := stage(assets.ShaderLine, shader.ShaderTypeVertex, frame, shader.WithVertexLayout(lineVertexLayout()))
	if err != nil {
		return nil, err
	}
	lineFS, err := stage(assets.ShaderLine, shader.ShaderTypeFragment, frame)
	if err != nil {
		return nil, err
	}

	return []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineKeyShadow, pipeline.PipelineTypeShadow,
			pipeline.WithVertexShader(shadowVS),
			pipeline.WithDepthBias(2, 2.0),
		),
		pipeline.NewPipeline(PipelineKeyLit, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(litVS),
			pipeline.WithFragmentShader(litFS),
		),
		pipeline.NewPipeline(PipelineKeyLitNoDepthWrite, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(litVS),
			pipeline.WithFragmentShader(litFS),
			pipeline.WithDepthWriteEnabled(false),
		),
		pipeline.NewPipeline(PipelineKeyHelperLines, pipeline.PipelineTypeRender,
			pipeline.WithVertexShader(lineVS),
			pipeline.WithFragmentShader(lineFS),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
			pipeline.WithDepthWriteEnabled(false),
		),
	}, nil
}
