package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineType identifies which pass a pipeline is created for.
type PipelineType int

const (
	// PipelineTypeRender is a color pipeline drawn in the main, multisampled pass.
	PipelineTypeRender PipelineType = iota

	// PipelineTypeShadow is a depth-only pipeline drawn into the shadow map.
	PipelineTypeShadow
)

var (
	errMissingVertexShader   = errors.New("pipeline requires a vertex shader")
	errMissingFragmentShader = errors.New("render pipeline requires a fragment shader")
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineType PipelineType
	pipelineKey  string

	vertexShader, fragmentShader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
}

// Pipeline describes a GPU render pipeline: its shaders and fixed-function state. The backend
// creates the GPU object from this description and stores it back with SetRenderPipeline.
type Pipeline interface {
	// Type returns the pass the pipeline belongs to.
	//
	// Returns:
	//   - PipelineType: PipelineTypeRender or PipelineTypeShadow
	Type() PipelineType

	// PipelineKey returns the unique key the pipeline is cached under.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Shader returns the shader for a stage, or nil if the stage is unset.
	//
	// Parameters:
	//   - shaderType: the stage
	//
	// Returns:
	//   - shader.Shader: the shader for that stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// Validate checks that the stages required by the pipeline type are present.
	//
	// Returns:
	//   - error: an error naming the missing stage
	Validate() error

	// BindGroupLayoutDescriptors merges the layouts declared by every stage.
	// Entries present in more than one stage have their visibility ORed together.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: one descriptor per group index, from 0 to the highest declared group
	BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	DepthTestEnabled() bool
	DepthWriteEnabled() bool
	DepthBias() int32
	DepthBiasSlopeScale() float32
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace

	// SetRenderPipeline stores the GPU pipeline created from this description.
	//
	// Parameters:
	//   - p: the created render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description with depth testing and writing on, no culling,
// a triangle list topology and counter-clockwise front faces, then applies opts.
//
// Parameters:
//   - pipelineKey: the unique key for the pipeline
//   - pipelineType: the pass the pipeline belongs to
//   - opts: functional options configuring shaders and state
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(pipelineKey string, pipelineType PipelineType, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		pipelineType:      pipelineType,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Type() PipelineType {
	return p.pipelineType
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil {
		return fmt.Errorf("%s: %w", p.pipelineKey, errMissingVertexShader)
	}
	if p.pipelineType == PipelineTypeRender && p.fragmentShader == nil {
		return fmt.Errorf("%s: %w", p.pipelineKey, errMissingFragmentShader)
	}
	return nil
}

func (p *pipeline) BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	var stages []map[int]wgpu.BindGroupLayoutDescriptor
	for _, s := range []shader.Shader{p.vertexShader, p.fragmentShader} {
		if s != nil {
			stages = append(stages, s.BindGroupLayoutDescriptors())
		}
	}
	return mergeBindGroupLayouts(stages...)
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

// mergeBindGroupLayouts merges per-stage bind group layouts into one descriptor per group index.
// Entries sharing a binding number have their Visibility flags ORed; the rest are kept as declared.
// Group indices with no declaration in any stage yield an empty descriptor.
//
// Parameters:
//   - stages: the layouts of each stage, keyed by group index
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: the merged descriptors indexed by group
func mergeBindGroupLayouts(stages ...map[int]wgpu.BindGroupLayoutDescriptor) []wgpu.BindGroupLayoutDescriptor {
	maxGroup := -1
	for _, stage := range stages {
		for g := range stage {
			maxGroup = max(maxGroup, g)
		}
	}

	merged := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for g := range merged {
		entries := make(map[uint32]wgpu.BindGroupLayoutEntry)
		for _, stage := range stages {
			desc, ok := stage[g]
			if !ok {
				continue
			}
			if merged[g].Label == "" {
				merged[g].Label = desc.Label
			}
			for _, e := range desc.Entries {
				if existing, ok := entries[e.Binding]; ok {
					existing.Visibility |= e.Visibility
					entries[e.Binding] = existing
				} else {
					entries[e.Binding] = e
				}
			}
		}

		list := make([]wgpu.BindGroupLayoutEntry, 0, len(entries))
		for _, e := range entries {
			list = append(list, e)
		}
		sort.Slice(list, func(i, j int) bool {
			return list[i].Binding < list[j].Binding
		})
		merged[g].Entries = list
	}
	return merged
}
