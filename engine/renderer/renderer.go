package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

var (
	errReleased = errors.New("renderer released")
	errNoCamera = errors.New("scene has no camera")
)

// DefaultShadowMapSize is the width and height of the shadow map in texels.
const DefaultShadowMapSize = 1024

// objectResources are the GPU resources owned by one scene object.
type objectResources struct {
	model   model.Model
	mesh    bind_group_provider.BindGroupProvider
	uniform bind_group_provider.BindGroupProvider
}

func (o *objectResources) release() {
	o.mesh.Release()
	o.uniform.Release()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger zerolog.Logger

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	shadowMapSize        int

	width  int
	height int

	frame         bind_group_provider.BindGroupProvider
	shadowFrame   bind_group_provider.BindGroupProvider
	helper        bind_group_provider.BindGroupProvider
	shadowTexture *wgpu.Texture
	shadowView    *wgpu.TextureView

	objects  map[uint64]*objectResources
	released bool
}

// Renderer draws a scene.Scene to the window surface.
//
// Each frame renders a depth-only shadow pass from the sun, a lit pass with Phong shading
// and PCF shadows, and, when the scene asks for it, the outline of the shadow camera.
// GPU resources for scene objects are created the first time an object is drawn and
// released once it leaves the scene.
type Renderer interface {
	// Pipeline retrieves the registered Pipeline associated with the given key.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves every registered Pipeline keyed by PipelineKey.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a copy of the pipeline cache
	Pipelines() map[string]pipeline.Pipeline

	// Resize reconfigures the surface for a new drawable size.
	// A zero width or height is recorded but the surface is left as is, and frames are skipped until a non-zero size arrives.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// Size returns the size set by the last Resize.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (width, height int)

	// SetPresentMode sets the surface present mode. It takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render draws one frame of the scene and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: an error if the frame could not be recorded or submitted
	Render(s scene.Scene) error

	// Release frees every GPU resource held by the renderer. The renderer cannot be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into a window's surface.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - win: the window providing the surface and its initial size
//   - options: a variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the GPU device, pipelines or render targets could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	var (
		backend RendererBackend
		err     error
	)
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	if err := r.init(backend, win.Width(), win.Height()); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        zerolog.Nop(),
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		shadowMapSize: DefaultShadowMapSize,
		objects:       make(map[uint64]*objectResources),
	}

	// Options are applied before the backend exists so adapter and MSAA choices reach it.
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init configures the surface, registers the pipelines and creates the per-frame resources.
func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)

	if err := r.Resize(width, height); err != nil {
		return err
	}

	pipelines, err := buildPipelines()
	if err != nil {
		return err
	}
	for _, p := range pipelines {
		if err := r.registerPipeline(p); err != nil {
			return fmt.Errorf("renderer: register %s: %w", p.PipelineKey(), err)
		}
	}

	r.shadowView, r.shadowTexture, err = r.backend.CreateShadowDepthTexture(r.shadowMapSize)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	sampler, err := r.backend.CreateComparisonSampler()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	r.frame = bind_group_provider.NewBindGroupProvider("Frame",
		bind_group_provider.WithTextureView(frameBindingShadowMap, r.shadowView),
		bind_group_provider.WithSampler(frameBindingShadowSampler, sampler),
	)
	if err := r.backend.InitBindGroup(r.frame, frameLayoutDescriptor()); err != nil {
		return fmt.Errorf("renderer: frame bind group: %w", err)
	}

	r.shadowFrame = bind_group_provider.NewBindGroupProvider("Shadow Frame")
	if err := r.backend.InitBindGroup(r.shadowFrame, shadowFrameLayoutDescriptor()); err != nil {
		return fmt.Errorf("renderer: shadow frame bind group: %w", err)
	}

	r.helper = bind_group_provider.NewBindGroupProvider("Shadow Helper")
	if err := r.backend.InitMeshBuffers(r.helper, make([]byte, helperVertexCapacity*helperVertexStride), nil, 0); err != nil {
		return fmt.Errorf("renderer: helper buffer: %w", err)
	}

	r.logger.Debug().
		Int("pipelines", len(r.pipelineCache)).
		Int("shadowMapSize", r.shadowMapSize).
		Uint32("msaa", uint32(r.msaa)).
		Msg("renderer ready")
	return nil
}

func (r *renderer) registerPipeline(p pipeline.Pipeline) error {
	if _, exists := r.pipelineCache[p.PipelineKey()]; exists {
		return nil
	}

	var err error
	switch p.Type() {
	case pipeline.PipelineTypeShadow:
		err = r.backend.RegisterShadowPipeline(p)
	default:
		err = r.backend.RegisterRenderPipeline(p)
	}
	if err != nil {
		return err
	}
	r.pipelineCache[p.PipelineKey()] = p
	return nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 || r.backend == nil {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("renderer: resize to %dx%d: %w", width, height, err)
	}
	return nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	if r.backend != nil {
		r.backend.SetPresentMode(mode)
	}
}

func (r *renderer) Render(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return errReleased
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	cam := s.Camera()
	if cam == nil {
		return fmt.Errorf("renderer: %w", errNoCamera)
	}

	objects := s.Objects()
	if err := r.syncObjects(objects); err != nil {
		return err
	}

	r.writeUniforms(s, cam, objects)

	lines := s.HelperLines()
	if len(lines) > helperVertexCapacity {
		lines = lines[:helperVertexCapacity]
	}
	if len(lines) > 0 {
		r.backend.WriteVertexBuffer(r.helper, common.SliceToBytes(lines))
		r.helper.SetVertexCount(len(lines))
	}

	if err := r.shadowPass(s, objects); err != nil {
		return err
	}

	bg := s.Background()
	clearColor := [3]float32{common.SRGBToLinear(bg[0]), common.SRGBToLinear(bg[1]), common.SRGBToLinear(bg[2])}
	if err := r.backend.BeginFrame(clearColor); err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}

	lit := r.pipelineCache[PipelineKeyLit]
	litNoDepthWrite := r.pipelineCache[PipelineKeyLitNoDepthWrite]
	for _, obj := range objects {
		res, ok := r.objects[obj.ID()]
		if !ok {
			continue
		}
		p := lit
		if mat := obj.Material(); mat != nil && !mat.DepthWrite() {
			p = litNoDepthWrite
		}
		r.backend.DrawCall(p, res.mesh, []bind_group_provider.BindGroupProvider{r.frame, res.uniform})
	}

	if len(lines) > 0 {
		r.backend.DrawCall(r.pipelineCache[PipelineKeyHelperLines], r.helper, []bind_group_provider.BindGroupProvider{r.frame})
	}

	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("renderer: end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

// syncObjects creates resources for new or re-modelled objects and releases those of objects no longer drawn.
func (r *renderer) syncObjects(objects []game_object.GameObject) error {
	seen := make(map[uint64]struct{}, len(objects))
	for _, obj := range objects {
		m := obj.Model()
		if m == nil || len(m.VertexData()) == 0 {
			continue
		}
		id := obj.ID()
		seen[id] = struct{}{}

		if res, ok := r.objects[id]; ok {
			if res.model == m {
				continue
			}
			res.release()
			delete(r.objects, id)
		}

		res, err := r.createObjectResources(id, m)
		if err != nil {
			return err
		}
		r.objects[id] = res
	}

	for id, res := range r.objects {
		if _, ok := seen[id]; !ok {
			res.release()
			delete(r.objects, id)
		}
	}
	return nil
}

func (r *renderer) createObjectResources(id uint64, m model.Model) (*objectResources, error) {
	label := fmt.Sprintf("Object %d", id)
	res := &objectResources{
		model:   m,
		mesh:    bind_group_provider.NewBindGroupProvider(label + " Mesh"),
		uniform: bind_group_provider.NewBindGroupProvider(label),
	}

	if err := r.backend.InitMeshBuffers(res.mesh, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		res.release()
		return nil, fmt.Errorf("renderer: %s mesh: %w", label, err)
	}
	if m.IndexCount() == 0 {
		res.mesh.SetVertexCount(len(m.VertexData()) / int(model.GPUVertexStride))
	}
	if err := r.backend.InitBindGroup(res.uniform, objectLayoutDescriptor()); err != nil {
		res.release()
		return nil, fmt.Errorf("renderer: %s bind group: %w", label, err)
	}

	r.logger.Debug().Uint64("id", id).Str("model", m.Name()).Int("indices", m.IndexCount()).Msg("object uploaded")
	return res, nil
}

func (r *renderer) writeUniforms(s scene.Scene, cam camera.Camera, objects []game_object.GameObject) {
	cu := camera.NewGPUCameraUniform(cam)
	lu := light.NewGPULightsUniform(s.Sun(), s.Hemisphere())
	shadowVP := s.Sun().ShadowViewProjection()

	writes := make([]bind_group_provider.BufferWrite, 0, 3+len(objects))
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: r.frame, Binding: frameBindingCamera, Data: cu.Marshal()},
		bind_group_provider.BufferWrite{Provider: r.frame, Binding: frameBindingLights, Data: lu.Marshal()},
		bind_group_provider.BufferWrite{Provider: r.shadowFrame, Binding: 0, Data: common.SliceToBytes(shadowVP[:])},
	)
	for _, obj := range objects {
		res, ok := r.objects[obj.ID()]
		if !ok {
			continue
		}
		ou := game_object.NewGPUObjectUniform(obj)
		writes = append(writes, bind_group_provider.BufferWrite{Provider: res.uniform, Binding: 0, Data: ou.Marshal()})
	}
	r.backend.WriteBuffers(writes)
}

// shadowPass clears the shadow map and renders every shadow-casting object into it from the sun.
func (r *renderer) shadowPass(s scene.Scene, objects []game_object.GameObject) error {
	if err := r.backend.BeginShadowFrame(); err != nil {
		return fmt.Errorf("renderer: begin shadow frame: %w", err)
	}
	r.backend.BeginShadowPass(r.shadowView)

	if s.Sun().CastsShadows() {
		shadow := r.pipelineCache[PipelineKeyShadow]
		for _, obj := range objects {
			if !obj.CastShadows() {
				continue
			}
			res, ok := r.objects[obj.ID()]
			if !ok {
				continue
			}
			r.backend.ShadowDrawCall(shadow, res.mesh, []bind_group_provider.BindGroupProvider{r.shadowFrame, res.uniform})
		}
	}

	r.backend.EndShadowPass()
	r.backend.EndShadowFrame()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true

	for id, res := range r.objects {
		res.release()
		delete(r.objects, id)
	}
	for _, p := range []bind_group_provider.BindGroupProvider{r.frame, r.shadowFrame, r.helper} {
		if p != nil {
			p.Release()
		}
	}
	if r.shadowTexture != nil {
		r.shadowTexture.Release()
		r.shadowTexture = nil
	}
	for _, p := range r.pipelineCache {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
		}
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
