package loader

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"

	"github.com/rs/zerolog"
)

var (
	// ErrAssetLoad reports that the model file could not be read or parsed.
	ErrAssetLoad = errors.New("asset load failed")

	// ErrNoMeshFound reports that the model file parsed but contains no mesh with geometry.
	ErrNoMeshFound = errors.New("no mesh found in asset")

	// ErrLoaderPanic wraps a panic raised by the Loader while reading a model.
	ErrLoaderPanic = errors.New("loader panicked")

	// ErrLoadInProgress is returned by Start while a previous load has not completed.
	ErrLoadInProgress = errors.New("a load is already in progress")
)

// PipelineState is the lifecycle state of a Pipeline.
type PipelineState int32

const (
	PipelineStateIdle PipelineState = iota
	PipelineStateLoading
	PipelineStateReady
	PipelineStateFailed
)

func (s PipelineState) String() string {
	switch s {
	case PipelineStateIdle:
		return "idle"
	case PipelineStateLoading:
		return "loading"
	case PipelineStateReady:
		return "ready"
	case PipelineStateFailed:
		return "failed"
	default:
		return fmt.Sprintf("PipelineState(%d)", int32(s))
	}
}

// Result is the outcome of one background load, delivered exactly once per Start.
type Result struct {
	Path  string
	Asset *model.Asset
	Err   error
}

// SceneTarget is the part of a scene the pipeline inserts loaded models into.
type SceneTarget interface {
	Add(obj game_object.GameObject)
	Remove(obj game_object.GameObject)
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	mu *sync.Mutex

	state  PipelineState
	err    error
	path   string
	object game_object.GameObject
	taskID int

	logger  zerolog.Logger
	loader  Loader
	manager LoadingManager
	target  SceneTarget
	pool    worker.DynamicWorkerPool

	results chan Result
	reload  atomic.Bool
}

// Pipeline loads a model file in the background and inserts its first mesh into a scene.
//
// Start hands the file read and parse to a worker; the worker sends a single Result on
// a channel of capacity one. Poll drains that channel without blocking and performs the
// scene mutation on the caller's goroutine, which must be the goroutine that owns the scene.
// Every Start ends the item on the LoadingManager exactly once, on success or failure.
type Pipeline interface {
	// State returns the current lifecycle state.
	//
	// Returns:
	//   - PipelineState: Idle, Loading, Ready or Failed
	State() PipelineState

	// Err returns the error of the last failed load, or nil.
	// The error wraps ErrAssetLoad or ErrNoMeshFound.
	//
	// Returns:
	//   - error: the terminal error or nil
	Err() error

	// Object returns the object inserted by the last successful load, or nil.
	//
	// Returns:
	//   - game_object.GameObject: the inserted object or nil
	Object() game_object.GameObject

	// Path returns the path of the most recent Start.
	//
	// Returns:
	//   - string: the model path
	Path() string

	// Start begins loading the model at path on a background worker.
	//
	// Parameters:
	//   - path: the model file to load
	//
	// Returns:
	//   - error: ErrLoadInProgress if a load has not completed yet
	Start(path string) error

	// Poll completes a finished load if one is waiting, then starts a requested reload.
	// It never blocks.
	//
	// Returns:
	//   - bool: true if a load completed during this call
	Poll() bool

	// RequestReload asks the next Poll to load the current path again.
	// Safe to call from any goroutine.
	RequestReload()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline with the given options applied.
// Defaults are a glTF Loader, an empty LoadingManager, a single-worker pool and a no-op logger.
//
// Parameters:
//   - options: a variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the idle pipeline
func NewPipeline(options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:      &sync.Mutex{},
		state:   PipelineStateIdle,
		logger:  zerolog.Nop(),
		results: make(chan Result, 1),
	}
	for _, opt := range options {
		opt(p)
	}

	if p.loader == nil {
		p.loader = NewLoader(BackendTypeGLTF, WithLoaderLogger(p.logger))
	}
	if p.manager == nil {
		p.manager = NewLoadingManager()
	}
	if p.pool == nil {
		p.pool = worker.NewDynamicWorkerPool(1, 1, defaultWorkerIdle)
	}
	return p
}

func (p *pipeline) State() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *pipeline) Object() game_object.GameObject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.object
}

func (p *pipeline) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *pipeline) Start(path string) error {
	p.mu.Lock()
	if p.state == PipelineStateLoading {
		p.mu.Unlock()
		return ErrLoadInProgress
	}
	p.state = PipelineStateLoading
	p.path = path
	p.err = nil
	id := p.taskID
	p.taskID++
	p.mu.Unlock()

	p.logger.Info().Str("path", path).Msg("loading model")
	p.manager.ItemStart(path)

	ldr, results := p.loader, p.results
	p.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (out any, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrLoaderPanic, r)
					results <- Result{Path: path, Err: err}
				}
			}()

			asset, err := ldr.Load(path)
			results <- Result{Path: path, Asset: asset, Err: err}
			return asset, err
		},
	})
	return nil
}

func (p *pipeline) Poll() bool {
	completed := false
	select {
	case res := <-p.results:
		p.complete(res)
		completed = true
	default:
	}

	if p.State() != PipelineStateLoading && p.reload.CompareAndSwap(true, false) {
		if path := p.Path(); path != "" {
			p.logger.Info().Str("path", path).Msg("model file changed, reloading")
			if err := p.Start(path); err != nil {
				p.logger.Error().Err(err).Str("path", path).Msg("model reload failed")
			}
		}
	}
	return completed
}

func (p *pipeline) RequestReload() {
	p.reload.Store(true)
}

// complete applies a load result. A failed reload leaves the previously inserted object in place.
func (p *pipeline) complete(res Result) {
	defer p.manager.ItemEnd(res.Path)

	if res.Err != nil {
		err := fmt.Errorf("%w: %s: %w", ErrAssetLoad, res.Path, res.Err)
		p.fail(err)
		p.manager.ItemError(res.Path, err)
		return
	}

	p.logStructure(res.Asset)

	geoms := res.Asset.MeshGeometries()
	if len(geoms) == 0 {
		p.fail(fmt.Errorf("%w: %s", ErrNoMeshFound, res.Path))
		return
	}
	if len(geoms) > 1 {
		p.logger.Debug().Int("meshes", len(geoms)).Msg("using first mesh only")
	}

	obj := NewModelObject(res.Asset.Name, geoms[0])

	p.mu.Lock()
	prev := p.object
	p.object = obj
	p.state = PipelineStateReady
	p.mu.Unlock()

	if p.target != nil {
		if prev != nil {
			p.target.Remove(prev)
		}
		p.target.Add(obj)
	}
	bounds := geoms[0].Bounds()
	center, size := bounds.Center(), bounds.Size()
	p.logger.Info().
		Str("asset", res.Asset.Name).
		Int("vertices", len(geoms[0].Positions)).
		Int("indices", len(geoms[0].Indices)).
		Floats32("center", center[:]).
		Floats32("size", size[:]).
		Msg("model ready")
}

func (p *pipeline) fail(err error) {
	p.mu.Lock()
	p.state = PipelineStateFailed
	p.err = err
	p.mu.Unlock()

	p.logger.Error().Err(err).Msg("model load failed")
}

func (p *pipeline) logStructure(asset *model.Asset) {
	p.logger.Info().Str("asset", asset.Name).Msg("model structure")
	asset.Traverse(func(n *model.Node, depth int) bool {
		p.logger.Info().
			Str("type", string(n.Type)).
			Str("name", n.Name).
			Int("depth", depth).
			Msg("child")
		return true
	})
}
