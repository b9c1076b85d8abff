package loader

import (
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/rs/zerolog"
)

// defaultWorkerIdle is how long the default load worker lingers before exiting.
const defaultWorkerIdle = 1 * time.Second

// PipelineBuilderOption is a functional option for configuring a Pipeline via NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithLoader sets the Loader used by background tasks.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - PipelineBuilderOption: a function that applies the loader option to a pipeline
func WithLoader(l Loader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.loader = l
	}
}

// WithLoadingManager sets the LoadingManager notified of every load.
//
// Parameters:
//   - m: the loading manager
//
// Returns:
//   - PipelineBuilderOption: a function that applies the manager option to a pipeline
func WithLoadingManager(m LoadingManager) PipelineBuilderOption {
	return func(p *pipeline) {
		p.manager = m
	}
}

// WithSceneTarget sets where loaded models are inserted.
//
// Parameters:
//   - t: the scene target
//
// Returns:
//   - PipelineBuilderOption: a function that applies the target option to a pipeline
func WithSceneTarget(t SceneTarget) PipelineBuilderOption {
	return func(p *pipeline) {
		p.target = t
	}
}

// WithWorkerPool sets the pool background loads are submitted to.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - PipelineBuilderOption: a function that applies the pool option to a pipeline
func WithWorkerPool(pool worker.DynamicWorkerPool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.pool = pool
	}
}

// WithLogger sets the logger for model structure and error lines.
//
// Parameters:
//   - logger: the logger to write to
//
// Returns:
//   - PipelineBuilderOption: a function that applies the logger option to a pipeline
func WithLogger(logger zerolog.Logger) PipelineBuilderOption {
	return func(p *pipeline) {
		p.logger = logger
	}
}
