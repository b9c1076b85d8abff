package engine

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"

	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked after each frame when profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose events drive the loop.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that draws the scene and follows window resizes.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene rendered every tick.
//
// Parameters:
//   - s: the Scene to render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithPanel routes key presses to a control panel.
//
// Parameters:
//   - p: the panel
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPanel(p panel.Panel) EngineBuilderOption {
	return func(e *engine) {
		e.panel = p
	}
}

// WithPipeline sets the asset pipeline polled once per tick.
//
// Parameters:
//   - p: the pipeline
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPipeline(p loader.Pipeline) EngineBuilderOption {
	return func(e *engine) {
		e.pipeline = p
	}
}

// WithLogger sets the logger for frame and resize errors. The default profiler writes to it too.
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
