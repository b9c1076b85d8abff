package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"

	"github.com/rs/zerolog"
)

// loadWorkerIdle is how long the load worker lingers after a load before exiting.
const loadWorkerIdle = 2 * time.Second

// viewer is the implementation of the Viewer interface.
type viewer struct {
	mu     *sync.Mutex
	logger zerolog.Logger
	cfg    config.Config

	window   window.Window
	renderer engine.Renderer
	release  func()

	scene    scene.Scene
	panel    panel.Panel
	pipeline loader.Pipeline
	engine   engine.Engine
	watcher  loader.Watcher

	closed bool
}

// Viewer is a single-model viewer: a lit scene with a ground plane and a shadow-casting sun,
// a control panel bound to the keyboard, orbit controls bound to the mouse, and a background
// pipeline that loads the configured GLB file and inserts its first mesh.
type Viewer interface {
	// Scene returns the viewer's scene.
	Scene() scene.Scene

	// Panel returns the control panel.
	Panel() panel.Panel

	// Pipeline returns the model loading pipeline.
	Pipeline() loader.Pipeline

	// Engine returns the frame loop.
	Engine() engine.Engine

	// Run starts loading the model, optionally watches it for changes, and runs the
	// frame loop until the window closes. Resources are released before it returns.
	//
	// Returns:
	//   - error: an error if the load cannot start, the watcher cannot be created or the loop is misconfigured
	Run() error

	// Close releases the watcher, the renderer and the window. Safe to call more than once.
	//
	// Returns:
	//   - error: the window close error, if any
	Close() error
}

var _ Viewer = &viewer{}

// New opens the window, creates the WebGPU renderer and composes the viewer.
//
// Parameters:
//   - cfg: the resolved configuration
//   - logger: the root logger
//
// Returns:
//   - Viewer: the viewer, ready to Run
//   - error: an error if the window or the renderer cannot be created
func New(cfg config.Config, logger zerolog.Logger) (Viewer, error) {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Renderer.MSAA)),
		renderer.WithShadowMapSize(cfg.Shadow.MapSize),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		renderer.WithLogger(logger.With().Str("component", "renderer").Logger()),
	)
	if err != nil {
		_ = win.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return compose(cfg, logger, win, r, r.Release), nil
}

// compose wires the scene, the panel, the pipeline and the frame loop around a window and a renderer.
// release is called by Close after the loop has stopped; it may be nil.
func compose(cfg config.Config, logger zerolog.Logger, win window.Window, r engine.Renderer, release func()) *viewer {
	v := &viewer{
		mu:       &sync.Mutex{},
		logger:   logger,
		cfg:      cfg,
		window:   win,
		renderer: r,
		release:  release,
	}

	aspect := float32(1)
	if h := win.Height(); h > 0 {
		aspect = float32(win.Width()) / float32(h)
	}
	cam := camera.NewCamera(
		camera.WithPerspective(cfg.Camera.Fov, aspect, cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(camera.NewCameraController(
			camera.WithLogger(logger.With().Str("component", "controls").Logger()),
		)),
	)

	v.scene = scene.NewScene(
		scene.WithName("viewer"),
		scene.WithCamera(cam),
		scene.WithSunPosition(light.SunPosition{Azimuth: cfg.Sun.Azimuth, Elevation: cfg.Sun.Elevation}),
	)

	v.panel = panel.NewPanel(v.scene,
		panel.WithSunStep(cfg.Panel.SunStep),
		panel.WithLogger(logger.With().Str("component", "panel").Logger()),
	)

	manager := loader.NewLoadingManager(
		loader.WithOnStart(func(url string) {
			logger.Debug().Str("url", url).Msg("load started")
		}),
		loader.WithOnLoad(func() {
			v.engine.RequestRender()
		}),
		loader.WithOnError(func(url string, err error) {
			logger.Debug().Err(err).Str("url", url).Msg("load error")
		}),
	)
	pipelineLogger := logger.With().Str("component", "loader").Logger()
	v.pipeline = loader.NewPipeline(
		loader.WithLoader(loader.NewLoader(loader.BackendTypeGLTF, loader.WithLoaderLogger(pipelineLogger))),
		loader.WithLoadingManager(manager),
		loader.WithSceneTarget(v.scene),
		loader.WithWorkerPool(worker.NewDynamicWorkerPool(1, 1, loadWorkerIdle)),
		loader.WithLogger(pipelineLogger),
	)

	v.engine = engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(v.scene),
		engine.WithPanel(v.panel),
		engine.WithPipeline(v.pipeline),
		engine.WithProfiling(cfg.Profiler.Enabled),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithLogger(logger.With().Str("component", "profiler").Logger()),
		)),
		engine.WithLogger(logger),
	)
	return v
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Panel() panel.Panel {
	return v.panel
}

func (v *viewer) Pipeline() loader.Pipeline {
	return v.pipeline
}

func (v *viewer) Engine() engine.Engine {
	return v.engine
}

// start begins the model load and, when configured, the file watcher.
func (v *viewer) start() error {
	if err := v.pipeline.Start(v.cfg.Model.Path); err != nil {
		return fmt.Errorf("failed to start model load: %w", err)
	}
	if !v.cfg.Model.Watch {
		return nil
	}

	w, err := loader.WatchFile(v.cfg.Model.Path, v.pipeline.RequestReload, v.logger)
	if err != nil {
		return fmt.Errorf("failed to watch model: %w", err)
	}
	v.mu.Lock()
	v.watcher = w
	v.mu.Unlock()
	v.logger.Info().Str("path", v.cfg.Model.Path).Msg("watching model for changes")
	return nil
}

func (v *viewer) Run() error {
	defer v.Close()

	if err := v.start(); err != nil {
		return err
	}
	v.logger.Info().
		Str("model", v.cfg.Model.Path).
		Int("width", v.window.Width()).
		Int("height", v.window.Height()).
		Msg("viewer running")
	return v.engine.Run()
}

func (v *viewer) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	w := v.watcher
	v.watcher = nil
	v.mu.Unlock()

	var errs []error
	if w != nil {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close watcher: %w", err))
		}
	}
	if v.release != nil {
		v.release()
	}
	if v.window != nil {
		if err := v.window.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close window: %w", err))
		}
	}
	return errors.Join(errs...)
}
