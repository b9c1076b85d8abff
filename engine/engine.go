package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"

	"github.com/rs/zerolog"
)

var errNotConfigured = errors.New("engine requires a window, a renderer and a scene")

// noButton marks that no mouse button is held.
const noButton = -1

// Renderer is the part of renderer.Renderer the loop drives.
type Renderer interface {
	// Resize reconfigures the render targets for a new framebuffer size.
	Resize(width, height int) error

	// Render draws one frame of the scene.
	Render(s scene.Scene) error
}

// engine implements the Engine interface.
// The loop, the window callbacks and every scene mutation run on the goroutine that called Run.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	logger zerolog.Logger

	window   window.Window
	renderer Renderer
	scene    scene.Scene
	panel    panel.Panel
	pipeline loader.Pipeline

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderRequested atomic.Bool
	frames          uint64

	dragButton int
	lastX      int32
	lastY      int32
}

// Engine is the viewer's frame pump. Each Tick processes window events, polls the asset
// pipeline, performs a render forced by a finished load, updates the orbit controls and renders.
// There is no frame pacing: Run ticks until the window closes or Quit is called.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene the engine renders.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Panel returns the control panel receiving key input, or nil.
	//
	// Returns:
	//   - panel.Panel: the panel or nil
	Panel() panel.Panel

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// RequestRender asks the next Tick to render once before the controls update.
	// Safe to call from any goroutine.
	RequestRender()

	// Frames returns how many frames have been rendered.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Tick runs one iteration of the loop.
	//
	// Returns:
	//   - error: the render error of this iteration, if any
	Tick() error

	// Run ticks until the window closes or Quit is called. Render errors are logged and the loop continues.
	//
	// Returns:
	//   - error: an error if the engine is missing its window, renderer or scene
	Run() error

	// Quit stops the loop after the current tick.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options and binds the window callbacks.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, scene, panel, pipeline)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:      make(chan struct{}),
		logger:           zerolog.Nop(),
		profilingEnabled: false,
		dragButton:       noButton,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.bindWindow()
	}

	return e
}

// bindWindow routes resize, key and pointer events to the renderer, the panel and the camera controller.
func (e *engine) bindWindow() {
	e.window.SetResizeCallback(e.handleResize)

	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if e.panel != nil {
			e.panel.HandleKey(keyCode)
		}
	})

	e.window.SetMouseDownCallback(func(button int, x, y int32) {
		if e.dragButton != noButton {
			return
		}
		e.dragButton = button
		e.lastX, e.lastY = x, y
	})

	e.window.SetMouseUpCallback(func(button int, x, y int32) {
		if button == e.dragButton {
			e.dragButton = noButton
		}
	})

	e.window.SetMouseMoveCallback(e.handleMouseMove)

	e.window.SetScrollCallback(func(delta float32) {
		if ctrl := e.controller(); ctrl != nil {
			ctrl.Dolly(delta)
		}
	})
}

// handleResize applies a framebuffer size change before the callback returns,
// so the next frame never renders at the old aspect.
func (e *engine) handleResize(width, height int) {
	if e.scene != nil && height > 0 {
		if cam := e.scene.Camera(); cam != nil {
			cam.SetAspect(float32(width) / float32(height))
		}
	}
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			e.logger.Error().Err(err).Int("width", width).Int("height", height).Msg("resize failed")
		}
	}
}

func (e *engine) handleMouseMove(x, y int32) {
	if e.dragButton == noButton {
		return
	}
	dx := float32(x - e.lastX)
	dy := float32(y - e.lastY)
	e.lastX, e.lastY = x, y

	ctrl := e.controller()
	if ctrl == nil {
		return
	}
	switch e.dragButton {
	case common.MouseButtonLeft:
		ctrl.Rotate(dx, dy)
	case common.MouseButtonRight:
		ctrl.Pan(dx, dy)
	}
}

// controller returns the scene camera's controller, or nil.
func (e *engine) controller() camera.CameraController {
	if e.scene == nil {
		return nil
	}
	cam := e.scene.Camera()
	if cam == nil {
		return nil
	}
	return cam.Controller()
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Panel() panel.Panel {
	return e.panel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) RequestRender() {
	e.renderRequested.Store(true)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Tick() error {
	if !e.window.ProcessMessages() {
		e.signalQuit()
		return nil
	}

	if e.pipeline != nil {
		e.pipeline.Poll()
	}

	if e.renderRequested.CompareAndSwap(true, false) {
		if err := e.render(); err != nil {
			return err
		}
	}

	if ctrl := e.controller(); ctrl != nil {
		ctrl.Update()
	}
	if cam := e.scene.Camera(); cam != nil {
		cam.Update()
	}

	if err := e.render(); err != nil {
		return err
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return nil
}

func (e *engine) render() error {
	if err := e.renderer.Render(e.scene); err != nil {
		return fmt.Errorf("render frame %d: %w", e.frames, err)
	}
	e.frames++
	return nil
}

func (e *engine) Run() error {
	if e.window == nil || e.renderer == nil || e.scene == nil {
		return errNotConfigured
	}

	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		if !e.window.IsRunning() {
			e.signalQuit()
			continue
		}
		if err := e.Tick(); err != nil {
			e.logger.Error().Err(err).Msg("frame failed")
		}
	}
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the loop to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
