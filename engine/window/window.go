package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	// The callback runs synchronously inside ProcessMessages.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button (see common.MouseButton*) and the cursor position
	SetMouseDownCallback(callback func(button int, x, y int32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position
	SetMouseUpCallback(callback func(button int, x, y int32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages polls pending window events once without blocking and dispatches them to the callbacks.
	//
	// Returns:
	//   - bool: false once the window has been asked to close
	ProcessMessages() bool

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	minWidth  int
	minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button int, x, y int32)
	onMouseUp   func(button int, x, y int32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "Model Viewer",
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button int, x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button int, x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() bool {
	if !w.IsRunning() {
		return false
	}
	return platformProcessMessages(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// resized records a new framebuffer size and forwards it to the resize callback.
func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
