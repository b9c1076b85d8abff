package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotInitialized = errors.New("window is not initialized")

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, glfw.DontCare, glfw.DontCare)

	gw := &glfwWindow{
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			if w.onMouseDown != nil {
				w.onMouseDown(int(button), int32(xpos), int32(ypos))
			}
		case glfw.Release:
			if w.onMouseUp != nil {
				w.onMouseUp(int(button), int32(xpos), int32(ypos))
			}
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(xpos), int32(ypos))
		}
	})

	// Framebuffer size, not window size: they differ on high-DPI displays and the
	// surface is configured in pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns false if the internal window is missing, the running flag is cleared,
// or GLFW reports ShouldClose.
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return errNotInitialized
	}
	w.internalWindow = nil
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
