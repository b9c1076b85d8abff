package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyH   = 72  // H key (ASCII)
	KeyP   = 80  // P key (ASCII)
	KeyEsc = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
)

// Arrow keys drive the sun slider.
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// Mouse buttons, matching glfw.MouseButton values.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
