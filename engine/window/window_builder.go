package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMinSize sets the smallest size the window can be resized to. Non-positive values are ignored.
//
// Parameters:
//   - minWidth: minimum width in pixels
//   - minHeight: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(minWidth, minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		if minWidth > 0 {
			w.minWidth = minWidth
		}
		if minHeight > 0 {
			w.minHeight = minHeight
		}
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if height > 0 {
			w.height = height
		}
	}
}
