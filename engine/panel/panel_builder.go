package panel

import "github.com/rs/zerolog"

// PanelBuilderOption is a functional option for configuring a Panel via NewPanel.
type PanelBuilderOption func(*panel)

// WithSunStep sets how many degrees one arrow key press moves the sun. Non-positive values are ignored.
//
// Parameters:
//   - step: the step in degrees
//
// Returns:
//   - PanelBuilderOption: a function that applies the step to a panel
func WithSunStep(step float32) PanelBuilderOption {
	return func(p *panel) {
		if step > 0 {
			p.sunStep = step
		}
	}
}

// WithLogger sets the logger every panel change is written to.
func WithLogger(logger zerolog.Logger) PanelBuilderOption {
	return func(p *panel) {
		p.logger = logger
	}
}
