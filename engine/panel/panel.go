package panel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/rs/zerolog"
)

// DefaultSunStep is how many degrees one arrow key press moves the sun slider.
const DefaultSunStep float32 = 5

// Labels of the non-button widgets.
const (
	SunSliderLabel    = "Sol"
	HelperToggleLabel = "Helper"
)

var errUnknownButton = errors.New("unknown button")

// panel is the implementation of the Panel interface.
type panel struct {
	mu     *sync.Mutex
	logger zerolog.Logger

	scene   scene.Scene
	sunStep float32

	buttons []Button
	actions map[string]func()
	sun     *Slider2D
	helper  *Toggle
	keys    map[uint32]func()
}

// Panel is the viewer's control surface. It exposes the camera presets as buttons,
// the sun direction as a clamped 2D slider, and the shadow-frustum helper as a toggle.
// Keyboard input is routed to the same widgets through HandleKey.
type Panel interface {
	// Buttons returns the preset buttons in display order.
	//
	// Returns:
	//   - []Button: the buttons
	Buttons() []Button

	// Press invokes the button with the given label.
	//
	// Parameters:
	//   - label: the button label
	//
	// Returns:
	//   - error: an error if no button has that label
	Press(label string) error

	// SunSlider returns the slider bound to the sun position; X is azimuth, Y is elevation.
	SunSlider() *Slider2D

	// SetSun moves the sun slider to (azimuth, elevation). Both are clamped before the light is updated.
	//
	// Parameters:
	//   - azimuth: degrees, clamped to [-90, 90]
	//   - elevation: degrees, clamped to [0, 90]
	//
	// Returns:
	//   - light.SunPosition: the applied position
	SetSun(azimuth, elevation float32) light.SunPosition

	// HelperToggle returns the toggle bound to the shadow-frustum helper.
	HelperToggle() *Toggle

	// HandleKey runs the binding for a key code.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool
}

var _ Panel = &panel{}

// NewPanel creates a Panel bound to a scene. The camera's preset actions become the buttons,
// so the scene must already hold its camera.
//
// Parameters:
//   - s: the scene the panel drives
//   - options: functional options to configure the panel
//
// Returns:
//   - Panel: the panel
func NewPanel(s scene.Scene, options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:      &sync.Mutex{},
		logger:  zerolog.Nop(),
		scene:   s,
		sunStep: DefaultSunStep,
		actions: make(map[string]func()),
	}
	for _, opt := range options {
		opt(p)
	}

	if cam := s.Camera(); cam != nil {
		presetActions := camera.PresetActions(cam)
		for _, preset := range camera.Presets() {
			label := preset.Label()
			action := presetActions[label]
			p.actions[label] = action
			p.buttons = append(p.buttons, Button{Label: label, Action: func() { _ = p.Press(label) }})
		}
	}

	sunPos := s.SunPosition()
	p.sun = NewSlider2D(SunSliderLabel,
		[2]float32{light.MinAzimuth, light.MinElevation},
		[2]float32{light.MaxAzimuth, light.MaxElevation},
		[2]float32{sunPos.Azimuth, sunPos.Elevation},
		p.applySun,
	)
	p.helper = NewToggle(HelperToggleLabel, s.HelperVisible(), p.applyHelper)

	p.keys = map[uint32]func(){
		common.KeyLeft:  func() { p.sun.Nudge(-p.sunStep, 0) },
		common.KeyRight: func() { p.sun.Nudge(p.sunStep, 0) },
		common.KeyDown:  func() { p.sun.Nudge(0, -p.sunStep) },
		common.KeyUp:    func() { p.sun.Nudge(0, p.sunStep) },
		common.KeyH:     func() { p.helper.Flip() },
	}
	presetKeys := []uint32{common.Key1, common.Key2, common.Key3, common.Key4}
	for i, b := range p.buttons {
		if i < len(presetKeys) {
			p.keys[presetKeys[i]] = b.Action
		}
	}
	return p
}

func (p *panel) Buttons() []Button {
	out := make([]Button, len(p.buttons))
	copy(out, p.buttons)
	return out
}

func (p *panel) Press(label string) error {
	p.mu.Lock()
	action, ok := p.actions[label]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("panel: %w: %q", errUnknownButton, label)
	}

	action()
	ev := p.logger.Info().Str("button", label)
	if cam := p.scene.Camera(); cam != nil {
		pos := cam.Position()
		ev = ev.Floats32("position", pos[:])
	}
	ev.Msg("camera preset")
	return nil
}

func (p *panel) SunSlider() *Slider2D {
	return p.sun
}

func (p *panel) SetSun(azimuth, elevation float32) light.SunPosition {
	x, y := p.sun.Set(azimuth, elevation)
	return light.SunPosition{Azimuth: x, Elevation: y}
}

func (p *panel) applySun(azimuth, elevation float32) {
	applied := p.scene.SetSunPosition(light.SunPosition{Azimuth: azimuth, Elevation: elevation})
	pos := p.scene.Sun().Position()
	p.logger.Info().
		Float32("azimuth", applied.Azimuth).
		Float32("elevation", applied.Elevation).
		Floats32("light", pos[:]).
		Msg("sun position")
}

func (p *panel) HelperToggle() *Toggle {
	return p.helper
}

func (p *panel) applyHelper(visible bool) {
	p.scene.SetHelperVisible(visible)
	p.logger.Info().Bool("visible", visible).Msg("shadow helper")
}

func (p *panel) HandleKey(keyCode uint32) bool {
	fn, ok := p.keys[keyCode]
	if !ok {
		return false
	}
	fn()
	return true
}
