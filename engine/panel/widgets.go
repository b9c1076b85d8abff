package panel

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Button is a labelled zero-argument action.
type Button struct {
	Label  string
	Action func()
}

// Slider2D is a bounded two-axis slider. Values are clamped into its bounds before they are stored or reported.
type Slider2D struct {
	mu       *sync.Mutex
	label    string
	min      [2]float32
	max      [2]float32
	value    [2]float32
	onChange func(x, y float32)
}

// NewSlider2D creates a slider with the given bounds and initial value. The initial value is clamped
// but onChange is not fired for it.
//
// Parameters:
//   - label: the slider label
//   - lo: the lower bound of each axis
//   - hi: the upper bound of each axis
//   - initial: the starting value
//   - onChange: called with the clamped value on every Set or Nudge, may be nil
//
// Returns:
//   - *Slider2D: the slider
func NewSlider2D(label string, lo, hi, initial [2]float32, onChange func(x, y float32)) *Slider2D {
	s := &Slider2D{
		mu:       &sync.Mutex{},
		label:    label,
		min:      lo,
		max:      hi,
		onChange: onChange,
	}
	s.value = s.clamp(initial)
	return s
}

func (s *Slider2D) clamp(v [2]float32) [2]float32 {
	return [2]float32{
		common.Clamp(v[0], s.min[0], s.max[0]),
		common.Clamp(v[1], s.min[1], s.max[1]),
	}
}

// Label returns the slider label.
func (s *Slider2D) Label() string {
	return s.label
}

// Bounds returns the lower and upper bounds of each axis.
func (s *Slider2D) Bounds() (lo, hi [2]float32) {
	return s.min, s.max
}

// Value returns the current clamped value.
func (s *Slider2D) Value() (x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value[0], s.value[1]
}

// Set clamps (x, y) into the slider bounds, stores it and fires onChange.
//
// Parameters:
//   - x: the requested first-axis value
//   - y: the requested second-axis value
//
// Returns:
//   - float32: the stored first-axis value
//   - float32: the stored second-axis value
func (s *Slider2D) Set(x, y float32) (float32, float32) {
	s.mu.Lock()
	s.value = s.clamp([2]float32{x, y})
	v := s.value
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(v[0], v[1])
	}
	return v[0], v[1]
}

// Nudge moves the slider by (dx, dy) from its current value.
func (s *Slider2D) Nudge(dx, dy float32) (float32, float32) {
	x, y := s.Value()
	return s.Set(x+dx, y+dy)
}

// Toggle is a boolean switch.
type Toggle struct {
	mu       *sync.Mutex
	label    string
	value    bool
	onChange func(bool)
}

// NewToggle creates a toggle with an initial value. onChange fires on every Set or Flip.
func NewToggle(label string, initial bool, onChange func(bool)) *Toggle {
	return &Toggle{
		mu:       &sync.Mutex{},
		label:    label,
		value:    initial,
		onChange: onChange,
	}
}

// Label returns the toggle label.
func (t *Toggle) Label() string {
	return t.label
}

// Value returns the current value.
func (t *Toggle) Value() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Set stores a value and fires onChange.
func (t *Toggle) Set(value bool) {
	t.mu.Lock()
	t.value = value
	onChange := t.onChange
	t.mu.Unlock()

	if onChange != nil {
		onChange(value)
	}
}

// Flip inverts the value and returns the new one.
func (t *Toggle) Flip() bool {
	v := !t.Value()
	t.Set(v)
	return v
}
