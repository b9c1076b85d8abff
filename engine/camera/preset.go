package camera

// Preset identifies one of the fixed camera framings.
type Preset int

const (
	PresetFront Preset = iota
	PresetTop
	PresetSide
	PresetIsometric
)

var presetPositions = map[Preset][3]float32{
	PresetFront:     {0, 0, 30},
	PresetTop:       {0, 30, 0},
	PresetSide:      {30, 0, 0},
	PresetIsometric: {30, 30, 30},
}

// presetLabels are the names shown on the control panel buttons.
var presetLabels = map[Preset]string{
	PresetFront:     "Frontal",
	PresetTop:       "Planta",
	PresetSide:      "Lateral",
	PresetIsometric: "Isométrica",
}

// Presets returns every preset in panel order.
func Presets() []Preset {
	return []Preset{PresetFront, PresetTop, PresetSide, PresetIsometric}
}

// Position returns the fixed world-space position of the preset. Every preset looks at the origin.
func (p Preset) Position() [3]float32 {
	return presetPositions[p]
}

// Label returns the panel label for the preset.
func (p Preset) Label() string {
	return presetLabels[p]
}

func (p Preset) String() string {
	switch p {
	case PresetFront:
		return "front"
	case PresetTop:
		return "top"
	case PresetSide:
		return "side"
	case PresetIsometric:
		return "isometric"
	default:
		return "unknown"
	}
}

// PresetActions builds the dispatch map a control panel uses to invoke presets
// by label. Each action is zero-argument and cannot fail.
//
// Parameters:
//   - c: the camera the actions operate on
//
// Returns:
//   - map[string]func(): preset actions keyed by panel label
func PresetActions(c Camera) map[string]func() {
	actions := make(map[string]func(), len(presetPositions))
	for _, p := range Presets() {
		actions[p.Label()] = func() { c.ApplyPreset(p) }
	}
	return actions
}
