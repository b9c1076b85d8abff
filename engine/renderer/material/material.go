package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

const (
	// DefaultShininess is the specular exponent used when none is configured.
	DefaultShininess float32 = 30

	// DefaultSpecularHex is the specular color used when none is configured.
	DefaultSpecularHex uint32 = 0x111111
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name       string
	color      [3]float32
	specular   [3]float32
	shininess  float32
	depthWrite bool
}

// Material defines the interface for a Blinn-Phong surface: a diffuse color,
// a specular color and a specular exponent. The renderer reads these once per
// object per frame and packs them with GPUPhongParams.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the diffuse color of the material.
	//
	// Returns:
	//   - [3]float32: RGB in [0, 1]
	Color() [3]float32

	// Specular retrieves the specular highlight color of the material.
	//
	// Returns:
	//   - [3]float32: RGB in [0, 1]
	Specular() [3]float32

	// Shininess retrieves the specular exponent. Higher values give a tighter highlight.
	//
	// Returns:
	//   - float32: the specular exponent
	Shininess() float32

	// DepthWrite reports whether surfaces drawn with this material write to the depth buffer.
	//
	// Returns:
	//   - bool: true if depth writes are enabled
	DepthWrite() bool

	// SetColor sets the diffuse color of the material.
	//
	// Parameters:
	//   - color: RGB in [0, 1]
	SetColor(color [3]float32)

	// SetSpecular sets the specular highlight color of the material.
	//
	// Parameters:
	//   - specular: RGB in [0, 1]
	SetSpecular(specular [3]float32)

	// SetShininess sets the specular exponent.
	//
	// Parameters:
	//   - shininess: the specular exponent
	SetShininess(shininess float32)
}

var _ Material = &material{}

// NewMaterial creates a new Phong Material with the given options applied.
// Defaults are a white diffuse color, DefaultSpecularHex, DefaultShininess and depth writes enabled.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions to configure the Material
//
// Returns:
//   - Material: a new instance of Material configured with the provided options
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:         &sync.Mutex{},
		color:      [3]float32{1, 1, 1},
		specular:   common.HexToRGB(DefaultSpecularHex),
		shininess:  DefaultShininess,
		depthWrite: true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *material) Specular() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.specular
}

func (m *material) Shininess() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shininess
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) SetColor(color [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = color
}

func (m *material) SetSpecular(specular [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specular = specular
}

func (m *material) SetShininess(shininess float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shininess = shininess
}
