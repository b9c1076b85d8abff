package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a distant source with parallel rays, like the sun.
	// Its position sets the ray direction: light travels from Position toward Target.
	LightTypeDirectional LightType = iota

	// LightTypeHemisphere represents sky/ground ambient lighting. Surfaces facing up
	// receive the sky color and surfaces facing down the ground color, blended by the
	// normal's vertical component.
	LightTypeHemisphere
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     [3]float32
	target       [3]float32
	color        [3]float32
	groundColor  [3]float32
	intensity    float32
	castsShadows bool
	shadow       ShadowCamera
}

// Light defines the interface for a light source in the scene.
//
// The viewer uses exactly two lights: a hemisphere light for ambient fill and a
// directional "sun" light that casts shadows. Type-specific properties (ground color
// for hemisphere lights, the shadow camera for directional lights) are still readable
// on either type and hold their defaults when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or hemisphere)
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the point a directional light aims at. Always the origin unless changed.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns the normalized direction light travels, from Position toward Target.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light. For hemisphere lights this is the sky color.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// GroundColor returns the ground color of a hemisphere light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	GroundColor() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// CastsShadows reports whether the light renders a shadow map.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the orthographic shadow camera bounds of a directional light.
	//
	// Returns:
	//   - ShadowCamera: the shadow camera configuration
	Shadow() ShadowCamera

	// ShadowViewProjection returns the light-space view-projection matrix used by the
	// shadow pass, built from the light's position, target and shadow camera.
	//
	// Returns:
	//   - [16]float32: the view-projection matrix (column-major)
	ShadowViewProjection() [16]float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - pos: position as (x, y, z)
	SetPosition(pos [3]float32)

	// SetTarget sets the point a directional light aims at.
	//
	// Parameters:
	//   - target: target as (x, y, z)
	SetTarget(target [3]float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - color: color as (r, g, b)
	SetColor(color [3]float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetCastsShadows sets whether the light renders a shadow map.
	//
	// Parameters:
	//   - casts: true to enable shadow casting
	SetCastsShadows(casts bool)

	// SetShadow replaces the shadow camera configuration.
	//
	// Parameters:
	//   - shadow: the shadow camera configuration
	SetShadow(shadow ShadowCamera)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the provided options applied.
// Defaults: white color, intensity 1, target at the origin, shadows off, and the
// viewer's default shadow camera.
//
// Parameters:
//   - lightType: the kind of light to create
//   - options: variadic LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(lightType LightType, options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		shadow:    DefaultShadowCamera(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// NewSunLight creates the viewer's directional light: white, intensity 3, starting
// at (0, 10, 20) aimed at the origin and casting shadows.
//
// Parameters:
//   - options: additional options applied after the defaults
//
// Returns:
//   - Light: the directional light
func NewSunLight(options ...LightBuilderOption) Light {
	defaults := []LightBuilderOption{
		WithColorHex(0xffffff),
		WithIntensity(3),
		WithPosition(0, 10, 20),
		WithCastsShadows(true),
	}
	return NewLight(LightTypeDirectional, append(defaults, options...)...)
}

// NewHemisphereLight creates the viewer's ambient light: sky 0xffffff, ground 0x8d8d8d,
// intensity 1, positioned at (0, 100, 0).
//
// Parameters:
//   - options: additional options applied after the defaults
//
// Returns:
//   - Light: the hemisphere light
func NewHemisphereLight(options ...LightBuilderOption) Light {
	defaults := []LightBuilderOption{
		WithColorHex(0xffffff),
		WithGroundColorHex(0x8d8d8d),
		WithIntensity(1),
		WithPosition(0, 100, 0),
	}
	return NewLight(LightTypeHemisphere, append(defaults, options...)...)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	return common.Normalize3(common.Sub3(l.target, l.position))
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) GroundColor() [3]float32 {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Shadow() ShadowCamera {
	return l.shadow
}

func (l *lightImpl) ShadowViewProjection() [16]float32 {
	return l.shadow.ViewProjection(l.position, l.target)
}

func (l *lightImpl) SetPosition(pos [3]float32) {
	l.position = pos
}

func (l *lightImpl) SetTarget(target [3]float32) {
	l.target = target
}

func (l *lightImpl) SetColor(color [3]float32) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetCastsShadows(casts bool) {
	l.castsShadows = casts
}

func (l *lightImpl) SetShadow(shadow ShadowCamera) {
	l.shadow = shadow
}
