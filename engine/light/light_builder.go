package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the point a directional light aims at.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = [3]float32{x, y, z}
	}
}

// WithColorHex is an option builder that sets the light color from a 0xRRGGBB value.
// For hemisphere lights this is the sky color.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColorHex(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexToRGB(hex)
	}
}

// WithGroundColorHex is an option builder that sets a hemisphere light's ground color.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that applies the ground color option to a lightImpl
func WithGroundColorHex(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = common.HexToRGB(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity of the light.
//
// Parameters:
//   - intensity: the intensity multiplier
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithCastsShadows is an option builder that sets whether the light casts shadows.
//
// Parameters:
//   - casts: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithCastsShadows(casts bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = casts
	}
}

// WithShadowCamera is an option builder that replaces the shadow camera configuration.
//
// Parameters:
//   - shadow: the shadow camera bounds and map size
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow camera option to a lightImpl
func WithShadowCamera(shadow ShadowCamera) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow = shadow
	}
}
