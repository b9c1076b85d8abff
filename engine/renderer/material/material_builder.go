package material

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// MaterialBuilderOption is a functional option for configuring a Material via NewMaterial.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColorHex sets the diffuse color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColorHex(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.color = common.HexToRGB(hex)
	}
}

// WithSpecularHex sets the specular color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecularHex(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.specular = common.HexToRGB(hex)
	}
}

// WithShininess sets the specular exponent.
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}

// WithDepthWrite toggles depth buffer writes for surfaces using the material.
// The ground plane disables them so the model always sorts in front of it.
func WithDepthWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthWrite = enabled
	}
}
