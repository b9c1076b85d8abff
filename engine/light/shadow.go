package light

import "github.com/Carmen-Shannon/oxy-viewer/common"

// DefaultShadowMapSize is the width and height in texels of the shadow depth texture.
const DefaultShadowMapSize = 1024

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.0005

// ShadowCamera describes the orthographic volume a directional light renders its
// shadow map from. Bounds are in light view space.
type ShadowCamera struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
	MapSize     int
	Bias        float32
}

// DefaultShadowCamera returns the viewer's shadow volume: 50 units wide, 20 tall,
// reaching 200 units from the light.
func DefaultShadowCamera() ShadowCamera {
	return ShadowCamera{
		Left:    -25,
		Right:   25,
		Bottom:  -10,
		Top:     10,
		Near:    0.1,
		Far:     200,
		MapSize: DefaultShadowMapSize,
		Bias:    DefaultShadowBias,
	}
}

// ViewProjection builds the light-space view-projection matrix for a light at
// position aimed at target.
//
// Parameters:
//   - position: the light's world-space position
//   - target: the point the light aims at
//
// Returns:
//   - [16]float32: the view-projection matrix (column-major)
func (s ShadowCamera) ViewProjection(position, target [3]float32) [16]float32 {
	var view, proj, out [16]float32
	common.LookAt(view[:], position, target, [3]float32{0, 1, 0})
	common.Orthographic(proj[:], s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
	common.Mul4(out[:], proj[:], view[:])
	return out
}

// HelperLines returns line segment endpoints outlining the shadow volume in world
// space, for the debug frustum helper. Returns nil if the matrix is singular.
//
// Parameters:
//   - position: the light's world-space position
//   - target: the point the light aims at
//
// Returns:
//   - [][3]float32: 24 points describing the 12 edges of the volume
func (s ShadowCamera) HelperLines(position, target [3]float32) [][3]float32 {
	vp := s.ViewProjection(position, target)
	var inv [16]float32
	if !common.Invert4(inv[:], vp[:]) {
		return nil
	}
	return common.FrustumLines(common.FrustumCorners(inv[:]))
}
