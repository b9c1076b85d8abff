package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// SunRadius is the distance from the origin at which the sun light is placed.
const SunRadius float32 = 100

// Slider bounds for the sun position, in degrees.
const (
	MinAzimuth   float32 = -90
	MaxAzimuth   float32 = 90
	MinElevation float32 = 0
	MaxElevation float32 = 90
)

// SunPosition is the angular sun position driven by the control panel slider.
// Azimuth is in [-90, 90] and elevation in [0, 90], both in degrees.
type SunPosition struct {
	Azimuth   float32
	Elevation float32
}

// DefaultSunPosition is applied once at startup.
func DefaultSunPosition() SunPosition {
	return SunPosition{Azimuth: 45, Elevation: 45}
}

// Clamp returns the position limited to the slider's domain.
func (s SunPosition) Clamp() SunPosition {
	return SunPosition{
		Azimuth:   common.Clamp(s.Azimuth, MinAzimuth, MaxAzimuth),
		Elevation: common.Clamp(s.Elevation, MinElevation, MaxElevation),
	}
}

// SunVector converts an angular sun position to a point on a sphere of radius SunRadius.
// Elevation 90 is the pole, where azimuth has no effect.
//
// Parameters:
//   - s: the sun position in degrees
//
// Returns:
//   - [3]float32: the light position in world space
func SunVector(s SunPosition) [3]float32 {
	phi := common.DegToRad(90 - s.Elevation)
	theta := common.DegToRad(s.Azimuth - 90)

	sinPhi := math32.Sin(phi)
	return [3]float32{
		SunRadius * sinPhi * math32.Cos(theta),
		SunRadius * math32.Cos(phi),
		SunRadius * sinPhi * math32.Sin(theta),
	}
}

// ApplySun moves l to the position derived from s. The light keeps aiming at its target.
//
// Parameters:
//   - l: the directional light to move
//   - s: the sun position in degrees
func ApplySun(l Light, s SunPosition) {
	l.SetPosition(SunVector(s))
}
