package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-3

func assertVec3(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestSunVector_Default(t *testing.T) {
	got := SunVector(DefaultSunPosition())

	s := math.Sin(math.Pi / 4)
	want := [3]float32{
		float32(100 * s * math.Cos(-math.Pi/4)),
		float32(100 * math.Cos(math.Pi/4)),
		float32(100 * s * math.Sin(-math.Pi/4)),
	}
	assertVec3(t, want, got)
	assertVec3(t, [3]float32{50, 70.7107, -50}, got)
}

func TestSunVector_PoleIgnoresAzimuth(t *testing.T) {
	for _, az := range []float32{-90, -30, 0, 45, 90} {
		assertVec3(t, [3]float32{0, 100, 0}, SunVector(SunPosition{Azimuth: az, Elevation: 90}))
	}
}

func TestSunVector_HorizonLiesInPlane(t *testing.T) {
	for _, az := range []float32{-90, -45, 0, 45, 90} {
		v := SunVector(SunPosition{Azimuth: az, Elevation: 0})
		assert.InDelta(t, 0, v[1], eps)
		assert.InDelta(t, SunRadius, common.Length3(v), eps)
	}
}

func TestSunVector_AlwaysOnSphere(t *testing.T) {
	for az := float32(-90); az <= 90; az += 15 {
		for el := float32(0); el <= 90; el += 15 {
			v := SunVector(SunPosition{Azimuth: az, Elevation: el})
			assert.InDelta(t, SunRadius, common.Length3(v), eps, "az=%v el=%v", az, el)
		}
	}
}

func TestSunPosition_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   SunPosition
		want SunPosition
	}{
		{"inside", SunPosition{10, 20}, SunPosition{10, 20}},
		{"azimuth high", SunPosition{120, 20}, SunPosition{90, 20}},
		{"azimuth low", SunPosition{-200, 20}, SunPosition{-90, 20}},
		{"elevation negative", SunPosition{0, -5}, SunPosition{0, 0}},
		{"elevation high", SunPosition{0, 95}, SunPosition{0, 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestApplySun_MovesLightKeepsTarget(t *testing.T) {
	sun := NewSunLight()
	assert.Equal(t, [3]float32{0, 10, 20}, sun.Position())

	ApplySun(sun, SunPosition{Azimuth: 0, Elevation: 90})
	assertVec3(t, [3]float32{0, 100, 0}, sun.Position())
	assert.Equal(t, [3]float32{}, sun.Target())
	assertVec3(t, [3]float32{0, -1, 0}, sun.Direction())
}

func TestNewSunLight_Defaults(t *testing.T) {
	sun := NewSunLight()
	assert.Equal(t, LightTypeDirectional, sun.Type())
	assert.Equal(t, float32(3), sun.Intensity())
	assert.True(t, sun.CastsShadows())
	assert.Equal(t, [3]float32{1, 1, 1}, sun.Color())

	shadow := sun.Shadow()
	assert.Equal(t, ShadowCamera{Left: -25, Right: 25, Bottom: -10, Top: 10, Near: 0.1, Far: 200, MapSize: 1024, Bias: DefaultShadowBias}, shadow)
}

func TestNewHemisphereLight_Defaults(t *testing.T) {
	hemi := NewHemisphereLight()
	assert.Equal(t, LightTypeHemisphere, hemi.Type())
	assert.Equal(t, [3]float32{0, 100, 0}, hemi.Position())
	assertVec3(t, common.HexToRGB(0x8d8d8d), hemi.GroundColor())
	assert.Equal(t, float32(1), hemi.Intensity())
	assert.False(t, hemi.CastsShadows())
}

func TestShadowViewProjection_TargetAtVolumeCenterLine(t *testing.T) {
	sun := NewSunLight()
	ApplySun(sun, DefaultSunPosition())

	vp := sun.ShadowViewProjection()
	clip := common.TransformPoint(vp[:], [3]float32{})
	assert.InDelta(t, 0, clip[0], eps)
	assert.InDelta(t, 0, clip[1], eps)
	// The origin is 100 units from the light, inside [near, far].
	assert.InDelta(t, (100-0.1)/(200-0.1), clip[2], eps)
}

func TestShadowCamera_HelperLines(t *testing.T) {
	sun := NewSunLight()
	lines := sun.Shadow().HelperLines(sun.Position(), sun.Target())
	require.Len(t, lines, 24)

	// Near-plane corners sit 0.1 units in front of the light.
	d := common.Sub3(lines[0], sun.Position())
	assert.InDelta(t, 0.1, common.Dot3(d, sun.Direction()), eps)
}

func TestGPULightsUniform_Marshal(t *testing.T) {
	u := NewGPULightsUniform(NewSunLight(), NewHemisphereLight())
	buf := u.Marshal()
	require.Len(t, buf, 128)
	assert.Equal(t, 128, u.Size())

	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[124:]))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])))
}
