package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// GPULightsUniform is the GPU-aligned representation of the viewer's lighting rig.
// Matches the WGSL Lights struct in the lit shader.
// Size: 128 bytes (WGSL uniform aligned).
type GPULightsUniform struct {
	SunViewProj    [16]float32 // offset   0: light-space view-projection (mat4x4<f32>)
	ToSun          [3]float32  // offset  64: normalized direction from surface toward the sun
	SunIntensity   float32     // offset  76
	SunColor       [3]float32  // offset  80
	ShadowBias     float32     // offset  92
	SkyColor       [3]float32  // offset  96
	HemiIntensity  float32     // offset 108
	GroundColor    [3]float32  // offset 112
	ShadowsEnabled uint32      // offset 124: 1 = sample the shadow map
}

// NewGPULightsUniform packs a directional light and a hemisphere light for upload.
// Either light may be nil, in which case its contribution is zero.
//
// Parameters:
//   - sun: the directional light
//   - hemi: the hemisphere light
//
// Returns:
//   - GPULightsUniform: the populated uniform
func NewGPULightsUniform(sun, hemi Light) GPULightsUniform {
	var u GPULightsUniform
	common.Identity(u.SunViewProj[:])
	if sun != nil {
		u.SunViewProj = sun.ShadowViewProjection()
		u.ToSun = common.Scale3(sun.Direction(), -1)
		u.SunColor = sun.Color()
		u.SunIntensity = sun.Intensity()
		u.ShadowBias = sun.Shadow().Bias
		if sun.CastsShadows() {
			u.ShadowsEnabled = 1
		}
	}
	if hemi != nil {
		u.SkyColor = hemi.Color()
		u.GroundColor = hemi.GroundColor()
		u.HemiIntensity = hemi.Intensity()
	}
	return u
}

// Size returns the size of the GPULightsUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPULightsUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPULightsUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	putF32 := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	putVec3 := func(off int, v [3]float32) {
		for i := range 3 {
			putF32(off+i*4, v[i])
		}
	}

	for i := range 16 {
		putF32(i*4, g.SunViewProj[i])
	}
	putVec3(64, g.ToSun)
	putF32(76, g.SunIntensity)
	putVec3(80, g.SunColor)
	putF32(92, g.ShadowBias)
	putVec3(96, g.SkyColor)
	putF32(108, g.HemiIntensity)
	putVec3(112, g.GroundColor)
	binary.LittleEndian.PutUint32(buf[124:], g.ShadowsEnabled)
	return buf
}
