package game_object

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// GPUObjectUniform is the per-object uniform shared by the shadow and lit pipelines.
// Matches the WGSL Object struct layout exactly.
// Size: 176 bytes (uniform aligned).
type GPUObjectUniform struct {
	Model          [16]float32             // offset   0: model matrix (mat4x4<f32>)
	Normal         [16]float32             // offset  64: inverse-transpose of the model matrix
	Material       material.GPUPhongParams // offset 128: 32 bytes
	ReceiveShadows uint32                  // offset 160
	_              [3]uint32               // offset 164: padding
}

// NewGPUObjectUniform packs an object's transform, material and shadow flag for upload.
// A nil material packs as white with the default Phong parameters.
//
// Parameters:
//   - g: the object to pack
//
// Returns:
//   - GPUObjectUniform: the populated uniform
func NewGPUObjectUniform(g GameObject) GPUObjectUniform {
	u := GPUObjectUniform{Model: g.ModelMatrix()}
	u.Normal = normalMatrix(u.Model)

	mat := g.Material()
	if mat == nil {
		mat = material.NewMaterial()
	}
	u.Material = material.NewGPUPhongParams(mat)

	if g.ReceiveShadows() {
		u.ReceiveShadows = 1
	}
	return u
}

// normalMatrix returns the inverse-transpose of m, or identity when m is singular.
func normalMatrix(m [16]float32) [16]float32 {
	var inv, out [16]float32
	if !common.Invert4(inv[:], m[:]) {
		common.Identity(out[:])
		return out
	}
	for c := range 4 {
		for r := range 4 {
			out[c*4+r] = inv[r*4+c]
		}
	}
	return out
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (176)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 176-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	copy(buf[128:160], g.Material.Marshal())
	binary.LittleEndian.PutUint32(buf[160:], g.ReceiveShadows)
	return buf
}
