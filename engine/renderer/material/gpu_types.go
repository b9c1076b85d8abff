package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUPhongParams is the GPU-aligned material uniform for the lit fragment shader.
// Matches the WGSL Material struct layout exactly.
// Size: 32 bytes (two vec4-sized rows, uniform aligned).
type GPUPhongParams struct {
	Color     [3]float32 // offset  0: diffuse RGB
	Shininess float32    // offset 12: specular exponent
	Specular  [3]float32 // offset 16: specular RGB
	_         float32    // offset 28: padding
}

// NewGPUPhongParams packs a Material for upload.
//
// Parameters:
//   - m: the material to pack
//
// Returns:
//   - GPUPhongParams: the populated uniform
func NewGPUPhongParams(m Material) GPUPhongParams {
	return GPUPhongParams{
		Color:     m.Color(),
		Shininess: m.Shininess(),
		Specular:  m.Specular(),
	}
}

// Size returns the size of the GPUPhongParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPhongParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPhongParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUPhongParams) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Specular[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Shininess))
	return buf
}
