package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL Camera struct in the lit and line shaders.
// Size: 80 bytes (WGSL uniform aligned).
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	CameraPosition [3]float32  // offset 64: world-space camera position (vec3<f32>)
	_pad           float32     // offset 76: padding to 80 bytes
}

// NewGPUCameraUniform snapshots the camera's current matrices for upload.
//
// Parameters:
//   - c: the camera to snapshot
//
// Returns:
//   - GPUCameraUniform: the populated uniform
func NewGPUCameraUniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:       c.ViewProjectionMatrix(),
		CameraPosition: c.Position(),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	return buf
}
