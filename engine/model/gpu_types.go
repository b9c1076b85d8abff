package model

import (
	"unsafe"
)

// GPUVertex is the interleaved vertex layout consumed by the lit and shadow pipelines.
// Size: 24 bytes (position vec3<f32> at location 0, normal vec3<f32> at location 1).
type GPUVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// GPUVertexStride is the byte stride between consecutive GPUVertex values.
const GPUVertexStride = uint64(unsafe.Sizeof(GPUVertex{}))

// Interleave packs a geometry's positions and normals into GPU vertices.
// Missing normals are written as +Y.
//
// Parameters:
//   - g: the geometry to pack
//
// Returns:
//   - []GPUVertex: one vertex per position
func Interleave(g *Geometry) []GPUVertex {
	out := make([]GPUVertex, len(g.Positions))
	for i, p := range g.Positions {
		out[i].Position = p
		if i < len(g.Normals) {
			out[i].Normal = g.Normals[i]
		} else {
			out[i].Normal = [3]float32{0, 1, 0}
		}
	}
	return out
}
