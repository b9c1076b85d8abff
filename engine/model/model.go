package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	geometry              *Geometry
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a GPU-ready triangle mesh.
// A Model owns its geometry and the packed vertex and index bytes the renderer uploads.
// It is produced from an imported asset or built directly for procedural shapes such as the ground plane.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Geometry retrieves the source geometry the buffers were packed from.
	//
	// Returns:
	//   - *Geometry: the geometry, or nil for models built from raw bytes
	Geometry() *Geometry

	// VertexData returns the packed GPUVertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed uint32 index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the maximum vertex distance from the local origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// When a geometry is supplied, the vertex and index buffers and the bounding radius
// are derived from it.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}

	if m.geometry != nil {
		m.vertexData = common.SliceToBytes(Interleave(m.geometry))

		indices := m.geometry.Indices
		if len(indices) == 0 {
			indices = make([]uint32, len(m.geometry.Positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		m.indexData = common.SliceToBytes(indices)
		m.indexCount = len(indices)
		m.boundingRadius = computeBoundingRadius(m.geometry.Positions)
	}
	return m
}

func computeBoundingRadius(positions [][3]float32) float32 {
	var r float32
	for _, p := range positions {
		r = max(r, common.Length3(p))
	}
	return r
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Geometry() *Geometry {
	return m.geometry
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
