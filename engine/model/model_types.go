package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// --- Geometry ---

// Geometry is an indexed triangle list. Normals are optional in imported data and
// always present after ComputeVertexNormals.
type Geometry struct {
	// Positions are the vertex positions in the mesh's local space.
	Positions [][3]float32

	// Normals are per-vertex normals, parallel to Positions. May be nil.
	Normals [][3]float32

	// Indices are triangle indices into Positions.
	Indices []uint32
}

// GeometrySignature identifies a geometry by its shape without comparing every vertex.
// Two geometries with different vertex counts, index counts or bounds have different signatures.
type GeometrySignature struct {
	VertexCount int
	IndexCount  int
	Bounds      common.Bounds
}

// --- Asset graph ---

// NodeType classifies a node in an imported asset graph.
type NodeType string

const (
	// NodeTypeObject is a grouping or transform-only node.
	NodeTypeObject NodeType = "Object3D"

	// NodeTypeMesh is a node that references mesh data.
	NodeTypeMesh NodeType = "Mesh"
)

// Node is one node of an imported asset graph.
type Node struct {
	// Name is the node identifier from the source file (may be empty).
	Name string

	// Type is NodeTypeMesh when the node references a mesh, NodeTypeObject otherwise.
	Type NodeType

	// Geometry is the node's mesh geometry, nil for object nodes or meshes without positions.
	Geometry *Geometry

	// Children are the node's child nodes in source order.
	Children []*Node
}

// Asset is an imported scene graph.
type Asset struct {
	// Name is the asset identifier, usually derived from the file name.
	Name string

	// Roots are the top-level nodes of the asset's default scene.
	Roots []*Node
}
