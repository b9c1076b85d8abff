package model

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() *Geometry {
	return &Geometry{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, -1}, {0, 0, -1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestGeometry_ComputeVertexNormals_FlatQuadFacesUp(t *testing.T) {
	g := quad()
	g.ComputeVertexNormals()

	require.Len(t, g.Normals, 4)
	for i, n := range g.Normals {
		assert.InDelta(t, 0, n[0], 1e-6, "vertex %d", i)
		assert.InDelta(t, 1, n[1], 1e-6, "vertex %d", i)
		assert.InDelta(t, 0, n[2], 1e-6, "vertex %d", i)
	}
}

func TestGeometry_ComputeVertexNormals_ReplacesExisting(t *testing.T) {
	g := quad()
	g.Normals = [][3]float32{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}}
	g.ComputeVertexNormals()
	assert.InDelta(t, 1, g.Normals[0][1], 1e-6)
}

func TestGeometry_ComputeVertexNormals_UnreferencedVertexDefaultsUp(t *testing.T) {
	g := quad()
	g.Positions = append(g.Positions, [3]float32{5, 5, 5})
	g.ComputeVertexNormals()
	assert.Equal(t, [3]float32{0, 1, 0}, g.Normals[4])
}

func TestGeometry_ComputeVertexNormals_NonIndexed(t *testing.T) {
	g := &Geometry{Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}
	g.ComputeVertexNormals()
	for _, n := range g.Normals {
		assert.InDelta(t, 1, n[2], 1e-6)
	}
}

func TestGeometry_ComputeVertexNormals_UnitLength(t *testing.T) {
	g := &Geometry{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Indices:   []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
	}
	g.ComputeVertexNormals()
	for i, n := range g.Normals {
		assert.InDelta(t, 1, common.Length3(n), 1e-5, "vertex %d", i)
	}
}

func TestGeometry_CloneIsIndependent(t *testing.T) {
	g := quad()
	c := g.Clone()
	c.Positions[0] = [3]float32{9, 9, 9}
	c.ComputeVertexNormals()

	assert.Equal(t, [3]float32{0, 0, 0}, g.Positions[0])
	assert.Nil(t, g.Normals)
	assert.Equal(t, g.Indices, c.Indices)
}

func TestGeometry_Signature(t *testing.T) {
	g := quad()
	sig := g.Signature()
	assert.Equal(t, 4, sig.VertexCount)
	assert.Equal(t, 6, sig.IndexCount)
	assert.Equal(t, common.Bounds{Min: [3]float32{0, 0, -1}, Max: [3]float32{1, 0, 0}}, sig.Bounds)

	assert.Equal(t, sig, g.Clone().Signature())

	other := quad()
	other.Positions[2][1] = 1
	assert.NotEqual(t, sig, other.Signature())
}

func TestAsset_TraversePreOrder(t *testing.T) {
	leaf := &Node{Name: "leaf", Type: NodeTypeMesh, Geometry: quad()}
	a := &Asset{Roots: []*Node{
		{Name: "root", Type: NodeTypeObject, Children: []*Node{
			{Name: "a", Type: NodeTypeMesh, Geometry: quad(), Children: []*Node{leaf}},
			{Name: "b", Type: NodeTypeObject},
		}},
		{Name: "second", Type: NodeTypeObject},
	}}

	var names []string
	var depths []int
	a.Traverse(func(n *Node, depth int) bool {
		names = append(names, n.Name)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"root", "a", "leaf", "b", "second"}, names)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)

	meshes := a.MeshGeometries()
	require.Len(t, meshes, 2)
	assert.Same(t, leaf.Geometry, meshes[1])
}

func TestAsset_TraverseStops(t *testing.T) {
	a := &Asset{Roots: []*Node{{Name: "one"}, {Name: "two"}}}
	count := 0
	a.Traverse(func(*Node, int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestNewModel_PacksGeometry(t *testing.T) {
	g := quad()
	g.ComputeVertexNormals()
	m := NewModel(WithName("quad"), WithGeometry(g))

	assert.Equal(t, "quad", m.Name())
	assert.Equal(t, 6, m.IndexCount())
	assert.Len(t, m.VertexData(), 4*int(GPUVertexStride))
	assert.Len(t, m.IndexData(), 6*4)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(m.IndexData()[8:]))
	assert.InDelta(t, common.Length3([3]float32{1, 0, -1}), m.BoundingRadius(), 1e-6)
}

func TestNewModel_NonIndexedGeometryGetsSequentialIndices(t *testing.T) {
	m := NewModel(WithGeometry(&Geometry{Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}))
	assert.Equal(t, 3, m.IndexCount())
}

func TestInterleave_MissingNormalsDefaultUp(t *testing.T) {
	v := Interleave(&Geometry{Positions: [][3]float32{{1, 2, 3}}})
	require.Len(t, v, 1)
	assert.Equal(t, [3]float32{1, 2, 3}, v[0].Position)
	assert.Equal(t, [3]float32{0, 1, 0}, v[0].Normal)
	assert.Equal(t, uint64(24), GPUVertexStride)
}
