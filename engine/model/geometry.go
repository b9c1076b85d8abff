package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Clone returns a deep copy of the geometry. The copy shares no slices with g.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	c := &Geometry{
		Positions: append([][3]float32(nil), g.Positions...),
		Indices:   append([]uint32(nil), g.Indices...),
	}
	if g.Normals != nil {
		c.Normals = append([][3]float32(nil), g.Normals...)
	}
	return c
}

// ComputeVertexNormals replaces Normals with area-weighted averages of the face
// normals of every triangle touching each vertex. Vertices that touch no valid
// triangle default to +Y. Non-indexed geometry is treated as sequential triangles.
func (g *Geometry) ComputeVertexNormals() {
	n := len(g.Positions)
	indices := g.Indices
	if len(indices) == 0 {
		indices = make([]uint32, n-n%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	accum := make([][3]float32, n)
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			continue
		}

		p0, p1, p2 := g.Positions[i0], g.Positions[i1], g.Positions[i2]
		// Cross product length is proportional to triangle area.
		face := common.Cross3(common.Sub3(p1, p0), common.Sub3(p2, p0))

		for _, idx := range [3]uint32{i0, i1, i2} {
			accum[idx] = common.Add3(accum[idx], face)
		}
	}

	g.Normals = make([][3]float32, n)
	for i := range n {
		if common.Length3(accum[i]) < 1e-12 {
			g.Normals[i] = [3]float32{0, 1, 0}
			continue
		}
		g.Normals[i] = common.Normalize3(accum[i])
	}
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty geometry has zero bounds.
func (g *Geometry) Bounds() common.Bounds {
	if len(g.Positions) == 0 {
		return common.Bounds{}
	}
	b := common.Bounds{Min: g.Positions[0], Max: g.Positions[0]}
	for _, p := range g.Positions[1:] {
		for k := range 3 {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}

// Signature summarizes the geometry's shape for identity checks.
func (g *Geometry) Signature() GeometrySignature {
	return GeometrySignature{
		VertexCount: len(g.Positions),
		IndexCount:  len(g.Indices),
		Bounds:      g.Bounds(),
	}
}

// Traverse visits every node of the asset depth-first in pre-order, starting with
// each root in order. Returning false from visit stops the walk.
//
// Parameters:
//   - visit: called for each node with its depth (roots are depth 0)
func (a *Asset) Traverse(visit func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int) bool
	walk = func(n *Node, depth int) bool {
		if !visit(n, depth) {
			return false
		}
		for _, c := range n.Children {
			if !walk(c, depth+1) {
				return false
			}
		}
		return true
	}
	for _, r := range a.Roots {
		if !walk(r, 0) {
			return
		}
	}
}

// MeshGeometries returns the geometry of every mesh node that carries one, in traversal order.
func (a *Asset) MeshGeometries() []*Geometry {
	var out []*Geometry
	a.Traverse(func(n *Node, _ int) bool {
		if n.Type == NodeTypeMesh && n.Geometry != nil {
			out = append(out, n.Geometry)
		}
		return true
	})
	return out
}
