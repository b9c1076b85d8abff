package common

// FrustumCorners returns the eight world-space corners of the view volume
// described by the inverse of a view-projection matrix. WebGPU clip space is
// assumed, so near corners sit at z=0 and far corners at z=1.
//
// Corners are ordered near-bottom-left, near-bottom-right, near-top-right,
// near-top-left, then the same four on the far plane.
//
// Parameters:
//   - invViewProj: inverse view-projection matrix (16 elements, column-major)
//
// Returns:
//   - [8][3]float32: the frustum corners in world space
func FrustumCorners(invViewProj []float32) [8][3]float32 {
	ndc := [8][3]float32{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	var out [8][3]float32
	for i, p := range ndc {
		out[i] = TransformPoint(invViewProj, p)
	}
	return out
}

// FrustumEdges lists the 12 edges of a frustum as index pairs into the array
// returned by FrustumCorners.
var FrustumEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// FrustumLines expands frustum corners into a flat list of line segment endpoints,
// two points per edge, ready for a line-list draw.
//
// Parameters:
//   - corners: the frustum corners from FrustumCorners
//
// Returns:
//   - [][3]float32: 24 points describing 12 line segments
func FrustumLines(corners [8][3]float32) [][3]float32 {
	lines := make([][3]float32, 0, len(FrustumEdges)*2)
	for _, e := range FrustumEdges {
		lines = append(lines, corners[e[0]], corners[e[1]])
	}
	return lines
}
