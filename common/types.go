// package common contains math helpers and plain data types shared across the viewer.
// They are not interface-wrapped structs, just plain structs that express commonly used data-types.
package common

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return Scale3(Add3(b.Min, b.Max), 0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return Sub3(b.Max, b.Min)
}

// Transform holds a position, an Euler rotation in radians (applied Y * X * Z), and a scale.
type Transform struct {
	Position [3]float32
	Rotation [3]float32
	Scale    [3]float32
}

// IdentityTransform returns a transform at the origin with unit scale and no rotation.
func IdentityTransform() Transform {
	return Transform{Scale: [3]float32{1, 1, 1}}
}

// Matrix builds the column-major model matrix for the transform.
func (t Transform) Matrix() [16]float32 {
	var m [16]float32
	BuildModelMatrix(m[:], t.Position, t.Rotation, t.Scale)
	return m
}
