package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - float32: the angle in radians
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic creates an orthographic projection matrix for WebGPU clip space (depth in [0, 1]).
// Used for the directional light's shadow camera.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right: horizontal extents of the view volume
//   - bottom, top: vertical extents of the view volume
//   - near, far: depth extents of the view volume
func Orthographic(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)

	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
func BuildModelMatrix(out []float32, pos, rot, scale [3]float32) {
	cx, sx := math32.Cos(rot[0]), math32.Sin(rot[0])
	cy, sy := math32.Cos(rot[1]), math32.Sin(rot[1])
	cz, sz := math32.Cos(rot[2]), math32.Sin(rot[2])

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scale[0]
	out[1] = (cx * sz) * scale[0]
	out[2] = (-sy*cz + cy*sx*sz) * scale[0]
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scale[1]
	out[5] = (cx * cz) * scale[1]
	out[6] = (sy*sz + cy*sx*cz) * scale[1]
	out[7] = 0

	out[8] = (sy * cx) * scale[2]
	out[9] = (-sx) * scale[2]
	out[10] = (cy * cx) * scale[2]
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular the output is left
// unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}
	invDet := 1.0 / det

	var buf [16]float32
	buf[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	buf[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	buf[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	buf[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	buf[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	buf[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	buf[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	buf[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	buf[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	buf[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	buf[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	buf[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	buf[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	buf[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	buf[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	buf[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	copy(out, buf[:])
	return true
}

// LookAt creates a view matrix that positions and orients the camera.
// When the view direction is parallel to up, the up hint falls back to -Z so
// a camera looking straight down still yields a finite matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up [3]float32) {
	z := Normalize3(Sub3(eye, center))
	if z == ([3]float32{}) {
		z = [3]float32{0, 0, 1}
	}

	x := Cross3(up, z)
	if Length3(x) < 1e-6 {
		x = Cross3([3]float32{0, 0, -1}, z)
	}
	x = Normalize3(x)
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TransformPoint multiplies the point p by the column-major matrix m, applying
// the perspective divide when w is not 1.
//
// Parameters:
//   - m: the 4x4 matrix (16 elements, column-major)
//   - p: the point to transform
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m []float32, p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length, or the zero vector if v has no length.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l < 1e-12 {
		return [3]float32{}
	}
	return Scale3(v, 1/l)
}

// SRGBToLinear converts one sRGB-encoded channel in [0, 1] to linear space.
//
// Parameters:
//   - c: the sRGB channel value
//
// Returns:
//   - float32: the linear channel value
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}
