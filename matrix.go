package softgl

import "math"

// Matrix4 is a 4x4 matrix stored row-major: element (row r, column c) is
// m[r*4+c]. Vectors are columns, so Transform computes m * v.
//
// LoadMatrix, MultMatrix and GetMatrix exchange matrices in GL's
// column-major order; use FromColumnMajor and ColumnMajor to convert.
type Matrix4 [16]float64

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromColumnMajor builds a matrix from 16 values in GL column-major order.
func FromColumnMajor(v [16]float64) Matrix4 {
	return Matrix4(v).Transpose()
}

// ColumnMajor returns the matrix in GL column-major order.
func (m Matrix4) ColumnMajor() [16]float64 {
	return [16]float64(m.Transpose())
}

// Translation creates a translation matrix.
func Translation(x, y, z float64) Matrix4 {
	return Matrix4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scaling creates a scaling matrix.
func Scaling(x, y, z float64) Matrix4 {
	return Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Rotation creates a rotation of angle degrees about the axis (x, y, z).
// A zero axis yields the identity.
func Rotation(angle, x, y, z float64) Matrix4 {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return Identity()
	}
	x, y, z = x/l, y/l, z/l

	rad := angle * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	t := 1 - c

	return Matrix4{
		x*x*t + c, x*y*t - z*s, x*z*t + y*s, 0,
		x*y*t + z*s, y*y*t + c, y*z*t - x*s, 0,
		x*z*t - y*s, y*z*t + x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// FrustumMatrix creates a perspective projection. The caller validates
// that left != right, bottom != top and 0 < near < far.
func FrustumMatrix(left, right, bottom, top, near, far float64) Matrix4 {
	return Matrix4{
		2 * near / (right - left), 0, (right + left) / (right - left), 0,
		0, 2 * near / (top - bottom), (top + bottom) / (top - bottom), 0,
		0, 0, -(far + near) / (far - near), -2 * far * near / (far - near),
		0, 0, -1, 0,
	}
}

// OrthoMatrix creates a parallel projection. The caller validates that no
// range is empty.
func OrthoMatrix(left, right, bottom, top, near, far float64) Matrix4 {
	return Matrix4{
		2 / (right - left), 0, 0, -(right + left) / (right - left),
		0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom),
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	}
}

// Mul returns m * n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var r Matrix4
	for i := range 4 {
		for j := range 4 {
			r[i*4+j] = m[i*4+0]*n[0*4+j] +
				m[i*4+1]*n[1*4+j] +
				m[i*4+2]*n[2*4+j] +
				m[i*4+3]*n[3*4+j]
		}
	}
	return r
}

// Transform returns m * v.
func (m Matrix4) Transform(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		W: m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// Transform3 applies the upper-left 3x3 block to v (no translation).
func (m Matrix4) Transform3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for i := range 4 {
		for j := range 4 {
			r[j*4+i] = m[i*4+j]
		}
	}
	return r
}

// Inverse returns the inverse matrix. ok is false and the identity is
// returned when m is singular.
func (m Matrix4) Inverse() (inv Matrix4, ok bool) {
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix4) IsIdentity() bool {
	return m == Identity()
}

// hasNoPerspective reports whether the bottom row is (0, 0, 0, w), so that
// clip w does not depend on x, y or z.
func (m Matrix4) hasNoPerspective() bool {
	return m[12] == 0 && m[13] == 0 && m[14] == 0
}
