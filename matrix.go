package dof

import "math"

// Mat4 represents a 4x4 scene transformation matrix.
//
// Mat4 uses the row-vector convention: a point is transformed as p' = p·M,
// so translation lives in the fourth row and M1·M2 applies M1 first:
//
//	| M11 M12 M13 M14 |
//	| M21 M22 M23 M24 |
//	| M31 M32 M33 M34 |
//	| M41 M42 M43 M44 |
//
// Camera matrices supplied by the host follow this layout; the third row of
// an inverted view matrix is the camera's backward axis.
type Mat4 struct {
	M11, M12, M13, M14 float64
	M21, M22, M23, M24 float64
	M31, M32, M33, M34 float64
	M41, M42, M43, M44 float64
}

// invertEpsilon is the determinant magnitude below which a matrix is
// treated as singular.
const invertEpsilon = 1e-12

// Identity4 returns the identity transformation matrix.
func Identity4() Mat4 {
	return Mat4{M11: 1, M22: 1, M33: 1, M44: 1}
}

// Translation creates a translation matrix.
func Translation(x, y, z float64) Mat4 {
	m := Identity4()
	m.M41, m.M42, m.M43 = x, y, z
	return m
}

// RotationY creates a rotation around the Y axis (angle in radians).
func RotationY(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	m := Identity4()
	m.M11, m.M13 = c, -s
	m.M31, m.M33 = s, c
	return m
}

// LookAt creates a view matrix for a camera at eye looking toward target.
// The camera looks down its local -Z axis.
func LookAt(eye, target, up Vec3) Mat4 {
	z := eye.Sub(target).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat4{
		M11: x.X, M12: y.X, M13: z.X,
		M21: x.Y, M22: y.Y, M23: z.Y,
		M31: x.Z, M32: y.Z, M33: z.Z,
		M41: -x.Dot(eye), M42: -y.Dot(eye), M43: -z.Dot(eye), M44: 1,
	}
}

// Multiply multiplies two matrices (m · other).
func (m Mat4) Multiply(other Mat4) Mat4 {
	a := m.array()
	b := other.array()
	var r [16]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return fromArray(r)
}

// TransformPoint applies the transformation to a point.
// The fourth column is ignored (affine transform, no perspective divide).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: p.X*m.M11 + p.Y*m.M21 + p.Z*m.M31 + m.M41,
		Y: p.X*m.M12 + p.Y*m.M22 + p.Z*m.M32 + m.M42,
		Z: p.X*m.M13 + p.Y*m.M23 + p.Z*m.M33 + m.M43,
	}
}

// Row3 returns the first three components of the third row.
func (m Mat4) Row3() Vec3 {
	return Vec3{X: m.M31, Y: m.M32, Z: m.M33}
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	a := m.array()
	inv := cofactors(a)
	return a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
}

// Invert returns the inverse matrix.
// Returns the identity matrix and false if the matrix is not invertible.
func (m Mat4) Invert() (Mat4, bool) {
	a := m.array()
	inv := cofactors(a)

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if math.Abs(det) < invertEpsilon || math.IsNaN(det) {
		return Identity4(), false
	}

	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return fromArray(inv), true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity4()
}

func (m Mat4) array() [16]float64 {
	return [16]float64{
		m.M11, m.M12, m.M13, m.M14,
		m.M21, m.M22, m.M23, m.M24,
		m.M31, m.M32, m.M33, m.M34,
		m.M41, m.M42, m.M43, m.M44,
	}
}

func fromArray(a [16]float64) Mat4 {
	return Mat4{
		M11: a[0], M12: a[1], M13: a[2], M14: a[3],
		M21: a[4], M22: a[5], M23: a[6], M24: a[7],
		M31: a[8], M32: a[9], M33: a[10], M34: a[11],
		M41: a[12], M42: a[13], M43: a[14], M44: a[15],
	}
}

// cofactors returns the adjugate of a (transposed cofactor matrix).
func cofactors(a [16]float64) [16]float64 {
	var inv [16]float64

	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] +
		a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] -
		a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] +
		a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] -
		a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]

	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] -
		a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] +
		a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] -
		a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] +
		a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]

	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] +
		a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] -
		a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] +
		a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] -
		a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]

	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] -
		a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] +
		a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] -
		a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] +
		a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	return inv
}
