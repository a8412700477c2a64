package math

import "math"

type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulVec4 multiplies the homogeneous row vector (x, y, z, w) by m: result = v*m.
func (m Mat4) MulVec4(x, y, z, w float32) (rx, ry, rz, rw float32) {
	rx = x*m[0][0] + y*m[1][0] + z*m[2][0] + w*m[3][0]
	ry = x*m[0][1] + y*m[1][1] + z*m[2][1] + w*m[3][1]
	rz = x*m[0][2] + y*m[1][2] + z*m[2][2] + w*m[3][2]
	rw = x*m[0][3] + y*m[1][3] + z*m[2][3] + w*m[3][3]
	return
}

// MulVec3 transforms a point (implicit w=1), dividing through by the resulting w.
// Returns the zero vector if the resulting w is zero.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	x, y, z, w := m.MulVec4(v.X, v.Y, v.Z, 1)
	if w == 0 {
		return Vec3{}
	}
	return Vec3{X: x / w, Y: y / w, Z: z / w}
}

// MulDir transforms a direction (implicit w=0); no perspective divide.
func (m Mat4) MulDir(v Vec3) Vec3 {
	x, y, z, _ := m.MulVec4(v.X, v.Y, v.Z, 0)
	return Vec3{X: x, Y: y, Z: z}
}

// Upper3x3 extracts the upper-left 3x3 block (used to build the normal matrix).
func (m Mat4) Upper3x3() Mat4 {
	r := Mat4Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j]
		}
	}
	return r
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := float32(math.Tan(float64(fovY) / 2))
	
	m := Mat4Zero()
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// Inverse computes the general 4x4 matrix inverse via 2x2-minor cofactor
// expansion. Falls back to identity on a singular matrix.
func (m Mat4) Inverse() Mat4 {
	s0 := m[0][0]*m[1][1] - m[1][0]*m[0][1]
	s1 := m[0][0]*m[1][2] - m[1][0]*m[0][2]
	s2 := m[0][0]*m[1][3] - m[1][0]*m[0][3]
	s3 := m[0][1]*m[1][2] - m[1][1]*m[0][2]
	s4 := m[0][1]*m[1][3] - m[1][1]*m[0][3]
	s5 := m[0][2]*m[1][3] - m[1][2]*m[0][3]

	c5 := m[2][2]*m[3][3] - m[3][2]*m[2][3]
	c4 := m[2][1]*m[3][3] - m[3][1]*m[2][3]
	c3 := m[2][1]*m[3][2] - m[3][1]*m[2][2]
	c2 := m[2][0]*m[3][3] - m[3][0]*m[2][3]
	c1 := m[2][0]*m[3][2] - m[3][0]*m[2][2]
	c0 := m[2][0]*m[3][1] - m[3][0]*m[2][1]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Mat4Identity()
	}
	invDet := 1 / det

	var inv Mat4
	inv[0][0] = (m[1][1]*c5 - m[1][2]*c4 + m[1][3]*c3) * invDet
	inv[0][1] = (-m[0][1]*c5 + m[0][2]*c4 - m[0][3]*c3) * invDet
	inv[0][2] = (m[3][1]*s5 - m[3][2]*s4 + m[3][3]*s3) * invDet
	inv[0][3] = (-m[2][1]*s5 + m[2][2]*s4 - m[2][3]*s3) * invDet

	inv[1][0] = (-m[1][0]*c5 + m[1][2]*c2 - m[1][3]*c1) * invDet
	inv[1][1] = (m[0][0]*c5 - m[0][2]*c2 + m[0][3]*c1) * invDet
	inv[1][2] = (-m[3][0]*s5 + m[3][2]*s2 - m[3][3]*s1) * invDet
	inv[1][3] = (m[2][0]*s5 - m[2][2]*s2 + m[2][3]*s1) * invDet

	inv[2][0] = (m[1][0]*c4 - m[1][1]*c2 + m[1][3]*c0) * invDet
	inv[2][1] = (-m[0][0]*c4 + m[0][1]*c2 - m[0][3]*c0) * invDet
	inv[2][2] = (m[3][0]*s4 - m[3][1]*s2 + m[3][3]*s0) * invDet
	inv[2][3] = (-m[2][0]*s4 + m[2][1]*s2 - m[2][3]*s0) * invDet

	inv[3][0] = (-m[1][0]*c3 + m[1][1]*c1 - m[1][2]*c0) * invDet
	inv[3][1] = (m[0][0]*c3 - m[0][1]*c1 + m[0][2]*c0) * invDet
	inv[3][2] = (-m[3][0]*s3 + m[3][1]*s1 - m[3][2]*s0) * invDet
	inv[3][3] = (m[2][0]*s3 - m[2][1]*s1 + m[2][2]*s0) * invDet

	return inv
}
