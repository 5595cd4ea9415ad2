package math32

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4x4 matrix, as used by OpenGL.
type Mat4 = mgl32.Mat4

// Quat is a rotation quaternion.
type Quat = mgl32.Quat

// MatrixRow returns row i (0..3) of a column-major matrix.
func MatrixRow(m Mat4, i int) Vector4 {
	return FromVec4(m.Row(i))
}

// TransformPoint transforms a point (w=1) by m, dividing by the resulting w.
func TransformPoint(m Mat4, v Vector3) Vector3 {
	return FromVec4(m.Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, 1})).Project()
}

// TransformDirection transforms a direction (w=0) by m.
func TransformDirection(m Mat4, v Vector3) Vector3 {
	return FromVec4(m.Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, 0})).XYZ()
}

// Rotate rotates v by the quaternion q. The zero quaternion acts as the
// identity.
func Rotate(q Quat, v Vector3) Vector3 {
	return FromVec3(q.Normalize().Rotate(v.Vec3()))
}

// RotationAxes returns the three columns of the rotation matrix of q, that
// is the rotated X, Y and Z unit axes.
func RotationAxes(q Quat) [3]Vector3 {
	m := q.Normalize().Mat4()
	return [3]Vector3{
		{m[0], m[1], m[2]},
		{m[4], m[5], m[6]},
		{m[8], m[9], m[10]},
	}
}
