package math32

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector4 represents a homogeneous 4D vector.
type Vector4 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Vec4 returns a new Vector4.
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{x, y, z, w}
}

// Add adds two vectors.
func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub subtracts two vectors.
func (v Vector4) Sub(other Vector4) Vector4 {
	return Vector4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Mul multiplies a vector by a scalar.
func (v Vector4) Mul(s float32) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot calculates the 4D dot product.
func (v Vector4) Dot(other Vector4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// XYZ drops the w component.
func (v Vector4) XYZ() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Project divides x, y and z by w. A zero w returns x, y and z unchanged.
func (v Vector4) Project() Vector3 {
	if v.W == 0 {
		return v.XYZ()
	}
	inv := 1 / v.W
	return Vector3{v.X * inv, v.Y * inv, v.Z * inv}
}

// String returns a string representation of the vector.
func (v Vector4) String() string {
	return fmt.Sprintf("[%2f,%2f,%2f,%2f]", v.X, v.Y, v.Z, v.W)
}

// FromVec4 converts an mgl32 vector.
func FromVec4(v mgl32.Vec4) Vector4 {
	return Vector4{v[0], v[1], v[2], v[3]}
}

// Vec4 converts the vector to its mgl32 counterpart.
func (v Vector4) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{v.X, v.Y, v.Z, v.W}
}
