package math32

import (
	"math"

	"github.com/chewxy/math32"
)

// Floating-point limit values.
const (
	MaxFloat32 = math.MaxFloat32
	Pi         = math.Pi
)

// Min returns the minimum of two values.
func Min[T float32 | int32](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two values.
func Max[T float32 | int32](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp limits a to the range [lo, hi].
func Clamp(a, lo, hi float32) float32 {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

// Abs returns the absolute value of a float32.
func Abs(a float32) float32 {
	return math32.Abs(a)
}

// Sqrt returns the square root of a float32.
func Sqrt(a float32) float32 {
	return math32.Sqrt(a)
}

// IsFinite reports whether a is neither infinite nor NaN.
func IsFinite(a float32) bool {
	return !math32.IsInf(a, 0) && !math32.IsNaN(a)
}

// Inf returns positive infinity if sign >= 0, negative infinity if sign < 0.
func Inf(sign int) float32 {
	return math32.Inf(sign)
}

// CeilToInt returns the ceiling of a float32 as an integer.
func CeilToInt(a float32) int {
	return int(math32.Ceil(a))
}

// RoundToInt returns the round of a float32 as an integer.
func RoundToInt(a float32) int {
	return int(math32.Round(a))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * (Pi / 180)
}
