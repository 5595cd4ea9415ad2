package geometry

import "github.com/o0olele/geocull/math32"

// Ray is a half line starting at Origin. Direction need not be normalized,
// in which case parameters are in units of its length.
type Ray struct {
	Origin    math32.Vector3 `json:"origin"`
	Direction math32.Vector3 `json:"direction"`
}

// RayFromLine returns the ray from l.Start through l.End with a unit direction.
func RayFromLine(l Line) Ray {
	return Ray{Origin: l.Start, Direction: l.Direction()}
}

// Point returns Origin + Direction*t.
func (r Ray) Point(t float32) math32.Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ClosestPoint returns the point of the ray closest to point.
func (r Ray) ClosestPoint(point math32.Vector3) math32.Vector3 {
	lenSq := r.Direction.LengthSquared()
	if lenSq == 0 {
		return r.Origin
	}
	t := point.Sub(r.Origin).Dot(r.Direction) / lenSq
	if t < 0 {
		return r.Origin
	}
	return r.Point(t)
}
