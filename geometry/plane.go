package geometry

import "github.com/o0olele/geocull/math32"

// Side classifies a point or shape against a plane.
type Side int8

const (
	Behind Side = iota - 1
	InPlane
	InFront
	Spanning
)

func (s Side) String() string {
	switch s {
	case Behind:
		return "behind"
	case InPlane:
		return "in-plane"
	case InFront:
		return "in-front"
	case Spanning:
		return "spanning"
	}
	return "unknown"
}

// Plane holds the coefficients of A*x + B*y + C*z + D = 0. The normal is
// (A, B, C); it is only unit length after Normalize.
type Plane struct {
	A float32 `json:"a"`
	B float32 `json:"b"`
	C float32 `json:"c"`
	D float32 `json:"d"`
}

// PlaneFromPointNormal returns the plane through point with the given normal.
func PlaneFromPointNormal(point, normal math32.Vector3) Plane {
	return Plane{A: normal.X, B: normal.Y, C: normal.Z, D: -normal.Dot(point)}
}

// PlaneFromPoints returns the plane through the three points, its normal
// being (p2-p1)x(p3-p1). The result is not normalized.
func PlaneFromPoints(p1, p2, p3 math32.Vector3) Plane {
	return PlaneFromPointNormal(p1, p2.Sub(p1).Cross(p3.Sub(p1)))
}

// PlaneFromVector4 reads the coefficients from a homogeneous vector.
func PlaneFromVector4(v math32.Vector4) Plane {
	return Plane{A: v.X, B: v.Y, C: v.Z, D: v.W}
}

// Normal returns (A, B, C).
func (p Plane) Normal() math32.Vector3 {
	return math32.Vector3{X: p.A, Y: p.B, Z: p.C}
}

// Vector4 returns the coefficients as a homogeneous vector.
func (p Plane) Vector4() math32.Vector4 {
	return math32.Vector4{X: p.A, Y: p.B, Z: p.C, W: p.D}
}

// Normalize scales the plane to a unit normal. A zero normal leaves the
// plane untouched.
func (p Plane) Normalize() Plane {
	lenSq := p.A*p.A + p.B*p.B + p.C*p.C
	if lenSq == 0 {
		return p
	}
	inv := 1 / math32.Sqrt(lenSq)
	return Plane{A: p.A * inv, B: p.B * inv, C: p.C * inv, D: p.D * inv}
}

// Invert flips the plane so front and back swap.
func (p Plane) Invert() Plane {
	return Plane{A: -p.A, B: -p.B, C: -p.C, D: -p.D}
}

// Distance returns the signed distance of point, positive in front. It is
// only a true distance for normalized planes.
func (p Plane) Distance(point math32.Vector3) float32 {
	return p.A*point.X + p.B*point.Y + p.C*point.Z + p.D
}

// DistanceToOrigin returns the signed distance of the origin.
func (p Plane) DistanceToOrigin() float32 {
	return p.D
}

// Side classifies point; points within epsilon of the plane are InPlane.
func (p Plane) Side(point math32.Vector3, epsilon float32) Side {
	d := p.Distance(point)
	switch {
	case d > epsilon:
		return InFront
	case d < -epsilon:
		return Behind
	}
	return InPlane
}

// ProjectPoint returns the point of the plane closest to point. The plane
// must be normalized.
func (p Plane) ProjectPoint(point math32.Vector3) math32.Vector3 {
	return point.Sub(p.Normal().Mul(p.Distance(point)))
}

// Transform returns the plane transformed by m. Planes transform with the
// inverse transpose; a singular m returns p unchanged.
func (p Plane) Transform(m math32.Mat4) Plane {
	if m.Det() == 0 {
		return p
	}
	v := m.Inv().Transpose().Mul4x1(p.Vector4().Vec4())
	return Plane{A: v[0], B: v[1], C: v[2], D: v[3]}
}
