package geometry

import (
	"github.com/o0olele/geocull/math32"
)

// Triangle is a triangle geometry
type Triangle struct {
	A math32.Vector3 `json:"a"`
	B math32.Vector3 `json:"b"`
	C math32.Vector3 `json:"c"`
}

// GetBounds returns the bounding box of the triangle
func (t *Triangle) GetBounds() AABoundingBox {
	return AABoundingBox{
		Min: t.A.Min(t.B).Min(t.C),
		Max: t.A.Max(t.B).Max(t.C),
	}
}

// IntersectsAABB checks if the triangle intersects with an AABB
func (t *Triangle) IntersectsAABB(aabb AABoundingBox) bool {
	// first perform the quick bounding box detection
	bounds := t.GetBounds()
	if !bounds.Intersects(aabb) {
		return false
	}

	// for simple cases, if the triangle is completely inside the AABB, return true
	if aabb.Contains(t.A) && aabb.Contains(t.B) && aabb.Contains(t.C) {
		return true
	}

	// use the Separating Axis Theorem (SAT) for precise detection
	center := aabb.Center()
	halfSize := aabb.HalfSize()

	// triangle vertices relative to the AABB center
	v0 := t.A.Sub(center)
	v1 := t.B.Sub(center)
	v2 := t.C.Sub(center)

	f0 := v1.Sub(v0)
	f1 := v2.Sub(v1)
	f2 := v0.Sub(v2)

	// the normal of the triangle
	normal := f0.Cross(f1)
	if normal.Length() > 1e-10 {
		if !testSeparatingAxis(normal, v0, v1, v2, halfSize) {
			return false
		}
	}

	// the 3 faces of the AABB were covered by the bounds test above

	// 9 axes (3 AABB face normals x 3 triangle edge vectors)
	crossAxes := [9]math32.Vector3{
		{X: 0, Y: -f0.Z, Z: f0.Y},
		{X: 0, Y: -f1.Z, Z: f1.Y},
		{X: 0, Y: -f2.Z, Z: f2.Y},
		{X: f0.Z, Y: 0, Z: -f0.X},
		{X: f1.Z, Y: 0, Z: -f1.X},
		{X: f2.Z, Y: 0, Z: -f2.X},
		{X: -f0.Y, Y: f0.X, Z: 0},
		{X: -f1.Y, Y: f1.X, Z: 0},
		{X: -f2.Y, Y: f2.X, Z: 0},
	}

	for _, axis := range crossAxes {
		// skip zero vector
		if axis.Length() < 1e-10 {
			continue
		}
		if !testSeparatingAxis(axis, v0, v1, v2, halfSize) {
			return false
		}
	}

	return true
}

// testSeparatingAxis reports whether the projections of the triangle and of
// the box overlap on axis, i.e. whether axis does NOT separate them.
func testSeparatingAxis(axis math32.Vector3, v0, v1, v2, halfSize math32.Vector3) bool {
	p0 := v0.Dot(axis)
	p1 := v1.Dot(axis)
	p2 := v2.Dot(axis)

	triMin := math32.Min(math32.Min(p0, p1), p2)
	triMax := math32.Max(math32.Max(p0, p1), p2)

	r := math32.Abs(halfSize.X*axis.X) + math32.Abs(halfSize.Y*axis.Y) + math32.Abs(halfSize.Z*axis.Z)

	return !(triMax < -r || triMin > r)
}

// ContainsPoint checks if the point lies on the triangle.
func (t *Triangle) ContainsPoint(point math32.Vector3) bool {
	if !t.IsPointOnTrianglePlane(point) {
		return false
	}
	return point.IsPointInTriangle(t.A, t.B, t.C)
}

// IsPointOnTrianglePlane checks if the point is on the plane of the triangle (with a small error)
func (t *Triangle) IsPointOnTrianglePlane(point math32.Vector3) bool {
	normal := t.B.Sub(t.A).Cross(t.C.Sub(t.A))

	// degenerate triangle, fall back to the bounding box
	if normal.Length() < 1e-10 {
		bounds := t.GetBounds()
		return bounds.Contains(point)
	}

	normal = normal.Normalize()
	distance := math32.Abs(point.Sub(t.A).Dot(normal))

	const tolerance = 1e-6
	return distance < tolerance
}

// GetNormal returns the normal of the triangle
func (t *Triangle) GetNormal() math32.Vector3 {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	return edge1.Cross(edge2).Normalize()
}

// Plane returns the normalized plane of the triangle.
func (t *Triangle) Plane() Plane {
	return PlaneFromPoints(t.A, t.B, t.C).Normalize()
}

// ClosestPoint returns the point of the triangle closest to point.
func (t *Triangle) ClosestPoint(point math32.Vector3) math32.Vector3 {
	return point.ClosestPointOnTriangle(t.A, t.B, t.C)
}
