package intersect

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
)

// IsPlaneRay reports whether the ray line crosses the plane, that is
// whether the direction is not exactly parallel to it.
func IsPlaneRay(p geometry.Plane, r geometry.Ray) bool {
	return p.Normal().Dot(r.Direction) != 0
}

// PlaneRay returns the point where the ray line crosses the plane, which
// may lie behind the origin. A parallel ray returns its origin; check
// IsPlaneRay first.
func PlaneRay(p geometry.Plane, r geometry.Ray) math32.Vector3 {
	denom := p.Normal().Dot(r.Direction)
	if denom == 0 {
		return r.Origin
	}
	return r.Point(-p.Distance(r.Origin) / denom)
}

// IsPlaneLine reports whether the segment touches the plane.
func IsPlaneLine(p geometry.Plane, l geometry.Line) bool {
	return p.Distance(l.Start)*p.Distance(l.End) <= 0
}

// PlaneLine returns the point where the segment crosses the plane. A
// segment lying in the plane returns its start. A miss returns the start
// and false.
func PlaneLine(p geometry.Plane, l geometry.Line) (math32.Vector3, bool) {
	d1 := p.Distance(l.Start)
	d2 := p.Distance(l.End)
	if d1*d2 > 0 {
		return l.Start, false
	}
	if d1 == d2 {
		return l.Start, true
	}
	return l.Start.Lerp(l.End, d1/(d1-d2)), true
}

// PlanePlane returns the line shared by two planes as a ray whose
// direction is the cross product of the normals. Parallel planes return
// false.
func PlanePlane(p1, p2 geometry.Plane) (geometry.Ray, bool) {
	n1, n2 := p1.Normal(), p2.Normal()
	dir := n1.Cross(n2)
	det := dir.LengthSquared()
	if det == 0 {
		return geometry.Ray{}, false
	}

	n1n2 := n1.Dot(n2)
	c1 := (p2.D*n1n2 - p1.D*n2.LengthSquared()) / det
	c2 := (p1.D*n1n2 - p2.D*n1.LengthSquared()) / det
	return geometry.Ray{Origin: n1.Mul(c1).Add(n2.Mul(c2)), Direction: dir}, true
}

// PlanePlanePlane returns the point shared by three planes. The test for
// degenerate configurations is an exact zero test of the determinant.
func PlanePlanePlane(p1, p2, p3 geometry.Plane) (math32.Vector3, bool) {
	return geometry.IntersectPlanes(p1, p2, p3)
}
