package intersect

import (
	"github.com/o0olele/geocull/geometry"
)

// TriangleRay checks if the ray hits the triangle (Möller–Trumbore) and
// returns the ray parameter of the hit; the point is r.Point(t). Both faces
// count, hits at or behind the origin do not.
func TriangleRay(tri geometry.Triangle, r geometry.Ray) (float32, bool) {
	const eps = 1e-6

	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	pvec := r.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if det > -eps && det < eps {
		return 0, false
	}
	invDet := 1.0 / det
	tvec := r.Origin.Sub(tri.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(e1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(qvec) * invDet
	if t <= eps {
		return 0, false
	}
	return t, true
}

// TriangleAABox checks whether the triangle overlaps the box (SAT).
func TriangleAABox(tri geometry.Triangle, box geometry.AABoundingBox) bool {
	return tri.IntersectsAABB(box)
}
