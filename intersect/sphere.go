package intersect

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
)

// SpherePoint checks whether point is inside s, surface included.
func SpherePoint(s geometry.Sphere, point math32.Vector3) bool {
	return s.ContainsPoint(point)
}

// SphereRayDistance returns the distance from the ray origin to the first
// point where the ray line enters s, or -1 if the line misses the sphere or
// the direction is zero. The direction is normalized first, so the result
// is in world units whatever its length, unlike the ray parameters of
// AABoxRay and TriangleRay. It is negative when that point lies behind the
// origin.
func SphereRayDistance(s geometry.Sphere, r geometry.Ray) float32 {
	dir := r.Direction.Normalize()
	if dir.IsZero() {
		return -1
	}
	q := s.Center.Sub(r.Origin)
	v := q.Dot(dir)
	d := s.Radius*s.Radius - (q.LengthSquared() - v*v)
	if d < 0 {
		return -1
	}
	return v - math32.Sqrt(d)
}

// SphereRay returns the first point where the ray hits s. For an origin
// inside the sphere this is the point where the ray leaves it. A zero
// direction or a miss returns the ray origin and false.
func SphereRay(s geometry.Sphere, r geometry.Ray) (math32.Vector3, bool) {
	dir := r.Direction.Normalize()
	if dir.IsZero() {
		return r.Origin, false
	}

	q := s.Center.Sub(r.Origin)
	qq := q.LengthSquared()
	rr := s.Radius * s.Radius
	v := q.Dot(dir)
	d := rr - (qq - v*v)
	if d < 0 {
		return r.Origin, false
	}

	if qq <= rr {
		// inside: the near root lies behind the origin, take the exit
		return r.Origin.Add(dir.Mul(v + math32.Sqrt(d))), true
	}

	t := v - math32.Sqrt(d)
	if t < 0 {
		return r.Origin, false
	}
	return r.Origin.Add(dir.Mul(t)), true
}

// SphereLine checks whether the segment touches s.
func SphereLine(s geometry.Sphere, l geometry.Line) bool {
	closest := l.ClosestPoint(s.Center)
	return closest.DistanceSquared(s.Center) <= s.Radius*s.Radius
}

// SphereSphere checks whether two spheres overlap; touching counts.
func SphereSphere(a, b geometry.Sphere) bool {
	r := a.Radius + b.Radius
	return a.Center.DistanceSquared(b.Center) <= r*r
}

// SphereSphereMoving checks whether two spheres moving by moveA and moveB
// during the same step collide. It also returns the fraction (0..1) of the
// step at which they first touch; spheres overlapping at the start return
// true and 0.
func SphereSphereMoving(a geometry.Sphere, moveA math32.Vector3, b geometry.Sphere, moveB math32.Vector3) (bool, float32) {
	if SphereSphere(a, b) {
		return true, 0
	}

	// a moves relative to a resting b
	move := moveA.Sub(moveB)
	sumRadii := a.Radius + b.Radius
	c := b.Center.Sub(a.Center)
	moveLen := move.Length()

	// cannot close the gap
	if moveLen < c.Length()-sumRadii {
		return false, 0
	}

	n := move.Normalize()
	d := n.Dot(c)
	if d <= 0 {
		// moving away
		return false, 0
	}

	// squared distance between b's center and the movement line
	f := c.LengthSquared() - d*d
	sumRadiiSq := sumRadii * sumRadii
	if f >= sumRadiiSq {
		return false, 0
	}

	distance := d - math32.Sqrt(sumRadiiSq-f)
	if moveLen < distance {
		return false, 0
	}
	return true, distance / moveLen
}

// SphereAABox checks whether s overlaps the axis aligned box (Arvo).
func SphereAABox(s geometry.Sphere, box geometry.AABoundingBox) bool {
	var d float32
	for i := 0; i < 3; i++ {
		c := s.Center.Get(i)
		if min := box.Min.Get(i); c < min {
			d += (c - min) * (c - min)
		} else if max := box.Max.Get(i); c > max {
			d += (c - max) * (c - max)
		}
	}
	return d <= s.Radius*s.Radius
}

// SphereBox checks whether s overlaps the oriented box.
func SphereBox(s geometry.Sphere, box geometry.BoundingBox) bool {
	local := geometry.Sphere{Center: box.ToLocal(s.Center), Radius: s.Radius}
	return SphereAABox(local, box.LocalAABB())
}
