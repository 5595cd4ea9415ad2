package intersect

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
)

// AABoxPoint checks whether point is inside the box, borders included.
func AABoxPoint(box geometry.AABoundingBox, point math32.Vector3) bool {
	return box.Contains(point)
}

// AABoxAABox checks whether two boxes overlap; touching counts.
func AABoxAABox(a, b geometry.AABoundingBox) bool {
	return a.Intersects(b)
}

// AABoxSphere checks whether s overlaps the box.
func AABoxSphere(box geometry.AABoundingBox, s geometry.Sphere) bool {
	return SphereAABox(s, box)
}

// AABoxLine checks whether the segment hits the box and returns the
// distance from l.Start to the first hit. A start inside the box hits at 0.
// A hit of the infinite line beyond l.End is a miss.
func AABoxLine(box geometry.AABoundingBox, l geometry.Line) (bool, float32) {
	if box.Contains(l.Start) {
		return true, 0
	}

	dir := l.Vector()
	length := dir.Length()
	if length == 0 {
		return false, 0
	}
	dir = dir.Mul(1 / length)

	best := math32.Inf(1)
	hit := false
	for axis := 0; axis < 3; axis++ {
		s := l.Start.Get(axis)
		d := dir.Get(axis)

		var face float32
		switch {
		case s < box.Min.Get(axis) && d > 0:
			face = box.Min.Get(axis)
		case s > box.Max.Get(axis) && d < 0:
			face = box.Max.Get(axis)
		default:
			continue
		}

		t := (face - s) / d
		if t >= best {
			continue
		}

		p := l.Start.Add(dir.Mul(t))
		inside := true
		for other := 0; other < 3; other++ {
			if other == axis {
				continue
			}
			if v := p.Get(other); v < box.Min.Get(other) || v > box.Max.Get(other) {
				inside = false
				break
			}
		}
		if inside {
			best = t
			hit = true
		}
	}

	if !hit || best > length {
		return false, 0
	}
	return true, best
}

// AABoxRay checks whether the ray hits the box (slab method) and returns
// the entry and exit parameters along the ray. An origin inside the box
// enters at 0.
func AABoxRay(box geometry.AABoundingBox, r geometry.Ray) (float32, float32, bool) {
	const eps = 1e-6
	tmin := -math32.Inf(1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Get(axis)
		d := r.Direction.Get(axis)
		min, max := box.Min.Get(axis), box.Max.Get(axis)

		if math32.Abs(d) < eps {
			if o < min || o > max {
				return 0, 0, false
			}
			continue
		}

		t1 := (min - o) / d
		t2 := (max - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, false
		}
	}

	if tmax < 0 {
		return 0, 0, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, tmax, true
}
