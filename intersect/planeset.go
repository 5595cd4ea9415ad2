package intersect

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
)

// AllPlanes is the clip mask selecting every plane.
const AllPlanes = ^uint32(0)

// MaskPlanes is the number of planes a clip mask can select. Planes past it
// are tested on every call.
const MaskPlanes = 32

// MaskDone reports whether a box whose children were given mask by
// PlaneSetAABoxMask is inside every plane of ps, so nothing below it needs
// testing.
func MaskDone(ps *geometry.PlaneSet, mask uint32) bool {
	return mask == 0 && ps.Len() <= MaskPlanes
}

// PlaneSetPoint checks whether point is strictly inside the region: on the
// positive side of every plane. Points on a plane are outside.
func PlaneSetPoint(ps *geometry.PlaneSet, point math32.Vector3) bool {
	if ps.Len() == 0 {
		return false
	}
	for _, p := range ps.Planes() {
		if p.Distance(point) <= 0 {
			return false
		}
	}
	return true
}

// PlaneSetPoints checks whether the point cloud may intersect the region.
// It fails when all points are outside the same plane, which makes it
// conservative: true does not guarantee that a point is inside.
func PlaneSetPoints(ps *geometry.PlaneSet, points []math32.Vector3) bool {
	if ps.Len() == 0 || len(points) == 0 {
		return false
	}
	for _, p := range ps.Planes() {
		outside := true
		for _, point := range points {
			if p.Distance(point) > 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}

// PlaneSetTriangle checks whether the triangle may intersect the region,
// see PlaneSetPoints.
func PlaneSetTriangle(ps *geometry.PlaneSet, a, b, c math32.Vector3) bool {
	return PlaneSetPoints(ps, []math32.Vector3{a, b, c})
}

// PlaneSetSphere checks whether s may intersect the region. It fails when
// the sphere is completely behind one plane. The planes must be normalized.
func PlaneSetSphere(ps *geometry.PlaneSet, s geometry.Sphere) bool {
	if ps.Len() == 0 {
		return false
	}
	for _, p := range ps.Planes() {
		if p.Distance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// PlaneSetAABox checks whether the box may intersect the region.
func PlaneSetAABox(ps *geometry.PlaneSet, box geometry.AABoundingBox) bool {
	ok, _ := PlaneSetAABoxMask(ps, box, AllPlanes)
	return ok
}

// PlaneSetAABoxMask tests the box against the planes selected by mask (bit
// i for plane i) and reports whether it may intersect the region. The
// returned mask holds the selected planes the box straddles; planes it is
// completely in front of are cleared, so a child box contained in this one
// only needs testing against the returned planes. Planes from index
// MaskPlanes on are always tested and never reported, see MaskDone.
//
// For every plane the half diagonal is projected on the normal (NP) and
// compared with the signed center distance (MP): MP+NP < 0 culls the box.
func PlaneSetAABoxMask(ps *geometry.PlaneSet, box geometry.AABoundingBox, mask uint32) (bool, uint32) {
	if ps.Len() == 0 {
		return false, 0
	}

	center := box.Center()
	half := box.HalfSize()
	var out uint32
	for i, p := range ps.Planes() {
		var bit uint32
		if i < MaskPlanes {
			bit = 1 << uint(i)
			if mask&bit == 0 {
				continue
			}
		}

		np := half.X*math32.Abs(p.A) + half.Y*math32.Abs(p.B) + half.Z*math32.Abs(p.C)
		mp := p.Distance(center)
		if mp+np < 0 {
			return false, 0
		}
		if mp-np < 0 {
			out |= bit
		}
	}
	return true, out
}
