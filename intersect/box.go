package intersect

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
)

// ParallelApprox is the cosine above which two box axes are treated as
// parallel. Cross products of such axes are numerically meaningless, so
// the edge axes of the separating axis test are skipped for them.
const ParallelApprox = 0.999999

// BoxPoint checks whether point is inside the oriented box, borders included.
func BoxPoint(box geometry.BoundingBox, point math32.Vector3) bool {
	return box.ContainsPoint(point)
}

// BoxLine checks whether the segment hits the oriented box and returns the
// distance from l.Start to the first hit, as AABoxLine does.
func BoxLine(box geometry.BoundingBox, l geometry.Line) (bool, float32) {
	local := geometry.Line{Start: box.ToLocal(l.Start), End: box.ToLocal(l.End)}
	return AABoxLine(box.LocalAABB(), local)
}

// boxFrame holds the rotation of b relative to a and the center offset in
// a's frame, shared by the static and the swept test.
type boxFrame struct {
	r, absR  [3][3]float32
	t        [3]float32
	parallel bool
}

func newBoxFrame(a, b *geometry.BoundingBox) boxFrame {
	var f boxFrame
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f.r[i][j] = a.Axis[i].Dot(b.Axis[j])
			f.absR[i][j] = math32.Abs(f.r[i][j])
			if f.absR[i][j] > ParallelApprox {
				f.parallel = true
			}
		}
	}
	d := b.Center.Sub(a.Center)
	for i := 0; i < 3; i++ {
		f.t[i] = d.Dot(a.Axis[i])
	}
	return f
}

// BoxBox checks whether two oriented boxes overlap with the separating axis
// test over the 3+3 face axes and, unless two axes are nearly parallel, the
// 9 edge cross products. Touching boxes overlap.
func BoxBox(a, b geometry.BoundingBox) bool {
	f := newBoxFrame(&a, &b)
	ea, eb := a.Extents, b.Extents

	for i := 0; i < 3; i++ {
		ra := ea.Get(i)
		rb := eb.X*f.absR[i][0] + eb.Y*f.absR[i][1] + eb.Z*f.absR[i][2]
		if math32.Abs(f.t[i]) > ra+rb {
			return false
		}
	}

	for j := 0; j < 3; j++ {
		ra := ea.X*f.absR[0][j] + ea.Y*f.absR[1][j] + ea.Z*f.absR[2][j]
		rb := eb.Get(j)
		t := f.t[0]*f.r[0][j] + f.t[1]*f.r[1][j] + f.t[2]*f.r[2][j]
		if math32.Abs(t) > ra+rb {
			return false
		}
	}

	if f.parallel {
		return true
	}

	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := ea.Get(i1)*f.absR[i2][j] + ea.Get(i2)*f.absR[i1][j]
			rb := eb.Get(j1)*f.absR[i][j2] + eb.Get(j2)*f.absR[i][j1]
			t := f.t[i2]*f.r[i1][j] - f.t[i1]*f.r[i2][j]
			if math32.Abs(t) > ra+rb {
				return false
			}
		}
	}
	return true
}

// sweep narrows the time window [first, last] to the times at which the
// projections of a and b on axis overlap while b moves by vel per time
// unit relative to a. It returns false once the window is empty.
func sweep(a, b *geometry.BoundingBox, vel, axis math32.Vector3, first, last *float32) bool {
	if axis.LengthSquared() == 0 {
		return true
	}
	r := a.ProjectedRadius(axis) + b.ProjectedRadius(axis)
	c := b.Center.Sub(a.Center).Dot(axis)
	s := vel.Dot(axis)

	if s == 0 {
		return math32.Abs(c) <= r
	}

	t0 := (-r - c) / s
	t1 := (r - c) / s
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 > *first {
		*first = t0
	}
	if t1 < *last {
		*last = t1
	}
	return *first <= *last
}

// BoxBoxMoving checks whether two oriented boxes moving with velA and velB
// touch at some time in [0, tmax], and returns the first such time. Besides
// the axes of BoxBox it tests the movement direction crossed with the axes
// of a.
func BoxBoxMoving(a geometry.BoundingBox, velA math32.Vector3, b geometry.BoundingBox, velB math32.Vector3, tmax float32) (bool, float32) {
	vel := velB.Sub(velA)
	first, last := float32(0), tmax

	f := newBoxFrame(&a, &b)
	axes := make([]math32.Vector3, 0, 18)
	axes = append(axes, a.Axis[0], a.Axis[1], a.Axis[2], b.Axis[0], b.Axis[1], b.Axis[2])
	if !f.parallel {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				axes = append(axes, a.Axis[i].Cross(b.Axis[j]))
			}
		}
	}
	for i := 0; i < 3; i++ {
		axes = append(axes, vel.Cross(a.Axis[i]))
	}

	for _, axis := range axes {
		if !sweep(&a, &b, vel, axis, &first, &last) {
			return false, 0
		}
	}
	return true, first
}

// BoxPlaneSet checks whether the oriented box intersects the region of ps,
// using the world axis aligned box around it.
func BoxPlaneSet(box geometry.BoundingBox, ps *geometry.PlaneSet) bool {
	return PlaneSetAABox(ps, box.GetBounds())
}

// BoxPlaneSetMask is BoxPlaneSet with a clip mask, see PlaneSetAABoxMask.
func BoxPlaneSetMask(box geometry.BoundingBox, ps *geometry.PlaneSet, mask uint32) (bool, uint32) {
	return PlaneSetAABoxMask(ps, box.GetBounds(), mask)
}
