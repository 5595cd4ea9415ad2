package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/o0olele/geocull/math32"
)

// Plane order of a plane set built by CreateViewPlanes.
const (
	VPNear = iota
	VPRight
	VPLeft
	VPBottom
	VPTop
	VPFar
)

// Plane order of a plane set built by CreateBox.
const (
	BoxLeft = iota
	BoxRight
	BoxBottom
	BoxTop
	BoxBack
	BoxFront
)

// PlaneSet is an ordered collection of planes bounding a region, a view
// frustum for example. The builders orient every plane so that the region
// lies on its positive side.
//
// A PlaneSet is not safe for concurrent mutation.
type PlaneSet struct {
	planes []Plane
}

// NewPlaneSet returns a plane set holding a copy of planes.
func NewPlaneSet(planes ...Plane) *PlaneSet {
	ps := &PlaneSet{}
	ps.planes = append(ps.planes, planes...)
	return ps
}

// Len returns the number of planes.
func (ps *PlaneSet) Len() int {
	return len(ps.planes)
}

// Planes returns the planes in order. The slice must not be modified.
func (ps *PlaneSet) Planes() []Plane {
	return ps.planes
}

// Plane returns the plane at index i, or false if there is none.
func (ps *PlaneSet) Plane(i int) (Plane, bool) {
	if i < 0 || i >= len(ps.planes) {
		return Plane{}, false
	}
	return ps.planes[i], true
}

// Add appends a plane.
func (ps *PlaneSet) Add(p Plane) {
	ps.planes = append(ps.planes, p)
}

// Clear removes all planes.
func (ps *PlaneSet) Clear() {
	ps.planes = ps.planes[:0]
}

// CreateBox replaces the planes by the 6 faces of the axis aligned box
// (min, max), in BoxLeft..BoxFront order, facing the inside of the box.
func (ps *PlaneSet) CreateBox(min, max math32.Vector3) {
	ps.Clear()
	ps.planes = append(ps.planes,
		Plane{A: 1, D: -min.X},
		Plane{A: -1, D: max.X},
		Plane{B: 1, D: -min.Y},
		Plane{B: -1, D: max.Y},
		Plane{C: 1, D: -min.Z},
		Plane{C: -1, D: max.Z},
	)
}

// CreateViewPlanes replaces the planes by the frustum of a clip matrix
// (projection * view) in VPNear..VPFar order. An infinite projection has no
// far plane, leaving 5 planes.
func (ps *PlaneSet) CreateViewPlanes(viewProjection math32.Mat4, infinite bool) {
	r0 := math32.MatrixRow(viewProjection, 0)
	r1 := math32.MatrixRow(viewProjection, 1)
	r2 := math32.MatrixRow(viewProjection, 2)
	r3 := math32.MatrixRow(viewProjection, 3)

	ps.Clear()
	ps.planes = append(ps.planes,
		PlaneFromVector4(r3.Add(r2)).Normalize(),
		PlaneFromVector4(r3.Sub(r0)).Normalize(),
		PlaneFromVector4(r3.Add(r0)).Normalize(),
		PlaneFromVector4(r3.Add(r1)).Normalize(),
		PlaneFromVector4(r3.Sub(r1)).Normalize(),
	)
	if !infinite {
		ps.planes = append(ps.planes, PlaneFromVector4(r3.Sub(r2)).Normalize())
	}
}

// CreateViewPlanesFromPolygon replaces the planes by the frustum through a
// convex portal polygon seen from viewPos: a near plane through the first
// three vertices, then one plane per edge passing through the viewer.
// It returns false and leaves the set untouched for fewer than 3 vertices.
func (ps *PlaneSet) CreateViewPlanesFromPolygon(vertices []math32.Vector3, viewPos math32.Vector3) bool {
	if len(vertices) < 3 {
		return false
	}

	var centroid math32.Vector3
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1 / float32(len(vertices)))

	ps.Clear()
	near := PlaneFromPoints(vertices[0], vertices[1], vertices[2]).Normalize()
	if near.Distance(viewPos) > 0 {
		near = near.Invert()
	}
	ps.planes = append(ps.planes, near)

	for i, v := range vertices {
		next := vertices[(i+1)%len(vertices)]
		side := PlaneFromPoints(viewPos, v, next).Normalize()
		if side.Distance(centroid) < 0 {
			side = side.Invert()
		}
		ps.planes = append(ps.planes, side)
	}
	return true
}

// Viewport is a window area in pixels, origin top-left.
type Viewport struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Rect is a drag selection between two window positions, origin top-left.
type Rect struct {
	X0 float32 `json:"x0"`
	Y0 float32 `json:"y0"`
	X1 float32 `json:"x1"`
	Y1 float32 `json:"y1"`
}

// CreateSelectionPlanes replaces the planes by the part of the frustum of
// projection * view covered by the selection rectangle. Selections smaller
// than a pixel are widened to one pixel.
func (ps *PlaneSet) CreateSelectionPlanes(sel Rect, viewport Viewport, projection, view math32.Mat4, infinite bool) {
	w := math32.Abs(sel.X1 - sel.X0)
	h := math32.Abs(sel.Y1 - sel.Y0)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// selection center relative to the viewport, y pointing up
	x := (sel.X0+sel.X1)/2 - viewport.X
	y := viewport.Height - ((sel.Y0+sel.Y1)/2 - viewport.Y)

	pick := mgl32.Translate3D((viewport.Width-2*x)/w, (viewport.Height-2*y)/h, 0).
		Mul4(mgl32.Scale3D(viewport.Width/w, viewport.Height/h, 1))

	ps.CreateViewPlanes(pick.Mul4(projection).Mul4(view), infinite)
}

// Transform moves every plane by m, a local to world point transform.
func (ps *PlaneSet) Transform(m math32.Mat4) {
	for i, p := range ps.planes {
		ps.planes[i] = p.Transform(m)
	}
}

// IsConvex reports whether every plane faces at least one other plane of
// the set (negative normal dot product). This is a cheap heuristic rather
// than a proof. An empty set is convex.
func (ps *PlaneSet) IsConvex() bool {
	for i, p := range ps.planes {
		found := false
		for j, q := range ps.planes {
			if i != j && p.Normal().Dot(q.Normal()) < 0 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// cornerPoints intersects every triple of distinct planes and returns the
// points found. Parallel or degenerate triples are skipped. O(n^3).
func (ps *PlaneSet) cornerPoints() []math32.Vector3 {
	var points []math32.Vector3
	n := len(ps.planes)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if p, ok := IntersectPlanes(ps.planes[i], ps.planes[j], ps.planes[k]); ok {
					points = append(points, p)
				}
			}
		}
	}
	return points
}

// CalculateSphere returns a sphere around all points where three planes of
// the set meet, or false if there are none.
func (ps *PlaneSet) CalculateSphere() (Sphere, bool) {
	points := ps.cornerPoints()
	if len(points) == 0 {
		return Sphere{}, false
	}
	return SphereFromPoints(points), true
}

// CalculateBox returns the axis aligned box around all points where three
// planes of the set meet, or false if there are none.
func (ps *PlaneSet) CalculateBox() (AABoundingBox, bool) {
	points := ps.cornerPoints()
	if len(points) == 0 {
		return AABoundingBox{}, false
	}
	return AABoundingBoxFromPoints(points), true
}

// IntersectPlanes returns the point shared by three planes. It fails only
// when the scalar triple product of the normals is exactly zero.
func IntersectPlanes(p1, p2, p3 Plane) (math32.Vector3, bool) {
	n1, n2, n3 := p1.Normal(), p2.Normal(), p3.Normal()
	n2n3 := n2.Cross(n3)
	denom := n1.Dot(n2n3)
	if denom == 0 {
		return math32.Vector3{}, false
	}
	n3n1 := n3.Cross(n1)
	n1n2 := n1.Cross(n2)
	p := n2n3.Mul(-p1.D).Add(n3n1.Mul(-p2.D)).Add(n1n2.Mul(-p3.D))
	return p.Mul(1 / denom), true
}
