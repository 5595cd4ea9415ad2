package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/o0olele/geocull/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inside(ps *PlaneSet, p math32.Vector3) bool {
	for _, plane := range ps.Planes() {
		if plane.Distance(p) <= 0 {
			return false
		}
	}
	return ps.Len() > 0
}

func camera() (projection, view math32.Mat4) {
	projection = mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	view = mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return projection, view
}

func TestPlaneSetCreateBox(t *testing.T) {
	ps := NewPlaneSet()
	ps.CreateBox(math32.Vec3(-1, -1, -1), math32.Vec3(1, 1, 1))
	require.Equal(t, 6, ps.Len())

	assert.True(t, inside(ps, math32.Vec3(0.5, -0.5, 0.9)))
	assert.False(t, inside(ps, math32.Vec3(1, 0, 0)))

	right, ok := ps.Plane(BoxRight)
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(-1, 0, 0), right.Normal())
	_, ok = ps.Plane(6)
	assert.False(t, ok)

	assert.True(t, ps.IsConvex())

	s, ok := ps.CalculateSphere()
	require.True(t, ok)
	assert.True(t, s.Center.NearEqual(math32.Vector3{}, 1e-6))
	assert.InDelta(t, math32.Sqrt(3), s.Radius, 1e-5)

	b, ok := ps.CalculateBox()
	require.True(t, ok)
	assert.Equal(t, NewAABoundingBox(math32.Vec3(-1, -1, -1), math32.Vec3(1, 1, 1)), b)

	ps.Clear()
	assert.Zero(t, ps.Len())
	_, ok = ps.CalculateSphere()
	assert.False(t, ok)
	assert.True(t, ps.IsConvex())
}

func TestPlaneSetIsConvex(t *testing.T) {
	ps := NewPlaneSet(Plane{C: 1}, Plane{C: 1, D: 1})
	assert.False(t, ps.IsConvex())
	ps.Add(Plane{C: -1, D: 5})
	assert.True(t, ps.IsConvex())
}

func TestPlaneSetCreateViewPlanes(t *testing.T) {
	projection, view := camera()
	ps := NewPlaneSet()
	ps.CreateViewPlanes(projection.Mul4(view), false)
	require.Equal(t, 6, ps.Len())

	for _, p := range ps.Planes() {
		assert.InDelta(t, 1, p.Normal().Length(), 1e-5)
	}

	near, _ := ps.Plane(VPNear)
	assert.InDelta(t, -1, near.Distance(math32.Vector3{}), 1e-4, "camera sits the near distance behind the near plane")

	assert.True(t, inside(ps, math32.Vec3(0, 0, -10)))
	assert.True(t, inside(ps, math32.Vec3(9, -9, -10)))
	assert.False(t, inside(ps, math32.Vec3(11, 0, -10)))
	assert.False(t, inside(ps, math32.Vec3(0, 0, 10)))
	assert.False(t, inside(ps, math32.Vec3(0, 0, -0.5)))
	assert.False(t, inside(ps, math32.Vec3(0, 0, -200)))

	ps.CreateViewPlanes(projection.Mul4(view), true)
	assert.Equal(t, 5, ps.Len())
	assert.True(t, inside(ps, math32.Vec3(0, 0, -200)))

	// near corners plus the eye, where the side planes meet
	box, ok := ps.CalculateBox()
	require.True(t, ok)
	assert.InDelta(t, 0, box.Max.Z, 1e-4)
	assert.InDelta(t, -1, box.Min.Z, 1e-3)
	assert.InDelta(t, 1, box.Max.X, 1e-3)
}

func TestPlaneSetCreateSelectionPlanes(t *testing.T) {
	projection, view := camera()
	viewport := Viewport{Width: 800, Height: 600}

	full := NewPlaneSet()
	full.CreateViewPlanes(projection.Mul4(view), false)

	ps := NewPlaneSet()
	ps.CreateSelectionPlanes(Rect{X1: 800, Y1: 600}, viewport, projection, view, false)
	require.Equal(t, full.Len(), ps.Len())
	for i, p := range ps.Planes() {
		want, _ := full.Plane(i)
		assert.True(t, p.Normal().NearEqual(want.Normal(), 1e-5), "plane %d", i)
		assert.InDelta(t, want.D, p.D, 1e-4)
	}

	// left half of the window
	ps.CreateSelectionPlanes(Rect{X0: 400, Y0: 600, X1: 0, Y1: 0}, viewport, projection, view, false)
	assert.True(t, inside(ps, math32.Vec3(-5, 0, -10)))
	assert.False(t, inside(ps, math32.Vec3(5, 0, -10)))

	// top half, window y grows downwards
	ps.CreateSelectionPlanes(Rect{X0: 0, Y0: 0, X1: 800, Y1: 300}, viewport, projection, view, false)
	assert.True(t, inside(ps, math32.Vec3(0, 5, -10)))
	assert.False(t, inside(ps, math32.Vec3(0, -5, -10)))
}

func TestPlaneSetCreateViewPlanesFromPolygon(t *testing.T) {
	portal := []math32.Vector3{
		math32.Vec3(-1, -1, -5),
		math32.Vec3(1, -1, -5),
		math32.Vec3(1, 1, -5),
		math32.Vec3(-1, 1, -5),
	}
	ps := NewPlaneSet()
	require.True(t, ps.CreateViewPlanesFromPolygon(portal, math32.Vector3{}))
	assert.Equal(t, 5, ps.Len())

	assert.True(t, inside(ps, math32.Vec3(0, 0, -10)))
	assert.True(t, inside(ps, math32.Vec3(1.9, 0, -10)))
	assert.False(t, inside(ps, math32.Vec3(2.1, 0, -10)))
	assert.False(t, inside(ps, math32.Vec3(0, 0, -1)), "between viewer and portal")

	// reversed winding gives the same region
	reversed := []math32.Vector3{portal[3], portal[2], portal[1], portal[0]}
	require.True(t, ps.CreateViewPlanesFromPolygon(reversed, math32.Vector3{}))
	assert.True(t, inside(ps, math32.Vec3(0, 0, -10)))
	assert.False(t, inside(ps, math32.Vec3(0, 0, -1)))

	assert.False(t, ps.CreateViewPlanesFromPolygon(portal[:2], math32.Vector3{}))
	assert.Equal(t, 5, ps.Len(), "untouched on failure")
}

func TestPlaneSetTransform(t *testing.T) {
	ps := NewPlaneSet()
	ps.CreateBox(math32.Vec3(-1, -1, -1), math32.Vec3(1, 1, 1))
	ps.Transform(mgl32.Translate3D(10, 0, 0))
	assert.True(t, inside(ps, math32.Vec3(10.5, 0, 0)))
	assert.False(t, inside(ps, math32.Vec3(0, 0, 0)))
}
