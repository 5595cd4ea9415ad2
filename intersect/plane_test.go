package intersect

import (
	"testing"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneRay(t *testing.T) {
	ground := geometry.Plane{C: 1}
	r := geometry.Ray{Origin: math32.Vec3(1, 2, 5), Direction: math32.Vec3(0, 0, -1)}
	require.True(t, IsPlaneRay(ground, r))
	assert.True(t, PlaneRay(ground, r).NearEqual(math32.Vec3(1, 2, 0), 1e-6))

	parallel := geometry.Ray{Origin: math32.Vec3(1, 2, 5), Direction: math32.Vec3(1, 0, 0)}
	assert.False(t, IsPlaneRay(ground, parallel))
	assert.Equal(t, parallel.Origin, PlaneRay(ground, parallel))
}

func TestPlaneLine(t *testing.T) {
	ground := geometry.Plane{C: 1}
	l := geometry.Line{Start: math32.Vec3(0, 0, -1), End: math32.Vec3(4, 0, 3)}
	assert.True(t, IsPlaneLine(ground, l))
	p, ok := PlaneLine(ground, l)
	require.True(t, ok)
	assert.True(t, p.NearEqual(math32.Vec3(1, 0, 0), 1e-6), p.String())

	above := geometry.Line{Start: math32.Vec3(0, 0, 1), End: math32.Vec3(0, 0, 3)}
	assert.False(t, IsPlaneLine(ground, above))
	_, ok = PlaneLine(ground, above)
	assert.False(t, ok)
}

func TestPlanePlane(t *testing.T) {
	r, ok := PlanePlane(geometry.Plane{C: 1, D: -2}, geometry.Plane{A: 1, D: -3})
	require.True(t, ok)
	assert.True(t, r.Origin.NearEqual(math32.Vec3(3, 0, 2), 1e-6), r.Origin.String())
	assert.True(t, r.Direction.NearEqual(math32.Vec3(0, 1, 0), 1e-6), r.Direction.String())

	_, ok = PlanePlane(geometry.Plane{C: 1}, geometry.Plane{C: 2, D: 1})
	assert.False(t, ok)
}

func TestPlanePlanePlane(t *testing.T) {
	p, ok := PlanePlanePlane(geometry.Plane{A: 1, D: -1}, geometry.Plane{B: 1, D: -2}, geometry.Plane{C: 1, D: -3})
	require.True(t, ok)
	assert.True(t, p.NearEqual(math32.Vec3(1, 2, 3), 1e-6), p.String())

	_, ok = PlanePlanePlane(geometry.Plane{A: 1}, geometry.Plane{A: 1, D: -1}, geometry.Plane{C: 1})
	assert.False(t, ok)
}
