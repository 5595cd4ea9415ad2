package intersect

import (
	"testing"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnedBox(center math32.Vector3) geometry.BoundingBox {
	box := unitBox()
	return box.Transform(geometry.Transform{
		Pos:   center,
		Scale: math32.Vec3(1, 1, 1),
		Rot:   math32.Vector3{X: 1}.RotationTo(math32.Vec3(1, 1, 0)),
	})
}

func TestBoxBox(t *testing.T) {
	a := geometry.NewBoundingBox(math32.Vector3{}, math32.Vec3(1, 1, 1))
	b := geometry.NewBoundingBox(math32.Vec3(2, 0, 0), math32.Vec3(1, 1, 1))
	assert.True(t, BoxBox(a, b), "touching")
	assert.True(t, BoxBox(b, a))

	b.Center.X = 2.001
	assert.False(t, BoxBox(a, b))
	assert.False(t, BoxBox(b, a))

	// the corner of the turned box pokes into a
	assert.True(t, BoxBox(a, turnedBox(math32.Vec3(2.3, 0, 0))))
	assert.False(t, BoxBox(a, turnedBox(math32.Vec3(2.5, 0, 0))))
	assert.True(t, BoxBox(turnedBox(math32.Vector3{}), a))
}

func TestBoxPointLine(t *testing.T) {
	box := turnedBox(math32.Vector3{})
	assert.True(t, BoxPoint(box, math32.Vec3(1.4, 0, 0)))
	assert.False(t, BoxPoint(box, math32.Vec3(1, 1, 0)))

	// along the first box axis, through the face center
	hit, d := BoxLine(box, geometry.Line{Start: math32.Vec3(-3, -3, 0), End: math32.Vec3(3, 3, 0)})
	require.True(t, hit)
	assert.InDelta(t, 3*math32.Sqrt(2)-1, d, 1e-4)
}

func TestBoxBoxMoving(t *testing.T) {
	a := geometry.NewBoundingBox(math32.Vector3{}, math32.Vec3(1, 1, 1))
	b := geometry.NewBoundingBox(math32.Vec3(10, 0, 0), math32.Vec3(1, 1, 1))

	hit, first := BoxBoxMoving(a, math32.Vector3{}, b, math32.Vec3(-16, 0, 0), 1)
	require.True(t, hit)
	assert.InDelta(t, 0.5, first, 1e-5)

	hit, first = BoxBoxMoving(a, math32.Vec3(8, 0, 0), b, math32.Vec3(-8, 0, 0), 1)
	require.True(t, hit)
	assert.InDelta(t, 0.5, first, 1e-5)

	hit, _ = BoxBoxMoving(a, math32.Vector3{}, b, math32.Vec3(-16, 0, 0), 0.4)
	assert.False(t, hit, "not within tmax")

	b.Center.Y = 5
	hit, _ = BoxBoxMoving(a, math32.Vector3{}, b, math32.Vec3(-16, 0, 0), 1)
	assert.False(t, hit, "passing by")

	hit, first = BoxBoxMoving(a, math32.Vector3{}, geometry.NewBoundingBox(math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 1)), math32.Vector3{}, 1)
	assert.True(t, hit)
	assert.Equal(t, float32(0), first)
}

func TestBoxPlaneSet(t *testing.T) {
	ps := geometry.NewPlaneSet()
	assert.False(t, BoxPlaneSet(turnedBox(math32.Vector3{}), ps))

	ps.CreateBox(math32.Vec3(-10, -10, -10), math32.Vec3(10, 10, 10))
	assert.True(t, BoxPlaneSet(turnedBox(math32.Vector3{}), ps))
	assert.True(t, BoxPlaneSet(turnedBox(math32.Vec3(11, 0, 0)), ps))
	assert.False(t, BoxPlaneSet(turnedBox(math32.Vec3(12, 0, 0)), ps))

	ok, mask := BoxPlaneSetMask(turnedBox(math32.Vec3(10, 0, 0)), ps, AllPlanes)
	assert.True(t, ok)
	assert.Equal(t, uint32(1)<<geometry.BoxRight, mask)
}
