package geometry

import (
	"testing"

	"github.com/o0olele/geocull/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABoundingBoxVertices(t *testing.T) {
	box := NewAABoundingBox(math32.Vec3(-1, -2, -3), math32.Vec3(1, 2, 3))
	vertices := box.Vertices()
	assert.Equal(t, math32.Vec3(-1, -2, -3), vertices[0])
	assert.Equal(t, math32.Vec3(1, -2, -3), vertices[1])
	assert.Equal(t, math32.Vec3(-1, 2, -3), vertices[2])
	assert.Equal(t, math32.Vec3(1, 2, 3), vertices[7])

	for i := 0; i < 8; i++ {
		v, ok := box.Vertex(i)
		require.True(t, ok)
		assert.Equal(t, vertices[i], v)
	}
	v, ok := box.Vertex(8)
	assert.False(t, ok)
	assert.Equal(t, math32.Vector3{}, v)
	_, ok = box.Vertex(-1)
	assert.False(t, ok)
}

func TestAABoundingBoxNearestFurthest(t *testing.T) {
	box := NewAABoundingBox(math32.Vec3(-1, -2, -3), math32.Vec3(1, 2, 3))

	normals := []math32.Vector3{
		math32.Vec3(1, 1, 1),
		math32.Vec3(-1, 1, -1),
		math32.Vec3(0.2, -3, 0.5),
		math32.Vec3(-1, -1, -1),
	}
	for _, n := range normals {
		near := box.NearestVertexIndex(n)
		far := box.FurthestVertexIndex(n)
		assert.Equal(t, 7, near+far)

		nv, _ := box.Vertex(near)
		fv, _ := box.Vertex(far)
		for _, v := range box.Vertices() {
			assert.LessOrEqual(t, n.Dot(nv), n.Dot(v))
			assert.GreaterOrEqual(t, n.Dot(fv), n.Dot(v))
		}
	}
	assert.Equal(t, 5, box.NearestVertexIndex(math32.Vec3(-1, 1, -1)))
}

func TestAABoundingBoxValidateMinMax(t *testing.T) {
	box := NewAABoundingBox(math32.Vec3(1, -2, 3), math32.Vec3(-1, 2, -3))
	box.ValidateMinMax()
	want := NewAABoundingBox(math32.Vec3(-1, -2, -3), math32.Vec3(1, 2, 3))
	assert.Equal(t, want, box)
	box.ValidateMinMax()
	assert.Equal(t, want, box)
}

func TestAABoundingBoxMeasures(t *testing.T) {
	box := NewAABoundingBox(math32.Vec3(0, 0, 0), math32.Vec3(2, 4, 6))
	assert.Equal(t, math32.Vec3(1, 2, 3), box.Center())
	assert.Equal(t, math32.Vec3(2, 4, 6), box.Size())
	assert.Equal(t, float32(48), box.Volume())
	assert.Equal(t, float32(88), box.Surface())
	assert.True(t, box.Contains(math32.Vec3(2, 4, 6)))
	assert.False(t, box.Contains(math32.Vec3(2, 4, 6.1)))

	box.ExpandByPoint(math32.Vec3(-1, 5, 1))
	assert.Equal(t, NewAABoundingBox(math32.Vec3(-1, 0, 0), math32.Vec3(2, 5, 6)), box)

	u := box.Union(NewAABoundingBox(math32.Vec3(10, 10, 10), math32.Vec3(11, 11, 11)))
	assert.Equal(t, NewAABoundingBox(math32.Vec3(-1, 0, 0), math32.Vec3(11, 11, 11)), u)
}

func TestAABoundingBoxTransform(t *testing.T) {
	box := NewAABoundingBox(math32.Vec3(0, 0, 0), math32.Vec3(2, 2, 2))
	obb := box.Transform(Transform{Pos: math32.Vec3(10, 0, 0), Scale: math32.Vec3(2, 1, 1)})
	assert.Equal(t, math32.Vec3(12, 1, 1), obb.Center)
	assert.Equal(t, math32.Vec3(2, 1, 1), obb.Extents)
	assert.Equal(t, NewAABoundingBox(math32.Vec3(10, 0, 0), math32.Vec3(14, 2, 2)), obb.GetBounds())

	// a quarter turn about Z swaps the X and Y extents of the world bounds
	turn := math32.Vec3(1, 0, 0).RotationTo(math32.Vec3(0, 1, 0))
	obb = box.Transform(Transform{Scale: math32.Vec3(2, 1, 1), Rot: turn})
	bounds := obb.GetBounds()
	assert.True(t, bounds.Size().NearEqual(math32.Vec3(2, 4, 2), 1e-5), bounds.Size().String())
	assert.True(t, obb.ContainsPoint(obb.Center))
}
