package quadtree

import (
	"testing"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/intersect"
	"github.com/o0olele/geocull/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(sizeX, sizeY int) geometry.AABoundingBox {
	return geometry.NewAABoundingBox(math32.Vector3{}, math32.Vec3(float32(sizeX), float32(sizeY), 1))
}

func build(t *testing.T, sizeX, sizeY int, patchBounds PatchBoundsFunc) *Quadtree {
	q := NewQuadtree()
	q.Init()
	require.NoError(t, q.Build(grid(sizeX, sizeY), sizeX, sizeY, patchBounds))
	return q
}

func leaves(q *Quadtree) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			out = append(out, n)
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(q.Root())
	return out
}

func TestQuadtreeChildCount(t *testing.T) {
	tests := []struct {
		sizeX, sizeY int
		rootChildren int
		nodes        int
	}{
		{1, 1, 0, 1},
		{2, 1, 2, 3},
		{1, 2, 2, 3},
		{4, 1, 2, 7},
		{2, 2, 4, 5},
		{4, 4, 4, 21},
		{3, 3, 4, 13},
		{1, 5, 2, 9},
	}
	for _, tt := range tests {
		q := build(t, tt.sizeX, tt.sizeY, nil)
		assert.Equal(t, tt.rootChildren, q.Root().NumChildren(), "%dx%d", tt.sizeX, tt.sizeY)
		assert.Equal(t, tt.nodes, q.NodeCount(), "%dx%d", tt.sizeX, tt.sizeY)

		// every patch ends up in exactly one leaf
		seen := map[[2]int]bool{}
		for _, leaf := range leaves(q) {
			x, y, w, h := leaf.Patch()
			assert.Equal(t, [2]int{1, 1}, [2]int{w, h})
			assert.False(t, seen[[2]int{x, y}])
			seen[[2]int{x, y}] = true
		}
		assert.Len(t, seen, tt.sizeX*tt.sizeY)
	}
}

func TestQuadtreeLayout(t *testing.T) {
	q := build(t, 4, 4, nil)
	root := q.Root()

	upperX, ok := root.Child(1)
	require.True(t, ok)
	x, y, w, h := upperX.Patch()
	assert.Equal(t, []int{2, 0, 2, 2}, []int{x, y, w, h})
	assert.Equal(t, uint64(2), upperX.ID())
	assert.Equal(t, geometry.NewAABoundingBox(math32.Vec3(2, 0, 0), math32.Vec3(4, 2, 1)), upperX.Bounds())

	leaf, ok := upperX.Child(3)
	require.True(t, ok)
	assert.Equal(t, uint64(2*4+1+3), leaf.ID())
	assert.Equal(t, 2, leaf.Level())
	assert.Same(t, upperX, leaf.Parent())
	assert.Equal(t, geometry.NewAABoundingBox(math32.Vec3(3, 1, 0), math32.Vec3(4, 2, 1)), leaf.Bounds())

	_, ok = leaf.Child(0)
	assert.False(t, ok)

	// X only: the two children are the lower and upper X halves
	q = build(t, 3, 1, nil)
	first, _ := q.Root().Child(0)
	second, _ := q.Root().Child(1)
	_, _, w, _ = first.Patch()
	assert.Equal(t, 1, w)
	x, _, w, _ = second.Patch()
	assert.Equal(t, []int{1, 2}, []int{x, w})
}

func TestQuadtreeLifecycle(t *testing.T) {
	q := NewQuadtree()
	assert.ErrorIs(t, q.Build(grid(2, 2), 2, 2, nil), ErrNotInitialized)

	q.Init()
	assert.ErrorIs(t, q.Build(grid(2, 2), 0, 2, nil), ErrInvalidSize)
	assert.Equal(t, StateInitialized, q.State())

	var visible math32.Bitmap
	q.CheckSphere(geometry.Sphere{Radius: 100}, nil, &visible)
	assert.Zero(t, visible.Count())

	require.NoError(t, q.Build(grid(2, 2), 2, 2, nil))
	assert.Equal(t, StateBuilt, q.State())
	q.Destroy()
	assert.Equal(t, StateUninitialized, q.State())
	assert.Nil(t, q.Root())
}

func TestQuadtreeUpdateVisibility(t *testing.T) {
	q := build(t, 4, 4, nil)

	ps := geometry.NewPlaneSet()
	ps.CreateBox(math32.Vec3(0.1, 0.1, -1), math32.Vec3(1.9, 0.9, 2))

	var visible math32.Bitmap
	q.UpdateVisibility(ps, nil, &visible)
	assert.Equal(t, []uint32{q.PatchIndex(0, 0), q.PatchIndex(1, 0)}, visible.Values())

	var invisible int
	q.UpdateVisibility(geometry.NewPlaneSet(), VisibilityFuncs{
		Invisible: func(*Node, *math32.Bitmap) { invisible++ },
	}, nil)
	assert.Equal(t, 1, invisible)
	assert.False(t, q.Root().Visible())
	for _, leaf := range leaves(q) {
		assert.False(t, leaf.Visible())
	}
}

func TestQuadtreeCullPastClipMask(t *testing.T) {
	q := build(t, 4, 4, nil)

	ps := geometry.NewPlaneSet()
	for i := 0; i < intersect.MaskPlanes; i++ {
		ps.Add(geometry.PlaneFromPointNormal(math32.Vec3(-1000, 0, 0), math32.Vec3(1, 0, 0)))
	}
	ps.Add(geometry.PlaneFromPointNormal(math32.Vec3(0.9, 0, 0), math32.Vec3(-1, 0, 0)))

	var visible math32.Bitmap
	q.UpdateVisibility(ps, nil, &visible)
	assert.ElementsMatch(t, []uint32{q.PatchIndex(0, 0), q.PatchIndex(0, 1), q.PatchIndex(0, 2), q.PatchIndex(0, 3)}, visible.Values())
}

func TestQuadtreeChecks(t *testing.T) {
	q := build(t, 4, 4, nil)

	var visible math32.Bitmap
	q.CheckSphere(geometry.Sphere{Center: math32.Vec3(2.5, 2.5, 0.5), Radius: 0.3}, nil, &visible)
	assert.Equal(t, []uint32{10}, visible.Values())

	visible.Clear()
	q.CheckBox(geometry.NewBoundingBox(math32.Vec3(0.5, 3.5, 0.5), math32.Vec3(0.2, 0.2, 0.2)), nil, &visible)
	assert.Equal(t, []uint32{12}, visible.Values())

	visible.Clear()
	q.SetPos(math32.Vec3(10, 0, 0))
	q.CheckSphere(geometry.Sphere{Center: math32.Vec3(2.5, 2.5, 0.5), Radius: 0.3}, nil, &visible)
	assert.Zero(t, visible.Count())
	q.CheckSphere(geometry.Sphere{Center: math32.Vec3(12.5, 2.5, 0.5), Radius: 0.3}, nil, &visible)
	assert.Equal(t, []uint32{10}, visible.Values())
}

func TestQuadtreePatchBounds(t *testing.T) {
	// height grows with x + y, so patches near the origin are flat
	height := func(x, y, sizeX, sizeY int) geometry.AABoundingBox {
		return geometry.NewAABoundingBox(
			math32.Vec3(float32(x), float32(y), 0),
			math32.Vec3(float32(x+sizeX), float32(y+sizeY), float32(x+y+sizeX+sizeY)),
		)
	}
	q := build(t, 4, 4, height)
	assert.Equal(t, float32(8), q.Root().Bounds().Max.Z)

	var visible math32.Bitmap
	q.CheckSphere(geometry.Sphere{Center: math32.Vec3(0.5, 0.5, 5), Radius: 0.4}, nil, &visible)
	assert.Zero(t, visible.Count(), "patch (0,0) is only 2 high")

	q.CheckSphere(geometry.Sphere{Center: math32.Vec3(3.5, 3.5, 5), Radius: 0.4}, nil, &visible)
	assert.Equal(t, []uint32{15}, visible.Values())
}
