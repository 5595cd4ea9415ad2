package octree

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/intersect"
	"github.com/o0olele/geocull/math32"
)

const (
	// 1bit isLeaf 1bit isOccupied
	FlagsDefault  uint8 = 0b10
	FlagsLeaf     uint8 = 0b10
	FlagsOccupied uint8 = 0b01
)

// Node 八叉树节点
//
// A node owns its children: none for a leaf, otherwise 8 in octant order
// (bit 0 -> X, bit 1 -> Y, bit 2 -> Z, a set bit selecting the upper half).
type Node struct {
	tree     *Octree
	parent   *Node
	children []*Node

	id       uint64
	level    uint8
	flags    uint8
	bounds   geometry.AABoundingBox // local space
	bbCenter math32.Vector3         // center of bounds, cached for transforms
	box      geometry.BoundingBox   // world space
	items    []uint32

	visibleFrame uint32
}

func (node *Node) SetOccupied(occupied bool) {
	if occupied {
		node.flags |= FlagsOccupied
	} else {
		node.flags &= 0b11111110
	}
}

func (node *Node) SetLeaf(isLeaf bool) {
	if isLeaf {
		node.flags |= FlagsLeaf
	} else {
		node.flags &= 0b11111101
	}
}

// IsLeaf reports whether the node has no children.
func (node *Node) IsLeaf() bool {
	return node.flags&FlagsLeaf == FlagsLeaf
}

// IsOccupied reports whether any item overlaps the node.
func (node *Node) IsOccupied() bool {
	return node.flags&FlagsOccupied == FlagsOccupied
}

// ID returns the node ID: 0 for the root, parentID*8 + 1 + octant otherwise.
func (node *Node) ID() uint64 {
	return node.id
}

// Level returns the depth of the node, 0 for the root.
func (node *Node) Level() int {
	return int(node.level)
}

// Parent returns the parent node, nil for the root.
func (node *Node) Parent() *Node {
	return node.parent
}

// Children returns the children in octant order. The slice must not be
// modified.
func (node *Node) Children() []*Node {
	return node.children
}

// NumChildren returns 0 for a leaf and 8 otherwise.
func (node *Node) NumChildren() int {
	return len(node.children)
}

// Child returns the child in the given octant, or false if there is none.
func (node *Node) Child(octant int) (*Node, bool) {
	if octant < 0 || octant >= len(node.children) {
		return nil, false
	}
	return node.children[octant], true
}

// Bounds returns the node box in the local space of the tree.
func (node *Node) Bounds() geometry.AABoundingBox {
	return node.bounds
}

// Box returns the node box in world space.
func (node *Node) Box() geometry.BoundingBox {
	return node.box
}

// Items returns the IDs of the items overlapping a leaf, ordered along the
// Z curve of their centers within the tree bounds. Inner nodes hold no
// items. The slice must not be modified.
func (node *Node) Items() []uint32 {
	return node.items
}

// Visible reports whether the last query of the tree reached this node and
// found it intersecting. Nodes below an invisible node are not visited and
// report false.
func (node *Node) Visible() bool {
	return node.tree != nil && node.tree.frame != 0 && node.visibleFrame == node.tree.frame
}

// build keeps the items overlapping the node and splits it while the depth
// and item count allow.
func (node *Node) build(items []Item) {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if node.bounds.Intersects(item.Bounds) {
			kept = append(kept, item)
		}
	}
	node.SetOccupied(len(kept) > 0)

	tree := node.tree
	if int(node.level) >= tree.subdivide || len(kept) <= tree.minGeometries {
		node.SetLeaf(true)
		node.items = make([]uint32, len(kept))
		for i, item := range kept {
			node.items[i] = item.ID
		}
		return
	}

	node.SetLeaf(false)
	center := node.bbCenter
	min, max := node.bounds.Min, node.bounds.Max
	node.children = make([]*Node, 8)
	for octant := range node.children {
		childBounds := geometry.NewAABoundingBox(min, center)
		if octant&1 != 0 {
			childBounds.Min.X, childBounds.Max.X = center.X, max.X
		}
		if octant&2 != 0 {
			childBounds.Min.Y, childBounds.Max.Y = center.Y, max.Y
		}
		if octant&4 != 0 {
			childBounds.Min.Z, childBounds.Max.Z = center.Z, max.Z
		}

		child := tree.newNode(node, node.id*8+1+uint64(octant), node.level+1, childBounds)
		node.children[octant] = child
		child.build(kept)
	}
}

// updateBox recomputes the world box of the subtree for transform t whose
// rotation axes are axes.
func (node *Node) updateBox(t geometry.Transform, axes [3]math32.Vector3) {
	node.box = geometry.BoundingBox{
		Center:  t.Apply(node.bbCenter),
		Axis:    axes,
		Extents: node.bounds.HalfSize().MulVec(t.Scale).Abs(),
	}
	for _, child := range node.children {
		child.updateBox(t, axes)
	}
}

// check is the shared top-down traversal: a node passing test is stamped
// visible and either recursed into or, as a leaf, reported to OnVisible;
// a failing node is reported to OnInvisible and its subtree skipped.
func (node *Node) check(test func(*Node) bool, cb VisibilityCallback, visible *math32.Bitmap) {
	if !test(node) {
		cb.OnInvisible(node, visible)
		return
	}

	node.visibleFrame = node.tree.frame
	if node.IsLeaf() {
		cb.OnVisible(node, visible)
		return
	}
	for _, child := range node.children {
		child.check(test, cb, visible)
	}
}

// cull is check for plane sets, carrying the clip mask down: planes the
// node box lies completely inside of are not tested again below it.
func (node *Node) cull(ps *geometry.PlaneSet, mask uint32, cb VisibilityCallback, visible *math32.Bitmap) {
	if !intersect.MaskDone(ps, mask) {
		ok, straddled := intersect.BoxPlaneSetMask(node.box, ps, mask)
		if !ok {
			cb.OnInvisible(node, visible)
			return
		}
		mask = straddled
	}

	node.visibleFrame = node.tree.frame
	if node.IsLeaf() {
		cb.OnVisible(node, visible)
		return
	}
	for _, child := range node.children {
		child.cull(ps, mask, cb, visible)
	}
}

func (node *Node) destroy() {
	for _, child := range node.children {
		child.destroy()
	}
	node.children = nil
	node.items = nil
	node.parent = nil
	node.tree = nil
}

func (node *Node) clearFrames() {
	node.visibleFrame = 0
	for _, child := range node.children {
		child.clearFrames()
	}
}
