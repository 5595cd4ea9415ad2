package quadtree

import (
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/intersect"
	"github.com/o0olele/geocull/math32"
)

// Node covers a rectangle of patches. Children are ordered by quadrant,
// bit 0 selecting the upper X half and bit 1 the upper Y half; along an
// axis that is not split the bit is dropped, so the children of a node
// split in Y only are the lower and upper Y halves.
type Node struct {
	tree     *Quadtree
	parent   *Node
	children []*Node

	id           uint64
	level        uint8
	x, y         int
	sizeX, sizeY int
	bounds       geometry.AABoundingBox
	bbCenter     math32.Vector3
	box          geometry.BoundingBox

	visibleFrame uint32
}

// ID returns the node ID: 0 for the root, parentID*4 + 1 + index otherwise.
func (n *Node) ID() uint64 { return n.id }

// Level returns the depth of the node, 0 for the root.
func (n *Node) Level() int { return int(n.level) }

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the 0, 2 or 4 children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns child i, or false if there is none.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// IsLeaf reports whether the node covers a single patch.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Patch returns the first patch and the number of patches covered.
func (n *Node) Patch() (x, y, sizeX, sizeY int) {
	return n.x, n.y, n.sizeX, n.sizeY
}

// Bounds returns the node box in the local space of the tree.
func (n *Node) Bounds() geometry.AABoundingBox { return n.bounds }

// Box returns the node box in world space.
func (n *Node) Box() geometry.BoundingBox { return n.box }

// Visible reports whether the last query of the tree reached this node and
// found it intersecting.
func (n *Node) Visible() bool {
	return n.tree != nil && n.tree.frame != 0 && n.visibleFrame == n.tree.frame
}

func (n *Node) build() {
	nx, ny := 1, 1
	if n.sizeX > 1 {
		nx = 2
	}
	if n.sizeY > 1 {
		ny = 2
	}
	if nx*ny == 1 {
		return
	}

	// lower halves get size/2, upper halves the rest
	widths := [2]int{n.sizeX, 0}
	if nx == 2 {
		widths = [2]int{n.sizeX / 2, n.sizeX - n.sizeX/2}
	}
	heights := [2]int{n.sizeY, 0}
	if ny == 2 {
		heights = [2]int{n.sizeY / 2, n.sizeY - n.sizeY/2}
	}

	size := n.bounds.Size()
	n.children = make([]*Node, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x := n.x + i*widths[0]
			y := n.y + j*heights[0]
			w, h := widths[i], heights[j]

			bounds := n.bounds
			bounds.Min.X = n.bounds.Min.X + size.X*float32(x-n.x)/float32(n.sizeX)
			bounds.Max.X = bounds.Min.X + size.X*float32(w)/float32(n.sizeX)
			bounds.Min.Y = n.bounds.Min.Y + size.Y*float32(y-n.y)/float32(n.sizeY)
			bounds.Max.Y = bounds.Min.Y + size.Y*float32(h)/float32(n.sizeY)

			index := len(n.children)
			child := n.tree.newNode(n, n.id*4+1+uint64(index), n.level+1, x, y, w, h, bounds)
			n.children = append(n.children, child)
			child.build()
		}
	}
}

func (n *Node) updateBox(t geometry.Transform, axes [3]math32.Vector3) {
	n.box = geometry.BoundingBox{
		Center:  t.Apply(n.bbCenter),
		Axis:    axes,
		Extents: n.bounds.HalfSize().MulVec(t.Scale).Abs(),
	}
	for _, child := range n.children {
		child.updateBox(t, axes)
	}
}

func (n *Node) check(test func(*Node) bool, cb VisibilityCallback, visible *math32.Bitmap) {
	if !test(n) {
		cb.OnInvisible(n, visible)
		return
	}

	n.visibleFrame = n.tree.frame
	if n.IsLeaf() {
		cb.OnVisible(n, visible)
		return
	}
	for _, child := range n.children {
		child.check(test, cb, visible)
	}
}

func (n *Node) cull(ps *geometry.PlaneSet, mask uint32, cb VisibilityCallback, visible *math32.Bitmap) {
	if !intersect.MaskDone(ps, mask) {
		ok, straddled := intersect.BoxPlaneSetMask(n.box, ps, mask)
		if !ok {
			cb.OnInvisible(n, visible)
			return
		}
		mask = straddled
	}

	n.visibleFrame = n.tree.frame
	if n.IsLeaf() {
		cb.OnVisible(n, visible)
		return
	}
	for _, child := range n.children {
		child.cull(ps, mask, cb, visible)
	}
}

func (n *Node) destroy() {
	for _, child := range n.children {
		child.destroy()
	}
	n.children = nil
	n.parent = nil
	n.tree = nil
}

func (n *Node) clearFrames() {
	n.visibleFrame = 0
	for _, child := range n.children {
		child.clearFrames()
	}
}
