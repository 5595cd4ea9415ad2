// Package quadtree implements a quadtree over a grid of patches, terrain
// tiles for example. A node covering sizeX x sizeY patches is split along
// every axis whose size exceeds 1, so it has 4, 2 or no children.
package quadtree

import (
	"errors"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/intersect"
	"github.com/o0olele/geocull/math32"
)

// ErrNotInitialized is returned by Build on a tree that was not initialized.
var ErrNotInitialized = errors.New("quadtree: not initialized")

// ErrInvalidSize is returned by Build for an empty patch grid.
var ErrInvalidSize = errors.New("quadtree: patch grid must be at least 1x1")

// State is the lifecycle state of a tree.
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	StateBuilt
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateBuilt:
		return "built"
	}
	return "unknown"
}

// PatchBoundsFunc returns the local bounds of the patches in the rectangle
// [x, x+sizeX) x [y, y+sizeY) of the grid.
type PatchBoundsFunc func(x, y, sizeX, sizeY int) geometry.AABoundingBox

// Quadtree is not safe for concurrent use. Queries on a tree that is not
// built do nothing.
type Quadtree struct {
	root         *Node
	state        State
	sizeX, sizeY int
	nodes        int
	patchBounds  PatchBoundsFunc

	transform geometry.Transform
	frame     uint32
}

// NewQuadtree returns an uninitialized tree with the identity transform.
func NewQuadtree() *Quadtree {
	return &Quadtree{transform: geometry.IdentityTransform()}
}

// Init drops any built nodes and prepares the tree for Build.
func (q *Quadtree) Init() {
	q.Destroy()
	q.state = StateInitialized
}

// Build creates the nodes for a grid of sizeX x sizeY patches covering
// bounds. Without patchBounds the grid splits bounds evenly in X and Y;
// with it every node takes the bounds it returns, allowing tight boxes
// around height data.
func (q *Quadtree) Build(bounds geometry.AABoundingBox, sizeX, sizeY int, patchBounds PatchBoundsFunc) error {
	if q.state == StateUninitialized {
		return ErrNotInitialized
	}
	if sizeX < 1 || sizeY < 1 {
		return ErrInvalidSize
	}
	if q.root != nil {
		q.root.destroy()
	}

	bounds.ValidateMinMax()
	q.sizeX, q.sizeY = sizeX, sizeY
	q.patchBounds = patchBounds
	q.nodes = 0
	q.root = q.newNode(nil, 0, 0, 0, 0, sizeX, sizeY, bounds)
	q.root.build()
	q.updateBoxes()
	q.state = StateBuilt
	return nil
}

// Destroy tears the tree down; it has to be initialized again before use.
func (q *Quadtree) Destroy() {
	if q.root != nil {
		q.root.destroy()
	}
	q.root = nil
	q.nodes = 0
	q.frame = 0
	q.patchBounds = nil
	q.state = StateUninitialized
}

func (q *Quadtree) newNode(parent *Node, id uint64, level uint8, x, y, sizeX, sizeY int, bounds geometry.AABoundingBox) *Node {
	q.nodes++
	if q.patchBounds != nil {
		bounds = q.patchBounds(x, y, sizeX, sizeY)
		bounds.ValidateMinMax()
	}
	return &Node{
		tree:     q,
		parent:   parent,
		id:       id,
		level:    level,
		x:        x,
		y:        y,
		sizeX:    sizeX,
		sizeY:    sizeY,
		bounds:   bounds,
		bbCenter: bounds.Center(),
	}
}

// State returns the lifecycle state.
func (q *Quadtree) State() State {
	return q.state
}

// Root returns the root node, nil unless the tree is built.
func (q *Quadtree) Root() *Node {
	return q.root
}

// NodeCount returns the number of nodes.
func (q *Quadtree) NodeCount() int {
	return q.nodes
}

// Size returns the patch grid size.
func (q *Quadtree) Size() (int, int) {
	return q.sizeX, q.sizeY
}

// PatchIndex returns the index of patch (x, y) as used by CollectVisible.
func (q *Quadtree) PatchIndex(x, y int) uint32 {
	return uint32(y*q.sizeX + x)
}

// Transform returns the local to world transform of the tree.
func (q *Quadtree) Transform() geometry.Transform {
	return q.transform
}

// SetPos moves the tree and updates the world boxes of all nodes.
func (q *Quadtree) SetPos(pos math32.Vector3) {
	q.transform.Pos = pos
	q.updateBoxes()
}

// SetScale scales the tree and updates the world boxes of all nodes.
func (q *Quadtree) SetScale(scale math32.Vector3) {
	q.transform.Scale = scale
	q.updateBoxes()
}

// SetRot rotates the tree and updates the world boxes of all nodes.
func (q *Quadtree) SetRot(rot math32.Quat) {
	q.transform.Rot = rot.Normalize()
	q.updateBoxes()
}

func (q *Quadtree) updateBoxes() {
	if q.root == nil {
		return
	}
	q.root.updateBox(q.transform, math32.RotationAxes(q.transform.Rot))
}

func (q *Quadtree) nextFrame() {
	q.frame++
	if q.frame == 0 {
		q.root.clearFrames()
		q.frame = 1
	}
}

// UpdateVisibility culls the tree against ps. A nil cb collects the
// indices of visible patches into visible.
func (q *Quadtree) UpdateVisibility(ps *geometry.PlaneSet, cb VisibilityCallback, visible *math32.Bitmap) {
	if q.state != StateBuilt {
		return
	}
	q.nextFrame()
	q.root.cull(ps, intersect.AllPlanes, callbackOrDefault(cb), visible)
}

// CheckSphere marks the nodes overlapping s, like UpdateVisibility.
func (q *Quadtree) CheckSphere(s geometry.Sphere, cb VisibilityCallback, visible *math32.Bitmap) {
	if q.state != StateBuilt {
		return
	}
	q.nextFrame()
	q.root.check(func(node *Node) bool {
		return intersect.SphereBox(s, node.box)
	}, callbackOrDefault(cb), visible)
}

// CheckBox marks the nodes overlapping box, like UpdateVisibility.
func (q *Quadtree) CheckBox(box geometry.BoundingBox, cb VisibilityCallback, visible *math32.Bitmap) {
	if q.state != StateBuilt {
		return
	}
	q.nextFrame()
	q.root.check(func(node *Node) bool {
		return intersect.BoxBox(box, node.box)
	}, callbackOrDefault(cb), visible)
}
