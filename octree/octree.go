// Package octree implements an octree over axis aligned item bounds with
// hierarchical visibility queries: frustum culling against a plane set and
// sphere or box overlap.
package octree

import (
	"errors"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/intersect"
	"github.com/o0olele/geocull/math32"
)

// MaxSubdivide is the deepest subdivide callers should pass to Init; a full
// tree stays below 8^MaxSubdivide leaves.
const MaxSubdivide = 8

// ErrNotInitialized is returned by Build on a tree that was not initialized.
var ErrNotInitialized = errors.New("octree: not initialized")

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

// Item is something stored in the tree, identified by ID.
type Item struct {
	ID     uint32                 `json:"id"`
	Bounds geometry.AABoundingBox `json:"bounds"`
}

// Octree 八叉树主结构
//
// An Octree is not safe for concurrent use. Queries on a tree that is not
// built do nothing.
type Octree struct {
	root          *Node
	state         State
	subdivide     int
	minGeometries int
	nodes         int

	transform geometry.Transform
	frame     uint32
}

// NewOctree returns an uninitialized tree with the identity transform.
func NewOctree() *Octree {
	return &Octree{transform: geometry.IdentityTransform()}
}

// Init drops any built nodes and prepares the tree for Build. A node is
// split while its level is below subdivide and more than minGeometries
// items overlap it.
func (o *Octree) Init(subdivide, minGeometries int) {
	o.Destroy()
	o.subdivide = subdivide
	o.minGeometries = minGeometries
	o.state = StateInitialized
}

// Build creates the nodes for items inside bounds. Items are ordered along
// a Morton curve first; items outside bounds are dropped. Building again
// replaces the previous nodes.
func (o *Octree) Build(bounds geometry.AABoundingBox, items []Item) error {
	if o.state == StateUninitialized {
		return ErrNotInitialized
	}
	if o.root != nil {
		o.root.destroy()
	}

	bounds.ValidateMinMax()
	o.nodes = 0
	o.root = o.newNode(nil, 0, 0, bounds)
	o.root.build(sortItemsByMorton(items, bounds))
	o.updateBoxes()
	o.state = StateBuilt
	return nil
}

// Destroy tears the tree down; it has to be initialized again before use.
func (o *Octree) Destroy() {
	if o.root != nil {
		o.root.destroy()
	}
	o.root = nil
	o.nodes = 0
	o.frame = 0
	o.state = StateUninitialized
}

func (o *Octree) newNode(parent *Node, id uint64, level uint8, bounds geometry.AABoundingBox) *Node {
	o.nodes++
	node := &Node{
		tree:     o,
		parent:   parent,
		id:       id,
		level:    level,
		flags:    FlagsDefault,
		bounds:   bounds,
		bbCenter: bounds.Center(),
	}
	return node
}

// State returns the lifecycle state.
func (o *Octree) State() State {
	return o.state
}

// Root returns the root node, nil unless the tree is built.
func (o *Octree) Root() *Node {
	return o.root
}

// NodeCount returns the number of nodes.
func (o *Octree) NodeCount() int {
	return o.nodes
}

// Subdivide returns the maximum node level.
func (o *Octree) Subdivide() int {
	return o.subdivide
}

// MinGeometries returns the item count a node must exceed to be split.
func (o *Octree) MinGeometries() int {
	return o.minGeometries
}

// Transform returns the local to world transform of the tree.
func (o *Octree) Transform() geometry.Transform {
	return o.transform
}

// SetPos moves the tree and updates the world boxes of all nodes.
func (o *Octree) SetPos(pos math32.Vector3) {
	o.transform.Pos = pos
	o.updateBoxes()
}

// SetScale scales the tree and updates the world boxes of all nodes.
func (o *Octree) SetScale(scale math32.Vector3) {
	o.transform.Scale = scale
	o.updateBoxes()
}

// SetRot rotates the tree and updates the world boxes of all nodes.
func (o *Octree) SetRot(rot math32.Quat) {
	o.transform.Rot = rot.Normalize()
	o.updateBoxes()
}

func (o *Octree) updateBoxes() {
	if o.root == nil {
		return
	}
	o.root.updateBox(o.transform, math32.RotationAxes(o.transform.Rot))
}

// nextFrame starts a new query so stamps of earlier queries read as not
// visible.
func (o *Octree) nextFrame() {
	o.frame++
	if o.frame == 0 {
		o.root.clearFrames()
		o.frame = 1
	}
}

// UpdateVisibility culls the tree against ps, usually a view frustum. See
// VisibilityCallback for what is reported; a nil cb collects the visible
// item IDs into visible.
func (o *Octree) UpdateVisibility(ps *geometry.PlaneSet, cb VisibilityCallback, visible *math32.Bitmap) {
	if o.state != StateBuilt {
		return
	}
	o.nextFrame()
	o.root.cull(ps, intersect.AllPlanes, callbackOrDefault(cb), visible)
}

// CheckSphere marks the nodes overlapping s, like UpdateVisibility.
func (o *Octree) CheckSphere(s geometry.Sphere, cb VisibilityCallback, visible *math32.Bitmap) {
	if o.state != StateBuilt {
		return
	}
	o.nextFrame()
	o.root.check(func(node *Node) bool {
		return intersect.SphereBox(s, node.box)
	}, callbackOrDefault(cb), visible)
}

// CheckBox marks the nodes overlapping box, like UpdateVisibility.
func (o *Octree) CheckBox(box geometry.BoundingBox, cb VisibilityCallback, visible *math32.Bitmap) {
	if o.state != StateBuilt {
		return
	}
	o.nextFrame()
	o.root.check(func(node *Node) bool {
		return intersect.BoxBox(box, node.box)
	}, callbackOrDefault(cb), visible)
}

// Walk calls fn for every node, parents before children, until fn returns
// false.
func (o *Octree) Walk(fn func(*Node) bool) {
	if o.root == nil {
		return
	}
	var walk func(*Node) bool
	walk = func(node *Node) bool {
		if !fn(node) {
			return false
		}
		for _, child := range node.children {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(o.root)
}
