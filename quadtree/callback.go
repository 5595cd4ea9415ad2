package quadtree

import "github.com/o0olele/geocull/math32"

// VisibilityCallback receives the results of a tree query. OnVisible is
// called for every visible leaf, OnInvisible for every node that failed
// the test; its subtree is not visited.
type VisibilityCallback interface {
	OnVisible(node *Node, visible *math32.Bitmap)
	OnInvisible(node *Node, visible *math32.Bitmap)
}

// CollectVisible sets the patch index of every visible leaf in the bitmap.
type CollectVisible struct{}

func (CollectVisible) OnVisible(node *Node, visible *math32.Bitmap) {
	if visible == nil || node.tree == nil {
		return
	}
	visible.Set(node.tree.PatchIndex(node.x, node.y))
}

func (CollectVisible) OnInvisible(*Node, *math32.Bitmap) {}

// VisibilityFuncs adapts plain functions to VisibilityCallback; nil
// functions are skipped.
type VisibilityFuncs struct {
	Visible   func(node *Node, visible *math32.Bitmap)
	Invisible func(node *Node, visible *math32.Bitmap)
}

func (f VisibilityFuncs) OnVisible(node *Node, visible *math32.Bitmap) {
	if f.Visible != nil {
		f.Visible(node, visible)
	}
}

func (f VisibilityFuncs) OnInvisible(node *Node, visible *math32.Bitmap) {
	if f.Invisible != nil {
		f.Invisible(node, visible)
	}
}

func callbackOrDefault(cb VisibilityCallback) VisibilityCallback {
	if cb == nil {
		return CollectVisible{}
	}
	return cb
}
