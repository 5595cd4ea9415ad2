package octree

import "github.com/o0olele/geocull/math32"

// VisibilityCallback receives the results of a tree query. OnVisible is
// called for every visible leaf. OnInvisible is called for every node that
// failed the test; its subtree is not visited. visible is the bitmap passed
// to the query and may be nil.
type VisibilityCallback interface {
	OnVisible(node *Node, visible *math32.Bitmap)
	OnInvisible(node *Node, visible *math32.Bitmap)
}

// CollectVisible adds the item IDs of visible leaves to the bitmap.
type CollectVisible struct{}

func (CollectVisible) OnVisible(node *Node, visible *math32.Bitmap) {
	if visible == nil {
		return
	}
	for _, id := range node.items {
		visible.Set(id)
	}
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
