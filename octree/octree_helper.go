package octree

import (
	"encoding/json"

	"github.com/o0olele/geocull/geometry"
)

// 用于JSON序列化的简化结构
type OctreeExport struct {
	Root          *OctreeNodeExport  `json:"root"`
	State         string             `json:"state"`
	Subdivide     int                `json:"subdivide"`
	MinGeometries int                `json:"min_geometries"`
	Nodes         int                `json:"nodes"`
	Transform     geometry.Transform `json:"transform"`
}

type OctreeNodeExport struct {
	ID         uint64                 `json:"id"`
	Bounds     geometry.AABoundingBox `json:"bounds"`
	Box        geometry.BoundingBox   `json:"box"`
	Children   []*OctreeNodeExport    `json:"children,omitempty"`
	Items      []uint32               `json:"items,omitempty"`
	IsLeaf     bool                   `json:"is_leaf"`
	IsOccupied bool                   `json:"is_occupied"`
	Visible    bool                   `json:"visible"`
	Level      int                    `json:"level"`
}

// Export returns the tree as plain data, with the visibility of the last
// query.
func (o *Octree) Export() *OctreeExport {
	return &OctreeExport{
		Root:          o.nodeToExport(o.root),
		State:         o.state.String(),
		Subdivide:     o.subdivide,
		MinGeometries: o.minGeometries,
		Nodes:         o.nodes,
		Transform:     o.transform,
	}
}

// ToJSON 导出八叉树为JSON
func (o *Octree) ToJSON() ([]byte, error) {
	return json.Marshal(o.Export())
}

func (o *Octree) nodeToExport(node *Node) *OctreeNodeExport {
	if node == nil {
		return nil
	}

	export := &OctreeNodeExport{
		ID:         node.id,
		Bounds:     node.bounds,
		Box:        node.box,
		Items:      node.items,
		IsLeaf:     node.IsLeaf(),
		IsOccupied: node.IsOccupied(),
		Visible:    node.Visible(),
		Level:      int(node.level),
	}

	for _, child := range node.children {
		export.Children = append(export.Children, o.nodeToExport(child))
	}

	return export
}
