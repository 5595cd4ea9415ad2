package geometry

import "github.com/o0olele/geocull/math32"

// BoundingBox is an oriented bounding box (OBB): a center, three
// orthonormal axes and the half extents along them.
type BoundingBox struct {
	Center  math32.Vector3    `json:"center"`
	Axis    [3]math32.Vector3 `json:"axis"`
	Extents math32.Vector3    `json:"extents"`
}

// NewBoundingBox returns an axis aligned OBB around center.
func NewBoundingBox(center, extents math32.Vector3) BoundingBox {
	return BoundingBox{
		Center: center,
		Axis: [3]math32.Vector3{
			{X: 1}, {Y: 1}, {Z: 1},
		},
		Extents: extents,
	}
}

// ToLocal expresses a world point in the box frame, relative to its center.
func (b *BoundingBox) ToLocal(p math32.Vector3) math32.Vector3 {
	d := p.Sub(b.Center)
	return math32.Vector3{X: d.Dot(b.Axis[0]), Y: d.Dot(b.Axis[1]), Z: d.Dot(b.Axis[2])}
}

// LocalAABB returns the box in its own frame, centered at the origin.
func (b *BoundingBox) LocalAABB() AABoundingBox {
	return AABoundingBox{Min: b.Extents.Negate(), Max: b.Extents}
}

// Vertices returns the 8 world corners in AABoundingBox corner order.
func (b *BoundingBox) Vertices() [8]math32.Vector3 {
	local := b.LocalAABB()
	corners := local.Vertices()
	for i, c := range corners {
		corners[i] = b.Center.
			Add(b.Axis[0].Mul(c.X)).
			Add(b.Axis[1].Mul(c.Y)).
			Add(b.Axis[2].Mul(c.Z))
	}
	return corners
}

// ProjectedRadius returns the half length of the projection of the box on
// the given direction.
func (b *BoundingBox) ProjectedRadius(dir math32.Vector3) float32 {
	return b.Extents.X*math32.Abs(b.Axis[0].Dot(dir)) +
		b.Extents.Y*math32.Abs(b.Axis[1].Dot(dir)) +
		b.Extents.Z*math32.Abs(b.Axis[2].Dot(dir))
}

// GetBounds returns the world axis-aligned box enclosing the OBB.
func (b *BoundingBox) GetBounds() AABoundingBox {
	half := math32.Vector3{
		X: b.ProjectedRadius(math32.Vector3{X: 1}),
		Y: b.ProjectedRadius(math32.Vector3{Y: 1}),
		Z: b.ProjectedRadius(math32.Vector3{Z: 1}),
	}
	return AABoundingBox{Min: b.Center.Sub(half), Max: b.Center.Add(half)}
}

// ContainsPoint checks if the point is inside the box, borders included.
func (b *BoundingBox) ContainsPoint(point math32.Vector3) bool {
	local := b.LocalAABB()
	return local.Contains(b.ToLocal(point))
}
