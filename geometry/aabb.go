package geometry

import "github.com/o0olele/geocull/math32"

// AABoundingBox is an axis-aligned bounding box. Min <= Max per axis is
// expected but not enforced, see ValidateMinMax.
//
// Corner indices use one bit per axis, a clear bit selecting the minimum and
// a set bit the maximum coordinate:
//
//	bit 0 -> X, bit 1 -> Y, bit 2 -> Z
//
//	0 (min,min,min)  1 (max,min,min)  2 (min,max,min)  3 (max,max,min)
//	4 (min,min,max)  5 (max,min,max)  6 (min,max,max)  7 (max,max,max)
type AABoundingBox struct {
	Min math32.Vector3 `json:"min"`
	Max math32.Vector3 `json:"max"`
}

// NewAABoundingBox returns the box spanned by min and max.
func NewAABoundingBox(min, max math32.Vector3) AABoundingBox {
	return AABoundingBox{Min: min, Max: max}
}

// AABoundingBoxFromPoints returns the smallest box containing all points.
// No points yields the zero box.
func AABoundingBoxFromPoints(points []math32.Vector3) AABoundingBox {
	if len(points) == 0 {
		return AABoundingBox{}
	}
	aabb := AABoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		aabb.ExpandByPoint(p)
	}
	return aabb
}

// Contains checks if the point is inside the AABB, borders included.
func (aabb *AABoundingBox) Contains(point math32.Vector3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the center of the AABB
func (aabb *AABoundingBox) Center() math32.Vector3 {
	return math32.Vector3{
		X: (aabb.Min.X + aabb.Max.X) / 2,
		Y: (aabb.Min.Y + aabb.Max.Y) / 2,
		Z: (aabb.Min.Z + aabb.Max.Z) / 2,
	}
}

// Size returns the size of the AABB
func (aabb *AABoundingBox) Size() math32.Vector3 {
	return aabb.Max.Sub(aabb.Min)
}

// HalfSize returns the half diagonal of the AABB.
func (aabb *AABoundingBox) HalfSize() math32.Vector3 {
	return aabb.Size().Scale(0.5)
}

// Radius returns the length of the half diagonal, the radius of the sphere
// around the center touching all corners.
func (aabb *AABoundingBox) Radius() float32 {
	return aabb.HalfSize().Length()
}

// Volume returns the volume of the AABB.
func (aabb *AABoundingBox) Volume() float32 {
	size := aabb.Size()
	return size.X * size.Y * size.Z
}

// Surface returns the surface area of the AABB.
func (aabb *AABoundingBox) Surface() float32 {
	size := aabb.Size()
	return 2 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// Intersects checks if the AABB intersects with another AABB
func (aabb *AABoundingBox) Intersects(other AABoundingBox) bool {
	return aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// IsEmpty checks if the AABB is empty (invalid)
func (aabb *AABoundingBox) IsEmpty() bool {
	return aabb.Min.X >= aabb.Max.X || aabb.Min.Y >= aabb.Max.Y || aabb.Min.Z >= aabb.Max.Z
}

// ExpandByPoint grows the AABB so it contains point.
func (aabb *AABoundingBox) ExpandByPoint(point math32.Vector3) {
	aabb.Min = aabb.Min.Min(point)
	aabb.Max = aabb.Max.Max(point)
}

// Union returns the smallest AABB containing both boxes.
func (aabb AABoundingBox) Union(other AABoundingBox) AABoundingBox {
	return AABoundingBox{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// ValidateMinMax swaps the components of Min and Max on every axis where
// min > max. Calling it twice has the same effect as calling it once.
func (aabb *AABoundingBox) ValidateMinMax() {
	if aabb.Min.X > aabb.Max.X {
		aabb.Min.X, aabb.Max.X = aabb.Max.X, aabb.Min.X
	}
	if aabb.Min.Y > aabb.Max.Y {
		aabb.Min.Y, aabb.Max.Y = aabb.Max.Y, aabb.Min.Y
	}
	if aabb.Min.Z > aabb.Max.Z {
		aabb.Min.Z, aabb.Max.Z = aabb.Max.Z, aabb.Min.Z
	}
}

// Vertices returns the 8 corners in corner index order.
func (aabb *AABoundingBox) Vertices() [8]math32.Vector3 {
	var vertices [8]math32.Vector3
	for i := range vertices {
		vertices[i] = aabb.corner(i)
	}
	return vertices
}

// Vertex returns the corner with the given index. Indices outside 0..7
// return the zero vector and false.
func (aabb *AABoundingBox) Vertex(i int) (math32.Vector3, bool) {
	if i < 0 || i > 7 {
		return math32.Vector3{}, false
	}
	return aabb.corner(i), true
}

func (aabb *AABoundingBox) corner(i int) math32.Vector3 {
	v := aabb.Min
	if i&1 != 0 {
		v.X = aabb.Max.X
	}
	if i&2 != 0 {
		v.Y = aabb.Max.Y
	}
	if i&4 != 0 {
		v.Z = aabb.Max.Z
	}
	return v
}

// NearestVertexIndex returns the index of the corner lying furthest along
// -normal, the first corner a plane with this normal sweeps over.
func (aabb *AABoundingBox) NearestVertexIndex(normal math32.Vector3) int {
	index := 0
	if normal.X < 0 {
		index |= 1
	}
	if normal.Y < 0 {
		index |= 2
	}
	if normal.Z < 0 {
		index |= 4
	}
	return index
}

// FurthestVertexIndex returns the index of the corner lying furthest along
// normal. It is always the corner opposite NearestVertexIndex.
func (aabb *AABoundingBox) FurthestVertexIndex(normal math32.Vector3) int {
	return 7 - aabb.NearestVertexIndex(normal)
}

// Transform returns the oriented box obtained by applying t to the AABB.
func (aabb *AABoundingBox) Transform(t Transform) BoundingBox {
	axes := math32.RotationAxes(t.Rot)
	return BoundingBox{
		Center:  t.Apply(aabb.Center()),
		Axis:    axes,
		Extents: aabb.HalfSize().MulVec(t.Scale).Abs(),
	}
}
