package geometry

import "github.com/o0olele/geocull/math32"

// Line is the segment from Start to End.
type Line struct {
	Start math32.Vector3 `json:"start"`
	End   math32.Vector3 `json:"end"`
}

// Vector returns End - Start.
func (l Line) Vector() math32.Vector3 {
	return l.End.Sub(l.Start)
}

// Length returns the segment length.
func (l Line) Length() float32 {
	return l.Start.Distance(l.End)
}

// Direction returns the normalized segment direction, zero for a point.
func (l Line) Direction() math32.Vector3 {
	return l.Vector().Normalize()
}

// Center returns the midpoint of the segment.
func (l Line) Center() math32.Vector3 {
	return l.Start.Lerp(l.End, 0.5)
}

// ClosestPoint returns the point of the segment closest to point.
func (l Line) ClosestPoint(point math32.Vector3) math32.Vector3 {
	return point.ClosestPointOnLine(l.Start, l.End)
}

// Distance returns the distance between point and the segment.
func (l Line) Distance(point math32.Vector3) float32 {
	return point.Distance(l.ClosestPoint(point))
}

// GetBounds returns the bounding box of the segment
func (l Line) GetBounds() AABoundingBox {
	return AABoundingBox{Min: l.Start.Min(l.End), Max: l.Start.Max(l.End)}
}
