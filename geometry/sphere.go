package geometry

import "github.com/o0olele/geocull/math32"

// Sphere is a center and a radius; a negative radius is not rejected.
type Sphere struct {
	Center math32.Vector3 `json:"center"`
	Radius float32        `json:"radius"`
}

// ContainsPoint checks if the point is inside the sphere, surface included.
func (s *Sphere) ContainsPoint(point math32.Vector3) bool {
	return point.DistanceSquared(s.Center) <= s.Radius*s.Radius
}

// GetBounds returns the bounding box of the sphere
func (s *Sphere) GetBounds() AABoundingBox {
	r := math32.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABoundingBox{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// SphereFromPoints returns the sphere centered on the centroid of points
// whose radius is the largest distance to it. No points yields the zero sphere.
func SphereFromPoints(points []math32.Vector3) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}
	var center math32.Vector3
	for _, p := range points {
		center = center.Add(p)
	}
	center = center.Mul(1 / float32(len(points)))

	var maxSq float32
	for _, p := range points {
		if d := p.DistanceSquared(center); d > maxSq {
			maxSq = d
		}
	}
	return Sphere{Center: center, Radius: math32.Sqrt(maxSq)}
}
