package geometry

import "github.com/o0olele/geocull/math32"

// PolygonHooks keeps caller data (texture coordinates, colors, ...) in step
// with the vertices of a polygon. Every method is optional in spirit: embed
// NopPolygonHooks and override what is needed.
type PolygonHooks interface {
	// Init is called when the polygon is (re)initialized.
	Init(p *Polygon)
	// Add is called after vertex index was appended to p with AddVertex.
	Add(p *Polygon, index int)
	// Split is called after a split appended vertex index to dst. The vertex
	// lies at t between vertices a and b of src; copied vertices have a == b
	// and t == 0.
	Split(dst *Polygon, index int, src *Polygon, a, b int, t float32)
}

// NopPolygonHooks implements PolygonHooks doing nothing.
type NopPolygonHooks struct{}

func (NopPolygonHooks) Init(*Polygon)                                    {}
func (NopPolygonHooks) Add(*Polygon, int)                                {}
func (NopPolygonHooks) Split(*Polygon, int, *Polygon, int, int, float32) {}

// Polygon is a planar convex polygon.
type Polygon struct {
	vertices []math32.Vector3
	hooks    PolygonHooks
}

// NewPolygon returns an empty polygon; hooks may be nil.
func NewPolygon(hooks PolygonHooks) *Polygon {
	if hooks == nil {
		hooks = NopPolygonHooks{}
	}
	p := &Polygon{hooks: hooks}
	p.hooks.Init(p)
	return p
}

// Init removes all vertices.
func (p *Polygon) Init() {
	p.vertices = p.vertices[:0]
	p.hooks.Init(p)
}

// Hooks returns the hooks of the polygon.
func (p *Polygon) Hooks() PolygonHooks {
	return p.hooks
}

// AddVertex appends a vertex and returns its index.
func (p *Polygon) AddVertex(v math32.Vector3) int {
	p.vertices = append(p.vertices, v)
	index := len(p.vertices) - 1
	p.hooks.Add(p, index)
	return index
}

// Vertices returns the vertices in order. The slice must not be modified.
func (p *Polygon) Vertices() []math32.Vector3 {
	return p.vertices
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.vertices)
}

// Plane returns the normalized plane through the first three vertices, or
// false for fewer than three.
func (p *Polygon) Plane() (Plane, bool) {
	if len(p.vertices) < 3 {
		return Plane{}, false
	}
	return PlaneFromPoints(p.vertices[0], p.vertices[1], p.vertices[2]).Normalize(), true
}

// Center returns the vertex centroid.
func (p *Polygon) Center() math32.Vector3 {
	var c math32.Vector3
	if len(p.vertices) == 0 {
		return c
	}
	for _, v := range p.vertices {
		c = c.Add(v)
	}
	return c.Mul(1 / float32(len(p.vertices)))
}

// Area returns the area of the polygon.
func (p *Polygon) Area() float32 {
	if len(p.vertices) < 3 {
		return 0
	}
	var sum math32.Vector3
	v0 := p.vertices[0]
	for i := 1; i+1 < len(p.vertices); i++ {
		sum = sum.Add(p.vertices[i].Sub(v0).Cross(p.vertices[i+1].Sub(v0)))
	}
	return sum.Length() / 2
}

// GetBounds returns the bounding box of the vertices.
func (p *Polygon) GetBounds() AABoundingBox {
	return AABoundingBoxFromPoints(p.vertices)
}

// Side classifies the polygon against plane; vertices within epsilon of
// the plane count as in it.
func (p *Polygon) Side(plane Plane, epsilon float32) Side {
	front, back := 0, 0
	for _, v := range p.vertices {
		switch plane.Side(v, epsilon) {
		case InFront:
			front++
		case Behind:
			back++
		}
	}
	switch {
	case front > 0 && back > 0:
		return Spanning
	case front > 0:
		return InFront
	case back > 0:
		return Behind
	}
	return InPlane
}

// Split cuts the polygon by plane. Vertices within epsilon of the plane go
// to both halves. A half that would have fewer than three vertices is nil.
func (p *Polygon) Split(plane Plane, epsilon float32) (front, back *Polygon) {
	front = &Polygon{hooks: p.hooks}
	back = &Polygon{hooks: p.hooks}
	front.hooks.Init(front)
	back.hooks.Init(back)

	n := len(p.vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := p.vertices[i], p.vertices[j]
		da, db := plane.Distance(a), plane.Distance(b)
		sa := plane.Side(a, epsilon)

		switch sa {
		case InFront:
			front.splitAdd(a, p, i, i, 0)
		case Behind:
			back.splitAdd(a, p, i, i, 0)
		default:
			front.splitAdd(a, p, i, i, 0)
			back.splitAdd(a, p, i, i, 0)
		}

		sb := plane.Side(b, epsilon)
		if (sa == InFront && sb == Behind) || (sa == Behind && sb == InFront) {
			t := da / (da - db)
			v := a.Lerp(b, t)
			front.splitAdd(v, p, i, j, t)
			back.splitAdd(v, p, i, j, t)
		}
	}

	if len(front.vertices) < 3 {
		front = nil
	}
	if len(back.vertices) < 3 {
		back = nil
	}
	return front, back
}

func (p *Polygon) splitAdd(v math32.Vector3, src *Polygon, a, b int, t float32) {
	p.vertices = append(p.vertices, v)
	p.hooks.Split(p, len(p.vertices)-1, src, a, b, t)
}
