package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/o0olele/geocull/math32"
)

// Transform places local geometry in the world: scale first, then rotation,
// then translation.
type Transform struct {
	Pos   math32.Vector3 `json:"pos"`
	Scale math32.Vector3 `json:"scale"`
	Rot   math32.Quat    `json:"rot"`
}

// IdentityTransform returns a transform leaving geometry unchanged.
func IdentityTransform() Transform {
	return Transform{
		Scale: math32.Vec3(1, 1, 1),
		Rot:   mgl32.QuatIdent(),
	}
}

// Apply transforms a local point into world space.
func (t Transform) Apply(p math32.Vector3) math32.Vector3 {
	return math32.Rotate(t.Rot, p.MulVec(t.Scale)).Add(t.Pos)
}

// Matrix returns the equivalent column-major matrix.
func (t Transform) Matrix() math32.Mat4 {
	return mgl32.Translate3D(t.Pos.X, t.Pos.Y, t.Pos.Z).
		Mul4(t.Rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z))
}
