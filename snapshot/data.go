// Package snapshot persists the input of an octree (bounds, build
// parameters, transform and items) in a small little-endian binary file,
// optionally gzip compressed.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
	"github.com/o0olele/geocull/octree"
)

const (
	FileMagic   = 0x4C554347 // "GCUL"
	FileVersion = 1
)

var (
	ErrBadMagic   = errors.New("snapshot: invalid file format")
	ErrBadVersion = errors.New("snapshot: unsupported file version")
	ErrInvalid    = errors.New("snapshot: invalid content")
)

// FileHeader 文件头
type FileHeader struct {
	Magic   uint32
	Version uint32
}

// Snapshot is everything needed to rebuild an octree.
type Snapshot struct {
	Bounds        geometry.AABoundingBox
	Subdivide     uint8
	MinGeometries uint32
	Transform     geometry.Transform
	Items         []octree.Item
}

// FromOctree captures the parameters and transform of o together with the
// items it was built from.
func FromOctree(o *octree.Octree, bounds geometry.AABoundingBox, items []octree.Item) *Snapshot {
	return &Snapshot{
		Bounds:        bounds,
		Subdivide:     uint8(o.Subdivide()),
		MinGeometries: uint32(o.MinGeometries()),
		Transform:     o.Transform(),
		Items:         items,
	}
}

// Restore initializes o with the snapshot, applies its transform and builds
// it.
func (s *Snapshot) Restore(o *octree.Octree) error {
	o.Init(int(s.Subdivide), int(s.MinGeometries))
	o.SetPos(s.Transform.Pos)
	o.SetScale(s.Transform.Scale)
	o.SetRot(s.Transform.Rot)
	if err := o.Build(s.Bounds, s.Items); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}

// Validate checks the snapshot for values Build cannot use.
func (s *Snapshot) Validate() error {
	if !finiteVec(s.Bounds.Min) || !finiteVec(s.Bounds.Max) {
		return fmt.Errorf("%w: bounds are not finite", ErrInvalid)
	}
	if int(s.Subdivide) > octree.MaxSubdivide {
		return fmt.Errorf("%w: subdivide %d exceeds %d", ErrInvalid, s.Subdivide, octree.MaxSubdivide)
	}
	if !finiteVec(s.Transform.Pos) || !finiteVec(s.Transform.Scale) {
		return fmt.Errorf("%w: transform is not finite", ErrInvalid)
	}
	rot := s.Transform.Rot
	if !math32.IsFinite(rot.W) || !finiteVec(math32.Vector3{X: rot.V[0], Y: rot.V[1], Z: rot.V[2]}) || rot.Len() == 0 {
		return fmt.Errorf("%w: rotation is not a finite non-zero quaternion", ErrInvalid)
	}
	for i, item := range s.Items {
		if !finiteVec(item.Bounds.Min) || !finiteVec(item.Bounds.Max) {
			return fmt.Errorf("%w: item %d (id %d) bounds are not finite", ErrInvalid, i, item.ID)
		}
	}
	return nil
}

func finiteVec(v math32.Vector3) bool {
	return math32.IsFinite(v.X) && math32.IsFinite(v.Y) && math32.IsFinite(v.Z)
}
