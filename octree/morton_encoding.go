package octree

import (
	"sort"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
)

// mortonResolution is the grid resolution per axis used to order items.
const mortonResolution = 1024

// MortonCode is the position of a grid cell along the Z curve.
type MortonCode uint64

// mortonBits is the number of bits per axis a MortonCode holds.
const mortonBits = 21

// EncodeMorton3D interleaves the low 21 bits of x, y and z, x taking the
// lowest bit of every triple.
func EncodeMorton3D(x, y, z uint32) MortonCode {
	var code uint64
	for i := uint(0); i < mortonBits; i++ {
		code |= uint64(x>>i&1)<<(3*i) | uint64(y>>i&1)<<(3*i+1) | uint64(z>>i&1)<<(3*i+2)
	}
	return MortonCode(code)
}

// Vector3ToMorton converts a position inside bounds to a Morton code on a
// grid of resolution cells per axis. Positions outside are clamped.
func Vector3ToMorton(pos math32.Vector3, bounds geometry.AABoundingBox, resolution uint32) MortonCode {
	size := bounds.Size()
	cell := func(v, min, extent float32) uint32 {
		if extent <= 0 || v <= min {
			return 0
		}
		c := uint32((v - min) / extent * float32(resolution))
		if c >= resolution {
			c = resolution - 1
		}
		return c
	}

	return EncodeMorton3D(
		cell(pos.X, bounds.Min.X, size.X),
		cell(pos.Y, bounds.Min.Y, size.Y),
		cell(pos.Z, bounds.Min.Z, size.Z),
	)
}

// sortItemsByMorton returns a copy of items ordered along the Z curve of
// their centers. Items in the same cell keep their input order. This is the
// order Node.Items reports.
func sortItemsByMorton(items []Item, bounds geometry.AABoundingBox) []Item {
	codes := make([]MortonCode, len(items))
	order := make([]int, len(items))
	for i, item := range items {
		codes[i] = Vector3ToMorton(item.Bounds.Center(), bounds, mortonResolution)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return codes[order[a]] < codes[order[b]]
	})

	sorted := make([]Item, len(items))
	for i, at := range order {
		sorted[i] = items[at]
	}
	return sorted
}
