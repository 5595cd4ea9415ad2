package math32

import "math/bits"

// Bitmap is a growable bitset, used to collect the IDs of visible items.
// The zero value is an empty set.
type Bitmap []uint64

func bitPos(x uint32) (blk int, mask uint64) {
	return int(x >> 6), 1 << (x & 63)
}

// Set adds x, growing the bitmap if necessary.
func (dst *Bitmap) Set(x uint32) {
	blk, mask := bitPos(x)
	dst.grow(blk)
	(*dst)[blk] |= mask
}

// Remove removes x. The bitmap never shrinks.
func (dst *Bitmap) Remove(x uint32) {
	if blk, mask := bitPos(x); blk < len(*dst) {
		(*dst)[blk] &^= mask
	}
}

// Contains reports whether x is set.
func (dst Bitmap) Contains(x uint32) bool {
	blk, mask := bitPos(x)
	return blk < len(dst) && dst[blk]&mask != 0
}

// Clear unsets every bit but keeps the allocated blocks.
func (dst Bitmap) Clear() {
	clear(dst)
}

// Count returns the number of set bits.
func (dst Bitmap) Count() int {
	n := 0
	for _, blk := range dst {
		n += bits.OnesCount64(blk)
	}
	return n
}

// Range calls fn for every set bit in ascending order until fn returns false.
func (dst Bitmap) Range(fn func(x uint32) bool) {
	for blkAt, blk := range dst {
		for blk != 0 {
			bitAt := bits.TrailingZeros64(blk)
			if !fn(uint32(blkAt<<6 + bitAt)) {
				return
			}
			blk &= blk - 1
		}
	}
}

// Values returns the set bits in ascending order.
func (dst Bitmap) Values() []uint32 {
	values := make([]uint32, 0, dst.Count())
	dst.Range(func(x uint32) bool {
		values = append(values, x)
		return true
	})
	return values
}

// Grow makes room for bits up to desiredBit.
func (dst *Bitmap) Grow(desiredBit uint32) {
	blk, _ := bitPos(desiredBit)
	dst.grow(blk)
}

// grow extends the bitmap to hold block blk.
func (dst *Bitmap) grow(blk int) {
	if n := blk + 1 - len(*dst); n > 0 {
		*dst = append(*dst, make(Bitmap, n)...)
	}
}
