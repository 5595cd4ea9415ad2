package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmap(t *testing.T) {
	var bm Bitmap
	assert.False(t, bm.Contains(3))

	bm.Set(3)
	bm.Set(70)
	bm.Set(1000)
	assert.True(t, bm.Contains(70))
	assert.False(t, bm.Contains(71))
	assert.Equal(t, 3, bm.Count())
	assert.Equal(t, []uint32{3, 70, 1000}, bm.Values())

	var first []uint32
	bm.Range(func(x uint32) bool {
		first = append(first, x)
		return false
	})
	assert.Equal(t, []uint32{3}, first)

	bm.Remove(70)
	bm.Remove(5000)
	assert.Equal(t, []uint32{3, 1000}, bm.Values())

	size := len(bm)
	bm.Clear()
	assert.Zero(t, bm.Count())
	assert.Len(t, bm, size)
}

func TestBitmapGrow(t *testing.T) {
	var bm Bitmap
	bm.Grow(130)
	assert.Len(t, bm, 3)
	assert.Zero(t, bm.Count())
}
