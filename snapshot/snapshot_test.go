package snapshot

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
	"github.com/o0olele/geocull/octree"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Bounds:        geometry.NewAABoundingBox(math32.Vec3(0, 0, 0), math32.Vec3(8, 8, 8)),
		Subdivide:     2,
		MinGeometries: 0,
		Transform: geometry.Transform{
			Pos:   math32.Vec3(1, 2, 3),
			Scale: math32.Vec3(2, 2, 2),
			Rot:   mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		},
		Items: []octree.Item{
			{ID: 1, Bounds: geometry.NewAABoundingBox(math32.Vec3(1, 1, 1), math32.Vec3(1.5, 1.5, 1.5))},
			{ID: 2, Bounds: geometry.NewAABoundingBox(math32.Vec3(6.5, 6.5, 6.5), math32.Vec3(7, 7, 7))},
		},
	}
}

func TestWriteRead(t *testing.T) {
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, testSnapshot(), compress))

		got, err := Read(&buf)
		require.NoError(t, err)
		assert.Equal(t, testSnapshot(), got, "compress=%v", compress)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gcul")
	require.NoError(t, Save(testSnapshot(), path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)

	info, err := GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 2, info.ItemCount)
	assert.Equal(t, uint32(FileVersion), info.Version)
	assert.Positive(t, info.FileSize)
}

func TestReadErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, FileHeader{Magic: 1, Version: FileVersion}))
	_, err := Read(&buf)
	assert.ErrorIs(t, err, ErrBadMagic)

	buf.Reset()
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, FileHeader{Magic: FileMagic, Version: 99}))
	_, err = Read(&buf)
	assert.ErrorIs(t, err, ErrBadVersion)

	// truncated item list
	buf.Reset()
	require.NoError(t, Write(&buf, testSnapshot(), false))
	_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-4]))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader(nil))
	assert.Error(t, err)

	// subdivide is the byte after the header and bounds, the rotation W
	// follows min geometries and the position and scale
	const subdivideAt, rotWAt = 8 + 24, 8 + 24 + 1 + 4 + 24
	tests := map[string]func(data []byte){
		"subdivide": func(data []byte) { data[subdivideAt] = 30 },
		"rotation": func(data []byte) {
			binary.LittleEndian.PutUint32(data[rotWAt:], math.Float32bits(float32(math.NaN())))
		},
	}
	for name, corrupt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, testSnapshot(), false))
			data := buf.Bytes()
			corrupt(data)
			_, err := Read(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidate(t *testing.T) {
	s := testSnapshot()
	s.Items[1].Bounds.Max.X = math32.Inf(1)
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
	assert.Error(t, Write(&bytes.Buffer{}, s, false))

	s = testSnapshot()
	s.Transform.Rot = math32.Quat{}
	assert.ErrorIs(t, s.Validate(), ErrInvalid)

	s = testSnapshot()
	s.Subdivide = octree.MaxSubdivide + 1
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
	s.Subdivide = octree.MaxSubdivide
	assert.NoError(t, s.Validate())
}

func TestRestore(t *testing.T) {
	tree := octree.NewOctree()
	require.NoError(t, testSnapshot().Restore(tree))

	assert.Equal(t, octree.StateBuilt, tree.State())
	assert.Equal(t, 25, tree.NodeCount())
	assert.Equal(t, math32.Vec3(1, 2, 3), tree.Transform().Pos)

	again := FromOctree(tree, testSnapshot().Bounds, testSnapshot().Items)
	assert.Equal(t, uint8(2), again.Subdivide)
	assert.True(t, tree.Transform().Rot.ApproxEqual(again.Transform.Rot))
}
