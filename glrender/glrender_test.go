package glrender

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshReaderAll(t *testing.T) {
	ico, err := glshapes.NewIcosphere(ms3.Vec{}, 1, 4)
	require.NoError(t, err)
	ico.Build()
	mr, err := NewMeshReader(ico)
	require.NoError(t, err)
	tris, err := RenderAll(mr, nil)
	require.NoError(t, err)
	require.Len(t, tris, ico.NumTriangles()) // 5120 triangles, more than RenderAll's buffer.
	for i := range tris {
		assert.Equal(t, ico.Triangle(i), tris[i])
	}
	mr.Reset()
	again, err := RenderAll(mr, nil)
	require.NoError(t, err)
	assert.Equal(t, tris, again)
}

func TestMeshReaderSmallBuffer(t *testing.T) {
	cube, err := glshapes.NewCube(ms3.Vec{}, 1)
	require.NoError(t, err)
	mr, err := NewMeshReader(cube)
	require.NoError(t, err)
	buf := make([]ms3.Triangle, 5)
	var total int
	for {
		n, err := mr.ReadTriangles(buf, nil)
		total += n
		if err != nil {
			break
		}
		assert.Equal(t, len(buf), n)
	}
	assert.Equal(t, 12, total)
	_, err = NewMeshReader(nil)
	assert.Error(t, err)
}

func TestWriteBinarySTL(t *testing.T) {
	sq, err := glshapes.NewSquare(ms3.Vec{}, 2)
	require.NoError(t, err)
	mr, err := NewMeshReader(sq)
	require.NoError(t, err)
	tris, err := RenderAll(mr, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	n, err := WriteBinarySTL(&buf, tris)
	require.NoError(t, err)
	require.Equal(t, 84+2*50, n)
	require.Equal(t, n, buf.Len())
	b := buf.Bytes()
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(b[80:]))
	facet := b[84:]
	nz := math.Float32frombits(binary.LittleEndian.Uint32(facet[8:]))
	assert.Equal(t, float32(1), nz, "square facet normal not +Z")
	x0 := math.Float32frombits(binary.LittleEndian.Uint32(facet[12:]))
	assert.Equal(t, tris[0][0].X, x0)
}
