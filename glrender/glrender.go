package glrender

import (
	"errors"
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes"
)

type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// MeshReader reads the triangles of a [glshapes.Drawable] in index order.
type MeshReader struct {
	d    glshapes.Drawable
	next int
}

var _ Renderer = (*MeshReader)(nil)

// NewMeshReader returns a Renderer that reads the triangles of d.
func NewMeshReader(d glshapes.Drawable) (*MeshReader, error) {
	if d == nil {
		return nil, errors.New("nil drawable")
	} else if d.ElemCount()%3 != 0 {
		return nil, errors.New("drawable index count not multiple of 3")
	} else if len(d.Positions()) != len(d.Normals()) {
		return nil, errors.New("drawable positions and normals length mismatch")
	}
	return &MeshReader{d: d}, nil
}

// ReadTriangles reads up to len(dst) triangles. It returns io.EOF once all triangles have been read.
func (mr *MeshReader) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	if len(dst) == 0 {
		return 0, errors.New("zero length triangle buffer")
	}
	pos := mr.d.Positions()
	idx := mr.d.Indices()
	for n < len(dst) && mr.next+3 <= len(idx) {
		i0, i1, i2 := idx[mr.next], idx[mr.next+1], idx[mr.next+2]
		if int(max(i0, i1, i2)) >= len(pos) {
			return n, errors.New("drawable index out of range")
		}
		dst[n] = ms3.Triangle{pos[i0], pos[i1], pos[i2]}
		mr.next += 3
		n++
	}
	if mr.next+3 > len(idx) {
		return n, io.EOF
	}
	return n, nil
}

// Reset rewinds the reader to the first triangle.
func (mr *MeshReader) Reset() { mr.next = 0 }
