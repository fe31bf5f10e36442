//go:build !tinygo && cgo

package gldraw

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/glshapes"
	"github.com/soypat/glshapes/scene"
)

// Buffers holds the vertex array and buffer objects of an uploaded drawable.
type Buffers struct {
	vao   uint32
	pos   uint32
	nor   uint32
	idx   uint32
	count int32
	// live points to the renderer's live buffer counter.
	live *int
}

var _ scene.Buffers = (*Buffers)(nil)

// Upload copies the drawable's positions, normals and indices to GPU buffers.
func (r *Renderer) Upload(d glshapes.Drawable) (scene.Buffers, error) {
	b, err := upload(d)
	if err != nil {
		return nil, err
	}
	b.live = &r.live
	r.live++
	return b, nil
}

func upload(d glshapes.Drawable) (*Buffers, error) {
	pos := d.Positions()
	nor := d.Normals()
	idx := d.Indices()
	if len(pos) == 0 || len(idx) == 0 {
		return nil, errors.New("empty drawable")
	} else if len(pos) != len(nor) {
		return nil, errors.New("positions and normals length mismatch")
	} else if d.ElemCount() != len(idx) {
		return nil, fmt.Errorf("element count %d does not match %d indices", d.ElemCount(), len(idx))
	}
	b := &Buffers{count: int32(len(idx))}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	defer gl.BindVertexArray(0)
	b.pos = loadBuffer(gl.ARRAY_BUFFER, pos)
	b.nor = loadBuffer(gl.ARRAY_BUFFER, nor)
	// The element buffer binding is stored in the VAO.
	b.idx = loadBuffer(gl.ELEMENT_ARRAY_BUFFER, idx)
	if b.vao == 0 || b.pos == 0 || b.nor == 0 || b.idx == 0 {
		b.delete()
		return nil, glErrOrMessage("zero id set by GL during drawable upload")
	}
	if err := glgl.Err(); err != nil {
		b.delete()
		return nil, fmt.Errorf("uploading drawable: %w", err)
	}
	return b, nil
}

// Elements returns the number of indices drawn.
func (b *Buffers) Elements() int { return int(b.count) }

// Release deletes the GPU objects.
func (b *Buffers) Release() error {
	if b.vao == 0 {
		return errors.New("buffers already released")
	}
	b.delete()
	if b.live != nil {
		*b.live--
	}
	return glgl.Err()
}

// bind binds the buffers to the attribute layout of p.
func (b *Buffers) bind(p *program) {
	gl.BindVertexArray(b.vao)
	bindAttrib(p.posAttrib, b.pos)
	bindAttrib(p.norAttrib, b.nor)
}

func (b *Buffers) delete() {
	ids := [3]uint32{b.pos, b.nor, b.idx}
	gl.DeleteBuffers(int32(len(ids)), &ids[0])
	gl.DeleteVertexArrays(1, &b.vao)
	*b = Buffers{live: b.live}
}

func bindAttrib(loc int32, buf uint32) {
	if loc < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func loadBuffer[T any](target uint32, slice []T) (id uint32) {
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	size := len(slice) * elemSize[T]()
	gl.BufferData(target, size, unsafe.Pointer(&slice[0]), gl.STATIC_DRAW)
	return id
}

func elemSize[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
