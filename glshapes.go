package glshapes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

const (
	// golden ratio, used for the canonical icosahedron vertex coordinates.
	phi = 1.6180339887498948482045868343656381177203091798057628621354486227
	// epstol is used to check for badly conditioned lengths such as shape dimensions.
	epstol = 6e-7
)

// Drawable is implemented by geometry a renderer can upload and draw.
// Positions and Normals are parallel arrays. Indices describe triangles
// wound counter-clockwise when seen from outside the shape.
type Drawable interface {
	Positions() []ms3.Vec
	Normals() []ms3.Vec
	Indices() []uint32
	// ElemCount is the number of indices issued by an indexed draw call.
	ElemCount() int
}

// Mesh holds the vertex and index buffers of a shape. It is the common
// storage embedded by all shapes in this package.
type Mesh struct {
	pos  []ms3.Vec
	norm []ms3.Vec
	idx  []uint32
}

var _ Drawable = (*Mesh)(nil)

// Positions returns the vertex positions of the mesh. The returned slice must not be modified.
func (m *Mesh) Positions() []ms3.Vec { return m.pos }

// Normals returns the per-vertex normals of the mesh. The returned slice must not be modified.
func (m *Mesh) Normals() []ms3.Vec { return m.norm }

// Indices returns the triangle index buffer of the mesh.
func (m *Mesh) Indices() []uint32 { return m.idx }

// ElemCount returns the amount of indices in the mesh, three per triangle.
func (m *Mesh) ElemCount() int { return len(m.idx) }

// NumTriangles returns the amount of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.idx) / 3 }

// Triangle returns the i'th triangle of the mesh.
func (m *Mesh) Triangle(i int) ms3.Triangle {
	i *= 3
	return ms3.Triangle{m.pos[m.idx[i]], m.pos[m.idx[i+1]], m.pos[m.idx[i+2]]}
}

// reset truncates the buffers keeping their capacity.
func (m *Mesh) reset() {
	m.pos = m.pos[:0]
	m.norm = m.norm[:0]
	m.idx = m.idx[:0]
}

func (m *Mesh) addVertex(pos, norm ms3.Vec) uint32 {
	m.pos = append(m.pos, pos)
	m.norm = append(m.norm, norm)
	return uint32(len(m.pos) - 1)
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.idx = append(m.idx, a, b, c)
}

func validLength(name string, v float32) error {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return fmt.Errorf("%s is not a finite number", name)
	} else if v < epstol {
		return fmt.Errorf("zero or negative %s", name)
	}
	return nil
}

func validCenter(c ms3.Vec) error {
	arr := [3]float32{c.X, c.Y, c.Z}
	for _, v := range arr {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return errors.New("center is not a finite point")
		}
	}
	return nil
}
