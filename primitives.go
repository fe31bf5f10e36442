package glshapes

import (
	"github.com/soypat/geometry/ms3"
)

// Cube is an axis aligned cube with flat shaded faces.
type Cube struct {
	Mesh
	center ms3.Vec
	side   float32
}

// NewCube creates a cube centered at center with the given side length.
func NewCube(center ms3.Vec, side float32) (*Cube, error) {
	if err := validLength("cube side", side); err != nil {
		return nil, err
	} else if err = validCenter(center); err != nil {
		return nil, err
	}
	c := &Cube{center: center, side: side}
	c.build()
	return c, nil
}

// Side returns the length of the cube's edges.
func (c *Cube) Side() float32 { return c.side }

func (c *Cube) build() {
	c.reset()
	h := c.side / 2
	// Each face is defined by its outward normal and two in-plane axes u,v
	// such that u x v = normal, which keeps the winding counter-clockwise.
	faces := [6][3]ms3.Vec{
		{{X: 1}, {Y: 1}, {Z: 1}},
		{{X: -1}, {Z: 1}, {Y: 1}},
		{{Y: 1}, {Z: 1}, {X: 1}},
		{{Y: -1}, {X: 1}, {Z: 1}},
		{{Z: 1}, {X: 1}, {Y: 1}},
		{{Z: -1}, {Y: 1}, {X: 1}},
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		mid := ms3.Add(c.center, ms3.Scale(h, n))
		u = ms3.Scale(h, u)
		v = ms3.Scale(h, v)
		i0 := c.addVertex(ms3.Sub(ms3.Sub(mid, u), v), n)
		i1 := c.addVertex(ms3.Sub(ms3.Add(mid, u), v), n)
		i2 := c.addVertex(ms3.Add(ms3.Add(mid, u), v), n)
		i3 := c.addVertex(ms3.Add(ms3.Sub(mid, u), v), n)
		c.addTriangle(i0, i1, i2)
		c.addTriangle(i2, i3, i0)
	}
}

// Square is a flat square on the XY plane facing +Z.
type Square struct {
	Mesh
	center ms3.Vec
	side   float32
}

// NewSquare creates a square centered at center with the given side length.
// A square of side 2 centered at the origin covers normalized device coordinates.
func NewSquare(center ms3.Vec, side float32) (*Square, error) {
	if err := validLength("square side", side); err != nil {
		return nil, err
	} else if err = validCenter(center); err != nil {
		return nil, err
	}
	s := &Square{center: center, side: side}
	h := side / 2
	n := ms3.Vec{Z: 1}
	i0 := s.addVertex(ms3.Add(center, ms3.Vec{X: -h, Y: -h}), n)
	i1 := s.addVertex(ms3.Add(center, ms3.Vec{X: h, Y: -h}), n)
	i2 := s.addVertex(ms3.Add(center, ms3.Vec{X: h, Y: h}), n)
	i3 := s.addVertex(ms3.Add(center, ms3.Vec{X: -h, Y: h}), n)
	s.addTriangle(i0, i1, i2)
	s.addTriangle(i2, i3, i0)
	return s, nil
}

// Side returns the length of the square's edges.
func (s *Square) Side() float32 { return s.side }
