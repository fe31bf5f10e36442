package glshapes

import (
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// MaxSubdivisions is the largest subdivision level accepted by [NewIcosphere].
// A level 10 icosphere has 20 971 520 faces.
const MaxSubdivisions = 10

// Icosphere is a sphere approximated by recursively subdividing the faces of
// a regular icosahedron and projecting new vertices onto the sphere.
// It is empty until [Icosphere.Build] is called.
type Icosphere struct {
	Mesh
	center ms3.Vec
	radius float32
	level  int

	// unit holds vertex positions on the unit sphere during a build.
	unit  []ms3.Vec
	faces [][3]uint32
	// midpoints maps an edge to the index of its projected midpoint.
	// Reset on every subdivision pass and discarded after a build.
	midpoints map[edge]uint32
}

// edge is an unordered pair of vertex indices stored as (min, max).
type edge struct {
	lo, hi uint32
}

func makeEdge(a, b uint32) edge {
	if a > b {
		a, b = b, a
	}
	return edge{lo: a, hi: b}
}

// NewIcosphere returns an icosphere centered at center with the given radius
// that will be subdivided level times when built.
func NewIcosphere(center ms3.Vec, radius float32, level int) (*Icosphere, error) {
	if err := validLength("icosphere radius", radius); err != nil {
		return nil, err
	} else if err = validCenter(center); err != nil {
		return nil, err
	} else if level < 0 || level > MaxSubdivisions {
		return nil, fmt.Errorf("icosphere subdivision level %d out of range [0, %d]", level, MaxSubdivisions)
	}
	return &Icosphere{center: center, radius: radius, level: level}, nil
}

// Center returns the center of the icosphere.
func (ico *Icosphere) Center() ms3.Vec { return ico.center }

// Radius returns the radius of the icosphere.
func (ico *Icosphere) Radius() float32 { return ico.radius }

// Level returns the amount of subdivision passes applied on build.
func (ico *Icosphere) Level() int { return ico.level }

// Build generates the vertex, normal and index buffers of the icosphere.
// Building twice yields identical buffers.
func (ico *Icosphere) Build() {
	ico.reset()
	ico.buildIcosahedron()
	for i := 0; i < ico.level; i++ {
		ico.subdivide()
	}
	for _, u := range ico.unit {
		pos := ms3.Add(ico.center, ms3.Scale(ico.radius, u))
		ico.addVertex(pos, u)
	}
	for _, f := range ico.faces {
		ico.addTriangle(f[0], f[1], f[2])
	}
	ico.unit = nil
	ico.faces = nil
	ico.midpoints = nil
}

func (ico *Icosphere) buildIcosahedron() {
	nf := icosphereFaces(ico.level)
	nv := icosphereVertices(ico.level)
	ico.unit = make([]ms3.Vec, 0, nv)
	ico.faces = make([][3]uint32, 0, nf)
	ico.pos = growVec(ico.pos, nv)
	ico.norm = growVec(ico.norm, nv)
	if cap(ico.idx) < 3*nf {
		ico.idx = make([]uint32, 0, 3*nf)
	}
	verts := [12]ms3.Vec{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	for _, v := range verts {
		ico.unit = append(ico.unit, ms3.Unit(v))
	}
	ico.faces = append(ico.faces,
		// 5 faces around vertex 0.
		[3]uint32{0, 11, 5}, [3]uint32{0, 5, 1}, [3]uint32{0, 1, 7}, [3]uint32{0, 7, 10}, [3]uint32{0, 10, 11},
		// 5 adjacent faces.
		[3]uint32{1, 5, 9}, [3]uint32{5, 11, 4}, [3]uint32{11, 10, 2}, [3]uint32{10, 7, 6}, [3]uint32{7, 1, 8},
		// 5 faces around vertex 3.
		[3]uint32{3, 9, 4}, [3]uint32{3, 4, 2}, [3]uint32{3, 2, 6}, [3]uint32{3, 6, 8}, [3]uint32{3, 8, 9},
		// 5 adjacent faces.
		[3]uint32{4, 9, 5}, [3]uint32{2, 4, 11}, [3]uint32{6, 2, 10}, [3]uint32{8, 6, 7}, [3]uint32{9, 8, 1},
	)
}

// subdivide splits every face in four, sharing edge midpoints between
// adjacent faces.
func (ico *Icosphere) subdivide() {
	if ico.midpoints == nil {
		ico.midpoints = make(map[edge]uint32, 3*len(ico.faces)/2)
	} else {
		clear(ico.midpoints)
	}
	next := make([][3]uint32, 0, 4*len(ico.faces))
	for _, f := range ico.faces {
		a, b, c := f[0], f[1], f[2]
		ab := ico.midpoint(a, b)
		bc := ico.midpoint(b, c)
		ca := ico.midpoint(c, a)
		next = append(next,
			[3]uint32{a, ab, ca},
			[3]uint32{b, bc, ab},
			[3]uint32{c, ca, bc},
			[3]uint32{ab, bc, ca},
		)
	}
	ico.faces = next
}

func (ico *Icosphere) midpoint(a, b uint32) uint32 {
	key := makeEdge(a, b)
	if i, ok := ico.midpoints[key]; ok {
		return i
	}
	mid := ms3.Scale(0.5, ms3.Add(ico.unit[a], ico.unit[b]))
	ico.unit = append(ico.unit, ms3.Unit(mid))
	i := uint32(len(ico.unit) - 1)
	ico.midpoints[key] = i
	return i
}

// icosphereFaces returns the number of faces of an icosphere subdivided level times.
func icosphereFaces(level int) int {
	return 20 << (2 * level)
}

// icosphereVertices returns the number of vertices of an icosphere subdivided level times.
// Follows from Euler's formula: V = E - F + 2 with E = 3F/2.
func icosphereVertices(level int) int {
	return 10<<(2*level) + 2
}

func growVec(v []ms3.Vec, n int) []ms3.Vec {
	if cap(v) < n {
		return make([]ms3.Vec, 0, n)
	}
	return v[:0]
}
