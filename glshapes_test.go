package glshapes

import (
	"math"
	"slices"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestIcosphereCounts(t *testing.T) {
	for level := 0; level <= 8; level++ {
		ico, err := NewIcosphere(ms3.Vec{}, 1, level)
		if err != nil {
			t.Fatal(err)
		}
		ico.Build()
		wantFaces := 20 * int(math.Pow(4, float64(level)))
		if got := ico.NumTriangles(); got != wantFaces {
			t.Errorf("level %d: got %d faces, want %d", level, got, wantFaces)
		}
		if got := ico.ElemCount(); got != 3*wantFaces {
			t.Errorf("level %d: got %d indices, want %d", level, got, 3*wantFaces)
		}
		// 12 base vertices plus one per unique edge introduced in every pass.
		// A closed triangle mesh with F faces has 3F/2 edges.
		wantVerts := 12
		faces := 20
		for i := 0; i < level; i++ {
			wantVerts += 3 * faces / 2
			faces *= 4
		}
		if got := len(ico.Positions()); got != wantVerts {
			t.Errorf("level %d: got %d vertices, want %d", level, got, wantVerts)
		}
		if len(ico.Normals()) != len(ico.Positions()) {
			t.Errorf("level %d: normals and positions length mismatch", level)
		}
	}
}

func TestIcosphereEndToEnd(t *testing.T) {
	ico, err := NewIcosphere(ms3.Vec{}, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	ico.Build()
	if len(ico.Positions()) != 12 || ico.NumTriangles() != 20 {
		t.Fatalf("level 0: got %d vertices and %d faces", len(ico.Positions()), ico.NumTriangles())
	}
	for i, p := range ico.Positions() {
		if d := math32.Abs(ms3.Norm(p) - 1); d > 1e-6 {
			t.Errorf("vertex %d off unit sphere by %g", i, d)
		}
	}

	ico, err = NewIcosphere(ms3.Vec{}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	ico.Build()
	if len(ico.Positions()) != 42 || ico.NumTriangles() != 80 {
		t.Fatalf("level 1: got %d vertices and %d faces", len(ico.Positions()), ico.NumTriangles())
	}
}

func TestIcosphereOnSphere(t *testing.T) {
	const tol = 1e-4
	center := ms3.Vec{X: 1.5, Y: -2, Z: 0.25}
	const radius = 3.5
	for level := 0; level <= 5; level++ {
		ico, err := NewIcosphere(center, radius, level)
		if err != nil {
			t.Fatal(err)
		}
		ico.Build()
		pos := ico.Positions()
		norm := ico.Normals()
		for i := range pos {
			d := ms3.Norm(ms3.Sub(pos[i], center))
			if math32.Abs(d-radius) > tol*radius {
				t.Fatalf("level %d vertex %d: distance %g to center, want %g", level, i, d, radius)
			}
			if math32.Abs(ms3.Norm(norm[i])-1) > tol {
				t.Fatalf("level %d vertex %d: normal not unit length %v", level, i, norm[i])
			}
			radial := ms3.Scale(1/radius, ms3.Sub(pos[i], center))
			if ms3.Norm(ms3.Sub(radial, norm[i])) > tol {
				t.Fatalf("level %d vertex %d: normal %v not radial %v", level, i, norm[i], radial)
			}
		}
	}
}

func TestIcosphereNoDuplicateVertices(t *testing.T) {
	for level := 0; level <= 4; level++ {
		ico, err := NewIcosphere(ms3.Vec{}, 1, level)
		if err != nil {
			t.Fatal(err)
		}
		ico.Build()
		pos := ico.Positions()
		seen := make(map[[3]int32]int, len(pos))
		for i, p := range pos {
			// Quantize to catch vertices that are equal within float error.
			key := [3]int32{int32(p.X * 1e5), int32(p.Y * 1e5), int32(p.Z * 1e5)}
			if j, ok := seen[key]; ok {
				t.Fatalf("level %d: vertex %d duplicates vertex %d at %v", level, i, j, p)
			}
			seen[key] = i
		}
		// Every edge of a closed mesh is shared by exactly two faces.
		edges := make(map[edge]int)
		idx := ico.Indices()
		for i := 0; i < len(idx); i += 3 {
			edges[makeEdge(idx[i], idx[i+1])]++
			edges[makeEdge(idx[i+1], idx[i+2])]++
			edges[makeEdge(idx[i+2], idx[i])]++
		}
		for e, n := range edges {
			if n != 2 {
				t.Fatalf("level %d: edge %v shared by %d faces, mesh has cracks", level, e, n)
			}
		}
	}
}

func TestIcosphereOutwardWinding(t *testing.T) {
	ico, err := NewIcosphere(ms3.Vec{}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	ico.Build()
	for i := 0; i < ico.NumTriangles(); i++ {
		tri := ico.Triangle(i)
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		if ms3.Dot(n, tri[0]) <= 0 {
			t.Fatalf("triangle %d wound clockwise seen from outside", i)
		}
	}
}

func TestIcosphereIdempotent(t *testing.T) {
	center := ms3.Vec{X: -1, Y: 2, Z: 3}
	a, err := NewIcosphere(center, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewIcosphere(center, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	a.Build()
	b.Build()
	if !slices.Equal(a.Positions(), b.Positions()) || !slices.Equal(a.Normals(), b.Normals()) || !slices.Equal(a.Indices(), b.Indices()) {
		t.Fatal("icospheres built with identical parameters differ")
	}
	pos := slices.Clone(a.Positions())
	idx := slices.Clone(a.Indices())
	a.Build()
	if !slices.Equal(pos, a.Positions()) || !slices.Equal(idx, a.Indices()) {
		t.Fatal("rebuilding an icosphere changed its buffers")
	}
}

func TestIcosphereInvalid(t *testing.T) {
	tests := []struct {
		name   string
		center ms3.Vec
		radius float32
		level  int
	}{
		{name: "zero radius", radius: 0, level: 1},
		{name: "negative radius", radius: -1, level: 1},
		{name: "nan radius", radius: math32.NaN(), level: 1},
		{name: "negative level", radius: 1, level: -1},
		{name: "level too high", radius: 1, level: MaxSubdivisions + 1},
		{name: "inf center", center: ms3.Vec{X: math32.Inf(1)}, radius: 1},
	}
	for _, test := range tests {
		_, err := NewIcosphere(test.center, test.radius, test.level)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestIcosphereEmptyBeforeBuild(t *testing.T) {
	ico, err := NewIcosphere(ms3.Vec{}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if ico.ElemCount() != 0 || len(ico.Positions()) != 0 {
		t.Fatal("icosphere has geometry before Build")
	}
}

func TestCube(t *testing.T) {
	center := ms3.Vec{X: 1, Y: 1, Z: 1}
	c, err := NewCube(center, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Positions()) != 24 || c.ElemCount() != 36 {
		t.Fatalf("got %d vertices and %d indices", len(c.Positions()), c.ElemCount())
	}
	for i := 0; i < c.NumTriangles(); i++ {
		tri := c.Triangle(i)
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		out := ms3.Sub(tri[0], center)
		if ms3.Dot(n, out) <= 0 {
			t.Errorf("cube triangle %d wound clockwise seen from outside", i)
		}
	}
	for i, p := range c.Positions() {
		d := ms3.Sub(p, center)
		if math32.Abs(d.X) != 1 || math32.Abs(d.Y) != 1 || math32.Abs(d.Z) != 1 {
			t.Errorf("cube vertex %d not on a corner: %v", i, p)
		}
	}
	if _, err = NewCube(center, -1); err == nil {
		t.Error("expected error for negative side")
	}
}

func TestSquare(t *testing.T) {
	s, err := NewSquare(ms3.Vec{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Positions()) != 4 || s.ElemCount() != 6 {
		t.Fatalf("got %d vertices and %d indices", len(s.Positions()), s.ElemCount())
	}
	for _, n := range s.Normals() {
		if n != (ms3.Vec{Z: 1}) {
			t.Fatalf("square normal %v, want +Z", n)
		}
	}
	tri := s.Triangle(0)
	n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
	if n.Z <= 0 {
		t.Fatal("square not facing +Z")
	}
	if _, err = NewSquare(ms3.Vec{}, 0); err == nil {
		t.Error("expected error for zero side")
	}
}
