// Package shaders embeds the GLSL programs used to draw shapes.
// Every program is a vertex and fragment pair stored as <name>.vert.glsl and <name>.frag.glsl.
package shaders

import (
	"embed"
	"fmt"
)

//go:embed *.glsl
var files embed.FS

// Overlay is the name of the program that draws textured screen rectangles.
const Overlay = "overlay"

// Source holds a vertex and fragment shader pair.
// Both sources are NUL terminated as required by the OpenGL bindings.
type Source struct {
	Vertex   string
	Fragment string
}

// Names returns the names of the programs used to shade shapes.
func Names() []string {
	return []string{"lambert", "gradient", "noise"}
}

// Load returns the source of the program with the given name.
func Load(name string) (Source, error) {
	vert, err := files.ReadFile(name + ".vert.glsl")
	if err != nil {
		return Source{}, fmt.Errorf("loading %q vertex shader: %w", name, err)
	}
	frag, err := files.ReadFile(name + ".frag.glsl")
	if err != nil {
		return Source{}, fmt.Errorf("loading %q fragment shader: %w", name, err)
	}
	return Source{
		Vertex:   string(vert) + "\x00",
		Fragment: string(frag) + "\x00",
	}, nil
}
