package scene

import (
	"fmt"
)

// MaxTessellation is the highest icosphere subdivision level selectable by controls.
const MaxTessellation = 8

// Shape selects the drawable rendered by the [Loop].
type Shape uint8

const (
	ShapeIcosphere Shape = iota
	ShapeCube
	numShapes
)

// Shader selects the shading program used to draw the active shape.
type Shader uint8

const (
	ShaderLambert Shader = iota
	ShaderGradient
	ShaderNoise
	numShaders
)

// RGB is a base color with 8 bits per channel.
type RGB struct {
	R uint8 `toml:"r"`
	G uint8 `toml:"g"`
	B uint8 `toml:"b"`
}

// Vec4 returns the color as normalized RGBA components with full opacity.
func (c RGB) Vec4() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}

// Controls is the user editable state read by the [Loop] every frame.
type Controls struct {
	// Tessellation is the icosphere subdivision level in [0, MaxTessellation].
	Tessellation int    `toml:"tessellation"`
	Shape        Shape  `toml:"shape"`
	Shader       Shader `toml:"shader"`
	Color        RGB    `toml:"color"`
	// Reload requests all shapes be rebuilt from scratch on the next tick.
	// Hosts should clear it once it has been passed to the loop.
	Reload bool `toml:"-"`
}

// DefaultControls returns the controls shown when the application starts.
func DefaultControls() Controls {
	return Controls{
		Tessellation: 5,
		Shape:        ShapeIcosphere,
		Shader:       ShaderLambert,
		Color:        RGB{R: 255},
	}
}

// Sanitize returns a copy of c that is safe to render: tessellation is
// clamped to its valid range and unknown shape or shader values are
// replaced by the icosphere and lambert defaults.
func (c Controls) Sanitize() Controls {
	c.Tessellation = min(max(c.Tessellation, 0), MaxTessellation)
	if !c.Shape.IsValid() {
		c.Shape = ShapeIcosphere
	}
	if !c.Shader.IsValid() {
		c.Shader = ShaderLambert
	}
	return c
}

// IsValid reports whether s is a known shape.
func (s Shape) IsValid() bool { return s < numShapes }

func (s Shape) String() string {
	switch s {
	case ShapeIcosphere:
		return "icosphere"
	case ShapeCube:
		return "cube"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Shape) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid shape %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Shape) UnmarshalText(text []byte) error {
	for v := Shape(0); v < numShapes; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", text)
}

// Shapes returns all selectable shapes.
func Shapes() []Shape {
	return []Shape{ShapeIcosphere, ShapeCube}
}

// IsValid reports whether s is a known shader.
func (s Shader) IsValid() bool { return s < numShaders }

// String returns the name of the shader program, which is also the name of
// its source files.
func (s Shader) String() string {
	switch s {
	case ShaderLambert:
		return "lambert"
	case ShaderGradient:
		return "gradient"
	case ShaderNoise:
		return "noise"
	}
	return fmt.Sprintf("Shader(%d)", uint8(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Shader) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid shader %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Shader) UnmarshalText(text []byte) error {
	for v := Shader(0); v < numShaders; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown shader %q", text)
}

// Shaders returns all selectable shaders.
func Shaders() []Shader {
	return []Shader{ShaderLambert, ShaderGradient, ShaderNoise}
}
