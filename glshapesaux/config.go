package glshapesaux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/glshapes/scene"
)

// UIConfig configures the interactive window opened by [UI].
type UIConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// Controls are the initial user controls.
	Controls scene.Controls `toml:"controls"`
	// STLPath is the file the active shape is exported to when pressing P.
	STLPath string `toml:"stl_path"`
	// HideStats hides the frame rate overlay.
	HideStats bool `toml:"hide_stats"`
	// Silent disables logging.
	Silent bool `toml:"silent"`
	// Context cancels the render loop when done. May be nil.
	Context context.Context `toml:"-"`
}

// DefaultUIConfig returns the configuration used when no file is given.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Width:    800,
		Height:   600,
		Title:    "glshapes",
		Controls: scene.DefaultControls(),
		STLPath:  "shape.stl",
	}
}

// LoadUIConfig decodes a TOML configuration from r on top of [DefaultUIConfig].
// Unknown keys are an error.
//
//	width = 1024
//	height = 768
//	[controls]
//	tessellation = 3
//	shape = "cube"
//	shader = "noise"
//	color = { r = 0, g = 128, b = 255 }
func LoadUIConfig(r io.Reader) (UIConfig, error) {
	cfg := DefaultUIConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return UIConfig{}, fmt.Errorf("decoding UI config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return UIConfig{}, err
	}
	return cfg, nil
}

// LoadUIConfigFile is a convenience wrapper around [LoadUIConfig].
func LoadUIConfigFile(filename string) (UIConfig, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return UIConfig{}, err
	}
	defer fp.Close()
	return LoadUIConfig(fp)
}

// Validate checks that the window dimensions and controls are usable.
func (cfg UIConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("zero or negative window dimension")
	}
	c := cfg.Controls
	if c.Tessellation < 0 || c.Tessellation > scene.MaxTessellation {
		return fmt.Errorf("tessellation %d out of range [0, %d]", c.Tessellation, scene.MaxTessellation)
	} else if !c.Shape.IsValid() {
		return fmt.Errorf("invalid %s", c.Shape)
	} else if !c.Shader.IsValid() {
		return fmt.Errorf("invalid %s", c.Shader)
	}
	return nil
}
