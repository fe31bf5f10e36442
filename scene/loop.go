// Package scene implements the per-frame control loop that decides which
// shape and shader to draw and keeps GPU resources in sync with the user controls.
package scene

import (
	"errors"
	"fmt"
	"log"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshapes"
	"github.com/soypat/glshapes/camera"
)

// Renderer is the boundary to the graphics context. Implementations mutate
// GPU state and are not safe for concurrent use; all calls are made from the
// goroutine driving the [Loop].
type Renderer interface {
	// Clear resets the frame buffer to the clear color.
	Clear()
	// Upload creates GPU buffers holding the drawable's geometry.
	Upload(d glshapes.Drawable) (Buffers, error)
	// Render binds the camera matrices, color and frame counter to the shader
	// and issues one indexed draw call per buffer set.
	Render(cam *camera.Camera, sh Shader, bufs []Buffers, color [4]float32, frame uint64) error
}

// Buffers are the GPU resources of one uploaded drawable.
type Buffers interface {
	// Elements returns the number of indices drawn.
	Elements() int
	// Release frees the GPU resources. Buffers must not be used after release.
	Release() error
}

// FrameTimer receives timing calls once per frame.
type FrameTimer interface {
	Begin()
	End()
}

// LoopConfig configures a [Loop].
type LoopConfig struct {
	Renderer Renderer
	Camera   *camera.Camera
	// Center and Radius of the icosphere. Radius defaults to 1.
	Center ms3.Vec
	Radius float32
	// CubeSide is the cube edge length. Defaults to 2.
	CubeSide float32
	// Timer is optional.
	Timer FrameTimer
	// Log receives state transition messages. Nil disables logging.
	Log *log.Logger
}

// Loop is the frame state machine. Each call to Tick reads the controls,
// regenerates or switches geometry if needed and renders one frame.
type Loop struct {
	r      Renderer
	cam    *camera.Camera
	timer  FrameTimer
	log    *log.Logger
	center ms3.Vec
	radius float32
	side   float32

	ico *glshapes.Icosphere
	// level the icosphere was built with. -1 when no icosphere exists.
	level int
	cube  *glshapes.Cube

	active     Shape
	activeBufs Buffers
	frame      uint64
	regens     int
	// warned keeps track of invalid control values already logged.
	warned Controls
}

// NewLoop creates a loop. Geometry is generated lazily on the first Tick.
func NewLoop(cfg LoopConfig) (*Loop, error) {
	if cfg.Renderer == nil {
		return nil, errors.New("nil renderer")
	} else if cfg.Camera == nil {
		return nil, errors.New("nil camera")
	}
	if cfg.Radius == 0 {
		cfg.Radius = 1
	}
	if cfg.CubeSide == 0 {
		cfg.CubeSide = 2
	}
	l := &Loop{
		r:      cfg.Renderer,
		cam:    cfg.Camera,
		timer:  cfg.Timer,
		log:    cfg.Log,
		center: cfg.Center,
		radius: cfg.Radius,
		side:   cfg.CubeSide,
		level:  -1,
	}
	// Validate dimensions up front so Tick only fails on GPU errors.
	if _, err := glshapes.NewIcosphere(l.center, l.radius, 0); err != nil {
		return nil, err
	}
	if _, err := glshapes.NewCube(l.center, l.side); err != nil {
		return nil, err
	}
	return l, nil
}

// Tick advances the loop by one frame using controls c.
func (l *Loop) Tick(c Controls) (err error) {
	if l.timer != nil {
		l.timer.Begin()
		defer l.timer.End()
	}
	c = l.sanitize(c)
	if c.Reload {
		if err = l.LoadScene(c); err != nil {
			return err
		}
	}
	if c.Tessellation != l.level {
		if err = l.regenerate(c.Tessellation); err != nil {
			return err
		}
	}
	if c.Shape != l.active {
		l.logf("shape %s -> %s", l.active, c.Shape)
		if err = l.releaseActive(); err != nil {
			return err
		}
		l.active = c.Shape
	}
	if l.activeBufs == nil {
		d, err := l.drawable(c.Shape)
		if err != nil {
			return err
		}
		l.activeBufs, err = l.r.Upload(d)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", c.Shape, err)
		}
	}
	l.cam.Update()
	l.r.Clear()
	err = l.r.Render(l.cam, c.Shader, []Buffers{l.activeBufs}, c.Color.Vec4(), l.frame)
	if err != nil {
		return fmt.Errorf("rendering frame %d: %w", l.frame, err)
	}
	l.frame++
	return nil
}

// LoadScene discards all geometry and GPU buffers and rebuilds every shape from scratch.
func (l *Loop) LoadScene(c Controls) error {
	c = l.sanitize(c)
	l.logf("loading scene")
	if err := l.releaseActive(); err != nil {
		return err
	}
	l.ico = nil
	l.cube = nil
	l.level = -1
	if err := l.regenerate(c.Tessellation); err != nil {
		return err
	}
	cube, err := glshapes.NewCube(l.center, l.side)
	if err != nil {
		return err
	}
	l.cube = cube
	return nil
}

// Close releases the GPU buffers held by the loop.
func (l *Loop) Close() error {
	return l.releaseActive()
}

// Frame returns the number of frames rendered.
func (l *Loop) Frame() uint64 { return l.frame }

// Regenerations returns the number of times the icosphere has been built.
func (l *Loop) Regenerations() int { return l.regens }

// Active returns the shape drawn on the last frame.
func (l *Loop) Active() Shape { return l.active }

// Icosphere returns the current icosphere, which may be nil before the first tick.
func (l *Loop) Icosphere() *glshapes.Icosphere { return l.ico }

// Drawable returns the geometry of the shape drawn on the last frame.
func (l *Loop) Drawable() (glshapes.Drawable, error) {
	return l.drawable(l.active)
}

// regenerate builds a new icosphere at level, freeing the GPU resources of the previous one.
func (l *Loop) regenerate(level int) error {
	ico, err := glshapes.NewIcosphere(l.center, l.radius, level)
	if err != nil {
		return err
	}
	if l.active == ShapeIcosphere {
		if err = l.releaseActive(); err != nil {
			return err
		}
	}
	ico.Build()
	l.logf("tessellation %d -> %d: %d triangles", l.level, level, ico.NumTriangles())
	l.ico = ico
	l.level = level
	l.regens++
	return nil
}

func (l *Loop) drawable(s Shape) (glshapes.Drawable, error) {
	switch s {
	case ShapeIcosphere:
		if l.ico == nil {
			return nil, errors.New("icosphere not generated")
		}
		return l.ico, nil
	case ShapeCube:
		if l.cube == nil {
			cube, err := glshapes.NewCube(l.center, l.side)
			if err != nil {
				return nil, err
			}
			l.cube = cube
		}
		return l.cube, nil
	}
	return nil, fmt.Errorf("unknown shape %s", s)
}

func (l *Loop) releaseActive() error {
	if l.activeBufs == nil {
		return nil
	}
	err := l.activeBufs.Release()
	l.activeBufs = nil
	if err != nil {
		return fmt.Errorf("releasing %s buffers: %w", l.active, err)
	}
	return nil
}

func (l *Loop) sanitize(c Controls) Controls {
	s := c.Sanitize()
	if s.Shape != c.Shape && l.warned.Shape != c.Shape {
		l.warned.Shape = c.Shape
		l.logf("unknown %s, drawing %s", c.Shape, s.Shape)
	}
	if s.Shader != c.Shader && l.warned.Shader != c.Shader {
		l.warned.Shader = c.Shader
		l.logf("unknown %s, using %s", c.Shader, s.Shader)
	}
	return s
}

func (l *Loop) logf(format string, args ...any) {
	if l.log != nil {
		l.log.Printf(format, args...)
	}
}
