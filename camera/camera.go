// Package camera implements a perspective orbit camera holding the view and
// projection matrices used to render a scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = math32.Pi/2 - 0.01

// Config configures a [Camera]. Zero fields are replaced by defaults.
type Config struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	// FOV is the vertical field of view in radians.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
	// MinDistance and MaxDistance clamp the eye to target distance when zooming.
	MinDistance float32
	MaxDistance float32
}

// Camera holds eye position, target, up vector, field of view, aspect ratio
// and near/far planes along with the matrices derived from them.
type Camera struct {
	eye, target, up mgl32.Vec3
	fov, aspect     float32
	near, far       float32
	minDist         float32
	maxDist         float32

	view mgl32.Mat4
	proj mgl32.Mat4
}

// New creates a camera. The returned camera has both its view and projection
// matrices computed.
func New(cfg Config) *Camera {
	if cfg.Eye == (mgl32.Vec3{}) {
		cfg.Eye = mgl32.Vec3{0, 0, 5}
	}
	if cfg.Up == (mgl32.Vec3{}) {
		cfg.Up = mgl32.Vec3{0, 1, 0}
	}
	if cfg.FOV <= 0 {
		cfg.FOV = mgl32.DegToRad(45)
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = 1
	}
	if cfg.Near <= 0 {
		cfg.Near = 0.1
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = 1000
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = cfg.Near
	}
	if cfg.MaxDistance <= cfg.MinDistance {
		cfg.MaxDistance = cfg.Far / 2
	}
	c := &Camera{
		eye:     cfg.Eye,
		target:  cfg.Target,
		up:      cfg.Up,
		fov:     cfg.FOV,
		aspect:  cfg.Aspect,
		near:    cfg.Near,
		far:     cfg.Far,
		minDist: cfg.MinDistance,
		maxDist: cfg.MaxDistance,
	}
	c.Update()
	c.UpdateProjectionMatrix()
	return c
}

// Update recomputes the view matrix from the current eye, target and up vector.
func (c *Camera) Update() {
	c.view = mgl32.LookAtV(c.eye, c.target, c.up)
}

// SetAspectRatio sets the width/height ratio of the viewport and refreshes
// the projection matrix. Non-positive ratios are ignored, which happens when
// a window is minimized.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 || math32.IsNaN(aspect) || math32.IsInf(aspect, 0) {
		return
	}
	c.aspect = aspect
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix recomputes the perspective projection matrix.
func (c *Camera) UpdateProjectionMatrix() {
	c.proj = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}

// Orbit rotates the eye around the target by yaw radians about the up axis
// and pitch radians towards it. Pitch is clamped short of the poles so the
// view never flips. Call Update afterwards to refresh the view matrix.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	offset := c.eye.Sub(c.target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	yaw := math32.Atan2(offset.X(), offset.Z())
	pitch := math32.Asin(clamp(offset.Y()/dist, -1, 1))
	yaw += dyaw
	pitch = clamp(pitch+dpitch, -maxPitch, maxPitch)
	c.eye = c.target.Add(spherical(dist, yaw, pitch))
}

// Zoom moves the eye towards the target for positive delta and away for
// negative delta, proportional to the current distance.
func (c *Camera) Zoom(delta float32) {
	offset := c.eye.Sub(c.target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	newDist := clamp(dist-delta*(dist*0.1+0.01), c.minDist, c.maxDist)
	c.eye = c.target.Add(offset.Mul(newDist / dist))
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 { return c.eye }

// Target returns the point the camera looks at.
func (c *Camera) Target() mgl32.Vec3 { return c.target }

// SetEye sets the camera position. Call Update afterwards to refresh the view matrix.
func (c *Camera) SetEye(eye mgl32.Vec3) { c.eye = eye }

// Distance returns the distance between eye and target.
func (c *Camera) Distance() float32 { return c.eye.Sub(c.target).Len() }

// Aspect returns the current aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// View returns the view matrix as of the last call to Update.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.proj }

// ViewProj returns the projection matrix multiplied by the view matrix.
func (c *Camera) ViewProj() mgl32.Mat4 { return c.proj.Mul4(c.view) }

func spherical(r, yaw, pitch float32) mgl32.Vec3 {
	cp := math32.Cos(pitch)
	return mgl32.Vec3{
		r * cp * math32.Sin(yaw),
		r * math32.Sin(pitch),
		r * cp * math32.Cos(yaw),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
