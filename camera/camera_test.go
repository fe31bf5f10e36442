package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Eye())
	assert.Equal(t, float32(1), c.Aspect())
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assert.True(t, c.View().ApproxEqual(want))
	assert.True(t, c.Projection().ApproxEqual(mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 1000)))
}

func TestSetAspectRatioRefreshesProjection(t *testing.T) {
	c := New(Config{})
	before := c.Projection()
	c.SetAspectRatio(16. / 9)
	after := c.Projection()
	require.False(t, before.ApproxEqual(after), "projection not refreshed on aspect change")
	assert.True(t, after.ApproxEqual(mgl32.Perspective(mgl32.DegToRad(45), 16./9, 0.1, 1000)))

	// Minimized windows report a zero sized framebuffer.
	c.SetAspectRatio(0)
	assert.Equal(t, float32(16./9), c.Aspect())
	assert.True(t, after.ApproxEqual(c.Projection()))
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := New(Config{Eye: mgl32.Vec3{0, 0, 4}})
	c.Orbit(0.7, 0.3)
	c.Update()
	assert.InDelta(t, 4, c.Distance(), 1e-4)
	// View matrix maps the eye to the origin.
	eye := c.View().Mul4x1(c.Eye().Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-4)
}

func TestOrbitClampsPitch(t *testing.T) {
	c := New(Config{Eye: mgl32.Vec3{0, 0, 2}})
	c.Orbit(0, 10)
	eye := c.Eye()
	assert.Less(t, eye.Y(), float32(2))
	assert.Greater(t, mgl32.Vec2{eye.X(), eye.Z()}.Len(), float32(0), "eye reached the pole")
	c.Orbit(0, -20)
	assert.Less(t, c.Eye().Y(), float32(0))
	assert.InDelta(t, 2, c.Distance(), 1e-4)
}

func TestZoomClamps(t *testing.T) {
	c := New(Config{Eye: mgl32.Vec3{0, 0, 10}, MinDistance: 1, MaxDistance: 20})
	c.Zoom(1)
	assert.Less(t, c.Distance(), float32(10))
	for i := 0; i < 200; i++ {
		c.Zoom(5)
	}
	assert.InDelta(t, 1, c.Distance(), 1e-5)
	for i := 0; i < 200; i++ {
		c.Zoom(-5)
	}
	assert.InDelta(t, 20, c.Distance(), 1e-4)
}

func TestViewProj(t *testing.T) {
	c := New(Config{Aspect: 2})
	assert.True(t, c.ViewProj().ApproxEqual(c.Projection().Mul4(c.View())))
}
