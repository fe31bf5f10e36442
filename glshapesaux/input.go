package glshapesaux

import (
	"github.com/soypat/glshapes/scene"
)

// colorStep is how much a color channel changes per key press.
const colorStep = 5

// action is a user input mapped from a key press.
type action uint8

const (
	actNone action = iota
	actTessellationUp
	actTessellationDown
	actShapeIcosphere
	actShapeCube
	actShaderLambert
	actShaderGradient
	actShaderNoise
	actRedUp
	actRedDown
	actGreenUp
	actGreenDown
	actBlueUp
	actBlueDown
	actLoadScene
	actExportSTL
	actToggleStats
	actQuit
)

// apply mutates the controls according to a. Actions that do not affect
// the controls are ignored.
func (a action) apply(c *scene.Controls) {
	switch a {
	case actTessellationUp:
		c.Tessellation = min(c.Tessellation+1, scene.MaxTessellation)
	case actTessellationDown:
		c.Tessellation = max(c.Tessellation-1, 0)
	case actShapeIcosphere:
		c.Shape = scene.ShapeIcosphere
	case actShapeCube:
		c.Shape = scene.ShapeCube
	case actShaderLambert:
		c.Shader = scene.ShaderLambert
	case actShaderGradient:
		c.Shader = scene.ShaderGradient
	case actShaderNoise:
		c.Shader = scene.ShaderNoise
	case actRedUp:
		c.Color.R = addSat(c.Color.R, colorStep)
	case actRedDown:
		c.Color.R = addSat(c.Color.R, -colorStep)
	case actGreenUp:
		c.Color.G = addSat(c.Color.G, colorStep)
	case actGreenDown:
		c.Color.G = addSat(c.Color.G, -colorStep)
	case actBlueUp:
		c.Color.B = addSat(c.Color.B, colorStep)
	case actBlueDown:
		c.Color.B = addSat(c.Color.B, -colorStep)
	case actLoadScene:
		c.Reload = true
	}
}

func addSat(v uint8, delta int) uint8 {
	return uint8(min(max(int(v)+delta, 0), 255))
}

// repeatable reports whether holding the key down repeats the action.
func (a action) repeatable() bool {
	switch a {
	case actTessellationUp, actTessellationDown,
		actRedUp, actRedDown, actGreenUp, actGreenDown, actBlueUp, actBlueDown:
		return true
	}
	return false
}

const helpText = `controls:
  up/down      tessellation level
  1/2          icosphere/cube
  L/G/N        lambert/gradient/noise shader
  Z/X/C        raise red/green/blue, hold shift to lower
  space        load scene
  P            export shape to STL
  F            toggle frame rate
  mouse drag   orbit, scroll to zoom
  esc          quit`
