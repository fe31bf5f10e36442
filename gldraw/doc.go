// Package gldraw implements [scene.Renderer] on top of an OpenGL 4.6 core context with GLSL 410 shaders.
// It requires cgo and a current OpenGL context on the calling thread.
package gldraw
