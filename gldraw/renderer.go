//go:build !tinygo && cgo

package gldraw

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/glshapes"
	"github.com/soypat/glshapes/camera"
	"github.com/soypat/glshapes/scene"
	"github.com/soypat/glshapes/shaders"
)

// Config configures a [Renderer].
type Config struct {
	// Width and Height of the framebuffer in pixels.
	Width, Height int
	// ClearColor is the RGBA color the frame is cleared to.
	ClearColor [4]float32
	// OverlayMargin is the distance in pixels between the overlay and the top left corner.
	OverlayMargin int
}

// program is a linked shader program with its resolved locations.
// Locations are -1 when the program does not use them.
type program struct {
	prog      glgl.Program
	posAttrib int32
	norAttrib int32
	viewProj  int32
	model     int32
	color     int32
	time      int32
	eye       int32
	rect      int32
	tex       int32
}

// Renderer draws drawables with the scene shaders. All methods must be
// called from the thread owning the OpenGL context.
type Renderer struct {
	progs   map[scene.Shader]*program
	overlay *program
	quad    *Buffers
	tex     uint32
	texW    int
	texH    int
	width   int
	height  int
	margin  int
	clear   [4]float32
	live    int
}

var _ scene.Renderer = (*Renderer)(nil)

// NewRenderer compiles every scene shader and the overlay program.
// A compile or link failure is returned as an error.
func NewRenderer(cfg Config) (_ *Renderer, err error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("zero or negative framebuffer size")
	}
	r := &Renderer{
		progs:  make(map[scene.Shader]*program),
		clear:  cfg.ClearColor,
		margin: cfg.OverlayMargin,
	}
	defer func() {
		if err != nil {
			r.Delete()
		}
	}()
	for _, sh := range scene.Shaders() {
		p, err := compile(sh.String())
		if err != nil {
			return nil, err
		}
		r.progs[sh] = p
	}
	r.overlay, err = compile(shaders.Overlay)
	if err != nil {
		return nil, err
	}
	sq, err := glshapes.NewSquare(ms3.Vec{}, 2)
	if err != nil {
		return nil, err
	}
	r.quad, err = upload(sq)
	if err != nil {
		return nil, fmt.Errorf("uploading overlay quad: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	r.SetViewport(cfg.Width, cfg.Height)
	return r, glgl.Err()
}

func compile(name string) (*program, error) {
	src, err := shaders.Load(name)
	if err != nil {
		return nil, err
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   src.Vertex,
		Fragment: src.Fragment,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling %s program: %w", name, err)
	}
	p := &program{
		prog:      prog,
		posAttrib: attribLocation(prog, "vs_Pos\x00"),
		norAttrib: attribLocation(prog, "vs_Nor\x00"),
		viewProj:  uniformLocation(prog, "u_ViewProj\x00"),
		model:     uniformLocation(prog, "u_Model\x00"),
		color:     uniformLocation(prog, "u_Color\x00"),
		time:      uniformLocation(prog, "u_Time\x00"),
		eye:       uniformLocation(prog, "u_EyePos\x00"),
		rect:      uniformLocation(prog, "u_Rect\x00"),
		tex:       uniformLocation(prog, "u_Tex\x00"),
	}
	if p.posAttrib < 0 {
		prog.Delete()
		return nil, fmt.Errorf("%s program has no vs_Pos attribute", name)
	}
	return p, nil
}

// The GLSL compiler drops unused variables so missing names are not errors.
func uniformLocation(prog glgl.Program, name string) int32 {
	loc, err := prog.UniformLocation(name)
	if err != nil {
		return -1
	}
	return loc
}

func attribLocation(prog glgl.Program, name string) int32 {
	loc, err := prog.AttribLocation(name)
	if err != nil {
		return -1
	}
	return int32(loc)
}

// SetViewport resizes the drawing area to width x height pixels.
func (r *Renderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetClearColor sets the color used by Clear.
func (r *Renderer) SetClearColor(c [4]float32) { r.clear = c }

// Clear clears the color and depth buffers.
func (r *Renderer) Clear() {
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Render draws every buffer set with the program of sh.
func (r *Renderer) Render(cam *camera.Camera, sh scene.Shader, bufs []scene.Buffers, color [4]float32, frame uint64) error {
	p, ok := r.progs[sh]
	if !ok {
		return fmt.Errorf("no program for %s", sh)
	}
	p.prog.Bind()
	defer p.prog.Unbind()
	vp := cam.ViewProj()
	model := mgl32.Ident4()
	eye := cam.Eye()
	gl.UniformMatrix4fv(p.viewProj, 1, false, &vp[0])
	gl.UniformMatrix4fv(p.model, 1, false, &model[0])
	gl.Uniform4f(p.color, color[0], color[1], color[2], color[3])
	gl.Uniform1f(p.time, float32(frame))
	gl.Uniform3f(p.eye, eye[0], eye[1], eye[2])
	for _, b := range bufs {
		gb, ok := b.(*Buffers)
		if !ok {
			return fmt.Errorf("buffers of type %T not created by gldraw", b)
		} else if gb.vao == 0 {
			return errors.New("render with released buffers")
		}
		gb.bind(p)
		gl.DrawElements(gl.TRIANGLES, gb.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
	return glgl.Err()
}

// SetOverlay uploads img as the overlay texture drawn by DrawOverlay.
func (r *Renderer) SetOverlay(img *image.RGBA) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("empty overlay image")
	} else if img.Stride != 4*b.Dx() {
		return errors.New("overlay image must not be a sub-image")
	}
	if r.tex == 0 {
		gl.GenTextures(1, &r.tex)
		if r.tex == 0 {
			return glErrOrMessage("zero id set by GL creating overlay texture")
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.texW, r.texH = b.Dx(), b.Dy()
	return glgl.Err()
}

// DrawOverlay draws the overlay texture at the top left corner of the viewport.
// It does nothing if no overlay has been set.
func (r *Renderer) DrawOverlay() error {
	if r.tex == 0 || r.width == 0 {
		return nil
	}
	p := r.overlay
	p.prog.Bind()
	defer p.prog.Unbind()
	w, h := float32(r.width), float32(r.height)
	x0 := -1 + 2*float32(r.margin)/w
	y1 := 1 - 2*float32(r.margin)/h
	x1 := x0 + 2*float32(r.texW)/w
	y0 := y1 - 2*float32(r.texH)/h
	gl.Uniform4f(p.rect, x0, y0, x1, y1)
	gl.Uniform1i(p.tex, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.quad.bind(p)
	gl.DrawElements(gl.TRIANGLES, r.quad.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return glgl.Err()
}

// LiveBuffers returns the number of uploaded buffer sets not yet released.
func (r *Renderer) LiveBuffers() int { return r.live }

// Delete frees all programs and overlay resources. Buffers returned by
// Upload must be released separately.
func (r *Renderer) Delete() {
	for sh, p := range r.progs {
		p.prog.Delete()
		delete(r.progs, sh)
	}
	if r.overlay != nil {
		r.overlay.prog.Delete()
		r.overlay = nil
	}
	if r.quad != nil {
		r.quad.delete()
		r.quad = nil
	}
	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
		r.tex = 0
	}
}
