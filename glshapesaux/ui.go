//go:build !tinygo && cgo

package glshapesaux

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glshapes/camera"
	"github.com/soypat/glshapes/gldraw"
	"github.com/soypat/glshapes/glrender"
	"github.com/soypat/glshapes/overlay"
	"github.com/soypat/glshapes/scene"
)

func ui(cfg UIConfig) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.Silent {
		logger = log.New(io.Discard, "", 0)
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()
	fbw, fbh := window.GetFramebufferSize()
	renderer, err := gldraw.NewRenderer(gldraw.Config{
		Width:         fbw,
		Height:        fbh,
		ClearColor:    [4]float32{0.1, 0.1, 0.12, 1},
		OverlayMargin: 8,
	})
	if err != nil {
		return err
	}
	defer renderer.Delete()

	cam := camera.New(camera.Config{
		Eye:         mgl32.Vec3{0, 0, 5},
		Aspect:      float32(fbw) / float32(fbh),
		MinDistance: 1.2,
		MaxDistance: 50,
	})
	stats := &scene.Stats{}
	loop, err := scene.NewLoop(scene.LoopConfig{
		Renderer: renderer,
		Camera:   cam,
		Radius:   1,
		CubeSide: 1.5,
		Timer:    stats,
		Log:      logger,
	})
	if err != nil {
		return err
	}
	defer loop.Close()
	txt, err := overlay.New(overlay.Config{Size: 14, Padding: 4})
	if err != nil {
		return err
	}

	h := &host{
		window:    window,
		renderer:  renderer,
		stats:     stats,
		txt:       txt,
		controls:  cfg.Controls.Sanitize(),
		showStats: !cfg.HideStats,
		log:       logger,
	}
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		renderer.SetViewport(width, height)
		if height > 0 {
			cam.SetAspectRatio(float32(width) / float32(height))
		}
	})
	h.setMouseCallbacks(cam)
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, act glfw.Action, mods glfw.ModifierKey) {
		if act == glfw.Release {
			return
		}
		a := keyAction(key, mods)
		if act == glfw.Repeat && !a.repeatable() {
			return
		}
		switch a {
		case actQuit:
			w.SetShouldClose(true)
		case actToggleStats:
			h.showStats = !h.showStats
		case actExportSTL:
			if err := exportSTL(cfg.STLPath, loop); err != nil {
				logger.Println("exporting STL:", err)
			} else {
				logger.Println("wrote", cfg.STLPath)
			}
		default:
			a.apply(&h.controls)
		}
	})
	logger.Println(helpText)

	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return scene.Run(ctx, h, loop)
}

// host adapts a GLFW window to [scene.Host].
type host struct {
	window    *glfw.Window
	renderer  *gldraw.Renderer
	stats     *scene.Stats
	txt       *overlay.Text
	lastImg   *image.RGBA
	controls  scene.Controls
	showStats bool
	log       *log.Logger
}

func (h *host) NextFrame() (scene.Controls, bool) {
	glfw.PollEvents()
	if h.window.ShouldClose() {
		return scene.Controls{}, false
	}
	c := h.controls
	// Load Scene is a one-shot trigger.
	h.controls.Reload = false
	return c, true
}

func (h *host) EndFrame() {
	if h.showStats {
		if err := h.drawStats(); err != nil {
			h.log.Println("drawing stats:", err)
			h.showStats = false
		}
	}
	h.window.SwapBuffers()
}

func (h *host) drawStats() error {
	img, err := h.txt.Render(h.stats.String())
	if err != nil {
		return err
	}
	if img != h.lastImg {
		if err = h.renderer.SetOverlay(img); err != nil {
			return err
		}
		h.lastImg = img
	}
	return h.renderer.DrawOverlay()
}

func (h *host) setMouseCallbacks(cam *camera.Camera) {
	const sensitivity = 0.005
	var (
		lastMouseX, lastMouseY float64
		firstMouseMove         = true
		isMousePressed         = false
	)
	window := h.window
	window.SetCursorPosCallback(func(w *glfw.Window, xpos float64, ypos float64) {
		if !isMousePressed {
			return
		}
		if firstMouseMove {
			lastMouseX = xpos
			lastMouseY = ypos
			firstMouseMove = false
		}
		deltaX := xpos - lastMouseX
		deltaY := ypos - lastMouseY
		// Dragging right moves the eye left around the target.
		cam.Orbit(-float32(deltaX*sensitivity), float32(deltaY*sensitivity))
		lastMouseX = xpos
		lastMouseY = ypos
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		cam.Zoom(float32(yoff))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			isMousePressed = true
			firstMouseMove = true
			window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else if action == glfw.Release {
			isMousePressed = false
			window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	})
}

func keyAction(key glfw.Key, mods glfw.ModifierKey) action {
	shift := mods&glfw.ModShift != 0
	pick := func(up, down action) action {
		if shift {
			return down
		}
		return up
	}
	switch key {
	case glfw.KeyUp:
		return actTessellationUp
	case glfw.KeyDown:
		return actTessellationDown
	case glfw.Key1:
		return actShapeIcosphere
	case glfw.Key2:
		return actShapeCube
	case glfw.KeyL:
		return actShaderLambert
	case glfw.KeyG:
		return actShaderGradient
	case glfw.KeyN:
		return actShaderNoise
	case glfw.KeyZ:
		return pick(actRedUp, actRedDown)
	case glfw.KeyX:
		return pick(actGreenUp, actGreenDown)
	case glfw.KeyC:
		return pick(actBlueUp, actBlueDown)
	case glfw.KeySpace:
		return actLoadScene
	case glfw.KeyP:
		return actExportSTL
	case glfw.KeyF:
		return actToggleStats
	case glfw.KeyEscape:
		return actQuit
	}
	return actNone
}

func exportSTL(filename string, loop *scene.Loop) error {
	d, err := loop.Drawable()
	if err != nil {
		return err
	}
	mr, err := glrender.NewMeshReader(d)
	if err != nil {
		return err
	}
	tris, err := glrender.RenderAll(mr, nil)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	_, err = glrender.WriteBinarySTL(fp, tris)
	if err != nil {
		return err
	}
	return fp.Sync()
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	// Pace frames to the display refresh rate.
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("OpenGL 4.6 not supported: %w", err)
	}
	return window, glfw.Terminate, nil
}
