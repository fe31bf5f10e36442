// Package glshapesaux opens an interactive window to explore the shapes of
// package glshapes: pick a shape, shader, color and icosphere tessellation
// level with the keyboard and orbit the camera with the mouse.
package glshapesaux

// UI opens a window and runs the render loop until the window is closed or
// cfg.Context is done. It must be called from the main thread, see
// [runtime.LockOSThread].
func UI(cfg UIConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return ui(cfg)
}
