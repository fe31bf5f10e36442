package scene

import (
	"context"
)

// Host drives the loop. It owns the window or page the loop renders to.
type Host interface {
	// NextFrame waits for the next frame, processing pending input, and returns
	// the controls to render it with. ok is false once the host is torn down.
	NextFrame() (c Controls, ok bool)
	// EndFrame presents the rendered frame.
	EndFrame()
}

// Run calls l.Tick once per host frame until the host closes or ctx is done.
// Frames that fail to render are skipped and logged. Run returns ctx.Err()
// on cancellation and nil when the host closes.
func Run(ctx context.Context, host Host, l *Loop) error {
	var lastErr string
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c, ok := host.NextFrame()
		if !ok {
			return nil
		}
		err := l.Tick(c)
		if err != nil {
			// Avoid flooding the log with the same error every frame.
			if msg := err.Error(); msg != lastErr {
				lastErr = msg
				l.logf("skipping frame: %s", msg)
			}
			continue
		}
		lastErr = ""
		host.EndFrame()
	}
}
