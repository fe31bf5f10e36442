package scene

import (
	"fmt"
	"time"
)

// Stats measures frame times. It implements [FrameTimer].
// The zero value is ready to use and reports averages every half second.
type Stats struct {
	// Window is the period over which frame times are averaged.
	Window time.Duration
	// Now returns the current time. Defaults to [time.Now].
	Now func() time.Time

	begin      time.Time
	windowAt   time.Time
	accum      time.Duration
	frames     int
	frameTime  time.Duration
	lastPeriod time.Duration
	totalCount uint64
}

var _ FrameTimer = (*Stats)(nil)

// Begin marks the start of a frame.
func (s *Stats) Begin() {
	now := s.now()
	if s.windowAt.IsZero() {
		s.windowAt = now
	}
	s.begin = now
}

// End marks the end of a frame started with Begin.
func (s *Stats) End() {
	if s.begin.IsZero() {
		return
	}
	now := s.now()
	s.accum += now.Sub(s.begin)
	s.frames++
	s.totalCount++
	s.begin = time.Time{}
	window := s.Window
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	if elapsed := now.Sub(s.windowAt); elapsed >= window {
		s.frameTime = s.accum / time.Duration(s.frames)
		s.lastPeriod = elapsed / time.Duration(s.frames)
		s.accum = 0
		s.frames = 0
		s.windowAt = now
	}
}

// FrameTime returns the average time spent between Begin and End over the last window.
func (s *Stats) FrameTime() time.Duration { return s.frameTime }

// FPS returns the average frames per second over the last window, or 0 if
// no window has completed yet.
func (s *Stats) FPS() float64 {
	if s.lastPeriod <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.lastPeriod)
}

// Frames returns the total number of frames timed.
func (s *Stats) Frames() uint64 { return s.totalCount }

func (s *Stats) String() string {
	return fmt.Sprintf("%.0f FPS (%.1f ms)", s.FPS(), float64(s.frameTime)/float64(time.Millisecond))
}

func (s *Stats) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
