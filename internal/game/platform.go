package game

import "github.com/Faultbox/colere/internal/engine/input"

// Platform is the windowing side of the frame loop.
type Platform interface {
	// Now returns a monotonic time in seconds.
	Now() float64
	// PollEvents records pending input into the snapshot.
	PollEvents(in *input.Snapshot)
	ShouldClose() bool
	// Size returns the drawable size in pixels.
	Size() (int, int)
	SetPointerLock(locked bool)
}

// Headless is a Platform with a fixed-step clock and no window. It asks
// to close after Frames polls.
type Headless struct {
	Step          float64
	Frames        int
	Width, Height int

	polls  int
	locked bool
}

// NewHeadless creates a headless platform running frames steps of step seconds.
func NewHeadless(step float64, frames, width, height int) *Headless {
	return &Headless{Step: step, Frames: frames, Width: width, Height: height}
}

func (h *Headless) Now() float64 {
	return float64(h.polls) * h.Step
}

func (h *Headless) PollEvents(in *input.Snapshot) {
	h.polls++
	in.SetPointerLock(h.locked)
}

func (h *Headless) ShouldClose() bool {
	return h.polls > h.Frames
}

func (h *Headless) Size() (int, int) {
	return h.Width, h.Height
}

func (h *Headless) SetPointerLock(locked bool) {
	h.locked = locked
}
