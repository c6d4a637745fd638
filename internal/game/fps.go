package game

// DefaultFPSWindow is how much frame time is averaged per FPS report.
const DefaultFPSWindow = 0.3

// FPSCounter averages frames per second over a fixed window of frame time.
type FPSCounter struct {
	Accum   float32
	Samples uint32
	Average float32
	Window  float32
}

// NewFPSCounter creates a counter. A non-positive window uses the default.
func NewFPSCounter(window float32) FPSCounter {
	if window <= 0 {
		window = DefaultFPSWindow
	}
	return FPSCounter{Window: window}
}

// Tick adds one frame of dt seconds. Once the accumulated time passes the
// window it computes a new Average, keeps the overshoot for the next window
// and returns true.
func (f *FPSCounter) Tick(dt float32) bool {
	f.Accum += dt
	f.Samples++
	if f.Accum <= f.Window {
		return false
	}
	f.Average = float32(f.Samples) / f.Accum
	f.Accum -= f.Window
	f.Samples = 0
	return true
}
