// Package input holds the per-frame input snapshot shared between the
// platform layer, which records key and mouse events, and the simulation,
// which reads them once per frame.
package input

// Key identifies a tracked input. Every key has its own value.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyShift
	KeyMouseLeft
	KeyMouseRight
	KeyMouseMiddle
	KeyEscape
	KeyTab
	KeyCount
)

var keyNames = [KeyCount]string{
	KeyW:           "W",
	KeyA:           "A",
	KeyS:           "S",
	KeyD:           "D",
	KeySpace:       "Space",
	KeyShift:       "Shift",
	KeyMouseLeft:   "MouseLeft",
	KeyMouseRight:  "MouseRight",
	KeyMouseMiddle: "MouseMiddle",
	KeyEscape:      "Escape",
	KeyTab:         "Tab",
}

// String returns the key name.
func (k Key) String() string {
	if k < 0 || k >= KeyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// KeyState is the edge/level state of one key.
type KeyState struct {
	Pressed  bool // went down since the last EndFrame
	Held     bool // down for at least one full frame
	Released bool // went up since the last EndFrame
}

// Snapshot is the input state for one frame.
type Snapshot struct {
	Keys [KeyCount]KeyState

	// Mouse movement accumulated since the last EndFrame.
	MouseDX, MouseDY float32

	// Wheel is the scroll amount accumulated since the last EndFrame.
	Wheel float32

	// PointerLocked gates whether mouse movement drives the camera.
	PointerLocked bool

	// Quit is set by the platform when the window is asked to close.
	Quit bool

	// sources has one bit per physical button bound to a key, see PressFrom.
	sources [KeyCount]uint32
}

// New creates an empty snapshot.
func New() *Snapshot {
	return &Snapshot{}
}

// Press records a key-down event. Repeats of a key that is already down
// are ignored so that one physical press yields one Pressed edge.
func (s *Snapshot) Press(k Key) {
	if !valid(k) {
		return
	}
	ks := &s.Keys[k]
	if ks.Released {
		// Up and down again within one frame: the new press is a fresh edge.
		ks.Released = false
		ks.Pressed = true
		return
	}
	if ks.Held || ks.Pressed {
		return
	}
	ks.Pressed = true
}

// Release records a key-up event.
func (s *Snapshot) Release(k Key) {
	if !valid(k) {
		return
	}
	ks := &s.Keys[k]
	if !ks.Held && !ks.Pressed {
		return
	}
	ks.Released = true
}

// PressFrom records a key-down from one of several physical buttons bound
// to k (left and right Shift). src is 0-31. The key goes down with the
// first source.
func (s *Snapshot) PressFrom(k Key, src uint) {
	if !valid(k) || src >= 32 {
		return
	}
	if s.sources[k] == 0 {
		s.Press(k)
	}
	s.sources[k] |= 1 << src
}

// ReleaseFrom records a key-up from one source. The key goes up only when
// no bound source is still down.
func (s *Snapshot) ReleaseFrom(k Key, src uint) {
	if !valid(k) || src >= 32 || s.sources[k]&(1<<src) == 0 {
		return
	}
	s.sources[k] &^= 1 << src
	if s.sources[k] == 0 {
		s.Release(k)
	}
}

// MoveMouse accumulates relative mouse motion.
func (s *Snapshot) MoveMouse(dx, dy float32) {
	s.MouseDX += dx
	s.MouseDY += dy
}

// Scroll accumulates mouse wheel motion.
func (s *Snapshot) Scroll(dy float32) {
	s.Wheel += dy
}

// SetPointerLock records the platform's pointer lock state.
func (s *Snapshot) SetPointerLock(locked bool) {
	s.PointerLocked = locked
}

// Pressed reports whether k went down this frame.
func (s *Snapshot) Pressed(k Key) bool {
	return valid(k) && s.Keys[k].Pressed
}

// Held reports whether k is down, including the frame it was pressed.
func (s *Snapshot) Held(k Key) bool {
	return valid(k) && (s.Keys[k].Held || s.Keys[k].Pressed)
}

// Released reports whether k went up this frame.
func (s *Snapshot) Released(k Key) bool {
	return valid(k) && s.Keys[k].Released
}

// Axis returns +1 when pos is down, -1 when neg is down, 0 for both or neither.
func (s *Snapshot) Axis(neg, pos Key) float32 {
	var v float32
	if s.Held(pos) {
		v++
	}
	if s.Held(neg) {
		v--
	}
	return v
}

// EndFrame advances the edge flags: a pressed key becomes held and a
// released key stops being held. It also clears the mouse delta. It must
// run once per frame after the simulation has read the snapshot.
func (s *Snapshot) EndFrame() {
	for i := range s.Keys {
		ks := &s.Keys[i]
		if ks.Pressed {
			ks.Held = true
			ks.Pressed = false
		}
		if ks.Released {
			ks.Held = false
			ks.Released = false
		}
	}
	s.MouseDX = 0
	s.MouseDY = 0
	s.Wheel = 0
}

func valid(k Key) bool {
	return k >= 0 && k < KeyCount
}
