package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/colere/internal/engine/input"
)

// binding is a key plus which of its physical buttons produced the event.
type binding struct {
	key input.Key
	src uint
}

var scancodeKeys = map[sdl.Scancode]binding{
	sdl.SCANCODE_W:      {input.KeyW, 0},
	sdl.SCANCODE_A:      {input.KeyA, 0},
	sdl.SCANCODE_S:      {input.KeyS, 0},
	sdl.SCANCODE_D:      {input.KeyD, 0},
	sdl.SCANCODE_SPACE:  {input.KeySpace, 0},
	sdl.SCANCODE_LSHIFT: {input.KeyShift, 0},
	sdl.SCANCODE_RSHIFT: {input.KeyShift, 1},
	sdl.SCANCODE_ESCAPE: {input.KeyEscape, 0},
	sdl.SCANCODE_TAB:    {input.KeyTab, 0},
}

var buttonKeys = map[uint8]input.Key{
	sdl.BUTTON_LEFT:   input.KeyMouseLeft,
	sdl.BUTTON_RIGHT:  input.KeyMouseRight,
	sdl.BUTTON_MIDDLE: input.KeyMouseMiddle,
}

// PollEvents drains the SDL queue into the snapshot.
func (w *Window) PollEvents(in *input.Snapshot) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closing = true
			in.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE {
				w.closing = true
				in.Quit = true
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			b, ok := scancodeKeys[e.Keysym.Scancode]
			if !ok {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				in.PressFrom(b.key, b.src)
			} else {
				in.ReleaseFrom(b.key, b.src)
			}

		case *sdl.MouseMotionEvent:
			in.MoveMouse(float32(e.XRel), float32(e.YRel))

		case *sdl.MouseButtonEvent:
			k, ok := buttonKeys[e.Button]
			if !ok {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				in.Press(k)
			} else {
				in.Release(k)
			}

		case *sdl.MouseWheelEvent:
			in.Scroll(float32(e.Y))
		}
	}
	in.SetPointerLock(sdl.GetRelativeMouseMode())
}
