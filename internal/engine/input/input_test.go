package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysAreDistinct(t *testing.T) {
	names := make(map[string]Key)
	for k := Key(0); k < KeyCount; k++ {
		other, dup := names[k.String()]
		assert.False(t, dup, "%s shares a name with key %d", k, other)
		names[k.String()] = k
	}
	assert.NotEqual(t, KeyMouseLeft, KeyMouseRight)
	assert.NotEqual(t, KeyMouseRight, KeyMouseMiddle)
	assert.Equal(t, "Unknown", KeyCount.String())
}

func TestSinglePressYieldsOneEdge(t *testing.T) {
	s := New()
	s.Press(KeySpace)

	const frames = 5
	pressedFrames, heldOnlyFrames := 0, 0
	for range frames {
		// Key repeat from the platform must not create new edges.
		s.Press(KeySpace)

		if s.Pressed(KeySpace) {
			pressedFrames++
		} else if s.Keys[KeySpace].Held {
			heldOnlyFrames++
		}
		assert.True(t, s.Held(KeySpace))
		s.EndFrame()
	}

	assert.Equal(t, 1, pressedFrames)
	assert.Equal(t, frames-1, heldOnlyFrames)
}

func TestReleaseClearsHeld(t *testing.T) {
	s := New()
	s.Press(KeyW)
	s.EndFrame()
	assert.True(t, s.Held(KeyW))

	s.Release(KeyW)
	assert.True(t, s.Released(KeyW))
	s.EndFrame()

	assert.Equal(t, KeyState{}, s.Keys[KeyW])
}

func TestTapWithinOneFrame(t *testing.T) {
	s := New()
	s.Press(KeyMouseLeft)
	s.Release(KeyMouseLeft)

	// The press is still visible for the frame it happened in.
	assert.True(t, s.Pressed(KeyMouseLeft))
	assert.True(t, s.Released(KeyMouseLeft))
	s.EndFrame()

	assert.False(t, s.Held(KeyMouseLeft))
	assert.False(t, s.Pressed(KeyMouseLeft))
}

func TestRepressInReleaseFrame(t *testing.T) {
	s := New()
	s.Press(KeyW)
	s.EndFrame()

	s.Release(KeyW)
	s.Press(KeyW)
	assert.True(t, s.Pressed(KeyW), "a new key-down is a fresh edge")
	assert.False(t, s.Released(KeyW))
	s.EndFrame()

	assert.True(t, s.Held(KeyW), "key is physically down")
	assert.False(t, s.Pressed(KeyW))

	s.Release(KeyW)
	assert.True(t, s.Released(KeyW))
	s.EndFrame()
	assert.Equal(t, KeyState{}, s.Keys[KeyW])
}

func TestSharedKeyStaysDownUntilEverySourceIsUp(t *testing.T) {
	const left, right = 0, 1
	s := New()

	s.PressFrom(KeyShift, left)
	s.PressFrom(KeyShift, right)
	assert.True(t, s.Pressed(KeyShift))
	s.EndFrame()

	s.ReleaseFrom(KeyShift, left)
	assert.False(t, s.Released(KeyShift), "right Shift is still down")
	s.EndFrame()
	assert.True(t, s.Held(KeyShift))

	// A stray key-up for a source that is not down changes nothing.
	s.ReleaseFrom(KeyShift, left)
	assert.True(t, s.Held(KeyShift))

	s.ReleaseFrom(KeyShift, right)
	assert.True(t, s.Released(KeyShift))
	s.EndFrame()
	assert.False(t, s.Held(KeyShift))

	s.PressFrom(KeyShift, 40)
	assert.False(t, s.Held(KeyShift), "sources past 31 are ignored")
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	s := New()
	s.Release(KeyA)
	assert.False(t, s.Released(KeyA))
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		want float32
	}{
		{"none", nil, 0},
		{"positive", []Key{KeyD}, 1},
		{"negative", []Key{KeyA}, -1},
		{"both cancel", []Key{KeyA, KeyD}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, k := range tt.keys {
				s.Press(k)
			}
			assert.Equal(t, tt.want, s.Axis(KeyA, KeyD))
		})
	}
}

func TestMouseDeltaClearedPerFrame(t *testing.T) {
	s := New()
	s.MoveMouse(3, -2)
	s.MoveMouse(1, 1)
	s.Scroll(2)
	assert.Equal(t, float32(4), s.MouseDX)
	assert.Equal(t, float32(-1), s.MouseDY)

	s.SetPointerLock(true)
	s.EndFrame()
	assert.Zero(t, s.MouseDX)
	assert.Zero(t, s.MouseDY)
	assert.Zero(t, s.Wheel)
	assert.True(t, s.PointerLocked)
}

func TestInvalidKeysIgnored(t *testing.T) {
	s := New()
	s.Press(KeyCount)
	s.Press(Key(-1))
	assert.False(t, s.Held(KeyCount))
	assert.False(t, s.Pressed(Key(-1)))
}
