package device

import (
	"testing"

	"github.com/Faultbox/colere/internal/engine/audio"
)

func TestNewPlayer(t *testing.T) {
	p := New(2)
	if p.Volume() != 1 {
		t.Errorf("volume = %f, want 1 (clamped)", p.Volume())
	}
	if p.IsInitialized() {
		t.Error("new player should not be initialized")
	}

	p.SetVolume(0.3)
	if p.Volume() != 0.3 {
		t.Errorf("volume = %f, want 0.3", p.Volume())
	}
	p.SetVolume(-1)
	if p.Volume() != 0 {
		t.Errorf("volume = %f, want 0 (clamped)", p.Volume())
	}
}

func TestPlayWithoutInit(t *testing.T) {
	p := New(1)
	// Must not touch the speaker.
	p.Play(audio.EffectJump)
	p.Play(audio.Effect(99))
	p.Close()
	if p.IsInitialized() {
		t.Error("closed player should not be initialized")
	}
}
