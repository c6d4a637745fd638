// Package device plays audio effects through the system speaker.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/Faultbox/colere/internal/engine/audio"
)

// Player mixes effects into the speaker. A Player that was never
// initialized, or whose Init failed, ignores Play.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
}

// New creates a player at the given volume (0.0 to 1.0).
func New(volume float64) *Player {
	return &Player{
		sampleRate: audio.DefaultSampleRate,
		volume:     audio.ClampVolume(volume),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the output device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)

	p.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// IsInitialized reports whether Init succeeded.
func (p *Player) IsInitialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialized
}

// SetVolume sets the effect volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = audio.ClampVolume(vol)
}

// Volume returns the effect volume.
func (p *Player) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// Play starts e on top of whatever is already sounding.
func (p *Player) Play(e audio.Effect) {
	p.mu.RLock()
	initialized := p.initialized
	vol := p.volume
	sr := p.sampleRate
	p.mu.RUnlock()

	tone, ok := audio.ToneFor(e)
	if !initialized || !ok || vol <= 0 {
		return
	}

	s := &effects.Volume{
		Streamer: audio.NewTone(sr, tone),
		Base:     2,
		Volume:   audio.VolumeExponent(vol),
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
