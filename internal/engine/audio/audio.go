// Package audio synthesizes the short sound effects played on player events.
// Playback lives in audio/device.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Effect names one of the built-in sounds.
type Effect int

const (
	EffectJump Effect = iota
	EffectLand
	EffectSwitch

	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectJump:
		return "jump"
	case EffectLand:
		return "land"
	case EffectSwitch:
		return "switch"
	}
	return fmt.Sprintf("Effect(%d)", int(e))
}

// Tone is a sine sweep from Freq to EndFreq with a linear fade out.
type Tone struct {
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Gain     float64
}

var tones = [effectCount]Tone{
	EffectJump:   {Freq: 330, EndFreq: 660, Duration: 120 * time.Millisecond, Gain: 0.6},
	EffectLand:   {Freq: 140, EndFreq: 70, Duration: 90 * time.Millisecond, Gain: 0.8},
	EffectSwitch: {Freq: 520, EndFreq: 1040, Duration: 250 * time.Millisecond, Gain: 0.5},
}

// ToneFor returns the tone played for e.
func ToneFor(e Effect) (Tone, bool) {
	if e < 0 || e >= effectCount {
		return Tone{}, false
	}
	return tones[e], true
}

// NewTone returns a streamer that renders t once at sample rate sr.
func NewTone(sr beep.SampleRate, t Tone) beep.Streamer {
	total := sr.N(t.Duration)
	rate := float64(sr)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			progress := float64(pos) / float64(total)
			freq := t.Freq + (t.EndFreq-t.Freq)*progress
			v := math.Sin(phase) * t.Gain * (1 - progress)
			samples[i][0], samples[i][1] = v, v
			phase += 2 * math.Pi * freq / rate
			pos++
			n++
		}
		return n, true
	})
}

// VolumeExponent converts a linear 0-1 volume to the base-2 exponent
// used by effects.Volume.
func VolumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

// ClampVolume limits vol to 0-1.
func ClampVolume(vol float64) float64 {
	return max(0, min(1, vol))
}
