package game

import (
	"github.com/Faultbox/colere/internal/engine/audio"
	"github.com/Faultbox/colere/internal/game/world"
)

// Sounds plays the effect for a player event. *device.Player implements it.
type Sounds interface {
	Play(e audio.Effect)
}

var eventEffects = []struct {
	event  world.Event
	effect audio.Effect
}{
	{world.EventJumped, audio.EffectJump},
	{world.EventLanded, audio.EffectLand},
	{world.EventSwitchedPlanet, audio.EffectSwitch},
}

// SetSounds installs the effect player. Nil silences the game.
func (g *Game) SetSounds(s Sounds) {
	g.sounds = s
}

func (g *Game) playEvents(events world.Event) {
	if g.sounds == nil || events == 0 {
		return
	}
	for _, m := range eventEffects {
		if events&m.event != 0 {
			g.sounds.Play(m.effect)
		}
	}
}
