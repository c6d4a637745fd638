package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/colere/internal/config"
	"github.com/Faultbox/colere/internal/engine/audio"
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/internal/game/world"
)

type recordingSounds struct {
	played []audio.Effect
}

func (r *recordingSounds) Play(e audio.Effect) { r.played = append(r.played, e) }

func TestPlayEventsMapsFlags(t *testing.T) {
	g := newGame(t, config.Default(), &fakePlatform{step: 1.0 / 60}, render.NewRecorder())
	snd := &recordingSounds{}

	g.playEvents(world.EventJumped | world.EventSwitchedPlanet)
	assert.Empty(t, snd.played, "no player installed yet")

	g.SetSounds(snd)
	g.playEvents(0)
	assert.Empty(t, snd.played)

	g.playEvents(world.EventJumped | world.EventSwitchedPlanet)
	assert.Equal(t, []audio.Effect{audio.EffectJump, audio.EffectSwitch}, snd.played)

	g.SetSounds(nil)
	g.playEvents(world.EventLanded)
	assert.Len(t, snd.played, 2)
}

func TestFallingPlayerLands(t *testing.T) {
	cfg := config.Default()
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, render.NewRecorder())
	snd := &recordingSounds{}
	g.SetSounds(snd)

	for range 120 {
		g.Frame()
	}

	assert.True(t, g.World().Player.OnGround)
	assert.Contains(t, snd.played, audio.EffectLand)
	assert.NotContains(t, snd.played, audio.EffectJump)
}
