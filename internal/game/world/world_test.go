package world

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/colere/internal/config"
	"github.com/Faultbox/colere/internal/engine/input"
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/pkg/math"
)

const eps = 1e-4

func newWorld(t *testing.T, planets []config.PlanetConfig, spawn [3]float32) *World {
	t.Helper()
	w, err := New(
		config.SceneConfig{Planets: planets},
		config.PlayerConfig{Spawn: spawn},
	)
	require.NoError(t, err)
	return w
}

// homeWorld is a single planet of radius 10 at the origin with the player
// standing on its north pole.
func homeWorld(t *testing.T) *World {
	return newWorld(t, []config.PlanetConfig{
		{Radius: 10, Gravity: -9.8},
	}, [3]float32{0, 10, 0})
}

func TestNewErrors(t *testing.T) {
	planet := config.PlanetConfig{Radius: 1}
	plant := config.PlantConfig{Radius: 0.1, Height: 1}

	tests := []struct {
		name   string
		scene  config.SceneConfig
		player config.PlayerConfig
		target error
	}{
		{
			name:   "no planets",
			scene:  config.SceneConfig{},
			target: ErrNoPlanets,
		},
		{
			name:   "too many planets",
			scene:  config.SceneConfig{Planets: make([]config.PlanetConfig, MaxPlanets+1)},
			target: ErrTooManyPlanets,
		},
		{
			name: "too many plants",
			scene: config.SceneConfig{
				Planets: []config.PlanetConfig{planet},
				Plants:  make([]config.PlantConfig, MaxPlants+1),
			},
			target: ErrTooManyPlants,
		},
		{
			name:  "zero radius",
			scene: config.SceneConfig{Planets: []config.PlanetConfig{{Radius: 0}}},
		},
		{
			name: "bad plant",
			scene: config.SceneConfig{
				Planets: []config.PlanetConfig{planet},
				Plants:  []config.PlantConfig{{Radius: 0.1}},
			},
		},
		{
			name:   "start planet out of range",
			scene:  config.SceneConfig{Planets: []config.PlanetConfig{planet}, Plants: []config.PlantConfig{plant}},
			player: config.PlayerConfig{StartPlanet: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.scene, tt.player)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestNewDefaultScene(t *testing.T) {
	cfg := config.Default()
	w, err := New(cfg.Scene, cfg.Player)
	require.NoError(t, err)

	assert.Equal(t, len(cfg.Scene.Planets), w.PlanetCount)
	assert.Equal(t, len(cfg.Scene.Plants), w.PlantCount)
	assert.Equal(t, DefaultTuning(), w.Tuning)
	assert.InDelta(t, 1, w.Player.Up.Length(), eps)
}

func TestResolveCollisionsPushesToSurface(t *testing.T) {
	w := newWorld(t, []config.PlanetConfig{{Radius: 1}}, [3]float32{0.5, 0, 0})

	w.ResolveCollisions()

	assert.True(t, w.Player.Position.ApproxEqual(math.Vec3{X: 1}, eps), "got %v", w.Player.Position)
}

func TestResolveCollisionsChecksEveryPlanet(t *testing.T) {
	w := newWorld(t, []config.PlanetConfig{
		{Radius: 1},
		{Position: [3]float32{10, 0, 0}, Radius: 2},
	}, [3]float32{0, 1, 0})
	w.Player.Position = math.Vec3{X: 10, Y: 0.5}

	w.ResolveCollisions()

	assert.Equal(t, 0, w.Player.CurrentPlanet)
	assert.True(t, w.Player.Position.ApproxEqual(math.Vec3{X: 10, Y: 2}, eps), "got %v", w.Player.Position)
}

func TestResolveCollisionsLeavesOutsidePlayer(t *testing.T) {
	w := homeWorld(t)
	w.Player.Position = math.Vec3{Y: 12}

	w.ResolveCollisions()

	assert.Equal(t, math.Vec3{Y: 12}, w.Player.Position)
}

func TestRaySphere(t *testing.T) {
	tests := []struct {
		name   string
		origin math.Vec3
		dir    math.Vec3
		center math.Vec3
		radius float32
		want   float32
		hit    bool
	}{
		{"front", math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{Z: -6}, 1, 5, true},
		{"behind", math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{Z: -6}, 1, 0, false},
		{"miss", math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{X: 3, Z: -6}, 1, 0, false},
		{"inside", math.Vec3{}, math.Vec3{X: 1}, math.Vec3{}, 2, 2, true},
		{"on surface looking in", math.Vec3{Y: 1}, math.Vec3{Y: -1}, math.Vec3{}, 1, 2, true},
		{"zero direction", math.Vec3{}, math.Vec3{}, math.Vec3{Z: -6}, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RaySphere(tt.origin, tt.dir, tt.center, tt.radius)
			assert.Equal(t, tt.hit, ok)
			assert.InDelta(t, tt.want, got, eps)
		})
	}
}

// pickWorld has the player floating at the origin looking down -Z, with
// planet A hit at distance 5 and planet B at distance 2.
func pickWorld(t *testing.T) *World {
	return newWorld(t, []config.PlanetConfig{
		{Position: [3]float32{0, -100, 0}, Radius: 1},
		{Position: [3]float32{0, 0, -6}, Radius: 1},
		{Position: [3]float32{0, 0, -3}, Radius: 1},
	}, [3]float32{0, 0, 0})
}

func TestPickPlanetChoosesNearest(t *testing.T) {
	w := pickWorld(t)

	i, ok := w.PickPlanet(math.Vec3{}, math.Vec3{Z: -1})
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = w.PickPlanet(math.Vec3{}, math.Vec3{X: 1})
	assert.False(t, ok)
}

func TestSelectSwitchesPlanet(t *testing.T) {
	w := pickWorld(t)
	require.True(t, w.Player.Look.ApproxEqual(math.Vec3{Z: -1}, eps), "look %v", w.Player.Look)

	in := input.New()
	in.Press(input.KeyMouseLeft)
	w.UpdatePlayer(in, 0.01)

	assert.Equal(t, 2, w.Player.CurrentPlanet)
	assert.Equal(t, EventSwitchedPlanet, w.Player.Events)
}

func TestHeldSelectDoesNotSwitch(t *testing.T) {
	w := pickWorld(t)

	in := input.New()
	in.Keys[input.KeyMouseLeft].Held = true
	w.UpdatePlayer(in, 0.01)

	assert.Equal(t, 0, w.Player.CurrentPlanet)
}

func TestSelectWithNoHitKeepsPlanet(t *testing.T) {
	w := pickWorld(t)
	w.Player.heading = math.Vec3{X: 1}

	in := input.New()
	in.Press(input.KeyMouseLeft)
	w.UpdatePlayer(in, 0.01)

	assert.Equal(t, 0, w.Player.CurrentPlanet)
}

func TestGroundCheck(t *testing.T) {
	w := homeWorld(t)
	assert.True(t, w.Player.OnGround)

	w.Player.Position = math.Vec3{Y: 10.05}
	assert.True(t, w.onGround())

	w.Player.Position = math.Vec3{Y: 10.2}
	assert.False(t, w.onGround())
}

func TestJumpAndGravity(t *testing.T) {
	w := homeWorld(t)
	in := input.New()

	in.Press(input.KeySpace)
	w.UpdatePlayer(in, 0.1)
	in.EndFrame()

	assert.InDelta(t, 5, w.Player.LocalVelocity.Y, eps)
	assert.InDelta(t, 10.5, w.Player.Position.Y, eps)
	assert.False(t, w.Player.OnGround)

	in.Release(input.KeySpace)
	in.EndFrame()
	w.UpdatePlayer(in, 0.1)

	assert.InDelta(t, 5-0.98, w.Player.LocalVelocity.Y, eps)
	assert.InDelta(t, 10.5+0.402, w.Player.Position.Y, eps)
}

func TestJumpAndLandingEvents(t *testing.T) {
	w := homeWorld(t)
	require.True(t, w.Player.OnGround)
	in := input.New()

	in.Press(input.KeySpace)
	w.UpdatePlayer(in, 0.1)
	in.EndFrame()
	assert.Equal(t, EventJumped, w.Player.Events)

	in.Release(input.KeySpace)
	w.UpdatePlayer(in, 0.1)
	in.EndFrame()
	assert.Zero(t, w.Player.Events, "events are per update")

	w.Player.Position = math.Vec3{Y: 10.5}
	w.Player.LocalVelocity.Y = -6
	w.UpdatePlayer(in, 0.1)
	assert.True(t, w.Player.OnGround)
	assert.Equal(t, EventLanded, w.Player.Events)

	w.UpdatePlayer(in, 0.1)
	assert.Zero(t, w.Player.Events, "standing still does not land again")
}

func TestOneJumpEventPerTap(t *testing.T) {
	w := homeWorld(t)
	in := input.New()
	const dt = 1.0 / 60

	in.Press(input.KeySpace)
	jumps := 0
	for frame := range 6 {
		if frame == 1 {
			in.Release(input.KeySpace)
		}
		w.UpdatePlayer(in, dt)
		w.ResolveCollisions()
		in.EndFrame()
		if w.Player.Events&EventJumped != 0 {
			jumps++
		}
	}

	assert.Equal(t, 1, jumps)
	assert.False(t, w.Player.OnGround)
}

func TestHeldJumpHopsAgainAfterLanding(t *testing.T) {
	w := homeWorld(t)
	in := input.New()
	in.Press(input.KeySpace)

	jumps := 0
	for range 180 {
		w.UpdatePlayer(in, 1.0/60)
		w.ResolveCollisions()
		in.EndFrame()
		if w.Player.Events&EventJumped != 0 {
			jumps++
		}
	}

	// One hop at 5 m/s under 9.8 m/s² lasts about a second.
	assert.GreaterOrEqual(t, jumps, 2)
	assert.LessOrEqual(t, jumps, 4)
}

func TestLandingClampsFall(t *testing.T) {
	w := homeWorld(t)
	w.Player.LocalVelocity.Y = -3

	w.UpdatePlayer(input.New(), 0.1)

	assert.Equal(t, float32(0), w.Player.LocalVelocity.Y)
	assert.InDelta(t, 10, w.Player.Position.Y, eps)
}

func TestDiagonalMovementIsNormalized(t *testing.T) {
	w := homeWorld(t)
	in := input.New()
	in.Press(input.KeyW)
	in.Press(input.KeyD)

	w.UpdatePlayer(in, 0.1)

	v := w.Player.Velocity
	assert.InDelta(t, 1, v.Length(), eps)
	assert.InDelta(t, math32.Sqrt2/2, v.X, eps)
	assert.InDelta(t, -math32.Sqrt2/2, v.Z, eps)
	assert.InDelta(t, 0, v.Y, eps)
}

func TestNoInputNoMovement(t *testing.T) {
	w := homeWorld(t)

	w.UpdatePlayer(input.New(), 0.1)

	assert.Equal(t, math.Vec3{}, w.Player.Velocity)
	assert.Equal(t, math.Vec3{Y: 10}, w.Player.Position)
}

func TestRunMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		run   bool
		moved float32
	}{
		{"walk", false, 0.1},
		{"run", true, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := homeWorld(t)
			in := input.New()
			in.Press(input.KeyW)
			if tt.run {
				in.Press(input.KeyShift)
			}

			w.UpdatePlayer(in, 0.1)

			assert.InDelta(t, tt.moved, w.Player.Position.Distance(math.Vec3{Y: 10}), eps)
		})
	}
}

func TestPitchClampAndViewOnly(t *testing.T) {
	w := homeWorld(t)
	in := input.New()
	in.SetPointerLock(true)
	in.MoveMouse(0, -1e6)

	w.UpdatePlayer(in, 0.01)

	assert.InDelta(t, MaxPitch, w.Player.Pitch, eps)
	assert.InDelta(t, 0, w.Player.Forward.Y, eps)
	assert.InDelta(t, math32.Sin(MaxPitch), w.Player.Look.Y, eps)

	in.EndFrame()
	in.Press(input.KeyW)
	w.UpdatePlayer(in, 0.1)
	assert.InDelta(t, 0, w.Player.Velocity.Y, eps)
	assert.InDelta(t, 1, w.Player.Velocity.Length(), eps)
}

func TestMouseIgnoredWithoutPointerLock(t *testing.T) {
	w := homeWorld(t)
	in := input.New()
	in.MoveMouse(100, 100)

	w.UpdatePlayer(in, 0.01)

	assert.Zero(t, w.Player.Yaw)
	assert.Zero(t, w.Player.Pitch)
}

func TestYawTurnsAboutUp(t *testing.T) {
	w := homeWorld(t)
	in := input.New()
	in.SetPointerLock(true)
	in.MoveMouse(math32.Pi/2/w.Tuning.MouseSensitivity, 0)

	w.UpdatePlayer(in, 0.01)

	assert.True(t, w.Player.Forward.ApproxEqual(math.Vec3{X: 1}, 1e-3), "forward %v", w.Player.Forward)
	assert.True(t, w.Player.Right.ApproxEqual(math.Vec3{Z: 1}, 1e-3), "right %v", w.Player.Right)
}

func TestUpSmoothingIsExponential(t *testing.T) {
	const dt = 0.05
	w := homeWorld(t)
	w.Player.Up = math.Vec3{X: 1}

	w.UpdatePlayer(input.New(), dt)

	blend := 1 - math32.Exp(-10*dt)
	want := math.Vec3{X: 1}.Lerp(math.Vec3{Y: 1}, blend).Normalize()
	assert.True(t, w.Player.Up.ApproxEqual(want, eps), "up %v want %v", w.Player.Up, want)
}

func TestUpConvergesToRadial(t *testing.T) {
	w := homeWorld(t)
	w.Player.Up = math.Vec3{X: 1}

	for range 120 {
		w.UpdatePlayer(input.New(), 1.0/60)
	}

	assert.True(t, w.Player.Up.ApproxEqual(math.Vec3{Y: 1}, 1e-3), "up %v", w.Player.Up)
}

func TestInstances(t *testing.T) {
	w, err := New(config.SceneConfig{
		Planets: []config.PlanetConfig{
			{Radius: 10},
			{Position: [3]float32{20, 0, 0}, Radius: 2},
		},
		Plants: []config.PlantConfig{
			{Position: [3]float32{0, 10, 0}, Radius: 0.1, Height: 1},
		},
	}, config.PlayerConfig{Spawn: [3]float32{0, 10, 0}})
	require.NoError(t, err)

	planets := w.PlanetInstances(nil)
	require.Len(t, planets, 2)
	assert.Equal(t, render.Instance{
		Position: math.Vec3{X: 20},
		Scale:    math.Vec3{X: 2, Y: 2, Z: 2},
	}, planets[1])

	plants := w.PlantInstances(planets[:0])
	require.Len(t, plants, 1)
	assert.Equal(t, math.Vec3{X: 0.1, Y: 1, Z: 0.1}, plants[0].Scale)
}
