// Package world holds the scene state (planets, plants, the player) and the
// per-tick player simulation against the currently selected planet.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/colere/internal/config"
	"github.com/Faultbox/colere/internal/logger"
	"github.com/Faultbox/colere/pkg/math"
)

// Fixed scene capacity.
const (
	MaxPlanets = 8
	MaxPlants  = 64
)

var (
	ErrTooManyPlanets = errors.New("too many planets")
	ErrTooManyPlants  = errors.New("too many plants")
	ErrNoPlanets      = errors.New("scene has no planets")
)

// Planet is a gravitating sphere. Gravity is signed; negative values pull
// the player toward the center.
type Planet struct {
	Gravity  float32
	Radius   float32
	Position math.Vec3
}

// Plant is decorative instance data.
type Plant struct {
	Position math.Vec3
	Radius   float32
	Height   float32
}

// Tuning holds the movement constants.
type Tuning struct {
	JumpVelocity     float32
	RunMultiplier    float32
	GroundEpsilon    float32
	UpSmoothing      float32
	MouseSensitivity float32
}

// DefaultTuning returns the stock movement constants.
func DefaultTuning() Tuning {
	return Tuning{
		JumpVelocity:     5,
		RunMultiplier:    2,
		GroundEpsilon:    0.1,
		UpSmoothing:      10,
		MouseSensitivity: 0.002,
	}
}

// TuningFromConfig copies the player section of the config. Zero values
// fall back to the defaults.
func TuningFromConfig(p config.PlayerConfig) Tuning {
	t := DefaultTuning()
	if p.JumpVelocity != 0 {
		t.JumpVelocity = p.JumpVelocity
	}
	if p.RunMultiplier != 0 {
		t.RunMultiplier = p.RunMultiplier
	}
	if p.GroundEpsilon != 0 {
		t.GroundEpsilon = p.GroundEpsilon
	}
	if p.UpSmoothing != 0 {
		t.UpSmoothing = p.UpSmoothing
	}
	if p.MouseSensitivity != 0 {
		t.MouseSensitivity = p.MouseSensitivity
	}
	return t
}

// World is the whole simulated scene. Planets and plants are fixed after New.
type World struct {
	Planets     [MaxPlanets]Planet
	PlanetCount int
	Plants      [MaxPlants]Plant
	PlantCount  int
	Player      Player
	Tuning      Tuning

	log *zap.Logger
}

// New populates a world from the scene and player config.
func New(scene config.SceneConfig, player config.PlayerConfig) (*World, error) {
	if len(scene.Planets) == 0 {
		return nil, ErrNoPlanets
	}
	if len(scene.Planets) > MaxPlanets {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPlanets, len(scene.Planets), MaxPlanets)
	}
	if len(scene.Plants) > MaxPlants {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPlants, len(scene.Plants), MaxPlants)
	}

	w := &World{
		Tuning: TuningFromConfig(player),
		log:    logger.Named("world"),
	}

	for i, pc := range scene.Planets {
		if pc.Radius <= 0 {
			return nil, fmt.Errorf("planet %d: radius %g must be positive", i, pc.Radius)
		}
		w.Planets[i] = Planet{
			Gravity:  pc.Gravity,
			Radius:   pc.Radius,
			Position: vec(pc.Position),
		}
	}
	w.PlanetCount = len(scene.Planets)

	for i, pc := range scene.Plants {
		if pc.Radius <= 0 || pc.Height <= 0 {
			return nil, fmt.Errorf("plant %d: radius and height must be positive", i)
		}
		w.Plants[i] = Plant{
			Position: vec(pc.Position),
			Radius:   pc.Radius,
			Height:   pc.Height,
		}
	}
	w.PlantCount = len(scene.Plants)

	if player.StartPlanet < 0 || player.StartPlanet >= w.PlanetCount {
		return nil, fmt.Errorf("start planet %d out of range [0,%d)", player.StartPlanet, w.PlanetCount)
	}
	w.Player = newPlayer(vec(player.Spawn), player.StartPlanet, &w.Planets[player.StartPlanet])
	w.Player.OnGround = w.onGround()

	w.log.Debug("world created",
		zap.Int("planets", w.PlanetCount),
		zap.Int("plants", w.PlantCount),
		zap.Int("start_planet", w.Player.CurrentPlanet))
	return w, nil
}

// CurrentPlanet returns the planet the player is attached to.
func (w *World) CurrentPlanet() *Planet {
	return &w.Planets[w.Player.CurrentPlanet]
}

// ResolveCollisions pushes the player out of every planet it is inside of,
// onto the surface along the same radial direction. All planets are checked,
// not only the current one.
func (w *World) ResolveCollisions() {
	p := &w.Player
	for i := range w.PlanetCount {
		planet := &w.Planets[i]
		d := p.Position.Sub(planet.Position)
		dist := d.Length()
		if dist >= planet.Radius {
			continue
		}
		dir := d.Scale(1 / dist)
		if dist == 0 {
			dir = p.Up
		}
		p.Position = planet.Position.Add(dir.Scale(planet.Radius))
	}
}

func (w *World) onGround() bool {
	planet := w.CurrentPlanet()
	return w.Player.Position.Distance(planet.Position) <= planet.Radius+w.Tuning.GroundEpsilon
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
