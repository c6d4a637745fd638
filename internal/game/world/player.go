package world

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/colere/internal/engine/input"
	"github.com/Faultbox/colere/pkg/math"
)

// MaxPitch keeps the look direction away from the poles (89 degrees).
const MaxPitch = 89 * math32.Pi / 180

// Event flags raised by one UpdatePlayer call.
type Event uint8

const (
	EventJumped Event = 1 << iota
	EventLanded
	EventSwitchedPlanet
)

// Player is the controllable body walking on the current planet.
type Player struct {
	Yaw, Pitch float32

	Position math.Vec3
	// Up is smoothed toward the planet's radial direction at Position.
	Up math.Vec3
	// LocalVelocity holds the input axes: X strafe, Y vertical, Z forward.
	LocalVelocity math.Vec3
	Velocity      math.Vec3
	Forward       math.Vec3
	Right         math.Vec3
	// Look is Forward pitched about Right. It drives the camera and picking.
	Look math.Vec3

	OnGround      bool
	CurrentPlanet int
	Speed         float32

	// Events holds what happened during the last update.
	Events Event

	// heading is the zero-yaw forward direction, carried along the surface
	// as Up changes.
	heading math.Vec3
}

func newPlayer(pos math.Vec3, planetIndex int, planet *Planet) Player {
	up := pos.Sub(planet.Position).Normalize()
	if up == math.Zero3 {
		up = math.UnitY
	}
	p := Player{
		Position:      pos,
		Up:            up,
		CurrentPlanet: planetIndex,
		Speed:         1,
		heading:       math.UnitZ.Negate(),
	}
	p.orient()
	return p
}

// Eye returns the camera position, lifted above the feet along Up.
func (p *Player) Eye(height float32) math.Vec3 {
	return p.Position.Add(p.Up.Scale(height))
}

// orient rebuilds Forward, Right and Look from heading, yaw and pitch.
func (p *Player) orient() {
	h := p.heading.Sub(p.Up.Scale(p.heading.Dot(p.Up)))
	if h.LengthSquared() < 1e-8 {
		h = perpendicular(p.Up)
	}
	p.heading = h.Normalize()

	p.Forward = p.heading.RotateAround(p.Up, p.Yaw)
	p.Right = p.Forward.Cross(p.Up).Normalize()
	p.Look = p.Forward.RotateAround(p.Right, p.Pitch)
}

// perpendicular returns a unit vector orthogonal to n.
func perpendicular(n math.Vec3) math.Vec3 {
	axis := math.UnitX
	if math32.Abs(n.X) > 0.9 {
		axis = math.UnitZ
	}
	return n.Cross(axis).Normalize()
}

// UpdatePlayer advances the player by dt seconds using this frame's input.
func (w *World) UpdatePlayer(in *input.Snapshot, dt float32) {
	p := &w.Player
	t := &w.Tuning
	planet := w.CurrentPlanet()
	p.Events = 0
	wasOnGround := p.OnGround

	if in.PointerLocked {
		p.Yaw -= in.MouseDX * t.MouseSensitivity
		p.Pitch -= in.MouseDY * t.MouseSensitivity
		p.Pitch = max(-MaxPitch, min(MaxPitch, p.Pitch))
	}

	p.LocalVelocity.X = in.Axis(input.KeyA, input.KeyD)
	p.LocalVelocity.Z = in.Axis(input.KeyS, input.KeyW)
	if p.OnGround {
		p.LocalVelocity.Y = max(p.LocalVelocity.Y, 0)
		if in.Held(input.KeySpace) {
			// Still inside GroundEpsilon the frame after a launch; only a new
			// launch counts as a jump.
			if p.LocalVelocity.Y < t.JumpVelocity {
				p.Events |= EventJumped
			}
			p.LocalVelocity.Y = t.JumpVelocity
		}
	} else {
		p.LocalVelocity.Y += planet.Gravity * dt
	}

	if target := p.Position.Sub(planet.Position).Normalize(); target != math.Zero3 {
		blend := 1 - math32.Exp(-t.UpSmoothing*dt)
		if up := p.Up.Lerp(target, blend).Normalize(); up != math.Zero3 {
			p.Up = up
		} else {
			p.Up = target
		}
	}
	p.orient()

	horizontal := p.Right.Scale(p.LocalVelocity.X).
		Add(p.Forward.Scale(p.LocalVelocity.Z)).
		Normalize()
	p.Velocity = horizontal.Add(p.Up.Scale(p.LocalVelocity.Y))

	p.Speed = 1
	if in.Held(input.KeyShift) {
		p.Speed = t.RunMultiplier
	}
	p.Position = p.Position.Add(p.Velocity.Scale(p.Speed * dt))

	p.OnGround = w.onGround()
	if p.OnGround && !wasOnGround {
		p.Events |= EventLanded
	}

	if in.Pressed(input.KeyMouseLeft) {
		if i, ok := w.PickPlanet(p.Position, p.Look); ok && i != p.CurrentPlanet {
			w.log.Info("planet switched",
				zap.Int("from", p.CurrentPlanet),
				zap.Int("to", i))
			p.CurrentPlanet = i
			p.OnGround = w.onGround()
			p.Events |= EventSwitchedPlanet
		}
	}
}
