// Package camera turns player or spectator state into view-projection
// matrices for the per-frame uniform block.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/colere/pkg/math"
)

// Camera produces the combined projection*view matrix and the eye position.
type Camera interface {
	ViewProjection(aspect float32) (math.Mat4, math.Vec3)
}

// FirstPerson looks along the player's view direction from eye height.
type FirstPerson struct {
	// Projection
	FOV       float32 // vertical field of view, radians
	Near, Far float32

	// EyeHeight lifts the eye along Up above the player position.
	EyeHeight float32

	position math.Vec3
	look     math.Vec3
	up       math.Vec3
}

// NewFirstPerson creates a first-person camera with default projection.
func NewFirstPerson() *FirstPerson {
	return &FirstPerson{
		FOV:       math32.Pi / 3,
		Near:      0.05,
		Far:       1000,
		EyeHeight: 0.2,
		look:      math.Vec3{Z: -1},
		up:        math.UnitY,
	}
}

// Follow updates the camera from player state.
func (c *FirstPerson) Follow(position, look, up math.Vec3) {
	c.position = position
	c.look = look
	c.up = up
}

// Eye returns the camera position in world space.
func (c *FirstPerson) Eye() math.Vec3 {
	return c.position.Add(c.up.Scale(c.EyeHeight))
}

// ViewProjection implements Camera.
func (c *FirstPerson) ViewProjection(aspect float32) (math.Mat4, math.Vec3) {
	eye := c.Eye()
	view := math.LookAt(eye, eye.Add(c.look), c.up)
	proj := math.Perspective(c.FOV, aspect, c.Near, c.Far)
	return proj.Mul(view), eye
}

// Orbit circles a target at fixed radius and height, like a spectator
// looking down on the scene with an orthographic projection.
type Orbit struct {
	Target math.Vec3
	Radius float32
	Height float32

	// AngularSpeed is in radians per second.
	AngularSpeed float32

	// Zoom is the half extent of the orthographic view volume.
	Zoom            float32
	MinZoom         float32
	MaxZoom         float32
	ZoomSensitivity float32

	Near, Far float32

	angle float32
}

// NewOrbit creates an orbit camera with default settings.
func NewOrbit() *Orbit {
	return &Orbit{
		Target:          math.Vec3{Y: 2},
		Radius:          40,
		Height:          40,
		AngularSpeed:    1,
		Zoom:            5,
		MinZoom:         1,
		MaxZoom:         200,
		ZoomSensitivity: 0.1,
		Near:            0.1,
		Far:             1000,
	}
}

// SetTime places the camera on its circle for the given elapsed time.
func (c *Orbit) SetTime(t float32) {
	c.angle = t * c.AngularSpeed
}

// Position returns the camera position in world space.
func (c *Orbit) Position() math.Vec3 {
	return math.Vec3{
		X: math32.Sin(c.angle) * c.Radius,
		Y: c.Height,
		Z: math32.Cos(c.angle) * c.Radius,
	}
}

// HandleZoom updates the orthographic extent from a scroll delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.Zoom -= delta * c.Zoom * c.ZoomSensitivity
	c.Zoom = min(max(c.Zoom, c.MinZoom), c.MaxZoom)
}

// ViewProjection implements Camera.
func (c *Orbit) ViewProjection(aspect float32) (math.Mat4, math.Vec3) {
	pos := c.Position()
	view := math.LookAt(pos, c.Target, math.UnitY)
	zx := c.Zoom * aspect
	proj := math.Ortho(-zx, zx, -c.Zoom, c.Zoom, c.Near, c.Far)
	return proj.Mul(view), pos
}
