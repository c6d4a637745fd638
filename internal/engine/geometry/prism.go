package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/colere/pkg/math"
)

// DefaultPrismSides is the side count of the plant stem prism.
const DefaultPrismSides = 6

// Prism returns a flat-shaded prism of unit radius and unit height standing
// on the XZ plane. Plants scale it per instance. Sides below 3 are raised
// to 3.
func Prism(sides int) *Mesh {
	if sides < 3 {
		sides = 3
	}
	m := &Mesh{
		Vertices: make([]Vertex, 0, sides*12),
		Indices:  make([]uint16, 0, sides*12),
	}

	ring := func(i int, y float32) math.Vec3 {
		a := 2 * math32.Pi * float32(i%sides) / float32(sides)
		return math.Vec3{X: math32.Cos(a), Y: y, Z: math32.Sin(a)}
	}
	top := math.Vec3{Y: 1}
	bottom := math.Vec3{}

	for i := 0; i < sides; i++ {
		b0, b1 := ring(i, 0), ring(i+1, 0)
		t0, t1 := ring(i, 1), ring(i+1, 1)

		m.appendTriangle(b0, t0, t1)
		m.appendTriangle(b0, t1, b1)
		m.appendTriangle(top, t1, t0)
		m.appendTriangle(bottom, b0, b1)
	}
	return m
}
