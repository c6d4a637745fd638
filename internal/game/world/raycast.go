package world

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/colere/pkg/math"
)

// rayEpsilon rejects hits at the ray origin so a player standing on a
// surface does not pick it at distance zero.
const rayEpsilon = 1e-4

// RaySphere returns the distance along dir to the nearest intersection with
// the sphere that lies in front of origin. dir need not be normalized; the
// distance is then in units of |dir|.
func RaySphere(origin, dir, center math.Vec3, radius float32) (float32, bool) {
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	if t := (-b - sq) / a; t > rayEpsilon {
		return t, true
	}
	if t := (-b + sq) / a; t > rayEpsilon {
		return t, true
	}
	return 0, false
}

// PickPlanet casts a ray against every planet and returns the index of the
// closest one hit.
func (w *World) PickPlanet(origin, dir math.Vec3) (int, bool) {
	best := -1
	var bestT float32
	for i := range w.PlanetCount {
		planet := &w.Planets[i]
		t, ok := RaySphere(origin, dir, planet.Position, planet.Radius)
		if !ok {
			continue
		}
		if best < 0 || t < bestT {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}
