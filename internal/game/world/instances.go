package world

import (
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/pkg/math"
)

// PlanetInstances appends one unit-sphere instance per planet, scaled by
// its radius.
func (w *World) PlanetInstances(dst []render.Instance) []render.Instance {
	for i := range w.PlanetCount {
		p := &w.Planets[i]
		dst = append(dst, render.Instance{
			Position: p.Position,
			Scale:    math.Vec3{X: p.Radius, Y: p.Radius, Z: p.Radius},
		})
	}
	return dst
}

// PlantInstances appends one prism instance per plant. Prisms grow along +Y,
// so the height goes into the Y scale.
func (w *World) PlantInstances(dst []render.Instance) []render.Instance {
	for i := range w.PlantCount {
		p := &w.Plants[i]
		dst = append(dst, render.Instance{
			Position: p.Position,
			Scale:    math.Vec3{X: p.Radius, Y: p.Height, Z: p.Radius},
		})
	}
	return dst
}
