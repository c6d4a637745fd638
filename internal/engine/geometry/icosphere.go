package geometry

import (
	"fmt"

	"github.com/Faultbox/colere/pkg/math"
)

// icosahedronPositions are the 12 corners of the base icosahedron. They lie
// close to, but not exactly on, the unit sphere.
var icosahedronPositions = [12]math.Vec3{
	{X: 0.000000, Y: -1.000000, Z: 0.000000},
	{X: 0.723600, Y: -0.447215, Z: 0.525720},
	{X: -0.276385, Y: -0.447215, Z: 0.850640},
	{X: -0.894425, Y: -0.447215, Z: 0.000000},
	{X: -0.276385, Y: -0.447215, Z: -0.850640},
	{X: 0.723600, Y: -0.447215, Z: -0.525720},
	{X: 0.276385, Y: 0.447215, Z: 0.850640},
	{X: -0.723600, Y: 0.447215, Z: 0.525720},
	{X: -0.723600, Y: 0.447215, Z: -0.525720},
	{X: 0.276385, Y: 0.447215, Z: -0.850640},
	{X: 0.894425, Y: 0.447215, Z: 0.000000},
	{X: 0.000000, Y: 1.000000, Z: 0.000000},
}

var icosahedronIndices = [60]uint16{
	0, 1, 2,
	1, 0, 5,
	0, 2, 3,
	0, 3, 4,
	0, 4, 5,
	1, 5, 10,
	2, 1, 6,
	3, 2, 7,
	4, 3, 8,
	5, 4, 9,
	1, 10, 6,
	2, 6, 7,
	3, 7, 8,
	4, 8, 9,
	5, 9, 10,
	6, 10, 11,
	7, 6, 11,
	8, 7, 11,
	9, 8, 11,
	10, 9, 11,
}

// IcosahedronCapacity is the size of the base icosahedron.
var IcosahedronCapacity = Capacity{Vertices: len(icosahedronPositions), Indices: len(icosahedronIndices)}

// Icosahedron returns a fresh copy of the base icosahedron. Positions are
// not normalized and normals are left zero.
func Icosahedron() *Mesh {
	return icosahedron(IcosahedronCapacity)
}

func icosahedron(c Capacity) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, len(icosahedronPositions), c.Vertices),
		Indices:  make([]uint16, len(icosahedronIndices), c.Indices),
	}
	for i, p := range icosahedronPositions {
		m.Vertices[i].Position = p
	}
	copy(m.Indices, icosahedronIndices[:])
	return m
}

// CapacityAfterPasses returns the exact mesh size after the given number of
// Subdivide passes. Each pass adds three vertices per triangle and turns
// every triangle into four.
func CapacityAfterPasses(base Capacity, passes int) Capacity {
	c := base
	for range passes {
		triangles := c.Indices / 3
		c.Vertices += 3 * triangles
		c.Indices *= 4
	}
	return c
}

// Subdivide splits every triangle into four by inserting a vertex at the
// midpoint of each edge.
//
// Midpoints are not shared between neighbouring triangles, so every edge
// ends up with two coincident copies of its midpoint. That wastes vertices
// but the flat-shaded sphere does not need shared attributes.
func (m *Mesh) Subdivide() {
	n := len(m.Indices)
	for t := 0; t < n; t += 3 {
		i1, i3, i5 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		v1 := m.Vertices[i1].Position
		v3 := m.Vertices[i3].Position
		v5 := m.Vertices[i5].Position

		i2 := uint16(len(m.Vertices))
		i4 := i2 + 1
		i6 := i2 + 2
		m.Vertices = append(m.Vertices,
			Vertex{Position: v1.Midpoint(v3)},
			Vertex{Position: v3.Midpoint(v5)},
			Vertex{Position: v5.Midpoint(v1)},
		)

		m.Indices[t], m.Indices[t+1], m.Indices[t+2] = i1, i2, i6
		m.Indices = append(m.Indices,
			i2, i3, i4,
			i4, i5, i6,
			i6, i2, i4,
		)
	}
}

// NormalizeToSphere projects every vertex onto the unit sphere and sets its
// normal to the resulting position.
func (m *Mesh) NormalizeToSphere() {
	for i := range m.Vertices {
		p := m.Vertices[i].Position.Normalize()
		m.Vertices[i].Position = p
		m.Vertices[i].Normal = p
	}
}

// Sphere builds a unit sphere by subdividing the icosahedron passes times.
func Sphere(passes int) (*Mesh, error) {
	if passes < 0 {
		return nil, fmt.Errorf("negative subdivision count %d", passes)
	}
	c := CapacityAfterPasses(IcosahedronCapacity, passes)
	if c.Vertices > MaxIndexedVertices {
		return nil, fmt.Errorf("%d passes need %d vertices: %w", passes, c.Vertices, ErrTooManyVertices)
	}

	m := icosahedron(c)
	for range passes {
		m.Subdivide()
	}
	m.NormalizeToSphere()
	return m, nil
}
