// Package geometry builds the procedural meshes used by the world: a
// subdivided icosahedron for planets and a prism for plants.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/colere/pkg/math"
)

// MaxIndexedVertices is the number of vertices addressable by 16-bit indices.
const MaxIndexedVertices = 1 << 16

// ErrTooManyVertices is returned when a mesh would not fit 16-bit indices.
var ErrTooManyVertices = errors.New("geometry: mesh exceeds 16-bit index range")

// Vertex is a mesh vertex as laid out in the GPU vertex buffer.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// VertexSize is the byte size of one Vertex.
const VertexSize = 6 * 4

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// Capacity describes the vertex and index counts of a mesh.
type Capacity struct {
	Vertices int
	Indices  int
}

// Capacity returns the current sizes of the mesh.
func (m *Mesh) Capacity() Capacity {
	return Capacity{Vertices: len(m.Vertices), Indices: len(m.Indices)}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that the index list describes whole triangles and that
// every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	n := len(m.Vertices)
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// appendTriangle appends the vertices a, b, c with a shared flat normal.
func (m *Mesh) appendTriangle(a, b, c math.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	base := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Position: a, Normal: n},
		Vertex{Position: b, Normal: n},
		Vertex{Position: c, Normal: n},
	)
	m.Indices = append(m.Indices, base, base+1, base+2)
}
