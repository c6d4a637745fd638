// Package render defines what the frame loop hands to the GPU side: the
// per-frame uniform block, per-instance data and an ordered draw list.
package render

import (
	"image"

	"github.com/Faultbox/colere/internal/engine/geometry"
	"github.com/Faultbox/colere/pkg/math"
)

// Uniforms is the per-frame shader data. The layout matches a std140
// block: a mat4 followed by a vec3 packed with a float.
type Uniforms struct {
	Camera         math.Mat4
	CameraPosition math.Vec3
	Time           float32
}

// UniformsSize is the byte size of Uniforms.
const UniformsSize = (16 + 3 + 1) * 4

// Instance is per-instance vertex data.
type Instance struct {
	Position math.Vec3
	Scale    math.Vec3
}

// InstanceSize is the byte size of Instance.
const InstanceSize = 6 * 4

// MeshID names a mesh uploaded once at startup.
type MeshID int

const (
	MeshSphere MeshID = iota
	MeshPrism
	MeshCount
)

func (id MeshID) String() string {
	switch id {
	case MeshSphere:
		return "sphere"
	case MeshPrism:
		return "prism"
	default:
		return "unknown"
	}
}

// DrawCall draws Instances instances of a mesh, starting at InstanceOffset
// in that mesh's instance buffer.
type DrawCall struct {
	Mesh           MeshID
	Instances      int
	InstanceOffset int
}

// Sink receives the frame's GPU work. Meshes are uploaded once; uniforms,
// instances and draw calls every frame; Present ends the frame.
type Sink interface {
	UploadMesh(id MeshID, m *geometry.Mesh) error
	WriteUniforms(u *Uniforms)
	WriteInstances(id MeshID, data []Instance)
	Draw(calls []DrawCall)
	DrawOverlay(img *image.RGBA)
	Present()
}
