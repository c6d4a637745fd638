package render

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/colere/internal/engine/geometry"
)

func TestLayoutSizes(t *testing.T) {
	assert.Equal(t, uintptr(UniformsSize), unsafe.Sizeof(Uniforms{}))
	assert.Equal(t, uintptr(InstanceSize), unsafe.Sizeof(Instance{}))
	assert.Equal(t, uintptr(geometry.VertexSize), unsafe.Sizeof(geometry.Vertex{}))
}

func TestDynamicBufferGrowToFit(t *testing.T) {
	var b DynamicBuffer

	assert.False(t, b.Reserve(0))
	assert.True(t, b.Reserve(10))
	assert.Equal(t, 256, b.Size())

	assert.False(t, b.Reserve(200), "fits without growing")
	assert.True(t, b.Reserve(300))
	assert.Equal(t, 512, b.Size(), "doubles when that is larger")

	assert.True(t, b.Reserve(5000))
	assert.Equal(t, 5120, b.Size())

	assert.False(t, b.Reserve(1), "never shrinks")
	assert.Equal(t, 5120, b.Size())
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	sphere, err := geometry.Sphere(1)
	require.NoError(t, err)
	require.NoError(t, r.UploadMesh(MeshSphere, sphere))

	bad := &geometry.Mesh{Indices: []uint16{0, 1, 2}}
	assert.Error(t, r.UploadMesh(MeshPrism, bad))

	r.WriteInstances(MeshSphere, make([]Instance, 3))
	r.WriteInstances(MeshSphere, make([]Instance, 2))
	assert.Len(t, r.Instances[MeshSphere], 2)
	assert.Equal(t, 1, r.Reallocations)

	r.Draw([]DrawCall{{Mesh: MeshSphere, Instances: 2}})
	r.Present()
	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, "sphere", r.Calls[0].Mesh.String())
}
