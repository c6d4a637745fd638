package render

import (
	"image"

	"github.com/Faultbox/colere/internal/engine/geometry"
)

// Recorder is a Sink that keeps what it was given. The headless mode and
// the tests draw into it.
type Recorder struct {
	Meshes    [MeshCount]*geometry.Mesh
	Uniforms  Uniforms
	Instances [MeshCount][]Instance
	Buffers   [MeshCount]DynamicBuffer
	Calls     []DrawCall
	Overlay   *image.RGBA
	Frames    int

	// Reallocations counts instance buffer growths.
	Reallocations int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) UploadMesh(id MeshID, m *geometry.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.Meshes[id] = m
	return nil
}

func (r *Recorder) WriteUniforms(u *Uniforms) {
	r.Uniforms = *u
}

func (r *Recorder) WriteInstances(id MeshID, data []Instance) {
	if r.Buffers[id].Reserve(len(data) * InstanceSize) {
		r.Reallocations++
	}
	r.Instances[id] = append(r.Instances[id][:0], data...)
}

func (r *Recorder) Draw(calls []DrawCall) {
	r.Calls = append(r.Calls[:0], calls...)
}

func (r *Recorder) DrawOverlay(img *image.RGBA) {
	r.Overlay = img
}

func (r *Recorder) Present() {
	r.Frames++
}
