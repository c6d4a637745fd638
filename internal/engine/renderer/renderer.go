// Package renderer is the OpenGL implementation of render.Sink: instanced
// lit meshes for planets and plants plus a textured quad for the overlay.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/colere/internal/engine/geometry"
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/internal/engine/shader"
	"github.com/Faultbox/colere/internal/logger"
)

// Surface is the window side the renderer draws into.
type Surface interface {
	Size() (int, int)
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	ClearColor [3]float32
	// Colors per mesh, RGB.
	MeshColors [render.MeshCount][3]float32
}

// DefaultMeshColors are the planet and plant tints.
var DefaultMeshColors = [render.MeshCount][3]float32{
	render.MeshSphere: {0.55, 0.62, 0.45},
	render.MeshPrism:  {0.30, 0.55, 0.25},
}

// gpuMesh is one uploaded mesh with its instance stream.
type gpuMesh struct {
	vao, vbo, ebo uint32
	instanceVBO   uint32
	instanceBuf   render.DynamicBuffer
	indexCount    int32
	instances     int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	surface Surface
	log     *zap.Logger

	meshProgram    *shader.Program
	overlayProgram *shader.Program
	meshes         [render.MeshCount]gpuMesh
	uniforms       render.Uniforms

	overlayVAO     uint32
	overlayTexture uint32
	overlayW       int
	overlayH       int
}

// New creates the renderer. The GL context must be current.
func New(cfg Config, surface Surface) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		surface: surface,
		log:     logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		r.log.Error("gl init failed", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)

	var err error
	r.meshProgram, err = shader.Compile(meshVertexShader, meshFragmentShader,
		"u_camera", "u_camera_position", "u_time", "u_color")
	if err != nil {
		r.log.Error("mesh shader failed", zap.Error(err))
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.overlayProgram, err = shader.Compile(overlayVertexShader, overlayFragmentShader,
		"u_rect", "u_uv_scale", "u_texture")
	if err != nil {
		r.meshProgram.Delete()
		r.log.Error("overlay shader failed", zap.Error(err))
		return nil, fmt.Errorf("overlay program: %w", err)
	}
	r.log.Info("shaders linked")

	r.createOverlay()
	return r, nil
}

// Close frees GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for i := range r.meshes {
		m := &r.meshes[i]
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
			buffers := []uint32{m.vbo, m.ebo, m.instanceVBO}
			gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
		}
	}
	if r.overlayVAO != 0 {
		gl.DeleteVertexArrays(1, &r.overlayVAO)
	}
	if r.overlayTexture != 0 {
		gl.DeleteTextures(1, &r.overlayTexture)
	}
	r.meshProgram.Delete()
	r.overlayProgram.Delete()
}

// UploadMesh creates the vertex, index and instance buffers for a mesh.
func (r *Renderer) UploadMesh(id render.MeshID, m *geometry.Mesh) error {
	if id < 0 || id >= render.MeshCount {
		return fmt.Errorf("unknown mesh %d", id)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	gm := &r.meshes[id]
	if gm.vao == 0 {
		gl.GenVertexArrays(1, &gm.vao)
		gl.GenBuffers(1, &gm.vbo)
		gl.GenBuffers(1, &gm.ebo)
		gl.GenBuffers(1, &gm.instanceVBO)
	}

	gl.BindVertexArray(gm.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*geometry.VertexSize,
		unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, geometry.VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, geometry.VertexSize, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2,
		unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	gm.indexCount = int32(len(m.Indices))

	gl.BindBuffer(gl.ARRAY_BUFFER, gm.instanceVBO)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribDivisor(2, 1)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribDivisor(3, 1)
	setInstanceOffset(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("mesh uploaded",
		zap.Stringer("mesh", id),
		zap.Uint32("vao", gm.vao),
		zap.Int32("indices", gm.indexCount))
	return nil
}

// setInstanceOffset points the instance attributes at the given instance
// in the bound instance buffer.
func setInstanceOffset(first int) {
	base := uintptr(first * render.InstanceSize)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, render.InstanceSize, base)
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, render.InstanceSize, base+12)
}

// WriteUniforms stores the frame's uniforms for the next Draw.
func (r *Renderer) WriteUniforms(u *render.Uniforms) {
	r.uniforms = *u
}

// WriteInstances uploads instance data, growing the buffer when needed.
func (r *Renderer) WriteInstances(id render.MeshID, data []render.Instance) {
	gm := &r.meshes[id]
	gm.instances = len(data)
	if len(data) == 0 || gm.vao == 0 {
		return
	}
	size := len(data) * render.InstanceSize
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.instanceVBO)
	if gm.instanceBuf.Reserve(size) {
		gl.BufferData(gl.ARRAY_BUFFER, gm.instanceBuf.Size(), nil, gl.DYNAMIC_DRAW)
		r.log.Debug("instance buffer grown",
			zap.Stringer("mesh", id),
			zap.Int("bytes", gm.instanceBuf.Size()))
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw clears the frame and issues the draw calls in order.
func (r *Renderer) Draw(calls []render.DrawCall) {
	w, h := r.surface.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.meshProgram
	p.Use()
	u := &r.uniforms
	gl.UniformMatrix4fv(p.Uniform("u_camera"), 1, false, u.Camera.Ptr())
	gl.Uniform3f(p.Uniform("u_camera_position"), u.CameraPosition.X, u.CameraPosition.Y, u.CameraPosition.Z)
	gl.Uniform1f(p.Uniform("u_time"), u.Time)

	for _, call := range calls {
		if call.Mesh < 0 || call.Mesh >= render.MeshCount {
			continue
		}
		gm := &r.meshes[call.Mesh]
		if gm.vao == 0 || call.Instances == 0 {
			continue
		}
		c := r.config.MeshColors[call.Mesh]
		gl.Uniform3f(p.Uniform("u_color"), c[0], c[1], c[2])

		gl.BindVertexArray(gm.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.instanceVBO)
		setInstanceOffset(call.InstanceOffset)
		gl.DrawElementsInstanced(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_SHORT, nil, int32(call.Instances))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DrawOverlay blits the overlay panel in the top-left corner. A nil image
// draws nothing.
func (r *Renderer) DrawOverlay(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTexture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w > r.overlayW || h > r.overlayH {
		r.overlayW, r.overlayH = max(w, r.overlayW), max(h, r.overlayH)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(r.overlayW), int32(r.overlayH), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	sw, sh := r.surface.Size()
	if sw == 0 || sh == 0 {
		return
	}
	// Quad in NDC: x, y of the top-left corner, then width and height.
	x0 := float32(-1)
	y0 := float32(1)
	qw := 2 * float32(w) / float32(sw)
	qh := 2 * float32(h) / float32(sh)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p := r.overlayProgram
	p.Use()
	gl.Uniform4f(p.Uniform("u_rect"), x0, y0, qw, qh)
	// The panel may be smaller than the texture.
	gl.Uniform2f(p.Uniform("u_uv_scale"), float32(w)/float32(r.overlayW), float32(h)/float32(r.overlayH))
	gl.Uniform1i(p.Uniform("u_texture"), 0)
	gl.BindVertexArray(r.overlayVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Present swaps buffers.
func (r *Renderer) Present() {
	r.surface.SwapBuffers()
}

func (r *Renderer) createOverlay() {
	// Corners come from gl_VertexID, so the VAO has no buffers.
	gl.GenVertexArrays(1, &r.overlayVAO)

	gl.GenTextures(1, &r.overlayTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.overlayTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}
