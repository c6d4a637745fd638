package game

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/colere/internal/config"
	"github.com/Faultbox/colere/internal/engine/geometry"
	"github.com/Faultbox/colere/internal/engine/input"
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/internal/game/plants"
	"github.com/Faultbox/colere/internal/game/world"
)

// fakePlatform advances its clock by step on every Now call after the
// first and closes after closeAfter polls.
type fakePlatform struct {
	now        float64
	step       float64
	polls      int
	closeAfter int
	locked     bool
	onPoll     func(poll int, in *input.Snapshot)
}

func (p *fakePlatform) Now() float64 {
	t := p.now
	p.now += p.step
	return t
}

func (p *fakePlatform) PollEvents(in *input.Snapshot) {
	p.polls++
	if p.onPoll != nil {
		p.onPoll(p.polls, in)
	}
}

func (p *fakePlatform) ShouldClose() bool     { return p.closeAfter > 0 && p.polls > p.closeAfter }
func (p *fakePlatform) Size() (int, int)      { return 800, 600 }
func (p *fakePlatform) SetPointerLock(b bool) { p.locked = b }

// traceSink records the order of sink calls on top of a Recorder.
type traceSink struct {
	*render.Recorder
	trace     []string
	onPresent func()
}

func (s *traceSink) WriteUniforms(u *render.Uniforms) {
	s.trace = append(s.trace, "uniforms")
	s.Recorder.WriteUniforms(u)
}

func (s *traceSink) WriteInstances(id render.MeshID, data []render.Instance) {
	s.trace = append(s.trace, "instances:"+id.String())
	s.Recorder.WriteInstances(id, data)
}

func (s *traceSink) Draw(calls []render.DrawCall) {
	s.trace = append(s.trace, "draw")
	s.Recorder.Draw(calls)
}

func (s *traceSink) DrawOverlay(img *image.RGBA) {
	s.trace = append(s.trace, "overlay")
	s.Recorder.DrawOverlay(img)
}

func (s *traceSink) Present() {
	s.trace = append(s.trace, "present")
	if s.onPresent != nil {
		s.onPresent()
	}
	s.Recorder.Present()
}

func newGame(t *testing.T, cfg *config.Config, p Platform, s render.Sink) *Game {
	t.Helper()
	w, err := world.New(cfg.Scene, cfg.Player)
	require.NoError(t, err)
	g, err := New(cfg, w, p, s)
	require.NoError(t, err)
	return g
}

func TestFPSCounterCarriesRemainder(t *testing.T) {
	f := NewFPSCounter(0.3)

	assert.False(t, f.Tick(0.125))
	assert.False(t, f.Tick(0.125))
	require.True(t, f.Tick(0.125))
	assert.InDelta(t, 3/0.375, f.Average, 1e-4)
	assert.InDelta(t, 0.075, f.Accum, 1e-6)
	assert.Zero(t, f.Samples)

	// Without the carried 0.075 two more ticks would not cross the window.
	assert.False(t, f.Tick(0.125))
	require.True(t, f.Tick(0.125))
	assert.InDelta(t, 2/0.325, f.Average, 1e-3)
}

func TestFPSCounterDefaultWindow(t *testing.T) {
	f := NewFPSCounter(0)
	assert.Equal(t, float32(DefaultFPSWindow), f.Window)
}

func TestNewUploadsMeshes(t *testing.T) {
	cfg := config.Default()
	rec := render.NewRecorder()
	newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, rec)

	sphere := rec.Meshes[render.MeshSphere]
	require.NotNil(t, sphere)
	assert.Equal(t, 20*64, sphere.TriangleCount())
	require.NotNil(t, rec.Meshes[render.MeshPrism])
}

func TestNewRejectsDeepSubdivision(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Subdivisions = 7
	w, err := world.New(cfg.Scene, cfg.Player)
	require.NoError(t, err)

	_, err = New(cfg, w, &fakePlatform{}, render.NewRecorder())
	assert.ErrorIs(t, err, geometry.ErrTooManyVertices)
}

func TestFrameOrder(t *testing.T) {
	cfg := config.Default()
	sink := &traceSink{Recorder: render.NewRecorder()}
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, sink)

	var usedAtPresent int
	sink.onPresent = func() { usedAtPresent = g.arena.Used() }

	g.Frame()

	assert.Equal(t, []string{
		"uniforms",
		"instances:sphere",
		"instances:prism",
		"draw",
		"overlay",
		"present",
	}, sink.trace)
	assert.Positive(t, usedAtPresent, "overlay text lives in the arena until present")
	assert.Zero(t, g.arena.Used())
	assert.Equal(t, uint64(1), g.arena.Frames())
	assert.Equal(t, uint64(1), g.FrameCount())
}

func TestFrameSubmitsScene(t *testing.T) {
	cfg := config.Default()
	rec := render.NewRecorder()
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, rec)

	g.Frame()

	require.Len(t, rec.Calls, 2)
	assert.Equal(t, render.DrawCall{Mesh: render.MeshSphere, Instances: len(cfg.Scene.Planets)}, rec.Calls[0])
	assert.Equal(t, render.DrawCall{Mesh: render.MeshPrism, Instances: len(cfg.Scene.Plants)}, rec.Calls[1])
	assert.Len(t, rec.Instances[render.MeshSphere], len(cfg.Scene.Planets))
	assert.Equal(t, 1, rec.Frames)
	require.NotNil(t, rec.Overlay)
	assert.Positive(t, rec.Overlay.Bounds().Dx())

	p := &g.World().Player
	assert.True(t, rec.Uniforms.CameraPosition.ApproxEqual(p.Eye(cfg.Camera.EyeHeight), 1e-4))
}

func TestFrameClampsSimulationDelta(t *testing.T) {
	cfg := config.Default()
	plat := &fakePlatform{step: 10}
	g := newGame(t, cfg, plat, render.NewRecorder())
	require.False(t, g.World().Player.OnGround)

	g.Frame()

	gravity := cfg.Scene.Planets[0].Gravity
	assert.InDelta(t, gravity*MaxFrameDelta, g.World().Player.LocalVelocity.Y, 1e-4)
	assert.InDelta(t, 1.0/10, g.FPS().Average, 1e-4, "fps sees the real delta")
}

func TestInputEdgeResetOncePerFrame(t *testing.T) {
	cfg := config.Default()
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, render.NewRecorder())
	in := g.Input()

	in.Press(input.KeyW)
	pressedFrames := 0
	for range 5 {
		if in.Pressed(input.KeyW) {
			pressedFrames++
		}
		g.Frame()
		assert.False(t, in.Pressed(input.KeyW))
		assert.True(t, in.Held(input.KeyW))
	}
	assert.Equal(t, 1, pressedFrames)
}

func TestControls(t *testing.T) {
	cfg := config.Default()
	plat := &fakePlatform{step: 1.0 / 60}
	g := newGame(t, cfg, plat, render.NewRecorder())
	in := g.Input()

	// First click captures the pointer and does not select a planet.
	in.Press(input.KeyMouseLeft)
	g.Frame()
	assert.True(t, plat.locked)
	assert.True(t, in.PointerLocked)
	in.Release(input.KeyMouseLeft)
	g.Frame()

	in.Press(input.KeyEscape)
	g.Frame()
	assert.False(t, plat.locked)
	assert.False(t, in.PointerLocked)

	in.Press(input.KeyTab)
	g.Frame()
	assert.Equal(t, config.CameraOrbit, g.CameraMode())

	in.Release(input.KeyTab)
	g.Frame()
	in.Press(input.KeyTab)
	g.Frame()
	assert.Equal(t, config.CameraFirstPerson, g.CameraMode())
}

func TestOrbitCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Mode = config.CameraOrbit
	rec := render.NewRecorder()
	g := newGame(t, cfg, &fakePlatform{step: 0.5}, rec)

	g.Frame()

	assert.InDelta(t, cfg.Camera.OrbitHeight, rec.Uniforms.CameraPosition.Y, 1e-4)
	assert.InDelta(t, 0.5, rec.Uniforms.Time, 1e-6)

	zoom := g.orbit.Zoom
	g.Input().Scroll(1)
	g.Frame()
	assert.Less(t, g.orbit.Zoom, zoom)
}

func TestRunStopsWhenPlatformCloses(t *testing.T) {
	cfg := config.Default()
	rec := render.NewRecorder()
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60, closeAfter: 3}, rec)

	g.Run(context.Background())
	assert.Equal(t, 3, rec.Frames)
}

func TestRunStopsOnQuit(t *testing.T) {
	cfg := config.Default()
	rec := render.NewRecorder()
	plat := &fakePlatform{step: 1.0 / 60, onPoll: func(poll int, in *input.Snapshot) {
		if poll == 2 {
			in.Quit = true
		}
	}}
	g := newGame(t, cfg, plat, rec)

	g.Run(context.Background())
	assert.Equal(t, 1, rec.Frames)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	rec := render.NewRecorder()
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g.Run(ctx)
	assert.Zero(t, rec.Frames)
}

func TestHeadlessRun(t *testing.T) {
	cfg := config.Default()
	rec := render.NewRecorder()
	g := newGame(t, cfg, NewHeadless(1.0/60, 30, 320, 240), rec)

	g.Run(context.Background())
	assert.Equal(t, 30, rec.Frames)
	assert.InDelta(t, 60, g.FPS().Average, 1)
}

func TestPlantsReload(t *testing.T) {
	cfg := config.Default()
	g := newGame(t, cfg, &fakePlatform{step: 1.0 / 60}, render.NewRecorder())

	algae := &plants.Config{
		Initial: "A",
		Rules:   []plants.Rule{{Name: 'A', Replacement: "AB"}, {Name: 'B', Replacement: "A"}},
	}
	require.NoError(t, g.SetPlants(algae))
	assert.Equal(t, "ABAAB", g.PlantSymbols())

	updates := make(chan *plants.Config, 1)
	g.WatchPlants(updates)
	updates <- &plants.Config{Initial: "F"}
	g.Frame()
	assert.Equal(t, "F", g.PlantSymbols())

	close(updates)
	g.Frame()
	assert.Equal(t, "F", g.PlantSymbols())
}
