// Package game implements the frame scheduler: it samples time and input,
// advances the world, and hands the frame's uniforms, instances and draw
// calls to the render sink.
package game

import (
	"context"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/colere/internal/config"
	"github.com/Faultbox/colere/internal/engine/arena"
	"github.com/Faultbox/colere/internal/engine/camera"
	"github.com/Faultbox/colere/internal/engine/geometry"
	"github.com/Faultbox/colere/internal/engine/input"
	"github.com/Faultbox/colere/internal/engine/overlay"
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/internal/game/plants"
	"github.com/Faultbox/colere/internal/game/world"
	"github.com/Faultbox/colere/internal/logger"
)

// MaxFrameDelta caps the time step fed to the simulation, so a stall
// (window drag, breakpoint) does not launch the player through a planet.
const MaxFrameDelta = 0.25

// plantExpansionLimit bounds the L-system string built from the rule table.
const plantExpansionLimit = 1 << 16

// Game owns everything the frame loop touches.
type Game struct {
	cfg      *config.Config
	world    *world.World
	platform Platform
	sink     render.Sink

	input   *input.Snapshot
	arena   *arena.Arena
	overlay *overlay.Overlay
	panel   *image.RGBA

	firstPerson *camera.FirstPerson
	orbit       *camera.Orbit
	cameraMode  string

	meshes    [render.MeshCount]*geometry.Mesh
	instances [render.MeshCount][]render.Instance
	calls     []render.DrawCall
	uniforms  render.Uniforms

	fps      FPSCounter
	maxDelta float32
	frame    uint64
	start    float64
	prevTime float64
	elapsed  float32

	plantRules   *plants.Config
	plantSymbols string
	plantUpdates <-chan *plants.Config

	sounds Sounds

	log *zap.Logger
}

// New builds the meshes, uploads them to the sink and prepares the frame
// state. The platform clock starts counting from here.
func New(cfg *config.Config, w *world.World, p Platform, s render.Sink) (*Game, error) {
	log := logger.Named("game")

	sphere, err := geometry.Sphere(cfg.Render.Subdivisions)
	if err != nil {
		return nil, fmt.Errorf("build sphere: %w", err)
	}
	prism := geometry.Prism(cfg.Render.PrismSides)

	g := &Game{
		cfg:         cfg,
		world:       w,
		platform:    p,
		sink:        s,
		input:       input.New(),
		arena:       arena.New(cfg.Frame.ArenaChunk),
		overlay:     overlay.New(),
		firstPerson: camera.NewFirstPerson(),
		orbit:       camera.NewOrbit(),
		cameraMode:  cfg.Camera.Mode,
		fps:         NewFPSCounter(cfg.Frame.FPSWindow),
		maxDelta:    cfg.Frame.MaxDelta,
		log:         log,
	}
	if g.maxDelta <= 0 {
		g.maxDelta = MaxFrameDelta
	}
	g.meshes[render.MeshSphere] = sphere
	g.meshes[render.MeshPrism] = prism
	g.configureCameras()

	for id, m := range g.meshes {
		if err := s.UploadMesh(render.MeshID(id), m); err != nil {
			return nil, fmt.Errorf("upload %s mesh: %w", render.MeshID(id), err)
		}
		log.Info("mesh uploaded",
			zap.Stringer("mesh", render.MeshID(id)),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("triangles", m.TriangleCount()))
	}

	g.start = p.Now()
	g.prevTime = g.start
	return g, nil
}

func (g *Game) configureCameras() {
	r := &g.cfg.Render
	fp := g.firstPerson
	fp.FOV = r.FOVDegrees * math32.Pi / 180
	fp.Near, fp.Far = r.Near, r.Far
	if g.cfg.Camera.EyeHeight > 0 {
		fp.EyeHeight = g.cfg.Camera.EyeHeight
	}

	c := &g.cfg.Camera
	if c.OrbitRadius > 0 {
		g.orbit.Radius = c.OrbitRadius
	}
	if c.OrbitHeight != 0 {
		g.orbit.Height = c.OrbitHeight
	}
	if c.OrbitZoom > 0 {
		g.orbit.Zoom = c.OrbitZoom
	}
	g.orbit.Far = r.Far
}

// Input returns the snapshot the platform writes into.
func (g *Game) Input() *input.Snapshot { return g.input }

// World returns the simulated world.
func (g *Game) World() *world.World { return g.world }

// FPS returns the frame counter.
func (g *Game) FPS() FPSCounter { return g.fps }

// FrameCount returns how many frames have completed.
func (g *Game) FrameCount() uint64 { return g.frame }

// CameraMode returns the active camera mode.
func (g *Game) CameraMode() string { return g.cameraMode }

// Run drives frames until the platform or the player asks to close, or ctx
// is cancelled.
func (g *Game) Run(ctx context.Context) {
	g.log.Info("starting frame loop", zap.String("camera", g.cameraMode))
	for {
		select {
		case <-ctx.Done():
			g.log.Info("frame loop cancelled", zap.Uint64("frames", g.frame))
			return
		default:
		}

		g.platform.PollEvents(g.input)
		if g.input.Quit || g.platform.ShouldClose() {
			g.log.Info("frame loop finished",
				zap.Uint64("frames", g.frame),
				zap.Float32("fps", g.fps.Average))
			return
		}
		g.Frame()
	}
}

// Frame runs one frame in a fixed order: timing, overlay declaration,
// simulation, camera, instance preparation, submission, present and the
// arena reset.
func (g *Game) Frame() {
	now := g.platform.Now()
	dt := float32(now - g.prevTime)
	g.prevTime = now
	g.elapsed = float32(now - g.start)
	if g.fps.Tick(dt) {
		g.log.Debug("fps", zap.Float32("average", g.fps.Average))
	}
	dt = min(max(dt, 0), g.maxDelta)

	g.handleControls()
	g.pollPlants()

	g.declareOverlay()

	g.world.UpdatePlayer(g.input, dt)
	g.world.ResolveCollisions()
	g.input.EndFrame()
	g.playEvents(g.world.Player.Events)

	cam := g.updateCamera()
	width, height := g.platform.Size()
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	vp, eye := cam.ViewProjection(aspect)
	g.uniforms = render.Uniforms{Camera: vp, CameraPosition: eye, Time: g.elapsed}

	g.instances[render.MeshSphere] = g.world.PlanetInstances(g.instances[render.MeshSphere][:0])
	g.instances[render.MeshPrism] = g.world.PlantInstances(g.instances[render.MeshPrism][:0])
	g.calls = g.calls[:0]
	for id, inst := range g.instances {
		if len(inst) == 0 {
			continue
		}
		g.calls = append(g.calls, render.DrawCall{Mesh: render.MeshID(id), Instances: len(inst)})
	}

	g.sink.WriteUniforms(&g.uniforms)
	for id, inst := range g.instances {
		g.sink.WriteInstances(render.MeshID(id), inst)
	}
	g.sink.Draw(g.calls)
	if g.overlay.Enabled {
		g.panel = overlay.Rasterize(g.overlay.Lines(), g.panel)
		g.sink.DrawOverlay(g.panel)
	} else {
		g.sink.DrawOverlay(nil)
	}

	g.sink.Present()

	g.overlay.Begin()
	g.arena.Reset()
	g.frame++
}

// handleControls applies the keys that steer the frame loop rather than the
// player. A click while the pointer is free only captures it.
func (g *Game) handleControls() {
	in := g.input
	if in.Pressed(input.KeyEscape) && in.PointerLocked {
		g.setPointerLock(false)
	}
	if in.Pressed(input.KeyMouseLeft) && !in.PointerLocked {
		g.setPointerLock(true)
		in.Keys[input.KeyMouseLeft].Pressed = false
		in.Keys[input.KeyMouseLeft].Held = true
	}
	if in.Pressed(input.KeyTab) {
		if g.cameraMode == config.CameraOrbit {
			g.cameraMode = config.CameraFirstPerson
		} else {
			g.cameraMode = config.CameraOrbit
		}
		g.log.Debug("camera mode", zap.String("mode", g.cameraMode))
	}
	if in.Wheel != 0 && g.cameraMode == config.CameraOrbit {
		g.orbit.HandleZoom(in.Wheel)
	}
}

func (g *Game) setPointerLock(locked bool) {
	g.platform.SetPointerLock(locked)
	g.input.SetPointerLock(locked)
}

func (g *Game) updateCamera() camera.Camera {
	if g.cameraMode == config.CameraOrbit {
		g.orbit.SetTime(g.elapsed)
		return g.orbit
	}
	p := &g.world.Player
	g.firstPerson.Follow(p.Position, p.Look, p.Up)
	return g.firstPerson
}

func (g *Game) declareOverlay() {
	o := g.overlay
	o.Begin()
	if !o.Enabled {
		return
	}
	a := g.arena
	p := &g.world.Player
	o.Text(a.Sprintf("FPS: %.0f", g.fps.Average))
	o.Text(a.Sprintf("pos: %.2f %.2f %.2f", p.Position.X, p.Position.Y, p.Position.Z))
	o.Text(a.Sprintf("planet: %d  ground: %t", p.CurrentPlanet, p.OnGround))
	o.Text(a.Sprintf("camera: %s", g.cameraMode))
	if g.plantRules != nil {
		o.Text(a.Sprintf("plant: %d symbols", len(g.plantSymbols)))
	}
}
