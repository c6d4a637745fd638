// Package config handles configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Player  PlayerConfig  `yaml:"player" toml:"player"`
	Scene   SceneConfig   `yaml:"scene" toml:"scene"`
	Plants  PlantsConfig  `yaml:"plants" toml:"plants"`
	Frame   FrameConfig   `yaml:"frame" toml:"frame"`
	Audio   AudioConfig   `yaml:"audio" toml:"audio"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// RenderConfig holds mesh and projection settings.
type RenderConfig struct {
	Subdivisions int        `yaml:"subdivisions" toml:"subdivisions"`
	PrismSides   int        `yaml:"prism_sides" toml:"prism_sides"`
	FOVDegrees   float32    `yaml:"fov_degrees" toml:"fov_degrees"`
	Near         float32    `yaml:"near" toml:"near"`
	Far          float32    `yaml:"far" toml:"far"`
	ClearColor   [3]float32 `yaml:"clear_color" toml:"clear_color"`
}

// Camera modes.
const (
	CameraFirstPerson = "first_person"
	CameraOrbit       = "orbit"
)

// CameraConfig selects and tunes the camera.
type CameraConfig struct {
	Mode        string  `yaml:"mode" toml:"mode"`
	EyeHeight   float32 `yaml:"eye_height" toml:"eye_height"`
	OrbitRadius float32 `yaml:"orbit_radius" toml:"orbit_radius"`
	OrbitHeight float32 `yaml:"orbit_height" toml:"orbit_height"`
	OrbitZoom   float32 `yaml:"orbit_zoom" toml:"orbit_zoom"`
}

// PlayerConfig holds movement tuning and the spawn point.
type PlayerConfig struct {
	JumpVelocity     float32    `yaml:"jump_velocity" toml:"jump_velocity"`
	RunMultiplier    float32    `yaml:"run_multiplier" toml:"run_multiplier"`
	GroundEpsilon    float32    `yaml:"ground_epsilon" toml:"ground_epsilon"`
	UpSmoothing      float32    `yaml:"up_smoothing" toml:"up_smoothing"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"`
	Spawn            [3]float32 `yaml:"spawn" toml:"spawn"`
	StartPlanet      int        `yaml:"start_planet" toml:"start_planet"`
}

// PlanetConfig describes one gravitating body.
type PlanetConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Radius   float32    `yaml:"radius" toml:"radius"`
	Gravity  float32    `yaml:"gravity" toml:"gravity"`
}

// PlantConfig describes one decorative plant.
type PlantConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Radius   float32    `yaml:"radius" toml:"radius"`
	Height   float32    `yaml:"height" toml:"height"`
}

// SceneConfig is the fixed scene populated at startup.
type SceneConfig struct {
	Planets []PlanetConfig `yaml:"planets" toml:"planets"`
	Plants  []PlantConfig  `yaml:"plants" toml:"plants"`
}

// PlantsConfig points at the L-system rule table.
type PlantsConfig struct {
	RulesFile  string `yaml:"rules_file" toml:"rules_file"`
	Iterations int    `yaml:"iterations" toml:"iterations"`
}

// FrameConfig tunes the frame scheduler.
type FrameConfig struct {
	FPSWindow  float32 `yaml:"fps_window" toml:"fps_window"`
	MaxDelta   float32 `yaml:"max_delta" toml:"max_delta"`
	ArenaChunk int     `yaml:"arena_chunk" toml:"arena_chunk"`
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	// Format of the log file: "console" or "json".
	Format    string `yaml:"format" toml:"format"`
	MaxSizeMB int    `yaml:"max_size_mb" toml:"max_size_mb"`
}

// Default returns a Config with the demo scene: a home planet at the
// origin surrounded by smaller ones.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "colere",
			Width:  800,
			Height: 800,
			VSync:  true,
		},
		Render: RenderConfig{
			Subdivisions: 3,
			PrismSides:   6,
			FOVDegrees:   60,
			Near:         0.05,
			Far:          1000,
			ClearColor:   [3]float32{84.0 / 255.0, 119.0 / 255.0, 146.0 / 255.0},
		},
		Camera: CameraConfig{
			Mode:        CameraFirstPerson,
			EyeHeight:   0.2,
			OrbitRadius: 40,
			OrbitHeight: 40,
			OrbitZoom:   5,
		},
		Player: PlayerConfig{
			JumpVelocity:     5,
			RunMultiplier:    2,
			GroundEpsilon:    0.1,
			UpSmoothing:      10,
			MouseSensitivity: 0.002,
			Spawn:            [3]float32{0, 12, 0},
		},
		Scene: SceneConfig{
			Planets: []PlanetConfig{
				{Position: [3]float32{0, 0, 0}, Radius: 10, Gravity: -9.8},
				{Position: [3]float32{30, 5, 0}, Radius: 4, Gravity: -4},
				{Position: [3]float32{-25, -8, 12}, Radius: 6, Gravity: -6},
				{Position: [3]float32{5, 20, -30}, Radius: 3, Gravity: -3},
				{Position: [3]float32{-10, 30, 25}, Radius: 5, Gravity: -5},
				{Position: [3]float32{40, -20, 30}, Radius: 8, Gravity: -8},
				{Position: [3]float32{-45, 15, -20}, Radius: 2, Gravity: -2},
				{Position: [3]float32{15, -35, -15}, Radius: 7, Gravity: -7},
			},
			Plants: []PlantConfig{
				{Position: [3]float32{0, 10, 0}, Radius: 0.1, Height: 1},
			},
		},
		Plants: PlantsConfig{
			Iterations: 3,
		},
		Frame: FrameConfig{
			FPSWindow:  0.3,
			MaxDelta:   0.25,
			ArenaChunk: 64 * 1024,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			MaxSizeMB: 50,
		},
	}
}

// Validate checks that values are usable. Problems are joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Render.Subdivisions < 0 {
		errs = append(errs, fmt.Errorf("render.subdivisions %d must not be negative", c.Render.Subdivisions))
	}
	if c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("render.fov_degrees %v out of range", c.Render.FOVDegrees))
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		errs = append(errs, fmt.Errorf("render near/far %v/%v invalid", c.Render.Near, c.Render.Far))
	}
	if c.Camera.Mode != CameraFirstPerson && c.Camera.Mode != CameraOrbit {
		errs = append(errs, fmt.Errorf("camera.mode %q unknown", c.Camera.Mode))
	}
	if len(c.Scene.Planets) == 0 {
		errs = append(errs, errors.New("scene needs at least one planet"))
	}
	if c.Player.StartPlanet < 0 || c.Player.StartPlanet >= max(len(c.Scene.Planets), 1) {
		errs = append(errs, fmt.Errorf("player.start_planet %d out of range", c.Player.StartPlanet))
	}
	if c.Frame.FPSWindow <= 0 {
		errs = append(errs, fmt.Errorf("frame.fps_window %v must be positive", c.Frame.FPSWindow))
	}
	if c.Frame.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("frame.max_delta %v must be positive", c.Frame.MaxDelta))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q unknown", c.Logging.Level))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format %q unknown", c.Logging.Format))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v out of range", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
