package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagSubdivisions = flag.Int("subdivisions", -1, "Sphere subdivision passes")
	flagPlants       = flag.String("plants", "", "Path to plant rule JSON")
	flagCamera       = flag.String("camera", "", "Camera mode (first_person, orbit)")
	flagMute         = flag.Bool("mute", false, "Disable sound effects")
	flagWriteConfig  = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSubdivisions >= 0 {
		cfg.Render.Subdivisions = *flagSubdivisions
	}
	if *flagPlants != "" {
		cfg.Plants.RulesFile = *flagPlants
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
	if *flagCamera != "" {
		cfg.Camera.Mode = *flagCamera
	}
}
