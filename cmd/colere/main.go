// Package main is the entry point for the colere planet walker.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/colere/internal/config"
	"github.com/Faultbox/colere/internal/engine/audio/device"
	"github.com/Faultbox/colere/internal/engine/render"
	"github.com/Faultbox/colere/internal/engine/renderer"
	"github.com/Faultbox/colere/internal/engine/window"
	"github.com/Faultbox/colere/internal/game"
	"github.com/Faultbox/colere/internal/game/plants"
	"github.com/Faultbox/colere/internal/game/world"
	"github.com/Faultbox/colere/internal/logger"
)

var (
	flagHeadless = flag.Bool("headless", false, "Run without a window against an in-memory renderer")
	flagFrames   = flag.Int("frames", 600, "Frames to run in headless mode")
)

// headlessStep is the fixed frame time of the headless clock.
const headlessStep = 1.0 / 60

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Write config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config written to %s\n", path)
		return
	}

	// Initialize logger
	logFile := logger.DefaultFileConfig(cfg.Logging.LogFile)
	logFile.Format = cfg.Logging.Format
	if cfg.Logging.MaxSizeMB > 0 {
		logFile.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	if err := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Console: true,
		File:    logFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== colere ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := world.New(cfg.Scene, cfg.Player)
	if err != nil {
		logger.Fatal("failed to create world", zap.Error(err))
	}

	if *flagHeadless {
		runHeadless(ctx, cfg, w)
		return
	}

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		logger.Fatal("failed to create window", zap.Error(err))
	}
	defer win.Close()

	// Renderer must come AFTER window, since the GL context must exist
	rend, err := renderer.New(renderer.Config{
		ClearColor: cfg.Render.ClearColor,
		MeshColors: renderer.DefaultMeshColors,
	}, win)
	if err != nil {
		win.Close()
		logger.Fatal("failed to create renderer", zap.Error(err))
	}
	defer rend.Close()

	g, err := game.New(cfg, w, win, rend)
	if err != nil {
		rend.Close()
		win.Close()
		logger.Fatal("failed to create game", zap.Error(err))
	}
	loadPlants(ctx, cfg, g)

	if cfg.Audio.Enabled {
		sfx := device.New(cfg.Audio.Volume)
		if err := sfx.Init(); err != nil {
			logger.Warn("sound effects disabled", zap.Error(err))
		} else {
			defer sfx.Close()
			g.SetSounds(sfx)
		}
	}

	g.Run(ctx)
	logger.Info("game closed normally")
}

// runHeadless drives the frame loop with a fixed-step clock and no GPU.
func runHeadless(ctx context.Context, cfg *config.Config, w *world.World) {
	rec := render.NewRecorder()
	platform := game.NewHeadless(headlessStep, *flagFrames, cfg.Window.Width, cfg.Window.Height)

	g, err := game.New(cfg, w, platform, rec)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}
	loadPlants(ctx, cfg, g)

	g.Run(ctx)

	p := g.World().Player
	pos := p.Position.Array()
	logger.Info("headless run finished",
		zap.Int("frames", rec.Frames),
		zap.Float32("fps", g.FPS().Average),
		zap.Int("planet", p.CurrentPlanet),
		zap.Bool("on_ground", p.OnGround),
		zap.Float32s("position", pos[:]),
		zap.Int("instance_reallocations", rec.Reallocations))
}

// loadPlants installs the rule table, if configured, and watches it for
// edits. A broken table is logged and skipped; plants still render.
func loadPlants(ctx context.Context, cfg *config.Config, g *game.Game) {
	path := cfg.Plants.RulesFile
	if path == "" {
		return
	}
	rules, err := plants.Load(path)
	if err != nil {
		logger.Warn("plant rules not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := g.SetPlants(rules); err != nil {
		logger.Warn("plant rules rejected", zap.String("path", path), zap.Error(err))
		return
	}

	watcher, err := plants.Watch(ctx, path, logger.Named("plants"))
	if err != nil {
		logger.Warn("plant rules not watched", zap.String("path", path), zap.Error(err))
		return
	}
	g.WatchPlants(watcher.Updates())
}
