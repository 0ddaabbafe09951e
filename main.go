package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/lumin/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "lumin.toml", "path to the TOML config file")
	level := flag.Int("level", -1, "start level id, overrides dev.start_level")
	debug := flag.Bool("debug", false, "draw collision boxes and log at debug level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Dev.ShowCollisionBoxes = true
		cfg.Logging.Level = "debug"
	}
	if *level >= 0 {
		cfg.Dev.StartLevel = *level
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ebiten.SetWindowSize(int(float64(cfg.Display.Width)*cfg.Display.Scale), int(float64(cfg.Display.Height)*cfg.Display.Scale))
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetVsyncEnabled(cfg.Display.VSync)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game, err := NewGame(cfg, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	logger.Info("starting",
		zap.String("config", *configPath),
		zap.Int("level", cfg.Dev.StartLevel),
		zap.Bool("hot_reload", cfg.Dev.HotReload),
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}
