package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tiledit/config"
	"github.com/milk9111/tiledit/levels"
	"github.com/milk9111/tiledit/logger"
	"github.com/milk9111/tiledit/sysclip"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

const demoMap = "demo.json"

// openMap loads the map named on the command line. A path that does not
// exist yet starts a blank map that will be saved there; no path opens the
// built-in demo.
func openMap(cfg *config.Config, log *zap.Logger) (*tilemap.Map, []levels.Tileset, error) {
	path := cfg.Map.Path
	if path == "" {
		log.Info("opening built-in map", zap.String("name", demoMap))
		return levels.LoadBuiltin(demoMap)
	}
	m, tilesets, err := levels.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("new map", zap.String("path", path),
			zap.Int("width", cfg.Map.Width),
			zap.Int("height", cfg.Map.Height),
			zap.Int("layers", cfg.Map.Layers))
		return tilemap.NewWithLayers(cfg.Map.Width, cfg.Map.Height, cfg.Map.Layers), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	log.Info("map loaded", zap.String("path", path),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("layers", m.Layers))
	return m, tilesets, nil
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Named("editor")

	m, tilesets, err := openMap(cfg, log)
	if err != nil {
		log.Fatal("cannot open map", zap.String("path", cfg.Map.Path), zap.Error(err))
	}

	game := newEditorGame(cfg, m, tilesets, log)
	if err := game.buildUI(); err != nil {
		log.Fatal("cannot build ui", zap.Error(err))
	}
	defer game.close()
	if cfg.Editor.Watch && cfg.Map.Path != "" {
		game.watch(filepath.Dir(cfg.Map.Path))
	}
	if err := sysclip.Init(); err != nil {
		log.Warn("system clipboard unavailable, Ctrl+Shift+C/V disabled", zap.Error(err))
	}

	ebiten.SetWindowSize(cfg.Editor.WindowWidth, cfg.Editor.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(game.title())
	log.Info("editor starting")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("editor stopped", zap.Error(err))
	}
}
