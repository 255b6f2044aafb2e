// Package config handles editor settings: defaults, an optional YAML file and
// command line overrides.
package config

import (
	"fmt"

	"github.com/milk9111/tiledit/levels"
)

// Config holds all editor settings.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Map     MapConfig     `yaml:"map"`
	Logging LoggingConfig `yaml:"logging"`
}

// EditorConfig holds interactive session settings.
type EditorConfig struct {
	TileSize     int    `yaml:"tile_size"`
	SheetTile    int    `yaml:"sheet_tile"` // tile size in tileset images
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	HistoryLimit int    `yaml:"history_limit"`
	ShiftMode    string `yaml:"shift_mode"` // blank or wrap
	BrushSize    int    `yaml:"brush_size"`
	ShowGrid     bool   `yaml:"show_grid"`
	Watch        bool   `yaml:"watch"` // reload the map when it changes on disk
}

// MapConfig describes the map opened at startup.
type MapConfig struct {
	Path       string `yaml:"path"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Layers     int    `yaml:"layers"`
	TilesetDir string `yaml:"tileset_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TileSize:     32,
			SheetTile:    16,
			WindowWidth:  1280,
			WindowHeight: 800,
			HistoryLimit: 200,
			ShiftMode:    "blank",
			BrushSize:    1,
			ShowGrid:     true,
		},
		Map: MapConfig{
			Width:      32,
			Height:     18,
			Layers:     2,
			TilesetDir: "assets/tilesets",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the editor cannot start with.
func (c *Config) Validate() error {
	m := c.Map
	if m.Width < 1 || m.Height < 1 || m.Width > levels.MaxDimension || m.Height > levels.MaxDimension {
		return fmt.Errorf("map size %dx%d out of range (1..%d)", m.Width, m.Height, levels.MaxDimension)
	}
	if err := levels.CheckLayers(m.Layers); err != nil {
		return fmt.Errorf("map layers: %w", err)
	}
	if c.Editor.TileSize < 1 || c.Editor.SheetTile < 1 {
		return fmt.Errorf("tile sizes must be positive, got %d and %d", c.Editor.TileSize, c.Editor.SheetTile)
	}
	if c.Editor.BrushSize < 1 {
		return fmt.Errorf("brush size must be at least 1, got %d", c.Editor.BrushSize)
	}
	return nil
}
