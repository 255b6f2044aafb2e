package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.TileSize != 32 {
		t.Errorf("expected tile size 32, got %d", cfg.Editor.TileSize)
	}
	if cfg.Editor.HistoryLimit != 200 {
		t.Errorf("expected history limit 200, got %d", cfg.Editor.HistoryLimit)
	}
	if cfg.Editor.ShiftMode != "blank" {
		t.Errorf("expected shift mode blank, got %s", cfg.Editor.ShiftMode)
	}
	if cfg.Map.Layers != 2 {
		t.Errorf("expected 2 layers, got %d", cfg.Map.Layers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
editor:
  tile_size: 16
  shift_mode: wrap
  show_grid: false

map:
  path: maps/cave.json
  width: 64

logging:
  level: debug
  log_file: tiledit.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Editor.TileSize != 16 {
		t.Errorf("expected tile size 16, got %d", cfg.Editor.TileSize)
	}
	if cfg.Editor.ShiftMode != "wrap" {
		t.Errorf("expected shift mode wrap, got %s", cfg.Editor.ShiftMode)
	}
	if cfg.Editor.ShowGrid {
		t.Error("expected show_grid false")
	}
	if cfg.Map.Path != "maps/cave.json" || cfg.Map.Width != 64 {
		t.Errorf("unexpected map config %+v", cfg.Map)
	}
	// keys absent from the file keep their defaults
	if cfg.Map.Height != 18 || cfg.Editor.HistoryLimit != 200 {
		t.Errorf("defaults should survive a partial file, got %+v %+v", cfg.Map, cfg.Editor)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "tiledit.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("editor: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Editor.BrushSize = 3
	cfg.Map.TilesetDir = "art/tiles"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestApplyFlagsDefaultsUntouched(t *testing.T) {
	cfg := Default()
	applyFlags(cfg)
	if *cfg != *Default() {
		t.Errorf("unset flags should not change config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative_width", mutate: func(c *Config) { c.Map.Width = -1 }, wantErr: true},
		{name: "zero_height", mutate: func(c *Config) { c.Map.Height = 0 }, wantErr: true},
		{name: "too_wide", mutate: func(c *Config) { c.Map.Width = 5000 }, wantErr: true},
		{name: "zero_layers", mutate: func(c *Config) { c.Map.Layers = 0 }, wantErr: true},
		{name: "too_many_layers", mutate: func(c *Config) { c.Map.Layers = 100000 }, wantErr: true},
		{name: "zero_tile_size", mutate: func(c *Config) { c.Editor.TileSize = 0 }, wantErr: true},
		{name: "zero_brush", mutate: func(c *Config) { c.Editor.BrushSize = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveSession(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		tileSize int
	}{
		{name: "new_file", tileSize: 32},
		{name: "keeps_other_settings", existing: "editor:\n  tile_size: 16\nmap:\n  width: 64\n", tileSize: 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tiledit", "config.yaml")
			if tt.existing != "" {
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte(tt.existing), 0644); err != nil {
					t.Fatal(err)
				}
			}

			cfg := Default()
			cfg.Editor.ShiftMode = "wrap"
			cfg.Editor.BrushSize = 4
			cfg.Editor.ShowGrid = false
			cfg.Map.Path = "from/flag.json"
			if err := cfg.saveSessionTo(path); err != nil {
				t.Fatalf("saveSessionTo: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("loadFromFile: %v", err)
			}
			if loaded.Editor.ShiftMode != "wrap" || loaded.Editor.BrushSize != 4 || loaded.Editor.ShowGrid {
				t.Errorf("session settings not saved: %+v", loaded.Editor)
			}
			if loaded.Editor.TileSize != tt.tileSize {
				t.Errorf("tile size = %d, want %d", loaded.Editor.TileSize, tt.tileSize)
			}
			if loaded.Map.Path != "" {
				t.Errorf("map path %q persisted from flags", loaded.Map.Path)
			}
		})
	}
}

func TestSaveSessionPathFollowsConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	path, err := Default().SaveSession()
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if want := filepath.Join(dir, "tiledit", "config.yaml"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}
