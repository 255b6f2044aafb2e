package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveSession writes the settings a user changes while editing (shift mode,
// brush size and grid) back to the config file in use, or to the user's
// config directory when none was loaded. Everything else in the file is left
// as it was, so command line overrides are never persisted.
func (c *Config) SaveSession() (string, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}
	return path, c.saveSessionTo(path)
}

func (c *Config) saveSessionTo(path string) error {
	stored := Default()
	if err := loadFromFile(stored, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	stored.Editor.ShiftMode = c.Editor.ShiftMode
	stored.Editor.BrushSize = c.Editor.BrushSize
	stored.Editor.ShowGrid = c.Editor.ShowGrid
	return stored.SaveTo(path)
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
