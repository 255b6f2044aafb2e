package levels

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/tiledit/tilemap"
)

// Save writes m to path, creating the directory if needed. The encoding
// follows the file extension.
func Save(path string, m *tilemap.Map, tilesets []Tileset) error {
	data, err := Encode(m, tilesets, FormatFor(path))
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	// write next to the target and rename so a reader never sees half a file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}

// Load reads a map file of any supported shape.
func Load(path string) (*tilemap.Map, []Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read map: %w", err)
	}
	m, tilesets, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return m, tilesets, nil
}
