package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/tiledit/tilemap"
	"gopkg.in/yaml.v3"
)

// Tileset describes one tileset image. Maps carry the tilesets they use so a
// copied map file still knows where its art lives.
type Tileset struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Category  string `json:"category" yaml:"category"`
	AssetPath string `json:"asset_path" yaml:"asset_path"`
}

// Catalog is the set of tilesets known to an editing session.
type Catalog struct {
	Entries []Tileset `yaml:"tilesets"`
}

// Lookup finds a tileset by ID.
func (c *Catalog) Lookup(id string) (Tileset, bool) {
	for _, t := range c.Entries {
		if t.ID == id {
			return t, true
		}
	}
	return Tileset{}, false
}

// Merge adds the tilesets not already known by ID and returns how many were
// added.
func (c *Catalog) Merge(tilesets []Tileset) int {
	added := 0
	for _, t := range tilesets {
		if t.ID == "" {
			continue
		}
		if _, ok := c.Lookup(t.ID); ok {
			continue
		}
		c.Entries = append(c.Entries, t)
		added++
	}
	return added
}

// ForMap returns the known tilesets that m references, in catalog order.
func (c *Catalog) ForMap(m *tilemap.Map) []Tileset {
	used := make(map[string]bool)
	for _, cell := range m.Tiles {
		if ref, ok := cell.Ref(); ok {
			used[ref.TilesetID] = true
		}
	}
	var out []Tileset
	for _, t := range c.Entries {
		if used[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// Categories lists the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range c.Entries {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ScanDir registers every PNG under dir. The ID and name come from the file
// name; the category is the first sub-directory, or "default".
func (c *Catalog) ScanDir(dir string) (int, error) {
	var found []Tileset
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".png") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		category := "default"
		if i := strings.IndexByte(rel, '/'); i > 0 {
			category = rel[:i]
		}
		stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		found = append(found, Tileset{
			ID:        strings.TrimSuffix(rel, filepath.Ext(rel)),
			Name:      stem,
			Category:  category,
			AssetPath: filepath.ToSlash(path),
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan tilesets: %w", err)
	}
	return c.Merge(found), nil
}

// LoadCatalog reads a YAML tileset catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return &c, nil
}

// SaveCatalog writes c as YAML.
func SaveCatalog(path string, c *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
