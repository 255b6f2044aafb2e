package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/milk9111/tiledit/tilemap"
)

//go:embed builtin/*.json
var BuiltinFS embed.FS

// BuiltinNames lists the maps shipped with the editor.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(BuiltinFS, "builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// LoadBuiltin decodes one of the shipped maps by file name.
func LoadBuiltin(name string) (*tilemap.Map, []Tileset, error) {
	data, err := fs.ReadFile(BuiltinFS, path.Join("builtin", name))
	if err != nil {
		return nil, nil, fmt.Errorf("read level: %w", err)
	}
	m, tilesets, err := Decode(data, FormatFor(name))
	if err != nil {
		return nil, nil, fmt.Errorf("decode level %s: %w", name, err)
	}
	return m, tilesets, nil
}
