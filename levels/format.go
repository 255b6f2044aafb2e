// Package levels reads and writes map files.
//
// The current file shape stores every layer; files written by older
// versions of the editor (one layer of tile refs, or one layer of bare tile
// indices) are still accepted and upgraded on load.
package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/tiledit/tilemap"
	"gopkg.in/yaml.v3"
)

const (
	// MaxDimension bounds width and height of a decoded map.
	MaxDimension = 4096
	// MaxLayers bounds the layer count of a decoded map.
	MaxLayers = 64
)

var (
	ErrUnknownShape = errors.New("levels: data matches no known map format")
	ErrInvalidSize  = errors.New("levels: invalid map size")
)

// Format is a file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the encoding from a file extension; anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func (f Format) unmarshal(data []byte, v any) error {
	if f == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// mapFile is the shape written today.
type mapFile struct {
	Width     uint32              `json:"width" yaml:"width"`
	Height    uint32              `json:"height" yaml:"height"`
	Layers    uint32              `json:"layers" yaml:"layers"`
	LayerData []tilemap.LayerMeta `json:"layer_data" yaml:"layer_data"`
	Tilesets  []Tileset           `json:"tilesets" yaml:"tilesets"`
	Tiles     []*tilemap.TileRef  `json:"tiles" yaml:"tiles"`
}

// The read shapes use pointers so a missing key can be told apart from a
// zero value.
type readV3 struct {
	Width     *uint32             `json:"width" yaml:"width"`
	Height    *uint32             `json:"height" yaml:"height"`
	Layers    *uint32             `json:"layers" yaml:"layers"`
	LayerData []tilemap.LayerMeta `json:"layer_data" yaml:"layer_data"`
	Tilesets  *[]Tileset          `json:"tilesets" yaml:"tilesets"`
	Tiles     *[]*tilemap.TileRef `json:"tiles" yaml:"tiles"`
}

type readV2 struct {
	Width    *uint32             `json:"width" yaml:"width"`
	Height   *uint32             `json:"height" yaml:"height"`
	Tilesets *[]Tileset          `json:"tilesets" yaml:"tilesets"`
	Tiles    *[]*tilemap.TileRef `json:"tiles" yaml:"tiles"`
}

type readV1 struct {
	Width  *uint32    `json:"width" yaml:"width"`
	Height *uint32    `json:"height" yaml:"height"`
	Tiles  *[]*uint32 `json:"tiles" yaml:"tiles"`
}

// Encode writes m in the current shape.
func Encode(m *tilemap.Map, tilesets []Tileset, f Format) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := mapFile{
		Width:     uint32(m.Width),
		Height:    uint32(m.Height),
		Layers:    uint32(max(m.Layers, 1)),
		LayerData: make([]tilemap.LayerMeta, 0, m.Layers),
		Tilesets:  tilesets,
		Tiles:     make([]*tilemap.TileRef, len(m.Tiles)),
	}
	if out.Tilesets == nil {
		out.Tilesets = []Tileset{}
	}
	for l := 0; l < m.Layers; l++ {
		out.LayerData = append(out.LayerData, m.Layer(l))
	}
	for i, c := range m.Tiles {
		out.Tiles[i] = c.Ptr()
	}

	if f == FormatYAML {
		return yaml.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Decode reads a map in any known shape, newest first.
func Decode(data []byte, f Format) (*tilemap.Map, []Tileset, error) {
	var v3 readV3
	if err := f.unmarshal(data, &v3); err == nil && v3.complete() {
		return v3.build()
	}
	var v2 readV2
	if err := f.unmarshal(data, &v2); err == nil && v2.complete() {
		return v2.build()
	}
	var v1 readV1
	err := f.unmarshal(data, &v1)
	if err == nil && v1.complete() {
		return v1.build()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknownShape, err)
	}
	return nil, nil, ErrUnknownShape
}

func checkSize(w, h uint32) error {
	if w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidSize, w, h, MaxDimension)
	}
	return nil
}

// CheckLayers reports whether n is a usable layer count.
func CheckLayers(n int) error {
	if n < 1 || n > MaxLayers {
		return fmt.Errorf("%w: %d layers (1..%d)", ErrInvalidSize, n, MaxLayers)
	}
	return nil
}

// fill copies as many refs as fit into the first n cells of m.
func fill(m *tilemap.Map, refs []*tilemap.TileRef, n int) {
	n = min(n, len(refs))
	for i := 0; i < n; i++ {
		m.Tiles[i] = tilemap.FromPtr(refs[i])
	}
}

func (v *readV3) complete() bool {
	return v.Width != nil && v.Height != nil && v.Layers != nil && v.Tilesets != nil && v.Tiles != nil
}

func (v *readV3) build() (*tilemap.Map, []Tileset, error) {
	if err := checkSize(*v.Width, *v.Height); err != nil {
		return nil, nil, err
	}
	if *v.Layers > MaxLayers {
		return nil, nil, fmt.Errorf("%w: %d layers exceeds %d", ErrInvalidSize, *v.Layers, MaxLayers)
	}
	layers := max(int(*v.Layers), tilemap.DefaultLayerCount)
	m := tilemap.NewWithLayers(int(*v.Width), int(*v.Height), layers)
	if n := min(len(v.LayerData), layers); n > 0 {
		m.Meta = append(m.Meta[:0], v.LayerData[:n]...)
		m.EnsureMeta()
	}
	fill(m, *v.Tiles, len(m.Tiles))
	return m, *v.Tilesets, nil
}

func (v *readV2) complete() bool {
	return v.Width != nil && v.Height != nil && v.Tilesets != nil && v.Tiles != nil
}

func (v *readV2) build() (*tilemap.Map, []Tileset, error) {
	if err := checkSize(*v.Width, *v.Height); err != nil {
		return nil, nil, err
	}
	m := tilemap.New(int(*v.Width), int(*v.Height))
	fill(m, *v.Tiles, m.LayerLen())
	return m, *v.Tilesets, nil
}

func (v *readV1) complete() bool {
	return v.Width != nil && v.Height != nil && v.Tiles != nil
}

func (v *readV1) build() (*tilemap.Map, []Tileset, error) {
	if err := checkSize(*v.Width, *v.Height); err != nil {
		return nil, nil, err
	}
	m := tilemap.New(int(*v.Width), int(*v.Height))
	refs := make([]*tilemap.TileRef, len(*v.Tiles))
	for i, idx := range *v.Tiles {
		if idx != nil {
			refs[i] = &tilemap.TileRef{Index: *idx}
		}
	}
	fill(m, refs, m.LayerLen())
	return m, nil, nil
}
