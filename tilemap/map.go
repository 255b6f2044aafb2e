// Package tilemap holds the layered tile grid that every edit operates on.
package tilemap

import (
	"errors"
	"fmt"
)

// DefaultLayerCount is the number of layers a new map gets.
const DefaultLayerCount = 2

var ErrBufferSize = errors.New("tilemap: tile buffer does not match dimensions")

// LayerMeta describes one layer. Locked layers refuse edits; hidden layers
// are still editable.
type LayerMeta struct {
	Name    string `json:"name" yaml:"name"`
	Visible bool   `json:"visible" yaml:"visible"`
	Locked  bool   `json:"locked" yaml:"locked"`
}

// DefaultLayerMeta returns the metadata a layer gets when none was stored.
func DefaultLayerMeta(layer int) LayerMeta {
	return LayerMeta{Name: fmt.Sprintf("Layer %d", layer+1), Visible: true}
}

// Map is a width×height grid with a fixed number of layers, stored as one
// flat slice ordered layer, then row, then column.
type Map struct {
	Width  int
	Height int
	Layers int
	Meta   []LayerMeta
	Tiles  []Cell
}

// New returns an empty map with DefaultLayerCount layers.
func New(width, height int) *Map {
	return NewWithLayers(width, height, DefaultLayerCount)
}

func NewWithLayers(width, height, layers int) *Map {
	if width < 0 || height < 0 || layers < 0 {
		panic(fmt.Sprintf("tilemap: negative dimensions %dx%dx%d", width, height, layers))
	}
	m := &Map{
		Width:  width,
		Height: height,
		Layers: layers,
		Tiles:  make([]Cell, width*height*layers),
	}
	m.EnsureMeta()
	return m
}

// LayerLen is the number of cells in one layer.
func (m *Map) LayerLen() int {
	return m.Width * m.Height
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

func (m *Map) ValidLayer(layer int) bool {
	return layer >= 0 && layer < m.Layers
}

// Index returns the flat index of a cell. Out of range coordinates are a
// programming error and panic.
func (m *Map) Index(layer, x, y int) int {
	if !m.ValidLayer(layer) || !m.InBounds(x, y) {
		panic(fmt.Sprintf("tilemap: cell (%d,%d) layer %d outside %dx%dx%d", x, y, layer, m.Width, m.Height, m.Layers))
	}
	return layer*m.LayerLen() + y*m.Width + x
}

// Coord is the inverse of Index.
func (m *Map) Coord(idx int) (layer, x, y int) {
	ll := m.LayerLen()
	layer = idx / ll
	rem := idx % ll
	return layer, rem % m.Width, rem / m.Width
}

func (m *Map) At(layer, x, y int) Cell {
	return m.Tiles[m.Index(layer, x, y)]
}

func (m *Map) Set(layer, x, y int, c Cell) {
	m.Tiles[m.Index(layer, x, y)] = c
}

// Get reads a cell by flat index.
func (m *Map) Get(idx int) Cell {
	return m.Tiles[idx]
}

// Put writes a cell by flat index.
func (m *Map) Put(idx int, c Cell) {
	m.Tiles[idx] = c
}

// EnsureMeta backfills layer metadata so there is an entry per layer.
func (m *Map) EnsureMeta() {
	for len(m.Meta) < m.Layers {
		m.Meta = append(m.Meta, DefaultLayerMeta(len(m.Meta)))
	}
}

// Layer returns the metadata of a layer, or the default when none is stored.
func (m *Map) Layer(layer int) LayerMeta {
	if layer >= 0 && layer < len(m.Meta) {
		return m.Meta[layer]
	}
	return DefaultLayerMeta(layer)
}

func (m *Map) IsLocked(layer int) bool {
	return m.Layer(layer).Locked
}

func (m *Map) IsVisible(layer int) bool {
	return m.Layer(layer).Visible
}

// TopmostAt returns the highest visible layer with a tile at (x, y).
func (m *Map) TopmostAt(x, y int) (int, bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	for layer := m.Layers - 1; layer >= 0; layer-- {
		if !m.IsVisible(layer) {
			continue
		}
		if !m.At(layer, x, y).IsEmpty() {
			return layer, true
		}
	}
	return 0, false
}

// Count returns the number of non-empty cells on a layer.
func (m *Map) Count(layer int) int {
	n := 0
	base := layer * m.LayerLen()
	for _, c := range m.Tiles[base : base+m.LayerLen()] {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Validate checks the buffer length invariant.
func (m *Map) Validate() error {
	if want := m.Width * m.Height * m.Layers; len(m.Tiles) != want {
		return fmt.Errorf("%w: %d cells for %dx%dx%d", ErrBufferSize, len(m.Tiles), m.Width, m.Height, m.Layers)
	}
	return nil
}

func (m *Map) Clone() *Map {
	out := &Map{
		Width:  m.Width,
		Height: m.Height,
		Layers: m.Layers,
		Meta:   make([]LayerMeta, len(m.Meta)),
		Tiles:  make([]Cell, len(m.Tiles)),
	}
	copy(out.Meta, m.Meta)
	copy(out.Tiles, m.Tiles)
	return out
}

// ResizedCopy builds a width×height×layers map holding the overlapping part
// of old. old may be nil, and its buffer may be shorter than its dimensions
// claim; only cells that actually exist are copied.
func ResizedCopy(old *Map, width, height, layers int) *Map {
	out := NewWithLayers(width, height, layers)
	if old == nil {
		return out
	}
	for i := 0; i < layers && i < len(old.Meta); i++ {
		out.Meta[i] = old.Meta[i]
	}

	cw := min(width, old.Width)
	ch := min(height, old.Height)
	cl := min(layers, old.Layers)
	for layer := 0; layer < cl; layer++ {
		for y := 0; y < ch; y++ {
			src := layer*old.LayerLen() + y*old.Width
			dst := layer*out.LayerLen() + y*width
			n := cw
			if src >= len(old.Tiles) {
				continue
			}
			if src+n > len(old.Tiles) {
				n = len(old.Tiles) - src
			}
			copy(out.Tiles[dst:dst+n], old.Tiles[src:src+n])
		}
	}
	return out
}

// FromPtr converts a nullable tile pointer into a cell.
func FromPtr(t *TileRef) Cell {
	if t == nil {
		return Empty()
	}
	return Some(*t)
}

// Ptr converts a cell into a nullable tile pointer.
func (c Cell) Ptr() *TileRef {
	if !c.ok {
		return nil
	}
	t := c.ref
	return &t
}
