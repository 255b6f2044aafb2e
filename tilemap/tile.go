package tilemap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/milk9111/tiledit/orient"
)

// TileRef names one tile of a tileset and how it is oriented.
type TileRef struct {
	TilesetID          string `json:"tileset_id" yaml:"tileset_id"`
	Index              uint32 `json:"index" yaml:"index"`
	orient.Orientation `yaml:",inline"`
}

func (t TileRef) String() string {
	return fmt.Sprintf("%s#%d(%v)", t.TilesetID, t.Index, t.Orientation)
}

// Cell is an optional tile. The zero Cell is empty.
type Cell struct {
	ref TileRef
	ok  bool
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Some wraps a tile, normalizing its rotation.
func Some(t TileRef) Cell {
	t.Orientation = t.Orientation.Normalize()
	return Cell{ref: t, ok: true}
}

func (c Cell) IsEmpty() bool { return !c.ok }

// Ref returns the tile and whether the cell holds one.
func (c Cell) Ref() (TileRef, bool) { return c.ref, c.ok }

// WithOrientation returns the cell with its tile reoriented. Empty cells are
// returned unchanged.
func (c Cell) WithOrientation(o orient.Orientation) Cell {
	if !c.ok {
		return c
	}
	c.ref.Orientation = o.Normalize()
	return c
}

func (c Cell) String() string {
	if !c.ok {
		return "empty"
	}
	return c.ref.String()
}

var jsonNull = []byte("null")

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return jsonNull, nil
	}
	return json.Marshal(c.ref)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*c = Cell{}
		return nil
	}
	var t TileRef
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*c = Some(t)
	return nil
}
