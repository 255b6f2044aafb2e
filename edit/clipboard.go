package edit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/orient"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

// Clipboard is a detached rectangle of cells, row-major.
type Clipboard struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Tiles  []tilemap.Cell `json:"tiles"`
}

func (c Clipboard) Empty() bool {
	return c.Width == 0 || c.Height == 0 || len(c.Tiles) == 0
}

// Blank reports whether no cell of c holds a tile.
func (c Clipboard) Blank() bool {
	for _, t := range c.Tiles {
		if !t.IsEmpty() {
			return false
		}
	}
	return true
}

// At returns the cell at (x, y), or an empty cell past the end of a short
// buffer.
func (c Clipboard) At(x, y int) tilemap.Cell {
	i := y*c.Width + x
	if i < 0 || i >= len(c.Tiles) {
		return tilemap.Empty()
	}
	return c.Tiles[i]
}

func (e *Editor) Clipboard() Clipboard {
	return e.clip
}

// SetClipboard replaces the clipboard, e.g. with content from another
// session.
func (e *Editor) SetClipboard(c Clipboard) {
	e.clip = c
}

// PasteOrientation is the rotation and mirroring applied to the next paste.
func (e *Editor) PasteOrientation() orient.Orientation {
	return e.paste
}

// RotatePaste turns the paste orientation by quarter turns; negative values
// turn counter-clockwise.
func (e *Editor) RotatePaste(quarter int) {
	e.paste = e.paste.Rotate(quarter)
}

func (e *Editor) FlipPasteX() {
	e.paste.FlipX = !e.paste.FlipX
}

func (e *Editor) FlipPasteY() {
	e.paste.FlipY = !e.paste.FlipY
}

func (e *Editor) ResetPaste() {
	e.paste = orient.Orientation{}
}

// PasteDims is the size the clipboard occupies under the current paste
// orientation.
func (e *Editor) PasteDims() (int, int) {
	return orient.Dims(e.clip.Width, e.clip.Height, e.paste.Rot)
}

// PasteCell is one cell a paste would write.
type PasteCell struct {
	X, Y int
	Cell tilemap.Cell
}

// PastePreview lists the in-bounds cells a paste at origin would write, for
// drawing a ghost of the clipboard.
func (e *Editor) PastePreview(origin image.Point) []PasteCell {
	if e.clip.Empty() {
		return nil
	}
	var out []PasteCell
	e.eachPasteCell(origin, func(x, y int, c tilemap.Cell) {
		out = append(out, PasteCell{X: x, Y: y, Cell: c})
	})
	return out
}

func (e *Editor) eachPasteCell(origin image.Point, fn func(x, y int, c tilemap.Cell)) {
	for sy := 0; sy < e.clip.Height; sy++ {
		for sx := 0; sx < e.clip.Width; sx++ {
			cx, cy := e.paste.MapPoint(sx, sy, e.clip.Width, e.clip.Height)
			x, y := origin.X+cx, origin.Y+cy
			if !e.m.InBounds(x, y) {
				continue
			}
			fn(x, y, e.clip.At(sx, sy))
		}
	}
}

// Paste writes the clipboard with its top-left corner at origin on the
// active layer. Cells falling outside the map are skipped.
func (e *Editor) Paste(origin image.Point) Result {
	if e.clip.Empty() || e.clip.Blank() {
		return rejected(ReasonEmptyClipboard)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	bld := history.NewBuilder(e.m)
	e.eachPasteCell(origin, func(x, y int, c tilemap.Cell) {
		bld.Set(e.m.Index(e.layer, x, y), c)
	})
	pw, ph := e.PasteDims()
	e.log.Debug("paste",
		zap.Int("x", origin.X),
		zap.Int("y", origin.Y),
		zap.Int("width", pw),
		zap.Int("height", ph),
		zap.Stringer("orientation", e.paste),
		zap.Int("changes", bld.Len()))
	return e.commit(bld.Command(), "paste")
}

// clipHeader marks clipboard text written by EncodeClipboard.
const clipHeader = "tiledit/tiles v1\n"

var ErrNotTiles = errors.New("edit: data does not hold tiles")

// EncodeClipboard renders c as text for the system clipboard.
func EncodeClipboard(c Clipboard) ([]byte, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return append([]byte(clipHeader), body...), nil
}

// DecodeClipboard parses text written by EncodeClipboard.
func DecodeClipboard(data []byte) (Clipboard, error) {
	body, ok := bytes.CutPrefix(data, []byte(clipHeader))
	if !ok {
		return Clipboard{}, ErrNotTiles
	}
	var c Clipboard
	if err := json.Unmarshal(body, &c); err != nil {
		return Clipboard{}, fmt.Errorf("%w: %v", ErrNotTiles, err)
	}
	if c.Width < 0 || c.Height < 0 || len(c.Tiles) != c.Width*c.Height {
		return Clipboard{}, fmt.Errorf("%w: %d cells for %dx%d", ErrNotTiles, len(c.Tiles), c.Width, c.Height)
	}
	return c, nil
}
