package edit

import (
	"fmt"

	"github.com/milk9111/tiledit/common"
	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

// ShiftMode decides what happens to cells pushed off an edge.
type ShiftMode int

const (
	// ShiftBlank drops cells that leave the map and leaves blanks behind.
	ShiftBlank ShiftMode = iota
	// ShiftWrap moves cells that leave one edge onto the opposite edge.
	ShiftWrap
)

func (m ShiftMode) String() string {
	switch m {
	case ShiftBlank:
		return "blank"
	case ShiftWrap:
		return "wrap"
	default:
		return fmt.Sprintf("ShiftMode(%d)", int(m))
	}
}

// ParseShiftMode accepts "blank" or "wrap".
func ParseShiftMode(s string) (ShiftMode, error) {
	switch s {
	case "blank", "":
		return ShiftBlank, nil
	case "wrap":
		return ShiftWrap, nil
	default:
		return ShiftBlank, fmt.Errorf("edit: unknown shift mode %q", s)
	}
}

// Direction is a screen direction; y grows downward.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts left, right, up or down.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{Left, Right, Up, Down} {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("edit: unknown direction %q", s)
}

// ShiftMap moves every unlocked layer one cell in dir.
func (e *Editor) ShiftMap(dir Direction) Result {
	if e.m.LayerLen() == 0 {
		return rejected(ReasonEmptyMap)
	}
	var layers []int
	for l := 0; l < e.m.Layers; l++ {
		if !e.m.IsLocked(l) {
			layers = append(layers, l)
		}
	}
	if len(layers) == 0 {
		return rejected(ReasonLocked)
	}
	return e.shift(dir, layers)
}

// ShiftLayer moves only the active layer one cell in dir.
func (e *Editor) ShiftLayer(dir Direction) Result {
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	return e.shift(dir, []int{e.layer})
}

func (e *Editor) shift(dir Direction, layers []int) Result {
	dx, dy := dir.Delta()
	w, h := e.m.Width, e.m.Height
	ll := e.m.LayerLen()

	// build the shifted layers first, then diff against the live map
	next := make([]tilemap.Cell, len(layers)*ll)
	for li, layer := range layers {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				nx, ny := x+dx, y+dy
				if e.shiftMode == ShiftWrap {
					nx, ny = common.Mod(nx, w), common.Mod(ny, h)
				} else if !e.m.InBounds(nx, ny) {
					continue
				}
				next[li*ll+ny*w+nx] = e.m.At(layer, x, y)
			}
		}
	}

	bld := history.NewBuilder(e.m)
	for li, layer := range layers {
		base := layer * ll
		for i := 0; i < ll; i++ {
			bld.Set(base+i, next[li*ll+i])
		}
	}
	e.log.Debug("shift",
		zap.Stringer("direction", dir),
		zap.Stringer("mode", e.shiftMode),
		zap.Int("layers", len(layers)))
	return e.commit(bld.Command(), "shift")
}
