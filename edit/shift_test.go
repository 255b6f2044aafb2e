package edit

import (
	"image"
	"testing"

	"github.com/milk9111/tiledit/tilemap"
)

func TestShiftWrapScenario(t *testing.T) {
	e := New(tilemap.New(4, 4), WithShiftMode(ShiftWrap))
	e.Map().Set(0, 0, 0, tile(1))

	res := e.ShiftMap(Left)
	if res.Changed != 2 {
		t.Fatalf("expected 2 changes, got %+v", res)
	}
	if got := e.Map().At(0, 3, 0); got != tile(1) {
		t.Fatalf("tile should wrap to (3,0), got %v", got)
	}
	if !e.Map().At(0, 0, 0).IsEmpty() {
		t.Fatalf("(0,0) should be empty")
	}
}

func TestShift(t *testing.T) {
	cases := []struct {
		name  string
		mode  ShiftMode
		dir   Direction
		start image.Point
		want  image.Point
		gone  bool
	}{
		{name: "blank_right", mode: ShiftBlank, dir: Right, start: image.Pt(1, 1), want: image.Pt(2, 1)},
		{name: "blank_up", mode: ShiftBlank, dir: Up, start: image.Pt(1, 1), want: image.Pt(1, 0)},
		{name: "blank_down", mode: ShiftBlank, dir: Down, start: image.Pt(1, 1), want: image.Pt(1, 2)},
		{name: "blank_drops_edge", mode: ShiftBlank, dir: Left, start: image.Pt(0, 2), gone: true},
		{name: "wrap_up", mode: ShiftWrap, dir: Up, start: image.Pt(2, 0), want: image.Pt(2, 2)},
		{name: "wrap_right", mode: ShiftWrap, dir: Right, start: image.Pt(2, 1), want: image.Pt(0, 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := New(tilemap.New(3, 3), WithShiftMode(c.mode))
			e.Map().Set(1, c.start.X, c.start.Y, tile(7))
			e.ShiftMap(c.dir)

			count := e.Map().Count(1)
			if c.gone {
				if count != 0 {
					t.Fatalf("tile should fall off the map, %d left", count)
				}
				return
			}
			if count != 1 {
				t.Fatalf("expected exactly one tile, got %d", count)
			}
			if got := e.Map().At(1, c.want.X, c.want.Y); got != tile(7) {
				t.Fatalf("tile not at %v", c.want)
			}
		})
	}
}

func TestShiftIsOneCommandAcrossLayers(t *testing.T) {
	e := newEditor(3, 3)
	e.Map().Set(0, 1, 1, tile(1))
	e.Map().Set(1, 1, 1, tile(2))
	before := e.Map().Clone()

	e.ShiftMap(Right)
	if undo, _ := e.HistoryDepth(); undo != 1 {
		t.Fatalf("expected one command, got %d", undo)
	}
	e.Undo()
	if !sameTiles(e.Map(), before) {
		t.Fatalf("undo should restore both layers")
	}
}

func TestShiftSkipsLockedLayers(t *testing.T) {
	e := newEditor(3, 1)
	e.Map().Set(0, 0, 0, tile(1))
	e.Map().Set(1, 0, 0, tile(2))
	e.SetLayerLocked(1, true)

	e.ShiftMap(Right)
	if e.Map().At(0, 1, 0) != tile(1) {
		t.Fatalf("unlocked layer should shift")
	}
	if e.Map().At(1, 0, 0) != tile(2) {
		t.Fatalf("locked layer should stay put")
	}
}

func TestShiftLayerOnlyActive(t *testing.T) {
	e := newEditor(3, 1)
	e.Map().Set(0, 0, 0, tile(1))
	e.Map().Set(1, 0, 0, tile(2))
	e.SetActiveLayer(1)

	e.ShiftLayer(Right)
	if e.Map().At(0, 0, 0) != tile(1) || e.Map().At(1, 1, 0) != tile(2) {
		t.Fatalf("only the active layer should move")
	}
}

func TestShiftEmptyMapNoCommand(t *testing.T) {
	e := New(tilemap.New(3, 3), WithShiftMode(ShiftWrap))
	if r := e.ShiftMap(Left); r.Applied() || e.CanUndo() {
		t.Fatalf("shifting an empty map should record nothing")
	}
}

func TestParseShiftModeAndDirection(t *testing.T) {
	if m, err := ParseShiftMode("wrap"); err != nil || m != ShiftWrap {
		t.Fatalf("ParseShiftMode(wrap) = %v, %v", m, err)
	}
	if _, err := ParseShiftMode("spiral"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if d, err := ParseDirection("down"); err != nil || d != Down {
		t.Fatalf("ParseDirection(down) = %v, %v", d, err)
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}
