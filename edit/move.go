package edit

import (
	"image"

	"github.com/milk9111/tiledit/common"
	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/tilemap"
)

type moveGesture struct {
	start     image.Point
	offset    image.Point
	duplicate bool
}

// clampOffset limits d so the selection stays inside the map.
func (e *Editor) clampOffset(d image.Point) image.Point {
	return image.Pt(
		common.Clamp(d.X, -e.sel.Min.X, e.m.Width-1-e.sel.Max.X),
		common.Clamp(d.Y, -e.sel.Min.Y, e.m.Height-1-e.sel.Max.Y),
	)
}

// MoveSelection nudges the selected block by (dx, dy), clamped to the map.
// With duplicate set the source cells are left in place.
func (e *Editor) MoveSelection(dx, dy int, duplicate bool) Result {
	if e.move != nil {
		return rejected(ReasonBusy)
	}
	if !e.hasSel {
		return rejected(ReasonNoSelection)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	return e.moveBy(e.clampOffset(image.Pt(dx, dy)), duplicate)
}

// BeginMove starts dragging the selection from p, which must lie inside it.
func (e *Editor) BeginMove(p image.Point, duplicate bool) Result {
	if e.busy() {
		return rejected(ReasonBusy)
	}
	if !e.hasSel || !e.sel.Contains(p) {
		return rejected(ReasonNoSelection)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	e.move = &moveGesture{start: p, duplicate: duplicate}
	return Result{}
}

// DragMove updates the drag offset from the cursor cell.
func (e *Editor) DragMove(p image.Point) {
	if e.move == nil {
		return
	}
	e.move.offset = e.clampOffset(p.Sub(e.move.start))
}

// MovePreview returns where the selection would land if the drag ended now.
func (e *Editor) MovePreview() (Rect, bool) {
	if e.move == nil {
		return Rect{}, false
	}
	return e.sel.Add(e.move.offset), true
}

// EndMove commits the drag as one command. The offset is clamped again
// against the selection as it is now.
func (e *Editor) EndMove() Result {
	g := e.move
	if g == nil {
		return rejected(ReasonNoop)
	}
	e.move = nil
	if !e.hasSel {
		return rejected(ReasonNoSelection)
	}
	return e.moveBy(e.clampOffset(g.offset), g.duplicate)
}

func (e *Editor) CancelMove() {
	e.move = nil
}

// Moving reports whether a drag is in progress.
func (e *Editor) Moving() bool {
	return e.move != nil
}

func (e *Editor) moveBy(d image.Point, duplicate bool) Result {
	if d == (image.Point{}) {
		return rejected(ReasonNoop)
	}
	old := e.sel
	src := e.extract(old)
	next := old.Add(d)

	bld := history.NewBuilder(e.m)
	if !duplicate {
		old.Each(func(x, y int) {
			if !next.Contains(image.Pt(x, y)) {
				bld.Set(e.m.Index(e.layer, x, y), tilemap.Empty())
			}
		})
	}
	next.Each(func(x, y int) {
		bld.Set(e.m.Index(e.layer, x, y), src.At(x-next.Min.X, y-next.Min.Y))
	})
	e.sel = next
	op := "move selection"
	if duplicate {
		op = "copy selection"
	}
	return e.commit(bld.Command(), op)
}
