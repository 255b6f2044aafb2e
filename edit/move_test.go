package edit

import (
	"image"
	"testing"
)

func TestMoveSelection(t *testing.T) {
	cases := []struct {
		name      string
		dx, dy    int
		duplicate bool
		wantSel   Rect
		wantAt    image.Point
		sourceSet bool
	}{
		{name: "nudge_right", dx: 1, wantSel: Rect{Min: image.Pt(2, 1), Max: image.Pt(4, 2)}, wantAt: image.Pt(2, 1)},
		{name: "clamped", dx: 10, dy: 10, wantSel: Rect{Min: image.Pt(2, 3), Max: image.Pt(4, 4)}, wantAt: image.Pt(2, 3)},
		{name: "clamped_negative", dx: -5, wantSel: Rect{Min: image.Pt(0, 1), Max: image.Pt(2, 2)}, wantAt: image.Pt(0, 1)},
		{name: "copy_keeps_source", dy: 2, duplicate: true, wantSel: Rect{Min: image.Pt(1, 3), Max: image.Pt(3, 4)}, wantAt: image.Pt(1, 3), sourceSet: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEditor(5, 5)
			letters(e, 1, 1)
			e.Select(image.Pt(1, 1), image.Pt(3, 2))

			res := e.MoveSelection(c.dx, c.dy, c.duplicate)
			if !res.Applied() {
				t.Fatalf("move not applied: %+v", res)
			}
			if sel, _ := e.Selection(); sel != c.wantSel {
				t.Fatalf("selection = %v, want %v", sel, c.wantSel)
			}
			if got := e.Map().At(0, c.wantAt.X, c.wantAt.Y); got != tile('A') {
				t.Fatalf("A should land at %v, got %v", c.wantAt, got)
			}
			if got := e.Map().At(0, c.wantAt.X+2, c.wantAt.Y+1); got != tile('F') {
				t.Fatalf("F should land next to A, got %v", got)
			}
			src := e.Map().At(0, 1, 1)
			if c.sourceSet && src != tile('A') {
				t.Fatalf("copy should keep the source, got %v", src)
			}
			if !c.sourceSet && !c.wantSel.Contains(image.Pt(1, 1)) && !src.IsEmpty() {
				t.Fatalf("move should clear the source, got %v", src)
			}
			if undo, _ := e.HistoryDepth(); undo != 1 {
				t.Fatalf("move should be one command")
			}
		})
	}
}

func TestMoveSelectionAtEdgeIsNoop(t *testing.T) {
	e := newEditor(3, 3)
	letters(e, 0, 0)
	e.Select(image.Pt(0, 0), image.Pt(2, 1))
	if r := e.MoveSelection(-1, 0, false); r.Reason != ReasonNoop {
		t.Fatalf("expected ReasonNoop, got %+v", r)
	}
}

func TestMoveUndo(t *testing.T) {
	e := newEditor(5, 5)
	letters(e, 0, 0)
	before := e.Map().Clone()
	e.Select(image.Pt(0, 0), image.Pt(2, 1))
	e.MoveSelection(1, 1, false)
	e.Undo()
	if !sameTiles(e.Map(), before) {
		t.Fatalf("undo should restore the original block")
	}
}

func TestDragMove(t *testing.T) {
	e := newEditor(6, 6)
	letters(e, 0, 0)
	e.Select(image.Pt(0, 0), image.Pt(2, 1))

	if r := e.BeginMove(image.Pt(5, 5), false); r.Reason != ReasonNoSelection {
		t.Fatalf("drag must start inside the selection, got %+v", r)
	}
	if r := e.BeginMove(image.Pt(1, 1), false); r.Reason != ReasonNone {
		t.Fatalf("begin move rejected: %+v", r)
	}
	e.DragMove(image.Pt(2, 3))
	e.DragMove(image.Pt(9, 9))
	preview, ok := e.MovePreview()
	if !ok || preview.Min != image.Pt(3, 4) {
		t.Fatalf("preview should clamp to the map, got %v", preview)
	}
	if e.Map().At(0, 0, 0) != tile('A') {
		t.Fatalf("map must not change during the drag")
	}

	res := e.EndMove()
	if !res.Applied() || e.Moving() {
		t.Fatalf("end move should apply, got %+v", res)
	}
	if e.Map().At(0, 3, 4) != tile('A') || !e.Map().At(0, 0, 0).IsEmpty() {
		t.Fatalf("block not moved")
	}
}

func TestCancelMove(t *testing.T) {
	e := newEditor(4, 4)
	letters(e, 0, 0)
	e.Select(image.Pt(0, 0), image.Pt(2, 1))
	e.BeginMove(image.Pt(0, 0), true)
	e.DragMove(image.Pt(1, 1))
	e.CancelMove()
	if e.CanUndo() {
		t.Fatalf("cancelled drag recorded a command")
	}
	if sel, _ := e.Selection(); sel.Min != image.Pt(0, 0) {
		t.Fatalf("selection should stay, got %v", sel)
	}
}

func TestSelectionChangesDuringDrag(t *testing.T) {
	cases := []struct {
		name   string
		mid    func(e *Editor)
		wantAt int // x of the tile after EndMove
	}{
		{name: "nudge_rejected", mid: func(e *Editor) {
			if r := e.MoveSelection(1, 0, false); r.Reason != ReasonBusy {
				t.Fatalf("nudge during drag = %+v, want busy", r)
			}
		}, wantAt: 2},
		{name: "select_all_cancels", mid: func(e *Editor) { e.SelectAll() }, wantAt: 0},
		{name: "select_cancels", mid: func(e *Editor) { e.Select(image.Pt(1, 0), image.Pt(2, 0)) }, wantAt: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEditor(3, 1)
			e.Paint(0, 0, tile(1))
			e.Select(image.Pt(0, 0), image.Pt(0, 0))
			if r := e.BeginMove(image.Pt(0, 0), false); r.Reason != ReasonNone {
				t.Fatalf("BeginMove = %+v", r)
			}
			e.DragMove(image.Pt(2, 0))
			c.mid(e)
			e.EndMove()
			if got := e.Map().At(0, c.wantAt, 0); got != tile(1) {
				t.Fatalf("tile at (%d,0) = %v, want tile 1", c.wantAt, got)
			}
			if e.Moving() {
				t.Fatal("drag still active")
			}
		})
	}
}
