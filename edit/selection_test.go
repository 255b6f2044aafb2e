package edit

import (
	"image"
	"testing"

	"github.com/milk9111/tiledit/orient"
	"github.com/milk9111/tiledit/tilemap"
)

// letters lays out A..F as a 3x2 block at (x, y) on layer 0:
//
//	A B C
//	D E F
func letters(e *Editor, x, y int) {
	for i := 0; i < 6; i++ {
		e.Map().Set(0, x+i%3, y+i/3, tile(uint32('A'+i)))
	}
}

func TestRotateSelectionScenario(t *testing.T) {
	e := newEditor(5, 5)
	letters(e, 0, 0)
	e.Select(image.Pt(0, 0), image.Pt(2, 1))

	res := e.TransformSelection(RotateCW)
	if !res.Applied() {
		t.Fatalf("rotate not applied: %+v", res)
	}
	sel, ok := e.Selection()
	if !ok || sel != (Rect{Min: image.Pt(0, 0), Max: image.Pt(1, 2)}) {
		t.Fatalf("selection should become 2x3, got %v", sel)
	}

	r1 := orient.Orientation{Rot: 1}
	want := [][]rune{
		{'D', 'A'},
		{'E', 'B'},
		{'F', 'C'},
	}
	for y, row := range want {
		for x, ch := range row {
			if got := e.Map().At(0, x, y); got != oriented(uint32(ch), r1) {
				t.Fatalf("(%d,%d) = %v, want %c rotated", x, y, got, ch)
			}
		}
	}
	// cell of the old rect outside the new one is cleared
	if got := e.Map().At(0, 2, 0); !got.IsEmpty() {
		t.Fatalf("(2,0) should be cleared, got %v", got)
	}
}

func TestTransformSelection(t *testing.T) {
	cases := []struct {
		name      string
		transform Transform
		want      [][]rune
		orient    orient.Orientation
		rect      Rect
	}{
		{
			name:      "rotate_ccw",
			transform: RotateCCW,
			want:      [][]rune{{'C', 'F'}, {'B', 'E'}, {'A', 'D'}},
			orient:    orient.Orientation{Rot: 3},
			rect:      Rect{Max: image.Pt(1, 2)},
		},
		{
			name:      "flip_x",
			transform: FlipX,
			want:      [][]rune{{'C', 'B', 'A'}, {'F', 'E', 'D'}},
			orient:    orient.Orientation{FlipX: true},
			rect:      Rect{Max: image.Pt(2, 1)},
		},
		{
			name:      "flip_y",
			transform: FlipY,
			want:      [][]rune{{'D', 'E', 'F'}, {'A', 'B', 'C'}},
			orient:    orient.Orientation{FlipY: true},
			rect:      Rect{Max: image.Pt(2, 1)},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEditor(4, 4)
			letters(e, 0, 0)
			e.Select(image.Pt(0, 0), image.Pt(2, 1))
			if res := e.TransformSelection(c.transform); !res.Applied() {
				t.Fatalf("not applied: %+v", res)
			}
			if sel, _ := e.Selection(); sel != c.rect {
				t.Fatalf("selection = %v, want %v", sel, c.rect)
			}
			for y, row := range c.want {
				for x, ch := range row {
					if got := e.Map().At(0, x, y); got != oriented(uint32(ch), c.orient) {
						t.Fatalf("(%d,%d) = %v, want %c %v", x, y, got, ch, c.orient)
					}
				}
			}
		})
	}
}

func TestTransformComposesExistingOrientation(t *testing.T) {
	e := newEditor(2, 2)
	e.Map().Set(0, 0, 0, oriented(1, orient.Orientation{Rot: 1}))
	e.Select(image.Pt(0, 0), image.Pt(0, 0))

	e.TransformSelection(RotateCW)
	if got := e.Map().At(0, 0, 0); got != oriented(1, orient.Orientation{Rot: 2}) {
		t.Fatalf("expected rot 2, got %v", got)
	}
	e.TransformSelection(FlipX)
	ref, _ := e.Map().At(0, 0, 0).Ref()
	want := orient.Flip(true, false).Mul(orient.Rotation(2))
	if ref.Matrix() != want {
		t.Fatalf("flip should compose on top of rotation, got %v", ref.Orientation)
	}
}

func TestTransformRejectedOutOfBounds(t *testing.T) {
	e := newEditor(3, 2)
	letters(e, 0, 0)
	before := e.Map().Clone()
	e.Select(image.Pt(0, 0), image.Pt(2, 1))

	res := e.TransformSelection(RotateCW)
	if res.Reason != ReasonOutOfBounds {
		t.Fatalf("expected ReasonOutOfBounds, got %+v", res)
	}
	if !sameTiles(e.Map(), before) || e.CanUndo() {
		t.Fatalf("rejected transform must not touch the map")
	}
	if sel, _ := e.Selection(); sel.Dx() != 3 {
		t.Fatalf("selection should be unchanged, got %v", sel)
	}
}

func TestTransformEmptySelectionMovesRect(t *testing.T) {
	e := newEditor(4, 4)
	e.Select(image.Pt(0, 0), image.Pt(2, 0))
	res := e.TransformSelection(RotateCW)
	if res.Applied() || e.CanUndo() {
		t.Fatalf("empty block should record nothing, got %+v", res)
	}
	if sel, _ := e.Selection(); sel != (Rect{Max: image.Pt(0, 2)}) {
		t.Fatalf("selection should still rotate, got %v", sel)
	}
}

func TestTransformNoSelection(t *testing.T) {
	e := newEditor(2, 2)
	if r := e.TransformSelection(RotateCW); r.Reason != ReasonNoSelection {
		t.Fatalf("expected ReasonNoSelection, got %+v", r)
	}
}

func TestSelectClipsToMap(t *testing.T) {
	e := newEditor(4, 4)
	if !e.Select(image.Pt(6, -2), image.Pt(2, 1)) {
		t.Fatalf("partially inside rect should select")
	}
	if sel, _ := e.Selection(); sel != (Rect{Min: image.Pt(2, 0), Max: image.Pt(3, 1)}) {
		t.Fatalf("unexpected clipped selection %v", sel)
	}
	if e.Select(image.Pt(9, 9), image.Pt(8, 8)) {
		t.Fatalf("outside rect should not select")
	}
	if _, ok := e.Selection(); ok {
		t.Fatalf("selection should be cleared")
	}
}

func TestCopyCutDelete(t *testing.T) {
	e := newEditor(4, 4)
	letters(e, 1, 1)
	e.Select(image.Pt(1, 1), image.Pt(2, 2))

	if r := e.Copy(); r.Reason != ReasonNone {
		t.Fatalf("copy failed: %v", r.Reason)
	}
	clip := e.Clipboard()
	if clip.Width != 2 || clip.Height != 2 || clip.At(1, 1) != tile('E') {
		t.Fatalf("unexpected clipboard %+v", clip)
	}

	res := e.Cut()
	if res.Changed != 4 {
		t.Fatalf("cut should clear 4 cells, got %+v", res)
	}
	if undo, _ := e.HistoryDepth(); undo != 1 {
		t.Fatalf("cut should be one command")
	}
	if r := e.Delete(); r.Reason != ReasonNoop {
		t.Fatalf("deleting empty cells should be a no-op, got %+v", r)
	}
	e.Undo()
	if e.Map().At(0, 2, 2) != tile('E') {
		t.Fatalf("undo should restore cut cells")
	}
	if r := e.Delete(); r.Changed != 4 {
		t.Fatalf("delete should clear 4 cells, got %+v", r)
	}
	e.Deselect()
	if r := e.Copy(); r.Reason != ReasonNoSelection {
		t.Fatalf("copy without selection should be rejected")
	}
}

func TestPaste(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(e *Editor)
		origin image.Point
		want   map[image.Point]rune
	}{
		{
			name:   "plain",
			origin: image.Pt(1, 1),
			want:   map[image.Point]rune{{X: 1, Y: 1}: 'A', {X: 3, Y: 1}: 'C', {X: 1, Y: 2}: 'D', {X: 3, Y: 2}: 'F'},
		},
		{
			name:   "rotated_cw",
			setup:  func(e *Editor) { e.RotatePaste(1) },
			origin: image.Pt(0, 0),
			want:   map[image.Point]rune{{X: 0, Y: 0}: 'D', {X: 1, Y: 0}: 'A', {X: 0, Y: 2}: 'F', {X: 1, Y: 2}: 'C'},
		},
		{
			name:   "rotated_ccw",
			setup:  func(e *Editor) { e.RotatePaste(-1) },
			origin: image.Pt(0, 0),
			want:   map[image.Point]rune{{X: 0, Y: 0}: 'C', {X: 1, Y: 0}: 'F', {X: 0, Y: 2}: 'A', {X: 1, Y: 2}: 'D'},
		},
		{
			name:   "flipped_y",
			setup:  func(e *Editor) { e.FlipPasteY() },
			origin: image.Pt(0, 0),
			want:   map[image.Point]rune{{X: 0, Y: 0}: 'D', {X: 2, Y: 0}: 'F', {X: 0, Y: 1}: 'A'},
		},
		{
			name:   "clipped",
			origin: image.Pt(4, 4),
			want:   map[image.Point]rune{{X: 4, Y: 4}: 'A'},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEditor(5, 5)
			letters(e, 0, 0)
			e.Select(image.Pt(0, 0), image.Pt(2, 1))
			e.Copy()
			e.SetActiveLayer(1)
			if c.setup != nil {
				c.setup(e)
			}
			res := e.Paste(c.origin)
			if !res.Applied() {
				t.Fatalf("paste not applied: %+v", res)
			}
			for p, ch := range c.want {
				if got := e.Map().At(1, p.X, p.Y); got != tile(uint32(ch)) {
					t.Fatalf("(%d,%d) = %v, want %c", p.X, p.Y, got, ch)
				}
			}
		})
	}
}

func TestPasteIdempotent(t *testing.T) {
	e := newEditor(4, 4)
	letters(e, 0, 0)
	e.Select(image.Pt(0, 0), image.Pt(2, 1))
	e.Copy()

	if r := e.Paste(image.Pt(0, 0)); r.Reason != ReasonNoop {
		t.Fatalf("pasting onto identical cells should be a no-op, got %+v", r)
	}
	if r := e.Paste(image.Pt(1, 2)); !r.Applied() {
		t.Fatalf("first paste should apply")
	}
	depth, _ := e.HistoryDepth()
	if r := e.Paste(image.Pt(1, 2)); r.Reason != ReasonNoop {
		t.Fatalf("second identical paste should be a no-op, got %+v", r)
	}
	if d, _ := e.HistoryDepth(); d != depth {
		t.Fatalf("no-op paste pushed a command")
	}
}

func TestPasteOutOfBoundsAndEmpty(t *testing.T) {
	e := newEditor(3, 3)
	if r := e.Paste(image.Pt(0, 0)); r.Reason != ReasonEmptyClipboard {
		t.Fatalf("expected ReasonEmptyClipboard, got %+v", r)
	}
	e.SetClipboard(Clipboard{Width: 1, Height: 1, Tiles: []tilemap.Cell{tile(1)}})
	if r := e.Paste(image.Pt(5, 5)); r.Applied() || e.CanUndo() {
		t.Fatalf("fully clipped paste should change nothing")
	}
}

func TestPasteBlankClipboard(t *testing.T) {
	e := newEditor(3, 1)
	e.Paint(0, 0, tile(1))
	e.Paint(1, 0, tile(2))
	undo, _ := e.HistoryDepth()

	e.SetClipboard(Clipboard{Width: 2, Height: 1, Tiles: []tilemap.Cell{tilemap.Empty(), tilemap.Empty()}})
	if r := e.Paste(image.Pt(0, 0)); r.Reason != ReasonEmptyClipboard {
		t.Fatalf("expected ReasonEmptyClipboard, got %+v", r)
	}
	if e.Map().At(0, 0, 0) != tile(1) || e.Map().At(0, 1, 0) != tile(2) {
		t.Fatalf("blank paste overwrote tiles")
	}
	if got, _ := e.HistoryDepth(); got != undo {
		t.Fatalf("undo depth = %d, want %d", got, undo)
	}
}

func TestPasteState(t *testing.T) {
	e := newEditor(2, 2)
	e.SetClipboard(Clipboard{Width: 3, Height: 2, Tiles: make([]tilemap.Cell, 6)})
	e.RotatePaste(1)
	if w, h := e.PasteDims(); w != 2 || h != 3 {
		t.Fatalf("rotated dims = %dx%d", w, h)
	}
	e.RotatePaste(-1)
	e.RotatePaste(-1)
	if e.PasteOrientation().Rot != 3 {
		t.Fatalf("expected rot 3, got %v", e.PasteOrientation())
	}
	e.FlipPasteX()
	e.ResetPaste()
	if e.PasteOrientation() != (orient.Orientation{}) {
		t.Fatalf("reset should clear orientation")
	}
}

func TestPastePreview(t *testing.T) {
	e := newEditor(3, 3)
	e.SetClipboard(Clipboard{Width: 2, Height: 1, Tiles: []tilemap.Cell{tile(1), tile(2)}})
	cells := e.PastePreview(image.Pt(2, 0))
	if len(cells) != 1 || cells[0].X != 2 || cells[0].Cell != tile(1) {
		t.Fatalf("unexpected preview %+v", cells)
	}
	if e.CanUndo() {
		t.Fatalf("preview must not edit")
	}
}
