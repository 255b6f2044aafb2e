package edit

import (
	"image"

	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/tilemap"
)

// Selection returns the selected rectangle, if any.
func (e *Editor) Selection() (Rect, bool) {
	return e.sel, e.hasSel
}

// Select selects the rectangle between two corners, clipped to the map.
// A rectangle entirely outside the map clears the selection. Selecting
// cancels a drag in progress.
func (e *Editor) Select(a, b image.Point) bool {
	e.CancelMove()
	r, ok := RectFrom(a, b).Intersect(e.bounds())
	if !ok {
		e.Deselect()
		return false
	}
	e.sel, e.hasSel = r, true
	return true
}

func (e *Editor) SelectAll() bool {
	e.CancelMove()
	if e.m.LayerLen() == 0 {
		e.Deselect()
		return false
	}
	e.sel, e.hasSel = e.bounds(), true
	return true
}

func (e *Editor) Deselect() {
	e.CancelMove()
	e.sel, e.hasSel = Rect{}, false
}

// Copy stores the selected cells of the active layer in the clipboard.
func (e *Editor) Copy() Result {
	if !e.hasSel {
		return rejected(ReasonNoSelection)
	}
	if e.m.LayerLen() == 0 {
		return rejected(ReasonEmptyMap)
	}
	e.clip = e.extract(e.sel)
	return Result{}
}

// Cut copies the selection and clears it in one command.
func (e *Editor) Cut() Result {
	if !e.hasSel {
		return rejected(ReasonNoSelection)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	e.clip = e.extract(e.sel)
	return e.clearRect(e.sel, "cut")
}

// Delete clears the selected cells of the active layer.
func (e *Editor) Delete() Result {
	if !e.hasSel {
		return rejected(ReasonNoSelection)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	return e.clearRect(e.sel, "delete")
}

func (e *Editor) clearRect(r Rect, op string) Result {
	bld := history.NewBuilder(e.m)
	r.Each(func(x, y int) {
		bld.Set(e.m.Index(e.layer, x, y), tilemap.Empty())
	})
	return e.commit(bld.Command(), op)
}

// extract copies the cells of r on the active layer. r must lie inside the
// map.
func (e *Editor) extract(r Rect) Clipboard {
	c := Clipboard{Width: r.Dx(), Height: r.Dy(), Tiles: make([]tilemap.Cell, 0, r.Dx()*r.Dy())}
	r.Each(func(x, y int) {
		c.Tiles = append(c.Tiles, e.m.At(e.layer, x, y))
	})
	return c
}
