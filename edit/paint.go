package edit

import (
	"image"

	"github.com/milk9111/tiledit/common"
	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/tilemap"
)

type strokeGesture struct {
	buf     *history.Stroke
	cell    tilemap.Cell
	last    image.Point
	hasLast bool
}

// footprint returns the cells covered by the brush centred on (x, y),
// clipped to the map.
func (e *Editor) footprint(x, y int) []image.Point {
	lo := -(e.brushSize - 1) / 2
	hi := e.brushSize / 2
	var out []image.Point
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			if e.m.InBounds(x+dx, y+dy) {
				out = append(out, image.Pt(x+dx, y+dy))
			}
		}
	}
	return out
}

// BeginStroke starts a pencil (or, with an empty cell, eraser) gesture.
// Nothing reaches the map until EndStroke.
func (e *Editor) BeginStroke(c tilemap.Cell) Result {
	if e.busy() {
		return rejected(ReasonBusy)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	e.stroke = &strokeGesture{buf: history.NewStroke(), cell: c}
	return Result{}
}

// StrokeTo paints the brush at (x, y), filling the gap from the previous
// point so fast drags leave no holes.
func (e *Editor) StrokeTo(x, y int) {
	s := e.stroke
	if s == nil {
		return
	}
	pts := [][2]int{{x, y}}
	if s.hasLast {
		pts = common.Line(s.last.X, s.last.Y, x, y)
	}
	for _, p := range pts {
		for _, fp := range e.footprint(p[0], p[1]) {
			s.buf.Set(e.m.Index(e.layer, fp.X, fp.Y), s.cell)
		}
	}
	s.last = image.Pt(x, y)
	s.hasLast = true
}

// EndStroke commits the gesture as one command.
func (e *Editor) EndStroke() Result {
	s := e.stroke
	if s == nil {
		return rejected(ReasonNoop)
	}
	e.stroke = nil
	return e.commit(s.buf.Commit(e.m), "stroke")
}

func (e *Editor) CancelStroke() {
	if e.stroke != nil {
		e.stroke.buf.Cancel()
		e.stroke = nil
	}
}

// Stroking reports whether a stroke is in progress.
func (e *Editor) Stroking() bool {
	return e.stroke != nil
}

// Paint applies a single brush dab.
func (e *Editor) Paint(x, y int, c tilemap.Cell) Result {
	if r := e.BeginStroke(c); r.Reason != ReasonNone {
		return r
	}
	e.StrokeTo(x, y)
	return e.EndStroke()
}

// Line paints a Bresenham line between two cells as one command. Points
// outside the map are skipped.
func (e *Editor) Line(a, b image.Point, c tilemap.Cell) Result {
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	bld := history.NewBuilder(e.m)
	for _, p := range common.Line(a.X, a.Y, b.X, b.Y) {
		for _, fp := range e.footprint(p[0], p[1]) {
			bld.Set(e.m.Index(e.layer, fp.X, fp.Y), c)
		}
	}
	return e.commit(bld.Command(), "line")
}

// Pending returns what the cell at (x, y) on the active layer will hold once
// the gesture in progress commits.
func (e *Editor) Pending(x, y int) (tilemap.Cell, bool) {
	if !e.m.InBounds(x, y) {
		return tilemap.Cell{}, false
	}
	switch {
	case e.stroke != nil:
		return e.stroke.buf.Pending(e.m.Index(e.layer, x, y))
	case e.rect != nil:
		if e.rect.area().Contains(image.Pt(x, y)) {
			return e.rect.cell, true
		}
	}
	return tilemap.Cell{}, false
}
