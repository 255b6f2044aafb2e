package edit

import (
	"image"

	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

type rectGesture struct {
	start, end image.Point
	cell       tilemap.Cell
}

func (g *rectGesture) area() Rect {
	return RectFrom(g.start, g.end)
}

// FillRect sets every cell between two corners to c. The rectangle is
// clipped to the map; cells already holding c are not recorded.
func (e *Editor) FillRect(a, b image.Point, c tilemap.Cell) Result {
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	area, ok := RectFrom(a, b).Intersect(e.bounds())
	if !ok {
		return rejected(ReasonOutOfBounds)
	}
	bld := history.NewBuilder(e.m)
	area.Each(func(x, y int) {
		bld.Set(e.m.Index(e.layer, x, y), c)
	})
	return e.commit(bld.Command(), "fill rect")
}

// BeginRect starts a rectangle drag at p.
func (e *Editor) BeginRect(p image.Point, c tilemap.Cell) Result {
	if e.busy() {
		return rejected(ReasonBusy)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	e.rect = &rectGesture{start: p, end: p, cell: c}
	return Result{}
}

func (e *Editor) DragRect(p image.Point) {
	if e.rect != nil {
		e.rect.end = p
	}
}

// RectPreview returns the rectangle being dragged, clipped to the map.
func (e *Editor) RectPreview() (Rect, bool) {
	if e.rect == nil {
		return Rect{}, false
	}
	return e.rect.area().Intersect(e.bounds())
}

func (e *Editor) EndRect() Result {
	g := e.rect
	if g == nil {
		return rejected(ReasonNoop)
	}
	e.rect = nil
	return e.FillRect(g.start, g.end, g.cell)
}

func (e *Editor) CancelRect() {
	e.rect = nil
}

// FloodFill replaces the 4-connected region around (x, y) that matches the
// seed cell with c.
func (e *Editor) FloodFill(x, y int, c tilemap.Cell) Result {
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	if !e.m.InBounds(x, y) {
		return rejected(ReasonOutOfBounds)
	}
	target := e.m.At(e.layer, x, y)
	if target == c {
		return rejected(ReasonNoop)
	}

	w := e.m.Width
	visited := make([]bool, e.m.LayerLen())
	queue := []image.Point{{X: x, Y: y}}
	visited[y*w+x] = true
	bld := history.NewBuilder(e.m)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		idx := e.m.Index(e.layer, p.X, p.Y)
		if e.m.Get(idx) != target {
			continue
		}
		bld.Set(idx, c)
		for _, d := range [4]image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			n := p.Add(d)
			if !e.m.InBounds(n.X, n.Y) || visited[n.Y*w+n.X] {
				continue
			}
			visited[n.Y*w+n.X] = true
			queue = append(queue, n)
		}
	}
	e.log.Debug("flood fill", zap.Int("x", x), zap.Int("y", y), zap.Int("cells", bld.Len()))
	return e.commit(bld.Command(), "flood fill")
}
