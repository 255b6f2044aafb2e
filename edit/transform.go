package edit

import (
	"fmt"
	"image"
	"strings"

	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/orient"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

// Transform is a rotation, mirror or orientation reset applied to a
// selection or a single tile.
type Transform int

const (
	RotateCW Transform = iota
	RotateCCW
	FlipX
	FlipY
	ResetOrientation
)

func (t Transform) String() string {
	switch t {
	case RotateCW:
		return "rotate cw"
	case RotateCCW:
		return "rotate ccw"
	case FlipX:
		return "flip x"
	case FlipY:
		return "flip y"
	case ResetOrientation:
		return "reset orientation"
	default:
		return fmt.Sprintf("Transform(%d)", int(t))
	}
}

// ParseTransform accepts the names printed by String, with underscores or
// spaces ("rotate_cw", "flip x").
func ParseTransform(s string) (Transform, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
	for _, t := range []Transform{RotateCW, RotateCCW, FlipX, FlipY, ResetOrientation} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("edit: unknown transform %q", s)
}

func (t Transform) orientation() orient.Orientation {
	switch t {
	case RotateCW:
		return orient.RotateCW
	case RotateCCW:
		return orient.RotateCCW
	case FlipX:
		return orient.MirrorX
	case FlipY:
		return orient.MirrorY
	default:
		return orient.Orientation{}
	}
}

// apply reorients the tile in c.
func (t Transform) apply(c tilemap.Cell) tilemap.Cell {
	ref, ok := c.Ref()
	if !ok {
		return c
	}
	if t == ResetOrientation {
		return c.WithOrientation(orient.Orientation{})
	}
	return c.WithOrientation(ref.Orientation.Then(t.orientation()))
}

// TransformSelection rotates or mirrors the selected block of the active
// layer. Positions move through the same mapping as paste, and each tile's
// own orientation is composed with the transform. The block keeps its
// top-left corner; a rotation whose result would leave the map is rejected.
func (e *Editor) TransformSelection(t Transform) Result {
	if !e.hasSel {
		return rejected(ReasonNoSelection)
	}
	if r := e.editable(); r != ReasonNone {
		return rejected(r)
	}
	e.CancelMove()

	old := e.sel
	w, h := old.Dx(), old.Dy()
	o := t.orientation()
	nw, nh := orient.Dims(w, h, o.Rot)
	next := Rect{Min: old.Min, Max: old.Min.Add(image.Pt(nw-1, nh-1))}
	if !e.inMap(next) {
		e.log.Debug("transform rejected", zap.Stringer("transform", t), zap.Stringer("rect", next))
		return rejected(ReasonOutOfBounds)
	}

	moved := make([]tilemap.Cell, nw*nh)
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			c := e.m.At(e.layer, old.Min.X+sx, old.Min.Y+sy)
			x, y := o.MapPoint(sx, sy, w, h)
			moved[y*nw+x] = t.apply(c)
		}
	}

	bld := history.NewBuilder(e.m)
	old.Each(func(x, y int) {
		if !next.Contains(image.Pt(x, y)) {
			bld.Set(e.m.Index(e.layer, x, y), tilemap.Empty())
		}
	})
	next.Each(func(x, y int) {
		bld.Set(e.m.Index(e.layer, x, y), moved[(y-next.Min.Y)*nw+(x-next.Min.X)])
	})
	e.sel = next
	return e.commit(bld.Command(), t.String())
}

// TransformTile reorients the topmost visible tile at (x, y).
func (e *Editor) TransformTile(x, y int, t Transform) Result {
	layer, ok := e.m.TopmostAt(x, y)
	if !ok {
		return rejected(ReasonNoop)
	}
	if e.m.IsLocked(layer) {
		return rejected(ReasonLocked)
	}
	idx := e.m.Index(layer, x, y)
	bld := history.NewBuilder(e.m)
	bld.Set(idx, t.apply(e.m.Get(idx)))
	return e.commit(bld.Command(), "tile "+t.String())
}
