package script

import (
	"fmt"
	"image"
	"strings"

	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/levels"
	"github.com/milk9111/tiledit/orient"
	"github.com/milk9111/tiledit/tilemap"
)

type operation struct {
	params []string
	run    func(ed *edit.Editor, a args) (edit.Result, error)
}

var operations = map[string]operation{
	"paint": {params: []string{"x", "y", "tile"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		p, err := a.point("x", "y")
		if err != nil {
			return edit.Result{}, err
		}
		c, err := a.cell("tile")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.Paint(p.X, p.Y, c), nil
	}},
	"line": {params: []string{"x0", "y0", "x1", "y1", "tile"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		return twoPoints(a, true, func(p, q image.Point, c tilemap.Cell) edit.Result { return ed.Line(p, q, c) })
	}},
	"fill_rect": {params: []string{"x0", "y0", "x1", "y1", "tile"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		return twoPoints(a, true, func(p, q image.Point, c tilemap.Cell) edit.Result { return ed.FillRect(p, q, c) })
	}},
	"flood": {params: []string{"x", "y", "tile"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		p, err := a.point("x", "y")
		if err != nil {
			return edit.Result{}, err
		}
		c, err := a.cell("tile")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.FloodFill(p.X, p.Y, c), nil
	}},
	"select": {params: []string{"x0", "y0", "x1", "y1"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		return twoPoints(a, false, func(p, q image.Point, _ tilemap.Cell) edit.Result {
			if !ed.Select(p, q) {
				return edit.Result{Reason: edit.ReasonOutOfBounds}
			}
			return edit.Result{}
		})
	}},
	"select_all": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		if !ed.SelectAll() {
			return edit.Result{Reason: edit.ReasonEmptyMap}, nil
		}
		return edit.Result{}, nil
	}},
	"deselect": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		ed.Deselect()
		return edit.Result{}, nil
	}},
	"copy": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		return ed.Copy(), nil
	}},
	"cut": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		return ed.Cut(), nil
	}},
	"delete": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		return ed.Delete(), nil
	}},
	"paste": {params: []string{"x", "y"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		p, err := a.point("x", "y")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.Paste(p), nil
	}},
	"rotate_paste": {params: []string{"quarter"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		n, err := a.intOr("quarter", 1)
		if err != nil {
			return edit.Result{}, err
		}
		ed.RotatePaste(n)
		return edit.Result{}, nil
	}},
	"flip_paste": {params: []string{"axis"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		axis, err := a.str("axis")
		if err != nil {
			return edit.Result{}, err
		}
		switch strings.ToLower(axis) {
		case "x":
			ed.FlipPasteX()
		case "y":
			ed.FlipPasteY()
		default:
			return edit.Result{}, fmt.Errorf("axis must be x or y, got %q", axis)
		}
		return edit.Result{}, nil
	}},
	"reset_paste": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		ed.ResetPaste()
		return edit.Result{}, nil
	}},
	"transform": {params: []string{"name"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		t, err := a.transform("name")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.TransformSelection(t), nil
	}},
	"transform_tile": {params: []string{"x", "y", "name"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		p, err := a.point("x", "y")
		if err != nil {
			return edit.Result{}, err
		}
		t, err := a.transform("name")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.TransformTile(p.X, p.Y, t), nil
	}},
	"move": {params: []string{"dx", "dy", "duplicate"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		d, err := a.point("dx", "dy")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.MoveSelection(d.X, d.Y, a.boolean("duplicate")), nil
	}},
	"shift": {params: []string{"dir"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		dir, err := a.direction("dir")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.ShiftMap(dir), nil
	}},
	"shift_layer": {params: []string{"dir"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		dir, err := a.direction("dir")
		if err != nil {
			return edit.Result{}, err
		}
		return ed.ShiftLayer(dir), nil
	}},
	"shift_mode": {params: []string{"mode"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		s, err := a.str("mode")
		if err != nil {
			return edit.Result{}, err
		}
		mode, err := edit.ParseShiftMode(s)
		if err != nil {
			return edit.Result{}, err
		}
		ed.SetShiftMode(mode)
		return edit.Result{}, nil
	}},
	"layer": {params: []string{"index"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		n, err := a.int("index")
		if err != nil {
			return edit.Result{}, err
		}
		ed.SetActiveLayer(n)
		return edit.Result{}, nil
	}},
	"lock": {params: []string{"index", "locked"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		n, err := a.int("index")
		if err != nil {
			return edit.Result{}, err
		}
		ed.SetLayerLocked(n, a.boolean("locked"))
		return edit.Result{}, nil
	}},
	"show": {params: []string{"index", "visible"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		n, err := a.int("index")
		if err != nil {
			return edit.Result{}, err
		}
		ed.SetLayerVisible(n, a.boolean("visible"))
		return edit.Result{}, nil
	}},
	"rename": {params: []string{"index", "name"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		n, err := a.int("index")
		if err != nil {
			return edit.Result{}, err
		}
		name, err := a.str("name")
		if err != nil {
			return edit.Result{}, err
		}
		ed.RenameLayer(n, name)
		return edit.Result{}, nil
	}},
	"undo": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		return ed.Undo(), nil
	}},
	"redo": {run: func(ed *edit.Editor, _ args) (edit.Result, error) {
		return ed.Redo(), nil
	}},
	"resize": {params: []string{"width", "height"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		p, err := a.point("width", "height")
		if err != nil {
			return edit.Result{}, err
		}
		if p.X < 0 || p.Y < 0 || p.X > levels.MaxDimension || p.Y > levels.MaxDimension {
			return edit.Result{}, fmt.Errorf("size %dx%d out of range", p.X, p.Y)
		}
		ed.Resize(p.X, p.Y)
		return edit.Result{}, nil
	}},
	"set_layers": {params: []string{"count"}, run: func(ed *edit.Editor, a args) (edit.Result, error) {
		n, err := a.int("count")
		if err != nil {
			return edit.Result{}, err
		}
		if err := levels.CheckLayers(n); err != nil {
			return edit.Result{}, err
		}
		ed.SetLayerCount(n)
		return edit.Result{}, nil
	}},
}

func apply(ed *edit.Editor, name string, named map[string]any) (edit.Result, error) {
	o, ok := operations[name]
	if !ok {
		return edit.Result{}, fmt.Errorf("unknown operation %q", name)
	}
	res, err := o.run(ed, args{values: named})
	if err != nil {
		return edit.Result{}, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

func twoPoints(a args, withCell bool, fn func(p, q image.Point, c tilemap.Cell) edit.Result) (edit.Result, error) {
	p, err := a.point("x0", "y0")
	if err != nil {
		return edit.Result{}, err
	}
	q, err := a.point("x1", "y1")
	if err != nil {
		return edit.Result{}, err
	}
	var c tilemap.Cell
	if withCell {
		if c, err = a.cell("tile"); err != nil {
			return edit.Result{}, err
		}
	}
	return fn(p, q, c), nil
}

// args reads operation arguments decoded from tengo values.
type args struct {
	values map[string]any
}

func (a args) int(key string) (int, error) {
	v, ok := a.values[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing %q", key)
	}
	return toInt(key, v)
}

func (a args) intOr(key string, def int) (int, error) {
	v, ok := a.values[key]
	if !ok || v == nil {
		return def, nil
	}
	return toInt(key, v)
}

func toInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%q must be a number, got %T", key, v)
	}
}

func (a args) point(kx, ky string) (image.Point, error) {
	x, err := a.int(kx)
	if err != nil {
		return image.Point{}, err
	}
	y, err := a.int(ky)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

func (a args) str(key string) (string, error) {
	s, ok := a.values[key].(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string", key)
	}
	return s, nil
}

func (a args) boolean(key string) bool {
	b, _ := a.values[key].(bool)
	return b
}

func (a args) transform(key string) (edit.Transform, error) {
	s, err := a.str(key)
	if err != nil {
		return 0, err
	}
	return edit.ParseTransform(s)
}

func (a args) direction(key string) (edit.Direction, error) {
	s, err := a.str(key)
	if err != nil {
		return 0, err
	}
	return edit.ParseDirection(strings.ToLower(s))
}

// cell accepts undefined (empty), a bare tile index, or a map with
// tileset_id, index, rot, flip_x and flip_y.
func (a args) cell(key string) (tilemap.Cell, error) {
	switch v := a.values[key].(type) {
	case nil:
		return tilemap.Empty(), nil
	case int64, int, float64:
		n, err := toInt(key, v)
		if err != nil {
			return tilemap.Empty(), err
		}
		if n < 0 {
			return tilemap.Empty(), fmt.Errorf("%q: negative tile index %d", key, n)
		}
		return tilemap.Some(tilemap.TileRef{Index: uint32(n)}), nil
	case map[string]any:
		ref := tilemap.TileRef{}
		ref.TilesetID, _ = v["tileset_id"].(string)
		sub := args{values: v}
		idx, err := sub.intOr("index", 0)
		if err != nil {
			return tilemap.Empty(), err
		}
		if idx < 0 {
			return tilemap.Empty(), fmt.Errorf("%q: negative tile index %d", key, idx)
		}
		ref.Index = uint32(idx)
		rot, err := sub.intOr("rot", 0)
		if err != nil {
			return tilemap.Empty(), err
		}
		ref.Orientation = orient.Orientation{}.Rotate(rot)
		ref.FlipX = sub.boolean("flip_x")
		ref.FlipY = sub.boolean("flip_y")
		return tilemap.Some(ref), nil
	default:
		return tilemap.Empty(), fmt.Errorf("%q must be a tile map or index, got %T", key, v)
	}
}
