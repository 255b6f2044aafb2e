package edit

import (
	"fmt"
	"image"
)

// Rect is a cell rectangle with inclusive bounds.
type Rect struct {
	Min, Max image.Point
}

// RectFrom builds a rect from two corners given in any order.
func RectFrom(a, b image.Point) Rect {
	return Rect{
		Min: image.Pt(min(a.X, b.X), min(a.Y, b.Y)),
		Max: image.Pt(max(a.X, b.X), max(a.Y, b.Y)),
	}
}

func (r Rect) Dx() int { return r.Max.X - r.Min.X + 1 }
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y + 1 }

func (r Rect) Contains(p image.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Add(d image.Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Intersect clips r to o. The result is only meaningful when ok is true.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Min: image.Pt(max(r.Min.X, o.Min.X), max(r.Min.Y, o.Min.Y)),
		Max: image.Pt(min(r.Max.X, o.Max.X), min(r.Max.Y, o.Max.Y)),
	}
	return out, out.Min.X <= out.Max.X && out.Min.Y <= out.Max.Y
}

// Each visits every cell row by row.
func (r Rect) Each(fn func(x, y int)) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			fn(x, y)
		}
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
