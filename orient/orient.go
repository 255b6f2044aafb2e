// Package orient models tile orientation as the eight-element dihedral group
// of the square, using 2x2 integer matrices.
package orient

import "fmt"

// Matrix is a 2x2 integer matrix in row-major order.
type Matrix [2][2]int

var Identity = Matrix{{1, 0}, {0, 1}}

// Mul returns m × n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = m[r][0]*n[0][c] + m[r][1]*n[1][c]
		}
	}
	return out
}

// Rotation returns the matrix for n clockwise quarter turns.
func Rotation(n uint8) Matrix {
	switch n % 4 {
	case 1:
		return Matrix{{0, 1}, {-1, 0}}
	case 2:
		return Matrix{{-1, 0}, {0, -1}}
	case 3:
		return Matrix{{0, -1}, {1, 0}}
	default:
		return Identity
	}
}

// Flip returns diag(fx ? -1 : 1, fy ? -1 : 1).
func Flip(fx, fy bool) Matrix {
	m := Identity
	if fx {
		m[0][0] = -1
	}
	if fy {
		m[1][1] = -1
	}
	return m
}

// Orientation is a rotation (clockwise quarter turns) applied after an
// optional mirror on each axis.
type Orientation struct {
	Rot   uint8 `json:"rot" yaml:"rot"`
	FlipX bool  `json:"flip_x" yaml:"flip_x"`
	FlipY bool  `json:"flip_y" yaml:"flip_y"`
}

// Named transforms used by selection and single tile edits.
var (
	RotateCW  = Orientation{Rot: 1}
	RotateCCW = Orientation{Rot: 3}
	MirrorX   = Orientation{FlipX: true}
	MirrorY   = Orientation{FlipY: true}
)

// canonical lists one triple per group element. Order matters: Decompose
// returns the first match.
var canonical = [8]Orientation{
	{Rot: 0},
	{Rot: 1},
	{Rot: 2},
	{Rot: 3},
	{Rot: 0, FlipX: true},
	{Rot: 0, FlipY: true},
	{Rot: 1, FlipX: true},
	{Rot: 1, FlipY: true},
}

// All returns the eight distinct orientations.
func All() []Orientation {
	out := make([]Orientation, len(canonical))
	copy(out, canonical[:])
	return out
}

// Normalize reduces Rot modulo 4.
func (o Orientation) Normalize() Orientation {
	o.Rot %= 4
	return o
}

// IsIdentity reports whether o leaves a tile unchanged.
func (o Orientation) IsIdentity() bool {
	return o.Matrix() == Identity
}

// Matrix returns Rotation(Rot) × Flip(FlipX, FlipY).
func (o Orientation) Matrix() Matrix {
	return Rotation(o.Rot).Mul(Flip(o.FlipX, o.FlipY))
}

// Equivalent reports whether o and p describe the same group element.
func (o Orientation) Equivalent(p Orientation) bool {
	return o.Matrix() == p.Matrix()
}

func (o Orientation) String() string {
	s := fmt.Sprintf("rot%d", o.Rot%4)
	if o.FlipX {
		s += "+fx"
	}
	if o.FlipY {
		s += "+fy"
	}
	return s
}

// Decompose finds the canonical orientation whose matrix equals m.
func Decompose(m Matrix) (Orientation, bool) {
	for _, o := range canonical {
		if o.Matrix() == m {
			return o, true
		}
	}
	return Orientation{}, false
}

// Compose applies outer on top of an existing tile orientation.
// It panics if the product is not a group element, which can only happen
// if outer was not built from Rotation and Flip.
func Compose(outer Matrix, tile Orientation) Orientation {
	o, ok := Decompose(outer.Mul(tile.Matrix()))
	if !ok {
		panic(fmt.Sprintf("orient: %v × %v is not a square symmetry", outer, tile.Matrix()))
	}
	return o
}

// Then is Compose(t.Matrix(), o): the orientation a tile at o ends up with
// after the transform t.
func (o Orientation) Then(t Orientation) Orientation {
	return Compose(t.Matrix(), o)
}

// Rotate turns the orientation by quarter turns; negative values turn
// counter-clockwise. Flips are kept.
func (o Orientation) Rotate(quarter int) Orientation {
	r := (int(o.Rot) + quarter) % 4
	if r < 0 {
		r += 4
	}
	o.Rot = uint8(r)
	return o
}

// Dims returns the size of a w×h block after rot quarter turns.
func Dims(w, h int, rot uint8) (int, int) {
	if rot%2 == 1 {
		return h, w
	}
	return w, h
}

// MapPoint maps cell (sx, sy) of a w×h block to its position in the
// transformed block: rotate clockwise first, then mirror inside the rotated
// bounds.
func (o Orientation) MapPoint(sx, sy, w, h int) (int, int) {
	var x, y int
	switch o.Rot % 4 {
	case 1:
		x, y = h-1-sy, sx
	case 2:
		x, y = w-1-sx, h-1-sy
	case 3:
		x, y = sy, w-1-sx
	default:
		x, y = sx, sy
	}
	rw, rh := Dims(w, h, o.Rot)
	if o.FlipX {
		x = rw - 1 - x
	}
	if o.FlipY {
		y = rh - 1 - y
	}
	return x, y
}
