package tilemap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/milk9111/tiledit/orient"
)

func tile(index uint32) Cell {
	return Some(TileRef{TilesetID: "ts", Index: index})
}

func TestIndexLayout(t *testing.T) {
	m := NewWithLayers(4, 3, 2)
	cases := []struct {
		name     string
		layer    int
		x, y     int
		expected int
	}{
		{name: "origin", layer: 0, x: 0, y: 0, expected: 0},
		{name: "row_major", layer: 0, x: 1, y: 2, expected: 9},
		{name: "second_layer", layer: 1, x: 0, y: 0, expected: 12},
		{name: "last", layer: 1, x: 3, y: 2, expected: 23},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := m.Index(c.layer, c.x, c.y)
			if got != c.expected {
				t.Fatalf("Index(%d,%d,%d) = %d, want %d", c.layer, c.x, c.y, got, c.expected)
			}
			l, x, y := m.Coord(got)
			if l != c.layer || x != c.x || y != c.y {
				t.Fatalf("Coord(%d) = (%d,%d,%d)", got, l, x, y)
			}
		})
	}
}

func TestIndexPanicsOutOfRange(t *testing.T) {
	m := New(2, 2)
	cases := []struct {
		name  string
		layer int
		x, y  int
	}{
		{name: "x_too_big", layer: 0, x: 2, y: 0},
		{name: "negative_y", layer: 0, x: 0, y: -1},
		{name: "bad_layer", layer: 2, x: 0, y: 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			m.Index(c.layer, c.x, c.y)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	m := New(3, 2)
	if m.Layers != DefaultLayerCount {
		t.Fatalf("expected %d layers, got %d", DefaultLayerCount, m.Layers)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(m.Meta) != m.Layers {
		t.Fatalf("expected meta per layer, got %d", len(m.Meta))
	}
	if m.Meta[1].Name != "Layer 2" || !m.Meta[1].Visible || m.Meta[1].Locked {
		t.Fatalf("unexpected default meta %+v", m.Meta[1])
	}
	for i, c := range m.Tiles {
		if !c.IsEmpty() {
			t.Fatalf("cell %d not empty", i)
		}
	}
}

func TestValidateBufferSize(t *testing.T) {
	m := New(2, 2)
	m.Tiles = m.Tiles[:3]
	if err := m.Validate(); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("expected ErrBufferSize, got %v", err)
	}
}

func TestCellEquality(t *testing.T) {
	if Empty() != (Cell{}) {
		t.Fatalf("zero cell should be empty")
	}
	a := Some(TileRef{TilesetID: "a", Index: 1, Orientation: orient.Orientation{Rot: 5}})
	b := Some(TileRef{TilesetID: "a", Index: 1, Orientation: orient.Orientation{Rot: 1}})
	if a != b {
		t.Fatalf("rotation should normalize: %v vs %v", a, b)
	}
	if a == Empty() {
		t.Fatalf("filled cell equals empty")
	}
	if a.WithOrientation(orient.Orientation{FlipX: true}) == a {
		t.Fatalf("reoriented cell should differ")
	}
	if Empty().WithOrientation(orient.RotateCW) != Empty() {
		t.Fatalf("empty cell should stay empty")
	}
}

func TestCellJSON(t *testing.T) {
	cells := []Cell{Empty(), Some(TileRef{TilesetID: "grass", Index: 7, Orientation: orient.Orientation{Rot: 2, FlipY: true}})}
	data, err := json.Marshal(cells)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[null,{"tileset_id":"grass","index":7,"rot":2,"flip_x":false,"flip_y":true}]`
	if string(data) != want {
		t.Fatalf("got %s\nwant %s", data, want)
	}
	var back []Cell
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0] != cells[0] || back[1] != cells[1] {
		t.Fatalf("round trip mismatch: %v", back)
	}
}

func TestTopmostAt(t *testing.T) {
	m := NewWithLayers(2, 2, 3)
	m.Set(0, 1, 1, tile(1))
	m.Set(2, 1, 1, tile(3))

	if layer, ok := m.TopmostAt(1, 1); !ok || layer != 2 {
		t.Fatalf("expected layer 2, got %d %v", layer, ok)
	}
	m.Meta[2].Visible = false
	if layer, ok := m.TopmostAt(1, 1); !ok || layer != 0 {
		t.Fatalf("hidden layer should be skipped, got %d %v", layer, ok)
	}
	if _, ok := m.TopmostAt(0, 0); ok {
		t.Fatalf("empty column should report nothing")
	}
	if _, ok := m.TopmostAt(5, 0); ok {
		t.Fatalf("out of bounds should report nothing")
	}
}

func TestResizedCopy(t *testing.T) {
	old := NewWithLayers(3, 3, 2)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			old.Set(0, x, y, tile(uint32(y*3+x)))
			old.Set(1, x, y, tile(uint32(100+y*3+x)))
		}
	}
	old.Meta[1].Name = "Walls"

	cases := []struct {
		name         string
		w, h, layers int
	}{
		{name: "shrink", w: 2, h: 2, layers: 1},
		{name: "grow", w: 5, h: 4, layers: 3},
		{name: "same", w: 3, h: 3, layers: 2},
		{name: "zero", w: 0, h: 0, layers: 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := ResizedCopy(old, c.w, c.h, c.layers)
			if err := out.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			for layer := 0; layer < c.layers; layer++ {
				for y := 0; y < c.h; y++ {
					for x := 0; x < c.w; x++ {
						want := Empty()
						if layer < old.Layers && x < old.Width && y < old.Height {
							want = old.At(layer, x, y)
						}
						if got := out.At(layer, x, y); got != want {
							t.Fatalf("(%d,%d) layer %d = %v, want %v", x, y, layer, got, want)
						}
					}
				}
			}
			if c.layers > 1 && out.Meta[1].Name != "Walls" {
				t.Fatalf("layer meta not carried over: %+v", out.Meta[1])
			}
		})
	}
}

func TestResizedCopyRoundTrip(t *testing.T) {
	old := New(4, 4)
	old.Set(1, 3, 3, tile(9))
	old.Set(0, 0, 0, tile(1))

	grown := ResizedCopy(old, 6, 5, 2)
	back := ResizedCopy(grown, 4, 4, 2)
	for i := range old.Tiles {
		if old.Tiles[i] != back.Tiles[i] {
			t.Fatalf("cell %d changed across grow/shrink", i)
		}
	}
}

func TestResizedCopyShortBuffer(t *testing.T) {
	old := New(3, 3)
	old.Tiles = old.Tiles[:4]
	old.Tiles[3] = tile(5)

	out := ResizedCopy(old, 3, 3, 2)
	if got := out.At(0, 0, 1); got != tile(5) {
		t.Fatalf("expected tile at (0,1), got %v", got)
	}
	if got := out.At(0, 1, 1); !got.IsEmpty() {
		t.Fatalf("missing source cells should stay empty, got %v", got)
	}
}

func TestResizedCopyNil(t *testing.T) {
	out := ResizedCopy(nil, 2, 2, 1)
	if out.Width != 2 || out.Height != 2 || out.Layers != 1 || len(out.Tiles) != 4 {
		t.Fatalf("unexpected map %+v", out)
	}
}

func TestPtrRoundTrip(t *testing.T) {
	if Empty().Ptr() != nil {
		t.Fatalf("empty cell should give nil")
	}
	c := tile(4)
	if FromPtr(c.Ptr()) != c {
		t.Fatalf("pointer round trip changed cell")
	}
	if FromPtr(nil) != Empty() {
		t.Fatalf("nil should give empty cell")
	}
}
