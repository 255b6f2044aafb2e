package common

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi int
		expected  int
	}{
		{name: "inside", v: 2, lo: 0, hi: 5, expected: 2},
		{name: "below", v: -3, lo: 0, hi: 5, expected: 0},
		{name: "above", v: 9, lo: 0, hi: 5, expected: 5},
		{name: "inverted_bounds", v: 1, lo: 3, hi: 2, expected: 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.expected {
				t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.expected)
			}
		})
	}
}

func TestMod(t *testing.T) {
	if Mod(-1, 4) != 3 || Mod(4, 4) != 0 || Mod(5, 4) != 1 {
		t.Fatalf("unexpected euclidean remainder")
	}
}

func TestLine(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		expected       [][2]int
	}{
		{name: "single", x0: 1, y0: 1, x1: 1, y1: 1, expected: [][2]int{{1, 1}}},
		{name: "horizontal", x0: 0, y0: 0, x1: 3, y1: 0, expected: [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{name: "diagonal_back", x0: 2, y0: 2, x1: 0, y1: 0, expected: [][2]int{{2, 2}, {1, 1}, {0, 0}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Line(c.x0, c.y0, c.x1, c.y1)
			if len(got) != len(c.expected) {
				t.Fatalf("got %v, want %v", got, c.expected)
			}
			for i := range got {
				if got[i] != c.expected[i] {
					t.Fatalf("got %v, want %v", got, c.expected)
				}
			}
		})
	}
}
