package history

import "github.com/milk9111/tiledit/tilemap"

// Builder applies writes to a map as they happen and remembers the first
// value seen at each index. Each index is written at most once; later writes
// to an index already touched are ignored.
type Builder struct {
	m       *tilemap.Map
	touched map[int]struct{}
	changes []Change
}

func NewBuilder(m *tilemap.Map) *Builder {
	return &Builder{m: m, touched: make(map[int]struct{})}
}

// Set writes c at idx unless idx was already touched. Writes that would not
// change the cell still mark it touched but are not recorded.
func (b *Builder) Set(idx int, c tilemap.Cell) bool {
	if _, ok := b.touched[idx]; ok {
		return false
	}
	b.touched[idx] = struct{}{}
	before := b.m.Get(idx)
	if before == c {
		return false
	}
	b.m.Put(idx, c)
	b.changes = append(b.changes, Change{Index: idx, Before: before, After: c})
	return true
}

// Touched reports whether idx has been claimed by an earlier Set.
func (b *Builder) Touched(idx int) bool {
	_, ok := b.touched[idx]
	return ok
}

func (b *Builder) Len() int {
	return len(b.changes)
}

// Command returns the recorded changes.
func (b *Builder) Command() Command {
	return Record(b.changes...)
}

// Stroke buffers the writes of a gesture without touching the map. Repeated
// writes to one index keep the latest value; Commit applies the final values
// that differ from the map.
type Stroke struct {
	pending map[int]tilemap.Cell
}

func NewStroke() *Stroke {
	return &Stroke{pending: make(map[int]tilemap.Cell)}
}

func (s *Stroke) Set(idx int, c tilemap.Cell) {
	s.pending[idx] = c
}

// Pending returns the buffered value at idx, for previews.
func (s *Stroke) Pending(idx int) (tilemap.Cell, bool) {
	c, ok := s.pending[idx]
	return c, ok
}

func (s *Stroke) Len() int {
	return len(s.pending)
}

// Each visits every buffered write.
func (s *Stroke) Each(fn func(idx int, c tilemap.Cell)) {
	for idx, c := range s.pending {
		fn(idx, c)
	}
}

// Commit applies the buffered writes to m and returns them as one command
// sorted by index. The stroke is empty afterwards.
func (s *Stroke) Commit(m *tilemap.Map) Command {
	changes := make([]Change, 0, len(s.pending))
	for idx, after := range s.pending {
		before := m.Get(idx)
		if before == after {
			continue
		}
		changes = append(changes, Change{Index: idx, Before: before, After: after})
	}
	sortChanges(changes)
	cmd := Record(changes...)
	cmd.applyAfter(m)
	s.Cancel()
	return cmd
}

// Cancel drops every buffered write.
func (s *Stroke) Cancel() {
	clear(s.pending)
}
