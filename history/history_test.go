package history

import (
	"math/rand"
	"testing"

	"github.com/milk9111/tiledit/tilemap"
)

func tile(index uint32) tilemap.Cell {
	return tilemap.Some(tilemap.TileRef{TilesetID: "ts", Index: index})
}

// apply writes changes through a builder and returns the command, the way
// edit operations do.
func apply(m *tilemap.Map, writes map[int]tilemap.Cell) Command {
	b := NewBuilder(m)
	for idx := 0; idx < len(m.Tiles); idx++ {
		if c, ok := writes[idx]; ok {
			b.Set(idx, c)
		}
	}
	return b.Command()
}

func TestRecordPanicsOnNoop(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Record(Change{Index: 0, Before: tile(1), After: tile(1)})
}

func TestPushIgnoresEmpty(t *testing.T) {
	s := NewStack(0)
	if s.Push(Command{}) {
		t.Fatalf("empty command should not be pushed")
	}
	if s.CanUndo() {
		t.Fatalf("stack should be empty")
	}
	if s.Limit() != DefaultLimit {
		t.Fatalf("expected default limit, got %d", s.Limit())
	}
}

func TestUndoRedo(t *testing.T) {
	m := tilemap.New(3, 3)
	s := NewStack(0)

	cmd := apply(m, map[int]tilemap.Cell{0: tile(1), 4: tile(2)})
	s.Push(cmd)
	after := m.Clone()

	if _, ok := s.Undo(m); !ok {
		t.Fatalf("undo reported nothing")
	}
	for i, c := range m.Tiles {
		if !c.IsEmpty() {
			t.Fatalf("cell %d not restored", i)
		}
	}
	if !s.CanRedo() {
		t.Fatalf("expected redo entry")
	}
	if _, ok := s.Redo(m); !ok {
		t.Fatalf("redo reported nothing")
	}
	for i := range m.Tiles {
		if m.Tiles[i] != after.Tiles[i] {
			t.Fatalf("cell %d differs after redo", i)
		}
	}
	if _, ok := s.Redo(m); ok {
		t.Fatalf("redo stack should be empty")
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := tilemap.New(2, 2)
	s := NewStack(0)
	s.Push(apply(m, map[int]tilemap.Cell{0: tile(1)}))
	s.Undo(m)
	s.Push(apply(m, map[int]tilemap.Cell{1: tile(2)}))
	if s.CanRedo() {
		t.Fatalf("push should clear redo")
	}
}

func TestLimitDropsOldest(t *testing.T) {
	m := tilemap.NewWithLayers(10, 1, 1)
	s := NewStack(3)
	for i := 0; i < 5; i++ {
		s.Push(apply(m, map[int]tilemap.Cell{i: tile(uint32(i + 1))}))
	}
	if undo, _ := s.Depth(); undo != 3 {
		t.Fatalf("expected 3 entries, got %d", undo)
	}
	for s.CanUndo() {
		s.Undo(m)
	}
	// the two oldest writes are no longer undoable
	if m.Get(0) != tile(1) || m.Get(1) != tile(2) {
		t.Fatalf("oldest commands should have been evicted")
	}
	for i := 2; i < 5; i++ {
		if !m.Get(i).IsEmpty() {
			t.Fatalf("cell %d should be undone", i)
		}
	}
}

func TestClear(t *testing.T) {
	m := tilemap.New(2, 2)
	s := NewStack(0)
	s.Push(apply(m, map[int]tilemap.Cell{0: tile(1)}))
	s.Push(apply(m, map[int]tilemap.Cell{1: tile(1)}))
	s.Undo(m)
	s.Clear()
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("clear should empty both stacks")
	}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := tilemap.NewWithLayers(6, 5, 2)
	s := NewStack(0)
	snapshots := []*tilemap.Map{m.Clone()}

	for step := 0; step < 40; step++ {
		writes := map[int]tilemap.Cell{}
		for n := rng.Intn(6); n >= 0; n-- {
			idx := rng.Intn(len(m.Tiles))
			if rng.Intn(4) == 0 {
				writes[idx] = tilemap.Empty()
			} else {
				writes[idx] = tile(uint32(rng.Intn(5)))
			}
		}
		if s.Push(apply(m, writes)) {
			snapshots = append(snapshots, m.Clone())
		}
	}

	for i := len(snapshots) - 2; i >= 0; i-- {
		s.Undo(m)
		assertSame(t, m, snapshots[i])
	}
	for i := 1; i < len(snapshots); i++ {
		s.Redo(m)
		assertSame(t, m, snapshots[i])
	}
}

func assertSame(t *testing.T, got, want *tilemap.Map) {
	t.Helper()
	for i := range want.Tiles {
		if got.Tiles[i] != want.Tiles[i] {
			t.Fatalf("cell %d = %v, want %v", i, got.Tiles[i], want.Tiles[i])
		}
	}
}

func TestBuilderFirstWriteWins(t *testing.T) {
	m := tilemap.NewWithLayers(3, 1, 1)
	m.Put(1, tile(9))
	b := NewBuilder(m)

	if !b.Set(0, tile(1)) {
		t.Fatalf("first write should record")
	}
	if b.Set(0, tile(2)) {
		t.Fatalf("second write to same index should be ignored")
	}
	if b.Set(1, tile(9)) {
		t.Fatalf("no-op write should not record")
	}
	if !b.Touched(1) {
		t.Fatalf("no-op write should still claim the index")
	}
	cmd := b.Command()
	if cmd.Len() != 1 || m.Get(0) != tile(1) {
		t.Fatalf("unexpected command %+v", cmd)
	}
}

func TestStrokeBuffersUntilCommit(t *testing.T) {
	m := tilemap.NewWithLayers(4, 1, 1)
	m.Put(2, tile(5))
	s := NewStroke()

	s.Set(0, tile(1))
	s.Set(0, tile(3))
	s.Set(2, tile(5))
	s.Set(1, tile(4))
	s.Set(1, tilemap.Empty())

	if !m.Get(0).IsEmpty() {
		t.Fatalf("stroke must not touch the map before commit")
	}
	if c, ok := s.Pending(0); !ok || c != tile(3) {
		t.Fatalf("pending value should be the latest write, got %v", c)
	}

	cmd := s.Commit(m)
	if cmd.Len() != 1 {
		t.Fatalf("expected 1 change, got %d: %+v", cmd.Len(), cmd)
	}
	ch := cmd.Changes[0]
	if ch.Index != 0 || !ch.Before.IsEmpty() || ch.After != tile(3) {
		t.Fatalf("unexpected change %+v", ch)
	}
	if m.Get(0) != tile(3) {
		t.Fatalf("commit should apply")
	}
	if s.Len() != 0 {
		t.Fatalf("commit should reset the stroke")
	}
}

func TestStrokeCommitSorted(t *testing.T) {
	m := tilemap.NewWithLayers(8, 1, 1)
	s := NewStroke()
	for _, idx := range []int{5, 1, 7, 3} {
		s.Set(idx, tile(1))
	}
	cmd := s.Commit(m)
	for i := 1; i < cmd.Len(); i++ {
		if cmd.Changes[i-1].Index >= cmd.Changes[i].Index {
			t.Fatalf("changes not sorted: %+v", cmd.Changes)
		}
	}
}

func TestEvents(t *testing.T) {
	m := tilemap.NewWithLayers(3, 2, 2)
	idx := m.Index(1, 2, 1)
	cmd := Record(Change{Index: idx, Before: tilemap.Empty(), After: tile(4)})
	ev := cmd.Events(m)
	if len(ev) != 1 || ev[0].Layer != 1 || ev[0].X != 2 || ev[0].Y != 1 || ev[0].After != tile(4) {
		t.Fatalf("unexpected events %+v", ev)
	}
	inv := cmd.Inverted().Events(m)
	if inv[0].Before != tile(4) || !inv[0].After.IsEmpty() {
		t.Fatalf("inverted events should swap values: %+v", inv)
	}
}
