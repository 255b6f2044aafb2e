// Package history records tile edits as before/after diffs and replays them
// for undo and redo.
package history

import (
	"fmt"
	"sort"

	"github.com/milk9111/tiledit/tilemap"
)

// Change is one cell write.
type Change struct {
	Index  int
	Before tilemap.Cell
	After  tilemap.Cell
}

// Command is the ordered set of changes made by one user action.
type Command struct {
	Changes []Change
}

// Record builds a command. A change whose before equals its after is a bug
// in the caller and panics.
func Record(changes ...Change) Command {
	for _, c := range changes {
		if c.Before == c.After {
			panic(fmt.Sprintf("history: no-op change at index %d (%v)", c.Index, c.Before))
		}
	}
	return Command{Changes: changes}
}

func (c Command) Empty() bool {
	return len(c.Changes) == 0
}

func (c Command) Len() int {
	return len(c.Changes)
}

func (c Command) applyBefore(m *tilemap.Map) {
	for i := len(c.Changes) - 1; i >= 0; i-- {
		ch := c.Changes[i]
		m.Put(ch.Index, ch.Before)
	}
}

func (c Command) applyAfter(m *tilemap.Map) {
	for _, ch := range c.Changes {
		m.Put(ch.Index, ch.After)
	}
}

// Event is a change expressed in map coordinates, for observers that redraw
// or sync individual cells.
type Event struct {
	Layer  int
	X, Y   int
	Before tilemap.Cell
	After  tilemap.Cell
}

// Events converts the command into per-cell events against m's layout.
func (c Command) Events(m *tilemap.Map) []Event {
	out := make([]Event, 0, len(c.Changes))
	for _, ch := range c.Changes {
		layer, x, y := m.Coord(ch.Index)
		out = append(out, Event{Layer: layer, X: x, Y: y, Before: ch.Before, After: ch.After})
	}
	return out
}

// Inverted swaps before and after, so the events of an undo read naturally.
func (c Command) Inverted() Command {
	out := Command{Changes: make([]Change, len(c.Changes))}
	for i, ch := range c.Changes {
		out.Changes[len(c.Changes)-1-i] = Change{Index: ch.Index, Before: ch.After, After: ch.Before}
	}
	return out
}

func sortChanges(changes []Change) {
	sort.Slice(changes, func(i, j int) bool { return changes[i].Index < changes[j].Index })
}
