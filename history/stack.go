package history

import "github.com/milk9111/tiledit/tilemap"

// DefaultLimit is the number of commands kept when no limit is configured.
const DefaultLimit = 200

// Stack holds undo and redo commands. The oldest undo entries are dropped
// once the limit is reached.
type Stack struct {
	undo  []Command
	redo  []Command
	limit int
}

// NewStack returns a stack holding at most limit commands; limit <= 0 means
// DefaultLimit.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

func (s *Stack) Limit() int {
	return s.limit
}

// Push stores an already applied command and clears redo. Empty commands
// are ignored and reported as false.
func (s *Stack) Push(cmd Command) bool {
	if cmd.Empty() {
		return false
	}
	s.redo = s.redo[:0]
	s.undo = append(s.undo, cmd)
	if over := len(s.undo) - s.limit; over > 0 {
		s.undo = append(s.undo[:0], s.undo[over:]...)
	}
	return true
}

// Undo restores the before values of the most recent command and moves it
// to the redo stack.
func (s *Stack) Undo(m *tilemap.Map) (Command, bool) {
	if len(s.undo) == 0 {
		return Command{}, false
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	cmd.applyBefore(m)
	s.redo = append(s.redo, cmd)
	return cmd, true
}

// Redo reapplies the most recently undone command.
func (s *Stack) Redo(m *tilemap.Map) (Command, bool) {
	if len(s.redo) == 0 {
		return Command{}, false
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	cmd.applyAfter(m)
	s.undo = append(s.undo, cmd)
	return cmd, true
}

func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Depth returns the number of undo and redo entries.
func (s *Stack) Depth() (undo, redo int) {
	return len(s.undo), len(s.redo)
}
