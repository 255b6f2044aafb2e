// Package edit is the editing session: it owns the map, the undo history,
// the selection, the clipboard and the paste orientation, and turns user
// actions into undoable commands.
//
// An Editor is not safe for concurrent use.
package edit

import (
	"image"

	"github.com/milk9111/tiledit/common"
	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/orient"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

// Editor is one editing session over a map.
type Editor struct {
	m       *tilemap.Map
	history *history.Stack
	log     *zap.Logger

	layer     int
	brush     tilemap.Cell
	brushSize int
	shiftMode ShiftMode

	sel    Rect
	hasSel bool
	clip   Clipboard
	paste  orient.Orientation

	stroke *strokeGesture
	rect   *rectGesture
	move   *moveGesture

	onChange  []func([]history.Event)
	onReplace []func(*tilemap.Map)
}

type Option func(*Editor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHistoryLimit caps the undo stack; n <= 0 keeps the default.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.history = history.NewStack(n)
	}
}

func WithShiftMode(m ShiftMode) Option {
	return func(e *Editor) {
		e.shiftMode = m
	}
}

func WithBrushSize(n int) Option {
	return func(e *Editor) {
		e.SetBrushSize(n)
	}
}

// New starts a session over m. A nil map is replaced by an empty 0x0 map.
func New(m *tilemap.Map, opts ...Option) *Editor {
	if m == nil {
		m = tilemap.NewWithLayers(0, 0, tilemap.DefaultLayerCount)
	}
	e := &Editor{
		m:         m,
		history:   history.NewStack(0),
		log:       zap.NewNop(),
		brushSize: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.m.EnsureMeta()
	return e
}

func (e *Editor) Map() *tilemap.Map {
	return e.m
}

// OnChange registers fn to receive the cells touched by every commit, undo
// and redo.
func (e *Editor) OnChange(fn func([]history.Event)) {
	e.onChange = append(e.onChange, fn)
}

// OnReplace registers fn to be called when the whole map is swapped out.
func (e *Editor) OnReplace(fn func(*tilemap.Map)) {
	e.onReplace = append(e.onReplace, fn)
}

// Replace swaps in a new map. History is cleared because old diffs no
// longer line up with the new buffer.
func (e *Editor) Replace(m *tilemap.Map) {
	if m == nil {
		m = tilemap.NewWithLayers(0, 0, tilemap.DefaultLayerCount)
	}
	m.EnsureMeta()
	e.cancelGestures()
	e.m = m
	e.history.Clear()
	e.layer = common.Clamp(e.layer, 0, max(m.Layers-1, 0))
	if e.hasSel {
		if r, ok := e.sel.Intersect(e.bounds()); ok {
			e.sel = r
		} else {
			e.hasSel = false
		}
	}
	e.log.Debug("map replaced",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("layers", m.Layers))
	for _, fn := range e.onReplace {
		fn(m)
	}
}

func (e *Editor) Undo() Result {
	e.cancelGestures()
	cmd, ok := e.history.Undo(e.m)
	if !ok {
		return rejected(ReasonNoop)
	}
	e.emit(cmd.Inverted())
	return Result{Changed: cmd.Len()}
}

func (e *Editor) Redo() Result {
	e.cancelGestures()
	cmd, ok := e.history.Redo(e.m)
	if !ok {
		return rejected(ReasonNoop)
	}
	e.emit(cmd)
	return Result{Changed: cmd.Len()}
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// HistoryDepth returns the number of undo and redo entries.
func (e *Editor) HistoryDepth() (undo, redo int) {
	return e.history.Depth()
}

// ClearHistory drops all undo and redo entries.
func (e *Editor) ClearHistory() {
	e.history.Clear()
}

// commit pushes an already applied command and notifies listeners.
func (e *Editor) commit(cmd history.Command, op string) Result {
	if !e.history.Push(cmd) {
		return rejected(ReasonNoop)
	}
	e.log.Debug(op, zap.Int("layer", e.layer), zap.Int("changes", cmd.Len()))
	e.emit(cmd)
	return Result{Changed: cmd.Len()}
}

func (e *Editor) emit(cmd history.Command) {
	if len(e.onChange) == 0 || cmd.Empty() {
		return
	}
	events := cmd.Events(e.m)
	for _, fn := range e.onChange {
		fn(events)
	}
}

// editable reports why the active layer cannot be edited, or ReasonNone.
func (e *Editor) editable() Reason {
	if e.m.LayerLen() == 0 || e.m.Layers == 0 {
		return ReasonEmptyMap
	}
	if e.m.IsLocked(e.layer) {
		return ReasonLocked
	}
	return ReasonNone
}

func (e *Editor) bounds() Rect {
	return Rect{Max: image.Pt(e.m.Width-1, e.m.Height-1)}
}

func (e *Editor) inMap(r Rect) bool {
	return e.m.InBounds(r.Min.X, r.Min.Y) && e.m.InBounds(r.Max.X, r.Max.Y)
}

// busy reports whether a gesture is in progress.
func (e *Editor) busy() bool {
	return e.stroke != nil || e.rect != nil || e.move != nil
}

func (e *Editor) cancelGestures() {
	e.CancelStroke()
	e.CancelRect()
	e.CancelMove()
}

// Brush is the cell painted by the pencil and fill tools.
func (e *Editor) Brush() tilemap.Cell {
	return e.brush
}

func (e *Editor) SetBrush(c tilemap.Cell) {
	e.brush = c
}

func (e *Editor) BrushSize() int {
	return e.brushSize
}

// SetBrushSize sets the square brush edge, clamped to 1..3.
func (e *Editor) SetBrushSize(n int) {
	e.brushSize = common.Clamp(n, 1, 3)
}

func (e *Editor) ShiftMode() ShiftMode {
	return e.shiftMode
}

func (e *Editor) SetShiftMode(m ShiftMode) {
	e.shiftMode = m
}
