package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/sysclip"
	"go.uber.org/zap"
)

var arrowKeys = map[ebiten.Key]edit.Direction{
	ebiten.KeyArrowLeft:  edit.Left,
	ebiten.KeyArrowRight: edit.Right,
	ebiten.KeyArrowUp:    edit.Up,
	ebiten.KeyArrowDown:  edit.Down,
}

var toolKeys = map[ebiten.Key]Tool{
	ebiten.KeyB: ToolBrush,
	ebiten.KeyE: ToolErase,
	ebiten.KeyR: ToolRect,
	ebiten.KeyF: ToolFill,
	ebiten.KeyL: ToolLine,
	ebiten.KeyM: ToolSelect,
	ebiten.KeyI: ToolPick,
}

func (g *EditorGame) handleKeys() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	just := inpututil.IsKeyJustPressed

	if just(ebiten.KeyF12) {
		return ebiten.Termination
	}

	if ctrl {
		g.handleCtrlKeys(shift)
		return nil
	}

	switch {
	case just(ebiten.KeyEscape):
		if g.tool == ToolPaste {
			g.setTool(g.returnTool)
			return nil
		}
		g.cancelCanvasGesture()
		g.ed.Deselect()
	case just(ebiten.KeyDelete), just(ebiten.KeyBackspace):
		g.report("delete", g.ed.Delete())
	case just(ebiten.KeyQ):
		g.setActiveLayer(g.ed.ActiveLayer() - 1)
	case just(ebiten.KeyE):
		g.setActiveLayer(g.ed.ActiveLayer() + 1)
	case just(ebiten.KeyL):
		g.toggleLock(g.ed.ActiveLayer())
	case just(ebiten.KeyK):
		g.toggleVisible(g.ed.ActiveLayer())
	case just(ebiten.KeyG):
		g.showGrid = !g.showGrid
	case just(ebiten.KeyW):
		g.toggleShiftMode()
	case just(ebiten.KeyF2):
		g.promptRename(g.ed.ActiveLayer())
	case just(ebiten.KeyF5):
		g.promptScript()
	case just(ebiten.Key1):
		g.ed.SetBrushSize(1)
	case just(ebiten.Key2):
		g.ed.SetBrushSize(2)
	case just(ebiten.Key3):
		g.ed.SetBrushSize(3)
	case just(ebiten.KeyR):
		if shift {
			g.transform(edit.RotateCCW)
		} else {
			g.transform(edit.RotateCW)
		}
	case just(ebiten.KeyF):
		if shift {
			g.transform(edit.FlipY)
		} else {
			g.transform(edit.FlipX)
		}
	case just(ebiten.KeyO):
		g.transform(edit.ResetOrientation)
	}

	for key, dir := range arrowKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		switch {
		case shift:
			g.report("shift map "+dir.String(), g.ed.ShiftMap(dir))
		default:
			g.nudge(dir, alt)
		}
	}
	return nil
}

func (g *EditorGame) handleCtrlKeys(shift bool) {
	just := inpututil.IsKeyJustPressed

	for key, dir := range arrowKeys {
		if just(key) && shift {
			g.report("shift layer "+dir.String(), g.ed.ShiftLayer(dir))
		}
	}

	switch {
	case just(ebiten.KeyZ) && shift, just(ebiten.KeyY):
		g.report("redo", g.ed.Redo())
	case just(ebiten.KeyZ):
		g.report("undo", g.ed.Undo())
	case just(ebiten.KeyS) && shift:
		g.promptSaveAs()
	case just(ebiten.KeyS):
		g.save()
	case just(ebiten.KeyO):
		g.reload()
	case just(ebiten.KeyA):
		g.ed.SelectAll()
	case just(ebiten.KeyD):
		g.ed.Deselect()
	case just(ebiten.KeyC) && shift:
		g.exportClipboard()
	case just(ebiten.KeyC):
		g.report("copy", g.ed.Copy())
	case just(ebiten.KeyX):
		g.report("cut", g.ed.Cut())
	case just(ebiten.KeyV) && shift:
		g.importClipboard()
	case just(ebiten.KeyV):
		g.startPaste()
	case just(ebiten.KeyN) && shift:
		g.promptResize()
	default:
		for key, tool := range toolKeys {
			if just(key) {
				g.setTool(tool)
			}
		}
	}
}

// transform rotates or mirrors whatever the keyboard is aimed at: the
// floating paste, the selection, or the single tile under the cursor.
func (g *EditorGame) transform(t edit.Transform) {
	if g.tool == ToolPaste {
		switch t {
		case edit.RotateCW:
			g.ed.RotatePaste(1)
		case edit.RotateCCW:
			g.ed.RotatePaste(-1)
		case edit.FlipX:
			g.ed.FlipPasteX()
		case edit.FlipY:
			g.ed.FlipPasteY()
		case edit.ResetOrientation:
			g.ed.ResetPaste()
		}
		g.setStatus("paste %s", g.ed.PasteOrientation())
		return
	}
	if _, ok := g.ed.Selection(); ok {
		g.report(t.String(), g.ed.TransformSelection(t))
		return
	}
	if g.cursorIn && g.ed.Map().InBounds(g.cursor.X, g.cursor.Y) {
		g.report(t.String(), g.ed.TransformTile(g.cursor.X, g.cursor.Y, t))
	}
}

// nudge moves the selection one cell, or pans the view when nothing is
// selected.
func (g *EditorGame) nudge(dir edit.Direction, duplicate bool) {
	dx, dy := dir.Delta()
	if _, ok := g.ed.Selection(); ok {
		g.report("move", g.ed.MoveSelection(dx, dy, duplicate))
		return
	}
	cs := g.cellSize()
	g.panX -= float64(dx) * cs
	g.panY -= float64(dy) * cs
}

func (g *EditorGame) toggleShiftMode() {
	mode := edit.ShiftWrap
	if g.ed.ShiftMode() == edit.ShiftWrap {
		mode = edit.ShiftBlank
	}
	g.ed.SetShiftMode(mode)
	setButtonLabel(g.shiftButton, shiftLabel(mode))
	g.setStatus("shift mode: %s", mode)
}

func (g *EditorGame) startPaste() {
	if g.ed.Clipboard().Empty() {
		g.setStatus("paste: %s", edit.ReasonEmptyClipboard)
		return
	}
	g.setTool(ToolPaste)
}

func (g *EditorGame) exportClipboard() {
	clip := g.ed.Clipboard()
	if clip.Empty() {
		g.setStatus("export: %s", edit.ReasonEmptyClipboard)
		return
	}
	if err := sysclip.Export(clip); err != nil {
		g.log.Warn("clipboard export failed", zap.Error(err))
		g.setStatus("export failed: %v", err)
		return
	}
	g.setStatus("copied %dx%d tiles to the system clipboard", clip.Width, clip.Height)
}

func (g *EditorGame) importClipboard() {
	clip, err := sysclip.Import()
	switch {
	case errors.Is(err, edit.ErrNotTiles):
		g.setStatus("system clipboard holds no tiles")
		return
	case err != nil:
		g.log.Warn("clipboard import failed", zap.Error(err))
		g.setStatus("import failed: %v", err)
		return
	}
	g.ed.SetClipboard(clip)
	g.startPaste()
}
