package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tiledit/common"
	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/render"
	"github.com/milk9111/tiledit/tilemap"
	"golang.org/x/image/colornames"
)

var (
	canvasBackground = color.RGBA{40, 40, 46, 255}
	mapBackground    = color.RGBA{24, 24, 28, 255}
	gridColor        = color.RGBA{255, 255, 255, 28}
	hoverColor       = color.RGBA{255, 255, 255, 60}
	lockedTint       = color.RGBA{200, 60, 60, 50}
)

func (g *EditorGame) canvasRect() image.Rectangle {
	return image.Rect(leftPanelWidth, 0, g.screenW-rightPanelWidth, g.screenH-statusHeight)
}

// inCanvas reports whether a screen point is over the editable canvas. The
// toolbar strip along the top belongs to the UI.
func (g *EditorGame) inCanvas(mx, my int) bool {
	r := g.canvasRect()
	return mx >= r.Min.X && mx < r.Max.X && my >= toolbarHeight && my < r.Max.Y
}

func (g *EditorGame) cellSize() float64 {
	return float64(g.cfg.Editor.TileSize) * g.zoom
}

// cellAt converts a screen position to map cell coordinates. The result may
// be outside the map.
func (g *EditorGame) cellAt(mx, my int) image.Point {
	cs := g.cellSize()
	lx := float64(mx-leftPanelWidth) - g.panX
	ly := float64(my) - g.panY
	return image.Pt(int(math.Floor(lx/cs)), int(math.Floor(ly/cs)))
}

// cellOrigin is the canvas-local pixel position of a cell's top-left corner.
func (g *EditorGame) cellOrigin(x, y int) (float64, float64) {
	cs := g.cellSize()
	return g.panX + float64(x)*cs, g.panY + float64(y)*cs
}

func (g *EditorGame) cancelCanvasGesture() {
	g.ed.CancelStroke()
	g.ed.CancelRect()
	g.ed.CancelMove()
	g.lineStart = nil
	g.selAnchor = nil
}

func (g *EditorGame) pick(p image.Point) {
	c, ok := g.ed.Pick(p.X, p.Y)
	if !ok {
		g.setStatus("nothing to pick at %d,%d", p.X, p.Y)
		return
	}
	ref, _ := c.Ref()
	g.tileset = ref.TilesetID
	g.selectedTile = ref.Index
	g.setStatus("picked %s", ref)
}

// paintCell is what brush-like tools put down: the brush, or nothing for
// the eraser and while Shift is held.
func (g *EditorGame) paintCell() tilemap.Cell {
	if g.tool == ToolErase || ebiten.IsKeyPressed(ebiten.KeyShift) {
		return tilemap.Empty()
	}
	return g.ed.Brush()
}

func (g *EditorGame) updateCanvas() {
	mx, my := ebiten.CursorPosition()
	g.cursorIn = g.inCanvas(mx, my) && !g.isPanning
	p := g.cellAt(mx, my)
	g.cursor = p

	pressed := g.cursorIn && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.cursorIn && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && g.tool != ToolPaste {
		g.pick(p)
		return
	}

	switch g.tool {
	case ToolBrush, ToolErase:
		if pressed {
			if res := g.ed.BeginStroke(g.paintCell()); res.Reason != edit.ReasonNone {
				g.report(g.tool.String(), res)
				return
			}
		}
		if held && g.ed.Stroking() {
			g.ed.StrokeTo(p.X, p.Y)
		}
		if released && g.ed.Stroking() {
			g.report(g.tool.String(), g.ed.EndStroke())
		}

	case ToolRect:
		if pressed {
			if res := g.ed.BeginRect(p, g.paintCell()); res.Reason != edit.ReasonNone {
				g.report("rect", res)
				return
			}
		}
		if held {
			g.ed.DragRect(p)
		}
		if released {
			if _, ok := g.ed.RectPreview(); ok {
				g.report("rect", g.ed.EndRect())
			}
		}

	case ToolFill:
		if pressed {
			g.report("fill", g.ed.FloodFill(p.X, p.Y, g.paintCell()))
		}

	case ToolLine:
		if pressed {
			start := p
			g.lineStart = &start
		}
		if released && g.lineStart != nil {
			g.report("line", g.ed.Line(*g.lineStart, p, g.paintCell()))
			g.lineStart = nil
		}

	case ToolSelect:
		if pressed {
			if sel, ok := g.ed.Selection(); ok && sel.Contains(p) {
				duplicate := ebiten.IsKeyPressed(ebiten.KeyAlt)
				if res := g.ed.BeginMove(p, duplicate); res.Reason != edit.ReasonNone {
					g.report("move", res)
				}
			} else {
				anchor := p
				g.selAnchor = &anchor
				g.ed.Select(p, p)
			}
		}
		if held {
			if g.ed.Moving() {
				g.ed.DragMove(p)
			} else if g.selAnchor != nil {
				g.ed.Select(*g.selAnchor, p)
			}
		}
		if released {
			if g.ed.Moving() {
				g.report("move", g.ed.EndMove())
			}
			g.selAnchor = nil
		}

	case ToolPick:
		if pressed {
			g.pick(p)
			g.setTool(ToolBrush)
		}

	case ToolPaste:
		if pressed {
			res := g.ed.Paste(p)
			g.report("paste", res)
			// Shift keeps the clipboard attached for repeated stamps.
			if res.Reason != edit.ReasonEmptyClipboard && !ebiten.IsKeyPressed(ebiten.KeyShift) {
				g.setTool(g.returnTool)
			}
		}
		if g.cursorIn && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.setTool(g.returnTool)
		}
	}
}

func (g *EditorGame) drawTile(dst *ebiten.Image, ref tilemap.TileRef, x, y int, alpha float32) {
	img := g.tiles.tile(g.catalog, ref)
	src := float64(img.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	render.OrientGeoM(&op.GeoM, ref.Orientation, src)
	scale := g.cellSize() / src
	op.GeoM.Scale(scale, scale)
	px, py := g.cellOrigin(x, y)
	op.GeoM.Translate(px, py)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	dst.DrawImage(img, op)
}

// visibleCells is the inclusive cell range shown on a canvas of w×h pixels.
func (g *EditorGame) visibleCells(w, h int) (edit.Rect, bool) {
	m := g.ed.Map()
	if m.Width == 0 || m.Height == 0 {
		return edit.Rect{}, false
	}
	cs := g.cellSize()
	view := edit.Rect{
		Min: image.Pt(int(math.Floor(-g.panX/cs)), int(math.Floor(-g.panY/cs))),
		Max: image.Pt(int(math.Floor((float64(w)-g.panX)/cs)), int(math.Floor((float64(h)-g.panY)/cs))),
	}
	return view.Intersect(edit.Rect{Max: image.Pt(m.Width-1, m.Height-1)})
}

// fillCells shades a rectangle of cells.
func (g *EditorGame) fillCells(dst *ebiten.Image, r edit.Rect, clr color.Color) {
	x, y := g.cellOrigin(r.Min.X, r.Min.Y)
	cs := g.cellSize()
	ebitenutil.DrawRect(dst, x, y, float64(r.Dx())*cs, float64(r.Dy())*cs, clr)
}

// outlineCells draws a border around a rectangle of cells.
func (g *EditorGame) outlineCells(dst *ebiten.Image, r edit.Rect, clr color.Color) {
	x, y := g.cellOrigin(r.Min.X, r.Min.Y)
	cs := g.cellSize()
	vector.StrokeRect(dst, float32(x)+1, float32(y)+1, float32(float64(r.Dx())*cs)-2, float32(float64(r.Dy())*cs)-2, 2, clr, false)
}

// drawCanvas renders the map and tool previews into the canvas image, whose
// origin is the canvas's top-left corner on screen.
func (g *EditorGame) drawCanvas(dst *ebiten.Image) {
	dst.Fill(canvasBackground)
	m := g.ed.Map()
	if m.Width == 0 || m.Height == 0 {
		return
	}
	g.fillCells(dst, edit.Rect{Max: image.Pt(m.Width-1, m.Height-1)}, mapBackground)

	b := dst.Bounds()
	view, ok := g.visibleCells(b.Dx(), b.Dy())
	if !ok {
		return
	}

	active := g.ed.ActiveLayer()
	for layer := 0; layer < m.Layers; layer++ {
		if !m.IsVisible(layer) {
			continue
		}
		view.Each(func(x, y int) {
			c := m.At(layer, x, y)
			if layer == active {
				if pc, ok := g.ed.Pending(x, y); ok {
					c = pc
				}
			}
			if ref, ok := c.Ref(); ok {
				g.drawTile(dst, ref, x, y, 1)
			}
		})
	}
	if m.IsLocked(active) {
		g.fillCells(dst, edit.Rect{Max: image.Pt(m.Width-1, m.Height-1)}, lockedTint)
	}

	if g.showGrid && g.cellSize() >= 6 {
		g.drawGrid(dst, view)
	}
	g.drawPreviews(dst)
}

func (g *EditorGame) drawGrid(dst *ebiten.Image, view edit.Rect) {
	cs := g.cellSize()
	x0, y0 := g.cellOrigin(view.Min.X, view.Min.Y)
	w, h := float64(view.Dx())*cs, float64(view.Dy())*cs
	for x := view.Min.X; x <= view.Max.X+1; x++ {
		px, _ := g.cellOrigin(x, 0)
		ebitenutil.DrawRect(dst, px, y0, 1, h, gridColor)
	}
	for y := view.Min.Y; y <= view.Max.Y+1; y++ {
		_, py := g.cellOrigin(0, y)
		ebitenutil.DrawRect(dst, x0, py, w, 1, gridColor)
	}
}

func (g *EditorGame) drawPreviews(dst *ebiten.Image) {
	m := g.ed.Map()
	p := g.cursor

	switch g.tool {
	case ToolLine:
		if g.lineStart != nil {
			brush, hasTile := g.paintCell().Ref()
			for _, pt := range common.Line(g.lineStart.X, g.lineStart.Y, p.X, p.Y) {
				if !m.InBounds(pt[0], pt[1]) {
					continue
				}
				if hasTile {
					g.drawTile(dst, brush, pt[0], pt[1], 0.6)
				} else {
					g.fillCells(dst, edit.Rect{Min: image.Pt(pt[0], pt[1]), Max: image.Pt(pt[0], pt[1])}, hoverColor)
				}
			}
		}
	case ToolRect:
		if r, ok := g.ed.RectPreview(); ok {
			g.outlineCells(dst, r, colornames.Lightskyblue)
		}
	case ToolPaste:
		for _, pc := range g.ed.PastePreview(p) {
			if ref, ok := pc.Cell.Ref(); ok {
				g.drawTile(dst, ref, pc.X, pc.Y, 0.5)
			}
		}
		pw, ph := g.ed.PasteDims()
		if pw > 0 && ph > 0 {
			g.outlineCells(dst, edit.Rect{Min: p, Max: p.Add(image.Pt(pw-1, ph-1))}, colornames.Orange)
		}
	}

	if sel, ok := g.ed.Selection(); ok {
		g.outlineCells(dst, sel, colornames.Yellow)
	}
	if r, ok := g.ed.MovePreview(); ok {
		g.outlineCells(dst, r, colornames.Orange)
	}

	if g.cursorIn && m.InBounds(p.X, p.Y) && g.tool != ToolPaste {
		n := 1
		if g.tool == ToolBrush || g.tool == ToolErase {
			n = g.ed.BrushSize()
		}
		lo := -(n - 1) / 2
		hover := edit.Rect{Min: p.Add(image.Pt(lo, lo)), Max: p.Add(image.Pt(lo+n-1, lo+n-1))}
		g.fillCells(dst, hover, hoverColor)
	}
}
