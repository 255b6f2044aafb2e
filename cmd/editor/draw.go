package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tiledit/tilemap"
	"golang.org/x/image/colornames"
)

const statusTTL = 4 * time.Second

var statusBarColor = color.RGBA{20, 20, 24, 255}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	cr := g.canvasRect()
	if cr.Dx() > 0 && cr.Dy() > 0 {
		if g.canvasImg == nil || g.canvasImg.Bounds().Size() != cr.Size() {
			if g.canvasImg != nil {
				g.canvasImg.Deallocate()
			}
			g.canvasImg = ebiten.NewImage(cr.Dx(), cr.Dy())
		}
		g.drawCanvas(g.canvasImg)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(cr.Min.X), float64(cr.Min.Y))
		screen.DrawImage(g.canvasImg, op)
	}

	if g.ui != nil {
		g.ui.Draw(screen)
	}
	g.drawPalette(screen)
	g.drawStatus(screen)
	g.prompt.Draw(screen)
}

func (g *EditorGame) title() string {
	name := "untitled"
	if g.savePath != "" {
		name = filepath.Base(g.savePath)
	}
	if g.dirty {
		name += " *"
	}
	return "tiledit - " + name
}

// paletteLayout places the active tileset's tiles in the right panel.
type paletteLayout struct {
	x, y  float64
	tile  float64 // on-screen tile size
	cols  int
	count int
}

func (l paletteLayout) origin(i int) (float64, float64) {
	return l.x + float64(i%l.cols)*l.tile, l.y + float64(i/l.cols)*l.tile
}

func (l paletteLayout) indexAt(mx, my int) (int, bool) {
	fx, fy := float64(mx)-l.x, float64(my)-l.y
	if fx < 0 || fy < 0 {
		return 0, false
	}
	col, row := int(fx/l.tile), int(fy/l.tile)
	if col >= l.cols {
		return 0, false
	}
	i := row*l.cols + col
	return i, i < l.count
}

func (g *EditorGame) palette() (paletteLayout, bool) {
	if g.tileset == "" {
		return paletteLayout{}, false
	}
	top := paletteTop
	if g.tilesetPanel != nil {
		top = max(top, g.tilesetPanel.Bottom()+8)
	}
	size := g.tiles.size
	cols, count := 8, 16 // placeholder swatches when the image is missing
	if sheet := g.tiles.sheet(g.catalog, g.tileset); sheet != nil {
		cols = sheet.Bounds().Dx() / size
		count = g.tiles.tileCount(g.catalog, g.tileset)
	}
	if cols == 0 || count == 0 {
		return paletteLayout{}, false
	}
	avail := float64(rightPanelWidth - 16)
	scale := min(float64(paletteZoom), avail/float64(cols*size))
	return paletteLayout{
		x:     float64(g.screenW - rightPanelWidth + 8),
		y:     float64(top),
		tile:  float64(size) * scale,
		cols:  cols,
		count: count,
	}, true
}

func (g *EditorGame) updatePalette() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	l, ok := g.palette()
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	i, ok := l.indexAt(mx, my)
	if !ok {
		return
	}
	g.selectedTile = uint32(i)
	g.syncBrush()
	switch g.tool {
	case ToolBrush, ToolRect, ToolFill, ToolLine:
	default:
		g.setTool(ToolBrush)
	}
}

func (g *EditorGame) drawPalette(screen *ebiten.Image) {
	l, ok := g.palette()
	if !ok {
		return
	}
	for i := 0; i < l.count; i++ {
		img := g.tiles.tile(g.catalog, tilemap.TileRef{TilesetID: g.tileset, Index: uint32(i)})
		op := &ebiten.DrawImageOptions{}
		s := l.tile / float64(img.Bounds().Dx())
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(l.origin(i))
		screen.DrawImage(img, op)
	}
	if int(g.selectedTile) < l.count {
		x, y := l.origin(int(g.selectedTile))
		vector.StrokeRect(screen, float32(x), float32(y), float32(l.tile), float32(l.tile), 2, colornames.Yellow, false)
	}
}

func (g *EditorGame) statusLine() string {
	m := g.ed.Map()
	layer := g.ed.ActiveLayer()
	meta := m.Layer(layer)
	flags := ""
	if meta.Locked {
		flags += " locked"
	}
	if !meta.Visible {
		flags += " hidden"
	}
	undo, redo := g.ed.HistoryDepth()

	s := fmt.Sprintf("%s | %dx%d | layer %d/%d %s%s | brush %d | shift %s | undo %d redo %d | %s tiles | %d%%",
		g.tool, m.Width, m.Height, layer+1, m.Layers, meta.Name, flags,
		g.ed.BrushSize(), g.ed.ShiftMode(), undo, redo,
		humanize.Comma(int64(g.activeCount())), int(g.zoom*100))
	if g.cursorIn && m.InBounds(g.cursor.X, g.cursor.Y) {
		s += fmt.Sprintf(" | %d,%d", g.cursor.X, g.cursor.Y)
	}
	if sel, ok := g.ed.Selection(); ok {
		s += fmt.Sprintf(" | sel %dx%d", sel.Dx(), sel.Dy())
	}
	if g.status != "" && time.Since(g.statusAt) < statusTTL {
		s += " | " + g.status
	}
	return s
}

func (g *EditorGame) drawStatus(screen *ebiten.Image) {
	y := g.screenH - statusHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(g.screenW), statusHeight, statusBarColor)
	line := g.statusLine()
	if g.face == nil {
		ebitenutil.DebugPrintAt(screen, line, 8, y+4)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(y+4))
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, line, g.face, op)
}
