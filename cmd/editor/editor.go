package main

import (
	"fmt"
	"image"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tiledit/config"
	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/history"
	"github.com/milk9111/tiledit/levels"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

// EditorGame is the Ebiten game hosting one edit.Editor.
type EditorGame struct {
	cfg     *config.Config
	ed      *edit.Editor
	log     *zap.Logger
	catalog *levels.Catalog
	tiles   *tileCache

	ui            *ebitenui.UI
	face          text.Face
	toolBar       *ToolBar
	layerPanel    *LayerPanel
	tilesetPanel  *TilesetPanelUI
	fileInput     *widget.TextInput
	shiftButton   *widget.Button
	renameOverlay *widget.Container
	prompt        *Prompt
	canvasImg     *ebiten.Image
	windowTitle   string

	tool       Tool
	lastTool   Tool
	returnTool Tool

	// brush palette
	tileset      string
	selectedTile uint32

	zoom      float64
	panX      float64
	panY      float64
	isPanning bool
	lastPanX  int
	lastPanY  int
	showGrid  bool

	cursor    image.Point
	cursorIn  bool
	lineStart *image.Point
	selAnchor *image.Point

	savePath string
	dirty    bool
	lastSave time.Time
	watcher  *levels.Watcher

	status   string
	statusAt time.Time

	// tile count of the active layer for the status line
	count      int
	countLayer int
	countStale bool

	screenW int
	screenH int
}

func newEditorGame(cfg *config.Config, m *tilemap.Map, tilesets []levels.Tileset, log *zap.Logger) *EditorGame {
	mode, err := edit.ParseShiftMode(cfg.Editor.ShiftMode)
	if err != nil {
		log.Warn("unknown shift mode, using blank", zap.String("mode", cfg.Editor.ShiftMode))
	}
	g := &EditorGame{
		cfg:        cfg,
		log:        log,
		catalog:    &levels.Catalog{},
		tiles:      newTileCache(cfg.Editor.SheetTile, log),
		prompt:     NewPrompt(),
		zoom:       1,
		panX:       16,
		panY:       56,
		showGrid:   cfg.Editor.ShowGrid,
		savePath:   cfg.Map.Path,
		countStale: true,
		screenW:    cfg.Editor.WindowWidth,
		screenH:    cfg.Editor.WindowHeight,
	}
	g.ed = edit.New(m,
		edit.WithLogger(log.Named("edit")),
		edit.WithHistoryLimit(cfg.Editor.HistoryLimit),
		edit.WithShiftMode(mode),
		edit.WithBrushSize(cfg.Editor.BrushSize),
	)
	g.ed.OnChange(g.onChange)
	g.ed.OnReplace(g.onReplace)

	g.catalog.Merge(tilesets)
	if cfg.Map.TilesetDir != "" {
		if n, err := g.catalog.ScanDir(cfg.Map.TilesetDir); err != nil {
			log.Warn("tileset scan failed", zap.String("dir", cfg.Map.TilesetDir), zap.Error(err))
		} else if n > 0 {
			log.Info("tilesets found", zap.Int("count", n), zap.String("dir", cfg.Map.TilesetDir))
		}
	}
	if len(g.catalog.Entries) > 0 {
		g.tileset = g.catalog.Entries[0].ID
	}
	g.syncBrush()
	return g
}

func (g *EditorGame) onChange(events []history.Event) {
	g.dirty = true
	g.countStale = true
	g.log.Debug("map changed", zap.Int("cells", len(events)))
}

func (g *EditorGame) onReplace(m *tilemap.Map) {
	g.lineStart = nil
	g.selAnchor = nil
	g.countStale = true
	g.log.Debug("map replaced", zap.Int("width", m.Width), zap.Int("height", m.Height), zap.Int("layers", m.Layers))
	g.refreshLayers()
}

// setStatus shows a message in the status line for a few seconds.
func (g *EditorGame) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusAt = time.Now()
}

// report puts a rejected edit's reason in the status line.
func (g *EditorGame) report(op string, res edit.Result) {
	switch {
	case res.Applied():
		g.setStatus("%s: %d cells", op, res.Changed)
	case res.Reason != edit.ReasonNone && res.Reason != edit.ReasonNoop:
		g.setStatus("%s: %s", op, res.Reason)
	}
}

// syncBrush rebuilds the brush cell from the palette selection.
func (g *EditorGame) syncBrush() {
	ref := tilemap.TileRef{TilesetID: g.tileset, Index: g.selectedTile}
	if prev, ok := g.ed.Brush().Ref(); ok && prev.TilesetID == ref.TilesetID && prev.Index == ref.Index {
		ref.Orientation = prev.Orientation
	}
	g.ed.SetBrush(tilemap.Some(ref))
}

func (g *EditorGame) setTool(t Tool) {
	if t == g.tool {
		return
	}
	g.cancelCanvasGesture()
	if t == ToolPaste && g.tool != ToolPaste {
		g.returnTool = g.tool
	}
	g.tool = t
}

func (g *EditorGame) setActiveLayer(layer int) {
	g.cancelCanvasGesture()
	g.ed.SetActiveLayer(layer)
	if g.layerPanel != nil {
		g.layerPanel.SetSelected(g.ed.ActiveLayer())
	}
}

// activeCount returns the number of tiles on the active layer.
func (g *EditorGame) activeCount() int {
	if layer := g.ed.ActiveLayer(); g.countStale || layer != g.countLayer {
		g.count = g.ed.Map().Count(layer)
		g.countLayer = layer
		g.countStale = false
	}
	return g.count
}

func (g *EditorGame) Update() error {
	g.pollWatcher()

	if t := g.title(); t != g.windowTitle {
		ebiten.SetWindowTitle(t)
		g.windowTitle = t
	}

	if g.prompt.Update() {
		return nil
	}

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if g.ui != nil {
		if fw := g.ui.GetFocusedWidget(); fw != nil {
			if _, ok := fw.(*widget.TextInput); ok {
				suppressHotkeys = true
			}
		}
	}
	if !suppressHotkeys {
		if err := g.handleKeys(); err != nil {
			return err
		}
	}

	if g.tool != g.lastTool {
		if g.toolBar != nil {
			g.toolBar.SetTool(g.tool)
		}
		g.lastTool = g.tool
	}

	if g.ui != nil {
		g.ui.Update()
	}

	if g.modalOpen() {
		return nil
	}
	g.updatePanZoom()
	g.updateCanvas()
	g.updatePalette()
	return nil
}

func (g *EditorGame) updatePanZoom() {
	// Handle pan (middle mouse drag)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.panX += float64(cx - g.lastPanX)
		g.panY += float64(cy - g.lastPanY)
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}

	mx, my := ebiten.CursorPosition()
	if !g.inCanvas(mx, my) {
		return
	}
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	old := g.zoom
	if wy > 0 {
		g.zoom *= 1.1
	} else {
		g.zoom /= 1.1
	}
	g.zoom = max(minZoom, min(maxZoom, g.zoom))
	// keep the point under the cursor in place
	lx := float64(mx - leftPanelWidth)
	ly := float64(my)
	g.panX = lx - (lx-g.panX)*g.zoom/old
	g.panY = ly - (ly-g.panY)*g.zoom/old
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
