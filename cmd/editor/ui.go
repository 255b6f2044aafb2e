package main

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tiledit/levels"
	"golang.org/x/image/font/gofont/goregular"
)

type editorUI struct {
	ui      *ebitenui.UI
	face    text.Face
	toolBar *ToolBar
	left    *LeftPanelUI
	right   *TilesetPanelUI
}

func BuildEditorUI(h uiHandlers, tilesets []levels.Tileset, initialTool Tool, shiftLabel string) (*editorUI, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	rightPanel := buildTilesetPanelUI(&fontFace, tilesets, h.onTilesetSelected)
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, h.onToolSelected, initialTool)
	leftPanel := buildLeftPanelUI(ui.PrimaryTheme, &fontFace, h, shiftLabel)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	// Toolbar: top center
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	leftPanel.RenameOverlay.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchHorizontal:  true,
		StretchVertical:    true,
	}
	root.AddChild(leftPanel.Container)
	root.AddChild(rightPanel.Container)
	root.AddChild(toolbarContainer)
	root.AddChild(leftPanel.RenameOverlay)

	ui.Container = root
	return &editorUI{
		ui:      ui,
		face:    fontFace,
		toolBar: toolBar,
		left:    leftPanel,
		right:   rightPanel,
	}, nil
}

// buildUI creates the widgets and wires them to the editor.
func (g *EditorGame) buildUI() error {
	h := uiHandlers{
		onToolSelected: g.setTool,
		onTilesetSelected: func(ts levels.Tileset) {
			g.selectTileset(ts.ID)
		},
		onLayerSelected: g.setActiveLayer,
		onLayerRenamed: func(layer int, name string) {
			g.ed.RenameLayer(layer, name)
			g.refreshLayers()
		},
		onAddLayer:      func() { g.setLayerCount(g.ed.Map().Layers + 1) },
		onRemoveLayer:   func() { g.setLayerCount(g.ed.Map().Layers - 1) },
		onToggleLock:    g.toggleLock,
		onToggleVisible: g.toggleVisible,
		onSave:          g.save,
		onReload:        g.reload,
		onResize:        g.promptResize,
		onToggleShift:   g.toggleShiftMode,
		onRunScript:     g.promptScript,
	}
	eui, err := BuildEditorUI(h, g.catalog.Entries, g.tool, shiftLabel(g.ed.ShiftMode()))
	if err != nil {
		return err
	}
	g.ui = eui.ui
	g.face = eui.face
	g.toolBar = eui.toolBar
	g.layerPanel = eui.left.LayerPanel
	g.fileInput = eui.left.FileNameInput
	g.shiftButton = eui.left.ShiftButton
	g.renameOverlay = eui.left.RenameOverlay
	g.tilesetPanel = eui.right

	g.fileInput.SetText(g.savePath)
	g.refreshLayers()
	g.tilesetPanel.Select(g.tileset)
	return nil
}

// modalOpen reports whether a dialog is covering the canvas.
func (g *EditorGame) modalOpen() bool {
	if g.prompt.IsOpen() {
		return true
	}
	return g.renameOverlay != nil && g.renameOverlay.GetWidget().Visibility == widget.Visibility_Show
}

func (g *EditorGame) refreshLayers() {
	if g.layerPanel == nil {
		return
	}
	g.layerPanel.SetLayers(layerEntries(g.ed.Map()))
	g.layerPanel.SetSelected(g.ed.ActiveLayer())
}
