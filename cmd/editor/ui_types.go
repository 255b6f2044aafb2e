package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/tiledit/levels"
)

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	tools   []Tool
	syncing bool
}

// SetTool reflects t in the toolbar without firing the change handler.
// Tools without a button (paste) leave the selection alone.
func (tb *ToolBar) SetTool(t Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for i, tool := range tb.tools {
		if tool == t {
			tb.syncing = true
			tb.group.SetActive(tb.buttons[i])
			tb.syncing = false
			return
		}
	}
}

// uiHandlers are the editor actions the widgets trigger.
type uiHandlers struct {
	onToolSelected    func(tool Tool)
	onTilesetSelected func(ts levels.Tileset)
	onLayerSelected   func(layer int)
	onLayerRenamed    func(layer int, name string)
	onAddLayer        func()
	onRemoveLayer     func()
	onToggleLock      func(layer int)
	onToggleVisible   func(layer int)
	onSave            func()
	onReload          func()
	onResize          func()
	onToggleShift     func()
	onRunScript       func()
}

// TilesetPanelUI is the composed right-panel widget plus helpers.
type TilesetPanelUI struct {
	Container   *widget.Container
	list        *widget.List
	SetTilesets func(tilesets []levels.Tileset)
	Select      func(id string)
}

// Bottom is the screen y just below the tileset list, where the palette
// starts.
func (p *TilesetPanelUI) Bottom() int {
	if p == nil || p.list == nil {
		return 0
	}
	return p.list.GetWidget().Rect.Max.Y
}

// LeftPanelUI is the composed left-panel widget and its stateful helpers.
type LeftPanelUI struct {
	Container     *widget.Container
	LayerPanel    *LayerPanel
	FileNameInput *widget.TextInput
	ShiftButton   *widget.Button
	RenameOverlay *widget.Container
}
