package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func buildLeftPanelUI(theme *widget.Theme, fontFace *text.Face, h uiHandlers, shiftLabel string) *LeftPanelUI {
	layerPanel := NewLayerPanel()

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	fileNameInput := addFileNameSection(leftPanel, theme, fontFace, h)
	addLayersSection(leftPanel, theme, fontFace, layerPanel, h)

	leftPanel.AddChild(newLabel("Map", fontFace))
	mapRow := newRow(6)
	mapRow.AddChild(newButton(theme, fontFace, "Resize", h.onResize))
	mapRow.AddChild(newButton(theme, fontFace, "Script", h.onRunScript))
	leftPanel.AddChild(mapRow)
	shiftBtn := newButton(theme, fontFace, shiftLabel, h.onToggleShift)
	leftPanel.AddChild(shiftBtn)

	renameDialog := newLayerRenameDialog(theme, fontFace, h.onLayerRenamed)
	layerPanel.openRenameDialog = renameDialog.Open

	return &LeftPanelUI{
		Container:     leftPanel,
		LayerPanel:    layerPanel,
		FileNameInput: fileNameInput,
		ShiftButton:   shiftBtn,
		RenameOverlay: renameDialog.Overlay,
	}
}
