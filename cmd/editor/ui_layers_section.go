package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, layerPanel *LayerPanel, h uiHandlers) {
	parent.AddChild(newLabel("Layers", fontFace))

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return entry.label()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || layerPanel.suppressEvents {
				return
			}
			if h.onLayerSelected != nil {
				h.onLayerSelected(entry.Index)
			}
		}),
	)
	parent.AddChild(layerList)
	layerPanel.list = layerList

	// acts on the highlighted row
	withSelected := func(fn func(layer int)) func() {
		return func() {
			if fn == nil {
				return
			}
			if sel, ok := layerPanel.Selected(); ok {
				fn(sel.Index)
			}
		}
	}

	buttonsRow := newRow(6)
	buttonsRow.AddChild(newButton(theme, fontFace, "Add", h.onAddLayer))
	buttonsRow.AddChild(newButton(theme, fontFace, "Remove", h.onRemoveLayer))
	buttonsRow.AddChild(newButton(theme, fontFace, "Rename", withSelected(layerPanel.Rename)))
	parent.AddChild(buttonsRow)

	flagsRow := newRow(6)
	flagsRow.AddChild(newButton(theme, fontFace, "Lock", withSelected(h.onToggleLock)))
	flagsRow.AddChild(newButton(theme, fontFace, "Show/Hide", withSelected(h.onToggleVisible)))
	parent.AddChild(flagsRow)
}
