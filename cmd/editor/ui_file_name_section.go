package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addFileNameSection adds the map path input with its save and reload
// buttons. The path typed here is used by the next save.
func addFileNameSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, h uiHandlers) *widget.TextInput {
	fileNameInput := newTextInput(fontFace, 180)
	parent.AddChild(newLabel("File", fontFace))
	parent.AddChild(fileNameInput)

	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "Save", h.onSave))
	row.AddChild(newButton(theme, fontFace, "Reload", h.onReload))
	parent.AddChild(row)
	return fileNameInput
}
