package main

// Tool is the active canvas tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolErase
	ToolRect
	ToolFill
	ToolLine
	ToolSelect
	ToolPick
	// ToolPaste places the clipboard; it is entered with Ctrl+V and hands
	// control back to the previous tool once a paste lands.
	ToolPaste
)

// toolbarTools are the tools with a toolbar button, in button order.
var toolbarTools = []Tool{ToolBrush, ToolErase, ToolRect, ToolFill, ToolLine, ToolSelect, ToolPick}

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolErase:
		return "Erase"
	case ToolRect:
		return "Rect"
	case ToolFill:
		return "Fill"
	case ToolLine:
		return "Line"
	case ToolSelect:
		return "Select"
	case ToolPick:
		return "Pick"
	case ToolPaste:
		return "Paste"
	default:
		return "Unknown"
	}
}

const (
	leftPanelWidth  = 200
	rightPanelWidth = 240
	statusHeight    = 24
	toolbarHeight   = 48

	// palette area inside the right panel, below the tileset list
	paletteTop  = 220
	paletteZoom = 2

	minZoom = 0.25
	maxZoom = 4.0
)
