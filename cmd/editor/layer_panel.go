package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/tiledit/tilemap"
)

// LayerEntry is a small value used by the UI list to represent a layer row.
type LayerEntry struct {
	Index  int
	Name   string
	Locked bool
	Hidden bool
}

func (e LayerEntry) label() string {
	s := fmt.Sprintf("%d. %s", e.Index+1, e.Name)
	if e.Locked {
		s += " [locked]"
	}
	if e.Hidden {
		s += " [hidden]"
	}
	return s
}

func layerEntries(m *tilemap.Map) []LayerEntry {
	out := make([]LayerEntry, m.Layers)
	for i := range out {
		meta := m.Layer(i)
		out[i] = LayerEntry{Index: i, Name: meta.Name, Locked: meta.Locked, Hidden: !meta.Visible}
	}
	return out
}

// LayerPanel holds the list widget and small helpers used by the editor UI.
type LayerPanel struct {
	list             *widget.List
	entries          []any
	openRenameDialog func(idx int, current string)

	// suppressEvents, when true, causes the selection handler to ignore
	// programmatic selections.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func (lp *LayerPanel) SetLayers(layers []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(layers))
	for i, l := range layers {
		entries[i] = l
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}

// Selected returns the layer highlighted in the list.
func (lp *LayerPanel) Selected() (LayerEntry, bool) {
	if lp == nil || lp.list == nil {
		return LayerEntry{}, false
	}
	e, ok := lp.list.SelectedEntry().(LayerEntry)
	return e, ok
}

// Rename opens the rename dialog for a layer.
func (lp *LayerPanel) Rename(idx int) {
	if lp == nil || lp.openRenameDialog == nil || idx < 0 || idx >= len(lp.entries) {
		return
	}
	e := lp.entries[idx].(LayerEntry)
	lp.openRenameDialog(e.Index, e.Name)
}
