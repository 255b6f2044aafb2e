package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tiledit/levels"
)

func tilesetLabel(ts levels.Tileset) string {
	name := ts.Name
	if name == "" {
		name = ts.ID
	}
	if ts.Category == "" {
		return name
	}
	return ts.Category + " / " + name
}

// buildTilesetPanelUI lists the catalog's tilesets. The tile palette for the
// chosen tileset is drawn below the list by the editor itself.
func buildTilesetPanelUI(fontFace *text.Face, tilesets []levels.Tileset, onTilesetSelected func(ts levels.Tileset)) *TilesetPanelUI {
	panel := &TilesetPanelUI{}
	suppress := false
	entries := tilesetEntries(tilesets)

	panel.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	panel.Container.AddChild(newLabel("Tilesets", fontFace))

	panel.list = widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if ts, ok := e.(levels.Tileset); ok {
				return tilesetLabel(ts)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if onTilesetSelected == nil || suppress {
				return
			}
			if ts, ok := args.Entry.(levels.Tileset); ok {
				onTilesetSelected(ts)
			}
		}),
	)
	panel.Container.AddChild(panel.list)

	panel.SetTilesets = func(tilesets []levels.Tileset) {
		suppress = true
		entries = tilesetEntries(tilesets)
		panel.list.SetEntries(entries)
		suppress = false
	}
	panel.Select = func(id string) {
		for _, e := range entries {
			if ts, ok := e.(levels.Tileset); ok && ts.ID == id {
				suppress = true
				panel.list.SetSelectedEntry(e)
				suppress = false
				return
			}
		}
	}
	return panel
}

func tilesetEntries(tilesets []levels.Tileset) []any {
	entries := make([]any, 0, len(tilesets))
	for _, ts := range tilesets {
		entries = append(entries, ts)
	}
	return entries
}
