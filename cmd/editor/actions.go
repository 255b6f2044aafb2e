package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/milk9111/tiledit/edit"
	"github.com/milk9111/tiledit/levels"
	"github.com/milk9111/tiledit/script"
	"go.uber.org/zap"
)

const scriptTimeout = 5 * time.Second

func shiftLabel(mode edit.ShiftMode) string {
	return "Shift: " + mode.String()
}

// selectTileset switches the palette to another tileset.
func (g *EditorGame) selectTileset(id string) {
	if id == g.tileset {
		return
	}
	g.tileset = id
	g.selectedTile = 0
	g.syncBrush()
	if g.tilesetPanel != nil {
		g.tilesetPanel.Select(id)
	}
}

func (g *EditorGame) toggleLock(layer int) {
	m := g.ed.Map()
	if !m.ValidLayer(layer) {
		return
	}
	g.ed.SetLayerLocked(layer, !m.IsLocked(layer))
	g.refreshLayers()
}

func (g *EditorGame) toggleVisible(layer int) {
	m := g.ed.Map()
	if !m.ValidLayer(layer) {
		return
	}
	g.ed.SetLayerVisible(layer, !m.IsVisible(layer))
	g.refreshLayers()
}

// setLayerCount adds or drops layers at the top of the stack. Undo history
// does not survive the change.
func (g *EditorGame) setLayerCount(n int) {
	if err := levels.CheckLayers(n); err != nil {
		g.setStatus("a map has 1 to %d layers", levels.MaxLayers)
		return
	}
	g.cancelCanvasGesture()
	g.ed.SetLayerCount(n)
	g.dirty = true
	g.refreshLayers()
	g.setStatus("%d layers (undo history cleared)", n)
}

func (g *EditorGame) promptRename(layer int) {
	if g.layerPanel != nil && g.layerPanel.openRenameDialog != nil {
		g.layerPanel.Rename(layer)
		return
	}
	g.prompt.Open("Layer name:", g.ed.Map().Layer(layer).Name, func(name string) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("name cannot be empty")
		}
		g.ed.RenameLayer(layer, name)
		g.refreshLayers()
		return nil
	})
}

func (g *EditorGame) promptSaveAs() {
	g.prompt.Open("Save as:", g.savePath, func(path string) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("enter a file name")
		}
		return g.saveTo(path)
	})
}

// parseSize reads "WxH" or "W H".
func parseSize(s string) (int, int, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == ' ' || r == ','
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want WIDTHxHEIGHT, got %q", s)
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad width %q", fields[0])
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad height %q", fields[1])
	}
	if w < 0 || h < 0 || w > levels.MaxDimension || h > levels.MaxDimension {
		return 0, 0, fmt.Errorf("size %dx%d out of range", w, h)
	}
	return w, h, nil
}

func (g *EditorGame) promptResize() {
	m := g.ed.Map()
	g.prompt.Open("Resize to:", fmt.Sprintf("%dx%d", m.Width, m.Height), func(s string) error {
		w, h, err := parseSize(s)
		if err != nil {
			return err
		}
		g.cancelCanvasGesture()
		g.ed.Resize(w, h)
		g.dirty = true
		g.setStatus("map is now %dx%d, %s cells per layer (undo history cleared)", w, h, humanize.Comma(int64(w*h)))
		return nil
	})
}

// promptScript asks for a script file and runs it against the open map.
func (g *EditorGame) promptScript() {
	g.prompt.Open("Run script:", "", func(path string) error {
		path = strings.TrimSpace(path)
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		g.cancelCanvasGesture()
		ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
		defer cancel()
		report, err := script.Run(ctx, src, g.ed)
		g.refreshLayers()
		if err != nil {
			g.log.Warn("script failed", zap.String("path", path), zap.Error(err))
			return err
		}
		g.setStatus("%s: %d ops, %s cells changed, %d rejected", path, report.Ops, humanize.Comma(int64(report.Changed)), len(report.Rejected))
		return nil
	})
}
