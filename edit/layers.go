package edit

import (
	"github.com/milk9111/tiledit/common"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
)

func (e *Editor) ActiveLayer() int {
	return e.layer
}

// SetActiveLayer switches the layer edits go to, clamped to the map.
// Gestures in progress are cancelled.
func (e *Editor) SetActiveLayer(layer int) {
	layer = common.Clamp(layer, 0, max(e.m.Layers-1, 0))
	if layer == e.layer {
		return
	}
	e.cancelGestures()
	e.layer = layer
}

func (e *Editor) NextLayer() {
	e.SetActiveLayer(e.layer + 1)
}

func (e *Editor) PrevLayer() {
	e.SetActiveLayer(e.layer - 1)
}

func (e *Editor) SetLayerVisible(layer int, visible bool) {
	if !e.m.ValidLayer(layer) {
		return
	}
	e.m.EnsureMeta()
	e.m.Meta[layer].Visible = visible
}

func (e *Editor) SetLayerLocked(layer int, locked bool) {
	if !e.m.ValidLayer(layer) {
		return
	}
	e.m.EnsureMeta()
	e.m.Meta[layer].Locked = locked
	if locked && layer == e.layer {
		e.cancelGestures()
	}
}

func (e *Editor) RenameLayer(layer int, name string) {
	if !e.m.ValidLayer(layer) || name == "" {
		return
	}
	e.m.EnsureMeta()
	e.m.Meta[layer].Name = name
}

// Pick returns the topmost visible tile at (x, y) and makes it the brush.
func (e *Editor) Pick(x, y int) (tilemap.Cell, bool) {
	layer, ok := e.m.TopmostAt(x, y)
	if !ok {
		return tilemap.Empty(), false
	}
	c := e.m.At(layer, x, y)
	e.brush = c
	return c, true
}

// Resize replaces the map with a width×height copy keeping the overlapping
// content. Undo history is cleared.
func (e *Editor) Resize(width, height int) {
	e.resize(width, height, e.m.Layers)
}

// SetLayerCount grows or shrinks the layer stack, keeping the overlapping
// layers. Undo history is cleared.
func (e *Editor) SetLayerCount(layers int) {
	e.resize(e.m.Width, e.m.Height, max(layers, 1))
}

func (e *Editor) resize(width, height, layers int) {
	width, height = max(width, 0), max(height, 0)
	if width == e.m.Width && height == e.m.Height && layers == e.m.Layers {
		return
	}
	e.log.Info("resize map",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("layers", layers))
	e.Replace(tilemap.ResizedCopy(e.m, width, height, layers))
}
