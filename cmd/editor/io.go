package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/milk9111/tiledit/levels"
	"go.uber.org/zap"
)

// saveEcho is how long after our own save a watcher event for the same file
// is taken to be that save.
const saveEcho = time.Second

// save writes the map to the path in the file box, or asks for one.
func (g *EditorGame) save() {
	path := g.savePath
	if g.fileInput != nil {
		if t := strings.TrimSpace(g.fileInput.GetText()); t != "" {
			path = t
		}
	}
	if path == "" {
		g.promptSaveAs()
		return
	}
	if err := g.saveTo(path); err != nil {
		g.setStatus("save failed: %v", err)
	}
}

func (g *EditorGame) saveTo(path string) error {
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	m := g.ed.Map()
	if err := levels.Save(path, m, g.catalog.ForMap(m)); err != nil {
		g.log.Error("save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	g.lastSave = time.Now()
	g.dirty = false
	if path != g.savePath {
		g.savePath = path
		if g.watcher != nil {
			g.watch(filepath.Dir(path))
		}
	}
	if g.fileInput != nil {
		g.fileInput.SetText(path)
	}

	size := "?"
	if fi, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	g.log.Info("map saved", zap.String("path", path), zap.String("size", size))
	g.setStatus("saved %s (%s)", filepath.Base(path), size)
	return nil
}

// reload replaces the open map with the file on disk.
func (g *EditorGame) reload() {
	if g.savePath == "" {
		g.setStatus("nothing to reload: map has no file yet")
		return
	}
	m, tilesets, err := levels.Load(g.savePath)
	if err != nil {
		g.log.Warn("reload failed", zap.String("path", g.savePath), zap.Error(err))
		g.setStatus("reload failed: %v", err)
		return
	}
	if n := g.catalog.Merge(tilesets); n > 0 {
		g.tiles.reset()
		if g.tilesetPanel != nil {
			g.tilesetPanel.SetTilesets(g.catalog.Entries)
		}
	}
	g.ed.Replace(m)
	g.dirty = false
	g.log.Info("map reloaded", zap.String("path", g.savePath))
	g.setStatus("reloaded %s", filepath.Base(g.savePath))
}

// watch (re)starts the file watcher on dir.
func (g *EditorGame) watch(dir string) {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
	w, err := levels.NewWatcher(dir)
	if err != nil {
		g.log.Warn("file watching disabled", zap.String("dir", dir), zap.Error(err))
		return
	}
	g.watcher = w
	g.log.Debug("watching", zap.String("dir", dir))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// pollWatcher drains pending file events without blocking the frame.
func (g *EditorGame) pollWatcher() {
	for g.watcher != nil {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if g.savePath == "" || !samePath(path, g.savePath) || time.Since(g.lastSave) < saveEcho {
				continue
			}
			if g.dirty {
				g.setStatus("%s changed on disk; Ctrl+O reloads and drops unsaved edits", filepath.Base(path))
				continue
			}
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *EditorGame) close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
	g.saveSession()
}

// saveSession remembers shift mode, brush size and grid for the next run.
func (g *EditorGame) saveSession() {
	g.cfg.Editor.ShiftMode = g.ed.ShiftMode().String()
	g.cfg.Editor.BrushSize = g.ed.BrushSize()
	g.cfg.Editor.ShowGrid = g.showGrid
	path, err := g.cfg.SaveSession()
	if err != nil {
		g.log.Warn("session settings not saved", zap.String("path", path), zap.Error(err))
		return
	}
	g.log.Debug("session settings saved", zap.String("path", path))
}
