package levels

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/milk9111/tiledit/tilemap"
)

func TestCatalogMerge(t *testing.T) {
	c := &Catalog{Entries: []Tileset{{ID: "a", Category: "ground"}}}
	added := c.Merge([]Tileset{
		{ID: "a", Category: "other"},
		{ID: ""},
		{ID: "b", Category: "props"},
		{ID: "b", Category: "dup"},
	})
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	if got, _ := c.Lookup("a"); got.Category != "ground" {
		t.Fatalf("existing entry replaced: %+v", got)
	}
	if _, ok := c.Lookup("b"); !ok {
		t.Fatal("b not merged")
	}
	if got := c.Categories(); !reflect.DeepEqual(got, []string{"ground", "props"}) {
		t.Fatalf("categories = %v", got)
	}
}

func TestCatalogForMap(t *testing.T) {
	c := &Catalog{Entries: []Tileset{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	m := tilemap.New(2, 1)
	m.Set(0, 0, 0, tilemap.Some(tilemap.TileRef{TilesetID: "c"}))
	m.Set(1, 1, 0, tilemap.Some(tilemap.TileRef{TilesetID: "a"}))
	m.Set(1, 0, 0, tilemap.Some(tilemap.TileRef{TilesetID: "unknown"}))

	got := c.ForMap(m)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("ForMap = %+v", got)
	}
}

func TestCatalogScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"grass.png", "caves/rock.PNG", "caves/notes.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	var c Catalog
	n, err := c.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("found %d tilesets, want 2", n)
	}
	rock, ok := c.Lookup("caves/rock")
	if !ok {
		t.Fatalf("caves/rock missing: %+v", c.Entries)
	}
	if rock.Category != "caves" || rock.Name != "rock" {
		t.Fatalf("rock = %+v", rock)
	}
	grass, ok := c.Lookup("grass")
	if !ok || grass.Category != "default" {
		t.Fatalf("grass = %+v (found=%v)", grass, ok)
	}

	// a second scan adds nothing new
	if n, _ := c.ScanDir(dir); n != 0 {
		t.Fatalf("rescan added %d", n)
	}
}

func TestCatalogScanMissingDir(t *testing.T) {
	var c Catalog
	if _, err := c.ScanDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}

func TestCatalogSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog", "tilesets.yaml")
	want := &Catalog{Entries: []Tileset{{ID: "a", Name: "A", Category: "ground", AssetPath: "a.png"}}}
	if err := SaveCatalog(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %+v, want %+v", got, want)
	}
}

func TestIsMapFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.json":     true,
		"a.YML":      true,
		"a.yaml":     true,
		"a.json.tmp": false,
		"a.png":      false,
	} {
		if got := IsMapFile(path); got != want {
			t.Errorf("IsMapFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsSave(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("watcher unavailable: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "level.json")
	if err := Save(path, tilemap.New(1, 1), nil); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "level.json" {
			t.Fatalf("event for %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Skipf("watcher unavailable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatal("events still open")
	}
	// closing twice is harmless
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
