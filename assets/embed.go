// Package assets loads tileset images, from disk when the file exists and
// from the embedded copies otherwise.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

//go:embed tilesets/*.png
var assetsFS embed.FS

// DecodeImage decodes an image file. Paths are tried on disk first, then as
// an assets-relative path in the embedded files.
func DecodeImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// LoadFile reads an asset by path.
func LoadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if b, err := os.ReadFile(path); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Embedded reports whether an asset with this path ships with the binary.
func Embedded(path string) bool {
	_, err := assetsFS.Open(cleanAssetPath(path))
	return err == nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(strings.TrimPrefix(s, "./"), "assets/")
}

// TileRect returns the source rectangle of tile index in a sheet laid out in
// rows of size×size tiles. ok is false when the index falls outside the
// sheet.
func TileRect(bounds image.Rectangle, size int, index uint32) (image.Rectangle, bool) {
	if size <= 0 {
		return image.Rectangle{}, false
	}
	cols := bounds.Dx() / size
	rows := bounds.Dy() / size
	if cols == 0 || int(index) >= cols*rows {
		return image.Rectangle{}, false
	}
	x := bounds.Min.X + int(index)%cols*size
	y := bounds.Min.Y + int(index)/cols*size
	return image.Rect(x, y, x+size, y+size), true
}
