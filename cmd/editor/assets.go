package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tiledit/assets"
	"github.com/milk9111/tiledit/levels"
	"github.com/milk9111/tiledit/tilemap"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// placeholder colours for tiles whose tileset image is missing
var placeholderColors = []color.RGBA{
	colornames.Steelblue,
	colornames.Seagreen,
	colornames.Goldenrod,
	colornames.Indianred,
	colornames.Mediumpurple,
	colornames.Darkcyan,
	colornames.Sienna,
	colornames.Olivedrab,
}

type tileKey struct {
	tileset string
	index   uint32
}

// tileCache holds decoded tileset sheets and the sub-images cut from them.
type tileCache struct {
	size   int
	log    *zap.Logger
	sheets map[string]*ebiten.Image // nil entry: image could not be loaded
	tiles  map[tileKey]*ebiten.Image
	blanks map[uint32]*ebiten.Image
}

func newTileCache(size int, log *zap.Logger) *tileCache {
	if size <= 0 {
		size = 16
	}
	c := &tileCache{size: size, log: log}
	c.reset()
	return c
}

// reset drops every cached image so sheets are decoded again on next use.
func (c *tileCache) reset() {
	c.sheets = make(map[string]*ebiten.Image)
	c.tiles = make(map[tileKey]*ebiten.Image)
	if c.blanks == nil {
		c.blanks = make(map[uint32]*ebiten.Image)
	}
}

func (c *tileCache) sheet(cat *levels.Catalog, id string) *ebiten.Image {
	if img, ok := c.sheets[id]; ok {
		return img
	}
	var img *ebiten.Image
	if ts, ok := cat.Lookup(id); ok {
		decoded, err := assets.DecodeImage(ts.AssetPath)
		if err != nil {
			c.log.Warn("tileset image unavailable", zap.String("tileset", id), zap.String("path", ts.AssetPath), zap.Error(err))
		} else {
			img = ebiten.NewImageFromImage(decoded)
		}
	}
	c.sheets[id] = img
	return img
}

// tileCount is the number of whole tiles in a sheet, or 0 without one.
func (c *tileCache) tileCount(cat *levels.Catalog, id string) int {
	img := c.sheet(cat, id)
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return (b.Dx() / c.size) * (b.Dy() / c.size)
}

// tile returns the image for ref, falling back to a coloured placeholder.
func (c *tileCache) tile(cat *levels.Catalog, ref tilemap.TileRef) *ebiten.Image {
	key := tileKey{tileset: ref.TilesetID, index: ref.Index}
	if img, ok := c.tiles[key]; ok {
		return img
	}
	img := c.placeholder(ref.Index)
	if sheet := c.sheet(cat, ref.TilesetID); sheet != nil {
		if r, ok := assets.TileRect(sheet.Bounds(), c.size, ref.Index); ok {
			img = sheet.SubImage(r).(*ebiten.Image)
		}
	}
	c.tiles[key] = img
	return img
}

// placeholder draws a flat tile with a light corner so its orientation is
// still readable.
func (c *tileCache) placeholder(index uint32) *ebiten.Image {
	if img, ok := c.blanks[index]; ok {
		return img
	}
	col := placeholderColors[int(index)%len(placeholderColors)]
	rgba := image.NewRGBA(image.Rect(0, 0, c.size, c.size))
	mark := max(c.size/4, 1)
	for y := 0; y < c.size; y++ {
		for x := 0; x < c.size; x++ {
			switch {
			case x < mark && y < mark:
				rgba.Set(x, y, colornames.Whitesmoke)
			case x == 0 || y == 0 || x == c.size-1 || y == c.size-1:
				rgba.Set(x, y, darken(col))
			default:
				rgba.Set(x, y, col)
			}
		}
	}
	img := ebiten.NewImageFromImage(rgba)
	c.blanks[index] = img
	return img
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
