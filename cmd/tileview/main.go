// Command tileview shows every tile of a tileset in all eight orientations,
// which makes it easy to spot art that does not survive rotation or
// mirroring.
//
// Left/Right step through tiles, Space toggles auto-advance.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tiledit/assets"
	"github.com/milk9111/tiledit/logger"
	"github.com/milk9111/tiledit/orient"
	"github.com/milk9111/tiledit/render"
	"go.uber.org/zap"
)

const (
	screenW = 512
	screenH = 288
	cell    = 96
	gap     = 24
)

type viewer struct {
	tiles       []*ebiten.Image
	size        int
	current     int
	tick        int
	ticksPerFrm int
	auto        bool
}

func (v *viewer) step(n int) {
	v.current = (v.current + n + len(v.tiles)) % len(v.tiles)
}

func (v *viewer) Update() error {
	if len(v.tiles) == 0 {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.auto = !v.auto
	}
	if !v.auto {
		return nil
	}
	v.tick++
	if v.tick >= v.ticksPerFrm {
		v.tick = 0
		v.step(1)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	if len(v.tiles) == 0 {
		ebitenutil.DebugPrint(screen, "no tiles in sheet")
		return
	}
	img := v.tiles[v.current]
	scale := float64(cell) / float64(v.size)
	for i, o := range orient.All() {
		x := gap + (i%4)*(cell+gap)
		y := gap + (i/4)*(cell+gap)
		op := &ebiten.DrawImageOptions{}
		render.OrientGeoM(&op.GeoM, o, float64(v.size))
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(x), float64(y))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
		ebitenutil.DebugPrintAt(screen, o.String(), x, y+cell+2)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tile %d/%d", v.current, len(v.tiles)-1), gap, screenH-16)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func load(path string, size, fps int) (*viewer, error) {
	img, err := assets.DecodeImage(path)
	if err != nil {
		return nil, err
	}
	tiles := render.Tiles(ebiten.NewImageFromImage(img), size)
	ticks := 1
	if fps > 0 {
		ticks = max(60/fps, 1)
	}
	return &viewer{tiles: tiles, size: size, ticksPerFrm: ticks}, nil
}

func main() {
	sheet := flag.String("sheet", "assets/tilesets/terrain.png", "Tileset image")
	size := flag.Int("size", 16, "Tile size in pixels")
	fps := flag.Int("fps", 2, "Tiles per second while auto-advancing")
	flag.Parse()

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Named("tileview")

	v, err := load(*sheet, *size, *fps)
	if err != nil {
		log.Fatal("cannot load sheet", zap.String("path", *sheet), zap.Error(err))
	}
	log.Info("sheet loaded", zap.String("path", *sheet), zap.Int("tiles", len(v.tiles)))

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("tileview - " + *sheet)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal("tileview stopped", zap.Error(err))
	}
}
