// Package render holds the ebiten drawing helpers shared by the editor and
// the tile viewer.
package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tiledit/assets"
	"github.com/milk9111/tiledit/orient"
)

// OrientGeoM mirrors then rotates a size×size tile about its centre, so the
// tile still covers (0,0)-(size,size) afterwards.
func OrientGeoM(geo *ebiten.GeoM, o orient.Orientation, size float64) {
	if o.IsIdentity() {
		return
	}
	half := size / 2
	geo.Translate(-half, -half)
	sx, sy := 1.0, 1.0
	if o.FlipX {
		sx = -1
	}
	if o.FlipY {
		sy = -1
	}
	geo.Scale(sx, sy)
	geo.Rotate(float64(o.Rot%4) * math.Pi / 2)
	geo.Translate(half, half)
}

// Tiles cuts sheet into size×size sub-images, row by row.
func Tiles(sheet *ebiten.Image, size int) []*ebiten.Image {
	var out []*ebiten.Image
	for i := uint32(0); ; i++ {
		r, ok := assets.TileRect(sheet.Bounds(), size, i)
		if !ok {
			return out
		}
		out = append(out, sheet.SubImage(r).(*ebiten.Image))
	}
}
