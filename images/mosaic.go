package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Tile pairs an image with the label drawn on its mosaic cell.
type Tile struct {
	// Label is drawn in the top-left corner of the cell.
	Label string
	// Image is the tile content.
	Image *BGRImage
}

// Mosaic composes labelled tiles into a comparison grid for visual
// side-by-side inspection of correction results.
//
// Each tile is scaled to tileWidth×tileHeight and placed left to right, top
// to bottom, cols tiles per row. The final row is padded with black cells
// when the tile count is not a multiple of cols.
//
// Arguments:
// - tiles: The labelled images to compose.
// - tileWidth: Cell width in pixels.
// - tileHeight: Cell height in pixels.
// - cols: Number of cells per row; values below 1 are treated as 1.
//
// Returns:
// - The composed grid as a BGR image, or an empty image for no tiles.
func Mosaic(tiles []Tile, tileWidth, tileHeight, cols int) *BGRImage {
	if len(tiles) == 0 {
		return NewBGRImage(0, 0)
	}
	if cols < 1 {
		cols = 1
	}

	rows := (len(tiles) + cols - 1) / cols
	canvas := image.NewRGBA(image.Rect(0, 0, cols*tileWidth, rows*tileHeight))

	for i, tile := range tiles {
		cellX := (i % cols) * tileWidth
		cellY := (i / cols) * tileHeight

		scaled := resize.Resize(uint(tileWidth), uint(tileHeight), ToImage(tile.Image), resize.Bilinear)
		draw.Draw(
			canvas,
			image.Rect(cellX, cellY, cellX+tileWidth, cellY+tileHeight),
			scaled,
			image.Point{},
			draw.Src,
		)

		drawLabel(canvas, tile.Label, cellX+10, cellY+20)
	}

	return FromImage(canvas)
}

// drawLabel renders white text with a 1px black offset shadow so labels stay
// readable over both dark and bright tiles.
func drawLabel(dst *image.RGBA, label string, x, y int) {
	if label == "" {
		return
	}

	shadow := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+1, y+1),
	}
	shadow.DrawString(label)

	text := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	text.DrawString(label)
}
