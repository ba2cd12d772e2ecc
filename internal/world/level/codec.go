package level

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// previewColors are the base terrain colors: road, grass, water, sand.
var previewColors = []color.NRGBA{
	{R: 151, G: 153, B: 150, A: 255},
	{R: 0, G: 224, B: 0, A: 255},
	{R: 0, G: 0, B: 244, A: 255},
	{R: 192, G: 192, B: 0, A: 255},
}

// Decode reads a level raster where the red channel of every pixel is one tile type.
func Decode(catalog TileCatalog, img image.Image) (*Level, error) {
	b := img.Bounds()
	rows := make([][]int, b.Dy())
	for y := range rows {
		rows[y] = make([]int, b.Dx())
		for x := range rows[y] {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			rows[y][x] = int(c.R)
		}
	}
	l, err := New(catalog, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode level %dx%d: %w", b.Dx(), b.Dy(), err)
	}
	return l, nil
}

// DecodePNG reads a PNG level raster.
func DecodePNG(catalog TileCatalog, r io.Reader) (*Level, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode level png: %w", err)
	}
	return Decode(catalog, img)
}

// Encode renders the grid as an opaque raster with the tile type in every color channel.
func (l *Level) Encode() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, l.Width(), l.Height()))
	for y, row := range l.grid {
		for x, t := range row {
			v := uint8(t)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// EncodePNG writes the grid as a PNG level raster.
func (l *Level) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, l.Encode()); err != nil {
		return fmt.Errorf("failed to encode level png: %w", err)
	}
	return nil
}

// BaseTerrain maps a tile type to its background: 0 road, 1 grass, 2 water, 3 sand.
func BaseTerrain(tile int) int {
	if tile > 3 {
		tile = 1 + (tile-4)/12
	}
	if tile < 0 || tile >= len(previewColors) {
		return 0
	}
	return tile
}

// Preview renders one pixel per cell colored by base terrain.
func (l *Level) Preview() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, l.Width(), l.Height()))
	for y, row := range l.grid {
		for x, t := range row {
			img.SetNRGBA(x, y, previewColors[BaseTerrain(t)])
		}
	}
	return img
}
