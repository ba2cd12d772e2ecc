// Package tiles assembles the terrain tile set and answers mask and cost queries for it.
package tiles

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"chosenoffset.com/ballistic/internal/core/mask"
	"chosenoffset.com/ballistic/internal/world/level"
)

// RawCells is the number of 32x32 cells in the source strip.
const RawCells = 7

// Road is the only drivable terrain color.
var Road = color.NRGBA{R: 151, G: 153, B: 150, A: 255}

// Catalog is the assembled tile set: base terrains followed by every
// background/overlay/rotation combination.
type Catalog struct {
	images []image.Image
	masks  []mask.Mask
	costs  []int
}

// Assemble builds the catalog from the raw strip cells. Cell 0 is road, cells 1-3
// are overlays and cells 4-6 are the grass, water and sand backgrounds.
func Assemble(raw []image.Image) (*Catalog, error) {
	if len(raw) != RawCells {
		return nil, fmt.Errorf("tile strip has %d cells, want %d", len(raw), RawCells)
	}
	for i, cell := range raw {
		b := cell.Bounds()
		if b.Dx() != level.TileSize || b.Dy() != level.TileSize {
			return nil, fmt.Errorf("tile cell %d is %dx%d", i, b.Dx(), b.Dy())
		}
	}

	var tiles []*image.NRGBA
	for _, idx := range []int{0, 4, 5, 6} {
		tiles = append(tiles, toNRGBA(raw[idx]))
	}
	for bg := 1; bg <= 3; bg++ {
		for overlay := 1; overlay <= 3; overlay++ {
			rotated := toNRGBA(raw[overlay])
			for rot := 0; rot < 4; rot++ {
				dst := image.NewNRGBA(tiles[bg].Bounds())
				draw.Draw(dst, dst.Bounds(), tiles[bg], image.Point{}, draw.Src)
				draw.Draw(dst, dst.Bounds(), rotated, image.Point{}, draw.Over)
				tiles = append(tiles, dst)
				rotated = rotateClockwise(rotated)
			}
		}
	}

	c := &Catalog{
		images: make([]image.Image, len(tiles)),
		masks:  make([]mask.Mask, len(tiles)),
		costs:  make([]int, len(tiles)),
	}
	for i, t := range tiles {
		c.images[i] = t
		c.masks[i] = mask.FromMismatch(t, t.Bounds(), Road)
		c.costs[i] = c.masks[i].Count()
	}
	return c, nil
}

// Index returns the tile type of a background (1-3) with an overlay (1-3) turned
// rot quarter turns clockwise.
func Index(background, overlay, rot int) int {
	return 4 + ((background-1)*3+(overlay-1))*4 + rot
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func rotateClockwise(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for sy := 0; sy < b.Dy(); sy++ {
		for sx := 0; sx < b.Dx(); sx++ {
			dst.SetNRGBA(b.Dy()-1-sy, sx, src.NRGBAAt(sx, sy))
		}
	}
	return dst
}

// Len returns the number of tile types.
func (c *Catalog) Len() int {
	return len(c.images)
}

// Image returns the raster of a tile type, or nil when unknown.
func (c *Catalog) Image(tile int) image.Image {
	if tile < 0 || tile >= len(c.images) {
		return nil
	}
	return c.images[tile]
}

// Mask returns the obstacle mask of a tile type. Unknown types have no obstacles.
func (c *Catalog) Mask(tile int) mask.Mask {
	if tile < 0 || tile >= len(c.masks) {
		return nil
	}
	return c.masks[tile]
}

// Cost returns the number of non-road pixels of a tile type.
func (c *Catalog) Cost(tile int) int {
	if tile < 0 || tile >= len(c.costs) {
		return 0
	}
	return c.costs[tile]
}
