// Package mask builds per-pixel obstacle masks from raster images.
package mask

import (
	"image"
	"image/color"
)

// Mask is a per-pixel occupancy grid indexed [row][col]. True means solid.
// Masks are produced once by the asset pipeline and never modified afterwards.
type Mask [][]bool

// Width returns the number of columns.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows.
func (m Mask) Height() int {
	return len(m)
}

// Solid reports whether the pixel at (row, col) is occupied. Out of range is empty.
func (m Mask) Solid(row, col int) bool {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return false
	}
	return m[row][col]
}

// Count returns the number of solid pixels.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, solid := range row {
			if solid {
				n++
			}
		}
	}
	return n
}

// FromAlpha marks every fully opaque pixel inside r as solid.
func FromAlpha(img image.Image, r image.Rectangle) Mask {
	return build(img, r, func(c color.NRGBA) bool {
		return c.A == 0xff
	})
}

// FromMismatch marks every pixel inside r whose color differs from free as solid.
// Used for terrain, where only the exact road color is drivable.
func FromMismatch(img image.Image, r image.Rectangle, free color.NRGBA) Mask {
	return build(img, r, func(c color.NRGBA) bool {
		return c != free
	})
}

func build(img image.Image, r image.Rectangle, solid func(color.NRGBA) bool) Mask {
	m := make(Mask, r.Dy())
	for y := 0; y < r.Dy(); y++ {
		row := make([]bool, r.Dx())
		for x := 0; x < r.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			row[x] = solid(c)
		}
		m[y] = row
	}
	return m
}

// Downsample keeps every step-th row and column, e.g. a 64x64 mask with step 4
// becomes 16x16.
func (m Mask) Downsample(step int) Mask {
	if step <= 1 {
		return m
	}
	out := make(Mask, 0, (len(m)+step-1)/step)
	for y := 0; y < len(m); y += step {
		row := make([]bool, 0, (len(m[y])+step-1)/step)
		for x := 0; x < len(m[y]); x += step {
			row = append(row, m[y][x])
		}
		out = append(out, row)
	}
	return out
}
