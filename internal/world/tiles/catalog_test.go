package tiles

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/ballistic/internal/world/level"
)

var grass = color.NRGBA{G: 224, A: 255}

func cell(fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, level.TileSize, level.TileSize))
	for y := 0; y < level.TileSize; y++ {
		for x := 0; x < level.TileSize; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	return img
}

// rawStrip builds road, three overlays with a single road pixel in the top-left
// corner and three solid backgrounds.
func rawStrip() []image.Image {
	raw := []image.Image{cell(Road)}
	for i := 0; i < 3; i++ {
		overlay := image.NewNRGBA(image.Rect(0, 0, level.TileSize, level.TileSize))
		overlay.SetNRGBA(0, 0, Road)
		raw = append(raw, overlay)
	}
	for i := 0; i < 3; i++ {
		raw = append(raw, cell(grass))
	}
	return raw
}

func TestAssemble(t *testing.T) {
	c, err := Assemble(rawStrip())
	require.NoError(t, err)
	assert.Equal(t, 40, c.Len())

	assert.Equal(t, 0, c.Cost(0))
	assert.False(t, c.Mask(0).Solid(5, 5))
	assert.Equal(t, level.TileSize*level.TileSize, c.Cost(1))

	// every combined tile has exactly one road pixel
	for i := 4; i < c.Len(); i++ {
		assert.Equal(t, level.TileSize*level.TileSize-1, c.Cost(i), "tile %d", i)
	}
}

func TestAssembleRotatesOverlays(t *testing.T) {
	c, err := Assemble(rawStrip())
	require.NoError(t, err)

	last := level.TileSize - 1
	corners := []struct{ row, col int }{
		{0, 0},       // no rotation
		{0, last},    // a quarter turn moves top-left to top-right
		{last, last}, // half turn
		{last, 0},    // three quarters
	}
	for rot, corner := range corners {
		m := c.Mask(Index(2, 3, rot))
		assert.False(t, m.Solid(corner.row, corner.col), "rotation %d", rot)
	}

	img := c.Image(Index(1, 1, 1)).(*image.NRGBA)
	assert.Equal(t, Road, img.NRGBAAt(last, 0))
	assert.Equal(t, grass, img.NRGBAAt(0, 0))
}

func TestUnknownTiles(t *testing.T) {
	c, err := Assemble(rawStrip())
	require.NoError(t, err)

	assert.Nil(t, c.Mask(40))
	assert.Nil(t, c.Mask(-1))
	assert.Nil(t, c.Image(99))
	assert.Equal(t, 0, c.Cost(200))
}

func TestAssembleRejectsBadStrips(t *testing.T) {
	_, err := Assemble(rawStrip()[:6])
	assert.Error(t, err)

	raw := rawStrip()
	raw[2] = image.NewNRGBA(image.Rect(0, 0, 16, 16))
	_, err = Assemble(raw)
	assert.Error(t, err)
}
