package mask

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 0, color.NRGBA{R: 10, A: 255})
	img.Set(2, 1, color.NRGBA{R: 10, A: 128})

	m := FromAlpha(img, img.Bounds())
	require.Equal(t, 2, m.Height())
	require.Equal(t, 4, m.Width())
	assert.True(t, m.Solid(0, 1))
	assert.False(t, m.Solid(1, 2), "half transparent pixels are not solid")
	assert.Equal(t, 1, m.Count())
}

func TestFromMismatchUsesSubRect(t *testing.T) {
	road := color.NRGBA{R: 151, G: 153, B: 150, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, road)
		}
	}
	img.Set(3, 1, color.NRGBA{G: 224, A: 255})

	m := FromMismatch(img, image.Rect(2, 0, 4, 2), road)
	assert.Equal(t, 2, m.Width())
	assert.True(t, m.Solid(1, 1))
	assert.Equal(t, 1, m.Count())
}

func TestDownsample(t *testing.T) {
	m := make(Mask, 8)
	for y := range m {
		m[y] = make([]bool, 8)
	}
	m[4][4] = true
	m[5][5] = true

	small := m.Downsample(4)
	assert.Equal(t, 2, small.Height())
	assert.Equal(t, 2, small.Width())
	assert.True(t, small.Solid(1, 1))
	assert.Equal(t, 1, small.Count())
}

func TestSolidOutOfRange(t *testing.T) {
	var m Mask
	assert.False(t, m.Solid(0, 0))
	assert.Equal(t, 0, m.Width())
}
