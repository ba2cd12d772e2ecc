package sprite

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/ballistic/internal/core/mask"
)

func frames(n int) ([]image.Image, []mask.Mask) {
	imgs := make([]image.Image, n)
	masks := make([]mask.Mask, n)
	for i := range imgs {
		imgs[i] = image.NewNRGBA(image.Rect(0, 0, 16, 16))
		masks[i] = mask.Mask{{i%2 == 0}}
	}
	return imgs, masks
}

func TestNewAnimationRejectsEmpty(t *testing.T) {
	_, err := NewAnimation(nil, nil)
	assert.ErrorIs(t, err, ErrNoFrames)

	imgs, _ := frames(2)
	_, err = NewAnimation(imgs, nil)
	assert.Error(t, err)
}

func TestCursorWrapsOncePerCycle(t *testing.T) {
	imgs, masks := frames(3)
	anim, err := NewAnimation(imgs, masks)
	require.NoError(t, err)

	c := NewCursor(anim)
	assert.Equal(t, 0.0, c.Complete())
	assert.False(t, c.Step())
	assert.Equal(t, 0.5, c.Complete())
	assert.False(t, c.Step())
	assert.Equal(t, 1.0, c.Complete())
	assert.True(t, c.Step())
	assert.Equal(t, 0, c.Index())
	assert.True(t, c.Mask().Solid(0, 0))
}

func TestSingleFrameAlwaysWraps(t *testing.T) {
	imgs, masks := frames(1)
	anim, err := NewAnimation(imgs, masks)
	require.NoError(t, err)
	c := NewCursor(anim)
	assert.True(t, c.Step())
	assert.Equal(t, 1.0, c.Complete())
	assert.Equal(t, 16, anim.Width())
}

func TestSequence(t *testing.T) {
	imgs, masks := frames(3)
	anim, err := NewAnimation(imgs, masks)
	require.NoError(t, err)

	seq, err := anim.Sequence(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, seq.Len())
	assert.False(t, seq.Mask(0).Solid(0, 0))
	assert.True(t, seq.Mask(2).Solid(0, 0))

	_, err = anim.Sequence(5)
	assert.Error(t, err)
}
