package assets

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	p, err := Load(Embedded())
	require.NoError(t, err)

	assert.Equal(t, 40, p.Tiles.Len())
	assert.Equal(t, 0, p.Tiles.Cost(0), "road tile is free")
	assert.Len(t, p.Levels, 5)
	assert.Equal(t, 16, p.Levels[0].Width())
	assert.Equal(t, 99, p.Levels[0].Height())

	for _, name := range []string{"skull", "taxi", "ambulance", "racer", "skinny", "tank", "cleaner", "player"} {
		anim, err := p.Animation(name)
		require.NoError(t, err, name)
		m := anim.Mask(0)
		assert.Equal(t, 16, m.Width(), name)
		assert.Equal(t, 16, m.Height(), name)
		assert.Positive(t, m.Count(), name)
	}

	player, err := p.Animation("player")
	require.NoError(t, err)
	assert.Equal(t, 4, player.Len())
	assert.Equal(t, 64, player.Width())

	assert.Equal(t, 8, p.Explosion().Len())
	assert.Nil(t, p.Explosion().Mask(0))
}

func TestVehicleAnimations(t *testing.T) {
	p, err := Load(Embedded())
	require.NoError(t, err)

	anims, err := p.VehicleAnimations(map[string]string{"taxi": "taxi", "bus": "skull"})
	require.NoError(t, err)
	assert.Len(t, anims, 2)

	_, err = p.VehicleAnimations(map[string]string{"bus": "doubledecker"})
	assert.ErrorIs(t, err, ErrMissingAsset)
}

func TestLoadMissingLevels(t *testing.T) {
	src := Embedded()
	fsys := fstest.MapFS{}
	for _, name := range []string{"atlases/elements.json", "atlases/player.json", "atlases/tiles.json",
		"elements.png", "player.png", "tiles.png"} {
		data, err := fs.ReadFile(src, name)
		require.NoError(t, err)
		fsys[name] = &fstest.MapFile{Data: data}
	}

	_, err := Load(fsys)
	assert.ErrorIs(t, err, ErrMissingAsset)

	delete(fsys, "atlases/tiles.json")
	_, err = Load(fsys)
	assert.ErrorIs(t, err, ErrMissingAsset)
}
