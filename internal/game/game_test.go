package game

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/ballistic/internal/config"
	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/sim"
	"chosenoffset.com/ballistic/internal/sim/vehicle"
	"chosenoffset.com/ballistic/internal/ui/hud"
)

// newQuietGame starts a level without traffic.
func newQuietGame(t *testing.T) (*Game, *fakeInput, *fakeRenderer) {
	t.Helper()
	pack := testPack(t)
	cfg := config.DefaultConfig()
	rng := rand.New(rand.NewPCG(3, 5))

	sprites := make(map[string]string)
	for name := range cfg.Vehicles {
		sprites[name] = cfg.SpriteName(name)
	}
	anims, err := pack.VehicleAnimations(sprites)
	require.NoError(t, err)
	factory, err := vehicle.NewFactory(cfg.VehicleTypes(), anims, pack.Explosion(), &vehicle.IDAllocator{}, rng, 2.5)
	require.NoError(t, err)

	settings := sim.DefaultSettings()
	settings.MinTraffic = 0
	world, err := sim.New(sim.Params{
		Log:      zerolog.Nop(),
		Settings: settings,
		Level:    pack.Levels[0],
		Factory:  factory,
		Rand:     rng,
	})
	require.NoError(t, err)

	in := newFakeInput()
	r := &fakeRenderer{}
	g := NewGame(world, sim.NewClock(tick, 250*time.Millisecond), in, NewScene(r, pack), hud.New(nil, r, 512, 512))
	return g, in, r
}

func TestJumpFiresAfterRelease(t *testing.T) {
	g, in, _ := newQuietGame(t)
	ctx := context.Background()
	now := time.Unix(0, 0)
	g.Update(ctx, now)

	in.press(render.KeySpace)
	for i := 0; i < 5; i++ {
		now = now.Add(tick)
		require.Equal(t, sim.Running, g.Update(ctx, now))
		in.tick()
	}
	player := g.World.Player()
	require.Positive(t, player.Energy())
	assert.False(t, player.Airborne())

	// released between steps
	in.release(render.KeySpace)
	g.Update(ctx, now)
	in.tick()
	assert.False(t, player.Airborne())

	now = now.Add(tick)
	g.Update(ctx, now)
	assert.True(t, player.Airborne())
	assert.Zero(t, player.Energy())
}

func TestControlsSteerThePlayer(t *testing.T) {
	g, in, _ := newQuietGame(t)
	ctx := context.Background()
	now := time.Unix(0, 0)
	g.Update(ctx, now)

	player := g.World.Player()
	speed := player.Speed()
	in.press(render.KeyUp)
	now = now.Add(tick)
	g.Update(ctx, now)
	assert.Greater(t, player.Speed(), speed)

	in.release(render.KeyUp)
	in.press(render.KeyDown)
	speed = player.Speed()
	now = now.Add(tick)
	g.Update(ctx, now)
	assert.Less(t, player.Speed(), speed)
}

func TestFinishedGameStopsStepping(t *testing.T) {
	g, _, r := newQuietGame(t)
	ctx := context.Background()
	g.Outcome = sim.GameOver

	now := time.Unix(0, 0)
	g.Update(ctx, now)
	g.Update(ctx, now.Add(time.Second))
	assert.Zero(t, g.World.Frame())

	screen := r.NewImage(512, 512)
	g.Draw(screen)
	assert.True(t, r.drew("GAME OVER"))
	assert.Positive(t, screen.(*fakeImage).draws)
}
