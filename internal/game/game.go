package game

import (
	"context"
	"time"

	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/sim"
	"chosenoffset.com/ballistic/internal/ui/hud"
)

// Game is one level being played.
type Game struct {
	World    *sim.World
	Clock    *sim.Clock
	InputMgr render.InputManager
	Scene    *Scene
	HUD      *hud.HUD

	// Outcome of the last step
	Outcome sim.Outcome

	// the jump fires on release and must survive until the next step
	jumpQueued bool
}

// NewGame wraps a world with its frame clock.
func NewGame(world *sim.World, clock *sim.Clock, input render.InputManager, scene *Scene, h *hud.HUD) *Game {
	return &Game{
		World:    world,
		Clock:    clock,
		InputMgr: input,
		Scene:    scene,
		HUD:      h,
		Outcome:  sim.Running,
	}
}

// Update reads the controls and steps the world when the clock says so.
func (g *Game) Update(ctx context.Context, now time.Time) sim.Outcome {
	if g.InputMgr.IsKeyJustReleased(render.KeySpace) {
		g.jumpQueued = true
	}
	if g.Outcome != sim.Running || !g.Clock.Ready(now) {
		return g.Outcome
	}

	in := g.readInput()
	g.Outcome = g.World.Step(ctx, in)
	return g.Outcome
}

func (g *Game) readInput() sim.Input {
	in := sim.Input{
		Left:       g.InputMgr.IsKeyPressed(render.KeyLeft),
		Right:      g.InputMgr.IsKeyPressed(render.KeyRight),
		Accelerate: g.InputMgr.IsKeyPressed(render.KeyUp),
		Brake:      g.InputMgr.IsKeyPressed(render.KeyDown),
		Charge:     g.InputMgr.IsKeyPressed(render.KeySpace),
	}
	if !in.Charge && g.jumpQueued {
		in.Jump = true
		g.jumpQueued = false
	}
	return in
}

// Draw renders the road, the traffic, the player and the HUD.
func (g *Game) Draw(screen render.Image) {
	cam := g.World.Camera().Position()
	g.Scene.DrawLevel(screen, g.World.Level(), cam)

	traffic := g.World.Traffic()
	for i := len(traffic) - 1; i >= 0; i-- {
		g.Scene.DrawVehicle(screen, traffic[i], cam)
	}
	player := g.World.Player()
	g.Scene.DrawVehicle(screen, player, cam)

	g.HUD.Draw(screen, player)

	switch g.Outcome {
	case sim.GameOver:
		g.HUD.DrawBanner(screen, hud.GameOver)
	case sim.LevelComplete:
		g.HUD.DrawBanner(screen, hud.NextLevel)
	}
}

