// Package sim runs one level of the game: the player, the traffic around it and
// the camera following them.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/sim/collision"
	"chosenoffset.com/ballistic/internal/sim/traffic"
	"chosenoffset.com/ballistic/internal/sim/vehicle"
	"chosenoffset.com/ballistic/internal/telemetry"
	"chosenoffset.com/ballistic/internal/world/level"
)

// Outcome is the result of one simulation step.
type Outcome int

const (
	Running Outcome = iota
	LevelComplete
	GameOver
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case LevelComplete:
		return "level complete"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Input is the player's control state for one step.
type Input struct {
	Left       bool
	Right      bool
	Accelerate bool
	Brake      bool
	Charge     bool // held
	Jump       bool // charge released
}

// Settings tunes the traffic population and the view.
type Settings struct {
	MinTraffic    int
	SpawnAttempts int
	CullDistance  float64
	ViewWidth     float64
	ViewHeight    float64
}

// DefaultSettings matches the arcade game.
func DefaultSettings() Settings {
	return Settings{
		MinTraffic:    4,
		SpawnAttempts: 4,
		CullDistance:  320,
		ViewWidth:     512,
		ViewHeight:    512,
	}
}

// World is one running level.
type World struct {
	log      zerolog.Logger
	settings Settings
	level    *level.Level
	factory  *vehicle.Factory
	director *traffic.Director
	counters *telemetry.Counters
	rng      *rand.Rand

	camera  *Camera
	player  *vehicle.Vehicle
	traffic []*vehicle.Vehicle
	stage   int
	frame   int

	// vehicles already reported as exploding
	exploded map[int]bool
}

// Params holds everything needed to start a level.
type Params struct {
	Log      zerolog.Logger
	Settings Settings
	Level    *level.Level
	Factory  *vehicle.Factory
	Counters *telemetry.Counters
	Rand     *rand.Rand
	Stage    int
	Score    int // carried over from the previous level
}

// New starts a level with the player at the bottom edge, placed on free road.
func New(p Params) (*World, error) {
	if p.Level == nil {
		return nil, fmt.Errorf("world requires a level")
	}
	if p.Factory == nil {
		return nil, fmt.Errorf("world requires a vehicle factory")
	}
	if p.Rand == nil {
		return nil, fmt.Errorf("world requires a random source")
	}
	counters := p.Counters
	if counters == nil {
		var err error
		if counters, err = telemetry.NewCounters(); err != nil {
			return nil, fmt.Errorf("failed to create world counters: %w", err)
		}
	}

	w := &World{
		log:      p.Log,
		settings: p.Settings,
		level:    p.Level,
		factory:  p.Factory,
		director: traffic.NewDirector(p.Level),
		counters: counters,
		rng:      p.Rand,
		stage:    p.Stage,
		exploded: make(map[int]bool),
	}

	levelWidth := float64(p.Level.Width() * level.TileSize)
	camY := float64(p.Level.Height()*level.TileSize) - p.Settings.ViewHeight/2
	w.camera = NewCamera(0, camY, p.Settings.ViewWidth, p.Settings.ViewHeight, levelWidth)
	w.player = p.Factory.Player(geom.Vec{X: 0, Y: camY}, p.Score)
	if !w.Place(w.player, 0) {
		w.log.Warn().Int("stage", p.Stage).Msg("No free road for the player on the bottom row")
	}

	w.log.Info().
		Int("stage", p.Stage).
		Int("width", p.Level.Width()).
		Int("height", p.Level.Height()).
		Int("score", p.Score).
		Msg("Level started")
	return w, nil
}

// Level returns the level being played.
func (w *World) Level() *level.Level {
	return w.level
}

// Player returns the player's vehicle.
func (w *World) Player() *vehicle.Vehicle {
	return w.player
}

// Traffic returns the live traffic. The slice must not be modified.
func (w *World) Traffic() []*vehicle.Vehicle {
	return w.traffic
}

// Camera returns the view following the player.
func (w *World) Camera() *Camera {
	return w.camera
}

// Stage returns the index of the level being played.
func (w *World) Stage() int {
	return w.stage
}

// Frame returns the number of steps taken.
func (w *World) Frame() int {
	return w.frame
}

// Step advances the level by one frame.
func (w *World) Step(ctx context.Context, in Input) Outcome {
	if w.camera.Position().Y <= 0 {
		return LevelComplete
	}
	w.frame++
	w.counters.Frame(ctx, w.stage)
	w.camera.Follow(w.player.Position())

	w.spawn(ctx)

	active := make([]bool, len(w.traffic))
	for i, car := range w.traffic {
		active[i] = !car.Step()
		w.director.Drive(car)
	}
	playerActive := !w.player.Step()

	playerY := w.player.Position().Y
	for i := len(w.traffic) - 1; i >= 0; i-- {
		car := w.traffic[i]
		if active[i] && math.Abs(playerY-car.Position().Y) < w.settings.CullDistance {
			if w.level.Collides(car) {
				car.Explode()
			}
			continue
		}
		delete(w.exploded, car.ID())
		w.traffic = append(w.traffic[:i], w.traffic[i+1:]...)
	}

	if !playerActive {
		w.log.Info().
			Int("stage", w.stage).
			Int("score", w.player.Score()).
			Int("frame", w.frame).
			Msg("Game over")
		return GameOver
	}

	if w.level.Collides(w.player) {
		w.player.Explode()
	} else {
		w.control(in)
		n := collision.Resolve(w.traffic, w.player)
		w.counters.Collisions(ctx, n)
	}
	w.reportExplosions(ctx)

	if w.camera.Position().Y <= 0 {
		w.log.Info().
			Int("stage", w.stage).
			Int("score", w.player.Score()).
			Int("frame", w.frame).
			Msg("Level complete")
		return LevelComplete
	}
	return Running
}

func (w *World) control(in Input) {
	p := w.player
	if in.Left {
		p.Left()
	} else if in.Right {
		p.Right()
	}
	if in.Accelerate {
		p.Accelerate()
	} else if in.Brake {
		p.Brake()
	}
	if in.Charge {
		p.ChargeJump()
	} else if in.Jump {
		p.Jump()
	}
}

// spawn keeps the minimum amount of traffic around the player.
func (w *World) spawn(ctx context.Context) {
	pos := w.player.Position()
	attempts := w.settings.SpawnAttempts
	for len(w.traffic) < w.settings.MinTraffic && attempts > 0 {
		y := pos.Y + float64(w.rng.IntN(128)) - 100
		car := w.factory.RandomCar(geom.Vec{X: 0, Y: y})
		if !w.Place(car, pos.X) {
			attempts--
			continue
		}
		w.traffic = append(w.traffic, car)
		w.counters.Spawn(ctx, car.Name())
		w.log.Debug().
			Int("id", car.ID()).
			Str("vehicle", car.Name()).
			Float64("x", car.Position().X).
			Float64("y", car.Position().Y).
			Msg("Spawned traffic")
	}
}

// Place moves v horizontally to a random free spot on its row and reports whether
// one was found. Spots closer than 15 pixels to avoidX are skipped; an avoidX of 0
// disables that check.
func (w *World) Place(v *vehicle.Vehicle, avoidX float64) bool {
	offset := 4 + w.rng.IntN(32)
	limit := w.level.Width()*level.TileSize - vehicle.Width
	var candidates []int
	for x := offset; x < limit; x += 8 {
		candidates = append(candidates, x)
	}
	for i := len(candidates); i > 0; i-- {
		j := w.rng.IntN(i)
		candidates[i-1], candidates[j] = candidates[j], candidates[i-1]
	}

	y := v.Position().Y
	for _, x := range candidates {
		if avoidX != 0 && math.Abs(float64(x)-avoidX) < 15 {
			continue
		}
		v.MoveTo(geom.Vec{X: float64(x), Y: y})
		if !w.level.Collides(v) {
			return true
		}
	}
	return false
}

func (w *World) reportExplosions(ctx context.Context) {
	report := func(v *vehicle.Vehicle, cause string) {
		if v.State() == vehicle.Driving || w.exploded[v.ID()] {
			return
		}
		w.exploded[v.ID()] = true
		w.counters.Explosion(ctx, cause)
		w.log.Info().
			Int("id", v.ID()).
			Str("vehicle", v.Name()).
			Str("cause", cause).
			Msg("Vehicle exploded")
	}
	for _, car := range w.traffic {
		report(car, "traffic")
	}
	report(w.player, "player")
}
