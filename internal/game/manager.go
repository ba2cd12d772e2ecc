package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/ballistic/internal/assets"
	"chosenoffset.com/ballistic/internal/config"
	"chosenoffset.com/ballistic/internal/editor"
	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/sim"
	"chosenoffset.com/ballistic/internal/sim/vehicle"
	"chosenoffset.com/ballistic/internal/telemetry"
	"chosenoffset.com/ballistic/internal/ui/hud"
	"chosenoffset.com/ballistic/internal/world/level"
)

// countdownSeconds is how long the result of a level stays up.
const countdownSeconds = 3

// Options carries everything the manager needs to run.
type Options struct {
	Config   *config.Config
	Pack     *assets.Pack
	Renderer render.Renderer
	InputMgr render.InputManager
	Log      zerolog.Logger
	Counters *telemetry.Counters

	// Now defaults to time.Now.
	Now func() time.Time
	// Context is passed to the simulation. Defaults to context.Background.
	Context context.Context
}

// Manager handles the overall game state: title, play, countdown and editor.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Title        *Title
	Game         *Game
	Editor       *EditorScreen
	Renderer     render.Renderer
	InputMgr     render.InputManager

	log      zerolog.Logger
	cfg      *config.Config
	pack     *assets.Pack
	counters *telemetry.Counters
	rng      *rand.Rand
	factory  *vehicle.Factory
	scene    *Scene
	hud      *hud.HUD
	now      func() time.Time
	ctx      context.Context

	stage          int
	highscore      int
	countdownStart time.Time
}

// NewManager wires the vehicle table to the loaded assets and opens the title screen.
func NewManager(opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Pack == nil || len(opts.Pack.Levels) == 0 {
		return nil, fmt.Errorf("game requires at least one level")
	}

	sprites := make(map[string]string, len(cfg.Vehicles))
	for name := range cfg.Vehicles {
		sprites[name] = cfg.SpriteName(name)
	}
	anims, err := opts.Pack.VehicleAnimations(sprites)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vehicle sprites: %w", err)
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	factory, err := vehicle.NewFactory(cfg.VehicleTypes(), anims, opts.Pack.Explosion(), &vehicle.IDAllocator{}, rng, cfg.World.StartSpeed)
	if err != nil {
		return nil, fmt.Errorf("failed to build vehicle factory: %w", err)
	}

	counters := opts.Counters
	if counters == nil {
		if counters, err = telemetry.NewCounters(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Renderer:     opts.Renderer,
		InputMgr:     opts.InputMgr,
		log:          opts.Log,
		cfg:          cfg,
		pack:         opts.Pack,
		counters:     counters,
		rng:          rng,
		factory:      factory,
		scene:        NewScene(opts.Renderer, opts.Pack),
		hud:          hud.New(nil, opts.Renderer, cfg.Window.Width, cfg.Window.Height),
		now:          opts.Now,
		ctx:          opts.Context,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	m.ShowTitle()
	return m, nil
}

// Stage returns the index of the current or next level.
func (m *Manager) Stage() int {
	return m.stage
}

// Highscore returns the best score of the session.
func (m *Manager) Highscore() int {
	return m.highscore
}

func (m *Manager) newClock() *sim.Clock {
	return sim.NewClock(
		time.Duration(m.cfg.Timing.TickMs)*time.Millisecond,
		time.Duration(m.cfg.Timing.MaxElapsedMs)*time.Millisecond,
	)
}

// ShowTitle returns to the title screen. The run restarts at the configured level.
func (m *Manager) ShowTitle() {
	levels := m.pack.Levels
	m.stage = m.cfg.Levels.Start % len(levels)
	background := levels[m.rng.IntN(len(levels))]
	m.Title = NewTitle(m.InputMgr, m.scene, m.hud, m.newClock(), m.factory, background,
		m.highscore, m.ScreenWidth, m.ScreenHeight)
	m.Game = nil
	m.State = StateTitle
}

// Play starts stage with score carried over from the previous level.
func (m *Manager) Play(stage, score int) error {
	m.stage = stage
	return m.playLevel(m.pack.Levels[stage], score)
}

func (m *Manager) playLevel(l *level.Level, score int) error {
	settings := sim.Settings{
		MinTraffic:    m.cfg.World.MinTraffic,
		SpawnAttempts: m.cfg.World.SpawnAttempts,
		CullDistance:  m.cfg.World.CullDistance,
		ViewWidth:     float64(m.ScreenWidth),
		ViewHeight:    float64(m.ScreenHeight),
	}
	world, err := sim.New(sim.Params{
		Log:      m.log,
		Settings: settings,
		Level:    l,
		Factory:  m.factory,
		Counters: m.counters,
		Rand:     m.rng,
		Stage:    m.stage,
		Score:    score,
	})
	if err != nil {
		return fmt.Errorf("failed to start stage %d: %w", m.stage, err)
	}
	m.Game = NewGame(world, m.newClock(), m.InputMgr, m.scene, m.hud)
	m.State = StatePlaying
	return nil
}

// OpenEditor switches to the level editor on the current level.
func (m *Manager) OpenEditor() error {
	index := m.stage
	if m.Editor != nil {
		index = m.Editor.Editor.LevelIndex()
	}
	if m.Game != nil {
		index = m.Game.World.Stage()
	}
	ed, err := editor.New(m.log, m.pack.Tiles, m.pack.Tiles, m.pack.Levels, index)
	if err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	m.Editor = NewEditorScreen(m.log, ed, m.InputMgr, m.Renderer, m.scene, m.cfg.Editor.ExportPath, m.ScreenHeight)
	m.Game = nil
	m.State = StateEditor
	m.log.Info().Int("level", index).Msg("Opened editor")
	return nil
}

func (m *Manager) editorChord() bool {
	return m.InputMgr.IsKeyPressed(render.KeyShift) && m.InputMgr.IsKeyJustPressed(render.KeyE)
}

// Update updates the game state.
func (m *Manager) Update() error {
	now := m.now()
	switch m.State {
	case StateTitle:
		if m.editorChord() {
			return m.OpenEditor()
		}
		if m.Title.Update(now) {
			return m.Play(m.stage, 0)
		}
	case StatePlaying:
		if m.editorChord() {
			return m.OpenEditor()
		}
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.ShowTitle()
			return nil
		}
		if outcome := m.Game.Update(m.ctx, now); outcome != sim.Running {
			m.finish(outcome, now)
		}
	case StateCountdown:
		if now.Sub(m.countdownStart) >= countdownSeconds*time.Second {
			return m.next()
		}
	case StateEditor:
		switch m.Editor.Update() {
		case EditorQuit:
			m.ShowTitle()
		case EditorPlay:
			ed := m.Editor.Editor
			if ed.LevelIndex() != editor.NewLevel {
				m.stage = ed.LevelIndex()
			}
			return m.playLevel(ed.Level(), 0)
		}
	}
	return nil
}

func (m *Manager) finish(outcome sim.Outcome, now time.Time) {
	score := m.Game.World.Player().Score()
	if outcome == sim.GameOver {
		m.highscore = max(m.highscore, score)
	}
	m.countdownStart = now
	m.State = StateCountdown
	m.log.Info().
		Str("outcome", outcome.String()).
		Int("stage", m.stage).
		Int("score", score).
		Int("highscore", m.highscore).
		Msg("Stage finished")
}

// next moves on once the countdown is over.
func (m *Manager) next() error {
	if m.Game.Outcome != sim.LevelComplete {
		m.ShowTitle()
		return nil
	}
	score := m.Game.World.Player().Score()
	return m.Play((m.stage+1)%len(m.pack.Levels), score)
}

// Countdown returns the number shown while waiting for the next screen.
func (m *Manager) Countdown() int {
	elapsed := m.now().Sub(m.countdownStart)
	return max(1, countdownSeconds-int(elapsed/time.Second))
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case StateTitle:
		m.Title.Draw(screen)
	case StatePlaying:
		m.Game.Draw(screen)
	case StateCountdown:
		m.Game.Draw(screen)
		m.hud.DrawCountdown(screen, m.Countdown())
	case StateEditor:
		m.Editor.Draw(screen)
	}
}

// Layout keeps the logical screen at the configured size; ebiten scales it to the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
