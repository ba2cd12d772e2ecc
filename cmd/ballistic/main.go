package main

import (
	"flag"
	"os"

	"chosenoffset.com/ballistic/internal/assets"
	"chosenoffset.com/ballistic/internal/config"
	"chosenoffset.com/ballistic/internal/game"
	"chosenoffset.com/ballistic/internal/logging"
	ebitenrender "chosenoffset.com/ballistic/internal/render/ebiten"
	"chosenoffset.com/ballistic/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "ballistic.yaml", "path to a JSON or YAML config file")
	startLevel := flag.Int("level", -1, "level to start on, overrides levels.start")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// no logger yet, the config decides its level
		log := logging.New(logging.Options{Pretty: true})
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
	}
	if *startLevel >= 0 {
		cfg.Levels.Start = *startLevel
	}

	log := logging.New(logging.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	pack, err := assets.Load(assets.Embedded())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load assets")
	}
	log.Info().Int("levels", len(pack.Levels)).Int("tiles", pack.Tiles.Len()).Msg("Assets loaded")

	counters, err := telemetry.NewCounters()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create counters")
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	manager, err := game.NewManager(game.Options{
		Config:   cfg,
		Pack:     pack,
		Renderer: renderer,
		InputMgr: inputMgr,
		Log:      logging.Component(log, "game"),
		Counters: counters,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	engine.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.Info().Int("stage", manager.Stage()).Msg("Starting game")
	if err := engine.RunGame(manager); err != nil {
		log.Error().Err(err).Msg("Game exited with error")
		os.Exit(1)
	}
}
