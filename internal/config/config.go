// Package config provides the tunable settings of the game.
// Values come from defaults, an optional JSON or YAML file, and BALLISTIC_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"chosenoffset.com/ballistic/internal/sim/vehicle"
)

// EnvPrefix is prepended to environment overrides, e.g. BALLISTIC_LOG_LEVEL.
const EnvPrefix = "BALLISTIC"

// Config holds all game settings
type Config struct {
	Window   WindowConfig             `json:"window" mapstructure:"window"`
	Timing   TimingConfig             `json:"timing" mapstructure:"timing"`
	Log      LogConfig                `json:"log" mapstructure:"log"`
	World    WorldConfig              `json:"world" mapstructure:"world"`
	Vehicles map[string]VehicleConfig `json:"vehicles" mapstructure:"vehicles"`
	Levels   LevelsConfig             `json:"levels" mapstructure:"levels"`
	Editor   EditorConfig             `json:"editor" mapstructure:"editor"`
}

// WindowConfig controls the game window
type WindowConfig struct {
	Width  int     `json:"width" mapstructure:"width"`   // Logical canvas width in pixels
	Height int     `json:"height" mapstructure:"height"` // Logical canvas height in pixels
	Scale  float64 `json:"scale" mapstructure:"scale"`   // Window size multiplier
	Title  string  `json:"title" mapstructure:"title"`
}

// TimingConfig controls the fixed-step frame clock
type TimingConfig struct {
	TickMs       int `json:"tickMs" mapstructure:"tickMs"`             // Minimum elapsed time before a step
	MaxElapsedMs int `json:"maxElapsedMs" mapstructure:"maxElapsedMs"` // Elapsed time is capped to this
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"` // Human readable console output
}

// WorldConfig tunes traffic population
type WorldConfig struct {
	MinTraffic    int     `json:"minTraffic" mapstructure:"minTraffic"`       // Traffic kept around the player
	SpawnAttempts int     `json:"spawnAttempts" mapstructure:"spawnAttempts"` // Failed placements allowed per frame
	CullDistance  float64 `json:"cullDistance" mapstructure:"cullDistance"`   // Vertical distance at which traffic is removed
	StartSpeed    float64 `json:"startSpeed" mapstructure:"startSpeed"`       // Player speed at level start
	Seed          uint64  `json:"seed" mapstructure:"seed"`                   // Random seed, 0 picks one at startup
}

// VehicleConfig is one row of the vehicle table
type VehicleConfig struct {
	Weight      int     `json:"weight" mapstructure:"weight" jsonschema:"minimum=1"`
	Probability int     `json:"probability" mapstructure:"probability" jsonschema:"minimum=0"` // Relative spawn chance, 0 never spawns
	MaxSpeed    float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	Sprite      string  `json:"sprite" mapstructure:"sprite"` // Atlas sequence name, defaults to the vehicle name
}

// LevelsConfig selects the starting stage
type LevelsConfig struct {
	Start int `json:"start" mapstructure:"start"`
}

// EditorConfig controls the level editor
type EditorConfig struct {
	ExportPath string `json:"exportPath" mapstructure:"exportPath"` // PNG written by export and read by import
}

// DefaultConfig returns the settings of the original arcade game
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  512,
			Height: 512,
			Scale:  1.5,
			Title:  "Going Ballistic",
		},
		Timing: TimingConfig{
			TickMs:       40,
			MaxElapsedMs: 250,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		World: WorldConfig{
			MinTraffic:    4,
			SpawnAttempts: 4,
			CullDistance:  320,
			StartSpeed:    2.5,
		},
		Vehicles: map[string]VehicleConfig{
			"ambulance": {Weight: 3, Probability: 2, MaxSpeed: 6},
			"cleaner":   {Weight: 7, Probability: 2, MaxSpeed: 3},
			"player":    {Weight: 3, Probability: 0, MaxSpeed: 8},
			"racer":     {Weight: 2, Probability: 3, MaxSpeed: 7},
			"skinny":    {Weight: 1, Probability: 5, MaxSpeed: 4.5},
			"skull":     {Weight: 5, Probability: 2, MaxSpeed: 5},
			"tank":      {Weight: 10, Probability: 1, MaxSpeed: 2.5},
			"taxi":      {Weight: 4, Probability: 3, MaxSpeed: 4},
		},
		Editor: EditorConfig{
			ExportPath: "level.png",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.scale", d.Window.Scale)
	v.SetDefault("window.title", d.Window.Title)

	v.SetDefault("timing.tickMs", d.Timing.TickMs)
	v.SetDefault("timing.maxElapsedMs", d.Timing.MaxElapsedMs)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)

	v.SetDefault("world.minTraffic", d.World.MinTraffic)
	v.SetDefault("world.spawnAttempts", d.World.SpawnAttempts)
	v.SetDefault("world.cullDistance", d.World.CullDistance)
	v.SetDefault("world.startSpeed", d.World.StartSpeed)
	v.SetDefault("world.seed", d.World.Seed)

	for name, vc := range d.Vehicles {
		v.SetDefault("vehicles."+name+".weight", vc.Weight)
		v.SetDefault("vehicles."+name+".probability", vc.Probability)
		v.SetDefault("vehicles."+name+".maxSpeed", vc.MaxSpeed)
		v.SetDefault("vehicles."+name+".sprite", name)
	}

	v.SetDefault("levels.start", d.Levels.Start)

	v.SetDefault("editor.exportPath", d.Editor.ExportPath)
}

// Load reads configuration from path (JSON or YAML by extension) on top of the
// defaults. An empty path or a missing file yields the defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Timing.TickMs <= 0 || c.Timing.MaxElapsedMs < c.Timing.TickMs {
		return fmt.Errorf("invalid timing: tick %dms, max elapsed %dms", c.Timing.TickMs, c.Timing.MaxElapsedMs)
	}
	if c.World.MinTraffic < 0 || c.World.SpawnAttempts < 0 {
		return fmt.Errorf("invalid traffic settings: min %d, attempts %d", c.World.MinTraffic, c.World.SpawnAttempts)
	}
	if c.Levels.Start < 0 {
		return fmt.Errorf("invalid start level: %d", c.Levels.Start)
	}
	if _, ok := c.Vehicles[vehicle.PlayerName]; !ok {
		return fmt.Errorf("vehicle table has no %s entry", vehicle.PlayerName)
	}
	for name, vc := range c.Vehicles {
		if vc.Weight <= 0 || vc.MaxSpeed <= 0 || vc.Probability < 0 {
			return fmt.Errorf("invalid vehicle %s: weight %d, probability %d, max speed %v",
				name, vc.Weight, vc.Probability, vc.MaxSpeed)
		}
	}
	return nil
}

// VehicleTypes returns the vehicle table sorted by name
func (c *Config) VehicleTypes() []vehicle.Type {
	types := make([]vehicle.Type, 0, len(c.Vehicles))
	for name, vc := range c.Vehicles {
		types = append(types, vehicle.Type{
			Name:        name,
			Weight:      vc.Weight,
			Probability: vc.Probability,
			MaxSpeed:    vc.MaxSpeed,
		})
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types
}

// SpriteName returns the atlas sequence used for a vehicle
func (c *Config) SpriteName(name string) string {
	if vc, ok := c.Vehicles[name]; ok && vc.Sprite != "" {
		return vc.Sprite
	}
	return name
}
