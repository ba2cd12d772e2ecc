package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.Window.Width)
	assert.Equal(t, 512, cfg.Window.Height)
	assert.Equal(t, "Going Ballistic", cfg.Window.Title)
	assert.Equal(t, 40, cfg.Timing.TickMs)
	assert.Equal(t, 250, cfg.Timing.MaxElapsedMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.World.MinTraffic)
	assert.Equal(t, 4, cfg.World.SpawnAttempts)
	assert.Equal(t, 320.0, cfg.World.CullDistance)
	assert.Equal(t, 2.5, cfg.World.StartSpeed)
	assert.Len(t, cfg.Vehicles, 8)
	assert.Equal(t, VehicleConfig{Weight: 10, Probability: 1, MaxSpeed: 2.5, Sprite: "tank"}, cfg.Vehicles["tank"])
	assert.Equal(t, "level.png", cfg.Editor.ExportPath)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ballistic.json")
	data := `{
		"log": { "level": "debug", "pretty": false },
		"world": { "minTraffic": 6 },
		"vehicles": { "taxi": { "maxSpeed": 5.5 } }
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, 6, cfg.World.MinTraffic)
	assert.Equal(t, 4, cfg.World.SpawnAttempts)
	assert.Equal(t, 5.5, cfg.Vehicles["taxi"].MaxSpeed)
	assert.Equal(t, 4, cfg.Vehicles["taxi"].Weight)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ballistic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("levels:\n  start: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Levels.Start)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Window, cfg.Window)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BALLISTIC_LOG_LEVEL", "warn")
	t.Setenv("BALLISTIC_TIMING_TICKMS", "20")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Timing.TickMs)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Window.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Timing.MaxElapsedMs = 10
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	delete(cfg.Vehicles, "player")
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Vehicles["taxi"] = VehicleConfig{Weight: 0, MaxSpeed: 4}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Levels.Start = -1
	assert.Error(t, cfg.Validate())
}

func TestVehicleTypes(t *testing.T) {
	cfg := DefaultConfig()
	types := cfg.VehicleTypes()
	require.Len(t, types, 8)
	assert.Equal(t, "ambulance", types[0].Name)
	assert.Equal(t, "taxi", types[7].Name)
	assert.Equal(t, 4.5, types[4].MaxSpeed)

	cfg.Vehicles["taxi"] = VehicleConfig{Weight: 4, Probability: 3, MaxSpeed: 4, Sprite: "skull"}
	assert.Equal(t, "skull", cfg.SpriteName("taxi"))
	assert.Equal(t, "tank", cfg.SpriteName("tank"))
}
