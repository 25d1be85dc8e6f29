package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
games:
  lotto649:
    pool_size: 49
    draw_size: 6
  fiftytwo:
    name: "52 pick 6"
    pool_size: 52
    draw_size: 6
    default_sets: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	game, err := cfg.GetGame("lotto649")
	require.NoError(t, err)
	assert.Equal(t, "lotto649", game.Name)
	assert.Equal(t, 1, game.DefaultSets)

	game, err = cfg.GetGame("fiftytwo")
	require.NoError(t, err)
	assert.Equal(t, "52 pick 6", game.Name)
	assert.Equal(t, 5, game.DefaultSets)

	assert.Equal(t, "data/draws", cfg.Storage.Directory)
	assert.Equal(t, 1000, cfg.Simulation.BatchSize)
	assert.Equal(t, uint64(100_000_000), cfg.Simulation.MaxDraws)
	assert.Equal(t, 5*time.Second, cfg.Simulation.ReportInterval)
}

func TestLoadExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
games:
  mini:
    pool_size: 10
    draw_size: 3
storage:
  directory: /tmp/draws
nats:
  url: nats://127.0.0.1:4222
  subject_prefix: draws
simulation:
  batch_size: 250
  max_draws: 5000
  report_interval: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/draws", cfg.Storage.Directory)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, 250, cfg.Simulation.BatchSize)
	assert.Equal(t, uint64(5000), cfg.Simulation.MaxDraws)
	assert.Equal(t, time.Second, cfg.Simulation.ReportInterval)
}

func TestLoadRejectsInvalidGame(t *testing.T) {
	path := writeConfig(t, `
games:
  broken:
    pool_size: 6
    draw_size: 10
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestGetGameUnknown(t *testing.T) {
	cfg := &Config{Games: map[string]GameConfig{}}
	_, err := cfg.GetGame("nope")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
}
