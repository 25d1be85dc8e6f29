package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GameConfig describes one lottery game: draw DrawSize numbers out of a
// 1..PoolSize pool.
type GameConfig struct {
	Name        string `yaml:"name"`
	PoolSize    int    `yaml:"pool_size"`
	DrawSize    int    `yaml:"draw_size"`
	DefaultSets int    `yaml:"default_sets"`
}

type StorageConfig struct {
	Directory string `yaml:"directory"`
}

type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type SimulationConfig struct {
	BatchSize      int           `yaml:"batch_size"`
	MaxDraws       uint64        `yaml:"max_draws"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

type Config struct {
	Games      map[string]GameConfig `yaml:"games"`
	Storage    StorageConfig         `yaml:"storage"`
	NATS       NATSConfig            `yaml:"nats"`
	Simulation SimulationConfig      `yaml:"simulation"`
}

// Load reads a YAML config file, applies defaults and validates the game
// catalog.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Set defaults
	for name, game := range config.Games {
		if game.Name == "" {
			game.Name = name
		}
		if game.DefaultSets == 0 {
			game.DefaultSets = 1
		}
		if game.PoolSize < 1 || game.DrawSize < 1 || game.DrawSize > game.PoolSize {
			return nil, fmt.Errorf("game %s: need 1 <= draw_size <= pool_size, got pool=%d draw=%d",
				name, game.PoolSize, game.DrawSize)
		}
		config.Games[name] = game
	}
	if config.Storage.Directory == "" {
		config.Storage.Directory = "data/draws"
	}
	if config.Simulation.BatchSize == 0 {
		config.Simulation.BatchSize = 1000
	}
	if config.Simulation.MaxDraws == 0 {
		config.Simulation.MaxDraws = 100_000_000
	}
	if config.Simulation.ReportInterval == 0 {
		config.Simulation.ReportInterval = 5 * time.Second
	}

	return &config, nil
}

// GetGame looks a game up by its catalog name.
func (c *Config) GetGame(name string) (GameConfig, error) {
	game, ok := c.Games[name]
	if !ok {
		return GameConfig{}, fmt.Errorf("game %q not found in catalog", name)
	}
	return game, nil
}
