// Package config reads the host configuration from the environment.
package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

type Config struct {
	// StorePath is the SQLite file holding achievements and the
	// leaderboard. Empty keeps everything in memory for this process.
	StorePath     string `env:"PUMPKIN_STORE_PATH"`
	StoreCapacity int    `env:"PUMPKIN_STORE_CAPACITY" envDefault:"5242880"`
	LogLevel      string `env:"PUMPKIN_LOG_LEVEL"      envDefault:"info"`
	LogPath       string `env:"PUMPKIN_LOG_PATH"       envDefault:"stderr"`
	PrefabsDir    string `env:"PUMPKIN_PREFABS_DIR"    envDefault:"prefabs"`
	// Seed fixes boss spawn corners. Zero seeds from the clock.
	Seed uint64 `env:"PUMPKIN_SEED"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Logger builds a production zap logger at the configured level. debug
// forces the debug level.
func (c Config) Logger(debug bool) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	if debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	loggerConfig.OutputPaths = []string{c.LogPath}
	return loggerConfig.Build()
}

// Rand returns a seeded source, or nil when no seed is set.
func (c Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed))
}
