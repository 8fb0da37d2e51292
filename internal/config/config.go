package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/strategy"
)

// #region config
// Config is the runtime configuration shared by the binaries.
type Config struct {
	Strategy    string
	Seed        int64 // 0 picks a time-based seed
	DBPath      string
	MaxRounds   int
	TargetScore int
}

// Default returns the built-in configuration.
func Default() Config {
	d := engine.DefaultConfig()
	return Config{
		Strategy:    strategy.FirstOrderName,
		DBPath:      "",
		MaxRounds:   d.MaxRounds,
		TargetScore: d.TargetScore,
	}
}

// #endregion config

// #region load
// Load reads an optional .env file then overlays RPS_* environment
// variables on the defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Strategy = envOr("RPS_STRATEGY", cfg.Strategy)
	cfg.DBPath = envOr("RPS_DB", cfg.DBPath)

	var err error
	if cfg.Seed, err = envInt64("RPS_SEED", cfg.Seed); err != nil {
		return cfg, err
	}
	if cfg.MaxRounds, err = envInt("RPS_MAX_ROUNDS", cfg.MaxRounds); err != nil {
		return cfg, err
	}
	if cfg.TargetScore, err = envInt("RPS_TARGET_SCORE", cfg.TargetScore); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// #endregion load

// #region validate
// Validate rejects unknown strategies and non-positive limits.
func (c Config) Validate() error {
	if _, err := strategy.ByName(c.Strategy); err != nil {
		return err
	}
	if c.MaxRounds <= 0 {
		return errors.Errorf("max rounds must be positive, got %d", c.MaxRounds)
	}
	if c.TargetScore <= 0 {
		return errors.Errorf("target score must be positive, got %d", c.TargetScore)
	}
	return nil
}

// ResolveSeed returns Seed, or a time-based seed when Seed is 0.
func (c Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// EngineConfig returns the termination limits for the engine.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		MaxRounds:   c.MaxRounds,
		TargetScore: c.TargetScore,
	}
}

// #endregion validate

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback, errors.Wrapf(err, "parse %s", key)
	}
	return n, nil
}

// #endregion helpers
