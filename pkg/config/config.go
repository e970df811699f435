// Package config loads process configuration from the environment, the same
// way the rest of this codebase's services do: a .env file is loaded on a
// best-effort basis, then a typed struct is populated from env vars. Only
// the bootstrap binary uses this package; the core never reads the
// environment itself (SPEC_FULL.md §6).
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads configuration into cfg, panicking on failure.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()
	env.Must(cfg, env.Parse(cfg))
}

// Load loads configuration into cfg, returning any parse error.
func Load[T any](cfg T) error {
	_ = godotenv.Load()
	return env.Parse(cfg)
}

// Config holds process-level configuration for the order book bootstrap.
type Config struct {
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	DayExpiryConfig `envPrefix:"DAY_EXPIRY_"`
}

// DayExpiryConfig is the env-sourced shape of the day-expiry scheduler
// policy described in SPEC_FULL.md §4.5.
type DayExpiryConfig struct {
	CutoffLocalTime string `env:"CUTOFF_LOCAL_TIME" envDefault:"16:00"`
	GuardMS         int    `env:"GUARD_MS" envDefault:"100"`
	Timezone        string `env:"TIMEZONE" envDefault:"local"`
}
