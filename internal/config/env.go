// Package config loads RPG-Life settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings. Command-line flags override the DB path and
// time zone after parsing.
type Config struct {
	DBPath          string `env:"RPGLIFE_DB_PATH"`
	Timezone        string `env:"RPGLIFE_TIMEZONE" envDefault:"UTC"`
	LogLevel        string `env:"RPGLIFE_LOG_LEVEL" envDefault:"warn"`
	CharacterCurve  string `env:"RPGLIFE_CHARACTER_CURVE" envDefault:"character"`
	SkillCurve      string `env:"RPGLIFE_SKILL_CURVE" envDefault:"skill"`
	RequiredDailies int    `env:"RPGLIFE_REQUIRED_DAILIES" envDefault:"3"`
	SeedPath        string `env:"RPGLIFE_SEED_PATH"`
	OTelEndpoint    string `env:"RPGLIFE_OTEL_ENDPOINT"`
	OTelEnabled     bool   `env:"RPGLIFE_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RequiredDailies < 1 {
		return Config{}, fmt.Errorf("RPGLIFE_REQUIRED_DAILIES must be at least 1, got %d", cfg.RequiredDailies)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TracingEnabled reports whether spans should be exported.
func (c Config) TracingEnabled() bool {
	return c.OTelEnabled && strings.TrimSpace(c.OTelEndpoint) != ""
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
