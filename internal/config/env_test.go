package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"RPGLIFE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("RPGLIFE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"RPGLIFE_DB_PATH", "RPGLIFE_TIMEZONE", "RPGLIFE_LOG_LEVEL", "RPGLIFE_CHARACTER_CURVE",
		"RPGLIFE_SKILL_CURVE", "RPGLIFE_REQUIRED_DAILIES", "RPGLIFE_OTEL_ENDPOINT", "RPGLIFE_OTEL_ENABLED",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timezone != "UTC" || cfg.LogLevel != "warn" || cfg.RequiredDailies != 3 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.CharacterCurve != "character" || cfg.SkillCurve != "skill" {
		t.Fatalf("curves=%q,%q", cfg.CharacterCurve, cfg.SkillCurve)
	}
	if cfg.TracingEnabled() {
		t.Fatalf("tracing should be off without an endpoint")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RPGLIFE_DB_PATH", "/tmp/x.db")
	t.Setenv("RPGLIFE_REQUIRED_DAILIES", "5")
	t.Setenv("RPGLIFE_LOG_LEVEL", "debug")
	t.Setenv("RPGLIFE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("RPGLIFE_OTEL_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.RequiredDailies != 5 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.TracingEnabled() {
		t.Fatalf("tracing should respect RPGLIFE_OTEL_ENABLED=false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("RPGLIFE_REQUIRED_DAILIES", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero required dailies")
	}
	t.Setenv("RPGLIFE_REQUIRED_DAILIES", "3")
	t.Setenv("RPGLIFE_LOG_LEVEL", "chatty")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn, " error ": slog.LevelError}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q)=%v,%v want %v", in, got, err, want)
		}
	}
}
