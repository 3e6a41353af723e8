package root

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"time"

	"rpglife/internal/config"
	"rpglife/internal/engine"
	"rpglife/internal/storage"
	"rpglife/internal/telemetry"
)

// app is everything one command invocation needs. It is built per command and
// closed when the command returns.
type app struct {
	cfg   config.Config
	log   *slog.Logger
	svc   *engine.Service
	close func()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(flagDBPath) != "" {
		cfg.DBPath = flagDBPath
	}
	if strings.TrimSpace(flagTimezone) != "" {
		cfg.Timezone = flagTimezone
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.LogLevel)

	skillCurve, err := engine.ParseCurve(cfg.SkillCurve)
	if err != nil {
		return nil, err
	}
	charCurve, err := engine.ParseCurve(cfg.CharacterCurve)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.TracingEnabled())
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}

	db, closeDB, err := openDB(ctx, cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	svc := engine.NewService(db,
		engine.WithCurves(engine.Curves{Skill: skillCurve, Character: charCurve}),
		engine.WithLocation(engine.LoadLocation(cfg.Timezone)),
		engine.WithRequiredDailies(cfg.RequiredDailies),
		engine.WithLogger(logger),
	)
	return &app{
		cfg: cfg,
		log: logger,
		svc: svc,
		close: func() {
			closeDB()
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				logger.Warn("flush traces", "error", err)
			}
		},
	}, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.svc, a.close, nil
}
