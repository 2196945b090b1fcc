// Package main implements the entry point for the planwatch server, the
// reminder engine that nudges learners back to study plans that have gone
// idle.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/studyloop/planwatch/internal/config"
	"github.com/studyloop/planwatch/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("planwatch failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("sweep_interval_seconds", cfg.Sweep.IntervalSeconds),
		slog.Bool("mail_enabled", cfg.Mail.Enabled()))

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	return app.Run(ctx)
}
