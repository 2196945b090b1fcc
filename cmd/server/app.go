package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/studyloop/planwatch/internal/config"
	"github.com/studyloop/planwatch/internal/events"
	"github.com/studyloop/planwatch/internal/platform/mailer"
	"github.com/studyloop/planwatch/internal/platform/postgres"
	"github.com/studyloop/planwatch/internal/scheduling"
	"github.com/studyloop/planwatch/internal/service"
	"github.com/studyloop/planwatch/internal/store"
)

// application holds the shared application dependencies so wiring and
// shutdown stay in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	planStore     store.PlanStore
	checkInStore  store.CheckInStore
	settingsStore store.SettingsStore

	// Services
	settingsService *service.SettingsService
	checkInService  *service.CheckInService

	// Reminder engine
	ledger     *scheduling.Ledger
	dispatcher *scheduling.Dispatcher
	sweeper    *scheduling.Sweeper

	// Event system
	eventEmitter *events.InMemoryEmitter
}

// newApplication wires all dependencies. Configuration, logging, and the
// database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.planStore = postgres.NewPostgresPlanStore(db, logger)
	app.checkInStore = postgres.NewPostgresCheckInStore(db, logger)
	app.settingsStore = postgres.NewPostgresSettingsStore(db, logger)

	app.settingsService = service.NewSettingsService(app.settingsStore, app.userStore, logger)

	app.eventEmitter = events.NewInMemoryEmitter(logger)
	app.checkInService = service.NewCheckInService(
		app.planStore, app.checkInStore, app.eventEmitter, logger)

	transport, err := mailer.New(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing mail transport: %w", err)
	}

	app.ledger = scheduling.NewLedger()
	app.dispatcher = scheduling.NewDispatcher(
		app.settingsService, app.userStore, transport, app.ledger, logger)
	app.sweeper = scheduling.NewSweeper(
		app.planStore, app.checkInStore, app.settingsService, app.dispatcher,
		scheduling.SweeperConfig{
			Interval:    time.Duration(cfg.Sweep.IntervalSeconds) * time.Second,
			WorkerCount: cfg.Sweep.WorkerCount,
			PlanTimeout: time.Duration(cfg.Sweep.PlanTimeoutSeconds) * time.Second,
		}, logger)

	// Activity on a plan clears its reminder record.
	app.eventEmitter.RegisterHandler(scheduling.NewLedgerActivityHandler(app.ledger, logger))

	return app, nil
}

// Run starts the sweep scheduler and the HTTP server, blocking until
// shutdown.
func (app *application) Run(ctx context.Context) error {
	if err := app.sweeper.Start(); err != nil {
		return fmt.Errorf("starting sweep scheduler: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources during shutdown.
func (app *application) cleanup() {
	app.sweeper.Stop()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
