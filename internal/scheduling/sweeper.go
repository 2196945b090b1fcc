package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/domain/idle"
	"github.com/studyloop/planwatch/internal/platform/logger"
	"github.com/studyloop/planwatch/internal/store"
)

// SweeperConfig holds configuration for the sweep loop.
type SweeperConfig struct {
	// Interval is the fixed rate of the sweep timer.
	Interval time.Duration

	// WorkerCount determines how many concurrent workers evaluate plans
	// within a single sweep pass.
	WorkerCount int

	// PlanTimeout bounds the storage and transport calls made while
	// processing one plan.
	PlanTimeout time.Duration
}

// DefaultSweeperConfig returns a SweeperConfig with reasonable defaults.
// The 60 second interval stays finer than the minimum permitted cooldown of
// one minute, so even the shortest user-configured cooldowns are honored
// with bounded lag.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Interval:    60 * time.Second,
		WorkerCount: 4,
		PlanTimeout: 5 * time.Second,
	}
}

// Sweeper runs the recurring idle-plan sweep. On each tick it fetches all
// active plans and pushes each through the evaluate/dispatch pipeline,
// isolating per-plan failures. Runs never overlap: a tick arriving while a
// sweep is still in progress is skipped, and a manual trigger waits its
// turn.
type Sweeper struct {
	plans      store.PlanStore
	checkIns   store.CheckInStore
	settings   SettingsResolver
	dispatcher *Dispatcher
	config     SweeperConfig
	logger     *slog.Logger

	cron  *cron.Cron
	runMu sync.Mutex

	// now is the clock, injectable for tests.
	now func() time.Time
}

// NewSweeper creates a Sweeper. Zero config fields fall back to defaults.
// If log is nil, a default logger will be used.
func NewSweeper(
	plans store.PlanStore,
	checkIns store.CheckInStore,
	settings SettingsResolver,
	dispatcher *Dispatcher,
	config SweeperConfig,
	log *slog.Logger,
) *Sweeper {
	if plans == nil {
		panic("plan store cannot be nil")
	}
	if checkIns == nil {
		panic("check-in store cannot be nil")
	}
	if settings == nil {
		panic("settings resolver cannot be nil")
	}
	if dispatcher == nil {
		panic("dispatcher cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	defaults := DefaultSweeperConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = defaults.WorkerCount
	}
	if config.PlanTimeout <= 0 {
		config.PlanTimeout = defaults.PlanTimeout
	}

	return &Sweeper{
		plans:      plans,
		checkIns:   checkIns,
		settings:   settings,
		dispatcher: dispatcher,
		config:     config,
		logger:     log.With(slog.String("component", "sweeper")),
		now:        time.Now,
	}
}

// Start begins the recurring sweep timer. It returns immediately; sweeps
// run on the cron scheduler's goroutine.
func (s *Sweeper) Start() error {
	if s.cron != nil {
		return fmt.Errorf("sweeper already started")
	}

	s.cron = cron.New()
	s.cron.Schedule(cron.Every(s.config.Interval), cron.FuncJob(s.tick))
	s.cron.Start()

	s.logger.Info("sweep scheduler started",
		slog.Duration("interval", s.config.Interval),
		slog.Int("worker_count", s.config.WorkerCount))
	return nil
}

// Stop halts the timer and waits for any in-flight sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		// The returned context completes when running cron jobs are done.
		<-s.cron.Stop().Done()
		s.cron = nil
	}

	// Drain a sweep started through RunNow, if any.
	s.runMu.Lock()
	s.runMu.Unlock() //nolint:staticcheck // acquire-release is the drain

	s.logger.Info("sweep scheduler stopped")
}

// tick is the timer entry point. If the previous sweep is still running the
// tick is skipped, so two sweeps never run concurrently.
func (s *Sweeper) tick() {
	if !s.runMu.TryLock() {
		s.logger.Info("previous sweep still running, skipping tick")
		return
	}
	defer s.runMu.Unlock()

	if _, err := s.sweep(context.Background()); err != nil {
		s.logger.Error("sweep abandoned", slog.String("error", err.Error()))
	}
}

// RunNow performs one synchronous sweep pass, for operational and test
// tooling. If a timer-triggered sweep is in progress, RunNow waits for it
// to finish before running. Returns the number of plans processed, or an
// error only when the active-plan fetch itself fails.
func (s *Sweeper) RunNow(ctx context.Context) (int, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.sweep(ctx)
}

// sweep runs one full pass. Caller must hold runMu.
func (s *Sweeper) sweep(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	start := s.now()

	fetchCtx, cancel := context.WithTimeout(ctx, s.config.PlanTimeout)
	plans, err := s.plans.ListActive(fetchCtx)
	cancel()
	if err != nil {
		log.Error("failed to fetch active plans, abandoning sweep",
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("listing active plans: %w", err)
	}

	if len(plans) == 0 {
		log.Debug("no active plans to sweep")
		return 0, nil
	}

	workers := s.config.WorkerCount
	if workers > len(plans) {
		workers = len(plans)
	}

	jobs := make(chan *domain.Plan)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for plan := range jobs {
				s.processPlan(ctx, plan)
			}
		}()
	}

	for _, plan := range plans {
		jobs <- plan
	}
	close(jobs)
	wg.Wait()

	log.Info("sweep completed",
		slog.Int("plans_processed", len(plans)),
		slog.Duration("duration", s.now().Sub(start)))
	return len(plans), nil
}

// processPlan runs the evaluate/dispatch pipeline for a single plan. All
// failures are logged and contained here so one plan can never block the
// rest of the sweep.
func (s *Sweeper) processPlan(ctx context.Context, plan *domain.Plan) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while processing plan",
				slog.String("plan_id", plan.ID.String()),
				slog.Any("panic", r))
		}
	}()

	planCtx, cancel := context.WithTimeout(ctx, s.config.PlanTimeout)
	defer cancel()

	now := s.now()

	baseline := plan.CreatedAt
	lastCheckIn, err := s.checkIns.LastCheckInAt(planCtx, plan.ID)
	switch {
	case err == nil:
		baseline = lastCheckIn
	case store.IsNotFoundError(err):
		// Never checked in: the plan's creation time is the baseline.
	default:
		log.Error("failed to probe last activity",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
		return
	}

	settings, err := s.settings.Resolve(planCtx, plan.UserID)
	if err != nil {
		log.Error("failed to resolve idle threshold",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()),
			slog.String("user_id", plan.UserID.String()))
		return
	}

	eval := idle.Evaluate(now, baseline, settings.IdleThresholdMinutes)
	if !eval.Idle {
		log.Debug("plan is not idle",
			slog.String("plan_id", plan.ID.String()),
			slog.Int64("elapsed_minutes", eval.ElapsedMinutes),
			slog.Int("threshold_minutes", settings.IdleThresholdMinutes))
		return
	}

	s.dispatcher.MaybeNotify(planCtx, plan, eval.ElapsedMinutes, now)
}
