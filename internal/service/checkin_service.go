package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/events"
	"github.com/studyloop/planwatch/internal/platform/logger"
	"github.com/studyloop/planwatch/internal/store"
)

// CheckInService records plan activity. Each successful check-in emits a
// PlanActivityEvent so interested components (the reminder ledger) learn
// about the activity without a direct dependency.
type CheckInService struct {
	plans    store.PlanStore
	checkIns store.CheckInStore
	emitter  events.ActivityEmitter
	logger   *slog.Logger
}

// NewCheckInService creates a new CheckInService.
// If log is nil, a default logger will be used.
func NewCheckInService(
	plans store.PlanStore,
	checkIns store.CheckInStore,
	emitter events.ActivityEmitter,
	log *slog.Logger,
) *CheckInService {
	if plans == nil {
		panic("plan store cannot be nil")
	}
	if checkIns == nil {
		panic("check-in store cannot be nil")
	}
	if emitter == nil {
		panic("activity emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CheckInService{
		plans:    plans,
		checkIns: checkIns,
		emitter:  emitter,
		logger:   log.With(slog.String("component", "checkin_service")),
	}
}

// RecordCheckIn saves a check-in against the plan and publishes the
// activity event. The check-in itself is authoritative: an event delivery
// failure is logged but does not fail the operation, since the next sweep
// reads activity from storage anyway.
func (s *CheckInService) RecordCheckIn(ctx context.Context, planID uuid.UUID, note string) (*domain.CheckIn, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("looking up plan %s: %w", planID, err)
	}

	checkIn, err := domain.NewCheckIn(plan.ID, note)
	if err != nil {
		return nil, err
	}

	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("saving check-in for plan %s: %w", planID, err)
	}

	if err := s.emitter.EmitActivity(ctx, events.NewPlanActivityEvent(plan.ID)); err != nil {
		log.Error("failed to deliver plan activity event",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()))
	}

	log.Info("check-in recorded",
		slog.String("plan_id", plan.ID.String()),
		slog.String("check_in_id", checkIn.ID.String()))
	return checkIn, nil
}
