package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
)

// CheckInStore defines persistence for plan check-ins. Its LastCheckInAt
// query is the activity probe the idleness sweep runs for every plan.
type CheckInStore interface {
	// Create saves a new check-in to the store.
	// Returns validation errors from the domain CheckIn if data is invalid.
	// Returns ErrInvalidEntity if the plan ID doesn't exist.
	Create(ctx context.Context, checkIn *domain.CheckIn) error

	// LastCheckInAt returns the timestamp of the most recent check-in
	// recorded for the plan. Returns ErrNoCheckIns if the plan has never
	// seen a check-in; callers then use the plan's creation time as the
	// activity baseline.
	LastCheckInAt(ctx context.Context, planID uuid.UUID) (time.Time, error)
}
