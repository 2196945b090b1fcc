package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
)

// PlanStore defines read access to study plans. The reminder engine never
// mutates plans; their lifecycle belongs to the plan management surface.
type PlanStore interface {
	// GetByID retrieves a plan by its unique ID.
	// Returns ErrPlanNotFound if the plan does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)

	// ListActive retrieves all plans with active status, across all users.
	// This is the working set of one reminder sweep.
	ListActive(ctx context.Context) ([]*domain.Plan, error)
}
