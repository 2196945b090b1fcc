package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PlanStatus represents the lifecycle state of a study plan.
type PlanStatus string

// Valid plan statuses. Only active plans are considered by the reminder
// sweep; completed and abandoned plans are never nudged.
const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusAbandoned PlanStatus = "abandoned"
)

// Plan validation errors.
var (
	ErrEmptyPlanID     = errors.New("plan ID cannot be empty")
	ErrEmptyPlanUserID = errors.New("plan user ID cannot be empty")
	ErrEmptyPlanTitle  = errors.New("plan title cannot be empty")
	ErrInvalidStatus   = errors.New("invalid plan status")
)

// Plan represents a learner's study plan. The reminder engine treats plans
// as read-only: their lifecycle is owned by the plan management surface.
type Plan struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Status    PlanStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewPlan creates an active Plan owned by the given user.
// Returns an error if validation fails.
func NewPlan(userID uuid.UUID, title string) (*Plan, error) {
	now := time.Now().UTC()
	plan := &Plan{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Status:    PlanStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// Validate checks if the Plan has valid data.
// Returns an error if any field fails validation.
func (p *Plan) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPlanID
	}

	if p.UserID == uuid.Nil {
		return ErrEmptyPlanUserID
	}

	if p.Title == "" {
		return ErrEmptyPlanTitle
	}

	switch p.Status {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusAbandoned:
		return nil
	default:
		return ErrInvalidStatus
	}
}

// IsActive reports whether the plan is eligible for idleness sweeps.
func (p *Plan) IsActive() bool {
	return p.Status == PlanStatusActive
}
