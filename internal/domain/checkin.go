package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CheckIn validation errors.
var (
	ErrEmptyCheckInID     = errors.New("check-in ID cannot be empty")
	ErrEmptyCheckInPlanID = errors.New("check-in plan ID cannot be empty")
)

// CheckIn records one unit of activity against a plan. The timestamp of the
// most recent check-in is the baseline for idleness evaluation.
type CheckIn struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"plan_id"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCheckIn creates a new CheckIn for the given plan.
// Returns an error if validation fails.
func NewCheckIn(planID uuid.UUID, note string) (*CheckIn, error) {
	checkIn := &CheckIn{
		ID:        uuid.New(),
		PlanID:    planID,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}

	if err := checkIn.Validate(); err != nil {
		return nil, err
	}

	return checkIn, nil
}

// Validate checks if the CheckIn has valid data.
func (c *CheckIn) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCheckInID
	}

	if c.PlanID == uuid.Nil {
		return ErrEmptyCheckInPlanID
	}

	return nil
}
