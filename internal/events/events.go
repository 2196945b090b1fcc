package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanActivityEvent signals that new activity was recorded against a plan.
type PlanActivityEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// PlanID is the plan that saw new activity
	PlanID uuid.UUID `json:"plan_id"`

	// OccurredAt is the timestamp when the event was created
	OccurredAt time.Time `json:"occurred_at"`
}

// NewPlanActivityEvent creates a new PlanActivityEvent for the given plan.
func NewPlanActivityEvent(planID uuid.UUID) *PlanActivityEvent {
	return &PlanActivityEvent{
		ID:         uuid.New(),
		PlanID:     planID,
		OccurredAt: time.Now().UTC(),
	}
}

// ActivityHandler defines an interface for components that react to plan
// activity. Handlers must tolerate being called concurrently.
type ActivityHandler interface {
	// HandleActivity processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleActivity(ctx context.Context, event *PlanActivityEvent) error
}

// ActivityEmitter defines an interface for components that publish plan
// activity without direct knowledge of the handlers.
type ActivityEmitter interface {
	// EmitActivity publishes the given event to all registered handlers.
	// Returns the first handler error encountered, if any.
	EmitActivity(ctx context.Context, event *PlanActivityEvent) error
}
