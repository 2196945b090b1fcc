package scheduling

import (
	"context"
	"log/slog"

	"github.com/studyloop/planwatch/internal/events"
)

// LedgerActivityHandler clears a plan's reminder record when the plan sees
// new activity, so the cooldown window restarts from the next idle episode
// rather than the previous reminder.
type LedgerActivityHandler struct {
	ledger *Ledger
	logger *slog.Logger
}

var _ events.ActivityHandler = (*LedgerActivityHandler)(nil)

// NewLedgerActivityHandler creates a handler bound to the given ledger.
// If log is nil, a default logger will be used.
func NewLedgerActivityHandler(ledger *Ledger, log *slog.Logger) *LedgerActivityHandler {
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &LedgerActivityHandler{
		ledger: ledger,
		logger: log.With(slog.String("component", "ledger_activity_handler")),
	}
}

// HandleActivity implements events.ActivityHandler.
func (h *LedgerActivityHandler) HandleActivity(ctx context.Context, event *events.PlanActivityEvent) error {
	h.ledger.Clear(event.PlanID)
	h.logger.Debug("cleared reminder record after activity",
		slog.String("plan_id", event.PlanID.String()))
	return nil
}
