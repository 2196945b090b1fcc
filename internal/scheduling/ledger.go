package scheduling

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger records the last time a reminder was sent for each plan. It is
// process-lifetime only and safe for concurrent use: the sweep records sends
// while the activity-recording path clears entries, and for any single key
// each read sees the most recently completed write.
type Ledger struct {
	mu       sync.Mutex
	lastSent map[uuid.UUID]time.Time
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		lastSent: make(map[uuid.UUID]time.Time),
	}
}

// LastSent returns the time of the last recorded reminder for the plan and
// whether one exists.
func (l *Ledger) LastSent(planID uuid.UUID) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	at, ok := l.lastSent[planID]
	return at, ok
}

// RecordSent stores the time of a successful reminder send for the plan.
func (l *Ledger) RecordSent(planID uuid.UUID, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSent[planID] = at
}

// Clear removes the plan's entry, making it immediately eligible for a
// fresh reminder cycle. Called when new activity arrives for the plan.
func (l *Ledger) Clear(planID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.lastSent, planID)
}

// Len returns the number of plans with a recorded reminder.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastSent)
}
