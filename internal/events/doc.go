// Package events provides a minimal in-process event system that decouples
// the activity-recording path from the reminder engine: when a check-in is
// recorded, a PlanActivityEvent fans out to registered handlers (notably the
// one that clears the plan's reminder ledger entry).
package events
