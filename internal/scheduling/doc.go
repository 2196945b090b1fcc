// Package scheduling implements the reminder engine: a recurring sweep that
// evaluates every active plan for idleness, and a debouncing dispatcher that
// sends at most one notification per cooldown window per plan.
//
// The only mutable state the engine owns is the Ledger, an in-memory record
// of the last reminder time per plan. Everything else is read from the
// stores on every sweep, so losing the ledger on restart costs at most one
// extra reminder and can never suppress an activity signal.
package scheduling
