// Package api contains the HTTP handlers for the reminder engine: reading
// and updating per-user reminder settings, recording plan check-ins, and
// triggering a sweep on demand.
package api
