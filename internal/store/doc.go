// Package store defines the persistence interfaces consumed by the reminder
// engine and the API surface, together with the common error taxonomy all
// implementations share. Concrete implementations live under
// internal/platform.
package store
