package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRange is returned when a minute-based setting falls outside
	// the permitted [MinReminderMinutes, MaxReminderMinutes] range. Callers
	// of the settings update operation receive this synchronously.
	ErrInvalidRange = errors.New("value out of range")
)
