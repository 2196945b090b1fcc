package api

import (
	"errors"
	"net/http"

	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPlanNotFound),
		errors.Is(err, store.ErrSettingsNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrSettingsExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Raw error strings never reach clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrPlanNotFound):
		return "Plan not found"

	case errors.Is(err, store.ErrSettingsNotFound):
		return "Settings not found"

	case errors.Is(err, store.ErrSettingsExists):
		return "Settings already exist"

	case errors.Is(err, domain.ErrThresholdOutOfRange):
		return "Idle threshold must be between 1 and 10080 minutes"

	case errors.Is(err, domain.ErrCooldownOutOfRange):
		return "Reminder cooldown must be between 1 and 10080 minutes"

	case errors.Is(err, domain.ErrInvalidRange):
		return "Value out of permitted range"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
