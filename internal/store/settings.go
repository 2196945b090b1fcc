package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
)

// SettingsStore defines persistence for per-user reminder settings.
// At most one row exists per user; the unique constraint on user_id is what
// resolves concurrent lazy creations.
type SettingsStore interface {
	// GetByUserID retrieves the settings row for a user.
	// Returns ErrSettingsNotFound if the user has no settings yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// Create saves a new settings row.
	// Returns ErrSettingsExists if a row already exists for the user.
	// Returns validation errors from the domain UserSettings if data is invalid.
	Create(ctx context.Context, settings *domain.UserSettings) error

	// Update modifies an existing settings row.
	// Returns ErrSettingsNotFound if no row exists for the user.
	// Returns validation errors from the domain UserSettings if data is invalid.
	Update(ctx context.Context, settings *domain.UserSettings) error
}
