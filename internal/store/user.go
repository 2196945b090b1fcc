package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
)

// UserStore defines the user directory lookup the reminder dispatcher uses
// to resolve a plan owner's contact address.
type UserStore interface {
	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
