package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/platform/logger"
	"github.com/studyloop/planwatch/internal/store"
)

// SettingsUpdate carries a partial settings change. Nil fields keep their
// current value.
type SettingsUpdate struct {
	IdleThresholdMinutes    *int
	ReminderCooldownMinutes *int
}

// SettingsService manages per-user reminder settings. Reads are
// lazy-creating: the first access for a user materializes a row with the
// default threshold and cooldown, so every user always resolves to valid
// settings.
type SettingsService struct {
	settings store.SettingsStore
	users    store.UserStore
	logger   *slog.Logger
}

// NewSettingsService creates a new SettingsService.
// If log is nil, a default logger will be used.
func NewSettingsService(settings store.SettingsStore, users store.UserStore, log *slog.Logger) *SettingsService {
	if settings == nil {
		panic("settings store cannot be nil")
	}
	if users == nil {
		panic("user store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SettingsService{
		settings: settings,
		users:    users,
		logger:   log.With(slog.String("component", "settings_service")),
	}
}

// Resolve returns the user's settings, creating a default row on first
// access. When two callers race to create the row, the unique constraint
// on user_id picks a winner and the loser re-reads the winner's row.
func (s *SettingsService) Resolve(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, store.ErrSettingsNotFound) {
		return nil, fmt.Errorf("getting settings for user %s: %w", userID, err)
	}

	created, err := domain.NewUserSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("building default settings: %w", err)
	}

	err = s.settings.Create(ctx, created)
	if err == nil {
		log.Info("created default reminder settings",
			slog.String("user_id", userID.String()),
			slog.Int("idle_threshold_minutes", created.IdleThresholdMinutes),
			slog.Int("reminder_cooldown_minutes", created.ReminderCooldownMinutes))
		return created, nil
	}
	if errors.Is(err, store.ErrSettingsExists) {
		// A concurrent caller created the row first; use theirs.
		return s.settings.GetByUserID(ctx, userID)
	}
	return nil, fmt.Errorf("creating default settings for user %s: %w", userID, err)
}

// Update applies a partial settings change after validating the new values
// against the permitted range. Returns domain.ErrInvalidRange (wrapped) for
// out-of-range values and store.ErrUserNotFound for unknown users.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, update SettingsUpdate) (*domain.UserSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("looking up user %s: %w", userID, err)
	}

	settings, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.IdleThresholdMinutes != nil {
		settings.IdleThresholdMinutes = *update.IdleThresholdMinutes
	}
	if update.ReminderCooldownMinutes != nil {
		settings.ReminderCooldownMinutes = *update.ReminderCooldownMinutes
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("updating settings for user %s: %w", userID, err)
	}

	log.Info("reminder settings updated",
		slog.String("user_id", userID.String()),
		slog.Int("idle_threshold_minutes", settings.IdleThresholdMinutes),
		slog.Int("reminder_cooldown_minutes", settings.ReminderCooldownMinutes))
	return settings, nil
}
