package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/platform/logger"
	"github.com/studyloop/planwatch/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// GetByUserID implements store.SettingsStore.GetByUserID
// Returns store.ErrSettingsNotFound if the user has no settings row yet.
func (s *PostgresSettingsStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, idle_threshold_minutes, reminder_cooldown_minutes,
		       created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings domain.UserSettings
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.IdleThresholdMinutes,
		&settings.ReminderCooldownMinutes,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("settings not found", slog.String("user_id", userID.String()))
			return nil, store.ErrSettingsNotFound
		}

		log.Error("failed to get settings by user ID",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return &settings, nil
}

// Create implements store.SettingsStore.Create
// Returns store.ErrSettingsExists if a row already exists for the user, so
// that concurrent lazy creations can resolve by re-reading the winner's row.
func (s *PostgresSettingsStore) Create(ctx context.Context, settings *domain.UserSettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("settings validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return err
	}

	query := `
		INSERT INTO user_settings
			(id, user_id, idle_threshold_minutes, reminder_cooldown_minutes,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		settings.ID,
		settings.UserID,
		settings.IdleThresholdMinutes,
		settings.ReminderCooldownMinutes,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("settings row already exists",
				slog.String("user_id", settings.UserID.String()))
			return store.ErrSettingsExists
		}

		log.Error("failed to create settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return MapError(err)
	}

	log.Info("default settings created",
		slog.String("user_id", settings.UserID.String()),
		slog.Int("idle_threshold_minutes", settings.IdleThresholdMinutes),
		slog.Int("reminder_cooldown_minutes", settings.ReminderCooldownMinutes))
	return nil
}

// Update implements store.SettingsStore.Update
// Returns store.ErrSettingsNotFound if no row exists for the user.
func (s *PostgresSettingsStore) Update(ctx context.Context, settings *domain.UserSettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("settings validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return err
	}

	settings.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE user_settings
		SET idle_threshold_minutes = $1, reminder_cooldown_minutes = $2,
		    updated_at = $3
		WHERE user_id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		settings.IdleThresholdMinutes,
		settings.ReminderCooldownMinutes,
		settings.UpdatedAt,
		settings.UserID,
	)
	if err != nil {
		log.Error("failed to update settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Warn("no settings row to update",
			slog.String("user_id", settings.UserID.String()))
		return store.ErrSettingsNotFound
	}

	log.Info("settings updated",
		slog.String("user_id", settings.UserID.String()),
		slog.Int("idle_threshold_minutes", settings.IdleThresholdMinutes),
		slog.Int("reminder_cooldown_minutes", settings.ReminderCooldownMinutes))
	return nil
}
