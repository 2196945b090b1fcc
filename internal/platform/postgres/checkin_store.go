package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/platform/logger"
	"github.com/studyloop/planwatch/internal/store"
)

// PostgresCheckInStore implements the store.CheckInStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCheckInStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCheckInStore creates a new PostgreSQL implementation of the
// CheckInStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCheckInStore(db store.DBTX, logger *slog.Logger) *PostgresCheckInStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCheckInStore{
		db:     db,
		logger: logger.With(slog.String("component", "checkin_store")),
	}
}

// Ensure PostgresCheckInStore implements store.CheckInStore interface
var _ store.CheckInStore = (*PostgresCheckInStore)(nil)

// Create implements store.CheckInStore.Create
// It saves a new check-in to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the plan ID doesn't exist (foreign key
// violation).
func (s *PostgresCheckInStore) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := checkIn.Validate(); err != nil {
		log.Warn("check-in validation failed during create",
			slog.String("error", err.Error()),
			slog.String("checkin_id", checkIn.ID.String()))
		return err
	}

	query := `
		INSERT INTO check_ins (id, plan_id, note, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		checkIn.ID,
		checkIn.PlanID,
		checkIn.Note,
		checkIn.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during check-in creation",
				slog.String("error", err.Error()),
				slog.String("plan_id", checkIn.PlanID.String()))
			return fmt.Errorf("%w: plan with ID %s not found",
				store.ErrInvalidEntity, checkIn.PlanID)
		}

		log.Error("failed to create check-in",
			slog.String("error", err.Error()),
			slog.String("checkin_id", checkIn.ID.String()),
			slog.String("plan_id", checkIn.PlanID.String()))
		return MapError(err)
	}

	log.Info("check-in recorded",
		slog.String("checkin_id", checkIn.ID.String()),
		slog.String("plan_id", checkIn.PlanID.String()))
	return nil
}

// LastCheckInAt implements store.CheckInStore.LastCheckInAt
// Returns store.ErrNoCheckIns if the plan has never recorded a check-in.
func (s *PostgresCheckInStore) LastCheckInAt(
	ctx context.Context,
	planID uuid.UUID,
) (time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT MAX(created_at)
		FROM check_ins
		WHERE plan_id = $1
	`

	// MAX over an empty set yields NULL rather than ErrNoRows.
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, query, planID).Scan(&last)
	if err != nil {
		log.Error("failed to query last check-in",
			slog.String("error", err.Error()),
			slog.String("plan_id", planID.String()))
		return time.Time{}, MapError(err)
	}

	if !last.Valid {
		return time.Time{}, store.ErrNoCheckIns
	}

	return last.Time, nil
}
