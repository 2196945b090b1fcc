package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bounds and defaults for the minute-based reminder settings.
const (
	// MinReminderMinutes is the lowest permitted value for both the idle
	// threshold and the reminder cooldown (1 minute).
	MinReminderMinutes = 1

	// MaxReminderMinutes is the highest permitted value for both fields
	// (10080 minutes = 7 days).
	MaxReminderMinutes = 10080

	// DefaultIdleThresholdMinutes is the idle threshold applied when a user
	// has never configured settings (4320 minutes = 3 days).
	DefaultIdleThresholdMinutes = 4320

	// DefaultReminderCooldownMinutes is the minimum interval between two
	// reminders for the same plan when unconfigured (720 minutes = 12 hours).
	DefaultReminderCooldownMinutes = 720
)

// Settings validation errors. Both wrap ErrInvalidRange so callers can
// detect any out-of-range field with a single errors.Is check.
var (
	ErrEmptySettingsID     = fmt.Errorf("settings ID cannot be empty")
	ErrEmptySettingsUserID = fmt.Errorf("settings user ID cannot be empty")

	ErrThresholdOutOfRange = fmt.Errorf(
		"%w: idle threshold must be between %d and %d minutes",
		ErrInvalidRange, MinReminderMinutes, MaxReminderMinutes)

	ErrCooldownOutOfRange = fmt.Errorf(
		"%w: reminder cooldown must be between %d and %d minutes",
		ErrInvalidRange, MinReminderMinutes, MaxReminderMinutes)
)

// UserSettings holds a user's reminder configuration. Exactly one record
// exists per user once first accessed; absence triggers lazy creation with
// the defaults above.
type UserSettings struct {
	ID                      uuid.UUID `json:"id"`
	UserID                  uuid.UUID `json:"user_id"`
	IdleThresholdMinutes    int       `json:"idle_threshold_minutes"`
	ReminderCooldownMinutes int       `json:"reminder_cooldown_minutes"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NewUserSettings creates default settings for the given user.
func NewUserSettings(userID uuid.UUID) (*UserSettings, error) {
	now := time.Now().UTC()
	settings := &UserSettings{
		ID:                      uuid.New(),
		UserID:                  userID,
		IdleThresholdMinutes:    DefaultIdleThresholdMinutes,
		ReminderCooldownMinutes: DefaultReminderCooldownMinutes,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks if the UserSettings has valid data.
// Returns an error wrapping ErrInvalidRange if either minute field is
// outside [MinReminderMinutes, MaxReminderMinutes].
func (s *UserSettings) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySettingsID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySettingsUserID
	}

	if s.IdleThresholdMinutes < MinReminderMinutes ||
		s.IdleThresholdMinutes > MaxReminderMinutes {
		return ErrThresholdOutOfRange
	}

	if s.ReminderCooldownMinutes < MinReminderMinutes ||
		s.ReminderCooldownMinutes > MaxReminderMinutes {
		return ErrCooldownOutOfRange
	}

	return nil
}
