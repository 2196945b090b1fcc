package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/domain/idle"
	"github.com/studyloop/planwatch/internal/platform/logger"
	"github.com/studyloop/planwatch/internal/store"
)

// SettingsResolver resolves a user's reminder settings, creating defaults
// on first access. Implemented by service.SettingsService.
type SettingsResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

// Transport delivers a notification. Implementations are fire-and-forget:
// a returned error means the message was not handed off, and the dispatcher
// logs it without retrying within the current sweep.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

// reminderSubject is the subject line of every idle-plan reminder.
const reminderSubject = "Your study plan is waiting for you"

// reminderBody renders the notification body for an idle plan.
func reminderBody(username, planTitle string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your study plan \"%s\" has not seen a check-in for a while.\n\n"+
			"Small, steady steps add up - come back and log some progress!\n\n"+
			"Happy studying,\nplanwatch",
		username, planTitle)
}

// Dispatcher decides whether an idle plan gets a reminder right now, and
// sends it. It consults the user's cooldown and the ledger, so a plan
// receives at most one notification per cooldown window. All failure modes
// are terminal and logged at this layer: a single plan's failure must never
// abort the sweep over the remaining plans.
type Dispatcher struct {
	settings  SettingsResolver
	users     store.UserStore
	transport Transport
	ledger    *Ledger
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher.
// If logger is nil, a default logger will be used.
func NewDispatcher(
	settings SettingsResolver,
	users store.UserStore,
	transport Transport,
	ledger *Ledger,
	log *slog.Logger,
) *Dispatcher {
	if settings == nil {
		panic("settings resolver cannot be nil")
	}
	if users == nil {
		panic("user store cannot be nil")
	}
	if transport == nil {
		panic("transport cannot be nil")
	}
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		settings:  settings,
		users:     users,
		transport: transport,
		ledger:    ledger,
		logger:    log.With(slog.String("component", "reminder_dispatcher")),
	}
}

// MaybeNotify sends a reminder for an idle plan unless the plan is still
// inside its cooldown window. On a successful send the ledger is updated;
// on a transport failure it is not, so the next sweep retries naturally.
func (d *Dispatcher) MaybeNotify(
	ctx context.Context,
	plan *domain.Plan,
	elapsedMinutes int64,
	now time.Time,
) {
	log := logger.FromContextOrDefault(ctx, d.logger)

	settings, err := d.settings.Resolve(ctx, plan.UserID)
	if err != nil {
		log.Error("failed to resolve reminder settings",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()),
			slog.String("user_id", plan.UserID.String()))
		return
	}

	cooldown := settings.ReminderCooldownMinutes
	if cooldown < domain.MinReminderMinutes {
		// Guards against corrupt stored state reaching runtime logic; the
		// settings layer validates this range, so it should be unreachable.
		log.Warn("reminder cooldown below minimum, coercing to 1 minute",
			slog.String("plan_id", plan.ID.String()),
			slog.Int("configured_cooldown_minutes", cooldown))
		cooldown = domain.MinReminderMinutes
	}

	if lastSent, ok := d.ledger.LastSent(plan.ID); ok {
		sinceLast := idle.MinutesBetween(lastSent, now)
		if sinceLast < int64(cooldown) {
			log.Debug("plan still within reminder cooldown, skipping",
				slog.String("plan_id", plan.ID.String()),
				slog.String("plan_title", plan.Title),
				slog.Int64("minutes_since_last_reminder", sinceLast),
				slog.Int("cooldown_minutes", cooldown))
			return
		}
	}

	user, err := d.users.GetByID(ctx, plan.UserID)
	if err != nil {
		log.Error("failed to resolve plan owner",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()),
			slog.String("user_id", plan.UserID.String()))
		return
	}

	if !user.HasContactAddress() {
		log.Info("plan owner has no contact address, skipping reminder",
			slog.String("plan_id", plan.ID.String()),
			slog.String("user_id", user.ID.String()))
		return
	}

	err = d.transport.Send(ctx, user.Email, reminderSubject, reminderBody(user.Username, plan.Title))
	if err != nil {
		// Ledger deliberately untouched: with no successful send recorded,
		// the next sweep attempts again while the plan stays idle.
		log.Error("failed to send reminder",
			slog.String("error", err.Error()),
			slog.String("plan_id", plan.ID.String()),
			slog.String("user_id", user.ID.String()))
		return
	}

	d.ledger.RecordSent(plan.ID, now)

	log.Info("idle plan reminder sent",
		slog.String("plan_id", plan.ID.String()),
		slog.String("plan_title", plan.Title),
		slog.String("user_id", user.ID.String()),
		slog.Int64("idle_minutes", elapsedMinutes),
		slog.Int("cooldown_minutes", cooldown))
}
