package scheduling_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/store"
)

// mockSettingsResolver implements scheduling.SettingsResolver with an
// injectable function.
type mockSettingsResolver struct {
	ResolveFn func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

func (m *mockSettingsResolver) Resolve(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	return m.ResolveFn(ctx, userID)
}

// fixedSettingsResolver returns the same threshold and cooldown for every
// user.
func fixedSettingsResolver(thresholdMinutes, cooldownMinutes int) *mockSettingsResolver {
	return &mockSettingsResolver{
		ResolveFn: func(_ context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
			return &domain.UserSettings{
				ID:                      uuid.New(),
				UserID:                  userID,
				IdleThresholdMinutes:    thresholdMinutes,
				ReminderCooldownMinutes: cooldownMinutes,
			}, nil
		},
	}
}

// mockUserStore implements store.UserStore over a static map.
type mockUserStore struct {
	users map[uuid.UUID]*domain.User

	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// mockPlanStore implements store.PlanStore with injectable functions.
type mockPlanStore struct {
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	ListActiveFn func(ctx context.Context) ([]*domain.Plan, error)
}

func (m *mockPlanStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockPlanStore) ListActive(ctx context.Context) ([]*domain.Plan, error) {
	return m.ListActiveFn(ctx)
}

// mockCheckInStore implements store.CheckInStore with injectable functions.
type mockCheckInStore struct {
	CreateFn        func(ctx context.Context, checkIn *domain.CheckIn) error
	LastCheckInAtFn func(ctx context.Context, planID uuid.UUID) (time.Time, error)
}

func (m *mockCheckInStore) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	return m.CreateFn(ctx, checkIn)
}

func (m *mockCheckInStore) LastCheckInAt(ctx context.Context, planID uuid.UUID) (time.Time, error) {
	return m.LastCheckInAtFn(ctx, planID)
}

// sentMessage captures one delivered notification.
type sentMessage struct {
	To      string
	Subject string
	Body    string
}

// recordingTransport implements scheduling.Transport and records every
// successful send. Set Err to make all sends fail.
type recordingTransport struct {
	mu   sync.Mutex
	sent []sentMessage
	Err  error
}

func (t *recordingTransport) Send(_ context.Context, to, subject, body string) error {
	if t.Err != nil {
		return t.Err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (t *recordingTransport) Sent() []sentMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]sentMessage, len(t.sent))
	copy(out, t.sent)
	return out
}
