package api_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/events"
	"github.com/studyloop/planwatch/internal/store"
)

// activityHandlerFunc adapts a function to the events.ActivityHandler
// interface.
type activityHandlerFunc func(event *events.PlanActivityEvent) error

func (f activityHandlerFunc) HandleActivity(_ context.Context, event *events.PlanActivityEvent) error {
	return f(event)
}

// memStores is an in-memory implementation of the store interfaces used to
// exercise handlers end to end without a database.
type memStores struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*domain.User
	plans    map[uuid.UUID]*domain.Plan
	checkIns map[uuid.UUID][]*domain.CheckIn
	settings map[uuid.UUID]*domain.UserSettings
}

func newMemStores() *memStores {
	return &memStores{
		users:    make(map[uuid.UUID]*domain.User),
		plans:    make(map[uuid.UUID]*domain.Plan),
		checkIns: make(map[uuid.UUID][]*domain.CheckIn),
		settings: make(map[uuid.UUID]*domain.UserSettings),
	}
}

func (s *memStores) addUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *memStores) addPlan(plan *domain.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
}

// userStore / planStore / checkInStore / settingsStore expose the
// interface-shaped views of memStores.

type userStore struct{ s *memStores }

func (u userStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

type planStore struct{ s *memStores }

func (p planStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Plan, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	plan, ok := p.s.plans[id]
	if !ok {
		return nil, store.ErrPlanNotFound
	}
	return plan, nil
}

func (p planStore) ListActive(_ context.Context) ([]*domain.Plan, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	out := make([]*domain.Plan, 0, len(p.s.plans))
	for _, plan := range p.s.plans {
		if plan.IsActive() {
			out = append(out, plan)
		}
	}
	return out, nil
}

type checkInStore struct{ s *memStores }

func (c checkInStore) Create(_ context.Context, checkIn *domain.CheckIn) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.plans[checkIn.PlanID]; !ok {
		return store.ErrInvalidEntity
	}
	c.s.checkIns[checkIn.PlanID] = append(c.s.checkIns[checkIn.PlanID], checkIn)
	return nil
}

func (c checkInStore) LastCheckInAt(_ context.Context, planID uuid.UUID) (time.Time, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	checkIns := c.s.checkIns[planID]
	if len(checkIns) == 0 {
		return time.Time{}, store.ErrNoCheckIns
	}
	latest := checkIns[0].CreatedAt
	for _, checkIn := range checkIns[1:] {
		if checkIn.CreatedAt.After(latest) {
			latest = checkIn.CreatedAt
		}
	}
	return latest, nil
}

type settingsStore struct{ s *memStores }

func (st settingsStore) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	row, ok := st.s.settings[userID]
	if !ok {
		return nil, store.ErrSettingsNotFound
	}
	copied := *row
	return &copied, nil
}

func (st settingsStore) Create(_ context.Context, settings *domain.UserSettings) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.settings[settings.UserID]; ok {
		return store.ErrSettingsExists
	}
	copied := *settings
	st.s.settings[settings.UserID] = &copied
	return nil
}

func (st settingsStore) Update(_ context.Context, settings *domain.UserSettings) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.settings[settings.UserID]; !ok {
		return store.ErrSettingsNotFound
	}
	copied := *settings
	st.s.settings[settings.UserID] = &copied
	return nil
}
