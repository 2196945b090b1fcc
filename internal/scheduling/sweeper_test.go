package scheduling_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/scheduling"
	"github.com/studyloop/planwatch/internal/store"
)

// sweeperFixture wires a Sweeper with mock stores for direct RunNow tests.
type sweeperFixture struct {
	sweeper   *scheduling.Sweeper
	transport *recordingTransport
	ledger    *scheduling.Ledger
}

func newSweeperFixture(
	plans *mockPlanStore,
	checkIns *mockCheckInStore,
	settings *mockSettingsResolver,
	users *mockUserStore,
) *sweeperFixture {
	ledger := scheduling.NewLedger()
	transport := &recordingTransport{}
	dispatcher := scheduling.NewDispatcher(settings, users, transport, ledger, nil)
	sweeper := scheduling.NewSweeper(
		plans, checkIns, settings, dispatcher, scheduling.SweeperConfig{}, nil)
	return &sweeperFixture{sweeper: sweeper, transport: transport, ledger: ledger}
}

func neverCheckedIn() *mockCheckInStore {
	return &mockCheckInStore{
		LastCheckInAtFn: func(_ context.Context, _ uuid.UUID) (time.Time, error) {
			return time.Time{}, store.ErrNoCheckIns
		},
	}
}

func staticPlans(plans ...*domain.Plan) *mockPlanStore {
	return &mockPlanStore{
		ListActiveFn: func(_ context.Context) ([]*domain.Plan, error) {
			return plans, nil
		},
	}
}

func TestSweepRemindsIdlePlans(t *testing.T) {
	t.Parallel()

	user := testUser("maria@example.com")
	idlePlan := testPlan(user.ID, time.Now().UTC().Add(-2*time.Hour))
	freshPlan := testPlan(user.ID, time.Now().UTC().Add(-10*time.Minute))

	fixture := newSweeperFixture(
		staticPlans(idlePlan, freshPlan),
		neverCheckedIn(),
		fixedSettingsResolver(60, 30),
		&mockUserStore{users: map[uuid.UUID]*domain.User{user.ID: user}},
	)

	count, err := fixture.sweeper.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count, "both active plans are processed")

	sent := fixture.transport.Sent()
	require.Len(t, sent, 1, "only the idle plan gets a reminder")
	assert.Contains(t, sent[0].Body, idlePlan.Title)
}

func TestSweepUsesLastCheckInAsBaseline(t *testing.T) {
	t.Parallel()

	user := testUser("maria@example.com")
	// Created long ago, but a recent check-in keeps the plan fresh.
	plan := testPlan(user.ID, time.Now().UTC().Add(-30*24*time.Hour))

	checkIns := &mockCheckInStore{
		LastCheckInAtFn: func(_ context.Context, planID uuid.UUID) (time.Time, error) {
			require.Equal(t, plan.ID, planID)
			return time.Now().UTC().Add(-5 * time.Minute), nil
		},
	}

	fixture := newSweeperFixture(
		staticPlans(plan),
		checkIns,
		fixedSettingsResolver(60, 30),
		&mockUserStore{users: map[uuid.UUID]*domain.User{user.ID: user}},
	)

	count, err := fixture.sweeper.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, fixture.transport.Sent(), "recently active plan must not be reminded")
}

func TestSweepAbandonedWhenPlanFetchFails(t *testing.T) {
	t.Parallel()

	plans := &mockPlanStore{
		ListActiveFn: func(_ context.Context) ([]*domain.Plan, error) {
			return nil, errors.New("connection reset")
		},
	}

	fixture := newSweeperFixture(
		plans,
		neverCheckedIn(),
		fixedSettingsResolver(60, 30),
		&mockUserStore{},
	)

	count, err := fixture.sweeper.RunNow(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, fixture.transport.Sent())
}

func TestSweepIsolatesPerPlanFailures(t *testing.T) {
	t.Parallel()

	user := testUser("maria@example.com")
	brokenPlan := testPlan(user.ID, time.Now().UTC().Add(-2*time.Hour))
	healthyPlan := testPlan(user.ID, time.Now().UTC().Add(-2*time.Hour))

	checkIns := &mockCheckInStore{
		LastCheckInAtFn: func(_ context.Context, planID uuid.UUID) (time.Time, error) {
			if planID == brokenPlan.ID {
				return time.Time{}, errors.New("query timeout")
			}
			return time.Time{}, store.ErrNoCheckIns
		},
	}

	fixture := newSweeperFixture(
		staticPlans(brokenPlan, healthyPlan),
		checkIns,
		fixedSettingsResolver(60, 30),
		&mockUserStore{users: map[uuid.UUID]*domain.User{user.ID: user}},
	)

	count, err := fixture.sweeper.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count, "a failing plan does not abort the sweep")

	sent := fixture.transport.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, healthyPlan.Title)
}

func TestManualSweepIdempotentWithinCooldown(t *testing.T) {
	t.Parallel()

	user := testUser("maria@example.com")
	plan := testPlan(user.ID, time.Now().UTC().Add(-2*time.Hour))

	fixture := newSweeperFixture(
		staticPlans(plan),
		neverCheckedIn(),
		fixedSettingsResolver(60, 30),
		&mockUserStore{users: map[uuid.UUID]*domain.User{user.ID: user}},
	)

	ctx := context.Background()

	_, err := fixture.sweeper.RunNow(ctx)
	require.NoError(t, err)
	require.Len(t, fixture.transport.Sent(), 1)

	// A second manual trigger right away still runs the sweep, but the
	// ledger keeps the plan inside its cooldown window.
	count, err := fixture.sweeper.RunNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, fixture.transport.Sent(), 1, "no duplicate reminder within cooldown")
}

func TestSweepsNeverOverlap(t *testing.T) {
	t.Parallel()

	// A plan fetch that outlasts several timer intervals, so ticks pile up
	// behind a running sweep while manual triggers race it.
	var inFlight, maxInFlight atomic.Int32
	plans := &mockPlanStore{
		ListActiveFn: func(_ context.Context) ([]*domain.Plan, error) {
			cur := inFlight.Add(1)
			for {
				max := maxInFlight.Load()
				if cur <= max || maxInFlight.CompareAndSwap(max, cur) {
					break
				}
			}
			time.Sleep(100 * time.Millisecond)
			inFlight.Add(-1)
			return nil, nil
		},
	}

	ledger := scheduling.NewLedger()
	settings := fixedSettingsResolver(60, 30)
	dispatcher := scheduling.NewDispatcher(
		settings, &mockUserStore{}, &recordingTransport{}, ledger, nil)
	sweeper := scheduling.NewSweeper(
		plans, neverCheckedIn(), settings, dispatcher,
		scheduling.SweeperConfig{Interval: 20 * time.Millisecond}, nil)

	require.NoError(t, sweeper.Start())

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sweeper.RunNow(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sweeper.Stop()

	assert.Equal(t, int32(0), inFlight.Load(), "all sweeps drained after Stop")
	assert.Equal(t, int32(1), maxInFlight.Load(), "at most one sweep in flight at any time")
}

func TestSweepWithNoActivePlans(t *testing.T) {
	t.Parallel()

	fixture := newSweeperFixture(
		staticPlans(),
		neverCheckedIn(),
		fixedSettingsResolver(60, 30),
		&mockUserStore{},
	)

	count, err := fixture.sweeper.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, fixture.transport.Sent())
}
