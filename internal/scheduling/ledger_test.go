package scheduling_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyloop/planwatch/internal/scheduling"
)

func TestLedgerRecordAndLookup(t *testing.T) {
	t.Parallel()

	ledger := scheduling.NewLedger()
	planID := uuid.New()

	_, ok := ledger.LastSent(planID)
	assert.False(t, ok, "empty ledger has no record")

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ledger.RecordSent(planID, first)

	got, ok := ledger.LastSent(planID)
	require.True(t, ok)
	assert.Equal(t, first, got)

	// A later send overwrites the earlier record.
	second := first.Add(2 * time.Hour)
	ledger.RecordSent(planID, second)

	got, ok = ledger.LastSent(planID)
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestLedgerClear(t *testing.T) {
	t.Parallel()

	ledger := scheduling.NewLedger()
	planID := uuid.New()
	other := uuid.New()

	ledger.RecordSent(planID, time.Now().UTC())
	ledger.RecordSent(other, time.Now().UTC())
	require.Equal(t, 2, ledger.Len())

	ledger.Clear(planID)

	_, ok := ledger.LastSent(planID)
	assert.False(t, ok)
	_, ok = ledger.LastSent(other)
	assert.True(t, ok, "clearing one plan must not affect others")
	assert.Equal(t, 1, ledger.Len())

	// Clearing an absent key is a no-op.
	ledger.Clear(planID)
	assert.Equal(t, 1, ledger.Len())
}

func TestLedgerConcurrentAccess(t *testing.T) {
	t.Parallel()

	ledger := scheduling.NewLedger()
	planIDs := make([]uuid.UUID, 8)
	for i := range planIDs {
		planIDs[i] = uuid.New()
	}

	// Writers record, clearers delete, readers look up, all concurrently.
	// The race detector is the real assertion here.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ledger.RecordSent(planIDs[j%len(planIDs)], time.Now())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ledger.Clear(planIDs[j%len(planIDs)])
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ledger.LastSent(planIDs[j%len(planIDs)])
				ledger.Len()
			}
		}()
	}
	wg.Wait()
}
