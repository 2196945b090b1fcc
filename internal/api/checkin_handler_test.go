package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyloop/planwatch/internal/api"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/events"
	"github.com/studyloop/planwatch/internal/service"
)

func newCheckInRouter(stores *memStores, emitter events.ActivityEmitter) http.Handler {
	svc := service.NewCheckInService(planStore{stores}, checkInStore{stores}, emitter, nil)
	handler := api.NewCheckInHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/plans/{planID}/check-ins", handler.CreateCheckIn)
	return r
}

func seedPlan(t *testing.T, stores *memStores) *domain.Plan {
	t.Helper()
	plan, err := domain.NewPlan(uuid.New(), "Finish the compilers course")
	require.NoError(t, err)
	stores.addPlan(plan)
	return plan
}

func TestCreateCheckIn(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	plan := seedPlan(t, stores)
	router := newCheckInRouter(stores, events.NewInMemoryEmitter(nil))

	body, err := json.Marshal(map[string]string{"note": "finished lexing chapter"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+plan.ID.String()+"/check-ins", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.CheckInResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, plan.ID.String(), resp.PlanID)
	assert.Equal(t, "finished lexing chapter", resp.Note)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateCheckInWithoutBody(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	plan := seedPlan(t, stores)
	router := newCheckInRouter(stores, events.NewInMemoryEmitter(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+plan.ID.String()+"/check-ins", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.CheckInResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Note)
}

func TestCreateCheckInChunkedBody(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	plan := seedPlan(t, stores)
	router := newCheckInRouter(stores, events.NewInMemoryEmitter(nil))

	body, err := json.Marshal(map[string]string{"note": "streamed upload"})
	require.NoError(t, err)

	// Wrapping the reader hides its length, so the request goes out with
	// ContentLength -1 the way a chunked client would send it.
	req := httptest.NewRequest(http.MethodPost,
		"/api/plans/"+plan.ID.String()+"/check-ins", io.MultiReader(bytes.NewReader(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.CheckInResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "streamed upload", resp.Note)
}

func TestCreateCheckInUnknownPlan(t *testing.T) {
	t.Parallel()

	router := newCheckInRouter(newMemStores(), events.NewInMemoryEmitter(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+uuid.NewString()+"/check-ins", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCheckInMalformedPlanID(t *testing.T) {
	t.Parallel()

	router := newCheckInRouter(newMemStores(), events.NewInMemoryEmitter(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/plans/not-a-uuid/check-ins", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCheckInEmitsActivity(t *testing.T) {
	t.Parallel()

	stores := newMemStores()
	plan := seedPlan(t, stores)

	received := make([]*events.PlanActivityEvent, 0, 1)
	emitter := events.NewInMemoryEmitter(nil)
	emitter.RegisterHandler(activityHandlerFunc(func(event *events.PlanActivityEvent) error {
		received = append(received, event)
		return nil
	}))

	router := newCheckInRouter(stores, emitter)

	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+plan.ID.String()+"/check-ins", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, received, 1)
	assert.Equal(t, plan.ID, received[0].PlanID)
}
