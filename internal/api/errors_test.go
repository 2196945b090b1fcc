package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyloop/planwatch/internal/api"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"plan not found", store.ErrPlanNotFound, http.StatusNotFound},
		{"settings not found", store.ErrSettingsNotFound, http.StatusNotFound},
		{"settings exist", store.ErrSettingsExists, http.StatusConflict},
		{"threshold out of range", domain.ErrThresholdOutOfRange, http.StatusBadRequest},
		{"cooldown out of range", domain.ErrCooldownOutOfRange, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("looking up: %w", store.ErrPlanNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksDetails(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("pq: connection to postgres://user:hunter2@db:5432 failed: %w", store.ErrUserNotFound)
	msg := api.GetSafeErrorMessage(err)
	assert.Equal(t, "User not found", msg)
	assert.NotContains(t, msg, "hunter2")
}
