package api

import (
	"net/http"

	"github.com/studyloop/planwatch/internal/api/shared"
	"github.com/studyloop/planwatch/internal/scheduling"
)

// SweepResponse represents the result of a manually triggered sweep.
type SweepResponse struct {
	PlansProcessed int `json:"plans_processed"`
}

// SweepHandler exposes the manual sweep trigger for operational and test
// tooling.
type SweepHandler struct {
	sweeper *scheduling.Sweeper
}

// NewSweepHandler creates a new SweepHandler.
func NewSweepHandler(sweeper *scheduling.Sweeper) *SweepHandler {
	if sweeper == nil {
		panic("sweeper cannot be nil")
	}
	return &SweepHandler{sweeper: sweeper}
}

// TriggerSweep handles POST /api/sweeps requests. The sweep runs
// synchronously; cooldown accounting makes repeated triggers safe.
func (h *SweepHandler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	count, err := h.sweeper.RunNow(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Sweep could not complete", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SweepResponse{PlansProcessed: count})
}
