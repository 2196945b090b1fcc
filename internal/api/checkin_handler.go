package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studyloop/planwatch/internal/api/shared"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/service"
)

// CreateCheckInRequest represents the request body for recording a
// check-in. The note is optional.
type CreateCheckInRequest struct {
	Note string `json:"note" validate:"omitempty,max=2000"`
}

// CheckInResponse represents the response data for a recorded check-in.
type CheckInResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckInHandler handles check-in HTTP requests.
type CheckInHandler struct {
	checkInService *service.CheckInService
	validator      *validator.Validate
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService *service.CheckInService) *CheckInHandler {
	if checkInService == nil {
		panic("check-in service cannot be nil")
	}
	return &CheckInHandler{
		checkInService: checkInService,
		validator:      validator.New(),
	}
}

// CreateCheckIn handles POST /api/plans/{planID}/check-ins requests. An
// empty body is accepted as a check-in without a note.
func (h *CheckInHandler) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	planID, err := getPathUUID(r, "planID")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// An empty body is a check-in without a note. The body length is not
	// consulted so chunked requests decode like any other.
	var req CreateCheckInRequest
	switch err := shared.DecodeJSON(r, &req); {
	case err == nil:
		if err := h.validator.Struct(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	case errors.Is(err, io.EOF):
		// no body
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	checkIn, err := h.checkInService.RecordCheckIn(r.Context(), planID, req.Note)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, checkInToResponse(checkIn))
}

func checkInToResponse(checkIn *domain.CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:        checkIn.ID.String(),
		PlanID:    checkIn.PlanID.String(),
		Note:      checkIn.Note,
		CreatedAt: checkIn.CreatedAt,
	}
}
