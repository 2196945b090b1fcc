package api

import (
	"net/http"
	"time"

	"github.com/studyloop/planwatch/internal/api/shared"
	"github.com/studyloop/planwatch/internal/domain"
	"github.com/studyloop/planwatch/internal/service"
)

// UpdateSettingsRequest represents the request body for changing reminder
// settings. Omitted fields keep their current value. Range checking is the
// domain's job, so out-of-range values map to the range error messages
// rather than a generic validation failure.
type UpdateSettingsRequest struct {
	IdleThresholdMinutes    *int `json:"idle_threshold_minutes"`
	ReminderCooldownMinutes *int `json:"reminder_cooldown_minutes"`
}

// SettingsResponse represents the response data for reminder settings.
type SettingsResponse struct {
	UserID                  string    `json:"user_id"`
	IdleThresholdMinutes    int       `json:"idle_threshold_minutes"`
	ReminderCooldownMinutes int       `json:"reminder_cooldown_minutes"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// SettingsHandler handles reminder settings HTTP requests.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	if settingsService == nil {
		panic("settings service cannot be nil")
	}
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /api/settings?user_id= requests. First access for
// a user returns the defaults.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := getQueryUUID(r, "user_id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	settings, err := h.settingsService.Resolve(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// UpdateSettings handles PUT /api/settings?user_id= requests.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := getQueryUUID(r, "user_id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), userID, service.SettingsUpdate{
		IdleThresholdMinutes:    req.IdleThresholdMinutes,
		ReminderCooldownMinutes: req.ReminderCooldownMinutes,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

func settingsToResponse(settings *domain.UserSettings) SettingsResponse {
	return SettingsResponse{
		UserID:                  settings.UserID.String(),
		IdleThresholdMinutes:    settings.IdleThresholdMinutes,
		ReminderCooldownMinutes: settings.ReminderCooldownMinutes,
		UpdatedAt:               settings.UpdatedAt,
	}
}
