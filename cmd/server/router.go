package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studyloop/planwatch/internal/api"
	apiMiddleware "github.com/studyloop/planwatch/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	settingsHandler := api.NewSettingsHandler(app.settingsService)
	checkInHandler := api.NewCheckInHandler(app.checkInService)
	sweepHandler := api.NewSweepHandler(app.sweeper)

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)

		r.Post("/plans/{planID}/check-ins", checkInHandler.CreateCheckIn)

		r.Post("/sweeps", sweepHandler.TriggerSweep)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
