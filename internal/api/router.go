package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/smartdetect/internal/api/activity"
	"github.com/good-yellow-bee/smartdetect/internal/api/alerts"
	"github.com/good-yellow-bee/smartdetect/internal/api/applications"
	"github.com/good-yellow-bee/smartdetect/internal/api/dashboard"
	"github.com/good-yellow-bee/smartdetect/internal/api/help"
	"github.com/good-yellow-bee/smartdetect/internal/api/middleware"
	"github.com/good-yellow-bee/smartdetect/internal/api/reports"
	"github.com/good-yellow-bee/smartdetect/internal/api/settings"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	log := s.log
	store := s.deps.Storage

	// Global middleware
	r.Use(middleware.RequestLogger(log, s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.PrometheusMiddleware)

	dashboardHandler := dashboard.NewHandler(store, s.deps.Monitoring, s.deps.Activity, log)
	activityHandler := activity.NewHandler(s.deps.Activity, activity.StreamConfig{
		MaxDuration:       s.config.StreamMaxDuration,
		HeartbeatInterval: s.config.StreamHeartbeat,
	}, log)
	alertHandler := alerts.NewHandler(store, s.deps.Views, log)
	appHandler := applications.NewHandler(store, log)
	reportHandler := reports.NewHandler(store, log)
	settingsHandler := settings.NewHandler(store, log)
	helpHandler := help.NewHandler(store, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(s.limiter))

		r.Get("/navigation", dashboardHandler.Navigation)
		r.Get("/dashboard", dashboardHandler.Overview)
		r.Get("/monitoring", dashboardHandler.Monitoring)
		r.Post("/monitoring/refresh", dashboardHandler.RefreshMonitoring)
		r.Get("/charts/{kind}", dashboardHandler.Chart)

		r.Route("/activity", func(r chi.Router) {
			r.Get("/", activityHandler.Get)
			r.Get("/stream", activityHandler.Stream)
			r.Post("/refresh", activityHandler.Refresh)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", alertHandler.List)
			r.Get("/summary", alertHandler.Summary)
			r.Post("/refresh", alertHandler.Refresh)

			r.Route("/views", func(r chi.Router) {
				r.Post("/", alertHandler.CreateView)
				r.Route("/{viewID}", func(r chi.Router) {
					r.Get("/", alertHandler.GetView)
					r.Delete("/", alertHandler.DeleteView)
					r.Put("/filter", alertHandler.SetFilter)
					r.Post("/select-all", alertHandler.SelectAll)
					r.Post("/select", alertHandler.Select)
					r.Post("/toggle", alertHandler.Toggle)
					r.Post("/bulk", alertHandler.Bulk)
				})
			})

			r.Get("/{id}", alertHandler.Get)
			r.Put("/{id}/status", alertHandler.UpdateStatus)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", appHandler.List)
			r.Post("/", appHandler.Create)
			r.Get("/{id}", appHandler.Get)
			r.Put("/{id}/config", appHandler.UpdateConfig)
		})

		r.Get("/reports", reportHandler.Summary)
		r.Get("/reports/export", reportHandler.Export)

		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)
		r.Get("/profile", settingsHandler.GetProfile)
		r.Put("/profile", settingsHandler.UpdateProfile)
		r.Put("/profile/password", settingsHandler.ChangePassword)

		r.Get("/help/faq", helpHandler.FAQ)
		r.Post("/help/support", helpHandler.Support)
	})

	// Health check (public, no rate limit)
	r.Route("/health", s.healthHandler.Routes)

	return r
}
