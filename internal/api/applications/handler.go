// Package applications serves the registered application endpoints.
package applications

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/timeago"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// Handler handles application endpoints.
type Handler struct {
	storage storage.Storage
	log     *zap.Logger
	now     func() time.Time
}

// NewHandler creates an application handler.
func NewHandler(store storage.Storage, log *zap.Logger) *Handler {
	return &Handler{
		storage: store,
		log:     log,
		now:     time.Now,
	}
}

// Request types
type CreateRequest struct {
	Name string         `json:"name" validate:"required,max=100"`
	Type models.AppType `json:"type" validate:"required,oneof=API 'Web App' Service"`
}

type ConfigRequest struct {
	ThreatThreshold    *int  `json:"threat_threshold" validate:"required,min=0,max=100"`
	AutoBlock          *bool `json:"auto_block" validate:"required"`
	RealTimeMonitoring *bool `json:"real_time_monitoring" validate:"required"`
}

// Response types
type AppItem struct {
	*models.Application
	ScannedAgo string `json:"scanned_ago"`
}

type ListResponse struct {
	Items  []AppItem     `json:"items"`
	Total  int           `json:"total"`
	Filter triage.Filter `json:"filter"`
}

type EventItem struct {
	models.AppEvent
	TimeAgo string `json:"time_ago"`
}

type DetailResponse struct {
	AppItem
	Traffic []models.TrafficPoint `json:"traffic"`
	Events  []EventItem           `json:"events"`
}

// List returns applications filtered by ?status and ?q (name only).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := triage.NewFilter("", q.Get("status"), "", q.Get("q"))

	all, err := h.storage.Applications().List(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	visible := triage.Apply(all, filter)
	items := make([]AppItem, 0, len(visible))
	for _, app := range visible {
		items = append(items, h.item(app))
	}
	response.OK(w, ListResponse{Items: items, Total: len(items), Filter: filter})
}

// Create registers a new active application with the default detection config.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	now := h.now()
	app := &models.Application{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Status:    models.AppActive,
		Type:      req.Type,
		LastScan:  now,
		Detection: models.DefaultDetectionConfig(),
		CreatedAt: now,
	}
	if err := h.storage.Applications().Create(r.Context(), app); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	h.log.Info("application registered", zap.String("app_id", app.ID), zap.String("name", app.Name))

	response.Created(w, h.item(app))
}

// Get returns an application with its traffic series and recent events.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.storage.Applications().GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	now := h.now()
	events := fixtures.AppEvents(now)
	items := make([]EventItem, 0, len(events))
	for _, e := range events {
		items = append(items, EventItem{AppEvent: e, TimeAgo: timeago.Format(e.Timestamp, now)})
	}

	response.OK(w, DetailResponse{
		AppItem: h.item(app),
		Traffic: fixtures.AppTraffic(),
		Events:  items,
	})
}

// UpdateConfig replaces the application's detection configuration.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ConfigRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	cfg := models.DetectionConfig{
		ThreatThreshold:    *req.ThreatThreshold,
		AutoBlock:          *req.AutoBlock,
		RealTimeMonitoring: *req.RealTimeMonitoring,
	}
	if err := h.storage.Applications().UpdateDetection(r.Context(), id, cfg); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	h.log.Info("detection config updated",
		zap.String("app_id", id),
		zap.Int("threat_threshold", cfg.ThreatThreshold),
		zap.Bool("auto_block", cfg.AutoBlock),
	)

	app, err := h.storage.Applications().GetByID(r.Context(), id)
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, h.item(app))
}

func (h *Handler) item(app *models.Application) AppItem {
	return AppItem{Application: app, ScannedAgo: timeago.Format(app.LastScan, h.now())}
}
