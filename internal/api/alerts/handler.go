// Package alerts serves the alert list, alert detail and triage view endpoints.
package alerts

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/metrics"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/timeago"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// AlertItem is an alert as listed, with its relative timestamp.
type AlertItem struct {
	*models.Alert
	TimeAgo  string `json:"time_ago"`
	Selected bool   `json:"selected"`
}

// ListResponse is the filtered alert list.
type ListResponse struct {
	Items  []AlertItem   `json:"items"`
	Total  int           `json:"total"`
	Filter triage.Filter `json:"filter"`
	Expr   string        `json:"expr,omitempty"`
}

// Handler handles alert endpoints.
type Handler struct {
	storage storage.Storage
	views   *triage.ViewStore
	log     *zap.Logger
	now     func() time.Time
}

// NewHandler creates an alert handler.
func NewHandler(store storage.Storage, views *triage.ViewStore, log *zap.Logger) *Handler {
	views.ObserveCount(func(n int) {
		metrics.TriageViewsActive.Set(float64(n))
	})
	return &Handler{
		storage: store,
		views:   views,
		log:     log,
		now:     time.Now,
	}
}

// Request types
type UpdateStatusRequest struct {
	Status models.AlertStatus `json:"status" validate:"required,oneof=new investigating resolved false_positive"`
}

// List returns the alerts matching the severity, status, category, q and expr
// query parameters, in stored order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := triage.NewFilter(q.Get("severity"), q.Get("status"), q.Get("category"), q.Get("q"))
	expression := q.Get("expr")

	all, err := h.storage.Alerts().List(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	visible, apiErr := filterAlerts(all, filter, expression)
	if apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	response.OK(w, ListResponse{
		Items:  h.items(visible, nil),
		Total:  len(visible),
		Filter: filter,
		Expr:   expression,
	})
}

// Summary returns the status counts over every alert.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	all, err := h.storage.Alerts().List(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, triage.Summarize(all))
}

// Get returns one alert with its full details.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	alert, err := h.storage.Alerts().GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, h.item(alert, false))
}

// UpdateStatus moves an alert to any status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	if err := h.storage.Alerts().UpdateStatus(r.Context(), id, req.Status); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	metrics.AlertStatusChanges.WithLabelValues(string(req.Status)).Inc()
	h.log.Info("alert status changed", zap.String("alert_id", id), zap.String("status", string(req.Status)))

	alert, err := h.storage.Alerts().GetByID(r.Context(), id)
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, h.item(alert, false))
}

// Refresh discards the stored alerts and loads a freshly generated set.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	fresh := fixtures.Alerts(h.now())
	if err := h.storage.Alerts().ReplaceAll(r.Context(), fresh); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	metrics.RefreshLoadsTotal.WithLabelValues("alerts", "manual").Inc()

	response.OK(w, ListResponse{
		Items:  h.items(fresh, nil),
		Total:  len(fresh),
		Filter: triage.NewFilter("", "", "", ""),
	})
}

func (h *Handler) item(a *models.Alert, selected bool) AlertItem {
	return AlertItem{
		Alert:    a,
		TimeAgo:  timeago.Format(a.Timestamp, h.now()),
		Selected: selected,
	}
}

func (h *Handler) items(alerts []*models.Alert, selected map[string]bool) []AlertItem {
	items := make([]AlertItem, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, h.item(a, selected[a.ID]))
	}
	return items
}

// filterAlerts applies the filter controls and then the optional expression.
func filterAlerts(all []*models.Alert, filter triage.Filter, expression string) ([]*models.Alert, *response.Error) {
	visible := triage.Apply(all, filter)
	if expression == "" {
		return visible, nil
	}

	ef, err := triage.CompileExpr(expression)
	if err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	visible, err = triage.ApplyExpr(visible, ef)
	if err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	return visible, nil
}
