package alerts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/metrics"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// ViewResponse is the state of a triage view: its filter, the alerts it
// shows and the current selection.
type ViewResponse struct {
	ID          string        `json:"id"`
	Filter      triage.Filter `json:"filter"`
	Items       []AlertItem   `json:"items"`
	Total       int           `json:"total"`
	Selected    []string      `json:"selected"`
	AllSelected bool          `json:"all_selected"`
}

// BulkResponse reports the alerts consumed by a bulk action.
type BulkResponse struct {
	Action triage.BulkAction `json:"action"`
	IDs    []string          `json:"ids"`
	Count  int               `json:"count"`
}

// Request types
type FilterRequest struct {
	Severity string `json:"severity" validate:"omitempty,oneof=all low medium high critical"`
	Status   string `json:"status" validate:"omitempty,oneof=all new investigating resolved false_positive"`
	Category string `json:"category" validate:"omitempty,oneof=all authentication injection ddos malware anomaly"`
	Search   string `json:"search" validate:"max=200"`
}

type SelectAllRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type SelectRequest struct {
	ID      string `json:"id" validate:"required"`
	Checked *bool  `json:"checked" validate:"required"`
}

type ToggleRequest struct {
	ID string `json:"id" validate:"required"`
}

type BulkRequest struct {
	Action string `json:"action" validate:"required"`
}

// CreateView opens a triage view with an all-pass filter and no selection.
func (h *Handler) CreateView(w http.ResponseWriter, r *http.Request) {
	v := h.views.Create()

	resp, err := h.viewResponse(r, v)
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.Created(w, resp)
}

// GetView returns the view state.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	h.withView(w, r, func(v *triage.View) error { return nil })
}

// SetFilter replaces the view's filter. The selection is kept, including ids
// the new filter hides.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	h.withView(w, r, func(v *triage.View) error {
		v.SetFilter(triage.NewFilter(req.Severity, req.Status, req.Category, req.Search))
		return nil
	})
}

// SelectAll selects exactly the alerts the view shows, or clears the selection.
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	var req SelectAllRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	h.withView(w, r, func(v *triage.View) error {
		visible, err := h.visible(r, v)
		if err != nil {
			return err
		}
		v.SelectAll(triage.IDs(visible), *req.Checked)
		return nil
	})
}

// Select sets one alert's checkbox.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	h.withView(w, r, func(v *triage.View) error {
		v.SetSelected(req.ID, *req.Checked)
		return nil
	})
}

// Toggle flips one alert's checkbox.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	h.withView(w, r, func(v *triage.View) error {
		v.Toggle(req.ID)
		return nil
	})
}

// Bulk applies an action to the selection and clears it. The alerts
// themselves are not modified.
func (h *Handler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	action, err := triage.ParseBulkAction(req.Action)
	if err != nil {
		response.JSONError(w, response.NewValidationError(err.Error()))
		return
	}

	v, err := h.views.Get(chi.URLParam(r, "viewID"))
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	ids := v.Consume()
	metrics.TriageBulkActionsTotal.WithLabelValues(string(action)).Inc()
	metrics.TriageBulkAlertsTotal.WithLabelValues(string(action)).Add(float64(len(ids)))
	h.log.Info("bulk action applied",
		zap.String("view_id", v.ID),
		zap.String("action", string(action)),
		zap.Strings("alert_ids", ids),
	)

	response.OK(w, BulkResponse{Action: action, IDs: ids, Count: len(ids)})
}

// DeleteView drops a view.
func (h *Handler) DeleteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	if _, err := h.views.Get(id); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	h.views.Delete(id)
	response.NoContent(w)
}

// withView resolves the view, applies fn and writes the resulting state.
func (h *Handler) withView(w http.ResponseWriter, r *http.Request, fn func(v *triage.View) error) {
	v, err := h.views.Get(chi.URLParam(r, "viewID"))
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	if err := fn(v); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	resp, err := h.viewResponse(r, v)
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, resp)
}

func (h *Handler) visible(r *http.Request, v *triage.View) ([]*models.Alert, error) {
	all, err := h.storage.Alerts().List(r.Context())
	if err != nil {
		return nil, err
	}
	return triage.Apply(all, v.Filter()), nil
}

func (h *Handler) viewResponse(r *http.Request, v *triage.View) (*ViewResponse, error) {
	visible, err := h.visible(r, v)
	if err != nil {
		return nil, err
	}

	selected := v.Selected()
	marked := make(map[string]bool, len(selected))
	for _, id := range selected {
		marked[id] = true
	}

	return &ViewResponse{
		ID:          v.ID,
		Filter:      v.Filter(),
		Items:       h.items(visible, marked),
		Total:       len(visible),
		Selected:    selected,
		AllSelected: v.AllSelected(triage.IDs(visible)),
	}, nil
}
