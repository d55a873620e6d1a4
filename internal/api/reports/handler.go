// Package reports serves report summaries and exports over the alert store.
package reports

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/report"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

// Handler handles report endpoints.
type Handler struct {
	storage storage.Storage
	log     *zap.Logger
	now     func() time.Time
}

// NewHandler creates a report handler.
func NewHandler(store storage.Storage, log *zap.Logger) *Handler {
	return &Handler{
		storage: store,
		log:     log,
		now:     time.Now,
	}
}

// Summary returns the report for ?from, ?to and ?type.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	rep, apiErr := h.build(r)
	if apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	response.OK(w, rep)
}

// Export streams the report as a download in ?format (csv or json).
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if errors.Is(err, report.ErrUnsupportedFormat) {
		response.JSONError(w, response.NewUnsupported(err.Error()))
		return
	}
	if err != nil {
		response.JSONError(w, response.NewBadRequest(err.Error()))
		return
	}

	rep, apiErr := h.build(r)
	if apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(rep.GeneratedAt)+`"`)
	if err := report.NewExporter(format, w).Export(rep); err != nil {
		// Headers are already sent.
		h.log.Error("report export failed", zap.String("format", string(format)), zap.Error(err))
		return
	}
	h.log.Info("report exported",
		zap.String("format", string(format)),
		zap.String("type", string(rep.Type)),
		zap.Int("alerts", rep.TotalThreats),
	)
}

func (h *Handler) build(r *http.Request) (*models.Report, *response.Error) {
	q := r.URL.Query()

	typ := models.ReportType(q.Get("type"))
	if typ != "" && !typ.Valid() {
		return nil, response.NewValidationError("type must be one of [security threat compliance custom]")
	}
	rng, err := report.ParseRange(q.Get("from"), q.Get("to"))
	if err != nil {
		return nil, response.NewBadRequest(err.Error())
	}

	alerts, err := h.storage.Alerts().List(r.Context())
	if err != nil {
		h.log.Error("list alerts for report", zap.Error(err))
		return nil, response.ErrInternalServer
	}
	return report.Build(alerts, typ, rng, h.now()), nil
}
