// Package help serves the FAQ search and support request endpoints.
package help

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/fixtures"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// Handler handles help-centre endpoints.
type Handler struct {
	storage storage.Storage
	faqs    []*models.FAQ
	log     *zap.Logger
	now     func() time.Time
}

// NewHandler creates a help handler over the built-in FAQ list.
func NewHandler(store storage.Storage, log *zap.Logger) *Handler {
	return &Handler{
		storage: store,
		faqs:    fixtures.FAQs(),
		log:     log,
		now:     time.Now,
	}
}

// SupportRequest is the body of POST /help/support.
type SupportRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type FAQResponse struct {
	Items []*models.FAQ `json:"items"`
	Total int           `json:"total"`
	Query string        `json:"query"`
}

// FAQ returns the questions whose question or answer contains ?q.
func (h *Handler) FAQ(w http.ResponseWriter, r *http.Request) {
	filter := triage.NewFilter("", "", "", r.URL.Query().Get("q"))
	items := triage.Apply(h.faqs, filter)
	response.OK(w, FAQResponse{Items: items, Total: len(items), Query: filter.Search})
}

// Support records a support request.
func (h *Handler) Support(w http.ResponseWriter, r *http.Request) {
	var req SupportRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	sr := &models.SupportRequest{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: h.now(),
	}
	if err := h.storage.Support().Create(r.Context(), sr); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	h.log.Info("support request received", zap.String("request_id", sr.ID), zap.String("subject", sr.Subject))

	response.Created(w, sr)
}
