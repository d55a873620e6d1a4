// Package settings serves account settings, the user profile and password changes.
package settings

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/good-yellow-bee/smartdetect/internal/api/response"
	"github.com/good-yellow-bee/smartdetect/internal/metrics"
	"github.com/good-yellow-bee/smartdetect/internal/models"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
)

// Handler handles settings and profile endpoints.
type Handler struct {
	storage storage.Storage
	log     *zap.Logger
	now     func() time.Time
	cost    int
}

// NewHandler creates a settings handler.
func NewHandler(store storage.Storage, log *zap.Logger) *Handler {
	return &Handler{
		storage: store,
		log:     log,
		now:     time.Now,
		cost:    bcrypt.DefaultCost,
	}
}

// Request types
type ProfileRequest struct {
	FirstName        string `json:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"max=40"`
	OrgName          string `json:"org_name" validate:"max=200"`
	OrgSize          string `json:"org_size" validate:"max=100"`
	OrgAddress       string `json:"org_address" validate:"max=300"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// GetSettings returns the stored settings, or the defaults.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.storage.Settings().Get(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, s)
}

// UpdateSettings replaces the settings document.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if apiErr := response.Decode(w, r, &s); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}
	s.UpdatedAt = h.now()

	if err := h.storage.Settings().Save(r.Context(), &s); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	h.log.Info("settings updated",
		zap.Int("data_retention_days", s.DataRetentionDays),
		zap.String("theme", s.Appearance.Theme),
	)
	response.OK(w, &s)
}

// GetProfile returns the user profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.storage.Profile().Get(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, p)
}

// UpdateProfile saves the editable profile fields. Role is read-only.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	p, err := h.storage.Profile().Get(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.Email = req.Email
	p.Phone = req.Phone
	p.OrgName = req.OrgName
	p.OrgSize = req.OrgSize
	p.OrgAddress = req.OrgAddress
	p.TwoFactorEnabled = req.TwoFactorEnabled
	p.UpdatedAt = h.now()

	if err := h.storage.Profile().Save(r.Context(), p); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	response.OK(w, p)
}

// ChangePassword verifies the current password and stores a new hash.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if apiErr := response.Decode(w, r, &req); apiErr != nil {
		response.JSONError(w, apiErr)
		return
	}

	p, err := h.storage.Profile().Get(r.Context())
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.CurrentPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		metrics.PasswordChangesTotal.WithLabelValues("failure").Inc()
		h.log.Warn("password change rejected", zap.String("reason", "current password mismatch"))
		response.JSONError(w, response.NewForbidden("current password is incorrect"))
		return
	}
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), h.cost)
	if err != nil {
		response.Fail(w, h.log, err)
		return
	}
	if err := h.storage.Profile().SetPasswordHash(r.Context(), string(hash)); err != nil {
		response.Fail(w, h.log, err)
		return
	}
	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	h.log.Info("password changed")

	response.NoContent(w)
}
