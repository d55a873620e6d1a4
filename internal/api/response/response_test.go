package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/charts"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *Error {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"storage not found", fmt.Errorf("get: %w", storage.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"view not found", triage.ErrViewNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"chart kind", fmt.Errorf("%w: radar", charts.ErrUnknownKind), http.StatusNotFound, ErrCodeNotFound},
		{"api error", NewValidationError("bad"), http.StatusBadRequest, ErrCodeValidationFailed},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, zap.NewNop(), tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			apiErr := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.NotContains(t, apiErr.Message, "disk on fire")
		})
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"n": 1})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"n":1}}`, rec.Body.String())
}

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Theme string `json:"theme" validate:"oneof=light dark"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"a","theme":"dark"}`, ""},
		{"empty body", ``, "request body is required"},
		{"malformed", `{"name":`, "invalid request body"},
		{"unknown field", `{"name":"a","theme":"dark","extra":1}`, "invalid request body"},
		{"missing required", `{"theme":"dark"}`, "name is required"},
		{"bad email", `{"name":"a","theme":"dark","email":"nope"}`, "email must be a valid email address"},
		{"bad enum", `{"name":"a","theme":"blue"}`, "theme must be one of [light dark]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var v sample
			apiErr := Decode(httptest.NewRecorder(), req, &v)
			if tt.wantErr == "" {
				assert.Nil(t, apiErr)
				return
			}
			require.NotNil(t, apiErr)
			assert.Contains(t, apiErr.Message, tt.wantErr)
		})
	}
}
