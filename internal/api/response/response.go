// Package response writes the JSON envelope shared by every API handler:
// {"data": ...} on success and {"error": {"code", "message"}} on failure.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/charts"
	"github.com/good-yellow-bee/smartdetect/internal/storage"
	"github.com/good-yellow-bee/smartdetect/internal/triage"
)

// Response is a standard API response wrapper.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// JSONError writes a JSON error response.
func JSONError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	json.NewEncoder(w).Encode(Response{Error: err})
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail maps err to an API error. Known not-found sentinels become 404 and
// *Error values are written as is; anything else is logged and hidden
// behind a 500.
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		JSONError(w, apiErr)
	case errors.Is(err, storage.ErrNotFound):
		JSONError(w, ErrNotFound)
	case errors.Is(err, triage.ErrViewNotFound):
		JSONError(w, NewNotFound("Triage view not found"))
	case errors.Is(err, charts.ErrUnknownKind):
		JSONError(w, NewNotFound(err.Error()))
	default:
		log.Error("request failed", zap.Error(err))
		JSONError(w, ErrInternalServer)
	}
}
