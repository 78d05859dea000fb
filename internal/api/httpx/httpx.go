package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ethscan-backend/internal/apperr"
	"github.com/baharkarakas/ethscan-backend/internal/repository"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteErr maps a service error onto a status code. Anything unrecognised is
// logged and reported as an opaque 500.
func WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteError(w, http.StatusBadRequest, "invalid_"+fieldOr(ve.Field, "request"), ve.Error(), nil)
	case apperr.IsConfiguration(err):
		slog.Error("configuration", "err", err, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "configuration_error", "service is not configured", nil)
	case apperr.IsUpstream(err):
		slog.Warn("upstream", "err", err, "path", r.URL.Path)
		WriteError(w, http.StatusBadGateway, "upstream_error", "block explorer request failed", nil)
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	default:
		slog.Error("request failed", "err", err, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func fieldOr(f, def string) string {
	if f == "" {
		return def
	}
	return f
}
