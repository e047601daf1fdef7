// ABOUTME: JSON response helpers and the error-to-status mapping
// ABOUTME: Domain errors become structured {error, code} bodies; internals stay generic

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/harborview/orgadmin/internal/collection"
)

type errorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Code: status})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Storage
// and other unexpected errors are logged with full detail and surfaced as a
// generic 500 so backend internals never leak to callers.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, collection.ErrValidation),
		errors.Is(err, collection.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, collection.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, collection.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, collection.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
