package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"todoapp/internal/service"
)

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, msg string, statusCode int) {
	writeJSON(w, map[string]any{"error": msg}, statusCode)
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, map[string]any{"error": "validation failed", "fields": fields}, http.StatusBadRequest)
}

// writeErr translates service error kinds to status codes. Anything
// unknown is a 500 with a generic body; internals never leak.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrHasDependents):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrExpired):
		writeError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrConflict):
		writeError(w, err.Error(), http.StatusConflict)
	default:
		s.log.Error("internal error", "err", err)
		writeError(w, "internal error", http.StatusInternalServerError)
	}
}
