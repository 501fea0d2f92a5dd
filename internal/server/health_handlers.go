package server

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Health.Ping(r.Context()); err != nil {
		s.log.Error("database health check failed", "err", err)
		writeJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
