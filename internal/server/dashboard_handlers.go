package server

import (
	"net/http"

	"todoapp/internal/model"
)

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request, owner *model.User) {
	stats, err := s.deps.Dashboard.Statistics(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, stats, http.StatusOK)
}

func (s *Server) handleTodayTasks(w http.ResponseWriter, r *http.Request, owner *model.User) {
	tasks, err := s.deps.Dashboard.TodayTasks(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"tasks": tasks}, http.StatusOK)
}

func (s *Server) handleUpcomingTasks(w http.ResponseWriter, r *http.Request, owner *model.User) {
	tasks, err := s.deps.Dashboard.UpcomingTasks(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"tasks": tasks}, http.StatusOK)
}

func (s *Server) handleOverdueTasks(w http.ResponseWriter, r *http.Request, owner *model.User) {
	tasks, err := s.deps.Dashboard.OverdueTasks(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"tasks": tasks}, http.StatusOK)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request, owner *model.User) {
	activity, err := s.deps.Dashboard.RecentActivity(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, activity, http.StatusOK)
}
