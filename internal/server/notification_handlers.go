package server

import (
	"encoding/json"
	"net/http"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request, owner *model.User) {
	notifications, err := s.deps.Notifications.List(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, notifications, http.StatusOK)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	notification, err := s.deps.Notifications.MarkRead(r.Context(), id, owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, notification, http.StatusOK)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request, owner *model.User) {
	count, err := s.deps.Notifications.MarkAllRead(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]int64{"count": count}, http.StatusOK)
}

func (s *Server) handleGetNotificationSettings(w http.ResponseWriter, r *http.Request, owner *model.User) {
	settings, err := s.deps.Notifications.GetSettings(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, notificationSettingsOut(settings), http.StatusOK)
}

func (s *Server) handleUpdateNotificationSettings(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in service.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}

	settings, err := s.deps.Notifications.UpdateSettings(r.Context(), owner.ID, in)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, notificationSettingsOut(settings), http.StatusOK)
}

// notificationSettingsOut projects the channel fields out of the full
// settings row; theme and locale stay under /api/users/settings.
func notificationSettingsOut(settings *model.UserSettings) map[string]bool {
	return map[string]bool{
		"emailNotifications": settings.EmailNotifications,
		"pushNotifications":  settings.PushNotifications,
		"taskReminders":      settings.TaskReminders,
		"dailyDigest":        settings.DailyDigest,
		"weeklyReport":       settings.WeeklyReport,
	}
}
