package server

import (
	"encoding/json"
	"net/http"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request, owner *model.User) {
	writeJSON(w, owner, http.StatusOK)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in updateProfileIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := s.deps.Users.UpdateProfile(r.Context(), owner, service.UpdateProfileInput{
		Name:      in.Name,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		AvatarURL: in.AvatarURL,
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, user, http.StatusOK)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request, owner *model.User) {
	if err := s.deps.Users.DeleteAccount(r.Context(), owner.ID); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "account deleted"}, http.StatusOK)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request, owner *model.User) {
	settings, err := s.deps.Users.GetSettings(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, settings, http.StatusOK)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in updateSettingsIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}

	input := service.UpdateSettingsInput{
		NotificationsEnabled: in.NotificationsEnabled,
		Timezone:             in.Timezone,
		Language:             in.Language,
		DateFormat:           in.DateFormat,
		TimeFormat:           in.TimeFormat,
		EmailNotifications:   in.EmailNotifications,
		PushNotifications:    in.PushNotifications,
		TaskReminders:        in.TaskReminders,
		DailyDigest:          in.DailyDigest,
		WeeklyReport:         in.WeeklyReport,
	}
	if in.Theme != nil {
		theme, ok := model.ParseTheme(*in.Theme)
		if !ok {
			writeError(w, "invalid theme", http.StatusBadRequest)
			return
		}
		input.Theme = &theme
	}

	settings, err := s.deps.Users.UpdateSettings(r.Context(), owner.ID, input)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, settings, http.StatusOK)
}
