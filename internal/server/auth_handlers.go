package server

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	result, err := s.deps.Auth.Register(r.Context(), in.Email, in.Password, in.ConfirmPassword, in.Name)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	result, err := s.deps.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// handleRefresh reads the refresh token from the Authorization header, the
// same place session tokens travel.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, "missing bearer token", http.StatusBadRequest)
		return
	}

	result, err := s.deps.Auth.Refresh(r.Context(), token)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.deps.Auth.Logout()
	writeJSON(w, map[string]string{"message": "logged out"}, http.StatusOK)
}

// handleForgotPassword answers 200 no matter what; the response must not
// reveal whether the email is registered.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotPasswordIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !validEmail(in.Email) {
		writeFieldErrors(w, fieldErrors{"email": "a valid email is required"})
		return
	}

	if err := s.deps.Auth.ForgotPassword(r.Context(), in.Email); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "if the email exists, a reset link has been sent"}, http.StatusOK)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetPasswordIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	if err := s.deps.Auth.ResetPassword(r.Context(), in.Token, in.NewPassword); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "password updated"}, http.StatusOK)
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var in verifyEmailIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if in.Token == "" {
		writeFieldErrors(w, fieldErrors{"token": "is required"})
		return
	}

	if err := s.deps.Auth.VerifyEmail(r.Context(), in.Token); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "email verified"}, http.StatusOK)
}
