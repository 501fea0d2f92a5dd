package server

import (
	"encoding/json"
	"net/http"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request, owner *model.User) {
	tags, err := s.deps.Tags.List(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, tags, http.StatusOK)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in createTagIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	tag, err := s.deps.Tags.Create(r.Context(), owner.ID, in.Name, in.Color)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, tag, http.StatusCreated)
}

func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	tag, err := s.deps.Tags.Get(r.Context(), id, owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, tag, http.StatusOK)
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var in updateTagIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	tag, err := s.deps.Tags.Update(r.Context(), id, owner.ID, service.UpdateTagInput{
		Name:  in.Name,
		Color: in.Color,
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, tag, http.StatusOK)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Tags.Delete(r.Context(), id, owner.ID); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "tag deleted"}, http.StatusOK)
}
