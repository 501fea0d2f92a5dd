package server

import (
	"encoding/json"
	"net/http"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, owner *model.User) {
	categories, err := s.deps.Categories.List(r.Context(), owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, categories, http.StatusOK)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in createCategoryIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	category, err := s.deps.Categories.Create(r.Context(), owner.ID, service.CreateCategoryInput{
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, category, http.StatusCreated)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	category, err := s.deps.Categories.Get(r.Context(), id, owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, category, http.StatusOK)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var in updateCategoryIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	category, err := s.deps.Categories.Update(r.Context(), id, owner.ID, service.UpdateCategoryInput{
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, category, http.StatusOK)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Categories.Delete(r.Context(), id, owner.ID); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "category deleted"}, http.StatusOK)
}
