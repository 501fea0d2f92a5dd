package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"todoapp/internal/model"
	"todoapp/internal/repository"
	"todoapp/internal/service"
)

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, owner *model.User) {
	q := r.URL.Query()

	filter := repository.TaskFilter{
		Search:  q.Get("search"),
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}

	if v := q.Get("status"); v != "" {
		status, ok := model.ParseTaskStatus(v)
		if !ok {
			writeError(w, "invalid status", http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}
	if v := q.Get("priority"); v != "" {
		priority, ok := model.ParseTaskPriority(v)
		if !ok {
			writeError(w, "invalid priority", http.StatusBadRequest)
			return
		}
		filter.Priority = &priority
	}
	if v := q.Get("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil || id == 0 {
			writeError(w, "invalid categoryId", http.StatusBadRequest)
			return
		}
		cid := uint(id)
		filter.CategoryID = &cid
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, "invalid page", http.StatusBadRequest)
			return
		}
		filter.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, "invalid size", http.StatusBadRequest)
			return
		}
		filter.Size = n
	}

	page, err := s.deps.Tasks.List(r.Context(), owner.ID, filter)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, page, http.StatusOK)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in createTaskIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	input := service.CreateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		CategoryID:  in.CategoryID,
		TagIDs:      in.TagIDs,
	}
	if in.Priority != nil {
		priority, ok := model.ParseTaskPriority(*in.Priority)
		if !ok {
			writeError(w, "invalid priority", http.StatusBadRequest)
			return
		}
		input.Priority = &priority
	}

	task, err := s.deps.Tasks.Create(r.Context(), owner.ID, input)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, task, http.StatusCreated)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	task, err := s.deps.Tasks.Get(r.Context(), id, owner.ID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, task, http.StatusOK)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var in updateTaskIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	input := service.UpdateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		CategoryID:  in.CategoryID,
		TagIDs:      in.TagIDs,
	}
	if in.Priority != nil {
		priority, ok := model.ParseTaskPriority(*in.Priority)
		if !ok {
			writeError(w, "invalid priority", http.StatusBadRequest)
			return
		}
		input.Priority = &priority
	}

	task, err := s.deps.Tasks.Update(r.Context(), id, owner.ID, input)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, task, http.StatusOK)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Tasks.Delete(r.Context(), id, owner.ID); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request, owner *model.User) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var in taskStatusIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}
	status, ok := model.ParseTaskStatus(in.Status)
	if !ok {
		writeError(w, "invalid status", http.StatusBadRequest)
		return
	}

	task, err := s.deps.Tasks.SetStatus(r.Context(), id, owner.ID, status)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, task, http.StatusOK)
}

func (s *Server) handleBulkTasks(w http.ResponseWriter, r *http.Request, owner *model.User) {
	var in bulkTasksIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "invalid json", http.StatusBadRequest)
		return
	}

	op := service.BulkOperation(strings.ToUpper(strings.TrimSpace(in.Operation)))
	count, err := s.deps.Tasks.Bulk(r.Context(), owner.ID, op, in.TaskIDs, in.CategoryID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, map[string]int{"count": count}, http.StatusOK)
}

func (s *Server) handleExportTasks(w http.ResponseWriter, r *http.Request, owner *model.User) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	data, err := s.deps.Tasks.Export(r.Context(), owner.ID, format)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(data))
}
