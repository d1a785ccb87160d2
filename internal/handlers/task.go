package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"tasklist/internal/filter"
	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

// ListTasks returns the tasks visible under the current filter. A "filter"
// query parameter projects through another mode without changing the current one.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("filter")
	if name == "" {
		h.respondList(w)
		return
	}

	mode, err := models.ParseFilterMode(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, listResponse{
		Filter: mode,
		Tasks:  filter.Project(h.store.Tasks(), mode),
	})
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.store.Get(parseID(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// CreateTask appends a new task. An empty title is ignored.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	task, ok := h.store.Add(r.FormValue("title"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.respondJSON(w, http.StatusCreated, task)
}

// UpdateTask replaces a task's title.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	h.store.Edit(parseID(r, "id"), r.FormValue("title"))
	h.respondList(w)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(parseID(r, "id"))
	h.respondList(w)
}

// ToggleTask toggles the completion status of a task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleCompletion(parseID(r, "id"))
	h.respondList(w)
}

// ReorderTasks applies a drag-and-drop result. The ids are the visible tasks
// in their new order; tasks hidden by the current filter keep their positions.
func (h *Handlers) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs []string `json:"ids"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	order := filter.ExpandOrder(h.store.Tasks(), h.view.Mode(), payload.IDs)
	if err := h.store.Reorder(order); err != nil {
		if errors.Is(err, tasks.ErrInvalidOrder) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("internal server error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondList(w)
}
