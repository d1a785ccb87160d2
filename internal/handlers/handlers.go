package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"tasklist/internal/filter"
	"tasklist/internal/models"
)

// TaskStore is the set of task operations the handlers dispatch to.
type TaskStore interface {
	Tasks() []models.Task
	Get(id string) (models.Task, bool)
	Add(title string) (models.Task, bool)
	Edit(id, title string)
	Delete(id string)
	ToggleCompletion(id string)
	Reorder(ids []string) error
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store  TaskStore
	view   *filter.View
	logger *slog.Logger
}

// New creates a new Handlers instance. The filter mode starts at All.
func New(s TaskStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:  s,
		view:   filter.NewView(s),
		logger: logger,
	}
}

// listResponse is the body returned by every endpoint that changes or lists tasks.
type listResponse struct {
	Filter models.FilterMode `json:"filter"`
	Tasks  []models.Task     `json:"tasks"`
}

// parseID extracts a task ID from URL parameters.
func parseID(r *http.Request, param string) string {
	return chi.URLParam(r, param)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondJSON(w http.ResponseWriter, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("internal server error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

// respondList sends the current projection.
func (h *Handlers) respondList(w http.ResponseWriter) {
	h.respondJSON(w, http.StatusOK, listResponse{
		Filter: h.view.Mode(),
		Tasks:  h.view.Tasks(),
	})
}
