package handlers

import (
	"net/http"

	"tasklist/internal/models"
)

// GetFilter returns the current filter mode and the available ones.
func (h *Handlers) GetFilter(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"filter": h.view.Mode(),
		"modes":  models.FilterModes,
	})
}

// SetFilter changes the filter mode and returns the new projection.
func (h *Handlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	mode, err := models.ParseFilterMode(r.FormValue("filter"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.view.SetMode(mode)
	h.respondList(w)
}
