// Package filter derives the visible task list from the canonical one.
//
// The projection is recomputed from scratch on every read rather than kept in
// sync incrementally; task lists are small and a full scan is always correct.
package filter

import (
	"sync"

	"tasklist/internal/models"
)

// Project returns the tasks matching mode, in their original relative order.
// With FilterAll the result equals tasks.
func Project(tasks []models.Task, mode models.FilterMode) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Source supplies the canonical collection.
type Source interface {
	Tasks() []models.Task
}

// View holds the current filter mode and projects a source through it.
// The mode is process-local and never persisted.
type View struct {
	source Source

	mu   sync.RWMutex
	mode models.FilterMode
}

// NewView creates a view over source showing all tasks.
func NewView(source Source) *View {
	return &View{source: source, mode: models.FilterAll}
}

// Mode returns the current filter mode.
func (v *View) Mode() models.FilterMode {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mode
}

// SetMode changes the filter mode.
func (v *View) SetMode(mode models.FilterMode) {
	v.mu.Lock()
	v.mode = mode
	v.mu.Unlock()
}

// Tasks projects the source's current collection through the current mode.
func (v *View) Tasks() []models.Task {
	return Project(v.source.Tasks(), v.Mode())
}

// ExpandOrder turns a new order of the tasks visible under mode into a new
// order for the whole collection. Hidden tasks keep their positions and the
// visible slots are filled from visible in sequence. The result is only a
// valid permutation when visible is a permutation of the visible ids; callers
// validate it.
func ExpandOrder(tasks []models.Task, mode models.FilterMode, visible []string) []string {
	out := make([]string, 0, len(tasks))
	next := 0
	for _, t := range tasks {
		if !mode.Matches(t) {
			out = append(out, t.ID)
			continue
		}
		if next < len(visible) {
			out = append(out, visible[next])
			next++
		}
	}
	return append(out, visible[next:]...)
}
