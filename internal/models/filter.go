package models

import (
	"errors"
	"fmt"
)

// ErrUnknownFilter is returned when a filter name is not recognised.
var ErrUnknownFilter = errors.New("unknown filter")

// FilterMode selects which tasks are shown.
type FilterMode string

const (
	FilterAll         FilterMode = "All"
	FilterCompleted   FilterMode = "Completed"
	FilterIncompleted FilterMode = "Incompleted"
)

// FilterModes lists the modes in menu order.
var FilterModes = []FilterMode{FilterAll, FilterIncompleted, FilterCompleted}

// ParseFilterMode converts a name into a FilterMode. An empty name means All.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterIncompleted:
		return FilterIncompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// Matches reports whether the task belongs in a view filtered by m.
// Unknown modes match everything.
func (m FilterMode) Matches(t Task) bool {
	switch m {
	case FilterCompleted:
		return t.Completed
	case FilterIncompleted:
		return !t.Completed
	default:
		return true
	}
}

func (m FilterMode) String() string {
	return string(m)
}
