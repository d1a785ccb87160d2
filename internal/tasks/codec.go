package tasks

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"tasklist/internal/models"
)

// ErrInvalidData is returned by Decode when the payload parses but would break
// the collection's id invariants.
var ErrInvalidData = errors.New("invalid task data")

// Encode serialises the collection as a JSON array of {id, title, completed}.
// A nil collection encodes as an empty array.
func Encode(tasks []models.Task) (string, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(b), nil
}

// Decode parses a payload written by Encode. Every id must be non-empty and
// unique. A JSON null yields an empty collection.
func Decode(data string) ([]models.Task, error) {
	var tasks []models.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: task %d has no id", ErrInvalidData, i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidData, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
