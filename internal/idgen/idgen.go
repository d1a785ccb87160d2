// Package idgen produces identifiers for new tasks.
package idgen

import "github.com/google/uuid"

// Func generates a new identifier. It must never return the same value twice.
type Func func() string

// New returns a random version 4 UUID in its canonical string form.
func New() string {
	return uuid.NewString()
}
