package idgen

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		id := New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d calls: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNew_IsUUIDv4(t *testing.T) {
	id := New()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected a parseable uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("expected version 4, got %d", parsed.Version())
	}
}
