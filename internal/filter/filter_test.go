package filter

import (
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"tasklist/internal/kv"
	"tasklist/internal/models"
	"tasklist/internal/tasks"
)

func TestProject(t *testing.T) {
	a := models.Task{ID: "a", Title: "A", Completed: true}
	b := models.Task{ID: "b", Title: "B"}
	c := models.Task{ID: "c", Title: "C", Completed: true}
	all := []models.Task{a, b, c}

	tests := []struct {
		mode     models.FilterMode
		expected []models.Task
	}{
		{models.FilterAll, []models.Task{a, b, c}},
		{models.FilterCompleted, []models.Task{a, c}},
		{models.FilterIncompleted, []models.Task{b}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := Project(all, tt.mode)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestProject_DoesNotAliasInput(t *testing.T) {
	in := []models.Task{{ID: "a", Title: "A"}}

	out := Project(in, models.FilterAll)
	out[0].Title = "changed"

	if in[0].Title != "A" {
		t.Errorf("expected input to be untouched, got %q", in[0].Title)
	}
}

func TestProject_Empty(t *testing.T) {
	if got := Project(nil, models.FilterCompleted); len(got) != 0 {
		t.Errorf("expected empty projection, got %+v", got)
	}
}

func genTasks() *rapid.Generator[[]models.Task] {
	return rapid.Custom(func(t *rapid.T) []models.Task {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		out := make([]models.Task, n)
		for i := range out {
			out[i] = models.Task{
				ID:        fmt.Sprintf("id-%d", i),
				Title:     rapid.String().Draw(t, "title"),
				Completed: rapid.Bool().Draw(t, "completed"),
			}
		}
		return out
	})
}

func TestProperty_ProjectionIsOrderedSubsequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		collection := genTasks().Draw(t, "collection")
		mode := rapid.SampledFrom(models.FilterModes).Draw(t, "mode")

		got := Project(collection, mode)

		if mode == models.FilterAll && !slices.Equal(got, collection) {
			t.Fatalf("All projection differs from collection")
		}

		// Walk the collection once; every projected task must appear in order.
		j := 0
		for _, task := range collection {
			if j < len(got) && got[j] == task {
				j++
			}
		}
		if j != len(got) {
			t.Fatalf("projection is not a subsequence of the collection")
		}

		want := 0
		for _, task := range collection {
			if mode.Matches(task) {
				want++
			}
		}
		if len(got) != want {
			t.Fatalf("expected %d matching tasks, got %d", want, len(got))
		}
		for _, task := range got {
			if !mode.Matches(task) {
				t.Fatalf("task %+v does not match %s", task, mode)
			}
		}
	})
}

func TestView_RecomputesOnCollectionAndModeChange(t *testing.T) {
	store := tasks.New(kv.NewMemoryStore(nil))
	defer store.Close()
	view := NewView(store)

	if view.Mode() != models.FilterAll {
		t.Fatalf("expected default mode All, got %s", view.Mode())
	}

	x, _ := store.Add("Buy milk")
	store.ToggleCompletion(x.ID)

	view.SetMode(models.FilterCompleted)
	got := view.Tasks()
	if len(got) != 1 || got[0].ID != x.ID {
		t.Fatalf("expected [task X] for Completed, got %+v", got)
	}

	view.SetMode(models.FilterIncompleted)
	if got := view.Tasks(); len(got) != 0 {
		t.Fatalf("expected [] for Incompleted, got %+v", got)
	}

	y, _ := store.Add("Walk dog")
	got = view.Tasks()
	if len(got) != 1 || got[0].ID != y.ID {
		t.Fatalf("expected new task to appear without a mode change, got %+v", got)
	}
}

func TestExpandOrder(t *testing.T) {
	a := models.Task{ID: "a", Completed: true}
	b := models.Task{ID: "b"}
	c := models.Task{ID: "c", Completed: true}
	d := models.Task{ID: "d"}
	all := []models.Task{a, b, c, d}

	tests := []struct {
		name     string
		mode     models.FilterMode
		visible  []string
		expected []string
	}{
		{
			name:     "all view passes order through",
			mode:     models.FilterAll,
			visible:  []string{"d", "c", "b", "a"},
			expected: []string{"d", "c", "b", "a"},
		},
		{
			name:     "completed view keeps incomplete tasks in place",
			mode:     models.FilterCompleted,
			visible:  []string{"c", "a"},
			expected: []string{"c", "b", "a", "d"},
		},
		{
			name:     "incompleted view keeps completed tasks in place",
			mode:     models.FilterIncompleted,
			visible:  []string{"d", "b"},
			expected: []string{"a", "d", "c", "b"},
		},
		{
			name:     "short visible order leaves slots empty",
			mode:     models.FilterCompleted,
			visible:  []string{"c"},
			expected: []string{"c", "b", "d"},
		},
		{
			name:     "surplus ids are appended",
			mode:     models.FilterIncompleted,
			visible:  []string{"b", "d", "x"},
			expected: []string{"a", "b", "c", "d", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandOrder(all, tt.mode, tt.visible)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
