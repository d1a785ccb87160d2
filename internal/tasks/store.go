// Package tasks owns the canonical task list. Every change is applied in
// memory first and then written, whole, to a kv.Store in the background.
//
// Invalid operations (an empty title on Add, an unknown id on Edit, Delete or
// ToggleCompletion) are silent no-ops so that a view working from stale state
// never fails. Storage failures are logged and never reach the caller.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tasklist/internal/idgen"
	"tasklist/internal/kv"
	"tasklist/internal/models"
)

// DefaultKey is the storage key the task list is kept under.
const DefaultKey = "@tasks"

// ErrInvalidOrder is returned by Reorder when the ids are not a permutation of
// the current collection.
var ErrInvalidOrder = errors.New("order must be a permutation of the current task ids")

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen idgen.Func) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store holds the ordered task collection.
type Store struct {
	backend kv.Store
	key     string
	newID   idgen.Func
	logger  *slog.Logger
	writer  *writer

	mu    sync.Mutex
	tasks []models.Task

	subMu   sync.Mutex
	subs    map[int]func([]models.Task)
	nextSub int
}

// New creates an empty store persisting to backend. Call Load to restore the
// saved list and Close to flush pending writes.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		newID:   idgen.New,
		logger:  slog.Default(),
		tasks:   []models.Task{},
		subs:    make(map[int]func([]models.Task)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writer = newWriter(backend, s.key, s.logger)
	return s
}

// Load replaces the collection with the saved one. A missing key leaves the
// collection as it is; so does a read or parse failure, which is logged.
func (s *Store) Load(ctx context.Context) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("error loading tasks", "key", s.key, "error", err)
		return
	}
	if !ok {
		return
	}

	loaded, err := Decode(data)
	if err != nil {
		s.logger.Error("error loading tasks", "key", s.key, "error", err)
		return
	}

	s.mu.Lock()
	s.tasks = loaded
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Add appends a new incomplete task. An empty title is ignored and reported
// with ok == false.
func (s *Store) Add(title string) (task models.Task, ok bool) {
	task = models.Task{Title: title}
	if err := task.Validate(); err != nil {
		return models.Task{}, false
	}

	s.mutate(func() bool {
		task.ID = s.newID()
		s.tasks = append(s.tasks, task)
		return true
	})
	return task, true
}

// Delete removes the task with the given id, if present.
func (s *Store) Delete(id string) {
	s.mutate(func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		return true
	})
}

// Edit replaces the title of the task with the given id, if present.
func (s *Store) Edit(id, title string) {
	s.mutate(func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.tasks[i].Title = title
		return true
	})
}

// ToggleCompletion flips the completed flag of the task with the given id, if
// present.
func (s *Store) ToggleCompletion(id string) {
	s.mutate(func() bool {
		i := s.indexLocked(id)
		if i < 0 {
			return false
		}
		s.tasks[i] = s.tasks[i].Toggled()
		return true
	})
}

// Reorder arranges the collection in the order of ids. ids must contain each
// current task id exactly once; otherwise ErrInvalidOrder is returned and the
// order is left alone.
func (s *Store) Reorder(ids []string) error {
	var reorderErr error
	s.mutate(func() bool {
		if len(ids) != len(s.tasks) {
			reorderErr = fmt.Errorf("%w: got %d ids for %d tasks", ErrInvalidOrder, len(ids), len(s.tasks))
			return false
		}

		byID := make(map[string]models.Task, len(s.tasks))
		for _, t := range s.tasks {
			byID[t.ID] = t
		}

		ordered := make([]models.Task, 0, len(ids))
		for _, id := range ids {
			t, ok := byID[id]
			if !ok {
				reorderErr = fmt.Errorf("%w: unknown or repeated id %q", ErrInvalidOrder, id)
				return false
			}
			delete(byID, id)
			ordered = append(ordered, t)
		}

		s.tasks = ordered
		return true
	})
	return reorderErr
}

// Subscribe registers fn to receive a snapshot of the collection after every
// change and after a successful Load. fn runs on the mutating goroutine and
// must not call back into the store's mutating methods. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func([]models.Task)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Flush waits until every change made so far has been written (or has failed).
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close writes out pending changes and stops the background writer. It does
// not close the backend. Changes made after Close are kept in memory only.
func (s *Store) Close() error {
	s.writer.close()
	return nil
}

// mutate applies fn under the lock. When fn reports a change, the new state is
// queued for writing before the lock is released, so writes reach the backend
// in the same order as the changes that produced them.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshotLocked()
	s.schedulePersistLocked(snapshot)
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) schedulePersistLocked(snapshot []models.Task) {
	payload, err := Encode(snapshot)
	if err != nil {
		s.logger.Error("error saving tasks", "key", s.key, "error", err)
		return
	}
	if !s.writer.enqueue(payload) {
		s.logger.Warn("store closed, change not saved", "key", s.key)
	}
}

func (s *Store) notify(snapshot []models.Task) {
	s.subMu.Lock()
	fns := make([]func([]models.Task), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (s *Store) snapshotLocked() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
