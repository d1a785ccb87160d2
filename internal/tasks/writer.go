package tasks

import (
	"context"
	"log/slog"
	"sync"

	"tasklist/internal/kv"
)

// writeJob is either a payload to store or a flush barrier.
type writeJob struct {
	payload string
	barrier chan struct{}
}

// writer applies queued writes to the backend one at a time, in the order
// they were enqueued. Failures are logged and dropped.
type writer struct {
	backend kv.Store
	key     string
	logger  *slog.Logger

	mu     sync.Mutex
	queue  []writeJob
	closed bool

	wake chan struct{}
	done chan struct{}
}

func newWriter(backend kv.Store, key string, logger *slog.Logger) *writer {
	w := &writer{
		backend: backend,
		key:     key,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.done)

	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			closed := w.closed
			w.mu.Unlock()
			if closed {
				return
			}
			<-w.wake
			continue
		}
		job := w.queue[0]
		w.queue[0] = writeJob{}
		w.queue = w.queue[1:]
		w.mu.Unlock()

		if job.barrier != nil {
			close(job.barrier)
			continue
		}

		if err := w.backend.Set(context.Background(), w.key, job.payload); err != nil {
			w.logger.Error("error saving tasks", "key", w.key, "error", err)
		}
	}
}

func (w *writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// enqueue schedules payload to be written. It reports false once the writer
// has been closed.
func (w *writer) enqueue(payload string) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	w.queue = append(w.queue, writeJob{payload: payload})
	w.mu.Unlock()

	w.signal()
	return true
}

// flush blocks until every write enqueued before the call has been attempted.
func (w *writer) flush(ctx context.Context) error {
	barrier := make(chan struct{})

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		select {
		case <-w.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	w.queue = append(w.queue, writeJob{barrier: barrier})
	w.mu.Unlock()

	w.signal()

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting writes, drains the queue and waits for the worker.
func (w *writer) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.signal()
	<-w.done
}
