package engine

import (
	"context"
	"sync"
)

// Task is the handle to one running engine goroutine.
type Task struct {
	done chan struct{}
	mu   sync.Mutex
	err  error
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

// Done returns a channel that is closed when the run has fully terminated,
// finalization included.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the run's terminal error: nil for a clean stop,
// context.Canceled for a canceled run, or the single classified error.
// Only meaningful after Done is closed.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Running reports whether the run is still in progress.
func (t *Task) Running() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the run terminates or ctx is canceled, returning the
// run's terminal error in the former case.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
