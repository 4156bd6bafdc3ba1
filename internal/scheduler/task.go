// Package scheduler implements the Task Scheduler (component I): the
// goroutine-backed Future behind a spawned Task, per-thread scope frames
// that collect nested spawns, and cooperative cancellation observed by
// the evaluator at node boundaries.
package scheduler

import (
	"sync/atomic"

	"github.com/hikayalang/hikaya/internal/values"
)

// Task is the goroutine-backed values.Future behind a spawned expression.
// It satisfies values.Future; values.Task wraps it for the value model.
type Task struct {
	done      chan struct{}
	result    values.Value
	err       error
	cancelled atomic.Bool
}

// newTask allocates a Task not yet running.
func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

// run starts fn on its own goroutine and records its outcome. fn observes
// t's cancellation via IsCancelled from inside the evaluator it drives.
func (t *Task) run(fn func() (values.Value, error)) {
	go func() {
		result, err := fn()
		t.result, t.err = result, err
		close(t.done)
	}()
}

// Await implements values.Future: blocks until the task completes.
func (t *Task) Await() (values.Value, error) {
	<-t.done
	return t.result, t.err
}

// Cancel requests cooperative cancellation. Idempotent.
func (t *Task) Cancel() { t.cancelled.Store(true) }

// IsCancelled reports whether Cancel has been called; the evaluator
// checks this at node boundaries for the thread this task drives.
func (t *Task) IsCancelled() bool { return t.cancelled.Load() }

// Done implements values.Future: non-blocking completion check.
func (t *Task) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
