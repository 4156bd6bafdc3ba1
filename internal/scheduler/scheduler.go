package scheduler

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/values"
)

// scopeFrame collects the tasks spawned inside one `scope` block.
type scopeFrame struct {
	ordered bool
	tasks   []*values.Task
}

// Scheduler owns the process-wide per-thread scope-frame stacks and the
// thread -> driving-task index cancellation checks consult.
type Scheduler struct {
	mu          sync.Mutex
	scopes      map[context.ThreadID][]*scopeFrame
	threadTasks map[context.ThreadID]*Task
}

// New builds an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		scopes:      make(map[context.ThreadID][]*scopeFrame),
		threadTasks: make(map[context.ThreadID]*Task),
	}
}

// StartScope pushes a new task-collection frame for thread.
func (s *Scheduler) StartScope(thread context.ThreadID, ordered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes[thread] = append(s.scopes[thread], &scopeFrame{ordered: ordered})
}

// EndScope pops thread's innermost frame and awaits every task it
// collected: in spawn order when the frame is ordered, in completion
// order (via errgroup) otherwise. Returns the first error encountered, if
// any; per-task pending-task accounting already happened inside Spawn
// regardless of whether the result is ever awaited here.
func (s *Scheduler) EndScope(thread context.ThreadID) ([]values.Value, error) {
	frame := s.popScope(thread)
	if frame == nil || len(frame.tasks) == 0 {
		return nil, nil
	}

	if frame.ordered {
		results := make([]values.Value, len(frame.tasks))
		for i, t := range frame.tasks {
			v, err := t.Await()
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return results, nil
	}

	var mu sync.Mutex
	var results []values.Value
	var g errgroup.Group
	for _, t := range frame.tasks {
		t := t
		g.Go(func() error {
			v, err := t.Await()
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, v)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Scheduler) popScope(thread context.ThreadID) *scopeFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	stack := s.scopes[thread]
	if len(stack) == 0 {
		return nil
	}
	frame := stack[len(stack)-1]
	s.scopes[thread] = stack[:len(stack)-1]
	return frame
}

// Spawn starts fn on a fresh thread derived from parentCtx, returning the
// values.Task handle immediately. The owning context's pending-tasks
// counter is incremented before the goroutine starts and released when it
// finishes, regardless of whether anything ever awaits the task. If
// parentCtx's thread has an open scope, the task registers into its
// innermost frame so a subsequent `scope` exit collects it automatically.
func (s *Scheduler) Spawn(parentCtx *context.Context, fn func(childCtx *context.Context) (values.Value, error)) (*values.Task, error) {
	childCtx, err := context.RegisterSpawn(parentCtx)
	if err != nil {
		return nil, err
	}

	parentCtx.AddPendingTask()
	t := newTask()
	s.registerThreadTask(childCtx.Owner, t)
	t.run(func() (values.Value, error) {
		defer parentCtx.ReleasePendingTask()
		defer s.unregisterThreadTask(childCtx.Owner)
		return fn(childCtx)
	})

	vt := values.NewTask(uuid.NewString(), t)
	s.registerSpawnIntoScope(parentCtx.Owner, vt)
	return vt, nil
}

func (s *Scheduler) registerSpawnIntoScope(thread context.ThreadID, vt *values.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stack := s.scopes[thread]
	if len(stack) == 0 {
		return
	}
	top := stack[len(stack)-1]
	top.tasks = append(top.tasks, vt)
}

func (s *Scheduler) registerThreadTask(thread context.ThreadID, t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadTasks[thread] = t
}

func (s *Scheduler) unregisterThreadTask(thread context.ThreadID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threadTasks, thread)
}

// IsCancelled reports whether the task driving thread has been asked to
// cancel. The evaluator consults this at node boundaries; a thread with
// no driving task (the program's root thread) is never cancelled.
func (s *Scheduler) IsCancelled(thread context.ThreadID) bool {
	s.mu.Lock()
	t, ok := s.threadTasks[thread]
	s.mu.Unlock()
	return ok && t.IsCancelled()
}
