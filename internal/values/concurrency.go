package values

import "fmt"

// Future is implemented by internal/scheduler's task handle. values.Task
// only needs to expose identity and a way to block on completion; the
// scheduling machinery (goroutines, cancellation, errgroup) lives in
// internal/scheduler to keep this package free of concurrency-runtime
// concerns.
type Future interface {
	Await() (Value, error)
	Cancel()
	Done() bool
}

// Task is the future-of-Value handle `spawn` produces. Equality is by
// identity, per the value model.
type Task struct {
	ID     string
	future Future
}

// NewTask wraps a Future allocated by internal/scheduler.
func NewTask(id string, future Future) *Task { return &Task{ID: id, future: future} }

func (*Task) Type() string     { return "Task" }
func (t *Task) String() string { return fmt.Sprintf("Task(%s)", t.ID) }
func (t *Task) IsNil() bool    { return t == nil }

// Await blocks until the task completes and returns its result.
func (t *Task) Await() (Value, error) { return t.future.Await() }

// Cancel requests cooperative cancellation, observed at the next
// evaluator node boundary inside the task.
func (t *Task) Cancel() { t.future.Cancel() }

// Done reports whether the task has completed (successfully, with an
// error, or via cancellation).
func (t *Task) Done() bool { return t.future.Done() }

func (t *Task) Equals(other Value) (bool, error) {
	o, ok := other.(*Task)
	if !ok {
		return false, NewComparisonError(t, other, "=")
	}
	return t == o, nil
}

// Channel is a typed mailbox handle. Equality is by identity.
type Channel struct {
	ID      string
	mailbox chan Value
}

// NewChannel builds a Channel with the given buffer capacity.
func NewChannel(id string, capacity int) *Channel {
	return &Channel{ID: id, mailbox: make(chan Value, capacity)}
}

func (*Channel) Type() string     { return "Channel" }
func (c *Channel) String() string { return fmt.Sprintf("Channel(%s)", c.ID) }
func (c *Channel) IsNil() bool    { return c == nil }
func (c *Channel) Equals(other Value) (bool, error) {
	o, ok := other.(*Channel)
	if !ok {
		return false, NewComparisonError(c, other, "=")
	}
	return c == o, nil
}

// Send enqueues v, blocking if the channel is unbuffered or full.
func (c *Channel) Send(v Value) { c.mailbox <- v }

// Receive dequeues a value, blocking until one is available.
func (c *Channel) Receive() Value { return <-c.mailbox }

// TryReceive is a non-blocking Receive, reporting whether a value was
// available.
func (c *Channel) TryReceive() (Value, bool) {
	select {
	case v := <-c.mailbox:
		return v, true
	default:
		return nil, false
	}
}

// Actor is a message-processing handle: an identity plus an inbox the
// host's dispatch loop drains. The dispatch/handler logic lives outside
// this package (internal/scheduler or the evaluator), since this is the
// runtime value, not the runtime.
type Actor struct {
	ID    string
	Inbox *Channel
}

// NewActor builds an Actor with a fresh inbox of the given capacity.
func NewActor(id string, inboxCapacity int) *Actor {
	return &Actor{ID: id, Inbox: NewChannel(id+"-inbox", inboxCapacity)}
}

func (*Actor) Type() string     { return "Actor" }
func (a *Actor) String() string { return fmt.Sprintf("Actor(%s)", a.ID) }
func (a *Actor) IsNil() bool    { return a == nil }
func (a *Actor) Equals(other Value) (bool, error) {
	o, ok := other.(*Actor)
	if !ok {
		return false, NewComparisonError(a, other, "=")
	}
	return a == o, nil
}

// Send delivers a message to the actor's inbox.
func (a *Actor) Send(v Value) { a.Inbox.Send(v) }
