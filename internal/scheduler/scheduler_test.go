package scheduler

import (
	"errors"
	"testing"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/values"
)

func newRootT(t *testing.T) *context.Context {
	t.Helper()
	context.Reset()
	root, err := context.Register(nil, nil)
	if err != nil {
		t.Fatalf("Register(nil): %v", err)
	}
	return root
}

func TestSpawnAwaitReturnsResult(t *testing.T) {
	root := newRootT(t)
	s := New()

	task, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
		return values.Int(42), nil
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	v, err := task.Await()
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if i, _ := v.(values.Number).AsInt64(); i != 42 {
		t.Errorf("Await() = %v, want 42", v)
	}
}

func TestSpawnIncrementsAndReleasesPendingTasks(t *testing.T) {
	root := newRootT(t)
	s := New()

	release := make(chan struct{})
	task, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
		<-release
		return values.None{}, nil
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if root.PendingTasks() != 1 {
		t.Fatalf("PendingTasks() = %d, want 1 while task is in flight", root.PendingTasks())
	}

	close(release)
	if _, err := task.Await(); err != nil {
		t.Fatalf("Await: %v", err)
	}
	if root.PendingTasks() != 0 {
		t.Errorf("PendingTasks() = %d after Await, want 0", root.PendingTasks())
	}
}

func TestSpawnPropagatesError(t *testing.T) {
	root := newRootT(t)
	s := New()
	wantErr := errors.New("boom")

	task, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
		return nil, wantErr
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if _, err := task.Await(); err != wantErr {
		t.Errorf("Await() error = %v, want %v", err, wantErr)
	}
}

func TestScopeOrderedCollectsInSpawnOrder(t *testing.T) {
	root := newRootT(t)
	s := New()
	s.StartScope(root.Owner, true)

	starts := make(chan int, 2)
	releases := [2]chan struct{}{make(chan struct{}), make(chan struct{})}
	for i := 0; i < 2; i++ {
		i := i
		_, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
			starts <- i
			<-releases[i]
			return values.Int(int64(i)), nil
		})
		if err != nil {
			t.Fatalf("Spawn %d: %v", i, err)
		}
	}
	<-starts
	<-starts
	// Second task finishes first; ordered collection must still return
	// [0, 1] since it follows spawn order, not completion order.
	close(releases[1])
	close(releases[0])

	results, err := s.EndScope(root.Owner)
	if err != nil {
		t.Fatalf("EndScope: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("EndScope results = %v, want 2 elements", results)
	}
	for i, want := range []int64{0, 1} {
		got, _ := results[i].(values.Number).AsInt64()
		if got != want {
			t.Errorf("results[%d] = %v, want %d", i, got, want)
		}
	}
}

func TestScopeUnorderedReturnsFirstError(t *testing.T) {
	root := newRootT(t)
	s := New()
	s.StartScope(root.Owner, false)

	wantErr := errors.New("scope failure")
	if _, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
		return values.Int(1), nil
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if _, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
		return nil, wantErr
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if _, err := s.EndScope(root.Owner); err == nil {
		t.Fatal("expected EndScope to surface the failing task's error")
	}
}

func TestEndScopeOnEmptyFrameIsNoop(t *testing.T) {
	root := newRootT(t)
	s := New()
	s.StartScope(root.Owner, true)

	results, err := s.EndScope(root.Owner)
	if err != nil || results != nil {
		t.Errorf("EndScope on an empty frame = (%v, %v), want (nil, nil)", results, err)
	}
}

func TestIsCancelledTracksTaskThread(t *testing.T) {
	root := newRootT(t)
	s := New()

	release := make(chan struct{})
	var childOwner context.ThreadID
	captured := make(chan struct{})
	task, err := s.Spawn(root, func(childCtx *context.Context) (values.Value, error) {
		childOwner = childCtx.Owner
		close(captured)
		<-release
		return values.None{}, nil
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	<-captured

	if s.IsCancelled(childOwner) {
		t.Error("task should not be cancelled yet")
	}

	task.Cancel()
	if !s.IsCancelled(childOwner) {
		t.Error("IsCancelled should report true once Cancel is called")
	}

	close(release)
	if _, err := task.Await(); err != nil {
		t.Fatalf("Await: %v", err)
	}
}

func TestIsCancelledFalseForUnknownThread(t *testing.T) {
	s := New()
	if s.IsCancelled(context.ThreadID(999999)) {
		t.Error("an unregistered thread should never report cancelled")
	}
}
