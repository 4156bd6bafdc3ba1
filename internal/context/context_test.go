package context

import (
	"testing"

	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

func newRootT(t *testing.T) *Context {
	t.Helper()
	Reset()
	root, err := Register(nil, nil)
	if err != nil {
		t.Fatalf("Register(nil): %v", err)
	}
	return root
}

func TestRegisterRejectsSecondRoot(t *testing.T) {
	newRootT(t)
	if _, err := Register(nil, nil); err == nil {
		t.Fatal("expected a second root registration to fail")
	}
}

func TestDefineAndGetVariable(t *testing.T) {
	root := newRootT(t)
	v := decl.NewVariable("x", root.Depth, nil, false, "")
	_ = v.Set(values.Int(7))
	if err := root.DefineVariable(nil, v); err != nil {
		t.Fatalf("DefineVariable: %v", err)
	}

	got, err := root.GetVariable(nil, "x")
	if err != nil {
		t.Fatalf("GetVariable: %v", err)
	}
	n, _ := got.(values.Number).AsInt64()
	if n != 7 {
		t.Errorf("GetVariable(x) = %v, want 7", got)
	}
}

func TestGetVariableWalksToParent(t *testing.T) {
	root := newRootT(t)
	v := decl.NewVariable("x", root.Depth, nil, false, "")
	_ = v.Set(values.Int(1))
	_ = root.DefineVariable(nil, v)

	child, err := Register(root, nil)
	if err != nil {
		t.Fatalf("Register(root): %v", err)
	}

	if _, err := child.GetVariable(nil, "x"); err != nil {
		t.Errorf("child should see parent's variable: %v", err)
	}
}

func TestGetVariableNotFound(t *testing.T) {
	root := newRootT(t)
	_, err := root.GetVariable(nil, "missing")
	if err == nil {
		t.Fatal("expected VariableNotFound")
	}
	re, ok := err.(*herr.RuntimeError)
	if !ok || re.Kind != herr.VariableNotFound {
		t.Errorf("expected VariableNotFound, got %v", err)
	}
}

func TestDefineVariableRejectsLocalDuplicate(t *testing.T) {
	root := newRootT(t)
	v1 := decl.NewVariable("x", root.Depth, nil, false, "")
	v2 := decl.NewVariable("x", root.Depth, nil, false, "")
	if err := root.DefineVariable(nil, v1); err != nil {
		t.Fatalf("first DefineVariable: %v", err)
	}
	if err := root.DefineVariable(nil, v2); err == nil {
		t.Fatal("expected duplicate DefineVariable to fail")
	}
}

func TestDefineVariableRejectsSiblingDuplicate(t *testing.T) {
	root := newRootT(t)
	a, err := Register(root, nil)
	if err != nil {
		t.Fatalf("Register a: %v", err)
	}
	b, err := Register(root, nil)
	if err != nil {
		t.Fatalf("Register b: %v", err)
	}

	if err := a.DefineVariable(nil, decl.NewVariable("x", a.Depth, nil, false, "")); err != nil {
		t.Fatalf("DefineVariable on a: %v", err)
	}
	if err := b.DefineVariable(nil, decl.NewVariable("x", b.Depth, nil, false, "")); err == nil {
		t.Fatal("expected sibling duplicate to be rejected")
	}
}

func TestParameterArgumentCanonicalization(t *testing.T) {
	root := newRootT(t)
	callA := NewCallID(1, "f")
	callB := NewCallID(1, "f")
	if callA == callB {
		t.Fatal("two calls to the same function must get distinct call ids")
	}

	root.DefineArgument(callA, "n", values.Int(1))
	root.DefineArgument(callB, "n", values.Int(2))
	root.CurrentCallID = callA

	got, err := root.GetVariable(nil, "n")
	if err != nil {
		t.Fatalf("GetVariable: %v", err)
	}
	n, _ := got.(values.Number).AsInt64()
	if n != 1 {
		t.Errorf("GetVariable(n) under callA = %v, want 1", got)
	}

	root.CurrentCallID = callB
	got, _ = root.GetVariable(nil, "n")
	n, _ = got.(values.Number).AsInt64()
	if n != 2 {
		t.Errorf("GetVariable(n) under callB = %v, want 2", got)
	}
}

func TestDeregisterRemovesEmptyContextImmediately(t *testing.T) {
	root := newRootT(t)
	child, _ := Register(root, nil)
	Deregister(child)

	if len(registry.atDepth(child.Depth)) != 0 {
		t.Error("an empty child context should be removed immediately")
	}
}

func TestDeregisterDefersWhilePendingTasks(t *testing.T) {
	root := newRootT(t)
	child, _ := Register(root, nil)
	child.AddPendingTask()

	Deregister(child)
	if !child.PendingRemoval() {
		t.Error("a context with a pending task should be marked pendingRemoval")
	}
	if len(registry.atDepth(child.Depth)) != 1 {
		t.Error("a pending context must not be physically removed yet")
	}

	child.ReleasePendingTask()
	if len(registry.atDepth(child.Depth)) != 0 {
		t.Error("releasing the last pending task should retry and complete deregistration")
	}
}

func TestDeregisterMergesShallowDeclarationsIntoParent(t *testing.T) {
	root := newRootT(t)
	child, _ := Register(root, nil)
	child.AddPendingTask()

	v := decl.NewVariable("shared", root.Depth, nil, false, "")
	_ = v.Set(values.Int(9))
	_ = child.DefineVariable(nil, v)

	Deregister(child)
	if _, ok := root.variables["shared"]; !ok {
		t.Error("a shallow-depth declaration should be merged into the parent on deferred deregistration")
	}
}

func TestAwaitingTaskObservesSiblingTask(t *testing.T) {
	root := newRootT(t)
	a, _ := Register(root, nil)
	b, _ := Register(root, nil)

	fut := &fakeFuture{}
	task := values.NewTask("t1", fut)
	tv := decl.NewVariable("result", a.Depth, nil, false, "")
	_ = tv.Set(task)
	_ = a.DefineVariable(nil, tv)

	b.AwaitingTask = true
	got, err := b.GetVariable(nil, "result")
	if err != nil {
		t.Fatalf("awaiting sibling lookup: %v", err)
	}
	if _, ok := got.(*values.Task); !ok {
		t.Errorf("expected a Task value, got %T", got)
	}
}

func TestExecutionMarkerMergeOnDeregister(t *testing.T) {
	root := newRootT(t)
	child, _ := Register(root, nil)
	node := &testNode{}

	child.MarkExecuted(node)
	Deregister(child)

	if !root.WasExecuted(node) {
		t.Error("execution marker should be copied into parent on deregister")
	}
}

func TestRegisterSpawnAllocatesFreshThread(t *testing.T) {
	root := newRootT(t)
	child, err := RegisterSpawn(root)
	if err != nil {
		t.Fatalf("RegisterSpawn: %v", err)
	}
	if child.Owner == root.Owner {
		t.Error("RegisterSpawn should allocate a new ThreadID distinct from its parent's")
	}
	if child.Depth != root.Depth+1 {
		t.Errorf("child.Depth = %d, want %d", child.Depth, root.Depth+1)
	}
	if child.Parent != root {
		t.Error("child.Parent should be root")
	}
}

func TestRegisterSpawnRejectsNilParent(t *testing.T) {
	newRootT(t)
	if _, err := RegisterSpawn(nil); err == nil {
		t.Error("expected RegisterSpawn(nil) to fail")
	}
}

type testNode struct{ marker ast.ExecMarker }

func (n *testNode) Pos() ast.Position             { return ast.Position{} }
func (n *testNode) ExecMarkerPtr() *ast.ExecMarker { return &n.marker }
func (n *testNode) String() string                 { return "testNode" }

type fakeFuture struct{}

func (f *fakeFuture) Await() (values.Value, error) { return values.Int(1), nil }
func (f *fakeFuture) Cancel()                      {}
func (f *fakeFuture) Done() bool                   { return true }
