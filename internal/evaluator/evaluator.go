// Package evaluator implements the Evaluator (component H): a post-order
// visitor over the parse tree that consults the Context Tree for names,
// the Call & Loop Stacks for control flow, the Operator Algebra for
// expression combination, and the Host Invocation Service / Import
// Resolver for qualified dispatch.
package evaluator

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/hostinvoke"
	"github.com/hikayalang/hikaya/internal/scheduler"
	"github.com/hikayalang/hikaya/internal/stacks"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// Evaluator holds the per-thread Call & Loop Stack state and the shared
// Host Invocation Service registry and Task Scheduler every thread
// dispatches through.
type Evaluator struct {
	hosts *hostinvoke.Registry
	sched *scheduler.Scheduler

	mu    sync.Mutex
	calls map[context.ThreadID]*stacks.CallStack
	loops map[context.ThreadID]*stacks.LoopStack
}

// NewEvaluator builds an Evaluator against the given Host Invocation
// Service registry and Task Scheduler.
func NewEvaluator(hosts *hostinvoke.Registry, sched *scheduler.Scheduler) *Evaluator {
	return &Evaluator{
		hosts: hosts,
		sched: sched,
		calls: make(map[context.ThreadID]*stacks.CallStack),
		loops: make(map[context.ThreadID]*stacks.LoopStack),
	}
}

func (e *Evaluator) callStack(thread context.ThreadID) *stacks.CallStack {
	e.mu.Lock()
	defer e.mu.Unlock()
	cs, ok := e.calls[thread]
	if !ok {
		cs = stacks.NewCallStack(0)
		e.calls[thread] = cs
	}
	return cs
}

func (e *Evaluator) loopStack(thread context.ThreadID) *stacks.LoopStack {
	e.mu.Lock()
	defer e.mu.Unlock()
	ls, ok := e.loops[thread]
	if !ok {
		ls = stacks.NewLoopStack()
		e.loops[thread] = ls
	}
	return ls
}

// inheritThreadState snapshots parent's call and loop stacks into child's
// thread slot, so a freshly spawned task sees the spawning thread's
// in-flight call depth and enclosing loops without sharing state with it.
func (e *Evaluator) inheritThreadState(parent, child context.ThreadID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if cs, ok := e.calls[parent]; ok {
		e.calls[child] = cs.Clone()
	}
	if ls, ok := e.loops[parent]; ok {
		e.loops[child] = ls.Clone()
	}
}

// errCancelled is the sentinel a cancelled task's evaluation unwinds
// with; evalSpawn's wrapper turns it into a None result rather than
// letting it surface as a task failure.
var errCancelled = errors.New("task cancelled")

func (e *Evaluator) checkCancelled(ctx *context.Context) error {
	if e.sched.IsCancelled(ctx.Owner) {
		return errCancelled
	}
	return nil
}

var loopLabelCounter atomic.Uint64

// internalLoopLabel allocates a synthetic label for an unlabeled loop,
// used only as the loop-variable namespace key (Context.CurrentLoopLabel);
// it never participates in break/continue label matching, which reads the
// loop statement's own (possibly empty) Label.
func internalLoopLabel() string {
	loopLabelCounter.Add(1)
	n := loopLabelCounter.Load()
	digits := make([]byte, 0, 20)
	if n == 0 {
		digits = append(digits, '0')
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return "$loop" + string(digits)
}

// execResult is what evaluating a Statement produces: the trailing value
// a Block/TryMatchStatement/function body escapes with (mirroring the
// "last value escapes" rule literal-block expressions follow), and any
// in-flight break/continue/return signal.
type execResult struct {
	Value  values.Value
	Signal stacks.Signal
}

// EvalProgram runs program as a fresh child of parent (the eternal root
// context, or a REPL session context), binding args under the `arguments`
// and `argumentCount` names, and returns the value of its last statement
// or of an explicit top-level return.
func (e *Evaluator) EvalProgram(parent *context.Context, program *ast.Program, args *values.Tuple) (values.Value, error) {
	ctx, err := context.Register(parent, nil)
	if err != nil {
		return nil, herr.InternalBugError(program, "%v", err)
	}
	defer context.Deregister(ctx)

	if args == nil {
		args = values.NewTuple(nil)
	}
	if err := e.bindProgramArgs(ctx, program, args); err != nil {
		return nil, err
	}

	return e.EvalTopLevel(ctx, program.Statements)
}

// EvalTopLevel runs stmts directly in ctx, without registering a further
// child context, resolving an explicit top-level return the same way
// EvalProgram does. The REPL Context uses this directly because it owns
// ctx's registration and deregistration itself, so a session's
// declarations can be merged into the eternal root afterward.
func (e *Evaluator) EvalTopLevel(ctx *context.Context, stmtList []ast.Statement) (values.Value, error) {
	res, err := e.evalStatements(ctx, stmtList)
	if err != nil {
		if rerr, ok := err.(*herr.RuntimeError); ok {
			frames := make([]string, 0, len(e.callStack(ctx.Owner).Frames()))
			for _, f := range e.callStack(ctx.Owner).Frames() {
				frames = append(frames, f.String())
			}
			return nil, rerr.WithFrames(frames)
		}
		return nil, err
	}
	if res.Signal.Kind == stacks.SignalReturn {
		if v, ok := res.Signal.Result.(values.Value); ok {
			return v, nil
		}
		return values.None{}, nil
	}
	return res.Value, nil
}

// evalStatements runs stmts in order within ctx, threading the trailing
// value of whichever statement last produced one and stopping as soon as
// a control-flow signal goes active.
func (e *Evaluator) evalStatements(ctx *context.Context, stmtList []ast.Statement) (execResult, error) {
	var last values.Value = values.None{}
	for _, st := range stmtList {
		res, err := e.EvalStmt(ctx, st)
		if err != nil {
			return execResult{}, err
		}
		if res.Value != nil {
			last = res.Value
		}
		if res.Signal.IsActive() {
			return execResult{Value: last, Signal: res.Signal}, nil
		}
	}
	return execResult{Value: last}, nil
}
