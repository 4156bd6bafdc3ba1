package evaluator

import (
	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// evalSpawn starts node.Target on a fresh thread and yields a Task handle
// immediately. The spawning thread's call and loop stacks are snapshotted
// into the new thread so a recursion-depth guard and any enclosing loop's
// labels still apply inside the task. Cancellation observed while the
// task body runs resolves to None rather than surfacing as a task
// failure, per the cooperative-cancellation contract.
func (e *Evaluator) evalSpawn(ctx *context.Context, node *ast.SpawnExpr) (values.Value, error) {
	task, err := e.sched.Spawn(ctx, func(childCtx *context.Context) (values.Value, error) {
		e.inheritThreadState(ctx.Owner, childCtx.Owner)
		v, err := e.EvalExpr(childCtx, node.Target)
		if err == errCancelled {
			return values.None{}, nil
		}
		return v, err
	})
	if err != nil {
		return nil, herr.InternalBugError(node, "%v", err)
	}
	return task, nil
}

// evalAwait blocks the current thread until node.Target's task completes,
// toggling AwaitingTask so a sibling-scope lookup that races the await can
// still see a promised value, per GetVariable's awaiting-sibling rule.
func (e *Evaluator) evalAwait(ctx *context.Context, node *ast.AwaitExpr) (values.Value, error) {
	v, err := e.EvalExpr(ctx, node.Target)
	if err != nil {
		return nil, err
	}
	task, ok := v.(*values.Task)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Task", v.Type())
	}

	ctx.AwaitingTask = true
	result, err := task.Await()
	ctx.AwaitingTask = false
	if err != nil {
		if rerr, ok := err.(*herr.RuntimeError); ok {
			return nil, rerr
		}
		return nil, herr.InternalBugError(node, "%v", err)
	}
	return result, nil
}
