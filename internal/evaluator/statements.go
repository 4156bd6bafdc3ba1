package evaluator

import (
	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/operators"
	"github.com/hikayalang/hikaya/internal/stacks"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// EvalStmt evaluates st within ctx, returning the trailing value it
// escapes with (if any) and any in-flight break/continue/return signal.
func (e *Evaluator) EvalStmt(ctx *context.Context, st ast.Statement) (execResult, error) {
	if err := e.checkCancelled(ctx); err != nil {
		return execResult{}, err
	}
	switch node := st.(type) {
	case *ast.Block:
		blockCtx, err := context.Register(ctx, nil)
		if err != nil {
			return execResult{}, herr.InternalBugError(node, "%v", err)
		}
		res, err := e.evalStatements(blockCtx, node.Statements)
		context.Deregister(blockCtx)
		return res, err
	case *ast.ExpressionStatement:
		v, err := e.EvalExpr(ctx, node.Expr)
		if err != nil {
			return execResult{}, err
		}
		return execResult{Value: v}, nil
	case *ast.DeclStatement:
		return e.evalDeclStatement(ctx, node)
	case *ast.AssignmentStatement:
		return e.evalAssignmentStatement(ctx, node)
	case *ast.IfStatement:
		return e.evalIfStatement(ctx, node)
	case *ast.ForIndexedStatement:
		return e.evalForIndexed(ctx, node)
	case *ast.ForEachStatement:
		return e.evalForEach(ctx, node)
	case *ast.WhileStatement:
		return e.evalWhile(ctx, node)
	case *ast.RepeatStatement:
		return e.evalRepeat(ctx, node)
	case *ast.BreakStatement:
		return e.evalBreak(ctx, node)
	case *ast.ContinueStatement:
		return e.evalContinue(ctx, node)
	case *ast.ReturnStatement:
		return e.evalReturn(ctx, node)
	case *ast.TryMatchStatement:
		return e.evalTryMatch(ctx, node)
	case *ast.ScopeStatement:
		return e.evalScopeStatement(ctx, node)
	case *ast.FunctionDecl:
		return e.evalFunctionDecl(ctx, node)
	case *ast.BehaviorDecl:
		return e.evalBehaviorDecl(ctx, node)
	case *ast.ImportStatement:
		return e.evalImportStatement(ctx, node)
	default:
		return execResult{}, herr.InternalBugError(st, "unsupported statement node %T", st)
	}
}

func (e *Evaluator) evalDeclStatement(ctx *context.Context, node *ast.DeclStatement) (execResult, error) {
	if node.Value == nil {
		for _, t := range node.Targets {
			v := decl.NewVariable(t.Name, ctx.Depth, node, node.Const, t.Type)
			if err := ctx.DefineVariable(node, v); err != nil {
				return execResult{}, err
			}
		}
		return execResult{}, nil
	}

	val, err := e.EvalExpr(ctx, node.Value)
	if err != nil {
		return execResult{}, err
	}

	if len(node.Targets) == 1 {
		v := decl.NewVariable(node.Targets[0].Name, ctx.Depth, node, node.Const, node.Targets[0].Type)
		if err := v.Set(val); err != nil {
			return execResult{}, err
		}
		if err := ctx.DefineVariable(node, v); err != nil {
			return execResult{}, err
		}
		return execResult{Value: val}, nil
	}

	tup, ok := val.(*values.Tuple)
	if !ok {
		return execResult{}, herr.TupleArityMismatchError(node, len(node.Targets), 1)
	}
	if len(tup.Elements) != len(node.Targets) {
		return execResult{}, herr.TupleArityMismatchError(node, len(node.Targets), len(tup.Elements))
	}
	seen := make(map[string]bool, len(node.Targets))
	for i, t := range node.Targets {
		if seen[t.Name] {
			return execResult{}, herr.ForeachTargetDuplicateError(node, t.Name)
		}
		seen[t.Name] = true
		v := decl.NewVariable(t.Name, ctx.Depth, node, node.Const, t.Type)
		if err := v.Set(tup.Elements[i]); err != nil {
			return execResult{}, err
		}
		if err := ctx.DefineVariable(node, v); err != nil {
			return execResult{}, err
		}
	}
	return execResult{Value: val}, nil
}

func (e *Evaluator) evalAssignmentStatement(ctx *context.Context, node *ast.AssignmentStatement) (execResult, error) {
	newVal, err := e.EvalExpr(ctx, node.Value)
	if err != nil {
		return execResult{}, err
	}

	if node.Target.Identifier != "" && node.Op == "=" {
		if err := ctx.SetVariable(node, node.Target.Identifier, newVal); err != nil {
			return execResult{}, err
		}
		return execResult{Value: newVal}, nil
	}

	var lv operators.Lvalue
	if node.Target.Identifier != "" {
		v, ok := ctx.LookupVariable(node.Target.Identifier)
		if !ok {
			return execResult{}, herr.VariableNotFoundError(node, node.Target.Identifier)
		}
		lv = v
	} else {
		resolved, err := e.resolveLvalueExpr(ctx, node.Target.Path)
		if err != nil {
			return execResult{}, err
		}
		if node.Op == "=" {
			if err := resolved.Set(newVal); err != nil {
				return execResult{}, err
			}
			return execResult{Value: newVal}, nil
		}
		lv = resolved
	}

	op, ok := baseAssignOp(node.Op)
	if !ok {
		return execResult{}, herr.InternalBugError(node, "unknown assignment operator %q", node.Op)
	}
	cur, err := lv.Get()
	if err != nil {
		return execResult{}, err
	}
	result, err := operators.Apply(node, op, cur, newVal)
	if err != nil {
		return execResult{}, err
	}
	if err := lv.Set(result); err != nil {
		return execResult{}, err
	}
	return execResult{Value: result}, nil
}

func (e *Evaluator) evalIfStatement(ctx *context.Context, node *ast.IfStatement) (execResult, error) {
	cond, err := e.EvalExpr(ctx, node.Condition)
	if err != nil {
		return execResult{}, err
	}
	if values.IsTruthy(cond) {
		return e.runBlock(ctx, node.Then)
	}
	for _, clause := range node.ElseIfs {
		c, err := e.EvalExpr(ctx, clause.Condition)
		if err != nil {
			return execResult{}, err
		}
		if values.IsTruthy(c) {
			return e.runBlock(ctx, clause.Body)
		}
	}
	if node.Else != nil {
		return e.runBlock(ctx, node.Else)
	}
	return execResult{}, nil
}

// runBlock registers a fresh child context for body and runs its
// statements there, the same "one context per logical scope" discipline
// every block-shaped construct follows.
func (e *Evaluator) runBlock(ctx *context.Context, body *ast.Block) (execResult, error) {
	bodyCtx, err := context.Register(ctx, nil)
	if err != nil {
		return execResult{}, herr.InternalBugError(body, "%v", err)
	}
	res, err := e.evalStatements(bodyCtx, body.Statements)
	context.Deregister(bodyCtx)
	return res, err
}

// resolveLoopSignal interprets a signal an iteration produced against the
// label of the loop currently running it: a break/continue whose target
// is empty or matches label is consumed here; anything else propagates to
// an enclosing loop or function.
func resolveLoopSignal(label string, sig stacks.Signal) (consumed, stop bool) {
	switch sig.Kind {
	case stacks.SignalBreak:
		if sig.TargetLabel == "" || sig.TargetLabel == label {
			return true, true
		}
		return false, true
	case stacks.SignalContinue:
		if sig.TargetLabel == "" || sig.TargetLabel == label {
			return true, false
		}
		return false, true
	default: // SignalReturn
		return false, true
	}
}

func (e *Evaluator) evalForIndexed(ctx *context.Context, node *ast.ForIndexedStatement) (execResult, error) {
	fromVal, err := e.EvalExpr(ctx, node.From)
	if err != nil {
		return execResult{}, err
	}
	toVal, err := e.EvalExpr(ctx, node.To)
	if err != nil {
		return execResult{}, err
	}
	from, ok := asInt(fromVal)
	if !ok {
		return execResult{}, herr.InvalidLoopBoundsError(node, "for-loop bounds must be integers")
	}
	to, ok := asInt(toVal)
	if !ok {
		return execResult{}, herr.InvalidLoopBoundsError(node, "for-loop bounds must be integers")
	}
	step := int64(1)
	if node.Step != nil {
		stepVal, err := e.EvalExpr(ctx, node.Step)
		if err != nil {
			return execResult{}, err
		}
		step, ok = asInt(stepVal)
		if !ok || step <= 0 {
			return execResult{}, herr.InvalidLoopBoundsError(node, "for-loop step must be a positive integer")
		}
	}

	ls := e.loopStack(ctx.Owner)
	ls.Push(node.Label, node)
	defer ls.Pop()
	internalLabel := internalLoopLabel()
	savedLabel := ctx.CurrentLoopLabel
	ctx.CurrentLoopLabel = internalLabel
	defer func() { ctx.CurrentLoopLabel = savedLabel }()

	var last values.Value = values.None{}
	for i := from; (!node.Descending && i <= to) || (node.Descending && i >= to); {
		ctx.SetLoopVariable(internalLabel, node.Var, values.Int(i))
		res, err := e.runBlock(ctx, node.Body)
		if err != nil {
			return execResult{}, err
		}
		if res.Value != nil {
			last = res.Value
		}
		if res.Signal.IsActive() {
			consumed, stop := resolveLoopSignal(node.Label, res.Signal)
			if !consumed {
				return execResult{Signal: res.Signal}, nil
			}
			if stop {
				if v, ok2 := res.Signal.Result.(values.Value); ok2 {
					last = v
				}
				break
			}
		}
		if node.Descending {
			i -= step
		} else {
			i += step
		}
	}
	return execResult{Value: last}, nil
}

func asInt(v values.Value) (int64, bool) {
	n, ok := v.(values.Number)
	if !ok {
		return 0, false
	}
	return n.AsInt64()
}

func (e *Evaluator) evalForEach(ctx *context.Context, node *ast.ForEachStatement) (execResult, error) {
	srcVal, err := e.EvalExpr(ctx, node.Source)
	if err != nil {
		return execResult{}, err
	}
	iterable, ok := srcVal.(values.Iterable)
	if !ok {
		return execResult{}, herr.NonIterableError(node, srcVal.Type())
	}

	names := node.Target.Names
	if len(names) > 1 {
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			if seen[n] {
				return execResult{}, herr.ForeachTargetDuplicateError(node, n)
			}
			seen[n] = true
		}
	}

	_, srcIsMap := srcVal.(*values.OrderedMap)
	if !srcIsMap {
		_, srcIsMap = srcVal.(*values.UnorderedMap)
	}

	ls := e.loopStack(ctx.Owner)
	ls.Push(node.Label, node)
	defer ls.Pop()
	internalLabel := internalLoopLabel()
	savedLabel := ctx.CurrentLoopLabel
	ctx.CurrentLoopLabel = internalLabel
	defer func() { ctx.CurrentLoopLabel = savedLabel }()

	it := iterable.Iterator()
	var last values.Value = values.None{}
	var index int64
	for it.Next() {
		cur := it.Current()
		if err := bindForEachTarget(ctx, internalLabel, names, cur, index, srcIsMap); err != nil {
			return execResult{}, err
		}
		res, err := e.runBlock(ctx, node.Body)
		if err != nil {
			return execResult{}, err
		}
		if res.Value != nil {
			last = res.Value
		}
		if res.Signal.IsActive() {
			consumed, stop := resolveLoopSignal(node.Label, res.Signal)
			if !consumed {
				return execResult{Signal: res.Signal}, nil
			}
			if stop {
				if v, ok2 := res.Signal.Result.(values.Value); ok2 {
					last = v
				}
				break
			}
		}
		index++
	}
	return execResult{Value: last}, nil
}

// bindForEachTarget binds names against one iteration's current value,
// per the source-kind-dependent shapes a foreach target can take: a
// list/tuple/set source never yields a 2-Tuple from its own Iterator, so a
// 2-name target synthesizes (index, value); a map source's Iterator
// already yields (key, value) 2-Tuples, so a 2-name target destructures
// that directly and a 3-name target adds the running index.
func bindForEachTarget(ctx *context.Context, label string, names []string, cur values.Value, index int64, isMap bool) error {
	switch len(names) {
	case 1:
		ctx.SetLoopVariable(label, names[0], cur)
		return nil
	case 2:
		if isMap {
			tup, ok := cur.(*values.Tuple)
			if !ok || len(tup.Elements) != 2 {
				return herr.InternalBugError(nil, "map iterator produced a non-pair value")
			}
			ctx.SetLoopVariable(label, names[0], tup.Elements[0])
			ctx.SetLoopVariable(label, names[1], tup.Elements[1])
			return nil
		}
		ctx.SetLoopVariable(label, names[0], values.Int(index))
		ctx.SetLoopVariable(label, names[1], cur)
		return nil
	case 3:
		tup, ok := cur.(*values.Tuple)
		if !ok || len(tup.Elements) != 2 {
			return herr.InternalBugError(nil, "map iterator produced a non-pair value")
		}
		ctx.SetLoopVariable(label, names[0], values.Int(index))
		ctx.SetLoopVariable(label, names[1], tup.Elements[0])
		ctx.SetLoopVariable(label, names[2], tup.Elements[1])
		return nil
	default:
		return herr.InternalBugError(nil, "unsupported foreach target arity %d", len(names))
	}
}

func (e *Evaluator) evalWhile(ctx *context.Context, node *ast.WhileStatement) (execResult, error) {
	ls := e.loopStack(ctx.Owner)
	ls.Push(node.Label, node)
	defer ls.Pop()
	internalLabel := internalLoopLabel()
	savedLabel := ctx.CurrentLoopLabel
	ctx.CurrentLoopLabel = internalLabel
	defer func() { ctx.CurrentLoopLabel = savedLabel }()

	var last values.Value = values.None{}
	for {
		cond, err := e.EvalExpr(ctx, node.Condition)
		if err != nil {
			return execResult{}, err
		}
		if !values.IsTruthy(cond) {
			break
		}
		res, err := e.runBlock(ctx, node.Body)
		if err != nil {
			return execResult{}, err
		}
		if res.Value != nil {
			last = res.Value
		}
		if res.Signal.IsActive() {
			consumed, stop := resolveLoopSignal(node.Label, res.Signal)
			if !consumed {
				return execResult{Signal: res.Signal}, nil
			}
			if stop {
				if v, ok2 := res.Signal.Result.(values.Value); ok2 {
					last = v
				}
				break
			}
		}
	}
	return execResult{Value: last}, nil
}

func (e *Evaluator) evalRepeat(ctx *context.Context, node *ast.RepeatStatement) (execResult, error) {
	ls := e.loopStack(ctx.Owner)
	ls.Push(node.Label, node)
	defer ls.Pop()
	internalLabel := internalLoopLabel()
	savedLabel := ctx.CurrentLoopLabel
	ctx.CurrentLoopLabel = internalLabel
	defer func() { ctx.CurrentLoopLabel = savedLabel }()

	var last values.Value = values.None{}
	for {
		res, err := e.runBlock(ctx, node.Body)
		if err != nil {
			return execResult{}, err
		}
		if res.Value != nil {
			last = res.Value
		}
		stopLoop := false
		if res.Signal.IsActive() {
			consumed, stop := resolveLoopSignal(node.Label, res.Signal)
			if !consumed {
				return execResult{Signal: res.Signal}, nil
			}
			if stop {
				if v, ok2 := res.Signal.Result.(values.Value); ok2 {
					last = v
				}
				stopLoop = true
			}
		}
		if stopLoop {
			break
		}
		until, err := e.EvalExpr(ctx, node.Until)
		if err != nil {
			return execResult{}, err
		}
		if values.IsTruthy(until) {
			break
		}
	}
	return execResult{Value: last}, nil
}

func (e *Evaluator) evalBreak(ctx *context.Context, node *ast.BreakStatement) (execResult, error) {
	ls := e.loopStack(ctx.Owner)
	if ls.Current() == nil {
		return execResult{}, herr.InvalidLoopLabelError(node, node.Label)
	}
	if node.Label != "" {
		if ls.IsCurrentLabel(node.Label) {
			return execResult{}, herr.InvalidLoopLabelError(node, node.Label)
		}
		if !ls.HasLabel(node.Label) {
			return execResult{}, herr.InvalidLoopLabelError(node, node.Label)
		}
	}
	var v values.Value = values.None{}
	if node.Value != nil {
		var err error
		v, err = e.EvalExpr(ctx, node.Value)
		if err != nil {
			return execResult{}, err
		}
	}
	return execResult{Signal: stacks.Signal{Kind: stacks.SignalBreak, CurrentLabel: ls.Current().Label, TargetLabel: node.Label, Result: v}}, nil
}

func (e *Evaluator) evalContinue(ctx *context.Context, node *ast.ContinueStatement) (execResult, error) {
	ls := e.loopStack(ctx.Owner)
	if ls.Current() == nil {
		return execResult{}, herr.InvalidLoopLabelError(node, node.Label)
	}
	if node.Label != "" {
		if ls.IsCurrentLabel(node.Label) {
			return execResult{}, herr.InvalidLoopLabelError(node, node.Label)
		}
		if !ls.HasLabel(node.Label) {
			return execResult{}, herr.InvalidLoopLabelError(node, node.Label)
		}
	}
	return execResult{Signal: stacks.Signal{Kind: stacks.SignalContinue, CurrentLabel: ls.Current().Label, TargetLabel: node.Label}}, nil
}

func (e *Evaluator) evalReturn(ctx *context.Context, node *ast.ReturnStatement) (execResult, error) {
	var v values.Value = values.None{}
	if node.Value != nil {
		var err error
		v, err = e.EvalExpr(ctx, node.Value)
		if err != nil {
			return execResult{}, err
		}
	}
	return execResult{Signal: stacks.Signal{Kind: stacks.SignalReturn, Result: v}}, nil
}

// runArm runs one matched TryMatchStatement arm: a single child context
// binds the unwrapped payload (if named) and runs the arm body's
// statements directly in that context, without a further nested Block
// context.
func (e *Evaluator) runArm(ctx *context.Context, arm ast.MatchArm, payload values.Value) (execResult, error) {
	armCtx, err := context.Register(ctx, nil)
	if err != nil {
		return execResult{}, herr.InternalBugError(arm.Body, "%v", err)
	}
	if arm.Binding != "" {
		v := decl.NewVariable(arm.Binding, armCtx.Depth, arm.Body, false, "")
		if err := v.Set(payload); err != nil {
			context.Deregister(armCtx)
			return execResult{}, err
		}
		if err := armCtx.DefineVariable(arm.Body, v); err != nil {
			context.Deregister(armCtx)
			return execResult{}, err
		}
	}
	res, err := e.evalStatements(armCtx, arm.Body.Statements)
	context.Deregister(armCtx)
	return res, err
}

func findArm(arms []ast.MatchArm, kind string) (ast.MatchArm, bool) {
	for _, a := range arms {
		if a.Kind == kind {
			return a, true
		}
	}
	return ast.MatchArm{}, false
}

func (e *Evaluator) evalTryMatch(ctx *context.Context, node *ast.TryMatchStatement) (execResult, error) {
	subject, err := e.EvalExpr(ctx, node.Subject)
	if err != nil {
		if rerr, ok := err.(*herr.RuntimeError); ok && rerr.Kind.IsCatchable() {
			if arm, ok2 := findArm(node.Arms, "error"); ok2 {
				return e.runArm(ctx, arm, values.NewErrorInfo(rerr))
			}
		}
		return execResult{}, err
	}

	switch s := subject.(type) {
	case values.Result:
		if s.IsOk() {
			payload, _ := s.Unwrap()
			if arm, ok := findArm(node.Arms, "ok"); ok {
				return e.runArm(ctx, arm, payload)
			}
			return execResult{Value: payload}, nil
		}
		payload, _ := s.UnwrapErr()
		if arm, ok := findArm(node.Arms, "error"); ok {
			return e.runArm(ctx, arm, payload)
		}
		return execResult{Value: payload}, nil
	case values.Option:
		if s.IsSome() {
			payload, _ := s.Unwrap()
			if arm, ok := findArm(node.Arms, "some"); ok {
				return e.runArm(ctx, arm, payload)
			}
			return execResult{Value: payload}, nil
		}
		if arm, ok := findArm(node.Arms, "none"); ok {
			return e.runArm(ctx, arm, values.None{})
		}
		return execResult{Value: values.None{}}, nil
	default:
		return execResult{}, herr.TypeMismatchError(node, "Result or Option", subject.Type())
	}
}

func (e *Evaluator) evalScopeStatement(ctx *context.Context, node *ast.ScopeStatement) (execResult, error) {
	e.sched.StartScope(ctx.Owner, node.Ordered)
	res, err := e.runBlock(ctx, node.Body)
	if err != nil {
		e.sched.EndScope(ctx.Owner)
		return execResult{}, err
	}
	results, scopeErr := e.sched.EndScope(ctx.Owner)
	if scopeErr != nil {
		return execResult{}, wrapScopeError(node, scopeErr)
	}
	if len(results) > 0 {
		elems := make([]values.Value, len(results))
		copy(elems, results)
		return execResult{Value: values.NewList(elems), Signal: res.Signal}, nil
	}
	return res, nil
}

func wrapScopeError(node ast.Node, err error) error {
	if rerr, ok := err.(*herr.RuntimeError); ok {
		return rerr
	}
	return herr.InternalBugError(node, "%v", err)
}
