package evaluator

import (
	"strconv"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/hostinvoke"
	"github.com/hikayalang/hikaya/internal/imports"
	"github.com/hikayalang/hikaya/internal/stacks"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
	"github.com/hikayalang/hikaya/pkg/qualname"
)

// evalArgs evaluates each call argument in source order, splitting
// positional from named.
func (e *Evaluator) evalArgs(ctx *context.Context, args []ast.Argument) ([]values.Value, map[string]values.Value, error) {
	positional := make([]values.Value, 0, len(args))
	var named map[string]values.Value
	for _, a := range args {
		v, err := e.EvalExpr(ctx, a.Value)
		if err != nil {
			return nil, nil, err
		}
		if a.Name == "" {
			positional = append(positional, v)
			continue
		}
		if named == nil {
			named = make(map[string]values.Value)
		}
		named[a.Name] = v
	}
	return positional, named, nil
}

// parseOrdinal converts an ordinal suffix ("2nd", "3rd", ...) to a
// zero-based index, or -1 when suffix is empty or malformed (selecting
// type-based resolution instead).
func parseOrdinal(suffix string) int {
	if suffix == "" {
		return -1
	}
	end := 0
	for end < len(suffix) && suffix[end] >= '0' && suffix[end] <= '9' {
		end++
	}
	if end == 0 {
		return -1
	}
	n, err := strconv.Atoi(suffix[:end])
	if err != nil || n <= 0 {
		return -1
	}
	return n - 1
}

// EvalCallExpr dispatches a call by its callee shape: a bare identifier is
// a user-declared free function or a qualified host/builtin call; a
// call-chain callee is qualified dispatch, possibly rooted at a local
// variable's value.
func (e *Evaluator) EvalCallExpr(ctx *context.Context, node *ast.CallExpr) (values.Value, error) {
	positional, named, err := e.evalArgs(ctx, node.Args)
	if err != nil {
		return nil, err
	}
	switch callee := node.Callee.(type) {
	case *ast.Identifier:
		if fn, declCtx, ok := ctx.LookupFunction(callee.Name); ok {
			return e.invokeFunction(ctx, fn, declCtx, positional, named, node)
		}
		resolved, ok := imports.Resolve(ctx, callee.Name)
		if !ok {
			resolved = callee.Name
		}
		return e.dispatchQualified(node, resolved, "", positional)
	case *ast.CallChainExpr:
		return e.evalCallChain(ctx, node, callee, positional, named)
	default:
		return nil, herr.InternalBugError(node, "unsupported call target %T", node.Callee)
	}
}

// evalCallChain resolves a qualified call `segments[0]::...::segments[n](args)`.
// When the first segment names a local variable, the remainder is
// dispatched against that variable's value (a behavior method, a free
// function receiving it as an implicit first argument, or a host instance
// method); otherwise the whole chain is resolved as a qualified name.
func (e *Evaluator) evalCallChain(ctx *context.Context, node *ast.CallExpr, chain *ast.CallChainExpr, positional []values.Value, named map[string]values.Value) (values.Value, error) {
	segments := chain.Segments
	if len(segments) == 0 {
		return nil, herr.InternalBugError(node, "empty call chain")
	}
	base := segments[0]
	if v, verr := ctx.GetVariable(node, base); verr == nil {
		rest := segments[1:]
		if len(rest) == 0 {
			return nil, herr.InvocableNotFoundError(node, base)
		}
		methodName := qualname.Join(rest...)
		return e.dispatchOnValue(ctx, node, base, v, methodName, chain.OrdinalSuffix, positional, named)
	}

	qualified := qualname.Join(segments...)
	resolved, ok := imports.Resolve(ctx, qualified)
	if !ok {
		resolved = qualified
	}
	return e.dispatchQualified(node, resolved, chain.OrdinalSuffix, positional)
}

// dispatchOnValue resolves a call-chain segment against v, in priority
// order: a behavior method declared for v's declared name, a free
// function (both receive v as an implicit prepended first argument, per
// the single self-binding rule the evaluator applies uniformly), a host
// instance method keyed by v's runtime type, and finally qualified
// host/builtin dispatch.
func (e *Evaluator) dispatchOnValue(ctx *context.Context, node ast.Node, baseName string, v values.Value, methodName, ordinalSuffix string, positional []values.Value, named map[string]values.Value) (values.Value, error) {
	if im, declCtx, ok := ctx.FindImplementationForTarget(baseName); ok {
		if fn, ok2 := im.Method(methodName); ok2 {
			args := append([]values.Value{v}, positional...)
			return e.invokeFunction(ctx, fn, declCtx, args, named, node)
		}
	}
	if fn, declCtx, ok := ctx.LookupFunction(methodName); ok {
		args := append([]values.Value{v}, positional...)
		return e.invokeFunction(ctx, fn, declCtx, args, named, node)
	}

	qualifiedMethod := qualname.Join(v.Type(), methodName)
	if candidates, err := e.hosts.FindMethods(qualifiedMethod); err == nil && len(candidates) > 0 {
		inv, rerr := hostinvoke.Resolve(node, qualifiedMethod, candidates, typeNames(positional), parseOrdinal(ordinalSuffix))
		if rerr != nil {
			return nil, rerr
		}
		return inv.Invoke(v, positional)
	}

	return e.dispatchQualified(node, qualname.Join(baseName, methodName), ordinalSuffix, positional)
}

// dispatchQualified resolves qualifiedName against the Host Invocation
// Service's constructor table. Free-function host/builtin calls and
// static qualified calls share this path: the registry this evaluator
// talks to only distinguishes "constructors" (no bound receiver) from
// "methods" (bound to a receiver value), and a call with no local-variable
// receiver is always the former.
func (e *Evaluator) dispatchQualified(node ast.Node, qualifiedName, ordinalSuffix string, positional []values.Value) (values.Value, error) {
	candidates, err := e.hosts.FindConstructors(qualifiedName)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, herr.InvocableNotFoundError(node, qualifiedName)
	}
	inv, rerr := hostinvoke.Resolve(node, qualifiedName, candidates, typeNames(positional), parseOrdinal(ordinalSuffix))
	if rerr != nil {
		return nil, rerr
	}
	return inv.Invoke(nil, positional)
}

// invokeFunction runs fn's body in a fresh context rooted at declCtx (its
// lexical home, not the call site), binding parameters positionally, then
// by name, then by lazily-evaluated default, then to None if the caller
// supplied nothing the parameter can be satisfied by.
func (e *Evaluator) invokeFunction(ctx *context.Context, fn *decl.Function, declCtx *context.Context, positional []values.Value, named map[string]values.Value, node ast.Node) (values.Value, error) {
	thread := ctx.Owner
	cs := e.callStack(thread)
	if err := cs.Push(fn.Name, node.Pos()); err != nil {
		return nil, err
	}
	defer cs.Pop()

	callCtx, regErr := context.Register(declCtx, nil)
	if regErr != nil {
		return nil, herr.InternalBugError(node, "%v", regErr)
	}
	callID := context.NewCallID(declCtx.Depth, fn.Name)
	callCtx.CurrentCallID = callID

	for i, p := range fn.Parameters {
		switch {
		case i < len(positional):
			callCtx.DefineArgument(callID, p.Name, positional[i])
		default:
			if v, ok := named[p.Name]; ok {
				callCtx.DefineArgument(callID, p.Name, v)
				continue
			}
			if p.HasDefault() {
				dv, err := e.EvalExpr(callCtx, p.Default)
				if err != nil {
					context.Deregister(callCtx)
					return nil, err
				}
				callCtx.DefineArgument(callID, p.Name, dv)
				continue
			}
			callCtx.DefineArgument(callID, p.Name, values.None{})
		}
	}

	res, err := e.evalStatements(callCtx, fn.Body.Statements)
	context.Deregister(callCtx)
	if err != nil {
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
