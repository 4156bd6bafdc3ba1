package evaluator

import (
	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/imports"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// bindProgramArgs defines the `arguments` tuple and `argumentCount` the
// host embedding passes in, exposed per the evaluator entry point's
// external-interface contract.
func (e *Evaluator) bindProgramArgs(ctx *context.Context, program *ast.Program, args *values.Tuple) error {
	argsVar := decl.NewVariable("arguments", ctx.Depth, program, false, "")
	if err := argsVar.Set(args); err != nil {
		return err
	}
	if err := ctx.DefineVariable(program, argsVar); err != nil {
		return err
	}
	countVar := decl.NewVariable("argumentCount", ctx.Depth, program, false, "")
	if err := countVar.Set(values.Int(args.Length())); err != nil {
		return err
	}
	return ctx.DefineVariable(program, countVar)
}

func paramsFrom(depth int, origin ast.Node, astParams []ast.Parameter) []*decl.Parameter {
	out := make([]*decl.Parameter, len(astParams))
	for i, p := range astParams {
		out[i] = decl.NewParameter(p.Name, depth, origin, p.Type, p.Default)
	}
	return out
}

func (e *Evaluator) evalFunctionDecl(ctx *context.Context, st *ast.FunctionDecl) (execResult, error) {
	fn := decl.NewFunction(st.Name, paramsFrom(ctx.Depth, st, st.Parameters), st.ReturnType, st.Body, ctx.Depth, st.Async)
	if err := ctx.DefineFunction(st, fn); err != nil {
		return execResult{}, err
	}
	return execResult{}, nil
}

func (e *Evaluator) evalBehaviorDecl(ctx *context.Context, st *ast.BehaviorDecl) (execResult, error) {
	im := decl.NewImplementation(st.Name, st.Target, ctx.Depth)
	for _, m := range st.Methods {
		fn := decl.NewFunction(m.Name, paramsFrom(ctx.Depth, m, m.Parameters), m.ReturnType, m.Body, ctx.Depth, m.Async)
		im.AddMethod(fn)
	}
	if err := ctx.DefineImplementation(st, im); err != nil {
		return execResult{}, err
	}
	return execResult{}, nil
}

func (e *Evaluator) evalImportStatement(ctx *context.Context, st *ast.ImportStatement) (execResult, error) {
	if st.Global {
		imports.RegisterGlobal(st.Alias, st.QualifiedName)
		return execResult{}, nil
	}
	if err := ctx.DefineBlockImport(st, st.Alias, st.QualifiedName); err != nil {
		return execResult{}, err
	}
	return execResult{}, nil
}
