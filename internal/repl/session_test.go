package repl

import (
	"testing"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/evaluator"
	"github.com/hikayalang/hikaya/internal/hostinvoke"
	"github.com/hikayalang/hikaya/internal/scheduler"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// stubFrontend turns canned source strings into pre-built programs,
// standing in for the grammar/lexer/parser this module doesn't
// implement.
type stubFrontend struct {
	programs map[string]*ast.Program
	err      error
}

func (f *stubFrontend) Parse(_, source string) (*ast.Program, []error) {
	if f.err != nil {
		return nil, []error{f.err}
	}
	p, ok := f.programs[source]
	if !ok {
		return &ast.Program{}, nil
	}
	return p, nil
}

func newSessionT(t *testing.T, programs map[string]*ast.Program) *Session {
	t.Helper()
	context.Reset()
	eval := evaluator.NewEvaluator(hostinvoke.NewRegistry(), scheduler.New())
	s, err := New(eval, &stubFrontend{programs: programs})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestEvalEmptyProgramReturnsNone(t *testing.T) {
	s := newSessionT(t, nil)
	v, err := s.Eval("anything")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Type() != "None" {
		t.Fatalf("expected None, got %s", v.Type())
	}
}

func TestEvalSurfacesParseErrors(t *testing.T) {
	context.Reset()
	eval := evaluator.NewEvaluator(hostinvoke.NewRegistry(), scheduler.New())
	s, err := New(eval, &stubFrontend{err: errParse})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Eval("bad"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestListOnFreshSessionIsEmpty(t *testing.T) {
	s := newSessionT(t, nil)
	decls := s.List()
	if len(decls.Variables) != 0 || len(decls.Functions) != 0 {
		t.Fatalf("expected an empty root, got %+v", decls)
	}
}

func TestDropVariableReportsAbsence(t *testing.T) {
	s := newSessionT(t, nil)
	if s.DropVariable("missing") {
		t.Fatal("expected DropVariable to report absence")
	}
}

var errParse = parseErr{}

type parseErr struct{}

func (parseErr) Error() string { return "parse error" }
