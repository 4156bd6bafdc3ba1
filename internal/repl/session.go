// Package repl implements the REPL Context (component J): a persistent
// root context at depth 0 that outlives any single input, with each
// input evaluated in its own depth-1 child whose declarations are
// merged back into the root on completion.
package repl

import (
	"fmt"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/evaluator"
	"github.com/hikayalang/hikaya/internal/frontend"
	"github.com/hikayalang/hikaya/internal/values"
)

// Session owns the eternal root context and drives one input at a time
// through it. Per Open Question 2 (SPEC_FULL.md §E.2), each input's
// context is registered as a plain child of the root rather than as a
// second root, and deregistration unconditionally merges its
// declarations into the root so they remain visible to later input.
type Session struct {
	root  *context.Context
	eval  *evaluator.Evaluator
	parse frontend.Frontend
}

// New starts a fresh session around the caller-supplied eval; the
// session only owns the root context it registers.
func New(eval *evaluator.Evaluator, parse frontend.Frontend) (*Session, error) {
	root, err := context.Register(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("repl: %w", err)
	}
	return &Session{root: root, eval: eval, parse: parse}, nil
}

// Eval parses and runs one unit of input in a fresh child of the root,
// returning its trailing value. Parse errors are returned as a single
// joined error; runtime errors propagate as-is.
func (s *Session) Eval(source string) (values.Value, error) {
	program, perrs := s.parse.Parse("<repl>", source)
	if len(perrs) > 0 {
		return nil, joinErrors(perrs)
	}

	ctx, err := context.Register(s.root, nil)
	if err != nil {
		return nil, fmt.Errorf("repl: %w", err)
	}
	v, err := s.eval.EvalTopLevel(ctx, program.Statements)
	context.DeregisterSession(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// List returns the names currently visible at the root, for the REPL's
// introspection command.
func (s *Session) List() context.Declarations {
	return s.root.ListDeclarations()
}

// DropVariable removes a root-level variable binding by name.
func (s *Session) DropVariable(name string) bool { return s.root.DropVariable(name) }

// DropFunction removes a root-level function binding by name.
func (s *Session) DropFunction(name string) bool { return s.root.DropFunction(name) }

// DropImplementation removes a root-level behavior binding by name.
func (s *Session) DropImplementation(name string) bool { return s.root.DropImplementation(name) }

func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := fmt.Sprintf("%d errors:", len(errs))
	for _, e := range errs {
		msg += "\n  " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
