// Package frontend fixes the seam between source text and the parse
// tree the runtime core consumes. The grammar, lexer, and parser that
// turn Arabic-script source into a pkg/ast.Program are external
// collaborators, the same way a Host Invocation Service is: this
// package only names the contract cmd/hikaya and internal/repl drive
// against, plus a stub that reports why none is wired by default.
package frontend

import (
	"fmt"

	"github.com/hikayalang/hikaya/pkg/ast"
)

// Frontend turns source text into a parse tree, or a list of
// source-formatted parse errors.
type Frontend interface {
	Parse(filename, source string) (*ast.Program, []error)
}

// errNotWired is returned by Unimplemented, identifying the gap so a
// caller can print a precise message instead of a generic failure.
type errNotWired struct{ filename string }

func (e *errNotWired) Error() string {
	return fmt.Sprintf("%s: no parser frontend is wired into this build", e.filename)
}

type unimplemented struct{}

// Unimplemented returns a Frontend that always fails, naming the gap.
// cmd/hikaya falls back to it until an embedder supplies a real
// grammar/lexer/parser, which is deliberately outside this module's
// scope.
func Unimplemented() Frontend { return unimplemented{} }

func (unimplemented) Parse(filename, _ string) (*ast.Program, []error) {
	return nil, []error{&errNotWired{filename: filename}}
}
