package decl

import "github.com/hikayalang/hikaya/pkg/ast"

// Parameter is a DeclaredParameter: a Variable plus an optional
// default-value expression, evaluated lazily in the callee scope when the
// caller omits the argument.
type Parameter struct {
	*Variable
	Default ast.Expression // nil if the parameter has no default
}

// NewParameter declares a parameter at depth.
func NewParameter(name string, depth int, origin ast.Node, declType string, def ast.Expression) *Parameter {
	return &Parameter{
		Variable: NewVariable(name, depth, origin, false, declType),
		Default:  def,
	}
}

// HasDefault reports whether the parameter declares a default-value
// expression.
func (p *Parameter) HasDefault() bool { return p.Default != nil }
