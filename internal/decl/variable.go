// Package decl implements the four declaration record kinds the context
// tree stores: variables, parameters, functions, and behaviors
// (implementations).
package decl

import (
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// Variable is a DeclaredVariable: a named, depth-stamped storage cell.
// It implements values.Slot so an Object's fields can hold Variables
// directly.
type Variable struct {
	Name     string
	Depth    int
	Origin   ast.Node
	Const    bool
	DeclType string // "" means open/any
	value    values.Value
	setOnce  bool
}

// NewVariable declares name at depth, reserving it without a value.
func NewVariable(name string, depth int, origin ast.Node, constant bool, declType string) *Variable {
	return &Variable{Name: name, Depth: depth, Origin: origin, Const: constant, DeclType: declType}
}

// Get reads the current value. Per the value model, a Result is
// auto-unwrapped to its inner Ok/Error payload on read; the tag survives
// only when the Result is passed as a value rather than read as a
// variable.
func (v *Variable) Get() (values.Value, error) {
	if v.value == nil {
		return values.None{}, nil
	}
	if r, ok := v.value.(values.Result); ok {
		return r.AutoUnwrap(), nil
	}
	return v.value, nil
}

// RawGet reads the value without Result auto-unwrapping, used when a
// Result must be passed along intact (e.g. returned from a function,
// passed as an argument).
func (v *Variable) RawGet() values.Value {
	if v.value == nil {
		return values.None{}
	}
	return v.value
}

// Set writes val. A constant may be set at most once; a second call
// fails with ConstantReassignment.
func (v *Variable) Set(val values.Value) error {
	if v.Const && v.setOnce {
		return herr.ConstantReassignmentError(v.Origin, v.Name)
	}
	v.value = val
	v.setOnce = true
	return nil
}
