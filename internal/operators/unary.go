package operators

import (
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// UnaryOp is the closed set of unary operators the evaluator dispatches
// against ApplyUnary and the increment/decrement helpers.
type UnaryOp string

const (
	Plus   UnaryOp = "+"
	Minus  UnaryOp = "-"
	Not    UnaryOp = "not"
	BitNot UnaryOp = "~"
	SizeOf UnaryOp = "size-of"
	TypeOf UnaryOp = "type-of"

	PreIncr  UnaryOp = "++x"
	PostIncr UnaryOp = "x++"
	PreDecr  UnaryOp = "--x"
	PostDecr UnaryOp = "x--"
)

// Lvalue is the minimal mutation surface increment/decrement needs: read
// the current value, write a new one. *decl.Variable satisfies it.
type Lvalue interface {
	Get() (values.Value, error)
	Set(values.Value) error
}

// lengthable is the subset of collection/text values size-of accepts.
type lengthable interface {
	Length() int64
}

// ApplyUnary evaluates the non-mutating unary operators: arithmetic sign,
// logical/bitwise negation, size-of, type-of. Increment/decrement go
// through ApplyIncrDecr instead, since they may mutate an lvalue.
func ApplyUnary(node ast.Node, op UnaryOp, operand values.Value) (values.Value, error) {
	switch op {
	case Plus:
		n, ok := operand.(values.Number)
		if !ok {
			return nil, herr.TypeMismatchError(node, "Number", operand.Type())
		}
		return n, nil
	case Minus:
		n, ok := operand.(values.Number)
		if !ok {
			return nil, herr.TypeMismatchError(node, "Number", operand.Type())
		}
		return values.Sub(values.Int(0), n), nil
	case Not:
		return values.Bool(!values.IsTruthy(operand)), nil
	case BitNot:
		n, ok := operand.(values.Number)
		if !ok {
			return nil, herr.TypeMismatchError(node, "Number", operand.Type())
		}
		i, ok := n.AsInt64()
		if !ok {
			return nil, herr.TypeMismatchError(node, "integer Number", "non-integer Number")
		}
		return values.Int(^i), nil
	case SizeOf:
		l, ok := operand.(lengthable)
		if !ok {
			return nil, herr.TypeMismatchError(node, "sized value", operand.Type())
		}
		return values.Int(l.Length()), nil
	case TypeOf:
		return values.TypeOf(operand), nil
	default:
		return nil, herr.InternalBugError(node, "unknown unary operator %q", op)
	}
}

// ApplyIncrDecr evaluates pre/post increment or decrement against an
// lvalue. It mutates target and, per the standard convention, returns
// the value after mutation for the pre-forms and the value from before
// it for the post-forms.
func ApplyIncrDecr(node ast.Node, op UnaryOp, target Lvalue) (values.Value, error) {
	current, err := target.Get()
	if err != nil {
		return nil, err
	}
	n, ok := current.(values.Number)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Number", current.Type())
	}

	var updated values.Number
	switch op {
	case PreIncr, PostIncr:
		updated = values.Add(n, values.Int(1))
	case PreDecr, PostDecr:
		updated = values.Sub(n, values.Int(1))
	default:
		return nil, herr.InternalBugError(node, "unknown increment/decrement operator %q", op)
	}

	if err := target.Set(updated); err != nil {
		return nil, err
	}

	switch op {
	case PreIncr, PreDecr:
		return updated, nil
	default:
		return n, nil
	}
}

// MutateNumeric applies increment/decrement to a bare numeric value that
// is not backed by an lvalue (e.g. the result of an expression rather
// than a variable reference): it returns the new value without any
// assignment taking place.
func MutateNumeric(node ast.Node, op UnaryOp, operand values.Value) (values.Value, error) {
	n, ok := operand.(values.Number)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Number", operand.Type())
	}
	switch op {
	case PreIncr, PostIncr:
		return values.Add(n, values.Int(1)), nil
	case PreDecr, PostDecr:
		return values.Sub(n, values.Int(1)), nil
	default:
		return nil, herr.InternalBugError(node, "unknown increment/decrement operator %q", op)
	}
}
