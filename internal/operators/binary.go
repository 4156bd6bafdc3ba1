// Package operators implements the Operator Algebra (component G): pure
// value-to-value binary and unary operations. Short-circuit decisions
// (whether a logical-and/or or nullish-coalesce even needs its right
// operand evaluated) are made by the Evaluator against ShortCircuits*
// before it evaluates the right operand at all; this package only
// combines values it is actually handed.
package operators

import (
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// BinaryOp is the closed set of binary operators the evaluator dispatches
// against Apply.
type BinaryOp string

const (
	Add BinaryOp = "+"
	Sub BinaryOp = "-"
	Mul BinaryOp = "*"
	Div BinaryOp = "/"
	Mod BinaryOp = "mod"
	Pow BinaryOp = "**"

	Lt BinaryOp = "<"
	Le BinaryOp = "<="
	Gt BinaryOp = ">"
	Ge BinaryOp = ">="
	Eq BinaryOp = "="
	Ne BinaryOp = "!="

	And BinaryOp = "and"
	Or  BinaryOp = "or"

	BitAnd BinaryOp = "&"
	BitOr  BinaryOp = "|"
	BitXor BinaryOp = "xor"
	Shl    BinaryOp = "shl"
	Shr    BinaryOp = "shr"
	Ushr   BinaryOp = "ushr"

	Coalesce   BinaryOp = "??"
	InstanceOf BinaryOp = "instanceof"
)

// arithmeticOps distribute element-wise over same-shape List/Tuple pairs.
var arithmeticOps = map[BinaryOp]bool{Add: true, Sub: true, Mul: true, Div: true, Mod: true, Pow: true}

// Apply combines left and right under op. node is used only for error
// positioning.
func Apply(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, error) {
	if arithmeticOps[op] {
		if distributed, ok, err := distribute(node, op, left, right); ok {
			return distributed, err
		}
	}

	switch op {
	case Add, Sub, Mul, Div, Mod, Pow:
		return applyArithmetic(node, op, left, right)
	case Lt, Le, Gt, Ge:
		return applyOrdering(node, op, left, right)
	case Eq, Ne:
		return applyEquality(node, op, left, right)
	case And, Or:
		return applyLogical(node, op, left, right)
	case BitAnd, BitOr, BitXor, Shl, Shr, Ushr:
		return applyBitwise(node, op, left, right)
	case Coalesce:
		if values.IsFalsy(left) {
			return right, nil
		}
		return left, nil
	case InstanceOf:
		typeName, ok := right.(values.TypeDescriptor)
		if !ok {
			return nil, herr.TypeMismatchError(node, "TypeDescriptor", right.Type())
		}
		return values.Bool(values.TypeOf(left) == typeName), nil
	default:
		return nil, herr.InternalBugError(node, "unknown binary operator %q", op)
	}
}

// ShortCircuitsAnd reports whether an 'and' expression can skip evaluating
// its right operand given left's already-evaluated value, and if so, the
// result to use.
func ShortCircuitsAnd(left values.Value) (values.Value, bool) {
	if values.IsFalsy(left) {
		return values.Bool(false), true
	}
	return nil, false
}

// ShortCircuitsOr reports whether an 'or' expression can skip evaluating
// its right operand given left's already-evaluated value, and if so, the
// result to use.
func ShortCircuitsOr(left values.Value) (values.Value, bool) {
	if values.IsTruthy(left) {
		return values.Bool(true), true
	}
	return nil, false
}

// NeedsCoalesceRight reports whether a '??' expression must evaluate its
// right operand (true iff left is falsy).
func NeedsCoalesceRight(left values.Value) bool { return values.IsFalsy(left) }

func asNumbers(node ast.Node, left, right values.Value) (values.Number, values.Number, bool) {
	ln, lok := left.(values.Number)
	rn, rok := right.(values.Number)
	return ln, rn, lok && rok
}

func applyArithmetic(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, error) {
	ln, rn, ok := asNumbers(node, left, right)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Number", mismatchedType(left, right))
	}
	switch op {
	case Add:
		return values.Add(ln, rn), nil
	case Sub:
		return values.Sub(ln, rn), nil
	case Mul:
		return values.Mul(ln, rn), nil
	case Div:
		result, err := values.Div(ln, rn)
		if err != nil {
			return nil, herr.DivisionByZeroError(node)
		}
		return result, nil
	case Mod:
		result, err := values.Mod(ln, rn)
		if err != nil {
			return nil, herr.DivisionByZeroError(node)
		}
		return result, nil
	case Pow:
		return values.Pow(ln, rn), nil
	}
	return nil, herr.InternalBugError(node, "unreachable arithmetic operator %q", op)
}

func applyOrdering(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, error) {
	lo, ok := left.(values.Orderable)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Orderable", left.Type())
	}
	cmp, err := lo.CompareTo(right)
	if err != nil {
		return nil, herr.TypeMismatchError(node, left.Type(), right.Type())
	}
	switch op {
	case Lt:
		return values.Bool(cmp < 0), nil
	case Le:
		return values.Bool(cmp <= 0), nil
	case Gt:
		return values.Bool(cmp > 0), nil
	case Ge:
		return values.Bool(cmp >= 0), nil
	}
	return nil, herr.InternalBugError(node, "unreachable ordering operator %q", op)
}

func applyEquality(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, error) {
	lc, ok := left.(values.Comparable)
	if !ok {
		return values.Bool(op == Ne), nil
	}
	eq, err := lc.Equals(right)
	if err != nil {
		return values.Bool(op == Ne), nil
	}
	if op == Ne {
		eq = !eq
	}
	return values.Bool(eq), nil
}

func applyLogical(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, error) {
	switch op {
	case And:
		return values.Bool(values.IsTruthy(left) && values.IsTruthy(right)), nil
	case Or:
		return values.Bool(values.IsTruthy(left) || values.IsTruthy(right)), nil
	}
	return nil, herr.InternalBugError(node, "unreachable logical operator %q", op)
}

func applyBitwise(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, error) {
	ln, rn, ok := asNumbers(node, left, right)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Number", mismatchedType(left, right))
	}
	li, lok := ln.AsInt64()
	ri, rok := rn.AsInt64()
	if !lok || !rok {
		return nil, herr.TypeMismatchError(node, "integer Number", "non-integer Number")
	}
	switch op {
	case BitAnd:
		return values.Int(li & ri), nil
	case BitOr:
		return values.Int(li | ri), nil
	case BitXor:
		return values.Int(li ^ ri), nil
	case Shl:
		return values.Int(li << uint(ri)), nil
	case Shr:
		return values.Int(li >> uint(ri)), nil
	case Ushr:
		return values.Int(int64(uint64(li) >> uint(ri))), nil
	}
	return nil, herr.InternalBugError(node, "unreachable bitwise operator %q", op)
}

// distribute applies op element-wise to two same-shape List or Tuple
// operands. ok is false when left/right are not both collections, in
// which case the caller falls through to scalar handling.
func distribute(node ast.Node, op BinaryOp, left, right values.Value) (values.Value, bool, error) {
	switch l := left.(type) {
	case *values.List:
		r, ok := right.(*values.List)
		if !ok {
			return nil, false, nil
		}
		if len(l.Elements) != len(r.Elements) {
			return nil, true, herr.TupleArityMismatchError(node, len(l.Elements), len(r.Elements))
		}
		out := make([]values.Value, len(l.Elements))
		for i := range l.Elements {
			v, err := Apply(node, op, l.Elements[i], r.Elements[i])
			if err != nil {
				return nil, true, err
			}
			out[i] = v
		}
		return values.NewList(out), true, nil
	case *values.Tuple:
		r, ok := right.(*values.Tuple)
		if !ok {
			return nil, false, nil
		}
		if len(l.Elements) != len(r.Elements) {
			return nil, true, herr.TupleArityMismatchError(node, len(l.Elements), len(r.Elements))
		}
		out := make([]values.Value, len(l.Elements))
		for i := range l.Elements {
			v, err := Apply(node, op, l.Elements[i], r.Elements[i])
			if err != nil {
				return nil, true, err
			}
			out[i] = v
		}
		return values.NewTuple(out), true, nil
	default:
		return nil, false, nil
	}
}

func mismatchedType(left, right values.Value) string {
	if left == nil {
		return "none"
	}
	if _, ok := left.(values.Number); !ok {
		return left.Type()
	}
	if right == nil {
		return "none"
	}
	return right.Type()
}
