package evaluator

import (
	"strings"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/operators"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// binaryOpFor translates a BinaryExpr's surface token to the Operator
// Algebra's vocabulary. "and", "or", and "??" are handled by the caller
// for short-circuiting before this table is consulted.
var binaryTokens = map[string]operators.BinaryOp{
	"+": operators.Add, "-": operators.Sub, "*": operators.Mul, "/": operators.Div,
	"mod": operators.Mod, "**": operators.Pow,
	"<": operators.Lt, "<=": operators.Le, ">": operators.Gt, ">=": operators.Ge,
	"==": operators.Eq, "!=": operators.Ne,
	"and": operators.And, "or": operators.Or,
	"&": operators.BitAnd, "|": operators.BitOr, "^": operators.BitXor,
	"<<": operators.Shl, ">>": operators.Shr, ">>>": operators.Ushr,
	"??": operators.Coalesce, "is": operators.InstanceOf,
}

func binaryOpFor(token string) (operators.BinaryOp, bool) {
	op, ok := binaryTokens[token]
	return op, ok
}

var unaryTokens = map[string]operators.UnaryOp{
	"+": operators.Plus, "-": operators.Minus, "not": operators.Not, "~": operators.BitNot,
	"sizeof": operators.SizeOf, "typeof": operators.TypeOf,
}

func unaryOpFor(token string) (operators.UnaryOp, bool) {
	op, ok := unaryTokens[token]
	return op, ok
}

func unaryIncrDecrOpFor(token string, postfix bool) operators.UnaryOp {
	switch {
	case token == "++" && postfix:
		return operators.PostIncr
	case token == "++":
		return operators.PreIncr
	case token == "--" && postfix:
		return operators.PostDecr
	default:
		return operators.PreDecr
	}
}

func (e *Evaluator) evalBinaryExpr(ctx *context.Context, node *ast.BinaryExpr) (values.Value, error) {
	left, err := e.EvalExpr(ctx, node.Left)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "and":
		if v, short := operators.ShortCircuitsAnd(left); short {
			return v, nil
		}
	case "or":
		if v, short := operators.ShortCircuitsOr(left); short {
			return v, nil
		}
	case "??":
		if !operators.NeedsCoalesceRight(left) {
			return left, nil
		}
	}
	right, err := e.EvalExpr(ctx, node.Right)
	if err != nil {
		return nil, err
	}
	op, ok := binaryOpFor(node.Op)
	if !ok {
		return nil, herr.InternalBugError(node, "unknown binary operator %q", node.Op)
	}
	return operators.Apply(node, op, left, right)
}

// isAddressable reports whether expr is a kind resolveLvalueExpr knows
// how to turn into an operators.Lvalue.
func isAddressable(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.FieldAccessExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}

func (e *Evaluator) evalUnaryExpr(ctx *context.Context, node *ast.UnaryExpr) (values.Value, error) {
	if node.Op == "++" || node.Op == "--" {
		op := unaryIncrDecrOpFor(node.Op, node.Postfix)
		if isAddressable(node.Operand) {
			lv, err := e.resolveLvalueExpr(ctx, node.Operand)
			if err != nil {
				return nil, err
			}
			return operators.ApplyIncrDecr(node, op, lv)
		}
		operand, err := e.EvalExpr(ctx, node.Operand)
		if err != nil {
			return nil, err
		}
		return operators.MutateNumeric(node, op, operand)
	}

	operand, err := e.EvalExpr(ctx, node.Operand)
	if err != nil {
		return nil, err
	}
	op, ok := unaryOpFor(node.Op)
	if !ok {
		return nil, herr.InternalBugError(node, "unknown unary operator %q", node.Op)
	}
	return operators.ApplyUnary(node, op, operand)
}

// indexLvalue adapts an Indexable collection plus a fixed index into an
// operators.Lvalue, for increment/decrement and compound assignment on an
// indexed target (`list[i]++`, `counts[k] += 1`).
type indexLvalue struct {
	pos  ast.Node
	coll values.Indexable
	idx  values.Value
}

func (l *indexLvalue) Get() (values.Value, error) {
	v, err := l.coll.GetIndex(l.idx)
	return v, wrapValueError(l.pos, err)
}

func (l *indexLvalue) Set(v values.Value) error {
	return wrapValueError(l.pos, l.coll.SetIndex(l.idx, v))
}

// resolveLvalueExpr resolves expr (an Identifier, FieldAccessExpr, or
// IndexExpr) to its mutable storage cell.
func (e *Evaluator) resolveLvalueExpr(ctx *context.Context, expr ast.Expression) (operators.Lvalue, error) {
	switch x := expr.(type) {
	case *ast.Identifier:
		v, ok := ctx.LookupVariable(x.Name)
		if !ok {
			return nil, herr.VariableNotFoundError(x, x.Name)
		}
		return v, nil
	case *ast.FieldAccessExpr:
		objVal, err := e.EvalExpr(ctx, x.Object)
		if err != nil {
			return nil, err
		}
		obj, ok := objVal.(*values.Object)
		if !ok {
			return nil, herr.TypeMismatchError(x, "Object", objVal.Type())
		}
		slot, ok := obj.Field(x.Field)
		if !ok {
			return nil, herr.VariableNotFoundError(x, x.Field)
		}
		return slot, nil
	case *ast.IndexExpr:
		collVal, err := e.EvalExpr(ctx, x.Collection)
		if err != nil {
			return nil, err
		}
		idxVal, err := e.EvalExpr(ctx, x.Index)
		if err != nil {
			return nil, err
		}
		indexable, ok := collVal.(values.Indexable)
		if !ok {
			return nil, herr.TypeMismatchError(x, "Indexable", collVal.Type())
		}
		return &indexLvalue{pos: x, coll: indexable, idx: idxVal}, nil
	default:
		return nil, herr.InternalBugError(expr, "expression is not addressable")
	}
}

func (e *Evaluator) evalFieldAccess(ctx *context.Context, node *ast.FieldAccessExpr) (values.Value, error) {
	objVal, err := e.EvalExpr(ctx, node.Object)
	if err != nil {
		return nil, err
	}
	if node.Optional {
		if _, isNone := objVal.(values.None); isNone {
			return values.None{}, nil
		}
	}
	switch obj := objVal.(type) {
	case *values.Object:
		v, err := obj.GetField(node.Field)
		return v, wrapValueError(node, err)
	case values.ErrorInfo:
		if v, ok := obj.GetField(node.Field); ok {
			return v, nil
		}
		return nil, herr.VariableNotFoundError(node, node.Field)
	default:
		return nil, herr.TypeMismatchError(node, "Object", objVal.Type())
	}
}

// setIndexable is implemented by the two set kinds, which support `[]`
// membership probing instead of positional/keyed access.
type setIndexable interface {
	Contains(v values.Value) bool
}

func (e *Evaluator) evalIndexExpr(ctx *context.Context, node *ast.IndexExpr) (values.Value, error) {
	collVal, err := e.EvalExpr(ctx, node.Collection)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.EvalExpr(ctx, node.Index)
	if err != nil {
		return nil, err
	}
	if s, ok := collVal.(setIndexable); ok {
		return values.Bool(s.Contains(idxVal)), nil
	}
	indexable, ok := collVal.(values.Indexable)
	if !ok {
		return nil, herr.TypeMismatchError(node, "Indexable", collVal.Type())
	}
	v, err := indexable.GetIndex(idxVal)
	return v, wrapValueError(node, err)
}

func (e *Evaluator) evalObjectLiteral(ctx *context.Context, node *ast.ObjectLiteralExpr) (values.Value, error) {
	fields := make([]values.ObjectField, len(node.Fields))
	for i, f := range node.Fields {
		v, err := e.EvalExpr(ctx, f.Value)
		if err != nil {
			return nil, err
		}
		slot := decl.NewVariable(f.Name, ctx.Depth, node, false, "")
		if err := slot.Set(v); err != nil {
			return nil, err
		}
		fields[i] = values.ObjectField{Name: f.Name, Slot: slot}
	}
	return values.NewObject(node.TypeName, fields), nil
}

func (e *Evaluator) evalCollectionLiteral(ctx *context.Context, node *ast.CollectionLiteral) (values.Value, error) {
	switch node.Kind {
	case ast.CollectionList, ast.CollectionOrderedSet, ast.CollectionUnorderedSet, ast.CollectionTuple:
		elems := make([]values.Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := e.EvalExpr(ctx, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		switch node.Kind {
		case ast.CollectionList:
			return values.NewList(elems), nil
		case ast.CollectionOrderedSet:
			return values.NewOrderedSet(elems), nil
		case ast.CollectionUnorderedSet:
			return values.NewUnorderedSet(elems), nil
		default:
			return values.NewTuple(elems), nil
		}
	case ast.CollectionOrderedMap, ast.CollectionUnorderedMap:
		entries := make([]values.MapEntry, len(node.Entries))
		for i, en := range node.Entries {
			k, err := e.EvalExpr(ctx, en.Key)
			if err != nil {
				return nil, err
			}
			v, err := e.EvalExpr(ctx, en.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = values.NewMapEntry(k, v)
		}
		if node.Kind == ast.CollectionOrderedMap {
			return values.NewOrderedMap(entries), nil
		}
		return values.NewUnorderedMap(entries), nil
	default:
		return nil, herr.InternalBugError(node, "unknown collection literal kind %q", node.Kind.String())
	}
}

// typeNames renders each value's runtime type name, for Host Invocation
// Service overload-resolution distance scoring.
func typeNames(vals []values.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.Type()
	}
	return out
}

func baseAssignOp(op string) (operators.BinaryOp, bool) {
	base := strings.TrimSuffix(op, "=")
	if base == op {
		return "", false
	}
	return binaryOpFor(base)
}
