package evaluator

import (
	"math/big"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/stacks"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// bigLiteralPrecision mirrors the unexported bigDecimalPrecision rung
// internal/values' dynamic-number tower settles BigDecimal arithmetic at;
// values does not export the constant, so a big-decimal literal is built
// at the same precision here to avoid re-rounding on its first operation.
const bigLiteralPrecision = 256

// EvalExpr evaluates expr within ctx and returns its value.
func (e *Evaluator) EvalExpr(ctx *context.Context, expr ast.Expression) (values.Value, error) {
	if err := e.checkCancelled(ctx); err != nil {
		return nil, err
	}
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return values.Int(node.Value), nil
	case *ast.BigIntLiteral:
		bi, ok := new(big.Int).SetString(node.Text, 10)
		if !ok {
			return nil, herr.InternalBugError(node, "malformed big integer literal %q", node.Text)
		}
		return values.BigInt(bi), nil
	case *ast.DecimalLiteral:
		return values.Float(node.Value), nil
	case *ast.BigDecimalLiteral:
		bf, ok := new(big.Float).SetPrec(bigLiteralPrecision).SetString(node.Text)
		if !ok {
			return nil, herr.InternalBugError(node, "malformed big decimal literal %q", node.Text)
		}
		return values.BigDecimal(bf), nil
	case *ast.TextLiteral:
		return values.NewText(node.Value), nil
	case *ast.CharLiteral:
		return values.NewChar(node.Value), nil
	case *ast.BoolLiteral:
		return values.Bool(node.Value), nil
	case *ast.NoneLiteral:
		return values.None{}, nil
	case *ast.NaNLiteral:
		return values.NaN{}, nil
	case *ast.Identifier:
		return ctx.GetVariable(node, node.Name)
	case *ast.BinaryExpr:
		return e.evalBinaryExpr(ctx, node)
	case *ast.UnaryExpr:
		return e.evalUnaryExpr(ctx, node)
	case *ast.FieldAccessExpr:
		return e.evalFieldAccess(ctx, node)
	case *ast.IndexExpr:
		return e.evalIndexExpr(ctx, node)
	case *ast.ObjectLiteralExpr:
		return e.evalObjectLiteral(ctx, node)
	case *ast.CollectionLiteral:
		return e.evalCollectionLiteral(ctx, node)
	case *ast.CallExpr:
		return e.EvalCallExpr(ctx, node)
	case *ast.BlockExpr:
		return e.evalBlockExpr(ctx, node)
	case *ast.SpawnExpr:
		return e.evalSpawn(ctx, node)
	case *ast.AwaitExpr:
		return e.evalAwait(ctx, node)
	default:
		return nil, herr.InternalBugError(expr, "unsupported expression node %T", expr)
	}
}

// evalBlockExpr runs e's Body for its trailing value, the same rule a
// Block used as a bare statement follows.
func (e *Evaluator) evalBlockExpr(ctx *context.Context, node *ast.BlockExpr) (values.Value, error) {
	res, err := e.EvalStmt(ctx, node.Body)
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
