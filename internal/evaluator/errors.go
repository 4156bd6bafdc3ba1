package evaluator

import (
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// wrapValueError adapts the plain Go errors internal/values' collection
// and text accessors raise (IndexError, TypeError, NilError, ...) into the
// herr.RuntimeError family every other evaluator error belongs to, so a
// try/match arm can catch an out-of-bounds index the same way it catches
// any other runtime error.
func wrapValueError(node ast.Node, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case values.IsIndexError(err):
		ie := err.(*values.IndexError)
		return herr.IndexOutOfBoundsError(node, int(ie.Index), int(ie.Max-ie.Min+1))
	case values.IsTypeError(err):
		te := err.(*values.TypeError)
		got := "none"
		if te.Got != nil {
			got = te.Got.Type()
		}
		return herr.TypeMismatchError(node, te.Expected, got)
	case values.IsNilError(err):
		return herr.NullInNonNullContextError(node)
	case values.IsArithmeticError(err), values.IsConversionError(err), values.IsComparisonError(err):
		return herr.InternalBugError(node, "%v", err)
	default:
		return err
	}
}
