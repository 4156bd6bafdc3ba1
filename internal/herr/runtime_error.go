package herr

import (
	"fmt"

	"github.com/hikayalang/hikaya/pkg/ast"
)

// Kind is the closed taxonomy of runtime error symbols. Surface code
// dispatches on Kind via `error(e)` inside a try/match arm; InternalBug is
// deliberately excluded from that dispatch (see IsCatchable).
type Kind string

const (
	VariableNotFound      Kind = "VariableNotFound"
	InvocableNotFound     Kind = "InvocableNotFound"
	InvocableAmbiguous    Kind = "InvocableAmbiguous"
	ExistentX             Kind = "ExistentX"
	IndexOutOfBounds      Kind = "IndexOutOfBounds"
	NullInNonNullContext  Kind = "NullInNonNullContext"
	TypeMismatch          Kind = "TypeMismatch"
	ArithmeticOverflow    Kind = "ArithmeticOverflow"
	DivisionByZero        Kind = "DivisionByZero"
	InvalidLoopLabel      Kind = "InvalidLoopLabel"
	InvalidLoopBounds     Kind = "InvalidLoopBounds"
	TupleArityMismatch    Kind = "TupleArityMismatch"
	ForeachTargetDuplicate Kind = "ForeachTargetDuplicate"
	NonIterable           Kind = "NonIterable"
	ConstantReassignment  Kind = "ConstantReassignment"

	// InternalBug marks an invariant violation in the runtime itself
	// (invalid context operation, unexpected node kind). Never catchable.
	InternalBug Kind = "InternalBug"
)

// IsCatchable reports whether user code's try/match arms may intercept an
// error of this kind. Only InternalBug is excluded.
func (k Kind) IsCatchable() bool {
	return k != InternalBug
}

// RuntimeError is the value-carrying error every evaluator operation raises.
// Values holds free-form diagnostic substitutions (e.g. the offending
// index and the collection length) for message formatting and for
// programmatic inspection by host embedders.
type RuntimeError struct {
	Kind       Kind
	Message    string
	Pos        ast.Position
	Expression string
	Values     map[string]string
	Frames     []string // call-stack frames attached by WithFrames at the evaluator entry point, outermost first
	Err        error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s error at %s: %s", e.Kind, e.Pos, e.Message)
}

// Unwrap exposes a wrapped cause, if any, for errors.Is/As chains.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// WithFrames returns a copy of e with Frames set, used at the evaluator
// entry point to attach the call stack to an error about to surface
// uncaught.
func (e *RuntimeError) WithFrames(frames []string) *RuntimeError {
	cp := *e
	cp.Frames = frames
	return &cp
}

// New builds a RuntimeError of the given kind at node's position.
func New(kind Kind, node ast.Node, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Pos:        posOf(node),
		Expression: exprOf(node),
	}
}

// NewWithValues is New plus diagnostic key/value substitutions.
func NewWithValues(kind Kind, node ast.Node, values map[string]string, format string, args ...any) *RuntimeError {
	e := New(kind, node, format, args...)
	e.Values = values
	return e
}

func posOf(node ast.Node) ast.Position {
	if node == nil {
		return ast.Position{}
	}
	return node.Pos()
}

func exprOf(node ast.Node) string {
	if node == nil {
		return ""
	}
	return node.String()
}

// VariableNotFoundError reports a lookup miss for name.
func VariableNotFoundError(node ast.Node, name string) *RuntimeError {
	return New(VariableNotFound, node, "undefined variable %q", name)
}

// InvocableNotFoundError reports that no candidate matched a call-chain
// dispatch.
func InvocableNotFoundError(node ast.Node, qualified string) *RuntimeError {
	return New(InvocableNotFound, node, "no invocable matches %q", qualified)
}

// InvocableAmbiguousError reports that more than one candidate matched and
// no ordinal suffix disambiguated it.
func InvocableAmbiguousError(node ast.Node, qualified string, count int) *RuntimeError {
	return NewWithValues(InvocableAmbiguous, node, map[string]string{"count": fmt.Sprintf("%d", count)},
		"%q is ambiguous among %d candidates", qualified, count)
}

// ExistentXError reports redeclaration of name at the same depth band.
func ExistentXError(node ast.Node, kind, name string) *RuntimeError {
	return New(ExistentX, node, "%s %q already declared in this scope", kind, name)
}

// IndexOutOfBoundsError reports an out-of-range index against a collection
// of the given length.
func IndexOutOfBoundsError(node ast.Node, index, length int) *RuntimeError {
	return NewWithValues(IndexOutOfBounds, node,
		map[string]string{"index": fmt.Sprintf("%d", index), "length": fmt.Sprintf("%d", length)},
		"index %d out of bounds for length %d", index, length)
}

// NullInNonNullContextError reports a None value reaching an operation
// that requires a present value.
func NullInNonNullContextError(node ast.Node) *RuntimeError {
	return New(NullInNonNullContext, node, "none value used in a non-null context")
}

// TypeMismatchError reports an operand/operation type incompatibility.
func TypeMismatchError(node ast.Node, expected, got string) *RuntimeError {
	return NewWithValues(TypeMismatch, node, map[string]string{"expected": expected, "got": got},
		"expected %s, got %s", expected, got)
}

// ArithmeticOverflowError reports an overflow when overflow checking is
// active for the operand's numeric tier.
func ArithmeticOverflowError(node ast.Node, op string) *RuntimeError {
	return New(ArithmeticOverflow, node, "arithmetic overflow in %q", op)
}

// DivisionByZeroError reports division or modulo by zero.
func DivisionByZeroError(node ast.Node) *RuntimeError {
	return New(DivisionByZero, node, "division by zero")
}

// InvalidLoopLabelError reports a break/continue label that does not name
// any enclosing loop, or names the loop it appears directly inside (a
// self-reference, rejected per the labeled-break invariant).
func InvalidLoopLabelError(node ast.Node, label string) *RuntimeError {
	return New(InvalidLoopLabel, node, "no enclosing loop labeled %q", label)
}

// InvalidLoopBoundsError reports a zero/negative step, or any other
// malformed indexed-for bound.
func InvalidLoopBoundsError(node ast.Node, reason string) *RuntimeError {
	return New(InvalidLoopBounds, node, "invalid loop bounds: %s", reason)
}

// TupleArityMismatchError reports a tuple-destructuring target count that
// does not match the source tuple's arity.
func TupleArityMismatchError(node ast.Node, wantArity, gotArity int) *RuntimeError {
	return NewWithValues(TupleArityMismatch, node,
		map[string]string{"want": fmt.Sprintf("%d", wantArity), "got": fmt.Sprintf("%d", gotArity)},
		"tuple has %d element(s), %d target(s) requested", gotArity, wantArity)
}

// ForeachTargetDuplicateError reports a foreach binding that names the
// same identifier twice (e.g. `for (i, i) in ...`).
func ForeachTargetDuplicateError(node ast.Node, name string) *RuntimeError {
	return New(ForeachTargetDuplicate, node, "foreach target %q repeated", name)
}

// NonIterableError reports a foreach/spread source that does not support
// iteration.
func NonIterableError(node ast.Node, typeName string) *RuntimeError {
	return New(NonIterable, node, "%s is not iterable", typeName)
}

// ConstantReassignmentError reports an assignment to a name declared
// const.
func ConstantReassignmentError(node ast.Node, name string) *RuntimeError {
	return New(ConstantReassignment, node, "cannot reassign constant %q", name)
}

// InternalBugError reports a runtime invariant violation: an invalid
// context operation, or an evaluator dispatch reaching an unexpected node
// kind. Never surfaced to a try/match arm.
func InternalBugError(node ast.Node, format string, args ...any) *RuntimeError {
	return New(InternalBug, node, format, args...)
}
