package values

import "github.com/hikayalang/hikaya/internal/herr"

// ErrorInfo is the Value a raised, catchable *herr.RuntimeError is bound to
// inside a try/match `error(e)` arm. It lets surface code inspect the kind
// symbol, message, and source position of a caught error the same way it
// reads any other field-bearing value.
type ErrorInfo struct {
	Kind     string
	Message  string
	Position string
}

// NewErrorInfo adapts a caught RuntimeError into the value an `error(e)` arm
// binds. Callers check Kind.IsCatchable() before reaching here; InternalBug
// never surfaces to user code.
func NewErrorInfo(err *herr.RuntimeError) ErrorInfo {
	return ErrorInfo{
		Kind:     string(err.Kind),
		Message:  err.Message,
		Position: err.Pos.String(),
	}
}

func (ErrorInfo) Type() string { return "Error" }
func (e ErrorInfo) String() string {
	return e.Kind + ": " + e.Message
}

// IsTruthy: a caught error is always truthy, same as any other present
// value reaching surface code.
func (ErrorInfo) IsTruthy() bool { return true }

func (e ErrorInfo) Copy() Value { return e }

func (e ErrorInfo) Equals(other Value) (bool, error) {
	o, ok := other.(ErrorInfo)
	if !ok {
		return false, NewComparisonError(e, other, "=")
	}
	return e.Kind == o.Kind && e.Message == o.Message && e.Position == o.Position, nil
}

// GetField supports qualified access (`e::kind`, `e::message`,
// `e::position`) on a caught error.
func (e ErrorInfo) GetField(name string) (Value, bool) {
	switch name {
	case "kind":
		return Text(e.Kind), true
	case "message":
		return Text(e.Message), true
	case "position":
		return Text(e.Position), true
	default:
		return nil, false
	}
}
