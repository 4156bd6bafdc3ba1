package values

// Result is either Ok(payload) or Error(payload); the zero value is
// invalid, construct via ResultOk/ResultError.
type Result struct {
	ok      bool
	payload Value
}

// ResultOk builds a successful Result wrapping v.
func ResultOk(v Value) Result { return Result{ok: true, payload: v} }

// ResultError builds a failed Result wrapping err.
func ResultError(err Value) Result { return Result{ok: false, payload: err} }

func (Result) Type() string { return "Result" }
func (r Result) String() string {
	if r.ok {
		return "Ok(" + r.payload.String() + ")"
	}
	return "Error(" + r.payload.String() + ")"
}

// IsTruthy: Result.Error is falsy, Result.Ok is truthy regardless of
// payload, per the value model's truthiness rule.
func (r Result) IsTruthy() bool { return r.ok }

// IsOk reports whether this is the Ok arm.
func (r Result) IsOk() bool { return r.ok }

// Unwrap returns the Ok payload and true, or the zero Value and false if
// this is an Error.
func (r Result) Unwrap() (Value, bool) {
	if r.ok {
		return r.payload, true
	}
	return nil, false
}

// UnwrapErr returns the Error payload and true, or the zero Value and
// false if this is an Ok.
func (r Result) UnwrapErr() (Value, bool) {
	if !r.ok {
		return r.payload, true
	}
	return nil, false
}

// AutoUnwrap implements the DeclaredVariable read rule: "on read, Result
// values are auto-unwrapped to their inner Ok value or Error value". The
// tag is retained only when the Result is passed as a value, not read as
// a variable, so this returns the bare payload either way.
func (r Result) AutoUnwrap() Value { return r.payload }

func (r Result) Copy() Value { return r }
func (r Result) Equals(other Value) (bool, error) {
	o, ok := other.(Result)
	if !ok {
		return false, NewComparisonError(r, other, "=")
	}
	if r.ok != o.ok {
		return false, nil
	}
	return equalValues(r.payload, o.payload)
}

// Option is either Some(payload) or None.
type Option struct {
	some    bool
	payload Value
}

// OptionSome builds an Option wrapping v.
func OptionSome(v Value) Option { return Option{some: true, payload: v} }

// OptionNone is the absent-Option singleton value.
func OptionNone() Option { return Option{some: false} }

func (Option) Type() string { return "Option" }
func (o Option) String() string {
	if o.some {
		return "Some(" + o.payload.String() + ")"
	}
	return "None"
}

// IsTruthy: Option.None is falsy, per the value model's truthiness rule.
func (o Option) IsTruthy() bool { return o.some }

// IsSome reports whether this is the Some arm.
func (o Option) IsSome() bool { return o.some }

// Unwrap returns the Some payload and true, or the zero Value and false.
func (o Option) Unwrap() (Value, bool) {
	if o.some {
		return o.payload, true
	}
	return nil, false
}

func (o Option) Copy() Value { return o }
func (o Option) Equals(other Value) (bool, error) {
	other2, ok := other.(Option)
	if !ok {
		return false, NewComparisonError(o, other, "=")
	}
	if o.some != other2.some {
		return false, nil
	}
	if !o.some {
		return true, nil
	}
	return equalValues(o.payload, other2.payload)
}
