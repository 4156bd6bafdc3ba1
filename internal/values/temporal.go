package values

import (
	"fmt"
	"time"
)

// TemporalPoint is an instant in time.
type TemporalPoint struct {
	t time.Time
}

// NewTemporalPoint wraps t.
func NewTemporalPoint(t time.Time) TemporalPoint { return TemporalPoint{t: t} }

// Time returns the wrapped time.Time.
func (p TemporalPoint) Time() time.Time { return p.t }

func (TemporalPoint) Type() string     { return "TemporalPoint" }
func (p TemporalPoint) String() string { return p.t.Format(time.RFC3339Nano) }
func (p TemporalPoint) IsTruthy() bool { return true }
func (p TemporalPoint) Copy() Value    { return p }
func (p TemporalPoint) Equals(other Value) (bool, error) {
	o, ok := other.(TemporalPoint)
	if !ok {
		return false, NewComparisonError(p, other, "=")
	}
	return p.t.Equal(o.t), nil
}
func (p TemporalPoint) CompareTo(other Value) (int, error) {
	o, ok := other.(TemporalPoint)
	if !ok {
		return 0, NewComparisonError(p, other, "<=>")
	}
	switch {
	case p.t.Before(o.t):
		return -1, nil
	case p.t.After(o.t):
		return 1, nil
	default:
		return 0, nil
	}
}

// Add returns a new TemporalPoint offset by d.
func (p TemporalPoint) Add(d TemporalAmount) TemporalPoint {
	return TemporalPoint{t: p.t.Add(d.d)}
}

// TemporalAmount is a duration.
type TemporalAmount struct {
	d time.Duration
}

// NewTemporalAmount wraps d.
func NewTemporalAmount(d time.Duration) TemporalAmount { return TemporalAmount{d: d} }

// Duration returns the wrapped time.Duration.
func (a TemporalAmount) Duration() time.Duration { return a.d }

func (TemporalAmount) Type() string     { return "TemporalAmount" }
func (a TemporalAmount) String() string { return a.d.String() }
func (a TemporalAmount) IsTruthy() bool { return true }
func (a TemporalAmount) Copy() Value    { return a }
func (a TemporalAmount) Equals(other Value) (bool, error) {
	o, ok := other.(TemporalAmount)
	if !ok {
		return false, NewComparisonError(a, other, "=")
	}
	return a.d == o.d, nil
}
func (a TemporalAmount) CompareTo(other Value) (int, error) {
	o, ok := other.(TemporalAmount)
	if !ok {
		return 0, NewComparisonError(a, other, "<=>")
	}
	switch {
	case a.d < o.d:
		return -1, nil
	case a.d > o.d:
		return 1, nil
	default:
		return 0, nil
	}
}

// HostRef is an opaque reference to an object owned by the host (the
// external reflection layer), identified by the host's own id scheme.
type HostRef struct {
	HostTypeName string
	id           string
	obj          any
}

// NewHostRef wraps a host object behind an opaque reference.
func NewHostRef(hostTypeName, id string, obj any) *HostRef {
	return &HostRef{HostTypeName: hostTypeName, id: id, obj: obj}
}

// Unwrap returns the underlying host object for the Host Invocation
// Service to pass back across the boundary.
func (r *HostRef) Unwrap() any { return r.obj }

func (*HostRef) Type() string     { return "HostRef" }
func (r *HostRef) String() string { return fmt.Sprintf("HostRef(%s:%s)", r.HostTypeName, r.id) }
func (r *HostRef) IsNil() bool    { return r == nil || r.obj == nil }
func (r *HostRef) Equals(other Value) (bool, error) {
	o, ok := other.(*HostRef)
	if !ok {
		return false, NewComparisonError(r, other, "=")
	}
	return r == o, nil
}

// TypeDescriptor is a runtime type token, the result of `typeof` and the
// right-hand operand of `instance-of`.
type TypeDescriptor struct {
	Name string
}

// NewTypeDescriptor builds a TypeDescriptor for name.
func NewTypeDescriptor(name string) TypeDescriptor { return TypeDescriptor{Name: name} }

func (TypeDescriptor) Type() string     { return "TypeDescriptor" }
func (d TypeDescriptor) String() string { return d.Name }
func (d TypeDescriptor) IsTruthy() bool { return true }
func (d TypeDescriptor) Copy() Value    { return d }
func (d TypeDescriptor) Equals(other Value) (bool, error) {
	o, ok := other.(TypeDescriptor)
	if !ok {
		return false, NewComparisonError(d, other, "=")
	}
	return d.Name == o.Name, nil
}

// TypeOf returns the TypeDescriptor naming v's runtime type.
func TypeOf(v Value) TypeDescriptor {
	if v == nil {
		return NewTypeDescriptor("None")
	}
	return NewTypeDescriptor(v.Type())
}
