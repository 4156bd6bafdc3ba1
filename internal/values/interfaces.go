// Package values implements the runtime value model: the tagged variants
// the evaluator produces and consumes, the numeric promotion tower, and
// the collection/object/concurrency-handle value kinds.
package values

// Value is implemented by every runtime value kind.
type Value interface {
	Type() string
	String() string
}

// Numeric is implemented by every member of the dynamic-number tower.
type Numeric interface {
	Value
	AsInt64() (int64, bool)
	AsFloat64() (float64, bool)
}

// Comparable supports structural/numeric equality (the `=`/`!=` operators
// and collection-key hashing).
type Comparable interface {
	Value
	Equals(other Value) (bool, error)
}

// Orderable extends Comparable with a three-way comparison (`<`, `<=`,
// `>`, `>=`).
type Orderable interface {
	Comparable
	CompareTo(other Value) (int, error)
}

// Copyable values support deep copy. Value-kind implementations may return
// themselves; reference-kind implementations must return an independent
// copy.
type Copyable interface {
	Value
	Copy() Value
}

// Indexable supports `[]` access: list/tuple/text position and map key
// lookup. The set kinds do not implement it; they expose Contains instead.
type Indexable interface {
	Value
	GetIndex(index Value) (Value, error)
	SetIndex(index Value, val Value) error
	Length() int64
}

// Iterable supports `foreach`.
type Iterable interface {
	Value
	Iterator() Iterator
}

// Iterator walks an Iterable's elements. For map-shaped sources, Current
// returns a 2-Tuple of (key, value); callers adapt to the foreach target
// shape in use.
type Iterator interface {
	Next() bool
	Current() Value
	Reset()
}

// Truthy implements the truthiness rule from the value model: values whose
// type never participates in the default falsy set implement this to
// override it (used by collections and Result/Option).
type Truthy interface {
	Value
	IsTruthy() bool
}
