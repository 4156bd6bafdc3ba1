package values

import (
	"fmt"
	"strings"
)

// hashKey produces a string digest used to key sets and maps. Equal
// values (structural equality, numeric-value equality across the dynamic
// number tower) must hash identically, per the value model's equality
// property.
func hashKey(v Value) string {
	switch val := v.(type) {
	case Number:
		// Route through a canonical decimal string so 1 (int64) and 1.0
		// (float64) land on the same key, matching cross-width numeric
		// equality.
		f, _ := val.AsFloat64()
		if i, ok := val.AsInt64(); ok {
			return fmt.Sprintf("num:%d", i)
		}
		return fmt.Sprintf("num:%g", f)
	case Text:
		return "text:" + string(val)
	case Char:
		return fmt.Sprintf("char:%d", rune(val))
	case Bool:
		return fmt.Sprintf("bool:%t", bool(val))
	case None:
		return "none"
	case NaN:
		// Every NaN is a distinct key, mirroring NaN != NaN: no two NaN
		// literals collide in a set/map even though both print "nan".
		return fmt.Sprintf("nan:%p", &val)
	case *List:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = hashKey(e)
		}
		return "list:[" + strings.Join(parts, ",") + "]"
	case *Tuple:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = hashKey(e)
		}
		return "tuple:(" + strings.Join(parts, ",") + ")"
	default:
		return fmt.Sprintf("ptr:%p", val)
	}
}

// List is the mutable, ordered, index-addressable collection.
type List struct {
	Elements []Value
}

// NewList builds a List from elems, taking ownership of the slice.
func NewList(elems []Value) *List { return &List{Elements: elems} }

func (*List) Type() string { return "List" }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) IsTruthy() bool { return len(l.Elements) > 0 }
func (l *List) Length() int64  { return int64(len(l.Elements)) }
func (l *List) Copy() Value {
	cp := make([]Value, len(l.Elements))
	copy(cp, l.Elements)
	return &List{Elements: cp}
}
func (l *List) Equals(other Value) (bool, error) {
	o, ok := other.(*List)
	if !ok {
		return false, NewComparisonError(l, other, "=")
	}
	if len(l.Elements) != len(o.Elements) {
		return false, nil
	}
	for i := range l.Elements {
		eq, err := equalValues(l.Elements[i], o.Elements[i])
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}
func (l *List) GetIndex(index Value) (Value, error) {
	n, ok := index.(Number)
	if !ok {
		return nil, NewTypeError("Number", index, "list index")
	}
	i, _ := n.AsInt64()
	if i < 0 || i >= int64(len(l.Elements)) {
		return nil, NewIndexError(i, 0, int64(len(l.Elements))-1, "List")
	}
	return l.Elements[i], nil
}
func (l *List) SetIndex(index Value, val Value) error {
	n, ok := index.(Number)
	if !ok {
		return NewTypeError("Number", index, "list index")
	}
	i, _ := n.AsInt64()
	if i < 0 || i >= int64(len(l.Elements)) {
		return NewIndexError(i, 0, int64(len(l.Elements))-1, "List")
	}
	l.Elements[i] = val
	return nil
}
func (l *List) Iterator() Iterator { return newSliceIterator(l.Elements) }

// Tuple is a fixed-arity, immutable, heterogeneous sequence.
type Tuple struct {
	Elements []Value
}

// NewTuple builds a Tuple from elems.
func NewTuple(elems []Value) *Tuple { return &Tuple{Elements: elems} }

func (*Tuple) Type() string { return "Tuple" }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) IsTruthy() bool { return len(t.Elements) > 0 }
func (t *Tuple) Length() int64  { return int64(len(t.Elements)) }
func (t *Tuple) Copy() Value    { return t } // immutable: sharing is safe
func (t *Tuple) Equals(other Value) (bool, error) {
	o, ok := other.(*Tuple)
	if !ok {
		return false, NewComparisonError(t, other, "=")
	}
	if len(t.Elements) != len(o.Elements) {
		return false, nil
	}
	for i := range t.Elements {
		eq, err := equalValues(t.Elements[i], o.Elements[i])
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}
func (t *Tuple) GetIndex(index Value) (Value, error) {
	n, ok := index.(Number)
	if !ok {
		return nil, NewTypeError("Number", index, "tuple index")
	}
	i, _ := n.AsInt64()
	if i < 0 || i >= int64(len(t.Elements)) {
		return nil, NewIndexError(i, 0, int64(len(t.Elements))-1, "Tuple")
	}
	return t.Elements[i], nil
}
func (t *Tuple) SetIndex(Value, Value) error {
	return NewTypeError("mutable collection", t, "tuple is immutable")
}
func (t *Tuple) Iterator() Iterator { return newSliceIterator(t.Elements) }

func equalValues(a, b Value) (bool, error) {
	if c, ok := a.(Comparable); ok {
		return c.Equals(b)
	}
	return false, NewComparisonError(a, b, "=")
}

type sliceIterator struct {
	elems []Value
	pos   int
}

func newSliceIterator(elems []Value) *sliceIterator { return &sliceIterator{elems: elems, pos: -1} }
func (it *sliceIterator) Next() bool {
	it.pos++
	return it.pos < len(it.elems)
}
func (it *sliceIterator) Current() Value {
	if it.pos < 0 || it.pos >= len(it.elems) {
		return None{}
	}
	return it.elems[it.pos]
}
func (it *sliceIterator) Reset() { it.pos = -1 }

// OrderedSet preserves insertion order; OrderedSet/UnorderedSet share
// representation but the unordered variant makes no iteration-order
// guarantee, matching §3's distinction between the two set kinds.
type OrderedSet struct {
	order []Value
	index map[string]int
}

// NewOrderedSet builds an OrderedSet, de-duplicating elems by structural
// equality and keeping first-seen order.
func NewOrderedSet(elems []Value) *OrderedSet {
	s := &OrderedSet{index: map[string]int{}}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (*OrderedSet) Type() string { return "OrderedSet" }
func (s *OrderedSet) String() string {
	parts := make([]string, len(s.order))
	for i, e := range s.order {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (s *OrderedSet) IsTruthy() bool { return len(s.order) > 0 }
func (s *OrderedSet) Length() int64  { return int64(len(s.order)) }

// Add inserts v if not already present, returning whether it was added.
func (s *OrderedSet) Add(v Value) bool {
	k := hashKey(v)
	if _, exists := s.index[k]; exists {
		return false
	}
	s.index[k] = len(s.order)
	s.order = append(s.order, v)
	return true
}

// Contains reports set membership by structural/numeric equality.
func (s *OrderedSet) Contains(v Value) bool {
	_, ok := s.index[hashKey(v)]
	return ok
}
func (s *OrderedSet) Copy() Value { return NewOrderedSet(append([]Value(nil), s.order...)) }
func (s *OrderedSet) Equals(other Value) (bool, error) {
	o, ok := other.(*OrderedSet)
	if !ok {
		return false, NewComparisonError(s, other, "=")
	}
	if len(s.order) != len(o.order) {
		return false, nil
	}
	for k := range s.index {
		if _, ok := o.index[k]; !ok {
			return false, nil
		}
	}
	return true, nil
}
func (s *OrderedSet) Iterator() Iterator { return newSliceIterator(s.order) }

// UnorderedSet has Go-map iteration order: explicitly not guaranteed to
// match insertion order, matching the distinction §3 draws between the
// two set kinds.
type UnorderedSet struct {
	entries map[string]Value
}

// NewUnorderedSet builds an UnorderedSet from elems.
func NewUnorderedSet(elems []Value) *UnorderedSet {
	s := &UnorderedSet{entries: map[string]Value{}}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (*UnorderedSet) Type() string { return "UnorderedSet" }
func (s *UnorderedSet) String() string {
	parts := make([]string, 0, len(s.entries))
	for _, v := range s.entries {
		parts = append(parts, v.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (s *UnorderedSet) IsTruthy() bool { return len(s.entries) > 0 }
func (s *UnorderedSet) Length() int64  { return int64(len(s.entries)) }
func (s *UnorderedSet) Add(v Value) bool {
	k := hashKey(v)
	if _, exists := s.entries[k]; exists {
		return false
	}
	s.entries[k] = v
	return true
}
func (s *UnorderedSet) Contains(v Value) bool {
	_, ok := s.entries[hashKey(v)]
	return ok
}
func (s *UnorderedSet) Copy() Value {
	cp := make(map[string]Value, len(s.entries))
	for k, v := range s.entries {
		cp[k] = v
	}
	return &UnorderedSet{entries: cp}
}
func (s *UnorderedSet) Equals(other Value) (bool, error) {
	o, ok := other.(*UnorderedSet)
	if !ok {
		return false, NewComparisonError(s, other, "=")
	}
	if len(s.entries) != len(o.entries) {
		return false, nil
	}
	for k := range s.entries {
		if _, ok := o.entries[k]; !ok {
			return false, nil
		}
	}
	return true, nil
}
func (s *UnorderedSet) Iterator() Iterator {
	elems := make([]Value, 0, len(s.entries))
	for _, v := range s.entries {
		elems = append(elems, v)
	}
	return newSliceIterator(elems)
}

// MapEntry pairs a key with its value, letting ordered maps iterate in
// insertion order while unordered maps iterate by Go-map order.
type MapEntry struct {
	key Value
	val Value
}

// NewMapEntry builds a MapEntry for NewOrderedMap/NewUnorderedMap.
func NewMapEntry(key, val Value) MapEntry { return MapEntry{key: key, val: val} }

// OrderedMap preserves key insertion order.
type OrderedMap struct {
	order []MapEntry
	index map[string]int
}

// NewOrderedMap builds an OrderedMap from entries, last write wins on a
// duplicate key.
func NewOrderedMap(entries []MapEntry) *OrderedMap {
	m := &OrderedMap{index: map[string]int{}}
	for _, e := range entries {
		m.Set(e.key, e.val)
	}
	return m
}

func (*OrderedMap) Type() string { return "OrderedMap" }
func (m *OrderedMap) String() string {
	parts := make([]string, len(m.order))
	for i, e := range m.order {
		parts[i] = e.key.String() + ": " + e.val.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *OrderedMap) IsTruthy() bool { return len(m.order) > 0 }
func (m *OrderedMap) Length() int64  { return int64(len(m.order)) }

// Set inserts or overwrites the value for key, preserving the key's
// original insertion position on overwrite.
func (m *OrderedMap) Set(key, val Value) {
	k := hashKey(key)
	if i, exists := m.index[k]; exists {
		m.order[i].val = val
		return
	}
	m.index[k] = len(m.order)
	m.order = append(m.order, MapEntry{key: key, val: val})
}
func (m *OrderedMap) GetIndex(index Value) (Value, error) {
	k := hashKey(index)
	i, ok := m.index[k]
	if !ok {
		return nil, NewIndexError(0, 0, 0, "OrderedMap")
	}
	return m.order[i].val, nil
}
func (m *OrderedMap) SetIndex(index, val Value) error {
	m.Set(index, val)
	return nil
}
func (m *OrderedMap) Copy() Value {
	cp := make([]MapEntry, len(m.order))
	copy(cp, m.order)
	return NewOrderedMap(cp)
}
func (m *OrderedMap) Equals(other Value) (bool, error) {
	o, ok := other.(*OrderedMap)
	if !ok {
		return false, NewComparisonError(m, other, "=")
	}
	if len(m.order) != len(o.order) {
		return false, nil
	}
	for k, i := range m.index {
		oi, ok := o.index[k]
		if !ok {
			return false, nil
		}
		eq, err := equalValues(m.order[i].val, o.order[oi].val)
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}

// Iterator yields each entry as a 2-Tuple of (key, value).
func (m *OrderedMap) Iterator() Iterator {
	elems := make([]Value, len(m.order))
	for i, e := range m.order {
		elems[i] = NewTuple([]Value{e.key, e.val})
	}
	return newSliceIterator(elems)
}

// UnorderedMap makes no iteration-order guarantee.
type UnorderedMap struct {
	entries map[string]MapEntry
}

// NewUnorderedMap builds an UnorderedMap from entries.
func NewUnorderedMap(entries []MapEntry) *UnorderedMap {
	m := &UnorderedMap{entries: map[string]MapEntry{}}
	for _, e := range entries {
		m.Set(e.key, e.val)
	}
	return m
}

func (*UnorderedMap) Type() string { return "UnorderedMap" }
func (m *UnorderedMap) String() string {
	parts := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		parts = append(parts, e.key.String()+": "+e.val.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *UnorderedMap) IsTruthy() bool { return len(m.entries) > 0 }
func (m *UnorderedMap) Length() int64  { return int64(len(m.entries)) }
func (m *UnorderedMap) Set(key, val Value) {
	m.entries[hashKey(key)] = MapEntry{key: key, val: val}
}
func (m *UnorderedMap) GetIndex(index Value) (Value, error) {
	e, ok := m.entries[hashKey(index)]
	if !ok {
		return nil, NewIndexError(0, 0, 0, "UnorderedMap")
	}
	return e.val, nil
}
func (m *UnorderedMap) SetIndex(index, val Value) error {
	m.Set(index, val)
	return nil
}
func (m *UnorderedMap) Copy() Value {
	cp := make(map[string]MapEntry, len(m.entries))
	for k, v := range m.entries {
		cp[k] = v
	}
	return &UnorderedMap{entries: cp}
}
func (m *UnorderedMap) Equals(other Value) (bool, error) {
	o, ok := other.(*UnorderedMap)
	if !ok {
		return false, NewComparisonError(m, other, "=")
	}
	if len(m.entries) != len(o.entries) {
		return false, nil
	}
	for k, e := range m.entries {
		oe, ok := o.entries[k]
		if !ok {
			return false, nil
		}
		eq, err := equalValues(e.val, oe.val)
		if err != nil || !eq {
			return eq, err
		}
	}
	return true, nil
}
func (m *UnorderedMap) Iterator() Iterator {
	elems := make([]Value, 0, len(m.entries))
	for _, e := range m.entries {
		elems = append(elems, NewTuple([]Value{e.key, e.val}))
	}
	return newSliceIterator(elems)
}
