package values

import (
	"github.com/hikayalang/hikaya/pkg/qualname"
)

// None is the absent-value singleton.
type None struct{}

func (None) Type() string   { return "None" }
func (None) String() string { return "none" }
func (None) IsTruthy() bool { return false }
func (None) Copy() Value    { return None{} }
func (None) Equals(other Value) (bool, error) {
	_, ok := other.(None)
	return ok, nil
}

// NaN is the not-a-number value, distinct from any ordinary decimal so
// that `NaN != NaN` can be enforced without inspecting a float bit
// pattern.
type NaN struct{}

func (NaN) Type() string   { return "NaN" }
func (NaN) String() string { return "nan" }
func (NaN) IsTruthy() bool { return false }
func (NaN) Copy() Value    { return NaN{} }
func (NaN) Equals(Value) (bool, error) {
	return false, nil // NaN is never equal to anything, including itself.
}

// Bool is the boolean value.
type Bool bool

func (Bool) Type() string    { return "Bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) IsTruthy() bool { return bool(b) }
func (b Bool) Copy() Value    { return b }
func (b Bool) Equals(other Value) (bool, error) {
	o, ok := other.(Bool)
	if !ok {
		return false, NewComparisonError(b, other, "=")
	}
	return b == o, nil
}

// Char is a single Unicode codepoint. Unlike Text, it is stored as given,
// with no Unicode normalization.
type Char rune

// NewChar wraps r as a Char without normalizing it. The Text constructor
// is where NFC normalization is applied.
func NewChar(r rune) Char { return Char(r) }

func (Char) Type() string    { return "Char" }
func (c Char) String() string { return string(rune(c)) }
func (c Char) IsTruthy() bool { return true }
func (c Char) Copy() Value    { return c }
func (c Char) Equals(other Value) (bool, error) {
	o, ok := other.(Char)
	if !ok {
		return false, NewComparisonError(c, other, "=")
	}
	return c == o, nil
}
func (c Char) CompareTo(other Value) (int, error) {
	o, ok := other.(Char)
	if !ok {
		return 0, NewComparisonError(c, other, "<=>")
	}
	switch {
	case c < o:
		return -1, nil
	case c > o:
		return 1, nil
	default:
		return 0, nil
	}
}

// Text is an NFC-normalized string value.
type Text string

// NewText normalizes s to NFC before wrapping it. All Text construction —
// literal evaluation, concatenation results, conversions — goes through
// this constructor so that comparison and collection-key hashing never
// have to normalize again.
func NewText(s string) Text {
	return Text(qualname.Normalize(s))
}

func (Text) Type() string     { return "Text" }
func (t Text) String() string { return string(t) }
func (t Text) IsTruthy() bool  { return len(t) > 0 }
func (t Text) Copy() Value     { return t }
func (t Text) Equals(other Value) (bool, error) {
	o, ok := other.(Text)
	if !ok {
		return false, NewComparisonError(t, other, "=")
	}
	return t == o, nil
}
func (t Text) CompareTo(other Value) (int, error) {
	o, ok := other.(Text)
	if !ok {
		return 0, NewComparisonError(t, other, "<=>")
	}
	switch {
	case t < o:
		return -1, nil
	case t > o:
		return 1, nil
	default:
		return 0, nil
	}
}
func (t Text) Length() int64 { return int64(len([]rune(t))) }

func (t Text) GetIndex(index Value) (Value, error) {
	n, ok := index.(Number)
	if !ok {
		return nil, NewTypeError("Number", index, "text index")
	}
	i, _ := n.AsInt64()
	runes := []rune(t)
	if i < 0 || i >= int64(len(runes)) {
		return nil, NewIndexError(i, 0, int64(len(runes))-1, "Text")
	}
	return NewChar(runes[i]), nil
}

func (t Text) SetIndex(Value, Value) error {
	return NewTypeError("mutable collection", t, "text is immutable")
}

// Bytes is a raw byte-string value, distinct from Text (which is always
// valid, NFC-normalized Unicode text).
type Bytes []byte

func (Bytes) Type() string     { return "Bytes" }
func (b Bytes) String() string { return string(b) }
func (b Bytes) IsTruthy() bool  { return len(b) > 0 }
func (b Bytes) Copy() Value {
	cp := make(Bytes, len(b))
	copy(cp, b)
	return cp
}
func (b Bytes) Equals(other Value) (bool, error) {
	o, ok := other.(Bytes)
	if !ok {
		return false, NewComparisonError(b, other, "=")
	}
	if len(b) != len(o) {
		return false, nil
	}
	for i := range b {
		if b[i] != o[i] {
			return false, nil
		}
	}
	return true, nil
}
func (b Bytes) Length() int64 { return int64(len(b)) }
