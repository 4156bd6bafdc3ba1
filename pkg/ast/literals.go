package ast

// IntegerLiteral is a fixed-width decimal integer literal.
type IntegerLiteral struct {
	expr
	Value int64
}

func (e *IntegerLiteral) String() string { return "IntegerLiteral" }

// BigIntLiteral is an integer literal outside int64 range, or one the
// surface syntax marked for arbitrary precision explicitly (trailing `n`).
// Text carries the decimal digits; sign is the literal's own, never
// negated by a preceding unary minus (that stays a UnaryExpr).
type BigIntLiteral struct {
	expr
	Text string
}

func (e *BigIntLiteral) String() string { return "BigIntLiteral" }

// DecimalLiteral is a fixed-precision floating literal.
type DecimalLiteral struct {
	expr
	Value float64
}

func (e *DecimalLiteral) String() string { return "DecimalLiteral" }

// BigDecimalLiteral is a decimal literal marked for arbitrary precision
// (trailing `m`); Text carries the literal digits including any decimal
// point.
type BigDecimalLiteral struct {
	expr
	Text string
}

func (e *BigDecimalLiteral) String() string { return "BigDecimalLiteral" }

// TextLiteral is a string literal in the language's Arabic-script surface
// syntax; Value is the decoded, not-yet-normalized text.
type TextLiteral struct {
	expr
	Value string
}

func (e *TextLiteral) String() string { return "TextLiteral" }

// CharLiteral is a single-codepoint literal.
type CharLiteral struct {
	expr
	Value rune
}

func (e *CharLiteral) String() string { return "CharLiteral" }

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	expr
	Value bool
}

func (e *BoolLiteral) String() string { return "BoolLiteral" }

// NoneLiteral is the absent-value literal (the None case of Option, and
// the zero value for nullable reference slots).
type NoneLiteral struct {
	expr
}

func (e *NoneLiteral) String() string { return "NoneLiteral" }

// NaNLiteral is the not-a-number literal distinct from any ordinary
// DecimalLiteral so that equality/ordering special-casing (NaN != NaN) can
// be driven from the parse tree rather than inferred from a float value.
type NaNLiteral struct {
	expr
}

func (e *NaNLiteral) String() string { return "NaNLiteral" }

// CollectionKind distinguishes the six literal collection shapes.
type CollectionKind int

const (
	CollectionList CollectionKind = iota
	CollectionOrderedSet
	CollectionUnorderedSet
	CollectionOrderedMap
	CollectionUnorderedMap
	CollectionTuple
)

func (k CollectionKind) String() string {
	switch k {
	case CollectionList:
		return "list"
	case CollectionOrderedSet:
		return "ordered-set"
	case CollectionUnorderedSet:
		return "unordered-set"
	case CollectionOrderedMap:
		return "ordered-map"
	case CollectionUnorderedMap:
		return "unordered-map"
	case CollectionTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// MapEntry is one key/value pair of a map-shaped CollectionLiteral.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// CollectionLiteral constructs a list, set, map, or tuple. Elements holds
// the literal's items for list/set/tuple kinds; Entries holds them for the
// two map kinds.
type CollectionLiteral struct {
	expr
	Kind     CollectionKind
	Elements []Expression
	Entries  []MapEntry
}

func (e *CollectionLiteral) String() string { return "CollectionLiteral(" + e.Kind.String() + ")" }
