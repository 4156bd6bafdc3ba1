package ast

// IfStatement is an if/elseif/else chain. ElseIfs is empty for a plain
// if/else; Else is nil when there is no else arm.
type IfStatement struct {
	stmt
	Condition Expression
	Then      *Block
	ElseIfs   []ElseIfClause
	Else      *Block
}

func (s *IfStatement) String() string { return "IfStatement" }

// ElseIfClause is one `else if` arm of an IfStatement.
type ElseIfClause struct {
	Condition Expression
	Body      *Block
}

// ForIndexedStatement is a numeric counted loop, ascending or descending,
// with an optional step (defaulting to 1).
type ForIndexedStatement struct {
	stmt
	Label      string
	Var        string
	From       Expression
	To         Expression
	Step       Expression // nil means literal 1
	Descending bool
	Body       *Block
}

func (s *ForIndexedStatement) String() string { return "ForIndexedStatement" }

// ForEachTarget is the binding shape of a foreach loop: 1, 2, or 3 names
// depending on the source collection kind (value; index+value or key+value;
// index+key+value).
type ForEachTarget struct {
	Names []string
}

// ForEachStatement iterates a list, tuple, set, or map.
type ForEachStatement struct {
	stmt
	Label    string
	Target   ForEachTarget
	Source   Expression
	Body     *Block
}

func (s *ForEachStatement) String() string { return "ForEachStatement" }

// WhileStatement evaluates Condition before each iteration.
type WhileStatement struct {
	stmt
	Label     string
	Condition Expression
	Body      *Block
}

func (s *WhileStatement) String() string { return "WhileStatement" }

// RepeatStatement evaluates Body at least once, stopping once Until is
// truthy.
type RepeatStatement struct {
	stmt
	Label string
	Body  *Block
	Until Expression
}

func (s *RepeatStatement) String() string { return "RepeatStatement" }

// BreakStatement exits the loop named by Label, or the innermost loop if
// Label is empty. Value is an optional expression whose result becomes the
// value of the loop construct itself.
type BreakStatement struct {
	stmt
	Label string
	Value Expression
}

func (s *BreakStatement) String() string { return "BreakStatement" }

// ContinueStatement advances the loop named by Label, or the innermost loop
// if Label is empty.
type ContinueStatement struct {
	stmt
	Label string
}

func (s *ContinueStatement) String() string { return "ContinueStatement" }

// ReturnStatement exits the enclosing function. Value is nil for a bare
// return.
type ReturnStatement struct {
	stmt
	Value Expression
}

func (s *ReturnStatement) String() string { return "ReturnStatement" }

// MatchArm is one arm of a TryMatchStatement: "ok"/"error" for Result,
// "some"/"none" for Option.
type MatchArm struct {
	Kind    string // "ok", "error", "some", "none"
	Binding string // name bound to the unwrapped payload, empty if unused
	Body    *Block
}

// TryMatchStatement evaluates Subject and dispatches to the matching arm.
type TryMatchStatement struct {
	stmt
	Subject Expression
	Arms    []MatchArm
}

func (s *TryMatchStatement) String() string { return "TryMatchStatement" }

// ScopeStatement bounds a region of spawned tasks. Ordered selects
// spawn-order collection of results on exit; unordered selects
// completion-order.
type ScopeStatement struct {
	stmt
	Ordered bool
	Body    *Block
}

func (s *ScopeStatement) String() string { return "ScopeStatement" }
