package ast

// Identifier names a variable, parameter, function, behavior, or import
// alias.
type Identifier struct {
	expr
	Name string
}

func (i *Identifier) String() string { return i.Name }

// DeclTarget is a single name bound by a DeclStatement, optionally with a
// declared type annotation (defaulting to open/any when Type is "").
type DeclTarget struct {
	Name string
	Type string
}

// DeclStatement declares one or more names without values ("reserve"),
// optionally followed by an initializer. Multiple Targets with a single
// Value is tuple destructuring (`let a, b := expr`); spec.md §4.H.
type DeclStatement struct {
	stmt
	Targets  []DeclTarget
	Value    Expression // nil if the declaration only reserves names
	Const    bool
}

func (d *DeclStatement) String() string { return "DeclStatement" }

// AssignTarget is the left-hand side of an AssignmentStatement: a plain
// identifier, a qualified field path (obj::a::b), or an indexed access
// (list[i], map[k]).
type AssignTarget struct {
	Identifier string     // set when this is a plain name
	Path       Expression // set when this is a field-path or index expression
}

// AssignmentStatement writes Value into Target.
type AssignmentStatement struct {
	stmt
	Target AssignTarget
	Op     string // "=", "+=", "-=", ... (compound assignment operator or "=")
	Value  Expression
}

func (a *AssignmentStatement) String() string { return "AssignmentStatement" }

// Parameter is a declared function/behavior-method parameter.
type Parameter struct {
	Name    string
	Type    string
	Default Expression // evaluated lazily in the callee scope if non-nil
}

// FunctionDecl declares a named function.
type FunctionDecl struct {
	stmt
	Name       string
	Parameters []Parameter
	ReturnType string
	Body       *Block
	Async      bool
}

func (f *FunctionDecl) String() string { return "FunctionDecl(" + f.Name + ")" }

// BehaviorDecl attaches a named collection of methods to a target object
// name already defined in scope ("behavior P on p { ... }").
type BehaviorDecl struct {
	stmt
	Name    string
	Target  string
	Methods []*FunctionDecl
}

func (b *BehaviorDecl) String() string { return "BehaviorDecl(" + b.Name + ")" }

// ImportStatement binds Alias to QualifiedName, visible only within the
// enclosing block's subtree unless Global is set (process-global tier).
type ImportStatement struct {
	stmt
	Alias         string
	QualifiedName string
	Global        bool
}

func (i *ImportStatement) String() string { return "ImportStatement(" + i.Alias + ")" }
