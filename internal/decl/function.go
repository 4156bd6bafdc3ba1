package decl

import "github.com/hikayalang/hikaya/pkg/ast"

// Function is a DeclaredFunction: an ordered parameter list, a body node,
// the depth at which it was captured (its lexical home for closures),
// and (when declared inside a behavior block) the owning behavior's name.
type Function struct {
	Name           string
	Parameters     []*Parameter
	ReturnType     string
	Body           *ast.Block
	CaptureDepth   int
	Async          bool
	OwningBehavior string // "" for a free function
}

// NewFunction builds a Function record.
func NewFunction(name string, params []*Parameter, returnType string, body *ast.Block, captureDepth int, async bool) *Function {
	return &Function{
		Name:         name,
		Parameters:   params,
		ReturnType:   returnType,
		Body:         body,
		CaptureDepth: captureDepth,
		Async:        async,
	}
}

// Arity returns the declared parameter count.
func (f *Function) Arity() int { return len(f.Parameters) }
