package context

import "github.com/hikayalang/hikaya/internal/decl"

// Declarations is a snapshot of one context's locally-declared names,
// used by the REPL Context's list operation.
type Declarations struct {
	Variables       []*decl.Variable
	Functions       []*decl.Function
	Implementations []*decl.Implementation
}

// ListDeclarations snapshots c's own declaration maps (not its
// ancestors'). The REPL drives this against the eternal root, where
// every session's merged bindings end up.
func (c *Context) ListDeclarations() Declarations {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := Declarations{
		Variables:       make([]*decl.Variable, 0, len(c.variables)),
		Functions:       make([]*decl.Function, 0, len(c.functions)),
		Implementations: make([]*decl.Implementation, 0, len(c.implementations)),
	}
	for _, v := range c.variables {
		d.Variables = append(d.Variables, v)
	}
	for _, fn := range c.functions {
		d.Functions = append(d.Functions, fn)
	}
	for _, im := range c.implementations {
		d.Implementations = append(d.Implementations, im)
	}
	return d
}

// DropVariable removes name from c's local scope, reporting whether it
// was present.
func (c *Context) DropVariable(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.variables[name]; !ok {
		return false
	}
	delete(c.variables, name)
	return true
}

// DropFunction removes name from c's local scope, reporting whether it
// was present.
func (c *Context) DropFunction(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.functions[name]; !ok {
		return false
	}
	delete(c.functions, name)
	return true
}

// DropImplementation removes name from c's local scope, reporting
// whether it was present.
func (c *Context) DropImplementation(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.implementations[name]; !ok {
		return false
	}
	delete(c.implementations, name)
	return true
}
