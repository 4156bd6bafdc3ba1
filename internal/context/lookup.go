package context

import (
	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// ContainsVariable walks c and its ancestors and reports whether name is
// declared at a depth >= minDepth.
func (c *Context) ContainsVariable(name string, minDepth int) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.mu.RLock()
		v, ok := cur.variables[name]
		cur.mu.RUnlock()
		if ok && v.Depth >= minDepth {
			return true
		}
	}
	return false
}

// GetVariable resolves name per the Context Tree's lookup order: loop
// variables labeled by the enclosing loop, then call arguments, then
// parameters, then declared variables, walking to the parent on miss. If
// c is awaiting a task and the walk found nothing, siblings at c's depth
// are searched for a variable whose value is a Task (letting an awaiter
// observe a sibling's promised result without inheriting its scope).
func (c *Context) GetVariable(node ast.Node, name string) (values.Value, error) {
	for cur := c; cur != nil; cur = cur.Parent {
		if v, ok := cur.lookupLocal(name); ok {
			return v, nil
		}
	}
	if c.AwaitingTask {
		for _, sib := range Siblings(c) {
			sib.mu.RLock()
			v, ok := sib.variables[name]
			sib.mu.RUnlock()
			if !ok {
				continue
			}
			if raw := v.RawGet(); isTaskValue(raw) {
				return raw, nil
			}
		}
	}
	return nil, herr.VariableNotFoundError(node, name)
}

func isTaskValue(v values.Value) bool {
	_, ok := v.(*values.Task)
	return ok
}

func (c *Context) lookupLocal(name string) (values.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.CurrentLoopLabel != "" {
		if v, ok := c.loopVariables[canonicalKey(c.CurrentLoopLabel, name)]; ok {
			return v, true
		}
	}
	if c.CurrentCallID != "" {
		if v, ok := c.arguments[canonicalKey(c.CurrentCallID, name)]; ok {
			return v, true
		}
		if p, ok := c.parameters[canonicalKey(c.CurrentCallID, name)]; ok {
			v, err := p.Get()
			if err == nil {
				return v, true
			}
		}
	}
	if v, ok := c.variables[name]; ok {
		val, err := v.Get()
		if err == nil {
			return val, true
		}
	}
	return nil, false
}

// LookupVariable walks c and its ancestors for the raw *decl.Variable
// declaring name, without the Result-auto-unwrap or argument/parameter/
// loop-variable layering GetVariable applies on read. Used where a caller
// needs the declaration record itself rather than its current value — an
// assignment or increment/decrement target.
func (c *Context) LookupVariable(name string) (*decl.Variable, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.mu.RLock()
		v, ok := cur.variables[name]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// DefineVariable inserts v into c's local scope, rejecting a collision
// with either a local declaration or a sibling at the same depth (the
// horizontal check prevents duplicate declarations when concurrent
// scopes share a parent).
func (c *Context) DefineVariable(node ast.Node, v *decl.Variable) error {
	c.mu.Lock()
	if _, exists := c.variables[v.Name]; exists {
		c.mu.Unlock()
		return herr.ExistentXError(node, "Variable", v.Name)
	}
	c.variables[v.Name] = v
	c.mu.Unlock()

	for _, sib := range Siblings(c) {
		sib.mu.RLock()
		_, exists := sib.variables[v.Name]
		sib.mu.RUnlock()
		if exists {
			c.mu.Lock()
			delete(c.variables, v.Name)
			c.mu.Unlock()
			return herr.ExistentXError(node, "Variable", v.Name)
		}
	}
	return nil
}

// SetVariable assigns to the nearest scope that already declares name,
// walking to the parent on miss; if no scope declares it, it is created
// locally. Assigning to a constant fails (surfaced by Variable.Set).
func (c *Context) SetVariable(node ast.Node, name string, val values.Value) error {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.mu.RLock()
		v, ok := cur.variables[name]
		cur.mu.RUnlock()
		if ok {
			return v.Set(val)
		}
	}
	nv := decl.NewVariable(name, c.Depth, node, false, "")
	if err := nv.Set(val); err != nil {
		return err
	}
	return c.DefineVariable(node, nv)
}

// DefineFunction registers fn in c's local scope.
func (c *Context) DefineFunction(node ast.Node, fn *decl.Function) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.functions[fn.Name]; exists {
		return herr.ExistentXError(node, "Function", fn.Name)
	}
	c.functions[fn.Name] = fn
	return nil
}

// GetFunction walks c and its ancestors for a function declaration.
func (c *Context) GetFunction(name string) (*decl.Function, bool) {
	fn, _, ok := c.LookupFunction(name)
	return fn, ok
}

// LookupFunction walks c and its ancestors for a function declaration,
// additionally returning the context that declares it: a call frame rooted
// there sees the declaring scope's ancestor chain rather than the call
// site's, giving the function body proper lexical visibility.
func (c *Context) LookupFunction(name string) (*decl.Function, *Context, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.mu.RLock()
		fn, ok := cur.functions[name]
		cur.mu.RUnlock()
		if ok {
			return fn, cur, true
		}
	}
	return nil, nil, false
}

// DefineImplementation registers a behavior declaration in c's local
// scope. The behavior's target must resolve as a variable from c or one
// of its ancestors, and a duplicate at the same depth band is rejected.
func (c *Context) DefineImplementation(node ast.Node, im *decl.Implementation) error {
	if _, err := c.GetVariable(node, im.Target); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.implementations[im.Name]; exists && existing.Depth == im.Depth {
		return herr.ExistentXError(node, "Implementation", im.Name)
	}
	c.implementations[im.Name] = im
	return nil
}

// GetImplementation walks c and its ancestors for a behavior declaration.
func (c *Context) GetImplementation(name string) (*decl.Implementation, bool) {
	im, _, ok := c.LookupImplementation(name)
	return im, ok
}

// LookupImplementation is GetImplementation plus the declaring context, for
// the same lexical-scoping reason as LookupFunction.
func (c *Context) LookupImplementation(name string) (*decl.Implementation, *Context, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.mu.RLock()
		im, ok := cur.implementations[name]
		cur.mu.RUnlock()
		if ok {
			return im, cur, true
		}
	}
	return nil, nil, false
}

// FindImplementationForTarget walks c and its ancestors for a behavior
// declaration whose Target matches objectName, used to dispatch a call-chain
// segment that names a behavior method rather than a host or built-in call.
func (c *Context) FindImplementationForTarget(objectName string) (*decl.Implementation, *Context, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.mu.RLock()
		for _, im := range cur.implementations {
			if im.Target == objectName {
				cur.mu.RUnlock()
				return im, cur, true
			}
		}
		cur.mu.RUnlock()
	}
	return nil, nil, false
}

// DefineParameter binds a parameter under a call's canonical key.
func (c *Context) DefineParameter(callID string, p *decl.Parameter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parameters[canonicalKey(callID, p.Name)] = p
}

// DefineArgument binds an evaluated argument value under a call's
// canonical key.
func (c *Context) DefineArgument(callID, name string, val values.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.arguments[canonicalKey(callID, name)] = val
}

// SetLoopVariable binds a loop induction variable under its loop's label.
func (c *Context) SetLoopVariable(label, name string, val values.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loopVariables[canonicalKey(label, name)] = val
}

// BlockImport resolves alias against c's own block-local imports only
// (the Import Resolver walks the parent chain itself).
func (c *Context) BlockImport(alias string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	qualified, ok := c.blockImports[alias]
	return qualified, ok
}

// DefineBlockImport adds alias -> qualified to c's block-local imports,
// rejecting a collision within this same scope.
func (c *Context) DefineBlockImport(node ast.Node, alias, qualified string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.blockImports[alias]; exists {
		return herr.ExistentXError(node, "Import", alias)
	}
	c.blockImports[alias] = qualified
	return nil
}

// WasExecuted reports whether node already ran its side effects under c.
func (c *Context) WasExecuted(node ast.Node) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.executionMarkers[node]
	return ok && m.Executed()
}

// MarkExecuted records that node's side effects ran under c.
func (c *Context) MarkExecuted(node ast.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := &ast.ExecMarker{}
	m.MarkExecuted()
	c.executionMarkers[node] = m
}
