package context

import (
	"fmt"
	"sync/atomic"
)

var hasRoot atomic.Bool

// Register creates a child context of parent, pushes it into the
// depth-indexed registry, and returns it. parent == nil creates the
// process's single root context (depth 0); a second root registration is
// rejected — per the Open Question 2 resolution, even interactive mode
// has exactly one persistent root, with REPL input contexts registered as
// its depth-1 children rather than as further roots.
func Register(parent *Context, blockImports map[string]string) (*Context, error) {
	var c *Context
	if parent == nil {
		if !hasRoot.CompareAndSwap(false, true) {
			return nil, fmt.Errorf("context: root context already registered")
		}
		c = newContext(NewThreadID(), 0, nil)
	} else {
		c = newContext(parent.Owner, parent.Depth+1, parent)
	}
	for alias, qualified := range blockImports {
		c.blockImports[alias] = qualified
	}
	registry.add(c)
	return c, nil
}

// RegisterSpawn creates a child context of parent that belongs to a fresh
// thread of its own, used when `spawn` starts a task: the task's thread
// sees parent's chain for lookups but runs its own call/loop stack and is
// independently cancellable.
func RegisterSpawn(parent *Context) (*Context, error) {
	if parent == nil {
		return nil, fmt.Errorf("context: RegisterSpawn requires a non-nil parent")
	}
	c := newContext(NewThreadID(), parent.Depth+1, parent)
	registry.add(c)
	return c, nil
}

// Deregister tears down ctx on exit of the region it scopes. If ctx or any
// descendant still has pending tasks, ctx is marked pendingRemoval and its
// shallow declarations are merged into the parent instead of being
// discarded, so in-flight tasks that captured ctx can still resolve
// names. Otherwise ctx is physically removed and its execution markers
// are copied into the parent by value.
func Deregister(ctx *Context) {
	if ctx.hasPendingDescendantOrSelf() {
		ctx.pendingRemoval.Store(true)
		if ctx.Parent != nil {
			ctx.mergeDeclarationsInto(ctx.Parent)
		}
		return
	}
	registry.remove(ctx)
	ctx.pendingRemoval.Store(false)
	if ctx.Parent != nil {
		ctx.mergeExecutionMarkersInto(ctx.Parent)
	}
}

// DeregisterSession tears down a REPL input context, unconditionally
// copying every variable, function, and implementation it declares into
// parent (the eternal root), regardless of declared depth or pending
// tasks, so names bound by one line of input stay visible to the next.
// Used only by the REPL Context (component J); ordinary block/function/
// loop contexts use Deregister, whose declaration merge only fires while
// tasks are still pending and only promotes declarations already at or
// above the parent's depth.
func DeregisterSession(ctx *Context) {
	if ctx.Parent != nil {
		ctx.mergeAllDeclarationsInto(ctx.Parent)
	}
	if !ctx.hasPendingDescendantOrSelf() {
		registry.remove(ctx)
		ctx.pendingRemoval.Store(false)
		if ctx.Parent != nil {
			ctx.mergeExecutionMarkersInto(ctx.Parent)
		}
	} else {
		ctx.pendingRemoval.Store(true)
	}
}

// mergeAllDeclarationsInto copies every one of ctx's declarations into
// parent unconditionally, the REPL session's "everything I just bound is
// now visible at top level" contract.
func (c *Context) mergeAllDeclarationsInto(parent *Context) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parent.mu.Lock()
	defer parent.mu.Unlock()

	for name, v := range c.variables {
		parent.variables[name] = v
	}
	for name, fn := range c.functions {
		parent.functions[name] = fn
	}
	for name, im := range c.implementations {
		parent.implementations[name] = im
	}
}

// mergeDeclarationsInto copies ctx's variables/functions/implementations
// whose declared depth is <= parent.Depth into parent, preserving symbol
// visibility for any task that outlives ctx.
func (c *Context) mergeDeclarationsInto(parent *Context) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parent.mu.Lock()
	defer parent.mu.Unlock()

	for name, v := range c.variables {
		if v.Depth <= parent.Depth {
			parent.variables[name] = v
		}
	}
	for name, fn := range c.functions {
		if fn.CaptureDepth <= parent.Depth {
			parent.functions[name] = fn
		}
	}
	for name, im := range c.implementations {
		if im.Depth <= parent.Depth {
			parent.implementations[name] = im
		}
	}
}

// mergeExecutionMarkersInto copies each node's execution marker from c
// into parent by value (Clone), so a node whose side effects already ran
// under c is not re-executed if parent revisits it.
func (c *Context) mergeExecutionMarkersInto(parent *Context) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parent.mu.Lock()
	defer parent.mu.Unlock()

	for node, marker := range c.executionMarkers {
		parent.executionMarkers[node] = marker.Clone()
	}
}
