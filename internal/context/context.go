// Package context implements the Context Tree (component C): a
// hierarchical, depth-indexed tree of per-thread scopes. Every program,
// block, function body, loop body, and ad-hoc scope runs inside its own
// Context; lookups walk the parent chain, and deregistration is
// conditional on outstanding tasks rather than unconditional pop.
package context

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/values"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// ThreadID identifies the goroutine-level thread of execution a Context
// belongs to (the program's root thread, or a spawned task's thread).
type ThreadID uint64

var nextThreadID atomic.Uint64

// NewThreadID allocates a fresh thread identity, used when a Task spawns.
func NewThreadID() ThreadID {
	return ThreadID(nextThreadID.Add(1))
}

// Context is one node of the Context Tree.
type Context struct {
	Owner  ThreadID
	Depth  int
	Parent *Context

	pendingTasks   atomic.Int64
	pendingRemoval atomic.Bool

	mu               sync.RWMutex
	variables        map[string]*decl.Variable
	functions        map[string]*decl.Function
	implementations  map[string]*decl.Implementation
	parameters       map[string]*decl.Parameter
	arguments        map[string]values.Value
	loopVariables    map[string]values.Value
	blockImports     map[string]string
	executionMarkers map[ast.Node]*ast.ExecMarker

	// Transient, single-field state carried alongside the declaration maps.
	CurrentCallID         string
	CurrentImplementation string
	ParsingAssignment     bool
	CreatingObject        bool
	AwaitingTask          bool
	CurrentLoopLabel      string
}

func newContext(owner ThreadID, depth int, parent *Context) *Context {
	return &Context{
		Owner:            owner,
		Depth:            depth,
		Parent:           parent,
		variables:        make(map[string]*decl.Variable),
		functions:        make(map[string]*decl.Function),
		implementations:  make(map[string]*decl.Implementation),
		parameters:       make(map[string]*decl.Parameter),
		arguments:        make(map[string]values.Value),
		loopVariables:    make(map[string]values.Value),
		blockImports:     make(map[string]string),
		executionMarkers: make(map[ast.Node]*ast.ExecMarker),
	}
}

// PendingTasks returns the number of tasks this context is still waiting
// on.
func (c *Context) PendingTasks() int64 { return c.pendingTasks.Load() }

// AddPendingTask increments the pending-task counter; called when this
// context (or a descendant acting on its behalf) spawns a Task.
func (c *Context) AddPendingTask() { c.pendingTasks.Add(1) }

// ReleasePendingTask decrements the pending-task counter and, if it was
// the last outstanding task and this context was marked pendingRemoval,
// retries deregistration.
func (c *Context) ReleasePendingTask() {
	if c.pendingTasks.Add(-1) <= 0 && c.pendingRemoval.Load() {
		Deregister(c)
	}
}

// PendingRemoval reports whether this context is waiting on outstanding
// tasks before it can be physically removed.
func (c *Context) PendingRemoval() bool { return c.pendingRemoval.Load() }

// hasPendingDescendantOrSelf reports whether c or any context registered below
// it in the tree still has pending tasks.
func (c *Context) hasPendingDescendantOrSelf() bool {
	if c.pendingTasks.Load() > 0 {
		return true
	}
	for depth := c.Depth + 1; ; depth++ {
		children := registry.atDepth(depth)
		if len(children) == 0 {
			break
		}
		found := false
		for _, ch := range children {
			if ch.isDescendantOf(c) {
				found = true
				if ch.pendingTasks.Load() > 0 {
					return true
				}
			}
		}
		if !found {
			break
		}
	}
	return false
}

func (c *Context) isDescendantOf(ancestor *Context) bool {
	for p := c.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// NewCallID allocates a fresh canonicalization token for a function call,
// used to key that call's parameters/arguments without collision against
// recursive or concurrent calls to the same function.
func NewCallID(depth int, functionName string) string {
	return functionName + "-" + strconv.Itoa(depth) + "-" + uuid.NewString()
}

// canonicalKey formats the <callId>-<name> composite key parameters and
// arguments are stored under.
func canonicalKey(callID, name string) string {
	return callID + "-" + name
}
