// Package imports implements the Import Resolver (component F): alias to
// qualified-name resolution across a context's block-local imports, its
// ancestor chain, and the process-wide global import table.
package imports

import (
	"sync"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/pkg/qualname"
)

// globalImports is the process-wide IMPORTS table.
var globalImports = struct {
	mu      sync.RWMutex
	byAlias map[string]string
}{byAlias: make(map[string]string)}

// RegisterGlobal adds a process-wide alias -> qualified name binding.
func RegisterGlobal(alias, qualified string) {
	globalImports.mu.Lock()
	defer globalImports.mu.Unlock()
	globalImports.byAlias[qualname.Normalize(alias)] = qualified
}

// ResetGlobal clears the global import table. Exposed for test isolation
// and for the REPL's fresh-process-state reset.
func ResetGlobal() {
	globalImports.mu.Lock()
	defer globalImports.mu.Unlock()
	globalImports.byAlias = make(map[string]string)
}

func lookupGlobal(alias string) (string, bool) {
	globalImports.mu.RLock()
	defer globalImports.mu.RUnlock()
	qualified, ok := globalImports.byAlias[qualname.Normalize(alias)]
	return qualified, ok
}

// Resolve resolves name (which may be a qualified "a::b::c" reference)
// starting from ctx. Resolution order for the first segment is: ctx's
// own block imports, then its ancestor chain, then the global import
// table. The remainder of a qualified name is appended to whatever the
// first segment resolves to; an unqualified first segment that resolves
// to nothing is returned unresolved (ok == false).
func Resolve(ctx *context.Context, name string) (string, bool) {
	segments := qualname.Split(name)
	first := segments[0]
	rest := segments[1:]

	base, ok := resolveAlias(ctx, first)
	if !ok {
		return "", false
	}
	if len(rest) == 0 {
		return base, true
	}
	return qualname.Join(append([]string{base}, rest...)...), true
}

// resolveAlias walks ctx's own block imports, then its ancestor chain,
// before falling back to the global table. A block's imports are visible
// only within that block's own subtree: a sibling block never sees them,
// since the walk only ever follows the parent chain upward.
func resolveAlias(ctx *context.Context, alias string) (string, bool) {
	for c := ctx; c != nil; c = c.Parent {
		if qualified, ok := c.BlockImport(alias); ok {
			return qualified, true
		}
	}
	return lookupGlobal(alias)
}
