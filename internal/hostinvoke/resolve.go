package hostinvoke

import (
	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/pkg/ast"
)

// Resolve picks the best-fit candidate for a call against qualifiedName.
// ordinal, when >= 0, is an explicit caller-supplied index into
// candidates and bypasses type-based resolution entirely. Otherwise
// candidates are filtered to those compatible with argTypes by arity and
// pairwise distance (see signatureDistance), and the minimum-distance
// survivor wins; ties are broken by source order (candidates earlier in
// the slice win), per spec.md §4.E.
func Resolve(node ast.Node, qualifiedName string, candidates []Invocable, argTypes []string, ordinal int) (Invocable, error) {
	if ordinal >= 0 {
		if ordinal >= len(candidates) {
			return nil, herr.InvocableNotFoundError(node, qualifiedName)
		}
		return candidates[ordinal], nil
	}

	best := -1
	bestDist := 0
	for i, c := range candidates {
		d := signatureDistance(argTypes, c)
		if d < 0 {
			continue
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best == -1 {
		return nil, herr.InvocableNotFoundError(node, qualifiedName)
	}
	return candidates[best], nil
}
