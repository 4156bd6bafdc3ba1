// Package hostinvoke implements the Host Invocation Service contract
// (component E): the boundary the evaluator calls through to reach
// host-platform constructors and methods. The host-platform reflection
// layer that scans classes and populates this registry is an external
// collaborator; this package only fixes the lookup/overload-resolution
// contract and the bootstrap state machine gating it.
package hostinvoke

import "github.com/hikayalang/hikaya/internal/values"

// Invocable is one callable candidate: a host constructor or method with
// a fixed parameter-type signature.
type Invocable interface {
	Name() string
	ParamTypes() []string
	Invoke(self values.Value, args []values.Value) (values.Value, error)
}

// anyType is the wildcard parameter type: any value is accepted, at the
// widest (worst) compatibility distance.
const anyType = "Any"

// numericTiers orders the Number promotion tower for widening-distance
// purposes; a narrower tier argument passed to a wider tier parameter is
// an implicit (distance 1+) conversion, grounded on the teacher's
// Integer->Float widening rule in internal/semantic/overload_resolution.go.
var numericTiers = map[string]int{
	"Int": 0, "BigInt": 1, "Float": 2, "BigDecimal": 3,
}

// typeDistance returns the conversion cost from argType to paramType, or
// -1 if no conversion is possible. 0 is an exact match.
func typeDistance(argType, paramType string) int {
	if argType == paramType {
		return 0
	}
	if paramType == anyType {
		return 2
	}
	if argType == anyType {
		return 2
	}
	if ai, aok := numericTiers[argType]; aok {
		if pi, pok := numericTiers[paramType]; pok {
			if ai <= pi {
				return 1
			}
			return -1
		}
	}
	return -1
}

// signatureDistance sums the per-argument distance of calling candidate
// with argTypes, or -1 if arity or any argument is incompatible.
func signatureDistance(argTypes []string, candidate Invocable) int {
	params := candidate.ParamTypes()
	if len(argTypes) != len(params) {
		return -1
	}
	total := 0
	for i, at := range argTypes {
		d := typeDistance(at, params[i])
		if d < 0 {
			return -1
		}
		total += d
	}
	return total
}
