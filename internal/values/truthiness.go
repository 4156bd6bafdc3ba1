package values

// IsTruthy implements the value model's truthiness rule: None, NaN,
// false, integer/decimal zero at any numeric tier, empty text, an empty
// collection, Option.None, and Result.Error are falsy; everything else is
// truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if t, ok := v.(Truthy); ok {
		return t.IsTruthy()
	}
	// Values with no IsTruthy override (objects, behaviors, concurrency
	// handles, host references) are always truthy.
	return true
}

// IsFalsy is the complement of IsTruthy, matching the teacher's naming
// for the equivalent predicate.
func IsFalsy(v Value) bool { return !IsTruthy(v) }
