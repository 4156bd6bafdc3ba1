package values

import "testing"

func TestIsTruthyFalsyCases(t *testing.T) {
	falsy := []Value{
		None{},
		NaN{},
		Bool(false),
		Int(0),
		Float(0),
		NewText(""),
		NewList(nil),
		OptionNone(),
		ResultError(NewText("boom")),
	}

	for _, v := range falsy {
		if IsTruthy(v) {
			t.Errorf("%s (%T) expected falsy, got truthy", v.String(), v)
		}
	}
}

func TestIsTruthyTruthyCases(t *testing.T) {
	truthy := []Value{
		Bool(true),
		Int(1),
		NewText("x"),
		NewList([]Value{Int(1)}),
		OptionSome(Int(1)),
		ResultOk(Int(1)),
	}

	for _, v := range truthy {
		if !IsTruthy(v) {
			t.Errorf("%s (%T) expected truthy, got falsy", v.String(), v)
		}
	}
}

func TestNaNNeverEqualsItself(t *testing.T) {
	eq, err := (NaN{}).Equals(NaN{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq {
		t.Error("NaN should never equal NaN")
	}
}
