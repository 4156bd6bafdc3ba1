package operators

import (
	"testing"

	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
)

func asNumber(t *testing.T, v values.Value) values.Number {
	t.Helper()
	n, ok := v.(values.Number)
	if !ok {
		t.Fatalf("value %#v is not a Number", v)
	}
	return n
}

func asInt64(t *testing.T, v values.Value) int64 {
	t.Helper()
	i, ok := asNumber(t, v).AsInt64()
	if !ok {
		t.Fatalf("value %#v has no integer representation", v)
	}
	return i
}

func TestApplyArithmeticPromotesFloat(t *testing.T) {
	got, err := Apply(nil, Add, values.Int(2), values.Float(1.5))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	f, ok := asNumber(t, got).AsFloat64()
	if !ok || f != 3.5 {
		t.Errorf("Apply(2, +, 1.5) = %v, want 3.5", got)
	}
}

func TestApplyDivisionByZero(t *testing.T) {
	_, err := Apply(nil, Div, values.Int(1), values.Int(0))
	re, ok := err.(*herr.RuntimeError)
	if !ok || re.Kind != herr.DivisionByZero {
		t.Fatalf("Apply(1, /, 0) error = %v, want DivisionByZero", err)
	}
}

func TestApplyOrderingComparesNumbers(t *testing.T) {
	got, err := Apply(nil, Lt, values.Int(1), values.Int(2))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != values.Bool(true) {
		t.Errorf("Apply(1, <, 2) = %v, want true", got)
	}
}

func TestApplyEqualityOnIncomparableTypesIsFalse(t *testing.T) {
	got, err := Apply(nil, Eq, values.None{}, values.Int(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != values.Bool(false) {
		t.Errorf("Apply(None, =, 1) = %v, want false", got)
	}
}

func TestApplyBitwiseShift(t *testing.T) {
	got, err := Apply(nil, Shl, values.Int(1), values.Int(4))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if asInt64(t, got) != 16 {
		t.Errorf("Apply(1, shl, 4) = %v, want 16", got)
	}
}

func TestApplyBitwiseRejectsNonIntegerTier(t *testing.T) {
	_, err := Apply(nil, BitAnd, values.Float(1.5), values.Int(1))
	if err == nil {
		t.Fatal("expected bitwise op on a non-integer Number to fail")
	}
}

func TestApplyCoalescePicksRightOnFalsyLeft(t *testing.T) {
	got, err := Apply(nil, Coalesce, values.None{}, values.Int(7))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if asInt64(t, got) != 7 {
		t.Errorf("Apply(None, ??, 7) = %v, want 7", got)
	}
}

func TestApplyCoalesceKeepsLeftWhenTruthy(t *testing.T) {
	got, err := Apply(nil, Coalesce, values.Int(3), values.Int(7))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if asInt64(t, got) != 3 {
		t.Errorf("Apply(3, ??, 7) = %v, want 3", got)
	}
}

func TestApplyInstanceOfMatchesRuntimeType(t *testing.T) {
	got, err := Apply(nil, InstanceOf, values.Int(1), values.TypeOf(values.Int(0)))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != values.Bool(true) {
		t.Errorf("Apply(1, instanceof, Number) = %v, want true", got)
	}
}

func TestApplyDistributesOverMatchingLists(t *testing.T) {
	left := values.NewList([]values.Value{values.Int(1), values.Int(2)})
	right := values.NewList([]values.Value{values.Int(10), values.Int(20)})

	got, err := Apply(nil, Add, left, right)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	list, ok := got.(*values.List)
	if !ok || len(list.Elements) != 2 {
		t.Fatalf("Apply(list, +, list) = %#v, want a 2-element List", got)
	}
	if asInt64(t, list.Elements[0]) != 11 || asInt64(t, list.Elements[1]) != 22 {
		t.Errorf("Apply(list, +, list) elements = %v, want [11 22]", list.Elements)
	}
}

func TestApplyDistributeRejectsArityMismatch(t *testing.T) {
	left := values.NewList([]values.Value{values.Int(1)})
	right := values.NewList([]values.Value{values.Int(1), values.Int(2)})

	_, err := Apply(nil, Add, left, right)
	re, ok := err.(*herr.RuntimeError)
	if !ok || re.Kind != herr.TupleArityMismatch {
		t.Fatalf("Apply(list, +, mismatched list) error = %v, want TupleArityMismatch", err)
	}
}

func TestShortCircuitsAndOnFalsyLeft(t *testing.T) {
	result, skip := ShortCircuitsAnd(values.Bool(false))
	if !skip || result != values.Bool(false) {
		t.Errorf("ShortCircuitsAnd(false) = (%v, %v), want (false, true)", result, skip)
	}
}

func TestShortCircuitsAndContinuesOnTruthyLeft(t *testing.T) {
	if _, skip := ShortCircuitsAnd(values.Bool(true)); skip {
		t.Error("ShortCircuitsAnd(true) should not short-circuit")
	}
}

func TestShortCircuitsOrOnTruthyLeft(t *testing.T) {
	result, skip := ShortCircuitsOr(values.Bool(true))
	if !skip || result != values.Bool(true) {
		t.Errorf("ShortCircuitsOr(true) = (%v, %v), want (true, true)", result, skip)
	}
}

func TestNeedsCoalesceRight(t *testing.T) {
	if !NeedsCoalesceRight(values.None{}) {
		t.Error("NeedsCoalesceRight(None) should be true")
	}
	if NeedsCoalesceRight(values.Int(1)) {
		t.Error("NeedsCoalesceRight(1) should be false")
	}
}

func TestApplyUnaryMinus(t *testing.T) {
	got, err := ApplyUnary(nil, Minus, values.Int(5))
	if err != nil {
		t.Fatalf("ApplyUnary: %v", err)
	}
	if asInt64(t, got) != -5 {
		t.Errorf("ApplyUnary(-, 5) = %v, want -5", got)
	}
}

func TestApplyUnaryNot(t *testing.T) {
	got, err := ApplyUnary(nil, Not, values.Bool(false))
	if err != nil {
		t.Fatalf("ApplyUnary: %v", err)
	}
	if got != values.Bool(true) {
		t.Errorf("ApplyUnary(not, false) = %v, want true", got)
	}
}

func TestApplyUnarySizeOfList(t *testing.T) {
	list := values.NewList([]values.Value{values.Int(1), values.Int(2), values.Int(3)})
	got, err := ApplyUnary(nil, SizeOf, list)
	if err != nil {
		t.Fatalf("ApplyUnary: %v", err)
	}
	if asInt64(t, got) != 3 {
		t.Errorf("ApplyUnary(size-of, [1,2,3]) = %v, want 3", got)
	}
}

func TestApplyUnarySizeOfRejectsUnsized(t *testing.T) {
	_, err := ApplyUnary(nil, SizeOf, values.Int(1))
	if err == nil {
		t.Fatal("expected size-of on a Number to fail")
	}
}

func TestApplyUnaryTypeOf(t *testing.T) {
	got, err := ApplyUnary(nil, TypeOf, values.Int(1))
	if err != nil {
		t.Fatalf("ApplyUnary: %v", err)
	}
	if _, ok := got.(values.TypeDescriptor); !ok {
		t.Errorf("ApplyUnary(type-of, 1) = %#v, want a TypeDescriptor", got)
	}
}

type fakeSlot struct{ value values.Value }

func (s *fakeSlot) Get() (values.Value, error) { return s.value, nil }
func (s *fakeSlot) Set(v values.Value) error   { s.value = v; return nil }

func TestApplyIncrDecrPreIncrementReturnsNewValue(t *testing.T) {
	slot := &fakeSlot{value: values.Int(1)}
	got, err := ApplyIncrDecr(nil, PreIncr, slot)
	if err != nil {
		t.Fatalf("ApplyIncrDecr: %v", err)
	}
	if asInt64(t, got) != 2 {
		t.Errorf("pre-increment result = %v, want 2", got)
	}
	if asInt64(t, slot.value) != 2 {
		t.Errorf("slot after pre-increment = %v, want 2", slot.value)
	}
}

func TestApplyIncrDecrPostIncrementReturnsOldValue(t *testing.T) {
	slot := &fakeSlot{value: values.Int(1)}
	got, err := ApplyIncrDecr(nil, PostIncr, slot)
	if err != nil {
		t.Fatalf("ApplyIncrDecr: %v", err)
	}
	if asInt64(t, got) != 1 {
		t.Errorf("post-increment result = %v, want 1", got)
	}
	if asInt64(t, slot.value) != 2 {
		t.Errorf("slot after post-increment = %v, want 2", slot.value)
	}
}

func TestApplyIncrDecrPostDecrementMutatesAndReturnsOldValue(t *testing.T) {
	slot := &fakeSlot{value: values.Int(5)}
	got, err := ApplyIncrDecr(nil, PostDecr, slot)
	if err != nil {
		t.Fatalf("ApplyIncrDecr: %v", err)
	}
	if asInt64(t, got) != 5 {
		t.Errorf("post-decrement result = %v, want 5", got)
	}
	if asInt64(t, slot.value) != 4 {
		t.Errorf("slot after post-decrement = %v, want 4", slot.value)
	}
}

func TestMutateNumericDoesNotRequireLvalue(t *testing.T) {
	got, err := MutateNumeric(nil, PreIncr, values.Int(9))
	if err != nil {
		t.Fatalf("MutateNumeric: %v", err)
	}
	if asInt64(t, got) != 10 {
		t.Errorf("MutateNumeric(++, 9) = %v, want 10", got)
	}
}
