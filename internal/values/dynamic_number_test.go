package values

import (
	"math"
	"math/big"
	"testing"
)

func TestAddPromotesOnOverflow(t *testing.T) {
	a := Int(math.MaxInt64)
	b := Int(1)

	result := Add(a, b)

	if result.Tier != TierBigInt {
		t.Fatalf("Add overflow result tier = %s, want bigint", result.Tier)
	}
	want := new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1))
	if result.bi.Cmp(want) != 0 {
		t.Errorf("Add overflow result = %s, want %s", result.bi, want)
	}
}

func TestAddStaysInt64WhenNoOverflow(t *testing.T) {
	result := Add(Int(2), Int(3))
	if result.Tier != TierInt64 {
		t.Fatalf("tier = %s, want int64", result.Tier)
	}
	if result.i != 5 {
		t.Errorf("result = %d, want 5", result.i)
	}
}

func TestDivPromotesToDecimalOnUnevenSplit(t *testing.T) {
	result, err := Div(Int(10), Int(4))
	if err != nil {
		t.Fatalf("Div returned error: %v", err)
	}
	if result.Tier != TierFloat64 {
		t.Fatalf("tier = %s, want decimal", result.Tier)
	}
	if result.f != 2.5 {
		t.Errorf("result = %v, want 2.5", result.f)
	}
}

func TestDivStaysIntegerOnEvenSplit(t *testing.T) {
	result, err := Div(Int(10), Int(5))
	if err != nil {
		t.Fatalf("Div returned error: %v", err)
	}
	if result.Tier != TierInt64 || result.i != 2 {
		t.Errorf("result = %v (tier %s), want int64 2", result, result.Tier)
	}
}

func TestDivByZeroFails(t *testing.T) {
	if _, err := Div(Int(1), Int(0)); err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestModRequiresIntegerOperands(t *testing.T) {
	if _, err := Mod(Float(1.5), Int(2)); err == nil {
		t.Fatal("expected error for non-integer mod operand")
	}
}

func TestNumberEqualityReflexiveSymmetricTransitive(t *testing.T) {
	a := Int(7)
	b := Float(7.0)
	c := BigInt(big.NewInt(7))

	pairs := []Number{a, b, c}
	for _, x := range pairs {
		eq, err := x.Equals(x)
		if err != nil || !eq {
			t.Fatalf("%v not reflexively equal to itself", x)
		}
	}

	ab, _ := a.Equals(b)
	ba, _ := b.Equals(a)
	if ab != ba {
		t.Fatalf("equality not symmetric between %v and %v", a, b)
	}

	bc, _ := b.Equals(c)
	ac, _ := a.Equals(c)
	if ab && bc && !ac {
		t.Fatalf("equality not transitive across int64/bigint/decimal tiers")
	}
}

func TestNumberHashConsistencyAcrossTiers(t *testing.T) {
	a := Int(3)
	b := Float(3.0)

	eq, err := a.Equals(b)
	if err != nil || !eq {
		t.Fatalf("Int(3) should equal Float(3.0)")
	}
	if hashKey(a) != hashKey(b) {
		t.Errorf("hashKey(%v) = %q, hashKey(%v) = %q, want equal", a, hashKey(a), b, hashKey(b))
	}
}

func TestNumberIsTruthy(t *testing.T) {
	if Int(0).IsTruthy() {
		t.Error("Int(0) should be falsy")
	}
	if !Int(1).IsTruthy() {
		t.Error("Int(1) should be truthy")
	}
	if Float(0).IsTruthy() {
		t.Error("Float(0) should be falsy")
	}
}
