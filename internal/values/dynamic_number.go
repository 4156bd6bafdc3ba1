package values

import (
	"fmt"
	"math"
	"math/big"
)

// NumTier is a rung of the dynamic-number promotion tower. Go has no
// integer width narrower than a single idiomatic "machine integer", so the
// "smallest signed width, then wider integer" rule collapses both of those
// rungs into TierInt64; promotion continues from there exactly as
// SPEC_FULL.md's numeric promotion rule describes.
type NumTier int

const (
	TierInt64 NumTier = iota
	TierBigInt
	TierFloat64
	TierBigDecimal
)

func (t NumTier) String() string {
	switch t {
	case TierInt64:
		return "int64"
	case TierBigInt:
		return "bigint"
	case TierFloat64:
		return "decimal"
	case TierBigDecimal:
		return "bigdecimal"
	default:
		return "unknown"
	}
}

// bigDecimalPrecision is the mantissa precision (bits) used for the
// arbitrary-precision decimal rung. math/big has no base-10 decimal type;
// big.Float at a generous fixed precision is the closest stdlib
// equivalent, and no decimal library appears anywhere in the retrieval
// pack (see DESIGN.md).
const bigDecimalPrecision = 256

// Number is the single dynamic-number value: exactly one of its tier-typed
// fields is live, selected by Tier.
type Number struct {
	Tier NumTier
	i    int64
	bi   *big.Int
	f    float64
	bd   *big.Float
}

// Int returns an int64-tier Number.
func Int(v int64) Number { return Number{Tier: TierInt64, i: v} }

// BigInt returns a bigint-tier Number.
func BigInt(v *big.Int) Number { return Number{Tier: TierBigInt, bi: v} }

// Float returns a decimal-tier (float64) Number.
func Float(v float64) Number { return Number{Tier: TierFloat64, f: v} }

// BigDecimal returns a bigdecimal-tier Number.
func BigDecimal(v *big.Float) Number { return Number{Tier: TierBigDecimal, bd: v} }

// Type implements Value.
func (Number) Type() string { return "Number" }

// String implements Value.
func (n Number) String() string {
	switch n.Tier {
	case TierInt64:
		return fmt.Sprintf("%d", n.i)
	case TierBigInt:
		return n.bi.String()
	case TierFloat64:
		return fmt.Sprintf("%g", n.f)
	case TierBigDecimal:
		return n.bd.Text('g', -1)
	default:
		return "<invalid number>"
	}
}

// AsInt64 implements Numeric. Non-integral decimal tiers report false.
func (n Number) AsInt64() (int64, bool) {
	switch n.Tier {
	case TierInt64:
		return n.i, true
	case TierBigInt:
		if n.bi.IsInt64() {
			return n.bi.Int64(), true
		}
		return 0, false
	case TierFloat64:
		if n.f == float64(int64(n.f)) {
			return int64(n.f), true
		}
		return 0, false
	case TierBigDecimal:
		if n.bd.IsInt() {
			i, _ := n.bd.Int64()
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsFloat64 implements Numeric.
func (n Number) AsFloat64() (float64, bool) {
	switch n.Tier {
	case TierInt64:
		return float64(n.i), true
	case TierBigInt:
		f := new(big.Float).SetInt(n.bi)
		v, _ := f.Float64()
		return v, true
	case TierFloat64:
		return n.f, true
	case TierBigDecimal:
		v, _ := n.bd.Float64()
		return v, true
	default:
		return 0, false
	}
}

// toBigInt widens an int64/bigint-tier Number to a *big.Int. Panics on a
// decimal-tier Number; callers must tier-check first.
func (n Number) toBigInt() *big.Int {
	switch n.Tier {
	case TierInt64:
		return big.NewInt(n.i)
	case TierBigInt:
		return n.bi
	default:
		panic("toBigInt on non-integer tier")
	}
}

// toBigFloat widens any tier to a *big.Float at bigDecimalPrecision.
func (n Number) toBigFloat() *big.Float {
	switch n.Tier {
	case TierInt64:
		return new(big.Float).SetPrec(bigDecimalPrecision).SetInt64(n.i)
	case TierBigInt:
		return new(big.Float).SetPrec(bigDecimalPrecision).SetInt(n.bi)
	case TierFloat64:
		return new(big.Float).SetPrec(bigDecimalPrecision).SetFloat64(n.f)
	case TierBigDecimal:
		return n.bd
	default:
		panic("toBigFloat on invalid tier")
	}
}

// isIntegerTier reports whether n is on one of the two integer rungs.
func (n Number) isIntegerTier() bool {
	return n.Tier == TierInt64 || n.Tier == TierBigInt
}

// commonTier returns the wider of a's and b's tiers, the tier arithmetic
// between them is carried out at.
func commonTier(a, b Number) NumTier {
	if a.Tier > b.Tier {
		return a.Tier
	}
	return b.Tier
}

// normalizeBigInt demotes a *big.Int back to TierInt64 when it fits,
// keeping values at the narrowest tier that can represent them (the
// promotion rule only ever widens on overflow, but arithmetic that
// shrinks back into range should not pin a value to a wider tier forever).
func normalizeBigInt(v *big.Int) Number {
	if v.IsInt64() {
		return Int(v.Int64())
	}
	return BigInt(v)
}

// Add implements the `+` operator's numeric promotion: overflow in the
// int64 tier promotes to bigint, and a bigint result that fits in int64
// is demoted back to int64 (see normalizeBigInt).
func Add(a, b Number) Number {
	if a.Tier == TierBigDecimal || b.Tier == TierBigDecimal {
		return BigDecimal(new(big.Float).SetPrec(bigDecimalPrecision).Add(a.toBigFloat(), b.toBigFloat()))
	}
	if a.Tier == TierFloat64 || b.Tier == TierFloat64 {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return Float(af + bf)
	}
	if a.Tier == TierInt64 && b.Tier == TierInt64 {
		sum := a.i + b.i
		if (sum > a.i) == (b.i > 0) {
			return Int(sum)
		}
		return normalizeBigInt(new(big.Int).Add(big.NewInt(a.i), big.NewInt(b.i)))
	}
	return normalizeBigInt(new(big.Int).Add(a.toBigInt(), b.toBigInt()))
}

// Sub implements `-` with the same promotion discipline as Add.
func Sub(a, b Number) Number {
	if a.Tier == TierBigDecimal || b.Tier == TierBigDecimal {
		return BigDecimal(new(big.Float).SetPrec(bigDecimalPrecision).Sub(a.toBigFloat(), b.toBigFloat()))
	}
	if a.Tier == TierFloat64 || b.Tier == TierFloat64 {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return Float(af - bf)
	}
	if a.Tier == TierInt64 && b.Tier == TierInt64 {
		diff := a.i - b.i
		if (diff < a.i) == (b.i > 0) {
			return Int(diff)
		}
		return normalizeBigInt(new(big.Int).Sub(big.NewInt(a.i), big.NewInt(b.i)))
	}
	return normalizeBigInt(new(big.Int).Sub(a.toBigInt(), b.toBigInt()))
}

// Mul implements `*` with the same promotion discipline as Add.
func Mul(a, b Number) Number {
	if a.Tier == TierBigDecimal || b.Tier == TierBigDecimal {
		return BigDecimal(new(big.Float).SetPrec(bigDecimalPrecision).Mul(a.toBigFloat(), b.toBigFloat()))
	}
	if a.Tier == TierFloat64 || b.Tier == TierFloat64 {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return Float(af * bf)
	}
	if a.Tier == TierInt64 && b.Tier == TierInt64 {
		if a.i == 0 || b.i == 0 {
			return Int(0)
		}
		prod := a.i * b.i
		if prod/b.i == a.i {
			return Int(prod)
		}
		return normalizeBigInt(new(big.Int).Mul(big.NewInt(a.i), big.NewInt(b.i)))
	}
	return normalizeBigInt(new(big.Int).Mul(a.toBigInt(), b.toBigInt()))
}

// Div implements `/`. Per the promotion rule, integer division that does
// not divide evenly promotes to the decimal tier rather than truncating.
func Div(a, b Number) (Number, error) {
	if isZero(b) {
		return Number{}, NewArithmeticError("division by zero")
	}
	if a.Tier == TierBigDecimal || b.Tier == TierBigDecimal {
		return BigDecimal(new(big.Float).SetPrec(bigDecimalPrecision).Quo(a.toBigFloat(), b.toBigFloat())), nil
	}
	if a.Tier == TierFloat64 || b.Tier == TierFloat64 {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return Float(af / bf), nil
	}
	// Both integer tiers: divide evenly or promote to decimal.
	ai, bi := a.toBigInt(), b.toBigInt()
	q, r := new(big.Int).QuoRem(ai, bi, new(big.Int))
	if r.Sign() == 0 {
		return normalizeBigInt(q), nil
	}
	qf := new(big.Float).SetPrec(bigDecimalPrecision).Quo(
		new(big.Float).SetPrec(bigDecimalPrecision).SetInt(ai),
		new(big.Float).SetPrec(bigDecimalPrecision).SetInt(bi),
	)
	f, _ := qf.Float64()
	return Float(f), nil
}

// Mod implements `mod`, defined only over the two integer tiers.
func Mod(a, b Number) (Number, error) {
	if !a.isIntegerTier() || !b.isIntegerTier() {
		return Number{}, NewArithmeticError("mod requires integer operands")
	}
	if isZero(b) {
		return Number{}, NewArithmeticError("division by zero")
	}
	if a.Tier == TierInt64 && b.Tier == TierInt64 {
		return Int(a.i % b.i), nil
	}
	return normalizeBigInt(new(big.Int).Rem(a.toBigInt(), b.toBigInt())), nil
}

// Pow implements `pow`. An integer base raised to a non-negative integer
// exponent stays in the integer tower; any other combination promotes to
// decimal.
func Pow(base, exp Number) Number {
	if base.isIntegerTier() && exp.isIntegerTier() {
		if e, ok := exp.AsInt64(); ok && e >= 0 {
			return normalizeBigInt(new(big.Int).Exp(base.toBigInt(), big.NewInt(e), nil))
		}
	}
	bf, _ := base.AsFloat64()
	ef, _ := exp.AsFloat64()
	return Float(math.Pow(bf, ef))
}

func isZero(n Number) bool {
	switch n.Tier {
	case TierInt64:
		return n.i == 0
	case TierBigInt:
		return n.bi.Sign() == 0
	case TierFloat64:
		return n.f == 0
	case TierBigDecimal:
		return n.bd.Sign() == 0
	default:
		return false
	}
}

// Equals implements Comparable: numeric-value equality permits cross-tier
// comparison.
func (n Number) Equals(other Value) (bool, error) {
	o, ok := other.(Number)
	if !ok {
		return false, NewComparisonError(n, other, "=")
	}
	c, err := n.CompareTo(o)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// CompareTo implements Orderable across the whole tower.
func (n Number) CompareTo(other Value) (int, error) {
	o, ok := other.(Number)
	if !ok {
		return 0, NewComparisonError(n, other, "<=>")
	}
	tier := commonTier(n, o)
	if tier == TierBigDecimal {
		return n.toBigFloat().Cmp(o.toBigFloat()), nil
	}
	if tier == TierFloat64 {
		nf, _ := n.AsFloat64()
		of, _ := o.AsFloat64()
		switch {
		case nf < of:
			return -1, nil
		case nf > of:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if n.Tier == TierInt64 && o.Tier == TierInt64 {
		switch {
		case n.i < o.i:
			return -1, nil
		case n.i > o.i:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return n.toBigInt().Cmp(o.toBigInt()), nil
}

// Copy implements Copyable. Number is a value type; sharing the big.Int/
// big.Float pointer is safe because every arithmetic op above allocates a
// fresh result rather than mutating in place.
func (n Number) Copy() Value { return n }

// IsTruthy implements Truthy: zero at any tier is falsy.
func (n Number) IsTruthy() bool { return !isZero(n) }
