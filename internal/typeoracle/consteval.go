package typeoracle

import (
	"fmt"
	"math"
)

// Ordering mirrors the three-way comparator spec.md's constant evaluator
// exposes; Incomparable signals a type mismatch between the two operands.
type Ordering int

const (
	Less Ordering = iota
	Equal
	Greater
	Incomparable
)

// ConstValue is the evaluated form of a literal or range endpoint: one of
// bool, int, int64, float32, float64, or string, stored exactly as the
// literal carried it. ailang has no byte-string or untyped nil
// literal kind, and UnitLit evaluates to the empty struct{} sentinel below.
type ConstValue struct {
	Val interface{}
}

// unitValue is the sentinel ConstValue.Val for UnitLit ("()").
type unitValue struct{}

// Unit is the single inhabitant of ailang's nil-as-unit type.
var Unit = ConstValue{Val: unitValue{}}

// EvalConst reduces a literal value (as stored on core.LitPattern / range
// endpoints) to a ConstValue. ailang's constant folder already normalizes
// int/float/string/bool literals during parsing, so this is mostly a type
// assertion layer rather than a real evaluator — unlike the original
// rustc const evaluator, ailang patterns never carry un-folded const
// expressions at this stage (no named consts inside patterns yet; see
// DESIGN.md for the Named-constant Open Question).
func EvalConst(v interface{}) (ConstValue, error) {
	switch v.(type) {
	case bool, int, int64, float32, float64, string:
		return ConstValue{Val: v}, nil
	case unitValue:
		return ConstValue{Val: v}, nil
	default:
		return ConstValue{}, fmt.Errorf("cannot evaluate constant of type %T", v)
	}
}

// IsNaN reports whether a constant value is a floating-point NaN, the
// trigger condition for the unmatchable-NaN-in-pattern lint.
func (c ConstValue) IsNaN() bool {
	switch f := c.Val.(type) {
	case float32:
		return math.IsNaN(float64(f))
	case float64:
		return math.IsNaN(f)
	default:
		return false
	}
}

// Compare implements the total order over scalar constants spec.md
// requires, returning Incomparable when the two values' dynamic types
// don't line up (the "mismatched types between arms" diagnostic trigger).
func Compare(a, b ConstValue) Ordering {
	af, aok := toFloat(a.Val)
	bf, bok := toFloat(b.Val)
	if aok && bok {
		return compareFloat(af, bf)
	}

	as, aIsStr := a.Val.(string)
	bs, bIsStr := b.Val.(string)
	if aIsStr && bIsStr {
		switch {
		case as < bs:
			return Less
		case as > bs:
			return Greater
		default:
			return Equal
		}
	}

	ab, aIsBool := a.Val.(bool)
	bb, bIsBool := b.Val.(bool)
	if aIsBool && bIsBool {
		if ab == bb {
			return Equal
		}
		if !ab && bb {
			return Less
		}
		return Greater
	}

	if _, aIsUnit := a.Val.(unitValue); aIsUnit {
		if _, bIsUnit := b.Val.(unitValue); bIsUnit {
			return Equal
		}
	}

	return Incomparable
}

func compareFloat(a, b float64) Ordering {
	if math.IsNaN(a) || math.IsNaN(b) {
		// NaN never compares equal to anything, including itself; range
		// coverage never queries NaN directly (the NaN lint intercepts it
		// first per spec.md §9), so this path only matters for deduping
		// observed constants, where NaN simply never coincides.
		return Incomparable
	}
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
