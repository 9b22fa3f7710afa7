package matchcheck

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/types"
)

// CheckMatch is spec.md §4.F: checks one type-checked match expression for
// empty-scrutinee degenerate arms, binding-mode legality, unmatchable NaN
// literals, unreachable arms, and non-exhaustiveness.
func CheckMatch(m *typedast.TypedMatch, e env) error {
	t := scrutineeType(m)

	if len(m.Arms) == 0 {
		if t == nil || e.oracle.IsInhabited(t) {
			e.diag.Error(m.Span, nonExhaustiveTypeNonEmpty(typeName(t)))
		}
		return nil
	}

	var seen matrix
	for _, arm := range m.Arms {
		armSpan := arm.Span

		hasGuard := arm.Guard != nil
		CheckBindingModesTyped(arm.Pattern, hasGuard, e.oracle, e.diag, armSpan)
		lintNaN(arm.Pattern, e.ce, e.diag, armSpan)

		candidate := buildRow(arm.Pattern)
		verdict, err := isUseful(seen, candidate, e.withSpan(armSpan))
		if err != nil {
			return err
		}
		if verdict.Tag == NotUseful {
			e.diag.Error(armSpan, msgUnreachablePattern)
		}

		if !hasGuard {
			seen = append(seen, candidate)
		}
	}

	// The exhaustiveness row is a wildcard binding that carries the
	// scrutinee's type, so column 0 has a type even when every arm is a
	// literal or constructor pattern (neither carries a type of its own).
	finalVerdict, err := isUseful(seen, buildRow(typedast.TypedVarPattern{Name: "_", Type: t}), e)
	if err != nil {
		return err
	}
	if finalVerdict.Tag == NotUseful {
		return nil
	}

	if finalVerdict.Tag == UsefulWith {
		if label, ok := witnessLabel(finalVerdict.Witness, finalVerdict.Type, e.oracle); ok {
			e.diag.Error(m.Span, nonExhaustiveLabelNotCovered(label))
			return nil
		}
	}
	// Useful with no witness, or a witness with no good label (spec.md
	// §4.F/5's third bullet): the bare message, not the empty-match rule's
	// "type T is non-empty" wording — that phrasing is reserved for §4.F/1.
	e.diag.Error(m.Span, msgNonExhaustive)
	return nil
}

// scrutineeType pulls the scrutinee's inferred type out of the typed node,
// falling back to nil when the checker is handed a malformed tree (the
// type checker should never produce one, but CheckMatch must not panic on
// it — see diagnostics.go's Bug channel for how callers report that).
func scrutineeType(m *typedast.TypedMatch) types.Type {
	if m.Scrutinee == nil {
		return nil
	}
	t, _ := m.Scrutinee.GetType().(types.Type)
	return t
}

func typeName(t types.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}

// lintNaN walks a typed pattern looking for a literal or range endpoint
// that evaluates to floating-point NaN, which can never successfully
// match (NaN compares unequal to itself): spec.md §4.F requires this as a
// warning alongside the reachability/exhaustiveness errors, not a hard
// failure, since the pattern is merely dead, not ill-typed.
func lintNaN(p typedast.TypedPattern, ce ConstEval, diag Diagnostics, span ast.Pos) {
	switch pat := p.(type) {
	case typedast.TypedLitPattern:
		if v, err := ce.EvalConst(pat.Value); err == nil && v.IsNaN() {
			diag.Warn(span, msgUnmatchableNaN)
		}
	case typedast.TypedRangePattern:
		if v, err := ce.EvalConst(pat.Lo); err == nil && v.IsNaN() {
			diag.Warn(span, msgUnmatchableNaN)
		}
		if v, err := ce.EvalConst(pat.Hi); err == nil && v.IsNaN() {
			diag.Warn(span, msgUnmatchableNaN)
		}
	case typedast.TypedBindPattern:
		if pat.Sub != nil {
			lintNaN(pat.Sub, ce, diag, span)
		}
	case typedast.TypedTuplePattern:
		for _, e := range pat.Elements {
			lintNaN(e, ce, diag, span)
		}
	case typedast.TypedRecordPattern:
		for _, f := range pat.Fields {
			lintNaN(f.Pattern, ce, diag, span)
		}
	case typedast.TypedConstructorPattern:
		for _, a := range pat.Args {
			lintNaN(a, ce, diag, span)
		}
	case typedast.TypedBoxPattern:
		lintNaN(pat.Inner, ce, diag, span)
	case typedast.TypedSlicePattern:
		for _, e := range pat.Before {
			lintNaN(e, ce, diag, span)
		}
		for _, e := range pat.After {
			lintNaN(e, ce, diag, span)
		}
	case typedast.TypedListPattern:
		for _, e := range pat.Elements {
			lintNaN(e, ce, diag, span)
		}
		if pat.Tail != nil {
			lintNaN(*pat.Tail, ce, diag, span)
		}
	}
}

// witnessLabel is spec.md §4.F's witness-to-label mapping for the
// "`label` not covered" diagnostic: booleans print as true/false, sum
// variants print their bare (unqualified) name, and fixed-length vector
// witnesses print a length phrase. Everything else has no good label and
// CheckMatch reports the bare "non-exhaustive patterns" message instead.
func witnessLabel(c Constructor, t types.Type, oracle TypeOracle) (string, bool) {
	switch {
	case c.tag == ctorConst && t != nil && oracle.TypeKind(t) == KindBool:
		if b, ok := c.val.Val.(bool); ok {
			if b {
				return "true", true
			}
			return "false", true
		}
		return "", false
	case c.tag == ctorVariant:
		name := c.variant
		for i := len(name) - 1; i >= 0; i-- {
			if name[i] == '.' {
				return name[i+1:], true
			}
		}
		return name, true
	case c.tag == ctorVec:
		return fmt.Sprintf("vectors of length %d", c.n), true
	default:
		return "", false
	}
}
