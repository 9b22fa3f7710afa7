package matchcheck

import (
	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/typeoracle"
)

// rawPattern strips outer `name @ subpattern` binding layers, returning
// the substantive pattern underneath (spec.md §4.B). A plain binding with
// no sub-pattern has no substantive pattern beneath it and is returned
// as-is.
func rawPattern(p typedast.TypedPattern) typedast.TypedPattern {
	for {
		bp, ok := p.(typedast.TypedBindPattern)
		if !ok || bp.Sub == nil {
			return p
		}
		p = bp.Sub
	}
}

// bindingName extracts the bound name from a VarPattern or a sugar-free
// BindPattern, or "" if p does not bind a name at its head.
func bindingName(p typedast.TypedPattern) (string, bool) {
	switch b := p.(type) {
	case typedast.TypedVarPattern:
		return b.Name, true
	case typedast.TypedBindPattern:
		return b.Name, true
	default:
		return "", false
	}
}

// isWildlike is spec.md §4.B: true for wildcards and for bindings whose
// resolver entry is neither a variant nor a constant.
func isWildlike(p typedast.TypedPattern, resolver DefResolver) bool {
	raw := rawPattern(p)
	if _, ok := raw.(typedast.TypedWildcardPattern); ok {
		return true
	}
	name, ok := bindingName(raw)
	if !ok {
		return false
	}
	def := resolver.Resolve(name)
	return def.Kind != typeoracle.DefVariant && def.Kind != typeoracle.DefConst
}

// patternConstructor returns the head constructor of p, or ok=false if the
// pattern's head is an unbound wildcard/binding (spec.md §4.B).
func patternConstructor(p typedast.TypedPattern, resolver DefResolver, ce ConstEval) (Constructor, bool, error) {
	raw := rawPattern(p)

	switch pat := raw.(type) {
	case typedast.TypedWildcardPattern:
		return Constructor{}, false, nil

	case typedast.TypedVarPattern:
		return namedConstructor(pat.Name, resolver, ce)

	case typedast.TypedBindPattern:
		return namedConstructor(pat.Name, resolver, ce)

	case typedast.TypedConstructorPattern:
		def := resolver.Resolve(pat.Name)
		if def.Kind == typeoracle.DefVariant {
			return variant(def.TypeName + "." + pat.Name), true, nil
		}
		// Constructor pattern naming something other than a variant is an
		// internal invariant violation (spec.md §7 class 2): the resolver
		// and the pattern disagree about what this name denotes.
		return Constructor{}, false, errUnresolvedForm(pat.Name)

	case typedast.TypedRecordPattern:
		// ailang's record patterns are always anonymous (matched against a
		// structural TRecord, never a named record-variant), so the
		// "Variant(id) if resolving to a variant" half of spec.md §4.B's
		// record rule never applies here.
		return single(), true, nil

	case typedast.TypedTuplePattern, typedast.TypedBoxPattern:
		return single(), true, nil

	case typedast.TypedLitPattern:
		cv, err := ce.EvalConst(pat.Value)
		if err != nil {
			return Constructor{}, false, err
		}
		return constVal(cv), true, nil

	case typedast.TypedRangePattern:
		lo, err := ce.EvalConst(pat.Lo)
		if err != nil {
			return Constructor{}, false, err
		}
		hi, err := ce.EvalConst(pat.Hi)
		if err != nil {
			return Constructor{}, false, err
		}
		return rangeC(lo, hi), true, nil

	case typedast.TypedSlicePattern:
		if pat.Middle == nil {
			return vec(len(pat.Before) + len(pat.After)), true, nil
		}
		return Constructor{}, false, nil

	case typedast.TypedListPattern:
		if pat.Tail == nil {
			return vec(len(pat.Elements)), true, nil
		}
		return Constructor{}, false, nil

	default:
		return Constructor{}, false, errUnresolvedForm("<unknown pattern>")
	}
}

// namedConstructor resolves a bare-name pattern (VarPattern/BindPattern
// head) against the definition resolver, per the two "Bindings ... resolving
// to a variant/constant" rules in spec.md §4.B.
func namedConstructor(name string, resolver DefResolver, ce ConstEval) (Constructor, bool, error) {
	def := resolver.Resolve(name)
	switch def.Kind {
	case typeoracle.DefVariant:
		return variant(def.TypeName + "." + name), true, nil
	case typeoracle.DefConst:
		return constVal(def.ConstVal), true, nil
	default:
		return Constructor{}, false, nil
	}
}

// errUnresolvedForm signals an internal-invariant violation (spec.md §7
// class 2): a pattern form the analyzer cannot classify, which should
// never survive a correct earlier compiler phase.
func errUnresolvedForm(name string) error {
	return unexpandedFormError{name: name}
}

type unexpandedFormError struct{ name string }

func (e unexpandedFormError) Error() string {
	return "unresolved pattern form: " + e.name
}
