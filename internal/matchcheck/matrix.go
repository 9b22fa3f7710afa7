package matchcheck

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/typeoracle"
)

// row is one pattern-vector of a matrix: a candidate arm with no guard,
// or the sub-problem produced by specializing/defaulting one.
type row []typedast.TypedPattern

// matrix is the m x k grid from spec.md §3. All rows share a width for
// the duration of any one recursive call (invariant 1).
type matrix []row

// wildcardPattern synthesizes an unbound wildcard for arity padding. It
// carries no source node, matching spec.md §9's "synthesized wildcards
// carry a sentinel no-id marker" rule: column-type derivation skips it.
func wildcardPattern() typedast.TypedPattern {
	return typedast.TypedWildcardPattern{}
}

// columnType derives the type of column 0, preferring any row whose head
// pattern carries a real type, per spec.md invariant 4. v is the
// candidate row being tested; its head is consulted only if no matrix row
// has one.
func columnType(m matrix, v row) types.Type {
	for _, r := range m {
		if len(r) == 0 {
			continue
		}
		if t := patternType(r[0]); t != nil {
			return t
		}
	}
	if len(v) > 0 {
		return patternType(v[0])
	}
	return nil
}

// patternType extracts the monomorphic type carried by a typed pattern,
// or nil for the synthesized wildcard sentinel.
func patternType(p typedast.TypedPattern) types.Type {
	switch pat := p.(type) {
	case typedast.TypedVarPattern:
		t, _ := pat.Type.(types.Type)
		return t
	case typedast.TypedBindPattern:
		t, _ := pat.Type.(types.Type)
		return t
	case typedast.TypedRangePattern:
		t, _ := pat.Type.(types.Type)
		return t
	default:
		return nil
	}
}

// specializeRow is spec.md §4.C: given row r, a constructor c of arity a,
// and column type t, yields the specialized row or ok=false if r cannot
// match c.
func specializeRow(r row, c Constructor, a int, t types.Type, resolver DefResolver, oracle TypeOracle, ce ConstEval, diag Diagnostics, span ast.Pos) (row, bool, error) {
	head := rawPattern(r[0])
	rest := r[1:]

	wildcards := func(n int) row {
		out := make(row, n)
		for i := range out {
			out[i] = wildcardPattern()
		}
		return out
	}

	switch pat := head.(type) {
	case typedast.TypedWildcardPattern:
		return prepend(wildcards(a), rest), true, nil

	case typedast.TypedVarPattern:
		return specializeNamed(pat.Name, rest, c, a, resolver, ce, wildcards)

	case typedast.TypedBindPattern:
		return specializeNamed(pat.Name, rest, c, a, resolver, ce, wildcards)

	case typedast.TypedConstructorPattern:
		def := resolver.Resolve(pat.Name)
		want := variant(def.TypeName + "." + pat.Name)
		if !want.Equal(c, ce) {
			return nil, false, nil
		}
		children := make(row, a)
		for i := 0; i < a; i++ {
			if i < len(pat.Args) {
				children[i] = pat.Args[i]
			} else {
				children[i] = wildcardPattern()
			}
		}
		return prepend(children, rest), true, nil

	case typedast.TypedRecordPattern:
		// Single is always kept; children are the record's declared
		// fields in order, substituting a wildcard for any field the
		// pattern omits.
		byName := make(map[string]typedast.TypedPattern, len(pat.Fields))
		for _, f := range pat.Fields {
			byName[f.Name] = f.Pattern
		}
		fields := oracle.FieldsOf(t)
		children := make(row, len(fields))
		for i, f := range fields {
			if sub, ok := byName[f.Name]; ok {
				children[i] = sub
			} else {
				children[i] = wildcardPattern()
			}
		}
		return prepend(children, rest), true, nil

	case typedast.TypedTuplePattern:
		return prepend(row(pat.Elements), rest), true, nil

	case typedast.TypedBoxPattern:
		return prepend(row{pat.Inner}, rest), true, nil

	case typedast.TypedLitPattern:
		lit, err := ce.EvalConst(pat.Value)
		if err != nil {
			return nil, false, err
		}
		ok, err := covers(c, lit, lit, ce, diag, span)
		if err != nil || !ok {
			return nil, false, err
		}
		return rest, true, nil

	case typedast.TypedRangePattern:
		lo, err := ce.EvalConst(pat.Lo)
		if err != nil {
			return nil, false, err
		}
		hi, err := ce.EvalConst(pat.Hi)
		if err != nil {
			return nil, false, err
		}
		ok, err := covers(c, lo, hi, ce, diag, span)
		if err != nil || !ok {
			return nil, false, err
		}
		return rest, true, nil

	case typedast.TypedSlicePattern:
		return specializeSlice(pat.Before, pat.Middle, pat.After, c, wildcards, rest)

	case typedast.TypedListPattern:
		var middle *typedast.TypedBindPattern
		if pat.Tail != nil {
			if bp, ok := (*pat.Tail).(typedast.TypedBindPattern); ok {
				middle = &bp
			} else {
				// a fixed-but-unnamed tail (e.g. `[x, ...]`) behaves like an
				// anonymous middle binding for specialization purposes
				middle = &typedast.TypedBindPattern{Name: "_"}
			}
		}
		return specializeSlice(pat.Elements, middle, nil, c, wildcards, rest)

	default:
		return nil, false, errUnresolvedForm("<unknown pattern>")
	}
}

func specializeNamed(name string, rest row, c Constructor, a int, resolver DefResolver, ce ConstEval, wildcards func(int) row) (row, bool, error) {
	def := resolver.Resolve(name)
	switch def.Kind {
	case typeoracle.DefVariant:
		want := variant(def.TypeName + "." + name)
		if !want.Equal(c, ce) {
			return nil, false, nil
		}
		return prepend(wildcards(a), rest), true, nil
	case typeoracle.DefConst:
		if c.tag != ctorConst || ce.Compare(c.val, def.ConstVal) != typeoracle.Equal {
			return nil, false, nil
		}
		return rest, true, nil
	default:
		// plain binding: behaves like a wildcard
		return prepend(wildcards(a), rest), true, nil
	}
}

func specializeSlice(before []typedast.TypedPattern, middle *typedast.TypedBindPattern, after []typedast.TypedPattern, c Constructor, wildcards func(int) row, rest row) (row, bool, error) {
	if c.tag != ctorVec {
		return nil, false, nil
	}
	a := c.n
	total := len(before) + len(after)
	switch {
	case total == a:
		children := append(append(row{}, before...), after...)
		return prepend(children, rest), true, nil
	case total < a && middle != nil:
		pad := wildcards(a - total)
		children := append(append(append(row{}, before...), pad...), after...)
		return prepend(children, rest), true, nil
	default:
		return nil, false, nil
	}
}

// covers is spec.md §4.C's range-coverage relation: does constructor c
// cover the interval [lo, hi]?
func covers(c Constructor, lo, hi typeoracle.ConstValue, ce ConstEval, diag Diagnostics, span ast.Pos) (bool, error) {
	switch c.tag {
	case ctorSingle:
		return true, nil
	case ctorConst:
		loOrd := ce.Compare(c.val, lo)
		hiOrd := ce.Compare(c.val, hi)
		if loOrd == typeoracle.Incomparable || hiOrd == typeoracle.Incomparable {
			diag.Error(span, msgMismatchedTypes)
			return false, nil
		}
		return loOrd != typeoracle.Less && hiOrd != typeoracle.Greater, nil
	case ctorRange:
		aOrd := ce.Compare(c.lo, lo)
		bOrd := ce.Compare(hi, c.hi)
		if aOrd == typeoracle.Incomparable || bOrd == typeoracle.Incomparable {
			diag.Error(span, msgMismatchedTypes)
			return false, nil
		}
		return aOrd != typeoracle.Greater && bOrd != typeoracle.Greater, nil
	default:
		return false, nil
	}
}

// specialize applies specializeRow across a whole matrix, keeping only
// surviving rows (spec.md §4.E's isUsefulSpecialized).
func specialize(m matrix, c Constructor, a int, t types.Type, resolver DefResolver, oracle TypeOracle, ce ConstEval, diag Diagnostics, span ast.Pos) (matrix, error) {
	var out matrix
	for _, r := range m {
		if len(r) == 0 {
			continue
		}
		spec, ok, err := specializeRow(r, c, a, t, resolver, oracle, ce, diag, span)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, spec)
		}
	}
	return out, nil
}

// defaultMatrix is spec.md §4.C's Default(m): keep rows whose head is
// wildlike, dropping that head column.
func defaultMatrix(m matrix, resolver DefResolver) matrix {
	var out matrix
	for _, r := range m {
		if len(r) == 0 {
			continue
		}
		if isWildlike(r[0], resolver) {
			out = append(out, r[1:])
		}
	}
	return out
}

func prepend(children row, rest row) row {
	out := make(row, 0, len(children)+len(rest))
	out = append(out, children...)
	out = append(out, rest...)
	return out
}
