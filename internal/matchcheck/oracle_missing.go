package matchcheck

import (
	"sort"

	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/types"
)

// sliceShape describes one row's column-0 slice pattern for the
// variable-length-sequence ordering discipline in spec.md §4.D/§9.
type sliceShape struct {
	length    int
	hasMiddle bool
}

// missingConstructor is spec.md §4.D: given matrix m and column type t,
// return a constructor witnessing incompleteness, or ok=false if the
// column is complete.
func missingConstructor(m matrix, t types.Type, oracle TypeOracle, resolver DefResolver, ce ConstEval) (Constructor, bool, error) {
	kind := oracle.TypeKind(t)

	switch kind {
	case KindBool:
		return missingFiniteSignature(m, t, oracle, resolver, ce)

	case KindEnum:
		return missingFiniteSignature(m, t, oracle, resolver, ce)

	case KindFixedSeq:
		n := fixedSeqLen(t)
		shapes := sliceShapesOf(m, resolver)
		for _, s := range shapes {
			if s.hasMiddle && s.length <= n {
				return Constructor{}, false, nil
			}
			if !s.hasMiddle && s.length == n {
				return Constructor{}, false, nil
			}
		}
		return vec(n), true, nil

	case KindVarSeq:
		shapes := sliceShapesOf(m, resolver)
		sort.Slice(shapes, func(i, j int) bool {
			if shapes[i].length != shapes[j].length {
				return shapes[i].length < shapes[j].length
			}
			// has-middle ordered first at equal length (spec.md §9)
			return shapes[i].hasMiddle && !shapes[j].hasMiddle
		})

		seenLen := map[int]bool{}
		sawFlexible := false
		maxPlainLen := -1
		for _, s := range shapes {
			seenLen[s.length] = true
			if s.hasMiddle {
				sawFlexible = true
			} else if s.length > maxPlainLen {
				maxPlainLen = s.length
			}
		}

		for l := 0; ; l++ {
			if !seenLen[l] {
				// a flexible slice at or below l already absorbs it
				covered := false
				for _, s := range shapes {
					if s.hasMiddle && s.length <= l {
						covered = true
						break
					}
				}
				if covered {
					continue
				}
				return vec(l), true, nil
			}
			if l >= maxPlainLen {
				break
			}
		}
		if !sawFlexible {
			return vec(maxPlainLen + 1), true, nil
		}
		return Constructor{}, false, nil

	case KindTuple, KindRecord, KindBox, KindReference, KindString:
		// Product-shaped types carry exactly one constructor (Single), so
		// the signature is always complete: specializeRow treats a
		// wildcard head and a literal Single-shaped pattern identically.
		return Constructor{}, false, nil

	case KindNil:
		return Constructor{}, false, nil

	case KindScalar:
		// Infinite, un-enumerable domains (raw ints/floats with no
		// variant structure) are never complete: the only way to cover
		// them is an unconditional wildcard/binding, which recursion
		// through the default matrix already tests for.
		return single(), true, nil

	default:
		return Constructor{}, false, nil
	}
}

func missingFiniteSignature(m matrix, t types.Type, oracle TypeOracle, resolver DefResolver, ce ConstEval) (Constructor, bool, error) {
	sig, ok := signature(t, oracle)
	if !ok {
		return Constructor{}, false, nil
	}
	present := make([]bool, len(sig))
	for _, r := range m {
		if len(r) == 0 {
			continue
		}
		c, ok, err := patternConstructor(r[0], resolver, ce)
		if err != nil {
			return Constructor{}, false, err
		}
		if !ok {
			continue
		}
		for i, sc := range sig {
			if sc.Equal(c, ce) {
				present[i] = true
			}
		}
	}
	for i, sc := range sig {
		if !present[i] {
			return sc, true, nil
		}
	}
	return Constructor{}, false, nil
}

func fixedSeqLen(t types.Type) int {
	if tup, ok := t.(*types.TTuple); ok {
		return len(tup.Elements)
	}
	return 0
}

func sliceShapesOf(m matrix, resolver DefResolver) []sliceShape {
	var shapes []sliceShape
	for _, r := range m {
		if len(r) == 0 {
			continue
		}
		raw := rawPattern(r[0])
		switch p := raw.(type) {
		case typedast.TypedSlicePattern:
			l := len(p.Before) + len(p.After)
			shapes = append(shapes, sliceShape{length: l, hasMiddle: p.Middle != nil})
		case typedast.TypedListPattern:
			shapes = append(shapes, sliceShape{length: len(p.Elements), hasMiddle: p.Tail != nil})
		}
	}
	return shapes
}
