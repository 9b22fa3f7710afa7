package matchcheck

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/types"
)

// VerdictTag is the closed outcome set of isUseful.
type VerdictTag int

const (
	NotUseful VerdictTag = iota
	Useful
	UsefulWith
)

// Verdict is the result of testing one candidate row against a matrix:
// unreachable, useful with no particular witness needed, or useful via a
// specific missing constructor (the shape exhaustiveness diagnostics quote).
type Verdict struct {
	Tag     VerdictTag
	Type    types.Type
	Witness Constructor
}

// withSpan returns a copy of e scoped to span, letting callers check
// several arms of the same match with one shared collaborator bundle.
func (e env) withSpan(span ast.Pos) env {
	e.span = span
	return e
}

func notUseful() Verdict { return Verdict{Tag: NotUseful} }
func useful() Verdict     { return Verdict{Tag: Useful} }
func usefulWith(t types.Type, c Constructor) Verdict {
	return Verdict{Tag: UsefulWith, Type: t, Witness: c}
}

// env bundles the four external collaborators plus the diagnostic span
// threaded through specialize/covers, so the recursive usefulness calls
// below don't each carry eight positional parameters.
type env struct {
	resolver DefResolver
	oracle   TypeOracle
	ce       ConstEval
	diag     Diagnostics
	span     ast.Pos
}

// isUseful is spec.md §4.E: is row v useful with respect to matrix m — does
// it match some value that no row of m already matches?
func isUseful(m matrix, v row, e env) (Verdict, error) {
	if len(v) == 0 {
		if len(m) == 0 {
			return useful(), nil
		}
		return notUseful(), nil
	}

	t := columnType(m, v)
	head := rawPattern(v[0])

	if c, ok, err := patternConstructor(head, e.resolver, e.ce); err != nil {
		return Verdict{}, err
	} else if ok {
		return isUsefulSpecialized(m, v, c, t, e)
	}

	// Wildlike head: try every constructor already present in m's column,
	// plus ask the oracle whether the signature is complete.
	missing, incomplete, err := missingConstructor(m, t, e.oracle, e.resolver, e.ce)
	if err != nil {
		return Verdict{}, err
	}

	if !incomplete {
		sig, ok := signature(t, e.oracle)
		if !ok {
			// Sequence kinds are enumerated by length: a fixed sequence has
			// the one length n, a variable one is tried at every length up
			// to the longest slice row in the column. Any other kind that
			// signature() cannot enumerate is tried as Single.
			switch e.oracle.TypeKind(t) {
			case KindFixedSeq:
				sig = []Constructor{vec(fixedSeqLen(t))}
			case KindVarSeq:
				maxLen := 0
				for _, s := range sliceShapesOf(m, e.resolver) {
					if s.length > maxLen {
						maxLen = s.length
					}
				}
				for l := 0; l <= maxLen; l++ {
					sig = append(sig, vec(l))
				}
			default:
				sig = []Constructor{single()}
			}
		}
		for _, c := range sig {
			verdict, err := isUsefulSpecialized(m, v, c, t, e)
			if err != nil {
				return Verdict{}, err
			}
			if verdict.Tag != NotUseful {
				return verdict, nil
			}
		}
		return notUseful(), nil
	}

	// Incomplete signature: recurse through the default matrix, dropping
	// the head column from both m and v; a useful result here is witnessed
	// by the oracle's missing constructor.
	dm := defaultMatrix(m, e.resolver)
	verdict, err := isUseful(dm, v[1:], e)
	if err != nil {
		return Verdict{}, err
	}
	if verdict.Tag == NotUseful {
		return notUseful(), nil
	}
	return usefulWith(t, missing), nil
}

// isUsefulSpecialized drives one constructor branch of isUseful: specialize
// both m and v against c and recurse on the shorter, specialized problem.
func isUsefulSpecialized(m matrix, v row, c Constructor, t types.Type, e env) (Verdict, error) {
	a := arity(c, t, e.oracle)

	specV, ok, err := specializeRow(v, c, a, t, e.resolver, e.oracle, e.ce, e.diag, e.span)
	if err != nil {
		return Verdict{}, err
	}
	if !ok {
		return notUseful(), nil
	}

	specM, err := specialize(m, c, a, t, e.resolver, e.oracle, e.ce, e.diag, e.span)
	if err != nil {
		return Verdict{}, err
	}

	verdict, err := isUseful(specM, specV, e)
	if err != nil {
		return Verdict{}, err
	}
	if verdict.Tag == Useful {
		return usefulWith(t, c), nil
	}
	return verdict, nil
}

// buildRow converts a typed pattern list into the row type isUseful expects.
func buildRow(pats ...typedast.TypedPattern) row {
	return row(pats)
}
