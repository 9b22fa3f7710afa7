package matchcheck

import (
	"fmt"

	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/typeoracle"
)

// ctorTag is the closed set of constructor shapes from spec.md §3.
type ctorTag int

const (
	ctorSingle ctorTag = iota
	ctorVariant
	ctorConst
	ctorRange
	ctorVec
)

// Constructor is the tagged, closed sum described in spec.md: two
// constructors are equal iff their tag and payload match.
type Constructor struct {
	tag     ctorTag
	variant string // ctorVariant: qualified variant id
	val     typeoracle.ConstValue
	lo, hi  typeoracle.ConstValue
	n       int // ctorVec: length
}

func single() Constructor                      { return Constructor{tag: ctorSingle} }
func variant(id string) Constructor             { return Constructor{tag: ctorVariant, variant: id} }
func constVal(v typeoracle.ConstValue) Constructor { return Constructor{tag: ctorConst, val: v} }
func rangeC(lo, hi typeoracle.ConstValue) Constructor {
	return Constructor{tag: ctorRange, lo: lo, hi: hi}
}
func vec(n int) Constructor { return Constructor{tag: ctorVec, n: n} }

func (c Constructor) String() string {
	switch c.tag {
	case ctorSingle:
		return "Single"
	case ctorVariant:
		return fmt.Sprintf("Variant(%s)", c.variant)
	case ctorConst:
		return fmt.Sprintf("ConstValue(%v)", c.val.Val)
	case ctorRange:
		return fmt.Sprintf("Range(%v, %v)", c.lo.Val, c.hi.Val)
	case ctorVec:
		return fmt.Sprintf("Vec(%d)", c.n)
	default:
		return "<unknown constructor>"
	}
}

// Equal implements the exact tag+payload equality spec.md requires.
func (c Constructor) Equal(o Constructor, ce ConstEval) bool {
	if c.tag != o.tag {
		return false
	}
	switch c.tag {
	case ctorSingle:
		return true
	case ctorVariant:
		return c.variant == o.variant
	case ctorConst:
		return ce.Compare(c.val, o.val) == typeoracle.Equal
	case ctorRange:
		return ce.Compare(c.lo, o.lo) == typeoracle.Equal && ce.Compare(c.hi, o.hi) == typeoracle.Equal
	case ctorVec:
		return c.n == o.n
	default:
		return false
	}
}

// arity is spec.md §4.A: the number of child columns a constructor
// produces when specializing a column of type t.
func arity(c Constructor, t types.Type, oracle TypeOracle) int {
	switch c.tag {
	case ctorVariant:
		for _, v := range oracle.VariantsOf(t) {
			if v.ID == c.variant {
				return len(v.Args)
			}
		}
		return 0
	case ctorVec:
		return c.n
	case ctorSingle:
		switch oracle.TypeKind(t) {
		case KindTuple:
			if tup, ok := t.(*types.TTuple); ok {
				return len(tup.Elements)
			}
			return 0
		case KindRecord:
			return len(oracle.FieldsOf(t))
		case KindBox, KindReference:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// signature is spec.md §4.A: the set of constructors that together match
// every value of column type t. It serves only the finite cases and
// reports ok=false for everything else (ints, floats, sequences); isUseful
// then enumerates sequence lengths itself (spec §4.E).
func signature(t types.Type, oracle TypeOracle) ([]Constructor, bool) {
	switch oracle.TypeKind(t) {
	case KindBool:
		return []Constructor{
			constVal(typeoracle.ConstValue{Val: true}),
			constVal(typeoracle.ConstValue{Val: false}),
		}, true
	case KindEnum:
		variants := oracle.VariantsOf(t)
		cs := make([]Constructor, len(variants))
		for i, v := range variants {
			cs[i] = variant(v.ID)
		}
		return cs, true
	case KindTuple, KindRecord, KindBox, KindReference, KindString, KindNil:
		return []Constructor{single()}, true
	default:
		return nil, false
	}
}
