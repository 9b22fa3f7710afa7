// Package matchcheck implements Maranget's usefulness/exhaustiveness
// algorithm over ailang's typed pattern AST: reachability and
// exhaustiveness of match expressions, refutability of irrefutable
// binding sites, and legality of by-move/by-ref binding combinations.
//
// It runs after type checking, operating on typedast.TypedPattern, so
// every column's type is already resolved — unlike the original
// rustc pass this is grounded on (original_source's check_match.rs),
// there is no separate NodeId -> Type indirection to thread through the
// four external collaborators below.
package matchcheck

import (
	"sort"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/typeoracle"
)

// TypeKind classifies a column's type for constructor-signature
// enumeration. Re-exported from typeoracle so callers of this package
// never need to import it directly.
type TypeKind = typeoracle.TypeKind

const (
	KindOther     = typeoracle.KindOther
	KindBool      = typeoracle.KindBool
	KindEnum      = typeoracle.KindEnum
	KindTuple     = typeoracle.KindTuple
	KindRecord    = typeoracle.KindRecord
	KindBox       = typeoracle.KindBox
	KindReference = typeoracle.KindReference
	KindFixedSeq  = typeoracle.KindFixedSeq
	KindVarSeq    = typeoracle.KindVarSeq
	KindString    = typeoracle.KindString
	KindNil       = typeoracle.KindNil
	KindScalar    = typeoracle.KindScalar
)

// TypeOracle is the first external collaborator from spec §6.
type TypeOracle interface {
	TypeKind(t types.Type) TypeKind
	VariantsOf(t types.Type) []typeoracle.Variant
	FieldsOf(t types.Type) []typeoracle.Field
	IsInhabited(t types.Type) bool
	MovesByDefault(t types.Type) bool
}

// ConstEval is the second external collaborator from spec §6.
type ConstEval interface {
	EvalConst(v interface{}) (typeoracle.ConstValue, error)
	Compare(a, b typeoracle.ConstValue) typeoracle.Ordering
}

// DefResolver is the third external collaborator from spec §6.
type DefResolver interface {
	Resolve(name string) typeoracle.Def
}

// Diagnostics is the fourth external collaborator: the session's
// diagnostic sink, adapted to ailang's *errors.Report in diagnostics.go.
type Diagnostics interface {
	Error(span ast.Pos, message string)
	Warn(span ast.Pos, message string)
	Note(span ast.Pos, message string)
	Bug(span ast.Pos, message string)
}

// oracleAdapter lets the matchcheck package consult a typeoracle.Registry
// through the narrower TypeOracle interface above, translating the
// registry's name-keyed queries into the types.Type-keyed shape spec.md
// demands.
type oracleAdapter struct {
	reg *typeoracle.Registry
}

// NewTypeOracle adapts a typeoracle.Registry to the TypeOracle interface.
func NewTypeOracle(reg *typeoracle.Registry) TypeOracle {
	return &oracleAdapter{reg: reg}
}

func (o *oracleAdapter) TypeKind(t types.Type) TypeKind {
	return o.reg.TypeKindOf(t)
}

func (o *oracleAdapter) VariantsOf(t types.Type) []typeoracle.Variant {
	con, ok := t.(*types.TCon)
	if !ok {
		return nil
	}
	return o.reg.VariantsOf(con.Name)
}

func (o *oracleAdapter) FieldsOf(t types.Type) []typeoracle.Field {
	switch ty := t.(type) {
	case *types.TCon:
		return o.reg.FieldsOf(ty.Name)
	case *types.TRecord:
		// TRecord.Fields is an unordered map (ailang's inline record types
		// carry no declaration order); sort by name for determinism. Named
		// record *types* go through typeoracle.Registry.FieldsOf instead,
		// which does preserve true declaration order from the AST.
		names := make([]string, 0, len(ty.Fields))
		for name := range ty.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]typeoracle.Field, len(names))
		for i, name := range names {
			fields[i] = typeoracle.Field{Name: name, Type: ty.Fields[name]}
		}
		return fields
	default:
		return nil
	}
}

func (o *oracleAdapter) IsInhabited(t types.Type) bool {
	return o.reg.IsInhabited(t)
}

func (o *oracleAdapter) MovesByDefault(t types.Type) bool {
	return o.reg.MovesByDefault(t)
}

// constEvalAdapter adapts the package-level EvalConst/Compare functions in
// internal/typeoracle to the ConstEval interface.
type constEvalAdapter struct{}

// NewConstEval returns the default constant evaluator.
func NewConstEval() ConstEval { return constEvalAdapter{} }

func (constEvalAdapter) EvalConst(v interface{}) (typeoracle.ConstValue, error) {
	return typeoracle.EvalConst(v)
}

func (constEvalAdapter) Compare(a, b typeoracle.ConstValue) typeoracle.Ordering {
	return typeoracle.Compare(a, b)
}
