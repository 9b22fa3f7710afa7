package matchcheck

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/core"
	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/types"
)

// typedOccurrence is one by-value/by-ref binding found while walking a
// typed pattern, carrying just what spec.md §4.H's two passes need.
type typedOccurrence struct {
	mode   core.BindMode
	typ    types.Type
	hasSub bool
}

// CheckBindingModesTyped is spec.md §4.H applied to a type-checked match
// arm's pattern. span anchors every diagnostic at the arm's own span:
// typedast/core patterns carry no per-subpattern position (the teacher's
// Core IR never modeled one — see typechecker_patterns.go's own
// arm-indexed constraint paths for the same granularity), so this matches
// the precision already used elsewhere for arm-level diagnostics.
func CheckBindingModesTyped(pat typedast.TypedPattern, hasGuard bool, oracle TypeOracle, diag Diagnostics, span ast.Pos) {
	occs := typedPatternBindings(pat)

	sawByRef := false
	for _, o := range occs {
		if o.mode == core.ByRef {
			sawByRef = true
			break
		}
	}

	for _, o := range occs {
		if o.mode != core.ByValue || o.typ == nil || !oracle.MovesByDefault(o.typ) {
			continue
		}
		switch {
		case o.hasSub:
			diag.Error(span, msgMoveWithSubBindings)
		case hasGuard:
			diag.Error(span, msgMoveIntoGuard)
		case sawByRef:
			diag.Error(span, msgMoveAndRefSamePattern)
			diag.Note(span, msgByRefOccursHere)
		}
	}
}

func typedPatternBindings(p typedast.TypedPattern) []typedOccurrence {
	var out []typedOccurrence
	var walk func(p typedast.TypedPattern)
	walk = func(p typedast.TypedPattern) {
		switch pat := p.(type) {
		case typedast.TypedVarPattern:
			out = append(out, typedOccurrence{mode: core.ByValue, typ: asType(pat.Type)})
		case typedast.TypedBindPattern:
			out = append(out, typedOccurrence{
				mode:   pat.Mode,
				typ:    asType(pat.Type),
				hasSub: pat.Sub != nil && typedPatternHasBinding(pat.Sub),
			})
			if pat.Sub != nil {
				walk(pat.Sub)
			}
		case typedast.TypedTuplePattern:
			for _, e := range pat.Elements {
				walk(e)
			}
		case typedast.TypedRecordPattern:
			for _, f := range pat.Fields {
				walk(f.Pattern)
			}
		case typedast.TypedConstructorPattern:
			for _, a := range pat.Args {
				walk(a)
			}
		case typedast.TypedBoxPattern:
			walk(pat.Inner)
		case typedast.TypedSlicePattern:
			for _, e := range pat.Before {
				walk(e)
			}
			for _, e := range pat.After {
				walk(e)
			}
			if pat.Middle != nil {
				walk(*pat.Middle)
			}
		case typedast.TypedListPattern:
			for _, e := range pat.Elements {
				walk(e)
			}
			if pat.Tail != nil {
				walk(*pat.Tail)
			}
		}
	}
	walk(p)
	return out
}

func typedPatternHasBinding(p typedast.TypedPattern) bool {
	found := false
	var walk func(p typedast.TypedPattern)
	walk = func(p typedast.TypedPattern) {
		if found {
			return
		}
		switch pat := p.(type) {
		case typedast.TypedVarPattern, typedast.TypedBindPattern:
			found = true
		case typedast.TypedTuplePattern:
			for _, e := range pat.Elements {
				walk(e)
			}
		case typedast.TypedRecordPattern:
			for _, f := range pat.Fields {
				walk(f.Pattern)
			}
		case typedast.TypedConstructorPattern:
			for _, a := range pat.Args {
				walk(a)
			}
		case typedast.TypedBoxPattern:
			walk(pat.Inner)
		case typedast.TypedSlicePattern:
			for _, e := range pat.Before {
				walk(e)
			}
			for _, e := range pat.After {
				walk(e)
			}
			if pat.Middle != nil {
				walk(*pat.Middle)
			}
		case typedast.TypedListPattern:
			for _, e := range pat.Elements {
				walk(e)
			}
			if pat.Tail != nil {
				walk(*pat.Tail)
			}
		}
	}
	walk(p)
	return found
}

func asType(v interface{}) types.Type {
	t, _ := v.(types.Type)
	return t
}

// astOccurrence is the surface-AST counterpart of typedOccurrence, used at
// irrefutable binding sites (let/param) where a real per-binding ast.Pos
// is available, unlike the typed-pattern case above.
type astOccurrence struct {
	mode   ast.BindMode
	pos    ast.Pos
	hasSub bool
}

// CheckBindingModesAST is spec.md §4.H applied to a let/for/param
// irrefutable binding site (hasGuard is always false there, per spec.md
// §4.H's closing rule). annotated is the statically known type of the
// whole pattern if one is available from a surface type annotation; a nil
// annotated type skips the move-by-default check for that site rather
// than guessing (see DESIGN.md: ailang's `let` bindings are frequently
// unannotated, and typedast.TypedLet was never extended to carry a
// pattern, so irrefutable-binding-site legality only fires where an
// annotation makes it decidable).
func CheckBindingModesAST(pat ast.Pattern, hasGuard bool, annotated types.Type, oracle TypeOracle, diag Diagnostics) {
	occs := astPatternBindings(pat)

	sawByRef := false
	for _, o := range occs {
		if o.mode == ast.ByRef {
			sawByRef = true
			break
		}
	}

	for _, o := range occs {
		if o.mode != ast.ByValue || annotated == nil || !oracle.MovesByDefault(annotated) {
			continue
		}
		switch {
		case o.hasSub:
			diag.Error(o.pos, msgMoveWithSubBindings)
		case hasGuard:
			diag.Error(o.pos, msgMoveIntoGuard)
		case sawByRef:
			diag.Error(o.pos, msgMoveAndRefSamePattern)
			diag.Note(o.pos, msgByRefOccursHere)
		}
	}
}

func astPatternBindings(p ast.Pattern) []astOccurrence {
	var out []astOccurrence
	var walk func(p ast.Pattern)
	walk = func(p ast.Pattern) {
		switch pat := p.(type) {
		case *ast.Identifier:
			out = append(out, astOccurrence{mode: ast.ByValue, pos: pat.Pos})
		case *ast.BindPattern:
			out = append(out, astOccurrence{
				mode:   pat.Mode,
				pos:    pat.Pos,
				hasSub: pat.Sub != nil && astPatternHasBinding(pat.Sub),
			})
			if pat.Sub != nil {
				walk(pat.Sub)
			}
		case *ast.TuplePattern:
			for _, e := range pat.Elements {
				walk(e)
			}
		case *ast.RecordPattern:
			for _, f := range pat.Fields {
				walk(f.Pattern)
			}
		case *ast.ConstructorPattern:
			for _, e := range pat.Patterns {
				walk(e)
			}
		case *ast.BoxPattern:
			walk(pat.Inner)
		case *ast.SlicePattern:
			for _, e := range pat.Before {
				walk(e)
			}
			for _, e := range pat.After {
				walk(e)
			}
			if pat.Middle != nil {
				walk(pat.Middle)
			}
		case *ast.ConsPattern:
			walk(pat.Head)
			walk(pat.Tail)
		case *ast.ListPattern:
			for _, e := range pat.Elements {
				walk(e)
			}
			if pat.Rest != nil {
				walk(pat.Rest)
			}
		}
	}
	walk(p)
	return out
}

func astPatternHasBinding(p ast.Pattern) bool {
	found := false
	var walk func(p ast.Pattern)
	walk = func(p ast.Pattern) {
		if found {
			return
		}
		switch pat := p.(type) {
		case *ast.Identifier, *ast.BindPattern:
			found = true
		case *ast.TuplePattern:
			for _, e := range pat.Elements {
				walk(e)
			}
		case *ast.RecordPattern:
			for _, f := range pat.Fields {
				walk(f.Pattern)
			}
		case *ast.ConstructorPattern:
			for _, e := range pat.Patterns {
				walk(e)
			}
		case *ast.BoxPattern:
			walk(pat.Inner)
		case *ast.SlicePattern:
			for _, e := range pat.Before {
				walk(e)
			}
			for _, e := range pat.After {
				walk(e)
			}
			if pat.Middle != nil {
				walk(pat.Middle)
			}
		case *ast.ConsPattern:
			walk(pat.Head)
			walk(pat.Tail)
		case *ast.ListPattern:
			for _, e := range pat.Elements {
				walk(e)
			}
			if pat.Rest != nil {
				walk(pat.Rest)
			}
		}
	}
	walk(p)
	return found
}
