package matchcheck

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/typeoracle"
)

// BindingContext selects the wording of the refutability diagnostic, per
// spec.md §4.G's three reported contexts.
type BindingContext int

const (
	ContextLocal BindingContext = iota
	ContextForLoop
	ContextFuncArg
)

func (c BindingContext) message() string {
	switch c {
	case ContextForLoop:
		return msgRefutableForBinding
	case ContextFuncArg:
		return msgRefutableFuncArg
	default:
		return msgRefutableLocalBinding
	}
}

// ContextFor maps an ast.LocalSource to the refutability diagnostic context
// a let/for binding should use.
func ContextFor(source ast.LocalSource) BindingContext {
	if source == ast.LocalFor {
		return ContextForLoop
	}
	return ContextLocal
}

// IsRefutable is spec.md §4.G: true iff p can fail to match some value of
// its type. Wildcards, slice wildcards, plain bindings, and bindings
// naming the sole variant of a single-variant enum are irrefutable;
// everything else recurses into its sub-patterns.
func IsRefutable(p ast.Pattern, reg *typeoracle.Registry, resolver DefResolver) bool {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return false

	case *ast.Identifier:
		return isRefutableName(pat.Name, reg, resolver)

	case *ast.BindPattern:
		if pat.Sub != nil {
			return IsRefutable(pat.Sub, reg, resolver)
		}
		return isRefutableName(pat.Name, reg, resolver)

	case *ast.Literal:
		return pat.Kind != ast.UnitLit

	case *ast.RangePattern:
		return true

	case *ast.SlicePattern, *ast.ConsPattern, *ast.ListPattern:
		return true

	case *ast.RecordPattern:
		for _, f := range pat.Fields {
			if IsRefutable(f.Pattern, reg, resolver) {
				return true
			}
		}
		return false

	case *ast.TuplePattern:
		for _, e := range pat.Elements {
			if IsRefutable(e, reg, resolver) {
				return true
			}
		}
		return false

	case *ast.BoxPattern:
		return IsRefutable(pat.Inner, reg, resolver)

	case *ast.ConstructorPattern:
		if variantIsRefutable(pat.Name, reg, resolver) {
			return true
		}
		for _, sub := range pat.Patterns {
			if IsRefutable(sub, reg, resolver) {
				return true
			}
		}
		return false

	default:
		// Unknown pattern form: conservatively refutable rather than
		// silently accepting something the parser didn't model above.
		return true
	}
}

func isRefutableName(name string, reg *typeoracle.Registry, resolver DefResolver) bool {
	def := resolver.Resolve(name)
	switch def.Kind {
	case typeoracle.DefVariant:
		return variantIsRefutable(name, reg, resolver)
	case typeoracle.DefConst:
		return true
	default:
		return false
	}
}

func variantIsRefutable(ctorName string, reg *typeoracle.Registry, resolver DefResolver) bool {
	def := resolver.Resolve(ctorName)
	if def.Kind != typeoracle.DefVariant {
		return false
	}
	return len(reg.VariantsOf(def.TypeName)) > 1
}

// CheckRefutable walks p and reports every refutable sub-pattern span
// separately (spec.md §4.G: "each refutable sub-span is reported
// separately"), using the wording selected by ctx.
func CheckRefutable(p ast.Pattern, reg *typeoracle.Registry, resolver DefResolver, diag Diagnostics, ctx BindingContext) {
	msg := ctx.message()

	switch pat := p.(type) {
	case *ast.WildcardPattern, *ast.Identifier:
		return

	case *ast.BindPattern:
		if pat.Sub != nil {
			CheckRefutable(pat.Sub, reg, resolver, diag, ctx)
			return
		}
		if isRefutableName(pat.Name, reg, resolver) {
			diag.Error(pat.Pos, msg)
		}

	case *ast.Literal:
		if pat.Kind != ast.UnitLit {
			diag.Error(pat.Pos, msg)
		}

	case *ast.RangePattern:
		diag.Error(pat.Pos, msg)

	case *ast.SlicePattern:
		diag.Error(pat.Pos, msg)
		for _, sub := range pat.Before {
			CheckRefutable(sub, reg, resolver, diag, ctx)
		}
		for _, sub := range pat.After {
			CheckRefutable(sub, reg, resolver, diag, ctx)
		}
		if pat.Middle != nil {
			CheckRefutable(pat.Middle, reg, resolver, diag, ctx)
		}

	case *ast.ConsPattern:
		diag.Error(pat.Pos, msg)
		CheckRefutable(pat.Head, reg, resolver, diag, ctx)
		CheckRefutable(pat.Tail, reg, resolver, diag, ctx)

	case *ast.ListPattern:
		diag.Error(pat.Pos, msg)
		for _, e := range pat.Elements {
			CheckRefutable(e, reg, resolver, diag, ctx)
		}
		if pat.Rest != nil {
			CheckRefutable(pat.Rest, reg, resolver, diag, ctx)
		}

	case *ast.RecordPattern:
		for _, f := range pat.Fields {
			CheckRefutable(f.Pattern, reg, resolver, diag, ctx)
		}

	case *ast.TuplePattern:
		for _, e := range pat.Elements {
			CheckRefutable(e, reg, resolver, diag, ctx)
		}

	case *ast.BoxPattern:
		CheckRefutable(pat.Inner, reg, resolver, diag, ctx)

	case *ast.ConstructorPattern:
		if variantIsRefutable(pat.Name, reg, resolver) {
			diag.Error(pat.Pos, msg)
		}
		for _, sub := range pat.Patterns {
			CheckRefutable(sub, reg, resolver, diag, ctx)
		}

	default:
		diag.Bug(p.Position(), "refutability check: unresolved pattern form")
	}
}
