package matchcheck

import (
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/typeoracle"
)

// fakeDiag records every diagnostic call for assertions, without going
// through the *errors.Report sink diagnostics.go builds for production
// callers.
type fakeDiag struct {
	errorsSeen []string
	warnsSeen  []string
	notesSeen  []string
	bugsSeen   []string
}

func (f *fakeDiag) Error(span ast.Pos, message string) { f.errorsSeen = append(f.errorsSeen, message) }
func (f *fakeDiag) Warn(span ast.Pos, message string)  { f.warnsSeen = append(f.warnsSeen, message) }
func (f *fakeDiag) Note(span ast.Pos, message string)  { f.notesSeen = append(f.notesSeen, message) }
func (f *fakeDiag) Bug(span ast.Pos, message string)   { f.bugsSeen = append(f.bugsSeen, message) }

// optionRegistry builds a registry + resolver over a single two-variant
// enum, `type Option = Some | None`, the canonical fixture for refutability
// and missing-constructor tests alike.
func optionRegistry() (*typeoracle.Registry, *typeoracle.DefResolver) {
	file := &ast.File{
		Decls: []ast.Node{
			&ast.TypeDecl{
				Name: "Option",
				Definition: &ast.AlgebraicType{
					Constructors: []*ast.Constructor{
						{Name: "Some", Fields: []ast.Type{&ast.SimpleType{Name: "Int"}}},
						{Name: "None"},
					},
				},
			},
			&ast.TypeDecl{
				Name: "Unit1",
				Definition: &ast.AlgebraicType{
					Constructors: []*ast.Constructor{{Name: "OnlyOne"}},
				},
			},
		},
	}
	reg := typeoracle.NewRegistry()
	reg.Load(file)
	return reg, typeoracle.NewDefResolver(reg, nil)
}

func TestIsRefutable_WildcardAndBinding(t *testing.T) {
	reg, resolver := optionRegistry()

	if IsRefutable(&ast.WildcardPattern{}, reg, resolver) {
		t.Error("wildcard must be irrefutable")
	}
	if IsRefutable(&ast.Identifier{Name: "x"}, reg, resolver) {
		t.Error("plain binding must be irrefutable")
	}
}

func TestIsRefutable_SingleVariantEnum(t *testing.T) {
	reg, resolver := optionRegistry()

	pat := &ast.ConstructorPattern{Name: "OnlyOne"}
	if IsRefutable(pat, reg, resolver) {
		t.Error("the sole variant of a single-variant enum must be irrefutable")
	}
}

func TestIsRefutable_MultiVariantEnum(t *testing.T) {
	reg, resolver := optionRegistry()

	pat := &ast.ConstructorPattern{Name: "Some", Patterns: []ast.Pattern{&ast.Identifier{Name: "x"}}}
	if !IsRefutable(pat, reg, resolver) {
		t.Error("a variant of a multi-variant enum must be refutable")
	}

	none := &ast.ConstructorPattern{Name: "None"}
	if !IsRefutable(none, reg, resolver) {
		t.Error("None must be refutable: Option has more than one variant")
	}
}

func TestIsRefutable_LiteralAndTuple(t *testing.T) {
	reg, resolver := optionRegistry()

	lit := &ast.Literal{Kind: ast.IntLit, Value: int64(1)}
	if !IsRefutable(lit, reg, resolver) {
		t.Error("a non-unit literal must be refutable")
	}

	unit := &ast.Literal{Kind: ast.UnitLit}
	if IsRefutable(unit, reg, resolver) {
		t.Error("the unit literal must be irrefutable: Unit has exactly one value")
	}

	tup := &ast.TuplePattern{Elements: []ast.Pattern{
		&ast.Identifier{Name: "a"},
		&ast.Literal{Kind: ast.IntLit, Value: int64(2)},
	}}
	if !IsRefutable(tup, reg, resolver) {
		t.Error("a tuple with a refutable element must itself be refutable")
	}
}

func TestCheckRefutable_ReportsEachSubSpanSeparately(t *testing.T) {
	reg, resolver := optionRegistry()
	diag := &fakeDiag{}

	pat := &ast.TuplePattern{Elements: []ast.Pattern{
		&ast.Literal{Kind: ast.IntLit, Value: int64(1), Pos: ast.Pos{Line: 1}},
		&ast.Literal{Kind: ast.IntLit, Value: int64(2), Pos: ast.Pos{Line: 2}},
	}}
	CheckRefutable(pat, reg, resolver, diag, ContextLocal)

	if len(diag.errorsSeen) != 2 {
		t.Fatalf("expected 2 separate refutability errors, got %d: %v", len(diag.errorsSeen), diag.errorsSeen)
	}
	for _, msg := range diag.errorsSeen {
		if msg != msgRefutableLocalBinding {
			t.Errorf("unexpected message %q", msg)
		}
	}
}

func TestCheckRefutable_ContextWording(t *testing.T) {
	reg, resolver := optionRegistry()

	for _, tc := range []struct {
		ctx  BindingContext
		want string
	}{
		{ContextLocal, msgRefutableLocalBinding},
		{ContextForLoop, msgRefutableForBinding},
		{ContextFuncArg, msgRefutableFuncArg},
	} {
		diag := &fakeDiag{}
		CheckRefutable(&ast.Literal{Kind: ast.IntLit, Value: int64(1)}, reg, resolver, diag, tc.ctx)
		if len(diag.errorsSeen) != 1 || diag.errorsSeen[0] != tc.want {
			t.Errorf("context %v: want [%q], got %v", tc.ctx, tc.want, diag.errorsSeen)
		}
	}
}

func TestContextFor(t *testing.T) {
	if ContextFor(ast.LocalLet) != ContextLocal {
		t.Error("LocalLet must map to ContextLocal")
	}
	if ContextFor(ast.LocalFor) != ContextForLoop {
		t.Error("LocalFor must map to ContextForLoop")
	}
}
