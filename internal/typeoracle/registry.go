// Package typeoracle answers the questions the match checker needs about
// types that the core type checker does not expose directly: how many
// variants a sum type has, what fields a record or variant declares in
// source order, and whether a type moves by default.
//
// It is grounded in the same AST walk internal/iface/builder.go already
// performs to harvest constructor information for module interfaces; this
// registry generalizes that walk into a queryable index kept for the
// lifetime of one compilation.
package typeoracle

import (
	"sort"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// TypeKind classifies a type for the purposes of constructor-signature
// enumeration (spec §4.A).
type TypeKind int

const (
	KindOther TypeKind = iota
	KindBool
	KindEnum
	KindTuple
	KindRecord
	KindBox
	KindReference
	KindFixedSeq
	KindVarSeq
	KindString
	KindNil
	KindScalar
)

// Variant is one declared branch of a sum type, in declaration order.
type Variant struct {
	ID   string // qualified constructor name, e.g. "Option.Some"
	Name string
	Args []types.Type
}

// Field is one declared field of a record or struct-like variant.
type Field struct {
	Name string
	Type types.Type
}

// typeInfo is what the registry keeps per declared type name.
type typeInfo struct {
	kind     TypeKind
	variants []Variant       // non-nil only for KindEnum / KindBool
	fields   []Field         // non-nil only for KindRecord or single-variant structs
	inhabited bool
}

// Registry indexes every type declaration visible in a compilation unit.
// Zero value is usable; populate via Load.
type Registry struct {
	types map[string]*typeInfo // type name -> info
	// ctorToType maps a bare constructor name to its owning type name, the
	// same direction elaborate.ConstructorInfo already records.
	ctorToType map[string]string
	ctorIndex  map[string]int // ctorName -> index within its type's variant list
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:      make(map[string]*typeInfo),
		ctorToType: make(map[string]string),
		ctorIndex:  make(map[string]int),
	}
}

// Load walks every *ast.TypeDecl in a file (Decls and Statements, mirroring
// iface.Builder.Build's own double-scan) and registers its shape.
func (r *Registry) Load(file *ast.File) {
	if file == nil {
		return
	}
	r.types["Bool"] = &typeInfo{
		kind:      KindBool,
		inhabited: true,
	}

	allDecls := append(append([]ast.Node{}, file.Decls...), file.Statements...)
	for _, decl := range allDecls {
		td, ok := decl.(*ast.TypeDecl)
		if !ok {
			continue
		}
		r.loadTypeDecl(td)
	}
}

func (r *Registry) loadTypeDecl(td *ast.TypeDecl) {
	switch def := td.Definition.(type) {
	case *ast.AlgebraicType:
		variants := make([]Variant, len(def.Constructors))
		for i, c := range def.Constructors {
			variants[i] = Variant{
				ID:   td.Name + "." + c.Name,
				Name: c.Name,
				// One entry per positional field, so len(Args) is the arity;
				// the element types themselves are left nil.
				Args: make([]types.Type, len(c.Fields)),
			}
			r.ctorToType[c.Name] = td.Name
			r.ctorIndex[c.Name] = i
		}
		info := &typeInfo{
			kind:      KindEnum,
			variants:  variants,
			inhabited: len(variants) > 0,
		}
		if len(variants) == 1 {
			// Single-variant "struct" sum types specialize to KindRecord-like
			// Single-constructor arity (spec §4.A: tuple/record/boxed/...: {Single}).
			info.kind = KindEnum // still enumerated as a 1-element sum; VariantsOf covers it
		}
		r.types[td.Name] = info

	case *ast.RecordType:
		fields := make([]Field, len(def.Fields))
		for i, f := range def.Fields {
			fields[i] = Field{Name: f.Name}
		}
		r.types[td.Name] = &typeInfo{
			kind:      KindRecord,
			fields:    fields,
			inhabited: true,
		}

	case *ast.TypeAlias:
		// Aliases are transparent to the oracle; nothing to register under
		// their own name beyond what the aliased type already provides.
	}
}

// TypeOf is a placeholder hook for node-id -> Type lookup. ailang's type
// checker already resolves every node's monomorphic type during inference
// and hands it to checkPattern via scrutType; the oracle only needs to
// resolve a *name*, so TypeOf here operates on the type's String() form
// rather than a node id (see DESIGN.md for why: ailang has no separate
// "Type from node id" table independent of the type checker's own
// substitution, and plumbing node ids through matchcheck would duplicate
// what the type checker already computed).
func (r *Registry) TypeOf(name string) (types.Type, bool) {
	if _, ok := r.types[name]; !ok {
		return nil, false
	}
	return &types.TCon{Name: name}, true
}

// TypeKindOf classifies a types.Type for constructor-signature purposes.
func (r *Registry) TypeKindOf(t types.Type) TypeKind {
	switch ty := t.(type) {
	case *types.TTuple:
		return KindTuple
	case *types.TRecord:
		return KindRecord
	case *types.TList:
		return KindVarSeq
	case *types.TCon:
		switch ty.Name {
		case "Bool":
			return KindBool
		case "String":
			return KindString
		case "Unit", "()":
			return KindNil
		case "Int", "Float":
			return KindScalar
		}
		if info, ok := r.types[ty.Name]; ok {
			return info.kind
		}
		return KindOther
	default:
		return KindScalar
	}
}

// VariantsOf returns the declared variants of an enum type, in declaration
// order, or nil if typeName does not name a sum type.
func (r *Registry) VariantsOf(typeName string) []Variant {
	info, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return info.variants
}

// VariantIndex returns the declaration-order index of a constructor within
// its owning type's variant list.
func (r *Registry) VariantIndex(ctorName string) (int, bool) {
	idx, ok := r.ctorIndex[ctorName]
	return idx, ok
}

// TypeOfConstructor returns the owning type name of a constructor.
func (r *Registry) TypeOfConstructor(ctorName string) (string, bool) {
	name, ok := r.ctorToType[ctorName]
	return name, ok
}

// ArityOfConstructor returns a constructor's declared field count.
func (r *Registry) ArityOfConstructor(ctorName string) int {
	typeName, ok := r.ctorToType[ctorName]
	if !ok {
		return 0
	}
	for _, v := range r.types[typeName].variants {
		if v.Name == ctorName {
			return len(v.Args)
		}
	}
	return 0
}

// FieldsOf returns the declaration-order fields of a record type.
func (r *Registry) FieldsOf(typeName string) []Field {
	info, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return info.fields
}

// IsInhabited reports whether a type has at least one value.
func (r *Registry) IsInhabited(t types.Type) bool {
	con, ok := t.(*types.TCon)
	if !ok {
		return true // tuples/records/lists are inhabited structurally
	}
	info, ok := r.types[con.Name]
	if !ok {
		return true // unknown types are assumed inhabited (conservative)
	}
	return info.inhabited
}

// MovesByDefault decides whether a binding of type t moves its value by
// default, grounded in the same Copy/move binary split Rust uses for
// scalar versus everything-else: ailang has no explicit Copy-derive
// surface, so every non-scalar type moves (see SPEC_FULL.md §3 / DESIGN.md
// for the open-question decision this implements).
func (r *Registry) MovesByDefault(t types.Type) bool {
	switch ty := t.(type) {
	case *types.TCon:
		switch ty.Name {
		case "Int", "Float", "Bool", "Unit", "()":
			return false
		}
		return true
	case *types.TVar, *types.TVar2:
		// Unresolved type variable: conservative choice per DESIGN.md —
		// treat as moving so we never suppress a real move-binding error.
		return true
	default:
		return true
	}
}

// SortedTypeNames returns every registered type name in sorted order, for
// deterministic test fixtures and debugging output.
func (r *Registry) SortedTypeNames() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
