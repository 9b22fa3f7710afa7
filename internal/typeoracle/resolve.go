package typeoracle

// DefKind classifies what a pattern's name resolves to, per spec.md §6's
// definition resolver.
type DefKind int

const (
	DefOther DefKind = iota
	DefVariant
	DefConst
	DefRecord
	DefFunction
)

// Def is the resolved meaning of a named pattern.
type Def struct {
	Kind      DefKind
	TypeName  string // owning type, for DefVariant/DefRecord
	Name      string // constructor/const/record name
	ConstVal  ConstValue
	HasConst  bool
}

// DefResolver answers "what does this name refer to", the third external
// collaborator from spec.md §6. The concrete implementation wraps a type
// Registry (its constructor index and record types) plus a small table of
// module-level constant bindings.
type DefResolver struct {
	registry  *Registry
	constants map[string]ConstValue // name -> value, for `const` bindings used in patterns
}

// NewDefResolver builds a resolver over a type registry and a constant
// table. Both are typically populated from the same elaborator pass that
// already walks top-level declarations.
func NewDefResolver(reg *Registry, constants map[string]ConstValue) *DefResolver {
	if constants == nil {
		constants = map[string]ConstValue{}
	}
	return &DefResolver{registry: reg, constants: constants}
}

// Resolve looks up a bare name (the head of a Named pattern or a plain
// binding identifier) and classifies it.
func (d *DefResolver) Resolve(name string) Def {
	if typeName, ok := d.registry.TypeOfConstructor(name); ok {
		return Def{Kind: DefVariant, TypeName: typeName, Name: name}
	}
	if v, ok := d.constants[name]; ok {
		return Def{Kind: DefConst, Name: name, ConstVal: v, HasConst: true}
	}
	if _, ok := d.registry.types[name]; ok {
		if info := d.registry.types[name]; info.kind == KindRecord {
			return Def{Kind: DefRecord, TypeName: name, Name: name}
		}
	}
	return Def{Kind: DefOther, Name: name}
}
