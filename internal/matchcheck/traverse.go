package matchcheck

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/typedast"
	"github.com/sunholo/ailang/internal/typeoracle"
	"github.com/sunholo/ailang/internal/types"
)

// Checker bundles the external collaborators from spec.md §6 and drives
// every matchcheck pass over one compiled program: component F (match
// checking) over the type-checked tree, and components G/H (refutability,
// binding-mode legality) over the surface tree's irrefutable binding
// sites, which never survive elaboration as typed patterns (see
// bindings.go and refutability.go).
type Checker struct {
	Registry *typeoracle.Registry
	Oracle   TypeOracle
	Resolver DefResolver
	ConstEv  ConstEval
	Diag     Diagnostics
}

// NewChecker builds a Checker from a loaded type registry, wiring the
// default oracle/const-eval adapters from collaborators.go.
func NewChecker(reg *typeoracle.Registry, resolver DefResolver, diag Diagnostics) *Checker {
	return &Checker{
		Registry: reg,
		Oracle:   NewTypeOracle(reg),
		Resolver: resolver,
		ConstEv:  NewConstEval(),
		Diag:     diag,
	}
}

func (c *Checker) env(span ast.Pos) env {
	return env{resolver: c.Resolver, oracle: c.Oracle, ce: c.ConstEv, diag: c.Diag, span: span}
}

// CheckProgram is the package's entry point: it runs component F over
// prog's typed tree, then components G/H over file's surface tree.
func (c *Checker) CheckProgram(file *ast.File, prog *typedast.TypedProgram) error {
	if prog != nil {
		for _, decl := range prog.Decls {
			if err := c.walkTyped(decl); err != nil {
				return err
			}
		}
	}
	if file != nil {
		for _, fn := range file.Funcs {
			c.checkParams(fn.Params)
			c.walkExpr(fn.Body)
		}
		for _, stmt := range file.Statements {
			if e, ok := stmt.(ast.Expr); ok {
				c.walkExpr(e)
			}
		}
	}
	return nil
}

// checkParams applies refutability and binding-mode checks to a
// function's declared parameters, per spec.md §4.G/§4.H's "function
// argument" binding context.
func (c *Checker) checkParams(params []*ast.Param) {
	for _, p := range params {
		pat := p.BindingPattern()
		if IsRefutable(pat, c.Registry, c.Resolver) {
			CheckRefutable(pat, c.Registry, c.Resolver, c.Diag, ContextFuncArg)
			continue
		}
		CheckBindingModesAST(pat, false, resolveAnnotated(p.Type, c.Registry), c.Oracle, c.Diag)
	}
}

// resolveAnnotated maps a surface type annotation to a types.Type the
// oracle can answer MovesByDefault for, when the annotation names a
// concrete type the registry already knows about; anything else (no
// annotation, a generic/inferred position) is left nil (see
// CheckBindingModesAST's doc comment for why that's the right default).
func resolveAnnotated(t ast.Type, reg *typeoracle.Registry) types.Type {
	if t == nil || reg == nil {
		return nil
	}
	simple, ok := t.(*ast.SimpleType)
	if !ok {
		return nil
	}
	return &types.TCon{Name: simple.Name}
}

// walkTyped recurses over the type-checked tree, invoking CheckMatch at
// every TypedMatch node it finds.
func (c *Checker) walkTyped(n typedast.TypedNode) error {
	if n == nil {
		return nil
	}
	switch node := n.(type) {
	case *typedast.TypedMatch:
		if err := c.walkTyped(node.Scrutinee); err != nil {
			return err
		}
		if err := CheckMatch(node, c.env(node.Span)); err != nil {
			return err
		}
		for _, arm := range node.Arms {
			if arm.Guard != nil {
				if err := c.walkTyped(arm.Guard); err != nil {
					return err
				}
			}
			if err := c.walkTyped(arm.Body); err != nil {
				return err
			}
		}
		return nil

	case *typedast.TypedLet:
		if err := c.walkTyped(node.Value); err != nil {
			return err
		}
		return c.walkTyped(node.Body)

	case *typedast.TypedLetRec:
		for _, b := range node.Bindings {
			if err := c.walkTyped(b.Value); err != nil {
				return err
			}
		}
		return c.walkTyped(node.Body)

	case *typedast.TypedLambda:
		return c.walkTyped(node.Body)

	case *typedast.TypedIf:
		if err := c.walkTyped(node.Cond); err != nil {
			return err
		}
		if err := c.walkTyped(node.Then); err != nil {
			return err
		}
		return c.walkTyped(node.Else)

	case *typedast.TypedApp:
		if err := c.walkTyped(node.Func); err != nil {
			return err
		}
		for _, a := range node.Args {
			if err := c.walkTyped(a); err != nil {
				return err
			}
		}
		return nil

	case *typedast.TypedBinOp:
		if err := c.walkTyped(node.Left); err != nil {
			return err
		}
		return c.walkTyped(node.Right)

	case *typedast.TypedUnOp:
		return c.walkTyped(node.Operand)

	case *typedast.TypedRecord:
		for _, f := range node.Fields {
			if err := c.walkTyped(f); err != nil {
				return err
			}
		}
		return nil

	case *typedast.TypedRecordAccess:
		return c.walkTyped(node.Record)

	case *typedast.TypedList:
		for _, e := range node.Elements {
			if err := c.walkTyped(e); err != nil {
				return err
			}
		}
		return nil

	case *typedast.TypedTuple:
		for _, e := range node.Elements {
			if err := c.walkTyped(e); err != nil {
				return err
			}
		}
		return nil

	default:
		// TypedVar, TypedLit, and any other leaf node carry no children.
		return nil
	}
}

// walkExpr recurses over the surface tree, applying component G/H to
// every let/for irrefutable binding site it finds and recursing into
// nested function literals' parameters too.
func (c *Checker) walkExpr(e ast.Expr) {
	if e == nil {
		return
	}
	switch node := e.(type) {
	case *ast.Let:
		c.walkExpr(node.Value)
		pat := node.BindingPattern()
		ctx := ContextFor(node.Source)
		if IsRefutable(pat, c.Registry, c.Resolver) {
			CheckRefutable(pat, c.Registry, c.Resolver, c.Diag, ctx)
		} else {
			CheckBindingModesAST(pat, false, resolveAnnotated(node.Type, c.Registry), c.Oracle, c.Diag)
		}
		c.walkExpr(node.Body)

	case *ast.LetRec:
		c.walkExpr(node.Value)
		c.walkExpr(node.Body)

	case *ast.Lambda:
		c.checkParams(node.Params)
		c.walkExpr(node.Body)

	case *ast.FuncLit:
		c.checkParams(node.Params)
		c.walkExpr(node.Body)

	case *ast.FuncCall:
		c.walkExpr(node.Func)
		for _, a := range node.Args {
			c.walkExpr(a)
		}

	case *ast.If:
		c.walkExpr(node.Condition)
		c.walkExpr(node.Then)
		c.walkExpr(node.Else)

	case *ast.Block:
		for _, sub := range node.Exprs {
			c.walkExpr(sub)
		}

	case *ast.Match:
		// Arm-pattern refutability/reachability is handled by CheckMatch
		// over the typed tree; only the scrutinee and arm bodies/guards
		// carry nested binding sites worth descending into here.
		c.walkExpr(node.Expr)
		for _, cs := range node.Cases {
			if cs.Guard != nil {
				c.walkExpr(cs.Guard)
			}
			c.walkExpr(cs.Body)
		}

	case *ast.List:
		for _, el := range node.Elements {
			c.walkExpr(el)
		}

	case *ast.Tuple:
		for _, el := range node.Elements {
			c.walkExpr(el)
		}

	case *ast.Record:
		for _, f := range node.Fields {
			c.walkExpr(f.Value)
		}

	case *ast.RecordAccess:
		c.walkExpr(node.Record)

	case *ast.RecordUpdate:
		c.walkExpr(node.Base)
		for _, f := range node.Fields {
			c.walkExpr(f.Value)
		}

	case *ast.BinaryOp:
		c.walkExpr(node.Left)
		c.walkExpr(node.Right)

	case *ast.UnaryOp:
		c.walkExpr(node.Expr)

	default:
		// Identifier, Literal, and other leaves carry no sub-expressions
		// this pass needs to visit.
	}
}
