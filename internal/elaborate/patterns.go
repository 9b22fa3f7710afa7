package elaborate

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/core"
	"github.com/sunholo/ailang/internal/types"
)

// normalizeMatch handles pattern matching
func (e *Elaborator) normalizeMatch(match *ast.Match) (core.CoreExpr, error) {
	// Scrutinee must be atomic
	scrutinee, binds, err := e.normalizeToAtomic(match.Expr)
	if err != nil {
		return nil, err
	}

	// Convert arms
	var arms []core.MatchArm
	for _, caseClause := range match.Cases {
		pattern, err := e.elaboratePattern(caseClause.Pattern)
		if err != nil {
			return nil, err
		}

		body, err := e.normalize(caseClause.Body)
		if err != nil {
			return nil, err
		}

		// Elaborate guard if present
		var guard core.CoreExpr
		if caseClause.Guard != nil {
			guard, err = e.normalize(caseClause.Guard)
			if err != nil {
				return nil, fmt.Errorf("failed to elaborate guard: %w", err)
			}
		}

		arms = append(arms, core.MatchArm{
			Pattern: pattern,
			Guard:   guard,
			Body:    body,
			Span:    caseClause.Pos,
		})
	}

	result := &core.Match{
		CoreNode:   e.makeNode(match.Position()),
		Scrutinee:  scrutinee,
		Arms:       arms,
		Exhaustive: false, // Will be checked below
	}

	// Check exhaustiveness (without type info, use simple heuristic)
	// For now, assume Bool type if we see boolean literals
	scrutineeType := e.inferScrutineeType(arms)
	if scrutineeType != nil {
		exhaustive, missing := e.exChecker.CheckExhaustiveness(result, scrutineeType)
		result.Exhaustive = exhaustive

		if !exhaustive {
			// Add warning with source location
			pos := match.Position()
			location := fmt.Sprintf("%s:%d:%d", e.filePath, pos.Line, pos.Column)
			e.warnings = append(e.warnings, &ExhaustivenessWarning{
				Location:       location,
				MissingPattern: missing,
			})
		}
	}

	return e.wrapWithBindings(result, binds), nil
}

// elaboratePattern converts surface pattern to core pattern
func (e *Elaborator) elaboratePattern(pat ast.Pattern) (core.CorePattern, error) {
	switch p := pat.(type) {
	case *ast.Identifier:
		return &core.VarPattern{Name: p.Name}, nil
	case *ast.Literal:
		return &core.LitPattern{Value: p.Value}, nil
	case *ast.WildcardPattern:
		return &core.WildcardPattern{}, nil
	case *ast.ConstructorPattern:
		// Elaborate nested patterns
		var args []core.CorePattern
		for _, argPat := range p.Patterns {
			coreArg, err := e.elaboratePattern(argPat)
			if err != nil {
				return nil, err
			}
			args = append(args, coreArg)
		}
		return &core.ConstructorPattern{
			Name: p.Name,
			Args: args,
		}, nil
	case *ast.TuplePattern:
		// Elaborate tuple element patterns
		var elements []core.CorePattern
		for _, elemPat := range p.Elements {
			coreElem, err := e.elaboratePattern(elemPat)
			if err != nil {
				return nil, err
			}
			elements = append(elements, coreElem)
		}
		return &core.TuplePattern{
			Elements: elements,
		}, nil
	case *ast.ListPattern:
		// Elaborate list element patterns
		var elements []core.CorePattern
		for _, elemPat := range p.Elements {
			coreElem, err := e.elaboratePattern(elemPat)
			if err != nil {
				return nil, err
			}
			elements = append(elements, coreElem)
		}

		// Elaborate rest pattern if present
		var tail *core.CorePattern
		if p.Rest != nil {
			restCore, err := e.elaboratePattern(p.Rest)
			if err != nil {
				return nil, err
			}
			tail = &restCore
		}

		return &core.ListPattern{
			Elements: elements,
			Tail:     tail,
		}, nil

	case *ast.RecordPattern:
		fields := make([]core.RecordFieldPattern, len(p.Fields))
		for i, f := range p.Fields {
			coreField, err := e.elaboratePattern(f.Pattern)
			if err != nil {
				return nil, err
			}
			fields[i] = core.RecordFieldPattern{Name: f.Name, Pattern: coreField}
		}
		return &core.RecordPattern{Fields: fields, Rest: p.Rest}, nil

	case *ast.BindPattern:
		var sub core.CorePattern
		if p.Sub != nil {
			coreSub, err := e.elaboratePattern(p.Sub)
			if err != nil {
				return nil, err
			}
			sub = coreSub
		}
		return &core.BindPattern{
			Name:    p.Name,
			Mode:    core.BindMode(p.Mode),
			Mutable: p.Mutable,
			Sub:     sub,
		}, nil

	case *ast.RangePattern:
		lo, err := e.evalPatternConst(p.Lo)
		if err != nil {
			return nil, err
		}
		hi, err := e.evalPatternConst(p.Hi)
		if err != nil {
			return nil, err
		}
		return &core.RangePattern{Lo: lo, Hi: hi}, nil

	case *ast.BoxPattern:
		inner, err := e.elaboratePattern(p.Inner)
		if err != nil {
			return nil, err
		}
		return &core.BoxPattern{Inner: inner}, nil

	case *ast.SlicePattern:
		before := make([]core.CorePattern, len(p.Before))
		for i, sub := range p.Before {
			cp, err := e.elaboratePattern(sub)
			if err != nil {
				return nil, err
			}
			before[i] = cp
		}
		after := make([]core.CorePattern, len(p.After))
		for i, sub := range p.After {
			cp, err := e.elaboratePattern(sub)
			if err != nil {
				return nil, err
			}
			after[i] = cp
		}
		var middle *core.BindPattern
		if p.Middle != nil {
			mp, err := e.elaboratePattern(p.Middle)
			if err != nil {
				return nil, err
			}
			bp, ok := mp.(*core.BindPattern)
			if !ok {
				return nil, fmt.Errorf("slice pattern middle must be a binding, got %T", mp)
			}
			middle = bp
		}
		return &core.SlicePattern{Before: before, Middle: middle, After: after}, nil

	default:
		return nil, fmt.Errorf("pattern elaboration not implemented for %T", pat)
	}
}

// evalPatternConst reduces a range-pattern endpoint expression to the
// scalar constant value it denotes. Range endpoints are always literal
// int/float/char expressions (char literals are stored as IntLit runes),
// never arbitrary computation.
func (e *Elaborator) evalPatternConst(expr ast.Expr) (interface{}, error) {
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return nil, fmt.Errorf("range pattern endpoint must be a literal, got %T", expr)
	}
	return lit.Value, nil
}

// inferScrutineeType attempts to infer the type of a scrutinee from its patterns
// This is a simple heuristic - returns Bool if we see boolean literals
func (e *Elaborator) inferScrutineeType(arms []core.MatchArm) types.Type {
	// Look at patterns to infer type
	for _, arm := range arms {
		if litPat, ok := arm.Pattern.(*core.LitPattern); ok {
			switch litPat.Value.(type) {
			case bool:
				return &types.TCon{Name: "Bool"}
			case int, int64:
				return &types.TCon{Name: "Int"}
			case float64:
				return &types.TCon{Name: "Float"}
			case string:
				return &types.TCon{Name: "String"}
			}
		}
	}
	// Can't infer type - return nil
	return nil
}
