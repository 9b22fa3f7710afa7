package types

import (
	"fmt"

	"github.com/sunholo/ailang/internal/core"
	"github.com/sunholo/ailang/internal/typedast"
)

// inferMatch infers type of pattern matching
func (tc *CoreTypeChecker) inferMatch(ctx *InferenceContext, match *core.Match) (*typedast.TypedMatch, *TypeEnv, error) {
	// Infer scrutinee type
	scrutineeNode, _, err := tc.inferCore(ctx, match.Scrutinee)
	if err != nil {
		return nil, ctx.env, err
	}

	// Check exhaustiveness (simplified for now)
	// TODO: Implement full exhaustiveness checking
	exhaustive := match.Exhaustive

	// Infer types of all arms
	var arms []typedast.TypedMatchArm
	var resultType Type
	var allEffects []*Row

	for i, arm := range match.Arms {
		// Type check pattern and get bindings
		patternBindings, typedPattern, err := tc.checkPattern(arm.Pattern, getType(scrutineeNode), ctx)
		if err != nil {
			return nil, ctx.env, err
		}

		// Extend environment with pattern bindings
		armEnv := ctx.env
		for name, typ := range patternBindings {
			armEnv = armEnv.Extend(name, typ)
		}

		// Save and update environment
		oldEnv := ctx.env
		ctx.env = armEnv

		// Check guard if present
		var guardNode typedast.TypedNode
		if arm.Guard != nil {
			guardNode, _, err = tc.inferCore(ctx, arm.Guard)
			if err != nil {
				return nil, oldEnv, err
			}
			// Guard must be boolean
			ctx.addConstraint(TypeEq{
				Left:  getType(guardNode),
				Right: TBool,
				Path:  []string{fmt.Sprintf("match guard %d at %s", i, match.Span())},
			})
			allEffects = append(allEffects, getEffectRow(guardNode))
		}

		// Type check body
		bodyNode, _, err := tc.inferCore(ctx, arm.Body)
		if err != nil {
			return nil, oldEnv, err
		}
		allEffects = append(allEffects, getEffectRow(bodyNode))

		// Restore environment
		ctx.env = oldEnv

		// All arms must have same result type
		if i == 0 {
			resultType = getType(bodyNode)
		} else {
			ctx.addConstraint(TypeEq{
				Left:  getType(bodyNode),
				Right: resultType,
				Path:  []string{fmt.Sprintf("match arm %d at %s", i, match.Span())},
			})
		}

		arms = append(arms, typedast.TypedMatchArm{
			Pattern: typedPattern,
			Guard:   guardNode,
			Body:    bodyNode,
			Span:    arm.Span,
		})
	}

	// Add scrutinee effects
	allEffects = append(allEffects, getEffectRow(scrutineeNode))

	return &typedast.TypedMatch{
		TypedExpr: typedast.TypedExpr{
			NodeID:    match.ID(),
			Span:      match.Span(),
			Type:      resultType,
			EffectRow: combineEffectList(allEffects),
			Core:      match,
		},
		Scrutinee:  scrutineeNode,
		Arms:       arms,
		Exhaustive: exhaustive,
	}, ctx.env, nil
}

// checkPattern type checks a pattern and returns bindings
func (tc *CoreTypeChecker) checkPattern(pat core.CorePattern, scrutType Type, ctx *InferenceContext) (map[string]Type, typedast.TypedPattern, error) {
	switch p := pat.(type) {
	case *core.VarPattern:
		// Variable pattern binds to scrutinee type
		return map[string]Type{p.Name: scrutType},
			typedast.TypedVarPattern{Name: p.Name, Type: scrutType}, nil

	case *core.LitPattern:
		// Literal pattern - scrutinee must match literal type
		var litType Type
		switch p.Value.(type) {
		case int, int64:
			litType = TInt
		case float32, float64:
			litType = TFloat
		case string:
			litType = TString
		case bool:
			litType = TBool
		default:
			return nil, nil, fmt.Errorf("unknown literal type in pattern: %T", p.Value)
		}

		ctx.addConstraint(TypeEq{
			Left:  scrutType,
			Right: litType,
			Path:  []string{"literal pattern"},
		})

		return nil, typedast.TypedLitPattern{Value: p.Value}, nil

	case *core.WildcardPattern:
		// Wildcard matches anything, binds nothing
		return nil, typedast.TypedWildcardPattern{}, nil

	case *core.ConstructorPattern:
		// Constructor pattern - need to lookup constructor scheme
		// TODO: This needs access to the module interface to get constructor schemes
		// For now, we'll do basic checking without constructor validation

		// Recursively check nested patterns
		// We need to know the field types of this constructor
		// For now, create fresh type variables for each field
		bindings := make(map[string]Type)
		typedArgs := make([]typedast.TypedPattern, len(p.Args))

		for i, argPat := range p.Args {
			// Create fresh type variable for each argument
			argType := ctx.freshTypeVar()
			argBindings, typedArg, err := tc.checkPattern(argPat, argType, ctx)
			if err != nil {
				return nil, nil, err
			}
			// Merge bindings
			for name, typ := range argBindings {
				if existing, ok := bindings[name]; ok {
					// Variable bound multiple times - must unify
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
			typedArgs[i] = typedArg
		}

		return bindings, typedast.TypedConstructorPattern{
			Name: p.Name,
			Args: typedArgs,
		}, nil

	case *core.TuplePattern:
		// Tuple pattern - scrutinee must be tuple type
		// Extract element types from scrutinee
		var elemTypes []Type

		// Try to extract tuple type from scrutinee
		if tupleTy, ok := scrutType.(*TTuple); ok {
			elemTypes = tupleTy.Elements
		} else {
			// Create fresh type variables and add constraint
			elemTypes = make([]Type, len(p.Elements))
			for i := range p.Elements {
				elemTypes[i] = ctx.freshTypeVar()
			}
			ctx.addConstraint(TypeEq{
				Left:  scrutType,
				Right: &TTuple{Elements: elemTypes},
				Path:  []string{"tuple pattern"},
			})
		}

		// Check that arity matches
		if len(p.Elements) != len(elemTypes) {
			return nil, nil, fmt.Errorf("tuple pattern has %d elements but scrutinee has %d",
				len(p.Elements), len(elemTypes))
		}

		// Recursively check each element pattern
		bindings := make(map[string]Type)
		typedElems := make([]typedast.TypedPattern, len(p.Elements))

		for i, elemPat := range p.Elements {
			elemBindings, typedElem, err := tc.checkPattern(elemPat, elemTypes[i], ctx)
			if err != nil {
				return nil, nil, err
			}
			// Merge bindings
			for name, typ := range elemBindings {
				if existing, ok := bindings[name]; ok {
					// Variable bound multiple times - must unify
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
			typedElems[i] = typedElem
		}

		return bindings, typedast.TypedTuplePattern{
			Elements: typedElems,
		}, nil

	case *core.ListPattern:
		// List pattern - scrutinee must be list type
		// Extract element type from scrutinee list
		var elemType Type

		// Try to extract list type from scrutinee
		if listTy, ok := scrutType.(*TList); ok {
			elemType = listTy.Element
		} else {
			// Create fresh type variable for elements
			elemType = ctx.freshTypeVar()
			ctx.addConstraint(TypeEq{
				Left:  scrutType,
				Right: &TList{Element: elemType},
				Path:  []string{"list pattern"},
			})
		}

		// Recursively check each element pattern
		bindings := make(map[string]Type)
		typedElems := make([]typedast.TypedPattern, len(p.Elements))

		for i, elemPat := range p.Elements {
			elemBindings, typedElem, err := tc.checkPattern(elemPat, elemType, ctx)
			if err != nil {
				return nil, nil, err
			}
			// Merge bindings
			for name, typ := range elemBindings {
				if existing, ok := bindings[name]; ok {
					// Variable bound multiple times - must unify
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
			typedElems[i] = typedElem
		}

		// Type check tail pattern if present
		var typedTail *typedast.TypedPattern
		if p.Tail != nil {
			// Tail must have list type (same as scrutinee)
			tailBindings, tail, err := tc.checkPattern(*p.Tail, scrutType, ctx)
			if err != nil {
				return nil, nil, err
			}
			// Merge tail bindings
			for name, typ := range tailBindings {
				if existing, ok := bindings[name]; ok {
					// Variable bound multiple times - must unify
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
			typedTail = &tail
		}

		return bindings, typedast.TypedListPattern{
			Elements: typedElems,
			Tail:     typedTail,
		}, nil

	case *core.RecordPattern:
		// Record pattern - scrutinee must be a record type exposing at
		// least the named fields.
		var recTy *TRecord
		if rt, ok := scrutType.(*TRecord); ok {
			recTy = rt
		} else {
			fields := make(map[string]Type, len(p.Fields))
			for _, f := range p.Fields {
				fields[f.Name] = ctx.freshTypeVar()
			}
			var row Type
			if p.Rest {
				row = ctx.freshTypeVar()
			}
			recTy = &TRecord{Fields: fields, Row: row}
			ctx.addConstraint(TypeEq{
				Left:  scrutType,
				Right: recTy,
				Path:  []string{"record pattern"},
			})
		}

		bindings := make(map[string]Type)
		typedFields := make([]typedast.TypedRecordFieldPattern, len(p.Fields))

		for i, f := range p.Fields {
			fieldType, ok := recTy.Fields[f.Name]
			if !ok {
				fieldType = ctx.freshTypeVar()
			}
			fieldBindings, typedField, err := tc.checkPattern(f.Pattern, fieldType, ctx)
			if err != nil {
				return nil, nil, err
			}
			for name, typ := range fieldBindings {
				if existing, ok := bindings[name]; ok {
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
			typedFields[i] = typedast.TypedRecordFieldPattern{Name: f.Name, Pattern: typedField}
		}

		return bindings, typedast.TypedRecordPattern{
			Fields: typedFields,
			Rest:   p.Rest,
		}, nil

	case *core.RangePattern:
		// Range pattern - endpoints must agree with the scrutinee's scalar type.
		var rangeTy Type
		switch p.Lo.(type) {
		case int, int64:
			rangeTy = TInt
		case float32, float64:
			rangeTy = TFloat
		case string:
			rangeTy = TString
		default:
			return nil, nil, fmt.Errorf("unsupported range pattern endpoint type: %T", p.Lo)
		}

		ctx.addConstraint(TypeEq{
			Left:  scrutType,
			Right: rangeTy,
			Path:  []string{"range pattern"},
		})

		return nil, typedast.TypedRangePattern{Lo: p.Lo, Hi: p.Hi, Type: rangeTy}, nil

	case *core.BoxPattern:
		// Box pattern unwraps a single-field indirection; the inner
		// pattern sees the same scrutinee type (boxing is transparent
		// to the type checker, only meaningful to the evaluator).
		innerBindings, typedInner, err := tc.checkPattern(p.Inner, scrutType, ctx)
		if err != nil {
			return nil, nil, err
		}
		return innerBindings, typedast.TypedBoxPattern{Inner: typedInner}, nil

	case *core.SlicePattern:
		// Slice pattern - scrutinee must be a list type; Before/After
		// elements share the list's element type, Middle (if present)
		// binds the remaining sublist.
		var elemType Type
		if listTy, ok := scrutType.(*TList); ok {
			elemType = listTy.Element
		} else {
			elemType = ctx.freshTypeVar()
			ctx.addConstraint(TypeEq{
				Left:  scrutType,
				Right: &TList{Element: elemType},
				Path:  []string{"slice pattern"},
			})
		}

		bindings := make(map[string]Type)
		merge := func(from map[string]Type) {
			for name, typ := range from {
				if existing, ok := bindings[name]; ok {
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
		}

		typedBefore := make([]typedast.TypedPattern, len(p.Before))
		for i, sub := range p.Before {
			subBindings, typedSub, err := tc.checkPattern(sub, elemType, ctx)
			if err != nil {
				return nil, nil, err
			}
			merge(subBindings)
			typedBefore[i] = typedSub
		}

		typedAfter := make([]typedast.TypedPattern, len(p.After))
		for i, sub := range p.After {
			subBindings, typedSub, err := tc.checkPattern(sub, elemType, ctx)
			if err != nil {
				return nil, nil, err
			}
			merge(subBindings)
			typedAfter[i] = typedSub
		}

		var typedMiddle *typedast.TypedBindPattern
		if p.Middle != nil {
			midBindings, typedMid, err := tc.checkPattern(p.Middle, scrutType, ctx)
			if err != nil {
				return nil, nil, err
			}
			merge(midBindings)
			if bp, ok := typedMid.(typedast.TypedBindPattern); ok {
				typedMiddle = &bp
			}
		}

		return bindings, typedast.TypedSlicePattern{
			Before: typedBefore,
			Middle: typedMiddle,
			After:  typedAfter,
		}, nil

	case *core.BindPattern:
		// Bind pattern: names the scrutinee (optionally by-ref / mutable)
		// and, if Sub is present, further destructures it as `name @ sub`.
		bindings := map[string]Type{p.Name: scrutType}
		var typedSub typedast.TypedPattern
		if p.Sub != nil {
			subBindings, ts, err := tc.checkPattern(p.Sub, scrutType, ctx)
			if err != nil {
				return nil, nil, err
			}
			for name, typ := range subBindings {
				if existing, ok := bindings[name]; ok {
					ctx.addConstraint(TypeEq{
						Left:  existing,
						Right: typ,
						Path:  []string{fmt.Sprintf("pattern variable %s", name)},
					})
				} else {
					bindings[name] = typ
				}
			}
			typedSub = ts
		}

		return bindings, typedast.TypedBindPattern{
			Name:    p.Name,
			Mode:    p.Mode,
			Mutable: p.Mutable,
			Sub:     typedSub,
			Type:    scrutType,
		}, nil

	default:
		return nil, nil, fmt.Errorf("pattern type checking not implemented for %T", pat)
	}
}
