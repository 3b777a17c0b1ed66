package nbe

import "github.com/lumen-lang/lumen/internal/ast/core"

// Convertible reports whether two values are definitionally equal:
// structurally equal up to bound-variable renaming, with closures compared
// by applying both to the same fresh neutral variable. Neutrals are equal
// iff their stuck heads and spines are pairwise equal.
func Convertible(a, b Value) (bool, error) {
	switch a := a.(type) {
	case *VUniverse:
		b, ok := b.(*VUniverse)
		return ok && a.Level == b.Level, nil

	case *VLit:
		b, ok := b.(*VLit)
		return ok && a.Val.Equal(b.Val), nil

	case *VPi:
		b, ok := b.(*VPi)
		if !ok {
			return false, nil
		}
		if same, err := Convertible(a.Ann, b.Ann); err != nil || !same {
			return false, err
		}
		return closuresConvertible(a.Binder, a.Body, b.Body)

	case *VLam:
		switch b := b.(type) {
		case *VLam:
			return closuresConvertible(a.Binder, a.Body, b.Body)
		case *VNeutral:
			// Eta: compare the function body against the neutral applied to
			// the same fresh argument.
			return etaConvertible(a, b)
		default:
			return false, nil
		}

	case *VRecordTypeEmpty:
		_, ok := b.(*VRecordTypeEmpty)
		return ok, nil

	case *VRecordType:
		b, ok := b.(*VRecordType)
		if !ok {
			return false, nil
		}
		if a.Label != b.Label {
			return false, nil
		}
		if same, err := Convertible(a.Ann, b.Ann); err != nil || !same {
			return false, err
		}
		_, fresh := FreshNeutral(string(a.Label))
		aRest, err := a.Rest.Apply(fresh)
		if err != nil {
			return false, err
		}
		bRest, err := b.Rest.Apply(fresh)
		if err != nil {
			return false, err
		}
		return Convertible(aRest, bRest)

	case *VRecordIntro:
		b, ok := b.(*VRecordIntro)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false, nil
		}
		for i := range a.Fields {
			if a.Fields[i].Label != b.Fields[i].Label {
				return false, nil
			}
			same, err := Convertible(a.Fields[i].Value, b.Fields[i].Value)
			if err != nil || !same {
				return false, err
			}
		}
		return true, nil

	case *VArrayIntro:
		b, ok := b.(*VArrayIntro)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false, nil
		}
		for i := range a.Elems {
			same, err := Convertible(a.Elems[i], b.Elems[i])
			if err != nil || !same {
				return false, err
			}
		}
		return true, nil

	case *VNeutral:
		switch b := b.(type) {
		case *VNeutral:
			return neutralsConvertible(a.N, b.N)
		case *VLam:
			return etaConvertible(b, a)
		default:
			return false, nil
		}

	default:
		return false, nil
	}
}

func closuresConvertible(hint string, a, b Closure) (bool, error) {
	_, fresh := FreshNeutral(hint)
	aBody, err := a.Apply(fresh)
	if err != nil {
		return false, err
	}
	bBody, err := b.Apply(fresh)
	if err != nil {
		return false, err
	}
	return Convertible(aBody, bBody)
}

func etaConvertible(lam *VLam, neutral *VNeutral) (bool, error) {
	_, fresh := FreshNeutral(lam.Binder)
	lamBody, err := lam.Body.Apply(fresh)
	if err != nil {
		return false, err
	}
	appBody := Value(&VNeutral{N: &NApp{Fn: neutral.N, Arg: fresh}})
	return Convertible(lamBody, appBody)
}

func neutralsConvertible(a, b Neutral) (bool, error) {
	switch a := a.(type) {
	case *NVar:
		b, ok := b.(*NVar)
		return ok && a.Var.Equal(b.Var), nil

	case *NApp:
		b, ok := b.(*NApp)
		if !ok {
			return false, nil
		}
		if same, err := neutralsConvertible(a.Fn, b.Fn); err != nil || !same {
			return false, err
		}
		return Convertible(a.Arg, b.Arg)

	case *NProj:
		b, ok := b.(*NProj)
		if !ok || a.Label != b.Label {
			return false, nil
		}
		return neutralsConvertible(a.Expr, b.Expr)

	case *NCase:
		b, ok := b.(*NCase)
		if !ok || len(a.Branches) != len(b.Branches) {
			return false, nil
		}
		if same, err := neutralsConvertible(a.Scrut, b.Scrut); err != nil || !same {
			return false, err
		}
		for i := range a.Branches {
			same, err := branchesConvertible(a.Branches[i], a.Env, b.Branches[i], b.Env)
			if err != nil || !same {
				return false, err
			}
		}
		return true, nil

	default:
		return false, nil
	}
}

func branchesConvertible(a core.CaseBranch, aEnv *Env, b core.CaseBranch, bEnv *Env) (bool, error) {
	if !patternsMatch(a.Pattern, b.Pattern) {
		return false, nil
	}
	aBinds := false
	if _, ok := a.Pattern.(*core.PatternBinder); ok {
		aBinds = true
	}
	var aVal, bVal Value
	var err error
	if aBinds {
		_, fresh := FreshNeutral(patternBinderName(a.Pattern))
		aVal, err = Eval(a.Body, aEnv.Push(fresh))
		if err != nil {
			return false, err
		}
		bVal, err = Eval(b.Body, bEnv.Push(fresh))
	} else {
		aVal, err = Eval(a.Body, aEnv)
		if err != nil {
			return false, err
		}
		bVal, err = Eval(b.Body, bEnv)
	}
	if err != nil {
		return false, err
	}
	return Convertible(aVal, bVal)
}

func patternsMatch(a, b core.Pattern) bool {
	switch a := a.(type) {
	case *core.PatternBinder:
		_, ok := b.(*core.PatternBinder)
		return ok
	case *core.PatternLit:
		b, ok := b.(*core.PatternLit)
		return ok && a.Val.Equal(b.Val)
	case *core.PatternConst:
		b, ok := b.(*core.PatternConst)
		return ok && a.Var.Equal(b.Var)
	default:
		return false
	}
}
