package core

import "github.com/lumen-lang/lumen/internal/ast"

// AlphaEqual compares two core terms structurally, ignoring spans and binder
// name hints. Bound variables compare by index and free variables by
// identity, so the comparison is equality up to bound-variable renaming.
//
// This is a syntactic check on already-normalized terms; the elaborator's
// definitional equality always normalizes first.
func AlphaEqual(a, b Term) bool {
	switch a := a.(type) {
	case *Universe:
		b, ok := b.(*Universe)
		return ok && a.Level == b.Level
	case *Lit:
		b, ok := b.(*Lit)
		return ok && a.Val.Equal(b.Val)
	case *Var:
		b, ok := b.(*Var)
		return ok && varEqual(a, b)
	case *Pi:
		b, ok := b.(*Pi)
		return ok && AlphaEqual(a.Ann, b.Ann) && AlphaEqual(a.Body, b.Body)
	case *Lam:
		b, ok := b.(*Lam)
		return ok && AlphaEqual(a.Ann, b.Ann) && AlphaEqual(a.Body, b.Body)
	case *App:
		b, ok := b.(*App)
		return ok && AlphaEqual(a.Fn, b.Fn) && AlphaEqual(a.Arg, b.Arg)
	case *ArrayIntro:
		b, ok := b.(*ArrayIntro)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !AlphaEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case *RecordType:
		b, ok := b.(*RecordType)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Label != b.Fields[i].Label ||
				!AlphaEqual(a.Fields[i].Ann, b.Fields[i].Ann) {
				return false
			}
		}
		return true
	case *RecordIntro:
		b, ok := b.(*RecordIntro)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Label != b.Fields[i].Label ||
				!AlphaEqual(a.Fields[i].Term, b.Fields[i].Term) {
				return false
			}
		}
		return true
	case *RecordProj:
		b, ok := b.(*RecordProj)
		return ok && a.Label == b.Label && AlphaEqual(a.Expr, b.Expr)
	case *Case:
		b, ok := b.(*Case)
		if !ok || len(a.Branches) != len(b.Branches) || !AlphaEqual(a.Scrut, b.Scrut) {
			return false
		}
		for i := range a.Branches {
			if !patternEqual(a.Branches[i].Pattern, b.Branches[i].Pattern) ||
				!AlphaEqual(a.Branches[i].Body, b.Branches[i].Body) {
				return false
			}
		}
		return true
	case *Let:
		b, ok := b.(*Let)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			// Let items bind by FreeVar identity; two lets are equal only
			// when they bind the very same identities.
			if !a.Items[i].Var.Equal(b.Items[i].Var) ||
				!AlphaEqual(a.Items[i].Ann, b.Items[i].Ann) ||
				!AlphaEqual(a.Items[i].Value, b.Items[i].Value) {
				return false
			}
		}
		return AlphaEqual(a.Body, b.Body)
	default:
		return false
	}
}

func varEqual(a, b *Var) bool {
	switch av := a.Var.(type) {
	case ast.Bound:
		bv, ok := b.Var.(ast.Bound)
		return ok && av.Index == bv.Index
	case ast.Free:
		bv, ok := b.Var.(ast.Free)
		return ok && av.Var.Equal(bv.Var)
	default:
		return false
	}
}

func patternEqual(a, b Pattern) bool {
	switch a := a.(type) {
	case *PatternBinder:
		_, ok := b.(*PatternBinder)
		return ok
	case *PatternLit:
		b, ok := b.(*PatternLit)
		return ok && a.Val.Equal(b.Val)
	case *PatternConst:
		b, ok := b.(*PatternConst)
		return ok && a.Var.Equal(b.Var)
	default:
		return false
	}
}
