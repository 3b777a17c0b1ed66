package nbe

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/source"
)

// Quote reads a value back into a normal-form core term. Binders are
// descended by applying closures to freshly minted free variables, which
// are abstracted back into de Bruijn references on the way out, so the
// result is well-scoped and printable.
func Quote(v Value) (core.Term, error) {
	return quote(v, 0)
}

func quote(v Value, depth int) (core.Term, error) {
	if depth > config.MaxTermDepth {
		return nil, errTooDeep(source.Span{})
	}

	switch v := v.(type) {
	case *VUniverse:
		return &core.Universe{Level: v.Level}, nil

	case *VLit:
		return &core.Lit{Val: v.Val}, nil

	case *VPi:
		ann, err := quote(v.Ann, depth+1)
		if err != nil {
			return nil, err
		}
		fv, fresh := FreshNeutral(v.Binder)
		bodyVal, err := v.Body.Apply(fresh)
		if err != nil {
			return nil, err
		}
		body, err := quote(bodyVal, depth+1)
		if err != nil {
			return nil, err
		}
		return &core.Pi{Binder: v.Binder, Ann: ann, Body: core.Close(body, fv)}, nil

	case *VLam:
		ann, err := quote(v.Ann, depth+1)
		if err != nil {
			return nil, err
		}
		fv, fresh := FreshNeutral(v.Binder)
		bodyVal, err := v.Body.Apply(fresh)
		if err != nil {
			return nil, err
		}
		body, err := quote(bodyVal, depth+1)
		if err != nil {
			return nil, err
		}
		return &core.Lam{Binder: v.Binder, Ann: ann, Body: core.Close(body, fv)}, nil

	case *VRecordTypeEmpty:
		return &core.RecordType{}, nil

	case *VRecordType:
		var fields []core.RecordTypeField
		var opened []ast.FreeVar
		cur := Value(v)
		for {
			rt, ok := cur.(*VRecordType)
			if !ok {
				break
			}
			ann, err := quote(rt.Ann, depth+1)
			if err != nil {
				return nil, err
			}
			// Rebind the earlier fields' fresh variables at their telescope
			// depths: the immediately preceding field is Bound(0).
			for j, fv := range opened {
				ann = core.CloseAt(ann, fv, len(opened)-1-j)
			}
			fields = append(fields, core.RecordTypeField{Label: rt.Label, Ann: ann})

			fv, fresh := FreshNeutral(string(rt.Label))
			next, err := rt.Rest.Apply(fresh)
			if err != nil {
				return nil, err
			}
			opened = append(opened, fv)
			cur = next
		}
		if _, ok := cur.(*VRecordTypeEmpty); !ok {
			return nil, &Error{Message: "record type telescope ended in a non-telescope value"}
		}
		return &core.RecordType{Fields: fields}, nil

	case *VRecordIntro:
		fields := make([]core.RecordIntroField, len(v.Fields))
		for i, f := range v.Fields {
			term, err := quote(f.Value, depth+1)
			if err != nil {
				return nil, err
			}
			fields[i] = core.RecordIntroField{Label: f.Label, Term: term}
		}
		return &core.RecordIntro{Fields: fields}, nil

	case *VArrayIntro:
		elems := make([]core.Term, len(v.Elems))
		for i, e := range v.Elems {
			term, err := quote(e, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = term
		}
		return &core.ArrayIntro{Elems: elems}, nil

	case *VNeutral:
		return quoteNeutral(v.N, depth)

	default:
		return nil, &Error{Message: fmt.Sprintf("unknown value form %T", v)}
	}
}

func quoteNeutral(n Neutral, depth int) (core.Term, error) {
	switch n := n.(type) {
	case *NVar:
		return &core.Var{Var: ast.Free{Var: n.Var}}, nil

	case *NApp:
		fn, err := quoteNeutral(n.Fn, depth+1)
		if err != nil {
			return nil, err
		}
		arg, err := quote(n.Arg, depth+1)
		if err != nil {
			return nil, err
		}
		return &core.App{Fn: fn, Arg: arg}, nil

	case *NProj:
		expr, err := quoteNeutral(n.Expr, depth+1)
		if err != nil {
			return nil, err
		}
		return &core.RecordProj{Expr: expr, Label: n.Label}, nil

	case *NCase:
		scrut, err := quoteNeutral(n.Scrut, depth+1)
		if err != nil {
			return nil, err
		}
		branches := make([]core.CaseBranch, len(n.Branches))
		for i, br := range n.Branches {
			branch, err := quoteBranch(br, n.Env, depth+1)
			if err != nil {
				return nil, err
			}
			branches[i] = branch
		}
		return &core.Case{Scrut: scrut, Branches: branches}, nil

	default:
		return nil, &Error{Message: fmt.Sprintf("unknown neutral form %T", n)}
	}
}

// quoteBranch renormalizes a suspended case branch under a fresh variable
// for its binder, if any.
func quoteBranch(br core.CaseBranch, env *Env, depth int) (core.CaseBranch, error) {
	if _, binds := br.Pattern.(*core.PatternBinder); binds {
		fv, fresh := FreshNeutral(patternBinderName(br.Pattern))
		bodyVal, err := eval(br.Body, env.Push(fresh), depth)
		if err != nil {
			return core.CaseBranch{}, err
		}
		body, err := quote(bodyVal, depth)
		if err != nil {
			return core.CaseBranch{}, err
		}
		return core.CaseBranch{Pattern: br.Pattern, Body: core.Close(body, fv)}, nil
	}
	bodyVal, err := eval(br.Body, env, depth)
	if err != nil {
		return core.CaseBranch{}, err
	}
	body, err := quote(bodyVal, depth)
	if err != nil {
		return core.CaseBranch{}, err
	}
	return core.CaseBranch{Pattern: br.Pattern, Body: body}, nil
}

func patternBinderName(p core.Pattern) string {
	if b, ok := p.(*core.PatternBinder); ok {
		return b.Name
	}
	return "_"
}
