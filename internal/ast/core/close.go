package core

import "github.com/lumen-lang/lumen/internal/ast"

// Close abstracts the given free variable out of body, turning it back into
// the de Bruijn reference Bound(0) at the top level. It is the inverse of
// opening a binder with a fresh FreeVar and is used when rebuilding binder
// bodies during elaboration and quoting.
func Close(body Term, fv ast.FreeVar) Term {
	return closeTerm(body, fv, 0)
}

// CloseAt abstracts fv into Bound(depth) at the top level. Telescope
// quoting uses it to rebind earlier record fields at their respective
// depths.
func CloseAt(body Term, fv ast.FreeVar, depth int) Term {
	return closeTerm(body, fv, depth)
}

func closeTerm(t Term, fv ast.FreeVar, depth int) Term {
	switch t := t.(type) {
	case *Universe, *Lit:
		return t
	case *Var:
		if f, ok := t.Var.(ast.Free); ok && f.Var.Equal(fv) {
			return &Var{TermSpan: t.TermSpan, Var: ast.Bound{Index: depth, Hint: fv.Name}}
		}
		return t
	case *Pi:
		return &Pi{
			TermSpan: t.TermSpan,
			Binder:   t.Binder,
			Ann:      closeTerm(t.Ann, fv, depth),
			Body:     closeTerm(t.Body, fv, depth+1),
		}
	case *Lam:
		return &Lam{
			TermSpan: t.TermSpan,
			Binder:   t.Binder,
			Ann:      closeTerm(t.Ann, fv, depth),
			Body:     closeTerm(t.Body, fv, depth+1),
		}
	case *App:
		return &App{
			TermSpan: t.TermSpan,
			Fn:       closeTerm(t.Fn, fv, depth),
			Arg:      closeTerm(t.Arg, fv, depth),
		}
	case *ArrayIntro:
		elems := make([]Term, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = closeTerm(e, fv, depth)
		}
		return &ArrayIntro{TermSpan: t.TermSpan, Elems: elems}
	case *RecordType:
		fields := make([]RecordTypeField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordTypeField{
				Label: f.Label,
				Ann:   closeTerm(f.Ann, fv, depth+i),
			}
		}
		return &RecordType{TermSpan: t.TermSpan, Fields: fields}
	case *RecordIntro:
		fields := make([]RecordIntroField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordIntroField{Label: f.Label, Term: closeTerm(f.Term, fv, depth)}
		}
		return &RecordIntro{TermSpan: t.TermSpan, Fields: fields}
	case *RecordProj:
		return &RecordProj{
			TermSpan: t.TermSpan,
			Expr:     closeTerm(t.Expr, fv, depth),
			Label:    t.Label,
		}
	case *Case:
		branches := make([]CaseBranch, len(t.Branches))
		for i, br := range t.Branches {
			bodyDepth := depth
			if _, binds := br.Pattern.(*PatternBinder); binds {
				bodyDepth++
			}
			branches[i] = CaseBranch{
				Pattern: br.Pattern,
				Body:    closeTerm(br.Body, fv, bodyDepth),
			}
		}
		return &Case{
			TermSpan: t.TermSpan,
			Scrut:    closeTerm(t.Scrut, fv, depth),
			Branches: branches,
		}
	case *Let:
		items := make([]LetItem, len(t.Items))
		for i, item := range t.Items {
			items[i] = LetItem{
				NameSpan: item.NameSpan,
				Name:     item.Name,
				Var:      item.Var,
				Ann:      closeTerm(item.Ann, fv, depth),
				Value:    closeTerm(item.Value, fv, depth),
			}
		}
		return &Let{
			TermSpan: t.TermSpan,
			Items:    items,
			Body:     closeTerm(t.Body, fv, depth),
		}
	default:
		return t
	}
}
