package raw

import "github.com/lumen-lang/lumen/internal/ast"

// Open replaces references to the outermost binder of body — Bound(0) at the
// top level — with the given free variable. The elaborator opens each binder
// with a fresh FreeVar before descending so that only free variables ever
// reach the context.
func Open(body Term, fv ast.FreeVar) Term {
	return openTerm(body, fv, 0)
}

// OpenAt replaces Bound(depth) at the top level with the given free
// variable. Record type telescopes use it to open a field annotation with
// respect to all earlier fields' binders.
func OpenAt(body Term, fv ast.FreeVar, depth int) Term {
	return openTerm(body, fv, depth)
}

func openTerm(t Term, fv ast.FreeVar, depth int) Term {
	switch t := t.(type) {
	case *Ann:
		return &Ann{
			Expr: openTerm(t.Expr, fv, depth),
			Type: openTerm(t.Type, fv, depth),
		}
	case *Universe, *Lit, *Hole:
		return t
	case *Var:
		if b, ok := t.Var.(ast.Bound); ok && b.Index == depth {
			return &Var{TermSpan: t.TermSpan, Var: ast.Free{Var: fv}}
		}
		return t
	case *Pi:
		return &Pi{
			TermSpan: t.TermSpan,
			Binder:   t.Binder,
			Ann:      openTerm(t.Ann, fv, depth),
			Body:     openTerm(t.Body, fv, depth+1),
		}
	case *Lam:
		out := &Lam{
			TermSpan:   t.TermSpan,
			BinderSpan: t.BinderSpan,
			Binder:     t.Binder,
			Body:       openTerm(t.Body, fv, depth+1),
		}
		if t.Ann != nil {
			out.Ann = openTerm(t.Ann, fv, depth)
		}
		return out
	case *App:
		return &App{
			Fn:  openTerm(t.Fn, fv, depth),
			Arg: openTerm(t.Arg, fv, depth),
		}
	case *ArrayIntro:
		elems := make([]Term, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = openTerm(e, fv, depth)
		}
		return &ArrayIntro{TermSpan: t.TermSpan, Elems: elems}
	case *RecordType:
		fields := make([]RecordTypeField, len(t.Fields))
		for i, f := range t.Fields {
			// Each earlier field's binder is in scope in this annotation.
			fields[i] = RecordTypeField{
				LabelSpan: f.LabelSpan,
				Label:     f.Label,
				Binder:    f.Binder,
				Ann:       openTerm(f.Ann, fv, depth+i),
			}
		}
		return &RecordType{TermSpan: t.TermSpan, Fields: fields}
	case *RecordIntro:
		fields := make([]RecordIntroField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordIntroField{
				LabelSpan: f.LabelSpan,
				Label:     f.Label,
				Term:      openTerm(f.Term, fv, depth),
			}
		}
		return &RecordIntro{TermSpan: t.TermSpan, Fields: fields}
	case *RecordProj:
		return &RecordProj{
			TermSpan:  t.TermSpan,
			Expr:      openTerm(t.Expr, fv, depth),
			LabelSpan: t.LabelSpan,
			Label:     t.Label,
		}
	case *Case:
		branches := make([]CaseBranch, len(t.Branches))
		for i, br := range t.Branches {
			bodyDepth := depth
			if Binds(br.Pattern) {
				bodyDepth++
			}
			branches[i] = CaseBranch{
				Pattern: openPattern(br.Pattern, fv, depth),
				Body:    openTerm(br.Body, fv, bodyDepth),
			}
		}
		return &Case{
			TermSpan: t.TermSpan,
			Scrut:    openTerm(t.Scrut, fv, depth),
			Branches: branches,
		}
	case *Let:
		items := make([]LetItem, len(t.Items))
		for i, item := range t.Items {
			switch item := item.(type) {
			case *Declaration:
				items[i] = &Declaration{
					ItemSpan: item.ItemSpan,
					NameSpan: item.NameSpan,
					Name:     item.Name,
					Var:      item.Var,
					Ann:      openTerm(item.Ann, fv, depth),
				}
			case *Definition:
				items[i] = &Definition{
					ItemSpan: item.ItemSpan,
					NameSpan: item.NameSpan,
					Name:     item.Name,
					Var:      item.Var,
					Body:     openTerm(item.Body, fv, depth),
				}
			}
		}
		return &Let{
			TermSpan: t.TermSpan,
			Items:    items,
			Body:     openTerm(t.Body, fv, depth),
		}
	default:
		return t
	}
}

func openPattern(p Pattern, fv ast.FreeVar, depth int) Pattern {
	if ann, ok := p.(*PatternAnn); ok {
		return &PatternAnn{
			Pattern: openPattern(ann.Pattern, fv, depth),
			Type:    openTerm(ann.Type, fv, depth),
		}
	}
	return p
}
