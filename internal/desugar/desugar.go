package desugar

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/source"
)

// Term lowers a surface term into a raw term.
func Term(t concrete.Term, globals Globals, imports Imports) (raw.Term, error) {
	return NewResolver(globals, imports).Term(t)
}

// Module lowers a module's items. The returned items are ready for
// elaborate.ElaborateItems.
func Module(m *concrete.Module, globals Globals, imports Imports) ([]raw.LetItem, error) {
	r := NewResolver(globals, imports)
	items, err := r.items(m.Items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Term lowers a surface term in the resolver's current scope.
func (r *Resolver) Term(t concrete.Term) (raw.Term, error) {
	return r.term(t)
}

func (r *Resolver) term(t concrete.Term) (raw.Term, error) {
	switch t := t.(type) {
	case *concrete.Parens:
		return r.term(t.Inner)

	case *concrete.Ann:
		expr, err := r.term(t.Expr)
		if err != nil {
			return nil, err
		}
		typ, err := r.term(t.Type)
		if err != nil {
			return nil, err
		}
		return &raw.Ann{Expr: expr, Type: typ}, nil

	case *concrete.Universe:
		level := uint32(0)
		if t.Level != nil {
			level = *t.Level
		}
		return &raw.Universe{TermSpan: t.Span(), Level: level}, nil

	case *concrete.Lit:
		return &raw.Lit{TermSpan: t.Span(), Literal: rawLiteral(t.Literal)}, nil

	case *concrete.ArrayIntro:
		elems := make([]raw.Term, len(t.Elems))
		for i, el := range t.Elems {
			e, err := r.term(el)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &raw.ArrayIntro{TermSpan: t.Span(), Elems: elems}, nil

	case *concrete.Hole:
		return &raw.Hole{TermSpan: t.Span()}, nil

	case *concrete.Name:
		v, err := r.resolve(t.Name, shiftOf(t.Shift), t.Span())
		if err != nil {
			return nil, err
		}
		return &raw.Var{TermSpan: t.Span(), Var: v}, nil

	case *concrete.Import:
		fv, ok := r.imports.Lookup(t.Path)
		if !ok {
			return nil, &elaborate.UndefinedImport{Span: t.PathSpan, Name: t.Path}
		}
		return &raw.Var{TermSpan: t.Span(), Var: ast.Free{Var: fv}}, nil

	case *concrete.FunType:
		return r.funType(t.Params, t.Body, t.Span())

	case *concrete.FunArrow:
		param, err := r.term(t.Param)
		if err != nil {
			return nil, err
		}
		r.pushBound("")
		body, err := r.term(t.Body)
		r.truncate(r.mark() - 1)
		if err != nil {
			return nil, err
		}
		return &raw.Pi{TermSpan: t.Span(), Binder: "", Ann: param, Body: body}, nil

	case *concrete.FunIntro:
		return r.funIntro(t.Params, nil, t.Body, t.Span())

	case *concrete.FunApp:
		fn, err := r.term(t.Fn)
		if err != nil {
			return nil, err
		}
		for _, arg := range t.Args {
			a, err := r.term(arg)
			if err != nil {
				return nil, err
			}
			fn = &raw.App{Fn: fn, Arg: a}
		}
		return fn, nil

	case *concrete.Let:
		mark := r.mark()
		items, err := r.items(t.Items)
		if err != nil {
			r.truncate(mark)
			return nil, err
		}
		body, err := r.term(t.Body)
		r.truncate(mark)
		if err != nil {
			return nil, err
		}
		return &raw.Let{TermSpan: t.Span(), Items: items, Body: body}, nil

	case *concrete.Where:
		// A where block is a let read backwards: items first, then the
		// expression they scope over.
		mark := r.mark()
		items, err := r.items(t.Items)
		if err != nil {
			r.truncate(mark)
			return nil, err
		}
		body, err := r.term(t.Expr)
		r.truncate(mark)
		if err != nil {
			return nil, err
		}
		return &raw.Let{TermSpan: t.Span(), Items: items, Body: body}, nil

	case *concrete.If:
		return r.ifTerm(t)

	case *concrete.Case:
		scrut, err := r.term(t.Scrut)
		if err != nil {
			return nil, err
		}
		branches := make([]raw.CaseBranch, len(t.Branches))
		for i, br := range t.Branches {
			pat, bindsName, err := r.pattern(br.Pattern)
			if err != nil {
				return nil, err
			}
			mark := r.mark()
			if bindsName != "" {
				r.pushBound(bindsName)
			}
			body, err := r.term(br.Body)
			r.truncate(mark)
			if err != nil {
				return nil, err
			}
			branches[i] = raw.CaseBranch{Pattern: pat, Body: body}
		}
		return &raw.Case{TermSpan: t.Span(), Scrut: scrut, Branches: branches}, nil

	case *concrete.RecordType:
		mark := r.mark()
		defer r.truncate(mark)
		fields := make([]raw.RecordTypeField, len(t.Fields))
		for i, f := range t.Fields {
			ann, err := r.term(f.Ann)
			if err != nil {
				return nil, err
			}
			binder := f.Binder
			if binder == "" {
				binder = f.Label
			}
			fields[i] = raw.RecordTypeField{
				LabelSpan: f.LabelSpan,
				Label:     ast.Label(f.Label),
				Binder:    binder,
				Ann:       ann,
			}
			r.pushBound(binder)
		}
		return &raw.RecordType{TermSpan: t.Span(), Fields: fields}, nil

	case *concrete.RecordIntro:
		fields := make([]raw.RecordIntroField, len(t.Fields))
		for i, f := range t.Fields {
			field, err := r.recordField(f)
			if err != nil {
				return nil, err
			}
			fields[i] = field
		}
		return &raw.RecordIntro{TermSpan: t.Span(), Fields: fields}, nil

	case *concrete.RecordProj:
		expr, err := r.term(t.Expr)
		if err != nil {
			return nil, err
		}
		_ = t.Shift // projection shifts disambiguate labels, which records do not repeat
		return &raw.RecordProj{
			TermSpan:  t.Span(),
			Expr:      expr,
			LabelSpan: t.LabelSpan,
			Label:     ast.Label(t.Label),
		}, nil

	case *concrete.Error:
		return nil, &SyntaxError{Span: t.Span()}

	default:
		return nil, &SyntaxError{Span: t.Span()}
	}
}

// funType lowers parameter groups into iterated Pi binders. Annotations are
// re-resolved per binder: each introduced binder shifts the de Bruijn
// indices the annotation resolves to.
func (r *Resolver) funType(params []concrete.ParamGroup, body concrete.Term, span source.Span) (raw.Term, error) {
	var names []concrete.ParamName
	var anns []concrete.Term
	for _, group := range params {
		for _, n := range group.Names {
			names = append(names, n)
			anns = append(anns, group.Ann)
		}
	}
	return r.buildPi(names, anns, body, span)
}

func (r *Resolver) buildPi(names []concrete.ParamName, anns []concrete.Term, body concrete.Term, span source.Span) (raw.Term, error) {
	if len(names) == 0 {
		return r.term(body)
	}
	ann, err := r.term(anns[0])
	if err != nil {
		return nil, err
	}
	r.pushBound(names[0].Name)
	inner, err := r.buildPi(names[1:], anns[1:], body, span)
	r.truncate(r.mark() - 1)
	if err != nil {
		return nil, err
	}
	return &raw.Pi{TermSpan: span, Binder: names[0].Name, Ann: ann, Body: inner}, nil
}

// funIntro lowers parameter groups into iterated Lam binders. returnAnn, if
// present, annotates the innermost body with all parameters in scope.
func (r *Resolver) funIntro(params []concrete.ParamGroup, returnAnn concrete.Term, body concrete.Term, span source.Span) (raw.Term, error) {
	var names []concrete.ParamName
	var anns []concrete.Term
	for _, group := range params {
		for _, n := range group.Names {
			names = append(names, n)
			anns = append(anns, group.Ann) // may be nil
		}
	}
	return r.buildLam(names, anns, returnAnn, body, span)
}

func (r *Resolver) buildLam(names []concrete.ParamName, anns []concrete.Term, returnAnn concrete.Term, body concrete.Term, span source.Span) (raw.Term, error) {
	if len(names) == 0 {
		b, err := r.term(body)
		if err != nil {
			return nil, err
		}
		if returnAnn == nil {
			return b, nil
		}
		typ, err := r.term(returnAnn)
		if err != nil {
			return nil, err
		}
		return &raw.Ann{Expr: b, Type: typ}, nil
	}
	var ann raw.Term
	if anns[0] != nil {
		var err error
		ann, err = r.term(anns[0])
		if err != nil {
			return nil, err
		}
	}
	r.pushBound(names[0].Name)
	inner, err := r.buildLam(names[1:], anns[1:], returnAnn, body, span)
	r.truncate(r.mark() - 1)
	if err != nil {
		return nil, err
	}
	return &raw.Lam{
		TermSpan:   span,
		BinderSpan: names[0].NameSpan,
		Binder:     names[0].Name,
		Ann:        ann,
		Body:       inner,
	}, nil
}

// ifTerm lowers an if to a case over true and false, so both share one
// pattern-elaboration path.
func (r *Resolver) ifTerm(t *concrete.If) (raw.Term, error) {
	cond, err := r.term(t.Cond)
	if err != nil {
		return nil, err
	}
	trueVar, ok := r.lookupConst("true", 0)
	if !ok {
		return nil, &elaborate.UndefinedName{Span: t.Span(), Name: "true"}
	}
	falseVar, ok := r.lookupConst("false", 0)
	if !ok {
		return nil, &elaborate.UndefinedName{Span: t.Span(), Name: "false"}
	}
	thenBody, err := r.term(t.Then)
	if err != nil {
		return nil, err
	}
	elseBody, err := r.term(t.Else)
	if err != nil {
		return nil, err
	}
	return &raw.Case{
		TermSpan: t.Span(),
		Scrut:    cond,
		Branches: []raw.CaseBranch{
			{Pattern: &raw.PatternConst{PatSpan: t.Cond.Span(), Var: trueVar}, Body: thenBody},
			{Pattern: &raw.PatternConst{PatSpan: t.Cond.Span(), Var: falseVar}, Body: elseBody},
		},
	}, nil
}

// recordField expands punning and method-style sugar into a plain
// field-value pair.
func (r *Resolver) recordField(f concrete.RecordField) (raw.RecordIntroField, error) {
	switch f := f.(type) {
	case *concrete.RecordFieldPunned:
		v, err := r.resolve(f.Label, shiftOf(f.Shift), f.LabelSpan)
		if err != nil {
			return raw.RecordIntroField{}, err
		}
		return raw.RecordIntroField{
			LabelSpan: f.LabelSpan,
			Label:     ast.Label(f.Label),
			Term:      &raw.Var{TermSpan: f.LabelSpan, Var: v},
		}, nil

	case *concrete.RecordFieldExplicit:
		value, err := r.funIntro(f.Params, f.ReturnAnn, f.Term, f.LabelSpan.Cover(f.Term.Span()))
		if err != nil {
			return raw.RecordIntroField{}, err
		}
		return raw.RecordIntroField{
			LabelSpan: f.LabelSpan,
			Label:     ast.Label(f.Label),
			Term:      value,
		}, nil

	default:
		return raw.RecordIntroField{}, &SyntaxError{}
	}
}

// pattern lowers a surface pattern. bindsName is the binder's printable
// name when the pattern introduces one; the caller pushes it around the
// branch body.
func (r *Resolver) pattern(p concrete.Pattern) (raw.Pattern, string, error) {
	switch p := p.(type) {
	case *concrete.PatternParens:
		return r.pattern(p.Inner)

	case *concrete.PatternAnn:
		inner, binds, err := r.pattern(p.Pattern)
		if err != nil {
			return nil, "", err
		}
		typ, err := r.term(p.Type)
		if err != nil {
			return nil, "", err
		}
		return &raw.PatternAnn{Pattern: inner, Type: typ}, binds, nil

	case *concrete.PatternLit:
		return &raw.PatternLit{PatSpan: p.Span(), Literal: rawLiteral(p.Literal)}, "", nil

	case *concrete.PatternName:
		if fv, ok := r.lookupConst(p.Name, shiftOf(p.Shift)); ok {
			return &raw.PatternConst{PatSpan: p.Span(), Var: fv}, "", nil
		}
		return &raw.PatternBinder{PatSpan: p.Span(), Name: p.Name}, p.Name, nil

	case *concrete.PatternError:
		return nil, "", &SyntaxError{Span: p.Span()}

	default:
		return nil, "", &SyntaxError{Span: p.Span()}
	}
}

// items lowers a block of declarations and definitions, pushing a free
// binding per distinct name so later items and the block body see it. The
// caller truncates the scope afterwards. A declaration and its definition
// share one identity; duplicates also share it, so the elaborator can
// report them against the original site.
func (r *Resolver) items(items []concrete.Item) ([]raw.LetItem, error) {
	known := make(map[string]ast.FreeVar)
	out := make([]raw.LetItem, 0, len(items))

	bind := func(name string) ast.FreeVar {
		if fv, ok := known[name]; ok {
			return fv
		}
		fv := ast.NewFreeVar(name)
		known[name] = fv
		r.pushFree(name, fv)
		return fv
	}

	for _, item := range items {
		switch item := item.(type) {
		case *concrete.Declaration:
			ann, err := r.term(item.Ann)
			if err != nil {
				return nil, err
			}
			out = append(out, &raw.Declaration{
				ItemSpan: item.Span(),
				NameSpan: item.NameSpan,
				Name:     item.Name,
				Var:      bind(item.Name),
				Ann:      ann,
			})

		case *concrete.Definition:
			body, err := r.funIntro(item.Params, item.ReturnAnn, item.Body, item.Span())
			if err != nil {
				return nil, err
			}
			out = append(out, &raw.Definition{
				ItemSpan: item.Span(),
				NameSpan: item.NameSpan,
				Name:     item.Name,
				Var:      bind(item.Name),
				Body:     body,
			})

		case *concrete.ItemError:
			return nil, &SyntaxError{Span: item.Span()}

		default:
			return nil, &SyntaxError{Span: item.Span()}
		}
	}
	return out, nil
}

func rawLiteral(l concrete.Literal) raw.Literal {
	switch l := l.(type) {
	case *concrete.StringLit:
		return &raw.StringLit{LitSpan: l.Span(), Value: l.Value}
	case *concrete.CharLit:
		return &raw.CharLit{LitSpan: l.Span(), Value: l.Value}
	case *concrete.IntLit:
		return &raw.IntLit{LitSpan: l.Span(), Value: l.Value, Format: l.Format}
	case *concrete.FloatLit:
		return &raw.FloatLit{LitSpan: l.Span(), Value: l.Value, Format: l.Format}
	default:
		return &raw.StringLit{LitSpan: l.Span()}
	}
}

func shiftOf(shift *uint32) uint32 {
	if shift == nil {
		return 0
	}
	return *shift
}
