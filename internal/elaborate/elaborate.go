// Package elaborate implements the bidirectional type checker: Infer
// synthesizes a type for a raw term, Check verifies a raw term against an
// expected type value. Both produce fully elaborated core terms and thread
// an immutable Context; definitional equality goes through the nbe package,
// never through syntactic comparison of core terms.
package elaborate

import (
	"errors"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/nbe"
	"github.com/lumen-lang/lumen/internal/prettyprinter"
	"github.com/lumen-lang/lumen/internal/source"
)

// Elaborator holds the builtin base the checker resolves primitive types
// against. It carries no mutable state; the same Elaborator may serve any
// number of elaboration calls.
type Elaborator struct {
	base *Base
}

// New returns an elaborator over the given builtin base.
func New(base *Base) *Elaborator {
	return &Elaborator{base: base}
}

// Base returns the builtin base.
func (e *Elaborator) Base() *Base { return e.base }

// Infer synthesizes the type of a raw term.
func (e *Elaborator) Infer(t raw.Term, ctx *Context) (core.Term, nbe.Value, error) {
	return e.infer(t, ctx, 0)
}

// Check verifies a raw term against an expected type value.
func (e *Elaborator) Check(t raw.Term, expected nbe.Value, ctx *Context) (core.Term, error) {
	return e.check(t, expected, ctx, 0)
}

func (e *Elaborator) infer(t raw.Term, ctx *Context, depth int) (core.Term, nbe.Value, error) {
	if depth > config.MaxTermDepth {
		return nil, nil, &TooDeep{Span: t.Span()}
	}

	switch t := t.(type) {
	case *raw.Ann:
		_, typeValue, _, err := e.isType(t.Type, ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		expr, err := e.check(t.Expr, typeValue, ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		return expr, typeValue, nil

	case *raw.Universe:
		return &core.Universe{TermSpan: t.TermSpan, Level: t.Level},
			&nbe.VUniverse{Level: t.Level + 1}, nil

	case *raw.Lit:
		switch l := t.Literal.(type) {
		case *raw.StringLit:
			return &core.Lit{TermSpan: t.TermSpan, Val: core.LitVal{Kind: core.LitString, Str: l.Value}},
				e.base.PrimType(core.LitString), nil
		case *raw.CharLit:
			return &core.Lit{TermSpan: t.TermSpan, Val: core.LitVal{Kind: core.LitChar, Rune: l.Value}},
				e.base.PrimType(core.LitChar), nil
		case *raw.IntLit:
			return nil, nil, &AmbiguousIntLiteral{Span: t.Span()}
		case *raw.FloatLit:
			return nil, nil, &AmbiguousFloatLiteral{Span: t.Span()}
		default:
			return nil, nil, &Internal{Err: &Unimplemented{Span: t.Span(), Message: "unknown literal form"}}
		}

	case *raw.Hole:
		return nil, nil, &UnableToElaborateHole{Span: t.Span()}

	case *raw.Var:
		switch v := t.Var.(type) {
		case ast.Bound:
			return nil, nil, &Internal{Err: &UnexpectedBoundVar{Span: t.Span(), Index: v.Index}}
		case ast.Free:
			typ, ok := ctx.LookupType(v.Var)
			if !ok {
				return nil, nil, &UndefinedName{Span: t.Span(), Name: v.Var.Name}
			}
			return &core.Var{TermSpan: t.TermSpan, Var: v}, typ, nil
		default:
			return nil, nil, &Internal{Err: &Unimplemented{Span: t.Span(), Message: "unknown variable form"}}
		}

	case *raw.Pi:
		coreAnn, annValue, annLevel, err := e.isType(t.Ann, ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		fv := ast.NewFreeVar(t.Binder)
		coreBody, _, bodyLevel, err := e.isType(raw.Open(t.Body, fv), ctx.ExtendType(fv, annValue), depth+1)
		if err != nil {
			return nil, nil, err
		}
		level := annLevel
		if bodyLevel > level {
			level = bodyLevel
		}
		pi := &core.Pi{TermSpan: t.TermSpan, Binder: t.Binder, Ann: coreAnn, Body: core.Close(coreBody, fv)}
		return pi, &nbe.VUniverse{Level: level}, nil

	case *raw.Lam:
		if t.Ann == nil {
			return nil, nil, &FunctionParamNeedsAnnotation{Name: t.Binder, Span: t.BinderSpan}
		}
		coreAnn, annValue, _, err := e.isType(t.Ann, ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		fv := ast.NewFreeVar(t.Binder)
		coreBody, bodyType, err := e.infer(raw.Open(t.Body, fv), ctx.ExtendType(fv, annValue), depth+1)
		if err != nil {
			return nil, nil, err
		}
		bodyTypeCore, err := e.quoteValue(bodyType, t.Span())
		if err != nil {
			return nil, nil, err
		}
		lam := &core.Lam{TermSpan: t.TermSpan, Binder: t.Binder, Ann: coreAnn, Body: core.Close(coreBody, fv)}
		piType := &nbe.VPi{
			Binder: t.Binder,
			Ann:    annValue,
			Body:   nbe.Closure{Env: ctx.Env(), Body: core.Close(bodyTypeCore, fv)},
		}
		return lam, piType, nil

	case *raw.App:
		fn, fnType, err := e.infer(t.Fn, ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := fnType.(*nbe.VPi)
		if !ok {
			return nil, nil, &ArgAppliedToNonFunction{
				HeadType: e.render(fnType),
				FnSpan:   t.Fn.Span(),
				ArgSpan:  t.Arg.Span(),
			}
		}
		arg, err := e.check(t.Arg, pi.Ann, ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		argValue, err := e.eval(arg, ctx, t.Arg.Span())
		if err != nil {
			return nil, nil, err
		}
		retType, err := pi.Body.Apply(argValue)
		if err != nil {
			return nil, nil, e.wrapEval(err, t.Span())
		}
		return &core.App{TermSpan: t.Span(), Fn: fn, Arg: arg}, retType, nil

	case *raw.ArrayIntro:
		if len(t.Elems) == 0 {
			return nil, nil, &AmbiguousArrayLiteral{Span: t.Span()}
		}
		first, elemType, err := e.infer(t.Elems[0], ctx, depth+1)
		if err != nil {
			return nil, nil, err
		}
		elems := make([]core.Term, 0, len(t.Elems))
		elems = append(elems, first)
		for _, el := range t.Elems[1:] {
			c, ty, err := e.infer(el, ctx, depth+1)
			if err != nil {
				return nil, nil, err
			}
			same, err := e.convertible(ty, elemType, el.Span())
			if err != nil {
				return nil, nil, err
			}
			if !same {
				return nil, nil, &AmbiguousArrayLiteral{Span: t.Span()}
			}
			elems = append(elems, c)
		}
		arr := &core.ArrayIntro{TermSpan: t.TermSpan, Elems: elems}
		return arr, e.arrayType(uint64(len(elems)), elemType), nil

	case *raw.RecordType:
		return e.inferRecordType(t, ctx, depth)

	case *raw.RecordIntro:
		return e.inferRecordIntro(t, ctx, depth)

	case *raw.RecordProj:
		return e.inferProj(t, ctx, depth)

	case *raw.Case:
		return e.elabCase(t, nil, ctx, depth)

	case *raw.Let:
		inner, items, err := e.elabItems(t.Items, ctx, depth)
		if err != nil {
			return nil, nil, err
		}
		body, bodyType, err := e.infer(t.Body, inner, depth+1)
		if err != nil {
			return nil, nil, err
		}
		return &core.Let{TermSpan: t.TermSpan, Items: items, Body: body}, bodyType, nil

	default:
		return nil, nil, &Internal{Err: &Unimplemented{Span: t.Span(), Message: "unknown term form"}}
	}
}

func (e *Elaborator) check(t raw.Term, expected nbe.Value, ctx *Context, depth int) (core.Term, error) {
	if depth > config.MaxTermDepth {
		return nil, &TooDeep{Span: t.Span()}
	}

	switch t := t.(type) {
	case *raw.Lit:
		val, err := e.checkLiteral(t.Literal, expected, t.Span())
		if err != nil {
			return nil, err
		}
		return &core.Lit{TermSpan: t.TermSpan, Val: val}, nil

	case *raw.Hole:
		return nil, &UnableToElaborateHole{Span: t.Span(), Expected: e.render(expected)}

	case *raw.Lam:
		pi, ok := expected.(*nbe.VPi)
		if !ok {
			return nil, &UnexpectedFunction{Span: t.Span(), Expected: e.render(expected)}
		}
		annValue := pi.Ann
		var coreAnn core.Term
		if t.Ann != nil {
			var err error
			var explicit nbe.Value
			coreAnn, explicit, _, err = e.isType(t.Ann, ctx, depth+1)
			if err != nil {
				return nil, err
			}
			same, err := e.convertible(explicit, pi.Ann, t.Ann.Span())
			if err != nil {
				return nil, err
			}
			if !same {
				return nil, &Mismatch{Span: t.Ann.Span(), Found: e.render(explicit), Expected: e.render(pi.Ann)}
			}
			annValue = explicit
		} else {
			var err error
			coreAnn, err = e.quoteValue(pi.Ann, t.Span())
			if err != nil {
				return nil, err
			}
		}
		fv := ast.NewFreeVar(t.Binder)
		expectedBody, err := pi.Body.Apply(&nbe.VNeutral{N: &nbe.NVar{Var: fv}})
		if err != nil {
			return nil, e.wrapEval(err, t.Span())
		}
		coreBody, err := e.check(raw.Open(t.Body, fv), expectedBody, ctx.ExtendType(fv, annValue), depth+1)
		if err != nil {
			return nil, err
		}
		return &core.Lam{TermSpan: t.TermSpan, Binder: t.Binder, Ann: coreAnn, Body: core.Close(coreBody, fv)}, nil

	case *raw.ArrayIntro:
		lenV, elemType, isArray := e.matchArrayType(expected)
		if isArray {
			if lit, concrete := lenV.(*nbe.VLit); concrete && lit.Val.Uint != uint64(len(t.Elems)) {
				return nil, &ArrayLengthMismatch{
					Span:        t.Span(),
					FoundLen:    uint64(len(t.Elems)),
					ExpectedLen: lit.Val.Uint,
				}
			}
			elems := make([]core.Term, len(t.Elems))
			for i, el := range t.Elems {
				c, err := e.check(el, elemType, ctx, depth+1)
				if err != nil {
					return nil, err
				}
				elems[i] = c
			}
			return &core.ArrayIntro{TermSpan: t.TermSpan, Elems: elems}, nil
		}

	case *raw.RecordIntro:
		switch expected.(type) {
		case *nbe.VRecordType, *nbe.VRecordTypeEmpty:
			return e.checkRecordIntro(t, expected, ctx, depth)
		}

	case *raw.Case:
		c, _, err := e.elabCase(t, expected, ctx, depth)
		return c, err

	case *raw.Let:
		inner, items, err := e.elabItems(t.Items, ctx, depth)
		if err != nil {
			return nil, err
		}
		body, err := e.check(t.Body, expected, inner, depth+1)
		if err != nil {
			return nil, err
		}
		return &core.Let{TermSpan: t.TermSpan, Items: items, Body: body}, nil

	case *raw.Ann:
		_, annValue, _, err := e.isType(t.Type, ctx, depth+1)
		if err != nil {
			return nil, err
		}
		expr, err := e.check(t.Expr, annValue, ctx, depth+1)
		if err != nil {
			return nil, err
		}
		ok, err := e.subtype(annValue, expected)
		if err != nil {
			return nil, e.wrapEval(err, t.Span())
		}
		if !ok {
			return nil, &Mismatch{Span: t.Span(), Found: e.render(annValue), Expected: e.render(expected)}
		}
		return expr, nil
	}

	// No type-directed shape: synthesize and compare.
	c, found, err := e.infer(t, ctx, depth+1)
	if err != nil {
		return nil, err
	}
	ok, err := e.subtype(found, expected)
	if err != nil {
		return nil, e.wrapEval(err, t.Span())
	}
	if !ok {
		return nil, &Mismatch{Span: t.Span(), Found: e.render(found), Expected: e.render(expected)}
	}
	return c, nil
}

// isType elaborates a term used as a type: its type must reduce to a
// universe. Returns the core term, its evaluated Value and universe level.
func (e *Elaborator) isType(t raw.Term, ctx *Context, depth int) (core.Term, nbe.Value, uint32, error) {
	c, typ, err := e.infer(t, ctx, depth)
	if err != nil {
		return nil, nil, 0, err
	}
	u, ok := typ.(*nbe.VUniverse)
	if !ok {
		return nil, nil, 0, &ExpectedUniverse{Span: t.Span(), Found: e.render(typ)}
	}
	value, err := e.eval(c, ctx, t.Span())
	if err != nil {
		return nil, nil, 0, err
	}
	return c, value, u.Level, nil
}

func (e *Elaborator) inferRecordType(t *raw.RecordType, ctx *Context, depth int) (core.Term, nbe.Value, error) {
	var opened []ast.FreeVar
	fields := make([]core.RecordTypeField, 0, len(t.Fields))
	level := uint32(0)
	cur := ctx
	for i, f := range t.Fields {
		ann := f.Ann
		for j, fv := range opened {
			ann = raw.OpenAt(ann, fv, i-1-j)
		}
		coreAnn, annValue, annLevel, err := e.isType(ann, cur, depth+1)
		if err != nil {
			return nil, nil, err
		}
		if annLevel > level {
			level = annLevel
		}
		for j, fv := range opened {
			coreAnn = core.CloseAt(coreAnn, fv, i-1-j)
		}
		fields = append(fields, core.RecordTypeField{Label: f.Label, Ann: coreAnn})
		fv := ast.NewFreeVar(f.Binder)
		cur = cur.ExtendType(fv, annValue)
		opened = append(opened, fv)
	}
	return &core.RecordType{TermSpan: t.TermSpan, Fields: fields}, &nbe.VUniverse{Level: level}, nil
}

func (e *Elaborator) inferRecordIntro(t *raw.RecordIntro, ctx *Context, depth int) (core.Term, nbe.Value, error) {
	fields := make([]core.RecordIntroField, 0, len(t.Fields))
	typeFields := make([]core.RecordTypeField, 0, len(t.Fields))
	for _, f := range t.Fields {
		c, ty, err := e.infer(f.Term, ctx, depth+1)
		if err != nil {
			if isAmbiguous(err) {
				return nil, nil, &AmbiguousRecordIntro{Span: t.Span(), FieldSpan: f.Term.Span()}
			}
			return nil, nil, err
		}
		tyCore, err := e.quoteValue(ty, f.Term.Span())
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, core.RecordIntroField{Label: f.Label, Term: c})
		typeFields = append(typeFields, core.RecordTypeField{Label: f.Label, Ann: tyCore})
	}
	recordType, err := e.eval(&core.RecordType{TermSpan: t.TermSpan, Fields: typeFields}, ctx, t.Span())
	if err != nil {
		return nil, nil, err
	}
	return &core.RecordIntro{TermSpan: t.TermSpan, Fields: fields}, recordType, nil
}

func (e *Elaborator) inferProj(t *raw.RecordProj, ctx *Context, depth int) (core.Term, nbe.Value, error) {
	expr, exprType, err := e.infer(t.Expr, ctx, depth+1)
	if err != nil {
		return nil, nil, err
	}
	exprValue, err := e.eval(expr, ctx, t.Expr.Span())
	if err != nil {
		return nil, nil, err
	}
	// Walk the telescope. Earlier fields' self-references are resolved by
	// projecting them out of the expression itself.
	cur := exprType
	for {
		rt, ok := cur.(*nbe.VRecordType)
		if !ok {
			return nil, nil, &NoFieldInType{
				LabelSpan: t.LabelSpan,
				ExprSpan:  t.Expr.Span(),
				Label:     t.Label,
				Type:      e.render(exprType),
			}
		}
		if rt.Label == t.Label {
			return &core.RecordProj{TermSpan: t.TermSpan, Expr: expr, Label: t.Label}, rt.Ann, nil
		}
		fieldValue, err := nbe.Proj(exprValue, rt.Label)
		if err != nil {
			return nil, nil, e.wrapEval(err, t.Span())
		}
		cur, err = rt.Rest.Apply(fieldValue)
		if err != nil {
			return nil, nil, e.wrapEval(err, t.Span())
		}
	}
}

func (e *Elaborator) checkRecordIntro(t *raw.RecordIntro, expected nbe.Value, ctx *Context, depth int) (core.Term, error) {
	fields := make([]core.RecordIntroField, 0, len(t.Fields))
	cur := expected
	i := 0
	for {
		switch rt := cur.(type) {
		case *nbe.VRecordType:
			if i >= len(t.Fields) {
				return nil, &RecordSizeMismatch{
					Span:          t.Span(),
					FoundCount:    len(t.Fields),
					ExpectedCount: i + e.teleLen(cur),
					Expected:      e.render(expected),
				}
			}
			f := t.Fields[i]
			if f.Label != rt.Label {
				return nil, &LabelMismatch{Span: f.LabelSpan, Found: f.Label, Expected: rt.Label}
			}
			c, err := e.check(f.Term, rt.Ann, ctx, depth+1)
			if err != nil {
				return nil, err
			}
			value, err := e.eval(c, ctx, f.Term.Span())
			if err != nil {
				return nil, err
			}
			cur, err = rt.Rest.Apply(value)
			if err != nil {
				return nil, e.wrapEval(err, t.Span())
			}
			fields = append(fields, core.RecordIntroField{Label: f.Label, Term: c})
			i++

		case *nbe.VRecordTypeEmpty:
			if i < len(t.Fields) {
				return nil, &RecordSizeMismatch{
					Span:          t.Span(),
					FoundCount:    len(t.Fields),
					ExpectedCount: i,
					Expected:      e.render(expected),
				}
			}
			return &core.RecordIntro{TermSpan: t.TermSpan, Fields: fields}, nil

		default:
			return nil, &Internal{Err: &Unimplemented{Span: t.Span(), Message: "record telescope did not resume to a record type"}}
		}
	}
}

// teleLen counts the remaining fields of a record type telescope by
// resuming it with fresh neutrals.
func (e *Elaborator) teleLen(v nbe.Value) int {
	n := 0
	for {
		rt, ok := v.(*nbe.VRecordType)
		if !ok {
			return n
		}
		n++
		_, fresh := nbe.FreshNeutral(string(rt.Label))
		next, err := rt.Rest.Apply(fresh)
		if err != nil {
			return n
		}
		v = next
	}
}

// arrayType builds the type value `Array n elem`.
func (e *Elaborator) arrayType(n uint64, elem nbe.Value) nbe.Value {
	length := &nbe.VLit{Val: core.LitVal{Kind: core.LitU64, Uint: n}}
	return &nbe.VNeutral{N: &nbe.NApp{
		Fn:  &nbe.NApp{Fn: &nbe.NVar{Var: e.base.ArrayVar()}, Arg: length},
		Arg: elem,
	}}
}

// matchArrayType destructures an expected value of the shape `Array n T`.
func (e *Elaborator) matchArrayType(expected nbe.Value) (length, elem nbe.Value, ok bool) {
	neutral, ok := expected.(*nbe.VNeutral)
	if !ok {
		return nil, nil, false
	}
	outer, ok := neutral.N.(*nbe.NApp)
	if !ok {
		return nil, nil, false
	}
	inner, ok := outer.Fn.(*nbe.NApp)
	if !ok {
		return nil, nil, false
	}
	head, ok := inner.Fn.(*nbe.NVar)
	if !ok || !head.Var.Equal(e.base.ArrayVar()) {
		return nil, nil, false
	}
	return inner.Arg, outer.Arg, true
}

// subtype checks cumulativity at universes and falls back to definitional
// equality everywhere else: a term of `Type^n` checks against `Type^m`
// whenever n <= m.
func (e *Elaborator) subtype(found, expected nbe.Value) (bool, error) {
	if fu, ok := found.(*nbe.VUniverse); ok {
		if eu, ok := expected.(*nbe.VUniverse); ok {
			return fu.Level <= eu.Level, nil
		}
	}
	return nbe.Convertible(found, expected)
}

func (e *Elaborator) convertible(a, b nbe.Value, span source.Span) (bool, error) {
	same, err := nbe.Convertible(a, b)
	if err != nil {
		return false, e.wrapEval(err, span)
	}
	return same, nil
}

func (e *Elaborator) eval(t core.Term, ctx *Context, span source.Span) (nbe.Value, error) {
	v, err := nbe.Eval(t, ctx.Env())
	if err != nil {
		return nil, e.wrapEval(err, span)
	}
	return v, nil
}

func (e *Elaborator) quoteValue(v nbe.Value, span source.Span) (core.Term, error) {
	t, err := nbe.Quote(v)
	if err != nil {
		return nil, e.wrapEval(err, span)
	}
	return t, nil
}

// render prints a type value for a diagnostic message.
func (e *Elaborator) render(v nbe.Value) string {
	t, err := nbe.Quote(v)
	if err != nil {
		return "?"
	}
	return prettyprinter.Core(t)
}

// wrapEval classifies a normalization failure: the depth guard and an
// unmatched case scrutinee are user-facing errors, everything else is an
// elaborator bug.
func (e *Elaborator) wrapEval(err error, span source.Span) error {
	var n *nbe.Error
	if errors.As(err, &n) {
		s := n.Span
		if s.IsZero() {
			s = span
		}
		switch {
		case n.TooDeep:
			return &TooDeep{Span: s}
		case n.NoMatch:
			return &UnmatchedCase{Span: s}
		case n.BoundVar:
			return &Internal{Err: &UnexpectedBoundVar{Span: s, Index: n.Index}}
		default:
			return &Internal{Err: &Unimplemented{Span: s, Message: n.Message}}
		}
	}
	return &Internal{Err: &Unimplemented{Span: span, Message: err.Error()}}
}

// isAmbiguous reports whether an error means "type annotations needed"
// rather than a definite failure.
func isAmbiguous(err error) bool {
	switch err.(type) {
	case *AmbiguousIntLiteral, *AmbiguousFloatLiteral, *AmbiguousArrayLiteral,
		*AmbiguousEmptyCase, *AmbiguousRecordIntro, *UnableToElaborateHole,
		*FunctionParamNeedsAnnotation:
		return true
	default:
		return false
	}
}
