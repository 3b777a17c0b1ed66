package parser

import (
	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/token"
)

// parseTerm parses annotations and where suffixes, the loosest-binding
// forms.
//
//	e : t
//	e where { items }
func (p *Parser) parseTerm() concrete.Term {
	if !p.guard(p.cur().Span) {
		p.skipTo(token.EOF)
		return p.errorTerm()
	}
	defer p.unguard()

	expr := p.parseArrow()

	for {
		switch {
		case p.curIs(token.COLON):
			p.next()
			ty := p.parseArrow()
			expr = &concrete.Ann{Expr: expr, Type: ty}
		case p.curIs(token.WHERE):
			p.next()
			if _, ok := p.expect(token.LBRACE); !ok {
				return expr
			}
			items := p.parseItems(token.RBRACE)
			end := p.cur().Span.End
			p.expect(token.RBRACE)
			expr = &concrete.Where{Expr: expr, Items: items, End: end}
		default:
			return expr
		}
	}
}

// parseArrow parses function types.
//
//	(x : t1) -> t2
//	t1 -> t2
func (p *Parser) parseArrow() concrete.Term {
	if !p.guard(p.cur().Span) {
		p.skipTo(token.EOF)
		return p.errorTerm()
	}
	defer p.unguard()

	if p.curIs(token.LPAREN) {
		// Could be a dependent function type; try the parameter-group shape
		// and fall back to an ordinary term when it does not pan out.
		mark := p.save()
		start := p.cur().Span.Start
		if params := p.tryFunTypeParams(); params != nil && p.curIs(token.ARROW) {
			p.next()
			body := p.parseArrow()
			return &concrete.FunType{Start: start, Params: params, Body: body}
		}
		p.restore(mark)
	}

	expr := p.parseApp()
	if p.curIs(token.ARROW) {
		p.next()
		body := p.parseArrow()
		return &concrete.FunArrow{Param: expr, Body: body}
	}
	return expr
}

// tryFunTypeParams parses one or more annotated parameter groups.
// It returns nil without reporting errors when the shape does not match.
func (p *Parser) tryFunTypeParams() []concrete.ParamGroup {
	var groups []concrete.ParamGroup
	for p.curIs(token.LPAREN) {
		mark := p.save()
		p.next()
		var names []concrete.ParamName
		for p.curIs(token.IDENT) || p.curIs(token.HOLE) {
			tok := p.next()
			names = append(names, concrete.ParamName{NameSpan: tok.Span, Name: holeName(tok)})
		}
		if len(names) == 0 || !p.curIs(token.COLON) {
			p.restore(mark)
			break
		}
		p.next()
		ann := p.parseTerm()
		if !p.curIs(token.RPAREN) {
			p.restore(mark)
			break
		}
		p.next()
		groups = append(groups, concrete.ParamGroup{Names: names, Ann: ann})
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}

func holeName(tok token.Token) string {
	if tok.Type == token.HOLE {
		return "_"
	}
	return tok.Lexeme
}

// parseApp parses an application spine: a head atom followed by argument
// atoms.
func (p *Parser) parseApp() concrete.Term {
	fn := p.parseProj()
	var args []concrete.Term
	for p.startsAtom() {
		args = append(args, p.parseProj())
	}
	if len(args) == 0 {
		return fn
	}
	return &concrete.FunApp{Fn: fn, Args: args}
}

// startsAtom reports whether the current token can begin an atomic term.
func (p *Parser) startsAtom() bool {
	switch p.cur().Type {
	case token.LPAREN, token.LBRACKET,
		token.IDENT, token.HOLE, token.TYPE,
		token.INT, token.FLOAT, token.STRING, token.CHAR,
		token.LAMBDA, token.LET, token.IF, token.CASE,
		token.RECORD, token.RECORDTYPE, token.IMPORT:
		return true
	default:
		return false
	}
}

// parseProj parses an atom followed by any number of field projections.
//
//	e.l
//	e.l^1
func (p *Parser) parseProj() concrete.Term {
	expr := p.parseAtom()
	for p.curIs(token.DOT) {
		p.next()
		label, ok := p.expect(token.IDENT)
		if !ok {
			return &concrete.Error{TermSpan: expr.Span().Cover(p.cur().Span)}
		}
		shift := p.parseShift()
		expr = &concrete.RecordProj{
			TermSpan:  expr.Span().Cover(label.Span),
			Expr:      expr,
			LabelSpan: label.Span,
			Label:     label.Lexeme,
			Shift:     shift,
		}
	}
	return expr
}

// parseShift parses an optional ^n suffix.
func (p *Parser) parseShift() *uint32 {
	if !p.curIs(token.CARET) || !p.peekIs(token.INT) {
		return nil
	}
	p.next()
	tok := p.next()
	v, _, err := parseIntLexeme(tok.Lexeme)
	if err != nil || v > 0xFFFFFFFF {
		p.errorf(tok.Span, "invalid shift amount `%s`", tok.Lexeme)
		return nil
	}
	shift := uint32(v)
	return &shift
}

func (p *Parser) parseAtom() concrete.Term {
	if !p.guard(p.cur().Span) {
		p.skipTo(token.EOF)
		return p.errorTerm()
	}
	defer p.unguard()

	switch p.cur().Type {
	case token.LPAREN:
		open := p.next()
		inner := p.parseTerm()
		closing, ok := p.expect(token.RPAREN)
		span := open.Span.Cover(inner.Span())
		if ok {
			span = span.Cover(closing.Span)
		}
		return &concrete.Parens{TermSpan: span, Inner: inner}

	case token.TYPE:
		tok := p.next()
		span := tok.Span
		var level *uint32
		if lv := p.parseShift(); lv != nil {
			level = lv
			span = span.Cover(p.tokens[p.pos-1].Span)
		}
		return &concrete.Universe{TermSpan: span, Level: level}

	case token.HOLE:
		tok := p.next()
		return &concrete.Hole{TermSpan: tok.Span}

	case token.IDENT:
		tok := p.next()
		span := tok.Span
		shift := p.parseShift()
		if shift != nil {
			span = span.Cover(p.tokens[p.pos-1].Span)
		}
		return &concrete.Name{TermSpan: span, Name: tok.Lexeme, Shift: shift}

	case token.IMPORT:
		kw := p.next()
		path, ok := p.expect(token.STRING)
		if !ok {
			return &concrete.Error{TermSpan: kw.Span.Cover(p.cur().Span)}
		}
		return &concrete.Import{
			TermSpan: kw.Span.Cover(path.Span),
			PathSpan: path.Span,
			Path:     path.Lexeme,
		}

	case token.INT:
		tok := p.next()
		value, format, err := parseIntLexeme(tok.Lexeme)
		if err != nil {
			p.errorf(tok.Span, "malformed integer literal `%s`", tok.Lexeme)
			return &concrete.Error{TermSpan: tok.Span}
		}
		return &concrete.Lit{Literal: &concrete.IntLit{LitSpan: tok.Span, Value: value, Format: format}}

	case token.FLOAT:
		tok := p.next()
		value, format, err := parseFloatLexeme(tok.Lexeme)
		if err != nil {
			p.errorf(tok.Span, "malformed float literal `%s`", tok.Lexeme)
			return &concrete.Error{TermSpan: tok.Span}
		}
		return &concrete.Lit{Literal: &concrete.FloatLit{LitSpan: tok.Span, Value: value, Format: format}}

	case token.STRING:
		tok := p.next()
		return &concrete.Lit{Literal: &concrete.StringLit{LitSpan: tok.Span, Value: tok.Lexeme}}

	case token.CHAR:
		tok := p.next()
		value := rune(0)
		for _, r := range tok.Lexeme {
			value = r
			break
		}
		return &concrete.Lit{Literal: &concrete.CharLit{LitSpan: tok.Span, Value: value}}

	case token.LBRACKET:
		open := p.next()
		var elems []concrete.Term
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			elems = append(elems, p.parseTerm())
			if !p.curIs(token.COMMA) {
				break
			}
			p.next()
		}
		closing, _ := p.expect(token.RBRACKET)
		return &concrete.ArrayIntro{
			TermSpan: open.Span.Cover(closing.Span),
			Elems:    elems,
		}

	case token.LAMBDA:
		return p.parseFunIntro()

	case token.LET:
		kw := p.next()
		items := p.parseItems(token.IN)
		p.expect(token.IN)
		body := p.parseTerm()
		return &concrete.Let{Start: kw.Span.Start, Items: items, Body: body}

	case token.IF:
		kw := p.next()
		cond := p.parseTerm()
		p.expect(token.THEN)
		then := p.parseTerm()
		p.expect(token.ELSE)
		els := p.parseTerm()
		return &concrete.If{Start: kw.Span.Start, Cond: cond, Then: then, Else: els}

	case token.CASE:
		return p.parseCase()

	case token.RECORDTYPE:
		return p.parseRecordType()

	case token.RECORD:
		return p.parseRecordIntro()

	default:
		tok := p.cur()
		p.errorf(tok.Span, "expected a term, found %s", describeToken(tok))
		p.next()
		return &concrete.Error{TermSpan: tok.Span}
	}
}

// parseFunIntro parses a lambda.
//
//	\x => t
//	\(x : t1) y (z : t2) => t3
func (p *Parser) parseFunIntro() concrete.Term {
	kw := p.next() // the backslash
	var params []concrete.ParamGroup
	for {
		if p.curIs(token.IDENT) || p.curIs(token.HOLE) {
			tok := p.next()
			params = append(params, concrete.ParamGroup{
				Names: []concrete.ParamName{{NameSpan: tok.Span, Name: holeName(tok)}},
			})
			continue
		}
		if p.curIs(token.LPAREN) {
			mark := p.save()
			p.next()
			var names []concrete.ParamName
			for p.curIs(token.IDENT) || p.curIs(token.HOLE) {
				tok := p.next()
				names = append(names, concrete.ParamName{NameSpan: tok.Span, Name: holeName(tok)})
			}
			if len(names) == 0 || !p.curIs(token.COLON) {
				p.restore(mark)
				break
			}
			p.next()
			ann := p.parseTerm()
			if _, ok := p.expect(token.RPAREN); !ok {
				p.skipTo(token.DARROW, token.EOF)
			}
			params = append(params, concrete.ParamGroup{Names: names, Ann: ann})
			continue
		}
		break
	}
	if len(params) == 0 {
		p.errorf(p.cur().Span, "expected at least one parameter after `\\`")
	}
	p.expect(token.DARROW)
	body := p.parseTerm()
	return &concrete.FunIntro{Start: kw.Span.Start, Params: params, Body: body}
}

// parseCase parses a case expression.
//
//	case t { pat => t; .. }
func (p *Parser) parseCase() concrete.Term {
	kw := p.next()
	scrut := p.parseTerm()
	if _, ok := p.expect(token.LBRACE); !ok {
		return &concrete.Error{TermSpan: kw.Span.Cover(p.cur().Span)}
	}
	var branches []concrete.CaseBranch
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		pat := p.parsePattern()
		p.expect(token.DARROW)
		body := p.parseTerm()
		branches = append(branches, concrete.CaseBranch{Pattern: pat, Body: body})
		if !p.curIs(token.SEMICOLON) {
			break
		}
		p.next()
	}
	closing, _ := p.expect(token.RBRACE)
	return &concrete.Case{
		TermSpan: kw.Span.Cover(closing.Span),
		Scrut:    scrut,
		Branches: branches,
	}
}

// parseRecordType parses a record type.
//
//	Record { x : t1, .. }
func (p *Parser) parseRecordType() concrete.Term {
	kw := p.next()
	if _, ok := p.expect(token.LBRACE); !ok {
		return &concrete.Error{TermSpan: kw.Span.Cover(p.cur().Span)}
	}
	var fields []concrete.RecordTypeField
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		label, ok := p.expect(token.IDENT)
		if !ok {
			p.skipTo(token.RBRACE, token.EOF)
			break
		}
		if _, ok := p.expect(token.COLON); !ok {
			p.skipTo(token.RBRACE, token.EOF)
			break
		}
		ann := p.parseTerm()
		fields = append(fields, concrete.RecordTypeField{
			LabelSpan: label.Span,
			Label:     label.Lexeme,
			Ann:       ann,
		})
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	closing, _ := p.expect(token.RBRACE)
	return &concrete.RecordType{
		TermSpan: kw.Span.Cover(closing.Span),
		Fields:   fields,
	}
}

// parseRecordIntro parses a record introduction.
//
//	record { x }
//	record { x = t1, id (a : Type) (x : a) : a = x }
func (p *Parser) parseRecordIntro() concrete.Term {
	kw := p.next()
	if _, ok := p.expect(token.LBRACE); !ok {
		return &concrete.Error{TermSpan: kw.Span.Cover(p.cur().Span)}
	}
	var fields []concrete.RecordField
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		label, ok := p.expect(token.IDENT)
		if !ok {
			p.skipTo(token.RBRACE, token.EOF)
			break
		}
		shift := p.parseShift()
		if p.curIs(token.COMMA) || p.curIs(token.RBRACE) {
			fields = append(fields, &concrete.RecordFieldPunned{
				LabelSpan: label.Span,
				Label:     label.Lexeme,
				Shift:     shift,
			})
		} else {
			var params []concrete.ParamGroup
			for {
				if p.curIs(token.IDENT) || p.curIs(token.HOLE) {
					tok := p.next()
					params = append(params, concrete.ParamGroup{
						Names: []concrete.ParamName{{NameSpan: tok.Span, Name: holeName(tok)}},
					})
					continue
				}
				if p.curIs(token.LPAREN) {
					mark := p.save()
					p.next()
					var names []concrete.ParamName
					for p.curIs(token.IDENT) || p.curIs(token.HOLE) {
						tok := p.next()
						names = append(names, concrete.ParamName{NameSpan: tok.Span, Name: holeName(tok)})
					}
					if len(names) == 0 || !p.curIs(token.COLON) {
						p.restore(mark)
						break
					}
					p.next()
					ann := p.parseTerm()
					p.expect(token.RPAREN)
					params = append(params, concrete.ParamGroup{Names: names, Ann: ann})
					continue
				}
				break
			}
			var returnAnn concrete.Term
			if p.curIs(token.COLON) {
				p.next()
				returnAnn = p.parseArrow()
			}
			if _, ok := p.expect(token.EQUALS); !ok {
				p.skipTo(token.COMMA, token.RBRACE, token.EOF)
				if p.curIs(token.COMMA) {
					p.next()
				}
				continue
			}
			term := p.parseTerm()
			fields = append(fields, &concrete.RecordFieldExplicit{
				LabelSpan: label.Span,
				Label:     label.Lexeme,
				Params:    params,
				ReturnAnn: returnAnn,
				Term:      term,
			})
		}
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	closing, _ := p.expect(token.RBRACE)
	return &concrete.RecordIntro{
		TermSpan: kw.Span.Cover(closing.Span),
		Fields:   fields,
	}
}

// parsePattern parses a case pattern, loosest form first.
//
//	p : t
func (p *Parser) parsePattern() concrete.Pattern {
	pat := p.parsePatternAtom()
	if p.curIs(token.COLON) {
		p.next()
		ty := p.parseArrow()
		return &concrete.PatternAnn{Pattern: pat, Type: ty}
	}
	return pat
}

func (p *Parser) parsePatternAtom() concrete.Pattern {
	switch p.cur().Type {
	case token.LPAREN:
		open := p.next()
		inner := p.parsePattern()
		closing, _ := p.expect(token.RPAREN)
		return &concrete.PatternParens{
			PatSpan: open.Span.Cover(closing.Span),
			Inner:   inner,
		}
	case token.IDENT:
		tok := p.next()
		span := tok.Span
		shift := p.parseShift()
		if shift != nil {
			span = span.Cover(p.tokens[p.pos-1].Span)
		}
		return &concrete.PatternName{PatSpan: span, Name: tok.Lexeme, Shift: shift}
	case token.HOLE:
		tok := p.next()
		return &concrete.PatternName{PatSpan: tok.Span, Name: "_"}
	case token.INT:
		tok := p.next()
		value, format, err := parseIntLexeme(tok.Lexeme)
		if err != nil {
			p.errorf(tok.Span, "malformed integer literal `%s`", tok.Lexeme)
			return &concrete.PatternError{PatSpan: tok.Span}
		}
		return &concrete.PatternLit{Literal: &concrete.IntLit{LitSpan: tok.Span, Value: value, Format: format}}
	case token.FLOAT:
		tok := p.next()
		value, format, err := parseFloatLexeme(tok.Lexeme)
		if err != nil {
			p.errorf(tok.Span, "malformed float literal `%s`", tok.Lexeme)
			return &concrete.PatternError{PatSpan: tok.Span}
		}
		return &concrete.PatternLit{Literal: &concrete.FloatLit{LitSpan: tok.Span, Value: value, Format: format}}
	case token.STRING:
		tok := p.next()
		return &concrete.PatternLit{Literal: &concrete.StringLit{LitSpan: tok.Span, Value: tok.Lexeme}}
	case token.CHAR:
		tok := p.next()
		value := rune(0)
		for _, r := range tok.Lexeme {
			value = r
			break
		}
		return &concrete.PatternLit{Literal: &concrete.CharLit{LitSpan: tok.Span, Value: value}}
	default:
		tok := p.cur()
		p.errorf(tok.Span, "expected a pattern, found %s", describeToken(tok))
		p.next()
		return &concrete.PatternError{PatSpan: tok.Span}
	}
}
