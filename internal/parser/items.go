package parser

import (
	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/token"
)

// ParseModule parses a whole source file as a sequence of top-level items.
func (p *Parser) ParseModule(file string) *concrete.Module {
	items := p.parseItems(token.EOF)
	if !p.curIs(token.EOF) {
		p.errorf(p.cur().Span, "expected an item, found %s", describeToken(p.cur()))
	}
	return &concrete.Module{File: file, Items: items}
}

// parseItems parses items until the stop token. Items are terminated with
// semicolons; the final semicolon before the stop token is optional.
//
//	foo : some-type;
//	foo x (y : some-type) = some-body;
func (p *Parser) parseItems(stop token.TokenType) []concrete.Item {
	var items []concrete.Item
	for !p.curIs(stop) && !p.curIs(token.EOF) {
		item := p.parseItem(stop)
		items = append(items, item)
		if p.curIs(token.SEMICOLON) {
			p.next()
		} else if !p.curIs(stop) && !p.curIs(token.EOF) {
			p.errorf(p.cur().Span, "expected `;` after item, found %s", describeToken(p.cur()))
			p.skipTo(token.SEMICOLON, stop)
			if p.curIs(token.SEMICOLON) {
				p.next()
			}
		}
	}
	return items
}

func (p *Parser) parseItem(stop token.TokenType) concrete.Item {
	start := p.cur().Span
	name, ok := p.expect(token.IDENT)
	if !ok {
		p.skipTo(token.SEMICOLON, stop)
		return &concrete.ItemError{ItemSpan: start.Cover(p.cur().Span)}
	}

	if p.curIs(token.COLON) {
		p.next()
		ann := p.parseTerm()
		return &concrete.Declaration{
			NameSpan: name.Span,
			Name:     name.Lexeme,
			Ann:      ann,
		}
	}

	// Definition: optional parameters, optional return annotation, `=` body.
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
				p.skipTo(token.EQUALS, token.SEMICOLON, stop)
			}
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
		p.skipTo(token.SEMICOLON, stop)
		return &concrete.ItemError{ItemSpan: start.Cover(p.cur().Span)}
	}
	body := p.parseTerm()
	return &concrete.Definition{
		NameSpan:  name.Span,
		Name:      name.Lexeme,
		Params:    params,
		ReturnAnn: returnAnn,
		Body:      body,
	}
}
