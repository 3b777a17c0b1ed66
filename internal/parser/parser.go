// Package parser builds the concrete syntax tree from the token stream.
// It is a recursive-descent parser with error recovery: a region that fails
// to parse becomes a concrete.Error node and parsing continues at the next
// item boundary, so one malformed item does not hide diagnostics for the
// rest of the file.
package parser

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/lexer"
	"github.com/lumen-lang/lumen/internal/source"
	"github.com/lumen-lang/lumen/internal/token"
)

// MaxRecursionDepth bounds term nesting so that pathological input fails
// with a diagnostic instead of exhausting the call stack.
const MaxRecursionDepth = 512

type Parser struct {
	tokens []token.Token
	pos    int
	errors []diagnostics.Diagnostic
	depth  int
}

// New lexes the whole input and positions the parser at the first token.
func New(input string) *Parser {
	l := lexer.New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return &Parser{tokens: tokens}
}

// Errors returns the diagnostics collected during parsing.
func (p *Parser) Errors() []diagnostics.Diagnostic { return p.errors }

// ParseTerm parses the whole input as a single term. Trailing input after
// the term is an error.
func ParseTerm(input string) (concrete.Term, []diagnostics.Diagnostic) {
	p := New(input)
	term := p.parseTerm()
	if !p.curIs(token.EOF) {
		p.errorf(p.cur().Span, "unexpected input after term")
	}
	return term, p.Errors()
}

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) next() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(typ token.TokenType) bool  { return p.cur().Type == typ }
func (p *Parser) peekIs(typ token.TokenType) bool { return p.peek().Type == typ }

// expect consumes a token of the given type or reports ErrP001.
func (p *Parser) expect(typ token.TokenType) (token.Token, bool) {
	if p.curIs(typ) {
		return p.next(), true
	}
	p.errorf(p.cur().Span, "expected %s, found %s", typ, describeToken(p.cur()))
	return p.cur(), false
}

func (p *Parser) errorf(span source.Span, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.New(
		diagnostics.ErrP001,
		fmt.Sprintf(format, args...),
		span,
		"unexpected input here",
	))
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return fmt.Sprintf("identifier `%s`", tok.Lexeme)
	default:
		return fmt.Sprintf("`%s`", tok.Lexeme)
	}
}

// save/restore implement bounded backtracking for the places where a single
// token of lookahead is not enough (dependent function types vs. parens).
func (p *Parser) save() int        { return p.pos }
func (p *Parser) restore(mark int) { p.pos = mark }

// skipTo advances past tokens until one of the given types (or EOF) is
// current. Used for error recovery at item boundaries.
func (p *Parser) skipTo(types ...token.TokenType) {
	for !p.curIs(token.EOF) {
		for _, typ := range types {
			if p.curIs(typ) {
				return
			}
		}
		p.next()
	}
}

func (p *Parser) guard(span source.Span) bool {
	p.depth++
	if p.depth > MaxRecursionDepth {
		p.errors = append(p.errors, diagnostics.New(
			diagnostics.ErrP001,
			"term nesting too deep",
			span,
			"this term is nested too deeply to parse",
		))
		return false
	}
	return true
}

func (p *Parser) unguard() { p.depth-- }

// errorTerm consumes nothing and produces an Error node at the current
// token.
func (p *Parser) errorTerm() concrete.Term {
	return &concrete.Error{TermSpan: p.cur().Span}
}

func parseIntLexeme(lexeme string) (uint64, ast.IntFormat, error) {
	return lexer.ParseInt(lexeme)
}

func parseFloatLexeme(lexeme string) (float64, ast.FloatFormat, error) {
	return lexer.ParseFloat(lexeme)
}
