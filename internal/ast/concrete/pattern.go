package concrete

import "github.com/lumen-lang/lumen/internal/source"

// Pattern is a surface pattern in a case branch.
type Pattern interface {
	patternNode()
	Span() source.Span
}

// PatternParens is a parenthesized pattern.
//
//	(p)
type PatternParens struct {
	PatSpan source.Span
	Inner   Pattern
}

func (*PatternParens) patternNode()         {}
func (p *PatternParens) Span() source.Span { return p.PatSpan }

// PatternAnn is a pattern annotated with a type.
//
//	p : t
type PatternAnn struct {
	Pattern Pattern
	Type    Term
}

func (*PatternAnn) patternNode() {}
func (p *PatternAnn) Span() source.Span {
	return p.Pattern.Span().Cover(p.Type.Span())
}

// PatternLit matches a literal by value.
type PatternLit struct {
	Literal Literal
}

func (*PatternLit) patternNode()         {}
func (p *PatternLit) Span() source.Span { return p.Literal.Span() }

// PatternName either introduces a bound variable or, when the name (after
// applying the shift) denotes an in-scope constant, matches by structural
// equality with it.
//
//	x
//	true
//	Some^1
type PatternName struct {
	PatSpan source.Span
	Name    string
	Shift   *uint32
}

func (*PatternName) patternNode()         {}
func (p *PatternName) Span() source.Span { return p.PatSpan }

// PatternError marks a pattern that could not be correctly parsed.
type PatternError struct {
	PatSpan source.Span
}

func (*PatternError) patternNode()         {}
func (p *PatternError) Span() source.Span { return p.PatSpan }
