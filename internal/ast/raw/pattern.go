package raw

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/source"
)

// Pattern is a desugared case pattern. Name resolution has already decided
// whether a surface name binds or matches an in-scope constant.
type Pattern interface {
	rawPattern()
	Span() source.Span
}

// PatternAnn is a pattern annotated with a type.
type PatternAnn struct {
	Pattern Pattern
	Type    Term
}

func (*PatternAnn) rawPattern() {}
func (p *PatternAnn) Span() source.Span {
	return p.Pattern.Span().Cover(p.Type.Span())
}

// PatternLit matches a literal by value.
type PatternLit struct {
	PatSpan source.Span
	Literal Literal
}

func (*PatternLit) rawPattern()          {}
func (p *PatternLit) Span() source.Span { return p.PatSpan }

// PatternBinder introduces a fresh variable bound in the branch body as
// Bound(0).
type PatternBinder struct {
	PatSpan source.Span
	Name    string
}

func (*PatternBinder) rawPattern()          {}
func (p *PatternBinder) Span() source.Span { return p.PatSpan }

// PatternConst matches by structural equality with an in-scope constant.
type PatternConst struct {
	PatSpan source.Span
	Var     ast.FreeVar
}

func (*PatternConst) rawPattern()          {}
func (p *PatternConst) Span() source.Span { return p.PatSpan }

// Binds reports whether the pattern introduces a branch-local binder.
func Binds(p Pattern) bool {
	switch p := p.(type) {
	case *PatternBinder:
		return true
	case *PatternAnn:
		return Binds(p.Pattern)
	default:
		return false
	}
}
