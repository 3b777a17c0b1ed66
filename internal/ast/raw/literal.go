package raw

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/source"
)

// Literal is an untyped literal carried over from the surface syntax.
type Literal interface {
	rawLiteral()
	Span() source.Span
	// Kind names the literal's surface kind for diagnostics: "string",
	// "character", "numeric" or "floating point".
	Kind() string
}

type StringLit struct {
	LitSpan source.Span
	Value   string
}

func (*StringLit) rawLiteral()          {}
func (l *StringLit) Span() source.Span { return l.LitSpan }
func (l *StringLit) Kind() string      { return "string" }

type CharLit struct {
	LitSpan source.Span
	Value   rune
}

func (*CharLit) rawLiteral()          {}
func (l *CharLit) Span() source.Span { return l.LitSpan }
func (l *CharLit) Kind() string      { return "character" }

type IntLit struct {
	LitSpan source.Span
	Value   uint64
	Format  ast.IntFormat
}

func (*IntLit) rawLiteral()          {}
func (l *IntLit) Span() source.Span { return l.LitSpan }
func (l *IntLit) Kind() string      { return "numeric" }

type FloatLit struct {
	LitSpan source.Span
	Value   float64
	Format  ast.FloatFormat
}

func (*FloatLit) rawLiteral()          {}
func (l *FloatLit) Span() source.Span { return l.LitSpan }
func (l *FloatLit) Kind() string      { return "floating point" }
