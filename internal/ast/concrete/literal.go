package concrete

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/source"
)

// Literal is a surface literal. Numeric literals remember the format they
// were written in for faithful redisplay; the format never affects checking.
type Literal interface {
	literalNode()
	Span() source.Span
}

// StringLit is a string literal.
//
//	"hello"
type StringLit struct {
	LitSpan source.Span
	Value   string
}

func (*StringLit) literalNode()         {}
func (l *StringLit) Span() source.Span { return l.LitSpan }

// CharLit is a character literal.
//
//	'c'
type CharLit struct {
	LitSpan source.Span
	Value   rune
}

func (*CharLit) literalNode()         {}
func (l *CharLit) Span() source.Span { return l.LitSpan }

// IntLit is an integer literal.
//
//	42, 0xFF, 0b1010
type IntLit struct {
	LitSpan source.Span
	Value   uint64
	Format  ast.IntFormat
}

func (*IntLit) literalNode()         {}
func (l *IntLit) Span() source.Span { return l.LitSpan }

// FloatLit is a floating point literal.
//
//	3.14, 1e10
type FloatLit struct {
	LitSpan source.Span
	Value   float64
	Format  ast.FloatFormat
}

func (*FloatLit) literalNode()         {}
func (l *FloatLit) Span() source.Span { return l.LitSpan }
