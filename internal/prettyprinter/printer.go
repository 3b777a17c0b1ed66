// Package prettyprinter renders raw and core terms back to surface-like
// text. The output is used by REPL introspection commands and embedded in
// diagnostic messages; it favors readability over byte-exact round-tripping.
package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/ast/raw"
)

// Operator precedence, loosest first. A subterm printed in a context of
// higher precedence than its own gets parenthesized.
const (
	precTerm  = iota // annotations
	precArrow        // function types, right associative
	precApp          // application spines
	precAtom
)

// Core renders an elaborated term.
func Core(t core.Term) string {
	var p printer
	p.core(t, precTerm)
	return p.buf.String()
}

// Raw renders a desugared term.
func Raw(t raw.Term) string {
	var p printer
	p.raw(t, precTerm)
	return p.buf.String()
}

type printer struct {
	buf bytes.Buffer
}

func (p *printer) write(s string)                    { p.buf.WriteString(s) }
func (p *printer) writef(f string, a ...interface{}) { fmt.Fprintf(&p.buf, f, a...) }

func (p *printer) open(outer, inner int) bool {
	if inner < outer {
		p.write("(")
		return true
	}
	return false
}

func (p *printer) close(parens bool) {
	if parens {
		p.write(")")
	}
}

func (p *printer) universe(level uint32) {
	if level == 0 {
		p.write("Type")
		return
	}
	p.writef("Type^%d", level)
}

func (p *printer) binderName(name string) string {
	if name == "" {
		return "_"
	}
	return name
}

func (p *printer) core(t core.Term, prec int) {
	switch t := t.(type) {
	case *core.Universe:
		p.universe(t.Level)

	case *core.Lit:
		p.write(t.Val.String())

	case *core.Var:
		p.write(t.Var.String())

	case *core.Pi:
		parens := p.open(prec, precArrow)
		if t.Binder == "" {
			p.core(t.Ann, precApp)
		} else {
			p.writef("(%s : ", t.Binder)
			p.core(t.Ann, precTerm)
			p.write(")")
		}
		p.write(" -> ")
		p.core(t.Body, precArrow)
		p.close(parens)

	case *core.Lam:
		parens := p.open(prec, precArrow)
		p.writef("\\(%s : ", p.binderName(t.Binder))
		p.core(t.Ann, precTerm)
		p.write(") => ")
		p.core(t.Body, precArrow)
		p.close(parens)

	case *core.App:
		parens := p.open(prec, precApp)
		p.core(t.Fn, precApp)
		p.write(" ")
		p.core(t.Arg, precAtom)
		p.close(parens)

	case *core.ArrayIntro:
		p.write("[")
		for i, e := range t.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.core(e, precTerm)
		}
		p.write("]")

	case *core.RecordType:
		if len(t.Fields) == 0 {
			p.write("Record {}")
			return
		}
		p.write("Record { ")
		for i, f := range t.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.writef("%s : ", f.Label)
			p.core(f.Ann, precTerm)
		}
		p.write(" }")

	case *core.RecordIntro:
		if len(t.Fields) == 0 {
			p.write("record {}")
			return
		}
		p.write("record { ")
		for i, f := range t.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.writef("%s = ", f.Label)
			p.core(f.Term, precTerm)
		}
		p.write(" }")

	case *core.RecordProj:
		p.core(t.Expr, precAtom)
		p.writef(".%s", t.Label)

	case *core.Case:
		parens := p.open(prec, precArrow)
		p.write("case ")
		p.core(t.Scrut, precApp)
		p.write(" { ")
		for i, br := range t.Branches {
			if i > 0 {
				p.write("; ")
			}
			p.corePattern(br.Pattern)
			p.write(" => ")
			p.core(br.Body, precTerm)
		}
		p.write(" }")
		p.close(parens)

	case *core.Let:
		parens := p.open(prec, precArrow)
		p.write("let ")
		for _, item := range t.Items {
			p.writef("%s : ", item.Name)
			p.core(item.Ann, precTerm)
			p.write("; ")
			p.writef("%s = ", item.Name)
			p.core(item.Value, precTerm)
			p.write("; ")
		}
		p.write("in ")
		p.core(t.Body, precTerm)
		p.close(parens)

	default:
		p.write("?")
	}
}

func (p *printer) corePattern(pat core.Pattern) {
	switch pat := pat.(type) {
	case *core.PatternBinder:
		p.write(p.binderName(pat.Name))
	case *core.PatternLit:
		p.write(pat.Val.String())
	case *core.PatternConst:
		p.write(pat.Var.String())
	default:
		p.write("?")
	}
}

func (p *printer) raw(t raw.Term, prec int) {
	switch t := t.(type) {
	case *raw.Ann:
		parens := p.open(prec, precTerm)
		p.raw(t.Expr, precArrow)
		p.write(" : ")
		p.raw(t.Type, precTerm)
		p.close(parens)

	case *raw.Universe:
		p.universe(t.Level)

	case *raw.Lit:
		p.rawLiteral(t.Literal)

	case *raw.Hole:
		p.write("_")

	case *raw.Var:
		p.write(t.Var.String())

	case *raw.Pi:
		parens := p.open(prec, precArrow)
		if t.Binder == "" {
			p.raw(t.Ann, precApp)
		} else {
			p.writef("(%s : ", t.Binder)
			p.raw(t.Ann, precTerm)
			p.write(")")
		}
		p.write(" -> ")
		p.raw(t.Body, precArrow)
		p.close(parens)

	case *raw.Lam:
		parens := p.open(prec, precArrow)
		if t.Ann == nil {
			p.writef("\\%s => ", p.binderName(t.Binder))
		} else {
			p.writef("\\(%s : ", p.binderName(t.Binder))
			p.raw(t.Ann, precTerm)
			p.write(") => ")
		}
		p.raw(t.Body, precArrow)
		p.close(parens)

	case *raw.App:
		parens := p.open(prec, precApp)
		p.raw(t.Fn, precApp)
		p.write(" ")
		p.raw(t.Arg, precAtom)
		p.close(parens)

	case *raw.ArrayIntro:
		p.write("[")
		for i, e := range t.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.raw(e, precTerm)
		}
		p.write("]")

	case *raw.RecordType:
		if len(t.Fields) == 0 {
			p.write("Record {}")
			return
		}
		p.write("Record { ")
		for i, f := range t.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.writef("%s : ", f.Label)
			p.raw(f.Ann, precTerm)
		}
		p.write(" }")

	case *raw.RecordIntro:
		if len(t.Fields) == 0 {
			p.write("record {}")
			return
		}
		p.write("record { ")
		for i, f := range t.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.writef("%s = ", f.Label)
			p.raw(f.Term, precTerm)
		}
		p.write(" }")

	case *raw.RecordProj:
		p.raw(t.Expr, precAtom)
		p.writef(".%s", t.Label)

	case *raw.Case:
		parens := p.open(prec, precArrow)
		p.write("case ")
		p.raw(t.Scrut, precApp)
		p.write(" { ")
		for i, br := range t.Branches {
			if i > 0 {
				p.write("; ")
			}
			p.rawPattern(br.Pattern)
			p.write(" => ")
			p.raw(br.Body, precTerm)
		}
		p.write(" }")
		p.close(parens)

	case *raw.Let:
		parens := p.open(prec, precArrow)
		p.write("let ")
		for _, item := range t.Items {
			switch item := item.(type) {
			case *raw.Declaration:
				p.writef("%s : ", item.Name)
				p.raw(item.Ann, precTerm)
			case *raw.Definition:
				p.writef("%s = ", item.Name)
				p.raw(item.Body, precTerm)
			}
			p.write("; ")
		}
		p.write("in ")
		p.raw(t.Body, precTerm)
		p.close(parens)

	default:
		p.write("?")
	}
}

func (p *printer) rawPattern(pat raw.Pattern) {
	switch pat := pat.(type) {
	case *raw.PatternAnn:
		p.write("(")
		p.rawPattern(pat.Pattern)
		p.write(" : ")
		p.raw(pat.Type, precTerm)
		p.write(")")
	case *raw.PatternLit:
		p.rawLiteral(pat.Literal)
	case *raw.PatternBinder:
		p.write(p.binderName(pat.Name))
	case *raw.PatternConst:
		p.write(pat.Var.String())
	default:
		p.write("?")
	}
}

func (p *printer) rawLiteral(l raw.Literal) {
	switch l := l.(type) {
	case *raw.StringLit:
		p.writef("%q", l.Value)
	case *raw.CharLit:
		p.writef("%q", l.Value)
	case *raw.IntLit:
		switch l.Format {
		case ast.IntFormatHex:
			p.writef("0x%X", l.Value)
		case ast.IntFormatBin:
			p.writef("0b%b", l.Value)
		default:
			p.writef("%d", l.Value)
		}
	case *raw.FloatLit:
		p.writef("%g", l.Value)
	default:
		p.write("?")
	}
}
