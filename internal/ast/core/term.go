// Package core defines the fully elaborated internal term tree. Core terms
// are unambiguous: every literal carries a concrete primitive type, every
// binder is explicit, every universe has an explicit level, and holes no
// longer exist — elaboration either resolved them or failed.
package core

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/source"
)

// Term is the interface implemented by all core terms.
type Term interface {
	coreTerm()
	Span() source.Span
}

// Universe is a universe at an explicit level.
type Universe struct {
	TermSpan source.Span
	Level    uint32
}

func (*Universe) coreTerm()            {}
func (t *Universe) Span() source.Span { return t.TermSpan }

// Lit is a literal tagged with its elaborated primitive type.
type Lit struct {
	TermSpan source.Span
	Val      LitVal
}

func (*Lit) coreTerm()            {}
func (t *Lit) Span() source.Span { return t.TermSpan }

// Var is a variable reference.
type Var struct {
	TermSpan source.Span
	Var      ast.Var
}

func (*Var) coreTerm()            {}
func (t *Var) Span() source.Span { return t.TermSpan }

// Pi is a dependent function type with a single binder scoping over Body as
// Bound(0).
type Pi struct {
	TermSpan source.Span
	Binder   string
	Ann      Term
	Body     Term
}

func (*Pi) coreTerm()            {}
func (t *Pi) Span() source.Span { return t.TermSpan }

// Lam is a function introduction. The parameter annotation is always
// present in core. The binder scopes over Body as Bound(0).
type Lam struct {
	TermSpan source.Span
	Binder   string
	Ann      Term
	Body     Term
}

func (*Lam) coreTerm()            {}
func (t *Lam) Span() source.Span { return t.TermSpan }

// App is a single function application.
type App struct {
	TermSpan source.Span
	Fn       Term
	Arg      Term
}

func (*App) coreTerm()            {}
func (t *App) Span() source.Span { return t.TermSpan }

// ArrayIntro is an array literal with a known element count.
type ArrayIntro struct {
	TermSpan source.Span
	Elems    []Term
}

func (*ArrayIntro) coreTerm()            {}
func (t *ArrayIntro) Span() source.Span { return t.TermSpan }

// RecordTypeField is one field of an elaborated record type telescope.
// Within field i's annotation, Bound(k) refers to field i-1-k's binder.
type RecordTypeField struct {
	Label ast.Label
	Ann   Term
}

// RecordType is a record type telescope.
type RecordType struct {
	TermSpan source.Span
	Fields   []RecordTypeField
}

func (*RecordType) coreTerm()            {}
func (t *RecordType) Span() source.Span { return t.TermSpan }

// RecordIntroField is one elaborated field-value pair.
type RecordIntroField struct {
	Label ast.Label
	Term  Term
}

// RecordIntro is a record introduction.
type RecordIntro struct {
	TermSpan source.Span
	Fields   []RecordIntroField
}

func (*RecordIntro) coreTerm()            {}
func (t *RecordIntro) Span() source.Span { return t.TermSpan }

// RecordProj is record field projection.
type RecordProj struct {
	TermSpan source.Span
	Expr     Term
	Label    ast.Label
}

func (*RecordProj) coreTerm()            {}
func (t *RecordProj) Span() source.Span { return t.TermSpan }

// Pattern is an elaborated case pattern.
type Pattern interface {
	corePattern()
}

// PatternBinder binds the scrutinee in the branch body as Bound(0).
type PatternBinder struct {
	Name string
}

func (*PatternBinder) corePattern() {}

// PatternLit matches a typed literal by value.
type PatternLit struct {
	Val LitVal
}

func (*PatternLit) corePattern() {}

// PatternConst matches an in-scope constant by identity.
type PatternConst struct {
	Var ast.FreeVar
}

func (*PatternConst) corePattern() {}

// CaseBranch is one arm of a case. A binder pattern scopes over Body as
// Bound(0).
type CaseBranch struct {
	Pattern Pattern
	Body    Term
}

// Case is an elaborated pattern match.
type Case struct {
	TermSpan source.Span
	Scrut    Term
	Branches []CaseBranch
}

func (*Case) coreTerm()            {}
func (t *Case) Span() source.Span { return t.TermSpan }

// LetItem is one fully elaborated definition. Declarations without bodies do
// not survive into core; their names stay free in the body.
type LetItem struct {
	NameSpan source.Span
	Name     string
	Var      ast.FreeVar
	Ann      Term
	Value    Term
}

// Let binds a block of elaborated definitions, referenced in later items and
// the body by their FreeVars.
type Let struct {
	TermSpan source.Span
	Items    []LetItem
	Body     Term
}

func (*Let) coreTerm()            {}
func (t *Let) Span() source.Span { return t.TermSpan }
