// Package raw defines the desugared, name-resolved term tree that the
// elaborator consumes. Parameter groups are flattened to single binders,
// record punning is expanded, where blocks are lowered into lets, and every
// identifier is resolved to a variable: Bound for lexical binders, Free for
// contextual references. Literal values are not yet typed.
package raw

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/source"
)

// Term is the interface implemented by all raw terms.
type Term interface {
	rawTerm()
	Span() source.Span
}

// Ann is a term annotated with a type.
type Ann struct {
	Expr Term
	Type Term
}

func (*Ann) rawTerm()             {}
func (t *Ann) Span() source.Span { return t.Expr.Span().Cover(t.Type.Span()) }

// Universe is a universe at an explicit level.
type Universe struct {
	TermSpan source.Span
	Level    uint32
}

func (*Universe) rawTerm()             {}
func (t *Universe) Span() source.Span { return t.TermSpan }

// Lit wraps a surface literal; its type is decided during elaboration.
type Lit struct {
	TermSpan source.Span
	Literal  Literal
}

func (*Lit) rawTerm()             {}
func (t *Lit) Span() source.Span { return t.TermSpan }

// Hole is an elaboration placeholder.
type Hole struct {
	TermSpan source.Span
}

func (*Hole) rawTerm()             {}
func (t *Hole) Span() source.Span { return t.TermSpan }

// Var is a resolved variable reference.
type Var struct {
	TermSpan source.Span
	Var      ast.Var
}

func (*Var) rawTerm()             {}
func (t *Var) Span() source.Span { return t.TermSpan }

// Pi is a dependent function type with a single binder. The binder scopes
// over Body as Bound(0).
type Pi struct {
	TermSpan source.Span
	Binder   string // name hint, "" for arrow-introduced binders
	Ann      Term
	Body     Term
}

func (*Pi) rawTerm()             {}
func (t *Pi) Span() source.Span { return t.TermSpan }

// Lam is a function introduction with a single binder scoping over Body as
// Bound(0). Ann is nil when the parameter was not annotated.
type Lam struct {
	TermSpan   source.Span
	BinderSpan source.Span
	Binder     string
	Ann        Term // nil when unannotated
	Body       Term
}

func (*Lam) rawTerm()             {}
func (t *Lam) Span() source.Span { return t.TermSpan }

// App is a single function application.
type App struct {
	Fn  Term
	Arg Term
}

func (*App) rawTerm()             {}
func (t *App) Span() source.Span { return t.Fn.Span().Cover(t.Arg.Span()) }

// ArrayIntro is an array literal.
type ArrayIntro struct {
	TermSpan source.Span
	Elems    []Term
}

func (*ArrayIntro) rawTerm()             {}
func (t *ArrayIntro) Span() source.Span { return t.TermSpan }

// RecordTypeField is one field of a record type telescope. Within the
// annotation of field i, Bound(k) refers to field i-1-k's binder.
type RecordTypeField struct {
	LabelSpan source.Span
	Label     ast.Label
	Binder    string
	Ann       Term
}

// RecordType is a record type: a telescope of labeled fields.
type RecordType struct {
	TermSpan source.Span
	Fields   []RecordTypeField
}

func (*RecordType) rawTerm()             {}
func (t *RecordType) Span() source.Span { return t.TermSpan }

// RecordIntroField is one desugared field-value pair.
type RecordIntroField struct {
	LabelSpan source.Span
	Label     ast.Label
	Term      Term
}

// RecordIntro is a record introduction with punning and method sugar
// already expanded.
type RecordIntro struct {
	TermSpan source.Span
	Fields   []RecordIntroField
}

func (*RecordIntro) rawTerm()             {}
func (t *RecordIntro) Span() source.Span { return t.TermSpan }

// RecordProj is record field projection.
type RecordProj struct {
	TermSpan  source.Span
	Expr      Term
	LabelSpan source.Span
	Label     ast.Label
}

func (*RecordProj) rawTerm()             {}
func (t *RecordProj) Span() source.Span { return t.TermSpan }

// CaseBranch is one arm of a case expression. A binder pattern scopes over
// Body as Bound(0); other patterns bind nothing.
type CaseBranch struct {
	Pattern Pattern
	Body    Term
}

// Case is a pattern match.
type Case struct {
	TermSpan source.Span
	Scrut    Term
	Branches []CaseBranch
}

func (*Case) rawTerm()             {}
func (t *Case) Span() source.Span { return t.TermSpan }

// LetItem is a declaration or definition inside a let. Items are referenced
// by their FreeVar (they are contextual, not lexically indexed), so a
// declaration and its later definition share one identity.
type LetItem interface {
	letItem()
	ItemName() string
	ItemVar() ast.FreeVar
	Span() source.Span
}

// Declaration declares a type for a name.
type Declaration struct {
	ItemSpan source.Span
	NameSpan source.Span
	Name     string
	Var      ast.FreeVar
	Ann      Term
}

func (*Declaration) letItem()                 {}
func (i *Declaration) ItemName() string      { return i.Name }
func (i *Declaration) ItemVar() ast.FreeVar  { return i.Var }
func (i *Declaration) Span() source.Span     { return i.ItemSpan }

// Definition binds a body to a name. Parameter sugar and return annotations
// were already lowered into the body.
type Definition struct {
	ItemSpan source.Span
	NameSpan source.Span
	Name     string
	Var      ast.FreeVar
	Body     Term
}

func (*Definition) letItem()                {}
func (i *Definition) ItemName() string     { return i.Name }
func (i *Definition) ItemVar() ast.FreeVar { return i.Var }
func (i *Definition) Span() source.Span    { return i.ItemSpan }

// Let is a block of items scoping over a body via their FreeVars.
type Let struct {
	TermSpan source.Span
	Items    []LetItem
	Body     Term
}

func (*Let) rawTerm()             {}
func (t *Let) Span() source.Span { return t.TermSpan }
