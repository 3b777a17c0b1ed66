// Package concrete defines the concrete syntax tree: the span-carrying
// surface representation produced by the parser. It preserves surface sugar
// verbatim — parentheses, parameter groups, record field punning, where
// blocks — so that tooling can redisplay the source faithfully. The
// desugarer lowers it into the raw tree before elaboration.
package concrete

import (
	"github.com/lumen-lang/lumen/internal/source"
)

// Term is the interface implemented by all surface terms.
type Term interface {
	termNode()
	Span() source.Span
}

// ParamName is one name inside a parameter group, with its own span.
type ParamName struct {
	NameSpan source.Span
	Name     string
}

// ParamGroup is a group of parameters sharing one annotation.
//
//	(x y : T)
//	x          (introduction parameters may omit the annotation)
type ParamGroup struct {
	Names []ParamName
	Ann   Term // nil for unannotated introduction parameters
}

// Parens is a parenthesized term.
//
//	(e)
type Parens struct {
	TermSpan source.Span
	Inner    Term
}

func (*Parens) termNode()            {}
func (t *Parens) Span() source.Span { return t.TermSpan }

// Ann is a term annotated with a type.
//
//	e : t
type Ann struct {
	Expr Term
	Type Term
}

func (*Ann) termNode()            {}
func (t *Ann) Span() source.Span { return t.Expr.Span().Cover(t.Type.Span()) }

// Universe is the type of types, optionally leveled.
//
//	Type
//	Type^1
type Universe struct {
	TermSpan source.Span
	Level    *uint32 // nil when no explicit level was written
}

func (*Universe) termNode()            {}
func (t *Universe) Span() source.Span { return t.TermSpan }

// Lit wraps a literal as a term.
type Lit struct {
	Literal Literal
}

func (*Lit) termNode()            {}
func (t *Lit) Span() source.Span { return t.Literal.Span() }

// ArrayIntro is an array literal.
//
//	[1, 2, 3]
type ArrayIntro struct {
	TermSpan source.Span
	Elems    []Term
}

func (*ArrayIntro) termNode()            {}
func (t *ArrayIntro) Span() source.Span { return t.TermSpan }

// Hole is a placeholder the elaborator is asked to fill.
//
//	_
type Hole struct {
	TermSpan source.Span
}

func (*Hole) termNode()            {}
func (t *Hole) Span() source.Span { return t.TermSpan }

// Name is an identifier, optionally shifted to skip same-named binders.
//
//	x
//	x^1
type Name struct {
	TermSpan source.Span
	Name     string
	Shift    *uint32
}

func (*Name) termNode()            {}
func (t *Name) Span() source.Span { return t.TermSpan }

// Import references an externally-supplied module by name.
//
//	import "prelude"
type Import struct {
	TermSpan source.Span
	PathSpan source.Span
	Path     string
}

func (*Import) termNode()            {}
func (t *Import) Span() source.Span { return t.TermSpan }

// FunType is a dependent function type with parameter groups.
//
//	(x : t1) -> t2
//	(x y : t1) -> t2
type FunType struct {
	Start  int // byte offset of the opening parenthesis
	Params []ParamGroup
	Body   Term
}

func (*FunType) termNode() {}
func (t *FunType) Span() source.Span {
	return source.NewSpan(t.Start, t.Body.Span().End)
}

// FunArrow is a non-dependent function type.
//
//	t1 -> t2
type FunArrow struct {
	Param Term
	Body  Term
}

func (*FunArrow) termNode()            {}
func (t *FunArrow) Span() source.Span { return t.Param.Span().Cover(t.Body.Span()) }

// FunIntro is a function introduction.
//
//	\x => t
//	\(x : t1) y => t2
type FunIntro struct {
	Start  int // byte offset of the backslash
	Params []ParamGroup
	Body   Term
}

func (*FunIntro) termNode() {}
func (t *FunIntro) Span() source.Span {
	return source.NewSpan(t.Start, t.Body.Span().End)
}

// FunApp is function application. Application is juxtaposition, so the
// parser collects the full spine.
//
//	e1 e2 e3
type FunApp struct {
	Fn   Term
	Args []Term
}

func (*FunApp) termNode() {}
func (t *FunApp) Span() source.Span {
	span := t.Fn.Span()
	if len(t.Args) > 0 {
		span = span.Cover(t.Args[len(t.Args)-1].Span())
	}
	return span
}

// Let is a block of items scoping over a body.
//
//	let x : S32
//	    x = 1
//	in x
type Let struct {
	Start int // byte offset of the let keyword
	Items []Item
	Body  Term
}

func (*Let) termNode() {}
func (t *Let) Span() source.Span {
	return source.NewSpan(t.Start, t.Body.Span().End)
}

// Where is the postfix form of let.
//
//	id "hello" where { id x = x }
type Where struct {
	Expr  Term
	Items []Item
	End   int // byte offset just past the closing brace
}

func (*Where) termNode() {}
func (t *Where) Span() source.Span {
	return source.NewSpan(t.Expr.Span().Start, t.End)
}

// If is a two-way branch. It lowers to a case over true/false so that both
// forms share one pattern-elaboration path.
//
//	if t1 then t2 else t3
type If struct {
	Start int // byte offset of the if keyword
	Cond  Term
	Then  Term
	Else  Term
}

func (*If) termNode() {}
func (t *If) Span() source.Span {
	return source.NewSpan(t.Start, t.Else.Span().End)
}

// CaseBranch is one arm of a case expression.
type CaseBranch struct {
	Pattern Pattern
	Body    Term
}

// Case is a pattern-matching expression.
//
//	case t1 { pat => t2; .. }
type Case struct {
	TermSpan source.Span
	Scrut    Term
	Branches []CaseBranch
}

func (*Case) termNode()            {}
func (t *Case) Span() source.Span { return t.TermSpan }

// RecordTypeField is one field of a record type. The optional binder names
// the field's value for use in later field annotations.
type RecordTypeField struct {
	LabelSpan  source.Span
	Label      string
	BinderSpan source.Span // zero when no binder was written
	Binder     string      // "" when no binder was written
	Ann        Term
}

// RecordType is a record type.
//
//	Record { x : t1, .. }
type RecordType struct {
	TermSpan source.Span
	Fields   []RecordTypeField
}

func (*RecordType) termNode()            {}
func (t *RecordType) Span() source.Span { return t.TermSpan }

// RecordField is a field of a record introduction: punned or explicit.
type RecordField interface {
	recordFieldNode()
}

// RecordFieldPunned is field punning.
//
//	{ x }       is sugar for { x = x }
//	{ x^1 }
type RecordFieldPunned struct {
	LabelSpan source.Span
	Label     string
	Shift     *uint32
}

func (*RecordFieldPunned) recordFieldNode() {}

// RecordFieldExplicit is an explicit field, possibly method-style with
// parameters and a return annotation.
//
//	{ x = e }
//	{ id (a : Type) (x : a) : a = x }
type RecordFieldExplicit struct {
	LabelSpan source.Span
	Label     string
	Params    []ParamGroup
	ReturnAnn Term // nil when absent
	Term      Term
}

func (*RecordFieldExplicit) recordFieldNode() {}

// RecordIntro is a record introduction.
//
//	record { x = t1, .. }
type RecordIntro struct {
	TermSpan source.Span
	Fields   []RecordField
}

func (*RecordIntro) termNode()            {}
func (t *RecordIntro) Span() source.Span { return t.TermSpan }

// RecordProj is record field projection.
//
//	e.l
//	e.l^1
type RecordProj struct {
	TermSpan  source.Span
	Expr      Term
	LabelSpan source.Span
	Label     string
	Shift     *uint32
}

func (*RecordProj) termNode()            {}
func (t *RecordProj) Span() source.Span { return t.TermSpan }

// Error marks a region the parser could not make sense of. The surrounding
// driver may keep going; the elaborator refuses it.
type Error struct {
	TermSpan source.Span
}

func (*Error) termNode()            {}
func (t *Error) Span() source.Span { return t.TermSpan }
