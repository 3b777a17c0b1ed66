// Package nbe implements normalization by evaluation: core terms are
// evaluated into a semantic value domain (head-normal values plus neutral,
// stuck computations) and read back into normal-form core terms. The
// elaborator checks definitional equality through this domain and never
// compares core terms syntactically.
package nbe

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
)

// Value is a semantic value. Values carry no spans; they are purely
// semantic.
type Value interface {
	value()
}

// VUniverse is a universe at a known level.
type VUniverse struct {
	Level uint32
}

func (*VUniverse) value() {}

// VLit is a typed literal value.
type VLit struct {
	Val core.LitVal
}

func (*VLit) value() {}

// VPi is a dependent function type value. Body is a closure over the
// parameter.
type VPi struct {
	Binder string
	Ann    Value
	Body   Closure
}

func (*VPi) value() {}

// VLam is a function value closed over its defining environment.
type VLam struct {
	Binder string
	Ann    Value
	Body   Closure
}

func (*VLam) value() {}

// VRecordTypeEmpty is the record type with no fields.
type VRecordTypeEmpty struct{}

func (*VRecordTypeEmpty) value() {}

// VRecordType is a non-empty record type telescope: a first field and a
// closure producing the rest of the telescope once the field's value is
// known.
type VRecordType struct {
	Label ast.Label
	Ann   Value
	Rest  TeleClosure
}

func (*VRecordType) value() {}

// VRecordField is one field of a record value.
type VRecordField struct {
	Label ast.Label
	Value Value
}

// VRecordIntro is a record value.
type VRecordIntro struct {
	Fields []VRecordField
}

func (*VRecordIntro) value() {}

// VArrayIntro is an array value.
type VArrayIntro struct {
	Elems []Value
}

func (*VArrayIntro) value() {}

// VNeutral is a computation stuck on a free variable.
type VNeutral struct {
	N Neutral
}

func (*VNeutral) value() {}

// Neutral is the spine of a stuck computation.
type Neutral interface {
	neutral()
}

// NVar is a free variable with no definition.
type NVar struct {
	Var ast.FreeVar
}

func (*NVar) neutral() {}

// NApp is a neutral applied to a value.
type NApp struct {
	Fn  Neutral
	Arg Value
}

func (*NApp) neutral() {}

// NProj is a projection from a neutral.
type NProj struct {
	Expr  Neutral
	Label ast.Label
}

func (*NProj) neutral() {}

// NCase is a case blocked on a neutral scrutinee. The unevaluated branches
// keep the environment they were suspended in.
type NCase struct {
	Scrut    Neutral
	Branches []core.CaseBranch
	Env      *Env
}

func (*NCase) neutral() {}

// Closure suspends a term body over an environment, awaiting the value of
// one binder.
type Closure struct {
	Env  *Env
	Body core.Term
}

// Apply evaluates the closure body with the binder bound to arg.
func (c Closure) Apply(arg Value) (Value, error) {
	return Eval(c.Body, c.Env.Push(arg))
}

// TeleClosure suspends the tail of a record type telescope, awaiting the
// value of the most recent field.
type TeleClosure struct {
	Env    *Env
	Fields []core.RecordTypeField
}

// Apply resumes the telescope with the field's value in scope. The result
// is VRecordTypeEmpty or a further VRecordType.
func (c TeleClosure) Apply(arg Value) (Value, error) {
	return evalTelescope(c.Fields, c.Env.Push(arg))
}

// FreshNeutral returns a neutral value for a freshly minted free variable,
// used to descend under binders while quoting and comparing.
func FreshNeutral(name string) (ast.FreeVar, Value) {
	fv := ast.NewFreeVar(name)
	return fv, &VNeutral{N: &NVar{Var: fv}}
}
