// Package ast holds the representation-independent building blocks shared by
// the concrete, raw and core term trees: variable identity, record labels and
// literal formats.
//
// Binder identity is the load-bearing idea: two binders may print the same
// name but are never the same binder. A FreeVar pairs a printable name hint
// with a UUID, and every comparison goes through the UUID — string equality
// plays no part in scoping.
package ast

import (
	"fmt"

	"github.com/google/uuid"
)

// FreeVar is the unique identity of a name-introduction site. It is created
// once per binder (or per context entry) and referenced by Var values.
type FreeVar struct {
	Name string // printable hint only, never used for equality
	ID   uuid.UUID
}

// NewFreeVar mints a fresh identity with the given name hint.
func NewFreeVar(name string) FreeVar {
	return FreeVar{Name: name, ID: uuid.New()}
}

// Equal reports identity equality. Name hints are ignored.
func (fv FreeVar) Equal(other FreeVar) bool { return fv.ID == other.ID }

func (fv FreeVar) String() string {
	if fv.Name == "" {
		return "_"
	}
	return fv.Name
}

// Var is a variable reference: either lexically bound (resolved by de Bruijn
// index relative to the enclosing binders) or free (resolved by identity
// against a Context).
type Var interface {
	varNode()
	fmt.Stringer
}

// Bound is a lexically-scoped reference. Index 0 refers to the innermost
// enclosing binder. Bound variables must never escape elaboration logic;
// one reaching the context or a finished value is an internal error.
type Bound struct {
	Index int
	Hint  string // printable name of the binder, for diagnostics only
}

func (Bound) varNode() {}

func (b Bound) String() string {
	if b.Hint == "" {
		return fmt.Sprintf("@%d", b.Index)
	}
	return b.Hint
}

// Free is a reference to a FreeVar held by a Context or introduced while
// opening a binder.
type Free struct {
	Var FreeVar
}

func (Free) varNode() {}

func (f Free) String() string { return f.Var.String() }

// Label names a record field.
type Label string

func (l Label) String() string { return string(l) }

// IntFormat records how an integer literal was written. It is preserved for
// faithful redisplay only and never affects semantics.
type IntFormat int

const (
	IntFormatDec IntFormat = iota
	IntFormatHex
	IntFormatBin
)

// FloatFormat records how a float literal was written.
type FloatFormat int

const (
	FloatFormatDec FloatFormat = iota
	FloatFormatExp
)
