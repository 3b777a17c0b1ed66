package elaborate

import (
	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/nbe"
)

// Context maps free variables to a declared type and, optionally, a
// definition value. It is a persistent cons list: every extension returns a
// new Context sharing the old one as its tail, so case branches and nested
// scopes each extend the outer context independently. A nil *Context is the
// empty context.
type Context struct {
	fv   ast.FreeVar
	typ  nbe.Value
	def  nbe.Value // nil when the entry is declared but not defined
	next *Context
}

// ExtendType adds a declared-only entry.
func (c *Context) ExtendType(fv ast.FreeVar, typ nbe.Value) *Context {
	return &Context{fv: fv, typ: typ, next: c}
}

// ExtendValue adds a defined entry.
func (c *Context) ExtendValue(fv ast.FreeVar, typ, def nbe.Value) *Context {
	return &Context{fv: fv, typ: typ, def: def, next: c}
}

// LookupType returns the declared type of fv.
func (c *Context) LookupType(fv ast.FreeVar) (nbe.Value, bool) {
	for e := c; e != nil; e = e.next {
		if e.fv.Equal(fv) {
			return e.typ, true
		}
	}
	return nil, false
}

// LookupValue returns the definition of fv, if it has one.
func (c *Context) LookupValue(fv ast.FreeVar) (nbe.Value, bool) {
	for e := c; e != nil; e = e.next {
		if e.fv.Equal(fv) {
			if e.def == nil {
				return nil, false
			}
			return e.def, true
		}
	}
	return nil, false
}

// Definition implements nbe.Globals, so a Context can back an evaluation
// environment directly.
func (c *Context) Definition(fv ast.FreeVar) (nbe.Value, bool) {
	return c.LookupValue(fv)
}

// Env returns a fresh evaluation environment over this context's
// definitions.
func (c *Context) Env() *nbe.Env {
	return nbe.NewEnv(c)
}
