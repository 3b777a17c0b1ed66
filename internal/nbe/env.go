package nbe

import "github.com/lumen-lang/lumen/internal/ast"

// Globals supplies definitions for free variables, normally the
// elaboration context. A free variable with no definition evaluates to a
// neutral variable.
type Globals interface {
	Definition(fv ast.FreeVar) (Value, bool)
}

// EmptyGlobals is a Globals with no definitions.
type EmptyGlobals struct{}

func (EmptyGlobals) Definition(ast.FreeVar) (Value, bool) { return nil, false }

type boundLink struct {
	value Value
	next  *boundLink
}

type defLink struct {
	fv    ast.FreeVar
	value Value
	next  *defLink
}

// Env is the evaluation environment: an ordered stack of values for bound
// variables, a layer of local free-variable definitions (let items), and
// the global definitions behind them. Extending an Env never mutates it, so
// suspended closures stay valid.
type Env struct {
	bound   *boundLink
	defs    *defLink
	globals Globals
}

// NewEnv returns an environment with no bound variables over the given
// globals.
func NewEnv(globals Globals) *Env {
	if globals == nil {
		globals = EmptyGlobals{}
	}
	return &Env{globals: globals}
}

// Push binds a value for Bound(0), shifting existing bound variables up.
func (e *Env) Push(v Value) *Env {
	return &Env{bound: &boundLink{value: v, next: e.bound}, defs: e.defs, globals: e.globals}
}

// Define layers a local definition for a free variable.
func (e *Env) Define(fv ast.FreeVar, v Value) *Env {
	return &Env{bound: e.bound, defs: &defLink{fv: fv, value: v, next: e.defs}, globals: e.globals}
}

// lookupBound resolves a de Bruijn index. ok is false when the index
// escapes the environment, which indicates an elaborator bug.
func (e *Env) lookupBound(index int) (Value, bool) {
	link := e.bound
	for i := 0; link != nil; i++ {
		if i == index {
			return link.value, true
		}
		link = link.next
	}
	return nil, false
}

// lookupFree resolves a free variable's definition, preferring local let
// definitions over globals.
func (e *Env) lookupFree(fv ast.FreeVar) (Value, bool) {
	for link := e.defs; link != nil; link = link.next {
		if link.fv.Equal(fv) {
			return link.value, true
		}
	}
	return e.globals.Definition(fv)
}
