// Package desugar lowers the concrete syntax tree into the raw tree the
// elaborator consumes: parameter groups become iterated single binders,
// record punning and method fields become plain field-value pairs, where
// blocks become lets, if becomes a two-arm case, and every identifier is
// resolved to a variable — Bound for lexical binders, Free for contextual
// references.
package desugar

import (
	"fmt"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/source"
)

// Globals resolves names that are not lexically bound: builtins, module
// items, accumulated REPL definitions.
type Globals interface {
	Lookup(name string) (ast.FreeVar, bool)
}

// Imports resolves import paths to the identity of the imported value. The
// resolver performs no file I/O; the table is supplied by the caller.
type Imports interface {
	Lookup(path string) (ast.FreeVar, bool)
}

type emptyImports struct{}

func (emptyImports) Lookup(string) (ast.FreeVar, bool) { return ast.FreeVar{}, false }

// SyntaxError reports a parser error-recovery node reaching name
// resolution. The parser already diagnosed the region; this stops the
// malformed tree from going further.
type SyntaxError struct {
	Span source.Span
}

func (e *SyntaxError) Error() string { return "cannot resolve malformed syntax" }

func (e *SyntaxError) ToDiagnostic() diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.ErrP001, e.Error(), e.Span, "contains a syntax error")
}

// binding is one entry of the lexical scope stack. Binder-introduced
// entries are bound (resolved by de Bruijn index); let-item entries are
// free (resolved by identity).
type binding struct {
	name  string
	bound bool
	fv    ast.FreeVar
}

// Resolver carries the scope stack of one resolution pass. A Resolver is
// cheap and single-use; create one per term or module.
type Resolver struct {
	globals Globals
	imports Imports
	scope   []binding
}

// NewResolver returns a resolver over the given global scope and import
// table. A nil imports table resolves no imports.
func NewResolver(globals Globals, imports Imports) *Resolver {
	if imports == nil {
		imports = emptyImports{}
	}
	return &Resolver{globals: globals, imports: imports}
}

func (r *Resolver) pushBound(name string) {
	r.scope = append(r.scope, binding{name: name, bound: true})
}

func (r *Resolver) pushFree(name string, fv ast.FreeVar) {
	r.scope = append(r.scope, binding{name: name, fv: fv})
}

func (r *Resolver) mark() int          { return len(r.scope) }
func (r *Resolver) truncate(mark int)  { r.scope = r.scope[:mark] }

// resolve finds a name, skipping shift same-named entries first. The
// lexical stack is searched innermost to outermost, then the global scope.
func (r *Resolver) resolve(name string, shift uint32, span source.Span) (ast.Var, error) {
	index := 0
	for i := len(r.scope) - 1; i >= 0; i-- {
		b := r.scope[i]
		if b.name == name {
			if shift == 0 {
				if b.bound {
					return ast.Bound{Index: index, Hint: name}, nil
				}
				return ast.Free{Var: b.fv}, nil
			}
			shift--
		}
		if b.bound {
			index++
		}
	}
	if fv, ok := r.globals.Lookup(name); ok && shift == 0 {
		return ast.Free{Var: fv}, nil
	}
	return nil, &elaborate.UndefinedName{Span: span, Name: shiftedName(name, shift)}
}

// lookupConst reports whether a name currently denotes an in-scope
// constant, i.e. resolves to a free variable. Lexical binders and unknown
// names do not qualify.
func (r *Resolver) lookupConst(name string, shift uint32) (ast.FreeVar, bool) {
	for i := len(r.scope) - 1; i >= 0; i-- {
		b := r.scope[i]
		if b.name != name {
			continue
		}
		if shift == 0 {
			if b.bound {
				return ast.FreeVar{}, false
			}
			return b.fv, true
		}
		shift--
	}
	if fv, ok := r.globals.Lookup(name); ok && shift == 0 {
		return fv, true
	}
	return ast.FreeVar{}, false
}

func shiftedName(name string, shift uint32) string {
	if shift == 0 {
		return name
	}
	return fmt.Sprintf("%s^%d", name, shift)
}
