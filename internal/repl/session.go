// Package repl implements the interactive session: an accumulated
// top-level context that `:let` extends, dispatch of the parsed REPL
// commands, and a persistent input history.
//
// The session produces text and diagnostics; how they reach the terminal
// (colors, prompts) is the driver's concern.
package repl

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/nbe"
	"github.com/lumen-lang/lumen/internal/parser"
	"github.com/lumen-lang/lumen/internal/prettyprinter"
)

const helpText = `<term>                 evaluate a term
:? :h :help            display this help text
:core <term>           print the elaborated core representation of a term
:let <name> = <term>   add a definition to the session
:q :quit               quit the session
:raw <term>            print the desugared representation of a term
:t :type <term>        infer the type of a term`

// definition is one `:let` binding. Later definitions of the same name
// shadow earlier ones.
type definition struct {
	name string
	fv   ast.FreeVar
}

// Session holds the state accumulated across REPL inputs.
type Session struct {
	elab    *elaborate.Elaborator
	ctx     *elaborate.Context
	imports desugar.Imports
	defs    []definition
	history *History
}

// NewSession starts a session over the given starting context (usually the
// builtin base context, or an import-extended one). imports and history may
// be nil.
func NewSession(elab *elaborate.Elaborator, ctx *elaborate.Context, imports desugar.Imports, history *History) *Session {
	if ctx == nil {
		ctx = elab.Base().Context
	}
	return &Session{elab: elab, ctx: ctx, imports: imports, history: history}
}

// Lookup resolves a name against the session's definitions, newest first,
// falling back to the builtins. It implements the resolver's global scope.
func (s *Session) Lookup(name string) (ast.FreeVar, bool) {
	for i := len(s.defs) - 1; i >= 0; i-- {
		if s.defs[i].name == name {
			return s.defs[i].fv, true
		}
	}
	return s.elab.Base().Lookup(name)
}

// Outcome is the result of dispatching one line of input.
type Outcome struct {
	// Text is what the driver should print, empty for silent commands.
	Text string
	// Diagnostics reports why the input failed, when it did.
	Diagnostics []diagnostics.Diagnostic
	// Quit is set by :quit.
	Quit bool
}

func failed(diags []diagnostics.Diagnostic) Outcome {
	return Outcome{Diagnostics: diags}
}

func failedErr(err error) Outcome {
	return Outcome{Diagnostics: []diagnostics.Diagnostic{diagnostics.FromError(err)}}
}

// Dispatch parses and executes one line of input. Non-empty lines are
// recorded in the history regardless of whether they succeed.
func (s *Session) Dispatch(line string) Outcome {
	if s.history != nil && strings.TrimSpace(line) != "" {
		// History failures never break the session.
		_ = s.history.Append(line)
	}

	cmd, diags := parser.ParseReplCommand(line)
	if len(diags) > 0 {
		return failed(diags)
	}

	switch cmd := cmd.(type) {
	case *concrete.ReplNoOp:
		return Outcome{}
	case *concrete.ReplHelp:
		return Outcome{Text: helpText}
	case *concrete.ReplQuit:
		return Outcome{Quit: true}
	case *concrete.ReplEval:
		return s.eval(cmd.Term)
	case *concrete.ReplRaw:
		return s.raw(cmd.Term)
	case *concrete.ReplCore:
		return s.core(cmd.Term)
	case *concrete.ReplTypeOf:
		return s.typeOf(cmd.Term)
	case *concrete.ReplLet:
		return s.let(cmd)
	default:
		// ReplError carries its diagnostics in the parse result, which was
		// handled above.
		return Outcome{}
	}
}

// resolve desugars a term against the session scope.
func (s *Session) resolve(t concrete.Term) (raw.Term, error) {
	return desugar.Term(t, s, s.imports)
}

func (s *Session) eval(t concrete.Term) Outcome {
	rawTerm, err := s.resolve(t)
	if err != nil {
		return failedErr(err)
	}
	coreTerm, typ, err := s.elab.Infer(rawTerm, s.ctx)
	if err != nil {
		return failedErr(err)
	}
	value, err := nbe.Eval(coreTerm, s.ctx.Env())
	if err != nil {
		return failedErr(err)
	}
	normal, err := nbe.Quote(value)
	if err != nil {
		return failedErr(err)
	}
	typeTerm, err := nbe.Quote(typ)
	if err != nil {
		return failedErr(err)
	}
	return Outcome{Text: fmt.Sprintf("%s : %s", prettyprinter.Core(normal), prettyprinter.Core(typeTerm))}
}

func (s *Session) raw(t concrete.Term) Outcome {
	rawTerm, err := s.resolve(t)
	if err != nil {
		return failedErr(err)
	}
	return Outcome{Text: prettyprinter.Raw(rawTerm)}
}

func (s *Session) core(t concrete.Term) Outcome {
	rawTerm, err := s.resolve(t)
	if err != nil {
		return failedErr(err)
	}
	coreTerm, _, err := s.elab.Infer(rawTerm, s.ctx)
	if err != nil {
		return failedErr(err)
	}
	return Outcome{Text: prettyprinter.Core(coreTerm)}
}

func (s *Session) typeOf(t concrete.Term) Outcome {
	rawTerm, err := s.resolve(t)
	if err != nil {
		return failedErr(err)
	}
	_, typ, err := s.elab.Infer(rawTerm, s.ctx)
	if err != nil {
		return failedErr(err)
	}
	typeTerm, err := nbe.Quote(typ)
	if err != nil {
		return failedErr(err)
	}
	return Outcome{Text: prettyprinter.Core(typeTerm)}
}

func (s *Session) let(cmd *concrete.ReplLet) Outcome {
	rawTerm, err := s.resolve(cmd.Term)
	if err != nil {
		return failedErr(err)
	}
	coreTerm, typ, err := s.elab.Infer(rawTerm, s.ctx)
	if err != nil {
		return failedErr(err)
	}
	value, err := nbe.Eval(coreTerm, s.ctx.Env())
	if err != nil {
		return failedErr(err)
	}
	typeTerm, err := nbe.Quote(typ)
	if err != nil {
		return failedErr(err)
	}

	fv := ast.NewFreeVar(cmd.Name)
	s.ctx = s.ctx.ExtendValue(fv, typ, value)
	s.defs = append(s.defs, definition{name: cmd.Name, fv: fv})
	return Outcome{Text: fmt.Sprintf("%s : %s", cmd.Name, prettyprinter.Core(typeTerm))}
}

// Context returns the session's current top-level context.
func (s *Session) Context() *elaborate.Context { return s.ctx }
