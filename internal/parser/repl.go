package parser

import (
	"strings"

	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/source"
	"github.com/lumen-lang/lumen/internal/token"
)

// ParseReplCommand parses one line of REPL input. Anything that is not a
// `:`-command is an evaluation request.
func ParseReplCommand(line string) (concrete.ReplCommand, []diagnostics.Diagnostic) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return &concrete.ReplNoOp{}, nil
	}

	if !strings.HasPrefix(trimmed, ":") {
		return parseReplTerm(line, func(t concrete.Term) concrete.ReplCommand {
			return &concrete.ReplEval{Term: t}
		})
	}

	command := trimmed[1:]
	name, rest, _ := strings.Cut(command, " ")
	switch name {
	case "?", "h", "help":
		return &concrete.ReplHelp{}, nil
	case "q", "quit":
		return &concrete.ReplQuit{}, nil
	case "raw":
		return parseReplTerm(rest, func(t concrete.Term) concrete.ReplCommand {
			return &concrete.ReplRaw{Term: t}
		})
	case "core":
		return parseReplTerm(rest, func(t concrete.Term) concrete.ReplCommand {
			return &concrete.ReplCore{Term: t}
		})
	case "t", "type":
		return parseReplTerm(rest, func(t concrete.Term) concrete.ReplCommand {
			return &concrete.ReplTypeOf{Term: t}
		})
	case "let":
		return parseReplLet(rest, line)
	default:
		span := source.NewSpan(0, len(line))
		return &concrete.ReplError{Span: span}, []diagnostics.Diagnostic{
			diagnostics.New(
				diagnostics.ErrP004,
				"unknown REPL command `:"+name+"`",
				span,
				"try :? for help",
			),
		}
	}
}

func parseReplTerm(input string, wrap func(concrete.Term) concrete.ReplCommand) (concrete.ReplCommand, []diagnostics.Diagnostic) {
	p := New(input)
	term := p.parseTerm()
	if !p.curIs(token.EOF) {
		p.errorf(p.cur().Span, "unexpected input after term")
	}
	if len(p.Errors()) > 0 {
		return &concrete.ReplError{Span: source.NewSpan(0, len(input))}, p.Errors()
	}
	return wrap(term), nil
}

func parseReplLet(rest, line string) (concrete.ReplCommand, []diagnostics.Diagnostic) {
	p := New(rest)
	name, ok := p.expect(token.IDENT)
	if !ok {
		return replLetError(line, p)
	}
	if _, ok := p.expect(token.EQUALS); !ok {
		return replLetError(line, p)
	}
	term := p.parseTerm()
	if !p.curIs(token.EOF) {
		p.errorf(p.cur().Span, "unexpected input after term")
	}
	if len(p.Errors()) > 0 {
		return replLetError(line, p)
	}
	return &concrete.ReplLet{NameSpan: name.Span, Name: name.Lexeme, Term: term}, nil
}

func replLetError(line string, p *Parser) (concrete.ReplCommand, []diagnostics.Diagnostic) {
	return &concrete.ReplError{Span: source.NewSpan(0, len(line))}, p.Errors()
}
