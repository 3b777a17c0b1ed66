package concrete

import "github.com/lumen-lang/lumen/internal/source"

// ReplCommand is a parsed line of REPL input.
type ReplCommand interface {
	replCommandNode()
}

// ReplEval evaluates a term and prints its normal form and type.
//
//	<term>
type ReplEval struct {
	Term Term
}

func (*ReplEval) replCommandNode() {}

// ReplRaw shows the desugared representation of a term.
//
//	:raw <term>
type ReplRaw struct {
	Term Term
}

func (*ReplRaw) replCommandNode() {}

// ReplCore shows the elaborated core representation of a term.
//
//	:core <term>
type ReplCore struct {
	Term Term
}

func (*ReplCore) replCommandNode() {}

// ReplTypeOf prints the type of a term.
//
//	:t <term>
//	:type <term>
type ReplTypeOf struct {
	Term Term
}

func (*ReplTypeOf) replCommandNode() {}

// ReplLet adds a definition to the REPL environment.
//
//	:let <name> = <term>
type ReplLet struct {
	NameSpan source.Span
	Name     string
	Term     Term
}

func (*ReplLet) replCommandNode() {}

// ReplHelp prints usage help.
//
//	:? :h :help
type ReplHelp struct{}

func (*ReplHelp) replCommandNode() {}

// ReplQuit exits the REPL.
//
//	:q :quit
type ReplQuit struct{}

func (*ReplQuit) replCommandNode() {}

// ReplNoOp is an empty input line.
type ReplNoOp struct{}

func (*ReplNoOp) replCommandNode() {}

// ReplError is a command line that could not be parsed.
type ReplError struct {
	Span source.Span
}

func (*ReplError) replCommandNode() {}
