package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/source"
)

var (
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG   = pterm.FgRed
	bugStyleBG     = pterm.NewStyle(pterm.BgMagenta, pterm.FgWhite)
	bugColorFG     = pterm.FgMagenta
	contextColorFG = pterm.FgCyan
)

// setupTerminal disables color when output is not going to a terminal, so
// piped diagnostics stay clean text.
func setupTerminal() {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		pterm.DisableColor()
	}
}

// stdinIsTerminal reports whether the REPL is talking to a person.
func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// renderDiagnostic prints one diagnostic with its labeled source excerpts
// to stderr.
//
//	error[E012] type mismatch
//	 --> main.lumen:3:11
//	3 |  addOne = "one"
//	  |           ^^^^^ expected `U32 -> U32`, found `String`
func renderDiagnostic(filePath, src string, d diagnostics.Diagnostic) {
	headBG, headFG := errorStyleBG, errorColorFG
	if d.Severity == diagnostics.SeverityBug {
		headBG, headFG = bugStyleBG, bugColorFG
	}

	fmt.Fprint(os.Stderr, "\n")
	fmt.Fprint(os.Stderr, headBG.Sprint(fmt.Sprintf("%s[%s]", d.Severity, d.Code)))
	fmt.Fprintln(os.Stderr, headFG.Sprint(" "+d.Message))

	for _, label := range d.Labels {
		renderLabel(filePath, src, label, headFG)
	}
	if d.Severity == diagnostics.SeverityBug {
		fmt.Fprintln(os.Stderr, contextColorFG.Sprint("this is a bug, please report it"))
	}
}

func renderLabel(filePath, src string, label diagnostics.Label, primaryFG pterm.Color) {
	pos := source.Locate(src, label.Span.Start)
	fmt.Fprintf(os.Stderr, " --> %s:%d:%d\n", filePath, pos.Line, pos.Column)

	line := source.LineAt(src, label.Span.Start)
	lineNumber := strconv.Itoa(pos.Line)
	gutter := strings.Repeat(" ", len(lineNumber))

	fmt.Fprint(os.Stderr, contextColorFG.Sprint(lineNumber))
	fmt.Fprintln(os.Stderr, " |  "+strings.ReplaceAll(line, "\t", "    "))

	// Carets cover the labeled span, clamped to the excerpted line.
	width := label.Span.Len()
	if max := len(line) - (pos.Column - 1); width > max {
		width = max
	}
	if width < 1 {
		width = 1
	}
	caretFG := contextColorFG
	if label.Primary {
		caretFG = primaryFG
	}
	carets := strings.Repeat("^", width)
	if label.Message != "" {
		carets += " " + label.Message
	}
	fmt.Fprintln(os.Stderr, gutter+" |  "+caretIndent(line, pos.Column-1)+caretFG.Sprint(carets))
}

// caretIndent mirrors the tab expansion of the excerpt line so the carets
// line up.
func caretIndent(line string, column int) string {
	if column > len(line) {
		column = len(line)
	}
	indent := 0
	for _, c := range line[:column] {
		if c == '\t' {
			indent += 4
		} else {
			indent++
		}
	}
	return strings.Repeat(" ", indent)
}

// renderSummary prints the error count trailer for file mode.
func renderSummary(errorCount int) {
	if errorCount == 0 {
		return
	}
	fmt.Fprintln(os.Stderr)
	if errorCount == 1 {
		fmt.Fprintln(os.Stderr, errorColorFG.Sprint("1 error"))
	} else {
		fmt.Fprintln(os.Stderr, errorColorFG.Sprint(fmt.Sprintf("%d errors", errorCount)))
	}
}
