package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumen-lang/lumen/internal/config"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/parser"
	"github.com/lumen-lang/lumen/internal/pipeline"
	"github.com/lumen-lang/lumen/internal/repl"
	"github.com/lumen-lang/lumen/internal/workspace"
)

const usage = `Usage: lumen [command]

  lumen <file>   elaborate a source file and report diagnostics
  lumen repl     start an interactive session
  lumen          start an interactive session (same as repl)
  lumen help     show this help text

A lumen.yaml file in the directory of the source file (or any parent)
configures the import table:

  imports:
    prelude: ./prelude.lumen
`

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	setupTerminal()

	args := os.Args[1:]
	if len(args) >= 1 {
		switch args[0] {
		case "help", "-help", "--help":
			fmt.Print(usage)
			return
		case "repl":
			runRepl()
			return
		}
		checkFile(args[0])
		return
	}
	runRepl()
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// loadWorkspace finds and loads the project for dir, elaborating its
// imports. A missing lumen.yaml is not an error: the import table is just
// empty. Import diagnostics are rendered immediately.
func loadWorkspace(dir string, elab *elaborate.Elaborator) (desugar.Imports, *elaborate.Context, int) {
	path, err := workspace.Find(dir)
	if err != nil || path == "" {
		return nil, nil, 0
	}

	w, err := workspace.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	table, ctx, reports, err := w.LoadImports(elab)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	errorCount := 0
	for _, report := range reports {
		for _, d := range report.Diagnostics {
			renderDiagnostic(report.Path, report.Source, d)
			errorCount++
		}
	}
	return table, ctx, errorCount
}

func checkFile(path string) {
	if !isSourceFile(path) {
		fmt.Fprintf(os.Stderr, "Error: %s is not a source file (expected %s)\n",
			path, strings.Join(config.SourceFileExtensions, " or "))
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
		os.Exit(1)
	}
	src := string(data)

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	elab := elaborate.New(elaborate.NewBase())
	imports, ctx, errorCount := loadWorkspace(filepath.Dir(absPath), elab)

	initialContext := pipeline.NewPipelineContext(src)
	initialContext.FilePath = absPath

	processingPipeline := pipeline.New(
		&parser.ParserProcessor{},
		&desugar.DesugarProcessor{Globals: elab.Base(), Imports: imports},
		&elaborate.ElaborateProcessor{Elaborator: elab, Context: ctx},
	)

	finalContext := processingPipeline.Run(initialContext)

	for _, d := range finalContext.Diagnostics {
		renderDiagnostic(path, src, d)
		errorCount++
	}

	renderSummary(errorCount)
	if errorCount > 0 {
		os.Exit(1)
	}
}

func runRepl() {
	elab := elaborate.New(elaborate.NewBase())

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	imports, ctx, _ := loadWorkspace(cwd, elab)

	var history *repl.History
	if path, err := repl.DefaultHistoryPath(); err == nil {
		if h, err := repl.OpenHistory(path); err == nil {
			history = h
			defer h.Close()
		}
	}

	session := repl.NewSession(elab, ctx, imports, history)
	interactive := stdinIsTerminal()

	if interactive {
		fmt.Println("lumen repl -- :? for help, :q to quit")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		outcome := session.Dispatch(scanner.Text())
		if outcome.Quit {
			break
		}
		for _, d := range outcome.Diagnostics {
			renderDiagnostic("<repl>", scanner.Text(), d)
		}
		if outcome.Text != "" {
			fmt.Println(outcome.Text)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
		os.Exit(1)
	}
}
