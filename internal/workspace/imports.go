package workspace

import (
	"fmt"
	"os"
	"sort"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/nbe"
	"github.com/lumen-lang/lumen/internal/parser"
)

// Table maps import paths to the identities their values are bound to in
// the elaboration context. It satisfies the resolver's import lookup.
type Table struct {
	entries map[string]ast.FreeVar
}

// NewTable returns an empty import table.
func NewTable() *Table {
	return &Table{entries: make(map[string]ast.FreeVar)}
}

// Lookup resolves an import path to the identity of its value.
func (t *Table) Lookup(path string) (ast.FreeVar, bool) {
	fv, ok := t.entries[path]
	return fv, ok
}

func (t *Table) bind(path string) ast.FreeVar {
	fv := ast.NewFreeVar(path)
	t.entries[path] = fv
	return fv
}

// FileReport carries the diagnostics produced while loading one imported
// source file, together with the source needed to render them.
type FileReport struct {
	Path        string
	Source      string
	Diagnostics []diagnostics.Diagnostic
}

// LoadImports elaborates every import the workspace configures. Each
// imported file holds a single term; the term is elaborated against the
// builtin context and its value is bound to a fresh identity, so that
// `import "path"` resolves to that identity during desugaring.
//
// Imports are loaded in sorted path order, and each import may reference
// the imports loaded before it. A file that fails to elaborate is reported
// and left out of the table; its use sites then fail with an undefined
// import diagnostic.
func (w *Workspace) LoadImports(elab *elaborate.Elaborator) (*Table, *elaborate.Context, []FileReport, error) {
	table := NewTable()
	ctx := elab.Base().Context

	paths := make([]string, 0, len(w.Config.Imports))
	for path := range w.Config.Imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var reports []FileReport
	for _, path := range paths {
		file, _ := w.ResolveImport(path)
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading import %q: %w", path, err)
		}
		src := string(data)

		report := func(diags []diagnostics.Diagnostic) {
			reports = append(reports, FileReport{Path: file, Source: src, Diagnostics: diags})
		}

		term, diags := parser.ParseTerm(src)
		if len(diags) > 0 {
			report(diags)
			continue
		}
		rawTerm, err := desugar.Term(term, elab.Base(), table)
		if err != nil {
			report([]diagnostics.Diagnostic{diagnostics.FromError(err)})
			continue
		}
		coreTerm, typ, err := elab.Infer(rawTerm, ctx)
		if err != nil {
			report([]diagnostics.Diagnostic{diagnostics.FromError(err)})
			continue
		}
		value, err := nbe.Eval(coreTerm, ctx.Env())
		if err != nil {
			report([]diagnostics.Diagnostic{diagnostics.FromError(err)})
			continue
		}

		ctx = ctx.ExtendValue(table.bind(path), typ, value)
	}

	return table, ctx, reports, nil
}
