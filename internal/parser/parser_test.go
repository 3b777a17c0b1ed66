package parser

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/diagnostics"
)

func parseOK(t *testing.T, input string) concrete.Term {
	t.Helper()
	term, diags := ParseTerm(input)
	if len(diags) != 0 {
		t.Fatalf("ParseTerm(%q): unexpected diagnostics: %v", input, diags)
	}
	return term
}

func TestParseName(t *testing.T) {
	term := parseOK(t, "foo")
	name, ok := term.(*concrete.Name)
	if !ok {
		t.Fatalf("expected *concrete.Name, got %T", term)
	}
	if name.Name != "foo" || name.Shift != nil {
		t.Errorf("got name %q shift %v", name.Name, name.Shift)
	}
	if name.Span().Start != 0 || name.Span().End != 3 {
		t.Errorf("got span [%d,%d)", name.Span().Start, name.Span().End)
	}
}

func TestParseNameShift(t *testing.T) {
	term := parseOK(t, "x^2")
	name, ok := term.(*concrete.Name)
	if !ok {
		t.Fatalf("expected *concrete.Name, got %T", term)
	}
	if name.Shift == nil || *name.Shift != 2 {
		t.Errorf("expected shift 2, got %v", name.Shift)
	}
}

func TestParseUniverse(t *testing.T) {
	term := parseOK(t, "Type")
	uni, ok := term.(*concrete.Universe)
	if !ok {
		t.Fatalf("expected *concrete.Universe, got %T", term)
	}
	if uni.Level != nil {
		t.Errorf("expected implicit level, got %v", *uni.Level)
	}

	term = parseOK(t, "Type^3")
	uni, ok = term.(*concrete.Universe)
	if !ok {
		t.Fatalf("expected *concrete.Universe, got %T", term)
	}
	if uni.Level == nil || *uni.Level != 3 {
		t.Errorf("expected level 3, got %v", uni.Level)
	}
}

func TestParseLiterals(t *testing.T) {
	term := parseOK(t, `"hello"`)
	lit, ok := term.(*concrete.Lit)
	if !ok {
		t.Fatalf("expected *concrete.Lit, got %T", term)
	}
	str, ok := lit.Literal.(*concrete.StringLit)
	if !ok || str.Value != "hello" {
		t.Errorf("expected string literal hello, got %#v", lit.Literal)
	}

	term = parseOK(t, "0xFF")
	lit = term.(*concrete.Lit)
	integer, ok := lit.Literal.(*concrete.IntLit)
	if !ok || integer.Value != 255 {
		t.Errorf("expected integer literal 255, got %#v", lit.Literal)
	}

	term = parseOK(t, "3.5")
	lit = term.(*concrete.Lit)
	float, ok := lit.Literal.(*concrete.FloatLit)
	if !ok || float.Value != 3.5 {
		t.Errorf("expected float literal 3.5, got %#v", lit.Literal)
	}
}

func TestParseHole(t *testing.T) {
	term := parseOK(t, "_")
	if _, ok := term.(*concrete.Hole); !ok {
		t.Fatalf("expected *concrete.Hole, got %T", term)
	}
}

func TestParseAnnotation(t *testing.T) {
	term := parseOK(t, "x : Bool")
	ann, ok := term.(*concrete.Ann)
	if !ok {
		t.Fatalf("expected *concrete.Ann, got %T", term)
	}
	if _, ok := ann.Expr.(*concrete.Name); !ok {
		t.Errorf("expected name expr, got %T", ann.Expr)
	}
	if _, ok := ann.Type.(*concrete.Name); !ok {
		t.Errorf("expected name type, got %T", ann.Type)
	}
}

func TestParseFunArrow(t *testing.T) {
	term := parseOK(t, "a -> b -> c")
	outer, ok := term.(*concrete.FunArrow)
	if !ok {
		t.Fatalf("expected *concrete.FunArrow, got %T", term)
	}
	// Arrows are right-associative.
	if _, ok := outer.Param.(*concrete.Name); !ok {
		t.Errorf("expected name parameter, got %T", outer.Param)
	}
	if _, ok := outer.Body.(*concrete.FunArrow); !ok {
		t.Errorf("expected nested arrow body, got %T", outer.Body)
	}
}

func TestParseFunType(t *testing.T) {
	term := parseOK(t, "(a : Type) -> (x y : a) -> a")
	fun, ok := term.(*concrete.FunType)
	if !ok {
		t.Fatalf("expected *concrete.FunType, got %T", term)
	}
	if len(fun.Params) != 1 || len(fun.Params[0].Names) != 1 || fun.Params[0].Names[0].Name != "a" {
		t.Fatalf("unexpected params: %#v", fun.Params)
	}
	inner, ok := fun.Body.(*concrete.FunType)
	if !ok {
		t.Fatalf("expected nested *concrete.FunType body, got %T", fun.Body)
	}
	if len(inner.Params) != 1 || len(inner.Params[0].Names) != 2 {
		t.Fatalf("expected one group of two names, got %#v", inner.Params)
	}
	if inner.Params[0].Names[0].Name != "x" || inner.Params[0].Names[1].Name != "y" {
		t.Errorf("unexpected group names: %#v", inner.Params[0].Names)
	}
}

func TestParseParensNotFunType(t *testing.T) {
	// `(f x)` is a parenthesized application, not a parameter group.
	term := parseOK(t, "(f x)")
	parens, ok := term.(*concrete.Parens)
	if !ok {
		t.Fatalf("expected *concrete.Parens, got %T", term)
	}
	if _, ok := parens.Inner.(*concrete.FunApp); !ok {
		t.Errorf("expected inner application, got %T", parens.Inner)
	}
}

func TestParseFunIntro(t *testing.T) {
	term := parseOK(t, `\(x : Bool) y => x`)
	fun, ok := term.(*concrete.FunIntro)
	if !ok {
		t.Fatalf("expected *concrete.FunIntro, got %T", term)
	}
	if len(fun.Params) != 2 {
		t.Fatalf("expected 2 parameter groups, got %d", len(fun.Params))
	}
	if fun.Params[0].Ann == nil {
		t.Error("first group should carry an annotation")
	}
	if fun.Params[1].Ann != nil {
		t.Error("second group should be unannotated")
	}
	if _, ok := fun.Body.(*concrete.Name); !ok {
		t.Errorf("expected name body, got %T", fun.Body)
	}
}

func TestParseApplicationSpine(t *testing.T) {
	term := parseOK(t, "f a b c")
	app, ok := term.(*concrete.FunApp)
	if !ok {
		t.Fatalf("expected *concrete.FunApp, got %T", term)
	}
	if len(app.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(app.Args))
	}
	fn, ok := app.Fn.(*concrete.Name)
	if !ok || fn.Name != "f" {
		t.Errorf("expected head f, got %#v", app.Fn)
	}
}

func TestParseProjection(t *testing.T) {
	term := parseOK(t, "r.x.y^1")
	outer, ok := term.(*concrete.RecordProj)
	if !ok {
		t.Fatalf("expected *concrete.RecordProj, got %T", term)
	}
	if outer.Label != "y" || outer.Shift == nil || *outer.Shift != 1 {
		t.Errorf("outer projection: label %q shift %v", outer.Label, outer.Shift)
	}
	inner, ok := outer.Expr.(*concrete.RecordProj)
	if !ok || inner.Label != "x" || inner.Shift != nil {
		t.Errorf("inner projection: %#v", outer.Expr)
	}
}

func TestProjectionBindsTighterThanApplication(t *testing.T) {
	term := parseOK(t, "f r.x")
	app, ok := term.(*concrete.FunApp)
	if !ok {
		t.Fatalf("expected *concrete.FunApp, got %T", term)
	}
	if _, ok := app.Args[0].(*concrete.RecordProj); !ok {
		t.Errorf("expected projection argument, got %T", app.Args[0])
	}
}

func TestParseArrayIntro(t *testing.T) {
	term := parseOK(t, "[1, 2, 3]")
	arr, ok := term.(*concrete.ArrayIntro)
	if !ok {
		t.Fatalf("expected *concrete.ArrayIntro, got %T", term)
	}
	if len(arr.Elems) != 3 {
		t.Errorf("expected 3 elements, got %d", len(arr.Elems))
	}

	term = parseOK(t, "[]")
	arr = term.(*concrete.ArrayIntro)
	if len(arr.Elems) != 0 {
		t.Errorf("expected empty array, got %d elements", len(arr.Elems))
	}
}

func TestParseImport(t *testing.T) {
	term := parseOK(t, `import "prelude"`)
	imp, ok := term.(*concrete.Import)
	if !ok {
		t.Fatalf("expected *concrete.Import, got %T", term)
	}
	if imp.Path != "prelude" {
		t.Errorf("expected path prelude, got %q", imp.Path)
	}
}

func TestParseRecordType(t *testing.T) {
	term := parseOK(t, "Record { x : Bool, y : Bool }")
	rec, ok := term.(*concrete.RecordType)
	if !ok {
		t.Fatalf("expected *concrete.RecordType, got %T", term)
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(rec.Fields))
	}
	if rec.Fields[0].Label != "x" || rec.Fields[1].Label != "y" {
		t.Errorf("unexpected labels: %q %q", rec.Fields[0].Label, rec.Fields[1].Label)
	}

	term = parseOK(t, "Record {}")
	rec = term.(*concrete.RecordType)
	if len(rec.Fields) != 0 {
		t.Errorf("expected empty record type, got %d fields", len(rec.Fields))
	}
}

func TestParseRecordIntro(t *testing.T) {
	term := parseOK(t, "record { x = 1, y, z^1 }")
	rec, ok := term.(*concrete.RecordIntro)
	if !ok {
		t.Fatalf("expected *concrete.RecordIntro, got %T", term)
	}
	if len(rec.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(rec.Fields))
	}
	if _, ok := rec.Fields[0].(*concrete.RecordFieldExplicit); !ok {
		t.Errorf("field 0: expected explicit, got %T", rec.Fields[0])
	}
	pun, ok := rec.Fields[1].(*concrete.RecordFieldPunned)
	if !ok || pun.Label != "y" || pun.Shift != nil {
		t.Errorf("field 1: expected pun y, got %#v", rec.Fields[1])
	}
	shifted, ok := rec.Fields[2].(*concrete.RecordFieldPunned)
	if !ok || shifted.Shift == nil || *shifted.Shift != 1 {
		t.Errorf("field 2: expected shifted pun, got %#v", rec.Fields[2])
	}
}

func TestParseRecordIntroMethodStyle(t *testing.T) {
	term := parseOK(t, "record { id (a : Type) (x : a) : a = x }")
	rec := term.(*concrete.RecordIntro)
	field, ok := rec.Fields[0].(*concrete.RecordFieldExplicit)
	if !ok {
		t.Fatalf("expected explicit field, got %T", rec.Fields[0])
	}
	if field.Label != "id" || len(field.Params) != 2 || field.ReturnAnn == nil {
		t.Errorf("unexpected field: %#v", field)
	}
}

func TestParseCase(t *testing.T) {
	term := parseOK(t, "case b { true => 1; false => 0 }")
	expr, ok := term.(*concrete.Case)
	if !ok {
		t.Fatalf("expected *concrete.Case, got %T", term)
	}
	if len(expr.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(expr.Branches))
	}
	pat, ok := expr.Branches[0].Pattern.(*concrete.PatternName)
	if !ok || pat.Name != "true" {
		t.Errorf("branch 0 pattern: %#v", expr.Branches[0].Pattern)
	}

	term = parseOK(t, "case n { 0 => true; _ => false }")
	expr = term.(*concrete.Case)
	if _, ok := expr.Branches[0].Pattern.(*concrete.PatternLit); !ok {
		t.Errorf("expected literal pattern, got %T", expr.Branches[0].Pattern)
	}
	binder, ok := expr.Branches[1].Pattern.(*concrete.PatternName)
	if !ok || binder.Name != "_" {
		t.Errorf("expected hole binder pattern, got %#v", expr.Branches[1].Pattern)
	}
}

func TestParseEmptyCase(t *testing.T) {
	term := parseOK(t, "case x {}")
	expr, ok := term.(*concrete.Case)
	if !ok {
		t.Fatalf("expected *concrete.Case, got %T", term)
	}
	if len(expr.Branches) != 0 {
		t.Errorf("expected no branches, got %d", len(expr.Branches))
	}
}

func TestCaseBodyBraceDoesNotExtendScrutinee(t *testing.T) {
	// The scrutinee is an application spine; the `{` opening the branches
	// must terminate it rather than being taken as another argument.
	term := parseOK(t, "case f x { true => 1 }")
	expr, ok := term.(*concrete.Case)
	if !ok {
		t.Fatalf("expected *concrete.Case, got %T", term)
	}
	app, ok := expr.Scrut.(*concrete.FunApp)
	if !ok {
		t.Fatalf("expected application scrutinee, got %T", expr.Scrut)
	}
	if len(app.Args) != 1 {
		t.Errorf("expected 1 argument, got %d", len(app.Args))
	}
	if len(expr.Branches) != 1 {
		t.Errorf("expected 1 branch, got %d", len(expr.Branches))
	}
}

func TestParseIf(t *testing.T) {
	term := parseOK(t, `if b then "yes" else "no"`)
	branch, ok := term.(*concrete.If)
	if !ok {
		t.Fatalf("expected *concrete.If, got %T", term)
	}
	if _, ok := branch.Cond.(*concrete.Name); !ok {
		t.Errorf("expected name condition, got %T", branch.Cond)
	}
}

func TestParseLet(t *testing.T) {
	term := parseOK(t, "let x : Bool; x = true in x")
	let, ok := term.(*concrete.Let)
	if !ok {
		t.Fatalf("expected *concrete.Let, got %T", term)
	}
	if len(let.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(let.Items))
	}
	if _, ok := let.Items[0].(*concrete.Declaration); !ok {
		t.Errorf("item 0: expected declaration, got %T", let.Items[0])
	}
	if _, ok := let.Items[1].(*concrete.Definition); !ok {
		t.Errorf("item 1: expected definition, got %T", let.Items[1])
	}
}

func TestParseWhere(t *testing.T) {
	term := parseOK(t, `id "hello" where { id x = x }`)
	where, ok := term.(*concrete.Where)
	if !ok {
		t.Fatalf("expected *concrete.Where, got %T", term)
	}
	if len(where.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(where.Items))
	}
	def, ok := where.Items[0].(*concrete.Definition)
	if !ok || def.Name != "id" || len(def.Params) != 1 {
		t.Errorf("unexpected item: %#v", where.Items[0])
	}
}

func TestParseTermTrailingInput(t *testing.T) {
	_, diags := ParseTerm("x y z )")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for trailing input")
	}
	if diags[0].Code != diagnostics.ErrP001 {
		t.Errorf("expected %s, got %s", diagnostics.ErrP001, diags[0].Code)
	}
}

func TestParseModuleItems(t *testing.T) {
	input := "id : (a : Type) -> a -> a;\nid a x = x;\nmain = id Bool true\n"
	p := New(input)
	module := p.ParseModule("test.lm")
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Errors())
	}
	if module.File != "test.lm" {
		t.Errorf("expected file test.lm, got %q", module.File)
	}
	if len(module.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(module.Items))
	}

	decl, ok := module.Items[0].(*concrete.Declaration)
	if !ok || decl.Name != "id" {
		t.Errorf("item 0: %#v", module.Items[0])
	}
	def, ok := module.Items[1].(*concrete.Definition)
	if !ok || def.Name != "id" || len(def.Params) != 2 {
		t.Errorf("item 1: %#v", module.Items[1])
	}
}

func TestParseModuleRecovery(t *testing.T) {
	// The malformed first item must not hide the valid second one.
	input := "broken : : ;\nok = true\n"
	p := New(input)
	module := p.ParseModule("test.lm")
	if len(p.Errors()) == 0 {
		t.Fatal("expected diagnostics for the malformed item")
	}
	if len(module.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(module.Items))
	}
	def, ok := module.Items[1].(*concrete.Definition)
	if !ok || def.Name != "ok" {
		t.Errorf("expected recovery to definition ok, got %#v", module.Items[1])
	}
}

func TestParseDeepNestingReportsDepthLimit(t *testing.T) {
	var input string
	for i := 0; i < MaxRecursionDepth+10; i++ {
		input += "("
	}
	input += "x"
	for i := 0; i < MaxRecursionDepth+10; i++ {
		input += ")"
	}

	_, diags := ParseTerm(input)
	if len(diags) == 0 {
		t.Fatal("expected a depth-limit diagnostic")
	}
	if diags[0].Code != diagnostics.ErrP001 {
		t.Errorf("expected %s, got %s", diagnostics.ErrP001, diags[0].Code)
	}
}

func TestParseReplCommands(t *testing.T) {
	tests := []struct {
		line string
		want any
	}{
		{"", &concrete.ReplNoOp{}},
		{"   ", &concrete.ReplNoOp{}},
		{":q", &concrete.ReplQuit{}},
		{":quit", &concrete.ReplQuit{}},
		{":?", &concrete.ReplHelp{}},
		{":h", &concrete.ReplHelp{}},
		{":help", &concrete.ReplHelp{}},
		{"1 : U8", &concrete.ReplEval{}},
		{":raw \\x => x", &concrete.ReplRaw{}},
		{":core true", &concrete.ReplCore{}},
		{":t true", &concrete.ReplTypeOf{}},
		{":type true", &concrete.ReplTypeOf{}},
		{":let x = true", &concrete.ReplLet{}},
	}

	for _, tt := range tests {
		cmd, diags := ParseReplCommand(tt.line)
		if len(diags) != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", tt.line, diags)
			continue
		}
		if gotT, wantT := typeName(cmd), typeName(tt.want); gotT != wantT {
			t.Errorf("%q: expected %s, got %s", tt.line, wantT, gotT)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *concrete.ReplNoOp:
		return "noop"
	case *concrete.ReplQuit:
		return "quit"
	case *concrete.ReplHelp:
		return "help"
	case *concrete.ReplEval:
		return "eval"
	case *concrete.ReplRaw:
		return "raw"
	case *concrete.ReplCore:
		return "core"
	case *concrete.ReplTypeOf:
		return "typeof"
	case *concrete.ReplLet:
		return "let"
	case *concrete.ReplError:
		return "error"
	default:
		return "unknown"
	}
}

func TestParseReplLetDetails(t *testing.T) {
	cmd, diags := ParseReplCommand(":let flag = true")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	let, ok := cmd.(*concrete.ReplLet)
	if !ok {
		t.Fatalf("expected *concrete.ReplLet, got %T", cmd)
	}
	if let.Name != "flag" {
		t.Errorf("expected name flag, got %q", let.Name)
	}
	if _, ok := let.Term.(*concrete.Name); !ok {
		t.Errorf("expected name term, got %T", let.Term)
	}
}

func TestParseReplUnknownCommand(t *testing.T) {
	cmd, diags := ParseReplCommand(":frobnicate")
	if _, ok := cmd.(*concrete.ReplError); !ok {
		t.Fatalf("expected *concrete.ReplError, got %T", cmd)
	}
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrP004 {
		t.Fatalf("expected a single %s diagnostic, got %v", diagnostics.ErrP004, diags)
	}
}

func TestParseReplMalformedTerm(t *testing.T) {
	cmd, diags := ParseReplCommand(":t (x")
	if _, ok := cmd.(*concrete.ReplError); !ok {
		t.Fatalf("expected *concrete.ReplError, got %T", cmd)
	}
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
}
