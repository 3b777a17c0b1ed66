package nbe

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/diagnostics"
)

func u8(n uint64) *core.Lit {
	return &core.Lit{Val: core.LitVal{Kind: core.LitU8, Uint: n}}
}

func boolLit(b bool) *core.Lit {
	return &core.Lit{Val: core.LitVal{Kind: core.LitBool, Bool: b}}
}

func bound(i int) *core.Var {
	return &core.Var{Var: ast.Bound{Index: i}}
}

func free(fv ast.FreeVar) *core.Var {
	return &core.Var{Var: ast.Free{Var: fv}}
}

// identity is \x : ann => x.
func identity(ann core.Term) *core.Lam {
	return &core.Lam{Binder: "x", Ann: ann, Body: bound(0)}
}

func mustEval(t *testing.T, term core.Term, env *Env) Value {
	t.Helper()
	v, err := Eval(term, env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	return v
}

func mustConvertible(t *testing.T, a, b Value) bool {
	t.Helper()
	same, err := Convertible(a, b)
	if err != nil {
		t.Fatalf("Convertible: %v", err)
	}
	return same
}

func TestEvalBetaReduction(t *testing.T) {
	// (\x => x) 7 evaluates to 7.
	app := &core.App{Fn: identity(&core.Universe{}), Arg: u8(7)}
	v := mustEval(t, app, NewEnv(nil))
	lit, ok := v.(*VLit)
	if !ok || lit.Val.Uint != 7 {
		t.Fatalf("expected literal 7, got %#v", v)
	}
}

func TestEvalUndefinedFreeIsNeutral(t *testing.T) {
	fv := ast.NewFreeVar("f")
	v := mustEval(t, free(fv), NewEnv(nil))
	neutral, ok := v.(*VNeutral)
	if !ok {
		t.Fatalf("expected neutral, got %T", v)
	}
	nvar, ok := neutral.N.(*NVar)
	if !ok || !nvar.Var.Equal(fv) {
		t.Errorf("expected stuck on %v, got %#v", fv, neutral.N)
	}
}

func TestEvalNeutralApplicationExtendsSpine(t *testing.T) {
	fv := ast.NewFreeVar("f")
	app := &core.App{Fn: free(fv), Arg: u8(1)}
	v := mustEval(t, app, NewEnv(nil))
	neutral := v.(*VNeutral)
	napp, ok := neutral.N.(*NApp)
	if !ok {
		t.Fatalf("expected application spine, got %#v", neutral.N)
	}
	if _, ok := napp.Fn.(*NVar); !ok {
		t.Errorf("expected variable head, got %#v", napp.Fn)
	}
}

func TestEvalEnvDefinitions(t *testing.T) {
	fv := ast.NewFreeVar("x")
	env := NewEnv(nil).Define(fv, &VLit{Val: core.LitVal{Kind: core.LitU8, Uint: 3}})
	v := mustEval(t, free(fv), env)
	lit, ok := v.(*VLit)
	if !ok || lit.Val.Uint != 3 {
		t.Fatalf("expected defined value, got %#v", v)
	}

	// A later definition of the same variable shadows the earlier one.
	env = env.Define(fv, &VLit{Val: core.LitVal{Kind: core.LitU8, Uint: 9}})
	lit = mustEval(t, free(fv), env).(*VLit)
	if lit.Val.Uint != 9 {
		t.Errorf("expected the later definition, got %d", lit.Val.Uint)
	}
}

func TestEvalEscapedBoundVarFails(t *testing.T) {
	_, err := Eval(bound(0), NewEnv(nil))
	if err == nil {
		t.Fatal("expected an error")
	}
	nbeErr, ok := err.(*Error)
	if !ok || !nbeErr.BoundVar {
		t.Fatalf("expected a bound-variable error, got %v", err)
	}
}

func TestEvalLet(t *testing.T) {
	fv := ast.NewFreeVar("n")
	let := &core.Let{
		Items: []core.LetItem{{Name: "n", Var: fv, Ann: &core.Universe{}, Value: u8(5)}},
		Body:  free(fv),
	}
	v := mustEval(t, let, NewEnv(nil))
	lit, ok := v.(*VLit)
	if !ok || lit.Val.Uint != 5 {
		t.Fatalf("expected 5, got %#v", v)
	}
}

func TestEvalCaseLiteralBranches(t *testing.T) {
	branches := []core.CaseBranch{
		{Pattern: &core.PatternLit{Val: core.LitVal{Kind: core.LitU8, Uint: 0}}, Body: boolLit(true)},
		{Pattern: &core.PatternBinder{Name: "n"}, Body: boolLit(false)},
	}

	v := mustEval(t, &core.Case{Scrut: u8(0), Branches: branches}, NewEnv(nil))
	if lit := v.(*VLit); !lit.Val.Bool {
		t.Error("scrutinee 0: expected the literal branch")
	}

	v = mustEval(t, &core.Case{Scrut: u8(4), Branches: branches}, NewEnv(nil))
	if lit := v.(*VLit); lit.Val.Bool {
		t.Error("scrutinee 4: expected the fallthrough branch")
	}
}

func TestEvalCaseBinderReceivesScrutinee(t *testing.T) {
	branches := []core.CaseBranch{
		{Pattern: &core.PatternBinder{Name: "n"}, Body: bound(0)},
	}
	v := mustEval(t, &core.Case{Scrut: u8(6), Branches: branches}, NewEnv(nil))
	lit, ok := v.(*VLit)
	if !ok || lit.Val.Uint != 6 {
		t.Fatalf("expected the scrutinee, got %#v", v)
	}
}

func TestEvalCaseConstantMatch(t *testing.T) {
	trueVar := ast.NewFreeVar("true")
	branches := []core.CaseBranch{
		{Pattern: &core.PatternConst{Var: trueVar}, Body: u8(1)},
		{Pattern: &core.PatternBinder{Name: "_"}, Body: u8(0)},
	}

	// Scrutinee stuck on exactly the matched constant reduces.
	v := mustEval(t, &core.Case{Scrut: free(trueVar), Branches: branches}, NewEnv(nil))
	lit, ok := v.(*VLit)
	if !ok || lit.Val.Uint != 1 {
		t.Fatalf("expected the constant branch, got %#v", v)
	}

	// Stuck on a different variable: the match cannot be observed, the
	// whole case suspends.
	other := ast.NewFreeVar("b")
	v = mustEval(t, &core.Case{Scrut: free(other), Branches: branches}, NewEnv(nil))
	neutral, ok := v.(*VNeutral)
	if !ok {
		t.Fatalf("expected a suspended case, got %#v", v)
	}
	if _, ok := neutral.N.(*NCase); !ok {
		t.Errorf("expected NCase, got %#v", neutral.N)
	}
}

func TestEvalCaseConstantWithRecordValue(t *testing.T) {
	// A constant defined as a record value: a concrete scrutinee decides
	// the match by definitional equality instead of suspending.
	rec := ast.NewFreeVar("r")
	recVal := &VRecordIntro{Fields: []VRecordField{
		{Label: "b", Value: &VLit{Val: core.LitVal{Kind: core.LitBool, Bool: true}}},
	}}
	env := NewEnv(nil).Define(rec, recVal)
	branches := []core.CaseBranch{
		{Pattern: &core.PatternConst{Var: rec}, Body: u8(1)},
		{Pattern: &core.PatternBinder{Name: "_"}, Body: u8(0)},
	}

	v := mustEval(t, &core.Case{Scrut: free(rec), Branches: branches}, env)
	lit, ok := v.(*VLit)
	if !ok || lit.Val.Uint != 1 {
		t.Fatalf("expected the constant branch, got %#v", v)
	}

	// A structurally different record falls through to the next branch.
	other := ast.NewFreeVar("s")
	env = env.Define(other, &VRecordIntro{Fields: []VRecordField{
		{Label: "b", Value: &VLit{Val: core.LitVal{Kind: core.LitBool, Bool: false}}},
	}})
	v = mustEval(t, &core.Case{Scrut: free(other), Branches: branches}, env)
	if lit := v.(*VLit); lit.Val.Uint != 0 {
		t.Errorf("expected the fallthrough branch, got %d", lit.Val.Uint)
	}
}

func TestEvalCaseConstantWithFunctionValue(t *testing.T) {
	fn := ast.NewFreeVar("id")
	env := NewEnv(nil).Define(fn, mustEval(t, identity(&core.Universe{}), NewEnv(nil)))
	branches := []core.CaseBranch{
		{Pattern: &core.PatternConst{Var: fn}, Body: boolLit(true)},
		{Pattern: &core.PatternBinder{Name: "_"}, Body: boolLit(false)},
	}
	v := mustEval(t, &core.Case{Scrut: free(fn), Branches: branches}, env)
	lit, ok := v.(*VLit)
	if !ok || !lit.Val.Bool {
		t.Fatalf("expected the constant branch, got %#v", v)
	}
}

func TestEvalCaseWithoutMatchingBranch(t *testing.T) {
	branches := []core.CaseBranch{
		{Pattern: &core.PatternLit{Val: core.LitVal{Kind: core.LitU8, Uint: 0}}, Body: boolLit(true)},
	}
	_, err := Eval(&core.Case{Scrut: u8(5), Branches: branches}, NewEnv(nil))
	if err == nil {
		t.Fatal("expected an error")
	}
	nbeErr, ok := err.(*Error)
	if !ok || !nbeErr.NoMatch {
		t.Fatalf("expected an unmatched-scrutinee error, got %v", err)
	}
	d := nbeErr.ToDiagnostic()
	if d.Severity != diagnostics.SeverityError {
		t.Errorf("expected error severity, got %v", d.Severity)
	}
	if d.Code != diagnostics.ErrE023 {
		t.Errorf("expected E023, got %s", d.Code)
	}
}

func TestQuoteEvalRoundTrip(t *testing.T) {
	// \x : Type => x normalizes to itself.
	lam := identity(&core.Universe{})
	v := mustEval(t, lam, NewEnv(nil))
	quoted, err := Quote(v)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	result, ok := quoted.(*core.Lam)
	if !ok {
		t.Fatalf("expected lambda, got %T", quoted)
	}
	b, ok := result.Body.(*core.Var)
	if !ok {
		t.Fatalf("expected variable body, got %T", result.Body)
	}
	idx, ok := b.Var.(ast.Bound)
	if !ok || idx.Index != 0 {
		t.Errorf("expected Bound(0), got %#v", b.Var)
	}
}

func TestQuoteNormalizesUnderBinders(t *testing.T) {
	// \y => (\x => x) y quotes to \y => y: the redex under the binder
	// reduces during readback.
	lam := &core.Lam{
		Binder: "y",
		Ann:    &core.Universe{},
		Body:   &core.App{Fn: identity(&core.Universe{}), Arg: bound(0)},
	}
	v := mustEval(t, lam, NewEnv(nil))
	quoted, err := Quote(v)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	body, ok := quoted.(*core.Lam).Body.(*core.Var)
	if !ok {
		t.Fatalf("expected variable body, got %#v", quoted.(*core.Lam).Body)
	}
	if idx := body.Var.(ast.Bound).Index; idx != 0 {
		t.Errorf("expected Bound(0), got %d", idx)
	}
}

func TestQuoteRecordTypeTelescope(t *testing.T) {
	// Record { first : Type, second : first } survives readback with the
	// dependency intact.
	rt := &core.RecordType{Fields: []core.RecordTypeField{
		{Label: "first", Ann: &core.Universe{}},
		{Label: "second", Ann: bound(0)},
	}}
	v := mustEval(t, rt, NewEnv(nil))
	quoted, err := Quote(v)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	result, ok := quoted.(*core.RecordType)
	if !ok {
		t.Fatalf("expected record type, got %T", quoted)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(result.Fields))
	}
	ann, ok := result.Fields[1].Ann.(*core.Var)
	if !ok {
		t.Fatalf("expected variable annotation, got %T", result.Fields[1].Ann)
	}
	if idx := ann.Var.(ast.Bound).Index; idx != 0 {
		t.Errorf("expected Bound(0), got %d", idx)
	}
}

func TestProjReducesRecordValue(t *testing.T) {
	rec := &VRecordIntro{Fields: []VRecordField{
		{Label: "x", Value: &VLit{Val: core.LitVal{Kind: core.LitU8, Uint: 2}}},
		{Label: "y", Value: &VLit{Val: core.LitVal{Kind: core.LitU8, Uint: 3}}},
	}}
	v, err := Proj(rec, "y")
	if err != nil {
		t.Fatalf("Proj: %v", err)
	}
	if lit := v.(*VLit); lit.Val.Uint != 3 {
		t.Errorf("expected 3, got %d", lit.Val.Uint)
	}

	if _, err := Proj(rec, "z"); err == nil {
		t.Error("expected an error for a missing field")
	}
}

func TestNormalizationIsIdempotent(t *testing.T) {
	// Quoting an evaluated term yields a normal form: normalizing that form
	// again reproduces it up to bound-variable renaming.
	f := ast.NewFreeVar("f")
	terms := []core.Term{
		identity(&core.Universe{}),
		&core.Lam{
			Binder: "y",
			Ann:    &core.Universe{},
			Body:   &core.App{Fn: identity(&core.Universe{}), Arg: bound(0)},
		},
		&core.Pi{Binder: "a", Ann: &core.Universe{}, Body: bound(0)},
		&core.RecordType{Fields: []core.RecordTypeField{
			{Label: "first", Ann: &core.Universe{}},
			{Label: "second", Ann: bound(0)},
		}},
		&core.App{Fn: free(f), Arg: u8(1)},
		&core.ArrayIntro{Elems: []core.Term{u8(1), u8(2)}},
		&core.Case{Scrut: free(f), Branches: []core.CaseBranch{
			{Pattern: &core.PatternLit{Val: core.LitVal{Kind: core.LitU8, Uint: 0}}, Body: boolLit(true)},
			{Pattern: &core.PatternBinder{Name: "n"}, Body: bound(0)},
		}},
	}
	for _, term := range terms {
		first, err := Quote(mustEval(t, term, NewEnv(nil)))
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		second, err := Quote(mustEval(t, first, NewEnv(nil)))
		if err != nil {
			t.Fatalf("Quote of normal form: %v", err)
		}
		if !core.AlphaEqual(first, second) {
			t.Errorf("normal form not stable:\nfirst:  %#v\nsecond: %#v", first, second)
		}
	}
}

func TestConvertibleStructural(t *testing.T) {
	env := NewEnv(nil)
	a := mustEval(t, identity(&core.Universe{}), env)
	b := mustEval(t, identity(&core.Universe{}), env)
	if !mustConvertible(t, a, b) {
		t.Error("alpha-equivalent lambdas must be convertible")
	}

	u0 := &VUniverse{Level: 0}
	u1 := &VUniverse{Level: 1}
	if mustConvertible(t, u0, u1) {
		t.Error("distinct universe levels must not be convertible")
	}
}

func TestConvertibleEta(t *testing.T) {
	// \x => f x is convertible with the bare neutral f.
	f := ast.NewFreeVar("f")
	expanded := mustEval(t, &core.Lam{
		Binder: "x",
		Ann:    &core.Universe{},
		Body:   &core.App{Fn: free(f), Arg: bound(0)},
	}, NewEnv(nil))
	bare := mustEval(t, free(f), NewEnv(nil))

	if !mustConvertible(t, expanded, bare) {
		t.Error("eta-expanded neutral must be convertible with its head")
	}
	if !mustConvertible(t, bare, expanded) {
		t.Error("eta conversion must be symmetric")
	}
}

func TestConvertibleDistinguishesNeutrals(t *testing.T) {
	f := ast.NewFreeVar("f")
	g := ast.NewFreeVar("g")
	a := mustEval(t, &core.App{Fn: free(f), Arg: u8(1)}, NewEnv(nil))
	b := mustEval(t, &core.App{Fn: free(g), Arg: u8(1)}, NewEnv(nil))
	c := mustEval(t, &core.App{Fn: free(f), Arg: u8(1)}, NewEnv(nil))

	if mustConvertible(t, a, b) {
		t.Error("different heads must not be convertible")
	}
	if !mustConvertible(t, a, c) {
		t.Error("identical spines must be convertible")
	}
}

func TestConvertiblePiComparesDomainsAndCodomains(t *testing.T) {
	mkPi := func(level uint32) core.Term {
		return &core.Pi{Binder: "a", Ann: &core.Universe{Level: level}, Body: bound(0)}
	}
	a := mustEval(t, mkPi(0), NewEnv(nil))
	b := mustEval(t, mkPi(0), NewEnv(nil))
	c := mustEval(t, mkPi(1), NewEnv(nil))

	if !mustConvertible(t, a, b) {
		t.Error("identical function types must be convertible")
	}
	if mustConvertible(t, a, c) {
		t.Error("different domains must not be convertible")
	}
}

func TestEvalDepthGuard(t *testing.T) {
	// Build a term nested past the evaluation depth limit.
	var term core.Term = u8(1)
	for i := 0; i < 3000; i++ {
		term = &core.ArrayIntro{Elems: []core.Term{term}}
	}
	_, err := Eval(term, NewEnv(nil))
	if err == nil {
		t.Fatal("expected a depth error")
	}
	nbeErr, ok := err.(*Error)
	if !ok || !nbeErr.TooDeep {
		t.Fatalf("expected a depth error, got %v", err)
	}
}
