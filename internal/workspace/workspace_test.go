package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/nbe"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "prelude.lumen", "true")
	cfgPath := writeFile(t, dir, "lumen.yaml", "name: demo\nimports:\n  prelude: ./prelude.lumen\n")

	w, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Config.Name != "demo" {
		t.Errorf("expected name demo, got %q", w.Config.Name)
	}
	if w.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, w.Dir())
	}

	resolved, ok := w.ResolveImport("prelude")
	if !ok {
		t.Fatal("prelude not resolvable")
	}
	if resolved != filepath.Join(dir, "prelude.lumen") {
		t.Errorf("unexpected resolution: %s", resolved)
	}
	if _, ok := w.ResolveImport("missing"); ok {
		t.Error("missing import must not resolve")
	}
}

func TestParseRejectsBadConfigs(t *testing.T) {
	dir := t.TempDir()

	// Unparseable YAML.
	if _, err := Parse([]byte("imports: ["), filepath.Join(dir, "lumen.yaml")); err == nil {
		t.Error("expected an error for malformed yaml")
	}

	// Import pointing at a missing file.
	data := []byte("imports:\n  ghost: ./ghost.lumen\n")
	if _, err := Parse(data, filepath.Join(dir, "lumen.yaml")); err == nil {
		t.Error("expected an error for a missing import file")
	}

	// Import pointing at a directory.
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	data = []byte("imports:\n  sub: ./sub\n")
	if _, err := Parse(data, filepath.Join(dir, "lumen.yaml")); err == nil {
		t.Error("expected an error for a directory import")
	}

	// Empty file entry.
	data = []byte("imports:\n  empty: \"\"\n")
	if _, err := Parse(data, filepath.Join(dir, "lumen.yaml")); err == nil {
		t.Error("expected an error for an empty file entry")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeFile(t, root, "lumen.yaml", "name: demo\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found != cfgPath {
		t.Errorf("expected %s, got %s", cfgPath, found)
	}
}

func TestFindReturnsEmptyWithoutWorkspace(t *testing.T) {
	found, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found != "" {
		t.Errorf("expected no workspace, found %s", found)
	}
}

func TestLoadImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flag.lumen", "true\n")
	writeFile(t, dir, "byte.lumen", "7 : U8\n")
	cfgPath := writeFile(t, dir, "lumen.yaml",
		"imports:\n  flag: ./flag.lumen\n  byte: ./byte.lumen\n")

	w, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	elab := elaborate.New(elaborate.NewBase())
	table, ctx, reports, err := w.LoadImports(elab)
	if err != nil {
		t.Fatalf("LoadImports: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", reports)
	}

	fv, ok := table.Lookup("flag")
	if !ok {
		t.Fatal("flag missing from the table")
	}
	def, ok := ctx.LookupValue(fv)
	if !ok {
		t.Fatal("flag has no value in the context")
	}
	lit, ok := def.(*nbe.VLit)
	if !ok || !lit.Val.Bool {
		t.Errorf("expected flag to evaluate to true, got %#v", def)
	}

	fv, ok = table.Lookup("byte")
	if !ok {
		t.Fatal("byte missing from the table")
	}
	typ, _ := ctx.LookupType(fv)
	u8Fv, _ := elab.Base().Lookup("U8")
	same, err := nbe.Convertible(typ, &nbe.VNeutral{N: &nbe.NVar{Var: u8Fv}})
	if err != nil || !same {
		t.Errorf("expected byte : U8, got %#v (err %v)", typ, err)
	}
}

func TestLoadImportsReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.lumen", "true\n")
	writeFile(t, dir, "broken.lumen", "(\n")
	writeFile(t, dir, "illtyped.lumen", "true false\n")
	cfgPath := writeFile(t, dir, "lumen.yaml",
		"imports:\n  good: ./good.lumen\n  broken: ./broken.lumen\n  illtyped: ./illtyped.lumen\n")

	w, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	table, _, reports, err := w.LoadImports(elaborate.New(elaborate.NewBase()))
	if err != nil {
		t.Fatalf("LoadImports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 failing files, got %d", len(reports))
	}
	for _, r := range reports {
		if len(r.Diagnostics) == 0 {
			t.Errorf("%s: report without diagnostics", r.Path)
		}
	}

	// The failing imports stay out of the table; the good one loads.
	if _, ok := table.Lookup("good"); !ok {
		t.Error("good import missing")
	}
	if _, ok := table.Lookup("broken"); ok {
		t.Error("broken import must not be bound")
	}
	if _, ok := table.Lookup("illtyped"); ok {
		t.Error("ill-typed import must not be bound")
	}
}

func TestImportsMayReferenceEarlierImports(t *testing.T) {
	dir := t.TempDir()
	// Loading happens in sorted path order, so "a-flag" elaborates before
	// "b-use" and the latter can import it.
	writeFile(t, dir, "flag.lumen", "true\n")
	writeFile(t, dir, "use.lumen", "if import \"a-flag\" then \"on\" else \"off\"\n")
	cfgPath := writeFile(t, dir, "lumen.yaml",
		"imports:\n  a-flag: ./flag.lumen\n  b-use: ./use.lumen\n")

	w, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	table, ctx, reports, err := w.LoadImports(elaborate.New(elaborate.NewBase()))
	if err != nil {
		t.Fatalf("LoadImports: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %+v", reports)
	}
	fv, ok := table.Lookup("b-use")
	if !ok {
		t.Fatal("b-use missing from the table")
	}
	def, _ := ctx.LookupValue(fv)
	lit, ok := def.(*nbe.VLit)
	if !ok || lit.Val.Str != "on" {
		t.Errorf("expected \"on\", got %#v", def)
	}
}
