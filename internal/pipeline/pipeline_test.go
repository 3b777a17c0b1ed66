package pipeline_test

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/desugar"
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/elaborate"
	"github.com/lumen-lang/lumen/internal/parser"
	"github.com/lumen-lang/lumen/internal/pipeline"
)

func fullChain() *pipeline.Pipeline {
	elab := elaborate.New(elaborate.NewBase())
	return pipeline.New(
		&parser.ParserProcessor{},
		&desugar.DesugarProcessor{Globals: elab.Base()},
		&elaborate.ElaborateProcessor{Elaborator: elab},
	)
}

func TestPipelineChecksModule(t *testing.T) {
	p := fullChain()
	ctx := pipeline.NewPipelineContext("id : (a : Type) -> a -> a;\nid a x = x;\nmain = id Bool true\n")
	ctx.FilePath = "main.lm"

	result := p.Run(ctx)
	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if result.Module == nil {
		t.Error("parse output missing")
	}
	if len(result.RawItems) != 3 {
		t.Errorf("expected 3 raw items, got %d", len(result.RawItems))
	}
	if len(result.CoreItems) != 2 {
		t.Errorf("expected 2 core items, got %d", len(result.CoreItems))
	}
}

func TestPipelineStopsAfterParseErrors(t *testing.T) {
	p := fullChain()
	result := p.Run(pipeline.NewPipelineContext("broken = (\n"))

	if !result.HasErrors() {
		t.Fatal("expected parse diagnostics")
	}
	if result.Diagnostics[0].Code != diagnostics.ErrP001 {
		t.Errorf("expected P001, got %s", result.Diagnostics[0].Code)
	}
	// Downstream stages skip themselves.
	if result.RawItems != nil || result.CoreItems != nil {
		t.Error("later stages must not run on a failed parse")
	}
}

func TestPipelineReportsElaborationErrors(t *testing.T) {
	p := fullChain()
	result := p.Run(pipeline.NewPipelineContext("n : U8;\nn = 256\n"))

	if !result.HasErrors() {
		t.Fatal("expected an elaboration diagnostic")
	}
	if result.Diagnostics[0].Code != diagnostics.ErrE007 {
		t.Errorf("expected E007, got %s", result.Diagnostics[0].Code)
	}
	if result.CoreItems != nil {
		t.Error("failed elaboration must not produce core items")
	}
}

func TestPipelineReportsResolutionErrors(t *testing.T) {
	p := fullChain()
	result := p.Run(pipeline.NewPipelineContext("x = missing\n"))

	if !result.HasErrors() {
		t.Fatal("expected a resolution diagnostic")
	}
	d := result.Diagnostics[0]
	if d.Code != diagnostics.ErrE022 {
		t.Errorf("expected E022, got %s", d.Code)
	}
	if d.Severity != diagnostics.SeverityBug {
		t.Errorf("undefined names surviving resolution render as bugs, got %v", d.Severity)
	}
}
