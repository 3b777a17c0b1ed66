package desugar

import (
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/pipeline"
)

// DesugarProcessor is the pipeline stage that lowers the parsed module into
// raw items. It skips itself when parsing already failed: the recovered
// tree contains error nodes the resolver would just re-report.
type DesugarProcessor struct {
	Globals Globals
	Imports Imports
}

func (dp *DesugarProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Module == nil || ctx.HasErrors() {
		return ctx
	}
	items, err := Module(ctx.Module, dp.Globals, dp.Imports)
	if err != nil {
		ctx.Report(diagnostics.FromError(err))
		return ctx
	}
	ctx.RawItems = items
	return ctx
}
