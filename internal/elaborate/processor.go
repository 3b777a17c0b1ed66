package elaborate

import (
	"github.com/lumen-lang/lumen/internal/diagnostics"
	"github.com/lumen-lang/lumen/internal/pipeline"
)

// ElaborateProcessor is the pipeline stage that type-checks the desugared
// module. Context overrides the starting context; when nil, the builtin
// base context is used. The driver passes an import-extended context here.
type ElaborateProcessor struct {
	Elaborator *Elaborator
	Context    *Context
}

func (ep *ElaborateProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.RawItems == nil || ctx.HasErrors() {
		return ctx
	}
	elab := ep.Elaborator
	if elab == nil {
		elab = New(NewBase())
	}
	start := ep.Context
	if start == nil {
		start = elab.Base().Context
	}
	_, items, err := elab.ElaborateItems(ctx.RawItems, start)
	if err != nil {
		ctx.Report(diagnostics.FromError(err))
		return ctx
	}
	ctx.CoreItems = items
	return ctx
}
