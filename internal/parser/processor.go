package parser

import (
	"github.com/lumen-lang/lumen/internal/pipeline"
)

// ParserProcessor is the pipeline stage that parses source text into the
// concrete syntax tree.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.Source)
	ctx.Module = p.ParseModule(ctx.FilePath)
	ctx.Diagnostics = append(ctx.Diagnostics, p.Errors()...)
	return ctx
}
