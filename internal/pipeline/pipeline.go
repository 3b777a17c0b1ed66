// Package pipeline chains the processing stages that turn source text into
// an elaborated module: lex/parse into the concrete tree, desugar into the
// raw tree, elaborate into core. Each stage lives in its own package and
// plugs in through the Processor interface.
package pipeline

import (
	"github.com/lumen-lang/lumen/internal/ast/concrete"
	"github.com/lumen-lang/lumen/internal/ast/core"
	"github.com/lumen-lang/lumen/internal/ast/raw"
	"github.com/lumen-lang/lumen/internal/diagnostics"
)

// PipelineContext carries the artifacts of each stage and the diagnostics
// they produced.
type PipelineContext struct {
	FilePath string
	Source   string

	// Module is the parse output.
	Module *concrete.Module
	// RawItems is the desugared, name-resolved module.
	RawItems []raw.LetItem
	// CoreItems is the elaboration output: the fully checked items.
	CoreItems []core.LetItem

	Diagnostics []diagnostics.Diagnostic
}

// NewPipelineContext starts a context over raw source text.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{Source: source}
}

// Report appends a diagnostic.
func (c *PipelineContext) Report(d diagnostics.Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether any stage failed.
func (c *PipelineContext) HasErrors() bool {
	return len(c.Diagnostics) > 0
}

// Processor is one processing stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages that need a clean upstream artifact
// skip themselves when earlier diagnostics exist; Run itself always walks
// the whole chain.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
