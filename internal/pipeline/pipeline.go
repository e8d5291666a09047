package pipeline

// Processor is one stage of the pipeline: it reads and mutates a Context
// and returns it (possibly unchanged) for the next stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(ctx *Context) *Context

func (f ProcessorFunc) Process(ctx *Context) *Context { return f(ctx) }

// Pipeline is an ordered sequence of Processors.
type Pipeline struct {
	stages []Processor
}

// New builds a Pipeline from stages, run in order.
func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order against ctx, continuing past stage
// errors: a stage records failures as diagnostics rather than aborting the
// run, so a later stage always sees a best-effort result from the one
// before it.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}
