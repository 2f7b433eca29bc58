package block

import "github.com/matheuswhite/aule/internal/signal"

// Block is the uniform capability every processing element exposes: consume
// the current input, mutate internal state, produce the output. LastOutput
// reports the most recent output, or false before the first call; feedback
// wiring reads it to close a loop before the next input exists. Reset
// returns the block to its initial configuration for a repeated run.
type Block[In, Out any, D signal.Domain] interface {
	Output(in signal.Signal[In, D]) signal.Signal[Out, D]
	LastOutput() (Out, bool)
	Reset()
}

// SISO is a scalar single-input single-output block.
type SISO[D signal.Domain] = Block[float64, float64, D]

// Source turns clock ticks into values.
type Source[D signal.Domain] = Block[struct{}, float64, D]

// Chain composes SISO blocks in sequence: the output of one becomes the
// input of the next.
type Chain[D signal.Domain] struct {
	stages []SISO[D]
	last   float64
	ok     bool
}

// NewChain builds a pipeline from the given stages, applied left to right.
func NewChain[D signal.Domain](stages ...SISO[D]) *Chain[D] {
	return &Chain[D]{stages: stages}
}

// Append adds a stage to the end of the pipeline.
func (c *Chain[D]) Append(stage SISO[D]) *Chain[D] {
	c.stages = append(c.stages, stage)
	return c
}

func (c *Chain[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	out := in
	for _, stage := range c.stages {
		out = stage.Output(out)
	}
	c.last = out.Value
	c.ok = true
	return out
}

func (c *Chain[D]) LastOutput() (float64, bool) {
	return c.last, c.ok
}

func (c *Chain[D]) Reset() {
	for _, stage := range c.stages {
		stage.Reset()
	}
	c.last = 0
	c.ok = false
}
