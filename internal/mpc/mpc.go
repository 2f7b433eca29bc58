// Package mpc implements a receding-horizon model predictive controller.
// Each step, an optimizer searches for the control sequence minimizing a
// cost function over rollouts of an internal model, and the first element of
// the winning sequence is applied. The model must support state snapshots so
// rollouts leave it untouched.
package mpc

import (
	"github.com/matheuswhite/aule/internal/block"
	"github.com/matheuswhite/aule/internal/signal"
)

// Model is the internal prediction block. Rollouts snapshot the state,
// simulate candidate control sequences, and restore it.
type Model interface {
	block.SISO[signal.Continuous]
	Snapshot() []float64
	Restore(state []float64) error
}

// CostFunction scores a candidate control sequence by rolling the model
// forward from its current state. Implementations must restore the model
// before returning.
type CostFunction interface {
	Cost(model Model, reference, measured signal.Signal[float64, signal.Continuous], sequence []float64) float64
}

// Optimizer searches the control-sequence space for the lowest cost.
type Optimizer interface {
	Solve(model Model, cost CostFunction, reference, measured signal.Signal[float64, signal.Continuous]) []float64
}

// Controller is the MPC block. It consumes the reference paired with the
// measured plant output and emits the first element of the optimized
// control sequence.
type Controller struct {
	optimizer Optimizer
	cost      CostFunction
	model     Model

	last      float64
	hasOutput bool
}

func NewController(optimizer Optimizer, cost CostFunction, model Model) *Controller {
	return &Controller{optimizer: optimizer, cost: cost, model: model}
}

// Model exposes the internal model so the outer loop can keep it in sync
// with the real plant by feeding it the applied control.
func (c *Controller) Model() Model { return c.model }

func (c *Controller) Output(in signal.Signal[signal.Pair[float64, float64], signal.Continuous]) signal.Signal[float64, signal.Continuous] {
	reference, measured := signal.Unpack(in)

	sequence := c.optimizer.Solve(c.model, c.cost, reference, measured)

	u := 0.0
	if len(sequence) > 0 {
		u = sequence[0]
	}
	c.last = u
	c.hasOutput = true
	return signal.FromDelta[float64, signal.Continuous](u, in.Delta)
}

func (c *Controller) LastOutput() (float64, bool) {
	return c.last, c.hasOutput
}

func (c *Controller) Reset() {
	c.model.Reset()
	c.last = 0
	c.hasOutput = false
}
