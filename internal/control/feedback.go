package control

import (
	"fmt"

	"github.com/matheuswhite/aule/internal/signal"
	"github.com/matheuswhite/aule/internal/ss"
)

// StateFeedback closes a loop over the full state of a plant realization:
// u = r - K·x, with the reference arriving as the input signal and the state
// read from the plant between steps.
type StateFeedback struct {
	gains []float64
	plant *ss.StateSpace

	last      float64
	hasOutput bool
}

// NewStateFeedback builds the feedback law. The gain vector must have one
// entry per plant state.
func NewStateFeedback(plant *ss.StateSpace, gains []float64) (*StateFeedback, error) {
	if len(gains) != plant.Order() {
		return nil, fmt.Errorf("control: gain vector has %d elements, want %d", len(gains), plant.Order())
	}
	return &StateFeedback{gains: append([]float64(nil), gains...), plant: plant}, nil
}

func (c *StateFeedback) Output(in signal.Signal[float64, signal.Continuous]) signal.Signal[float64, signal.Continuous] {
	u := in.Value
	for i, x := range c.plant.State() {
		u -= c.gains[i] * x
	}
	c.last = u
	c.hasOutput = true
	return in.Replace(u)
}

func (c *StateFeedback) LastOutput() (float64, bool) {
	return c.last, c.hasOutput
}

func (c *StateFeedback) Reset() {
	c.last = 0
	c.hasOutput = false
}

// Manual emits an externally set control value, ignoring its input. Live
// runs use it to drive a plant by hand.
type Manual[D signal.Domain] struct {
	value float64

	last      float64
	hasOutput bool
}

func NewManual[D signal.Domain]() *Manual[D] { return &Manual[D]{} }

// Set updates the emitted control value.
func (c *Manual[D]) Set(v float64) { c.value = v }

func (c *Manual[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	c.last = c.value
	c.hasOutput = true
	return in.Replace(c.value)
}

func (c *Manual[D]) LastOutput() (float64, bool) { return c.last, c.hasOutput }

func (c *Manual[D]) Reset() {
	c.last = 0
	c.hasOutput = false
}

// None is the zero controller: the loop runs open.
type None[D signal.Domain] struct {
	hasOutput bool
}

func NewNone[D signal.Domain]() *None[D] { return &None[D]{} }

func (c *None[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	c.hasOutput = true
	return in.Replace(0)
}

func (c *None[D]) LastOutput() (float64, bool) { return 0, c.hasOutput }

func (c *None[D]) Reset() { c.hasOutput = false }
