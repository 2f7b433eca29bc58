package ss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/matheuswhite/aule/internal/signal"
)

// Observer is a Luenberger state observer built over a model of the plant.
// It consumes the control signal paired with the measured plant output and
// drives its state estimate by
//
//	x̂̇ = A·x̂ + B·u + L·(y - C·x̂ - D·u)
//
// emitting the estimated output ŷ.
type Observer struct {
	model *StateSpace
	gain  *mat.VecDense

	input    float64
	measured float64

	last      float64
	hasOutput bool
}

// NewObserver wraps a model with a correction gain. The gain must have one
// entry per model state, and a zero-order model has nothing to observe.
func NewObserver(model *StateSpace, gain []float64) (*Observer, error) {
	if model.Order() == 0 {
		return nil, fmt.Errorf("ss: cannot observe a zero-order model")
	}
	if len(gain) != model.Order() {
		return nil, fmt.Errorf("ss: observer gain has %d elements, want %d", len(gain), model.Order())
	}
	return &Observer{model: model, gain: mat.NewVecDense(len(gain), gain)}, nil
}

// Derivative is the model derivative plus the output-error correction term.
func (o *Observer) Derivative(x *mat.VecDense) *mat.VecDense {
	o.model.input = o.input
	out := o.model.Derivative(x)
	innov := o.measured - mat.Dot(o.model.c, x) - o.model.d*o.input
	out.AddScaledVec(out, innov, o.gain)
	return out
}

func (o *Observer) Output(in signal.Signal[signal.Pair[float64, float64], signal.Continuous]) signal.Signal[float64, signal.Continuous] {
	o.input = in.Value.First
	o.measured = in.Value.Second

	o.model.state = o.model.method.Integrate(o.model.state, in.Delta.Dt, o)
	y := mat.Dot(o.model.c, o.model.state) + o.model.d*o.input

	o.last = y
	o.hasOutput = true
	return signal.FromDelta[float64, signal.Continuous](y, in.Delta)
}

func (o *Observer) LastOutput() (float64, bool) {
	return o.last, o.hasOutput
}

// Estimate returns a copy of the current state estimate.
func (o *Observer) Estimate() []float64 { return o.model.Snapshot() }

func (o *Observer) Reset() {
	o.model.Reset()
	o.input = 0
	o.measured = 0
	o.last = 0
	o.hasOutput = false
}
