package mpc

import (
	"math"

	"github.com/matheuswhite/aule/internal/signal"
)

// QuadraticCost penalizes squared tracking error and squared control effort
// over the rollout horizon.
type QuadraticCost struct {
	OutputWeight  float64
	ControlWeight float64
}

func (q QuadraticCost) Cost(model Model, reference, _ signal.Signal[float64, signal.Continuous], sequence []float64) float64 {
	return rollout(model, reference, sequence, func(err, u float64) float64 {
		return q.OutputWeight*err*err + q.ControlWeight*u*u
	})
}

// AbsoluteCost accumulates the absolute tracking error over the rollout
// horizon, an IAE-style objective.
type AbsoluteCost struct{}

func (AbsoluteCost) Cost(model Model, reference, _ signal.Signal[float64, signal.Continuous], sequence []float64) float64 {
	return rollout(model, reference, sequence, func(err, _ float64) float64 {
		return math.Abs(err)
	})
}

// rollout simulates the sequence against the model from its current state,
// accumulating the per-step cost, and puts the state back.
func rollout(model Model, reference signal.Signal[float64, signal.Continuous], sequence []float64, stepCost func(err, u float64) float64) float64 {
	snapshot := model.Snapshot()
	defer func() {
		// The snapshot came from the model, so it cannot mismatch.
		_ = model.Restore(snapshot)
	}()

	total := 0.0
	delta := reference.Delta
	for _, u := range sequence {
		out := model.Output(signal.FromDelta[float64, signal.Continuous](u, delta))
		total += stepCost(reference.Value-out.Value, u)
		delta = delta.Advance(delta.Dt)
	}
	return total
}
