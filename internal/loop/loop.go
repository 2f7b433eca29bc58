// Package loop wires blocks into a closed feedback loop and runs it against
// a clock: a setpoint source feeds a comparator, the error drives the
// controller, and the control signal drives the plant, whose output closes
// the loop on the next tick.
package loop

import (
	"context"
	"fmt"

	"github.com/matheuswhite/aule/internal/block"
	"github.com/matheuswhite/aule/internal/signal"
)

// Index is a performance index spliced onto the error signal, such as the
// blocks in the metrics package.
type Index[D signal.Domain] interface {
	Output(in signal.Signal[float64, D]) signal.Signal[float64, D]
	Value() float64
	Reset()
}

// Observer is notified after every step. Exporters and live views attach
// here.
type Observer interface {
	OnStep(step Step)
}

// Step is one sample of the closed loop.
type Step struct {
	Time     float64
	Setpoint float64
	Control  float64
	Output   float64
}

// Result collects the trajectories of a finished run.
type Result struct {
	Times     []float64
	Setpoints []float64
	Controls  []float64
	Outputs   []float64
	Indices   map[string]float64
}

// Runner owns the three blocks of a unity-feedback loop.
type Runner[D signal.Domain] struct {
	source     block.Source[D]
	controller block.SISO[D]
	plant      block.SISO[D]

	observers []Observer
	indices   map[string]Index[D]
}

func New[D signal.Domain](source block.Source[D], controller, plant block.SISO[D]) *Runner[D] {
	return &Runner[D]{
		source:     source,
		controller: controller,
		plant:      plant,
		indices:    make(map[string]Index[D]),
	}
}

func (r *Runner[D]) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Controller exposes the controller block, for callers that retune it
// between steps.
func (r *Runner[D]) Controller() block.SISO[D] { return r.controller }

// AddIndex registers a named performance index over the error signal.
func (r *Runner[D]) AddIndex(name string, idx Index[D]) {
	r.indices[name] = idx
}

// Run drives the loop until the clock's horizon, collecting trajectories.
// Cancelling the context returns the partial result with the context's
// error.
func (r *Runner[D]) Run(ctx context.Context, clock *signal.Clock[D]) (*Result, error) {
	if _, bounded := clock.Horizon(); !bounded {
		return nil, fmt.Errorf("loop: clock must have a horizon")
	}

	for _, idx := range r.indices {
		idx.Reset()
	}

	result := &Result{Indices: make(map[string]float64)}

	err := r.run(ctx, clock, func(step Step) bool {
		result.Times = append(result.Times, step.Time)
		result.Setpoints = append(result.Setpoints, step.Setpoint)
		result.Controls = append(result.Controls, step.Control)
		result.Outputs = append(result.Outputs, step.Output)
		return true
	})

	for name, idx := range r.indices {
		result.Indices[name] = idx.Value()
	}
	return result, err
}

// RunWithCallback drives the loop, handing every step to the callback. The
// run stops early when the callback returns false.
func (r *Runner[D]) RunWithCallback(ctx context.Context, clock *signal.Clock[D], callback func(Step) bool) error {
	return r.run(ctx, clock, callback)
}

func (r *Runner[D]) run(ctx context.Context, clock *signal.Clock[D], callback func(Step) bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tick, ok := clock.Next()
		if !ok {
			return nil
		}

		step := r.Step(tick)
		for _, obs := range r.observers {
			obs.OnStep(step)
		}
		if !callback(step) {
			return nil
		}
	}
}

// Step advances the loop by one tick: setpoint, error against the plant's
// previous output, controller, plant.
func (r *Runner[D]) Step(tick signal.Tick[D]) Step {
	sp := r.source.Output(tick)

	prev, ok := r.plant.LastOutput()
	e := signal.SubMaybe(sp, prev, ok)
	for _, idx := range r.indices {
		idx.Output(e)
	}

	u := r.controller.Output(e)
	y := r.plant.Output(u)

	return Step{
		Time:     tick.Delta.ElapsedSeconds(),
		Setpoint: sp.Value,
		Control:  u.Value,
		Output:   y.Value,
	}
}

// Reset returns every block and index to its initial state for a repeated
// run. The clock is reset by the caller.
func (r *Runner[D]) Reset() {
	r.source.Reset()
	r.controller.Reset()
	r.plant.Reset()
	for _, idx := range r.indices {
		idx.Reset()
	}
}
