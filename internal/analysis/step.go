// Package analysis characterizes block dynamics in the time domain. The
// step response runner drives a block with a step input and extracts the
// standard transient figures: peak, rise time, settling time, overshoot and
// undershoot.
package analysis

import (
	"fmt"
	"time"

	"github.com/matheuswhite/aule/internal/block"
	"github.com/matheuswhite/aule/internal/input"
	"github.com/matheuswhite/aule/internal/signal"
)

// StepResponse drives a block with a step and records the trajectory.
type StepResponse struct {
	blk       block.SISO[signal.Continuous]
	step      time.Duration
	duration  time.Duration
	amplitude float64
}

// NewStepResponse builds a runner with a 1ms step over 100s and a unit
// step input.
func NewStepResponse(blk block.SISO[signal.Continuous]) *StepResponse {
	return &StepResponse{
		blk:       blk,
		step:      time.Millisecond,
		duration:  100 * time.Second,
		amplitude: 1.0,
	}
}

// WithStep sets the integration step.
func (r *StepResponse) WithStep(dt time.Duration) *StepResponse {
	r.step = dt
	return r
}

// WithDuration sets the simulated horizon.
func (r *StepResponse) WithDuration(d time.Duration) *StepResponse {
	r.duration = d
	return r
}

// WithAmplitude sets the step height.
func (r *StepResponse) WithAmplitude(a float64) *StepResponse {
	r.amplitude = a
	return r
}

// StepInfo is the transient characterization of a step response. Times are
// in seconds from the step edge.
type StepInfo struct {
	Peak         float64
	PeakTime     float64
	RiseTime     float64
	SettlingTime float64
	FinalValue   float64
	Overshoot    float64
	Undershoot   float64
	Times        []float64
	Y            []float64
}

// Run resets the block, simulates the step, and computes the transient
// figures. Rise time is 10% to 90% of the final value; settling time is the
// entry into the 2% band around it.
func (r *StepResponse) Run() (*StepInfo, error) {
	if r.step <= 0 || r.duration <= 0 {
		return nil, fmt.Errorf("analysis: step and duration must be positive")
	}

	clock, err := signal.NewClock[signal.Continuous](r.step)
	if err != nil {
		return nil, err
	}
	clock.WithHorizon(r.duration)
	src := input.NewStep[signal.Continuous](r.amplitude)

	r.blk.Reset()
	info := &StepInfo{}
	for tick := range clock.Ticks() {
		out := r.blk.Output(src.Output(tick))
		info.Times = append(info.Times, out.Delta.ElapsedSeconds())
		info.Y = append(info.Y, out.Value)
	}
	if len(info.Y) == 0 {
		return nil, fmt.Errorf("analysis: horizon %v shorter than step %v", r.duration, r.step)
	}

	info.FinalValue = info.Y[len(info.Y)-1]
	r.characterize(info)
	return info, nil
}

func (r *StepResponse) characterize(info *StepInfo) {
	final := info.FinalValue

	info.Peak = info.Y[0]
	for i, y := range info.Y {
		if y > info.Peak {
			info.Peak = y
			info.PeakTime = info.Times[i]
		}
	}
	if final != 0 {
		info.Overshoot = (info.Peak - final) / final
	}

	// Undershoot is measured against the minimum after the response first
	// reaches its final value.
	reached := false
	minAfter := final
	for _, y := range info.Y {
		if !reached && y >= final {
			reached = true
		}
		if reached && y < minAfter {
			minAfter = y
		}
	}
	if reached && final != 0 {
		info.Undershoot = (final - minAfter) / final
	}

	low, high := 0.1*final, 0.9*final
	tLow, tHigh := -1.0, -1.0
	for i, y := range info.Y {
		if tLow < 0 && y >= low {
			tLow = info.Times[i]
		}
		if tHigh < 0 && y >= high {
			tHigh = info.Times[i]
		}
	}
	if tLow >= 0 && tHigh >= 0 {
		info.RiseTime = tHigh - tLow
	}

	// Last excursion outside the band marks the settling instant.
	band := 0.02 * abs(final)
	info.SettlingTime = 0
	for i, y := range info.Y {
		if abs(y-final) > band {
			if i+1 < len(info.Times) {
				info.SettlingTime = info.Times[i+1]
			} else {
				info.SettlingTime = info.Times[i]
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
