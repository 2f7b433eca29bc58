package signal

import (
	"fmt"
	"iter"
	"time"
)

// Clock is a fixed-step simulation time source. Each call to Next advances
// elapsed time by the current step and yields the tick carrying the new
// annotation. The step may be changed mid-run; the kernel never assumes a
// uniform step sequence.
type Clock[D Domain] struct {
	dt      time.Duration
	elapsed time.Duration
	horizon time.Duration
	bounded bool
}

// NewClock builds a clock with the given step. The step must be strictly
// positive: downstream blocks divide by dt.
func NewClock[D Domain](dt time.Duration) (*Clock[D], error) {
	if dt <= 0 {
		return nil, fmt.Errorf("clock step must be positive, got %v", dt)
	}
	return &Clock[D]{dt: dt}, nil
}

// NewContinuousClock builds a bounded continuous-time clock from step and
// horizon in seconds.
func NewContinuousClock(dt, horizon float64) (*Clock[Continuous], error) {
	c, err := NewClock[Continuous](time.Duration(float64(time.Second) * dt))
	if err != nil {
		return nil, err
	}
	return c.WithHorizon(time.Duration(float64(time.Second) * horizon)), nil
}

// WithHorizon bounds the clock: ticks stop once elapsed time would exceed
// max.
func (c *Clock[D]) WithHorizon(max time.Duration) *Clock[D] {
	c.horizon = max
	c.bounded = true
	return c
}

// SetStep changes the step used for subsequent ticks.
func (c *Clock[D]) SetStep(dt time.Duration) error {
	if dt <= 0 {
		return fmt.Errorf("clock step must be positive, got %v", dt)
	}
	c.dt = dt
	return nil
}

// Step reports the current step.
func (c *Clock[D]) Step() time.Duration { return c.dt }

// Elapsed reports the simulation time consumed so far.
func (c *Clock[D]) Elapsed() time.Duration { return c.elapsed }

// Horizon reports the bound, if any.
func (c *Clock[D]) Horizon() (time.Duration, bool) { return c.horizon, c.bounded }

// Next advances the clock one step. It reports false once the horizon is
// exhausted.
func (c *Clock[D]) Next() (Tick[D], bool) {
	next := c.elapsed + c.dt
	if c.bounded && next > c.horizon {
		return Tick[D]{}, false
	}
	c.elapsed = next
	return Tick[D]{Delta: Delta{Dt: c.dt, Elapsed: c.elapsed}}, true
}

// Ticks iterates the remaining ticks, for use with range.
func (c *Clock[D]) Ticks() iter.Seq[Tick[D]] {
	return func(yield func(Tick[D]) bool) {
		for {
			tick, ok := c.Next()
			if !ok || !yield(tick) {
				return
			}
		}
	}
}

// Reset rewinds elapsed time to zero for a repeated deterministic run.
func (c *Clock[D]) Reset() {
	c.elapsed = 0
}
