package signal

import "time"

// Delta is the time annotation carried by every signal: the step size that
// produced the value and the simulation time accumulated so far.
type Delta struct {
	Dt      time.Duration
	Elapsed time.Duration
}

// NewDelta builds an annotation for a single step of size dt taken at
// elapsed simulation time elapsed.
func NewDelta(dt, elapsed time.Duration) Delta {
	return Delta{Dt: dt, Elapsed: elapsed}
}

// Seconds returns the step size in seconds.
func (d Delta) Seconds() float64 { return d.Dt.Seconds() }

// ElapsedSeconds returns the accumulated simulation time in seconds.
func (d Delta) ElapsedSeconds() float64 { return d.Elapsed.Seconds() }

// Advance returns the annotation one step of size dt later.
func (d Delta) Advance(dt time.Duration) Delta {
	return Delta{Dt: dt, Elapsed: d.Elapsed + dt}
}

// Domain is the time-domain marker a signal is parameterized by. The marker
// only matters when two signals produced on different upstream paths are
// combined: Merge defines the deterministic policy for reconciling their
// annotations.
//
// Continuous averages the two step sizes, since a value interpolated between
// two samples is best described by their representative step. Discrete keeps
// the left operand's tick: discrete signals combined arithmetically are
// expected to share a clock, and the left operand is the driving one.
// Both domains keep the later of the two elapsed times.
type Domain interface {
	Continuous | Discrete

	Merge(a, b Delta) Delta
}

// Continuous marks signals sampled from a continuous-time process.
type Continuous struct{}

// Discrete marks signals produced by a fixed-tick discrete-time process.
type Discrete struct{}

func (Continuous) Merge(a, b Delta) Delta {
	return Delta{
		Dt:      (a.Dt + b.Dt) / 2,
		Elapsed: maxDuration(a.Elapsed, b.Elapsed),
	}
}

func (Discrete) Merge(a, b Delta) Delta {
	return Delta{
		Dt:      a.Dt,
		Elapsed: maxDuration(a.Elapsed, b.Elapsed),
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
