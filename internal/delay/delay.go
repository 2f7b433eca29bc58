// Package delay implements a pure transport delay that tolerates a variable
// step. Inputs are buffered against the simulation time at which they become
// visible; outputs interpolate linearly between the two buffered samples
// bracketing the current time, so the block stays exact under step changes
// mid-run.
package delay

import (
	"fmt"
	"time"

	"github.com/matheuswhite/aule/internal/signal"
)

// Delay shifts its input signal by a fixed duration. Before the delay has
// elapsed it emits the initial value (zero unless overridden).
type Delay[D signal.Domain] struct {
	delay        time.Duration
	initialValue float64

	// Entries are kept sorted by the time they become visible, which is
	// the input's elapsed time plus the delay.
	buffer []signal.Signal[float64, D]

	last      float64
	hasOutput bool
}

// New builds a transport delay. The duration must be strictly positive; a
// zero delay is the identity block and a negative one is acausal.
func New[D signal.Domain](d time.Duration) (*Delay[D], error) {
	if d <= 0 {
		return nil, fmt.Errorf("delay: duration must be positive, got %v", d)
	}
	return &Delay[D]{delay: d}, nil
}

// WithInitialValue sets the value emitted while the first input is still in
// transit. It also seeds the buffer's left bracket, so the output ramps from
// this value toward the first input instead of from zero.
func (d *Delay[D]) WithInitialValue(v float64) *Delay[D] {
	d.initialValue = v
	return d
}

func (d *Delay[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	now := in.Delta.Elapsed

	if len(d.buffer) == 0 {
		seed := signal.FromDelta[float64, D](d.initialValue, signal.NewDelta(d.delay, d.delay))
		d.buffer = append(d.buffer, seed)
	}

	shifted := in
	shifted.Delta.Elapsed += d.delay
	d.buffer = append(d.buffer, shifted)

	if now < d.delay {
		out := in.Replace(d.initialValue)
		d.last = out.Value
		d.hasOutput = true
		return out
	}

	d.prune(now)

	first := d.buffer[0]
	second := in
	if len(d.buffer) > 1 {
		second = d.buffer[1]
	}
	if now < first.Delta.Elapsed {
		second = first
		first = in
	}

	gamma := 0.0
	if i0, i1 := first.Delta.Elapsed, second.Delta.Elapsed; i0 != i1 {
		gamma = (now - i0).Seconds() / (i1 - i0).Seconds()
	}
	if gamma < 0 || gamma > 1 {
		panic(fmt.Sprintf("delay: interpolation factor %v outside [0, 1]", gamma))
	}

	var dom D
	out := signal.Signal[float64, D]{
		Value: first.Value*(1-gamma) + second.Value*gamma,
		Delta: dom.Merge(first.Delta, second.Delta),
	}
	d.last = out.Value
	d.hasOutput = true
	return out
}

// prune drops buffered entries that can no longer be the left bracket. An
// entry is obsolete once the one after it is also at or before now.
func (d *Delay[D]) prune(now time.Duration) {
	for len(d.buffer) >= 2 && d.buffer[1].Delta.Elapsed <= now {
		d.buffer = d.buffer[1:]
	}
}

func (d *Delay[D]) LastOutput() (float64, bool) {
	return d.last, d.hasOutput
}

// Reset drops the buffered inputs. The initial value survives, so the block
// behaves as freshly constructed.
func (d *Delay[D]) Reset() {
	d.buffer = nil
	d.last = 0
	d.hasOutput = false
}
