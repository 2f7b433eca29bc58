// Package input provides the signal generators that feed a block chain:
// step, ramp, sinusoid, square, sawtooth and impulse sources. Generators
// compute from the tick's elapsed time, so they stay correct under varying
// step sizes and are trivially resettable.
package input

import (
	"math"
	"time"

	"github.com/matheuswhite/aule/internal/signal"
)

// Step emits a constant value from t = 0 on.
type Step[D signal.Domain] struct {
	value float64
	last  float64
	ok    bool
}

func NewStep[D signal.Domain](value float64) *Step[D] {
	return &Step[D]{value: value}
}

// UnitStep is the canonical test input.
func UnitStep[D signal.Domain]() *Step[D] {
	return NewStep[D](1.0)
}

func (s *Step[D]) Output(in signal.Tick[D]) signal.Signal[float64, D] {
	out := signal.FromDelta[float64, D](s.value, in.Delta)
	s.last = out.Value
	s.ok = true
	return out
}

func (s *Step[D]) LastOutput() (float64, bool) { return s.last, s.ok }

func (s *Step[D]) Reset() {
	s.last = 0
	s.ok = false
}

// Ramp grows linearly with elapsed time at the configured slope.
type Ramp[D signal.Domain] struct {
	slope float64
	last  float64
	ok    bool
}

func NewRamp[D signal.Domain](slope float64) *Ramp[D] {
	return &Ramp[D]{slope: slope}
}

func (r *Ramp[D]) Output(in signal.Tick[D]) signal.Signal[float64, D] {
	out := signal.FromDelta[float64, D](r.slope*in.Delta.ElapsedSeconds(), in.Delta)
	r.last = out.Value
	r.ok = true
	return out
}

func (r *Ramp[D]) LastOutput() (float64, bool) { return r.last, r.ok }

func (r *Ramp[D]) Reset() {
	r.last = 0
	r.ok = false
}

// Sinusoid emits amplitude·sin(2πft + phase).
type Sinusoid[D signal.Domain] struct {
	amplitude float64
	frequency float64
	phase     float64
	last      float64
	ok        bool
}

func NewSinusoid[D signal.Domain](amplitude, frequency, phase float64) *Sinusoid[D] {
	return &Sinusoid[D]{amplitude: amplitude, frequency: frequency, phase: phase}
}

func (s *Sinusoid[D]) Output(in signal.Tick[D]) signal.Signal[float64, D] {
	t := in.Delta.ElapsedSeconds()
	v := s.amplitude * math.Sin(2*math.Pi*s.frequency*t+s.phase)
	out := signal.FromDelta[float64, D](v, in.Delta)
	s.last = out.Value
	s.ok = true
	return out
}

func (s *Sinusoid[D]) LastOutput() (float64, bool) { return s.last, s.ok }

func (s *Sinusoid[D]) Reset() {
	s.last = 0
	s.ok = false
}

// Square alternates between amplitude+offset and offset each half period.
type Square[D signal.Domain] struct {
	amplitude float64
	period    time.Duration
	offset    float64
	last      float64
	ok        bool
}

func NewSquare[D signal.Domain](amplitude float64, period time.Duration, offset float64) *Square[D] {
	return &Square[D]{amplitude: amplitude, period: period, offset: offset}
}

func (s *Square[D]) Output(in signal.Tick[D]) signal.Signal[float64, D] {
	t := in.Delta.ElapsedSeconds()
	period := s.period.Seconds()
	v := s.offset
	if math.Mod(t, period) < period/2 {
		v += s.amplitude
	}
	out := signal.FromDelta[float64, D](v, in.Delta)
	s.last = out.Value
	s.ok = true
	return out
}

func (s *Square[D]) LastOutput() (float64, bool) { return s.last, s.ok }

func (s *Square[D]) Reset() {
	s.last = 0
	s.ok = false
}

// Sawtooth rises from 0 to amplitude over each period, then drops.
type Sawtooth[D signal.Domain] struct {
	amplitude float64
	period    time.Duration
	last      float64
	ok        bool
}

func NewSawtooth[D signal.Domain](amplitude float64, period time.Duration) *Sawtooth[D] {
	return &Sawtooth[D]{amplitude: amplitude, period: period}
}

func (s *Sawtooth[D]) Output(in signal.Tick[D]) signal.Signal[float64, D] {
	period := s.period.Seconds()
	frac := math.Mod(in.Delta.ElapsedSeconds(), period) / period
	out := signal.FromDelta[float64, D](s.amplitude*frac, in.Delta)
	s.last = out.Value
	s.ok = true
	return out
}

func (s *Sawtooth[D]) LastOutput() (float64, bool) { return s.last, s.ok }

func (s *Sawtooth[D]) Reset() {
	s.last = 0
	s.ok = false
}

// Impulse emits its value on the first tick only.
type Impulse[D signal.Domain] struct {
	value float64
	fired bool
	last  float64
	ok    bool
}

func NewImpulse[D signal.Domain](value float64) *Impulse[D] {
	return &Impulse[D]{value: value}
}

func (i *Impulse[D]) Output(in signal.Tick[D]) signal.Signal[float64, D] {
	v := 0.0
	if !i.fired {
		v = i.value
		i.fired = true
	}
	out := signal.FromDelta[float64, D](v, in.Delta)
	i.last = out.Value
	i.ok = true
	return out
}

func (i *Impulse[D]) LastOutput() (float64, bool) { return i.last, i.ok }

func (i *Impulse[D]) Reset() {
	i.fired = false
	i.last = 0
	i.ok = false
}
