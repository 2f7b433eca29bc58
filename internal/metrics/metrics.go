// Package metrics implements controller performance indices as pass-through
// blocks. Each block forwards its input untouched while accumulating a
// running index, so a metric can be spliced into any signal path without
// disturbing it. All indices are normalized by the number of samples seen.
package metrics

import (
	"github.com/matheuswhite/aule/internal/signal"
)

// IAE accumulates the integral of absolute error.
type IAE[D signal.Domain] struct {
	acc  float64
	n    int
	last float64
}

func NewIAE[D signal.Domain]() *IAE[D] { return &IAE[D]{} }

func (m *IAE[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	m.acc += abs(in.Value)
	m.n++
	m.last = in.Value
	return in
}

// Value is the mean absolute error over the samples seen so far.
func (m *IAE[D]) Value() float64 { return mean(m.acc, m.n) }

func (m *IAE[D]) LastOutput() (float64, bool) { return m.last, m.n > 0 }

func (m *IAE[D]) Reset() { m.acc, m.n, m.last = 0, 0, 0 }

// ISE accumulates the integral of squared error.
type ISE[D signal.Domain] struct {
	acc  float64
	n    int
	last float64
}

func NewISE[D signal.Domain]() *ISE[D] { return &ISE[D]{} }

func (m *ISE[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	m.acc += in.Value * in.Value
	m.n++
	m.last = in.Value
	return in
}

func (m *ISE[D]) Value() float64 { return mean(m.acc, m.n) }

func (m *ISE[D]) LastOutput() (float64, bool) { return m.last, m.n > 0 }

func (m *ISE[D]) Reset() { m.acc, m.n, m.last = 0, 0, 0 }

// ITAE accumulates the time-weighted absolute error, weighting each sample
// by its ordinal so late errors cost more than early ones.
type ITAE[D signal.Domain] struct {
	acc  float64
	n    int
	last float64
}

func NewITAE[D signal.Domain]() *ITAE[D] { return &ITAE[D]{} }

func (m *ITAE[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	m.n++
	m.acc += float64(m.n) * abs(in.Value)
	m.last = in.Value
	return in
}

func (m *ITAE[D]) Value() float64 { return mean(m.acc, m.n) }

func (m *ITAE[D]) LastOutput() (float64, bool) { return m.last, m.n > 0 }

func (m *ITAE[D]) Reset() { m.acc, m.n, m.last = 0, 0, 0 }

// GoodHart scores a loop by three weighted terms over the full run: the mean
// control effort, the mean deviation of the control effort from its mean,
// and the mean absolute error. It consumes the error paired with the control
// signal.
type GoodHart[D signal.Domain] struct {
	errs     []float64
	controls []float64
	alpha1   float64
	alpha2   float64
	alpha3   float64
}

func NewGoodHart[D signal.Domain](alpha1, alpha2, alpha3 float64) *GoodHart[D] {
	return &GoodHart[D]{alpha1: alpha1, alpha2: alpha2, alpha3: alpha3}
}

func (m *GoodHart[D]) Output(in signal.Signal[signal.Pair[float64, float64], D]) signal.Signal[signal.Pair[float64, float64], D] {
	m.errs = append(m.errs, in.Value.First)
	m.controls = append(m.controls, in.Value.Second)
	return in
}

func (m *GoodHart[D]) Value() float64 {
	if len(m.errs) == 0 {
		return 0
	}
	n := float64(len(m.errs))

	var effort float64
	for _, u := range m.controls {
		effort += u
	}
	effort /= n

	var deviation float64
	for _, u := range m.controls {
		deviation += u - effort
	}
	deviation /= n

	var absErr float64
	for _, e := range m.errs {
		absErr += abs(e)
	}
	absErr /= n

	return m.alpha1*effort + m.alpha2*deviation + m.alpha3*absErr
}

func (m *GoodHart[D]) LastOutput() (signal.Pair[float64, float64], bool) {
	if len(m.errs) == 0 {
		return signal.Pair[float64, float64]{}, false
	}
	return signal.Pair[float64, float64]{
		First:  m.errs[len(m.errs)-1],
		Second: m.controls[len(m.controls)-1],
	}, true
}

func (m *GoodHart[D]) Reset() {
	m.errs = m.errs[:0]
	m.controls = m.controls[:0]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mean(acc float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return acc / float64(n)
}
