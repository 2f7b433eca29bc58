package control

import (
	"time"

	"github.com/matheuswhite/aule/internal/block"
	"github.com/matheuswhite/aule/internal/delay"
	"github.com/matheuswhite/aule/internal/signal"
)

// SmithPredictor compensates a plant's transport delay with an internal
// delay-free model. It consumes the control signal paired with the measured
// plant output and emits the predicted undelayed output plus the model
// mismatch, suitable as the feedback term of an outer loop:
//
//	ŷ = model(u) + (y - delay(model(u)))
type SmithPredictor[D signal.Domain] struct {
	model *delayedModel[D]

	last      float64
	hasOutput bool
}

// SmithPredictorFiltered is a SmithPredictor with a filter on the model
// mismatch, trading disturbance rejection speed for robustness to model
// error.
type SmithPredictorFiltered[D signal.Domain] struct {
	model  *delayedModel[D]
	filter block.SISO[D]

	last      float64
	hasOutput bool
}

// delayedModel runs the delay-free process model and its delayed copy in
// lockstep.
type delayedModel[D signal.Domain] struct {
	process block.SISO[D]
	delay   *delay.Delay[D]
}

func newDelayedModel[D signal.Domain](process block.SISO[D], d time.Duration) (*delayedModel[D], error) {
	dl, err := delay.New[D](d)
	if err != nil {
		return nil, err
	}
	return &delayedModel[D]{process: process, delay: dl}, nil
}

// step returns the undelayed prediction and the mismatch against the
// measured output.
func (m *delayedModel[D]) step(u, y signal.Signal[float64, D]) (predicted, mismatch signal.Signal[float64, D]) {
	predicted = m.process.Output(u)
	delayed := m.delay.Output(predicted)
	return predicted, signal.Sub(y, delayed)
}

func (m *delayedModel[D]) reset() {
	m.process.Reset()
	m.delay.Reset()
}

// NewSmithPredictor wraps a delay-free model of the process with the known
// transport delay.
func NewSmithPredictor[D signal.Domain](process block.SISO[D], d time.Duration) (*SmithPredictor[D], error) {
	m, err := newDelayedModel[D](process, d)
	if err != nil {
		return nil, err
	}
	return &SmithPredictor[D]{model: m}, nil
}

func (s *SmithPredictor[D]) Output(in signal.Signal[signal.Pair[float64, float64], D]) signal.Signal[float64, D] {
	u, y := signal.Unpack(in)
	predicted, mismatch := s.model.step(u, y)
	out := signal.Add(predicted, mismatch)
	s.last = out.Value
	s.hasOutput = true
	return out
}

func (s *SmithPredictor[D]) LastOutput() (float64, bool) {
	return s.last, s.hasOutput
}

func (s *SmithPredictor[D]) Reset() {
	s.model.reset()
	s.last = 0
	s.hasOutput = false
}

// NewSmithPredictorFiltered additionally filters the model mismatch before
// it is added back.
func NewSmithPredictorFiltered[D signal.Domain](process, filter block.SISO[D], d time.Duration) (*SmithPredictorFiltered[D], error) {
	m, err := newDelayedModel[D](process, d)
	if err != nil {
		return nil, err
	}
	return &SmithPredictorFiltered[D]{model: m, filter: filter}, nil
}

func (s *SmithPredictorFiltered[D]) Output(in signal.Signal[signal.Pair[float64, float64], D]) signal.Signal[float64, D] {
	u, y := signal.Unpack(in)
	predicted, mismatch := s.model.step(u, y)
	out := signal.Add(predicted, s.filter.Output(mismatch))
	s.last = out.Value
	s.hasOutput = true
	return out
}

func (s *SmithPredictorFiltered[D]) LastOutput() (float64, bool) {
	return s.last, s.hasOutput
}

func (s *SmithPredictorFiltered[D]) Reset() {
	s.model.reset()
	s.filter.Reset()
	s.last = 0
	s.hasOutput = false
}
