package block

import (
	"fmt"

	"github.com/matheuswhite/aule/internal/signal"
)

// Saturation clamps its input to [min, max].
type Saturation[D signal.Domain] struct {
	min, max float64
	last     float64
	ok       bool
}

func NewSaturation[D signal.Domain](min, max float64) (*Saturation[D], error) {
	if min > max {
		return nil, fmt.Errorf("saturation bounds inverted: min %v > max %v", min, max)
	}
	return &Saturation[D]{min: min, max: max}, nil
}

func (s *Saturation[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	v := in.Value
	if v < s.min {
		v = s.min
	} else if v > s.max {
		v = s.max
	}
	out := in.Replace(v)
	s.last = out.Value
	s.ok = true
	return out
}

func (s *Saturation[D]) LastOutput() (float64, bool) { return s.last, s.ok }

func (s *Saturation[D]) Reset() {
	s.last = 0
	s.ok = false
}
