package block

import "github.com/matheuswhite/aule/internal/signal"

// Gain scales its input by a constant factor.
type Gain[D signal.Domain] struct {
	k    float64
	last float64
	ok   bool
}

func NewGain[D signal.Domain](k float64) *Gain[D] {
	return &Gain[D]{k: k}
}

func (g *Gain[D]) Output(in signal.Signal[float64, D]) signal.Signal[float64, D] {
	out := signal.Scale(in, g.k)
	g.last = out.Value
	g.ok = true
	return out
}

func (g *Gain[D]) LastOutput() (float64, bool) { return g.last, g.ok }

func (g *Gain[D]) Reset() {
	g.last = 0
	g.ok = false
}
