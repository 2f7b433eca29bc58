package block

import (
	"testing"
	"time"

	"github.com/matheuswhite/aule/internal/signal"
)

func sig(v float64) signal.Signal[float64, signal.Continuous] {
	return signal.New[float64, signal.Continuous](v, time.Second)
}

func TestGain(t *testing.T) {
	g := NewGain[signal.Continuous](3.0)

	if _, ok := g.LastOutput(); ok {
		t.Error("last output must be unset before the first call")
	}

	out := g.Output(sig(2.0))
	if out.Value != 6.0 {
		t.Errorf("expected 6.0, got %v", out.Value)
	}
	if out.Delta.Dt != time.Second {
		t.Errorf("gain must keep the input annotation, got %v", out.Delta.Dt)
	}

	last, ok := g.LastOutput()
	if !ok || last != 6.0 {
		t.Errorf("expected last output 6.0, got %v (%v)", last, ok)
	}

	g.Reset()
	if _, ok := g.LastOutput(); ok {
		t.Error("reset must clear the last output")
	}
}

func TestSaturation(t *testing.T) {
	if _, err := NewSaturation[signal.Continuous](1.0, -1.0); err == nil {
		t.Error("expected error for inverted bounds")
	}

	sat, err := NewSaturation[signal.Continuous](-1.0, 1.0)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	cases := []struct{ in, want float64 }{
		{0.5, 0.5},
		{2.0, 1.0},
		{-3.0, -1.0},
		{1.0, 1.0},
	}
	for _, tc := range cases {
		if out := sat.Output(sig(tc.in)); out.Value != tc.want {
			t.Errorf("saturate(%v): expected %v, got %v", tc.in, tc.want, out.Value)
		}
	}
}

func TestChainComposesAndResets(t *testing.T) {
	double := NewGain[signal.Continuous](2.0)
	sat, _ := NewSaturation[signal.Continuous](0.0, 3.0)
	pipe := NewChain[signal.Continuous](double, sat)

	out := pipe.Output(sig(1.0))
	if out.Value != 2.0 {
		t.Errorf("expected 2.0, got %v", out.Value)
	}

	out = pipe.Output(sig(5.0))
	if out.Value != 3.0 {
		t.Errorf("expected saturated 3.0, got %v", out.Value)
	}

	last, ok := pipe.LastOutput()
	if !ok || last != 3.0 {
		t.Errorf("expected last output 3.0, got %v (%v)", last, ok)
	}

	pipe.Reset()
	if _, ok := pipe.LastOutput(); ok {
		t.Error("reset must clear the chain's last output")
	}
	if _, ok := double.LastOutput(); ok {
		t.Error("reset must fan out to every stage")
	}
}
