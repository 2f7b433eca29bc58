package control

import (
	"strings"
	"testing"
	"time"

	"github.com/matheuswhite/aule/internal/signal"
)

func csig(v float64) signal.Signal[float64, signal.Continuous] {
	return signal.New[float64, signal.Continuous](v, time.Second)
}

func TestProportionalOnly(t *testing.T) {
	pid := NewPID[signal.Continuous](3, 0, 0)
	if out := pid.Output(csig(2.0)); out.Value != 6.0 {
		t.Errorf("expected 6.0, got %v", out.Value)
	}
}

func TestIntegralAccumulates(t *testing.T) {
	pid := NewPID[signal.Continuous](0, 1, 0)
	want := []float64{1, 2, 3}
	for i, w := range want {
		if out := pid.Output(csig(1.0)); out.Value != w {
			t.Errorf("step %d: expected %v, got %v", i, w, out.Value)
		}
	}
	if pid.Integral() != 3.0 {
		t.Errorf("expected integral 3.0, got %v", pid.Integral())
	}
}

func TestDerivativeTracksErrorSlope(t *testing.T) {
	pid := NewPID[signal.Continuous](0, 0, 1)
	if out := pid.Output(csig(1.0)); out.Value != 1.0 {
		t.Errorf("expected 1.0, got %v", out.Value)
	}
	if out := pid.Output(csig(3.0)); out.Value != 2.0 {
		t.Errorf("expected 2.0, got %v", out.Value)
	}
}

func TestAntiWindupFreezesIntegral(t *testing.T) {
	pid, err := NewPID[signal.Continuous](0, 1, 0).WithAntiWindup(-1, 1)
	if err != nil {
		t.Fatalf("anti-windup rejected: %v", err)
	}

	if out := pid.Output(csig(1.0)); out.Value != 1.0 {
		t.Errorf("expected 1.0 within bounds, got %v", out.Value)
	}
	for i := 0; i < 3; i++ {
		if out := pid.Output(csig(1.0)); out.Value != 1.0 {
			t.Errorf("saturated step %d: expected clamp at 1.0, got %v", i, out.Value)
		}
	}
	if pid.Integral() != 1.0 {
		t.Errorf("integral must freeze at 1.0 while saturated, got %v", pid.Integral())
	}

	// The integral did not wind up, so recovery is immediate.
	if out := pid.Output(csig(-1.0)); out.Value != 0.0 {
		t.Errorf("expected 0.0 on reversal, got %v", out.Value)
	}
}

func TestAntiWindupInvertedBounds(t *testing.T) {
	if _, err := NewPID[signal.Continuous](1, 1, 0).WithAntiWindup(1, -1); err == nil {
		t.Error("expected error for inverted bounds")
	}
}

func TestResetReplays(t *testing.T) {
	pid := NewPID[signal.Continuous](1, 1, 1)
	inputs := []float64{1, 0.5, -0.25, 0}

	var first []float64
	for _, e := range inputs {
		first = append(first, pid.Output(csig(e)).Value)
	}
	last, ok := pid.LastOutput()
	if !ok || last != first[len(first)-1] {
		t.Errorf("unexpected last output: %v (%v)", last, ok)
	}

	pid.Reset()
	if _, ok := pid.LastOutput(); ok {
		t.Error("reset must clear the last output")
	}
	for i, e := range inputs {
		if got := pid.Output(csig(e)).Value; got != first[i] {
			t.Errorf("replay diverged at step %d: %v vs %v", i, got, first[i])
		}
	}
}

func TestRetuning(t *testing.T) {
	pid := NewPID[signal.Continuous](1, 2, 3)
	kp, ki, kd := pid.Gains()
	if kp != 1 || ki != 2 || kd != 3 {
		t.Errorf("unexpected gains: %v %v %v", kp, ki, kd)
	}
	pid.SetGains(4, 0, 0)
	if out := pid.Output(csig(1.0)); out.Value != 4.0 {
		t.Errorf("expected retuned output 4.0, got %v", out.Value)
	}
}

func TestMetricsSummary(t *testing.T) {
	pid := NewPID[signal.Continuous](1, 0, 0).WithIAE().WithISE()
	pid.Output(csig(2.0))
	pid.Output(csig(-2.0))

	summary := pid.MetricsSummary()
	if !strings.Contains(summary, "IAE: 2") {
		t.Errorf("expected IAE of 2 in summary:\n%s", summary)
	}
	if !strings.Contains(summary, "ISE: 4") {
		t.Errorf("expected ISE of 4 in summary:\n%s", summary)
	}
	if !strings.Contains(summary, "ITAE: N/A") {
		t.Errorf("expected unattached ITAE in summary:\n%s", summary)
	}
}
