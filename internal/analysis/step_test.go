package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/matheuswhite/aule/internal/solver"
	"github.com/matheuswhite/aule/internal/ss"
	"github.com/matheuswhite/aule/internal/tf"
)

func realize(t *testing.T, num, den []float64) *ss.StateSpace {
	t.Helper()
	plant, err := tf.New(num, den)
	if err != nil {
		t.Fatalf("transfer function rejected: %v", err)
	}
	sys, err := ss.FromTransferFunction(plant, solver.NewRK4())
	if err != nil {
		t.Fatalf("realization failed: %v", err)
	}
	return sys
}

func TestFirstOrderStepInfo(t *testing.T) {
	info, err := NewStepResponse(realize(t, []float64{1}, []float64{1, 1})).
		WithDuration(10 * time.Second).
		Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(info.FinalValue-1.0) > 1e-4 {
		t.Errorf("expected final value 1.0, got %v", info.FinalValue)
	}
	// 10-90% rise of a first-order lag is ln(9) time constants.
	if math.Abs(info.RiseTime-math.Log(9)) > 0.01 {
		t.Errorf("expected rise time %v, got %v", math.Log(9), info.RiseTime)
	}
	// 2% settling at -ln(0.02).
	if math.Abs(info.SettlingTime-3.912) > 0.02 {
		t.Errorf("expected settling time ~3.912, got %v", info.SettlingTime)
	}
	if info.Overshoot > 1e-3 {
		t.Errorf("first-order lag must not overshoot, got %v", info.Overshoot)
	}
}

func TestUnderdampedOvershoot(t *testing.T) {
	// 1/(s^2 + s + 1): zeta = 0.5, overshoot exp(-zeta*pi/sqrt(1-zeta^2)).
	info, err := NewStepResponse(realize(t, []float64{1}, []float64{1, 1, 1})).
		WithDuration(30 * time.Second).
		Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := math.Exp(-0.5 * math.Pi / math.Sqrt(0.75))
	if math.Abs(info.Overshoot-want) > 0.005 {
		t.Errorf("expected overshoot %v, got %v", want, info.Overshoot)
	}
	// Peak at pi/omega_d.
	wantPeak := math.Pi / math.Sqrt(0.75)
	if math.Abs(info.PeakTime-wantPeak) > 0.01 {
		t.Errorf("expected peak time %v, got %v", wantPeak, info.PeakTime)
	}
	if info.Undershoot <= 0 {
		t.Errorf("underdamped response must undershoot after the peak, got %v", info.Undershoot)
	}
}

func TestScaledStep(t *testing.T) {
	info, err := NewStepResponse(realize(t, []float64{2}, []float64{1, 1})).
		WithDuration(10 * time.Second).
		WithAmplitude(3.0).
		Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if math.Abs(info.FinalValue-6.0) > 1e-3 {
		t.Errorf("expected final value 6.0, got %v", info.FinalValue)
	}
}

func TestRejectsBadSettings(t *testing.T) {
	if _, err := NewStepResponse(realize(t, []float64{1}, []float64{1, 1})).WithStep(0).Run(); err == nil {
		t.Error("expected error for zero step")
	}
	if _, err := NewStepResponse(realize(t, []float64{1}, []float64{1, 1})).WithDuration(-time.Second).Run(); err == nil {
		t.Error("expected error for negative duration")
	}
}
