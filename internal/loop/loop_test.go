package loop

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/matheuswhite/aule/internal/control"
	"github.com/matheuswhite/aule/internal/input"
	"github.com/matheuswhite/aule/internal/metrics"
	"github.com/matheuswhite/aule/internal/signal"
	"github.com/matheuswhite/aule/internal/solver"
	"github.com/matheuswhite/aule/internal/ss"
	"github.com/matheuswhite/aule/internal/tf"
)

func firstOrderPlant(t *testing.T) *ss.StateSpace {
	t.Helper()
	plant, err := tf.New([]float64{1}, []float64{1, 1})
	if err != nil {
		t.Fatalf("transfer function rejected: %v", err)
	}
	sys, err := ss.FromTransferFunction(plant, solver.NewRK4())
	if err != nil {
		t.Fatalf("realization failed: %v", err)
	}
	return sys
}

func TestClosedLoopTracksSetpoint(t *testing.T) {
	runner := New[signal.Continuous](
		input.UnitStep[signal.Continuous](),
		control.NewPID[signal.Continuous](2, 4, 0),
		firstOrderPlant(t),
	)
	runner.AddIndex("iae", metrics.NewIAE[signal.Continuous]())

	clock, err := signal.NewContinuousClock(0.001, 10.0)
	if err != nil {
		t.Fatalf("clock rejected: %v", err)
	}

	result, err := runner.Run(context.Background(), clock)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 10000 {
		t.Fatalf("expected 10000 samples, got %d", len(result.Times))
	}
	if len(result.Outputs) != len(result.Times) || len(result.Controls) != len(result.Times) {
		t.Fatalf("trajectory lengths diverge")
	}

	final := result.Outputs[len(result.Outputs)-1]
	if math.Abs(final-1.0) > 0.01 {
		t.Errorf("loop did not settle at the setpoint: final output %v", final)
	}

	iae, ok := result.Indices["iae"]
	if !ok {
		t.Fatal("registered index missing from result")
	}
	if iae <= 0 || iae > 0.1 {
		t.Errorf("unexpected iae %v", iae)
	}
}

func TestRunRequiresHorizon(t *testing.T) {
	runner := New[signal.Continuous](
		input.UnitStep[signal.Continuous](),
		control.NewPID[signal.Continuous](1, 0, 0),
		firstOrderPlant(t),
	)
	unbounded, err := signal.NewClock[signal.Continuous](10 * time.Millisecond)
	if err != nil {
		t.Fatalf("clock rejected: %v", err)
	}
	if _, err := runner.Run(context.Background(), unbounded); err == nil {
		t.Error("expected error for an unbounded clock")
	}
}

func TestCancelReturnsPartialResult(t *testing.T) {
	runner := New[signal.Continuous](
		input.UnitStep[signal.Continuous](),
		control.NewPID[signal.Continuous](1, 0, 0),
		firstOrderPlant(t),
	)
	clock, err := signal.NewContinuousClock(0.01, 100.0)
	if err != nil {
		t.Fatalf("clock rejected: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := runner.Run(ctx, clock)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(result.Times) != 0 {
		t.Errorf("expected no samples after immediate cancel, got %d", len(result.Times))
	}
}

func TestCallbackStopsEarly(t *testing.T) {
	runner := New[signal.Continuous](
		input.UnitStep[signal.Continuous](),
		control.NewPID[signal.Continuous](1, 0, 0),
		firstOrderPlant(t),
	)
	clock, err := signal.NewContinuousClock(0.01, 100.0)
	if err != nil {
		t.Fatalf("clock rejected: %v", err)
	}

	steps := 0
	err = runner.RunWithCallback(context.Background(), clock, func(Step) bool {
		steps++
		return steps < 5
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if steps != 5 {
		t.Errorf("expected 5 steps, got %d", steps)
	}
}

func TestResetReplaysRun(t *testing.T) {
	runner := New[signal.Continuous](
		input.UnitStep[signal.Continuous](),
		control.NewPID[signal.Continuous](2, 1, 0),
		firstOrderPlant(t),
	)
	clock, err := signal.NewContinuousClock(0.01, 1.0)
	if err != nil {
		t.Fatalf("clock rejected: %v", err)
	}

	first, err := runner.Run(context.Background(), clock)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	runner.Reset()
	clock.Reset()
	second, err := runner.Run(context.Background(), clock)
	if err != nil {
		t.Fatalf("rerun failed: %v", err)
	}

	for i := range first.Outputs {
		if first.Outputs[i] != second.Outputs[i] {
			t.Fatalf("replay diverged at step %d: %v vs %v", i, first.Outputs[i], second.Outputs[i])
		}
	}
}
