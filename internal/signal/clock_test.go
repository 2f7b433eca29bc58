package signal

import (
	"testing"
	"time"
)

func TestClockRejectsNonPositiveStep(t *testing.T) {
	if _, err := NewClock[Continuous](0); err == nil {
		t.Error("expected error for zero step")
	}
	if _, err := NewClock[Continuous](-time.Second); err == nil {
		t.Error("expected error for negative step")
	}
}

func TestClockTicksToHorizon(t *testing.T) {
	clk, err := NewContinuousClock(1.0, 3.0)
	if err != nil {
		t.Fatalf("clock construction failed: %v", err)
	}

	var elapsed []float64
	for tick := range clk.Ticks() {
		elapsed = append(elapsed, tick.Delta.ElapsedSeconds())
	}

	want := []float64{1, 2, 3}
	if len(elapsed) != len(want) {
		t.Fatalf("expected %d ticks, got %d", len(want), len(elapsed))
	}
	for i := range want {
		if elapsed[i] != want[i] {
			t.Errorf("tick %d: expected t=%v, got %v", i, want[i], elapsed[i])
		}
	}
}

func TestClockVariableStep(t *testing.T) {
	clk, err := NewClock[Continuous](time.Second)
	if err != nil {
		t.Fatalf("clock construction failed: %v", err)
	}

	tick, _ := clk.Next()
	if tick.Delta.Dt != time.Second || tick.Delta.Elapsed != time.Second {
		t.Fatalf("unexpected first tick: %+v", tick.Delta)
	}

	if err := clk.SetStep(500 * time.Millisecond); err != nil {
		t.Fatalf("step change failed: %v", err)
	}
	tick, _ = clk.Next()
	if tick.Delta.Dt != 500*time.Millisecond {
		t.Errorf("expected half-second step, got %v", tick.Delta.Dt)
	}
	if tick.Delta.Elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1.5s, got %v", tick.Delta.Elapsed)
	}

	if err := clk.SetStep(0); err == nil {
		t.Error("expected error for zero step change")
	}
}

func TestClockReset(t *testing.T) {
	clk, _ := NewContinuousClock(0.5, 2.0)

	var first []time.Duration
	for tick := range clk.Ticks() {
		first = append(first, tick.Delta.Elapsed)
	}

	clk.Reset()

	var second []time.Duration
	for tick := range clk.Ticks() {
		second = append(second, tick.Delta.Elapsed)
	}

	if len(first) != len(second) {
		t.Fatalf("rerun produced %d ticks, first run %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("tick %d differs across runs: %v vs %v", i, first[i], second[i])
		}
	}
}
