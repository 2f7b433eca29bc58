package store

import (
	"testing"

	"github.com/matheuswhite/aule/internal/loop"
)

func sampleResult() *loop.Result {
	return &loop.Result{
		Times:     []float64{0.0, 0.01},
		Setpoints: []float64{1.0, 1.0},
		Controls:  []float64{2.0, 1.5},
		Outputs:   []float64{0.0, 0.5},
		Indices:   map[string]float64{"iae": 0.75},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("first_order", "rk4", "pid", 0.01, 1.0, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "first_order" || meta.Controller != "pid" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Indices["iae"] != 0.75 {
		t.Errorf("expected iae index 0.75, got %v", meta.Indices["iae"])
	}

	result, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("trajectory load failed: %v", err)
	}
	if len(result.Times) != 2 || result.Controls[1] != 1.5 || result.Outputs[1] != 0.5 {
		t.Errorf("trajectory round trip lost data: %+v", result)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save("second_order", "euler", "none", 0.01, 2.0, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Scenario != "second_order" {
		t.Errorf("unexpected listing: %+v", runs)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/sure")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir must not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
