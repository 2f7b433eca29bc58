package viz

import (
	"strings"
	"testing"

	"github.com/matheuswhite/aule/internal/loop"
)

func sampleResult() *loop.Result {
	return &loop.Result{
		Times:     []float64{0, 1, 2, 3},
		Setpoints: []float64{1, 1, 1, 1},
		Controls:  []float64{2, 1, 0.5, 0.2},
		Outputs:   []float64{0, 0.5, 0.8, 0.9},
		Indices:   map[string]float64{"ise": 0.3, "iae": 0.5},
	}
}

func TestPlotRendersSeries(t *testing.T) {
	out := Plot(sampleResult())
	if !strings.Contains(out, "setpoint / output") {
		t.Errorf("missing caption in plot:\n%s", out)
	}
}

func TestPlotControl(t *testing.T) {
	out := PlotControl(sampleResult())
	if !strings.Contains(out, "control effort") {
		t.Errorf("missing caption in plot:\n%s", out)
	}
}

func TestIndicesSorted(t *testing.T) {
	out := Indices(sampleResult())
	iae := strings.Index(out, "iae")
	ise := strings.Index(out, "ise")
	if iae == -1 || ise == -1 || iae > ise {
		t.Errorf("indices missing or unsorted:\n%s", out)
	}
}
