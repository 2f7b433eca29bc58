package mpc

import (
	"math"

	"github.com/matheuswhite/aule/internal/signal"
)

// GridSearch exhaustively enumerates control sequences drawn from a fixed
// set of levels. The search space is len(levels)^horizon, so it is meant for
// short horizons and coarse grids.
type GridSearch struct {
	levels  []float64
	horizon int
}

func NewGridSearch(levels []float64, horizon int) *GridSearch {
	return &GridSearch{levels: append([]float64(nil), levels...), horizon: horizon}
}

func (g *GridSearch) Solve(model Model, cost CostFunction, reference, measured signal.Signal[float64, signal.Continuous]) []float64 {
	best := math.Inf(1)
	bestSeq := make([]float64, g.horizon)
	current := make([]float64, g.horizon)

	g.searchRecursive(0, current, model, cost, reference, measured, &best, bestSeq)
	return bestSeq
}

func (g *GridSearch) searchRecursive(depth int, current []float64, model Model, cost CostFunction, reference, measured signal.Signal[float64, signal.Continuous], best *float64, bestSeq []float64) {
	if depth == g.horizon {
		if c := cost.Cost(model, reference, measured, current); c < *best {
			*best = c
			copy(bestSeq, current)
		}
		return
	}

	for _, level := range g.levels {
		current[depth] = level
		g.searchRecursive(depth+1, current, model, cost, reference, measured, best, bestSeq)
	}
}
