// Package sweep runs one scenario across a grid of PID gains, each loop in
// its own goroutine, and ranks the outcomes by a performance index.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/matheuswhite/aule/internal/config"
	"github.com/matheuswhite/aule/internal/metrics"
	"github.com/matheuswhite/aule/internal/signal"
)

// Point is one gain combination to evaluate.
type Point struct {
	Kp float64
	Ki float64
	Kd float64
}

// Outcome pairs a point with the indices its run produced.
type Outcome struct {
	Point   Point
	Indices map[string]float64
}

// Grid enumerates the cartesian product of the gain lists.
func Grid(kps, kis, kds []float64) []Point {
	points := make([]Point, 0, len(kps)*len(kis)*len(kds))
	for _, kp := range kps {
		for _, ki := range kis {
			for _, kd := range kds {
				points = append(points, Point{Kp: kp, Ki: ki, Kd: kd})
			}
		}
	}
	return points
}

type Sweep struct {
	cfg    *config.Config
	points []Point
}

// New prepares a sweep over the given scenario. The config's controller
// must be a PID; its gains are overridden per point.
func New(cfg *config.Config, points []Point) (*Sweep, error) {
	if cfg.Controller.Type != "pid" {
		return nil, fmt.Errorf("sweep: controller must be pid, got %q", cfg.Controller.Type)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("sweep: no points to evaluate")
	}
	return &Sweep{cfg: cfg, points: points}, nil
}

// Run evaluates every point concurrently. Each run gets its own loop built
// from a copy of the config, so the points share nothing.
func (s *Sweep) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, len(s.points))
	errs := make([]error, len(s.points))

	var wg sync.WaitGroup
	for i, point := range s.points {
		wg.Add(1)
		go func(idx int, pt Point) {
			defer wg.Done()

			cfg := *s.cfg
			cfg.Controller.Kp = pt.Kp
			cfg.Controller.Ki = pt.Ki
			cfg.Controller.Kd = pt.Kd

			runner, clock, err := config.Build(&cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			runner.AddIndex("iae", metrics.NewIAE[signal.Continuous]())
			runner.AddIndex("ise", metrics.NewISE[signal.Continuous]())
			runner.AddIndex("itae", metrics.NewITAE[signal.Continuous]())

			result, err := runner.Run(ctx, clock)
			if err != nil {
				errs[idx] = err
				return
			}
			outcomes[idx] = Outcome{Point: pt, Indices: result.Indices}
		}(i, point)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outcomes, nil
}

// Best returns the outcome with the lowest value of the named index.
func Best(outcomes []Outcome, index string) (Outcome, error) {
	if len(outcomes) == 0 {
		return Outcome{}, fmt.Errorf("sweep: no outcomes")
	}
	best := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.Indices[index] < best.Indices[index] {
			best = o
		}
	}
	if _, ok := best.Indices[index]; !ok {
		return Outcome{}, fmt.Errorf("sweep: unknown index %q", index)
	}
	return best, nil
}
