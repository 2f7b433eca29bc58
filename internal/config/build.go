package config

import (
	"fmt"
	"time"

	"github.com/matheuswhite/aule/internal/block"
	"github.com/matheuswhite/aule/internal/control"
	"github.com/matheuswhite/aule/internal/delay"
	"github.com/matheuswhite/aule/internal/input"
	"github.com/matheuswhite/aule/internal/loop"
	"github.com/matheuswhite/aule/internal/signal"
	"github.com/matheuswhite/aule/internal/solver"
	"github.com/matheuswhite/aule/internal/ss"
	"github.com/matheuswhite/aule/internal/tf"
)

// Build assembles the closed loop a config describes: setpoint source,
// controller, and the plant realization with its optional dead time.
func Build(cfg *Config) (*loop.Runner[signal.Continuous], *signal.Clock[signal.Continuous], error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	plant, err := buildPlant(cfg)
	if err != nil {
		return nil, nil, err
	}
	controller, err := buildController(cfg)
	if err != nil {
		return nil, nil, err
	}
	source := buildSource(cfg)

	clock, err := signal.NewContinuousClock(cfg.Dt, cfg.Duration)
	if err != nil {
		return nil, nil, err
	}

	return loop.New[signal.Continuous](source, controller, plant), clock, nil
}

// BuildPlant assembles only the plant realization, for open-loop analysis.
func BuildPlant(cfg *Config) (block.SISO[signal.Continuous], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return buildPlant(cfg)
}

func buildPlant(cfg *Config) (block.SISO[signal.Continuous], error) {
	trf, err := tf.New(cfg.Plant.Numerator, cfg.Plant.Denominator)
	if err != nil {
		return nil, err
	}
	sys, err := ss.FromTransferFunction(trf, buildSolver(cfg.Solver))
	if err != nil {
		return nil, err
	}
	if len(cfg.Plant.InitialState) > 0 {
		if _, err := sys.WithInitialState(cfg.Plant.InitialState); err != nil {
			return nil, err
		}
	}
	if cfg.Plant.Delay == 0 {
		return sys, nil
	}

	dead, err := delay.New[signal.Continuous](seconds(cfg.Plant.Delay))
	if err != nil {
		return nil, err
	}
	return block.NewChain[signal.Continuous](sys, dead), nil
}

func buildController(cfg *Config) (block.SISO[signal.Continuous], error) {
	switch cfg.Controller.Type {
	case "pid":
		pid := control.NewPID[signal.Continuous](cfg.Controller.Kp, cfg.Controller.Ki, cfg.Controller.Kd)
		if w := cfg.Controller.AntiWindup; w != nil {
			return pid.WithAntiWindup(w.Min, w.Max)
		}
		return pid, nil
	case "manual":
		return control.NewManual[signal.Continuous](), nil
	case "none":
		return control.NewNone[signal.Continuous](), nil
	default:
		return nil, fmt.Errorf("unknown controller %q", cfg.Controller.Type)
	}
}

func buildSource(cfg *Config) block.Source[signal.Continuous] {
	in := cfg.Input
	switch in.Type {
	case "ramp":
		return input.NewRamp[signal.Continuous](in.Slope)
	case "sinusoid":
		return input.NewSinusoid[signal.Continuous](in.Amplitude, in.Frequency, in.Phase)
	case "square":
		return input.NewSquare[signal.Continuous](in.Amplitude, seconds(in.Period), in.Offset)
	case "sawtooth":
		return input.NewSawtooth[signal.Continuous](in.Amplitude, seconds(in.Period))
	case "impulse":
		return input.NewImpulse[signal.Continuous](in.Amplitude)
	default:
		return input.NewStep[signal.Continuous](in.Amplitude)
	}
}

func buildSolver(name string) solver.Solver {
	if name == "euler" {
		return solver.NewEuler()
	}
	return solver.NewRK4()
}

func seconds(s float64) time.Duration {
	return time.Duration(float64(time.Second) * s)
}
