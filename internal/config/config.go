package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultKp       = 2.0
	DefaultKi       = 1.0
	DefaultKd       = 0.0
)

// Config describes a complete closed-loop scenario: the plant as a transfer
// function with an optional transport delay, the controller, the setpoint
// source, and the run parameters.
type Config struct {
	Plant      PlantConfig      `yaml:"plant"`
	Controller ControllerConfig `yaml:"controller"`
	Input      InputConfig      `yaml:"input"`
	Solver     string           `yaml:"solver"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
}

// PlantConfig is the plant's transfer function, highest-degree coefficients
// first, with an optional dead time in seconds.
type PlantConfig struct {
	Numerator    []float64 `yaml:"numerator"`
	Denominator  []float64 `yaml:"denominator"`
	Delay        float64   `yaml:"delay"`
	InitialState []float64 `yaml:"initial_state"`
}

type ControllerConfig struct {
	Type       string        `yaml:"type"`
	Kp         float64       `yaml:"kp"`
	Ki         float64       `yaml:"ki"`
	Kd         float64       `yaml:"kd"`
	AntiWindup *WindupConfig `yaml:"anti_windup,omitempty"`
}

type WindupConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type InputConfig struct {
	Type      string  `yaml:"type"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
	Slope     float64 `yaml:"slope"`
	Period    float64 `yaml:"period"`
	Offset    float64 `yaml:"offset"`
}

func DefaultConfig() *Config {
	return &Config{
		Plant: PlantConfig{
			Numerator:   []float64{1},
			Denominator: []float64{1, 1},
		},
		Controller: ControllerConfig{
			Type: "pid",
			Kp:   DefaultKp,
			Ki:   DefaultKi,
			Kd:   DefaultKd,
		},
		Input: InputConfig{
			Type:      "step",
			Amplitude: 1.0,
		},
		Solver:   "rk4",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if len(c.Plant.Denominator) == 0 {
		return fmt.Errorf("plant denominator cannot be empty")
	}
	if c.Plant.Delay < 0 {
		return fmt.Errorf("plant delay cannot be negative, got %f", c.Plant.Delay)
	}
	switch c.Solver {
	case "euler", "rk4":
	default:
		return fmt.Errorf("unknown solver %q", c.Solver)
	}
	switch c.Controller.Type {
	case "pid", "none", "manual":
	default:
		return fmt.Errorf("unknown controller %q", c.Controller.Type)
	}
	if w := c.Controller.AntiWindup; w != nil && w.Min > w.Max {
		return fmt.Errorf("anti-windup bounds inverted: min %f > max %f", w.Min, w.Max)
	}
	switch c.Input.Type {
	case "step", "ramp", "sinusoid", "square", "sawtooth", "impulse":
	default:
		return fmt.Errorf("unknown input %q", c.Input.Type)
	}
	switch c.Input.Type {
	case "square", "sawtooth":
		if c.Input.Period <= 0 {
			return fmt.Errorf("input %q needs a positive period, got %f", c.Input.Type, c.Input.Period)
		}
	}
	return nil
}
