package config

// Presets are ready-made scenarios covering the common plant archetypes.
var Presets = map[string]*Config{
	"first_order": {
		Plant:      PlantConfig{Numerator: []float64{1}, Denominator: []float64{1, 1}},
		Controller: ControllerConfig{Type: "pid", Kp: 2.0, Ki: 4.0},
		Input:      InputConfig{Type: "step", Amplitude: 1.0},
		Solver:     "rk4", Dt: 0.001, Duration: 10.0,
	},
	"second_order": {
		Plant:      PlantConfig{Numerator: []float64{1}, Denominator: []float64{1, 1, 1}},
		Controller: ControllerConfig{Type: "pid", Kp: 4.0, Ki: 2.0, Kd: 1.0},
		Input:      InputConfig{Type: "step", Amplitude: 1.0},
		Solver:     "rk4", Dt: 0.001, Duration: 20.0,
	},
	"dead_time": {
		Plant:      PlantConfig{Numerator: []float64{1}, Denominator: []float64{1, 1}, Delay: 0.5},
		Controller: ControllerConfig{Type: "pid", Kp: 0.8, Ki: 0.8},
		Input:      InputConfig{Type: "step", Amplitude: 1.0},
		Solver:     "rk4", Dt: 0.001, Duration: 20.0,
	},
	"saturated": {
		Plant: PlantConfig{Numerator: []float64{1}, Denominator: []float64{1, 1}},
		Controller: ControllerConfig{
			Type: "pid", Kp: 10.0, Ki: 5.0,
			AntiWindup: &WindupConfig{Min: -2.0, Max: 2.0},
		},
		Input:  InputConfig{Type: "square", Amplitude: 1.0, Period: 5.0},
		Solver: "rk4", Dt: 0.001, Duration: 20.0,
	},
	"open_loop": {
		Plant:      PlantConfig{Numerator: []float64{1}, Denominator: []float64{1, 2, 1}},
		Controller: ControllerConfig{Type: "none"},
		Input:      InputConfig{Type: "step", Amplitude: 1.0},
		Solver:     "euler", Dt: 0.001, Duration: 15.0,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
