package config

var Presets = map[string]map[string]*Config{
	"step": {
		"gentle": {
			Scenario: "step", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 10.0,
			Scene: SceneConfig{Amplitude: 0.5, StepAt: 1.0},
		},
		"hard": {
			Scenario: "step", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 10.0,
			Scene: SceneConfig{Amplitude: 3.0, StepAt: 1.0},
		},
		"crosswind": {
			Scenario: "step", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 15.0,
			Scene: SceneConfig{Amplitude: 1.0, StepAt: 1.0, RoadRoll: 0.3},
		},
	},
	"sine": {
		"cruise": {
			Scenario: "sine", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 30.0,
			Scene: SceneConfig{Amplitude: 1.0, Frequency: 0.1},
		},
		"winding": {
			Scenario: "sine", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 30.0,
			Scene: SceneConfig{Amplitude: 2.0, Frequency: 0.5},
		},
	},
	"slalom": {
		"cones": {
			Scenario: "slalom", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 20.0,
			Scene: SceneConfig{Amplitude: 2.0, Period: 4.0},
		},
		"noisy": {
			Scenario: "slalom", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 20.0,
			Scene: SceneConfig{Amplitude: 2.0, Period: 4.0, Noise: 0.05},
		},
	},
	"chirp": {
		"sweep": {
			Scenario: "chirp", Vehicle: "linear", Controller: "lateral", Dt: 0.01, Duration: 40.0,
			Scene: SceneConfig{Amplitude: 1.0, Frequency: 0.05},
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg.withDefaults()
}

// Presets only pin down the scenario shape; plant and gains fall back to
// the shipped defaults unless the preset overrides them.
func (c *Config) withDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Plant == (PlantConfig{}) {
		out.Plant = def.Plant
	}
	if out.Gains == (ControllerGains{}) {
		out.Gains = def.Gains
	}
	if out.Vehicle == "" {
		out.Vehicle = def.Vehicle
	}
	if out.Controller == "" {
		out.Controller = def.Controller
	}
	if out.Dt == 0 {
		out.Dt = def.Dt
	}
	if out.Duration == 0 {
		out.Duration = def.Duration
	}
	return &out
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
