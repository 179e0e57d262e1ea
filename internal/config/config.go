package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultSpeed    = 20.0
	DefaultGain     = 2.0
	DefaultTau      = 0.25
)

type Config struct {
	Scenario   string          `yaml:"scenario"`
	Vehicle    string          `yaml:"vehicle"`
	Controller string          `yaml:"controller"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Seed       int64           `yaml:"seed"`
	Scene      SceneConfig     `yaml:"scene"`
	Plant      PlantConfig     `yaml:"plant"`
	Gains      ControllerGains `yaml:"gains"`
}

type SceneConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Period    float64 `yaml:"period"`
	StepAt    float64 `yaml:"step_at"`
	RoadRoll  float64 `yaml:"road_roll"`
	Noise     float64 `yaml:"noise"`
}

type PlantConfig struct {
	Gain  float64 `yaml:"gain"`
	Tau   float64 `yaml:"tau"`
	Speed float64 `yaml:"speed"`
}

type ControllerGains struct {
	Kp           float64 `yaml:"kp"`
	Ki           float64 `yaml:"ki"`
	Kd           float64 `yaml:"kd"`
	Kf           float64 `yaml:"kf"`
	WindupLimit  float64 `yaml:"windup_limit"`
	MaxSteerRate float64 `yaml:"max_steer_rate"`
	Alpha        float64 `yaml:"alpha"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "step",
		Vehicle:    "linear",
		Controller: "lateral",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Scene: SceneConfig{
			Amplitude: 1.0,
			Frequency: 0.2,
			Period:    4.0,
			StepAt:    1.0,
		},
		Plant: PlantConfig{
			Gain:  DefaultGain,
			Tau:   DefaultTau,
			Speed: DefaultSpeed,
		},
		Gains: ControllerGains{
			Kp:           0.5,
			Ki:           0.1,
			Kd:           0.05,
			Kf:           0.2,
			WindupLimit:  0.9,
			MaxSteerRate: 0.05,
			Alpha:        0.2,
		},
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

// GetControllerParams flattens gains into the registry parameter map.
func (c *Config) GetControllerParams() map[string]float64 {
	return map[string]float64{
		"kp":             c.Gains.Kp,
		"ki":             c.Gains.Ki,
		"kd":             c.Gains.Kd,
		"kf":             c.Gains.Kf,
		"windup_limit":   c.Gains.WindupLimit,
		"max_steer_rate": c.Gains.MaxSteerRate,
		"alpha":          c.Gains.Alpha,
		"dt":             c.Dt,
	}
}

// GetScenarioParams flattens scene settings into the registry parameter map.
func (c *Config) GetScenarioParams() map[string]float64 {
	return map[string]float64{
		"amplitude": c.Scene.Amplitude,
		"frequency": c.Scene.Frequency,
		"period":    c.Scene.Period,
		"step_at":   c.Scene.StepAt,
		"road_roll": c.Scene.RoadRoll,
		"duration":  c.Duration,
	}
}

// GetVehicleParams flattens plant settings into the registry parameter map.
// Measurement noise rides with the plant, not the trajectory.
func (c *Config) GetVehicleParams() map[string]float64 {
	return map[string]float64{
		"gain":  c.Plant.Gain,
		"tau":   c.Plant.Tau,
		"speed": c.Plant.Speed,
		"dt":    c.Dt,
		"noise": c.Scene.Noise,
		"seed":  float64(c.Seed),
	}
}
