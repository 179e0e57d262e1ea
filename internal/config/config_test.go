package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "step" {
		t.Errorf("expected scenario step, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Gains.Kp != 0.5 || cfg.Gains.Ki != 0.1 || cfg.Gains.Kd != 0.05 || cfg.Gains.Kf != 0.2 {
		t.Errorf("unexpected default gains: %+v", cfg.Gains)
	}
	if cfg.Gains.WindupLimit != 0.9 || cfg.Gains.MaxSteerRate != 0.05 || cfg.Gains.Alpha != 0.2 {
		t.Errorf("unexpected default limits: %+v", cfg.Gains)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "slalom"
	cfg.Gains.Kp = 0.75
	cfg.Scene.RoadRoll = 0.2

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Scenario != "slalom" {
		t.Errorf("expected scenario slalom, got %s", loaded.Scenario)
	}
	if loaded.Gains.Kp != 0.75 {
		t.Errorf("expected kp 0.75, got %f", loaded.Gains.Kp)
	}
	if loaded.Scene.RoadRoll != 0.2 {
		t.Errorf("expected road roll 0.2, got %f", loaded.Scene.RoadRoll)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("step", "gentle")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scene.Amplitude != 0.5 {
		t.Errorf("expected amplitude 0.5, got %f", cfg.Scene.Amplitude)
	}

	// presets inherit default gains and plant
	if cfg.Gains.Kp != 0.5 {
		t.Errorf("expected default kp in preset, got %f", cfg.Gains.Kp)
	}
	if cfg.Plant.Tau != DefaultTau {
		t.Errorf("expected default tau in preset, got %f", cfg.Plant.Tau)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("step", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "gentle"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("step")
	if len(presets) == 0 {
		t.Error("expected presets for step")
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestGetControllerParams(t *testing.T) {
	cfg := DefaultConfig()
	params := cfg.GetControllerParams()

	if params["kp"] != 0.5 || params["windup_limit"] != 0.9 || params["dt"] != 0.01 {
		t.Errorf("unexpected params: %v", params)
	}
}

func TestGetScenarioParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.RoadRoll = 0.3
	params := cfg.GetScenarioParams()

	if params["amplitude"] != 1.0 || params["road_roll"] != 0.3 {
		t.Errorf("unexpected params: %v", params)
	}
	// chirp reads the sweep span from "duration"
	if params["duration"] != cfg.Duration {
		t.Errorf("expected duration %f, got %f", cfg.Duration, params["duration"])
	}
}

func TestGetVehicleParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Noise = 0.05
	cfg.Seed = 42
	params := cfg.GetVehicleParams()

	if params["gain"] != DefaultGain || params["tau"] != DefaultTau || params["speed"] != DefaultSpeed {
		t.Errorf("unexpected plant params: %v", params)
	}
	if params["noise"] != 0.05 || params["seed"] != 42 {
		t.Errorf("expected noise and seed carried over, got %v", params)
	}
}
