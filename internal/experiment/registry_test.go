package experiment

import (
	"context"
	"testing"
)

func defaultControllerParams() map[string]float64 {
	return map[string]float64{
		"kp":             0.5,
		"ki":             0.1,
		"kd":             0.05,
		"kf":             0.2,
		"windup_limit":   0.9,
		"max_steer_rate": 0.05,
		"alpha":          0.2,
		"dt":             0.01,
	}
}

func TestRegistryGetScenario(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"constant", "step", "sine", "chirp", "slalom"} {
		sc, err := r.GetScenario(name, map[string]float64{"amplitude": 1, "period": 4, "frequency": 0.2, "duration": 10})
		if err != nil {
			t.Errorf("scenario %s: %v", name, err)
		}
		if sc == nil {
			t.Errorf("scenario %s: nil", name)
		}
	}

	if _, err := r.GetScenario("nope", nil); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestRegistryGetVehicle(t *testing.T) {
	r := NewRegistry()

	params := map[string]float64{"gain": 2, "tau": 0.25, "speed": 20, "dt": 0.01}
	veh, err := r.GetVehicle("linear", params)
	if err != nil {
		t.Fatalf("linear vehicle: %v", err)
	}
	if veh.Speed() != 20 {
		t.Errorf("expected speed 20, got %f", veh.Speed())
	}

	if _, err := r.GetVehicle("hovercraft", params); err == nil {
		t.Error("expected error for unknown vehicle")
	}
}

func TestRegistryGetVehicleNoisy(t *testing.T) {
	r := NewRegistry()

	params := map[string]float64{"gain": 2, "tau": 0.25, "speed": 20, "dt": 0.01, "noise": 0.1, "seed": 42}
	veh, err := r.GetVehicle("linear", params)
	if err != nil {
		t.Fatalf("noisy vehicle: %v", err)
	}

	// reading twice without stepping should jitter
	a := veh.LatAccel()
	differs := false
	for i := 0; i < 20; i++ {
		if veh.LatAccel() != a {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected noise wrapper on nonzero noise param")
	}
}

func TestRegistryGetController(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"lateral", "pid", "none"} {
		ctrl, err := r.GetController(name, defaultControllerParams())
		if err != nil {
			t.Errorf("controller %s: %v", name, err)
		}
		if ctrl == nil {
			t.Errorf("controller %s: nil", name)
		}
	}

	if _, err := r.GetController("mpc", defaultControllerParams()); err == nil {
		t.Error("expected error for unknown controller")
	}
}

func TestRegistryControllerValidation(t *testing.T) {
	r := NewRegistry()

	params := defaultControllerParams()
	params["alpha"] = 2.0

	if _, err := r.GetController("lateral", params); err == nil {
		t.Error("expected validation error for alpha out of range")
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()

	sc, err := r.GetScenario("step", map[string]float64{"amplitude": 1, "step_at": 0.1})
	if err != nil {
		t.Fatal(err)
	}
	veh, err := r.GetVehicle("linear", map[string]float64{"gain": 2, "tau": 0.25, "speed": 20, "dt": 0.01})
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := r.GetController("lateral", defaultControllerParams())
	if err != nil {
		t.Fatal(err)
	}

	exp := New(Config{
		Scenario:   "step",
		Vehicle:    "linear",
		Controller: "lateral",
		Dt:         0.01,
		Duration:   1.0,
		Seed:       42,
	})
	if err := exp.Setup(sc, veh, ctrl, r.DefaultMetrics(0.01, 0.05)); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Ticks) != 100 {
		t.Errorf("expected 100 ticks, got %d", len(result.Ticks))
	}
	for _, name := range []string{"tracking_rms", "control_effort", "steer_jerk", "rate_saturation"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{Dt: 0.01, Duration: 1.0})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error for unset experiment")
	}
}
