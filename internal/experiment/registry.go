package experiment

import (
	"fmt"

	"github.com/san-kum/steersim/internal/control"
	"github.com/san-kum/steersim/internal/metrics"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/vehicle"
)

type Registry struct {
	scenarios   map[string]func(params map[string]float64) sim.Scenario
	vehicles    map[string]func(params map[string]float64) sim.Vehicle
	controllers map[string]func(params map[string]float64) (sim.Controller, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios:   make(map[string]func(map[string]float64) sim.Scenario),
		vehicles:    make(map[string]func(map[string]float64) sim.Vehicle),
		controllers: make(map[string]func(map[string]float64) (sim.Controller, error)),
	}

	r.scenarios["constant"] = func(p map[string]float64) sim.Scenario {
		return scenario.Constant(p["amplitude"]).WithRoadRoll(p["road_roll"])
	}
	r.scenarios["step"] = func(p map[string]float64) sim.Scenario {
		return scenario.Step(p["amplitude"], p["step_at"]).WithRoadRoll(p["road_roll"])
	}
	r.scenarios["sine"] = func(p map[string]float64) sim.Scenario {
		return scenario.Sine(p["amplitude"], p["frequency"]).WithRoadRoll(p["road_roll"])
	}
	r.scenarios["chirp"] = func(p map[string]float64) sim.Scenario {
		f1 := p["frequency"] * 10
		return scenario.Chirp(p["amplitude"], p["frequency"], f1, p["duration"]).WithRoadRoll(p["road_roll"])
	}
	r.scenarios["slalom"] = func(p map[string]float64) sim.Scenario {
		return scenario.Slalom(p["amplitude"], p["period"]).WithRoadRoll(p["road_roll"])
	}

	r.vehicles["linear"] = func(p map[string]float64) sim.Vehicle {
		var v sim.Vehicle = vehicle.NewLinear(p["gain"], p["tau"], p["speed"], p["dt"])
		if p["noise"] > 0 {
			v = vehicle.NewNoisy(v, p["noise"], int64(p["seed"]))
		}
		return v
	}
	r.vehicles["ideal"] = func(p map[string]float64) sim.Vehicle {
		return vehicle.NewIdeal(p["gain"], p["speed"])
	}

	r.controllers["lateral"] = func(p map[string]float64) (sim.Controller, error) {
		return control.NewLateral(control.Config{
			Kp:           p["kp"],
			Ki:           p["ki"],
			Kd:           p["kd"],
			Kf:           p["kf"],
			WindupLimit:  p["windup_limit"],
			MaxSteerRate: p["max_steer_rate"],
			Alpha:        p["alpha"],
			Dt:           p["dt"],
		})
	}
	r.controllers["pid"] = func(p map[string]float64) (sim.Controller, error) {
		return control.NewPID(p["kp"], p["ki"], p["kd"], p["windup_limit"], p["dt"])
	}
	r.controllers["none"] = func(p map[string]float64) (sim.Controller, error) {
		return control.NewNone(), nil
	}

	return r
}

func (r *Registry) GetScenario(name string, params map[string]float64) (sim.Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetVehicle(name string, params map[string]float64) (sim.Vehicle, error) {
	fn, ok := r.vehicles[name]
	if !ok {
		return nil, fmt.Errorf("unknown vehicle: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (sim.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params)
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListControllers() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	return names
}

func (r *Registry) DefaultMetrics(dt, maxSteerRate float64) []sim.Metric {
	return []sim.Metric{
		metrics.NewTrackingRMS(),
		metrics.NewControlEffort(),
		metrics.NewSteerJerk(dt),
		metrics.NewRateSaturation(maxSteerRate, dt),
	}
}
