package sim

import (
	"context"
	"fmt"
)

// Loop runs a controller against a vehicle plant at a fixed cadence.
type Loop struct {
	scenario   Scenario
	vehicle    Vehicle
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(scenario Scenario, vehicle Vehicle, controller Controller) *Loop {
	return &Loop{
		scenario:   scenario,
		vehicle:    vehicle,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Tick advances the loop by one sample: read the plant, compute a steering
// command, apply it. The controller sees the measurement taken before the
// plant moves, matching a real control cycle.
func (l *Loop) Tick(t float64) Tick {
	desired := l.scenario.Desired(t)
	road := l.scenario.RoadLatAccel(t)
	measured := l.vehicle.LatAccel()
	speed := l.vehicle.Speed()

	steer := l.controller.Update(measured, road, speed, desired)
	l.vehicle.Step(steer, road)

	return Tick{
		T:            t,
		Desired:      desired,
		Measured:     measured,
		RoadLatAccel: road,
		Speed:        speed,
		Steer:        steer,
	}
}

func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := l.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Ticks:   make([]Tick, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		tk := l.Tick(t)

		for _, m := range l.metrics {
			m.Observe(tk)
		}
		for _, obs := range l.observers {
			obs.OnTick(tk)
		}

		result.Ticks = append(result.Ticks, tk)
		t += cfg.Dt
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (l *Loop) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
