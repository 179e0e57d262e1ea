package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/steersim/internal/sim"
)

type Config struct {
	Scenario   string
	Vehicle    string
	Controller string
	Dt         float64
	Duration   float64
	Seed       int64
	Params     map[string]float64
}

type Experiment struct {
	cfg        Config
	loop       *sim.Loop
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (e *Experiment) Setup(scenario sim.Scenario, vehicle sim.Vehicle, controller sim.Controller, metrics []sim.Metric) error {
	e.loop = sim.New(scenario, vehicle, controller)
	for _, m := range metrics {
		e.loop.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.loop == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		Dt:       e.cfg.Dt,
		Duration: e.cfg.Duration,
		Seed:     e.cfg.Seed,
	}

	return e.loop.Run(ctx, simCfg)
}

// GetLoop returns the underlying loop for adding observers
func (e *Experiment) GetLoop() *sim.Loop {
	return e.loop
}
