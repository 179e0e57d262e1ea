package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/sim"
)

func TestTrackingRMS(t *testing.T) {
	m := NewTrackingRMS()

	if m.Name() != "tracking_rms" {
		t.Errorf("unexpected name %q", m.Name())
	}
	if m.Value() != 0 {
		t.Error("expected zero value with no samples")
	}

	// errors 3 and 4 give rms 3.5355...
	m.Observe(sim.Tick{Desired: 3, Measured: 0})
	m.Observe(sim.Tick{Desired: 0, Measured: 4})

	want := math.Sqrt((9.0 + 16.0) / 2.0)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero value after reset")
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	m.Observe(sim.Tick{Steer: 0.5})
	m.Observe(sim.Tick{Steer: -1.5})

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected mean effort 1.0, got %f", m.Value())
	}
}

func TestSteerJerk(t *testing.T) {
	m := NewSteerJerk(0.1)

	m.Observe(sim.Tick{Steer: 0.0})
	m.Observe(sim.Tick{Steer: 0.1})
	m.Observe(sim.Tick{Steer: 0.3})

	// deltas 0.1 and 0.2 over dt 0.1: rates 1 and 2
	if math.Abs(m.Value()-1.5) > 1e-9 {
		t.Errorf("expected mean jerk 1.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero value after reset")
	}
}

func TestSteerJerkSingleSample(t *testing.T) {
	m := NewSteerJerk(0.01)
	m.Observe(sim.Tick{Steer: 5.0})

	if m.Value() != 0 {
		t.Errorf("one sample has no rate, got %f", m.Value())
	}
}

func TestRateSaturation(t *testing.T) {
	m := NewRateSaturation(0.05, 0.01)

	// rate exactly at the bound, then well below
	m.Observe(sim.Tick{Steer: 0.0})
	m.Observe(sim.Tick{Steer: 0.0005})
	m.Observe(sim.Tick{Steer: 0.0006})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected saturation fraction 0.5, got %f", m.Value())
	}
}
