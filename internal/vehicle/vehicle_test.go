package vehicle

import (
	"math"
	"testing"
)

func TestLinearSteadyState(t *testing.T) {
	v := NewLinear(2.0, 0.25, 20.0, 0.01)

	for i := 0; i < 2000; i++ {
		v.Step(0.5, 0.0)
	}

	// first-order lag settles to gain * steer
	if math.Abs(v.LatAccel()-1.0) > 1e-3 {
		t.Errorf("expected lataccel near 1.0, got %f", v.LatAccel())
	}
}

func TestLinearRoadRoll(t *testing.T) {
	v := NewLinear(2.0, 0.25, 20.0, 0.01)

	for i := 0; i < 2000; i++ {
		v.Step(0.0, 0.3)
	}

	if math.Abs(v.LatAccel()-0.3) > 1e-3 {
		t.Errorf("expected lataccel near 0.3 from road roll, got %f", v.LatAccel())
	}
}

func TestLinearMonotoneApproach(t *testing.T) {
	v := NewLinear(1.0, 0.5, 20.0, 0.01)

	prev := v.LatAccel()
	for i := 0; i < 500; i++ {
		v.Step(1.0, 0.0)
		if v.LatAccel() < prev {
			t.Fatalf("step %d: first-order response should be monotone, %f < %f", i, v.LatAccel(), prev)
		}
		if v.LatAccel() > 1.0 {
			t.Fatalf("step %d: first-order response overshot: %f", i, v.LatAccel())
		}
		prev = v.LatAccel()
	}
}

func TestLinearReset(t *testing.T) {
	v := NewLinear(2.0, 0.25, 20.0, 0.01)
	v.Step(1.0, 0.0)

	if v.LatAccel() == 0 {
		t.Fatal("expected nonzero lataccel after step")
	}
	v.Reset()
	if v.LatAccel() != 0 {
		t.Errorf("expected zero lataccel after reset, got %f", v.LatAccel())
	}
}

func TestLinearSpeed(t *testing.T) {
	v := NewLinear(2.0, 0.25, 33.0, 0.01)
	if v.Speed() != 33.0 {
		t.Errorf("expected speed 33, got %f", v.Speed())
	}
}

func TestLinearTunableParams(t *testing.T) {
	v := NewLinear(2.0, 0.25, 20.0, 0.01)

	params := v.GetParams()
	if params["Gain"] != 2.0 || params["Tau"] != 0.25 {
		t.Errorf("unexpected params: %v", params)
	}

	v.SetParam("Gain", 3.0)
	if v.Gain != 3.0 {
		t.Error("SetParam did not update Gain")
	}

	// non-positive tau is ignored
	v.SetParam("Tau", 0)
	if v.Tau != 0.25 {
		t.Errorf("expected tau unchanged, got %f", v.Tau)
	}
}

func TestIdealPassthrough(t *testing.T) {
	v := NewIdeal(2.0, 20.0)

	v.Step(0.5, 0.1)
	if math.Abs(v.LatAccel()-1.1) > 1e-12 {
		t.Errorf("expected lataccel 1.1, got %f", v.LatAccel())
	}

	v.Reset()
	if v.LatAccel() != 0 {
		t.Errorf("expected zero after reset, got %f", v.LatAccel())
	}
}

func TestNoisyDeterministicSeed(t *testing.T) {
	a := NewNoisy(NewIdeal(1.0, 20.0), 0.1, 42)
	b := NewNoisy(NewIdeal(1.0, 20.0), 0.1, 42)

	for i := 0; i < 100; i++ {
		a.Step(0.5, 0.0)
		b.Step(0.5, 0.0)
		if a.LatAccel() != b.LatAccel() {
			t.Fatalf("step %d: same seed should give identical noise", i)
		}
	}
}

func TestNoisyJittersMeasurement(t *testing.T) {
	inner := NewIdeal(1.0, 20.0)
	v := NewNoisy(inner, 0.1, 7)

	v.Step(0.5, 0.0)

	differs := false
	for i := 0; i < 20; i++ {
		if v.LatAccel() != inner.LatAccel() {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected noisy readings to differ from the plant state")
	}
}
