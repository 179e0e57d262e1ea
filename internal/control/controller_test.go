package control

import (
	"math"
	"testing"
)

func TestNone(t *testing.T) {
	ctrl := NewNone()

	if steer := ctrl.Update(1.0, 0.5, 20.0, 2.0); steer != 0 {
		t.Errorf("expected zero steer, got %f", steer)
	}
	ctrl.Reset()
	if steer := ctrl.Update(-3.0, 0.0, 0.0, 3.0); steer != 0 {
		t.Errorf("expected zero steer after reset, got %f", steer)
	}
}

func TestPIDSign(t *testing.T) {
	ctrl, err := NewPID(10.0, 0.1, 5.0, 100.0, 0.01)
	if err != nil {
		t.Fatalf("constructor failed: %v", err)
	}

	if steer := ctrl.Update(1.0, 0.0, 20.0, 0.0); steer >= 0 {
		t.Error("PID should output negative steer when measured exceeds desired")
	}
}

func TestPIDInvalidConfig(t *testing.T) {
	if _, err := NewPID(1, 0, 0, 1, 0); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := NewPID(1, 0, 0, -1, 0.01); err == nil {
		t.Error("expected error for negative windup limit")
	}
}

func TestPIDClosedLoopConvergence(t *testing.T) {
	// Proportional-dominated loop against an instant plant with gain 10,
	// small gains keep the discrete loop contractive.
	ctrl, err := NewPID(0.08, 0.075, 0.0001, 100.0, 0.1)
	if err != nil {
		t.Fatalf("constructor failed: %v", err)
	}

	target := 5.0
	current := 0.0

	for i := 0; i < 1000; i++ {
		steer := ctrl.Update(current, 0.0, 0.0, target)
		current = steer * 10

		if i > 200 && math.Abs(current-target) > 0.01 {
			t.Fatalf("step %d: loop not converged, current %f", i, current)
		}
	}
}

func TestPIDIntegralClamp(t *testing.T) {
	ctrl, _ := NewPID(0.5, 0.1, 0.0, 0.9, 0.01)

	for i := 0; i < 5000; i++ {
		ctrl.Update(0.0, 0.0, 0.0, 2.0)
	}
	if math.Abs(ctrl.integral) > 0.9+1e-12 {
		t.Errorf("integral escaped clamp: %f", ctrl.integral)
	}
}
