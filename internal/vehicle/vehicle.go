// Package vehicle provides minimal lateral plants for closing the loop.
// These are test harness plants, not vehicle dynamics models: just enough
// response for a controller to track against.
package vehicle

// Linear is a first-order lag from steering command to lateral
// acceleration: la' = (Gain*steer + road - la) / Tau. Speed is held fixed
// for the run.
type Linear struct {
	Gain  float64 // steady-state lataccel per unit steer
	Tau   float64 // response time constant in seconds
	speed float64
	dt    float64

	latAccel float64
}

func NewLinear(gain, tau, speed, dt float64) *Linear {
	return &Linear{Gain: gain, Tau: tau, speed: speed, dt: dt}
}

func (v *Linear) Step(steer, roadLatAccel float64) {
	target := v.Gain*steer + roadLatAccel
	v.latAccel += (target - v.latAccel) * v.dt / v.Tau
}

func (v *Linear) LatAccel() float64 { return v.latAccel }
func (v *Linear) Speed() float64    { return v.speed }

func (v *Linear) Reset() {
	v.latAccel = 0
}

// GetParams returns tunable parameters for live adjustment
func (v *Linear) GetParams() map[string]float64 {
	return map[string]float64{
		"Gain": v.Gain,
		"Tau":  v.Tau,
	}
}

// SetParam adjusts a plant parameter
func (v *Linear) SetParam(name string, value float64) {
	switch name {
	case "Gain":
		v.Gain = value
	case "Tau":
		if value > 0 {
			v.Tau = value
		}
	}
}

// Ideal responds instantly: measured lataccel equals Gain*steer + road on
// the next tick. Degenerate plant for controller unit checks.
type Ideal struct {
	Gain  float64
	speed float64

	latAccel float64
}

func NewIdeal(gain, speed float64) *Ideal {
	return &Ideal{Gain: gain, speed: speed}
}

func (v *Ideal) Step(steer, roadLatAccel float64) {
	v.latAccel = v.Gain*steer + roadLatAccel
}

func (v *Ideal) LatAccel() float64 { return v.latAccel }
func (v *Ideal) Speed() float64    { return v.speed }

func (v *Ideal) Reset() {
	v.latAccel = 0
}
