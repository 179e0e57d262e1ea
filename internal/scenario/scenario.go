// Package scenario provides desired-lataccel profiles for the closed loop.
package scenario

import "math"

// Profile is a time-parameterized target trajectory with an optional
// constant road-roll contribution.
type Profile struct {
	desired func(t float64) float64
	road    float64
}

func (p *Profile) Desired(t float64) float64 {
	return p.desired(t)
}

func (p *Profile) RoadLatAccel(t float64) float64 {
	return p.road
}

// WithRoadRoll returns a copy of the profile reporting a constant road-roll
// lateral acceleration to the harness.
func (p *Profile) WithRoadRoll(latAccel float64) *Profile {
	return &Profile{desired: p.desired, road: latAccel}
}

// Constant holds the target at a fixed lataccel.
func Constant(latAccel float64) *Profile {
	return &Profile{desired: func(t float64) float64 { return latAccel }}
}

// Step is zero until at, then jumps to latAccel.
func Step(latAccel, at float64) *Profile {
	return &Profile{desired: func(t float64) float64 {
		if t < at {
			return 0
		}
		return latAccel
	}}
}

// Sine oscillates the target at a fixed frequency.
func Sine(amplitude, freqHz float64) *Profile {
	return &Profile{desired: func(t float64) float64 {
		return amplitude * math.Sin(2*math.Pi*freqHz*t)
	}}
}

// Chirp sweeps linearly from f0 to f1 over the given span, then holds the
// final frequency. A non-positive span degenerates to a plain sine at f0.
func Chirp(amplitude, f0, f1, span float64) *Profile {
	if span <= 0 {
		return Sine(amplitude, f0)
	}
	return &Profile{desired: func(t float64) float64 {
		phase := 2 * math.Pi * (f0*t + (f1-f0)*t*t/(2*span))
		if t > span {
			endPhase := math.Pi * (f0 + f1) * span
			phase = endPhase + 2*math.Pi*f1*(t-span)
		}
		return amplitude * math.Sin(phase)
	}}
}

// Slalom alternates full-left and full-right targets with the given period,
// the square-wave counterpart of Sine.
func Slalom(amplitude, period float64) *Profile {
	return &Profile{desired: func(t float64) float64 {
		if math.Mod(t, period) < period/2 {
			return amplitude
		}
		return -amplitude
	}}
}
