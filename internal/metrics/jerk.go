package metrics

import (
	"math"

	"github.com/san-kum/steersim/internal/sim"
)

// SteerJerk measures the mean absolute per-tick steering rate, the quantity
// the slew limiter bounds.
type SteerJerk struct {
	name      string
	dt        float64
	prevSteer float64
	first     bool
	sum       float64
	samples   int
}

func NewSteerJerk(dt float64) *SteerJerk {
	return &SteerJerk{name: "steer_jerk", dt: dt, first: true}
}

func (s *SteerJerk) Name() string {
	return s.name
}

func (s *SteerJerk) Observe(tk sim.Tick) {
	if s.first {
		s.first = false
	} else {
		s.sum += math.Abs(tk.Steer-s.prevSteer) / s.dt
		s.samples++
	}
	s.prevSteer = tk.Steer
}

func (s *SteerJerk) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *SteerJerk) Reset() {
	s.prevSteer = 0
	s.first = true
	s.sum = 0
	s.samples = 0
}

// RateSaturation measures the fraction of ticks where the steering rate sat
// at the limiter bound.
type RateSaturation struct {
	name      string
	dt        float64
	maxRate   float64
	prevSteer float64
	first     bool
	saturated int
	samples   int
}

func NewRateSaturation(maxRate, dt float64) *RateSaturation {
	return &RateSaturation{name: "rate_saturation", dt: dt, maxRate: maxRate, first: true}
}

func (r *RateSaturation) Name() string {
	return r.name
}

func (r *RateSaturation) Observe(tk sim.Tick) {
	if r.first {
		r.first = false
	} else {
		r.samples++
		rate := math.Abs(tk.Steer-r.prevSteer) / r.dt
		if rate >= r.maxRate*(1-1e-9) {
			r.saturated++
		}
	}
	r.prevSteer = tk.Steer
}

func (r *RateSaturation) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.saturated) / float64(r.samples)
}

func (r *RateSaturation) Reset() {
	r.prevSteer = 0
	r.first = true
	r.saturated = 0
	r.samples = 0
}
