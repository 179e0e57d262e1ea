package metrics

import (
	"math"

	"github.com/san-kum/steersim/internal/sim"
)

// TrackingRMS measures the root-mean-square error between desired and
// measured lateral acceleration.
type TrackingRMS struct {
	name    string
	sumSq   float64
	samples int
}

func NewTrackingRMS() *TrackingRMS {
	return &TrackingRMS{name: "tracking_rms"}
}

func (m *TrackingRMS) Name() string {
	return m.name
}

func (m *TrackingRMS) Observe(tk sim.Tick) {
	err := tk.Desired - tk.Measured
	m.sumSq += err * err
	m.samples++
}

func (m *TrackingRMS) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *TrackingRMS) Reset() {
	m.sumSq = 0
	m.samples = 0
}
