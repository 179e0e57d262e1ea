package vehicle

import (
	"math/rand"

	"github.com/san-kum/steersim/internal/sim"
)

// Noisy wraps a plant and adds seeded Gaussian noise to the measurement.
// The underlying plant state is unaffected; only LatAccel readings jitter.
type Noisy struct {
	sim.Vehicle
	stddev float64
	rng    *rand.Rand
}

func NewNoisy(inner sim.Vehicle, stddev float64, seed int64) *Noisy {
	return &Noisy{
		Vehicle: inner,
		stddev:  stddev,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (n *Noisy) LatAccel() float64 {
	return n.Vehicle.LatAccel() + n.rng.NormFloat64()*n.stddev
}
