package control

import "fmt"

const (
	DefaultKp           = 0.5
	DefaultKi           = 0.1
	DefaultKd           = 0.05
	DefaultKf           = 0.2
	DefaultWindupLimit  = 0.9
	DefaultMaxSteerRate = 0.05
	DefaultAlpha        = 0.2
	DefaultDt           = 0.01
)

// Config holds the gains and limits of the lateral controller. All fields
// are fixed after construction.
type Config struct {
	Kp           float64 // proportional gain
	Ki           float64 // integral gain
	Kd           float64 // derivative gain
	Kf           float64 // feed-forward gain on target rate
	WindupLimit  float64 // integral clamp bound
	MaxSteerRate float64 // slew-rate bound on the output
	Alpha        float64 // target smoothing factor, 0 freezes, 1 disables
	Dt           float64 // sample interval in seconds
}

func DefaultConfig() Config {
	return Config{
		Kp:           DefaultKp,
		Ki:           DefaultKi,
		Kd:           DefaultKd,
		Kf:           DefaultKf,
		WindupLimit:  DefaultWindupLimit,
		MaxSteerRate: DefaultMaxSteerRate,
		Alpha:        DefaultAlpha,
		Dt:           DefaultDt,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrSampleInterval, c.Dt)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("%w, got %f", ErrSmoothingFactor, c.Alpha)
	}
	if c.WindupLimit < 0 {
		return fmt.Errorf("%w, got %f", ErrWindupLimit, c.WindupLimit)
	}
	if c.MaxSteerRate < 0 {
		return fmt.Errorf("%w, got %f", ErrSteerRate, c.MaxSteerRate)
	}
	return nil
}

// Lateral tracks a desired lateral acceleration with a filtered PID plus
// feed-forward law. The PID portion is attenuated with vehicle speed, the
// output is slew-rate limited, and the integral term saturates at the
// windup limit.
type Lateral struct {
	cfg Config

	filteredTarget float64
	prevErr        float64
	integral       float64
	prevTarget     float64
	prevSteer      float64
}

func NewLateral(cfg Config) (*Lateral, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Lateral{cfg: cfg}, nil
}

// Reset clears filter, integral and rate-limiter state.
func (l *Lateral) Reset() {
	l.filteredTarget = 0
	l.prevErr = 0
	l.integral = 0
	l.prevTarget = 0
	l.prevSteer = 0
}

// Update computes the steering command for one tick.
//
// roadLatAccel is accepted for call-site compatibility with the harness but
// does not enter the computation.
func (l *Lateral) Update(measuredLatAccel, roadLatAccel, vEgo, desiredLatAccel float64) float64 {
	dt := l.cfg.Dt

	// One-pole smoothing of the target reduces command jerk.
	l.filteredTarget = l.cfg.Alpha*desiredLatAccel + (1-l.cfg.Alpha)*l.filteredTarget

	err := l.filteredTarget - measuredLatAccel

	derivative := (err - l.prevErr) / dt

	// Saturating accumulator: clamp after every step so sustained error
	// cannot wind the integral past the limit.
	l.integral = clamp(l.integral+err*dt, -l.cfg.WindupLimit, l.cfg.WindupLimit)

	// Feed-forward on the filtered target rate, not the raw input, so it
	// inherits the smoothing above.
	ff := l.cfg.Kf * (l.filteredTarget - l.prevTarget) / dt

	// Less steering authority needed above 10 m/s. The max keeps the
	// factor in (0, 1] for any speed, including bogus negative inputs.
	velFactor := 1.0 / max(1.0, vEgo/10.0)

	steerRaw := l.cfg.Kp*err*velFactor +
		l.cfg.Ki*l.integral*velFactor +
		l.cfg.Kd*derivative*velFactor +
		ff

	// Slew-rate limit: bound the per-tick change, not the magnitude.
	steerRate := (steerRaw - l.prevSteer) / dt
	steerRate = clamp(steerRate, -l.cfg.MaxSteerRate, l.cfg.MaxSteerRate)
	steer := l.prevSteer + steerRate*dt

	l.prevErr = err
	l.prevTarget = l.filteredTarget
	l.prevSteer = steer

	return steer
}

// Integral exposes the accumulated integral term for metrics and the live
// view; it does not mutate state.
func (l *Lateral) Integral() float64 {
	return l.integral
}

// FilteredTarget exposes the smoothed target; it does not mutate state.
func (l *Lateral) FilteredTarget() float64 {
	return l.filteredTarget
}

// GetParams returns tunable parameters for live adjustment
func (l *Lateral) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":    l.cfg.Kp,
		"Ki":    l.cfg.Ki,
		"Kd":    l.cfg.Kd,
		"Kf":    l.cfg.Kf,
		"Alpha": l.cfg.Alpha,
	}
}

// SetParam adjusts a controller parameter
func (l *Lateral) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		l.cfg.Kp = value
	case "Ki":
		l.cfg.Ki = value
	case "Kd":
		l.cfg.Kd = value
	case "Kf":
		l.cfg.Kf = value
	case "Alpha":
		if value >= 0 && value <= 1 {
			l.cfg.Alpha = value
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
