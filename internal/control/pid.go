package control

// PID is a plain clamped-integral PID on raw (unfiltered) error, used as a
// baseline in comparison runs. No feed-forward, no gain scheduling, no
// output rate limiting.
type PID struct {
	Kp          float64
	Ki          float64
	Kd          float64
	WindupLimit float64
	dt          float64
	integral    float64
	prevErr     float64
}

func NewPID(kp, ki, kd, windupLimit, dt float64) (*PID, error) {
	if dt <= 0 {
		return nil, ErrSampleInterval
	}
	if windupLimit < 0 {
		return nil, ErrWindupLimit
	}
	return &PID{
		Kp:          kp,
		Ki:          ki,
		Kd:          kd,
		WindupLimit: windupLimit,
		dt:          dt,
	}, nil
}

func (p *PID) Update(measuredLatAccel, roadLatAccel, vEgo, desiredLatAccel float64) float64 {
	err := desiredLatAccel - measuredLatAccel

	p.integral = clamp(p.integral+err*p.dt, -p.WindupLimit, p.WindupLimit)
	derivative := (err - p.prevErr) / p.dt
	p.prevErr = err

	return p.Kp*err + p.Ki*p.integral + p.Kd*derivative
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
}
