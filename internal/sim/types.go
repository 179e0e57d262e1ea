package sim

// Controller produces a steering command from the measured and desired
// lateral acceleration each tick.
type Controller interface {
	Update(measuredLatAccel, roadLatAccel, vEgo, desiredLatAccel float64) float64
	Reset()
}

// Vehicle is the plant side of the loop: it turns steering commands into
// measured lateral acceleration.
type Vehicle interface {
	Step(steer, roadLatAccel float64)
	LatAccel() float64
	Speed() float64
	Reset()
}

// Scenario supplies the target trajectory and road-roll profile over time.
type Scenario interface {
	Desired(t float64) float64
	RoadLatAccel(t float64) float64
}

// Tick is one record of the closed loop.
type Tick struct {
	T            float64
	Desired      float64
	Measured     float64
	RoadLatAccel float64
	Speed        float64
	Steer        float64
}

type Metric interface {
	Name() string
	Observe(tk Tick)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tk Tick)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

type Result struct {
	Ticks   []Tick
	Metrics map[string]float64
}
