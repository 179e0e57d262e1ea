package control

// None always steers zero. Useful for recording the open-loop response of
// a plant under a scenario.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Update(measuredLatAccel, roadLatAccel, vEgo, desiredLatAccel float64) float64 {
	return 0
}

func (n *None) Reset() {}
