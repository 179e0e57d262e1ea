package control

import "errors"

// Domain errors for controller configuration.
var (
	// ErrSampleInterval indicates a non-positive sample interval.
	ErrSampleInterval = errors.New("control: sample interval must be positive")

	// ErrSmoothingFactor indicates a smoothing factor outside [0, 1].
	ErrSmoothingFactor = errors.New("control: smoothing factor must be in [0, 1]")

	// ErrWindupLimit indicates a negative integral clamp bound.
	ErrWindupLimit = errors.New("control: windup limit must be non-negative")

	// ErrSteerRate indicates a negative steering-rate bound.
	ErrSteerRate = errors.New("control: max steer rate must be non-negative")
)
