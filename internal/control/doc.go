// Package control provides steering controllers for the closed loop.
//
// Controllers implement the [sim.Controller] interface and map a desired
// lateral acceleration plus measured vehicle state to a steering command:
//
//   - [Lateral]: PID with target low-pass filtering, feed-forward,
//     anti-windup, speed-based gain scheduling and slew-rate limiting
//   - [PID]: plain PID with integral clamping, baseline for comparison
//   - [None]: zero steering passthrough
//
// # Usage
//
//	ctrl, err := control.NewLateral(control.DefaultConfig())
//	loop := sim.New(scenario, vehicle, ctrl)
//	// Controller.Update is called once per tick
//
// Controllers implementing GetParams/SetParam support live tuning.
package control
