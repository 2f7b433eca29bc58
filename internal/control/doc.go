// Package control provides feedback controllers as signal blocks.
//
// Controllers consume the loop error (or, for the predictors, the control
// signal paired with the measured output) and produce the control signal:
//
//   - [PID]: three-term controller with conditional-integration anti-windup
//   - [StateFeedback]: full-state feedback over a state-space realization
//   - [SmithPredictor]: dead-time compensation with an internal model
//   - [Manual]: externally set constant control, for interactive runs
//   - [None]: zero control, for open-loop comparison runs
//
// # Usage
//
//	pid, _ := control.NewPID[signal.Continuous](1.0, 0.1, 0.01).
//		WithAntiWindup(-10, 10)
//	u := pid.Output(err)
package control
