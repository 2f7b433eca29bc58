// Package signal provides the time/signal model of the simulation kernel.
//
// A [Signal] pairs a value with a [Delta] annotation (step size plus
// accumulated simulation time) and is parameterized by a time-domain marker
// ([Continuous] or [Discrete]) that only matters when two signals from
// different upstream paths are combined: the marker's Merge method defines
// the deterministic reconciliation of their annotations.
//
// A [Clock] is the external time source driving a simulation loop:
//
//	clk, _ := signal.NewContinuousClock(0.01, 10.0)
//	for tick := range clk.Ticks() {
//	    r := source.Output(tick)
//	    y := plant.Output(controller.Output(r))
//	    _ = y
//	}
package signal
