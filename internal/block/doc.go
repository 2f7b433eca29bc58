// Package block defines the composition abstraction of the kernel.
//
// Every processing element implements [Block]: a stateful transformation
// with output/last-output/reset semantics. Heterogeneous pipelines compose
// through the interface; hot-path single-block computation stays statically
// typed.
//
//	pipe := block.NewChain[signal.Continuous](controller, plant)
//	y := pipe.Output(r)
package block
