// Package sim provides the core discrete-time stimulus simulation kernel.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - kernel.go: the clock, the step-block driver, and the delivery queue
//   - generator.go: the inhomogeneous Poisson generator and its step engine
//   - schedule.go: the piecewise-constant rate schedule and its validation
//
// # Architecture
//
// Time lives on a fixed step grid (grid.go): continuous millisecond
// instants crossing the boundary are snapped to integer tics once, and
// all alignment checks after that are exact integer comparisons.
//
// Randomness is partitioned (rng.go): every generator owns its own
// deterministically-seeded stream derived from the master seed, so runs
// are reproducible and devices never perturb each other's draws.
//
// Emission is a two-phase protocol (sampler.go): the step engine takes a
// cheap deterministic decision per step, and the stochastic multiplicity
// draw is deferred to delivery time. Candidates travel the kernel's event
// queue between the two phases; bundles that draw multiplicity zero are
// suppressed and never reach a receiver.
//
// Recording lives in sim/trace: delivered spike events are pure data and
// the trace package stores them without depending on sim/.
package sim
