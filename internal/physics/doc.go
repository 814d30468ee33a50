// Package physics implements the tick-based mechanics behind glowsim's
// animation phases:
//
//   - [Body]: a point mass under constant per-tick gravity, advanced with
//     semi-implicit Euler integration
//   - [Arena]: bounded collision space with an energy-losing ground and
//     perfectly elastic walls and ceiling
//   - [ParticleSystem]: bounded-lifetime bounce debris
//   - [TrailRecorder]: FIFO history of sampled body positions
//
// Everything here is deterministic for a given seed and performs no I/O.
// The engine package composes these parts into complete animation runs.
package physics
