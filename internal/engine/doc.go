// Package engine runs glowsim's animation phases. A [Phase] composes bodies,
// an arena, an optional particle system and optional trail recorders with a
// [FrameClock] into one bounded animation run, and emits a read-only
// [Snapshot] per tick to whatever render sink the caller supplies.
//
// The engine performs no I/O and never fails on validated input. Render
// faults are contained: a panicking sink cancels its phase, not the process.
package engine
