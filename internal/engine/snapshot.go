package engine

// BodyState is the rendered view of one body for a single tick.
type BodyState struct {
	X, Y   float64
	Radius float64
	Color  string
}

// ParticleState is the rendered view of one live particle.
type ParticleState struct {
	X, Y   float64
	Radius float64
}

// TrailPoint is a sampled historical body position.
type TrailPoint struct {
	X, Y float64
}

// BounceEvent reports a ground contact resolved during this tick.
type BounceEvent struct {
	X, Y float64
	Body int
}

// Snapshot is the read-only per-tick view handed to render sinks. It holds
// copies only; no engine-internal reference ever escapes through it.
type Snapshot struct {
	Frame     int
	Glow      float64 // halo pulse in [-1,1], sin(frame/5)
	Bodies    []BodyState
	Particles []ParticleState
	Trail     []TrailPoint
	Bounces   []BounceEvent
}

// Callbacks connect a clock-driven phase to its render sink. Either field
// may be nil.
type Callbacks struct {
	OnFrame    func(Snapshot)
	OnComplete func()
}

// Metric observes per-tick snapshots and reduces them to a single value.
type Metric interface {
	Name() string
	Observe(Snapshot)
	Value() float64
	Reset()
}
