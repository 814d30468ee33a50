package engine

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/san-kum/glowsim/internal/config"
	"github.com/san-kum/glowsim/internal/physics"
)

// Phase is one self-contained animation run. It exclusively owns its bodies,
// particles and trail recorders; all of that state is released when the frame
// budget is reached or the phase is cancelled, and none of it is shared with
// any other phase.
//
// A phase runs in one of two modes. Start attaches a FrameClock that drives
// ticks on its own goroutine and reports through Callbacks. NewPhase leaves
// the phase unclocked for hosts that own the event loop and call Advance
// themselves (the live terminal view works this way).
type Phase struct {
	cfg   *config.PhaseConfig
	arena physics.Arena

	bodies    []physics.Body
	particles *physics.ParticleSystem
	trails    []*physics.TrailRecorder
	rng       *rand.Rand

	frame  int
	alive  atomic.Bool
	clock  *FrameClock
	cb     Callbacks
	logger *slog.Logger
}

// NewPhase validates the config and builds a cooperative (unclocked) phase.
func NewPhase(cfg *config.PhaseConfig) (*Phase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	p := &Phase{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: slog.Default(),
	}
	p.arena = physics.Arena{
		XMin:    cfg.Arena.XMin,
		XMax:    cfg.Arena.XMax,
		YGround: cfg.Arena.YGround,
	}
	if cfg.Arena.YCeiling != nil {
		p.arena.YCeiling = *cfg.Arena.YCeiling
		p.arena.HasCeiling = true
	}

	p.bodies = buildBodies(cfg, p.rng)
	if cfg.Particles.Burst > 0 {
		p.particles = physics.NewParticleSystem(
			cfg.Particles.Burst,
			cfg.Particles.Gravity,
			cfg.Particles.Life,
			cfg.Particles.Radius,
			p.rng,
		)
	}
	if cfg.Trail.Every > 0 {
		p.trails = make([]*physics.TrailRecorder, len(p.bodies))
		for i := range p.trails {
			p.trails[i] = physics.NewTrailRecorder(cfg.Trail.Every, cfg.Trail.Cap)
		}
	}

	p.alive.Store(true)
	return p, nil
}

// Start builds a phase and drives it with a FrameClock at the configured
// tick interval, reporting every frame to cb. It fails fast on invalid config
// with no phase created and no ticks fired.
func Start(cfg *config.PhaseConfig, cb Callbacks) (*Phase, error) {
	p, err := NewPhase(cfg)
	if err != nil {
		return nil, err
	}
	p.cb = cb
	p.clock = NewFrameClock(time.Duration(cfg.IntervalMs)*time.Millisecond, cfg.Frames)
	p.clock.Start(p.tick, p.complete)

	// Owned state is released only after the clock goroutine has fully
	// exited, so a tick in flight never sees freed slices.
	go func() {
		<-p.clock.Done()
		p.release()
	}()
	return p, nil
}

func buildBodies(cfg *config.PhaseConfig, rng *rand.Rand) []physics.Body {
	bodies := make([]physics.Body, 0, cfg.BodyCount())
	for _, b := range cfg.Bodies {
		bodies = append(bodies, physics.Body{
			X: b.X, Y: b.Y, VX: b.VX, VY: b.VY,
			Radius:      b.Radius,
			Gravity:     cfg.Gravity,
			Restitution: b.Restitution,
			Color:       b.Color,
		})
	}
	if s := cfg.Spawn; s != nil {
		for i := 0; i < s.Count; i++ {
			b := physics.Body{
				X:           s.XStart + float64(i)*s.XStep,
				Y:           s.Y + jitter(rng, s.YJitter),
				VX:          jitter(rng, s.SpeedX),
				VY:          jitter(rng, s.SpeedY),
				Radius:      s.Radius + jitter(rng, s.RadiusJitter),
				Gravity:     cfg.Gravity,
				Restitution: s.RestitutionMin + rng.Float64()*(s.RestitutionMax-s.RestitutionMin),
			}
			if len(s.Colors) > 0 {
				b.Color = s.Colors[i%len(s.Colors)]
			}
			bodies = append(bodies, b)
		}
	}
	return bodies
}

// jitter draws uniformly from [-amount, amount].
func jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

// Advance runs exactly one tick: integrate every body, resolve collisions,
// feed bounce events to the particle system, age particles and sample trails,
// then return the resulting snapshot. The second return is false once the
// phase has completed or been cancelled; the snapshot is only valid while it
// is true.
func (p *Phase) Advance() (Snapshot, bool) {
	if !p.alive.Load() {
		return Snapshot{}, false
	}

	frame := p.frame
	var bounces []BounceEvent
	for i := range p.bodies {
		b := &p.bodies[i]
		b.Integrate()
		if bounce, ok := p.arena.Resolve(b); ok {
			bounces = append(bounces, BounceEvent{X: bounce.X, Y: bounce.Y, Body: i})
			if p.particles != nil {
				p.particles.Spawn(bounce.X, bounce.Y)
			}
		}
		if p.trails != nil {
			p.trails[i].Observe(frame, b.X, b.Y)
		}
	}
	if p.particles != nil {
		p.particles.Update()
	}
	p.frame++

	snap := p.snapshot(frame, bounces)

	if p.frame >= p.cfg.Frames {
		p.alive.Store(false)
		if p.clock == nil {
			p.release()
		}
	}
	return snap, true
}

// Cancel stops the phase before the next scheduled tick runs. No further
// frame or completion callbacks follow. Idempotent.
func (p *Phase) Cancel() {
	p.alive.Store(false)
	if p.clock != nil {
		p.clock.Cancel()
		return // the clock monitor releases owned state
	}
	p.release()
}

// Frame returns the number of ticks completed so far.
func (p *Phase) Frame() int { return p.frame }

// Live reports whether the phase will still advance.
func (p *Phase) Live() bool { return p.alive.Load() }

// Done is closed once a clock-driven phase has stopped ticking. For
// cooperative phases it returns nil.
func (p *Phase) Done() <-chan struct{} {
	if p.clock == nil {
		return nil
	}
	return p.clock.Done()
}

// tick is the FrameClock callback for one frame.
func (p *Phase) tick(int) {
	if !p.alive.Load() {
		return
	}
	snap, ok := p.Advance()
	if !ok {
		return
	}
	if p.cb.OnFrame != nil {
		p.dispatchFrame(snap)
	}
}

// dispatchFrame delivers one snapshot to the render sink. A faulting sink
// cannot be trusted on subsequent frames, so a panic here cancels the whole
// phase rather than the process.
func (p *Phase) dispatchFrame(snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("render sink fault, cancelling phase",
				"phase", p.cfg.Name, "frame", snap.Frame, "panic", r)
			p.Cancel()
		}
	}()
	p.cb.OnFrame(snap)
}

// complete is the FrameClock completion callback; the clock fires it at most
// once and never after a cancel.
func (p *Phase) complete() {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("completion callback fault",
				"phase", p.cfg.Name, "frame", p.frame, "panic", r)
		}
	}()
	if p.cb.OnComplete != nil {
		p.cb.OnComplete()
	}
}

func (p *Phase) snapshot(frame int, bounces []BounceEvent) Snapshot {
	snap := Snapshot{
		Frame:   frame,
		Glow:    math.Sin(float64(frame) * 0.2),
		Bodies:  make([]BodyState, len(p.bodies)),
		Bounces: bounces,
	}
	for i, b := range p.bodies {
		snap.Bodies[i] = BodyState{X: b.X, Y: b.Y, Radius: b.Radius, Color: b.Color}
	}
	if p.particles != nil && p.particles.Len() > 0 {
		snap.Particles = make([]ParticleState, p.particles.Len())
		for i, pt := range p.particles.Particles() {
			snap.Particles[i] = ParticleState{X: pt.X, Y: pt.Y, Radius: pt.Radius}
		}
	}
	for _, tr := range p.trails {
		for _, m := range tr.Markers() {
			snap.Trail = append(snap.Trail, TrailPoint{X: m.X, Y: m.Y})
		}
	}
	return snap
}

// release drops all owned state. Nothing handed out earlier is affected:
// snapshots only ever contain copies.
func (p *Phase) release() {
	if p.particles != nil {
		p.particles.Clear()
	}
	p.bodies = nil
	p.particles = nil
	p.trails = nil
}
