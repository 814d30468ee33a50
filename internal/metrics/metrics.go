// Package metrics reduces per-tick snapshots to summary values for run
// reports. Each metric implements engine.Metric.
package metrics

import (
	"github.com/san-kum/glowsim/internal/engine"
)

// BounceCount totals ground contacts across all bodies.
type BounceCount struct {
	name  string
	count float64
}

func NewBounceCount() *BounceCount {
	return &BounceCount{name: "bounces"}
}

func (b *BounceCount) Name() string { return b.name }

func (b *BounceCount) Observe(snap engine.Snapshot) {
	b.count += float64(len(snap.Bounces))
}

func (b *BounceCount) Value() float64 { return b.count }

func (b *BounceCount) Reset() { b.count = 0 }

// PeakHeight tracks the highest point any body surface reaches above the
// ground line.
type PeakHeight struct {
	name    string
	yGround float64
	peak    float64
	samples int
}

func NewPeakHeight(yGround float64) *PeakHeight {
	return &PeakHeight{name: "peak_height", yGround: yGround}
}

func (p *PeakHeight) Name() string { return p.name }

func (p *PeakHeight) Observe(snap engine.Snapshot) {
	for _, b := range snap.Bodies {
		h := p.yGround - (b.Y + b.Radius)
		if p.samples == 0 || h > p.peak {
			p.peak = h
		}
		p.samples++
	}
}

func (p *PeakHeight) Value() float64 { return p.peak }

func (p *PeakHeight) Reset() {
	p.peak = 0
	p.samples = 0
}

// PeakParticles tracks the largest live-particle population seen on any tick.
type PeakParticles struct {
	name string
	peak float64
}

func NewPeakParticles() *PeakParticles {
	return &PeakParticles{name: "peak_particles"}
}

func (p *PeakParticles) Name() string { return p.name }

func (p *PeakParticles) Observe(snap engine.Snapshot) {
	if n := float64(len(snap.Particles)); n > p.peak {
		p.peak = n
	}
}

func (p *PeakParticles) Value() float64 { return p.peak }

func (p *PeakParticles) Reset() { p.peak = 0 }

// Defaults returns the standard metric set for a phase run.
func Defaults(yGround float64) []engine.Metric {
	return []engine.Metric{
		NewBounceCount(),
		NewPeakHeight(yGround),
		NewPeakParticles(),
	}
}
