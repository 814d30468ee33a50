package engine_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glowsim/internal/config"
	"github.com/san-kum/glowsim/internal/engine"
)

func loadingConfig() *config.PhaseConfig {
	return &config.PhaseConfig{
		Name:       "loading",
		IntervalMs: 20,
		Frames:     250,
		Gravity:    0.8,
		Seed:       1,
		Arena:      config.ArenaConfig{XMin: 0, XMax: 1200, YGround: 650},
		Bodies: []config.BodyConfig{
			{X: 100, Y: 400, VX: 8, Radius: 40, Restitution: 0.85, Color: "#00ffff"},
		},
		Particles: config.ParticleConfig{Burst: 8, Gravity: 0.5, Life: 20, Radius: 3},
		Trail:     config.TrailConfig{Every: 3, Cap: 15},
	}
}

func welcomeConfig() *config.PhaseConfig {
	ceiling := 100.0
	return &config.PhaseConfig{
		Name:       "welcome",
		IntervalMs: 20,
		Frames:     150,
		Gravity:    0.5,
		Seed:       2,
		Arena:      config.ArenaConfig{XMin: 100, XMax: 1100, YGround: 500, YCeiling: &ceiling},
		Spawn: &config.SpawnConfig{
			Count: 5, XStart: 200, XStep: 200,
			Y: 200, YJitter: 50,
			Radius: 30, RadiusJitter: 10,
			SpeedX: 3, SpeedY: 2,
			RestitutionMin: 0.7, RestitutionMax: 0.9,
			Colors: []string{"#ff69b4", "#00ffff", "#ffaa00", "#00ff00", "#ff00ff"},
		},
	}
}

var _ = Describe("Phase", func() {
	It("rejects invalid configs without creating a phase", func() {
		cfg := loadingConfig()
		cfg.Bodies[0].Restitution = 1.5

		p, err := engine.NewPhase(cfg)
		Expect(p).To(BeNil())
		Expect(errors.Is(err, engine.ErrInvalidConfig)).To(BeTrue())

		p, err = engine.Start(cfg, engine.Callbacks{})
		Expect(p).To(BeNil())
		Expect(err).To(HaveOccurred())
	})

	It("advances frames in strictly increasing order", func() {
		p, err := engine.NewPhase(loadingConfig())
		Expect(err).NotTo(HaveOccurred())

		for want := 0; want < 50; want++ {
			snap, ok := p.Advance()
			Expect(ok).To(BeTrue())
			Expect(snap.Frame).To(Equal(want))
		}
		Expect(p.Frame()).To(Equal(50))
	})

	It("keeps every body inside the arena for the whole run", func() {
		cfg := loadingConfig()
		p, err := engine.NewPhase(cfg)
		Expect(err).NotTo(HaveOccurred())

		for {
			snap, ok := p.Advance()
			if !ok {
				break
			}
			for _, b := range snap.Bodies {
				Expect(b.Y + b.Radius).To(BeNumerically("<=", cfg.Arena.YGround+1e-9))
				Expect(b.X + b.Radius).To(BeNumerically("<=", cfg.Arena.XMax+1e-9))
				Expect(b.X - b.Radius).To(BeNumerically(">=", cfg.Arena.XMin-1e-9))
			}
		}
	})

	It("spawns one full burst per ground bounce", func() {
		p, err := engine.NewPhase(loadingConfig())
		Expect(err).NotTo(HaveOccurred())

		prevCount := 0
		sawBounce := false
		for {
			snap, ok := p.Advance()
			if !ok {
				break
			}
			if len(snap.Bounces) > 0 && !sawBounce {
				// First bounce of the run: exactly one burst exists.
				Expect(snap.Particles).To(HaveLen(8))
				sawBounce = true
			}
			if len(snap.Bounces) == 0 {
				// Between bounces the population only shrinks.
				Expect(len(snap.Particles)).To(BeNumerically("<=", prevCount))
			}
			prevCount = len(snap.Particles)
		}
		Expect(sawBounce).To(BeTrue())
	})

	It("never exceeds the trail cap", func() {
		p, err := engine.NewPhase(loadingConfig())
		Expect(err).NotTo(HaveOccurred())

		maxLen := 0
		for {
			snap, ok := p.Advance()
			if !ok {
				break
			}
			Expect(len(snap.Trail)).To(BeNumerically("<=", 15))
			if len(snap.Trail) > maxLen {
				maxLen = len(snap.Trail)
			}
		}
		Expect(maxLen).To(Equal(15))
	})

	It("stops advancing exactly at the frame budget and releases state", func() {
		cfg := loadingConfig()
		p, err := engine.NewPhase(cfg)
		Expect(err).NotTo(HaveOccurred())

		ticks := 0
		for {
			_, ok := p.Advance()
			if !ok {
				break
			}
			ticks++
		}
		Expect(ticks).To(Equal(cfg.Frames))
		Expect(p.Live()).To(BeFalse())

		_, ok := p.Advance()
		Expect(ok).To(BeFalse())
	})

	It("is deterministic under a fixed seed", func() {
		a, err := engine.NewPhase(welcomeConfig())
		Expect(err).NotTo(HaveOccurred())
		b, err := engine.NewPhase(welcomeConfig())
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 150; i++ {
			sa, okA := a.Advance()
			sb, okB := b.Advance()
			Expect(okA).To(Equal(okB))
			Expect(sa.Bodies).To(Equal(sb.Bodies))
		}
	})

	It("runs multiple spawned bodies inside a closed box", func() {
		cfg := welcomeConfig()
		p, err := engine.NewPhase(cfg)
		Expect(err).NotTo(HaveOccurred())

		snap, ok := p.Advance()
		Expect(ok).To(BeTrue())
		Expect(snap.Bodies).To(HaveLen(5))
		Expect(snap.Bodies[0].Color).To(Equal("#ff69b4"))

		for {
			snap, ok = p.Advance()
			if !ok {
				break
			}
			for _, b := range snap.Bodies {
				Expect(b.Y - b.Radius).To(BeNumerically(">=", *cfg.Arena.YCeiling-1e-9))
				Expect(b.Y + b.Radius).To(BeNumerically("<=", cfg.Arena.YGround+1e-9))
			}
		}
	})

	It("no longer advances after an explicit cancel", func() {
		p, err := engine.NewPhase(loadingConfig())
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 10; i++ {
			_, ok := p.Advance()
			Expect(ok).To(BeTrue())
		}
		p.Cancel()

		_, ok := p.Advance()
		Expect(ok).To(BeFalse())
		Expect(p.Frame()).To(Equal(10))
	})
})

var _ = Describe("Start", func() {
	// Shrink the budget so clock-driven specs stay fast.
	fastConfig := func(frames int) *config.PhaseConfig {
		cfg := loadingConfig()
		cfg.IntervalMs = 1
		cfg.Frames = frames
		return cfg
	}

	It("delivers every frame in order and completes exactly once", func() {
		var mu sync.Mutex
		var frames []int
		completions := 0

		p, err := engine.Start(fastConfig(30), engine.Callbacks{
			OnFrame: func(snap engine.Snapshot) {
				mu.Lock()
				frames = append(frames, snap.Frame)
				mu.Unlock()
			},
			OnComplete: func() {
				mu.Lock()
				completions++
				mu.Unlock()
			},
		})
		Expect(err).NotTo(HaveOccurred())

		Eventually(p.Done()).Should(BeClosed())
		Consistently(func() int {
			mu.Lock()
			defer mu.Unlock()
			return completions
		}).Should(Equal(1))

		mu.Lock()
		defer mu.Unlock()
		Expect(frames).To(HaveLen(30))
		for i, f := range frames {
			Expect(f).To(Equal(i))
		}
	})

	It("stops all callbacks after a cancel mid-run", func() {
		var mu sync.Mutex
		maxFrame := -1
		completions := 0

		var p *engine.Phase
		var err error
		mu.Lock()
		p, err = engine.Start(fastConfig(250), engine.Callbacks{
			OnFrame: func(snap engine.Snapshot) {
				mu.Lock()
				if snap.Frame > maxFrame {
					maxFrame = snap.Frame
				}
				ph := p
				mu.Unlock()
				if snap.Frame == 9 && ph != nil {
					ph.Cancel()
				}
			},
			OnComplete: func() {
				mu.Lock()
				completions++
				mu.Unlock()
			},
		})
		mu.Unlock()
		Expect(err).NotTo(HaveOccurred())

		Eventually(p.Done()).Should(BeClosed())
		Consistently(func() int {
			mu.Lock()
			defer mu.Unlock()
			return maxFrame
		}).Should(BeNumerically("<=", 9))

		mu.Lock()
		defer mu.Unlock()
		Expect(completions).To(BeZero())
	})

	It("cancels the phase when the render sink panics", func() {
		var mu sync.Mutex
		maxFrame := -1
		completions := 0

		p, err := engine.Start(fastConfig(250), engine.Callbacks{
			OnFrame: func(snap engine.Snapshot) {
				mu.Lock()
				if snap.Frame > maxFrame {
					maxFrame = snap.Frame
				}
				mu.Unlock()
				if snap.Frame == 5 {
					panic("sink exploded")
				}
			},
			OnComplete: func() {
				mu.Lock()
				completions++
				mu.Unlock()
			},
		})
		Expect(err).NotTo(HaveOccurred())

		Eventually(p.Done()).Should(BeClosed())
		Expect(p.Live()).To(BeFalse())

		mu.Lock()
		defer mu.Unlock()
		Expect(maxFrame).To(Equal(5))
		Expect(completions).To(BeZero())
	})
})

var _ = Describe("Run", func() {
	It("collects every frame and reports completion", func() {
		cfg := loadingConfig()
		result, err := engine.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Completed).To(BeTrue())
		Expect(result.Frames).To(HaveLen(cfg.Frames))
		Expect(result.Frames[0].Frame).To(BeZero())
		Expect(result.Frames[249].Frame).To(Equal(249))
	})

	It("returns the partial result when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.Run(ctx, loadingConfig())
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Completed).To(BeFalse())
		Expect(result.Frames).To(BeEmpty())
	})
})
