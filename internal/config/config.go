package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntervalMs = 20
	DefaultFrames     = 250
	DefaultGravity    = 0.8
	DefaultSeed       = 1
)

// PhaseConfig fully describes one animation phase: its bodies, arena, tick
// cadence and the optional particle and trail layers.
type PhaseConfig struct {
	Name       string         `yaml:"name"`
	IntervalMs int            `yaml:"interval_ms"`
	Frames     int            `yaml:"frames"`
	Gravity    float64        `yaml:"gravity"`
	Seed       int64          `yaml:"seed"`
	Arena      ArenaConfig    `yaml:"arena"`
	Bodies     []BodyConfig   `yaml:"bodies,omitempty"`
	Spawn      *SpawnConfig   `yaml:"spawn,omitempty"`
	Particles  ParticleConfig `yaml:"particles"`
	Trail      TrailConfig    `yaml:"trail"`
}

// ArenaConfig sets the collision bounds. YCeiling is optional; leaving it nil
// gives an open-top arena.
type ArenaConfig struct {
	XMin     float64  `yaml:"x_min"`
	XMax     float64  `yaml:"x_max"`
	YGround  float64  `yaml:"y_ground"`
	YCeiling *float64 `yaml:"y_ceiling,omitempty"`
}

// BodyConfig places one body explicitly.
type BodyConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	VX          float64 `yaml:"vx"`
	VY          float64 `yaml:"vy"`
	Radius      float64 `yaml:"radius"`
	Restitution float64 `yaml:"restitution"`
	Color       string  `yaml:"color,omitempty"`
}

// SpawnConfig generates Count bodies from seeded ranges: body i starts at
// x = XStart + i*XStep, y = Y ± YJitter, radius = Radius ± RadiusJitter,
// vx ~ U[-SpeedX, SpeedX], vy ~ U[-SpeedY, SpeedY], and restitution drawn
// uniformly from [RestitutionMin, RestitutionMax]. Colors cycle per body.
type SpawnConfig struct {
	Count          int      `yaml:"count"`
	XStart         float64  `yaml:"x_start"`
	XStep          float64  `yaml:"x_step"`
	Y              float64  `yaml:"y"`
	YJitter        float64  `yaml:"y_jitter"`
	Radius         float64  `yaml:"radius"`
	RadiusJitter   float64  `yaml:"radius_jitter"`
	SpeedX         float64  `yaml:"speed_x"`
	SpeedY         float64  `yaml:"speed_y"`
	RestitutionMin float64  `yaml:"restitution_min"`
	RestitutionMax float64  `yaml:"restitution_max"`
	Colors         []string `yaml:"colors,omitempty"`
}

// ParticleConfig tunes bounce debris. Burst 0 disables the particle layer.
type ParticleConfig struct {
	Burst   int     `yaml:"burst"`
	Gravity float64 `yaml:"gravity"`
	Life    int     `yaml:"life"`
	Radius  float64 `yaml:"radius"`
}

// TrailConfig tunes position history sampling. Every 0 disables the trail.
type TrailConfig struct {
	Every int `yaml:"every"`
	Cap   int `yaml:"cap"`
}

func DefaultConfig() *PhaseConfig {
	return &PhaseConfig{
		Name:       "drop",
		IntervalMs: DefaultIntervalMs,
		Frames:     DefaultFrames,
		Gravity:    DefaultGravity,
		Seed:       DefaultSeed,
		Arena:      ArenaConfig{XMin: 0, XMax: 1200, YGround: 650},
		Bodies: []BodyConfig{
			{X: 100, Y: 400, VX: 8, Radius: 40, Restitution: 0.85},
		},
	}
}

func Load(path string) (*PhaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *PhaseConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects malformed phase configs before any state is created.
func (c *PhaseConfig) Validate() error {
	if c.IntervalMs <= 0 {
		return fmt.Errorf("interval_ms must be positive, got %d", c.IntervalMs)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.Arena.XMax <= c.Arena.XMin {
		return fmt.Errorf("arena x_max must exceed x_min, got [%f, %f]", c.Arena.XMin, c.Arena.XMax)
	}
	if c.Arena.YCeiling != nil && *c.Arena.YCeiling >= c.Arena.YGround {
		return fmt.Errorf("arena y_ceiling must be above y_ground, got %f >= %f", *c.Arena.YCeiling, c.Arena.YGround)
	}
	if len(c.Bodies) == 0 && c.Spawn == nil {
		return fmt.Errorf("phase needs at least one body or a spawn block")
	}
	for i, b := range c.Bodies {
		if b.Radius <= 0 {
			return fmt.Errorf("body %d: radius must be positive, got %f", i, b.Radius)
		}
		if b.Restitution <= 0 || b.Restitution > 1 {
			return fmt.Errorf("body %d: restitution must be in (0,1], got %f", i, b.Restitution)
		}
	}
	if s := c.Spawn; s != nil {
		if s.Count <= 0 {
			return fmt.Errorf("spawn count must be positive, got %d", s.Count)
		}
		if s.Radius-s.RadiusJitter <= 0 {
			return fmt.Errorf("spawn radius minus jitter must stay positive, got %f", s.Radius-s.RadiusJitter)
		}
		if s.RestitutionMin <= 0 || s.RestitutionMax > 1 || s.RestitutionMin > s.RestitutionMax {
			return fmt.Errorf("spawn restitution range must sit inside (0,1], got [%f, %f]", s.RestitutionMin, s.RestitutionMax)
		}
	}
	if c.Particles.Burst < 0 {
		return fmt.Errorf("particle burst must be non-negative, got %d", c.Particles.Burst)
	}
	if c.Particles.Burst > 0 && c.Particles.Life <= 0 {
		return fmt.Errorf("particle life must be positive, got %d", c.Particles.Life)
	}
	if c.Trail.Every < 0 {
		return fmt.Errorf("trail every must be non-negative, got %d", c.Trail.Every)
	}
	if c.Trail.Every > 0 && c.Trail.Cap <= 0 {
		return fmt.Errorf("trail cap must be positive, got %d", c.Trail.Cap)
	}
	return nil
}

// BodyCount returns how many bodies the phase will own.
func (c *PhaseConfig) BodyCount() int {
	n := len(c.Bodies)
	if c.Spawn != nil {
		n += c.Spawn.Count
	}
	return n
}
