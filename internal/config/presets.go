package config

func ceiling(y float64) *float64 { return &y }

// Presets are the two animation sequences shipped with the chat client, plus
// a closed-box stress variant useful for soak-testing the collision code.
var Presets = map[string]*PhaseConfig{
	// Single glowing ball dropped onto the ground, with bounce debris and a
	// position trail. Runs while the client boots.
	"loading": {
		Name:       "loading",
		IntervalMs: 20,
		Frames:     250,
		Gravity:    0.8,
		Seed:       1,
		Arena:      ArenaConfig{XMin: 0, XMax: 1200, YGround: 650},
		Bodies: []BodyConfig{
			{X: 100, Y: 400, VX: 8, VY: 0, Radius: 40, Restitution: 0.85, Color: "#00ffff"},
		},
		Particles: ParticleConfig{Burst: 8, Gravity: 0.5, Life: 20, Radius: 3},
		Trail:     TrailConfig{Every: 3, Cap: 15},
	},
	// Five balls of differing size and bounciness drifting inside a fully
	// closed box. Runs once after a successful login.
	"welcome": {
		Name:       "welcome",
		IntervalMs: 20,
		Frames:     150,
		Gravity:    0.5,
		Seed:       2,
		Arena:      ArenaConfig{XMin: 100, XMax: 1100, YGround: 500, YCeiling: ceiling(100)},
		Spawn: &SpawnConfig{
			Count:          5,
			XStart:         200,
			XStep:          200,
			Y:              200,
			YJitter:        50,
			Radius:         30,
			RadiusJitter:   10,
			SpeedX:         3,
			SpeedY:         2,
			RestitutionMin: 0.7,
			RestitutionMax: 0.9,
			Colors:         []string{"#ff69b4", "#00ffff", "#ffaa00", "#00ff00", "#ff00ff"},
		},
	},
	"box": {
		Name:       "box",
		IntervalMs: 10,
		Frames:     1000,
		Gravity:    0.8,
		Seed:       3,
		Arena:      ArenaConfig{XMin: 0, XMax: 800, YGround: 600, YCeiling: ceiling(0)},
		Spawn: &SpawnConfig{
			Count:          12,
			XStart:         60,
			XStep:          60,
			Y:              150,
			YJitter:        100,
			Radius:         18,
			RadiusJitter:   8,
			SpeedX:         6,
			SpeedY:         4,
			RestitutionMin: 0.6,
			RestitutionMax: 1.0,
		},
		Particles: ParticleConfig{Burst: 4, Gravity: 0.5, Life: 12, Radius: 2},
	},
}

func GetPreset(name string) *PhaseConfig {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
