package physics

import "math"

// Bounce marks a ground contact resolved during the current tick.
type Bounce struct {
	X, Y float64
}

// Arena bounds a body's motion. YCeiling is only active when HasCeiling is
// set; the loading sequence runs in an open-top arena, the welcome scene in a
// fully closed box. Bounds are immutable for the lifetime of a phase.
type Arena struct {
	XMin, XMax float64
	YGround    float64
	YCeiling   float64
	HasCeiling bool
}

// Resolve clamps the body back inside the arena and reflects its velocity.
// Checks run per axis and both axes may trigger in the same tick. Only the
// ground contact loses energy through restitution; ceiling and wall contacts
// are perfectly elastic. The asymmetry is intentional.
func (a *Arena) Resolve(b *Body) (Bounce, bool) {
	var bounce Bounce
	grounded := false

	if b.Y+b.Radius >= a.YGround {
		b.Y = a.YGround - b.Radius
		b.VY = -b.VY * b.Restitution
		bounce = Bounce{X: b.X, Y: a.YGround}
		grounded = true
	}

	if a.HasCeiling && b.Y-b.Radius <= a.YCeiling {
		b.Y = a.YCeiling + b.Radius
		b.VY = math.Abs(b.VY)
	}

	if b.X+b.Radius >= a.XMax {
		b.X = a.XMax - b.Radius
		b.VX = -math.Abs(b.VX)
	}
	if b.X-b.Radius <= a.XMin {
		b.X = a.XMin + b.Radius
		b.VX = math.Abs(b.VX)
	}

	return bounce, grounded
}

// Width returns the horizontal extent of the arena.
func (a *Arena) Width() float64 { return a.XMax - a.XMin }

// Top returns the upper drawing bound: the ceiling when present, otherwise
// zero (screen origin).
func (a *Arena) Top() float64 {
	if a.HasCeiling {
		return a.YCeiling
	}
	return 0
}
