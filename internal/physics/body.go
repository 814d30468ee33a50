package physics

// Body is a simulated point mass under constant per-tick gravity.
type Body struct {
	X, Y        float64
	VX, VY      float64
	Radius      float64
	Gravity     float64
	Restitution float64
	Color       string
}

// Integrate advances the body by one tick using semi-implicit Euler:
// the velocity update from gravity happens before the position update.
// The clamp formulas in Arena.Resolve assume this order.
func (b *Body) Integrate() {
	b.VY += b.Gravity
	b.X += b.VX
	b.Y += b.VY
}

// Height returns how far the body's surface sits above the given ground line.
func (b *Body) Height(yGround float64) float64 {
	return yGround - (b.Y + b.Radius)
}
