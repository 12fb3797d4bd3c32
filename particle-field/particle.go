package field

// Particle is a single snowflake. Radius, fall speed, drift and opacity are
// chosen when the flake is spawned; only position and velocity evolve.
type Particle struct {
	x, y      float64
	vx, vy    float64
	radius    float64
	fallSpeed float64
	drift     float64
	opacity   float64
}

// NewParticle spawns a resting flake at {x, y}.
func NewParticle(x, y, radius, fallSpeed, drift, opacity float64) *Particle {
	return &Particle{
		x:         x,
		y:         y,
		radius:    radius,
		fallSpeed: fallSpeed,
		drift:     drift,
		opacity:   opacity,
	}
}

// GetX returns the horizontal position.
func (p *Particle) GetX() float64 {
	return p.x
}

// GetY returns the vertical position.
func (p *Particle) GetY() float64 {
	return p.y
}

// GetVx returns the horizontal repulsion velocity.
func (p *Particle) GetVx() float64 {
	return p.vx
}

// SetVx overrides the horizontal repulsion velocity.
func (p *Particle) SetVx(val float64) {
	p.vx = val
}

// GetVy returns the vertical repulsion velocity.
func (p *Particle) GetVy() float64 {
	return p.vy
}

// SetVy overrides the vertical repulsion velocity.
func (p *Particle) SetVy(val float64) {
	p.vy = val
}

// GetRadius returns the radius the flake is painted with.
func (p *Particle) GetRadius() float64 {
	return p.radius
}

// GetFallSpeed returns the baseline downward speed per frame.
func (p *Particle) GetFallSpeed() float64 {
	return p.fallSpeed
}

// GetDrift returns the baseline sideways speed per frame, the wind.
func (p *Particle) GetDrift() float64 {
	return p.drift
}

// GetOpacity returns the fill alpha of the flake.
func (p *Particle) GetOpacity() float64 {
	return p.opacity
}
