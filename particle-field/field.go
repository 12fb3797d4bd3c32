// Package field implements a pointer-interactive field of falling snow particles.
//
// A Field owns a fixed number of particles. Every frame each particle is pushed
// away from the pointer when it comes closer than the interaction radius, its
// pointer-induced velocity is damped, it drifts down and sideways, and it is
// wrapped back into the viewport when it leaves it. The field paints itself on
// any Surface, which keeps it independent from the host (browser canvas,
// terminal, raster image or websocket stream).
package field

import (
	"math"
	"math/rand/v2"
)

// Config holds the constants of the simulation. They are fixed at construction.
type Config struct {
	Count             int     // number of particles
	InteractionRadius float64 // pointer repulsion radius (R)
	Repulsion         float64 // repulsion scale (k)
	Damping           float64 // per frame velocity damping factor

	MinRadius, MaxRadius   float64
	MinFall, MaxFall       float64
	MaxDrift               float64 // drift is drawn from [-MaxDrift, MaxDrift)
	MinOpacity, MaxOpacity float64
}

// DefaultConfig returns the constants used by the site.
func DefaultConfig() Config {
	return Config{
		Count:             100,
		InteractionRadius: 100,
		Repulsion:         0.5,
		Damping:           0.95,
		MinRadius:         1,
		MaxRadius:         4,
		MinFall:           0.5,
		MaxFall:           1.5,
		MaxDrift:          0.25,
		MinOpacity:        0.3,
		MaxOpacity:        0.8,
	}
}

// Point is a coordinate in viewport pixels.
type Point struct {
	X, Y float64
}

// Field is the particle set together with the viewport it lives in.
// A Field is not safe for concurrent use, see Simulator for that.
type Field struct {
	cfg       Config
	w, h      float64
	particles []*Particle
	rnd       *rand.Rand
}

// New allocates cfg.Count particles uniformly spread over the w x h viewport.
func New(w, h float64, cfg Config, rnd *rand.Rand) *Field {
	f := &Field{
		cfg:       cfg,
		w:         w,
		h:         h,
		particles: make([]*Particle, cfg.Count),
		rnd:       rnd,
	}
	for i := range f.particles {
		f.particles[i] = NewParticle(
			f.uniform(0, w),
			f.uniform(0, h),
			f.uniform(cfg.MinRadius, cfg.MaxRadius),
			f.uniform(cfg.MinFall, cfg.MaxFall),
			f.uniform(-cfg.MaxDrift, cfg.MaxDrift),
			f.uniform(cfg.MinOpacity, cfg.MaxOpacity),
		)
	}
	return f
}

func (f *Field) uniform(lo, hi float64) float64 {
	return lo + f.rnd.Float64()*(hi-lo)
}

// Len returns the number of particles. It never changes.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the particle set. The slice is owned by the field.
func (f *Field) Particles() []*Particle {
	return f.particles
}

// Size returns the current viewport dimensions.
func (f *Field) Size() (w, h float64) {
	return f.w, f.h
}

// Resize changes the viewport. Particle positions are left untouched,
// particles outside of the new bounds are wrapped on the next frame.
func (f *Field) Resize(w, h float64) {
	f.w, f.h = w, h
}

// Frame clears the surface, advances every particle by one step against the
// given pointer position and paints it.
func (f *Field) Frame(s Surface, pointer Point) {
	s.Clear()
	for _, p := range f.particles {
		f.step(p, pointer)
		s.FillCircle(math.Round(p.x), math.Round(p.y), p.radius, p.opacity)
	}
	if fl, ok := s.(Flusher); ok {
		fl.Flush()
	}
}

// Step advances every particle by one frame without painting.
func (f *Field) Step(pointer Point) {
	for _, p := range f.particles {
		f.step(p, pointer)
	}
}

func (f *Field) step(p *Particle, pointer Point) {
	dx := pointer.X - p.x
	dy := pointer.Y - p.y
	d := math.Hypot(dx, dy)

	// A particle sitting exactly on the pointer has no direction to be pushed to.
	if d > 0 && d < f.cfg.InteractionRadius {
		force := (f.cfg.InteractionRadius - d) / f.cfg.InteractionRadius
		p.vx -= dx / d * force * f.cfg.Repulsion
		p.vy -= dy / d * force * f.cfg.Repulsion
	}

	p.vx *= f.cfg.Damping
	p.vy *= f.cfg.Damping

	p.x += p.drift + p.vx
	p.y += p.fallSpeed + p.vy

	f.wrap(p)
}

// wrap brings a particle back into [0,w) x [0,h). Falling out of the bottom
// re-enters the particle at a random point of the top edge, leaving through
// a side re-enters it on the opposite side at the same height.
func (f *Field) wrap(p *Particle) {
	if p.y >= f.h {
		p.y = 0
		p.x = f.uniform(0, f.w)
	} else if p.y < 0 {
		p.y = 0
	}
	if p.x >= f.w {
		p.x = 0
	} else if p.x < 0 {
		p.x = math.Nextafter(f.w, 0)
	}
}
