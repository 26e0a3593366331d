// Package particle implements a fixed-capacity pool of reusable particles
// that move in a straight line and return themselves to the pool when they
// leave a rectangular region.
package particle

import "math"

// Bounds is the validity region [0, Width] x [0, Height]
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the region, edges inclusive
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Particle is a pooled unit; parameters are stale while inactive
// Only the owning Pool changes its state; callers read it through accessors
type Particle struct {
	x, y  float64
	speed float64
	angle float64 // Radians

	active bool
	slot   int
	owner  *Pool
}

// activate overwrites motion parameters and marks the particle active
func (p *Particle) activate(x, y, speed, angle float64) {
	p.x = x
	p.y = y
	p.speed = speed
	p.angle = angle
	p.active = true
}

// advance moves the particle one time step and deactivates it if it left b
func (p *Particle) advance(b Bounds) {
	if !p.active {
		return
	}

	p.x += math.Cos(p.angle) * p.speed
	p.y += math.Sin(p.angle) * p.speed

	// Boundary test runs last so an exiting particle is freed in the same step
	if !b.Contains(p.x, p.y) {
		p.active = false
	}
}

// IsActive reports whether the particle is currently acquired
func (p *Particle) IsActive() bool {
	return p.active
}

// Position returns the current coordinates
func (p *Particle) Position() (x, y float64) {
	return p.x, p.y
}

// Speed returns the distance covered per tick
func (p *Particle) Speed() float64 {
	return p.speed
}

// Angle returns the heading in radians
func (p *Particle) Angle() float64 {
	return p.angle
}

// Slot returns the fixed index of the particle inside its pool
func (p *Particle) Slot() int {
	return p.slot
}
