package particle

// Stats holds cumulative pool counters
type Stats struct {
	Acquired  uint64 `json:"acquired"`
	Exhausted uint64 `json:"exhausted"`
	Released  uint64 `json:"released"`
	Expired   uint64 `json:"expired"`
}

// Pool owns a fixed set of particles allocated once at construction
// Not safe for concurrent use: Acquire, Release, Tick and Reset must be called from one goroutine
type Pool struct {
	particles   []Particle
	bounds      Bounds
	activeCount int
	stats       Stats
}

// NewPool allocates exactly capacity inactive particles
// Negative capacity is treated as zero
func NewPool(capacity int, bounds Bounds) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool{
		particles: make([]Particle, capacity),
		bounds:    bounds,
	}
	for i := range p.particles {
		p.particles[i].slot = i
		p.particles[i].owner = p
	}
	return p
}

// Acquire activates the first free particle in slot order
// Returns nil, false when the pool is exhausted
func (p *Pool) Acquire(x, y, speed, angle float64) (*Particle, bool) {
	for i := range p.particles {
		pt := &p.particles[i]
		if pt.active {
			continue
		}
		pt.activate(x, y, speed, angle)
		p.activeCount++
		p.stats.Acquired++
		return pt, true
	}
	p.stats.Exhausted++
	return nil, false
}

// Release returns an active particle to the pool
// Nil, already-free and foreign particles are ignored
func (p *Pool) Release(pt *Particle) {
	if pt == nil || pt.owner != p || !pt.active {
		return
	}
	pt.active = false
	p.activeCount--
	p.stats.Released++
}

// Tick advances every particle one step and reconciles the active count
func (p *Pool) Tick() {
	for i := range p.particles {
		p.particles[i].advance(p.bounds)
	}

	count := 0
	for i := range p.particles {
		if p.particles[i].active {
			count++
		}
	}
	if expired := p.activeCount - count; expired > 0 {
		p.stats.Expired += uint64(expired)
	}
	p.activeCount = count
}

// Update satisfies the scheduler's system contract
func (p *Pool) Update() {
	p.Tick()
}

// Reset releases every active particle
func (p *Pool) Reset() {
	for i := range p.particles {
		p.Release(&p.particles[i])
	}
}

// Each calls fn for every active particle in slot order
// fn must not acquire or release
func (p *Pool) Each(fn func(*Particle)) {
	for i := range p.particles {
		if p.particles[i].active {
			fn(&p.particles[i])
		}
	}
}

// ActiveCount returns the number of acquired particles
func (p *Pool) ActiveCount() int {
	return p.activeCount
}

// Capacity returns the fixed pool size
func (p *Pool) Capacity() int {
	return len(p.particles)
}

// Bounds returns the validity region
func (p *Pool) Bounds() Bounds {
	return p.bounds
}

// Stats returns a copy of the cumulative counters
func (p *Pool) Stats() Stats {
	return p.stats
}
