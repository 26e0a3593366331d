// Package spawn turns spawn requests into bursts of pool acquisitions.
package spawn

import (
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/particle-pool/particle"
)

// Acquirer is the write side of a particle pool
type Acquirer interface {
	Acquire(x, y, speed, angle float64) (*particle.Particle, bool)
}

// Config shapes a burst
type Config struct {
	Burst     int     // Particles per burst
	MinSpeed  float64 // Inclusive
	MaxSpeed  float64 // Exclusive unless equal to MinSpeed
	Rate      float64 // Bursts per second
	RateBurst int     // Bursts allowed back to back
}

// Result reports the outcome of one Burst call
type Result struct {
	Spawned   int
	Exhausted bool
	Throttled bool
}

// Emitter fires bursts into a pool at a bounded rate
// Not safe for concurrent use; call from the loop goroutine like the pool itself
type Emitter struct {
	pool    Acquirer
	cfg     Config
	limiter *rate.Limiter
	rng     *rand.Rand
	now     func() time.Time
}

// SeedSource returns a PCG source seeded from t
func SeedSource(t time.Time) rand.Source {
	seed := uint64(t.UnixNano())
	return rand.NewPCG(seed, seed>>1|1)
}

// NewEmitter creates an emitter drawing from src and limited against now
func NewEmitter(pool Acquirer, cfg Config, src rand.Source, now func() time.Time) *Emitter {
	return &Emitter{
		pool:    pool,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.RateBurst),
		rng:     rand.New(src),
		now:     now,
	}
}

// Burst acquires up to cfg.Burst particles at (x, y) with random direction and speed
// Stops at the first failed acquire since later ones cannot succeed in the same call
func (e *Emitter) Burst(x, y float64) Result {
	if !e.limiter.AllowN(e.now(), 1) {
		return Result{Throttled: true}
	}

	var res Result
	for i := 0; i < e.cfg.Burst; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.cfg.MinSpeed + e.rng.Float64()*(e.cfg.MaxSpeed-e.cfg.MinSpeed)
		if _, ok := e.pool.Acquire(x, y, speed, angle); !ok {
			res.Exhausted = true
			break
		}
		res.Spawned++
	}
	return res
}
