package status

import (
	"sync/atomic"

	"github.com/lixenwraith/particle-pool/particle"
)

// PoolSource is the read side of a particle pool
type PoolSource interface {
	ActiveCount() int
	Capacity() int
	Stats() particle.Stats
}

// PoolReporter copies pool state into the registry once per tick
// Register it with the loop after the pool so it observes post-tick counts
type PoolReporter struct {
	src PoolSource

	active    *atomic.Int64
	capacity  *atomic.Int64
	acquired  *atomic.Int64
	exhausted *atomic.Int64
	released  *atomic.Int64
	expired   *atomic.Int64
}

// NewPoolReporter caches metric pointers for src
func NewPoolReporter(reg *Registry, src PoolSource) *PoolReporter {
	r := &PoolReporter{
		src:       src,
		active:    reg.Ints.Get(KeyPoolActive),
		capacity:  reg.Ints.Get(KeyPoolCapacity),
		acquired:  reg.Ints.Get(KeyPoolAcquired),
		exhausted: reg.Ints.Get(KeyPoolExhausted),
		released:  reg.Ints.Get(KeyPoolReleased),
		expired:   reg.Ints.Get(KeyPoolExpired),
	}
	r.Update()
	return r
}

// Update publishes the current pool counters
func (r *PoolReporter) Update() {
	stats := r.src.Stats()
	r.active.Store(int64(r.src.ActiveCount()))
	r.capacity.Store(int64(r.src.Capacity()))
	r.acquired.Store(int64(stats.Acquired))
	r.exhausted.Store(int64(stats.Exhausted))
	r.released.Store(int64(stats.Released))
	r.expired.Store(int64(stats.Expired))
}
