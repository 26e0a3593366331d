// Package status holds process-local metrics shared between the tick loop,
// the renderer and the telemetry exporter.
package status

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/goccy/go-json"
)

// Metric keys published by the pool and the tick loop
const (
	KeyPoolActive    = "pool.active"
	KeyPoolCapacity  = "pool.capacity"
	KeyPoolAcquired  = "pool.acquired"
	KeyPoolExhausted = "pool.exhausted"
	KeyPoolReleased  = "pool.released"
	KeyPoolExpired   = "pool.expired"
	KeyEngineTicks   = "engine.ticks"
	KeyEngineFrames  = "engine.frames"
	KeyEngineSkipped = "engine.skipped"
	KeyEnginePaused  = "engine.paused"
	KeyEngineFPS     = "engine.fps"
)

// Registry is the central metrics facade
// Writers cache pointers at setup; update loops store directly into the atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Snapshot is a point-in-time copy of every metric
type Snapshot struct {
	Bools  map[string]bool    `json:"bools,omitempty"`
	Ints   map[string]int64   `json:"ints,omitempty"`
	Floats map[string]float64 `json:"floats,omitempty"`
}

// Snapshot copies current values
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools:  make(map[string]bool, r.Bools.Count()),
		Ints:   make(map[string]int64, r.Ints.Count()),
		Floats: make(map[string]float64, r.Floats.Count()),
	}
	r.Bools.Range(func(k string, v *atomic.Bool) { s.Bools[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { s.Ints[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { s.Floats[k] = v.Load() })
	return s
}

// WriteJSON encodes a snapshot to w as a single JSON line
func (r *Registry) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(r.Snapshot())
}

// AtomicFloat holds a float64 gauge as raw bits; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *AtomicFloat) Load() float64 { return math.Float64frombits(f.bits.Load()) }
