package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap is a named set of metrics of type T
// Lookups are lock-free; each key is allocated once and never removed
type MetricMap[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int64
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the metric for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := m.items.LoadOrStore(key, new(T))
	if !loaded {
		m.count.Add(1)
	}
	return v.(*T)
}

// Range visits metrics in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	type entry struct {
		key string
		ptr *T
	}
	var entries []entry
	m.items.Range(func(k, v any) bool {
		entries = append(entries, entry{k.(string), v.(*T)})
		return true
	})
	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})

	for _, e := range entries {
		fn(e.key, e.ptr)
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	return int(m.count.Load())
}
