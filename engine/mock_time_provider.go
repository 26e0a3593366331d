package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a manually advanced clock for tests
// Safe for concurrent Now and Advance
type MockTimeProvider struct {
	now atomic.Pointer[time.Time]
}

// NewMockTimeProvider starts the mock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.now.Store(&start)
	return m
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	return *m.now.Load()
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	for {
		cur := m.now.Load()
		next := cur.Add(d)
		if m.now.CompareAndSwap(cur, &next) {
			return
		}
	}
}
