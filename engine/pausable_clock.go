package engine

import (
	"sync"
	"time"
)

// PausableClock derives game time from a real clock, frozen while paused
type PausableClock struct {
	mu sync.RWMutex

	real      TimeProvider
	start     time.Time
	paused    bool
	pausedAt  time.Time
	pausedFor time.Duration
}

// NewPausableClock starts game time at the provider's current time
func NewPausableClock(real TimeProvider) *PausableClock {
	return &PausableClock{
		real:  real,
		start: real.Now(),
	}
}

// Now returns game time: real elapsed minus total paused time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	ref := pc.real.Now()
	if pc.paused {
		ref = pc.pausedAt
	}
	return pc.start.Add(ref.Sub(pc.start) - pc.pausedFor)
}

// Pause freezes game time; repeated calls are ignored
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.real.Now()
}

// Resume continues game time from where it was frozen
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.pausedFor += pc.real.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedFor
	if pc.paused {
		total += pc.real.Now().Sub(pc.pausedAt)
	}
	return total
}
