package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particle-pool/status"
)

const (
	// fpsSmoothing is the weight of the newest sample in the frame rate average
	fpsSmoothing = 0.1

	// DefaultInterval replaces a non-positive tick interval
	DefaultInterval = 16 * time.Millisecond
)

// System is advanced once per unpaused tick, in registration order
type System interface {
	Update()
}

// Frame describes one loop iteration to the frame hook
type Frame struct {
	GameTime time.Time
	Tick     uint64
	Paused   bool
	Skipped  uint64
}

// Loop drives systems on a fixed interval
// All systems and the frame hook run on the goroutine calling Step or Run
// Late frames are dropped and counted, never replayed
type Loop struct {
	interval time.Duration
	clock    *PausableClock
	systems  []System
	onFrame  func(Frame)

	lastStep time.Time
	ticks    uint64
	frames   uint64
	skipped  uint64
	fps      float64

	statTicks   *atomic.Int64
	statFrames  *atomic.Int64
	statSkipped *atomic.Int64
	statPaused  *atomic.Bool
	statFPS     *status.AtomicFloat
}

// NewLoop creates a loop ticking every interval against clock
// An interval <= 0 falls back to DefaultInterval
func NewLoop(interval time.Duration, clock *PausableClock, reg *status.Registry) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		interval:    interval,
		clock:       clock,
		statTicks:   reg.Ints.Get(status.KeyEngineTicks),
		statFrames:  reg.Ints.Get(status.KeyEngineFrames),
		statSkipped: reg.Ints.Get(status.KeyEngineSkipped),
		statPaused:  reg.Bools.Get(status.KeyEnginePaused),
		statFPS:     reg.Floats.Get(status.KeyEngineFPS),
	}
}

// AddSystem appends s to the update order, must be called before Run
func (l *Loop) AddSystem(s System) {
	l.systems = append(l.systems, s)
}

// SetFrameHook registers fn to run after systems on every frame, paused or not
func (l *Loop) SetFrameHook(fn func(Frame)) {
	l.onFrame = fn
}

// Interval returns the tick period
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Step runs one frame at real time now
func (l *Loop) Step(now time.Time) {
	if !l.lastStep.IsZero() {
		elapsed := now.Sub(l.lastStep)
		if elapsed > l.interval {
			if missed := uint64(elapsed/l.interval) - 1; missed > 0 {
				l.skipped += missed
			}
		}
		if elapsed > 0 {
			sample := float64(time.Second) / float64(elapsed)
			if l.fps == 0 {
				l.fps = sample
			} else {
				l.fps += (sample - l.fps) * fpsSmoothing
			}
		}
	}
	l.lastStep = now
	l.frames++

	paused := l.clock.IsPaused()
	if !paused {
		for _, s := range l.systems {
			s.Update()
		}
		l.ticks++
	}

	l.statTicks.Store(int64(l.ticks))
	l.statFrames.Store(int64(l.frames))
	l.statSkipped.Store(int64(l.skipped))
	l.statPaused.Store(paused)
	l.statFPS.Store(l.fps)

	if l.onFrame != nil {
		l.onFrame(Frame{
			GameTime: l.clock.Now(),
			Tick:     l.ticks,
			Paused:   paused,
			Skipped:  l.skipped,
		})
	}
}

// Pause stops system updates; frames keep rendering
func (l *Loop) Pause() {
	l.clock.Pause()
}

// Resume restarts system updates
func (l *Loop) Resume() {
	l.clock.Resume()
}

// TogglePause flips the pause state and returns the new state
func (l *Loop) TogglePause() bool {
	if l.clock.IsPaused() {
		l.clock.Resume()
		return false
	}
	l.clock.Pause()
	return true
}

// IsPaused reports whether updates are suspended
func (l *Loop) IsPaused() bool {
	return l.clock.IsPaused()
}

// Ticks returns the number of unpaused steps
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Frames returns the number of steps, paused or not
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Skipped returns the number of dropped frames
func (l *Loop) Skipped() uint64 {
	return l.skipped
}

// Run steps l on a ticker and feeds events to handle on the same goroutine
// Returns nil when handle returns false or events closes, ctx.Err() on cancellation
func Run[E any](ctx context.Context, l *Loop, events <-chan E, handle func(E) bool) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok || !handle(ev) {
				return nil
			}

		case now := <-ticker.C:
			l.Step(now)
		}
	}
}
