package main

import (
	"bytes"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-pool/config"
	"github.com/lixenwraith/particle-pool/engine"
	"github.com/lixenwraith/particle-pool/input"
	"github.com/lixenwraith/particle-pool/particle"
	"github.com/lixenwraith/particle-pool/render"
	"github.com/lixenwraith/particle-pool/spawn"
	"github.com/lixenwraith/particle-pool/status"
)

// Sound plays cue sounds; *audio.SoundManager satisfies it
type Sound interface {
	PlaySpawn()
	PlayExhausted()
}

// app wires the pool to its scheduler, input, renderer and sound
// Every method runs on the loop goroutine
type app struct {
	screen   tcell.Screen
	registry *status.Registry
	pool     *particle.Pool
	reporter *status.PoolReporter
	emitter  *spawn.Emitter
	loop     *engine.Loop
	renderer *render.Renderer
	machine  *input.Machine
	sound    Sound
	now      func() time.Time
}

func newApp(cfg config.Config, screen tcell.Screen, sound Sound, clock engine.TimeProvider) *app {
	reg := status.NewRegistry()
	pool := particle.NewPool(cfg.Pool.Capacity, particle.Bounds{Width: cfg.Pool.Width, Height: cfg.Pool.Height})

	a := &app{
		screen:   screen,
		registry: reg,
		pool:     pool,
		reporter: status.NewPoolReporter(reg, pool),
		emitter: spawn.NewEmitter(pool, spawn.Config{
			Burst:     cfg.Spawn.Burst,
			MinSpeed:  cfg.Spawn.MinSpeed,
			MaxSpeed:  cfg.Spawn.MaxSpeed,
			Rate:      cfg.Spawn.Rate,
			RateBurst: cfg.Spawn.RateBurst,
		}, spawn.SeedSource(clock.Now()), clock.Now),
		loop:     engine.NewLoop(cfg.Engine.TickInterval, engine.NewPausableClock(clock), reg),
		renderer: render.NewRenderer(screen, pool, cfg.Render.ExhaustedNotice),
		machine:  input.NewMachine(),
		sound:    sound,
		now:      clock.Now,
	}

	// Reporter runs after the pool so it publishes post-tick counts
	a.loop.AddSystem(a.pool)
	a.loop.AddSystem(a.reporter)
	a.loop.SetFrameHook(func(f engine.Frame) {
		a.renderer.Draw(f, a.now())
	})
	return a
}

// handle applies one terminal event; returns false to quit
func (a *app) handle(ev tcell.Event) bool {
	intent := a.machine.Process(ev, a.renderer.Viewport())

	switch intent.Type {
	case input.IntentQuit:
		return false

	case input.IntentSpawnAt:
		a.burst(intent.X, intent.Y)

	case input.IntentSpawnCenter:
		a.burst(a.renderer.Viewport().Center())

	case input.IntentClear:
		a.pool.Reset()
		a.reporter.Update()
		log.Printf("pool cleared")

	case input.IntentTogglePause:
		paused := a.loop.TogglePause()
		log.Printf("paused=%v", paused)

	case input.IntentDump:
		a.dump()

	case input.IntentResize:
		a.screen.Sync()
		a.renderer.Resize()
	}
	return true
}

func (a *app) burst(x, y float64) {
	res := a.emitter.Burst(x, y)
	switch {
	case res.Throttled:
		return
	case res.Exhausted:
		a.renderer.NoteExhausted(a.now())
		a.sound.PlayExhausted()
		log.Printf("pool exhausted at (%.1f, %.1f): spawned %d of burst", x, y, res.Spawned)
	case res.Spawned > 0:
		a.sound.PlaySpawn()
	}
	a.reporter.Update()
}

func (a *app) dump() {
	var buf bytes.Buffer
	if err := a.registry.WriteJSON(&buf); err != nil {
		log.Printf("status dump failed: %v", err)
		return
	}
	log.Printf("status: %s", bytes.TrimSpace(buf.Bytes()))
}
