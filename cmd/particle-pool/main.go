package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sourcegraph/conc"

	"github.com/lixenwraith/particle-pool/audio"
	"github.com/lixenwraith/particle-pool/config"
	"github.com/lixenwraith/particle-pool/core"
	"github.com/lixenwraith/particle-pool/engine"
	"github.com/lixenwraith/particle-pool/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(start(os.Args[1:], os.Stderr))
}

// start runs the program and returns its exit code so deferred cleanup runs before exit
func start(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("particle-pool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config file")
	debug := fs.Bool("debug", false, "Write logs to the log directory")
	dir := fs.String("log-dir", logDir, "Log directory used with -debug")
	mute := fs.Bool("mute", false, "Disable sound cues")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if f := setupLogging(*debug, *dir); f != nil {
		defer func() {
			log.SetOutput(io.Discard)
			f.Close()
		}()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if err := run(cfg, *mute); err != nil {
		fmt.Fprintf(stderr, "particle-pool: %v\n", err)
		return 1
	}
	return 0
}

func run(cfg config.Config, mute bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashScreen(screen)

	var finiOnce sync.Once
	fini := func() {
		finiOnce.Do(func() {
			core.SetCrashScreen(nil)
			screen.Fini()
		})
	}
	defer fini()

	sound := audio.NewSoundManager()
	if cfg.Audio.Enabled && !mute {
		if err := sound.Initialize(); err != nil {
			log.Printf("audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sound.Cleanup()
		}
	}

	a := newApp(cfg, screen, sound, engine.NewMonotonicTimeProvider())

	mp, shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTelemetry(sctx); err != nil {
				log.Printf("telemetry shutdown: %v", err)
			}
		}()
		if err := telemetry.ObserveRegistry(mp, a.registry); err != nil {
			log.Printf("telemetry observe: %v", err)
		}
	}

	log.Printf("starting: capacity=%d bounds=%.0fx%.0f tick=%s",
		cfg.Pool.Capacity, cfg.Pool.Width, cfg.Pool.Height, cfg.Engine.TickInterval)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})

	var lifecycle conc.WaitGroup
	lifecycle.Go(core.Protect(func() {
		pollEvents(screen, events, done)
	}))

	runErr := engine.Run(ctx, a.loop, events, a.handle)

	// Fini unblocks PollEvent; done unblocks a pending send
	fini()
	close(done)
	lifecycle.Wait()

	a.dump()
	log.Printf("stopped: ticks=%d frames=%d skipped=%d", a.loop.Ticks(), a.loop.Frames(), a.loop.Skipped())

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// pollEvents forwards terminal events until the screen is finalized or done closes
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
