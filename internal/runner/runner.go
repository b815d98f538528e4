// Package runner wires the engine, gamepad backend, input performer,
// active-app tracker and shell executor into the single event loop
// goroutine described by the engine's concurrency model: one goroutine
// drives SDL polling, tick-driven stick/repeat processing and action
// dispatch. The Engine is never touched from another goroutine: a SIGHUP
// handler calls RequestReload, and the loop itself reloads the profile
// and calls SetProfile on its next iteration.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gamacros/gamacrosd/internal/accessibility"
	"github.com/gamacros/gamacrosd/internal/activeapp"
	"github.com/gamacros/gamacrosd/internal/engine"
	"github.com/gamacros/gamacrosd/internal/gamepad"
	"github.com/gamacros/gamacrosd/internal/performer"
	"github.com/gamacros/gamacrosd/internal/profile"
	"github.com/gamacros/gamacrosd/internal/shellexec"
)

// Config holds the runner's tunables, set from CLI flags.
type Config struct {
	ProfilePath          string
	TickIdle             time.Duration
	TickFast             time.Duration
	RequireAccessibility bool
}

// Runner owns the process's single event loop.
type Runner struct {
	cfg     Config
	log     *slog.Logger
	eng     *engine.Engine
	gamepad *gamepad.Backend
	perf    performer.Performer
	tracker activeapp.Tracker
	shell   *shellexec.Runner

	reload chan struct{}
}

// New constructs a Runner. It does not open any OS resources itself
// beyond SDL initialization; the caller supplies the already-constructed
// performer and tracker so platform selection stays in cmd/gamacrosd.
func New(cfg Config, log *slog.Logger, perf performer.Performer, tracker activeapp.Tracker) (*Runner, error) {
	if cfg.TickIdle <= 0 {
		cfg.TickIdle = 100 * time.Millisecond
	}
	if cfg.TickFast <= 0 {
		cfg.TickFast = 16 * time.Millisecond
	}

	if cfg.RequireAccessibility && !accessibility.EnsureTrusted(true) {
		log.Warn("accessibility permission not granted; input synthesis may silently fail")
	}

	if err := sdl.Init(sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return nil, err
	}

	gp := gamepad.New(log)

	return &Runner{
		cfg:     cfg,
		log:     log,
		eng:     engine.New(),
		gamepad: gp,
		perf:    perf,
		tracker: tracker,
		shell:   shellexec.New("", log),
		reload:  make(chan struct{}, 1),
	}, nil
}

// LoadProfile loads the profile at cfg.ProfilePath and installs it.
func (r *Runner) LoadProfile() error {
	p, err := profile.Load(r.cfg.ProfilePath)
	if err != nil {
		return err
	}
	r.eng.SetProfile(p)
	r.shell = shellexec.New(p.Shell, r.log)
	return nil
}

// RequestReload asks the event loop to reload the profile on its next
// iteration. Safe to call from a signal handler goroutine.
func (r *Runner) RequestReload() {
	select {
	case r.reload <- struct{}{}:
	default:
	}
}

// Run drives the event loop until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer r.gamepad.Close()
	defer r.perf.Close()
	defer r.tracker.Close()
	defer sdl.Quit()

	for _, ev := range r.gamepad.Scan() {
		r.eng.AddController(ev.Info)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.reload:
			if err := r.LoadProfile(); err != nil {
				r.log.Error("profile reload failed", "err", err)
			} else {
				r.log.Info("profile reloaded")
			}
		default:
		}

		r.pollSDL()
		r.pollActiveApp()

		now := time.Now()
		r.eng.OnTick(now, r.dispatch)
		r.eng.ProcessDueRepeats(now, r.dispatch)
		r.eng.ProcessButtonRepeats(now, r.dispatch)

		time.Sleep(r.sleepInterval())
	}
}

func (r *Runner) sleepInterval() time.Duration {
	if r.eng.WantsFastTick() {
		return r.cfg.TickFast
	}
	return r.cfg.TickIdle
}

func (r *Runner) pollSDL() {
	for {
		event := sdl.PollEvent()
		if event == nil {
			return
		}
		switch e := event.(type) {
		case *sdl.ControllerDeviceEvent:
			if ev, ok := r.gamepad.HandleDeviceEvent(e); ok {
				switch typed := ev.(type) {
				case gamepad.ConnectEvent:
					r.eng.AddController(typed.Info)
				case gamepad.DisconnectEvent:
					r.eng.RemoveController(typed.Controller)
				}
			}
		case *sdl.ControllerButtonEvent:
			if be, ok := r.gamepad.HandleButtonEvent(e); ok {
				r.eng.OnButton(be.Controller, be.Button, be.Phase, r.dispatch)
			}
		case *sdl.ControllerAxisEvent:
			ae, ok, be := r.gamepad.HandleAxisEvent(e)
			if ok {
				r.eng.OnAxis(ae.Controller, ae.Axis, ae.Value)
			}
			if be != nil {
				r.eng.OnButton(be.Controller, be.Button, be.Phase, r.dispatch)
			}
		}
	}
}

func (r *Runner) pollActiveApp() {
	app, err := r.tracker.Poll()
	if err != nil {
		r.log.Debug("active app poll failed", "err", err)
		return
	}
	r.eng.SetActiveApp(app)
}

// dispatch is the Sink the Engine emits Actions through. Rumble and
// Shell are handled here directly (they aren't part of the Performer
// interface: one drives the gamepad backend, the other os/exec), every
// other Action kind goes through the OS input performer.
func (r *Runner) dispatch(a engine.Action) {
	switch a.Kind {
	case engine.KindRumble:
		r.gamepad.Rumble(a.Ctrl, 0xFFFF, 0xFFFF, uint32(a.RumbleMS))
	case engine.KindShell:
		r.shell.Run(a.Shell)
	default:
		if err := performer.Perform(r.perf, a); err != nil {
			r.log.Debug("action failed", "kind", a.Kind, "err", err)
		}
	}
}
