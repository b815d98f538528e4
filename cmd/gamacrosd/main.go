// Command gamacrosd is the daemon entrypoint: it parses CLI flags,
// brings up logging and localization, constructs the platform-specific
// input performer and active-app tracker, then hands control to the
// runner's single event loop until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gamacros/gamacrosd/internal/accessibility"
	"github.com/gamacros/gamacrosd/internal/activeapp"
	"github.com/gamacros/gamacrosd/internal/daemonlog"
	"github.com/gamacros/gamacrosd/internal/performer"
	"github.com/gamacros/gamacrosd/internal/runner"
	"github.com/gamacros/gamacrosd/locale"
)

func main() {
	app := &cli.App{
		Name:  "gamacrosd",
		Usage: "translate game controller input into OS keystrokes, mouse and scroll events",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Required: true, Usage: "path to the profile TOML file"},
			&cli.StringFlag{Name: "log-file", Usage: "also write logs to this file"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "lang", Value: "en", Usage: "banner locale (en, es)"},
			&cli.DurationFlag{Name: "tick-idle", Value: 100 * time.Millisecond, Usage: "poll interval while no axis is deflected and no repeat is pending"},
			&cli.DurationFlag{Name: "tick-fast", Value: 16 * time.Millisecond, Usage: "poll interval while any axis is deflected or a repeat is pending"},
			&cli.BoolFlag{Name: "no-accessibility-prompt", Usage: "don't prompt for the Accessibility permission on darwin"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := locale.Init(c.String("lang")); err != nil {
		return fmt.Errorf("locale init: %w", err)
	}

	log := daemonlog.Setup(c.String("log-file"), daemonlog.ParseLevel(c.String("log-level")))
	defer daemonlog.Close()

	log.Info(locale.TData("startup_banner", map[string]any{"Profile": c.String("profile")}))

	requireAccessibility := !c.Bool("no-accessibility-prompt")
	if requireAccessibility && !accessibility.EnsureTrusted(true) {
		log.Warn(locale.T("startup_accessibility_denied"))
	}

	perf, err := performer.New(log)
	if err != nil {
		return fmt.Errorf("performer init: %w", err)
	}
	defer perf.Close()

	tracker, err := activeapp.New()
	if err != nil {
		return fmt.Errorf("active app tracker init: %w", err)
	}
	defer tracker.Close()

	rn, err := runner.New(runner.Config{
		ProfilePath:          c.String("profile"),
		TickIdle:             c.Duration("tick-idle"),
		TickFast:             c.Duration("tick-fast"),
		RequireAccessibility: requireAccessibility,
	}, log, perf, tracker)
	if err != nil {
		return fmt.Errorf("runner init: %w", err)
	}

	if err := rn.LoadProfile(); err != nil {
		return fmt.Errorf("%s", locale.TData("profile_load_failure", map[string]any{
			"Path": c.String("profile"),
			"Err":  err,
		}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range sigs {
			switch sig {
			case syscall.SIGHUP:
				rn.RequestReload()
			case syscall.SIGINT, syscall.SIGTERM:
				log.Info(locale.T("shutdown_banner"))
				cancel()
				return
			}
		}
	}()

	return rn.Run(ctx)
}
