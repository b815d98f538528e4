// Package shellexec runs a ButtonAction.Shell command through the
// profile's configured shell, the way the original implementation's
// ActionRunner.run_shell does: a thin, logged, timeout-bounded
// os/exec.Command invocation whose output is never fed back into the
// engine.
package shellexec

import (
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// DefaultShell is used when a profile does not set one, mirroring the
// original's DEFAULT_SHELL fallback.
const DefaultShell = "/bin/sh"

// DefaultTimeout bounds how long a shell action may run before it is
// killed. Run is synchronous, so a hung command stalls the caller (the
// runner's event loop) for at most this long.
const DefaultTimeout = 5 * time.Second

// Runner invokes shell commands on behalf of Shell button actions.
type Runner struct {
	shell   string
	timeout time.Duration
	log     *slog.Logger
}

// New returns a Runner bound to shell (DefaultShell if empty).
func New(shell string, log *slog.Logger) *Runner {
	if shell == "" {
		shell = DefaultShell
	}
	return &Runner{shell: shell, timeout: DefaultTimeout, log: log}
}

// Run executes cmd as `shell -c cmd`, logging its outcome. Errors are
// swallowed by design — same as the original's run_shell, which only
// ever logs a failed command rather than propagating it back into the
// chord resolver.
func (r *Runner) Run(cmd string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, r.shell, "-c", cmd).Output()
	if err != nil {
		r.log.Error("shell action failed", "cmd", cmd, "err", err)
		return
	}
	r.log.Debug("shell action output", "cmd", cmd, "output", string(out))
}
