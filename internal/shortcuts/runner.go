// Package shortcuts issues run, view, and list requests to the macOS
// Shortcuts layer through /bin/sh, with injection-safe command construction
// and outcome classification.
package shortcuts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/aterrell/shortcuts-mcp/internal/errors"
	"github.com/aterrell/shortcuts-mcp/internal/escape"
)

// NoOutputPlaceholder is returned when a run succeeds but the OS layer
// reports its "no value" sentinel or nothing at all.
const NoOutputPlaceholder = "Shortcut completed successfully (no output)"

// missingValueSentinel is what osascript prints for an AppleScript result
// with no value.
const missingValueSentinel = "missing value"

// RunResult is the outcome of a single automation run.
type RunResult struct {
	Output   string
	Duration time.Duration
}

// execFunc executes one shell command line and returns stdout and stderr.
// It is a field so tests can substitute the OS boundary.
type execFunc func(ctx context.Context, cmdline string) (stdout, stderr string, err error)

// Runner builds and executes Shortcuts invocations.
type Runner struct {
	execute execFunc
}

// NewRunner creates a Runner backed by /bin/sh.
func NewRunner() *Runner {
	return &Runner{execute: shellExec}
}

// shellExec runs cmdline through the shell. The command is deliberately not
// bound to ctx: once an automation has been issued it runs to completion;
// there is no mechanism to abort an in-flight shortcut.
func shellExec(_ context.Context, cmdline string) (string, string, error) {
	cmd := exec.Command("/bin/sh", "-c", cmdline)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = nil
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// runScript builds the AppleScript source for a run request.
func runScript(name, input string) string {
	if input == "" {
		return fmt.Sprintf(`tell application "Shortcuts Events" to run shortcut "%s"`,
			escape.AppleScriptString(name))
	}
	return fmt.Sprintf(`tell application "Shortcuts Events" to run shortcut "%s" with input "%s"`,
		escape.AppleScriptString(name), escape.AppleScriptString(input))
}

// Run executes the named shortcut with the optional input payload and
// measures wall-clock duration. The duration is returned on failure too so
// the caller can record it.
func (r *Runner) Run(ctx context.Context, name, input string) (RunResult, error) {
	cmdline := "osascript -e " + escape.ShellQuote(runScript(name, input))

	start := time.Now()
	stdout, stderr, err := r.execute(ctx, cmdline)
	duration := time.Since(start)

	if err != nil {
		return RunResult{Duration: duration}, classifyRunError(name, stderr, err)
	}

	output := strings.TrimSpace(stdout)
	if output == "" || output == missingValueSentinel {
		output = NoOutputPlaceholder
	}
	return RunResult{Output: output, Duration: duration}, nil
}

// View opens the named shortcut in the Shortcuts editor, for automations
// that need interactive UI the invoker cannot drive.
func (r *Runner) View(ctx context.Context, name string) error {
	cmdline := "shortcuts view " + escape.ShellQuote(name)
	_, stderr, err := r.execute(ctx, cmdline)
	if err != nil {
		return errors.NewRunFailed(name, failureReason(stderr, err))
	}
	return nil
}

// List returns the raw `shortcuts list --show-identifiers` output. It
// satisfies catalog.Lister.
func (r *Runner) List(ctx context.Context) (string, error) {
	stdout, stderr, err := r.execute(ctx, "shortcuts list --show-identifiers")
	if err != nil {
		return "", fmt.Errorf("%s", failureReason(stderr, err))
	}
	return stdout, nil
}

// classifyRunError maps a failed invocation to the error taxonomy. The
// AppleEvents permission code (-1743) means the user has not granted
// automation access; it is surfaced distinctly with grant instructions.
func classifyRunError(name, stderr string, err error) error {
	if strings.Contains(stderr, "-1743") ||
		strings.Contains(stderr, "Not authorized to send Apple events") {
		return errors.NewPermissionDenied(name)
	}
	return errors.NewRunFailed(name, failureReason(stderr, err))
}

// failureReason prefers the last stderr line over the bare exec error.
func failureReason(stderr string, err error) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last != "" {
		return last
	}
	return err.Error()
}
