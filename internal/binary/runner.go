package binary

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// Runner spawns an external process and returns its captured stdout lines.
// Run blocks until the process exits; implementations decide any timeout policy.
type Runner interface {
	Run(name string, args []string) ([]string, error)
}

// RealRunner runs commands with os/exec.
type RealRunner struct {
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env replaces the process environment when non-nil.
	Env []string
}

var execCommand = exec.Command

// Run executes name with args and returns stdout split into lines.
// Non-zero exits and launch failures return an error carrying stderr.
func (r RealRunner) Run(name string, args []string) ([]string, error) {
	cmd := execCommand(name, args...)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diagnostic := strings.TrimSpace(stderr.String())
		if diagnostic == "" {
			return nil, err
		}
		return nil, fmt.Errorf(messages.BinaryRunnerFailedFmt, err, diagnostic)
	}
	return SplitLines(stdout.String()), nil
}

// SplitLines splits process output into lines without trailing whitespace,
// dropping trailing blank lines.
func SplitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Call is one invocation seen by a RecordingRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// RecordingRunner records invocations instead of spawning processes.
// It backs --dry-run and serves as the runner double in tests.
type RecordingRunner struct {
	// Out receives one line per call when set.
	Out io.Writer
	// Respond produces the output for a call; nil means no output and no error.
	Respond func(call Call) ([]string, error)
	Calls   []Call
}

// Run records the call, echoes it to Out, and returns the Respond result.
func (r *RecordingRunner) Run(name string, args []string) ([]string, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	r.Calls = append(r.Calls, call)
	if r.Out != nil {
		if _, err := fmt.Fprintf(r.Out, messages.BinaryDryRunFmt, call.String()); err != nil {
			return nil, err
		}
	}
	if r.Respond == nil {
		return nil, nil
	}
	return r.Respond(call)
}
