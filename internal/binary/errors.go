package binary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// ErrUnknownBinary reports an identifier that was never registered.
var ErrUnknownBinary = errors.New(messages.BinaryUnknown)

// ExecutionError reports a tool invocation that failed to launch or exited non-zero.
type ExecutionError struct {
	Executable string
	Args       []string
	Err        error
}

func (e *ExecutionError) Error() string {
	line := strings.TrimSpace(e.Executable + " " + strings.Join(e.Args, " "))
	return fmt.Sprintf(messages.BinaryExecutionFailedFmt, line, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
