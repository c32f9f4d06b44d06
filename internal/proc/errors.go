package proc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is wrapped when the program cannot be located.
var ErrNotFound = errors.New("program not found")

// ExecutionFailure reports a command that could not be launched or that
// exited non-zero. ExitCode is -1 when no exit status exists.
type ExecutionFailure struct {
	Command  Command
	ExitCode int
	Stdout   string
	Stderr   string
	Cause    error
}

func (e *ExecutionFailure) Error() string {
	var msg string
	switch {
	case e.Cause != nil:
		msg = fmt.Sprintf("%s: %v", e.Command.Name, e.Cause)
	default:
		msg = fmt.Sprintf("%s exited with code %d", e.Command.Name, e.ExitCode)
	}

	if detail := excerpt(e.Stderr, 3); detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (e *ExecutionFailure) Unwrap() error {
	return e.Cause
}

// excerpt joins the first n non-empty lines of s.
func excerpt(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return strings.Join(lines, " | ")
}
