package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait lingers on inherited pipes after the
// child is killed.
const waitDelay = 2 * time.Second

// Command is one external invocation. When Stdout is set, standard output
// is streamed into that file instead of being captured.
type Command struct {
	Name   string
	Args   []string
	Stdout string
	Dir    string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result holds the observable outcome of a finished command. Stdout is
// empty when output was redirected.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Process is a started command. Wait must be called exactly once.
type Process struct {
	ctx     context.Context
	cmd     Command
	exec    *exec.Cmd
	out     *os.File
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	started time.Time
}

// Start launches the command without waiting for it. The child is killed
// when ctx is cancelled.
func Start(ctx context.Context, c Command) (*Process, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, &ExecutionFailure{Command: c, ExitCode: -1, Cause: fmt.Errorf("%w: %s", ErrNotFound, c.Name)}
	}

	p := &Process{ctx: ctx, cmd: c}
	p.exec = exec.CommandContext(ctx, path, c.Args...)
	p.exec.Dir = c.Dir
	p.exec.WaitDelay = waitDelay
	p.exec.Stderr = &p.stderr

	if c.Stdout != "" {
		f, err := os.Create(c.Stdout)
		if err != nil {
			return nil, &ExecutionFailure{Command: c, ExitCode: -1, Cause: fmt.Errorf("creating output file: %w", err)}
		}
		p.out = f
		p.exec.Stdout = f
	} else {
		p.exec.Stdout = &p.stdout
	}

	p.started = time.Now()
	if err := p.exec.Start(); err != nil {
		p.closeOutput()
		return nil, &ExecutionFailure{Command: c, ExitCode: -1, Cause: err}
	}
	return p, nil
}

// PID returns the operating system process id of the child.
func (p *Process) PID() int {
	return p.exec.Process.Pid
}

// Wait blocks until the child exits. Non-zero exit and cancellation are
// returned as *ExecutionFailure together with the partial Result.
func (p *Process) Wait() (*Result, error) {
	err := p.exec.Wait()
	closeErr := p.closeOutput()

	result := &Result{
		Stdout:   p.stdout.String(),
		Stderr:   p.stderr.String(),
		Duration: time.Since(p.started),
	}

	if err != nil {
		failure := &ExecutionFailure{
			Command:  p.cmd,
			ExitCode: -1,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Cause:    err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failure.ExitCode = exitErr.ExitCode()
			failure.Cause = nil
		}
		if ctxErr := p.ctx.Err(); ctxErr != nil {
			failure.Cause = ctxErr
		}
		result.ExitCode = failure.ExitCode
		return result, failure
	}

	if closeErr != nil {
		return result, &ExecutionFailure{Command: p.cmd, ExitCode: 0, Stderr: result.Stderr, Cause: fmt.Errorf("closing output file: %w", closeErr)}
	}
	return result, nil
}

func (p *Process) closeOutput() error {
	if p.out == nil {
		return nil
	}
	err := p.out.Close()
	p.out = nil
	return err
}

// Run starts the command and waits for it.
func Run(ctx context.Context, c Command) (*Result, error) {
	p, err := Start(ctx, c)
	if err != nil {
		return nil, err
	}
	return p.Wait()
}
