// Package shell runs the echo command without letting caller text reach a
// shell parser unquoted.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/alessio/shellescape"
	"go.uber.org/zap"
)

var (
	ErrTimeout   = errors.New("command timed out")
	ErrExecution = errors.New("command failed")
)

const DefaultTimeout = 5 * time.Second

type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

type Runner struct {
	timeout time.Duration
	logger  *zap.Logger
	command commandFunc
}

func NewRunner(logger *zap.Logger, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		timeout: timeout,
		logger:  logger,
		command: exec.CommandContext,
	}
}

// Echo runs `echo text` with text as a single argv element. No shell is
// involved, so metacharacters in text are printed, not executed.
func (r *Runner) Echo(ctx context.Context, text string) (string, error) {
	return r.run(ctx, "echo", text)
}

// ShellEcho goes through `sh -c` with text shell-escaped into one word.
func (r *Runner) ShellEcho(ctx context.Context, text string) (string, error) {
	return r.run(ctx, "sh", "-c", "echo "+shellescape.Quote(text))
}

func (r *Runner) run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running command", zap.Strings("argv", cmd.Args))

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		r.logger.Warn("command timed out", zap.String("command", name), zap.Duration("timeout", r.timeout))
		return "", fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}
	if err != nil {
		r.logger.Error("command failed",
			zap.String("command", name),
			zap.String("stderr", stderr.String()),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s: %v", ErrExecution, name, err)
	}
	return stdout.String(), nil
}
