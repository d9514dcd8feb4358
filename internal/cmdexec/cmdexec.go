// Package cmdexec runs external tools and returns a structured result
// instead of relying on unbounded subprocess blocking.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

const maxStderrBytes = 8 * 1024 // tail of stderr kept for diagnostics

// Result is the structured outcome of one tool invocation.
type Result struct {
	ExitCode   int
	StderrTail string
	Duration   time.Duration
}

// IsSuccess reports a clean zero exit.
func (r Result) IsSuccess() bool { return r.ExitCode == 0 }

// Runner executes commands with an optional per-invocation timeout.
// The zero value runs without a timeout.
type Runner struct {
	Timeout time.Duration
}

// Run executes name with args, capturing a bounded stderr tail.
// A non-zero exit is reported through Result, not the error; the error is
// reserved for failures to start or cancellation.
func (r Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &limitedWriter{w: &stderrBuf, limit: maxStderrBytes}
	cmd.Stdout = io.Discard

	err := cmd.Run()
	res := Result{
		StderrTail: stderrBuf.String(),
		Duration:   time.Since(start),
	}

	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, nil
	}

	res.ExitCode = -1
	return res, err
}

// limitedWriter keeps the first limit bytes and drops the rest, so a noisy
// tool cannot grow the diagnostic buffer without bound.
type limitedWriter struct {
	w     io.Writer
	limit int
	n     int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	total := len(p)
	if lw.n >= lw.limit {
		return total, nil
	}
	if lw.n+len(p) > lw.limit {
		p = p[:lw.limit-lw.n]
	}
	n, err := lw.w.Write(p)
	lw.n += n
	if err != nil {
		return n, err
	}
	return total, nil
}
