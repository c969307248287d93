package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const stderrLimit = 8 << 10 // 8 KiB

// ExecRunner runs commands through the local asterisk binary
type ExecRunner struct {
	binary  string
	timeout time.Duration
	log     *slog.Logger
}

// NewExecRunner creates a runner for the local asterisk console
func NewExecRunner(binary string, timeout time.Duration, log *slog.Logger) *ExecRunner {
	if binary == "" {
		binary = DefaultAsteriskBinary
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ExecRunner{
		binary:  binary,
		timeout: timeout,
		log:     log,
	}
}

// Name returns the runner identifier
func (r *ExecRunner) Name() string {
	return "local"
}

// Run executes `<binary> -rx <command>` and returns stdout.
// On failure the error carries a trimmed stderr snippet.
func (r *ExecRunner) Run(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, "-rx", command)

	r.log.Debug("executing", "cmd", cmd.String())

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		s := stderr.String()
		if len(s) > stderrLimit {
			s = s[:stderrLimit] + "… (truncated)"
		}
		// Normalize so callers can errors.Is(err, context.DeadlineExceeded)
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", fmt.Errorf("run %q: %w (stderr: %s)", command, err, strings.TrimSpace(s))
	}

	return string(out), nil
}
