package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileRunner replays console output captured earlier.
// Each command maps to one file in dir: "sip show peers" -> sip_show_peers.txt.
type FileRunner struct {
	dir string
	log *slog.Logger
}

// NewFileRunner creates a runner reading captures from dir
func NewFileRunner(dir string, log *slog.Logger) *FileRunner {
	return &FileRunner{dir: dir, log: log}
}

// Name returns the runner identifier
func (r *FileRunner) Name() string {
	return "file"
}

// CaptureFileName returns the file name holding the output of command
func CaptureFileName(command string) string {
	return strings.Join(strings.Fields(strings.ToLower(command)), "_") + ".txt"
}

// Run returns the captured output for command.
// A missing capture is treated as a command that printed nothing.
func (r *FileRunner) Run(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(r.dir, CaptureFileName(command))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Debug("no capture for command", "cmd", command, "path", path)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read capture %s: %w", path, err)
	}

	return string(data), nil
}
