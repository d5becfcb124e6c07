// Package capture turns a still image from an external camera tool into a
// pending file.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/Veraticus/redact-flow/internal/model"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a capture command without its own deadline.
const DefaultTimeout = 30 * time.Second

// ErrNoCommand is returned when no capture command is configured.
var ErrNoCommand = errors.New("no capture command configured")

// Source produces a single captured image.
type Source interface {
	Capture(ctx context.Context) (model.PendingFile, error)
}

// CommandSource runs an external command that writes one JPEG still to
// stdout, for example `fswebcam -` or `imagesnap -`.
type CommandSource struct {
	newName func() string
	name    string
	args    []string
	timeout time.Duration
}

// NewCommandSource parses command into a program and its arguments.
func NewCommandSource(command string) (*CommandSource, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrNoCommand
	}
	return &CommandSource{
		name:    fields[0],
		args:    fields[1:],
		timeout: DefaultTimeout,
		newName: Filename,
	}, nil
}

// Capture runs the command and wraps its output. The file gets a generated
// name since the still has no name of its own.
func (s *CommandSource) Capture(ctx context.Context) (model.PendingFile, error) {
	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, s.name, s.args...) //nolint:gosec // command comes from user configuration

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return model.PendingFile{}, fmt.Errorf("capture command failed: %s", strings.TrimSpace(stderr.String()))
		}
		return model.PendingFile{}, fmt.Errorf("failed to run capture command: %w", err)
	}
	if stdout.Len() == 0 {
		return model.PendingFile{}, fmt.Errorf("capture command produced no image")
	}

	file := model.PendingFile{Name: s.newName(), Content: stdout.Bytes()}
	slog.Debug("Captured image", "name", file.Name, "bytes", file.Size())
	return file, nil
}

// Filename returns a fresh name for a captured still.
func Filename() string {
	return "capture-" + uuid.New().String() + ".jpg"
}
