package classifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
)

type process struct {
	command string
	args    []string
	logger  *slog.Logger
}

// NewProcess returns a Classifier that runs command with args followed by
// the review text and parses the JSON written to stdout.
func NewProcess(command string, args []string, logger *slog.Logger) Classifier {
	return &process{
		command: command,
		args:    slices.Clone(args),
		logger:  logger.With("classifier", ProviderProcess),
	}
}

func (p *process) Name() string { return ProviderProcess }

func (p *process) Classify(ctx context.Context, text string) (Result, error) {
	cmd := exec.CommandContext(ctx, p.command, append(slices.Clone(p.args), text)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			err = fmt.Errorf("exit status %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return Result{}, unavailable(ctx, ProviderProcess, err)
	}

	if stderr.Len() > 0 {
		p.logger.Debug("classifier stderr", "output", strings.TrimSpace(stderr.String()))
	}

	return decode(stdout.String())
}
