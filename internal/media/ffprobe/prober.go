package ffprobe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"ffkit/internal/logging"
	"ffkit/internal/services"
)

var commandContext = exec.CommandContext

const defaultBinary = "ffprobe"

// Prober spawns ffprobe for dimension, stream and format queries.
type Prober struct {
	binary string
	logger *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithBinary overrides the ffprobe executable.
func WithBinary(binary string) Option {
	return func(p *Prober) {
		if b := strings.TrimSpace(binary); b != "" {
			p.binary = b
		}
	}
}

// WithLogger attaches a logger for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a Prober using defaults.
func New(opts ...Option) *Prober {
	p := &Prober{binary: defaultBinary}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	p.logger = logging.NewComponentLogger(p.logger, "ffprobe")
	return p
}

// Binary returns the executable the prober spawns.
func (p *Prober) Binary() string {
	return p.binary
}

// Dimensions reports the width and height of the first video stream in file.
func (p *Prober) Dimensions(ctx context.Context, file string) (Dimensions, error) {
	if strings.TrimSpace(file) == "" {
		return Dimensions{}, services.Wrap(services.ErrPrecondition, "ffprobe", "dimensions", "empty path", nil)
	}
	output, err := p.run(ctx, "-v", "error", "-select_streams", "v:0", "-show_entries", "stream=width,height", "-of", "csv=s=x:p=0", file)
	if err != nil {
		return Dimensions{}, err
	}
	dims, err := ParseDimensions(string(output))
	if err != nil {
		return Dimensions{}, services.Wrap(services.ErrUnexpectedOutput, "ffprobe", "dimensions", file, err)
	}
	logging.WithContext(ctx, p.logger).Debug("probed dimensions",
		logging.String("file", file),
		logging.Int("width", dims.Width),
		logging.Int("height", dims.Height),
	)
	return dims, nil
}

// HasAudioStream reports whether file carries at least one audio stream.
// A non-zero ffprobe exit is reported as false without error; only a failure
// to launch ffprobe returns an error.
func (p *Prober) HasAudioStream(ctx context.Context, file string) (bool, error) {
	if strings.TrimSpace(file) == "" {
		return false, services.Wrap(services.ErrPrecondition, "ffprobe", "audio", "empty path", nil)
	}
	output, err := p.run(ctx, "-v", "error", "-show_streams", "-select_streams", "a", "-of", "compact=p=0:nk=1", file)
	if err != nil {
		var procErr *services.ProcessError
		if errors.As(err, &procErr) {
			logging.WithContext(ctx, p.logger).Debug("audio probe exited non-zero",
				logging.String("file", file),
				logging.Int("exit_code", procErr.ExitCode),
			)
			return false, nil
		}
		return false, err
	}
	return len(bytes.TrimSpace(output)) > 0, nil
}

// run executes ffprobe and returns its stdout. Stderr is kept for the error.
func (p *Prober) run(ctx context.Context, args ...string) ([]byte, error) {
	tool := filepath.Base(p.binary)
	cmd := commandContext(ctx, p.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return nil, &services.ProcessError{
			Tool:     tool,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}
	return nil, services.Wrap(services.ErrExternalTool, tool, "run", "", err)
}
