package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ffkit/internal/logging"
	"ffkit/internal/services"
)

var commandContext = exec.CommandContext

const (
	defaultBinary = "ffmpeg"
	// stderrTailLines bounds the stderr excerpt carried by ProcessError.
	stderrTailLines = 20
	maxLineBytes    = 1024 * 1024
)

// Runner launches the ffmpeg binary with a finalized argument list.
type Runner struct {
	binary string
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBinary overrides the default binary name.
func WithBinary(binary string) RunnerOption {
	return func(r *Runner) {
		if b := strings.TrimSpace(binary); b != "" {
			r.binary = b
		}
	}
}

// WithLogger routes output lines and lifecycle events to logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput tees the raw stdout and stderr bytes of the child to the given
// writers. Either may be nil.
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner constructs a Runner using defaults.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{binary: defaultBinary}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Binary returns the executable the runner spawns.
func (r *Runner) Binary() string {
	return r.binary
}

// Run spawns the binary with exactly args and waits for it to exit. Output
// lines are logged as they arrive. A non-zero exit yields a
// *services.ProcessError carrying the exit code.
func (r *Runner) Run(ctx context.Context, args []string) error {
	tool := filepath.Base(r.binary)
	ctx = services.WithRunID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.logger, tool)).
		With(logging.String(logging.FieldTool, tool))

	cmd := commandContext(ctx, r.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	logger.Debug("starting process", logging.Strings("args", args))
	started := time.Now()
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrExternalTool, tool, "start", "", err)
	}

	tail := newLineTail(stderrTailLines)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		streamLines(stdout, r.stdout, "stdout", logger, nil)
	}()
	go func() {
		defer wg.Done()
		streamLines(stderr, r.stderr, "stderr", logger, tail)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	elapsed := time.Since(started)
	if waitErr == nil {
		logger.Info("process finished", logging.Int("exit_code", 0), logging.Duration("elapsed", elapsed))
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0 {
		procErr := &services.ProcessError{
			Tool:     tool,
			ExitCode: exitErr.ExitCode(),
			Stderr:   tail.String(),
		}
		logger.Error("process failed", logging.Int("exit_code", procErr.ExitCode), logging.Duration("elapsed", elapsed))
		return procErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", tool, ctxErr)
	}
	return services.Wrap(services.ErrExternalTool, tool, "wait", "", waitErr)
}

// streamLines logs every line read from src. When tee is set the raw bytes are
// copied to it as well.
func streamLines(src io.Reader, tee io.Writer, stream string, logger *slog.Logger, tail *lineTail) {
	if tee != nil {
		src = io.TeeReader(src, tee)
	}
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" {
			continue
		}
		if tail != nil {
			tail.Add(line)
		}
		logger.Info(line, logging.String(logging.FieldStream, stream))
	}
	// Drain so the child never blocks on a full pipe after a scan error.
	_, _ = io.Copy(io.Discard, src)
}

// scanProgressLines splits on '\n' and on the bare '\r' ffmpeg uses to redraw
// its progress line.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type lineTail struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func newLineTail(limit int) *lineTail {
	return &lineTail{limit: limit}
}

func (t *lineTail) Add(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *lineTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}
