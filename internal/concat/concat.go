package concat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ffkit/internal/ffmpeg"
	"ffkit/internal/logging"
	"ffkit/internal/media/ffprobe"
	"ffkit/internal/services"
)

// OutputLabel names the filtergraph pad mapped to the output file.
const OutputLabel = "outv"

var (
	// ErrProbe marks failures while reading input dimensions.
	ErrProbe = errors.New("concat probe failed")
	// ErrTranscode marks failures of the final ffmpeg run.
	ErrTranscode = errors.New("concat transcode failed")
)

const (
	defaultVideoCodec = "libx264"
	defaultFPS        = 30
	defaultLogLevel   = ffmpeg.LogInfo
)

// DimensionProber reports the frame size of a media file.
type DimensionProber interface {
	Dimensions(ctx context.Context, file string) (ffprobe.Dimensions, error)
}

// Concatenator probes inputs and runs the normalising concat command.
type Concatenator struct {
	prober     DimensionProber
	runner     ffmpeg.Executor
	videoCodec string
	fps        float64
	logLevel   ffmpeg.LogLevel
	logger     *slog.Logger
}

// Option configures a Concatenator.
type Option func(*Concatenator)

// WithVideoCodec overrides the output video codec.
func WithVideoCodec(codec string) Option {
	return func(c *Concatenator) {
		if codec = strings.TrimSpace(codec); codec != "" {
			c.videoCodec = codec
		}
	}
}

// WithFPS overrides the output frame rate. Non-positive values are ignored.
func WithFPS(fps float64) Option {
	return func(c *Concatenator) {
		if fps > 0 {
			c.fps = fps
		}
	}
}

// WithLogLevel overrides the ffmpeg -loglevel passed to the run.
func WithLogLevel(level ffmpeg.LogLevel) Option {
	return func(c *Concatenator) {
		if level != "" {
			c.logLevel = level
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Concatenator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Concatenator. A nil runner falls back to ffmpeg.NewRunner().
func New(prober DimensionProber, runner ffmpeg.Executor, opts ...Option) *Concatenator {
	c := &Concatenator{
		prober:     prober,
		runner:     runner,
		videoCodec: defaultVideoCodec,
		fps:        defaultFPS,
		logLevel:   defaultLogLevel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = ffmpeg.NewRunner()
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.logger = logging.NewComponentLogger(c.logger, "concat")
	return c
}

// Plan probes inputs and returns the command that would join them into
// output. Nothing is transcoded.
func (c *Concatenator) Plan(ctx context.Context, inputs []string, output string) (*ffmpeg.Command, error) {
	if len(inputs) == 0 {
		return nil, services.Wrap(services.ErrPrecondition, "concat", "validate", "no input files", nil)
	}
	if strings.TrimSpace(output) == "" {
		return nil, services.Wrap(services.ErrPrecondition, "concat", "validate", "no output file", nil)
	}
	if c.prober == nil {
		return nil, services.Wrap(services.ErrPrecondition, "concat", "validate", "no prober configured", nil)
	}

	probeCtx := services.WithStage(ctx, "probe")
	dims, err := c.probeAll(probeCtx, inputs)
	if err != nil {
		logging.WithContext(probeCtx, c.logger).Error("concatenation failed", logging.Error(err))
		return nil, services.Wrap(ErrProbe, "concat", "probe", "", err)
	}

	target := MaxDimensions(dims)
	logging.WithContext(probeCtx, c.logger).Info("computed target frame",
		logging.Int("inputs", len(inputs)),
		logging.String("target", target.String()),
	)

	cmd := ffmpeg.New(ffmpeg.WithRunner(c.runner)).LogLevel(c.logLevel)
	for _, file := range inputs {
		cmd.Input(file)
	}
	cmd.ComplexFilter(ffmpeg.ComplexFilterOptions{Filtergraph: BuildFiltergraph(len(inputs), target)}).
		VideoCodec(c.videoCodec).
		VideoFPS(c.fps).
		AddMap("[" + OutputLabel + "]").
		Output(output).
		Overwrite()
	return cmd, nil
}

// Concat joins inputs into output. Probe failures wrap ErrProbe and ffmpeg
// failures wrap ErrTranscode. Failures are logged before being returned.
func (c *Concatenator) Concat(ctx context.Context, inputs []string, output string) error {
	cmd, err := c.Plan(ctx, inputs, output)
	if err != nil {
		return err
	}

	runCtx := services.WithStage(ctx, "transcode")
	logger := logging.WithContext(runCtx, c.logger)
	started := time.Now()
	if err := cmd.Run(runCtx); err != nil {
		logger.Error("concatenation failed", logging.Error(err))
		return services.Wrap(ErrTranscode, "concat", "transcode", "", err)
	}
	logger.Info("concatenation complete",
		logging.String("output", output),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// probeAll returns dimensions in input order. The first failure cancels the
// remaining probes.
func (c *Concatenator) probeAll(ctx context.Context, inputs []string) ([]ffprobe.Dimensions, error) {
	dims := make([]ffprobe.Dimensions, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range inputs {
		g.Go(func() error {
			d, err := c.prober.Dimensions(gctx, file)
			if err != nil {
				return err
			}
			dims[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dims, nil
}
