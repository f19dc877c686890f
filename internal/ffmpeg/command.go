package ffmpeg

import (
	"context"
	"maps"
	"slices"
	"strconv"

	"al.essio.dev/pkg/shellescape"
)

// Command accumulates ffmpeg arguments through chained setter calls. A
// Command is single-owner; it is not safe for concurrent use.
type Command struct {
	args       Args
	inputSet   bool
	outputFile string
	outputSet  bool
	runner     Executor
}

// Executor runs a finalized argument list. *Runner is the production
// implementation.
type Executor interface {
	Run(ctx context.Context, args []string) error
	Binary() string
}

// Option configures a Command.
type Option func(*Command)

// WithRunner sets the runner used by Run. Without it Run uses NewRunner().
func WithRunner(r Executor) Option {
	return func(c *Command) {
		if r != nil {
			c.runner = r
		}
	}
}

// New returns an empty Command.
func New(opts ...Option) *Command {
	c := &Command{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input appends -i file and records that an input was given.
func (c *Command) Input(file string) *Command {
	c.inputSet = true
	c.args.Append("-i", file)
	return c
}

// Output appends file and records it as the output.
func (c *Command) Output(file string) *Command {
	c.outputFile = file
	c.outputSet = true
	c.args.Append(file)
	return c
}

func (c *Command) VideoCodec(codec string) *Command {
	c.args.Append("-c:v", codec)
	return c
}

func (c *Command) VideoBitrate(bitrate string) *Command {
	c.args.Append("-b:v", bitrate)
	return c
}

// VideoFPS appends -r with fps in its shortest decimal form.
func (c *Command) VideoFPS(fps float64) *Command {
	c.args.Append("-r", formatNumber(fps))
	return c
}

func (c *Command) VideoFPSMax(fps float64) *Command {
	c.args.Append("-fpsmax", formatNumber(fps))
	return c
}

func (c *Command) VideoSize(size string) *Command {
	c.args.Append("-s", size)
	return c
}

func (c *Command) VideoAspect(aspect string) *Command {
	c.args.Append("-aspect", aspect)
	return c
}

// VideoCrop appends -apply_cropping mode. An empty mode is a no-op.
func (c *Command) VideoCrop(mode CropMode) *Command {
	if mode != "" {
		c.args.Append("-apply_cropping", string(mode))
	}
	return c
}

func (c *Command) VideoTune(tune string) *Command {
	c.args.Append("-tune", tune)
	return c
}

func (c *Command) VideoPreset(preset string) *Command {
	c.args.Append("-preset", preset)
	return c
}

func (c *Command) VideoPass(pass int) *Command {
	c.args.Append("-pass", strconv.Itoa(pass))
	return c
}

func (c *Command) VideoPassLogFile(prefix string) *Command {
	c.args.Append("-passlogfile", prefix)
	return c
}

func (c *Command) AudioCodec(codec string) *Command {
	c.args.Append("-c:a", codec)
	return c
}

func (c *Command) AudioBitrate(bitrate string) *Command {
	c.args.Append("-b:a", bitrate)
	return c
}

func (c *Command) AudioSampleRate(rate int) *Command {
	c.args.Append("-ar", strconv.Itoa(rate))
	return c
}

func (c *Command) AudioChannels(channels int) *Command {
	c.args.Append("-ac", strconv.Itoa(channels))
	return c
}

func (c *Command) SubtitleCodec(codec string) *Command {
	c.args.Append("-c:s", codec)
	return c
}

func (c *Command) ComplexFilter(opts ComplexFilterOptions) *Command {
	c.args.Append("-filter_complex", opts.Filtergraph)
	return c
}

// Overwrite appends -y.
func (c *Command) Overwrite() *Command {
	c.args.Append("-y")
	return c
}

// NoOverwrite appends -n.
func (c *Command) NoOverwrite() *Command {
	c.args.Append("-n")
	return c
}

// LogLevel appends -loglevel level. An empty level is a no-op.
func (c *Command) LogLevel(level LogLevel) *Command {
	if level != "" {
		c.args.Append("-loglevel", string(level))
	}
	return c
}

func (c *Command) Duration(duration string) *Command {
	c.args.Append("-t", duration)
	return c
}

func (c *Command) Seek(position string) *Command {
	c.args.Append("-ss", position)
	return c
}

func (c *Command) Format(format string) *Command {
	c.args.Append("-f", format)
	return c
}

// AddMetadata appends one -metadata key=value pair per entry, in key order.
func (c *Command) AddMetadata(metadata map[string]string) *Command {
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		c.args.Append("-metadata", key+"="+metadata[key])
	}
	return c
}

func (c *Command) AddMap(spec string) *Command {
	c.args.Append("-map", spec)
	return c
}

// AddArgument appends tokens verbatim. It covers flags the builder does not model.
func (c *Command) AddArgument(tokens ...string) *Command {
	c.args.Append(tokens...)
	return c
}

// Args returns a copy of the accumulated tokens.
func (c *Command) Args() []string {
	return c.args.Slice()
}

// HasInput reports whether Input was called.
func (c *Command) HasInput() bool {
	return c.inputSet
}

// HasOutput reports whether Output was called.
func (c *Command) HasOutput() bool {
	return c.outputSet
}

// OutputFile returns the path passed to the most recent Output call.
func (c *Command) OutputFile() string {
	return c.outputFile
}

// Validate reports ErrNoInput or ErrNoOutput when the command cannot run.
func (c *Command) Validate() error {
	if !c.HasInput() {
		return ErrNoInput
	}
	if !c.HasOutput() {
		return ErrNoOutput
	}
	return nil
}

// Run validates the command and hands the tokens to the runner. Nothing is
// spawned when validation fails.
func (c *Command) Run(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.runnerOrDefault().Run(ctx, c.args.Slice())
}

// String renders the command line as it would be typed in a POSIX shell.
func (c *Command) String() string {
	parts := make([]string, 0, c.args.Len()+1)
	parts = append(parts, c.runnerOrDefault().Binary())
	parts = append(parts, c.args...)
	return shellescape.QuoteCommand(parts)
}

func (c *Command) runnerOrDefault() Executor {
	if c.runner == nil {
		c.runner = NewRunner()
	}
	return c.runner
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
