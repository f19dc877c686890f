package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ffkit/internal/ffmpeg"
)

type runOptions struct {
	inputs        []string
	output        string
	videoCodec    string
	videoBitrate  string
	fps           float64
	fpsMax        float64
	size          string
	aspect        string
	crop          string
	tune          string
	preset        string
	pass          int
	passLogFile   string
	audioCodec    string
	audioBitrate  string
	sampleRate    int
	channels      int
	subtitleCodec string
	filterComplex string
	maps          []string
	metadata      map[string]string
	logLevel      string
	duration      string
	seek          string
	format        string
	overwrite     bool
	noOverwrite   bool
	dryRun        bool
	passthrough   bool
	skipPreflight bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run -i INPUT -o OUTPUT [flags] [-- extra ffmpeg args]",
		Short: "Build an ffmpeg command from flags and run it",
		Long: "Build an ffmpeg command from flags and run it.\n\n" +
			"Tokens after -- are appended verbatim before the output file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := extraArgs(cmd, args)
			if err != nil {
				return err
			}

			var stdout, stderr io.Writer
			if opts.passthrough {
				stdout, stderr = cmd.OutOrStdout(), cmd.ErrOrStderr()
			}
			runner, err := ctx.runner(ffmpeg.WithOutput(stdout, stderr))
			if err != nil {
				return err
			}

			builder := buildRunCommand(ffmpeg.New(ffmpeg.WithRunner(runner)), cmd.Flags(), opts, extra)
			if err := builder.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.dryRun {
				fmt.Fprintln(out, builder.String())
				return nil
			}

			if !opts.skipPreflight {
				if err := ctx.checkBeforeRun(cmd.Context(), builder.OutputFile()); err != nil {
					return err
				}
			}
			if err := builder.Run(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", builder.OutputFile())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.inputs, "input", "i", nil, "Input file (repeatable)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file")
	flags.StringVar(&opts.videoCodec, "vcodec", "", "Video codec (-c:v)")
	flags.StringVar(&opts.videoBitrate, "vbitrate", "", "Video bitrate (-b:v)")
	flags.Float64Var(&opts.fps, "fps", 0, "Output frame rate (-r)")
	flags.Float64Var(&opts.fpsMax, "fpsmax", 0, "Maximum frame rate (-fpsmax)")
	flags.StringVar(&opts.size, "size", "", "Frame size, e.g. 1280x720 (-s)")
	flags.StringVar(&opts.aspect, "aspect", "", "Display aspect ratio (-aspect)")
	flags.StringVar(&opts.crop, "crop", "", "Cropping mode: none, all, codec, container (-apply_cropping)")
	flags.StringVar(&opts.tune, "tune", "", "Encoder tune (-tune)")
	flags.StringVar(&opts.preset, "preset", "", "Encoder preset (-preset)")
	flags.IntVar(&opts.pass, "pass", 0, "Encoding pass number (-pass)")
	flags.StringVar(&opts.passLogFile, "passlogfile", "", "Two-pass log file prefix (-passlogfile)")
	flags.StringVar(&opts.audioCodec, "acodec", "", "Audio codec (-c:a)")
	flags.StringVar(&opts.audioBitrate, "abitrate", "", "Audio bitrate (-b:a)")
	flags.IntVar(&opts.sampleRate, "ar", 0, "Audio sample rate (-ar)")
	flags.IntVar(&opts.channels, "ac", 0, "Audio channel count (-ac)")
	flags.StringVar(&opts.subtitleCodec, "scodec", "", "Subtitle codec (-c:s)")
	flags.StringVar(&opts.filterComplex, "filter-complex", "", "Complex filtergraph (-filter_complex)")
	flags.StringArrayVar(&opts.maps, "map", nil, "Stream mapping (repeatable, -map)")
	flags.StringToStringVar(&opts.metadata, "metadata", nil, "Metadata key=value (repeatable, -metadata)")
	flags.StringVar(&opts.logLevel, "loglevel", "", "ffmpeg log level (-loglevel)")
	flags.StringVarP(&opts.duration, "duration", "t", "", "Limit output duration (-t)")
	flags.StringVar(&opts.seek, "ss", "", "Seek position before the input (-ss)")
	flags.StringVarP(&opts.format, "format", "f", "", "Force container format (-f)")
	flags.BoolVarP(&opts.overwrite, "overwrite", "y", false, "Overwrite the output file (-y)")
	flags.BoolVarP(&opts.noOverwrite, "no-overwrite", "n", false, "Never overwrite the output file (-n)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the command instead of running it")
	flags.BoolVar(&opts.passthrough, "passthrough", false, "Copy ffmpeg output to this terminal")
	flags.BoolVar(&opts.skipPreflight, "skip-preflight", false, "Skip the binary and output directory checks")
	cmd.MarkFlagsMutuallyExclusive("overwrite", "no-overwrite")

	return cmd
}

// buildRunCommand applies the flags that were set in a fixed order: global
// options, seek, inputs, then output options, extra tokens, and the output.
func buildRunCommand(builder *ffmpeg.Command, flags *pflag.FlagSet, opts *runOptions, extra []string) *ffmpeg.Command {
	set := flags.Changed

	builder.LogLevel(ffmpeg.LogLevel(opts.logLevel))
	if set("ss") {
		builder.Seek(opts.seek)
	}
	for _, input := range opts.inputs {
		builder.Input(input)
	}
	if set("duration") {
		builder.Duration(opts.duration)
	}
	if set("vcodec") {
		builder.VideoCodec(opts.videoCodec)
	}
	if set("vbitrate") {
		builder.VideoBitrate(opts.videoBitrate)
	}
	if set("fps") {
		builder.VideoFPS(opts.fps)
	}
	if set("fpsmax") {
		builder.VideoFPSMax(opts.fpsMax)
	}
	if set("size") {
		builder.VideoSize(opts.size)
	}
	if set("aspect") {
		builder.VideoAspect(opts.aspect)
	}
	builder.VideoCrop(ffmpeg.CropMode(opts.crop))
	if set("tune") {
		builder.VideoTune(opts.tune)
	}
	if set("preset") {
		builder.VideoPreset(opts.preset)
	}
	if set("pass") {
		builder.VideoPass(opts.pass)
	}
	if set("passlogfile") {
		builder.VideoPassLogFile(opts.passLogFile)
	}
	if set("acodec") {
		builder.AudioCodec(opts.audioCodec)
	}
	if set("abitrate") {
		builder.AudioBitrate(opts.audioBitrate)
	}
	if set("ar") {
		builder.AudioSampleRate(opts.sampleRate)
	}
	if set("ac") {
		builder.AudioChannels(opts.channels)
	}
	if set("scodec") {
		builder.SubtitleCodec(opts.subtitleCodec)
	}
	if set("filter-complex") {
		builder.ComplexFilter(ffmpeg.ComplexFilterOptions{Filtergraph: opts.filterComplex})
	}
	for _, m := range opts.maps {
		builder.AddMap(m)
	}
	builder.AddMetadata(opts.metadata)
	if set("format") {
		builder.Format(opts.format)
	}
	builder.AddArgument(extra...)
	if set("output") {
		builder.Output(opts.output)
	}
	switch {
	case opts.overwrite:
		builder.Overwrite()
	case opts.noOverwrite:
		builder.NoOverwrite()
	}
	return builder
}

// extraArgs returns the tokens given after "--". Positional arguments before
// the dash are rejected so typos do not silently become ffmpeg arguments.
func extraArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("unexpected arguments %q; pass raw ffmpeg tokens after --", args)
		}
		return nil, nil
	}
	if dash > 0 {
		return nil, fmt.Errorf("unexpected arguments %q before --", args[:dash])
	}
	return args[dash:], nil
}
