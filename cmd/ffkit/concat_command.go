package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ffkit/internal/concat"
	"ffkit/internal/ffmpeg"
)

func newConcatCommand(ctx *commandContext) *cobra.Command {
	var output string
	var videoCodec string
	var fps float64
	var logLevel string
	var dryRun bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "concat -o OUTPUT INPUT...",
		Short: "Join clips into one video, letterboxing them to a common frame",
		Long: "Join clips into one video.\n\n" +
			"Every input is probed, the largest width and height become the output\n" +
			"frame, and each clip is scaled to fit and padded onto it. Audio is dropped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			prober, err := ctx.prober()
			if err != nil {
				return err
			}
			runner, err := ctx.runner()
			if err != nil {
				return err
			}

			codec := cfg.Concat.VideoCodec
			if cmd.Flags().Changed("vcodec") {
				codec = videoCodec
			}
			rate := float64(cfg.Concat.FPS)
			if cmd.Flags().Changed("fps") {
				if fps <= 0 {
					return fmt.Errorf("--fps must be positive, got %v", fps)
				}
				rate = fps
			}
			level := cfg.Concat.LogLevel
			if cmd.Flags().Changed("loglevel") {
				level = strings.ToLower(logLevel)
			}

			concatenator := concat.New(prober, runner,
				concat.WithVideoCodec(codec),
				concat.WithFPS(rate),
				concat.WithLogLevel(ffmpeg.LogLevel(level)),
				concat.WithLogger(logger),
			)

			out := cmd.OutOrStdout()
			if dryRun {
				planned, err := concatenator.Plan(cmd.Context(), args, output)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, planned.String())
				return nil
			}

			if !skipPreflight {
				if err := ctx.checkBeforeRun(cmd.Context(), output); err != nil {
					return err
				}
			}
			if err := concatenator.Concat(cmd.Context(), args, output); err != nil {
				return err
			}
			fmt.Fprintf(out, "Concatenated %d clips into %s\n", len(args), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&videoCodec, "vcodec", "", "Video codec (default from concat.video_codec)")
	cmd.Flags().Float64Var(&fps, "fps", 0, "Output frame rate (default from concat.fps)")
	cmd.Flags().StringVar(&logLevel, "loglevel", "", "ffmpeg log level (default from concat.log_level)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Probe inputs and print the command instead of running it")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip the binary and output directory checks")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
