package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Inspect media files with ffprobe",
	}

	probeCmd.AddCommand(newProbeDimensionsCommand(ctx))
	probeCmd.AddCommand(newProbeAudioCommand(ctx))
	probeCmd.AddCommand(newProbeInfoCommand(ctx))

	return probeCmd
}

func newProbeDimensionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions FILE...",
		Short: "Show the frame size of the first video stream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, err := ctx.prober()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(args))
			for _, file := range args {
				dims, err := prober.Dimensions(cmd.Context(), file)
				if err != nil {
					return fmt.Errorf("probe %s: %w", file, err)
				}
				rows = append(rows, []string{file, strconv.Itoa(dims.Width), strconv.Itoa(dims.Height)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Width", "Height"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newProbeAudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audio FILE...",
		Short: "Report whether files carry an audio stream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, err := ctx.prober()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(args))
			for _, file := range args {
				hasAudio, err := prober.HasAudioStream(cmd.Context(), file)
				if err != nil {
					return fmt.Errorf("probe %s: %w", file, err)
				}
				rows = append(rows, []string{file, yesNo(hasAudio)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"File", "Audio"}, rows, nil))
			return nil
		},
	}
}

func newProbeInfoCommand(ctx *commandContext) *cobra.Command {
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Show streams and container details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, err := ctx.prober()
			if err != nil {
				return err
			}
			result, err := prober.Inspect(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("probe %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if rawJSON {
				_, err := out.Write(result.RawJSON())
				return err
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, s := range result.Streams {
				detail := ""
				switch s.CodecType {
				case "video":
					detail = fmt.Sprintf("%dx%d", s.Width, s.Height)
					if s.RFrameRate != "" {
						detail += " @ " + s.RFrameRate
					}
				case "audio":
					detail = fmt.Sprintf("%d ch", s.Channels)
					if s.SampleRate != "" {
						detail += ", " + s.SampleRate + " Hz"
					}
				}
				rows = append(rows, []string{strconv.Itoa(s.Index), s.CodecType, s.CodecName, detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Detail"},
				rows,
				[]columnAlignment{alignRight},
			))
			summary := fmt.Sprintf("Streams: %d video, %d audio", result.VideoStreamCount(), result.AudioStreamCount())
			if dims, ok := result.FirstVideo(); ok {
				summary += "  Frame: " + dims.String()
			}
			fmt.Fprintln(out, summary)
			fmt.Fprintf(out, "Format: %s  Duration: %.2fs  Size: %d bytes  Bitrate: %d bps\n",
				result.Format.FormatName, result.DurationSeconds(), result.SizeBytes(), result.BitRate())
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw ffprobe JSON")
	return cmd
}
