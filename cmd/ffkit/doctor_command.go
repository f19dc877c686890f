package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ffkit/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check binaries and directories ffkit depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("ffkit doctor", colorize)
			configPath := ctx.configPath
			if configPath == "" {
				configPath = "(defaults)"
			}
			lines = append(lines, renderStatusLine("Config", statusInfo, configPath, colorize))

			results := preflight.RunAll(cmd.Context(), cfg, outputDir)
			lines = append(lines, checkLines(results, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory outputs will be written to")
	return cmd
}
