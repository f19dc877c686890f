package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ffkit/internal/config"
	"ffkit/internal/ffmpeg"
	"ffkit/internal/logging"
	"ffkit/internal/media/ffprobe"
	"ffkit/internal/preflight"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// runner returns an ffmpeg runner wired to the configured binary and logger.
func (c *commandContext) runner(opts ...ffmpeg.RunnerOption) (*ffmpeg.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	base := []ffmpeg.RunnerOption{ffmpeg.WithBinary(cfg.Binaries.FFmpeg), ffmpeg.WithLogger(logger)}
	return ffmpeg.NewRunner(append(base, opts...)...), nil
}

// prober returns an ffprobe client wired to the configured binary and logger.
func (c *commandContext) prober() (*ffprobe.Prober, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return ffprobe.New(ffprobe.WithBinary(cfg.Binaries.FFprobe), ffprobe.WithLogger(logger)), nil
}

// checkBeforeRun verifies the configured binaries resolve and that output can
// be created.
func (c *commandContext) checkBeforeRun(ctx context.Context, output string) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := preflight.RequireBinaries(ctx, cfg); err != nil {
		return err
	}
	if strings.TrimSpace(output) == "" {
		return nil
	}
	if check := preflight.CheckOutputPath(output); !check.Passed {
		return fmt.Errorf("%s: %s", strings.ToLower(check.Name), check.Detail)
	}
	return nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
