package config

import (
	"errors"
	"fmt"
	"slices"
)

// ffmpegLogLevels lists the values ffmpeg accepts for -loglevel.
var ffmpegLogLevels = []string{"quiet", "panic", "fatal", "error", "warning", "info", "verbose", "debug", "trace"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBinaries(); err != nil {
		return err
	}
	if err := c.validateConcat(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateBinaries() error {
	if c.Binaries.FFmpeg == "" {
		return errors.New("binaries.ffmpeg must be set")
	}
	if c.Binaries.FFprobe == "" {
		return errors.New("binaries.ffprobe must be set")
	}
	return nil
}

func (c *Config) validateConcat() error {
	if c.Concat.FPS <= 0 {
		return fmt.Errorf("concat.fps must be positive, got %d", c.Concat.FPS)
	}
	if !slices.Contains(ffmpegLogLevels, c.Concat.LogLevel) {
		return fmt.Errorf("concat.log_level: unsupported value %q", c.Concat.LogLevel)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
