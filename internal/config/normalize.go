package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeBinaries()
	c.normalizeConcat()
	return c.normalizeLogging()
}

func (c *Config) normalizeBinaries() {
	if value, ok := os.LookupEnv(envFFmpegBinary); ok && strings.TrimSpace(value) != "" {
		c.Binaries.FFmpeg = value
	}
	if value, ok := os.LookupEnv(envFFprobeBinary); ok && strings.TrimSpace(value) != "" {
		c.Binaries.FFprobe = value
	}
	c.Binaries.FFmpeg = strings.TrimSpace(c.Binaries.FFmpeg)
	c.Binaries.FFprobe = strings.TrimSpace(c.Binaries.FFprobe)
	if c.Binaries.FFmpeg == "" {
		c.Binaries.FFmpeg = defaultFFmpegBinary
	}
	if c.Binaries.FFprobe == "" {
		c.Binaries.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeConcat() {
	c.Concat.VideoCodec = strings.TrimSpace(c.Concat.VideoCodec)
	if c.Concat.VideoCodec == "" {
		c.Concat.VideoCodec = defaultConcatCodec
	}
	c.Concat.LogLevel = strings.ToLower(strings.TrimSpace(c.Concat.LogLevel))
	if c.Concat.LogLevel == "" {
		c.Concat.LogLevel = defaultConcatLogLevel
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
	if err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Logging.Dir = dir
	return nil
}
