package config

const (
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultConcatCodec      = "libx264"
	defaultConcatFPS        = 30
	defaultConcatLogLevel   = "info"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultConfigPath       = "~/.config/ffkit/config.toml"
	projectConfigFileName   = "ffkit.toml"
	envFFmpegBinary         = "FFKIT_FFMPEG"
	envFFprobeBinary        = "FFKIT_FFPROBE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Binaries: Binaries{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Concat: Concat{
			VideoCodec: defaultConcatCodec,
			FPS:        defaultConcatFPS,
			LogLevel:   defaultConcatLogLevel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
